package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrSupporterNotFound = errors.New("supporter not found")
	ErrEventNotFound     = errors.New("event not found")
	ErrEmptyName         = errors.New("name must not be empty")
	ErrInvalidAmount     = errors.New("amount must be a non-negative number")
	ErrDuplicateItemID   = errors.New("item id already present")
	ErrIncompleteDraft   = errors.New("event draft is missing required fields")
	ErrStorageRead       = errors.New("stored snapshot could not be read")
	ErrStorageWrite      = errors.New("snapshot could not be written")
)

// LedgerError represents an error raised by a ledger operation
type LedgerError struct {
	Code    string
	Message string
	Err     error
}

func (e *LedgerError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *LedgerError) Unwrap() error {
	return e.Err
}

// NewLedgerError creates a new ledger error
func NewLedgerError(code, message string, err error) *LedgerError {
	return &LedgerError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeValidation        = "VALIDATION_ERROR"
	ErrCodeSupporterNotFound = "SUPPORTER_NOT_FOUND"
	ErrCodeEventNotFound     = "EVENT_NOT_FOUND"
	ErrCodeStorageRead       = "STORAGE_READ_ERROR"
	ErrCodeStorageWrite      = "STORAGE_WRITE_ERROR"
)

// Wrap common errors with ledger context
func WrapEmptyName(field string) *LedgerError {
	return NewLedgerError(
		ErrCodeValidation,
		fmt.Sprintf("%s must not be empty", field),
		ErrEmptyName,
	)
}

func WrapInvalidAmount(field, raw string) *LedgerError {
	return NewLedgerError(
		ErrCodeValidation,
		fmt.Sprintf("%s %q is not a non-negative number", field, raw),
		ErrInvalidAmount,
	)
}

func WrapDuplicateItemID(id string) *LedgerError {
	return NewLedgerError(
		ErrCodeValidation,
		fmt.Sprintf("item id %s is already present in the draft", id),
		ErrDuplicateItemID,
	)
}

func WrapIncompleteDraft(field string) *LedgerError {
	return NewLedgerError(
		ErrCodeValidation,
		fmt.Sprintf("event draft field %s is missing or invalid", field),
		ErrIncompleteDraft,
	)
}

func WrapSupporterNotFound(id string) *LedgerError {
	return NewLedgerError(
		ErrCodeSupporterNotFound,
		fmt.Sprintf("Supporter with ID %s not found", id),
		ErrSupporterNotFound,
	)
}

func WrapEventNotFound(id string) *LedgerError {
	return NewLedgerError(
		ErrCodeEventNotFound,
		fmt.Sprintf("Event with ID %s not found", id),
		ErrEventNotFound,
	)
}

func WrapStorageRead(key string, err error) *LedgerError {
	return NewLedgerError(
		ErrCodeStorageRead,
		fmt.Sprintf("failed to read snapshot %q", key),
		err,
	)
}

func WrapStorageWrite(key string, err error) *LedgerError {
	return NewLedgerError(
		ErrCodeStorageWrite,
		fmt.Sprintf("failed to write snapshot %q", key),
		err,
	)
}

// IsCode reports whether err is a LedgerError carrying the given code.
func IsCode(err error, code string) bool {
	var le *LedgerError
	if errors.As(err, &le) {
		return le.Code == code
	}
	return false
}
