package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/formiguinhas/ledger/internal/domain"
	"github.com/formiguinhas/ledger/internal/ledger"
	customError "github.com/formiguinhas/ledger/pkg/errors"
	"github.com/formiguinhas/ledger/pkg/response"
)

type SupporterHandler struct {
	ledger    *ledger.SupporterLedger
	validator *validator.Validate
}

func NewSupporterHandler(l *ledger.SupporterLedger) *SupporterHandler {
	return &SupporterHandler{
		ledger:    l,
		validator: validator.New(),
	}
}

// List returns the collection, filtered by the optional ?q= search query,
// together with the footer summary values.
func (h *SupporterHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	var supporters []domain.Supporter
	if query != "" {
		supporters = h.ledger.Search(query)
	} else {
		supporters = h.ledger.List()
	}

	response.Success(w, domain.SupporterListResponse{
		Supporters: supporters,
		Summary:    h.ledger.Summary(),
	})
}

// Create adds a new supporter from the submitted name.
func (h *SupporterHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateSupporterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		response.BadRequest(w, "invalid request", err)
		return
	}

	supporter, err := h.ledger.Add(r.Context(), req.Name)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	response.Created(w, supporter)
}

// RegisterPayment marks the supporter paid for the current cycle.
func (h *SupporterHandler) RegisterPayment(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.ledger.RegisterPayment(r.Context(), id); err != nil {
		writeLedgerError(w, err)
		return
	}

	response.Success(w, map[string]string{"id": id, "paymentStatus": domain.PaymentStatusPaid})
}

// RemovePayment flips the supporter back to pending for the current cycle.
func (h *SupporterHandler) RemovePayment(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.ledger.RemovePayment(r.Context(), id); err != nil {
		writeLedgerError(w, err)
		return
	}

	response.Success(w, map[string]string{"id": id, "paymentStatus": domain.PaymentStatusPending})
}

// Reset sets every supporter back to pending for the new month and returns
// the confirmation notice the client is expected to display.
func (h *SupporterHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.ledger.ResetForNewMonth(r.Context()); err != nil {
		writeLedgerError(w, err)
		return
	}

	response.Success(w, map[string]string{
		"message": "All payment statuses were set to Pending for the new month.",
	})
}

// Delete removes a supporter. The client is expected to have asked the user
// for confirmation; unknown ids are a no-op.
func (h *SupporterHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.ledger.Delete(r.Context(), id); err != nil {
		writeLedgerError(w, err)
		return
	}

	response.Success(w, map[string]string{"id": id, "deleted": "true"})
}

// Summary returns only the aggregate footer values.
func (h *SupporterHandler) Summary(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.ledger.Summary())
}

// writeLedgerError maps ledger error codes onto HTTP statuses.
func writeLedgerError(w http.ResponseWriter, err error) {
	switch {
	case customError.IsCode(err, customError.ErrCodeValidation):
		response.BadRequest(w, "validation failed", err)
	case customError.IsCode(err, customError.ErrCodeSupporterNotFound),
		customError.IsCode(err, customError.ErrCodeEventNotFound):
		response.NotFound(w, err.Error())
	case customError.IsCode(err, customError.ErrCodeStorageRead),
		customError.IsCode(err, customError.ErrCodeStorageWrite):
		response.ServiceUnavailable(w, "storage unavailable", err)
	default:
		response.InternalServerError(w, "unexpected error", err)
	}
}
