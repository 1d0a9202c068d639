package domain

import (
	"github.com/shopspring/decimal"
)

const (
	PaymentStatusPending = "Pending"
	PaymentStatusPaid    = "Paid"
)

// PaymentRecord is one entry of a supporter's monthly payment history
type PaymentRecord struct {
	Month  string `json:"month"`
	Status string `json:"status"`
}

// Supporter represents a recurring monthly supporter
type Supporter struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	PaymentStatus  string          `json:"paymentStatus"`
	PaymentHistory []PaymentRecord `json:"paymentHistory"`
}

// Clone returns a deep copy so callers cannot mutate ledger-owned state.
func (s Supporter) Clone() Supporter {
	out := s
	out.PaymentHistory = append([]PaymentRecord(nil), s.PaymentHistory...)
	return out
}

// SupporterSummary holds the derived aggregate values over the whole collection
type SupporterSummary struct {
	Total      int             `json:"total"`
	Paid       int             `json:"paid"`
	TotalValue decimal.Decimal `json:"totalValue"`
}

// Summarize computes the aggregate counts and collected value for a collection.
// The collected value is paid count times the fixed per-cycle dues amount.
func Summarize(supporters []Supporter, dues decimal.Decimal) SupporterSummary {
	summary := SupporterSummary{Total: len(supporters)}
	for _, s := range supporters {
		if s.PaymentStatus == PaymentStatusPaid {
			summary.Paid++
		}
	}
	summary.TotalValue = dues.Mul(decimal.NewFromInt(int64(summary.Paid)))
	return summary
}

// DTOs for requests and responses

type CreateSupporterRequest struct {
	Name string `json:"name" validate:"required"`
}

type SupporterListResponse struct {
	Supporters []Supporter      `json:"supporters"`
	Summary    SupporterSummary `json:"summary"`
}
