package domain

import (
	"github.com/shopspring/decimal"
)

// EventItem is one collected contribution tied to an event
type EventItem struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// Event represents a fundraising event with money spent and money collected
type Event struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Date        string          `json:"date"`
	AmountSpent decimal.Decimal `json:"amountSpent"`
	Items       []EventItem     `json:"items"`
}

// Clone returns a deep copy so callers cannot mutate ledger-owned state.
func (e Event) Clone() Event {
	out := e
	out.Items = append([]EventItem(nil), e.Items...)
	return out
}

// TotalCollected sums the amounts of all collected items.
func (e Event) TotalCollected() decimal.Decimal {
	total := decimal.Zero
	for _, item := range e.Items {
		total = total.Add(item.Amount)
	}
	return total
}

// Profit is the collected total minus the amount spent.
func (e Event) Profit() decimal.Decimal {
	return e.TotalCollected().Sub(e.AmountSpent)
}

// EventTotals holds the derived per-event values
type EventTotals struct {
	TotalCollected decimal.Decimal `json:"totalCollected"`
	Profit         decimal.Decimal `json:"profit"`
}

// Totals computes both derived values at once for presentation.
func (e Event) Totals() EventTotals {
	collected := e.TotalCollected()
	return EventTotals{
		TotalCollected: collected,
		Profit:         collected.Sub(e.AmountSpent),
	}
}

// DTOs for requests and responses

// SaveEventRequest carries the raw text-field values of the event form.
// Amounts arrive as strings and are validated by the ledger, not here.
type SaveEventRequest struct {
	Name        string                 `json:"name" validate:"required"`
	Date        string                 `json:"date" validate:"required"`
	AmountSpent string                 `json:"amountSpent" validate:"required"`
	Items       []SaveEventItemRequest `json:"items" validate:"dive"`
}

// SaveEventItemRequest carries one item of the form. The id is optional: an
// edit sends the existing items back with their ids so they stay stable, a
// newly added item sends none and gets a fresh one.
type SaveEventItemRequest struct {
	ID     string `json:"id,omitempty"`
	Name   string `json:"name" validate:"required"`
	Amount string `json:"amount" validate:"required"`
}

type EventResponse struct {
	Event  Event       `json:"event"`
	Totals EventTotals `json:"totals"`
}
