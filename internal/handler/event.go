package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/formiguinhas/ledger/internal/domain"
	"github.com/formiguinhas/ledger/internal/ledger"
	"github.com/formiguinhas/ledger/pkg/response"
)

type EventHandler struct {
	ledger    *ledger.EventLedger
	validator *validator.Validate
}

func NewEventHandler(l *ledger.EventLedger) *EventHandler {
	return &EventHandler{
		ledger:    l,
		validator: validator.New(),
	}
}

// List returns every event together with its derived totals.
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	events := h.ledger.List()

	out := make([]domain.EventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, domain.EventResponse{Event: e, Totals: e.Totals()})
	}

	response.Success(w, out)
}

// Create builds a draft from the submitted form values and commits it as a
// new event.
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeSaveRequest(w, r)
	if !ok {
		return
	}

	h.commitDraft(w, r, h.ledger.BeginDraft(nil), req)
}

// Update re-opens an existing event as a draft, replaces its fields and
// items with the submitted values, and commits in place.
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	existing, err := h.ledger.Get(id)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	req, ok := h.decodeSaveRequest(w, r)
	if !ok {
		return
	}

	draft := h.ledger.BeginDraft(existing)
	// The payload carries the full item list; start the draft from a clean
	// slate and re-add each submitted item.
	for _, item := range draft.Items {
		draft = draft.RemoveItem(item.ID)
	}

	h.commitDraft(w, r, draft, req)
}

// Delete removes an event; unknown ids are a no-op.
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.ledger.Delete(r.Context(), id); err != nil {
		writeLedgerError(w, err)
		return
	}

	response.Success(w, map[string]string{"id": id, "deleted": "true"})
}

// Totals returns only the derived values for one event.
func (h *EventHandler) Totals(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	event, err := h.ledger.Get(id)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	response.Success(w, event.Totals())
}

func (h *EventHandler) decodeSaveRequest(w http.ResponseWriter, r *http.Request) (*domain.SaveEventRequest, bool) {
	var req domain.SaveEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body", err)
		return nil, false
	}

	if err := h.validator.Struct(&req); err != nil {
		response.BadRequest(w, "invalid request", err)
		return nil, false
	}

	return &req, true
}

func (h *EventHandler) commitDraft(w http.ResponseWriter, r *http.Request, draft ledger.Draft, req *domain.SaveEventRequest) {
	draft.Name = req.Name
	draft.Date = req.Date
	draft.AmountSpent = req.AmountSpent

	var err error
	for _, item := range req.Items {
		draft, err = draft.AddItemWithID(item.ID, item.Name, item.Amount)
		if err != nil {
			writeLedgerError(w, err)
			return
		}
	}

	event, err := h.ledger.Commit(r.Context(), draft)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	status := http.StatusOK
	if !draft.IsUpdate() {
		status = http.StatusCreated
	}
	response.JSON(w, status, domain.EventResponse{Event: *event, Totals: event.Totals()})
}
