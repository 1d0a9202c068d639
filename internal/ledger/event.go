package ledger

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/formiguinhas/ledger/internal/domain"
	"github.com/formiguinhas/ledger/internal/store"
	customError "github.com/formiguinhas/ledger/pkg/errors"
	"github.com/formiguinhas/ledger/pkg/utils"
)

// Draft is an uncommitted working copy of an event being created or edited.
// Scalar fields hold the raw form text; they are parsed at commit time.
// A draft shares no state with the committed collection, so cancelling an
// edit is simply dropping the value.
type Draft struct {
	eventID     string
	Name        string
	Date        string
	AmountSpent string
	Items       []domain.EventItem
}

// IsUpdate reports whether the draft was seeded from an existing event.
func (d Draft) IsUpdate() bool {
	return d.eventID != ""
}

// AddItem validates and appends a collected item, returning the updated draft.
func (d Draft) AddItem(name, amount string) (Draft, error) {
	return d.AddItemWithID(uuid.NewString(), name, amount)
}

// AddItemWithID is AddItem with a caller-supplied id, so an edit can carry
// an event's existing items over without reassigning their ids. A blank id
// gets a fresh one; a duplicate id is rejected to keep item ids unique
// within the event.
func (d Draft) AddItemWithID(id, name, amount string) (Draft, error) {
	if utils.IsBlank(name) {
		return d, customError.WrapEmptyName("item name")
	}
	parsed, err := utils.ParseAmount(amount)
	if err != nil {
		return d, customError.WrapInvalidAmount("item amount", amount)
	}
	if utils.IsBlank(id) {
		id = uuid.NewString()
	}
	for _, item := range d.Items {
		if item.ID == id {
			return d, customError.WrapDuplicateItemID(id)
		}
	}

	next := d
	next.Items = append(append([]domain.EventItem(nil), d.Items...), domain.EventItem{
		ID:     id,
		Name:   name,
		Amount: parsed,
	})
	return next, nil
}

// RemoveItem drops the item with the given id; unknown ids are a no-op.
func (d Draft) RemoveItem(itemID string) Draft {
	next := d
	next.Items = make([]domain.EventItem, 0, len(d.Items))
	for _, item := range d.Items {
		if item.ID != itemID {
			next.Items = append(next.Items, item)
		}
	}
	return next
}

// EventLedger owns the event collection and its persistence binding under
// the "events" key. Edits go through a Draft and only touch the collection
// at commit.
type EventLedger struct {
	mu     sync.Mutex
	store  store.Store
	logger *zap.Logger
	events []domain.Event
}

func NewEventLedger(st store.Store, logger *zap.Logger) *EventLedger {
	return &EventLedger{
		store:  st,
		logger: logger,
	}
}

// Load reads the persisted snapshot into memory, with the same missing-key
// and corrupt-snapshot behavior as the supporter ledger.
func (l *EventLedger) Load(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	raw, ok, err := l.store.Get(ctx, store.KeyEvents)
	if err != nil {
		l.events = nil
		return customError.WrapStorageRead(store.KeyEvents, err)
	}
	if !ok {
		l.events = nil
		return nil
	}

	var events []domain.Event
	if err := json.Unmarshal([]byte(raw), &events); err != nil {
		l.events = nil
		return customError.WrapStorageRead(store.KeyEvents, err)
	}

	l.events = events
	return nil
}

// BeginDraft opens a draft seeded from an existing event, or with empty
// defaults when existing is nil.
func (l *EventLedger) BeginDraft(existing *domain.Event) Draft {
	if existing == nil {
		return Draft{}
	}
	copied := existing.Clone()
	return Draft{
		eventID:     copied.ID,
		Name:        copied.Name,
		Date:        copied.Date,
		AmountSpent: copied.AmountSpent.String(),
		Items:       copied.Items,
	}
}

// Commit validates the draft's scalar fields and atomically replaces or
// appends the event, then persists. The id is preserved on update and
// freshly assigned on insert.
func (l *EventLedger) Commit(ctx context.Context, draft Draft) (*domain.Event, error) {
	if utils.IsBlank(draft.Name) {
		return nil, customError.WrapIncompleteDraft("name")
	}
	if utils.IsBlank(draft.Date) {
		return nil, customError.WrapIncompleteDraft("date")
	}
	amountSpent, err := utils.ParseAmount(draft.AmountSpent)
	if err != nil {
		return nil, customError.WrapInvalidAmount("amountSpent", draft.AmountSpent)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	event := domain.Event{
		ID:          draft.eventID,
		Name:        draft.Name,
		Date:        draft.Date,
		AmountSpent: amountSpent,
		Items:       append([]domain.EventItem(nil), draft.Items...),
	}

	next := cloneEvents(l.events)
	if draft.IsUpdate() {
		idx := findEvent(next, draft.eventID)
		if idx < 0 {
			return nil, customError.WrapEventNotFound(draft.eventID)
		}
		next[idx] = event
	} else {
		event.ID = uuid.NewString()
		next = append(next, event)
	}

	if err := l.persist(ctx, next); err != nil {
		return nil, err
	}

	l.logger.Info("event committed",
		zap.String("id", event.ID),
		zap.Bool("update", draft.IsUpdate()),
	)
	committed := event.Clone()
	return &committed, nil
}

// Delete removes the event by id. Deleting an unknown id is a no-op.
func (l *EventLedger) Delete(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := findEvent(l.events, id)
	if idx < 0 {
		return nil
	}

	next := cloneEvents(l.events)
	next = append(next[:idx], next[idx+1:]...)

	return l.persist(ctx, next)
}

// List returns a copy of the full collection.
func (l *EventLedger) List() []domain.Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	return cloneEvents(l.events)
}

// Get returns a copy of a single event by id.
func (l *EventLedger) Get(id string) (*domain.Event, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := findEvent(l.events, id)
	if idx < 0 {
		return nil, customError.WrapEventNotFound(id)
	}
	event := l.events[idx].Clone()
	return &event, nil
}

func (l *EventLedger) persist(ctx context.Context, next []domain.Event) error {
	encoded, err := json.Marshal(next)
	if err != nil {
		return customError.WrapStorageWrite(store.KeyEvents, err)
	}
	if err := l.store.Set(ctx, store.KeyEvents, string(encoded)); err != nil {
		l.logger.Error("event snapshot write failed", zap.Error(err))
		return customError.WrapStorageWrite(store.KeyEvents, err)
	}
	l.events = next
	return nil
}

func findEvent(events []domain.Event, id string) int {
	for i, e := range events {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func cloneEvents(events []domain.Event) []domain.Event {
	out := make([]domain.Event, len(events))
	for i, e := range events {
		out[i] = e.Clone()
	}
	return out
}
