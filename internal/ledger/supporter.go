package ledger

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/formiguinhas/ledger/internal/config"
	"github.com/formiguinhas/ledger/internal/domain"
	"github.com/formiguinhas/ledger/internal/store"
	customError "github.com/formiguinhas/ledger/pkg/errors"
	"github.com/formiguinhas/ledger/pkg/utils"
)

// SupporterLedger owns the supporter collection and its persistence binding.
// Every mutation rewrites the full snapshot under the "supporters" key; the
// in-memory collection only advances after the write succeeds.
type SupporterLedger struct {
	mu         sync.Mutex
	store      store.Store
	logger     *zap.Logger
	dues       decimal.Decimal
	monthNow   func() string
	supporters []domain.Supporter
}

func NewSupporterLedger(st store.Store, cfg *config.Config, logger *zap.Logger) *SupporterLedger {
	return &SupporterLedger{
		store:    st,
		logger:   logger,
		dues:     cfg.GetDuesAmount(),
		monthNow: utils.CurrentMonth,
	}
}

// Load reads the persisted snapshot into memory. A missing key yields an
// empty collection; an undecodable snapshot also yields an empty collection
// and surfaces a storage read error so the caller can notify the user.
func (l *SupporterLedger) Load(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	raw, ok, err := l.store.Get(ctx, store.KeySupporters)
	if err != nil {
		l.supporters = nil
		return customError.WrapStorageRead(store.KeySupporters, err)
	}
	if !ok {
		l.supporters = nil
		return nil
	}

	var supporters []domain.Supporter
	if err := json.Unmarshal([]byte(raw), &supporters); err != nil {
		l.supporters = nil
		return customError.WrapStorageRead(store.KeySupporters, err)
	}

	l.supporters = supporters
	return nil
}

// Add validates the name, creates the supporter with a Pending status and a
// single history entry for the creation month, and persists.
func (l *SupporterLedger) Add(ctx context.Context, name string) (*domain.Supporter, error) {
	if utils.IsBlank(name) {
		return nil, customError.WrapEmptyName("supporter name")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	supporter := domain.Supporter{
		ID:            uuid.NewString(),
		Name:          name,
		PaymentStatus: domain.PaymentStatusPending,
		PaymentHistory: []domain.PaymentRecord{
			{Month: l.monthNow(), Status: domain.PaymentStatusPending},
		},
	}

	next := append(cloneSupporters(l.supporters), supporter)
	if err := l.persist(ctx, next); err != nil {
		return nil, err
	}

	l.logger.Info("supporter added", zap.String("id", supporter.ID))
	created := supporter.Clone()
	return &created, nil
}

// RegisterPayment marks the supporter paid for the current cycle and appends
// a history entry. Calling it twice in one month appends twice; history is
// append-only and never deduplicated.
func (l *SupporterLedger) RegisterPayment(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	next := cloneSupporters(l.supporters)
	idx := findSupporter(next, id)
	if idx < 0 {
		return customError.WrapSupporterNotFound(id)
	}

	next[idx].PaymentStatus = domain.PaymentStatusPaid
	next[idx].PaymentHistory = append(next[idx].PaymentHistory, domain.PaymentRecord{
		Month:  l.monthNow(),
		Status: domain.PaymentStatusPaid,
	})

	return l.persist(ctx, next)
}

// RemovePayment flips the current status back to Pending. It deliberately
// leaves the history untouched; the entry written by RegisterPayment stays
// as the record that a payment was registered that month.
func (l *SupporterLedger) RemovePayment(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	next := cloneSupporters(l.supporters)
	idx := findSupporter(next, id)
	if idx < 0 {
		return customError.WrapSupporterNotFound(id)
	}

	next[idx].PaymentStatus = domain.PaymentStatusPending

	return l.persist(ctx, next)
}

// ResetForNewMonth sets every supporter back to Pending for the new cycle.
// Histories are untouched; already-pending supporters stay pending.
func (l *SupporterLedger) ResetForNewMonth(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	next := cloneSupporters(l.supporters)
	for i := range next {
		next[i].PaymentStatus = domain.PaymentStatusPending
	}

	if err := l.persist(ctx, next); err != nil {
		return err
	}

	l.logger.Info("payment statuses reset for new month", zap.Int("supporters", len(next)))
	return nil
}

// Delete removes the supporter by id. Deleting an unknown id is a no-op.
func (l *SupporterLedger) Delete(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := findSupporter(l.supporters, id)
	if idx < 0 {
		return nil
	}

	next := cloneSupporters(l.supporters)
	next = append(next[:idx], next[idx+1:]...)

	return l.persist(ctx, next)
}

// List returns a copy of the full collection.
func (l *SupporterLedger) List() []domain.Supporter {
	l.mu.Lock()
	defer l.mu.Unlock()
	return cloneSupporters(l.supporters)
}

// Search filters the collection by case-insensitive substring match on name.
func (l *SupporterLedger) Search(query string) []domain.Supporter {
	l.mu.Lock()
	defer l.mu.Unlock()

	needle := strings.ToLower(query)
	matches := make([]domain.Supporter, 0, len(l.supporters))
	for _, s := range l.supporters {
		if strings.Contains(strings.ToLower(s.Name), needle) {
			matches = append(matches, s.Clone())
		}
	}
	return matches
}

// Summary computes the aggregate counts and the collected value at the
// configured dues amount.
func (l *SupporterLedger) Summary() domain.SupporterSummary {
	l.mu.Lock()
	defer l.mu.Unlock()
	return domain.Summarize(l.supporters, l.dues)
}

// persist writes the candidate collection and swaps it in only on success,
// so a failed write leaves memory at the last durable snapshot.
func (l *SupporterLedger) persist(ctx context.Context, next []domain.Supporter) error {
	encoded, err := json.Marshal(next)
	if err != nil {
		return customError.WrapStorageWrite(store.KeySupporters, err)
	}
	if err := l.store.Set(ctx, store.KeySupporters, string(encoded)); err != nil {
		l.logger.Error("supporter snapshot write failed", zap.Error(err))
		return customError.WrapStorageWrite(store.KeySupporters, err)
	}
	l.supporters = next
	return nil
}

func findSupporter(supporters []domain.Supporter, id string) int {
	for i, s := range supporters {
		if s.ID == id {
			return i
		}
	}
	return -1
}

func cloneSupporters(supporters []domain.Supporter) []domain.Supporter {
	out := make([]domain.Supporter, len(supporters))
	for i, s := range supporters {
		out[i] = s.Clone()
	}
	return out
}
