package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/formiguinhas/ledger/internal/config"
	"github.com/formiguinhas/ledger/internal/domain"
	"github.com/formiguinhas/ledger/internal/store"
	customError "github.com/formiguinhas/ledger/pkg/errors"
	"github.com/formiguinhas/ledger/tests/mocks"
	"go.uber.org/zap"
)

func newTestSupporterLedger(st store.Store) *SupporterLedger {
	cfg := &config.Config{Ledger: config.LedgerConfig{DuesAmount: "50"}}
	l := NewSupporterLedger(st, cfg, zap.NewNop())
	l.monthNow = func() string { return "2024-06" }
	return l
}

func TestAdd_CreatesPendingWithHistory(t *testing.T) {
	l := newTestSupporterLedger(store.NewMemory())

	supporter, err := l.Add(context.Background(), "Ana")

	require.NoError(t, err)
	assert.NotEmpty(t, supporter.ID)
	assert.Equal(t, "Ana", supporter.Name)
	assert.Equal(t, domain.PaymentStatusPending, supporter.PaymentStatus)
	require.Len(t, supporter.PaymentHistory, 1)
	assert.Equal(t, "2024-06", supporter.PaymentHistory[0].Month)
	assert.Equal(t, domain.PaymentStatusPending, supporter.PaymentHistory[0].Status)
}

func TestAdd_RejectsBlankName(t *testing.T) {
	l := newTestSupporterLedger(store.NewMemory())

	for _, name := range []string{"", "   ", "\t"} {
		_, err := l.Add(context.Background(), name)
		assert.True(t, customError.IsCode(err, customError.ErrCodeValidation))
	}

	assert.Empty(t, l.List())
}

func TestRegisterPayment_AppendsHistory(t *testing.T) {
	l := newTestSupporterLedger(store.NewMemory())
	supporter, err := l.Add(context.Background(), "Ana")
	require.NoError(t, err)

	err = l.RegisterPayment(context.Background(), supporter.ID)

	require.NoError(t, err)
	got := l.List()[0]
	assert.Equal(t, domain.PaymentStatusPaid, got.PaymentStatus)
	require.Len(t, got.PaymentHistory, 2)
	assert.Equal(t, "2024-06", got.PaymentHistory[1].Month)
	assert.Equal(t, domain.PaymentStatusPaid, got.PaymentHistory[1].Status)
}

func TestRegisterPayment_TwiceInSameMonthDuplicatesEntry(t *testing.T) {
	l := newTestSupporterLedger(store.NewMemory())
	supporter, err := l.Add(context.Background(), "Ana")
	require.NoError(t, err)

	require.NoError(t, l.RegisterPayment(context.Background(), supporter.ID))
	require.NoError(t, l.RegisterPayment(context.Background(), supporter.ID))

	// History is append-only and never deduplicated.
	assert.Len(t, l.List()[0].PaymentHistory, 3)
}

func TestRegisterPayment_UnknownID(t *testing.T) {
	l := newTestSupporterLedger(store.NewMemory())

	err := l.RegisterPayment(context.Background(), "missing")

	assert.True(t, customError.IsCode(err, customError.ErrCodeSupporterNotFound))
}

func TestRemovePayment_LeavesHistoryUntouched(t *testing.T) {
	l := newTestSupporterLedger(store.NewMemory())
	supporter, err := l.Add(context.Background(), "Ana")
	require.NoError(t, err)
	require.NoError(t, l.RegisterPayment(context.Background(), supporter.ID))

	err = l.RemovePayment(context.Background(), supporter.ID)

	require.NoError(t, err)
	got := l.List()[0]
	assert.Equal(t, domain.PaymentStatusPending, got.PaymentStatus)
	// Removal only flips the current status; the registration entry stays.
	assert.Len(t, got.PaymentHistory, 2)
}

func TestRemovePayment_UnknownID(t *testing.T) {
	l := newTestSupporterLedger(store.NewMemory())

	err := l.RemovePayment(context.Background(), "missing")

	assert.True(t, customError.IsCode(err, customError.ErrCodeSupporterNotFound))
}

func TestResetForNewMonth_IsIdempotentOnStatus(t *testing.T) {
	l := newTestSupporterLedger(store.NewMemory())
	ana, err := l.Add(context.Background(), "Ana")
	require.NoError(t, err)
	_, err = l.Add(context.Background(), "Bia")
	require.NoError(t, err)
	require.NoError(t, l.RegisterPayment(context.Background(), ana.ID))

	require.NoError(t, l.ResetForNewMonth(context.Background()))
	afterOnce := l.List()

	require.NoError(t, l.ResetForNewMonth(context.Background()))
	afterTwice := l.List()

	for _, s := range afterOnce {
		assert.Equal(t, domain.PaymentStatusPending, s.PaymentStatus)
	}
	assert.Equal(t, afterOnce, afterTwice)

	// Histories are never mutated by the reset.
	assert.Len(t, afterTwice[0].PaymentHistory, 2)
	assert.Len(t, afterTwice[1].PaymentHistory, 1)
}

func TestDelete_RemovesSupporter(t *testing.T) {
	l := newTestSupporterLedger(store.NewMemory())
	ana, err := l.Add(context.Background(), "Ana")
	require.NoError(t, err)
	bia, err := l.Add(context.Background(), "Bia")
	require.NoError(t, err)

	require.NoError(t, l.Delete(context.Background(), ana.ID))

	remaining := l.List()
	require.Len(t, remaining, 1)
	assert.Equal(t, bia.ID, remaining[0].ID)
}

func TestDelete_UnknownIDIsNoOp(t *testing.T) {
	l := newTestSupporterLedger(store.NewMemory())
	_, err := l.Add(context.Background(), "Ana")
	require.NoError(t, err)

	before := l.List()
	require.NoError(t, l.Delete(context.Background(), "missing"))

	assert.Equal(t, before, l.List())
}

func TestSearch_CaseInsensitiveSubstring(t *testing.T) {
	l := newTestSupporterLedger(store.NewMemory())
	for _, name := range []string{"Ana Maria", "Mariana", "Bruno"} {
		_, err := l.Add(context.Background(), name)
		require.NoError(t, err)
	}

	matches := l.Search("MARIA")

	require.Len(t, matches, 2)
	assert.Equal(t, "Ana Maria", matches[0].Name)
	assert.Equal(t, "Mariana", matches[1].Name)

	assert.Len(t, l.Search("bruno"), 1)
	assert.Empty(t, l.Search("carla"))
}

func TestSummary_CountsAndCollectedValue(t *testing.T) {
	l := newTestSupporterLedger(store.NewMemory())
	ana, err := l.Add(context.Background(), "Ana")
	require.NoError(t, err)
	_, err = l.Add(context.Background(), "Bia")
	require.NoError(t, err)
	_, err = l.Add(context.Background(), "Caio")
	require.NoError(t, err)
	require.NoError(t, l.RegisterPayment(context.Background(), ana.ID))

	summary := l.Summary()

	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 1, summary.Paid)
	assert.True(t, summary.TotalValue.Equal(decimal.NewFromInt(50)),
		"Expected 50, but got %v", summary.TotalValue)
}

func TestLoad_MissingKeyYieldsEmptyCollection(t *testing.T) {
	l := newTestSupporterLedger(store.NewMemory())

	err := l.Load(context.Background())

	assert.NoError(t, err)
	assert.Empty(t, l.List())
}

func TestLoad_CorruptSnapshot(t *testing.T) {
	st := store.NewMemory()
	require.NoError(t, st.Set(context.Background(), store.KeySupporters, "{not json"))
	l := newTestSupporterLedger(st)

	err := l.Load(context.Background())

	assert.True(t, customError.IsCode(err, customError.ErrCodeStorageRead))
	assert.Empty(t, l.List())
}

func TestAdd_WriteFailureLeavesCollectionUnchanged(t *testing.T) {
	mockStore := &mocks.MockStore{}
	mockStore.On("Set", mock.Anything, store.KeySupporters, mock.Anything).
		Return(errors.New("disk full"))
	l := newTestSupporterLedger(mockStore)

	_, err := l.Add(context.Background(), "Ana")

	assert.True(t, customError.IsCode(err, customError.ErrCodeStorageWrite))
	assert.Empty(t, l.List())
	mockStore.AssertExpectations(t)
}

func TestSupporters_RoundTrip(t *testing.T) {
	st := store.NewMemory()
	l := newTestSupporterLedger(st)
	ana, err := l.Add(context.Background(), "Ana")
	require.NoError(t, err)
	bia, err := l.Add(context.Background(), "Bia")
	require.NoError(t, err)
	require.NoError(t, l.RegisterPayment(context.Background(), ana.ID))
	require.NoError(t, l.RegisterPayment(context.Background(), bia.ID))

	reloaded := newTestSupporterLedger(st)
	require.NoError(t, reloaded.Load(context.Background()))

	assert.Equal(t, l.List(), reloaded.List())
}
