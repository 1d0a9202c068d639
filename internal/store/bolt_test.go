package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoltStore_GetMissingKey(t *testing.T) {
	st, err := OpenBolt(filepath.Join(t.TempDir(), "ledger.db"), "")
	require.NoError(t, err)
	defer st.Close()

	value, ok, err := st.Get(context.Background(), KeySupporters)

	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, value)
}

func TestBoltStore_SetThenGet(t *testing.T) {
	st, err := OpenBolt(filepath.Join(t.TempDir(), "ledger.db"), "")
	require.NoError(t, err)
	defer st.Close()

	require.NoError(t, st.Set(context.Background(), KeySupporters, `[{"id":"1"}]`))

	value, ok, err := st.Get(context.Background(), KeySupporters)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"1"}]`, value)
}

func TestBoltStore_SetReplacesPriorValue(t *testing.T) {
	st, err := OpenBolt(filepath.Join(t.TempDir(), "ledger.db"), "")
	require.NoError(t, err)
	defer st.Close()

	require.NoError(t, st.Set(context.Background(), KeyEvents, "old"))
	require.NoError(t, st.Set(context.Background(), KeyEvents, "new"))

	value, ok, err := st.Get(context.Background(), KeyEvents)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "new", value)
}

func TestBoltStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")

	st, err := OpenBolt(path, "snapshots")
	require.NoError(t, err)
	require.NoError(t, st.Set(context.Background(), KeySupporters, "persisted"))
	require.NoError(t, st.Close())

	reopened, err := OpenBolt(path, "snapshots")
	require.NoError(t, err)
	defer reopened.Close()

	value, ok, err := reopened.Get(context.Background(), KeySupporters)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "persisted", value)
}

func TestBoltStore_KeysAreIndependent(t *testing.T) {
	st, err := OpenBolt(filepath.Join(t.TempDir(), "ledger.db"), "")
	require.NoError(t, err)
	defer st.Close()

	require.NoError(t, st.Set(context.Background(), KeySupporters, "supporters-snapshot"))

	_, ok, err := st.Get(context.Background(), KeyEvents)
	require.NoError(t, err)
	assert.False(t, ok)
}
