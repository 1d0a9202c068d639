package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, StoreBackendBolt, cfg.Store.Backend)
	assert.Equal(t, "data/ledger.db", cfg.Store.Path)
	assert.Equal(t, "50", cfg.Ledger.DuesAmount)
	assert.Equal(t, "0 0 0 1 * *", cfg.Scheduler.ResetCron)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.True(t, cfg.GetDuesAmount().Equal(decimal.NewFromInt(50)))
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DUES_AMOUNT", "75.5")
	t.Setenv("STORE_BACKEND", StoreBackendMemory)
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, StoreBackendMemory, cfg.Store.Backend)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.GetDuesAmount().Equal(decimal.NewFromFloat(75.5)))
}

func TestLoad_RejectsBadValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "unknown backend", key: "STORE_BACKEND", value: "cassandra"},
		{name: "unparseable dues", key: "DUES_AMOUNT", value: "fifty"},
		{name: "negative dues", key: "DUES_AMOUNT", value: "-50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := Load()

			assert.Error(t, err)
		})
	}
}
