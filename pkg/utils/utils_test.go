package utils

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected decimal.Decimal
		wantErr  bool
	}{
		{
			name:     "plain integer",
			raw:      "50",
			expected: decimal.NewFromInt(50),
		},
		{
			name:     "two decimal places",
			raw:      "40.50",
			expected: decimal.NewFromFloat(40.50),
		},
		{
			name:     "surrounding whitespace",
			raw:      "  12.5 ",
			expected: decimal.NewFromFloat(12.5),
		},
		{
			name:     "zero",
			raw:      "0",
			expected: decimal.Zero,
		},
		{
			name:    "empty string",
			raw:     "",
			wantErr: true,
		},
		{
			name:    "whitespace only",
			raw:     "   ",
			wantErr: true,
		},
		{
			name:    "not a number",
			raw:     "abc",
			wantErr: true,
		},
		{
			name:    "negative",
			raw:     "-10",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseAmount(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.True(t, result.Equal(tt.expected),
				"Expected %v, but got %v", tt.expected, result)
		})
	}
}

func TestMonthOf(t *testing.T) {
	tests := []struct {
		name     string
		at       time.Time
		expected string
	}{
		{
			name:     "mid-year",
			at:       time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC),
			expected: "2024-06",
		},
		{
			name:     "single digit month is zero padded",
			at:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			expected: "2024-01",
		},
		{
			name:     "non-UTC time is normalized",
			at:       time.Date(2024, 12, 31, 23, 0, 0, 0, time.FixedZone("UTC+2", 2*60*60)),
			expected: "2024-12",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MonthOf(tt.at))
		})
	}
}

func TestIsBlank(t *testing.T) {
	assert.True(t, IsBlank(""))
	assert.True(t, IsBlank("   "))
	assert.True(t, IsBlank("\t\n"))
	assert.False(t, IsBlank("Ana"))
	assert.False(t, IsBlank(" x "))
}
