package currency

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatClean(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		currency string
		want     string
	}{
		{"integral drops fraction", "1234", "USD", "$1,234"},
		{"fractional keeps two digits", "1234.5", "USD", "$1,234.50"},
		{"negative sign precedes symbol", "-500", "PHP", "-₱500"},
		{"small amount", "7.25", "EUR", "€7.25"},
		{"unknown code falls back to prefix", "12", "ABC", "ABC 12"},
		{"grouping over a million", "1234567.89", "USD", "$1,234,567.89"},
		{"zero", "0", "USD", "$0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatClean(decimal.RequireFromString(tt.amount), tt.currency)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatCompact(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		currency string
		maxLen   int
		want     string
	}{
		{"fits within budget stays clean", "1234.5", "USD", 9, "$1,234.50"},
		{"millions abbreviate", "1500000", "USD", 9, "$1.5M"},
		{"trailing zero trimmed", "2000000", "USD", 9, "$2M"},
		{"thousands abbreviate when over budget", "123456", "USD", 6, "$123.5K"},
		{"billions", "7250000000", "PHP", 9, "₱7.3B"},
		{"negative preserved", "-1500000", "USD", 9, "-$1.5M"},
		{"zero maxLen uses default budget", "1500000", "USD", 0, "$1.5M"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatCompact(decimal.RequireFromString(tt.amount), tt.currency, tt.maxLen)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGroupThousands(t *testing.T) {
	assert.Equal(t, "1", groupThousands("1"))
	assert.Equal(t, "999", groupThousands("999"))
	assert.Equal(t, "1,000", groupThousands("1000"))
	assert.Equal(t, "12,345,678", groupThousands("12345678"))
}
