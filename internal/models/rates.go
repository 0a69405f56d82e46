package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateTable maps a currency code to its rate relative to USD. USD is always 1.
type RateTable map[string]decimal.Decimal

// Rate returns the USD-relative rate for a currency code. Unknown codes
// return 1 (identity): a deliberate leniency so conversion never fails on an
// unrecognized code.
func (t RateTable) Rate(currency string) decimal.Decimal {
	if r, ok := t[currency]; ok && !r.IsZero() {
		return r
	}
	return decimal.NewFromInt(1)
}

// DefaultRateTable returns the built-in fallback rates used when the
// provider is unreachable and no cached table exists.
func DefaultRateTable() RateTable {
	return RateTable{
		"USD": decimal.NewFromInt(1),
		"PHP": decimal.NewFromInt(56),
		"EUR": decimal.RequireFromString("0.92"),
		"GBP": decimal.RequireFromString("0.79"),
		"JPY": decimal.NewFromInt(150),
	}
}

// RateCache holds a fetched rate table with its freshness metadata. It is an
// explicit, injectable value owned by the currency service rather than
// process-wide state.
type RateCache struct {
	Table     RateTable
	FetchedAt time.Time
	TTL       time.Duration
}

// Stale returns true when the cache has no table or its TTL has elapsed.
func (c *RateCache) Stale(now time.Time) bool {
	if len(c.Table) == 0 {
		return true
	}
	return now.Sub(c.FetchedAt) > c.TTL
}

// CurrencySymbols maps supported currency codes to display symbols.
// Codes outside this map render with the code itself as prefix.
var CurrencySymbols = map[string]string{
	"USD": "$",
	"PHP": "₱",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
}
