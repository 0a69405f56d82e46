// Package models defines the domain records for Centsible: wallets,
// transactions, bills, categories, and exchange rates.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wallet is a currency-denominated account holding a current balance.
// Balance is the authoritative snapshot in Currency; it is mutated only
// through atomic paired updates with a Transaction write, never derived by
// replaying history.
type Wallet struct {
	ID        string          `json:"id" badgerhold:"key"`
	UserID    string          `json:"user_id" badgerhold:"index"`
	Name      string          `json:"name"`
	Balance   decimal.Decimal `json:"balance"`
	Currency  string          `json:"currency"`
	Color     string          `json:"color,omitempty"`
	Icon      string          `json:"icon,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
