package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Flow is the directional classification of a transaction.
type Flow string

const (
	FlowIncome   Flow = "income"
	FlowExpense  Flow = "expense"
	FlowTransfer Flow = "transfer"
)

// validFlows lists all accepted transaction flows.
var validFlows = map[Flow]bool{
	FlowIncome:   true,
	FlowExpense:  true,
	FlowTransfer: true,
}

// ValidFlow returns true if f is a valid transaction flow.
func ValidFlow(f Flow) bool {
	return validFlows[f]
}

// Transaction is a single ledger entry. Amount sign encodes direction:
// negative values decrease the linked wallet's balance, positive values
// increase it, applied at creation time in the wallet's own currency after
// conversion. A transfer between wallets is two Transaction records (an
// expense leg and an income leg) linked via LinkedID.
type Transaction struct {
	ID         string          `json:"id" badgerhold:"key"`
	UserID     string          `json:"user_id" badgerhold:"index"`
	WalletID   string          `json:"wallet_id,omitempty"`
	Flow       Flow            `json:"flow"`
	CategoryID string          `json:"category_id,omitempty"`
	Currency   string          `json:"currency"`
	Title      string          `json:"title"`
	Subtitle   string          `json:"subtitle,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
	Date       time.Time       `json:"date"`
	LinkedID   string          `json:"linked_id,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// IsExpense returns true when the transaction removes money from its wallet.
func (t *Transaction) IsExpense() bool {
	return t.Amount.IsNegative()
}
