package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Timeframe selects the dashboard aggregation window.
type Timeframe string

const (
	TimeframeDaily   Timeframe = "daily"
	TimeframeWeekly  Timeframe = "weekly"
	TimeframeMonthly Timeframe = "monthly"
	TimeframeYearly  Timeframe = "yearly"
)

// validTimeframes lists all accepted dashboard timeframes.
var validTimeframes = map[Timeframe]bool{
	TimeframeDaily:   true,
	TimeframeWeekly:  true,
	TimeframeMonthly: true,
	TimeframeYearly:  true,
}

// ValidTimeframe returns true if tf is a valid timeframe.
func ValidTimeframe(tf Timeframe) bool {
	return validTimeframes[tf]
}

// Period is an inclusive date window.
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls within the period, bounds inclusive.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && !t.After(p.End)
}

// DashboardStats is the rolled-up view of a user's finances for one
// timeframe, expressed in the base currency. BalanceChange compares net flow
// (income - expenses) of the current period against the prior one; it is a
// trend proxy, not a historical balance delta.
type DashboardStats struct {
	Timeframe      Timeframe       `json:"timeframe"`
	BaseCurrency   string          `json:"base_currency"`
	TotalBalance   decimal.Decimal `json:"total_balance"`
	Income         decimal.Decimal `json:"income"`
	Expenses       decimal.Decimal `json:"expenses"`
	Profit         decimal.Decimal `json:"profit"`
	IncomeChange   decimal.Decimal `json:"income_change"`
	ExpensesChange decimal.Decimal `json:"expenses_change"`
	BalanceChange  decimal.Decimal `json:"balance_change"`
}
