// Package dashboard derives period-bucketed income/expense/profit statistics
// from the current transaction and wallet collections. It is a read-only
// consumer: nothing here mutates the ledger.
package dashboard

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/centsible/centsible/internal/common"
	"github.com/centsible/centsible/internal/interfaces"
	"github.com/centsible/centsible/internal/models"
)

// Compile-time interface check
var _ interfaces.DashboardService = (*Service)(nil)

// Service implements DashboardService.
type Service struct {
	storage     interfaces.StorageManager
	currency    interfaces.CurrencyService
	defaultBase string
	logger      *common.Logger
}

// NewService creates a new dashboard service. defaultBase is the base
// currency used when the request context carries none.
func NewService(storage interfaces.StorageManager, currency interfaces.CurrencyService, defaultBase string, logger *common.Logger) *Service {
	return &Service{
		storage:     storage,
		currency:    currency,
		defaultBase: defaultBase,
		logger:      logger,
	}
}

var oneHundred = decimal.NewFromInt(100)

// PercentChange computes the relative change from prev to current in
// percent. A zero prior period yields 100 when anything happened this period
// and 0 otherwise, so a first month of activity reads as +100%, not a
// division error.
func PercentChange(current, prev decimal.Decimal) decimal.Decimal {
	if prev.IsZero() {
		if current.IsPositive() {
			return oneHundred
		}
		return decimal.Zero
	}
	return current.Sub(prev).Div(prev).Mul(oneHundred)
}

// Periods returns the current window for the timeframe anchored at now, and
// the equivalent immediately-preceding window. Windows are calendar-aligned;
// weeks start on Monday. Bounds are inclusive: End is the last nanosecond of
// the window.
func Periods(tf models.Timeframe, now time.Time) (current, prev models.Period) {
	day := models.Midnight(now)
	switch tf {
	case models.TimeframeDaily:
		current = models.Period{Start: day, End: day.AddDate(0, 0, 1).Add(-time.Nanosecond)}
		prev = models.Period{Start: day.AddDate(0, 0, -1), End: day.Add(-time.Nanosecond)}
	case models.TimeframeWeekly:
		weekday := int(day.Weekday())
		if weekday == 0 {
			weekday = 7 // Sunday closes the week
		}
		start := day.AddDate(0, 0, -(weekday - 1))
		current = models.Period{Start: start, End: start.AddDate(0, 0, 7).Add(-time.Nanosecond)}
		prev = models.Period{Start: start.AddDate(0, 0, -7), End: start.Add(-time.Nanosecond)}
	case models.TimeframeYearly:
		start := time.Date(day.Year(), time.January, 1, 0, 0, 0, 0, day.Location())
		current = models.Period{Start: start, End: start.AddDate(1, 0, 0).Add(-time.Nanosecond)}
		prev = models.Period{Start: start.AddDate(-1, 0, 0), End: start.Add(-time.Nanosecond)}
	default: // monthly
		start := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
		current = models.Period{Start: start, End: start.AddDate(0, 1, 0).Add(-time.Nanosecond)}
		prev = models.Period{Start: start.AddDate(0, -1, 0), End: start.Add(-time.Nanosecond)}
	}
	return current, prev
}

// total sums |amount| converted into base over transactions matching the
// flow within the window.
func (s *Service) total(txs []*models.Transaction, flow models.Flow, window models.Period, base string, rates models.RateTable) decimal.Decimal {
	sum := decimal.Zero
	for _, tx := range txs {
		if tx.Flow != flow || !window.Contains(tx.Date) {
			continue
		}
		sum = sum.Add(s.currency.Convert(tx.Amount, tx.Currency, base, rates).Abs())
	}
	return sum
}

// Stats computes the dashboard snapshot for one timeframe. TotalBalance is a
// live sum over all wallets, not a time-windowed figure.
func (s *Service) Stats(ctx context.Context, timeframe models.Timeframe, now time.Time) (*models.DashboardStats, error) {
	userID := common.ResolveUserID(ctx)
	base := common.ResolveBaseCurrency(ctx, s.defaultBase)
	rates := s.currency.Rates(ctx)

	wallets, err := s.storage.Ledger().ListWallets(ctx, userID)
	if err != nil {
		return nil, err
	}
	txs, err := s.storage.Ledger().ListTransactions(ctx, userID, interfaces.QueryOptions{})
	if err != nil {
		return nil, err
	}

	current, prev := Periods(timeframe, now)

	income := s.total(txs, models.FlowIncome, current, base, rates)
	expenses := s.total(txs, models.FlowExpense, current, base, rates)
	prevIncome := s.total(txs, models.FlowIncome, prev, base, rates)
	prevExpenses := s.total(txs, models.FlowExpense, prev, base, rates)

	totalBalance := decimal.Zero
	for _, w := range wallets {
		totalBalance = totalBalance.Add(s.currency.Convert(w.Balance, w.Currency, base, rates))
	}

	return &models.DashboardStats{
		Timeframe:      timeframe,
		BaseCurrency:   base,
		TotalBalance:   totalBalance,
		Income:         income,
		Expenses:       expenses,
		Profit:         income.Sub(expenses),
		IncomeChange:   PercentChange(income, prevIncome),
		ExpensesChange: PercentChange(expenses, prevExpenses),
		// Net flow of current vs prior period as a balance trend proxy.
		BalanceChange: PercentChange(income.Sub(expenses), prevIncome.Sub(prevExpenses)),
	}, nil
}
