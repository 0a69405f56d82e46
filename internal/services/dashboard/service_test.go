package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/centsible/centsible/internal/common"
	"github.com/centsible/centsible/internal/interfaces"
	"github.com/centsible/centsible/internal/models"
	"github.com/centsible/centsible/internal/services/currency"
	"github.com/centsible/centsible/internal/storage"
)

type stubRatesClient struct{}

func (stubRatesClient) GetAllRates(_ context.Context) (models.RateTable, error) {
	return models.RateTable{
		"USD": decimal.NewFromInt(1),
		"PHP": decimal.NewFromInt(56),
	}, nil
}

func (stubRatesClient) GetSupportedCurrencies(_ context.Context) (map[string]string, error) {
	return map[string]string{"USD": "US Dollar"}, nil
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPercentChange(t *testing.T) {
	tests := []struct {
		name    string
		current int64
		prev    int64
		want    string
	}{
		{"zero prior with activity reads plus hundred", 50, 0, "100"},
		{"zero prior without activity reads zero", 0, 0, "0"},
		{"growth", 150, 100, "50"},
		{"decline", 50, 100, "-50"},
		{"doubling", 200, 100, "100"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PercentChange(decimal.NewFromInt(tt.current), decimal.NewFromInt(tt.prev))
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s, want %s", got, tt.want)
		})
	}
}

func TestPeriodsDaily(t *testing.T) {
	now := time.Date(2026, time.August, 26, 15, 30, 0, 0, time.UTC)
	current, prev := Periods(models.TimeframeDaily, now)

	assert.True(t, current.Start.Equal(day(2026, time.August, 26)))
	assert.True(t, current.Contains(time.Date(2026, time.August, 26, 23, 59, 59, 0, time.UTC)))
	assert.False(t, current.Contains(day(2026, time.August, 27)))
	assert.True(t, prev.Start.Equal(day(2026, time.August, 25)))
	assert.True(t, prev.End.Before(current.Start))
}

func TestPeriodsWeeklyStartsMonday(t *testing.T) {
	// Wednesday 2026-08-26: the week runs Monday 24th through Sunday 30th.
	wednesday := time.Date(2026, time.August, 26, 10, 0, 0, 0, time.UTC)
	current, prev := Periods(models.TimeframeWeekly, wednesday)

	assert.True(t, current.Start.Equal(day(2026, time.August, 24)))
	assert.True(t, current.Contains(time.Date(2026, time.August, 30, 23, 0, 0, 0, time.UTC)), "Sunday closes the week")
	assert.False(t, current.Contains(day(2026, time.August, 31)))
	assert.True(t, prev.Start.Equal(day(2026, time.August, 17)))

	// A Sunday anchors to the Monday before it, not the Monday after.
	sunday := time.Date(2026, time.August, 30, 10, 0, 0, 0, time.UTC)
	current, _ = Periods(models.TimeframeWeekly, sunday)
	assert.True(t, current.Start.Equal(day(2026, time.August, 24)))
}

func TestPeriodsMonthlyAndYearly(t *testing.T) {
	now := time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)

	current, prev := Periods(models.TimeframeMonthly, now)
	assert.True(t, current.Start.Equal(day(2026, time.August, 1)))
	assert.True(t, current.Contains(time.Date(2026, time.August, 31, 23, 59, 59, 0, time.UTC)))
	assert.True(t, prev.Start.Equal(day(2026, time.July, 1)))

	current, prev = Periods(models.TimeframeYearly, now)
	assert.True(t, current.Start.Equal(day(2026, time.January, 1)))
	assert.True(t, prev.Start.Equal(day(2025, time.January, 1)))
	assert.False(t, current.Contains(day(2027, time.January, 1)))
}

func newTestService(t *testing.T) (*Service, interfaces.StorageManager) {
	t.Helper()
	logger := common.NewSilentLogger()

	cfg := common.NewDefaultConfig()
	cfg.Storage.Path = t.TempDir()
	manager, err := storage.NewManager(logger, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { manager.Close() })

	currencySvc := currency.NewService(stubRatesClient{}, time.Hour, logger)
	return NewService(manager, currencySvc, "USD", logger), manager
}

func seedTransaction(t *testing.T, manager interfaces.StorageManager, id string, flow models.Flow, amount int64, curr string, date time.Time) {
	t.Helper()
	signed := decimal.NewFromInt(amount)
	if flow == models.FlowExpense {
		signed = signed.Neg()
	}
	require.NoError(t, manager.Ledger().SaveTransaction(context.Background(), &models.Transaction{
		ID: id, UserID: "default", Flow: flow, Currency: curr,
		Title: id, Amount: signed, Date: date,
	}))
}

func TestStatsMonthly(t *testing.T) {
	svc, manager := newTestService(t)
	ctx := context.Background()
	now := time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)

	require.NoError(t, manager.Ledger().SaveWallet(ctx, &models.Wallet{
		ID: "w1", UserID: "default", Name: "Main", Currency: "USD",
		Balance: decimal.NewFromInt(100),
	}))

	seedTransaction(t, manager, "income-cur", models.FlowIncome, 200, "USD", day(2026, time.August, 10))
	seedTransaction(t, manager, "expense-cur", models.FlowExpense, 50, "USD", day(2026, time.August, 12))
	seedTransaction(t, manager, "income-prev", models.FlowIncome, 100, "USD", day(2026, time.July, 10))
	seedTransaction(t, manager, "income-old", models.FlowIncome, 999, "USD", day(2026, time.March, 1))

	stats, err := svc.Stats(ctx, models.TimeframeMonthly, now)
	require.NoError(t, err)

	assert.Equal(t, models.TimeframeMonthly, stats.Timeframe)
	assert.Equal(t, "USD", stats.BaseCurrency)
	assert.True(t, stats.TotalBalance.Equal(decimal.NewFromInt(100)), "balance %s", stats.TotalBalance)
	assert.True(t, stats.Income.Equal(decimal.NewFromInt(200)), "income %s", stats.Income)
	assert.True(t, stats.Expenses.Equal(decimal.NewFromInt(50)), "expenses %s", stats.Expenses)
	assert.True(t, stats.Profit.Equal(decimal.NewFromInt(150)), "profit %s", stats.Profit)

	// Prior month: income 100, expenses 0.
	assert.True(t, stats.IncomeChange.Equal(decimal.NewFromInt(100)), "income change %s", stats.IncomeChange)
	assert.True(t, stats.ExpensesChange.Equal(decimal.NewFromInt(100)), "expenses change %s", stats.ExpensesChange)
	// Net flow: 150 now vs 100 then.
	assert.True(t, stats.BalanceChange.Equal(decimal.NewFromInt(50)), "balance change %s", stats.BalanceChange)
}

func TestStatsConvertsIntoBaseCurrency(t *testing.T) {
	svc, manager := newTestService(t)
	ctx := context.Background()
	now := time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)

	require.NoError(t, manager.Ledger().SaveWallet(ctx, &models.Wallet{
		ID: "w1", UserID: "default", Name: "Pesos", Currency: "PHP",
		Balance: decimal.NewFromInt(5600),
	}))
	seedTransaction(t, manager, "php-income", models.FlowIncome, 560, "PHP", day(2026, time.August, 10))

	stats, err := svc.Stats(ctx, models.TimeframeMonthly, now)
	require.NoError(t, err)

	assert.True(t, stats.TotalBalance.Equal(decimal.NewFromInt(100)), "5600 PHP is 100 USD, got %s", stats.TotalBalance)
	assert.True(t, stats.Income.Equal(decimal.NewFromInt(10)), "560 PHP is 10 USD, got %s", stats.Income)
}

func TestStatsHonorsContextBaseCurrency(t *testing.T) {
	svc, manager := newTestService(t)
	now := time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)

	ctx := common.WithUserContext(context.Background(), &common.UserContext{
		UserID:       "default",
		BaseCurrency: "PHP",
	})
	require.NoError(t, manager.Ledger().SaveWallet(ctx, &models.Wallet{
		ID: "w1", UserID: "default", Name: "Main", Currency: "USD",
		Balance: decimal.NewFromInt(10),
	}))

	stats, err := svc.Stats(ctx, models.TimeframeMonthly, now)
	require.NoError(t, err)
	assert.Equal(t, "PHP", stats.BaseCurrency)
	assert.True(t, stats.TotalBalance.Equal(decimal.NewFromInt(560)), "10 USD is 560 PHP, got %s", stats.TotalBalance)
}
