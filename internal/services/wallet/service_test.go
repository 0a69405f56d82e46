package wallet

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

// stubRatesClient serves a fixed rate table so conversions are deterministic.
type stubRatesClient struct{}

func (stubRatesClient) GetAllRates(_ context.Context) (models.RateTable, error) {
	return models.RateTable{
		"USD": decimal.NewFromInt(1),
		"PHP": decimal.NewFromInt(56),
		"EUR": decimal.RequireFromString("0.92"),
	}, nil
}

func (stubRatesClient) GetSupportedCurrencies(_ context.Context) (map[string]string, error) {
	return map[string]string{"USD": "US Dollar"}, nil
}

func newTestEnv(t *testing.T) (*Service, interfaces.StorageManager) {
	t.Helper()
	logger := common.NewSilentLogger()

	cfg := common.NewDefaultConfig()
	cfg.Storage.Path = t.TempDir()
	manager, err := storage.NewManager(logger, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { manager.Close() })

	currencySvc := currency.NewService(stubRatesClient{}, time.Hour, logger)
	svc := NewService(manager, currencySvc, decimal.NewFromInt(1_000_000_000), logger)
	return svc, manager
}

func mustCreateWallet(t *testing.T, svc *Service, name, curr string, balance int64) *models.Wallet {
	t.Helper()
	w, err := svc.CreateWallet(context.Background(), &models.Wallet{Name: name, Currency: curr})
	require.NoError(t, err)
	if balance != 0 {
		w.Balance = decimal.NewFromInt(balance)
		w, err = svc.UpdateWallet(context.Background(), w)
		require.NoError(t, err)
	}
	return w
}

func TestAddIncomeUpdatesBalance(t *testing.T) {
	svc, _ := newTestEnv(t)
	ctx := context.Background()
	w := mustCreateWallet(t, svc, "Main", "USD", 0)

	tx, err := svc.AddTransaction(ctx, &models.Transaction{
		WalletID: w.ID,
		Flow:     models.FlowIncome,
		Currency: "USD",
		Title:    "Salary",
		Amount:   decimal.NewFromInt(100),
		Date:     time.Now(),
	})
	require.NoError(t, err)
	assert.True(t, tx.Amount.Equal(decimal.NewFromInt(100)))

	got, err := svc.GetWallet(ctx, w.ID)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(decimal.NewFromInt(100)), "balance %s", got.Balance)
}

func TestAddExpenseNormalizesSign(t *testing.T) {
	svc, _ := newTestEnv(t)
	ctx := context.Background()
	w := mustCreateWallet(t, svc, "Main", "USD", 100)

	// Expense submitted with a positive amount still debits.
	tx, err := svc.AddTransaction(ctx, &models.Transaction{
		WalletID: w.ID,
		Flow:     models.FlowExpense,
		Currency: "USD",
		Title:    "Groceries",
		Amount:   decimal.NewFromInt(40),
		Date:     time.Now(),
	})
	require.NoError(t, err)
	assert.True(t, tx.Amount.Equal(decimal.NewFromInt(-40)))

	got, err := svc.GetWallet(ctx, w.ID)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(decimal.NewFromInt(60)), "balance %s", got.Balance)
}

func TestInsufficientBalanceRejectedWithoutMutation(t *testing.T) {
	svc, _ := newTestEnv(t)
	ctx := context.Background()
	w := mustCreateWallet(t, svc, "Main", "USD", 50)

	_, err := svc.AddTransaction(ctx, &models.Transaction{
		WalletID: w.ID,
		Flow:     models.FlowExpense,
		Currency: "USD",
		Title:    "Too big",
		Amount:   decimal.NewFromInt(100),
		Date:     time.Now(),
	})
	require.ErrorIs(t, err, models.ErrInsufficientBalance)

	got, err := svc.GetWallet(ctx, w.ID)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(decimal.NewFromInt(50)))

	txs, err := svc.ListTransactions(ctx, interfaces.QueryOptions{})
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestCrossCurrencyTransactionConverts(t *testing.T) {
	svc, _ := newTestEnv(t)
	ctx := context.Background()
	w := mustCreateWallet(t, svc, "Pesos", "PHP", 0)

	// 10 USD into a PHP wallet credits 560 PHP.
	_, err := svc.AddTransaction(ctx, &models.Transaction{
		WalletID: w.ID,
		Flow:     models.FlowIncome,
		Currency: "USD",
		Title:    "Remittance",
		Amount:   decimal.NewFromInt(10),
		Date:     time.Now(),
	})
	require.NoError(t, err)

	got, err := svc.GetWallet(ctx, w.ID)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(decimal.NewFromInt(560)), "balance %s", got.Balance)
}

func TestDeleteTransactionReversesBalanceEffect(t *testing.T) {
	svc, _ := newTestEnv(t)
	ctx := context.Background()
	w := mustCreateWallet(t, svc, "Main", "USD", 0)

	tx, err := svc.AddTransaction(ctx, &models.Transaction{
		WalletID: w.ID,
		Flow:     models.FlowIncome,
		Currency: "USD",
		Title:    "Salary",
		Amount:   decimal.NewFromInt(100),
		Date:     time.Now(),
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTransaction(ctx, tx.ID))

	got, err := svc.GetWallet(ctx, w.ID)
	require.NoError(t, err)
	assert.True(t, got.Balance.IsZero(), "create-then-delete must conserve balance, got %s", got.Balance)

	txs, err := svc.ListTransactions(ctx, interfaces.QueryOptions{})
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestUpdateTransactionLeavesBalance(t *testing.T) {
	svc, _ := newTestEnv(t)
	ctx := context.Background()
	w := mustCreateWallet(t, svc, "Main", "USD", 0)

	tx, err := svc.AddTransaction(ctx, &models.Transaction{
		WalletID: w.ID,
		Flow:     models.FlowIncome,
		Currency: "USD",
		Title:    "Salary",
		Amount:   decimal.NewFromInt(100),
		Date:     time.Now(),
	})
	require.NoError(t, err)

	// Editing the amount rewrites the record but never re-runs the balance
	// engine; the wallet keeps reflecting the original amount.
	updated, err := svc.UpdateTransaction(ctx, tx.ID, &models.Transaction{
		Flow:   models.FlowIncome,
		Amount: decimal.NewFromInt(50),
	})
	require.NoError(t, err)
	assert.True(t, updated.Amount.Equal(decimal.NewFromInt(50)))

	got, err := svc.GetWallet(ctx, w.ID)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(decimal.NewFromInt(100)), "balance %s", got.Balance)
}

func TestTransactionWithoutWalletSkipsBalance(t *testing.T) {
	svc, _ := newTestEnv(t)
	ctx := context.Background()

	tx, err := svc.AddTransaction(ctx, &models.Transaction{
		Flow:     models.FlowExpense,
		Currency: "USD",
		Title:    "Cash coffee",
		Amount:   decimal.NewFromInt(5),
		Date:     time.Now(),
	})
	require.NoError(t, err)
	assert.Empty(t, tx.WalletID)

	txs, err := svc.ListTransactions(ctx, interfaces.QueryOptions{})
	require.NoError(t, err)
	assert.Len(t, txs, 1)
}

func TestValidationRejectsBadTransactions(t *testing.T) {
	svc, _ := newTestEnv(t)
	ctx := context.Background()
	now := time.Now()

	cases := []models.Transaction{
		{Flow: models.FlowIncome, Currency: "USD", Amount: decimal.NewFromInt(1), Date: now},             // no title
		{Flow: "sideways", Currency: "USD", Title: "x", Amount: decimal.NewFromInt(1), Date: now},        // bad flow
		{Flow: models.FlowIncome, Currency: "USD", Title: "x", Date: now},                                // zero amount
		{Flow: models.FlowIncome, Currency: "DOLLARS", Title: "x", Amount: decimal.NewFromInt(1), Date: now}, // bad currency
		{Flow: models.FlowIncome, Currency: "USD", Title: "x", Amount: decimal.NewFromInt(1)},            // no date
	}
	for i, tc := range cases {
		_, err := svc.AddTransaction(ctx, &tc)
		assert.Error(t, err, "case %d should fail validation", i)
	}

	_, err := svc.AddTransaction(ctx, &models.Transaction{
		Flow: models.FlowIncome, Currency: "USD", Title: "x",
		Amount: decimal.NewFromInt(2_000_000_000), Date: now,
	})
	assert.Error(t, err, "amount over ceiling should fail")
}
