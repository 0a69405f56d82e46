package wallet

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/centsible/centsible/internal/interfaces"
	"github.com/centsible/centsible/internal/models"
)

func saveBill(t *testing.T, manager interfaces.StorageManager, bill *models.Bill) *models.Bill {
	t.Helper()
	if bill.ID == "" {
		bill.ID = uuid.New().String()
	}
	if bill.UserID == "" {
		bill.UserID = "default"
	}
	require.NoError(t, manager.Ledger().SaveBill(context.Background(), bill))
	return bill
}

func TestPayBillDeductsAndMarksPaid(t *testing.T) {
	svc, manager := newTestEnv(t)
	ctx := context.Background()
	w := mustCreateWallet(t, svc, "Main", "USD", 100)

	bill := saveBill(t, manager, &models.Bill{
		Title:     "Internet",
		Amount:    decimal.NewFromInt(30),
		Currency:  "USD",
		DueDate:   models.Midnight(time.Now()),
		Frequency: models.FreqOnce,
		WalletID:  w.ID,
	})

	require.NoError(t, svc.PayBill(ctx, bill.ID))

	gotWallet, err := svc.GetWallet(ctx, w.ID)
	require.NoError(t, err)
	assert.True(t, gotWallet.Balance.Equal(decimal.NewFromInt(70)), "balance %s", gotWallet.Balance)

	gotBill, err := manager.Ledger().GetBill(ctx, bill.ID)
	require.NoError(t, err)
	assert.True(t, gotBill.IsPaid)

	txs, err := svc.ListTransactions(ctx, interfaces.QueryOptions{})
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, models.FlowExpense, txs[0].Flow)
	assert.Equal(t, "Bill payment", txs[0].Subtitle)
	assert.True(t, txs[0].Amount.Equal(decimal.NewFromInt(-30)))
}

func TestPayBillCrossCurrency(t *testing.T) {
	svc, manager := newTestEnv(t)
	ctx := context.Background()
	w := mustCreateWallet(t, svc, "Main", "USD", 100)

	bill := saveBill(t, manager, &models.Bill{
		Title:     "Rent",
		Amount:    decimal.NewFromInt(560),
		Currency:  "PHP",
		DueDate:   models.Midnight(time.Now()),
		Frequency: models.FreqOnce,
		WalletID:  w.ID,
	})

	require.NoError(t, svc.PayBill(ctx, bill.ID))

	// 560 PHP at 56/USD deducts exactly 10 USD.
	gotWallet, err := svc.GetWallet(ctx, w.ID)
	require.NoError(t, err)
	assert.True(t, gotWallet.Balance.Equal(decimal.NewFromInt(90)), "balance %s", gotWallet.Balance)
}

func TestPayBillAlreadyPaid(t *testing.T) {
	svc, manager := newTestEnv(t)
	ctx := context.Background()
	w := mustCreateWallet(t, svc, "Main", "USD", 100)

	bill := saveBill(t, manager, &models.Bill{
		Title:     "Internet",
		Amount:    decimal.NewFromInt(30),
		Currency:  "USD",
		DueDate:   models.Midnight(time.Now()),
		Frequency: models.FreqOnce,
		WalletID:  w.ID,
		IsPaid:    true,
	})

	err := svc.PayBill(ctx, bill.ID)
	require.ErrorIs(t, err, models.ErrBillAlreadyPaid)

	gotWallet, err := svc.GetWallet(ctx, w.ID)
	require.NoError(t, err)
	assert.True(t, gotWallet.Balance.Equal(decimal.NewFromInt(100)), "no deduction on re-pay")
}

func TestPayBillInsufficientBalance(t *testing.T) {
	svc, manager := newTestEnv(t)
	ctx := context.Background()
	w := mustCreateWallet(t, svc, "Main", "USD", 10)

	bill := saveBill(t, manager, &models.Bill{
		Title:     "Rent",
		Amount:    decimal.NewFromInt(500),
		Currency:  "USD",
		DueDate:   models.Midnight(time.Now()),
		Frequency: models.FreqOnce,
		WalletID:  w.ID,
	})

	err := svc.PayBill(ctx, bill.ID)
	require.ErrorIs(t, err, models.ErrInsufficientBalance)

	gotBill, err := manager.Ledger().GetBill(ctx, bill.ID)
	require.NoError(t, err)
	assert.False(t, gotBill.IsPaid)

	gotWallet, err := svc.GetWallet(ctx, w.ID)
	require.NoError(t, err)
	assert.True(t, gotWallet.Balance.Equal(decimal.NewFromInt(10)))
}

func TestPayBillWithoutWallet(t *testing.T) {
	svc, manager := newTestEnv(t)
	ctx := context.Background()

	bill := saveBill(t, manager, &models.Bill{
		Title:     "Cash bill",
		Amount:    decimal.NewFromInt(30),
		Currency:  "USD",
		DueDate:   models.Midnight(time.Now()),
		Frequency: models.FreqOnce,
	})

	err := svc.PayBill(ctx, bill.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no linked wallet")
}
