package interfaces

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/centsible/centsible/internal/models"
)

// CurrencyService converts amounts between currencies via a USD pivot and
// renders display strings. Conversion is pure given a rate table; Rates
// refreshes the cached table on a TTL.
type CurrencyService interface {
	Rates(ctx context.Context) models.RateTable
	SupportedCurrencies(ctx context.Context) map[string]string
	Convert(amount decimal.Decimal, from, to string, rates models.RateTable) decimal.Decimal
	RefreshRates(ctx context.Context) error
	ClearCache()
}

// WalletService keeps wallet balances consistent with transaction history
// under atomic multi-record operations.
type WalletService interface {
	CreateWallet(ctx context.Context, wallet *models.Wallet) (*models.Wallet, error)
	UpdateWallet(ctx context.Context, wallet *models.Wallet) (*models.Wallet, error)
	DeleteWallet(ctx context.Context, id string) error
	GetWallet(ctx context.Context, id string) (*models.Wallet, error)
	ListWallets(ctx context.Context) ([]*models.Wallet, error)

	AddTransaction(ctx context.Context, tx *models.Transaction) (*models.Transaction, error)
	UpdateTransaction(ctx context.Context, id string, update *models.Transaction) (*models.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error
	ListTransactions(ctx context.Context, opts QueryOptions) ([]*models.Transaction, error)
	Transfer(ctx context.Context, fromWalletID, toWalletID string, amount decimal.Decimal, title string, date time.Time) ([]*models.Transaction, error)

	PayBill(ctx context.Context, billID string) error
}

// BillService manages bills, advances recurring templates forward in time,
// and orchestrates automatic deduction of due bills.
type BillService interface {
	CreateBill(ctx context.Context, bill *models.Bill) (*models.Bill, error)
	UpdateBill(ctx context.Context, bill *models.Bill) (*models.Bill, error)
	DeleteBill(ctx context.Context, id string) error
	GetBill(ctx context.Context, id string) (*models.Bill, error)
	ListBills(ctx context.Context) ([]*models.Bill, error)

	HasDueBills(ctx context.Context, today time.Time) (bool, error)
	ProcessDueBills(ctx context.Context, today time.Time) (*models.ProcessResult, error)
}

// DashboardService derives period-bucketed statistics from the current
// wallet and transaction collections.
type DashboardService interface {
	Stats(ctx context.Context, timeframe models.Timeframe, now time.Time) (*models.DashboardStats, error)
}

// Notifier accepts fire-and-forget user-facing messages. Delivery and
// ordering are not guaranteed.
type Notifier interface {
	Success(ctx context.Context, userID, message string)
	Error(ctx context.Context, userID, message string)
	Info(ctx context.Context, userID, message string)
}
