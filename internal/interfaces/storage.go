// Package interfaces defines service contracts for Centsible.
package interfaces

import (
	"context"

	"github.com/centsible/centsible/internal/models"
)

// StorageManager coordinates storage backends and change notification.
type StorageManager interface {
	Ledger() LedgerStore

	// DataPath returns the base data directory path.
	DataPath() string

	Close() error
}

// LedgerStore is the document store holding all ledger records, scoped by
// user. Plain reads/writes are single-record operations; any mutation that
// must keep a wallet balance consistent with transaction history goes through
// RunAtomic.
type LedgerStore interface {
	// Wallets
	GetWallet(ctx context.Context, id string) (*models.Wallet, error)
	SaveWallet(ctx context.Context, wallet *models.Wallet) error
	DeleteWallet(ctx context.Context, id string) error
	ListWallets(ctx context.Context, userID string) ([]*models.Wallet, error)

	// Transactions
	GetTransaction(ctx context.Context, id string) (*models.Transaction, error)
	SaveTransaction(ctx context.Context, tx *models.Transaction) error
	DeleteTransaction(ctx context.Context, id string) error
	ListTransactions(ctx context.Context, userID string, opts QueryOptions) ([]*models.Transaction, error)

	// Bills
	GetBill(ctx context.Context, id string) (*models.Bill, error)
	SaveBill(ctx context.Context, bill *models.Bill) error
	DeleteBill(ctx context.Context, id string) error
	ListBills(ctx context.Context, userID string) ([]*models.Bill, error)

	// Categories
	ListCategories(ctx context.Context, userID string) ([]*models.Category, error)
	SaveCategory(ctx context.Context, cat *models.Category) error

	// Per-user preferences
	GetUserKV(ctx context.Context, userID, key string) (*models.UserKeyValue, error)
	SetUserKV(ctx context.Context, userID, key, value string) error
	ListUserKV(ctx context.Context, userID string) ([]*models.UserKeyValue, error)

	// RunAtomic executes fn inside one all-or-nothing unit. Every read and
	// write made through the LedgerTx handle commits together or not at all;
	// an error from fn aborts the unit with no partial state visible.
	RunAtomic(ctx context.Context, fn func(tx LedgerTx) error) error

	// Watch subscribes to committed changes for a user. The returned cancel
	// func releases the subscription; the channel closes after cancel or
	// store shutdown.
	Watch(userID string) (<-chan models.ChangeEvent, func())

	Close() error
}

// LedgerTx is the handle passed to a RunAtomic callback. All operations act
// inside the enclosing transaction.
type LedgerTx interface {
	GetWallet(id string) (*models.Wallet, error)
	PutWallet(wallet *models.Wallet) error

	GetTransaction(id string) (*models.Transaction, error)
	PutTransaction(tx *models.Transaction) error
	DeleteTransaction(id string) error

	GetBill(id string) (*models.Bill, error)
	PutBill(bill *models.Bill) error
}

// QueryOptions configures list behavior for transaction queries.
type QueryOptions struct {
	Limit   int
	OrderBy string // "date_desc" (default), "date_asc"
}
