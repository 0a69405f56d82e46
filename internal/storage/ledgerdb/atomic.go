package ledgerdb

import (
	"context"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/timshannon/badgerhold/v4"

	"github.com/centsible/centsible/internal/interfaces"
	"github.com/centsible/centsible/internal/models"
)

// RunAtomic executes fn inside one badger read-write transaction. Badger
// provides snapshot-isolated, serializable semantics: all reads in the unit
// see one consistent snapshot, conflicting concurrent units abort, and no
// partial state is ever visible to other observers. Change events are
// published only after a successful commit.
func (s *Store) RunAtomic(_ context.Context, fn func(tx interfaces.LedgerTx) error) error {
	handle := &ledgerTx{store: s}
	err := s.db.Badger().Update(func(txn *badger.Txn) error {
		handle.txn = txn
		return fn(handle)
	})
	if err != nil {
		return err
	}
	s.publish(handle.events...)
	return nil
}

// ledgerTx implements interfaces.LedgerTx over a live badger transaction.
type ledgerTx struct {
	store  *Store
	txn    *badger.Txn
	events []models.ChangeEvent
}

func (t *ledgerTx) GetWallet(id string) (*models.Wallet, error) {
	var wallet models.Wallet
	if err := t.store.db.TxGet(t.txn, id, &wallet); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, models.ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to read wallet '%s' in transaction: %w", id, err)
	}
	return &wallet, nil
}

func (t *ledgerTx) PutWallet(wallet *models.Wallet) error {
	if err := t.store.db.TxUpsert(t.txn, wallet.ID, wallet); err != nil {
		return fmt.Errorf("failed to write wallet '%s' in transaction: %w", wallet.ID, err)
	}
	t.events = append(t.events, models.ChangeEvent{
		UserID: wallet.UserID, Collection: models.CollectionWallets,
		Kind: models.ChangeUpdated, RecordID: wallet.ID,
	})
	return nil
}

func (t *ledgerTx) GetTransaction(id string) (*models.Transaction, error) {
	var tx models.Transaction
	if err := t.store.db.TxGet(t.txn, id, &tx); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, models.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to read transaction '%s' in transaction: %w", id, err)
	}
	return &tx, nil
}

func (t *ledgerTx) PutTransaction(tx *models.Transaction) error {
	if err := t.store.db.TxUpsert(t.txn, tx.ID, tx); err != nil {
		return fmt.Errorf("failed to write transaction '%s' in transaction: %w", tx.ID, err)
	}
	t.events = append(t.events, models.ChangeEvent{
		UserID: tx.UserID, Collection: models.CollectionTransactions,
		Kind: models.ChangeCreated, RecordID: tx.ID,
	})
	return nil
}

func (t *ledgerTx) DeleteTransaction(id string) error {
	var tx models.Transaction
	if err := t.store.db.TxGet(t.txn, id, &tx); err != nil {
		if err == badgerhold.ErrNotFound {
			return models.ErrTransactionNotFound
		}
		return fmt.Errorf("failed to read transaction '%s' in transaction: %w", id, err)
	}
	if err := t.store.db.TxDelete(t.txn, id, models.Transaction{}); err != nil {
		return fmt.Errorf("failed to delete transaction '%s' in transaction: %w", id, err)
	}
	t.events = append(t.events, models.ChangeEvent{
		UserID: tx.UserID, Collection: models.CollectionTransactions,
		Kind: models.ChangeDeleted, RecordID: id,
	})
	return nil
}

func (t *ledgerTx) GetBill(id string) (*models.Bill, error) {
	var bill models.Bill
	if err := t.store.db.TxGet(t.txn, id, &bill); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, models.ErrBillNotFound
		}
		return nil, fmt.Errorf("failed to read bill '%s' in transaction: %w", id, err)
	}
	return &bill, nil
}

func (t *ledgerTx) PutBill(bill *models.Bill) error {
	if err := t.store.db.TxUpsert(t.txn, bill.ID, bill); err != nil {
		return fmt.Errorf("failed to write bill '%s' in transaction: %w", bill.ID, err)
	}
	t.events = append(t.events, models.ChangeEvent{
		UserID: bill.UserID, Collection: models.CollectionBills,
		Kind: models.ChangeUpdated, RecordID: bill.ID,
	})
	return nil
}
