package ledgerdb

import (
	"context"
	"fmt"
	"sort"

	"github.com/timshannon/badgerhold/v4"

	"github.com/centsible/centsible/internal/interfaces"
	"github.com/centsible/centsible/internal/models"
)

// --- Wallets ---

func (s *Store) GetWallet(_ context.Context, id string) (*models.Wallet, error) {
	var wallet models.Wallet
	if err := s.db.Get(id, &wallet); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, models.ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet '%s': %w", id, err)
	}
	return &wallet, nil
}

func (s *Store) SaveWallet(_ context.Context, wallet *models.Wallet) error {
	kind := models.ChangeUpdated
	var existing models.Wallet
	if err := s.db.Get(wallet.ID, &existing); err == badgerhold.ErrNotFound {
		kind = models.ChangeCreated
	}
	if err := s.db.Upsert(wallet.ID, wallet); err != nil {
		return fmt.Errorf("failed to save wallet '%s': %w", wallet.ID, err)
	}
	s.publish(models.ChangeEvent{UserID: wallet.UserID, Collection: models.CollectionWallets, Kind: kind, RecordID: wallet.ID})
	return nil
}

func (s *Store) DeleteWallet(_ context.Context, id string) error {
	var wallet models.Wallet
	if err := s.db.Get(id, &wallet); err != nil {
		if err == badgerhold.ErrNotFound {
			return models.ErrWalletNotFound
		}
		return fmt.Errorf("failed to get wallet '%s': %w", id, err)
	}
	if err := s.db.Delete(id, models.Wallet{}); err != nil {
		return fmt.Errorf("failed to delete wallet '%s': %w", id, err)
	}
	s.publish(models.ChangeEvent{UserID: wallet.UserID, Collection: models.CollectionWallets, Kind: models.ChangeDeleted, RecordID: id})
	return nil
}

func (s *Store) ListWallets(_ context.Context, userID string) ([]*models.Wallet, error) {
	var wallets []models.Wallet
	if err := s.db.Find(&wallets, badgerhold.Where("UserID").Eq(userID).Index("UserID")); err != nil {
		return nil, fmt.Errorf("failed to list wallets for user '%s': %w", userID, err)
	}
	sort.Slice(wallets, func(i, j int) bool { return wallets[i].CreatedAt.Before(wallets[j].CreatedAt) })
	out := make([]*models.Wallet, len(wallets))
	for i := range wallets {
		out[i] = &wallets[i]
	}
	return out, nil
}

// --- Transactions ---

func (s *Store) GetTransaction(_ context.Context, id string) (*models.Transaction, error) {
	var tx models.Transaction
	if err := s.db.Get(id, &tx); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, models.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction '%s': %w", id, err)
	}
	return &tx, nil
}

func (s *Store) SaveTransaction(_ context.Context, tx *models.Transaction) error {
	kind := models.ChangeUpdated
	var existing models.Transaction
	if err := s.db.Get(tx.ID, &existing); err == badgerhold.ErrNotFound {
		kind = models.ChangeCreated
	}
	if err := s.db.Upsert(tx.ID, tx); err != nil {
		return fmt.Errorf("failed to save transaction '%s': %w", tx.ID, err)
	}
	s.publish(models.ChangeEvent{UserID: tx.UserID, Collection: models.CollectionTransactions, Kind: kind, RecordID: tx.ID})
	return nil
}

func (s *Store) DeleteTransaction(_ context.Context, id string) error {
	var tx models.Transaction
	if err := s.db.Get(id, &tx); err != nil {
		if err == badgerhold.ErrNotFound {
			return models.ErrTransactionNotFound
		}
		return fmt.Errorf("failed to get transaction '%s': %w", id, err)
	}
	if err := s.db.Delete(id, models.Transaction{}); err != nil {
		return fmt.Errorf("failed to delete transaction '%s': %w", id, err)
	}
	s.publish(models.ChangeEvent{UserID: tx.UserID, Collection: models.CollectionTransactions, Kind: models.ChangeDeleted, RecordID: id})
	return nil
}

func (s *Store) ListTransactions(_ context.Context, userID string, opts interfaces.QueryOptions) ([]*models.Transaction, error) {
	var txs []models.Transaction
	if err := s.db.Find(&txs, badgerhold.Where("UserID").Eq(userID).Index("UserID")); err != nil {
		return nil, fmt.Errorf("failed to list transactions for user '%s': %w", userID, err)
	}

	asc := opts.OrderBy == "date_asc"
	sort.Slice(txs, func(i, j int) bool {
		if asc {
			return txs[i].Date.Before(txs[j].Date)
		}
		return txs[i].Date.After(txs[j].Date)
	})
	if opts.Limit > 0 && len(txs) > opts.Limit {
		txs = txs[:opts.Limit]
	}

	out := make([]*models.Transaction, len(txs))
	for i := range txs {
		out[i] = &txs[i]
	}
	return out, nil
}

// --- Bills ---

func (s *Store) GetBill(_ context.Context, id string) (*models.Bill, error) {
	var bill models.Bill
	if err := s.db.Get(id, &bill); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, models.ErrBillNotFound
		}
		return nil, fmt.Errorf("failed to get bill '%s': %w", id, err)
	}
	return &bill, nil
}

func (s *Store) SaveBill(_ context.Context, bill *models.Bill) error {
	kind := models.ChangeUpdated
	var existing models.Bill
	if err := s.db.Get(bill.ID, &existing); err == badgerhold.ErrNotFound {
		kind = models.ChangeCreated
	}
	if err := s.db.Upsert(bill.ID, bill); err != nil {
		return fmt.Errorf("failed to save bill '%s': %w", bill.ID, err)
	}
	s.publish(models.ChangeEvent{UserID: bill.UserID, Collection: models.CollectionBills, Kind: kind, RecordID: bill.ID})
	return nil
}

func (s *Store) DeleteBill(_ context.Context, id string) error {
	var bill models.Bill
	if err := s.db.Get(id, &bill); err != nil {
		if err == badgerhold.ErrNotFound {
			return models.ErrBillNotFound
		}
		return fmt.Errorf("failed to get bill '%s': %w", id, err)
	}
	// Deleting a template does not cascade to generated children.
	if err := s.db.Delete(id, models.Bill{}); err != nil {
		return fmt.Errorf("failed to delete bill '%s': %w", id, err)
	}
	s.publish(models.ChangeEvent{UserID: bill.UserID, Collection: models.CollectionBills, Kind: models.ChangeDeleted, RecordID: id})
	return nil
}

func (s *Store) ListBills(_ context.Context, userID string) ([]*models.Bill, error) {
	var bills []models.Bill
	if err := s.db.Find(&bills, badgerhold.Where("UserID").Eq(userID).Index("UserID")); err != nil {
		return nil, fmt.Errorf("failed to list bills for user '%s': %w", userID, err)
	}
	sort.Slice(bills, func(i, j int) bool { return bills[i].DueDate.Before(bills[j].DueDate) })
	out := make([]*models.Bill, len(bills))
	for i := range bills {
		out[i] = &bills[i]
	}
	return out, nil
}

// --- Categories ---

func (s *Store) ListCategories(_ context.Context, userID string) ([]*models.Category, error) {
	var cats []models.Category
	if err := s.db.Find(&cats, badgerhold.Where("UserID").Eq(userID).Index("UserID")); err != nil {
		return nil, fmt.Errorf("failed to list categories for user '%s': %w", userID, err)
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i].Name < cats[j].Name })
	out := make([]*models.Category, len(cats))
	for i := range cats {
		out[i] = &cats[i]
	}
	return out, nil
}

func (s *Store) SaveCategory(_ context.Context, cat *models.Category) error {
	if err := s.db.Upsert(cat.ID, cat); err != nil {
		return fmt.Errorf("failed to save category '%s': %w", cat.ID, err)
	}
	s.publish(models.ChangeEvent{UserID: cat.UserID, Collection: models.CollectionCategories, Kind: models.ChangeUpdated, RecordID: cat.ID})
	return nil
}
