// Package wallet implements the wallet balance engine: every transaction
// lifecycle event that touches a wallet goes through one atomic unit pairing
// the transaction write with the balance update.
package wallet

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/centsible/centsible/internal/common"
	"github.com/centsible/centsible/internal/interfaces"
	"github.com/centsible/centsible/internal/models"
)

// Compile-time interface check
var _ interfaces.WalletService = (*Service)(nil)

// Service implements WalletService.
type Service struct {
	storage   interfaces.StorageManager
	currency  interfaces.CurrencyService
	maxAmount decimal.Decimal
	logger    *common.Logger
}

// NewService creates a new wallet service. maxAmount is the validation
// ceiling for a single transaction amount.
func NewService(storage interfaces.StorageManager, currency interfaces.CurrencyService, maxAmount decimal.Decimal, logger *common.Logger) *Service {
	return &Service{
		storage:   storage,
		currency:  currency,
		maxAmount: maxAmount,
		logger:    logger,
	}
}

// validateTransaction checks field values before any store operation.
func (s *Service) validateTransaction(tx *models.Transaction) error {
	if strings.TrimSpace(tx.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if !models.ValidFlow(tx.Flow) {
		return fmt.Errorf("invalid flow %q; must be income, expense, or transfer", tx.Flow)
	}
	if tx.Amount.IsZero() {
		return fmt.Errorf("amount must not be zero")
	}
	if tx.Amount.Abs().GreaterThan(s.maxAmount) {
		return fmt.Errorf("amount exceeds maximum (%s)", s.maxAmount)
	}
	if len(strings.TrimSpace(tx.Currency)) != 3 {
		return fmt.Errorf("currency must be a 3-letter code")
	}
	if tx.Date.IsZero() {
		return fmt.Errorf("date is required")
	}
	return nil
}

// validateWallet checks wallet field values.
func validateWallet(w *models.Wallet) error {
	if strings.TrimSpace(w.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if len(strings.TrimSpace(w.Currency)) != 3 {
		return fmt.Errorf("currency must be a 3-letter code")
	}
	return nil
}

// normalizeSign aligns the transaction amount sign with its flow: income
// credits the wallet, expense debits it. Transfer legs carry their own sign.
func normalizeSign(tx *models.Transaction) {
	switch tx.Flow {
	case models.FlowIncome:
		tx.Amount = tx.Amount.Abs()
	case models.FlowExpense:
		tx.Amount = tx.Amount.Abs().Neg()
	}
}

// --- Wallets ---

// CreateWallet stores a new wallet for the current user.
func (s *Service) CreateWallet(ctx context.Context, wallet *models.Wallet) (*models.Wallet, error) {
	if err := validateWallet(wallet); err != nil {
		return nil, fmt.Errorf("invalid wallet: %w", err)
	}
	now := time.Now()
	wallet.ID = uuid.New().String()
	wallet.UserID = common.ResolveUserID(ctx)
	wallet.Name = strings.TrimSpace(wallet.Name)
	wallet.Currency = strings.ToUpper(strings.TrimSpace(wallet.Currency))
	wallet.CreatedAt = now
	wallet.UpdatedAt = now

	if err := s.storage.Ledger().SaveWallet(ctx, wallet); err != nil {
		return nil, err
	}
	s.logger.Info().Str("wallet", wallet.ID).Str("currency", wallet.Currency).Msg("Wallet created")
	return wallet, nil
}

// UpdateWallet applies an explicit user-driven wallet edit. This is the only
// path allowed to set Balance outside the atomic primitive.
func (s *Service) UpdateWallet(ctx context.Context, wallet *models.Wallet) (*models.Wallet, error) {
	existing, err := s.storage.Ledger().GetWallet(ctx, wallet.ID)
	if err != nil {
		return nil, err
	}
	if err := validateWallet(wallet); err != nil {
		return nil, fmt.Errorf("invalid wallet: %w", err)
	}
	existing.Name = strings.TrimSpace(wallet.Name)
	existing.Currency = strings.ToUpper(strings.TrimSpace(wallet.Currency))
	existing.Balance = wallet.Balance
	existing.Color = wallet.Color
	existing.Icon = wallet.Icon
	existing.UpdatedAt = time.Now()

	if err := s.storage.Ledger().SaveWallet(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// DeleteWallet removes a wallet. Transactions referencing it are left in
// place as history.
func (s *Service) DeleteWallet(ctx context.Context, id string) error {
	return s.storage.Ledger().DeleteWallet(ctx, id)
}

// GetWallet returns one wallet by id.
func (s *Service) GetWallet(ctx context.Context, id string) (*models.Wallet, error) {
	return s.storage.Ledger().GetWallet(ctx, id)
}

// ListWallets returns the current user's wallets.
func (s *Service) ListWallets(ctx context.Context) ([]*models.Wallet, error) {
	return s.storage.Ledger().ListWallets(ctx, common.ResolveUserID(ctx))
}

// --- Transactions ---

// AddTransaction records a new transaction. Without a wallet it is a plain
// insert with no balance effect. With a wallet, the transaction write and the
// balance update happen in one atomic unit: read balance, convert the amount
// into the wallet's currency via USD pivot, add, write both.
func (s *Service) AddTransaction(ctx context.Context, tx *models.Transaction) (*models.Transaction, error) {
	if err := s.validateTransaction(tx); err != nil {
		return nil, fmt.Errorf("invalid transaction: %w", err)
	}

	now := time.Now()
	tx.ID = uuid.New().String()
	tx.UserID = common.ResolveUserID(ctx)
	tx.Title = strings.TrimSpace(tx.Title)
	tx.Currency = strings.ToUpper(strings.TrimSpace(tx.Currency))
	normalizeSign(tx)
	tx.CreatedAt = now
	tx.UpdatedAt = now

	if tx.WalletID == "" {
		if err := s.storage.Ledger().SaveTransaction(ctx, tx); err != nil {
			return nil, err
		}
		s.logger.Info().Str("tx", tx.ID).Str("flow", string(tx.Flow)).Msg("Transaction added (no wallet)")
		return tx, nil
	}

	rates := s.currency.Rates(ctx)

	// Sufficiency check happens before the atomic unit is attempted.
	if tx.IsExpense() {
		wallet, err := s.storage.Ledger().GetWallet(ctx, tx.WalletID)
		if err != nil {
			return nil, err
		}
		required := s.currency.Convert(tx.Amount.Abs(), tx.Currency, wallet.Currency, rates)
		if wallet.Balance.LessThan(required) {
			return nil, models.ErrInsufficientBalance
		}
	}

	err := s.storage.Ledger().RunAtomic(ctx, func(atx interfaces.LedgerTx) error {
		wallet, err := atx.GetWallet(tx.WalletID)
		if err != nil {
			return err
		}
		adjusted := s.currency.Convert(tx.Amount, tx.Currency, wallet.Currency, rates)
		wallet.Balance = wallet.Balance.Add(adjusted)
		wallet.UpdatedAt = now

		if err := atx.PutTransaction(tx); err != nil {
			return err
		}
		return atx.PutWallet(wallet)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("tx", tx.ID).Str("wallet", tx.WalletID).
		Str("amount", tx.Amount.String()).Str("currency", tx.Currency).
		Msg("Transaction added")
	return tx, nil
}

// UpdateTransaction mutates only the stored transaction fields. It does NOT
// re-run the balance engine: the linked wallet keeps reflecting the original
// amount. Preserved intentionally; see DESIGN.md.
func (s *Service) UpdateTransaction(ctx context.Context, id string, update *models.Transaction) (*models.Transaction, error) {
	existing, err := s.storage.Ledger().GetTransaction(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Title != "" {
		existing.Title = strings.TrimSpace(update.Title)
	}
	existing.Subtitle = update.Subtitle
	if update.CategoryID != "" {
		existing.CategoryID = update.CategoryID
	}
	if models.ValidFlow(update.Flow) {
		existing.Flow = update.Flow
	}
	if !update.Amount.IsZero() {
		if update.Amount.Abs().GreaterThan(s.maxAmount) {
			return nil, fmt.Errorf("invalid transaction: amount exceeds maximum (%s)", s.maxAmount)
		}
		existing.Amount = update.Amount
		normalizeSign(existing)
	}
	if !update.Date.IsZero() {
		existing.Date = update.Date
	}
	existing.UpdatedAt = time.Now()

	if err := s.storage.Ledger().SaveTransaction(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// DeleteTransaction removes a transaction, atomically reversing its original
// balance effect on the linked wallet.
func (s *Service) DeleteTransaction(ctx context.Context, id string) error {
	rates := s.currency.Rates(ctx)

	err := s.storage.Ledger().RunAtomic(ctx, func(atx interfaces.LedgerTx) error {
		tx, err := atx.GetTransaction(id)
		if err != nil {
			return err
		}
		if tx.WalletID == "" {
			return atx.DeleteTransaction(id)
		}

		wallet, err := atx.GetWallet(tx.WalletID)
		if err != nil {
			return err
		}
		reverse := s.currency.Convert(tx.Amount.Neg(), tx.Currency, wallet.Currency, rates)
		wallet.Balance = wallet.Balance.Add(reverse)
		wallet.UpdatedAt = time.Now()

		if err := atx.PutWallet(wallet); err != nil {
			return err
		}
		return atx.DeleteTransaction(id)
	})
	if err != nil {
		return err
	}

	s.logger.Info().Str("tx", id).Msg("Transaction deleted")
	return nil
}

// ListTransactions returns the current user's transactions.
func (s *Service) ListTransactions(ctx context.Context, opts interfaces.QueryOptions) ([]*models.Transaction, error) {
	return s.storage.Ledger().ListTransactions(ctx, common.ResolveUserID(ctx), opts)
}
