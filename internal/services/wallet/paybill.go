package wallet

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/centsible/centsible/internal/interfaces"
	"github.com/centsible/centsible/internal/models"
)

// PayBill settles a bill from its linked wallet: one atomic unit reads the
// bill (aborting with ErrBillAlreadyPaid before any wallet mutation), reads
// the wallet, converts the bill amount into the wallet's currency, writes the
// expense transaction, updates the balance, and flips IsPaid — three writes,
// one unit.
func (s *Service) PayBill(ctx context.Context, billID string) error {
	rates := s.currency.Rates(ctx)

	// Sufficiency check before the atomic unit is attempted.
	bill, err := s.storage.Ledger().GetBill(ctx, billID)
	if err != nil {
		return err
	}
	if bill.IsPaid {
		return models.ErrBillAlreadyPaid
	}
	if bill.WalletID == "" {
		return fmt.Errorf("invalid bill payment: bill %q has no linked wallet", billID)
	}
	wallet, err := s.storage.Ledger().GetWallet(ctx, bill.WalletID)
	if err != nil {
		return err
	}
	required := s.currency.Convert(bill.Amount, bill.Currency, wallet.Currency, rates)
	if wallet.Balance.LessThan(required) {
		return models.ErrInsufficientBalance
	}

	now := time.Now()
	err = s.storage.Ledger().RunAtomic(ctx, func(atx interfaces.LedgerTx) error {
		bill, err := atx.GetBill(billID)
		if err != nil {
			return err
		}
		// Re-checked inside the unit: a concurrent payment may have won.
		if bill.IsPaid {
			return models.ErrBillAlreadyPaid
		}

		wallet, err := atx.GetWallet(bill.WalletID)
		if err != nil {
			return err
		}
		converted := s.currency.Convert(bill.Amount, bill.Currency, wallet.Currency, rates)

		tx := &models.Transaction{
			ID:         uuid.New().String(),
			UserID:     bill.UserID,
			WalletID:   wallet.ID,
			Flow:       models.FlowExpense,
			CategoryID: bill.Category,
			Currency:   wallet.Currency,
			Title:      bill.Title,
			Subtitle:   "Bill payment",
			Amount:     converted.Neg(),
			Date:       now,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := atx.PutTransaction(tx); err != nil {
			return err
		}

		wallet.Balance = wallet.Balance.Sub(converted)
		wallet.UpdatedAt = now
		if err := atx.PutWallet(wallet); err != nil {
			return err
		}

		bill.IsPaid = true
		bill.UpdatedAt = now
		return atx.PutBill(bill)
	})
	if err != nil {
		return err
	}

	s.logger.Info().Str("bill", billID).Str("wallet", bill.WalletID).
		Str("amount", bill.Amount.String()).Str("currency", bill.Currency).
		Msg("Bill paid")
	return nil
}
