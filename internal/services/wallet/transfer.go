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

// Transfer moves money between two wallets as an expense leg followed by an
// income leg. The legs are two sequential atomic units, not one: a failure
// after the first leg leaves the source debited with no matching credit.
// This mirrors the documented best-effort pairing; see DESIGN.md.
func (s *Service) Transfer(ctx context.Context, fromWalletID, toWalletID string, amount decimal.Decimal, title string, date time.Time) ([]*models.Transaction, error) {
	if fromWalletID == "" || toWalletID == "" {
		return nil, fmt.Errorf("invalid transfer: both wallets are required")
	}
	if fromWalletID == toWalletID {
		return nil, fmt.Errorf("invalid transfer: source and destination wallets must be different")
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("invalid transfer: amount must be positive")
	}
	if amount.GreaterThan(s.maxAmount) {
		return nil, fmt.Errorf("invalid transfer: amount exceeds maximum (%s)", s.maxAmount)
	}
	if strings.TrimSpace(title) == "" {
		title = "Transfer"
	}
	if date.IsZero() {
		date = time.Now()
	}

	from, err := s.storage.Ledger().GetWallet(ctx, fromWalletID)
	if err != nil {
		return nil, err
	}
	to, err := s.storage.Ledger().GetWallet(ctx, toWalletID)
	if err != nil {
		return nil, err
	}

	// Amount is denominated in the source wallet's currency.
	if from.Balance.LessThan(amount) {
		return nil, models.ErrInsufficientBalance
	}

	rates := s.currency.Rates(ctx)
	userID := common.ResolveUserID(ctx)
	now := time.Now()
	outID := uuid.New().String()
	inID := uuid.New().String()

	outTx := &models.Transaction{
		ID:        outID,
		UserID:    userID,
		WalletID:  from.ID,
		Flow:      models.FlowTransfer,
		Currency:  from.Currency,
		Title:     strings.TrimSpace(title),
		Subtitle:  fmt.Sprintf("To %s", to.Name),
		Amount:    amount.Neg(),
		Date:      date,
		LinkedID:  inID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	inAmount := s.currency.Convert(amount, from.Currency, to.Currency, rates)
	inTx := &models.Transaction{
		ID:        inID,
		UserID:    userID,
		WalletID:  to.ID,
		Flow:      models.FlowTransfer,
		Currency:  to.Currency,
		Title:     strings.TrimSpace(title),
		Subtitle:  fmt.Sprintf("From %s", from.Name),
		Amount:    inAmount,
		Date:      date,
		LinkedID:  outID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.applyLeg(ctx, outTx); err != nil {
		return nil, err
	}
	if err := s.applyLeg(ctx, inTx); err != nil {
		s.logger.Error().Err(err).Str("from", fromWalletID).Str("to", toWalletID).
			Msg("Transfer credit leg failed after debit leg committed")
		return nil, fmt.Errorf("transfer incomplete: debit applied but credit failed: %w", err)
	}

	s.logger.Info().Str("from", fromWalletID).Str("to", toWalletID).
		Str("amount", amount.String()).Msg("Transfer complete")
	return []*models.Transaction{outTx, inTx}, nil
}

// applyLeg commits one transfer leg: transaction write plus balance update in
// one atomic unit. The leg's amount is already in its wallet's currency.
func (s *Service) applyLeg(ctx context.Context, tx *models.Transaction) error {
	return s.storage.Ledger().RunAtomic(ctx, func(atx interfaces.LedgerTx) error {
		wallet, err := atx.GetWallet(tx.WalletID)
		if err != nil {
			return err
		}
		wallet.Balance = wallet.Balance.Add(tx.Amount)
		wallet.UpdatedAt = tx.UpdatedAt

		if err := atx.PutTransaction(tx); err != nil {
			return err
		}
		return atx.PutWallet(wallet)
	})
}
