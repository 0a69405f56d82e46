// Package bills manages scheduled payments: CRUD, the recurrence engine that
// walks templates forward in time, and the auto-deduction orchestrator.
package bills

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
var _ interfaces.BillService = (*Service)(nil)

// Service implements BillService.
type Service struct {
	storage   interfaces.StorageManager
	wallets   interfaces.WalletService
	notifier  interfaces.Notifier
	maxAmount decimal.Decimal
	guard     *passGuard
	logger    *common.Logger
}

// NewService creates a new bill service. cooldown is the guard release delay
// after a processing pass completes.
func NewService(storage interfaces.StorageManager, wallets interfaces.WalletService, notifier interfaces.Notifier, maxAmount decimal.Decimal, cooldown time.Duration, logger *common.Logger) *Service {
	return &Service{
		storage:   storage,
		wallets:   wallets,
		notifier:  notifier,
		maxAmount: maxAmount,
		guard:     newPassGuard(cooldown),
		logger:    logger,
	}
}

// validateBill checks field values before any store operation.
func (s *Service) validateBill(bill *models.Bill) error {
	if strings.TrimSpace(bill.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if !bill.Amount.IsPositive() {
		return fmt.Errorf("amount must be positive")
	}
	if bill.Amount.GreaterThan(s.maxAmount) {
		return fmt.Errorf("amount exceeds maximum (%s)", s.maxAmount)
	}
	if len(strings.TrimSpace(bill.Currency)) != 3 {
		return fmt.Errorf("currency must be a 3-letter code")
	}
	if bill.DueDate.IsZero() {
		return fmt.Errorf("due date is required")
	}
	if !models.ValidFrequency(bill.Frequency) {
		return fmt.Errorf("invalid frequency %q; must be once, daily, weekly, biweekly, or monthly", bill.Frequency)
	}
	return nil
}

// CreateBill stores a new bill for the current user.
func (s *Service) CreateBill(ctx context.Context, bill *models.Bill) (*models.Bill, error) {
	if err := s.validateBill(bill); err != nil {
		return nil, fmt.Errorf("invalid bill: %w", err)
	}
	now := time.Now()
	bill.ID = uuid.New().String()
	bill.UserID = common.ResolveUserID(ctx)
	bill.Title = strings.TrimSpace(bill.Title)
	bill.Currency = strings.ToUpper(strings.TrimSpace(bill.Currency))
	bill.DueDate = models.Midnight(bill.DueDate)
	bill.IsPaid = false
	bill.LastGeneratedDueDate = nil
	bill.ParentBillID = ""
	bill.CreatedAt = now
	bill.UpdatedAt = now

	if err := s.storage.Ledger().SaveBill(ctx, bill); err != nil {
		return nil, err
	}
	s.logger.Info().Str("bill", bill.ID).Str("frequency", string(bill.Frequency)).
		Str("due", bill.DueDate.Format("2006-01-02")).Msg("Bill created")
	return bill, nil
}

// UpdateBill applies a user edit to an existing bill.
func (s *Service) UpdateBill(ctx context.Context, bill *models.Bill) (*models.Bill, error) {
	existing, err := s.storage.Ledger().GetBill(ctx, bill.ID)
	if err != nil {
		return nil, err
	}
	if err := s.validateBill(bill); err != nil {
		return nil, fmt.Errorf("invalid bill: %w", err)
	}
	existing.Title = strings.TrimSpace(bill.Title)
	existing.Amount = bill.Amount
	existing.Currency = strings.ToUpper(strings.TrimSpace(bill.Currency))
	existing.DueDate = models.Midnight(bill.DueDate)
	existing.Category = bill.Category
	existing.Frequency = bill.Frequency
	existing.WalletID = bill.WalletID
	existing.AutoDeduct = bill.AutoDeduct
	existing.UpdatedAt = time.Now()

	if err := s.storage.Ledger().SaveBill(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// DeleteBill removes one bill. Deleting a template does not cascade-delete
// its generated children.
func (s *Service) DeleteBill(ctx context.Context, id string) error {
	return s.storage.Ledger().DeleteBill(ctx, id)
}

// GetBill returns one bill by id.
func (s *Service) GetBill(ctx context.Context, id string) (*models.Bill, error) {
	return s.storage.Ledger().GetBill(ctx, id)
}

// ListBills returns the current user's bills ordered by due date.
func (s *Service) ListBills(ctx context.Context) ([]*models.Bill, error) {
	return s.storage.Ledger().ListBills(ctx, common.ResolveUserID(ctx))
}
