package bills

import (
	"context"
	"fmt"
	"time"

	"github.com/centsible/centsible/internal/models"
)

// ProcessDueBills runs one auto-deduction pass over the current user's
// bills: pay every auto-payable bill, then advance every recurring template.
// Each bill is processed independently — one failure never aborts the batch.
// Only one pass may run at a time; a concurrent call returns
// ErrPassInProgress. The guard releases after a cooldown to absorb rapid
// repeated triggers.
func (s *Service) ProcessDueBills(ctx context.Context, today time.Time) (*models.ProcessResult, error) {
	if !s.guard.tryAcquire() {
		return nil, models.ErrPassInProgress
	}
	defer s.guard.releaseAfterCooldown()

	bills, err := s.ListBills(ctx)
	if err != nil {
		return nil, err
	}

	today = models.Midnight(today)
	now := time.Now()
	result := &models.ProcessResult{}

	for _, bill := range bills {
		// Payment check. Auto-pay degrades silently: failures are counted
		// and logged, never surfaced as blocking errors, so the user can
		// still pay manually later.
		if bill.IsAutoPayable(today) {
			if err := s.wallets.PayBill(ctx, bill.ID); err != nil {
				result.Failed++
				s.logger.Warn().Err(err).Str("bill", bill.ID).Str("title", bill.Title).
					Msg("Auto-deduction skipped")
			} else {
				result.Processed++
				s.notifier.Success(ctx, bill.UserID,
					fmt.Sprintf("Bill %q paid automatically", bill.Title))
			}
		}

		// Recurrence check runs for every template regardless of whether the
		// payment step ran or succeeded.
		if !bill.IsTemplate() {
			continue
		}
		walk := walkTemplate(bill, bills, today, now)
		failed := false
		for _, instance := range walk.created {
			if err := s.storage.Ledger().SaveBill(ctx, instance); err != nil {
				result.Failed++
				failed = true
				s.logger.Error().Err(err).Str("template", bill.ID).
					Str("due", instance.DueDate.Format("2006-01-02")).
					Msg("Failed to materialize bill instance")
			}
		}
		if walk.moved && !failed {
			cursor := walk.cursor
			bill.LastGeneratedDueDate = &cursor
			bill.UpdatedAt = now
			if err := s.storage.Ledger().SaveBill(ctx, bill); err != nil {
				result.Failed++
				s.logger.Error().Err(err).Str("template", bill.ID).Msg("Failed to persist recurrence cursor")
				continue
			}
			result.Recurring++
			s.logger.Info().Str("template", bill.ID).Int("instances", len(walk.created)).
				Str("cursor", cursor.Format("2006-01-02")).Msg("Recurring bill advanced")
		}
	}

	s.logger.Info().Int("processed", result.Processed).Int("failed", result.Failed).
		Int("recurring", result.Recurring).Msg("Bill processing pass complete")
	return result, nil
}
