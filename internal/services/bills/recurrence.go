package bills

import (
	"context"
	"time"

	"github.com/centsible/centsible/internal/models"
)

// HasDueBills is the cheap pre-check gating a processing pass: it reports
// whether any bill is currently auto-payable (unpaid, auto-deduct, linked
// wallet, due on or before today). Recurring bills without a due auto-deduct
// instance do not trigger processing on their own; see DESIGN.md.
func (s *Service) HasDueBills(ctx context.Context, today time.Time) (bool, error) {
	bills, err := s.ListBills(ctx)
	if err != nil {
		return false, err
	}
	today = models.Midnight(today)
	for _, b := range bills {
		if b.IsAutoPayable(today) {
			return true, nil
		}
	}
	return false, nil
}

// walkResult captures one template's forward materialization.
type walkResult struct {
	created []*models.Bill
	cursor  time.Time
	moved   bool
}

// walkTemplate advances a recurring template's cursor up to today, producing
// the missed one-time instances. The cursor starts at LastGeneratedDueDate
// when present, else at the template's own due date, and advances over every
// candidate whether or not it was a duplicate — the persisted cursor is the
// sole mechanism preventing regeneration across passes.
func walkTemplate(template *models.Bill, existing []*models.Bill, today time.Time, now time.Time) walkResult {
	cursor := template.DueDate
	if template.LastGeneratedDueDate != nil {
		cursor = *template.LastGeneratedDueDate
	}
	today = models.Midnight(today)

	res := walkResult{cursor: cursor}
	for {
		next := models.NextDueDate(cursor, template.Frequency)
		if !next.After(cursor) || next.After(today) {
			break
		}
		cursor = next
		res.cursor = cursor
		res.moved = true

		if instanceExists(template, existing, res.created, next) {
			continue
		}
		res.created = append(res.created, models.NewInstance(template, next, now))
	}
	return res
}

// instanceExists checks the current bill snapshot, plus the instances created
// earlier in this walk, for a match on the candidate date.
func instanceExists(template *models.Bill, existing, created []*models.Bill, candidate time.Time) bool {
	for _, b := range existing {
		if b.MatchInstance(template, candidate) != models.MatchNone {
			return true
		}
	}
	for _, b := range created {
		if b.DueDate.Equal(candidate) {
			return true
		}
	}
	return false
}
