package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Frequency is the recurrence cadence of a bill.
type Frequency string

const (
	FreqOnce     Frequency = "once"
	FreqDaily    Frequency = "daily"
	FreqWeekly   Frequency = "weekly"
	FreqBiweekly Frequency = "biweekly"
	FreqMonthly  Frequency = "monthly"
)

// validFrequencies lists all accepted bill frequencies.
var validFrequencies = map[Frequency]bool{
	FreqOnce:     true,
	FreqDaily:    true,
	FreqWeekly:   true,
	FreqBiweekly: true,
	FreqMonthly:  true,
}

// ValidFrequency returns true if f is a valid bill frequency.
func ValidFrequency(f Frequency) bool {
	return validFrequencies[f]
}

// Bill is a scheduled payment. A bill with Frequency != once acts as a
// template: its own DueDate/IsPaid reflect only its own instance, while
// LastGeneratedDueDate tracks the cursor up to which one-time child instances
// (ParentBillID = template ID) have been materialized.
type Bill struct {
	ID                   string          `json:"id" badgerhold:"key"`
	UserID               string          `json:"user_id" badgerhold:"index"`
	Title                string          `json:"title"`
	Amount               decimal.Decimal `json:"amount"` // always positive
	Currency             string          `json:"currency"`
	DueDate              time.Time       `json:"due_date"`
	Category             string          `json:"category,omitempty"`
	IsPaid               bool            `json:"is_paid"`
	Frequency            Frequency       `json:"frequency"`
	WalletID             string          `json:"wallet_id,omitempty"`
	AutoDeduct           bool            `json:"auto_deduct"`
	LastGeneratedDueDate *time.Time      `json:"last_generated_due_date,omitempty"`
	ParentBillID         string          `json:"parent_bill_id,omitempty"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

// IsTemplate returns true when the bill regenerates child instances over time.
func (b *Bill) IsTemplate() bool {
	return b.Frequency != FreqOnce
}

// IsAutoPayable returns true when the bill qualifies for automatic deduction:
// unpaid, auto-deduct enabled, linked to a wallet, and due on or before today.
func (b *Bill) IsAutoPayable(today time.Time) bool {
	return !b.IsPaid && b.AutoDeduct && b.WalletID != "" && !b.DueDate.After(today)
}

// Midnight normalizes t to 00:00:00 in its own location.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// NextDueDate advances a due date by one period of the given frequency.
// Monthly addition uses native calendar normalization, so month-length
// overflow is allowed (Jan 31 + 1 month lands in March). FreqOnce returns
// the date unchanged. The result is always normalized to midnight.
func NextDueDate(d time.Time, freq Frequency) time.Time {
	var next time.Time
	switch freq {
	case FreqDaily:
		next = d.AddDate(0, 0, 1)
	case FreqWeekly:
		next = d.AddDate(0, 0, 7)
	case FreqBiweekly:
		next = d.AddDate(0, 0, 15)
	case FreqMonthly:
		next = d.AddDate(0, 1, 0)
	default:
		next = d
	}
	return Midnight(next)
}

// InstanceMatch classifies how an existing bill matches a candidate instance
// of a template.
type InstanceMatch int

const (
	// MatchNone means the bill is not an instance of the template for the
	// candidate date.
	MatchNone InstanceMatch = iota
	// MatchParent is the primary invariant: exact due date plus ParentBillID.
	MatchParent
	// MatchLegacy is a compatibility heuristic for records created before
	// ParentBillID existed: same title and amount, still unpaid.
	MatchLegacy
)

// MatchInstance reports whether b is an already-materialized instance of
// template for the candidate due date. ParentBillID match is authoritative;
// the field-matching fallback applies only to legacy records lacking one.
func (b *Bill) MatchInstance(template *Bill, candidate time.Time) InstanceMatch {
	if b.ID == template.ID {
		return MatchNone
	}
	if b.ParentBillID != "" {
		if b.ParentBillID == template.ID && b.DueDate.Equal(candidate) {
			return MatchParent
		}
		return MatchNone
	}
	if b.Title == template.Title && b.Amount.Equal(template.Amount) && !b.IsPaid {
		return MatchLegacy
	}
	return MatchNone
}

// ProcessResult aggregates the outcome of one auto-deduction pass. Each bill
// is processed independently; counts are observability only and a non-zero
// Failed never aborts the pass.
type ProcessResult struct {
	Processed int `json:"processed"` // bills paid automatically
	Failed    int `json:"failed"`    // bills skipped (missing wallet, insufficient balance, commit error)
	Recurring int `json:"recurring"` // templates whose cursor advanced
}

// NewInstance materializes a one-time child bill from a template for the
// given due date.
func NewInstance(template *Bill, due time.Time, now time.Time) *Bill {
	return &Bill{
		ID:           uuid.New().String(),
		UserID:       template.UserID,
		Title:        template.Title,
		Amount:       template.Amount,
		Currency:     template.Currency,
		DueDate:      due,
		Category:     template.Category,
		IsPaid:       false,
		Frequency:    FreqOnce,
		WalletID:     template.WalletID,
		AutoDeduct:   template.AutoDeduct,
		ParentBillID: template.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
