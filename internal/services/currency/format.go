package currency

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/centsible/centsible/internal/models"
)

// DefaultCompactLen is the display budget FormatCompact fits into before
// switching to suffixed form.
const DefaultCompactLen = 9

var compactSuffixes = []struct {
	threshold decimal.Decimal
	suffix    string
}{
	{decimal.NewFromInt(1_000_000_000_000), "T"},
	{decimal.NewFromInt(1_000_000_000), "B"},
	{decimal.NewFromInt(1_000_000), "M"},
	{decimal.NewFromInt(1_000), "K"},
}

// symbolFor returns the display symbol for a currency code, falling back to
// the code itself with a space.
func symbolFor(currency string) string {
	if sym, ok := models.CurrencySymbols[currency]; ok {
		return sym
	}
	return currency + " "
}

// groupThousands inserts comma separators into a non-negative integer string.
func groupThousands(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var b strings.Builder
	head := n % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// FormatClean renders an amount as a currency string, omitting fractional
// digits when the amount is integral: $1,234.50 but $1,234 not $1,234.00.
func FormatClean(amount decimal.Decimal, currency string) string {
	neg := amount.IsNegative()
	abs := amount.Abs()

	var body string
	if abs.Equal(abs.Truncate(0)) {
		body = groupThousands(abs.Truncate(0).String())
	} else {
		fixed := abs.StringFixed(2)
		dot := strings.IndexByte(fixed, '.')
		body = groupThousands(fixed[:dot]) + fixed[dot:]
	}

	out := symbolFor(currency) + body
	if neg {
		out = "-" + out
	}
	return out
}

// FormatCompact renders the clean form when it fits in maxLen characters,
// otherwise an SI-suffixed (K, M, B, T) abbreviation preserving sign and
// currency symbol. maxLen <= 0 uses DefaultCompactLen.
func FormatCompact(amount decimal.Decimal, currency string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = DefaultCompactLen
	}

	clean := FormatClean(amount, currency)
	if len([]rune(clean)) <= maxLen {
		return clean
	}

	neg := amount.IsNegative()
	abs := amount.Abs()
	for _, s := range compactSuffixes {
		if abs.GreaterThanOrEqual(s.threshold) {
			scaled := abs.Div(s.threshold).Round(1)
			body := scaled.String()
			body = strings.TrimSuffix(body, ".0")
			out := symbolFor(currency) + body + s.suffix
			if neg {
				out = "-" + out
			}
			return out
		}
	}

	// Below 1K the clean form simply doesn't fit the budget; return it anyway.
	return clean
}
