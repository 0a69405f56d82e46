package interfaces

import (
	"context"

	"github.com/centsible/centsible/internal/models"
)

// RatesClient fetches USD-relative exchange rates from an external provider.
type RatesClient interface {
	// GetAllRates returns the full currency -> rate table relative to USD.
	GetAllRates(ctx context.Context) (models.RateTable, error)

	// GetSupportedCurrencies returns code -> display name for all currencies
	// the provider knows about.
	GetSupportedCurrencies(ctx context.Context) (map[string]string, error)
}
