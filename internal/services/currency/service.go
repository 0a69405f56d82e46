// Package currency provides cross-currency conversion via a USD pivot and
// display formatting for money amounts.
package currency

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/centsible/centsible/internal/common"
	"github.com/centsible/centsible/internal/interfaces"
	"github.com/centsible/centsible/internal/models"
)

// Compile-time interface check
var _ interfaces.CurrencyService = (*Service)(nil)

// Service implements CurrencyService. It owns an explicit rate cache with a
// TTL; there is no package-level mutable state.
type Service struct {
	client interfaces.RatesClient
	logger *common.Logger

	mu         sync.Mutex
	cache      models.RateCache
	currencies map[string]string
}

// NewService creates a new currency service. The cache starts empty and is
// filled on first use; ttl bounds how long a fetched table is reused.
func NewService(client interfaces.RatesClient, ttl time.Duration, logger *common.Logger) *Service {
	return &Service{
		client: client,
		logger: logger,
		cache:  models.RateCache{TTL: ttl},
	}
}

// ConvertToUSD converts an amount from the given currency into USD using the
// supplied rate table. Unknown currency codes are treated as rate 1
// (identity) rather than an error.
func ConvertToUSD(amount decimal.Decimal, from string, rates models.RateTable) decimal.Decimal {
	return amount.Div(rates.Rate(from))
}

// ConvertFromUSD converts a USD amount into the given currency.
func ConvertFromUSD(amountUSD decimal.Decimal, to string, rates models.RateTable) decimal.Decimal {
	return amountUSD.Mul(rates.Rate(to))
}

// Convert converts between two currencies, pivoting through USD.
func (s *Service) Convert(amount decimal.Decimal, from, to string, rates models.RateTable) decimal.Decimal {
	if from == to {
		return amount
	}
	return ConvertFromUSD(ConvertToUSD(amount, from, rates), to, rates)
}

// Rates returns the current rate table, refreshing it when the cache is
// stale. A failed refresh falls back to the last-known table, then to the
// built-in defaults; callers always receive a usable table.
func (s *Service) Rates(ctx context.Context) models.RateTable {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.cache.Stale(time.Now()) {
		return s.cache.Table
	}

	table, err := s.client.GetAllRates(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Rate refresh failed, using fallback table")
		if len(s.cache.Table) > 0 {
			return s.cache.Table
		}
		return models.DefaultRateTable()
	}

	s.cache.Table = table
	s.cache.FetchedAt = time.Now()
	return table
}

// RefreshRates forces a fetch regardless of cache freshness.
func (s *Service) RefreshRates(ctx context.Context) error {
	table, err := s.client.GetAllRates(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.cache.Table = table
	s.cache.FetchedAt = time.Now()
	s.mu.Unlock()
	return nil
}

// SupportedCurrencies returns the code -> display name mapping, fetched once
// and cached. Provider failure falls back to the built-in symbol set.
func (s *Service) SupportedCurrencies(ctx context.Context) map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.currencies != nil {
		return s.currencies
	}
	currencies, err := s.client.GetSupportedCurrencies(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Currency list fetch failed, using built-in set")
		fallback := make(map[string]string, len(models.CurrencySymbols))
		for code := range models.CurrencySymbols {
			fallback[code] = code
		}
		return fallback
	}
	s.currencies = currencies
	return currencies
}

// ClearCache drops the cached rate table and currency list, forcing a fetch
// on next use. Part of the reload-all-subscriptions operation.
func (s *Service) ClearCache() {
	s.mu.Lock()
	s.cache.Table = nil
	s.cache.FetchedAt = time.Time{}
	s.currencies = nil
	s.mu.Unlock()
}
