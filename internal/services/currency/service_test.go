package currency

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/centsible/centsible/internal/common"
	"github.com/centsible/centsible/internal/models"
)

// stubRatesClient implements interfaces.RatesClient with a fixed table.
type stubRatesClient struct {
	table      models.RateTable
	currencies map[string]string
	err        error
	calls      int
}

func (c *stubRatesClient) GetAllRates(_ context.Context) (models.RateTable, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return c.table, nil
}

func (c *stubRatesClient) GetSupportedCurrencies(_ context.Context) (map[string]string, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.currencies, nil
}

func testTable() models.RateTable {
	return models.RateTable{
		"USD": decimal.NewFromInt(1),
		"PHP": decimal.NewFromInt(56),
		"EUR": decimal.RequireFromString("0.92"),
	}
}

func newTestService(client *stubRatesClient) *Service {
	return NewService(client, time.Hour, common.NewSilentLogger())
}

func TestConvertPivotsThroughUSD(t *testing.T) {
	svc := newTestService(&stubRatesClient{table: testTable()})
	rates := testTable()

	// 56 PHP -> 1 USD -> 0.92 EUR
	got := svc.Convert(decimal.NewFromInt(56), "PHP", "EUR", rates)
	assert.True(t, got.Equal(decimal.RequireFromString("0.92")), "got %s", got)

	// Same currency short-circuits without touching the table.
	same := svc.Convert(decimal.NewFromInt(42), "PHP", "PHP", nil)
	assert.True(t, same.Equal(decimal.NewFromInt(42)))
}

func TestConvertRoundTrip(t *testing.T) {
	svc := newTestService(&stubRatesClient{table: testTable()})
	rates := testTable()

	amount := decimal.RequireFromString("123.45")
	there := svc.Convert(amount, "PHP", "EUR", rates)
	back := svc.Convert(there, "EUR", "PHP", rates)

	diff := back.Sub(amount).Abs()
	assert.True(t, diff.LessThan(decimal.RequireFromString("0.0001")),
		"round trip drifted by %s", diff)
}

func TestConvertUnknownCurrencyIsIdentity(t *testing.T) {
	svc := newTestService(&stubRatesClient{table: testTable()})
	rates := testTable()

	got := svc.Convert(decimal.NewFromInt(100), "XXX", "USD", rates)
	assert.True(t, got.Equal(decimal.NewFromInt(100)))
}

func TestRatesCachesWithinTTL(t *testing.T) {
	client := &stubRatesClient{table: testTable()}
	svc := newTestService(client)
	ctx := context.Background()

	first := svc.Rates(ctx)
	second := svc.Rates(ctx)

	require.Equal(t, 1, client.calls, "second call within TTL must hit the cache")
	assert.True(t, first.Rate("PHP").Equal(second.Rate("PHP")))
}

func TestRatesFallsBackToDefaultsOnFetchFailure(t *testing.T) {
	client := &stubRatesClient{err: errors.New("provider down")}
	svc := newTestService(client)

	table := svc.Rates(context.Background())
	assert.True(t, table.Rate("PHP").Equal(decimal.NewFromInt(56)))
	assert.True(t, table.Rate("USD").Equal(decimal.NewFromInt(1)))
}

func TestRatesFallsBackToLastKnownTable(t *testing.T) {
	client := &stubRatesClient{table: models.RateTable{
		"USD": decimal.NewFromInt(1),
		"PHP": decimal.NewFromInt(60),
	}}
	svc := NewService(client, time.Nanosecond, common.NewSilentLogger())
	ctx := context.Background()

	svc.Rates(ctx) // prime the cache
	client.err = errors.New("provider down")
	time.Sleep(time.Millisecond) // let the TTL lapse

	table := svc.Rates(ctx)
	assert.True(t, table.Rate("PHP").Equal(decimal.NewFromInt(60)),
		"stale-but-known table beats built-in defaults")
}

func TestClearCacheForcesRefetch(t *testing.T) {
	client := &stubRatesClient{table: testTable()}
	svc := newTestService(client)
	ctx := context.Background()

	svc.Rates(ctx)
	svc.ClearCache()
	svc.Rates(ctx)

	assert.Equal(t, 2, client.calls)
}

func TestRefreshRatesForcesFetch(t *testing.T) {
	client := &stubRatesClient{table: testTable()}
	svc := newTestService(client)
	ctx := context.Background()

	svc.Rates(ctx)
	require.NoError(t, svc.RefreshRates(ctx))
	assert.Equal(t, 2, client.calls)

	client.err = errors.New("provider down")
	assert.Error(t, svc.RefreshRates(ctx))
}

func TestSupportedCurrenciesFallsBackToBuiltins(t *testing.T) {
	client := &stubRatesClient{err: errors.New("provider down")}
	svc := newTestService(client)

	currencies := svc.SupportedCurrencies(context.Background())
	assert.Contains(t, currencies, "USD")
	assert.Contains(t, currencies, "PHP")
}
