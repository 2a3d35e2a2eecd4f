package quote

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockSentry/internal/model"
)

// countingSource wraps MockSource and counts calls.
type countingSource struct {
	MockSource
	quoteCalls   int
	historyCalls int
}

func (c *countingSource) Quote(ctx context.Context, symbol string) (*model.Quote, error) {
	c.quoteCalls++
	return c.MockSource.Quote(ctx, symbol)
}

func (c *countingSource) History(ctx context.Context, symbol, rng string) ([]model.OHLCV, error) {
	c.historyCalls++
	return c.MockSource.History(ctx, symbol, rng)
}

func TestProvider_FallbackOrder(t *testing.T) {
	failing := &countingSource{MockSource: MockSource{QuoteErr: errors.New("boom")}}
	empty := &countingSource{} // no data, no error
	working := &countingSource{MockSource: MockSource{Price: 42}}

	p := NewProvider(failing, empty, working)
	q := p.GetQuote(context.Background(), "AAPL")
	require.NotNil(t, q)
	assert.Equal(t, 42.0, q.Price)
	assert.Equal(t, 1, failing.quoteCalls)
	assert.Equal(t, 1, empty.quoteCalls)
	assert.Equal(t, 1, working.quoteCalls)
}

func TestProvider_QuoteCacheHit(t *testing.T) {
	src := &countingSource{MockSource: MockSource{Price: 42}}
	p := NewProvider(src)

	require.NotNil(t, p.GetQuote(context.Background(), "AAPL"))
	require.NotNil(t, p.GetQuote(context.Background(), "AAPL"))
	assert.Equal(t, 1, src.quoteCalls, "second call should be served from cache")
}

func TestProvider_StaleCacheFallback(t *testing.T) {
	src := &countingSource{MockSource: MockSource{Price: 42}}
	p := NewProvider(src)

	current := time.Now()
	p.now = func() time.Time { return current }

	require.NotNil(t, p.GetQuote(context.Background(), "AAPL"))

	// Expire the cache, then break the source. Availability wins over
	// freshness: the stale quote is still served.
	current = current.Add(CacheTTL + time.Minute)
	src.QuoteErr = errors.New("boom")

	q := p.GetQuote(context.Background(), "AAPL")
	require.NotNil(t, q)
	assert.Equal(t, 42.0, q.Price)
	assert.Equal(t, 2, src.quoteCalls, "expired cache should retry the source first")
}

func TestProvider_TotalFailureNoCache(t *testing.T) {
	src := &countingSource{MockSource: MockSource{QuoteErr: errors.New("boom")}}
	p := NewProvider(src)
	assert.Nil(t, p.GetQuote(context.Background(), "AAPL"))
	assert.Nil(t, p.GetHistory(context.Background(), "AAPL", "6mo"))
}

func TestProvider_HistorySortedAscending(t *testing.T) {
	base := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	src := &countingSource{MockSource: MockSource{Bars: []model.OHLCV{
		{Time: base.AddDate(0, 0, 2), Close: 3},
		{Time: base, Close: 1},
		{Time: base.AddDate(0, 0, 1), Close: 2},
	}}}
	p := NewProvider(src)

	bars := p.GetHistory(context.Background(), "AAPL", "6mo")
	require.Len(t, bars, 3)
	assert.Equal(t, []float64{1, 2, 3}, model.Closes(bars))
}

func TestProvider_HistoryCachePerRange(t *testing.T) {
	src := &countingSource{MockSource: MockSource{Price: 42}}
	p := NewProvider(src)

	require.NotNil(t, p.GetHistory(context.Background(), "AAPL", "1mo"))
	require.NotNil(t, p.GetHistory(context.Background(), "AAPL", "6mo"))
	require.NotNil(t, p.GetHistory(context.Background(), "AAPL", "1mo"))
	assert.Equal(t, 2, src.historyCalls, "ranges cache independently")
}

func TestProvider_ClearExpiredCache(t *testing.T) {
	src := &countingSource{MockSource: MockSource{Price: 42}}
	p := NewProvider(src)

	current := time.Now()
	p.now = func() time.Time { return current }

	require.NotNil(t, p.GetQuote(context.Background(), "AAPL"))
	require.NotNil(t, p.GetHistory(context.Background(), "AAPL", "6mo"))
	assert.Equal(t, 2, p.CacheSize())

	p.ClearExpiredCache()
	assert.Equal(t, 2, p.CacheSize(), "fresh entries survive cleanup")

	current = current.Add(CacheTTL + time.Minute)
	p.ClearExpiredCache()
	assert.Equal(t, 0, p.CacheSize())
}
