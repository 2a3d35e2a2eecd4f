package quote

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"StockSentry/internal/model"
)

// CacheTTL is how long a fetched quote or history stays fresh.
const CacheTTL = 5 * time.Minute

type quoteEntry struct {
	quote model.Quote
	at    time.Time
}

type historyEntry struct {
	bars []model.OHLCV
	at   time.Time
}

// Provider tries its sources in priority order and caches successful
// results. On total source failure it falls back to the most recent cached
// value even when stale: availability over freshness.
type Provider struct {
	sources []Source
	ttl     time.Duration

	mu      sync.Mutex
	quotes  map[string]quoteEntry
	history map[string]historyEntry

	now func() time.Time
}

// NewProvider creates a Provider over the given sources, tried in order.
func NewProvider(sources ...Source) *Provider {
	return &Provider{
		sources: sources,
		ttl:     CacheTTL,
		quotes:  make(map[string]quoteEntry),
		history: make(map[string]historyEntry),
		now:     time.Now,
	}
}

// GetQuote returns the current quote for a symbol, or nil when every source
// failed and no cached value exists. It never returns an error to the
// caller; per-source failures are logged and swallowed.
func (p *Provider) GetQuote(ctx context.Context, symbol string) *model.Quote {
	if q, ok := p.cachedQuote(symbol, false); ok {
		return &q
	}
	for _, src := range p.sources {
		q, err := src.Quote(ctx, symbol)
		if err != nil {
			log.Printf("[WARN] quote source %s failed for %s: %v", src.Name(), symbol, err)
			continue
		}
		if q == nil {
			continue
		}
		p.storeQuote(symbol, *q)
		return q
	}
	// Every source exhausted: serve stale cache if we have one.
	if q, ok := p.cachedQuote(symbol, true); ok {
		log.Printf("[WARN] all quote sources failed for %s, serving stale cache", symbol)
		return &q
	}
	return nil
}

// GetHistory returns the historical bars for a symbol over a named range
// ("1mo", "6mo", ...), sorted ascending by time. An empty slice is a valid
// result when no data exists.
func (p *Provider) GetHistory(ctx context.Context, symbol, rng string) []model.OHLCV {
	key := historyKey(symbol, rng)
	if bars, ok := p.cachedHistory(key, false); ok {
		return bars
	}
	for _, src := range p.sources {
		bars, err := src.History(ctx, symbol, rng)
		if err != nil {
			log.Printf("[WARN] history source %s failed for %s: %v", src.Name(), symbol, err)
			continue
		}
		if len(bars) == 0 {
			continue
		}
		sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
		p.storeHistory(key, bars)
		return bars
	}
	if bars, ok := p.cachedHistory(key, true); ok {
		log.Printf("[WARN] all history sources failed for %s, serving stale cache", symbol)
		return bars
	}
	return nil
}

// ClearExpiredCache drops every cache entry older than the TTL.
func (p *Provider) ClearExpiredCache() {
	p.mu.Lock()
	defer p.mu.Unlock()
	now := p.now()
	for k, e := range p.quotes {
		if now.Sub(e.at) > p.ttl {
			delete(p.quotes, k)
		}
	}
	for k, e := range p.history {
		if now.Sub(e.at) > p.ttl {
			delete(p.history, k)
		}
	}
}

// CacheSize returns the number of live cache entries.
func (p *Provider) CacheSize() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.quotes) + len(p.history)
}

func (p *Provider) cachedQuote(symbol string, allowStale bool) (model.Quote, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	e, ok := p.quotes[symbol]
	if !ok {
		return model.Quote{}, false
	}
	if !allowStale && p.now().Sub(e.at) > p.ttl {
		return model.Quote{}, false
	}
	return e.quote, true
}

func (p *Provider) storeQuote(symbol string, q model.Quote) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.quotes[symbol] = quoteEntry{quote: q, at: p.now()}
}

func (p *Provider) cachedHistory(key string, allowStale bool) ([]model.OHLCV, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	e, ok := p.history[key]
	if !ok {
		return nil, false
	}
	if !allowStale && p.now().Sub(e.at) > p.ttl {
		return nil, false
	}
	return e.bars, true
}

func (p *Provider) storeHistory(key string, bars []model.OHLCV) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.history[key] = historyEntry{bars: bars, at: p.now()}
}

func historyKey(symbol, rng string) string {
	return fmt.Sprintf("%s_%s", symbol, rng)
}
