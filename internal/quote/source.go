// Package quote fetches live quotes and historical OHLCV bars from multiple
// upstream sources with ordered fallback and a time-bounded cache.
package quote

import (
	"context"

	"StockSentry/internal/model"
)

// Source is one upstream quote/history adapter. A source returns (nil, nil)
// when it has no data for the symbol; an error means a transport or parse
// failure, which the Provider contains and logs before trying the next
// source.
type Source interface {
	Name() string
	Quote(ctx context.Context, symbol string) (*model.Quote, error)
	History(ctx context.Context, symbol, rng string) ([]model.OHLCV, error)
}
