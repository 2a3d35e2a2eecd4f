package quote

import (
	"context"
	"time"

	"StockSentry/internal/model"
)

// MockSource returns controllable fixed data for development and testing.
type MockSource struct {
	Price    float64
	Bars     []model.OHLCV
	QuoteErr error
	BarsErr  error
}

func (m *MockSource) Name() string { return "mock" }

func (m *MockSource) Quote(_ context.Context, symbol string) (*model.Quote, error) {
	if m.QuoteErr != nil {
		return nil, m.QuoteErr
	}
	if m.Price == 0 {
		return nil, nil
	}
	return &model.Quote{
		Symbol:    symbol,
		Price:     m.Price,
		Open:      m.Price,
		High:      m.Price,
		Low:       m.Price,
		Timestamp: time.Now(),
	}, nil
}

func (m *MockSource) History(_ context.Context, _ string, _ string) ([]model.OHLCV, error) {
	if m.BarsErr != nil {
		return nil, m.BarsErr
	}
	if m.Bars != nil {
		return m.Bars, nil
	}
	return GenerateBars(m.Price, 120), nil
}

// GenerateBars builds a deterministic drifting bar series around a base
// price, newest bar last.
func GenerateBars(basePrice float64, count int) []model.OHLCV {
	bars := make([]model.OHLCV, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.OHLCV{
			Time:   time.Now().AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}
