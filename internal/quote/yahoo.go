package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"StockSentry/internal/model"
)

// YahooSource fetches quotes and history from the Yahoo Finance public
// chart API.
type YahooSource struct {
	Client *http.Client
}

// NewYahooSource creates a Yahoo Finance source with optional proxy support.
func NewYahooSource(proxyURL string) *YahooSource {
	return &YahooSource{Client: newHTTPClient(proxyURL)}
}

func (s *YahooSource) Name() string { return "yahoo" }

// yahooChart is the response structure from the Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol             string  `json:"symbol"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
				RegularMarketOpen  float64 `json:"regularMarketOpen"`
				RegularMarketTime  int64   `json:"regularMarketTime"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []interface{} `json:"open"`
					High   []interface{} `json:"high"`
					Low    []interface{} `json:"low"`
					Close  []interface{} `json:"close"`
					Volume []interface{} `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func toFloat(v interface{}) float64 {
	if v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}

func (s *YahooSource) fetchChart(ctx context.Context, symbol, interval, rng string) (*yahooChart, error) {
	u := fmt.Sprintf("https://query1.finance.yahoo.com/v8/finance/chart/%s?interval=%s&range=%s",
		url.PathEscape(symbol), interval, rng)

	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	return &chart, nil
}

func (s *YahooSource) Quote(ctx context.Context, symbol string) (*model.Quote, error) {
	chart, err := s.fetchChart(ctx, symbol, "1d", "1d")
	if err != nil {
		return nil, err
	}
	if len(chart.Chart.Result) == 0 {
		return nil, nil
	}
	meta := chart.Chart.Result[0].Meta
	if meta.RegularMarketPrice == 0 {
		return nil, nil
	}
	q := &model.Quote{
		Symbol:    symbol,
		Price:     meta.RegularMarketPrice,
		Open:      meta.RegularMarketOpen,
		High:      meta.RegularMarketPrice,
		Low:       meta.RegularMarketPrice,
		Timestamp: time.Unix(meta.RegularMarketTime, 0),
	}
	if q.Open == 0 {
		q.Open = q.Price
	}
	// Widen high/low from the intraday bars when present.
	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) > 0 {
		quote := result.Indicators.Quote[0]
		for i := range result.Timestamp {
			if i >= len(quote.High) || i >= len(quote.Low) || i >= len(quote.Volume) {
				break
			}
			if h := toFloat(quote.High[i]); h > q.High {
				q.High = h
			}
			if l := toFloat(quote.Low[i]); l > 0 && l < q.Low {
				q.Low = l
			}
			q.Volume += toFloat(quote.Volume[i])
		}
	}
	return q, nil
}

func (s *YahooSource) History(ctx context.Context, symbol, rng string) ([]model.OHLCV, error) {
	chart, err := s.fetchChart(ctx, symbol, "1d", rng)
	if err != nil {
		return nil, err
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return nil, nil
	}
	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, nil
	}
	quote := result.Indicators.Quote[0]
	bars := make([]model.OHLCV, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(quote.Open) || i >= len(quote.High) || i >= len(quote.Low) ||
			i >= len(quote.Close) || i >= len(quote.Volume) {
			break
		}
		o := toFloat(quote.Open[i])
		h := toFloat(quote.High[i])
		l := toFloat(quote.Low[i])
		c := toFloat(quote.Close[i])
		if o == 0 && h == 0 && l == 0 && c == 0 {
			continue // skip null bars (holidays etc.)
		}
		bars = append(bars, model.OHLCV{
			Time:   time.Unix(ts, 0),
			Open:   o,
			High:   h,
			Low:    l,
			Close:  c,
			Volume: toFloat(quote.Volume[i]),
		})
	}
	return bars, nil
}
