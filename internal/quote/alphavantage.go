package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"StockSentry/internal/model"
)

// AlphaVantageSource fetches quotes and daily history from the Alpha Vantage
// REST API. Free-tier rate limits make it the last resort before the cache.
type AlphaVantageSource struct {
	APIKey string
	Client *http.Client
}

// NewAlphaVantageSource creates an Alpha Vantage source with optional proxy
// support.
func NewAlphaVantageSource(apiKey, proxyURL string) *AlphaVantageSource {
	return &AlphaVantageSource{APIKey: apiKey, Client: newHTTPClient(proxyURL)}
}

func (s *AlphaVantageSource) Name() string { return "alphavantage" }

func (s *AlphaVantageSource) get(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return err
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		return fmt.Errorf("alphavantage fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("alphavantage: status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("alphavantage decode: %w", err)
	}
	return nil
}

func (s *AlphaVantageSource) Quote(ctx context.Context, symbol string) (*model.Quote, error) {
	endpoint := fmt.Sprintf("https://www.alphavantage.co/query?function=GLOBAL_QUOTE&symbol=%s&apikey=%s",
		url.QueryEscape(symbol), url.QueryEscape(s.APIKey))

	var result struct {
		GlobalQuote map[string]string `json:"Global Quote"`
	}
	if err := s.get(ctx, endpoint, &result); err != nil {
		return nil, err
	}
	if len(result.GlobalQuote) == 0 {
		return nil, nil
	}
	price := parseField(result.GlobalQuote, "05. price")
	if price == 0 {
		return nil, nil
	}
	return &model.Quote{
		Symbol:    symbol,
		Price:     price,
		Open:      parseField(result.GlobalQuote, "02. open"),
		High:      parseField(result.GlobalQuote, "03. high"),
		Low:       parseField(result.GlobalQuote, "04. low"),
		Volume:    parseField(result.GlobalQuote, "06. volume"),
		Timestamp: time.Now(),
	}, nil
}

func (s *AlphaVantageSource) History(ctx context.Context, symbol, _ string) ([]model.OHLCV, error) {
	endpoint := fmt.Sprintf("https://www.alphavantage.co/query?function=TIME_SERIES_DAILY&symbol=%s&apikey=%s",
		url.QueryEscape(symbol), url.QueryEscape(s.APIKey))

	var result struct {
		TimeSeries map[string]map[string]string `json:"Time Series (Daily)"`
	}
	if err := s.get(ctx, endpoint, &result); err != nil {
		return nil, err
	}
	if len(result.TimeSeries) == 0 {
		return nil, nil
	}
	bars := make([]model.OHLCV, 0, len(result.TimeSeries))
	for date, values := range result.TimeSeries {
		t, err := time.Parse("2006-01-02", date)
		if err != nil {
			continue
		}
		bars = append(bars, model.OHLCV{
			Time:   t,
			Open:   parseField(values, "1. open"),
			High:   parseField(values, "2. high"),
			Low:    parseField(values, "3. low"),
			Close:  parseField(values, "4. close"),
			Volume: parseField(values, "5. volume"),
		})
	}
	return bars, nil
}

func parseField(m map[string]string, key string) float64 {
	v, err := strconv.ParseFloat(m[key], 64)
	if err != nil {
		return 0
	}
	return v
}
