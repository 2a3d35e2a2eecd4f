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

// GatewaySource fetches quotes and history from a self-hosted market-data
// REST gateway. It is the highest-priority source when configured.
type GatewaySource struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewGatewaySource creates a gateway source with optional proxy support.
func NewGatewaySource(baseURL, apiKey, proxyURL string) *GatewaySource {
	return &GatewaySource{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client:  newHTTPClient(proxyURL),
	}
}

func (s *GatewaySource) Name() string { return "gateway" }

// gatewayBar is the expected JSON shape of one bar from the gateway API.
type gatewayBar struct {
	Timestamp int64   `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
}

func (s *GatewaySource) Quote(ctx context.Context, symbol string) (*model.Quote, error) {
	endpoint := fmt.Sprintf("%s/api/v1/quote?symbol=%s", s.BaseURL, url.QueryEscape(symbol))
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, err
	}
	if s.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.APIKey)
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway quote: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gateway quote: status %d", resp.StatusCode)
	}
	var result struct {
		Symbol    string  `json:"symbol"`
		Price     float64 `json:"price"`
		Open      float64 `json:"open"`
		High      float64 `json:"high"`
		Low       float64 `json:"low"`
		Volume    float64 `json:"volume"`
		Timestamp int64   `json:"timestamp"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("gateway decode quote: %w", err)
	}
	if result.Price == 0 {
		return nil, nil
	}
	return &model.Quote{
		Symbol:    symbol,
		Price:     result.Price,
		Open:      result.Open,
		High:      result.High,
		Low:       result.Low,
		Volume:    result.Volume,
		Timestamp: time.Unix(result.Timestamp, 0),
	}, nil
}

func (s *GatewaySource) History(ctx context.Context, symbol, rng string) ([]model.OHLCV, error) {
	endpoint := fmt.Sprintf("%s/api/v1/bars/daily?symbol=%s&range=%s",
		s.BaseURL, url.QueryEscape(symbol), url.QueryEscape(rng))
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, err
	}
	if s.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.APIKey)
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway bars: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("gateway bars: status %d, body: %s", resp.StatusCode, string(body))
	}
	var gwBars []gatewayBar
	if err := json.NewDecoder(resp.Body).Decode(&gwBars); err != nil {
		return nil, fmt.Errorf("gateway decode bars: %w", err)
	}
	bars := make([]model.OHLCV, len(gwBars))
	for i, gb := range gwBars {
		bars[i] = model.OHLCV{
			Time:   time.Unix(gb.Timestamp, 0),
			Open:   gb.Open,
			High:   gb.High,
			Low:    gb.Low,
			Close:  gb.Close,
			Volume: gb.Volume,
		}
	}
	return bars, nil
}

// newHTTPClient builds the shared HTTP client shape used by every source.
func newHTTPClient(proxyURL string) *http.Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &http.Client{
		Timeout:   30 * time.Second,
		Transport: transport,
	}
}
