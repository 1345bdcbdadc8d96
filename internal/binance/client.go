// Package binance provides access to the Binance spot and futures
// market-data endpoints used by the scanner.
package binance

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/samber/lo"

	"orderpulse/internal/logger"
	"orderpulse/internal/models"
)

// ClientConfig tunes the depth-fetch retry behavior.
type ClientConfig struct {
	MaxAttempts       int
	DefaultRetryAfter time.Duration
}

// Client provides access to Binance market data.
type Client struct {
	spotAPIURL    string
	futuresAPIURL string
	httpClient    *http.Client
	config        ClientConfig
}

// tickerEntry mirrors one element of /api/v3/ticker/24hr.
type tickerEntry struct {
	Symbol             string `json:"symbol"`
	PriceChangePercent string `json:"priceChangePercent"`
}

// exchangeInfo mirrors the part of /fapi/v1/exchangeInfo we consume.
type exchangeInfo struct {
	Symbols []symbolDescriptor `json:"symbols"`
}

type symbolDescriptor struct {
	Symbol string `json:"symbol"`
}

// depthResponse mirrors /fapi/v1/depth. Levels arrive as
// [priceString, quantityString] pairs, best first.
type depthResponse struct {
	Bids [][]string `json:"bids"`
	Asks [][]string `json:"asks"`
}

// NewClient creates a new Binance market-data client.
func NewClient(spotAPIURL, futuresAPIURL string, timeout time.Duration, config ClientConfig) *Client {
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = 5
	}
	if config.DefaultRetryAfter <= 0 {
		config.DefaultRetryAfter = 5 * time.Second
	}
	return &Client{
		spotAPIURL:    spotAPIURL,
		futuresAPIURL: futuresAPIURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		config: config,
	}
}

// FetchTicker24h retrieves the 24-hour change statistics for every spot
// symbol. A single attempt; any transport error or non-200 status fails the
// whole snapshot. Entries whose percent field does not parse are dropped.
func (c *Client) FetchTicker24h(ctx context.Context) ([]models.PriceChangeRecord, error) {
	var entries []tickerEntry
	if err := c.getJSON(ctx, c.spotAPIURL+"/api/v3/ticker/24hr", &entries); err != nil {
		return nil, fmt.Errorf("failed to fetch 24hr ticker: %w", err)
	}

	records := make([]models.PriceChangeRecord, 0, len(entries))
	for _, e := range entries {
		pct, err := strconv.ParseFloat(e.PriceChangePercent, 64)
		if err != nil {
			logger.Warn("Dropping ticker entry %s: unparseable percent change %q", e.Symbol, e.PriceChangePercent)
			continue
		}
		records = append(records, models.PriceChangeRecord{
			Symbol:             e.Symbol,
			PriceChangePercent: pct,
		})
	}
	return records, nil
}

// FetchFuturesSymbols retrieves the symbols tradable on the futures market.
func (c *Client) FetchFuturesSymbols(ctx context.Context) ([]string, error) {
	var info exchangeInfo
	if err := c.getJSON(ctx, c.futuresAPIURL+"/fapi/v1/exchangeInfo", &info); err != nil {
		return nil, fmt.Errorf("failed to fetch futures exchange info: %w", err)
	}
	return lo.Map(info.Symbols, func(s symbolDescriptor, _ int) string {
		return s.Symbol
	}), nil
}

// FetchDepth retrieves the top of book for one symbol, retrying on rate
// limits per the client's retry budget.
func (c *Client) FetchDepth(ctx context.Context, symbol string, limit int) (models.OrderBook, error) {
	u := fmt.Sprintf("%s/fapi/v1/depth?symbol=%s&limit=%d",
		c.futuresAPIURL, url.QueryEscape(symbol), limit)

	var depth depthResponse
	err := doWithRetry(ctx, c.config.MaxAttempts, func() error {
		return c.getJSON(ctx, u, &depth)
	})
	if err != nil {
		return models.OrderBook{}, fmt.Errorf("failed to fetch depth for %s: %w", symbol, err)
	}

	book := models.OrderBook{
		Symbol: symbol,
		Bids:   toLevels(depth.Bids),
		Asks:   toLevels(depth.Asks),
	}
	if err := book.Validate(); err != nil {
		return models.OrderBook{}, fmt.Errorf("depth for %s: %w: %s", symbol, ErrMalformedResponse, err)
	}
	return book, nil
}

func toLevels(raw [][]string) []models.BookLevel {
	levels := make([]models.BookLevel, 0, len(raw))
	for _, pair := range raw {
		if len(pair) < 2 {
			// Short pairs surface as missing fields in Validate.
			levels = append(levels, models.BookLevel{})
			continue
		}
		levels = append(levels, models.BookLevel{Price: pair[0], Quantity: pair[1]})
	}
	return levels
}

// getJSON performs a GET and decodes the body into out. 429 responses become
// *RateLimitError so doWithRetry can act on them; other non-200 statuses
// become *StatusError.
func (c *Client) getJSON(ctx context.Context, urlStr string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	endpoint := req.URL.Path
	if resp.StatusCode == http.StatusTooManyRequests {
		return &RateLimitError{
			Endpoint:   endpoint,
			RetryAfter: c.retryAfter(resp),
		}
	}
	if resp.StatusCode != http.StatusOK {
		return &StatusError{Endpoint: endpoint, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", endpoint, err)
	}
	return nil
}

// retryAfter reads the Retry-After header (integer seconds), falling back to
// the configured default when absent or unusable.
func (c *Client) retryAfter(resp *http.Response) time.Duration {
	header := resp.Header.Get("Retry-After")
	if header == "" {
		return c.config.DefaultRetryAfter
	}
	seconds, err := strconv.Atoi(header)
	if err != nil || seconds < 0 {
		return c.config.DefaultRetryAfter
	}
	return time.Duration(seconds) * time.Second
}
