// Package nse fetches index option chains from the public NSE endpoint.
//
// The endpoint rejects bare requests: a prior GET against the homepage with
// browser-like headers establishes the session cookies the chain request
// needs. Both requests go through the shared rate-limited client so repeated
// dashboard refreshes stay under the exchange's tolerance.
package nse

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpClient "zerohero/internal/platform/http"
	"zerohero/models"
)

const chainPath = "/api/option-chain-indices"

// Client is the NSE option-chain client
type Client struct {
	baseURL    string
	httpClient *httpClient.Client
	logger     zerolog.Logger
}

// ClientOptions holds options for creating a new NSE client
type ClientOptions struct {
	BaseURL        string
	RequestTimeout time.Duration
	RequestsPerSec int
}

// NewClient creates a new NSE option-chain client
func NewClient(opts ClientOptions) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = "https://www.nseindia.com"
	}

	return &Client{
		baseURL: opts.BaseURL,
		httpClient: httpClient.NewClient(httpClient.ClientOptions{
			Timeout:        opts.RequestTimeout,
			RequestsPerSec: opts.RequestsPerSec,
			MaxRetries:     1, // fetch failures surface once, no retry
			CookieJar:      true,
		}),
		logger: log.With().Str("component", "nse_client").Logger(),
	}
}

// chainResponse mirrors the wire shape of the option-chain endpoint.
// CE/PE are optional per row; a missing key means the leg does not trade.
type chainResponse struct {
	Records struct {
		UnderlyingValue float64    `json:"underlyingValue"`
		Data            []chainRow `json:"data"`
	} `json:"records"`
}

type chainRow struct {
	StrikePrice float64   `json:"strikePrice"`
	CE          *legQuote `json:"CE"`
	PE          *legQuote `json:"PE"`
}

type legQuote struct {
	LastPrice         float64 `json:"lastPrice"`
	OpenInterest      float64 `json:"openInterest"`
	TotalTradedVolume float64 `json:"totalTradedVolume"`
}

// GetOptionChain fetches the current option chain for an index symbol and
// normalizes it into the canonical snapshot. The expiry argument is unused
// here (the endpoint returns all expiries keyed by the current session) but
// keeps the fetcher signature uniform across data sources.
func (c *Client) GetOptionChain(ctx context.Context, symbol string, expiry time.Time) (*models.OptionSnapshot, error) {
	if err := c.bootstrap(ctx); err != nil {
		return nil, fmt.Errorf("bootstrapping session: %w", err)
	}

	url := fmt.Sprintf("%s%s?symbol=%s", c.baseURL, chainPath, symbol)
	c.logger.Debug().Str("url", url).Msg("Fetching option chain")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.DoRequest(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	var data chainResponse
	if err := json.Unmarshal(body, &data); err != nil {
		c.logger.Error().Err(err).Msg("Error parsing option chain JSON")
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	snap := normalize(&data)
	c.logger.Debug().
		Float64("underlying", snap.UnderlyingValue).
		Int("strikes", len(snap.Strikes)).
		Msg("Fetched option chain")
	return snap, nil
}

// bootstrap performs the cookie handshake against the homepage.
func (c *Client) bootstrap(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.DoRequest(ctx, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	// Drain so the connection can be reused for the chain request.
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("User-Agent", "Mozilla/5.0")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("Referer", c.baseURL+"/option-chain")
}

// normalize translates the wire payload into the canonical snapshot,
// preserving the endpoint's strike ordering.
func normalize(data *chainResponse) *models.OptionSnapshot {
	snap := &models.OptionSnapshot{
		UnderlyingValue: data.Records.UnderlyingValue,
	}

	for _, row := range data.Records.Data {
		rec := models.StrikeRecord{StrikePrice: row.StrikePrice}
		if row.CE != nil {
			rec.Call = &models.OptionLeg{
				LastPrice:    row.CE.LastPrice,
				OpenInterest: row.CE.OpenInterest,
				Volume:       row.CE.TotalTradedVolume,
			}
		}
		if row.PE != nil {
			rec.Put = &models.OptionLeg{
				LastPrice:    row.PE.LastPrice,
				OpenInterest: row.PE.OpenInterest,
				Volume:       row.PE.TotalTradedVolume,
			}
		}
		snap.Strikes = append(snap.Strikes, rec)
	}

	return snap
}
