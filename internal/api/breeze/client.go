// Package breeze fetches option quotes from the ICICI Breeze REST API and
// normalizes its per-leg payload into the canonical option snapshot.
package breeze

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

const quotesPath = "/breezeapi/api/v1/optionchain"

// Client is the Breeze option-chain client
type Client struct {
	baseURL      string
	apiKey       string
	sessionToken string
	httpClient   *httpClient.Client
	logger       zerolog.Logger
}

// ClientOptions holds options for creating a new Breeze client
type ClientOptions struct {
	BaseURL        string
	APIKey         string
	SessionToken   string
	RequestTimeout time.Duration
	RequestsPerSec int
}

// NewClient creates a new Breeze API client
func NewClient(opts ClientOptions) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = "https://api.icicidirect.com"
	}

	return &Client{
		baseURL:      opts.BaseURL,
		apiKey:       opts.APIKey,
		sessionToken: opts.SessionToken,
		httpClient: httpClient.NewClient(httpClient.ClientOptions{
			Timeout:        opts.RequestTimeout,
			RequestsPerSec: opts.RequestsPerSec,
			MaxRetries:     1, // fetch failures surface once, no retry
		}),
		logger: log.With().Str("component", "breeze_client").Logger(),
	}
}

// quotesResponse mirrors the Breeze wire shape: a flat Success array of
// per-leg quotes, calls and puts interleaved and tagged by "right".
type quotesResponse struct {
	Success []LegQuote `json:"Success"`
	Status  int        `json:"Status"`
	Error   string     `json:"Error"`
}

// LegQuote is one per-leg quote row of the Success array.
type LegQuote struct {
	StrikePrice         float64 `json:"strike_price"`
	Right               string  `json:"right"` // "Call" or "Put"
	LTP                 float64 `json:"ltp"`
	OpenInterest        float64 `json:"open_interest"`
	TotalQuantityTraded float64 `json:"total_quantity_traded"`
	SpotPrice           float64 `json:"spot_price"`
}

// GetOptionChain fetches quotes for every strike of the given expiry and
// normalizes them into the canonical snapshot.
func (c *Client) GetOptionChain(ctx context.Context, symbol string, expiry time.Time) (*models.OptionSnapshot, error) {
	url := fmt.Sprintf("%s%s?stock_code=%s&exchange_code=NFO&product_type=options&expiry_date=%s",
		c.baseURL, quotesPath, symbol, expiry.Format("2006-01-02"))

	c.logger.Debug().Str("url", url).Msg("Fetching option quotes")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("session_token", c.sessionToken)

	resp, err := c.httpClient.DoRequest(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	var data quotesResponse
	if err := json.Unmarshal(body, &data); err != nil {
		c.logger.Error().Err(err).Msg("Error parsing quotes JSON")
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	if data.Error != "" {
		c.logger.Error().Str("error", data.Error).Msg("Breeze API error")
		return nil, fmt.Errorf("breeze API error: %s", data.Error)
	}

	snap := Normalize(data.Success)
	c.logger.Debug().
		Float64("underlying", snap.UnderlyingValue).
		Int("strikes", len(snap.Strikes)).
		Msg("Fetched option quotes")
	return snap, nil
}

// Normalize groups the flat per-leg quote list by strike, merging call and
// put legs, preserving each strike's first-seen order. The underlying comes
// from the first quote carrying a spot price.
func Normalize(quotes []LegQuote) *models.OptionSnapshot {
	snap := &models.OptionSnapshot{}
	byStrike := make(map[float64]int)

	for _, q := range quotes {
		if snap.UnderlyingValue == 0 && q.SpotPrice != 0 {
			snap.UnderlyingValue = q.SpotPrice
		}

		idx, ok := byStrike[q.StrikePrice]
		if !ok {
			snap.Strikes = append(snap.Strikes, models.StrikeRecord{StrikePrice: q.StrikePrice})
			idx = len(snap.Strikes) - 1
			byStrike[q.StrikePrice] = idx
		}

		leg := &models.OptionLeg{
			LastPrice:    q.LTP,
			OpenInterest: q.OpenInterest,
			Volume:       q.TotalQuantityTraded,
		}
		switch q.Right {
		case "Call":
			snap.Strikes[idx].Call = leg
		case "Put":
			snap.Strikes[idx].Put = leg
		}
	}

	return snap
}
