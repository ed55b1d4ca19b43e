// Package order places buy orders through the ICICI Direct REST API.
//
// Nothing in the scan pipeline calls this; it exists for the manual
// trigger only.
package order

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const placeOrderPath = "/equity/placeOrder"

// Client is the ICICI order-placement client
type Client struct {
	baseURL     string
	apiKey      string
	accessToken string
	httpClient  *http.Client
	logger      zerolog.Logger
}

// ClientOptions holds options for creating a new order client
type ClientOptions struct {
	BaseURL        string
	APIKey         string
	AccessToken    string
	RequestTimeout time.Duration
}

// NewClient creates a new ICICI order client
func NewClient(opts ClientOptions) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = "https://api.icicidirect.com"
	}
	if opts.RequestTimeout == 0 {
		opts.RequestTimeout = 30 * time.Second
	}

	return &Client{
		baseURL:     opts.BaseURL,
		apiKey:      opts.APIKey,
		accessToken: opts.AccessToken,
		httpClient:  &http.Client{Timeout: opts.RequestTimeout},
		logger:      log.With().Str("component", "order_client").Logger(),
	}
}

// Request describes one buy order.
type Request struct {
	Symbol     string  `json:"symbol"`
	Strike     float64 `json:"strikePrice"`
	OptionType string  `json:"optionType"` // "CE" or "PE"
	Quantity   int     `json:"quantity"`
}

type orderPayload struct {
	Request
	OrderType   string `json:"orderType"`
	ProductType string `json:"productType"`
}

// PlaceOrder posts an intraday buy order and returns the raw JSON response.
func (c *Client) PlaceOrder(ctx context.Context, order Request) (json.RawMessage, error) {
	payload := orderPayload{
		Request:     order,
		OrderType:   "BUY",
		ProductType: "INTRADAY",
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding order: %w", err)
	}

	url := c.baseURL + placeOrderPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("access_token", c.accessToken)
	req.Header.Set("Content-Type", "application/json")

	c.logger.Info().
		Str("symbol", order.Symbol).
		Float64("strike", order.Strike).
		Str("type", order.OptionType).
		Int("qty", order.Quantity).
		Msg("Placing order")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("non-200 status code: %d: %s", resp.StatusCode, raw)
	}

	return json.RawMessage(raw), nil
}
