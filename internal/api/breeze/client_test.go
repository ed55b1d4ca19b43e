package breeze

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zerohero/models"
)

func TestNormalize(t *testing.T) {
	quotes := []LegQuote{
		{StrikePrice: 19700, Right: "Call", LTP: 3, OpenInterest: 6000, TotalQuantityTraded: 600, SpotPrice: 19500},
		{StrikePrice: 19700, Right: "Put", LTP: 180, OpenInterest: 2000, TotalQuantityTraded: 100, SpotPrice: 19500},
		{StrikePrice: 19800, Right: "Call", LTP: 1.5, OpenInterest: 9000, TotalQuantityTraded: 800, SpotPrice: 19500},
	}

	snap := Normalize(quotes)

	assert.Equal(t, 19500.0, snap.UnderlyingValue)
	require.Len(t, snap.Strikes, 2)

	// Strikes keep first-seen order; call and put legs of one strike merge.
	first := snap.Strikes[0]
	assert.Equal(t, 19700.0, first.StrikePrice)
	require.NotNil(t, first.Call)
	require.NotNil(t, first.Put)
	assert.Equal(t, models.OptionLeg{LastPrice: 3, OpenInterest: 6000, Volume: 600}, *first.Call)
	assert.Equal(t, models.OptionLeg{LastPrice: 180, OpenInterest: 2000, Volume: 100}, *first.Put)

	second := snap.Strikes[1]
	assert.Equal(t, 19800.0, second.StrikePrice)
	require.NotNil(t, second.Call)
	assert.Nil(t, second.Put)
}

func TestNormalizeEmpty(t *testing.T) {
	snap := Normalize(nil)
	assert.Zero(t, snap.UnderlyingValue)
	assert.Empty(t, snap.Strikes)
}

func TestGetOptionChain(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("apikey"))
		assert.Equal(t, "NIFTY", r.URL.Query().Get("stock_code"))
		assert.Equal(t, "2025-06-05", r.URL.Query().Get("expiry_date"))
		w.Write([]byte(`{
			"Success": [
				{"strike_price": 19700, "right": "Call", "ltp": 3, "open_interest": 6000, "total_quantity_traded": 600, "spot_price": 19500}
			],
			"Status": 200
		}`))
	}))
	defer server.Close()

	client := NewClient(ClientOptions{
		BaseURL:      server.URL,
		APIKey:       "test-key",
		SessionToken: "test-session",
	})

	expiry := time.Date(2025, time.June, 5, 0, 0, 0, 0, time.UTC)
	snap, err := client.GetOptionChain(context.Background(), "NIFTY", expiry)
	require.NoError(t, err)

	assert.Equal(t, 19500.0, snap.UnderlyingValue)
	require.Len(t, snap.Strikes, 1)
	require.NotNil(t, snap.Strikes[0].Call)
	assert.Equal(t, 3.0, snap.Strikes[0].Call.LastPrice)
}

func TestGetOptionChainAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Success": null, "Status": 500, "Error": "session expired"}`))
	}))
	defer server.Close()

	client := NewClient(ClientOptions{BaseURL: server.URL})

	_, err := client.GetOptionChain(context.Background(), "NIFTY", time.Now())
	assert.ErrorContains(t, err, "session expired")
}

func TestGetOptionChainTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(ClientOptions{BaseURL: server.URL})

	_, err := client.GetOptionChain(context.Background(), "NIFTY", time.Now())
	assert.Error(t, err)
}
