package order

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceOrder(t *testing.T) {
	var received map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/equity/placeOrder", r.URL.Path)
		assert.Equal(t, "key", r.Header.Get("apikey"))
		assert.Equal(t, "token", r.Header.Get("access_token"))

		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &received))

		w.Write([]byte(`{"orderId": "12345", "status": "placed"}`))
	}))
	defer server.Close()

	client := NewClient(ClientOptions{
		BaseURL:     server.URL,
		APIKey:      "key",
		AccessToken: "token",
	})

	resp, err := client.PlaceOrder(context.Background(), Request{
		Symbol:     "NIFTY",
		Strike:     19750,
		OptionType: "CE",
		Quantity:   50,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"orderId": "12345", "status": "placed"}`, string(resp))

	assert.Equal(t, "NIFTY", received["symbol"])
	assert.Equal(t, 19750.0, received["strikePrice"])
	assert.Equal(t, "CE", received["optionType"])
	assert.Equal(t, 50.0, received["quantity"])
	assert.Equal(t, "BUY", received["orderType"])
	assert.Equal(t, "INTRADAY", received["productType"])
}

func TestPlaceOrderNon200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": "invalid token"}`))
	}))
	defer server.Close()

	client := NewClient(ClientOptions{BaseURL: server.URL})

	_, err := client.PlaceOrder(context.Background(), Request{Symbol: "NIFTY", Strike: 19750, OptionType: "CE", Quantity: 50})
	assert.ErrorContains(t, err, "invalid token")
}
