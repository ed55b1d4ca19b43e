package nse

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chainFixture = `{
	"records": {
		"underlyingValue": 19500.25,
		"data": [
			{"strikePrice": 19000, "PE": {"lastPrice": 3, "openInterest": 1000, "totalTradedVolume": 100}},
			{"strikePrice": 19500, "CE": {"lastPrice": 120, "openInterest": 4000, "totalTradedVolume": 900},
			                       "PE": {"lastPrice": 110, "openInterest": 3500, "totalTradedVolume": 800}},
			{"strikePrice": 19750, "CE": {"lastPrice": 3, "openInterest": 6000, "totalTradedVolume": 600}}
		]
	}
}`

// chainServer serves the fixture only to sessions that completed the
// homepage cookie handshake first.
func chainServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/":
			http.SetCookie(w, &http.Cookie{Name: "nsit", Value: "session"})
		case "/api/option-chain-indices":
			cookie, err := r.Cookie("nsit")
			if err != nil || cookie.Value != "session" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			assert.Equal(t, "NIFTY", r.URL.Query().Get("symbol"))
			w.Write([]byte(chainFixture))
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestGetOptionChain(t *testing.T) {
	server := chainServer(t)
	defer server.Close()

	client := NewClient(ClientOptions{BaseURL: server.URL})

	snap, err := client.GetOptionChain(context.Background(), "NIFTY", time.Now())
	require.NoError(t, err)

	assert.Equal(t, 19500.25, snap.UnderlyingValue)
	require.Len(t, snap.Strikes, 3)

	// Row without a CE key yields a nil call leg, not an error.
	first := snap.Strikes[0]
	assert.Equal(t, 19000.0, first.StrikePrice)
	assert.Nil(t, first.Call)
	require.NotNil(t, first.Put)
	assert.Equal(t, 3.0, first.Put.LastPrice)

	// Both legs present decode independently.
	second := snap.Strikes[1]
	require.NotNil(t, second.Call)
	require.NotNil(t, second.Put)
	assert.Equal(t, 120.0, second.Call.LastPrice)
	assert.Equal(t, 110.0, second.Put.LastPrice)

	third := snap.Strikes[2]
	require.NotNil(t, third.Call)
	assert.Nil(t, third.Put)
	assert.Equal(t, 600.0, third.Call.Volume)
}

func TestGetOptionChainNon200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			return
		}
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient(ClientOptions{BaseURL: server.URL})

	_, err := client.GetOptionChain(context.Background(), "NIFTY", time.Now())
	assert.ErrorContains(t, err, "non-200")
}

func TestGetOptionChainMalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			w.Write([]byte("<html>blocked</html>"))
		}
	}))
	defer server.Close()

	client := NewClient(ClientOptions{BaseURL: server.URL})

	_, err := client.GetOptionChain(context.Background(), "NIFTY", time.Now())
	assert.ErrorContains(t, err, "parsing JSON")
}
