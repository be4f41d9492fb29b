package coingecko_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"cryptoapp/src/clients/coingecko"
	"cryptoapp/src/utils"
	"cryptoapp/src/utils/requests"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	path   string
	query  map[string]string
	apiKey string
	accept string
}

func serveFixture(t *testing.T, name string, seen *recordedRequest) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		seen.path = r.URL.Path
		seen.query = map[string]string{}
		for key := range r.URL.Query() {
			seen.query[key] = r.URL.Query().Get(key)
		}
		seen.apiKey = r.Header.Get("x-cg-demo-api-key")
		seen.accept = r.Header.Get("Accept")

		body, err := os.ReadFile("testdata/" + name)
		require.NoError(t, err)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}
}

func newTestServer(t *testing.T, seen *recordedRequest) *httptest.Server {
	r := chi.NewRouter()
	r.Get("/coins/markets", serveFixture(t, "markets_response.json", seen))
	r.Get("/search", serveFixture(t, "search_response.json", seen))
	r.Get("/coins/{id}", serveFixture(t, "coin_response.json", seen))
	r.Get("/coins/missing", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"coin not found"}`, http.StatusNotFound)
	})
	r.Get("/coins/slow", func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
	})
	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)
	return ts
}

func TestCoinGeckoServiceClient(t *testing.T) {
	ctx := context.Background()

	t.Run("should request the market listing with every parameter", func(t *testing.T) {
		var seen recordedRequest
		ts := newTestServer(t, &seen)
		client := coingecko.NewClientWithURL(ts.URL+"/", "demo-key", time.Second)

		coins, err := client.GetCoins(ctx, coingecko.CoinPageParams{VsCurrency: "usd", Page: 2, PerPage: 50, IDs: "bitcoin,ethereum"})
		require.NoError(t, err)

		assert.Equal(t, "/coins/markets", seen.path)
		assert.Equal(t, map[string]string{"vs_currency": "usd", "page": "2", "per_page": "50", "ids": "bitcoin,ethereum"}, seen.query)
		assert.Equal(t, "demo-key", seen.apiKey)
		assert.Equal(t, "application/json", seen.accept)
		require.Len(t, coins, 2)
		assert.Equal(t, "bitcoin", coins[0].ID)
	})

	t.Run("should omit ids and the api key when empty", func(t *testing.T) {
		var seen recordedRequest
		ts := newTestServer(t, &seen)
		client := coingecko.NewClientWithURL(ts.URL, "", time.Second)

		_, err := client.GetCoins(ctx, coingecko.CoinPageParams{VsCurrency: "eur", Page: 0, PerPage: 100})
		require.NoError(t, err)

		_, hasIDs := seen.query["ids"]
		assert.False(t, hasIDs)
		assert.Empty(t, seen.apiKey)
	})

	t.Run("should fetch a coin without tickers", func(t *testing.T) {
		var seen recordedRequest
		ts := newTestServer(t, &seen)
		client := coingecko.NewClientWithURL(ts.URL, "", time.Second)

		coin, err := client.GetCoinByID(ctx, "bitcoin")
		require.NoError(t, err)

		assert.Equal(t, "/coins/bitcoin", seen.path)
		assert.Equal(t, map[string]string{
			"tickers":        "false",
			"market_data":    "true",
			"community_data": "false",
			"developer_data": "false",
			"sparkline":      "false",
		}, seen.query)
		assert.Equal(t, 67187.33, coin.MarketData.CurrentPrice.USD)
	})

	t.Run("should search by query", func(t *testing.T) {
		var seen recordedRequest
		ts := newTestServer(t, &seen)
		client := coingecko.NewClientWithURL(ts.URL, "", time.Second)

		result, err := client.Search(ctx, "bit")
		require.NoError(t, err)

		assert.Equal(t, "/search", seen.path)
		assert.Equal(t, "bit", seen.query["query"])
		assert.Len(t, result.Coins, 2)
	})

	t.Run("should report a non-2xx answer as an upstream error", func(t *testing.T) {
		var seen recordedRequest
		ts := newTestServer(t, &seen)
		client := coingecko.NewClientWithURL(ts.URL, "", time.Second)

		_, err := client.GetCoinByID(ctx, "missing")
		require.Error(t, err)
		assert.ErrorIs(t, err, utils.ErrUpstream)

		var statusErr *requests.StatusError
		require.True(t, errors.As(err, &statusErr))
		assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	})

	t.Run("should report a timeout as an upstream error", func(t *testing.T) {
		var seen recordedRequest
		ts := newTestServer(t, &seen)
		client := coingecko.NewClientWithURL(ts.URL, "", 50*time.Millisecond)

		_, err := client.GetCoinByID(ctx, "slow")
		assert.ErrorIs(t, err, utils.ErrUpstream)
	})

	t.Run("should report an unreachable provider as an upstream error", func(t *testing.T) {
		client := coingecko.NewClientWithURL("http://127.0.0.1:1", "", time.Second)

		_, err := client.Search(ctx, "bit")
		assert.ErrorIs(t, err, utils.ErrUpstream)
	})
}
