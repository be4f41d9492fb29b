package coingecko

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"cryptoapp/src/config"
	"cryptoapp/src/utils"
	"cryptoapp/src/utils/requests"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	DefaultBaseURL = "https://api.coingecko.com/api/v3"
	DefaultTimeout = 10 * time.Second

	apiKeyHeader = "x-cg-demo-api-key"
)

type CoinGeckoServiceClientI interface {
	GetCoins(ctx context.Context, params CoinPageParams) ([]Coin, error)
	GetCoinByID(ctx context.Context, id string) (*CoinData, error)
	Search(ctx context.Context, query string) (*SearchResult, error)
}

type CoinGeckoServiceClient struct {
	API     *requests.ExternalAPIService
	BaseURL string
}

// NewClient creates a client from configuration. apiKey is passed separately since it
// may come from the secrets manager rather than the config file.
func NewClient(cfg *config.Config, apiKey string) *CoinGeckoServiceClient {
	timeout := DefaultTimeout
	if cfg.ExternalClients.CoinGecko.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.ExternalClients.CoinGecko.TimeoutSeconds) * time.Second
	}
	baseURL := cfg.ExternalClients.CoinGecko.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return NewClientWithURL(baseURL, apiKey, timeout)
}

func NewClientWithURL(baseURL, apiKey string, timeout time.Duration) *CoinGeckoServiceClient {
	headers := map[string]string{"Accept": "application/json"}
	if apiKey != "" {
		headers[apiKeyHeader] = apiKey
	}
	return &CoinGeckoServiceClient{
		API:     requests.NewExternalAPIService(timeout, headers),
		BaseURL: strings.TrimRight(baseURL, "/"),
	}
}

// GetCoins fetches one page of the market listing.
func (c *CoinGeckoServiceClient) GetCoins(ctx context.Context, p CoinPageParams) ([]Coin, error) {
	params := url.Values{}
	params.Set("vs_currency", p.VsCurrency)
	params.Set("page", strconv.Itoa(p.Page))
	params.Set("per_page", strconv.Itoa(p.PerPage))
	if p.IDs != "" {
		params.Set("ids", p.IDs)
	}

	var coins []Coin
	if err := c.get(ctx, "markets", c.BaseURL+"/coins/markets", params, &coins); err != nil {
		return nil, err
	}
	if coins == nil {
		coins = []Coin{}
	}
	return coins, nil
}

func (c *CoinGeckoServiceClient) GetCoinByID(ctx context.Context, id string) (*CoinData, error) {
	endpoint := fmt.Sprintf("%s/coins/%s", c.BaseURL, url.PathEscape(id))
	params := url.Values{}
	params.Set("tickers", "false")
	params.Set("market_data", "true")
	params.Set("community_data", "false")
	params.Set("developer_data", "false")
	params.Set("sparkline", "false")

	var coin CoinData
	if err := c.get(ctx, "coin", endpoint, params, &coin); err != nil {
		return nil, err
	}
	if coin.ID == "" {
		return nil, fmt.Errorf("%w: empty coin document for %s", utils.ErrUpstream, id)
	}
	return &coin, nil
}

func (c *CoinGeckoServiceClient) Search(ctx context.Context, query string) (*SearchResult, error) {
	params := url.Values{}
	params.Set("query", query)

	var result SearchResult
	if err := c.get(ctx, "search", c.BaseURL+"/search", params, &result); err != nil {
		return nil, err
	}
	if result.Coins == nil {
		result.Coins = []SearchCoin{}
	}
	return &result, nil
}

// get performs the request and reports every failure as utils.ErrUpstream.
func (c *CoinGeckoServiceClient) get(ctx context.Context, operation, endpoint string, params url.Values, result interface{}) error {
	timer := prometheus.NewTimer(utils.UpstreamLatency.WithLabelValues(operation))
	err := c.API.GetJSON(ctx, endpoint, params, result)
	timer.ObserveDuration()

	if err != nil {
		outcome := "error"
		var statusErr *requests.StatusError
		if errors.As(err, &statusErr) {
			outcome = strconv.Itoa(statusErr.StatusCode)
		}
		utils.UpstreamRequests.WithLabelValues(operation, outcome).Inc()
		return fmt.Errorf("%w: coingecko %s: %w", utils.ErrUpstream, operation, err)
	}
	utils.UpstreamRequests.WithLabelValues(operation, "ok").Inc()
	return nil
}
