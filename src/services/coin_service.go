package services

import (
	"context"
	"strings"

	"cryptoapp/src/clients/coingecko"
	"cryptoapp/src/utils"
)

const MaxCoinsPerPage = 250

type CoinServiceI interface {
	GetCoins(ctx context.Context, params coingecko.CoinPageParams) ([]coingecko.Coin, error)
	GetCoinByID(ctx context.Context, id string) (*coingecko.CoinData, error)
	Search(ctx context.Context, query string) (*coingecko.SearchResult, error)
}

// CoinStores holds the entry stores backing the three market data caches.
type CoinStores struct {
	Pages    utils.EntryStore[coingecko.CoinPageParams, []coingecko.Coin]
	Coins    utils.EntryStore[string, *coingecko.CoinData]
	Searches utils.EntryStore[string, *coingecko.SearchResult]
}

func NewMemoryCoinStores() CoinStores {
	return CoinStores{
		Pages:    utils.NewMemoryStore[coingecko.CoinPageParams, []coingecko.Coin](),
		Coins:    utils.NewMemoryStore[string, *coingecko.CoinData](),
		Searches: utils.NewMemoryStore[string, *coingecko.SearchResult](),
	}
}

// CoinService serves market data through per-query-shape caches in front of the provider.
type CoinService struct {
	client coingecko.CoinGeckoServiceClientI

	pages    *utils.Cache[coingecko.CoinPageParams, []coingecko.Coin]
	coins    *utils.Cache[string, *coingecko.CoinData]
	searches *utils.Cache[string, *coingecko.SearchResult]
}

// NewCoinService builds the caches once; environment is consulted on every lookup.
func NewCoinService(client coingecko.CoinGeckoServiceClientI, environment func() string, stores CoinStores, opts utils.CacheOptions) *CoinService {
	return &CoinService{
		client:   client,
		pages:    utils.NewCache("coin_pages", stores.Pages, environment, opts),
		coins:    utils.NewCache("coin_data", stores.Coins, environment, opts),
		searches: utils.NewCache("coin_search", stores.Searches, environment, opts),
	}
}

func (s *CoinService) GetCoins(ctx context.Context, params coingecko.CoinPageParams) ([]coingecko.Coin, error) {
	params.VsCurrency = strings.TrimSpace(params.VsCurrency)
	if params.VsCurrency == "" {
		return nil, utils.BadRequest("vs_currency must not be blank")
	}
	if params.Page < 0 {
		return nil, utils.BadRequest("page must be greater than or equal to 0")
	}
	if params.PerPage < 1 || params.PerPage > MaxCoinsPerPage {
		return nil, utils.BadRequest("per_page must be between 1 and 250")
	}

	return s.pages.GetOrFetch(ctx, params, func(ctx context.Context) ([]coingecko.Coin, error) {
		return s.client.GetCoins(ctx, params)
	})
}

func (s *CoinService) GetCoinByID(ctx context.Context, id string) (*coingecko.CoinData, error) {
	if strings.TrimSpace(id) == "" {
		return nil, utils.BadRequest("id must not be blank")
	}
	return s.coins.GetOrFetch(ctx, id, func(ctx context.Context) (*coingecko.CoinData, error) {
		return s.client.GetCoinByID(ctx, id)
	})
}

func (s *CoinService) Search(ctx context.Context, query string) (*coingecko.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, utils.BadRequest("query must not be blank")
	}
	return s.searches.GetOrFetch(ctx, query, func(ctx context.Context) (*coingecko.SearchResult, error) {
		return s.client.Search(ctx, query)
	})
}
