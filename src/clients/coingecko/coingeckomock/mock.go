package coingeckomock

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sync"

	"cryptoapp/src/clients/coingecko"
	"cryptoapp/src/utils"
)

// CoinGeckoServiceClientMock implements coingecko.CoinGeckoServiceClientI
// by reading saved JSON responses instead of calling the provider.
type CoinGeckoServiceClientMock struct {
	mockDataDir string

	mutex sync.Mutex
	calls map[string]int
	// Err, when set, is returned by every call.
	Err error
}

// NewMockClient creates a mock reading markets_response.json, coin_response.json
// and search_response.json from mockDataDir.
func NewMockClient(mockDataDir string) *CoinGeckoServiceClientMock {
	return &CoinGeckoServiceClientMock{
		mockDataDir: mockDataDir,
		calls:       make(map[string]int),
	}
}

// Calls returns how many times operation was invoked.
func (c *CoinGeckoServiceClientMock) Calls(operation string) int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.calls[operation]
}

func (c *CoinGeckoServiceClientMock) SetErr(err error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.Err = err
}

func (c *CoinGeckoServiceClientMock) record(operation string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.calls[operation]++
	return c.Err
}

func (c *CoinGeckoServiceClientMock) read(fileName string, result interface{}) error {
	responseBytes, err := ReadResponseFromFile(filepath.Join(c.mockDataDir, fileName))
	if err != nil {
		return err
	}
	return json.Unmarshal(responseBytes, result)
}

func (c *CoinGeckoServiceClientMock) GetCoins(_ context.Context, _ coingecko.CoinPageParams) ([]coingecko.Coin, error) {
	if err := c.record("markets"); err != nil {
		return nil, err
	}
	var coins []coingecko.Coin
	if err := c.read("markets_response.json", &coins); err != nil {
		return nil, err
	}
	return coins, nil
}

func (c *CoinGeckoServiceClientMock) GetCoinByID(_ context.Context, id string) (*coingecko.CoinData, error) {
	if err := c.record("coin"); err != nil {
		return nil, err
	}
	var coin coingecko.CoinData
	if err := c.read("coin_response.json", &coin); err != nil {
		return nil, err
	}
	if coin.ID != id {
		return nil, fmt.Errorf("%w: no fixture for coin %s", utils.ErrUpstream, id)
	}
	return &coin, nil
}

func (c *CoinGeckoServiceClientMock) Search(_ context.Context, _ string) (*coingecko.SearchResult, error) {
	if err := c.record("search"); err != nil {
		return nil, err
	}
	var result coingecko.SearchResult
	if err := c.read("search_response.json", &result); err != nil {
		return nil, err
	}
	return &result, nil
}
