package coingecko

// CoinPageParams identifies one market listing page. Two requests with equal
// params share a cache entry.
type CoinPageParams struct {
	VsCurrency string
	Page       int
	PerPage    int
	IDs        string
}

type Roi struct {
	Times      float64 `json:"times"`
	Currency   string  `json:"currency"`
	Percentage float64 `json:"percentage"`
}

// Coin is one row of the /coins/markets listing.
type Coin struct {
	ID                           string   `json:"id"`
	Symbol                       string   `json:"symbol"`
	Name                         string   `json:"name"`
	Image                        string   `json:"image"`
	CurrentPrice                 float64  `json:"current_price"`
	MarketCap                    float64  `json:"market_cap"`
	MarketCapRank                int      `json:"market_cap_rank"`
	FullyDilutedValuation        float64  `json:"fully_diluted_valuation"`
	TotalVolume                  float64  `json:"total_volume"`
	High24h                      float64  `json:"high_24h"`
	Low24h                       float64  `json:"low_24h"`
	PriceChange24h               float64  `json:"price_change_24h"`
	PriceChangePercentage24h     float64  `json:"price_change_percentage_24h"`
	MarketCapChange24h           float64  `json:"market_cap_change_24h"`
	MarketCapChangePercentage24h float64  `json:"market_cap_change_percentage_24h"`
	CirculatingSupply            float64  `json:"circulating_supply"`
	TotalSupply                  *float64 `json:"total_supply"`
	MaxSupply                    *float64 `json:"max_supply"`
	Ath                          float64  `json:"ath"`
	AthChangePercentage          float64  `json:"ath_change_percentage"`
	AthDate                      string   `json:"ath_date"`
	Atl                          float64  `json:"atl"`
	AtlChangePercentage          float64  `json:"atl_change_percentage"`
	AtlDate                      string   `json:"atl_date"`
	Roi                          *Roi     `json:"roi"`
	LastUpdated                  string   `json:"last_updated"`
}

type CurrencyValues struct {
	USD float64 `json:"usd"`
	EUR float64 `json:"eur"`
}

type MarketData struct {
	CurrentPrice                       CurrencyValues `json:"current_price"`
	MarketCap                          CurrencyValues `json:"market_cap"`
	MarketCapRank                      int            `json:"market_cap_rank"`
	TotalVolume                        CurrencyValues `json:"total_volume"`
	High24h                            CurrencyValues `json:"high_24h"`
	Low24h                             CurrencyValues `json:"low_24h"`
	PriceChangePercentage24hInCurrency CurrencyValues `json:"price_change_percentage_24h_in_currency"`
	TotalSupply                        *float64       `json:"total_supply"`
	MaxSupply                          *float64       `json:"max_supply"`
	CirculatingSupply                  float64        `json:"circulating_supply"`
}

type Description struct {
	En string `json:"en"`
}

type Links struct {
	Homepage []string `json:"homepage"`
}

type Image struct {
	Thumb string `json:"thumb"`
	Small string `json:"small"`
	Large string `json:"large"`
}

// CoinData is the detail document of a single coin.
type CoinData struct {
	ID          string      `json:"id"`
	Symbol      string      `json:"symbol"`
	Name        string      `json:"name"`
	Description Description `json:"description"`
	Categories  []string    `json:"categories"`
	Links       Links       `json:"links"`
	Image       Image       `json:"image"`
	MarketData  MarketData  `json:"market_data"`
}

type SearchCoin struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	APISymbol     string `json:"api_symbol"`
	Symbol        string `json:"symbol"`
	MarketCapRank int    `json:"market_cap_rank"`
	Thumb         string `json:"thumb"`
	Large         string `json:"large"`
}

type SearchResult struct {
	Coins []SearchCoin `json:"coins"`
}
