package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// HoldingKey identifies a position: one asset inside one portfolio.
type HoldingKey struct {
	PortfolioID int64
	CryptoID    string
}

func (k HoldingKey) String() string {
	return fmt.Sprintf("%d/%s", k.PortfolioID, k.CryptoID)
}

// Holding is derived from the ledger. A zero position is never stored.
type Holding struct {
	PortfolioID int64           `db:"portfolio_id" json:"portfolioId"`
	CryptoID    string          `db:"crypto_id" json:"cryptoId"`
	Quantity    decimal.Decimal `db:"quantity" json:"quantity"`
	CreatedAt   time.Time       `db:"created_at" json:"createdAt"`
	ModifiedAt  time.Time       `db:"modified_at" json:"modifiedAt"`
}

func (h Holding) Key() HoldingKey {
	return HoldingKey{PortfolioID: h.PortfolioID, CryptoID: h.CryptoID}
}
