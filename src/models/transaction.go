package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type TransactionKind string

const (
	Buy  TransactionKind = "buy"
	Sell TransactionKind = "sell"
)

// ParseTransactionKind accepts "buy" or "sell" in any letter case.
func ParseTransactionKind(s string) (TransactionKind, bool) {
	switch TransactionKind(strings.ToLower(strings.TrimSpace(s))) {
	case Buy:
		return Buy, true
	case Sell:
		return Sell, true
	}
	return "", false
}

// Transaction is an immutable ledger entry. Rows are only removed through portfolio deletion.
type Transaction struct {
	ID          int64           `db:"id" json:"id"`
	PortfolioID int64           `db:"portfolio_id" json:"portfolioId"`
	CryptoID    string          `db:"crypto_id" json:"cryptoId"`
	Kind        TransactionKind `db:"type" json:"type"`
	Quantity    decimal.Decimal `db:"quantity" json:"quantity"`
	Price       decimal.Decimal `db:"price" json:"price"`
	Fee         decimal.Decimal `db:"fee" json:"fee"`
	CreatedAt   time.Time       `db:"created_at" json:"createdAt"`
	ModifiedAt  time.Time       `db:"modified_at" json:"modifiedAt"`
}

func (t Transaction) Key() HoldingKey {
	return HoldingKey{PortfolioID: t.PortfolioID, CryptoID: t.CryptoID}
}
