package schemas

import (
	"cryptoapp/src/models"

	"github.com/shopspring/decimal"
)

// CreateTransactionRequest accepts amounts as JSON numbers or numeric strings.
type CreateTransactionRequest struct {
	CryptoID string          `json:"cryptoId"`
	Type     string          `json:"type"`
	Quantity decimal.Decimal `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Fee      decimal.Decimal `json:"fee"`
}

// Validate checks the request and returns the normalized transaction kind.
func (r CreateTransactionRequest) Validate() (models.TransactionKind, error) {
	var errs fieldErrors
	if errs.notBlank("cryptoId", r.CryptoID) {
		errs.size("cryptoId", r.CryptoID, 1, 255)
	}
	kind, ok := models.ParseTransactionKind(r.Type)
	if !ok {
		errs.add("type", "must be either 'buy' or 'sell'")
	}
	if !r.Quantity.IsPositive() {
		errs.add("quantity", "must be greater than 0")
	}
	if r.Price.IsNegative() {
		errs.add("price", "must be greater than or equal to 0")
	}
	if r.Fee.IsNegative() {
		errs.add("fee", "must be greater than or equal to 0")
	}
	errs.amount("quantity", r.Quantity)
	errs.amount("price", r.Price)
	errs.amount("fee", r.Fee)
	return kind, errs.err()
}

type PortfolioNameRequest struct {
	Name string `json:"name"`
}

func (r PortfolioNameRequest) Validate() error {
	var errs fieldErrors
	if errs.notBlank("name", r.Name) {
		errs.size("name", r.Name, 1, 255)
	}
	return errs.err()
}
