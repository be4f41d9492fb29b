package services

import (
	"errors"
	"fmt"

	"cryptoapp/src/models"

	"github.com/shopspring/decimal"
)

var (
	ErrUnknownTransactionKind = errors.New("unknown transaction kind")
	ErrEmptyLedger            = errors.New("recompute requires at least one transaction")
	ErrMixedLedgerKeys        = errors.New("transactions belong to different holdings")
)

// ProjectQuantity folds a ledger into a position: buys add, sells subtract.
func ProjectQuantity(txs []models.Transaction) (decimal.Decimal, error) {
	quantity := decimal.Zero
	for _, t := range txs {
		switch t.Kind {
		case models.Buy:
			quantity = quantity.Add(t.Quantity)
		case models.Sell:
			quantity = quantity.Sub(t.Quantity)
		default:
			return decimal.Zero, fmt.Errorf("%w: %q in transaction %d", ErrUnknownTransactionKind, t.Kind, t.ID)
		}
	}
	return quantity, nil
}

// ledgerKey checks that txs is non-empty and shares a single holding key.
func ledgerKey(txs []models.Transaction) (models.HoldingKey, error) {
	if len(txs) == 0 {
		return models.HoldingKey{}, ErrEmptyLedger
	}
	key := txs[0].Key()
	for _, t := range txs[1:] {
		if t.Key() != key {
			return models.HoldingKey{}, fmt.Errorf("%w: %s and %s", ErrMixedLedgerKeys, key, t.Key())
		}
	}
	return key, nil
}

// groupByKey splits a portfolio ledger into per-asset slices.
func groupByKey(txs []models.Transaction) map[models.HoldingKey][]models.Transaction {
	groups := make(map[models.HoldingKey][]models.Transaction)
	for _, t := range txs {
		groups[t.Key()] = append(groups[t.Key()], t)
	}
	return groups
}
