package services_test

import (
	"testing"

	"cryptoapp/src/models"
	"cryptoapp/src/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectQuantity(t *testing.T) {
	t.Run("should add buys and subtract sells", func(t *testing.T) {
		quantity, err := services.ProjectQuantity([]models.Transaction{
			tx(models.Buy, "2"),
			tx(models.Buy, "3"),
			tx(models.Sell, "1"),
		})
		require.NoError(t, err)
		assert.True(t, quantity.Equal(decimal.NewFromInt(4)), "got %s", quantity)
	})

	t.Run("should be exact for decimal fractions", func(t *testing.T) {
		quantity, err := services.ProjectQuantity([]models.Transaction{
			tx(models.Buy, "0.1"),
			tx(models.Buy, "0.2"),
			tx(models.Sell, "0.3"),
		})
		require.NoError(t, err)
		assert.True(t, quantity.IsZero(), "got %s", quantity)
	})

	t.Run("should allow a negative position", func(t *testing.T) {
		quantity, err := services.ProjectQuantity([]models.Transaction{tx(models.Sell, "1.5")})
		require.NoError(t, err)
		assert.True(t, quantity.Equal(decimal.RequireFromString("-1.5")))
	})

	t.Run("should return zero for an empty ledger", func(t *testing.T) {
		quantity, err := services.ProjectQuantity(nil)
		require.NoError(t, err)
		assert.True(t, quantity.IsZero())
	})

	t.Run("should reject an unknown kind", func(t *testing.T) {
		_, err := services.ProjectQuantity([]models.Transaction{
			tx(models.Buy, "1"),
			tx(models.TransactionKind("transfer"), "1"),
		})
		assert.ErrorIs(t, err, services.ErrUnknownTransactionKind)
	})
}
