package services_test

import (
	"context"
	"net/http"
	"testing"

	"cryptoapp/src/models"
	"cryptoapp/src/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportServiceGenerateXLSXLedger(t *testing.T) {
	ctx := context.Background()

	t.Run("should write the ledger and the holdings to separate sheets", func(t *testing.T) {
		f := newLedgerFixture(t)
		_, err := f.transactionService.Create(ctx, f.user, f.portfolio.ID, buyRequest("bitcoin", "1.5"))
		require.NoError(t, err)
		_, err = f.transactionService.Create(ctx, f.user, f.portfolio.ID, buyRequest("ethereum", "3"))
		require.NoError(t, err)

		export := services.NewExportService(f.transactionService, f.holdingService)
		file, err := export.GenerateXLSXLedger(ctx, f.user, f.portfolio.ID)
		require.NoError(t, err)
		defer file.Close()

		assert.Equal(t, []string{"Transactions", "Holdings"}, file.GetSheetList())

		txRows, err := file.GetRows("Transactions")
		require.NoError(t, err)
		require.Len(t, txRows, 3)
		assert.Equal(t, "Crypto", txRows[0][2])
		assert.Equal(t, "bitcoin", txRows[1][2])
		assert.Equal(t, "buy", txRows[1][3])
		assert.Equal(t, "1.5", txRows[1][4])

		holdingRows, err := file.GetRows("Holdings")
		require.NoError(t, err)
		require.Len(t, holdingRows, 3)
		assert.Equal(t, []string{"bitcoin", "1.5"}, holdingRows[1][:2])
		assert.Equal(t, []string{"ethereum", "3"}, holdingRows[2][:2])
	})

	t.Run("should refuse portfolios of other users", func(t *testing.T) {
		f := newLedgerFixture(t)
		export := services.NewExportService(f.transactionService, f.holdingService)

		_, err := export.GenerateXLSXLedger(ctx, &models.User{ID: uuid.New()}, f.portfolio.ID)
		requireHTTPStatus(t, err, http.StatusNotFound)
	})
}
