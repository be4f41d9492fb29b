package schemas_test

import (
	"net/http"
	"strings"
	"testing"

	"cryptoapp/src/models"
	"cryptoapp/src/schemas"
	"cryptoapp/src/utils"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func badRequestMessage(t *testing.T, err error) string {
	t.Helper()
	var httpErr *utils.HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, http.StatusBadRequest, httpErr.Code)
	return httpErr.Message
}

func TestRegisterRequestValidate(t *testing.T) {
	valid := schemas.RegisterRequest{
		FirstName:      "Ada",
		LastName:       "Lovelace",
		Username:       "ada@example.com",
		Password:       "password1",
		VerifyPassword: "password1",
	}
	require.NoError(t, valid.Validate())

	t.Run("should reject a malformed email", func(t *testing.T) {
		req := valid
		req.Username = "not-an-email"
		assert.Contains(t, badRequestMessage(t, req.Validate()), "username must be a well-formed email address")
	})

	t.Run("should reject short passwords", func(t *testing.T) {
		req := valid
		req.Password, req.VerifyPassword = "short", "short"
		assert.Contains(t, badRequestMessage(t, req.Validate()), "password size must be between 8 and 255")
	})

	t.Run("should reject long names", func(t *testing.T) {
		req := valid
		req.FirstName = strings.Repeat("a", 51)
		assert.Contains(t, badRequestMessage(t, req.Validate()), "firstName size must be between 1 and 50")
	})

	t.Run("should reject mismatched passwords", func(t *testing.T) {
		req := valid
		req.VerifyPassword = "password2"
		assert.Contains(t, badRequestMessage(t, req.Validate()), "verifyPassword must match password")
	})
}

func TestCreateTransactionRequestValidate(t *testing.T) {
	valid := schemas.CreateTransactionRequest{
		CryptoID: "bitcoin",
		Type:     "Sell",
		Quantity: decimal.RequireFromString("0.5"),
		Price:    decimal.Zero,
		Fee:      decimal.Zero,
	}

	t.Run("should normalize the kind", func(t *testing.T) {
		kind, err := valid.Validate()
		require.NoError(t, err)
		assert.Equal(t, models.Sell, kind)
	})

	t.Run("should report every invalid field", func(t *testing.T) {
		req := schemas.CreateTransactionRequest{
			CryptoID: "",
			Type:     "swap",
			Quantity: decimal.Zero,
			Price:    decimal.NewFromInt(-1),
			Fee:      decimal.NewFromInt(-1),
		}
		_, err := req.Validate()
		message := badRequestMessage(t, err)
		for _, expected := range []string{
			"cryptoId must not be blank",
			"type must be either 'buy' or 'sell'",
			"quantity must be greater than 0",
			"price must be greater than or equal to 0",
			"fee must be greater than or equal to 0",
		} {
			assert.Contains(t, message, expected)
		}
	})

	t.Run("should accept amounts at the stored precision and range", func(t *testing.T) {
		req := valid
		req.Quantity = decimal.RequireFromString("0.000000000000000001")
		req.Price = decimal.RequireFromString("99999999999999999999.999999999999999999")
		req.Fee = decimal.RequireFromString("1.500000000000000000000")
		_, err := req.Validate()
		assert.NoError(t, err)
	})

	t.Run("should reject amounts the ledger would round or overflow", func(t *testing.T) {
		tests := []struct {
			name     string
			mutate   func(r *schemas.CreateTransactionRequest)
			expected string
		}{
			{"tiny quantity", func(r *schemas.CreateTransactionRequest) {
				r.Quantity = decimal.RequireFromString("0.0000000000000000001")
			}, "quantity must have at most 18 decimal places"},
			{"huge quantity", func(r *schemas.CreateTransactionRequest) {
				r.Quantity = decimal.RequireFromString("1e25")
			}, "quantity must be less than 100000000000000000000"},
			{"price at the limit", func(r *schemas.CreateTransactionRequest) {
				r.Price = decimal.New(1, 20)
			}, "price must be less than"},
			{"fee below the scale", func(r *schemas.CreateTransactionRequest) {
				r.Fee = decimal.New(5, -19)
			}, "fee must have at most 18 decimal places"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				req := valid
				tt.mutate(&req)
				_, err := req.Validate()
				assert.Contains(t, badRequestMessage(t, err), tt.expected)
			})
		}
	})
}

func TestPortfolioNameRequestValidate(t *testing.T) {
	assert.NoError(t, schemas.PortfolioNameRequest{Name: "Main"}.Validate())
	assert.Error(t, schemas.PortfolioNameRequest{Name: ""}.Validate())
	assert.Error(t, schemas.PortfolioNameRequest{Name: strings.Repeat("x", 256)}.Validate())
}

func TestChangePasswordRequestValidate(t *testing.T) {
	err := schemas.ChangePasswordRequest{Username: "ada@example.com", NewPassword: "password1", VerifyNewPassword: "password1"}.Validate()
	assert.Contains(t, badRequestMessage(t, err), "code must not be blank")
}
