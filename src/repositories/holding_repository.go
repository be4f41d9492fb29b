package repositories

import (
	"context"
	"errors"

	"cryptoapp/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// HoldingRepository stores the derived position per (portfolio, asset).
type HoldingRepository interface {
	// Get returns nil when no holding exists for key.
	Get(ctx context.Context, key models.HoldingKey) (*models.Holding, error)
	// Upsert inserts the holding or updates quantity and modified_at, keeping the original created_at.
	Upsert(ctx context.Context, h *models.Holding) error
	// Delete is a no-op when the holding does not exist.
	Delete(ctx context.Context, key models.HoldingKey) error
	GetByPortfolioID(ctx context.Context, portfolioID int64) ([]models.Holding, error)
}

type holdingRepo struct {
	db *pgxpool.Pool
}

func NewHoldingRepository(db *pgxpool.Pool) HoldingRepository {
	return &holdingRepo{db: db}
}

func (r *holdingRepo) Get(ctx context.Context, key models.HoldingKey) (*models.Holding, error) {
	var h models.Holding
	var quantity string
	err := r.db.QueryRow(ctx,
		`SELECT portfolio_id, crypto_id, quantity::text, created_at, modified_at
		FROM holdings
		WHERE portfolio_id = $1 AND crypto_id = $2`,
		key.PortfolioID, key.CryptoID,
	).Scan(&h.PortfolioID, &h.CryptoID, &quantity, &h.CreatedAt, &h.ModifiedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if h.Quantity, err = parseDecimal(quantity); err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *holdingRepo) Upsert(ctx context.Context, h *models.Holding) error {
	query := `
		INSERT INTO holdings (portfolio_id, crypto_id, quantity, created_at, modified_at)
		VALUES ($1, $2, $3::text::numeric, $4, $5)
		ON CONFLICT (portfolio_id, crypto_id) DO UPDATE SET
			quantity = EXCLUDED.quantity,
			modified_at = EXCLUDED.modified_at
		RETURNING created_at, modified_at`

	return r.db.QueryRow(ctx, query,
		h.PortfolioID, h.CryptoID, h.Quantity.String(), h.CreatedAt, h.ModifiedAt,
	).Scan(&h.CreatedAt, &h.ModifiedAt)
}

func (r *holdingRepo) Delete(ctx context.Context, key models.HoldingKey) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM holdings WHERE portfolio_id = $1 AND crypto_id = $2`,
		key.PortfolioID, key.CryptoID)
	return err
}

func (r *holdingRepo) GetByPortfolioID(ctx context.Context, portfolioID int64) ([]models.Holding, error) {
	rows, err := r.db.Query(ctx,
		`SELECT portfolio_id, crypto_id, quantity::text, created_at, modified_at
		FROM holdings
		WHERE portfolio_id = $1
		ORDER BY crypto_id`,
		portfolioID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	holdings := []models.Holding{}
	for rows.Next() {
		var h models.Holding
		var quantity string
		if err := rows.Scan(&h.PortfolioID, &h.CryptoID, &quantity, &h.CreatedAt, &h.ModifiedAt); err != nil {
			return nil, err
		}
		if h.Quantity, err = parseDecimal(quantity); err != nil {
			return nil, err
		}
		holdings = append(holdings, h)
	}
	return holdings, rows.Err()
}
