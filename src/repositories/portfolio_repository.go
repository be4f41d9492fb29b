package repositories

import (
	"context"
	"errors"

	"cryptoapp/src/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PortfolioRepository interface {
	Create(ctx context.Context, p *models.Portfolio) error
	// GetByIDAndUser returns nil when the portfolio does not exist or belongs to someone else.
	GetByIDAndUser(ctx context.Context, id int64, userID uuid.UUID) (*models.Portfolio, error)
	GetByUser(ctx context.Context, userID uuid.UUID) ([]models.Portfolio, error)
	// ExistsByNameAndUser ignores the portfolio with id excludeID; pass 0 to consider all.
	ExistsByNameAndUser(ctx context.Context, name string, userID uuid.UUID, excludeID int64) (bool, error)
	Update(ctx context.Context, p *models.Portfolio) error
	// Delete removes the portfolio together with its ledger and holdings.
	Delete(ctx context.Context, id int64) error
	GetAllIDs(ctx context.Context) ([]int64, error)
}

type portfolioRepo struct {
	db *pgxpool.Pool
}

func NewPortfolioRepository(db *pgxpool.Pool) PortfolioRepository {
	return &portfolioRepo{db: db}
}

func (r *portfolioRepo) Create(ctx context.Context, p *models.Portfolio) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO portfolios (user_id, name, created_at, modified_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		p.UserID, p.Name, p.CreatedAt, p.ModifiedAt,
	).Scan(&p.ID)
	return translateError(err)
}

func (r *portfolioRepo) GetByIDAndUser(ctx context.Context, id int64, userID uuid.UUID) (*models.Portfolio, error) {
	var p models.Portfolio
	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, name, created_at, modified_at
		FROM portfolios
		WHERE id = $1 AND user_id = $2`,
		id, userID,
	).Scan(&p.ID, &p.UserID, &p.Name, &p.CreatedAt, &p.ModifiedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *portfolioRepo) GetByUser(ctx context.Context, userID uuid.UUID) ([]models.Portfolio, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, name, created_at, modified_at
		FROM portfolios
		WHERE user_id = $1
		ORDER BY id`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	portfolios := []models.Portfolio{}
	for rows.Next() {
		var p models.Portfolio
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.CreatedAt, &p.ModifiedAt); err != nil {
			return nil, err
		}
		portfolios = append(portfolios, p)
	}
	return portfolios, rows.Err()
}

func (r *portfolioRepo) ExistsByNameAndUser(ctx context.Context, name string, userID uuid.UUID, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM portfolios WHERE name = $1 AND user_id = $2 AND id <> $3
		)`,
		name, userID, excludeID,
	).Scan(&exists)
	return exists, err
}

func (r *portfolioRepo) Update(ctx context.Context, p *models.Portfolio) error {
	_, err := r.db.Exec(ctx,
		`UPDATE portfolios SET name = $1, modified_at = $2 WHERE id = $3`,
		p.Name, p.ModifiedAt, p.ID)
	return translateError(err)
}

func (r *portfolioRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM portfolios WHERE id = $1`, id)
	return err
}

func (r *portfolioRepo) GetAllIDs(ctx context.Context) ([]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT id FROM portfolios ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[int64])
}
