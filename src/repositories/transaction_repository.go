package repositories

import (
	"context"

	"cryptoapp/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TransactionRepository is the append-only ledger store.
type TransactionRepository interface {
	Create(ctx context.Context, t *models.Transaction) error
	GetByPortfolioAndCrypto(ctx context.Context, portfolioID int64, cryptoID string) ([]models.Transaction, error)
	GetByPortfolioID(ctx context.Context, portfolioID int64) ([]models.Transaction, error)
}

type transactionRepo struct {
	db *pgxpool.Pool
}

func NewTransactionRepository(db *pgxpool.Pool) TransactionRepository {
	return &transactionRepo{db: db}
}

const transactionColumns = `id, portfolio_id, crypto_id, type, quantity::text, price::text, fee::text, created_at, modified_at`

func (r *transactionRepo) Create(ctx context.Context, t *models.Transaction) error {
	query := `
		INSERT INTO transactions (portfolio_id, crypto_id, type, quantity, price, fee, created_at, modified_at)
		VALUES ($1, $2, $3, $4::text::numeric, $5::text::numeric, $6::text::numeric, $7, $8)
		RETURNING id`

	return r.db.QueryRow(ctx, query,
		t.PortfolioID, t.CryptoID, string(t.Kind),
		t.Quantity.String(), t.Price.String(), t.Fee.String(),
		t.CreatedAt, t.ModifiedAt,
	).Scan(&t.ID)
}

func (r *transactionRepo) GetByPortfolioAndCrypto(ctx context.Context, portfolioID int64, cryptoID string) ([]models.Transaction, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+transactionColumns+` FROM transactions
		WHERE portfolio_id = $1 AND crypto_id = $2
		ORDER BY id`,
		portfolioID, cryptoID)
	if err != nil {
		return nil, err
	}
	return scanTransactions(rows)
}

func (r *transactionRepo) GetByPortfolioID(ctx context.Context, portfolioID int64) ([]models.Transaction, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+transactionColumns+` FROM transactions
		WHERE portfolio_id = $1
		ORDER BY id`,
		portfolioID)
	if err != nil {
		return nil, err
	}
	return scanTransactions(rows)
}

func scanTransactions(rows pgx.Rows) ([]models.Transaction, error) {
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		var t models.Transaction
		var kind, quantity, price, fee string
		if err := rows.Scan(&t.ID, &t.PortfolioID, &t.CryptoID, &kind, &quantity, &price, &fee, &t.CreatedAt, &t.ModifiedAt); err != nil {
			return nil, err
		}
		t.Kind = models.TransactionKind(kind)

		var err error
		if t.Quantity, err = parseDecimal(quantity); err != nil {
			return nil, err
		}
		if t.Price, err = parseDecimal(price); err != nil {
			return nil, err
		}
		if t.Fee, err = parseDecimal(fee); err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}
