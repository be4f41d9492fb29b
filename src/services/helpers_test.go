package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"cryptoapp/src/clients/mail"
	"cryptoapp/src/models"
	"cryptoapp/src/repositories"
	"cryptoapp/src/services"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mutex sync.Mutex
	now   time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.now = c.now.Add(d)
}

type recordingSender struct {
	mutex sync.Mutex
	sent  []mail.SendMailRequest
	err   error
}

func (s *recordingSender) Send(_ context.Context, req mail.SendMailRequest) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.sent = append(s.sent, req)
	return s.err
}

func (s *recordingSender) Sent() []mail.SendMailRequest {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return append([]mail.SendMailRequest(nil), s.sent...)
}

type ledgerFixture struct {
	clock        *fakeClock
	transactions *repositories.MemoryTransactionRepository
	holdings     *repositories.MemoryHoldingRepository
	portfolios   *repositories.MemoryPortfolioRepository

	holdingService     *services.HoldingService
	portfolioService   *services.PortfolioService
	transactionService *services.TransactionService

	user      *models.User
	portfolio *models.Portfolio
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()

	f := &ledgerFixture{
		clock:        newFakeClock(),
		transactions: repositories.NewMemoryTransactionRepository(),
		holdings:     repositories.NewMemoryHoldingRepository(),
	}
	f.portfolios = repositories.NewMemoryPortfolioRepository(f.transactions, f.holdings)
	f.holdingService = services.NewHoldingService(f.holdings, f.transactions, f.portfolios, f.clock)
	f.portfolioService = services.NewPortfolioService(f.portfolios, f.clock)
	f.transactionService = services.NewTransactionService(f.transactions, f.portfolioService, f.holdingService, f.clock)

	f.user = &models.User{ID: uuid.New(), Username: "ada@example.com", FirstName: "Ada", LastName: "Lovelace"}
	portfolio, err := f.portfolioService.Create(context.Background(), f.user, "Main")
	require.NoError(t, err)
	f.portfolio = portfolio
	return f
}

// appendRaw writes straight to the ledger without touching holdings.
func (f *ledgerFixture) appendRaw(t *testing.T, cryptoID string, kind models.TransactionKind, quantity string) models.Transaction {
	t.Helper()
	tx := &models.Transaction{
		PortfolioID: f.portfolio.ID,
		CryptoID:    cryptoID,
		Kind:        kind,
		Quantity:    decimal.RequireFromString(quantity),
		Price:       decimal.NewFromInt(1),
		CreatedAt:   f.clock.Now(),
		ModifiedAt:  f.clock.Now(),
	}
	require.NoError(t, f.transactions.Create(context.Background(), tx))
	return *tx
}

func (f *ledgerFixture) ledger(t *testing.T, cryptoID string) []models.Transaction {
	t.Helper()
	txs, err := f.transactions.GetByPortfolioAndCrypto(context.Background(), f.portfolio.ID, cryptoID)
	require.NoError(t, err)
	return txs
}

func (f *ledgerFixture) key(cryptoID string) models.HoldingKey {
	return models.HoldingKey{PortfolioID: f.portfolio.ID, CryptoID: cryptoID}
}

func tx(kind models.TransactionKind, quantity string) models.Transaction {
	return models.Transaction{
		PortfolioID: 1,
		CryptoID:    "bitcoin",
		Kind:        kind,
		Quantity:    decimal.RequireFromString(quantity),
	}
}
