package services

import (
	"context"

	"cryptoapp/src/models"
	"cryptoapp/src/repositories"
	"cryptoapp/src/schemas"
	"cryptoapp/src/utils"

	"github.com/sirupsen/logrus"
)

type TransactionServiceI interface {
	Create(ctx context.Context, user *models.User, portfolioID int64, req schemas.CreateTransactionRequest) (*models.Transaction, error)
	List(ctx context.Context, user *models.User, portfolioID int64) ([]models.Transaction, error)
}

type TransactionService struct {
	transactionRepository repositories.TransactionRepository
	portfolioService      PortfolioServiceI
	holdingService        HoldingServiceI
	clock                 utils.Clock
}

func NewTransactionService(
	transactionRepository repositories.TransactionRepository,
	portfolioService PortfolioServiceI,
	holdingService HoldingServiceI,
	clock utils.Clock,
) *TransactionService {
	if clock == nil {
		clock = utils.SystemClock{}
	}
	return &TransactionService{
		transactionRepository: transactionRepository,
		portfolioService:      portfolioService,
		holdingService:        holdingService,
		clock:                 clock,
	}
}

// Create appends a transaction to the ledger and then recomputes the holding from the
// full ledger of the same asset, so the projection always sees the new entry.
func (s *TransactionService) Create(ctx context.Context, user *models.User, portfolioID int64, req schemas.CreateTransactionRequest) (*models.Transaction, error) {
	kind, err := req.Validate()
	if err != nil {
		return nil, err
	}
	if _, err := s.portfolioService.Get(ctx, user, portfolioID); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	transaction := &models.Transaction{
		PortfolioID: portfolioID,
		CryptoID:    req.CryptoID,
		Kind:        kind,
		Quantity:    req.Quantity,
		Price:       req.Price,
		Fee:         req.Fee,
		CreatedAt:   now,
		ModifiedAt:  now,
	}

	unlock := s.holdingService.Lock(transaction.Key())
	defer unlock()

	if err := s.transactionRepository.Create(ctx, transaction); err != nil {
		return nil, err
	}
	ledger, err := s.transactionRepository.GetByPortfolioAndCrypto(ctx, portfolioID, req.CryptoID)
	if err != nil {
		return nil, err
	}
	if err := s.holdingService.Recompute(ctx, ledger); err != nil {
		// The ledger entry is durable; a replay repairs the holding.
		utils.LoggerFromContext(ctx).WithError(err).WithFields(logrus.Fields{
			"transaction": transaction.ID,
			"holding":     transaction.Key().String(),
		}).Error("holding recompute failed after append")
		return nil, err
	}
	return transaction, nil
}

func (s *TransactionService) List(ctx context.Context, user *models.User, portfolioID int64) ([]models.Transaction, error) {
	if _, err := s.portfolioService.Get(ctx, user, portfolioID); err != nil {
		return nil, err
	}
	return s.transactionRepository.GetByPortfolioID(ctx, portfolioID)
}
