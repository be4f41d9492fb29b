package services

import (
	"context"
	"sort"

	"cryptoapp/src/models"
	"cryptoapp/src/repositories"
	"cryptoapp/src/utils"

	"github.com/sirupsen/logrus"
)

const (
	ActionUpsert = "upsert"
	ActionDelete = "delete"
	ActionNoop   = "noop"
)

type HoldingServiceI interface {
	Lock(key models.HoldingKey) func()
	Recompute(ctx context.Context, txs []models.Transaction) error
	ReplayPortfolio(ctx context.Context, portfolioID int64) (*ReplayResult, error)
	ReplayAll(ctx context.Context) (*ReplayResult, error)
	GetAllByPortfolio(ctx context.Context, portfolioID int64) ([]models.Holding, error)
	GetByKey(ctx context.Context, key models.HoldingKey) (*models.Holding, error)
}

type ReplayResult struct {
	Portfolios int `json:"portfolios"`
	Upserted   int `json:"upserted"`
	Deleted    int `json:"deleted"`
	Unchanged  int `json:"unchanged"`
}

func (r *ReplayResult) add(action string) {
	switch action {
	case ActionUpsert:
		r.Upserted++
	case ActionDelete:
		r.Deleted++
	default:
		r.Unchanged++
	}
}

// HoldingService keeps every stored holding equal to the projection of its ledger.
type HoldingService struct {
	holdingRepository     repositories.HoldingRepository
	transactionRepository repositories.TransactionRepository
	portfolioRepository   repositories.PortfolioRepository

	clock utils.Clock
	locks *utils.KeyedMutex
}

func NewHoldingService(
	holdingRepository repositories.HoldingRepository,
	transactionRepository repositories.TransactionRepository,
	portfolioRepository repositories.PortfolioRepository,
	clock utils.Clock,
) *HoldingService {
	if clock == nil {
		clock = utils.SystemClock{}
	}
	return &HoldingService{
		holdingRepository:     holdingRepository,
		transactionRepository: transactionRepository,
		portfolioRepository:   portfolioRepository,
		clock:                 clock,
		locks:                 utils.NewKeyedMutex(),
	}
}

// Lock serializes ledger appends and recomputes for one holding key within this process.
func (s *HoldingService) Lock(key models.HoldingKey) func() {
	return s.locks.Lock(key.String())
}

// Recompute projects the full ledger of a single holding key and stores the result.
// A zero position removes the holding. Callers must pass every transaction for the key.
func (s *HoldingService) Recompute(ctx context.Context, txs []models.Transaction) error {
	_, err := s.recompute(ctx, txs)
	return err
}

func (s *HoldingService) recompute(ctx context.Context, txs []models.Transaction) (string, error) {
	logger := utils.LoggerFromContext(ctx)

	key, err := ledgerKey(txs)
	if err != nil {
		logger.WithError(err).Error("refusing to recompute holding")
		return "", err
	}
	quantity, err := ProjectQuantity(txs)
	if err != nil {
		logger.WithError(err).WithField("holding", key.String()).Error("ledger contains an invalid transaction")
		return "", err
	}

	existing, err := s.holdingRepository.Get(ctx, key)
	if err != nil {
		return "", err
	}

	action := ActionUpsert
	if quantity.IsZero() {
		action = ActionNoop
		if existing != nil {
			if err := s.holdingRepository.Delete(ctx, key); err != nil {
				return "", err
			}
			action = ActionDelete
		}
	} else {
		now := s.clock.Now()
		holding := &models.Holding{
			PortfolioID: key.PortfolioID,
			CryptoID:    key.CryptoID,
			Quantity:    quantity,
			CreatedAt:   now,
			ModifiedAt:  now,
		}
		if existing != nil {
			holding.CreatedAt = existing.CreatedAt
		}
		if err := s.holdingRepository.Upsert(ctx, holding); err != nil {
			return "", err
		}
	}

	utils.HoldingRecomputes.WithLabelValues(action).Inc()
	logger.WithFields(logrus.Fields{
		"holding":  key.String(),
		"quantity": quantity.String(),
		"action":   action,
	}).Debug("holding recomputed")
	return action, nil
}

// ReplayPortfolio rebuilds every holding of a portfolio from its ledger. Holdings
// without any transaction left are removed.
func (s *HoldingService) ReplayPortfolio(ctx context.Context, portfolioID int64) (*ReplayResult, error) {
	result := &ReplayResult{}
	if err := s.replayPortfolio(ctx, portfolioID, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *HoldingService) ReplayAll(ctx context.Context) (*ReplayResult, error) {
	ids, err := s.portfolioRepository.GetAllIDs(ctx)
	if err != nil {
		return nil, err
	}
	result := &ReplayResult{}
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := s.replayPortfolio(ctx, id, result); err != nil {
			return nil, err
		}
	}
	utils.LoggerFromContext(ctx).WithFields(logrus.Fields{
		"portfolios": result.Portfolios,
		"upserted":   result.Upserted,
		"deleted":    result.Deleted,
		"unchanged":  result.Unchanged,
	}).Info("ledger replay finished")
	return result, nil
}

func (s *HoldingService) replayPortfolio(ctx context.Context, portfolioID int64, result *ReplayResult) error {
	keys, err := s.portfolioKeys(ctx, portfolioID)
	if err != nil {
		return err
	}
	for _, key := range keys {
		action, err := s.replayKey(ctx, key)
		if err != nil {
			return err
		}
		result.add(action)
	}
	result.Portfolios++
	return nil
}

func (s *HoldingService) replayKey(ctx context.Context, key models.HoldingKey) (string, error) {
	unlock := s.Lock(key)
	defer unlock()

	txs, err := s.transactionRepository.GetByPortfolioAndCrypto(ctx, key.PortfolioID, key.CryptoID)
	if err != nil {
		return "", err
	}
	if len(txs) > 0 {
		return s.recompute(ctx, txs)
	}

	existing, err := s.holdingRepository.Get(ctx, key)
	if err != nil || existing == nil {
		return ActionNoop, err
	}
	if err := s.holdingRepository.Delete(ctx, key); err != nil {
		return "", err
	}
	return ActionDelete, nil
}

// portfolioKeys returns the union of keys present in the ledger and in the holding store.
func (s *HoldingService) portfolioKeys(ctx context.Context, portfolioID int64) ([]models.HoldingKey, error) {
	txs, err := s.transactionRepository.GetByPortfolioID(ctx, portfolioID)
	if err != nil {
		return nil, err
	}
	holdings, err := s.holdingRepository.GetByPortfolioID(ctx, portfolioID)
	if err != nil {
		return nil, err
	}

	seen := make(map[models.HoldingKey]struct{})
	for key := range groupByKey(txs) {
		seen[key] = struct{}{}
	}
	for _, h := range holdings {
		seen[h.Key()] = struct{}{}
	}

	keys := make([]models.HoldingKey, 0, len(seen))
	for key := range seen {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].CryptoID < keys[j].CryptoID })
	return keys, nil
}

func (s *HoldingService) GetAllByPortfolio(ctx context.Context, portfolioID int64) ([]models.Holding, error) {
	return s.holdingRepository.GetByPortfolioID(ctx, portfolioID)
}

func (s *HoldingService) GetByKey(ctx context.Context, key models.HoldingKey) (*models.Holding, error) {
	holding, err := s.holdingRepository.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if holding == nil {
		return nil, utils.NotFound("Holding not found.")
	}
	return holding, nil
}
