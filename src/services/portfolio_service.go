package services

import (
	"context"
	"errors"
	"strings"

	"cryptoapp/src/models"
	"cryptoapp/src/repositories"
	"cryptoapp/src/schemas"
	"cryptoapp/src/utils"
)

const duplicatePortfolioMessage = "You already have a portfolio with that name."

type PortfolioServiceI interface {
	Create(ctx context.Context, user *models.User, name string) (*models.Portfolio, error)
	Rename(ctx context.Context, user *models.User, id int64, name string) (*models.Portfolio, error)
	List(ctx context.Context, user *models.User) ([]models.Portfolio, error)
	Get(ctx context.Context, user *models.User, id int64) (*models.Portfolio, error)
	Delete(ctx context.Context, user *models.User, id int64) error
}

type PortfolioService struct {
	portfolioRepository repositories.PortfolioRepository
	clock               utils.Clock
}

func NewPortfolioService(portfolioRepository repositories.PortfolioRepository, clock utils.Clock) *PortfolioService {
	if clock == nil {
		clock = utils.SystemClock{}
	}
	return &PortfolioService{portfolioRepository: portfolioRepository, clock: clock}
}

func (s *PortfolioService) Create(ctx context.Context, user *models.User, name string) (*models.Portfolio, error) {
	name = strings.TrimSpace(name)
	if err := (schemas.PortfolioNameRequest{Name: name}).Validate(); err != nil {
		return nil, err
	}

	exists, err := s.portfolioRepository.ExistsByNameAndUser(ctx, name, user.ID, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, utils.Conflict(duplicatePortfolioMessage)
	}

	now := s.clock.Now()
	portfolio := &models.Portfolio{
		UserID:     user.ID,
		Name:       name,
		CreatedAt:  now,
		ModifiedAt: now,
	}
	if err := s.portfolioRepository.Create(ctx, portfolio); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, utils.Conflict(duplicatePortfolioMessage)
		}
		return nil, err
	}
	return portfolio, nil
}

func (s *PortfolioService) Rename(ctx context.Context, user *models.User, id int64, name string) (*models.Portfolio, error) {
	name = strings.TrimSpace(name)
	if err := (schemas.PortfolioNameRequest{Name: name}).Validate(); err != nil {
		return nil, err
	}

	portfolio, err := s.Get(ctx, user, id)
	if err != nil {
		return nil, err
	}
	exists, err := s.portfolioRepository.ExistsByNameAndUser(ctx, name, user.ID, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, utils.Conflict(duplicatePortfolioMessage)
	}

	portfolio.Name = name
	portfolio.ModifiedAt = s.clock.Now()
	if err := s.portfolioRepository.Update(ctx, portfolio); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, utils.Conflict(duplicatePortfolioMessage)
		}
		return nil, err
	}
	return portfolio, nil
}

func (s *PortfolioService) List(ctx context.Context, user *models.User) ([]models.Portfolio, error) {
	return s.portfolioRepository.GetByUser(ctx, user.ID)
}

// Get returns the portfolio only if it belongs to user.
func (s *PortfolioService) Get(ctx context.Context, user *models.User, id int64) (*models.Portfolio, error) {
	portfolio, err := s.portfolioRepository.GetByIDAndUser(ctx, id, user.ID)
	if err != nil {
		return nil, err
	}
	if portfolio == nil {
		return nil, utils.NotFound("Portfolio not found.")
	}
	return portfolio, nil
}

func (s *PortfolioService) Delete(ctx context.Context, user *models.User, id int64) error {
	if _, err := s.Get(ctx, user, id); err != nil {
		return err
	}
	return s.portfolioRepository.Delete(ctx, id)
}
