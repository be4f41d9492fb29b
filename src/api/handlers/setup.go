package handlers

import (
	"context"
	"errors"
	"time"

	"cryptoapp/src/clients/coingecko"
	"cryptoapp/src/clients/mail"
	"cryptoapp/src/config"
	"cryptoapp/src/data"
	"cryptoapp/src/database"
	"cryptoapp/src/repositories"
	"cryptoapp/src/services"
	"cryptoapp/src/utils"
	aws_handler "cryptoapp/src/utils/aws"
	redis_utils "cryptoapp/src/utils/redis"

	"github.com/sirupsen/logrus"
)

var ErrMissingJWTSecret = errors.New("auth.jwt.secret or auth.jwt.secretId must be set")

// NewHandler opens every connection the API needs and builds the services on top of them.
func NewHandler(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Handler, error) {
	h := &Handler{Logger: logger, IsProduction: cfg.IsProduction}

	pool, err := database.SetupDB(ctx, cfg)
	if err != nil {
		return nil, err
	}
	h.closers = append(h.closers, pool.Close)

	dbHandler, err := data.NewDatabaseHandler(cfg)
	if err != nil {
		h.Close()
		return nil, err
	}
	h.closers = append(h.closers, func() { _ = dbHandler.CloseConnection() })

	var awsHandler *aws_handler.AWSHandler
	if cfg.ExternalClients.CoinGecko.APIKeySecretID != "" || cfg.Auth.JWT.SecretID != "" || cfg.Mail.QueueURL != "" {
		awsHandler, err = aws_handler.NewAWSHandler(cfg.AWS.Region)
		if err != nil {
			h.Close()
			return nil, err
		}
	}

	apiKey, err := resolveSecret(ctx, awsHandler, cfg.ExternalClients.CoinGecko.APIKey, cfg.ExternalClients.CoinGecko.APIKeySecretID)
	if err != nil {
		h.Close()
		return nil, err
	}
	jwtSecret, err := resolveSecret(ctx, awsHandler, cfg.Auth.JWT.Secret, cfg.Auth.JWT.SecretID)
	if err != nil {
		h.Close()
		return nil, err
	}
	if jwtSecret == "" {
		h.Close()
		return nil, ErrMissingJWTSecret
	}

	var mailSender mail.Sender = mail.NewLogSender(logger)
	if awsHandler != nil && cfg.Mail.QueueURL != "" {
		mailSender = mail.NewQueueSender(awsHandler.Queue, cfg.Mail.QueueURL)
	}

	stores := services.NewMemoryCoinStores()
	if cfg.Cache.Backend == config.RedisCache {
		redisHandler, err := redis_utils.NewRedisHandler(ctx, cfg)
		if err != nil {
			h.Close()
			return nil, err
		}
		h.closers = append(h.closers, func() { _ = redisHandler.Close() })
		stores = services.CoinStores{
			Pages:    redis_utils.NewEntryStore[coingecko.CoinPageParams, []coingecko.Coin](redisHandler, "coins:pages"),
			Coins:    redis_utils.NewEntryStore[string, *coingecko.CoinData](redisHandler, "coins:data"),
			Searches: redis_utils.NewEntryStore[string, *coingecko.SearchResult](redisHandler, "coins:search"),
		}
	}

	clock := utils.SystemClock{}
	transactionRepository := repositories.NewTransactionRepository(pool)
	holdingRepository := repositories.NewHoldingRepository(pool)
	portfolioRepository := repositories.NewPortfolioRepository(pool)
	gormDB := dbHandler.GetDBClient()

	h.UserService = services.NewUserService(
		repositories.NewUserRepository(gormDB),
		repositories.NewResetCodeRepository(gormDB),
		mailSender,
		services.UserServiceConfig{ServiceEmail: cfg.Mail.ServiceEmail},
		clock,
	)
	h.PortfolioService = services.NewPortfolioService(portfolioRepository, clock)
	h.HoldingService = services.NewHoldingService(holdingRepository, transactionRepository, portfolioRepository, clock)
	h.TransactionService = services.NewTransactionService(transactionRepository, h.PortfolioService, h.HoldingService, clock)
	h.ExportService = services.NewExportService(h.TransactionService, h.HoldingService)
	h.CoinService = services.NewCoinService(
		coingecko.NewClient(cfg, apiKey),
		cfg.Environment,
		stores,
		utils.CacheOptions{SingleFlight: cfg.Cache.SingleFlight},
	)
	h.TokenAuth = NewTokenAuth(
		jwtSecret,
		time.Duration(cfg.Auth.JWT.ExpirationMs)*time.Millisecond,
		cfg.Auth.JWT.Issuer,
		cfg.IsProduction,
	)
	return h, nil
}

func resolveSecret(ctx context.Context, awsHandler *aws_handler.AWSHandler, value, secretID string) (string, error) {
	if awsHandler == nil {
		return value, nil
	}
	return awsHandler.SecretManager.ResolveSecret(ctx, value, secretID)
}
