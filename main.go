package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cryptoapp/src/api"
	"cryptoapp/src/config"
	"cryptoapp/src/utils"
	"cryptoapp/src/worker"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig("./settings", os.Getenv("ENV"))
	if err != nil {
		logrus.WithError(err).Fatal("error while loading config")
	}
	logger := utils.NewLoggerFromLevel(cfg.Log.Level, cfg.Log.File)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpServer, closeFn, err := build(ctx, cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("couldn't build server")
	}
	defer closeFn()

	errC := make(chan error, 1)
	go func() {
		logger.WithFields(logrus.Fields{
			"port": cfg.Service.Port,
			"type": cfg.Service.Type,
		}).Info("starting server")

		// "ListenAndServe always returns a non-nil error. After Shutdown or Close, the returned error is
		// ErrServerClosed."
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errC <- err
		}
	}()

	select {
	case err := <-errC:
		logger.WithError(err).Error("error while running")
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).Error("error while shutting down")
		}
	}
}

func build(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*http.Server, func(), error) {
	if cfg.Service.Type == config.WORKER {
		server, err := worker.NewServer(ctx, cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		return worker.NewHTTPServer(server, cfg.Service.Port), server.Handler.Close, nil
	}

	server, err := api.NewServer(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return api.NewHTTPServer(server, cfg.Service.Port), server.Handler.Close, nil
}
