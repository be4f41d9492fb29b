package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"cryptoapp/src/config"
	"cryptoapp/src/database"
	"cryptoapp/src/repositories"
	"cryptoapp/src/services"
	"cryptoapp/src/utils"
	"cryptoapp/src/worker/controllers"

	"github.com/sirupsen/logrus"
)

type Handler struct {
	Controller *controllers.Controller
	closeDB    func()
}

func NewHandler(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Handler, error) {
	db, err := database.SetupDB(ctx, cfg)
	if err != nil {
		return nil, err
	}
	holdingService := services.NewHoldingService(
		repositories.NewHoldingRepository(db),
		repositories.NewTransactionRepository(db),
		repositories.NewPortfolioRepository(db),
		utils.SystemClock{},
	)
	controller := controllers.NewController(holdingService, logger)
	if err := controller.ScheduleReplay(cfg.Worker.ReplayCron); err != nil {
		db.Close()
		return nil, err
	}
	return &Handler{Controller: controller, closeDB: db.Close}, nil
}

func (h *Handler) Close() {
	h.Controller.StopAll()
	if h.closeDB != nil {
		h.closeDB()
	}
}

func (h *Handler) respond(w http.ResponseWriter, _ *http.Request, data interface{}, status int) {
	res, err := json.Marshal(data)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write(res)
}

func (h *Handler) HandleErrors(w http.ResponseWriter, err error) {
	var httpErr *utils.HTTPError
	if errors.Is(err, context.DeadlineExceeded) {
		utils.WriteError(w, utils.NewHTTPError(http.StatusGatewayTimeout, "Request timed out."))
	} else if errors.As(err, &httpErr) {
		utils.WriteError(w, httpErr)
	} else {
		h.Controller.Logger.WithError(err).Error("worker request failed")
		utils.WriteError(w, utils.InternalServerError(utils.UnexpectedErrorMessage))
	}
}
