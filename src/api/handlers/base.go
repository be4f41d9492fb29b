package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"

	"cryptoapp/src/services"
	"cryptoapp/src/utils"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	UserService        services.UserServiceI
	PortfolioService   services.PortfolioServiceI
	TransactionService services.TransactionServiceI
	HoldingService     services.HoldingServiceI
	ExportService      services.ExportServiceI
	CoinService        services.CoinServiceI
	TokenAuth          *TokenAuth

	Logger       *logrus.Logger
	IsProduction func() bool

	closers []func()
}

// Close releases the connections opened by NewHandler.
func (h *Handler) Close() {
	for i := len(h.closers) - 1; i >= 0; i-- {
		h.closers[i]()
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

func (h *Handler) noContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// HandleErrors maps an error to its HTTP response. Anything unexpected becomes a
// generic 500 and is logged with detail outside production.
func (h *Handler) HandleErrors(w http.ResponseWriter, err error) {
	var httpErr *utils.HTTPError
	switch {
	case isTimeout(err):
		utils.WriteError(w, utils.NewHTTPError(http.StatusGatewayTimeout, "Request timed out."))
	case errors.Is(err, utils.ErrUpstream):
		h.logError(err)
		utils.WriteError(w, utils.BadGateway("Market data provider is unavailable."))
	case errors.As(err, &httpErr):
		utils.WriteError(w, httpErr)
	default:
		h.logError(err)
		utils.WriteError(w, utils.InternalServerError(utils.UnexpectedErrorMessage))
	}
}

// isTimeout covers both the request deadline and provider timeouts, which take
// precedence over the generic upstream failure.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func (h *Handler) logError(err error) {
	if h.Logger == nil {
		return
	}
	if h.IsProduction != nil && h.IsProduction() {
		h.Logger.Error("request failed")
		return
	}
	h.Logger.WithError(err).Error("request failed")
}

func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return utils.BadRequest("Malformed JSON request.")
	}
	return nil
}

func int64URLParam(r *http.Request, name string) (int64, error) {
	value, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		return 0, utils.BadRequest(name + " must be a number")
	}
	return value, nil
}

func intQueryParam(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, utils.BadRequest(name + " must be a number")
	}
	return value, nil
}
