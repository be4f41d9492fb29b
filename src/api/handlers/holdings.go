package handlers

import (
	"context"
	"net/http"
	"time"

	"cryptoapp/src/models"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) GetHoldings(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	portfolio, ok := h.ownedPortfolio(ctx, w, r)
	if !ok {
		return
	}
	holdings, err := h.HoldingService.GetAllByPortfolio(ctx, portfolio.ID)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, holdings, http.StatusOK)
}

func (h *Handler) GetHolding(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	portfolio, ok := h.ownedPortfolio(ctx, w, r)
	if !ok {
		return
	}
	holding, err := h.HoldingService.GetByKey(ctx, models.HoldingKey{
		PortfolioID: portfolio.ID,
		CryptoID:    chi.URLParam(r, "cryptoId"),
	})
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, holding, http.StatusOK)
}

// ownedPortfolio resolves the {id} route param to a portfolio of the current user,
// writing the error response when it cannot.
func (h *Handler) ownedPortfolio(ctx context.Context, w http.ResponseWriter, r *http.Request) (*models.Portfolio, bool) {
	portfolioID, err := int64URLParam(r, "id")
	if err != nil {
		h.HandleErrors(w, err)
		return nil, false
	}
	portfolio, err := h.PortfolioService.Get(ctx, userFromContext(r.Context()), portfolioID)
	if err != nil {
		h.HandleErrors(w, err)
		return nil, false
	}
	return portfolio, true
}
