package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"cryptoapp/src/utils"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) ReplayAllHoldings(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Minute)
	defer cancel()

	result, err := h.Controller.ReplayAll(ctx)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, result, http.StatusOK)
}

func (h *Handler) ReplayPortfolioHoldings(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), time.Minute)
	defer cancel()

	portfolioID, err := strconv.ParseInt(chi.URLParam(r, "portfolioId"), 10, 64)
	if err != nil {
		h.HandleErrors(w, utils.BadRequest("portfolioId must be a number"))
		return
	}

	result, err := h.Controller.ReplayPortfolio(ctx, portfolioID)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, result, http.StatusOK)
}
