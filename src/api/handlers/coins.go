package handlers

import (
	"context"
	"net/http"
	"time"

	"cryptoapp/src/clients/coingecko"

	"github.com/go-chi/chi/v5"
)

const defaultCoinsPerPage = 100

func (h *Handler) GetCoins(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	page, err := intQueryParam(r, "page", 0)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	perPage, err := intQueryParam(r, "per_page", defaultCoinsPerPage)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	coins, err := h.CoinService.GetCoins(ctx, coingecko.CoinPageParams{
		VsCurrency: r.URL.Query().Get("vs_currency"),
		Page:       page,
		PerPage:    perPage,
		IDs:        r.URL.Query().Get("ids"),
	})
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, coins, http.StatusOK)
}

func (h *Handler) GetCoinByID(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	coin, err := h.CoinService.GetCoinByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, coin, http.StatusOK)
}

func (h *Handler) SearchCoins(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := h.CoinService.Search(ctx, r.URL.Query().Get("query"))
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, result, http.StatusOK)
}
