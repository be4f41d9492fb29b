package handlers

import (
	"context"
	"net/http"
	"time"
)

func (h *Handler) CreatePortfolio(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	portfolio, err := h.PortfolioService.Create(ctx, userFromContext(r.Context()), r.URL.Query().Get("name"))
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, portfolio, http.StatusCreated)
}

func (h *Handler) GetPortfolios(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	portfolios, err := h.PortfolioService.List(ctx, userFromContext(r.Context()))
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, portfolios, http.StatusOK)
}

func (h *Handler) GetPortfolioByID(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id, err := int64URLParam(r, "id")
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	portfolio, err := h.PortfolioService.Get(ctx, userFromContext(r.Context()), id)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, portfolio, http.StatusOK)
}

func (h *Handler) RenamePortfolio(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id, err := int64URLParam(r, "id")
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	portfolio, err := h.PortfolioService.Rename(ctx, userFromContext(r.Context()), id, r.URL.Query().Get("name"))
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, portfolio, http.StatusOK)
}

func (h *Handler) DeletePortfolio(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id, err := int64URLParam(r, "id")
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	if err := h.PortfolioService.Delete(ctx, userFromContext(r.Context()), id); err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.noContent(w)
}
