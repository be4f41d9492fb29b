package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"cryptoapp/src/schemas"
	"cryptoapp/src/utils"
)

func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	portfolioID, err := int64URLParam(r, "id")
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	var req schemas.CreateTransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		h.HandleErrors(w, err)
		return
	}

	transaction, err := h.TransactionService.Create(ctx, userFromContext(r.Context()), portfolioID, req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, transaction, http.StatusCreated)
}

func (h *Handler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	portfolioID, err := int64URLParam(r, "id")
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	transactions, err := h.TransactionService.List(ctx, userFromContext(r.Context()), portfolioID)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, transactions, http.StatusOK)
}

func (h *Handler) ExportTransactions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	portfolioID, err := int64URLParam(r, "id")
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	xlsxFile, err := h.ExportService.GenerateXLSXLedger(ctx, userFromContext(r.Context()), portfolioID)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	defer xlsxFile.Close()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=portfolio-%d-%s.xlsx", portfolioID, time.Now().UTC().Format(utils.ShortDashDateLayout)))
	if err := xlsxFile.Write(w); err != nil {
		utils.LoggerFromContext(ctx).WithError(err).Error("failed to write ledger export")
	}
}
