package handlers

import (
	"context"
	"net/http"
	"time"

	"cryptoapp/src/models"
	"cryptoapp/src/schemas"
	"cryptoapp/src/utils"
)

func (h *Handler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, userFromContext(r.Context()), http.StatusOK)
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var req schemas.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		h.HandleErrors(w, err)
		return
	}

	user, err := h.UserService.Register(ctx, req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	if err := h.setAuthCookie(w, user); err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, user, http.StatusCreated)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var req schemas.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		h.HandleErrors(w, err)
		return
	}

	user, err := h.UserService.Login(ctx, req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	if err := h.setAuthCookie(w, user); err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, user, http.StatusOK)
}

func (h *Handler) Logout(w http.ResponseWriter, _ *http.Request) {
	http.SetCookie(w, h.TokenAuth.LogoutCookie())
	h.noContent(w)
}

func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	username := r.URL.Query().Get("username")
	if username == "" {
		h.HandleErrors(w, utils.BadRequest("username must not be blank"))
		return
	}
	if err := h.UserService.ForgotPassword(ctx, username); err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.noContent(w)
}

func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var req schemas.ChangePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		h.HandleErrors(w, err)
		return
	}
	if err := h.UserService.ChangePassword(ctx, req); err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.noContent(w)
}

func (h *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := h.UserService.DeleteAccount(ctx, userFromContext(r.Context())); err != nil {
		h.HandleErrors(w, err)
		return
	}
	http.SetCookie(w, h.TokenAuth.LogoutCookie())
	h.noContent(w)
}

func (h *Handler) setAuthCookie(w http.ResponseWriter, user *models.User) error {
	token, err := h.TokenAuth.Generate(user)
	if err != nil {
		return err
	}
	http.SetCookie(w, h.TokenAuth.Cookie(token))
	return nil
}
