package api

import (
	"net/http"

	service "github.com/glkeru/safedrive/internal/services"
)

type tokenResponse struct {
	Token string `json:"token"`
	User  any    `json:"user"`
}

func (h *Handler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Body is not correct")
		return
	}

	user, token, err := h.authserv.Register(r.Context(), req)
	if err != nil {
		h.respondServiceError(w, "RegisterHandler", err)
		return
	}
	respond(w, http.StatusCreated, tokenResponse{token, user})
}

func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Body is not correct")
		return
	}

	user, token, err := h.authserv.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.respondServiceError(w, "LoginHandler", err)
		return
	}
	respond(w, http.StatusOK, tokenResponse{token, user})
}

func (h *Handler) MeHandler(w http.ResponseWriter, r *http.Request) {
	userId, _ := identity(r)
	user, err := h.authserv.Me(r.Context(), userId)
	if err != nil {
		h.respondServiceError(w, "MeHandler", err)
		return
	}
	respond(w, http.StatusOK, user)
}
