package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	models "github.com/glkeru/safedrive/internal/models"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type response struct {
	Success bool   `json:"success"`
	Count   *int   `json:"count,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func respond(w http.ResponseWriter, status int, data any) {
	j, err := json.Marshal(response{Success: true, Data: data})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(j)
}

func respondCount(w http.ResponseWriter, status int, count int, data any) {
	j, err := json.Marshal(response{Success: true, Count: &count, Data: data})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(j)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	j, _ := json.Marshal(response{Success: false, Error: msg})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(j)
}

// маппинг ошибок сервисов на HTTP-коды
func (h *Handler) respondServiceError(w http.ResponseWriter, service string, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrUnauthorized):
		respondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, models.ErrInsufficientPoints),
		errors.Is(err, models.ErrRewardInactive),
		errors.Is(err, models.ErrValidation):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		h.Log("service error", service, err)
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}

func parseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}

// {id} из пути
func pathID(r *http.Request) (uuid.UUID, bool) {
	vars := mux.Vars(r)
	id, err := uuid.Parse(vars["id"])
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func decodeBody(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// контекст аутентификации

type ctxKey int

const (
	ctxUserID ctxKey = iota
	ctxRole
)

func withIdentity(ctx context.Context, userId uuid.UUID, role string) context.Context {
	ctx = context.WithValue(ctx, ctxUserID, userId)
	return context.WithValue(ctx, ctxRole, role)
}

func identity(r *http.Request) (uuid.UUID, string) {
	userId, _ := r.Context().Value(ctxUserID).(uuid.UUID)
	role, _ := r.Context().Value(ctxRole).(string)
	return userId, role
}
