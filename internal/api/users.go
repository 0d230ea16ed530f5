package api

import (
	"net/http"

	models "github.com/glkeru/safedrive/internal/models"
)

func (h *Handler) UserListHandler(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		h.respondServiceError(w, "UserListHandler", err)
		return
	}
	respondCount(w, http.StatusOK, len(users), users)
}

func (h *Handler) UserCreateHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		models.User
		Password string `json:"password"`
	}
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Body is not correct")
		return
	}

	user, err := h.users.Create(r.Context(), req.User, req.Password)
	if err != nil {
		h.respondServiceError(w, "UserCreateHandler", err)
		return
	}
	respond(w, http.StatusCreated, user)
}

func (h *Handler) UserGetHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}
	user, err := h.users.Get(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, "UserGetHandler", err)
		return
	}
	respond(w, http.StatusOK, user)
}

func (h *Handler) UserUpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}
	var upd models.UserUpdate
	if err := decodeBody(r, &upd); err != nil {
		respondError(w, http.StatusBadRequest, "Body is not correct")
		return
	}

	user, err := h.users.Update(r.Context(), id, upd)
	if err != nil {
		h.respondServiceError(w, "UserUpdateHandler", err)
		return
	}
	respond(w, http.StatusOK, user)
}

func (h *Handler) UserDeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}
	err := h.users.Delete(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, "UserDeleteHandler", err)
		return
	}
	respond(w, http.StatusOK, struct{}{})
}

func (h *Handler) ContactAddHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}
	var contact models.EmergencyContact
	if err := decodeBody(r, &contact); err != nil {
		respondError(w, http.StatusBadRequest, "Body is not correct")
		return
	}

	userId, role := identity(r)
	contacts, err := h.users.ContactAdd(r.Context(), id, contact, userId, role)
	if err != nil {
		h.respondServiceError(w, "ContactAddHandler", err)
		return
	}
	respond(w, http.StatusOK, contacts)
}

func (h *Handler) ContactRemoveHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}
	var req struct {
		ContactID string `json:"contactId"`
	}
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Body is not correct")
		return
	}
	contactId, err := parseUUID(req.ContactID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Body is not correct")
		return
	}

	userId, role := identity(r)
	contacts, err := h.users.ContactRemove(r.Context(), id, contactId, userId, role)
	if err != nil {
		h.respondServiceError(w, "ContactRemoveHandler", err)
		return
	}
	respond(w, http.StatusOK, contacts)
}

func (h *Handler) UserBalanceHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}
	userId, role := identity(r)
	points, err := h.users.Balance(r.Context(), id, userId, role)
	if err != nil {
		h.respondServiceError(w, "UserBalanceHandler", err)
		return
	}
	respond(w, http.StatusOK, struct {
		Points int64 `json:"points"`
	}{points})
}

func (h *Handler) UserTripsHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}
	userId, role := identity(r)
	trips, err := h.trips.ListByUser(r.Context(), id, userId, role)
	if err != nil {
		h.respondServiceError(w, "UserTripsHandler", err)
		return
	}
	respondCount(w, http.StatusOK, len(trips), trips)
}

func (h *Handler) UserRewardsHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}
	userId, role := identity(r)
	redemptions, err := h.users.Redemptions(r.Context(), id, userId, role)
	if err != nil {
		h.respondServiceError(w, "UserRewardsHandler", err)
		return
	}
	respondCount(w, http.StatusOK, len(redemptions), redemptions)
}
