package api

import (
	"net/http"

	models "github.com/glkeru/safedrive/internal/models"
)

func (h *Handler) EmergencyListHandler(w http.ResponseWriter, r *http.Request) {
	userId, role := identity(r)
	emergencies, err := h.emergencies.List(r.Context(), userId, role)
	if err != nil {
		h.respondServiceError(w, "EmergencyListHandler", err)
		return
	}
	respondCount(w, http.StatusOK, len(emergencies), emergencies)
}

func (h *Handler) EmergencyCreateHandler(w http.ResponseWriter, r *http.Request) {
	var emergency models.Emergency
	if err := decodeBody(r, &emergency); err != nil {
		respondError(w, http.StatusBadRequest, "Body is not correct")
		return
	}

	userId, _ := identity(r)
	emergency, err := h.emergencies.Create(r.Context(), emergency, userId)
	if err != nil {
		h.respondServiceError(w, "EmergencyCreateHandler", err)
		return
	}
	respond(w, http.StatusCreated, emergency)
}

func (h *Handler) EmergencyGetHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusNotFound, "Emergency not found")
		return
	}
	userId, role := identity(r)
	emergency, err := h.emergencies.Get(r.Context(), id, userId, role)
	if err != nil {
		h.respondServiceError(w, "EmergencyGetHandler", err)
		return
	}
	respond(w, http.StatusOK, emergency)
}

func (h *Handler) EmergencyUpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusNotFound, "Emergency not found")
		return
	}
	var upd models.EmergencyUpdate
	if err := decodeBody(r, &upd); err != nil {
		respondError(w, http.StatusBadRequest, "Body is not correct")
		return
	}

	emergency, err := h.emergencies.Update(r.Context(), id, upd)
	if err != nil {
		h.respondServiceError(w, "EmergencyUpdateHandler", err)
		return
	}
	respond(w, http.StatusOK, emergency)
}

func (h *Handler) EmergencyDeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusNotFound, "Emergency not found")
		return
	}
	err := h.emergencies.Delete(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, "EmergencyDeleteHandler", err)
		return
	}
	respond(w, http.StatusOK, struct{}{})
}

func (h *Handler) EmergencyRespondHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusNotFound, "Emergency not found")
		return
	}
	var req struct {
		ResponderType string `json:"responderType"`
	}
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Body is not correct")
		return
	}

	emergency, err := h.emergencies.Respond(r.Context(), id, req.ResponderType)
	if err != nil {
		h.respondServiceError(w, "EmergencyRespondHandler", err)
		return
	}
	respond(w, http.StatusOK, emergency)
}
