package api

import (
	"net/http"

	models "github.com/glkeru/safedrive/internal/models"
)

func (h *Handler) TripListHandler(w http.ResponseWriter, r *http.Request) {
	userId, role := identity(r)
	trips, err := h.trips.List(r.Context(), userId, role)
	if err != nil {
		h.respondServiceError(w, "TripListHandler", err)
		return
	}
	respondCount(w, http.StatusOK, len(trips), trips)
}

func (h *Handler) TripCreateHandler(w http.ResponseWriter, r *http.Request) {
	var trip models.Trip
	if err := decodeBody(r, &trip); err != nil {
		respondError(w, http.StatusBadRequest, "Body is not correct")
		return
	}

	userId, _ := identity(r)
	trip, err := h.trips.Create(r.Context(), trip, userId)
	if err != nil {
		h.respondServiceError(w, "TripCreateHandler", err)
		return
	}
	respond(w, http.StatusCreated, trip)
}

func (h *Handler) TripGetHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusNotFound, "Trip not found")
		return
	}
	userId, role := identity(r)
	trip, err := h.trips.Get(r.Context(), id, userId, role)
	if err != nil {
		h.respondServiceError(w, "TripGetHandler", err)
		return
	}
	respond(w, http.StatusOK, trip)
}

func (h *Handler) TripUpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusNotFound, "Trip not found")
		return
	}
	var upd models.TripUpdate
	if err := decodeBody(r, &upd); err != nil {
		respondError(w, http.StatusBadRequest, "Body is not correct")
		return
	}

	userId, role := identity(r)
	trip, err := h.trips.Update(r.Context(), id, upd, userId, role)
	if err != nil {
		h.respondServiceError(w, "TripUpdateHandler", err)
		return
	}
	respond(w, http.StatusOK, trip)
}

func (h *Handler) TripDeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusNotFound, "Trip not found")
		return
	}
	userId, role := identity(r)
	err := h.trips.Delete(r.Context(), id, userId, role)
	if err != nil {
		h.respondServiceError(w, "TripDeleteHandler", err)
		return
	}
	respond(w, http.StatusOK, struct{}{})
}

func (h *Handler) TripEventsHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusNotFound, "Trip not found")
		return
	}
	userId, role := identity(r)
	events, err := h.trips.Events(r.Context(), id, userId, role)
	if err != nil {
		h.respondServiceError(w, "TripEventsHandler", err)
		return
	}
	respondCount(w, http.StatusOK, len(events), events)
}

func (h *Handler) TripEventAppendHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusNotFound, "Trip not found")
		return
	}
	var event models.DrivingEvent
	if err := decodeBody(r, &event); err != nil {
		respondError(w, http.StatusBadRequest, "Body is not correct")
		return
	}

	userId, role := identity(r)
	err := h.trips.AppendEvent(r.Context(), id, event, userId, role)
	if err != nil {
		h.respondServiceError(w, "TripEventAppendHandler", err)
		return
	}
	respond(w, http.StatusCreated, event)
}

func (h *Handler) TripScoreHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusNotFound, "Trip not found")
		return
	}
	userId, role := identity(r)
	result, err := h.trips.Score(r.Context(), id, userId, role)
	if err != nil {
		h.respondServiceError(w, "TripScoreHandler", err)
		return
	}
	respond(w, http.StatusOK, result)
}
