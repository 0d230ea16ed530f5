package api

import (
	"net/http"
	"strings"

	models "github.com/glkeru/safedrive/internal/models"
)

func (h *Handler) RewardListHandler(w http.ResponseWriter, r *http.Request) {
	filter := models.RewardFilter{}
	if category := r.URL.Query().Get("category"); category != "" {
		filter.Categories = strings.Split(category, ",")
	}
	if active := r.URL.Query().Get("isActive"); active != "" {
		isActive := active == "true"
		filter.IsActive = &isActive
	}

	rewards, err := h.rewards.List(r.Context(), filter)
	if err != nil {
		h.respondServiceError(w, "RewardListHandler", err)
		return
	}
	respondCount(w, http.StatusOK, len(rewards), rewards)
}

func (h *Handler) RewardCreateHandler(w http.ResponseWriter, r *http.Request) {
	var reward models.Reward
	if err := decodeBody(r, &reward); err != nil {
		respondError(w, http.StatusBadRequest, "Body is not correct")
		return
	}

	reward, err := h.rewards.Create(r.Context(), reward)
	if err != nil {
		h.respondServiceError(w, "RewardCreateHandler", err)
		return
	}
	respond(w, http.StatusCreated, reward)
}

func (h *Handler) RewardGetHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusNotFound, "Reward not found")
		return
	}
	reward, err := h.rewards.Get(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, "RewardGetHandler", err)
		return
	}
	respond(w, http.StatusOK, reward)
}

func (h *Handler) RewardUpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusNotFound, "Reward not found")
		return
	}
	var upd models.RewardUpdate
	if err := decodeBody(r, &upd); err != nil {
		respondError(w, http.StatusBadRequest, "Body is not correct")
		return
	}

	reward, err := h.rewards.Update(r.Context(), id, upd)
	if err != nil {
		h.respondServiceError(w, "RewardUpdateHandler", err)
		return
	}
	respond(w, http.StatusOK, reward)
}

func (h *Handler) RewardDeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusNotFound, "Reward not found")
		return
	}
	err := h.rewards.Delete(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, "RewardDeleteHandler", err)
		return
	}
	respond(w, http.StatusOK, struct{}{})
}

func (h *Handler) RedeemHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusNotFound, "Reward not found")
		return
	}
	userId, _ := identity(r)
	redemption, _, err := h.rewards.Redeem(r.Context(), userId, id)
	if err != nil {
		h.respondServiceError(w, "RedeemHandler", err)
		return
	}
	respond(w, http.StatusOK, redemption)
}
