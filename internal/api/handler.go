package api

import (
	"net/http"

	auth "github.com/glkeru/safedrive/internal/auth"
	realtime "github.com/glkeru/safedrive/internal/realtime"
	service "github.com/glkeru/safedrive/internal/services"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Handler struct {
	router      *mux.Router
	authserv    *service.AuthService
	users       *service.UserService
	trips       *service.TripService
	rewards     *service.RewardService
	emergencies *service.EmergencyService
	hub         *realtime.Hub
	tokens      *auth.Tokens
	logger      *zap.Logger
}

func NewHandler(
	authserv *service.AuthService,
	users *service.UserService,
	trips *service.TripService,
	rewards *service.RewardService,
	emergencies *service.EmergencyService,
	hub *realtime.Hub,
	tokens *auth.Tokens,
	logger *zap.Logger,
) *Handler {
	router := mux.NewRouter()
	h := &Handler{router, authserv, users, trips, rewards, emergencies, hub, tokens, logger}

	router.Use(MiddlewareLog())
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	router.HandleFunc("/ws", h.WSHandler)

	api := router.PathPrefix("/api/v1").Subrouter()

	// auth
	api.HandleFunc("/auth/register", h.RegisterHandler).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", h.LoginHandler).Methods(http.MethodPost)

	priv := api.NewRoute().Subrouter()
	priv.Use(h.Protect)

	priv.HandleFunc("/auth/me", h.MeHandler).Methods(http.MethodGet)

	// users
	priv.HandleFunc("/users", h.authorize(h.UserListHandler, "admin")).Methods(http.MethodGet)
	priv.HandleFunc("/users", h.authorize(h.UserCreateHandler, "admin")).Methods(http.MethodPost)
	priv.HandleFunc("/users/{id}", h.authorize(h.UserGetHandler, "admin")).Methods(http.MethodGet)
	priv.HandleFunc("/users/{id}", h.authorize(h.UserUpdateHandler, "admin")).Methods(http.MethodPut)
	priv.HandleFunc("/users/{id}", h.authorize(h.UserDeleteHandler, "admin")).Methods(http.MethodDelete)
	priv.HandleFunc("/users/{id}/contacts", h.ContactAddHandler).Methods(http.MethodPost)
	priv.HandleFunc("/users/{id}/contacts", h.ContactRemoveHandler).Methods(http.MethodDelete)
	priv.HandleFunc("/users/{id}/balance", h.UserBalanceHandler).Methods(http.MethodGet)
	priv.HandleFunc("/users/{id}/trips", h.UserTripsHandler).Methods(http.MethodGet)
	priv.HandleFunc("/users/{id}/rewards", h.UserRewardsHandler).Methods(http.MethodGet)

	// trips
	priv.HandleFunc("/trips", h.TripListHandler).Methods(http.MethodGet)
	priv.HandleFunc("/trips", h.TripCreateHandler).Methods(http.MethodPost)
	priv.HandleFunc("/trips/{id}", h.TripGetHandler).Methods(http.MethodGet)
	priv.HandleFunc("/trips/{id}", h.TripUpdateHandler).Methods(http.MethodPut)
	priv.HandleFunc("/trips/{id}", h.TripDeleteHandler).Methods(http.MethodDelete)
	priv.HandleFunc("/trips/{id}/events", h.TripEventsHandler).Methods(http.MethodGet)
	priv.HandleFunc("/trips/{id}/events", h.TripEventAppendHandler).Methods(http.MethodPost)
	priv.HandleFunc("/trips/{id}/score", h.TripScoreHandler).Methods(http.MethodGet)

	// rewards
	priv.HandleFunc("/rewards", h.RewardListHandler).Methods(http.MethodGet)
	priv.HandleFunc("/rewards", h.authorize(h.RewardCreateHandler, "admin")).Methods(http.MethodPost)
	priv.HandleFunc("/rewards/{id}", h.RewardGetHandler).Methods(http.MethodGet)
	priv.HandleFunc("/rewards/{id}", h.authorize(h.RewardUpdateHandler, "admin")).Methods(http.MethodPut)
	priv.HandleFunc("/rewards/{id}", h.authorize(h.RewardDeleteHandler, "admin")).Methods(http.MethodDelete)
	priv.HandleFunc("/rewards/{id}/redeem", h.RedeemHandler).Methods(http.MethodPost)

	// emergencies
	priv.HandleFunc("/emergencies", h.EmergencyListHandler).Methods(http.MethodGet)
	priv.HandleFunc("/emergencies", h.EmergencyCreateHandler).Methods(http.MethodPost)
	priv.HandleFunc("/emergencies/{id}", h.EmergencyGetHandler).Methods(http.MethodGet)
	priv.HandleFunc("/emergencies/{id}", h.authorize(h.EmergencyUpdateHandler, "admin")).Methods(http.MethodPut)
	priv.HandleFunc("/emergencies/{id}", h.authorize(h.EmergencyDeleteHandler, "admin")).Methods(http.MethodDelete)
	priv.HandleFunc("/emergencies/{id}/respond", h.authorize(h.EmergencyRespondHandler, "admin", "fleet")).Methods(http.MethodPost)

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) Log(msg string, service string, err error) {
	h.logger.Error(msg,
		zap.String("service", service),
		zap.Error(err),
	)
}

// websocket: токен передается query-параметром
func (h *Handler) WSHandler(w http.ResponseWriter, r *http.Request) {
	claims, err := h.tokens.Parse(r.URL.Query().Get("token"))
	if err != nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}
	userId, err := parseUUID(claims.UserID)
	if err != nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}
	h.hub.ServeWS(w, r, userId, claims.Role)
}
