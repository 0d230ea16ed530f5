package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	interf "github.com/glkeru/safedrive/internal/interfaces"
	models "github.com/glkeru/safedrive/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TripService struct {
	logger *zap.Logger
	trips  interf.TripStorage
	users  interf.UserStorage
	cache  interf.CacheStorage
	notify interf.Notifier
}

func NewTripService(logger *zap.Logger, trips interf.TripStorage, users interf.UserStorage, cache interf.CacheStorage, notify interf.Notifier) *TripService {
	return &TripService{logger, trips, users, cache, notify}
}

// владелец или админ
func canAccess(owner uuid.UUID, userId uuid.UUID, role string) bool {
	return owner == userId || role == models.RoleAdmin
}

type ScoreResult struct {
	Score        int     `json:"score"`
	PointsEarned int64   `json:"pointsEarned"`
	Distance     float64 `json:"distance"`
	EventCount   int     `json:"eventCount"`
}

func validateEvent(event models.DrivingEvent) error {
	if !event.Type.Valid() {
		return fmt.Errorf("%w: unknown event type %q", models.ErrValidation, event.Type)
	}
	if event.Severity != nil && (*event.Severity < 1 || *event.Severity > 5) {
		return fmt.Errorf("%w: severity must be 1..5", models.ErrValidation)
	}
	return nil
}

func (s *TripService) Create(ctx context.Context, trip models.Trip, userId uuid.UUID) (models.Trip, error) {
	if trip.Distance < 0 {
		return trip, fmt.Errorf("%w: distance must be non-negative", models.ErrValidation)
	}
	if trip.StartTime.IsZero() {
		return trip, fmt.Errorf("%w: startTime is required", models.ErrValidation)
	}
	for _, event := range trip.Events {
		if err := validateEvent(event); err != nil {
			return trip, err
		}
	}

	trip.ID = uuid.New()
	trip.User = userId
	trip.Score = nil
	trip.PointsEarned = 0
	trip.CreatedAt = time.Now()
	if trip.Events == nil {
		trip.Events = []models.DrivingEvent{}
	}

	err := s.trips.TripCreate(ctx, trip)
	if err != nil {
		return trip, err
	}

	s.publish(ctx, "user-"+userId.String(), "trip-started", map[string]any{
		"tripId":        trip.ID,
		"startTime":     trip.StartTime,
		"startLocation": trip.StartLocation,
	})
	return trip, nil
}

func (s *TripService) Get(ctx context.Context, id uuid.UUID, userId uuid.UUID, role string) (models.Trip, error) {
	trip, err := s.trips.TripGet(ctx, id)
	if err != nil {
		return trip, err
	}
	if !canAccess(trip.User, userId, role) {
		return trip, fmt.Errorf("trip: %w", models.ErrUnauthorized)
	}
	return trip, nil
}

func (s *TripService) List(ctx context.Context, userId uuid.UUID, role string) ([]models.Trip, error) {
	// не-админ видит только свои поездки
	owner := userId
	if role == models.RoleAdmin {
		owner = uuid.Nil
	}
	return s.trips.TripList(ctx, owner)
}

func (s *TripService) ListByUser(ctx context.Context, owner uuid.UUID, userId uuid.UUID, role string) ([]models.Trip, error) {
	if !canAccess(owner, userId, role) {
		return nil, fmt.Errorf("trips: %w", models.ErrUnauthorized)
	}
	return s.trips.TripList(ctx, owner)
}

func (s *TripService) Update(ctx context.Context, id uuid.UUID, upd models.TripUpdate, userId uuid.UUID, role string) (models.Trip, error) {
	trip, err := s.trips.TripGet(ctx, id)
	if err != nil {
		return trip, err
	}
	if !canAccess(trip.User, userId, role) {
		return trip, fmt.Errorf("trip: %w", models.ErrUnauthorized)
	}
	if upd.Distance != nil && *upd.Distance < 0 {
		return trip, fmt.Errorf("%w: distance must be non-negative", models.ErrValidation)
	}

	completing := trip.EndTime == nil && upd.EndTime != nil

	trip, err = s.trips.TripUpdate(ctx, id, upd)
	if err != nil {
		return trip, err
	}

	if completing {
		s.publish(ctx, "user-"+trip.User.String(), "trip-completed", map[string]any{
			"tripId":       trip.ID,
			"endTime":      trip.EndTime,
			"pointsEarned": trip.PointsEarned,
		})
	}
	return trip, nil
}

func (s *TripService) Delete(ctx context.Context, id uuid.UUID, userId uuid.UUID, role string) error {
	trip, err := s.trips.TripGet(ctx, id)
	if err != nil {
		return err
	}
	if !canAccess(trip.User, userId, role) {
		return fmt.Errorf("trip: %w", models.ErrUnauthorized)
	}
	return s.trips.TripDelete(ctx, id)
}

func (s *TripService) Events(ctx context.Context, id uuid.UUID, userId uuid.UUID, role string) ([]models.DrivingEvent, error) {
	trip, err := s.Get(ctx, id, userId, role)
	if err != nil {
		return nil, err
	}
	return trip.Events, nil
}

func (s *TripService) AppendEvent(ctx context.Context, id uuid.UUID, event models.DrivingEvent, userId uuid.UUID, role string) error {
	if err := validateEvent(event); err != nil {
		return err
	}
	trip, err := s.trips.TripGet(ctx, id)
	if err != nil {
		return err
	}
	if !canAccess(trip.User, userId, role) {
		return fmt.Errorf("trip: %w", models.ErrUnauthorized)
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	return s.trips.EventAppend(ctx, id, event)
}

// Расчет рейтинга поездки: баллы начисляются не более одного раза.
// Повторный вызов возвращает сохраненный результат без повторного начисления.
func (s *TripService) Score(ctx context.Context, id uuid.UUID, userId uuid.UUID, role string) (ScoreResult, error) {
	trip, err := s.trips.TripGet(ctx, id)
	if err != nil {
		return ScoreResult{}, err
	}
	if !canAccess(trip.User, userId, role) {
		return ScoreResult{}, fmt.Errorf("trip: %w", models.ErrUnauthorized)
	}
	if trip.Score != nil {
		return ScoreResult{*trip.Score, trip.PointsEarned, trip.Distance, len(trip.Events)}, nil
	}

	score, points := ComputeScore(trip.Distance, trip.Events)

	ok, err := s.trips.TripSetScore(ctx, id, score, points)
	if err != nil {
		return ScoreResult{}, err
	}
	if !ok {
		// параллельный расчет успел раньше - отдаем его результат
		trip, err = s.trips.TripGet(ctx, id)
		if err != nil {
			return ScoreResult{}, err
		}
		if trip.Score == nil {
			return ScoreResult{}, fmt.Errorf("trip %s: score is not set", id)
		}
		return ScoreResult{*trip.Score, trip.PointsEarned, trip.Distance, len(trip.Events)}, nil
	}

	balance, err := s.users.CreditPoints(ctx, trip.User, points)
	if err != nil {
		return ScoreResult{}, err
	}
	if s.cache != nil {
		err = s.cache.InvalidateBalance(ctx, trip.User.String())
		if err != nil {
			s.logger.Error("cache invalidate", zap.Error(err))
		}
	}

	s.publish(ctx, "user-"+trip.User.String(), "trip-scored", map[string]any{
		"tripId":       trip.ID,
		"score":        score,
		"pointsEarned": points,
		"totalPoints":  balance,
	})
	return ScoreResult{score, points, trip.Distance, len(trip.Events)}, nil
}

// Сообщение телеметрии из Kafka
type EventMessage struct {
	TripID string              `json:"tripId"`
	Event  models.DrivingEvent `json:"event"`
}

func (s *TripService) ProcessEventMessage(ctx context.Context, msg string) error {
	var em EventMessage
	err := json.Unmarshal([]byte(msg), &em)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrValidation, err)
	}
	tripId, err := uuid.Parse(em.TripID)
	if err != nil {
		return fmt.Errorf("%w: invalid tripId", models.ErrValidation)
	}
	if err := validateEvent(em.Event); err != nil {
		return err
	}
	if em.Event.Timestamp.IsZero() {
		em.Event.Timestamp = time.Now()
	}
	return s.trips.EventAppend(ctx, tripId, em.Event)
}

func (s *TripService) publish(ctx context.Context, room string, event string, payload any) {
	if s.notify == nil {
		return
	}
	err := s.notify.Publish(ctx, room, event, payload)
	if err != nil {
		s.logger.Error("notify",
			zap.String("event", event),
			zap.Error(err),
		)
	}
}
