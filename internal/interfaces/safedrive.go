package interfaces

import (
	"context"

	models "github.com/glkeru/safedrive/internal/models"
	"github.com/google/uuid"
)

//go:generate mockgen -destination=./../services/mock_notifier_test.go -package=services . Notifier

type UserStorage interface {
	UserCreate(ctx context.Context, user models.User) error
	UserGet(ctx context.Context, id uuid.UUID) (models.User, error)
	UserGetByEmail(ctx context.Context, email string) (models.User, error)
	UserList(ctx context.Context) ([]models.User, error)
	UserUpdate(ctx context.Context, id uuid.UUID, upd models.UserUpdate) (models.User, error)
	UserDelete(ctx context.Context, id uuid.UUID) error
	ContactAdd(ctx context.Context, userId uuid.UUID, contact models.EmergencyContact) ([]models.EmergencyContact, error)
	ContactRemove(ctx context.Context, userId uuid.UUID, contactId uuid.UUID) ([]models.EmergencyContact, error)
	GetBalance(ctx context.Context, userId uuid.UUID) (int64, error)
	// атомарное начисление, возвращает новый баланс
	CreditPoints(ctx context.Context, userId uuid.UUID, points int64) (int64, error)
}

type TripStorage interface {
	TripCreate(ctx context.Context, trip models.Trip) error
	TripGet(ctx context.Context, id uuid.UUID) (models.Trip, error)
	// uuid.Nil - все поездки
	TripList(ctx context.Context, userId uuid.UUID) ([]models.Trip, error)
	TripUpdate(ctx context.Context, id uuid.UUID, upd models.TripUpdate) (models.Trip, error)
	TripDelete(ctx context.Context, id uuid.UUID) error
	EventAppend(ctx context.Context, tripId uuid.UUID, event models.DrivingEvent) error
	// условная запись результата: false, если поездка уже оценена
	TripSetScore(ctx context.Context, tripId uuid.UUID, score int, points int64) (bool, error)
}

type RewardStorage interface {
	RewardCreate(ctx context.Context, reward models.Reward) error
	RewardGet(ctx context.Context, id uuid.UUID) (models.Reward, error)
	RewardList(ctx context.Context, filter models.RewardFilter) ([]models.Reward, error)
	RewardUpdate(ctx context.Context, id uuid.UUID, upd models.RewardUpdate) (models.Reward, error)
	RewardDelete(ctx context.Context, id uuid.UUID) error
	// условное списание и запись погашения одной транзакцией, возвращает остаток
	Redeem(ctx context.Context, redemption models.Redemption) (int64, error)
	RedemptionList(ctx context.Context, userId uuid.UUID) ([]models.Redemption, error)
}

type EmergencyStorage interface {
	EmergencyCreate(ctx context.Context, emergency models.Emergency) error
	EmergencyGet(ctx context.Context, id uuid.UUID) (models.Emergency, error)
	EmergencyList(ctx context.Context, userId uuid.UUID) ([]models.Emergency, error)
	EmergencyUpdate(ctx context.Context, id uuid.UUID, upd models.EmergencyUpdate) (models.Emergency, error)
	EmergencyDelete(ctx context.Context, id uuid.UUID) error
	ResponderAdd(ctx context.Context, id uuid.UUID, responder models.Responder) (models.Emergency, error)
}

type CacheStorage interface {
	GetBalance(ctx context.Context, user string) (points int64, err error)
	SetBalance(ctx context.Context, user string, points int64) (err error)
	InvalidateBalance(ctx context.Context, user string) error
}

// Отправка событий в комнаты realtime-канала
type Notifier interface {
	Publish(ctx context.Context, room string, event string, payload any) error
}
