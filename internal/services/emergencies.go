package services

import (
	"context"
	"fmt"
	"time"

	interf "github.com/glkeru/safedrive/internal/interfaces"
	models "github.com/glkeru/safedrive/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// комната дежурных служб
const RoomResponders = "emergency-responders"

type EmergencyService struct {
	logger      *zap.Logger
	emergencies interf.EmergencyStorage
	users       interf.UserStorage
	notify      interf.Notifier
}

func NewEmergencyService(logger *zap.Logger, emergencies interf.EmergencyStorage, users interf.UserStorage, notify interf.Notifier) *EmergencyService {
	return &EmergencyService{logger, emergencies, users, notify}
}

func (s *EmergencyService) Create(ctx context.Context, emergency models.Emergency, userId uuid.UUID) (models.Emergency, error) {
	switch emergency.EmergencyType {
	case models.EmergencyAccident, models.EmergencyMedical, models.EmergencyMechanical, models.EmergencyOther:
	default:
		return emergency, fmt.Errorf("%w: unknown emergency type %q", models.ErrValidation, emergency.EmergencyType)
	}

	emergency.ID = uuid.New()
	emergency.User = userId
	emergency.Status = models.EmergencyActive
	if emergency.Responders == nil {
		emergency.Responders = []models.Responder{}
	}
	emergency.CreatedAt = time.Now()

	err := s.emergencies.EmergencyCreate(ctx, emergency)
	if err != nil {
		return emergency, err
	}

	if s.notify != nil {
		err = s.notify.Publish(ctx, RoomResponders, "new-emergency", map[string]any{
			"emergencyId":   emergency.ID,
			"userId":        userId,
			"location":      emergency.Location,
			"emergencyType": emergency.EmergencyType,
			"createdAt":     emergency.CreatedAt,
		})
		if err != nil {
			s.logger.Error("notify",
				zap.String("event", "new-emergency"),
				zap.Error(err),
			)
		}

		// уведомляем контакты пользователя параллельно
		user, err := s.users.UserGet(ctx, userId)
		if err != nil {
			s.logger.Error("emergency contacts", zap.Error(err))
			return emergency, nil
		}
		g, gctx := errgroup.WithContext(ctx)
		for _, contact := range user.EmergencyContacts {
			g.Go(func() error {
				return s.notify.Publish(gctx, "user-"+userId.String(), "emergency-notification", map[string]any{
					"contactName": contact.Name,
					"status":      "notified",
				})
			})
		}
		if err := g.Wait(); err != nil {
			s.logger.Error("notify",
				zap.String("event", "emergency-notification"),
				zap.Error(err),
			)
		}
	}
	return emergency, nil
}

func (s *EmergencyService) Get(ctx context.Context, id uuid.UUID, userId uuid.UUID, role string) (models.Emergency, error) {
	emergency, err := s.emergencies.EmergencyGet(ctx, id)
	if err != nil {
		return emergency, err
	}
	if !canAccess(emergency.User, userId, role) {
		return emergency, fmt.Errorf("emergency: %w", models.ErrUnauthorized)
	}
	return emergency, nil
}

func (s *EmergencyService) List(ctx context.Context, userId uuid.UUID, role string) ([]models.Emergency, error) {
	owner := userId
	if role == models.RoleAdmin {
		owner = uuid.Nil
	}
	return s.emergencies.EmergencyList(ctx, owner)
}

func (s *EmergencyService) Update(ctx context.Context, id uuid.UUID, upd models.EmergencyUpdate) (models.Emergency, error) {
	if upd.Status != nil {
		switch *upd.Status {
		case models.EmergencyActive, models.EmergencyResolved, models.EmergencyCancelled:
		default:
			return models.Emergency{}, fmt.Errorf("%w: unknown status %q", models.ErrValidation, *upd.Status)
		}
		if *upd.Status == models.EmergencyResolved && upd.ResolvedAt == nil {
			now := time.Now()
			upd.ResolvedAt = &now
		}
	}
	return s.emergencies.EmergencyUpdate(ctx, id, upd)
}

func (s *EmergencyService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.emergencies.EmergencyDelete(ctx, id)
}

func (s *EmergencyService) Respond(ctx context.Context, id uuid.UUID, responderType string) (models.Emergency, error) {
	emergency, err := s.emergencies.ResponderAdd(ctx, id, models.Responder{
		Type:   responderType,
		Status: "dispatched",
	})
	if err != nil {
		return emergency, err
	}

	if s.notify != nil {
		err = s.notify.Publish(ctx, "user-"+emergency.User.String(), "emergency-response", map[string]any{
			"emergencyId":   emergency.ID,
			"responderType": responderType,
			"status":        "dispatched",
		})
		if err != nil {
			s.logger.Error("notify",
				zap.String("event", "emergency-response"),
				zap.Error(err),
			)
		}
	}
	return emergency, nil
}
