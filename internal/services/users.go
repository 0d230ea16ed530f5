package services

import (
	"context"
	"fmt"
	"time"

	interf "github.com/glkeru/safedrive/internal/interfaces"
	models "github.com/glkeru/safedrive/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	logger  *zap.Logger
	users   interf.UserStorage
	rewards interf.RewardStorage
	cache   interf.CacheStorage
}

func NewUserService(logger *zap.Logger, users interf.UserStorage, rewards interf.RewardStorage, cache interf.CacheStorage) *UserService {
	return &UserService{logger, users, rewards, cache}
}

func (s *UserService) Create(ctx context.Context, user models.User, password string) (models.User, error) {
	if user.Email == "" || password == "" {
		return user, fmt.Errorf("%w: email and password are required", models.ErrValidation)
	}
	_, err := s.users.UserGetByEmail(ctx, user.Email)
	if err == nil {
		return user, fmt.Errorf("%w: email is already registered", models.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return user, err
	}

	user.ID = uuid.New()
	user.PasswordHash = string(hash)
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	user.Points = 0
	user.EmergencyContacts = []models.EmergencyContact{}
	user.CreatedAt = time.Now()

	err = s.users.UserCreate(ctx, user)
	return user, err
}

func (s *UserService) Get(ctx context.Context, id uuid.UUID) (models.User, error) {
	return s.users.UserGet(ctx, id)
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.users.UserList(ctx)
}

func (s *UserService) Update(ctx context.Context, id uuid.UUID, upd models.UserUpdate) (models.User, error) {
	return s.users.UserUpdate(ctx, id, upd)
}

func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.users.UserDelete(ctx, id)
}

func (s *UserService) ContactAdd(ctx context.Context, owner uuid.UUID, contact models.EmergencyContact, userId uuid.UUID, role string) ([]models.EmergencyContact, error) {
	if !canAccess(owner, userId, role) {
		return nil, fmt.Errorf("contacts: %w", models.ErrUnauthorized)
	}
	if contact.Name == "" || contact.Phone == "" {
		return nil, fmt.Errorf("%w: contact name and phone are required", models.ErrValidation)
	}
	contact.ID = uuid.New()
	return s.users.ContactAdd(ctx, owner, contact)
}

func (s *UserService) ContactRemove(ctx context.Context, owner uuid.UUID, contactId uuid.UUID, userId uuid.UUID, role string) ([]models.EmergencyContact, error) {
	if !canAccess(owner, userId, role) {
		return nil, fmt.Errorf("contacts: %w", models.ErrUnauthorized)
	}
	return s.users.ContactRemove(ctx, owner, contactId)
}

func (s *UserService) Redemptions(ctx context.Context, owner uuid.UUID, userId uuid.UUID, role string) ([]models.Redemption, error) {
	if !canAccess(owner, userId, role) {
		return nil, fmt.Errorf("redemptions: %w", models.ErrUnauthorized)
	}
	return s.rewards.RedemptionList(ctx, owner)
}

// Баланс с кэшем (read-through)
func (s *UserService) Balance(ctx context.Context, owner uuid.UUID, userId uuid.UUID, role string) (points int64, err error) {
	if !canAccess(owner, userId, role) {
		return 0, fmt.Errorf("balance: %w", models.ErrUnauthorized)
	}
	id := owner
	if s.cache != nil {
		points, err = s.cache.GetBalance(ctx, id.String())
		if err == nil {
			return points, nil
		}
		points, err = s.users.GetBalance(ctx, id)
		if err != nil {
			return 0, err
		}
		_ = s.cache.SetBalance(ctx, id.String(), points)
		return points, nil
	}
	return s.users.GetBalance(ctx, id)
}
