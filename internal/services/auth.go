package services

import (
	"context"
	"errors"
	"fmt"

	auth "github.com/glkeru/safedrive/internal/auth"
	interf "github.com/glkeru/safedrive/internal/interfaces"
	models "github.com/glkeru/safedrive/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	logger *zap.Logger
	users  *UserService
	store  interf.UserStorage
	tokens *auth.Tokens
}

func NewAuthService(logger *zap.Logger, users *UserService, store interf.UserStorage, tokens *auth.Tokens) *AuthService {
	return &AuthService{logger, users, store, tokens}
}

type RegisterRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	Phone          string `json:"phone"`
	DrivingLicense string `json:"drivingLicense"`
}

func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (models.User, string, error) {
	if req.Name == "" {
		return models.User{}, "", fmt.Errorf("%w: name is required", models.ErrValidation)
	}

	user, err := s.users.Create(ctx, models.User{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		DrivingLicense: req.DrivingLicense,
		Role:           models.RoleUser,
	}, req.Password)
	if err != nil {
		return models.User{}, "", err
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return models.User{}, "", err
	}
	return user, token, nil
}

func (s *AuthService) Login(ctx context.Context, email string, password string) (models.User, string, error) {
	user, err := s.store.UserGetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			// не раскрываем, что именно неверно
			return models.User{}, "", fmt.Errorf("invalid credentials: %w", models.ErrUnauthorized)
		}
		return models.User{}, "", err
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		return models.User{}, "", fmt.Errorf("invalid credentials: %w", models.ErrUnauthorized)
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return models.User{}, "", err
	}
	return user, token, nil
}

func (s *AuthService) Me(ctx context.Context, id uuid.UUID) (models.User, error) {
	return s.store.UserGet(ctx, id)
}
