package services

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	interf "github.com/glkeru/safedrive/internal/interfaces"
	models "github.com/glkeru/safedrive/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type RewardService struct {
	logger  *zap.Logger
	rewards interf.RewardStorage
	cache   interf.CacheStorage
	notify  interf.Notifier
}

func NewRewardService(logger *zap.Logger, rewards interf.RewardStorage, cache interf.CacheStorage, notify interf.Notifier) *RewardService {
	return &RewardService{logger, rewards, cache, notify}
}

const codeChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Код погашения: вероятностно уникальный, без гарантии
func redemptionCode() string {
	b := make([]byte, 8)
	for i := range b {
		b[i] = codeChars[rand.IntN(len(codeChars))]
	}
	return "SD-" + string(b)
}

func (s *RewardService) Create(ctx context.Context, reward models.Reward) (models.Reward, error) {
	if reward.Name == "" || reward.Description == "" {
		return reward, fmt.Errorf("%w: name and description are required", models.ErrValidation)
	}
	if reward.PointsRequired <= 0 {
		return reward, fmt.Errorf("%w: pointsRequired must be positive", models.ErrValidation)
	}
	switch reward.Category {
	case models.CategoryFuel, models.CategoryInsurance, models.CategoryRetail, models.CategoryService, models.CategoryOther:
	default:
		return reward, fmt.Errorf("%w: unknown category %q", models.ErrValidation, reward.Category)
	}

	reward.ID = uuid.New()
	reward.CreatedAt = time.Now()
	err := s.rewards.RewardCreate(ctx, reward)
	return reward, err
}

func (s *RewardService) Get(ctx context.Context, id uuid.UUID) (models.Reward, error) {
	return s.rewards.RewardGet(ctx, id)
}

func (s *RewardService) List(ctx context.Context, filter models.RewardFilter) ([]models.Reward, error) {
	// по умолчанию показываем только активные
	if filter.IsActive == nil {
		active := true
		filter.IsActive = &active
	}
	return s.rewards.RewardList(ctx, filter)
}

func (s *RewardService) Update(ctx context.Context, id uuid.UUID, upd models.RewardUpdate) (models.Reward, error) {
	if upd.PointsRequired != nil && *upd.PointsRequired <= 0 {
		return models.Reward{}, fmt.Errorf("%w: pointsRequired must be positive", models.ErrValidation)
	}
	return s.rewards.RewardUpdate(ctx, id, upd)
}

func (s *RewardService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.rewards.RewardDelete(ctx, id)
}

// Погашение вознаграждения.
// Порядок проверок: вознаграждение существует -> активно -> хватает баллов.
// Проверка баланса и списание - одна атомарная операция хранилища.
func (s *RewardService) Redeem(ctx context.Context, userId uuid.UUID, rewardId uuid.UUID) (models.Redemption, int64, error) {
	reward, err := s.rewards.RewardGet(ctx, rewardId)
	if err != nil {
		return models.Redemption{}, 0, err
	}
	if !reward.IsActive {
		return models.Redemption{}, 0, models.ErrRewardInactive
	}

	redemption := models.Redemption{
		ID:             uuid.New(),
		User:           userId,
		Reward:         reward.ID,
		PointsUsed:     reward.PointsRequired,
		Status:         models.RedemptionPending,
		RedemptionCode: redemptionCode(),
		RedeemedAt:     time.Now(),
	}

	remaining, err := s.rewards.Redeem(ctx, redemption)
	if err != nil {
		return models.Redemption{}, 0, err
	}

	if s.cache != nil {
		err = s.cache.InvalidateBalance(ctx, userId.String())
		if err != nil {
			s.logger.Error("cache invalidate", zap.Error(err))
		}
	}

	if s.notify != nil {
		err = s.notify.Publish(ctx, "user-"+userId.String(), "reward-redeemed", map[string]any{
			"rewardId":        reward.ID,
			"rewardName":      reward.Name,
			"pointsUsed":      reward.PointsRequired,
			"remainingPoints": remaining,
			"redemptionCode":  redemption.RedemptionCode,
		})
		if err != nil {
			s.logger.Error("notify",
				zap.String("event", "reward-redeemed"),
				zap.Error(err),
			)
		}
	}
	return redemption, remaining, nil
}
