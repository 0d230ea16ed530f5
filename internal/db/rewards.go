package db

import (
	"context"
	"errors"
	"fmt"

	models "github.com/glkeru/safedrive/internal/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (s *SafeDB) RewardCreate(ctx context.Context, reward models.Reward) error {
	_, err := s.rewards.InsertOne(ctx, reward)
	return err
}

func (s *SafeDB) RewardGet(ctx context.Context, id uuid.UUID) (models.Reward, error) {
	var reward models.Reward
	err := s.rewards.FindOne(ctx, bson.M{"id": id}).Decode(&reward)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return reward, fmt.Errorf("reward %w", models.ErrNotFound)
	}
	return reward, err
}

func (s *SafeDB) RewardList(ctx context.Context, filter models.RewardFilter) ([]models.Reward, error) {
	query := bson.M{}
	if len(filter.Categories) > 0 {
		query["category"] = bson.M{"$in": filter.Categories}
	}
	if filter.IsActive != nil {
		query["isActive"] = *filter.IsActive
	}

	result, err := s.rewards.Find(ctx, query)
	if err != nil {
		return nil, err
	}

	var rewards []models.Reward
	for result.Next(ctx) {
		var reward models.Reward
		err := result.Decode(&reward)
		if err != nil {
			return nil, err
		}
		rewards = append(rewards, reward)
	}
	return rewards, nil
}

func (s *SafeDB) RewardUpdate(ctx context.Context, id uuid.UUID, upd models.RewardUpdate) (models.Reward, error) {
	set := bson.M{}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.PointsRequired != nil {
		set["pointsRequired"] = *upd.PointsRequired
	}
	if upd.Category != nil {
		set["category"] = *upd.Category
	}
	if upd.Image != nil {
		set["image"] = *upd.Image
	}
	if upd.ExpiryDate != nil {
		set["expiryDate"] = *upd.ExpiryDate
	}
	if upd.IsActive != nil {
		set["isActive"] = *upd.IsActive
	}
	// пустой $set Mongo не принимает
	if len(set) == 0 {
		return s.RewardGet(ctx, id)
	}

	var reward models.Reward
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := s.rewards.FindOneAndUpdate(ctx, bson.M{"id": id}, bson.M{"$set": set}, opts).Decode(&reward)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return reward, fmt.Errorf("reward %w", models.ErrNotFound)
	}
	return reward, err
}

func (s *SafeDB) RewardDelete(ctx context.Context, id uuid.UUID) error {
	result, err := s.rewards.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("reward %w", models.ErrNotFound)
	}
	return nil
}

// Списание и запись погашения одной транзакцией.
// Проверка и декремент баланса - одно условное обновление (points >= pointsUsed),
// конкурентные списания не могут увести баланс в минус.
func (s *SafeDB) Redeem(ctx context.Context, redemption models.Redemption) (int64, error) {
	sess, err := s.mgo.StartSession()
	if err != nil {
		return 0, err
	}
	defer sess.EndSession(ctx)

	remaining, err := sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		filter := bson.M{
			"id":     redemption.User,
			"points": bson.M{"$gte": redemption.PointsUsed},
		}
		update := bson.M{"$inc": bson.M{"points": -redemption.PointsUsed}}

		var user models.User
		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
		err := s.users.FindOneAndUpdate(sc, filter, update, opts).Decode(&user)
		if errors.Is(err, mongo.ErrNoDocuments) {
			// различаем отсутствие пользователя и нехватку баллов
			err = s.users.FindOne(sc, bson.M{"id": redemption.User}).Err()
			if errors.Is(err, mongo.ErrNoDocuments) {
				return int64(0), fmt.Errorf("user %w", models.ErrNotFound)
			}
			if err != nil {
				return int64(0), err
			}
			return int64(0), models.ErrInsufficientPoints
		}
		if err != nil {
			return int64(0), err
		}

		_, err = s.redemptions.InsertOne(sc, redemption)
		if err != nil {
			return int64(0), err
		}
		return user.Points, nil
	})
	if err != nil {
		return 0, err
	}
	return remaining.(int64), nil
}

func (s *SafeDB) RedemptionList(ctx context.Context, userId uuid.UUID) ([]models.Redemption, error) {
	opts := options.Find().SetSort(bson.D{{Key: "redeemedAt", Value: -1}})
	result, err := s.redemptions.Find(ctx, bson.M{"user": userId}, opts)
	if err != nil {
		return nil, err
	}

	var redemptions []models.Redemption
	for result.Next(ctx) {
		var redemption models.Redemption
		err := result.Decode(&redemption)
		if err != nil {
			return nil, err
		}
		redemptions = append(redemptions, redemption)
	}
	return redemptions, nil
}
