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

func (s *SafeDB) UserCreate(ctx context.Context, user models.User) error {
	_, err := s.users.InsertOne(ctx, user)
	return err
}

func (s *SafeDB) UserGet(ctx context.Context, id uuid.UUID) (models.User, error) {
	var user models.User
	err := s.users.FindOne(ctx, bson.M{"id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return user, fmt.Errorf("user %w", models.ErrNotFound)
	}
	return user, err
}

func (s *SafeDB) UserGetByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := s.users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return user, fmt.Errorf("user %w", models.ErrNotFound)
	}
	return user, err
}

func (s *SafeDB) UserList(ctx context.Context) ([]models.User, error) {
	var users []models.User
	result, err := s.users.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	for result.Next(ctx) {
		var user models.User
		err := result.Decode(&user)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func (s *SafeDB) UserUpdate(ctx context.Context, id uuid.UUID, upd models.UserUpdate) (models.User, error) {
	set := bson.M{}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.Email != nil {
		set["email"] = *upd.Email
	}
	if upd.Phone != nil {
		set["phone"] = *upd.Phone
	}
	if upd.DrivingLicense != nil {
		set["drivingLicense"] = *upd.DrivingLicense
	}
	if upd.Role != nil {
		set["role"] = *upd.Role
	}
	// пустой $set Mongo не принимает
	if len(set) == 0 {
		return s.UserGet(ctx, id)
	}

	var user models.User
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := s.users.FindOneAndUpdate(ctx, bson.M{"id": id}, bson.M{"$set": set}, opts).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return user, fmt.Errorf("user %w", models.ErrNotFound)
	}
	return user, err
}

func (s *SafeDB) UserDelete(ctx context.Context, id uuid.UUID) error {
	result, err := s.users.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("user %w", models.ErrNotFound)
	}
	return nil
}

func (s *SafeDB) ContactAdd(ctx context.Context, userId uuid.UUID, contact models.EmergencyContact) ([]models.EmergencyContact, error) {
	var user models.User
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := s.users.FindOneAndUpdate(ctx,
		bson.M{"id": userId},
		bson.M{"$push": bson.M{"emergencyContacts": contact}},
		opts).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("user %w", models.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return user.EmergencyContacts, nil
}

func (s *SafeDB) ContactRemove(ctx context.Context, userId uuid.UUID, contactId uuid.UUID) ([]models.EmergencyContact, error) {
	var user models.User
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := s.users.FindOneAndUpdate(ctx,
		bson.M{"id": userId},
		bson.M{"$pull": bson.M{"emergencyContacts": bson.M{"id": contactId}}},
		opts).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("user %w", models.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return user.EmergencyContacts, nil
}

func (s *SafeDB) GetBalance(ctx context.Context, userId uuid.UUID) (int64, error) {
	user, err := s.UserGet(ctx, userId)
	if err != nil {
		return 0, err
	}
	return user.Points, nil
}

// Начисление через $inc - атомарный read-modify-write на стороне хранилища
func (s *SafeDB) CreditPoints(ctx context.Context, userId uuid.UUID, points int64) (int64, error) {
	var user models.User
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := s.users.FindOneAndUpdate(ctx,
		bson.M{"id": userId},
		bson.M{"$inc": bson.M{"points": points}},
		opts).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, fmt.Errorf("user %w", models.ErrNotFound)
	}
	if err != nil {
		return 0, err
	}
	return user.Points, nil
}
