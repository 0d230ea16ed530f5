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

func (s *SafeDB) EmergencyCreate(ctx context.Context, emergency models.Emergency) error {
	_, err := s.emergencies.InsertOne(ctx, emergency)
	return err
}

func (s *SafeDB) EmergencyGet(ctx context.Context, id uuid.UUID) (models.Emergency, error) {
	var emergency models.Emergency
	err := s.emergencies.FindOne(ctx, bson.M{"id": id}).Decode(&emergency)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return emergency, fmt.Errorf("emergency %w", models.ErrNotFound)
	}
	return emergency, err
}

func (s *SafeDB) EmergencyList(ctx context.Context, userId uuid.UUID) ([]models.Emergency, error) {
	filter := bson.M{}
	if userId != uuid.Nil {
		filter["user"] = userId
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	result, err := s.emergencies.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	var emergencies []models.Emergency
	for result.Next(ctx) {
		var emergency models.Emergency
		err := result.Decode(&emergency)
		if err != nil {
			return nil, err
		}
		emergencies = append(emergencies, emergency)
	}
	return emergencies, nil
}

func (s *SafeDB) EmergencyUpdate(ctx context.Context, id uuid.UUID, upd models.EmergencyUpdate) (models.Emergency, error) {
	set := bson.M{}
	if upd.Status != nil {
		set["status"] = *upd.Status
	}
	if upd.ResolvedAt != nil {
		set["resolvedAt"] = *upd.ResolvedAt
	}
	// пустой $set Mongo не принимает
	if len(set) == 0 {
		return s.EmergencyGet(ctx, id)
	}

	var emergency models.Emergency
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := s.emergencies.FindOneAndUpdate(ctx, bson.M{"id": id}, bson.M{"$set": set}, opts).Decode(&emergency)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return emergency, fmt.Errorf("emergency %w", models.ErrNotFound)
	}
	return emergency, err
}

func (s *SafeDB) EmergencyDelete(ctx context.Context, id uuid.UUID) error {
	result, err := s.emergencies.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("emergency %w", models.ErrNotFound)
	}
	return nil
}

func (s *SafeDB) ResponderAdd(ctx context.Context, id uuid.UUID, responder models.Responder) (models.Emergency, error) {
	var emergency models.Emergency
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := s.emergencies.FindOneAndUpdate(ctx,
		bson.M{"id": id},
		bson.M{
			"$set":  bson.M{"status": models.EmergencyActive},
			"$push": bson.M{"responders": responder},
		},
		opts).Decode(&emergency)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return emergency, fmt.Errorf("emergency %w", models.ErrNotFound)
	}
	return emergency, err
}
