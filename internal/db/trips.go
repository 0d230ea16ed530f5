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

func (s *SafeDB) TripCreate(ctx context.Context, trip models.Trip) error {
	_, err := s.trips.InsertOne(ctx, trip)
	return err
}

func (s *SafeDB) TripGet(ctx context.Context, id uuid.UUID) (models.Trip, error) {
	var trip models.Trip
	err := s.trips.FindOne(ctx, bson.M{"id": id}).Decode(&trip)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return trip, fmt.Errorf("trip %w", models.ErrNotFound)
	}
	return trip, err
}

func (s *SafeDB) TripList(ctx context.Context, userId uuid.UUID) ([]models.Trip, error) {
	filter := bson.M{}
	if userId != uuid.Nil {
		filter["user"] = userId
	}
	opts := options.Find().SetSort(bson.D{{Key: "startTime", Value: -1}})
	result, err := s.trips.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	var trips []models.Trip
	for result.Next(ctx) {
		var trip models.Trip
		err := result.Decode(&trip)
		if err != nil {
			return nil, err
		}
		trips = append(trips, trip)
	}
	return trips, nil
}

func (s *SafeDB) TripUpdate(ctx context.Context, id uuid.UUID, upd models.TripUpdate) (models.Trip, error) {
	set := bson.M{}
	if upd.EndTime != nil {
		set["endTime"] = *upd.EndTime
	}
	if upd.EndLocation != nil {
		set["endLocation"] = *upd.EndLocation
	}
	if upd.Distance != nil {
		set["distance"] = *upd.Distance
	}
	if upd.Duration != nil {
		set["duration"] = *upd.Duration
	}
	// пустой $set Mongo не принимает
	if len(set) == 0 {
		return s.TripGet(ctx, id)
	}

	var trip models.Trip
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := s.trips.FindOneAndUpdate(ctx, bson.M{"id": id}, bson.M{"$set": set}, opts).Decode(&trip)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return trip, fmt.Errorf("trip %w", models.ErrNotFound)
	}
	return trip, err
}

func (s *SafeDB) TripDelete(ctx context.Context, id uuid.UUID) error {
	result, err := s.trips.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("trip %w", models.ErrNotFound)
	}
	return nil
}

func (s *SafeDB) EventAppend(ctx context.Context, tripId uuid.UUID, event models.DrivingEvent) error {
	result, err := s.trips.UpdateOne(ctx,
		bson.M{"id": tripId},
		bson.M{"$push": bson.M{"events": event}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("trip %w", models.ErrNotFound)
	}
	return nil
}

// Условная запись результата: только если поездка еще не оценена.
// Защита от повторного начисления при конкурентных запросах расчета.
func (s *SafeDB) TripSetScore(ctx context.Context, tripId uuid.UUID, score int, points int64) (bool, error) {
	filter := bson.M{"id": tripId, "score": bson.M{"$exists": false}}
	update := bson.M{"$set": bson.M{"score": score, "pointsEarned": points}}
	result, err := s.trips.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return result.ModifiedCount == 1, nil
}
