package db

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SafeDB struct {
	mgo         *mongo.Client
	users       *mongo.Collection
	trips       *mongo.Collection
	rewards     *mongo.Collection
	redemptions *mongo.Collection
	emergencies *mongo.Collection
}

func NewSafeDB() (*SafeDB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	mng := os.Getenv("SAFEDRIVE_MONGO")
	if mng == "" {
		return nil, fmt.Errorf("env SAFEDRIVE_MONGO is not set")
	}

	options := options.Client().ApplyURI("mongodb://" + mng)
	client, err := mongo.Connect(ctx, options)
	if err != nil {
		return nil, err
	}
	err = client.Ping(ctx, nil)
	if err != nil {
		return nil, err
	}
	db := client.Database("safedriveDB")

	return &SafeDB{
		mgo:         client,
		users:       db.Collection("users"),
		trips:       db.Collection("trips"),
		rewards:     db.Collection("rewards"),
		redemptions: db.Collection("redemptions"),
		emergencies: db.Collection("emergencies"),
	}, nil
}

func (s *SafeDB) Close(ctx context.Context) error {
	return s.mgo.Disconnect(ctx)
}
