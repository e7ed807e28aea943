package mongostore

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prerna-auth/internal/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names.
const (
	CollectionUsers = "users"
	CollectionOtps  = "otpstores"
)

// Connect opens a client for cfg.MongoURI and verifies it with a ping.
func Connect(ctx context.Context, cfg *config.Config) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return client, nil
}

// EnsureIndexes creates the unique phone index on users and the
// latest-first lookup index on OTP records. Existing indexes are left alone.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	if _, err := db.Collection(CollectionUsers).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "phonenumber", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("phonenumber_unique"),
	}); err != nil {
		return fmt.Errorf("create users index: %w", err)
	}
	if _, err := db.Collection(CollectionOtps).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "phonenumber", Value: 1}, {Key: "created_at", Value: -1}},
		Options: options.Index().SetName("phonenumber_created_at"),
	}); err != nil {
		return fmt.Errorf("create otps index: %w", err)
	}
	slog.Info("mongo indexes ensured", "db", db.Name())
	return nil
}
