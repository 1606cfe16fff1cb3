package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	opTimeout     = 10 * time.Second
	retryAttempts = 3
	retryBaseWait = 50 * time.Millisecond
)

// Connect opens a Mongo client and verifies connectivity.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}
	return client, nil
}

// EnsureIndexes creates the indexes the stores rely on: one cart per user
// and unique account emails.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	unique := options.Index().SetUnique(true)

	_, err := db.Collection("carts").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: unique,
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: unique,
	})
	return err
}

// withRetry reruns fn with bounded backoff on transient driver errors.
// Callers must only pass idempotent operations: plain reads and writes whose
// filter makes a duplicate application a no-op. Unconditioned $inc updates
// are never routed through here, since a retry after an ambiguous network
// failure could apply the increment twice.
func withRetry(ctx context.Context, fn func(context.Context) error) error {
	wait := retryBaseWait
	var err error
	for attempt := 0; attempt < retryAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
			wait *= 2
		}
		err = fn(ctx)
		if err == nil || !isTransient(err) {
			return err
		}
	}
	return err
}

func isTransient(err error) bool {
	return mongo.IsTimeout(err) || mongo.IsNetworkError(err)
}
