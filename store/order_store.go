package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ta9iBarkat/ecommerce-platform/models"
)

// MongoOrderStore implements OrderStore on the orders collection.
type MongoOrderStore struct {
	coll *mongo.Collection
}

func NewMongoOrderStore(db *mongo.Database) *MongoOrderStore {
	return &MongoOrderStore{coll: db.Collection("orders")}
}

func (s *MongoOrderStore) Insert(ctx context.Context, order *models.Order) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	// Insert by explicit _id is idempotent enough to retry: a duplicate key
	// error after an ambiguous first attempt means the insert landed.
	err := withRetry(ctx, func(ctx context.Context) error {
		_, err := s.coll.InsertOne(ctx, order)
		return err
	})
	if mongo.IsDuplicateKeyError(err) {
		return nil
	}
	return err
}

func (s *MongoOrderStore) Remove(ctx context.Context, orderID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	_, err := s.coll.DeleteOne(ctx, bson.M{"_id": orderID})
	return err
}

func (s *MongoOrderStore) FindByID(ctx context.Context, orderID primitive.ObjectID) (*models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var order models.Order
	err := withRetry(ctx, func(ctx context.Context) error {
		return s.coll.FindOne(ctx, bson.M{"_id": orderID}).Decode(&order)
	})
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *MongoOrderStore) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	return s.find(ctx, bson.M{"user_id": userID})
}

func (s *MongoOrderStore) FindAll(ctx context.Context) ([]models.Order, error) {
	return s.find(ctx, bson.M{})
}

func (s *MongoOrderStore) find(ctx context.Context, filter bson.M) ([]models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	var orders []models.Order
	err := withRetry(ctx, func(ctx context.Context) error {
		cursor, err := s.coll.Find(ctx, filter, opts)
		if err != nil {
			return err
		}
		orders = orders[:0]
		return cursor.All(ctx, &orders)
	})
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateStatus is the compare-and-set that drives the order state machine:
// the update filter pins the previously observed status, so concurrent
// transitions on the same order resolve to exactly one winner.
func (s *MongoOrderStore) UpdateStatus(ctx context.Context, orderID primitive.ObjectID, from, to models.OrderStatus, deliveredAt *time.Time) (*models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	set := bson.M{"status": to}
	if deliveredAt != nil {
		set["delivered_at"] = deliveredAt
	}

	// Not retried: if a first attempt landed and the response was lost, a
	// rerun would see the already-moved status and misreport a conflict,
	// which for a cancellation would skip the stock restore.
	var order models.Order
	err := s.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": orderID, "status": from},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		// Either the order vanished or its status moved under us.
		if ferr := s.coll.FindOne(ctx, bson.M{"_id": orderID}).Err(); errors.Is(ferr, mongo.ErrNoDocuments) {
			return nil, models.ErrOrderNotFound
		}
		return nil, models.ErrStatusConflict
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}
