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

// MongoCartStore implements CartStore on the carts collection.
type MongoCartStore struct {
	coll *mongo.Collection
}

func NewMongoCartStore(db *mongo.Database) *MongoCartStore {
	return &MongoCartStore{coll: db.Collection("carts")}
}

func (s *MongoCartStore) Get(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var cart models.Cart
	err := withRetry(ctx, func(ctx context.Context) error {
		return s.coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(&cart)
	})
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrCartNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (s *MongoCartStore) Save(ctx context.Context, cart *models.Cart) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	now := time.Now()
	if cart.ID.IsZero() {
		cart.ID = primitive.NewObjectID()
		cart.CreatedAt = now
	}
	cart.UpdatedAt = now

	_, err := s.coll.ReplaceOne(ctx, bson.M{"user_id": cart.UserID}, cart,
		options.Replace().SetUpsert(true))
	return err
}

func (s *MongoCartStore) RemoveItem(ctx context.Context, userID, productID primitive.ObjectID) (*models.Cart, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res := s.coll.FindOneAndUpdate(ctx,
		bson.M{"user_id": userID},
		bson.M{
			"$pull": bson.M{"items": bson.M{"product_id": productID}},
			"$set":  bson.M{"updated_at": time.Now()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After))

	var cart models.Cart
	if err := res.Decode(&cart); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrCartNotFound
		}
		return nil, err
	}
	return &cart, nil
}

// Delete removes the cart keyed by its id, not the user's, so a cart
// re-created after a checkout is never clobbered by a stale delete. The
// false return tells a racing checkout that another request consumed the
// cart first.
func (s *MongoCartStore) Delete(ctx context.Context, cartID primitive.ObjectID) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	// No retry here: after an ambiguous failure a second attempt would see
	// DeletedCount 0 and misreport a lost checkout race.
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": cartID})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
