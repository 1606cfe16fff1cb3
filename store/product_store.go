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

// MongoProductStore implements ProductStore (and with it ProductCatalog and
// StockLedger) on the products collection.
type MongoProductStore struct {
	coll *mongo.Collection
}

func NewMongoProductStore(db *mongo.Database) *MongoProductStore {
	return &MongoProductStore{coll: db.Collection("products")}
}

func (s *MongoProductStore) Get(ctx context.Context, productID primitive.ObjectID) (*models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var product models.Product
	err := withRetry(ctx, func(ctx context.Context) error {
		return s.coll.FindOne(ctx, bson.M{"_id": productID}).Decode(&product)
	})
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// Adjust applies a stock delta in one conditional update. Decrements carry a
// "stock >= quantity" guard in the filter so the count can never go
// negative; increments are unconditional. A decrement is not retried on
// transient errors because the driver cannot tell whether the $inc landed.
func (s *MongoProductStore) Adjust(ctx context.Context, productID primitive.ObjectID, delta int) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	filter := bson.M{"_id": productID}
	if delta < 0 {
		filter["stock"] = bson.M{"$gte": -delta}
	}

	res, err := s.coll.UpdateOne(ctx, filter, bson.M{"$inc": bson.M{"stock": delta}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		if delta >= 0 {
			return models.ErrProductNotFound
		}
		// Guarded decrement matched nothing: either the product is gone or
		// there is not enough stock left.
		n, err := s.coll.CountDocuments(ctx, bson.M{"_id": productID})
		if err != nil {
			return err
		}
		if n == 0 {
			return models.ErrProductNotFound
		}
		return models.ErrInsufficientStock
	}
	return nil
}

func (s *MongoProductStore) Insert(ctx context.Context, product *models.Product) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now
	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	_, err := s.coll.InsertOne(ctx, product)
	return err
}

func (s *MongoProductStore) Update(ctx context.Context, product *models.Product) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	product.UpdatedAt = time.Now()
	res, err := s.coll.ReplaceOne(ctx, bson.M{"_id": product.ID}, product)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrProductNotFound
	}
	return nil
}

func (s *MongoProductStore) DeleteProduct(ctx context.Context, productID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": productID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return models.ErrProductNotFound
	}
	return nil
}

func (s *MongoProductStore) Find(ctx context.Context, query ProductQuery) ([]models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if query.Limit > 0 {
		opts.SetLimit(query.Limit)
	}
	if query.Skip > 0 {
		opts.SetSkip(query.Skip)
	}

	filter := query.Filter
	if filter == nil {
		filter = bson.M{}
	}

	var products []models.Product
	err := withRetry(ctx, func(ctx context.Context) error {
		cursor, err := s.coll.Find(ctx, filter, opts)
		if err != nil {
			return err
		}
		products = products[:0]
		return cursor.All(ctx, &products)
	})
	if err != nil {
		return nil, err
	}
	return products, nil
}
