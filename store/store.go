// Package store defines the persistence ports consumed by the services and
// controllers, together with their MongoDB implementations.
package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ta9iBarkat/ecommerce-platform/models"
)

// CartStore holds one active cart per user.
type CartStore interface {
	// Get returns the user's cart, or models.ErrCartNotFound.
	Get(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error)
	// Save upserts the cart keyed by its user.
	Save(ctx context.Context, cart *models.Cart) error
	// RemoveItem pulls a product's line item and returns the updated cart.
	RemoveItem(ctx context.Context, userID, productID primitive.ObjectID) (*models.Cart, error)
	// Delete removes the cart by its id. The returned bool is false when the
	// cart no longer exists, which is how a concurrent checkout that lost
	// the race finds out.
	Delete(ctx context.Context, cartID primitive.ObjectID) (bool, error)
}

// ProductCatalog is the read side of the catalog used during checkout.
type ProductCatalog interface {
	// Get returns the product, or models.ErrProductNotFound.
	Get(ctx context.Context, productID primitive.ObjectID) (*models.Product, error)
}

// StockLedger adjusts a product's available stock. Adjust must be a single
// atomic conditional update: a decrement that would drive stock negative
// fails with models.ErrInsufficientStock and leaves the count untouched.
type StockLedger interface {
	Adjust(ctx context.Context, productID primitive.ObjectID, delta int) error
}

// ProductStore is the full catalog CRUD surface.
type ProductStore interface {
	ProductCatalog
	StockLedger
	Insert(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	DeleteProduct(ctx context.Context, productID primitive.ObjectID) error
	// Find runs a translated catalog query (search/filter/pagination).
	Find(ctx context.Context, query ProductQuery) ([]models.Product, error)
}

// ProductQuery is the storage-level form of a catalog listing request,
// produced by utils.BuildProductQuery.
type ProductQuery struct {
	Filter interface{}
	Limit  int64
	Skip   int64
}

// OrderStore persists orders. Orders are immutable except for their status,
// which only moves via the UpdateStatus compare-and-set.
type OrderStore interface {
	Insert(ctx context.Context, order *models.Order) error
	// Remove deletes an order document. It exists solely for saga rollback
	// of a partially placed order; completed orders are never deleted.
	Remove(ctx context.Context, orderID primitive.ObjectID) error
	FindByID(ctx context.Context, orderID primitive.ObjectID) (*models.Order, error)
	// FindByUser returns the user's orders, newest first.
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error)
	// FindAll returns every order, newest first.
	FindAll(ctx context.Context) ([]models.Order, error)
	// UpdateStatus sets the status only if the stored status still equals
	// from, returning the updated order. A lost race yields
	// models.ErrStatusConflict.
	UpdateStatus(ctx context.Context, orderID primitive.ObjectID, from, to models.OrderStatus, deliveredAt *time.Time) (*models.Order, error)
}

// UserStore persists accounts.
type UserStore interface {
	Insert(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, userID primitive.ObjectID) (*models.User, error)
}
