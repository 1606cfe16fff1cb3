package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem is a (product, quantity) line item.
type CartItem struct {
	ProductID primitive.ObjectID `bson:"product_id" json:"productId"`
	Quantity  int                `bson:"quantity" json:"quantity"`
}

// Cart is a user's active shopping cart. There is at most one per user,
// enforced by a unique index on user_id. A cart is deleted outright when an
// order is placed from it.
type Cart struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"userId"`
	Items     []CartItem         `bson:"items" json:"items"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}

// AddItem merges the quantity into an existing line item for the same
// product, or appends a new one. No two line items share a product.
func (c *Cart) AddItem(item CartItem) {
	for i := range c.Items {
		if c.Items[i].ProductID == item.ProductID {
			c.Items[i].Quantity += item.Quantity
			return
		}
	}
	c.Items = append(c.Items, item)
}

// SetQuantity updates the quantity of an existing line item. It returns
// false when the product is not in the cart.
func (c *Cart) SetQuantity(productID primitive.ObjectID, quantity int) bool {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity = quantity
			return true
		}
	}
	return false
}
