package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatus is the closed set of order states.
type OrderStatus string

const (
	StatusProcessing OrderStatus = "Processing"
	StatusShipped    OrderStatus = "Shipped"
	StatusDelivered  OrderStatus = "Delivered"
	StatusCancelled  OrderStatus = "Cancelled"
)

// orderTransitions is the legality table for status changes. Delivered and
// Cancelled are terminal.
var orderTransitions = map[OrderStatus][]OrderStatus{
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered, StatusCancelled},
	StatusDelivered:  {},
	StatusCancelled:  {},
}

// ParseOrderStatus validates a client-supplied status string.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch status := OrderStatus(s); status {
	case StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return status, nil
	}
	return "", ErrInvalidStatus
}

// CanTransitionTo reports whether moving from s to the target is legal.
func (s OrderStatus) CanTransitionTo(to OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transitions are allowed from s.
func (s OrderStatus) Terminal() bool {
	return len(orderTransitions[s]) == 0
}

// ShippingInfo is the delivery address captured on the order.
type ShippingInfo struct {
	Address    string `bson:"address" json:"address"`
	City       string `bson:"city" json:"city"`
	PostalCode string `bson:"postal_code" json:"postalCode"`
	Country    string `bson:"country" json:"country"`
}

// PaymentInfo is an opaque reference to an upstream payment, e.g. a gateway
// intent id. This service records it without interpreting it.
type PaymentInfo struct {
	ID     string `bson:"id,omitempty" json:"id,omitempty"`
	Status string `bson:"status,omitempty" json:"status,omitempty"`
}

// OrderItem is a frozen snapshot of a product at order time. Later catalog
// edits never alter historical orders.
type OrderItem struct {
	Name      string             `bson:"name" json:"name"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	Image     string             `bson:"image" json:"image"`
	Price     float64            `bson:"price" json:"price"`
	ProductID primitive.ObjectID `bson:"product_id" json:"productId"`
}

// Order is immutable once created, except for Status and DeliveredAt which
// move through the transition table above.
type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ShippingInfo  ShippingInfo       `bson:"shipping_info" json:"shippingInfo"`
	UserID        primitive.ObjectID `bson:"user_id" json:"userId"`
	OrderItems    []OrderItem        `bson:"order_items" json:"orderItems"`
	PaymentInfo   PaymentInfo        `bson:"payment_info" json:"paymentInfo"`
	PaidAt        time.Time          `bson:"paid_at" json:"paidAt"`
	ItemsPrice    float64            `bson:"items_price" json:"itemsPrice"`
	TaxPrice      float64            `bson:"tax_price" json:"taxPrice"`
	ShippingPrice float64            `bson:"shipping_price" json:"shippingPrice"`
	TotalPrice    float64            `bson:"total_price" json:"totalPrice"`
	Status        OrderStatus        `bson:"status" json:"status"`
	DeliveredAt   *time.Time         `bson:"delivered_at,omitempty" json:"deliveredAt,omitempty"`
	CreatedAt     time.Time          `bson:"created_at" json:"createdAt"`
}
