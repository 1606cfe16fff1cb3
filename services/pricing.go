package services

import (
	"math"

	"github.com/ta9iBarkat/ecommerce-platform/models"
)

// Pricing policy applied at checkout. Shipping is free strictly over the
// threshold: an items total of exactly $200.00 still pays the flat fee.
const (
	TaxRate               = 0.15
	FreeShippingThreshold = 200.0
	FlatShippingFee       = 25.0
)

// Quote is the price breakdown for an order.
type Quote struct {
	ItemsPrice    float64
	TaxPrice      float64
	ShippingPrice float64
	TotalPrice    float64
}

// PriceItems computes the breakdown from order-item snapshots using their
// captured checkout-time unit prices.
func PriceItems(items []models.OrderItem) Quote {
	var itemsPrice float64
	for _, item := range items {
		itemsPrice += float64(item.Quantity) * item.Price
	}
	itemsPrice = Round2(itemsPrice)

	taxPrice := Round2(itemsPrice * TaxRate)

	shippingPrice := FlatShippingFee
	if itemsPrice > FreeShippingThreshold {
		shippingPrice = 0
	}

	return Quote{
		ItemsPrice:    itemsPrice,
		TaxPrice:      taxPrice,
		ShippingPrice: shippingPrice,
		TotalPrice:    Round2(itemsPrice + taxPrice + shippingPrice),
	}
}

// Round2 rounds to two decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
