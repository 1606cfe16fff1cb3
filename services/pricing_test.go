package services_test

import (
	"testing"

	"github.com/ta9iBarkat/ecommerce-platform/models"
	"github.com/ta9iBarkat/ecommerce-platform/services"
)

func TestPriceItems(t *testing.T) {
	tests := []struct {
		name  string
		items []models.OrderItem
		want  services.Quote
	}{
		{
			name:  "no items",
			items: nil,
			want:  services.Quote{ItemsPrice: 0, TaxPrice: 0, ShippingPrice: 25.00, TotalPrice: 25.00},
		},
		{
			name: "below threshold pays flat shipping",
			items: []models.OrderItem{
				{Price: 75.00, Quantity: 2},
			},
			want: services.Quote{ItemsPrice: 150.00, TaxPrice: 22.50, ShippingPrice: 25.00, TotalPrice: 197.50},
		},
		{
			name: "exactly at threshold still pays shipping",
			items: []models.OrderItem{
				{Price: 200.00, Quantity: 1},
			},
			want: services.Quote{ItemsPrice: 200.00, TaxPrice: 30.00, ShippingPrice: 25.00, TotalPrice: 255.00},
		},
		{
			name: "just over threshold ships free",
			items: []models.OrderItem{
				{Price: 200.01, Quantity: 1},
			},
			want: services.Quote{ItemsPrice: 200.01, TaxPrice: 30.00, ShippingPrice: 0, TotalPrice: 230.01},
		},
		{
			name: "multiple lines over threshold",
			items: []models.OrderItem{
				{Price: 100.00, Quantity: 1},
				{Price: 150.00, Quantity: 1},
			},
			want: services.Quote{ItemsPrice: 250.00, TaxPrice: 37.50, ShippingPrice: 0, TotalPrice: 287.50},
		},
		{
			name: "tax rounds to cents",
			items: []models.OrderItem{
				{Price: 33.33, Quantity: 1},
			},
			// 33.33 * 0.15 = 4.9995, rounds to 5.00.
			want: services.Quote{ItemsPrice: 33.33, TaxPrice: 5.00, ShippingPrice: 25.00, TotalPrice: 63.33},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := services.PriceItems(tt.items)
			if got != tt.want {
				t.Errorf("PriceItems() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{0.125, 0.13},
		{-0.125, -0.13},
		{1.234, 1.23},
		{1.236, 1.24},
		{4.9995, 5.00},
	}
	for _, tt := range tests {
		if got := services.Round2(tt.in); got != tt.want {
			t.Errorf("Round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
