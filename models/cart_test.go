package models

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCartAddItemMerges(t *testing.T) {
	productA := primitive.NewObjectID()
	productB := primitive.NewObjectID()

	var cart Cart
	cart.AddItem(CartItem{ProductID: productA, Quantity: 1})
	cart.AddItem(CartItem{ProductID: productB, Quantity: 2})
	cart.AddItem(CartItem{ProductID: productA, Quantity: 3})

	if len(cart.Items) != 2 {
		t.Fatalf("items = %d, want 2 (same product merges)", len(cart.Items))
	}
	if cart.Items[0].Quantity != 4 {
		t.Errorf("merged quantity = %d, want 4", cart.Items[0].Quantity)
	}
	if cart.Items[1].Quantity != 2 {
		t.Errorf("other line quantity = %d, want 2", cart.Items[1].Quantity)
	}
}

func TestCartSetQuantity(t *testing.T) {
	product := primitive.NewObjectID()
	cart := Cart{Items: []CartItem{{ProductID: product, Quantity: 1}}}

	if !cart.SetQuantity(product, 5) {
		t.Fatal("SetQuantity returned false for a present product")
	}
	if cart.Items[0].Quantity != 5 {
		t.Errorf("quantity = %d, want 5", cart.Items[0].Quantity)
	}
	if cart.SetQuantity(primitive.NewObjectID(), 2) {
		t.Error("SetQuantity returned true for an absent product")
	}
}
