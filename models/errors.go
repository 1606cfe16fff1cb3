package models

import "errors"

// Domain errors surfaced by stores and services. Controllers map these onto
// HTTP status codes; anything not listed here is treated as internal.
var (
	ErrEmptyCart      = errors.New("your cart is empty")
	ErrCartNotFound   = errors.New("cart not found")
	ErrCartCheckedOut = errors.New("cart was already checked out")
	ErrItemNotInCart  = errors.New("item not found in cart")

	ErrProductNotFound    = errors.New("product not found")
	ErrProductUnavailable = errors.New("a product in your cart is no longer available")
	ErrInsufficientStock  = errors.New("insufficient stock for a product in your cart")

	ErrOrderNotFound     = errors.New("order not found with this ID")
	ErrAlreadyDelivered  = errors.New("this order has already been delivered")
	ErrMissingStatus     = errors.New("status is required")
	ErrInvalidStatus     = errors.New("invalid order status")
	ErrInvalidTransition = errors.New("illegal order status transition")
	ErrStatusConflict    = errors.New("order status was changed concurrently")

	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
