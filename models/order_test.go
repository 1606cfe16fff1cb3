package models

import (
	"errors"
	"testing"
)

func TestParseOrderStatus(t *testing.T) {
	for _, valid := range []string{"Processing", "Shipped", "Delivered", "Cancelled"} {
		status, err := ParseOrderStatus(valid)
		if err != nil {
			t.Errorf("ParseOrderStatus(%q) failed: %v", valid, err)
		}
		if string(status) != valid {
			t.Errorf("ParseOrderStatus(%q) = %q", valid, status)
		}
	}

	for _, invalid := range []string{"", "processing", "SHIPPED", "Refunded", "Pending"} {
		if _, err := ParseOrderStatus(invalid); !errors.Is(err, ErrInvalidStatus) {
			t.Errorf("ParseOrderStatus(%q) err = %v, want ErrInvalidStatus", invalid, err)
		}
	}
}

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		from, to OrderStatus
		want     bool
	}{
		{StatusProcessing, StatusShipped, true},
		{StatusProcessing, StatusCancelled, true},
		{StatusProcessing, StatusDelivered, false},
		{StatusProcessing, StatusProcessing, false},
		{StatusShipped, StatusDelivered, true},
		{StatusShipped, StatusCancelled, true},
		{StatusShipped, StatusProcessing, false},
		{StatusDelivered, StatusCancelled, false},
		{StatusDelivered, StatusShipped, false},
		{StatusCancelled, StatusProcessing, false},
		{StatusCancelled, StatusShipped, false},
	}
	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
			t.Errorf("%s -> %s = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestTerminal(t *testing.T) {
	tests := []struct {
		status OrderStatus
		want   bool
	}{
		{StatusProcessing, false},
		{StatusShipped, false},
		{StatusDelivered, true},
		{StatusCancelled, true},
	}
	for _, tt := range tests {
		if got := tt.status.Terminal(); got != tt.want {
			t.Errorf("%s.Terminal() = %v, want %v", tt.status, got, tt.want)
		}
	}
}
