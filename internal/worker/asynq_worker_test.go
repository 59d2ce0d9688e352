package worker

import (
	"testing"

	"github.com/openmart/openmart/internal/models"

	"github.com/shopspring/decimal"
)

func TestBuildOrderEmailInputFallbackStatus(t *testing.T) {
	order := &models.Order{
		OrderNumber: "ORD20260831ABC123",
		Status:      "confirmed",
		FinalAmount: models.NewMoneyFromDecimal(decimal.RequireFromString("42.50")),
		Items: []models.OrderItem{
			{ProductID: 1, Quantity: 2},
			{ProductID: 2, Quantity: 1},
		},
	}

	got := buildOrderEmailInput(order, "  ")
	if got.Status != "confirmed" {
		t.Fatalf("expected fallback to order status, got %q", got.Status)
	}
	if got.OrderNumber != order.OrderNumber {
		t.Fatalf("unexpected order number %q", got.OrderNumber)
	}
	if got.ItemCount != 2 {
		t.Fatalf("expected item count 2, got %d", got.ItemCount)
	}
}

func TestBuildOrderEmailInputExplicitStatus(t *testing.T) {
	order := &models.Order{
		OrderNumber: "ORD20260831XYZ789",
		Status:      "pending",
	}

	got := buildOrderEmailInput(order, "shipped")
	if got.Status != "shipped" {
		t.Fatalf("expected explicit status, got %q", got.Status)
	}
}
