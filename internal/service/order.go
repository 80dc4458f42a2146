package service

import (
	"context"

	"github.com/zwelix28/canna-bomb-sub001/internal/models"

	"github.com/google/uuid"
)

// CheckoutInput carries the checkout form. The money override fields are
// optional; when present they are cross-checked against the line items
// instead of being trusted blindly.
type CheckoutInput struct {
	SubtotalCents *int64
	TaxCents      *int64
	TipCents      *int64
	TotalCents    *int64

	PaymentMethod string

	CollectionMethod models.CollectionMethod
	CollectionDate   string
	CollectionTime   string
	PreferredName    string
	OrderNotes       string

	CustomerName  string
	CustomerEmail string
	CustomerPhone string
}

type OrderListFilter struct {
	Status *models.OrderStatus
	Limit  int
	Offset int
}

type OrderService interface {
	// CreateOrder turns the caller's cart into an order. Stock decrement,
	// item snapshot and cart clear run in one transaction, then the
	// notification fan-out fires best-effort.
	CreateOrder(ctx context.Context, in CheckoutInput) (*models.Order, error)

	GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListOrders(ctx context.Context, f OrderListFilter) ([]models.Order, int64, error)
	// ListAllOrders is the admin variant, unscoped by owner.
	ListAllOrders(ctx context.Context, f OrderListFilter) ([]models.Order, int64, error)

	UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (*models.Order, error)
	CancelOrder(ctx context.Context, id uuid.UUID, reason *string) (*models.Order, error)
}
