package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")

	ErrProductNotFound = errors.New("product not found")
	ErrInactiveProduct = errors.New("product is inactive")
	ErrInvalidQuantity = errors.New("quantity must be > 0")
	ErrInvalidProduct  = errors.New("invalid product data")

	ErrCartItemNotFound = errors.New("cart item not found")
	ErrEmptyCart        = errors.New("cart is empty")

	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidStatus     = errors.New("unknown order status")
	ErrInvalidTransition = errors.New("order can no longer be cancelled")
	ErrAmountMismatch    = errors.New("order amounts do not match line items")
	ErrInvalidCollection = errors.New("invalid collection details")

	ErrPushNotConfigured = errors.New("push notifications are not configured")
)

// InsufficientStockError names the product that could not cover the
// requested quantity so the storefront can point at the offending line.
type InsufficientStockError struct {
	ProductID uuid.UUID
	Name      string
	Requested uint32
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q (requested %d)", e.Name, e.Requested)
}
