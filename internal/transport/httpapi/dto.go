package httpapi

import "github.com/zwelix28/canna-bomb-sub001/internal/models"

// BaseError is the JSON error envelope shared by every endpoint.
// Code is machine-oriented (snake_case), Message is human-readable.
type BaseError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func NewValidationError(msg string) BaseError {
	return BaseError{Code: "validation_error", Message: msg}
}
func NewUnauthorizedError(msg string) BaseError {
	return BaseError{Code: "unauthorized", Message: msg}
}
func NewForbiddenError(msg string) BaseError {
	return BaseError{Code: "forbidden", Message: msg}
}
func NewNotFoundError(msg string) BaseError {
	return BaseError{Code: "not_found", Message: msg}
}
func NewConflictError(msg string) BaseError {
	return BaseError{Code: "conflict", Message: msg}
}
func NewInternalError(details string) BaseError {
	return BaseError{Code: "internal_error", Message: "internal server error", Details: details}
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	User        *models.User `json:"user"`
	AccessToken string       `json:"accessToken"`
	ExpiresAt   string       `json:"expiresAt"`
}

type UpdateProfileRequest struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
}

type ProductRequest struct {
	Name           string   `json:"name" binding:"required"`
	Description    string   `json:"description"`
	Category       string   `json:"category" binding:"required"`
	Brand          string   `json:"brand" binding:"required"`
	PriceCents     int64    `json:"priceCents" binding:"required"`
	SalePriceCents *int64   `json:"salePriceCents"`
	Images         []string `json:"images" binding:"required,min=1"`
	THCPercent     *float64 `json:"thcPercent"`
	CBDPercent     *float64 `json:"cbdPercent"`
	WeightValue    float64  `json:"weightValue"`
	WeightUnit     string   `json:"weightUnit"`
	Strain         *string  `json:"strain"`
	Effects        []string `json:"effects"`
	Flavors        []string `json:"flavors"`
	StockQuantity  int32    `json:"stockQuantity"`
	IsActive       *bool    `json:"isActive"`
	IsFeatured     bool     `json:"isFeatured"`
}

type ProductPatchRequest struct {
	Name           *string  `json:"name"`
	Description    *string  `json:"description"`
	Category       *string  `json:"category"`
	Brand          *string  `json:"brand"`
	PriceCents     *int64   `json:"priceCents"`
	SalePriceCents *int64   `json:"salePriceCents"`
	ClearSalePrice bool     `json:"clearSalePrice"`
	Images         []string `json:"images"`
	THCPercent     *float64 `json:"thcPercent"`
	CBDPercent     *float64 `json:"cbdPercent"`
	WeightValue    *float64 `json:"weightValue"`
	WeightUnit     *string  `json:"weightUnit"`
	Strain         *string  `json:"strain"`
	Effects        []string `json:"effects"`
	Flavors        []string `json:"flavors"`
	StockQuantity  *int32   `json:"stockQuantity"`
	IsActive       *bool    `json:"isActive"`
	IsFeatured     *bool    `json:"isFeatured"`
}

type CartAddRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  uint32 `json:"quantity" binding:"required,min=1"`
}

type CartUpdateRequest struct {
	Quantity uint32 `json:"quantity"`
}

type CheckoutRequest struct {
	SubtotalCents *int64 `json:"subtotalCents"`
	TaxCents      *int64 `json:"taxCents"`
	TipCents      *int64 `json:"tipCents"`
	TotalCents    *int64 `json:"totalCents"`

	PaymentMethod string `json:"paymentMethod" binding:"required"`

	CollectionMethod string `json:"collectionMethod" binding:"required"`
	CollectionDate   string `json:"collectionDate"`
	CollectionTime   string `json:"collectionTime"`
	PreferredName    string `json:"preferredName"`
	OrderNotes       string `json:"orderNotes"`

	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	CustomerPhone string `json:"customerPhone"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type CancelOrderRequest struct {
	Reason *string `json:"reason"`
}

type SubscribeRequest struct {
	Endpoint string `json:"endpoint" binding:"required"`
	Keys     struct {
		P256dh string `json:"p256dh" binding:"required"`
		Auth   string `json:"auth" binding:"required"`
	} `json:"keys" binding:"required"`
}

type ListResponse[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}
