package service

import (
	"context"
	"time"

	"github.com/zwelix28/canna-bomb-sub001/internal/models"

	"github.com/google/uuid"
)

// Notifier fans an order event out to the push and email channels. Every
// method is best-effort: implementations log failures and never return them,
// so the order flow cannot be blocked by a provider outage.
type Notifier interface {
	OrderPlaced(ctx context.Context, user *models.User, order *models.Order)
	OrderStatusChanged(ctx context.Context, user *models.User, order *models.Order)
}

// TokenProvider signs and validates customer access tokens.
type TokenProvider interface {
	SignAccess(ctx context.Context, sub uuid.UUID, role string, ttl time.Duration) (string, time.Time, error)
	ParseAndValidateAccess(ctx context.Context, token string) (*Claims, error)
}

type Claims struct {
	UserID uuid.UUID
	Role   string
	Exp    time.Time
}

// PasswordHasher abstracts bcrypt for the auth service.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}
