package repository

import (
	"context"
	"errors"

	"github.com/zwelix28/canna-bomb-sub001/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PushSubscriptionRepo interface {
	Save(ctx context.Context, sub *models.PushSubscription) error
	Get(ctx context.Context, userID uuid.UUID) (*models.PushSubscription, error)
	Delete(ctx context.Context, userID uuid.UUID) error
}

type pushSubscriptionRepo struct{ db *gorm.DB }

func NewPushSubscriptionRepo(db *gorm.DB) PushSubscriptionRepo {
	return &pushSubscriptionRepo{db: db}
}

// Save upserts: a user keeps at most one subscription, resubscribing from a
// new browser replaces the old endpoint.
func (r *pushSubscriptionRepo) Save(ctx context.Context, sub *models.PushSubscription) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"endpoint", "p256dh", "auth"}),
	}).Create(sub).Error
}

func (r *pushSubscriptionRepo) Get(ctx context.Context, userID uuid.UUID) (*models.PushSubscription, error) {
	var sub models.PushSubscription
	err := r.db.WithContext(ctx).First(&sub, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sub, err
}

func (r *pushSubscriptionRepo) Delete(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.PushSubscription{}).Error
}
