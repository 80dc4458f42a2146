package repository

import (
	"context"
	"errors"

	"github.com/zwelix28/canna-bomb-sub001/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartRepo interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error)
	Get(ctx context.Context, userID, productID uuid.UUID) (*models.CartItem, error)
	// Upsert inserts a line or adds qty to an existing one (merge on conflict).
	Upsert(ctx context.Context, userID, productID uuid.UUID, qty uint32) error
	SetQuantity(ctx context.Context, userID, productID uuid.UUID, qty uint32) (bool, error)
	Remove(ctx context.Context, userID, productID uuid.UUID) (bool, error)
	Clear(ctx context.Context, userID uuid.UUID) error
}

type cartRepo struct{ db *gorm.DB }

func NewCartRepo(db *gorm.DB) CartRepo { return &cartRepo{db: db} }

func (r *cartRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	var rows []models.CartItem
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at ASC").Find(&rows).Error
	return rows, err
}

func (r *cartRepo) Get(ctx context.Context, userID, productID uuid.UUID) (*models.CartItem, error) {
	var it models.CartItem
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).First(&it).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &it, err
}

func (r *cartRepo) Upsert(ctx context.Context, userID, productID uuid.UUID, qty uint32) error {
	it := models.CartItem{UserID: userID, ProductID: productID, Quantity: qty}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"quantity": gorm.Expr("cart_items.quantity + excluded.quantity"),
		}),
	}).Create(&it).Error
}

func (r *cartRepo) SetQuantity(ctx context.Context, userID, productID uuid.UUID, qty uint32) (bool, error) {
	tx := r.db.WithContext(ctx).Model(&models.CartItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Update("quantity", qty)
	return tx.RowsAffected > 0, tx.Error
}

func (r *cartRepo) Remove(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	tx := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.CartItem{})
	return tx.RowsAffected > 0, tx.Error
}

func (r *cartRepo) Clear(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}
