package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/zwelix28/canna-bomb-sub001/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductListFilter struct {
	Category   *models.ProductCategory
	Brand      string
	Query      string // matches name/brand/description
	OnlyActive *bool
	Featured   *bool
	OnSale     *bool
	Limit      int
	Offset     int
}

type ProductRepo interface {
	Create(ctx context.Context, p *models.Product) error
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	List(ctx context.Context, f ProductListFilter) ([]models.Product, int64, error)
	BatchGetByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error)

	// AdjustStock atomically applies delta to stock_quantity, refusing to go
	// negative. Returns false when the guard fails (insufficient stock for a
	// negative delta, or unknown product).
	AdjustStock(ctx context.Context, id uuid.UUID, delta int32) (bool, error)

	LowStock(ctx context.Context, threshold int32, limit int) ([]models.Product, error)
}

type productRepo struct{ db *gorm.DB }

func NewProductRepo(db *gorm.DB) ProductRepo { return &productRepo{db: db} }

func (r *productRepo) Create(ctx context.Context, p *models.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Updates(fields).Error
}

func (r *productRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var p models.Product
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &p, err
}

func (r *productRepo) List(ctx context.Context, f ProductListFilter) ([]models.Product, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Product{})

	if f.Category != nil {
		q = q.Where("category = ?", *f.Category)
	}
	if f.Brand != "" {
		q = q.Where("lower(brand) = lower(?)", f.Brand)
	}
	if f.OnlyActive != nil {
		q = q.Where("is_active = ?", *f.OnlyActive)
	}
	if f.Featured != nil {
		q = q.Where("is_featured = ?", *f.Featured)
	}
	if f.OnSale != nil && *f.OnSale {
		q = q.Where("sale_price_cents IS NOT NULL AND sale_price_cents < price_cents")
	}
	if s := strings.TrimSpace(f.Query); s != "" {
		like := "%" + s + "%"
		q = q.Where("lower(name) LIKE lower(?) OR lower(brand) LIKE lower(?) OR lower(description) LIKE lower(?)", like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	var list []models.Product
	err := q.Order("created_at DESC").Limit(f.Limit).Offset(f.Offset).Find(&list).Error
	return list, total, err
}

func (r *productRepo) BatchGetByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var list []models.Product
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&list).Error
	return list, err
}

func (r *productRepo) AdjustStock(ctx context.Context, id uuid.UUID, delta int32) (bool, error) {
	tx := r.db.WithContext(ctx).Exec(`
UPDATE products
SET stock_quantity = stock_quantity + @delta,
    updated_at = now()
WHERE id = @pid
  AND stock_quantity + @delta >= 0
`, map[string]any{
		"pid":   id,
		"delta": delta,
	})
	return tx.RowsAffected > 0, tx.Error
}

func (r *productRepo) LowStock(ctx context.Context, threshold int32, limit int) ([]models.Product, error) {
	if limit <= 0 {
		limit = 10
	}
	var list []models.Product
	err := r.db.WithContext(ctx).
		Where("is_active = true AND stock_quantity <= ?", threshold).
		Order("stock_quantity ASC").Limit(limit).Find(&list).Error
	return list, err
}
