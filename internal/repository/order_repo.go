package repository

import (
	"context"
	"errors"

	"github.com/zwelix28/canna-bomb-sub001/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderListFilter struct {
	UserID *uuid.UUID
	Status *models.OrderStatus
	Limit  int
	Offset int
}

type OrderRepo interface {
	Create(ctx context.Context, o *models.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	GetByIDForUser(ctx context.Context, id, userID uuid.UUID) (*models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus, reason *string) error
	List(ctx context.Context, f OrderListFilter) ([]models.Order, int64, error)

	// WithTx runs fn against transaction-scoped repositories. The checkout
	// sequence (stock decrements, order insert, cart clear) lives inside one
	// transaction so a failed line rolls everything back.
	WithTx(ctx context.Context, fn func(tx *Repository) error) error

	CountByStatus(ctx context.Context) (map[models.OrderStatus]int64, error)
	RevenueCents(ctx context.Context) (int64, error)
	DailyStats(ctx context.Context, days int) ([]DailyOrderStat, error)
	TopProducts(ctx context.Context, limit int) ([]ProductSales, error)
}

type DailyOrderStat struct {
	Day          string `json:"day"`
	Orders       int64  `json:"orders"`
	RevenueCents int64  `json:"revenueCents"`
}

type ProductSales struct {
	ProductID    uuid.UUID `json:"productId"`
	Name         string    `json:"name"`
	QuantitySold int64     `json:"quantitySold"`
	RevenueCents int64     `json:"revenueCents"`
}

type orderRepo struct{ db *gorm.DB }

func NewOrderRepo(db *gorm.DB) OrderRepo { return &orderRepo{db: db} }

func (r *orderRepo) Create(ctx context.Context, o *models.Order) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *orderRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var ord models.Order
	err := r.db.WithContext(ctx).Preload("Items").First(&ord, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ord, err
}

func (r *orderRepo) GetByIDForUser(ctx context.Context, id, userID uuid.UUID) (*models.Order, error) {
	var ord models.Order
	err := r.db.WithContext(ctx).Preload("Items").First(&ord, "id = ? AND user_id = ?", id, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ord, err
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus, reason *string) error {
	upd := map[string]any{"status": status}
	if reason != nil {
		upd["cancel_reason"] = reason
	}
	return r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Updates(upd).Error
}

func (r *orderRepo) List(ctx context.Context, f OrderListFilter) ([]models.Order, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Order{})

	if f.UserID != nil {
		q = q.Where("user_id = ?", *f.UserID)
	}
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
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

	var list []models.Order
	err := q.Order("created_at DESC").Limit(f.Limit).Offset(f.Offset).Preload("Items").Find(&list).Error
	return list, total, err
}

func (r *orderRepo) WithTx(ctx context.Context, fn func(tx *Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}

func (r *orderRepo) CountByStatus(ctx context.Context) (map[models.OrderStatus]int64, error) {
	type row struct {
		Status models.OrderStatus
		Cnt    int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&models.Order{}).
		Select("status, COUNT(*) AS cnt").Group("status").Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[models.OrderStatus]int64, len(rows))
	for _, rw := range rows {
		out[rw.Status] = rw.Cnt
	}
	return out, nil
}

// RevenueCents sums the totals of all non-cancelled orders.
func (r *orderRepo) RevenueCents(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Order{}).
		Select("COALESCE(SUM(total_cents),0)").
		Where("status <> ?", models.OrderStatusCancelled).
		Scan(&total).Error
	return total, err
}

func (r *orderRepo) DailyStats(ctx context.Context, days int) ([]DailyOrderStat, error) {
	if days <= 0 {
		days = 30
	}
	var rows []DailyOrderStat
	err := r.db.WithContext(ctx).Raw(`
SELECT to_char(created_at::date, 'YYYY-MM-DD') AS day,
       COUNT(*) AS orders,
       COALESCE(SUM(total_cents) FILTER (WHERE status <> 'cancelled'), 0) AS revenue_cents
FROM orders
WHERE created_at >= now() - make_interval(days => ?)
GROUP BY created_at::date
ORDER BY created_at::date DESC
`, days).Scan(&rows).Error
	return rows, err
}

func (r *orderRepo) TopProducts(ctx context.Context, limit int) ([]ProductSales, error) {
	if limit <= 0 {
		limit = 5
	}
	var rows []ProductSales
	err := r.db.WithContext(ctx).Raw(`
SELECT oi.product_id,
       MIN(oi.name) AS name,
       SUM(oi.quantity) AS quantity_sold,
       SUM(oi.line_total_cents) AS revenue_cents
FROM order_items oi
JOIN orders o ON o.id = oi.order_id
WHERE o.status <> 'cancelled'
GROUP BY oi.product_id
ORDER BY quantity_sold DESC
LIMIT ?
`, limit).Scan(&rows).Error
	return rows, err
}
