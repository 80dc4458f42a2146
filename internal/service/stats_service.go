package service

import (
	"context"

	"github.com/zwelix28/canna-bomb-sub001/internal/models"
	"github.com/zwelix28/canna-bomb-sub001/internal/repository"
)

type Dashboard struct {
	OrdersByStatus map[models.OrderStatus]int64 `json:"ordersByStatus"`
	RevenueCents   int64                        `json:"revenueCents"`
	Daily          []repository.DailyOrderStat  `json:"daily"`
	TopProducts    []repository.ProductSales    `json:"topProducts"`
	LowStock       []models.Product             `json:"lowStock"`
	CustomerCount  int64                        `json:"customerCount"`
}

// DashboardCache lets the stats endpoint serve from Redis when configured.
// A nil cache means every request recomputes.
type DashboardCache interface {
	Get(ctx context.Context) (*Dashboard, bool)
	Set(ctx context.Context, d *Dashboard)
}

type StatsService interface {
	Dashboard(ctx context.Context, days int) (*Dashboard, error)
}

type statsService struct {
	repo  *repository.Repository
	cache DashboardCache
}

func NewStatsService(repo *repository.Repository, cache DashboardCache) StatsService {
	return &statsService{repo: repo, cache: cache}
}

func (s *statsService) Dashboard(ctx context.Context, days int) (*Dashboard, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if d, ok := s.cache.Get(ctx); ok {
			return d, nil
		}
	}

	byStatus, err := s.repo.Orders.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	revenue, err := s.repo.Orders.RevenueCents(ctx)
	if err != nil {
		return nil, err
	}
	daily, err := s.repo.Orders.DailyStats(ctx, days)
	if err != nil {
		return nil, err
	}
	top, err := s.repo.Orders.TopProducts(ctx, 5)
	if err != nil {
		return nil, err
	}
	low, err := s.repo.Products.LowStock(ctx, 5, 10)
	if err != nil {
		return nil, err
	}
	customers, err := s.repo.Users.Count(ctx)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{
		OrdersByStatus: byStatus,
		RevenueCents:   revenue,
		Daily:          daily,
		TopProducts:    top,
		LowStock:       low,
		CustomerCount:  customers,
	}
	if s.cache != nil {
		s.cache.Set(ctx, d)
	}
	return d, nil
}
