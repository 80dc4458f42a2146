package service

import (
	"context"
	"strings"

	"github.com/zwelix28/canna-bomb-sub001/internal/models"
	"github.com/zwelix28/canna-bomb-sub001/internal/repository"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type ProductInput struct {
	Name           string
	Description    string
	Category       models.ProductCategory
	Brand          string
	PriceCents     int64
	SalePriceCents *int64
	Images         []string
	THCPercent     *float64
	CBDPercent     *float64
	WeightValue    float64
	WeightUnit     string
	Strain         *string
	Effects        []string
	Flavors        []string
	StockQuantity  int32
	IsActive       bool
	IsFeatured     bool
}

type ProductPatch struct {
	Name           *string
	Description    *string
	Category       *models.ProductCategory
	Brand          *string
	PriceCents     *int64
	SalePriceCents *int64
	ClearSalePrice bool
	Images         []string
	THCPercent     *float64
	CBDPercent     *float64
	WeightValue    *float64
	WeightUnit     *string
	Strain         *string
	Effects        []string
	Flavors        []string
	StockQuantity  *int32
	IsActive       *bool
	IsFeatured     *bool
}

type CatalogService interface {
	CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, patch ProductPatch) (*models.Product, error)
	// DeactivateProduct soft-deletes: the product drops out of customer
	// queries but stays resolvable for historical orders.
	DeactivateProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListProducts(ctx context.Context, f repository.ProductListFilter) ([]models.Product, int64, error)
}

type catalogService struct {
	repo *repository.Repository
}

func NewCatalogService(repo *repository.Repository) CatalogService {
	return &catalogService{repo: repo}
}

func validateProductInput(in *ProductInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Brand = strings.TrimSpace(in.Brand)
	if in.Name == "" || in.Brand == "" {
		return ErrInvalidProduct
	}
	if !models.ValidCategory(in.Category) {
		return ErrInvalidProduct
	}
	if in.PriceCents < 0 || in.StockQuantity < 0 {
		return ErrInvalidProduct
	}
	if in.SalePriceCents != nil && (*in.SalePriceCents < 0 || *in.SalePriceCents >= in.PriceCents) {
		return ErrInvalidProduct
	}
	if len(in.Images) == 0 {
		return ErrInvalidProduct
	}
	if in.WeightUnit == "" {
		in.WeightUnit = "g"
	}
	return nil
}

func (s *catalogService) CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	if err := validateProductInput(&in); err != nil {
		return nil, err
	}

	p := &models.Product{
		Name:           in.Name,
		Description:    in.Description,
		Category:       in.Category,
		Brand:          in.Brand,
		PriceCents:     in.PriceCents,
		SalePriceCents: in.SalePriceCents,
		Images:         pqArray(in.Images),
		THCPercent:     in.THCPercent,
		CBDPercent:     in.CBDPercent,
		WeightValue:    in.WeightValue,
		WeightUnit:     in.WeightUnit,
		Strain:         in.Strain,
		Effects:        pqArray(in.Effects),
		Flavors:        pqArray(in.Flavors),
		StockQuantity:  in.StockQuantity,
		IsActive:       in.IsActive,
		IsFeatured:     in.IsFeatured,
	}
	if err := s.repo.Products.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *catalogService) UpdateProduct(ctx context.Context, id uuid.UUID, patch ProductPatch) (*models.Product, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	current, err := s.repo.Products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrProductNotFound
	}

	fields := map[string]any{}
	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return nil, ErrInvalidProduct
		}
		fields["name"] = strings.TrimSpace(*patch.Name)
	}
	if patch.Description != nil {
		fields["description"] = *patch.Description
	}
	if patch.Category != nil {
		if !models.ValidCategory(*patch.Category) {
			return nil, ErrInvalidProduct
		}
		fields["category"] = *patch.Category
	}
	if patch.Brand != nil {
		if strings.TrimSpace(*patch.Brand) == "" {
			return nil, ErrInvalidProduct
		}
		fields["brand"] = strings.TrimSpace(*patch.Brand)
	}

	price := current.PriceCents
	if patch.PriceCents != nil {
		if *patch.PriceCents < 0 {
			return nil, ErrInvalidProduct
		}
		price = *patch.PriceCents
		fields["price_cents"] = price
	}
	if patch.ClearSalePrice {
		fields["sale_price_cents"] = nil
	} else if patch.SalePriceCents != nil {
		if *patch.SalePriceCents < 0 || *patch.SalePriceCents >= price {
			return nil, ErrInvalidProduct
		}
		fields["sale_price_cents"] = *patch.SalePriceCents
	}

	if patch.Images != nil {
		if len(patch.Images) == 0 {
			return nil, ErrInvalidProduct
		}
		fields["images"] = pqArray(patch.Images)
	}
	if patch.THCPercent != nil {
		fields["thc_percent"] = *patch.THCPercent
	}
	if patch.CBDPercent != nil {
		fields["cbd_percent"] = *patch.CBDPercent
	}
	if patch.WeightValue != nil {
		fields["weight_value"] = *patch.WeightValue
	}
	if patch.WeightUnit != nil {
		fields["weight_unit"] = *patch.WeightUnit
	}
	if patch.Strain != nil {
		fields["strain"] = *patch.Strain
	}
	if patch.Effects != nil {
		fields["effects"] = pqArray(patch.Effects)
	}
	if patch.Flavors != nil {
		fields["flavors"] = pqArray(patch.Flavors)
	}
	if patch.StockQuantity != nil {
		if *patch.StockQuantity < 0 {
			return nil, ErrInvalidProduct
		}
		fields["stock_quantity"] = *patch.StockQuantity
	}
	if patch.IsActive != nil {
		fields["is_active"] = *patch.IsActive
	}
	if patch.IsFeatured != nil {
		fields["is_featured"] = *patch.IsFeatured
	}

	if err := s.repo.Products.UpdateFields(ctx, id, fields); err != nil {
		return nil, err
	}
	return s.repo.Products.GetByID(ctx, id)
}

func (s *catalogService) DeactivateProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	inactive := false
	return s.UpdateProduct(ctx, id, ProductPatch{IsActive: &inactive})
}

func (s *catalogService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	p, err := s.repo.Products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	// customers never see deactivated products; admins do
	if !p.IsActive {
		if _, role, err := requireAuth(ctx); err != nil || role != models.RoleAdmin {
			return nil, ErrProductNotFound
		}
	}
	return p, nil
}

func pqArray(ss []string) pq.StringArray {
	if ss == nil {
		return pq.StringArray{}
	}
	return pq.StringArray(ss)
}

func (s *catalogService) ListProducts(ctx context.Context, f repository.ProductListFilter) ([]models.Product, int64, error) {
	_, role, _ := requireAuth(ctx)
	if role != models.RoleAdmin {
		active := true
		f.OnlyActive = &active
	}
	return s.repo.Products.List(ctx, f)
}
