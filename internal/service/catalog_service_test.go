package service

import (
	"context"
	"testing"

	"github.com/zwelix28/canna-bomb-sub001/internal/models"
	"github.com/zwelix28/canna-bomb-sub001/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalogFixture(t *testing.T) (*orderFixture, CatalogService) {
	t.Helper()
	f := newOrderFixture(t)
	return f, NewCatalogService(f.repo)
}

func validInput() ProductInput {
	return ProductInput{
		Name:          "OG Kush 3.5g",
		Category:      models.CategoryFlower,
		Brand:         "Canna Bomb",
		PriceCents:    6500,
		Images:        []string{"https://cdn.example.com/og.jpg"},
		StockQuantity: 12,
		IsActive:      true,
	}
}

func TestCreateProduct(t *testing.T) {
	f, svc := newCatalogFixture(t)

	p, err := svc.CreateProduct(f.adminCtx(), validInput())
	require.NoError(t, err)
	assert.Equal(t, "OG Kush 3.5g", p.Name)
	assert.Equal(t, "g", p.WeightUnit)
	assert.NotNil(t, p.Effects)
	assert.NotNil(t, p.Flavors)

	// customers cannot create
	_, err = svc.CreateProduct(f.userCtx(), validInput())
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCreateProduct_Validation(t *testing.T) {
	f, svc := newCatalogFixture(t)

	cases := map[string]func(*ProductInput){
		"empty name":          func(in *ProductInput) { in.Name = "  " },
		"empty brand":         func(in *ProductInput) { in.Brand = "" },
		"bad category":        func(in *ProductInput) { in.Category = "beverages" },
		"negative price":      func(in *ProductInput) { in.PriceCents = -1 },
		"negative stock":      func(in *ProductInput) { in.StockQuantity = -1 },
		"no images":           func(in *ProductInput) { in.Images = nil },
		"sale above price":    func(in *ProductInput) { sp := int64(7000); in.SalePriceCents = &sp },
		"sale equal to price": func(in *ProductInput) { sp := int64(6500); in.SalePriceCents = &sp },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := validInput()
			mutate(&in)
			_, err := svc.CreateProduct(f.adminCtx(), in)
			assert.ErrorIs(t, err, ErrInvalidProduct)
		})
	}
}

func TestUpdateProduct(t *testing.T) {
	f, svc := newCatalogFixture(t)
	p, err := svc.CreateProduct(f.adminCtx(), validInput())
	require.NoError(t, err)

	name := "OG Kush 7g"
	price := int64(12000)
	sale := int64(9900)
	got, err := svc.UpdateProduct(f.adminCtx(), p.ID, ProductPatch{
		Name:           &name,
		PriceCents:     &price,
		SalePriceCents: &sale,
	})
	require.NoError(t, err)
	assert.Equal(t, "OG Kush 7g", got.Name)
	assert.Equal(t, int64(12000), got.PriceCents)
	require.NotNil(t, got.SalePriceCents)
	assert.Equal(t, int64(9900), *got.SalePriceCents)

	// sale price validated against the patched price, not the stored one
	badSale := int64(15000)
	_, err = svc.UpdateProduct(f.adminCtx(), p.ID, ProductPatch{SalePriceCents: &badSale})
	assert.ErrorIs(t, err, ErrInvalidProduct)

	got, err = svc.UpdateProduct(f.adminCtx(), p.ID, ProductPatch{ClearSalePrice: true})
	require.NoError(t, err)
	assert.Nil(t, got.SalePriceCents)
}

func TestDeactivateProduct_HiddenFromCustomers(t *testing.T) {
	f, svc := newCatalogFixture(t)
	p, err := svc.CreateProduct(f.adminCtx(), validInput())
	require.NoError(t, err)

	_, err = svc.DeactivateProduct(f.adminCtx(), p.ID)
	require.NoError(t, err)

	_, err = svc.GetProduct(f.userCtx(), p.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)

	_, err = svc.GetProduct(context.Background(), p.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)

	got, err := svc.GetProduct(f.adminCtx(), p.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}

func TestListProducts_CustomersSeeActiveOnly(t *testing.T) {
	f, svc := newCatalogFixture(t)
	_, err := svc.CreateProduct(f.adminCtx(), validInput())
	require.NoError(t, err)

	inactive := validInput()
	inactive.Name = "Hidden item"
	inactive.IsActive = false
	_, err = svc.CreateProduct(f.adminCtx(), inactive)
	require.NoError(t, err)

	visible, total, err := svc.ListProducts(f.userCtx(), repository.ProductListFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, visible, 1)

	all, total, err := svc.ListProducts(f.adminCtx(), repository.ProductListFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, all, 2)
}
