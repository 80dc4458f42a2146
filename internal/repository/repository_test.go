package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/zwelix28/canna-bomb-sub001/internal/migrate"
	"github.com/zwelix28/canna-bomb-sub001/internal/models"
	"github.com/zwelix28/canna-bomb-sub001/internal/repository"
	"github.com/zwelix28/canna-bomb-sub001/internal/testutil"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupRepo(t *testing.T) *repository.Repository {
	t.Helper()
	db := testutil.SetupTestPostgres(t)
	require.NoError(t, migrate.Migrate(context.Background(), db, zap.NewNop(), migrate.DefaultOptions()))
	return repository.New(db)
}

func seedUser(t *testing.T, repo *repository.Repository, email string) *models.User {
	t.Helper()
	u := &models.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: "x",
		Role:         models.RoleCustomer,
	}
	require.NoError(t, repo.Users.Create(context.Background(), u))
	return u
}

func seedProduct(t *testing.T, repo *repository.Repository, name string, priceCents int64, stock int32) *models.Product {
	t.Helper()
	p := &models.Product{
		Name:          name,
		Category:      models.CategoryFlower,
		Brand:         "Canna Bomb",
		PriceCents:    priceCents,
		Images:        pq.StringArray{"https://cdn.example.com/p.jpg"},
		StockQuantity: stock,
		IsActive:      true,
	}
	require.NoError(t, repo.Products.Create(context.Background(), p))
	return p
}

func TestAdjustStock(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	p := seedProduct(t, repo, "Stock Guard", 5000, 5)

	ok, err := repo.Products.AdjustStock(ctx, p.ID, -3)
	require.NoError(t, err)
	assert.True(t, ok)

	// a decrement past zero is refused without touching the row
	ok, err = repo.Products.AdjustStock(ctx, p.ID, -3)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := repo.Products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int32(2), got.StockQuantity)

	ok, err = repo.Products.AdjustStock(ctx, p.ID, 3)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err = repo.Products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int32(5), got.StockQuantity)

	ok, err = repo.Products.AdjustStock(ctx, uuid.New(), -1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCartUpsertMergesQuantity(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	u := seedUser(t, repo, "cart@example.com")
	p := seedProduct(t, repo, "Cart Item", 2500, 20)

	require.NoError(t, repo.CartItems.Upsert(ctx, u.ID, p.ID, 2))
	require.NoError(t, repo.CartItems.Upsert(ctx, u.ID, p.ID, 3))

	rows, err := repo.CartItems.ListByUser(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, uint32(5), rows[0].Quantity)

	ok, err := repo.CartItems.SetQuantity(ctx, u.ID, p.ID, 7)
	require.NoError(t, err)
	assert.True(t, ok)

	row, err := repo.CartItems.Get(ctx, u.ID, p.ID)
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, uint32(7), row.Quantity)

	ok, err = repo.CartItems.Remove(ctx, u.ID, p.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.CartItems.Remove(ctx, u.ID, p.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func seedOrder(t *testing.T, repo *repository.Repository, userID uuid.UUID, number string, total int64) *models.Order {
	t.Helper()
	o := &models.Order{
		Number:           number,
		UserID:           userID,
		Status:           models.OrderStatusPending,
		SubtotalCents:    total,
		TotalCents:       total,
		PaymentStatus:    models.PaymentStatusPending,
		PaymentMethod:    "cash",
		CollectionMethod: models.CollectionWalkIn,
		CustomerName:     "Test User",
		CustomerEmail:    "cart@example.com",
	}
	require.NoError(t, repo.Orders.Create(context.Background(), o))
	return o
}

func TestOrderLifecycle(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	u := seedUser(t, repo, "orders@example.com")
	p := seedProduct(t, repo, "Ordered Item", 5000, 10)

	o := seedOrder(t, repo, u.ID, "CB-20260831-T001", 10000)
	require.NoError(t, repo.OrderItems.BulkCreate(ctx, []models.OrderItem{{
		OrderID:        o.ID,
		ProductID:      p.ID,
		Name:           p.Name,
		Category:       p.Category,
		UnitPriceCents: 5000,
		Quantity:       2,
		LineTotalCents: 10000,
	}}))

	got, err := repo.Orders.GetByID(ctx, o.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Len(t, got.Items, 1)
	assert.Equal(t, p.ID, got.Items[0].ProductID)

	// owner scoping
	got, err = repo.Orders.GetByIDForUser(ctx, o.ID, u.ID)
	require.NoError(t, err)
	assert.NotNil(t, got)

	got, err = repo.Orders.GetByIDForUser(ctx, o.ID, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, got)

	reason := "out of stock after all"
	require.NoError(t, repo.Orders.UpdateStatus(ctx, o.ID, models.OrderStatusCancelled, &reason))
	got, err = repo.Orders.GetByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, got.Status)
	require.NotNil(t, got.CancelReason)
	assert.Equal(t, reason, *got.CancelReason)
}

func TestOrderList(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	u1 := seedUser(t, repo, "one@example.com")
	u2 := seedUser(t, repo, "two@example.com")

	seedOrder(t, repo, u1.ID, "CB-20260831-L001", 1000)
	seedOrder(t, repo, u1.ID, "CB-20260831-L002", 2000)
	o3 := seedOrder(t, repo, u2.ID, "CB-20260831-L003", 3000)
	require.NoError(t, repo.Orders.UpdateStatus(ctx, o3.ID, models.OrderStatusCompleted, nil))

	mine, total, err := repo.Orders.List(ctx, repository.OrderListFilter{UserID: &u1.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, mine, 2)

	completed := models.OrderStatusCompleted
	done, total, err := repo.Orders.List(ctx, repository.OrderListFilter{Status: &completed})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, done, 1)
	assert.Equal(t, o3.ID, done[0].ID)

	page, total, err := repo.Orders.List(ctx, repository.OrderListFilter{Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, page, 1)
}

func TestWithTxRollsBack(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	p := seedProduct(t, repo, "Tx Item", 5000, 10)

	boom := errors.New("boom")
	err := repo.Orders.WithTx(ctx, func(tx *repository.Repository) error {
		ok, err := tx.Products.AdjustStock(ctx, p.ID, -4)
		require.NoError(t, err)
		require.True(t, ok)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := repo.Products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int32(10), got.StockQuantity)
}

func TestStatsQueries(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	u := seedUser(t, repo, "stats@example.com")
	p1 := seedProduct(t, repo, "Best Seller", 5000, 100)
	p2 := seedProduct(t, repo, "Slow Mover", 3000, 100)

	o1 := seedOrder(t, repo, u.ID, "CB-20260831-S001", 15000)
	o2 := seedOrder(t, repo, u.ID, "CB-20260831-S002", 3000)
	require.NoError(t, repo.OrderItems.BulkCreate(ctx, []models.OrderItem{
		{OrderID: o1.ID, ProductID: p1.ID, Name: p1.Name, Category: p1.Category, UnitPriceCents: 5000, Quantity: 3, LineTotalCents: 15000},
		{OrderID: o2.ID, ProductID: p2.ID, Name: p2.Name, Category: p2.Category, UnitPriceCents: 3000, Quantity: 1, LineTotalCents: 3000},
	}))

	cancelled := seedOrder(t, repo, u.ID, "CB-20260831-S003", 9000)
	require.NoError(t, repo.Orders.UpdateStatus(ctx, cancelled.ID, models.OrderStatusCancelled, nil))

	byStatus, err := repo.Orders.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), byStatus[models.OrderStatusPending])
	assert.Equal(t, int64(1), byStatus[models.OrderStatusCancelled])

	revenue, err := repo.Orders.RevenueCents(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(18000), revenue)

	daily, err := repo.Orders.DailyStats(ctx, 7)
	require.NoError(t, err)
	require.Len(t, daily, 1)
	assert.Equal(t, int64(3), daily[0].Orders)
	assert.Equal(t, int64(18000), daily[0].RevenueCents)

	top, err := repo.Orders.TopProducts(ctx, 5)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, p1.ID, top[0].ProductID)
	assert.Equal(t, int64(3), top[0].QuantitySold)
}

func TestProductListFilters(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	seedProduct(t, repo, "Durban Poison 3.5g", 5000, 10)
	sale := int64(2000)
	onSale := &models.Product{
		Name:           "Sour Gummies",
		Category:       models.CategoryEdibles,
		Brand:          "Other Brand",
		PriceCents:     2500,
		SalePriceCents: &sale,
		Images:         pq.StringArray{"https://cdn.example.com/g.jpg"},
		StockQuantity:  5,
		IsActive:       true,
		IsFeatured:     true,
	}
	require.NoError(t, repo.Products.Create(ctx, onSale))
	inactive := &models.Product{
		Name:          "Retired Item",
		Category:      models.CategoryFlower,
		Brand:         "Canna Bomb",
		PriceCents:    1000,
		Images:        pq.StringArray{"https://cdn.example.com/r.jpg"},
		StockQuantity: 0,
		IsActive:      false,
	}
	require.NoError(t, repo.Products.Create(ctx, inactive))

	active := true
	list, total, err := repo.Products.List(ctx, repository.ProductListFilter{OnlyActive: &active})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, list, 2)

	edibles := models.CategoryEdibles
	list, total, err = repo.Products.List(ctx, repository.ProductListFilter{Category: &edibles})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.Equal(t, "Sour Gummies", list[0].Name)

	featured := true
	list, _, err = repo.Products.List(ctx, repository.ProductListFilter{Featured: &featured})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].IsFeatured)

	saleOnly := true
	list, _, err = repo.Products.List(ctx, repository.ProductListFilter{OnSale: &saleOnly})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.NotNil(t, list[0].SalePriceCents)

	list, _, err = repo.Products.List(ctx, repository.ProductListFilter{Query: "durban"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Durban Poison 3.5g", list[0].Name)
}

func TestPushSubscriptionUpsert(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	u := seedUser(t, repo, "push@example.com")

	require.NoError(t, repo.PushSubs.Save(ctx, &models.PushSubscription{
		UserID: u.ID, Endpoint: "https://push.example.com/a", P256dh: "k1", Auth: "a1",
	}))
	// saving again replaces the endpoint for the same user
	require.NoError(t, repo.PushSubs.Save(ctx, &models.PushSubscription{
		UserID: u.ID, Endpoint: "https://push.example.com/b", P256dh: "k2", Auth: "a2",
	}))

	got, err := repo.PushSubs.Get(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "https://push.example.com/b", got.Endpoint)

	require.NoError(t, repo.PushSubs.Delete(ctx, u.ID))
	got, err = repo.PushSubs.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUserUniqueEmail(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	seedUser(t, repo, "dup@example.com")

	err := repo.Users.Create(ctx, &models.User{
		Name: "Dup", Email: "dup@example.com", PasswordHash: "x", Role: models.RoleCustomer,
	})
	assert.Error(t, err)
}
