package service

import (
	"context"
	"sync"

	"github.com/zwelix28/canna-bomb-sub001/internal/models"
	"github.com/zwelix28/canna-bomb-sub001/internal/repository"

	"github.com/google/uuid"
)

// fakeStore is a single in-memory backing store shared by all fake repos, so
// a service wired against it behaves like one database.
type fakeStore struct {
	mu         sync.Mutex
	users      map[uuid.UUID]models.User
	products   map[uuid.UUID]models.Product
	cartRows   []models.CartItem
	orders     map[uuid.UUID]models.Order
	orderItems map[uuid.UUID][]models.OrderItem
	subs       map[uuid.UUID]models.PushSubscription
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:      map[uuid.UUID]models.User{},
		products:   map[uuid.UUID]models.Product{},
		orders:     map[uuid.UUID]models.Order{},
		orderItems: map[uuid.UUID][]models.OrderItem{},
		subs:       map[uuid.UUID]models.PushSubscription{},
	}
}

func (st *fakeStore) repository() *repository.Repository {
	return &repository.Repository{
		Users:      &fakeUserRepo{st},
		Products:   &fakeProductRepo{st},
		CartItems:  &fakeCartRepo{st},
		Orders:     &fakeOrderRepo{st},
		OrderItems: &fakeOrderItemRepo{st},
		PushSubs:   &fakePushRepo{st},
	}
}

func (st *fakeStore) snapshot() *fakeStore {
	st.mu.Lock()
	defer st.mu.Unlock()
	cp := newFakeStore()
	for k, v := range st.users {
		cp.users[k] = v
	}
	for k, v := range st.products {
		cp.products[k] = v
	}
	cp.cartRows = append([]models.CartItem(nil), st.cartRows...)
	for k, v := range st.orders {
		cp.orders[k] = v
	}
	for k, v := range st.orderItems {
		cp.orderItems[k] = append([]models.OrderItem(nil), v...)
	}
	for k, v := range st.subs {
		cp.subs[k] = v
	}
	return cp
}

func (st *fakeStore) restore(from *fakeStore) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.users = from.users
	st.products = from.products
	st.cartRows = from.cartRows
	st.orders = from.orders
	st.orderItems = from.orderItems
	st.subs = from.subs
}

type fakeUserRepo struct{ st *fakeStore }

func (r *fakeUserRepo) Create(ctx context.Context, u *models.User) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.st.users[u.ID] = *u
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	if u, ok := r.st.users[id]; ok {
		cp := u
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	for _, u := range r.st.users {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	u, ok := r.st.users[id]
	if !ok {
		return nil
	}
	for k, v := range fields {
		switch k {
		case "name":
			u.Name = v.(string)
		case "phone":
			u.Phone = v.(string)
		}
	}
	r.st.users[id] = u
	return nil
}

func (r *fakeUserRepo) Count(ctx context.Context) (int64, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	var n int64
	for _, u := range r.st.users {
		if u.Role == models.RoleCustomer {
			n++
		}
	}
	return n, nil
}

type fakeProductRepo struct{ st *fakeStore }

func (r *fakeProductRepo) Create(ctx context.Context, p *models.Product) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.st.products[p.ID] = *p
	return nil
}

func (r *fakeProductRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	p, ok := r.st.products[id]
	if !ok {
		return nil
	}
	for k, v := range fields {
		switch k {
		case "name":
			p.Name = v.(string)
		case "price_cents":
			p.PriceCents = v.(int64)
		case "sale_price_cents":
			if v == nil {
				p.SalePriceCents = nil
			} else {
				sp := v.(int64)
				p.SalePriceCents = &sp
			}
		case "stock_quantity":
			p.StockQuantity = v.(int32)
		case "is_active":
			p.IsActive = v.(bool)
		case "is_featured":
			p.IsFeatured = v.(bool)
		}
	}
	r.st.products[id] = p
	return nil
}

func (r *fakeProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	if p, ok := r.st.products[id]; ok {
		cp := p
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeProductRepo) List(ctx context.Context, f repository.ProductListFilter) ([]models.Product, int64, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	var out []models.Product
	for _, p := range r.st.products {
		if f.OnlyActive != nil && p.IsActive != *f.OnlyActive {
			continue
		}
		if f.Category != nil && p.Category != *f.Category {
			continue
		}
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

func (r *fakeProductRepo) BatchGetByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	var out []models.Product
	for _, id := range ids {
		if p, ok := r.st.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) AdjustStock(ctx context.Context, id uuid.UUID, delta int32) (bool, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	p, ok := r.st.products[id]
	if !ok {
		return false, nil
	}
	if p.StockQuantity+delta < 0 {
		return false, nil
	}
	p.StockQuantity += delta
	r.st.products[id] = p
	return true, nil
}

func (r *fakeProductRepo) LowStock(ctx context.Context, threshold int32, limit int) ([]models.Product, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	var out []models.Product
	for _, p := range r.st.products {
		if p.IsActive && p.StockQuantity <= threshold {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeCartRepo struct{ st *fakeStore }

func (r *fakeCartRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	var out []models.CartItem
	for _, row := range r.st.cartRows {
		if row.UserID == userID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *fakeCartRepo) Get(ctx context.Context, userID, productID uuid.UUID) (*models.CartItem, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	for _, row := range r.st.cartRows {
		if row.UserID == userID && row.ProductID == productID {
			cp := row
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeCartRepo) Upsert(ctx context.Context, userID, productID uuid.UUID, qty uint32) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	for i, row := range r.st.cartRows {
		if row.UserID == userID && row.ProductID == productID {
			r.st.cartRows[i].Quantity += qty
			return nil
		}
	}
	r.st.cartRows = append(r.st.cartRows, models.CartItem{
		ID: uuid.New(), UserID: userID, ProductID: productID, Quantity: qty,
	})
	return nil
}

func (r *fakeCartRepo) SetQuantity(ctx context.Context, userID, productID uuid.UUID, qty uint32) (bool, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	for i, row := range r.st.cartRows {
		if row.UserID == userID && row.ProductID == productID {
			r.st.cartRows[i].Quantity = qty
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCartRepo) Remove(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	for i, row := range r.st.cartRows {
		if row.UserID == userID && row.ProductID == productID {
			r.st.cartRows = append(r.st.cartRows[:i], r.st.cartRows[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCartRepo) Clear(ctx context.Context, userID uuid.UUID) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	kept := r.st.cartRows[:0]
	for _, row := range r.st.cartRows {
		if row.UserID != userID {
			kept = append(kept, row)
		}
	}
	r.st.cartRows = kept
	return nil
}

type fakeOrderRepo struct{ st *fakeStore }

func (r *fakeOrderRepo) Create(ctx context.Context, o *models.Order) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	stored := *o
	stored.Items = nil
	r.st.orders[o.ID] = stored
	return nil
}

func (r *fakeOrderRepo) get(id uuid.UUID) *models.Order {
	o, ok := r.st.orders[id]
	if !ok {
		return nil
	}
	cp := o
	cp.Items = append([]models.OrderItem(nil), r.st.orderItems[id]...)
	return &cp
}

func (r *fakeOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	return r.get(id), nil
}

func (r *fakeOrderRepo) GetByIDForUser(ctx context.Context, id, userID uuid.UUID) (*models.Order, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	o := r.get(id)
	if o == nil || o.UserID != userID {
		return nil, nil
	}
	return o, nil
}

func (r *fakeOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus, reason *string) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	o, ok := r.st.orders[id]
	if !ok {
		return nil
	}
	o.Status = status
	if reason != nil {
		o.CancelReason = reason
	}
	r.st.orders[id] = o
	return nil
}

func (r *fakeOrderRepo) List(ctx context.Context, f repository.OrderListFilter) ([]models.Order, int64, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	var out []models.Order
	for id := range r.st.orders {
		o := r.get(id)
		if f.UserID != nil && o.UserID != *f.UserID {
			continue
		}
		if f.Status != nil && o.Status != *f.Status {
			continue
		}
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

// WithTx emulates transactional rollback by restoring a snapshot when fn
// fails, which is what the real implementation gets from Postgres.
func (r *fakeOrderRepo) WithTx(ctx context.Context, fn func(tx *repository.Repository) error) error {
	before := r.st.snapshot()
	if err := fn(r.st.repository()); err != nil {
		r.st.restore(before)
		return err
	}
	return nil
}

func (r *fakeOrderRepo) CountByStatus(ctx context.Context) (map[models.OrderStatus]int64, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	out := map[models.OrderStatus]int64{}
	for _, o := range r.st.orders {
		out[o.Status]++
	}
	return out, nil
}

func (r *fakeOrderRepo) RevenueCents(ctx context.Context) (int64, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	var total int64
	for _, o := range r.st.orders {
		if o.Status != models.OrderStatusCancelled {
			total += o.TotalCents
		}
	}
	return total, nil
}

func (r *fakeOrderRepo) DailyStats(ctx context.Context, days int) ([]repository.DailyOrderStat, error) {
	return nil, nil
}

func (r *fakeOrderRepo) TopProducts(ctx context.Context, limit int) ([]repository.ProductSales, error) {
	return nil, nil
}

type fakeOrderItemRepo struct{ st *fakeStore }

func (r *fakeOrderItemRepo) BulkCreate(ctx context.Context, items []models.OrderItem) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	for i := range items {
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
		r.st.orderItems[items[i].OrderID] = append(r.st.orderItems[items[i].OrderID], items[i])
	}
	return nil
}

func (r *fakeOrderItemRepo) GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]models.OrderItem, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	return append([]models.OrderItem(nil), r.st.orderItems[orderID]...), nil
}

type fakePushRepo struct{ st *fakeStore }

func (r *fakePushRepo) Save(ctx context.Context, sub *models.PushSubscription) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	r.st.subs[sub.UserID] = *sub
	return nil
}

func (r *fakePushRepo) Get(ctx context.Context, userID uuid.UUID) (*models.PushSubscription, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	if s, ok := r.st.subs[userID]; ok {
		cp := s
		return &cp, nil
	}
	return nil, nil
}

func (r *fakePushRepo) Delete(ctx context.Context, userID uuid.UUID) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	delete(r.st.subs, userID)
	return nil
}

// fakeNotifier records every fan-out call for assertions.
type fakeNotifier struct {
	mu       sync.Mutex
	placed   []models.OrderStatus
	statuses []models.OrderStatus
}

func (n *fakeNotifier) OrderPlaced(ctx context.Context, user *models.User, order *models.Order) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.placed = append(n.placed, order.Status)
}

func (n *fakeNotifier) OrderStatusChanged(ctx context.Context, user *models.User, order *models.Order) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.statuses = append(n.statuses, order.Status)
}
