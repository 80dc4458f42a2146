package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/zwelix28/canna-bomb-sub001/internal/models"
	"github.com/zwelix28/canna-bomb-sub001/internal/repository"

	"github.com/google/uuid"
)

type orderService struct {
	repo     *repository.Repository
	notifier Notifier
	now      func() time.Time
}

func NewOrderService(repo *repository.Repository, notifier Notifier) OrderService {
	return &orderService{
		repo:     repo,
		notifier: notifier,
		now:      time.Now,
	}
}

// newOrderNumber builds the human-readable reference printed on pickup
// receipts, e.g. CB-20250131-7F3A.
func newOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(uuid.NewString()[:4])
	return fmt.Sprintf("CB-%s-%s", now.Format("20060102"), suffix)
}

func (s *orderService) CreateOrder(ctx context.Context, in CheckoutInput) (*models.Order, error) {
	userID, _, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if !models.ValidCollectionMethod(in.CollectionMethod) {
		return nil, ErrInvalidCollection
	}
	if in.CollectionMethod == models.CollectionPreOrder && in.CollectionDate == "" {
		return nil, ErrInvalidCollection
	}

	cartRows, err := s.repo.CartItems.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(cartRows) == 0 {
		return nil, ErrEmptyCart
	}

	now := s.now()
	var order *models.Order

	err = s.repo.Orders.WithTx(ctx, func(tx *repository.Repository) error {
		ids := make([]uuid.UUID, 0, len(cartRows))
		for _, row := range cartRows {
			ids = append(ids, row.ProductID)
		}
		products, err := tx.Products.BatchGetByIDs(ctx, ids)
		if err != nil {
			return err
		}
		byID := make(map[uuid.UUID]*models.Product, len(products))
		for i := range products {
			byID[products[i].ID] = &products[i]
		}

		var (
			items    []models.OrderItem
			subtotal int64
		)
		for _, row := range cartRows {
			if row.Quantity == 0 {
				return ErrInvalidQuantity
			}
			p, ok := byID[row.ProductID]
			if !ok || !p.IsActive {
				return ErrProductNotFound
			}

			// conditional decrement: fails the whole transaction when the
			// shelf can no longer cover the line
			ok, err := tx.Products.AdjustStock(ctx, p.ID, -int32(row.Quantity))
			if err != nil {
				return err
			}
			if !ok {
				return &InsufficientStockError{ProductID: p.ID, Name: p.Name, Requested: row.Quantity}
			}

			unit := p.EffectivePriceCents()
			line := models.OrderItem{
				ProductID:      p.ID,
				Name:           p.Name,
				Category:       p.Category,
				UnitPriceCents: unit,
				Quantity:       row.Quantity,
				LineTotalCents: unit * int64(row.Quantity),
				CreatedAt:      now,
			}
			if len(p.Images) > 0 {
				line.Image = p.Images[0]
			}
			items = append(items, line)
			subtotal += line.LineTotalCents
		}

		tax, tip := int64(0), int64(0)
		if in.TaxCents != nil {
			tax = *in.TaxCents
		}
		if in.TipCents != nil {
			tip = *in.TipCents
		}
		if tax < 0 || tip < 0 {
			return ErrAmountMismatch
		}
		// client-computed money fields are cross-checked, never trusted
		if in.SubtotalCents != nil && *in.SubtotalCents != subtotal {
			return ErrAmountMismatch
		}
		total := subtotal + tax + tip
		if in.TotalCents != nil && *in.TotalCents != total {
			return ErrAmountMismatch
		}

		customerName := strings.TrimSpace(in.CustomerName)
		if customerName == "" {
			customerName = user.Name
		}
		customerEmail := strings.TrimSpace(in.CustomerEmail)
		if customerEmail == "" {
			customerEmail = user.Email
		}
		customerPhone := strings.TrimSpace(in.CustomerPhone)
		if customerPhone == "" {
			customerPhone = user.Phone
		}

		order = &models.Order{
			Number:           newOrderNumber(now),
			UserID:           userID,
			Status:           models.OrderStatusPending,
			SubtotalCents:    subtotal,
			TaxCents:         tax,
			TipCents:         tip,
			TotalCents:       total,
			PaymentStatus:    models.PaymentStatusPending,
			PaymentMethod:    in.PaymentMethod,
			CollectionMethod: in.CollectionMethod,
			CollectionDate:   in.CollectionDate,
			CollectionTime:   in.CollectionTime,
			PreferredName:    strings.TrimSpace(in.PreferredName),
			OrderNotes:       strings.TrimSpace(in.OrderNotes),
			CustomerName:     customerName,
			CustomerEmail:    customerEmail,
			CustomerPhone:    customerPhone,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		if err := tx.Orders.Create(ctx, order); err != nil {
			return err
		}

		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := tx.OrderItems.BulkCreate(ctx, items); err != nil {
			return err
		}

		return tx.CartItems.Clear(ctx, userID)
	})
	if err != nil {
		return nil, err
	}

	order, err = s.repo.Orders.GetByID(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	// fan-out only after the order is durably saved; failures stay inside
	// the notifier
	if s.notifier != nil {
		s.notifier.OrderPlaced(ctx, user, order)
	}

	return order, nil
}

func (s *orderService) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	userID, role, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	var ord *models.Order
	if role == models.RoleAdmin {
		ord, err = s.repo.Orders.GetByID(ctx, id)
	} else {
		// not-found for foreign orders, so existence never leaks
		ord, err = s.repo.Orders.GetByIDForUser(ctx, id, userID)
	}
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, ErrOrderNotFound
	}
	return ord, nil
}

func (s *orderService) ListOrders(ctx context.Context, f OrderListFilter) ([]models.Order, int64, error) {
	userID, _, err := requireAuth(ctx)
	if err != nil {
		return nil, 0, err
	}
	return s.repo.Orders.List(ctx, repository.OrderListFilter{
		UserID: &userID,
		Status: f.Status,
		Limit:  f.Limit,
		Offset: f.Offset,
	})
}

func (s *orderService) ListAllOrders(ctx context.Context, f OrderListFilter) ([]models.Order, int64, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, 0, err
	}
	return s.repo.Orders.List(ctx, repository.OrderListFilter{
		Status: f.Status,
		Limit:  f.Limit,
		Offset: f.Offset,
	})
}

func (s *orderService) UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (*models.Order, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	if !models.ValidOrderStatus(status) {
		return nil, ErrInvalidStatus
	}

	ord, err := s.repo.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, ErrOrderNotFound
	}

	// cancelled is terminal in both directions outside the allowed window
	if ord.Status == models.OrderStatusCancelled {
		return nil, ErrInvalidTransition
	}
	if status == models.OrderStatusCancelled {
		return s.CancelOrder(ctx, id, nil)
	}

	if err := s.repo.Orders.UpdateStatus(ctx, id, status, nil); err != nil {
		return nil, err
	}
	ord, err = s.repo.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.notifyStatus(ctx, ord)
	return ord, nil
}

func (s *orderService) CancelOrder(ctx context.Context, id uuid.UUID, reason *string) (*models.Order, error) {
	userID, role, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	ord, err := s.repo.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ord == nil || (role != models.RoleAdmin && ord.UserID != userID) {
		return nil, ErrOrderNotFound
	}
	if !models.CanCancel(ord.Status) {
		return nil, ErrInvalidTransition
	}

	// the only stock-restoring path: give every cancelled line back
	err = s.repo.Orders.WithTx(ctx, func(tx *repository.Repository) error {
		for _, it := range ord.Items {
			if _, err := tx.Products.AdjustStock(ctx, it.ProductID, int32(it.Quantity)); err != nil {
				return err
			}
		}
		return tx.Orders.UpdateStatus(ctx, id, models.OrderStatusCancelled, sanitizeReason(reason))
	})
	if err != nil {
		return nil, err
	}

	ord, err = s.repo.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.notifyStatus(ctx, ord)
	return ord, nil
}

func (s *orderService) notifyStatus(ctx context.Context, ord *models.Order) {
	if s.notifier == nil || ord == nil {
		return
	}
	user, err := s.repo.Users.GetByID(ctx, ord.UserID)
	if err != nil || user == nil {
		return
	}
	s.notifier.OrderStatusChanged(ctx, user, ord)
}

func sanitizeReason(reason *string) *string {
	if reason == nil {
		return nil
	}
	r := strings.TrimSpace(*reason)
	if len(r) > 500 {
		r = r[:500]
	}
	return &r
}
