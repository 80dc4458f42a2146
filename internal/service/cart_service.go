package service

import (
	"context"

	"github.com/zwelix28/canna-bomb-sub001/internal/models"
	"github.com/zwelix28/canna-bomb-sub001/internal/repository"

	"github.com/google/uuid"
)

// CartLine joins a stored cart row against the live product so the summary
// always reflects current pricing. Checkout re-resolves prices again at
// order-creation time; the cart total is display-only.
type CartLine struct {
	ProductID      uuid.UUID              `json:"productId"`
	Name           string                 `json:"name"`
	Category       models.ProductCategory `json:"category"`
	Image          string                 `json:"image"`
	UnitPriceCents int64                  `json:"unitPriceCents"`
	Quantity       uint32                 `json:"quantity"`
	LineTotalCents int64                  `json:"lineTotalCents"`
	StockQuantity  int32                  `json:"stockQuantity"`
}

type CartSummary struct {
	Lines         []CartLine `json:"lines"`
	ItemCount     uint32     `json:"itemCount"`
	SubtotalCents int64      `json:"subtotalCents"`
}

type CartService interface {
	Get(ctx context.Context) (*CartSummary, error)
	AddItem(ctx context.Context, productID uuid.UUID, qty uint32) (*CartSummary, error)
	UpdateItem(ctx context.Context, productID uuid.UUID, qty uint32) (*CartSummary, error)
	RemoveItem(ctx context.Context, productID uuid.UUID) (*CartSummary, error)
	Clear(ctx context.Context) error
}

type cartService struct {
	repo *repository.Repository
}

func NewCartService(repo *repository.Repository) CartService {
	return &cartService{repo: repo}
}

func (s *cartService) Get(ctx context.Context) (*CartSummary, error) {
	uid, _, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}
	return s.summary(ctx, uid)
}

func (s *cartService) AddItem(ctx context.Context, productID uuid.UUID, qty uint32) (*CartSummary, error) {
	uid, _, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}
	if qty == 0 {
		return nil, ErrInvalidQuantity
	}

	p, err := s.repo.Products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil || !p.IsActive {
		return nil, ErrProductNotFound
	}

	existing, err := s.repo.CartItems.Get(ctx, uid, productID)
	if err != nil {
		return nil, err
	}
	requested := qty
	if existing != nil {
		requested += existing.Quantity
	}
	// quantity cap is checked at mutation time only; stock can still move
	// before checkout, which re-validates
	if int64(requested) > int64(p.StockQuantity) {
		return nil, &InsufficientStockError{ProductID: p.ID, Name: p.Name, Requested: requested}
	}

	if err := s.repo.CartItems.Upsert(ctx, uid, productID, qty); err != nil {
		return nil, err
	}
	return s.summary(ctx, uid)
}

func (s *cartService) UpdateItem(ctx context.Context, productID uuid.UUID, qty uint32) (*CartSummary, error) {
	uid, _, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	if qty == 0 {
		return s.RemoveItem(ctx, productID)
	}

	p, err := s.repo.Products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil || !p.IsActive {
		return nil, ErrProductNotFound
	}
	if int64(qty) > int64(p.StockQuantity) {
		return nil, &InsufficientStockError{ProductID: p.ID, Name: p.Name, Requested: qty}
	}

	ok, err := s.repo.CartItems.SetQuantity(ctx, uid, productID, qty)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrCartItemNotFound
	}
	return s.summary(ctx, uid)
}

func (s *cartService) RemoveItem(ctx context.Context, productID uuid.UUID) (*CartSummary, error) {
	uid, _, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}
	ok, err := s.repo.CartItems.Remove(ctx, uid, productID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrCartItemNotFound
	}
	return s.summary(ctx, uid)
}

func (s *cartService) Clear(ctx context.Context) error {
	uid, _, err := requireAuth(ctx)
	if err != nil {
		return err
	}
	return s.repo.CartItems.Clear(ctx, uid)
}

func (s *cartService) summary(ctx context.Context, userID uuid.UUID) (*CartSummary, error) {
	rows, err := s.repo.CartItems.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	sum := &CartSummary{Lines: []CartLine{}}
	if len(rows) == 0 {
		return sum, nil
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ProductID)
	}
	products, err := s.repo.Products.BatchGetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*models.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	for _, row := range rows {
		p, ok := byID[row.ProductID]
		if !ok || !p.IsActive {
			// product removed or deactivated since it was added; skip it
			continue
		}
		unit := p.EffectivePriceCents()
		line := CartLine{
			ProductID:      p.ID,
			Name:           p.Name,
			Category:       p.Category,
			UnitPriceCents: unit,
			Quantity:       row.Quantity,
			LineTotalCents: unit * int64(row.Quantity),
			StockQuantity:  p.StockQuantity,
		}
		if len(p.Images) > 0 {
			line.Image = p.Images[0]
		}
		sum.Lines = append(sum.Lines, line)
		sum.ItemCount += row.Quantity
		sum.SubtotalCents += line.LineTotalCents
	}
	return sum, nil
}
