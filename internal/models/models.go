package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name         string    `gorm:"type:text;not null" json:"name"`
	Email        string    `gorm:"type:text;not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"type:text;not null" json:"-"`
	Phone        string    `gorm:"type:text" json:"phone"`
	Role         Role      `gorm:"type:text;not null;default:'customer'" json:"role"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updatedAt"`
}

func (User) TableName() string { return "users" }

type ProductCategory string

const (
	CategoryFlower       ProductCategory = "flower"
	CategoryEdibles      ProductCategory = "edibles"
	CategoryConcentrates ProductCategory = "concentrates"
	CategoryTopicals     ProductCategory = "topicals"
	CategoryAccessories  ProductCategory = "accessories"
	CategoryVapes        ProductCategory = "vapes"
)

func ValidCategory(c ProductCategory) bool {
	switch c {
	case CategoryFlower, CategoryEdibles, CategoryConcentrates,
		CategoryTopicals, CategoryAccessories, CategoryVapes:
		return true
	}
	return false
}

type Product struct {
	ID             uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name           string          `gorm:"type:text;not null" json:"name"`
	Description    string          `gorm:"type:text" json:"description"`
	Category       ProductCategory `gorm:"type:text;not null;index" json:"category"`
	Brand          string          `gorm:"type:text;not null;index" json:"brand"`
	PriceCents     int64           `gorm:"not null" json:"priceCents"`
	SalePriceCents *int64          `gorm:"" json:"salePriceCents,omitempty"`
	Images         pq.StringArray  `gorm:"type:text[];not null" json:"images"`
	THCPercent     *float64        `gorm:"type:numeric(5,2)" json:"thcPercent,omitempty"`
	CBDPercent     *float64        `gorm:"type:numeric(5,2)" json:"cbdPercent,omitempty"`
	WeightValue    float64         `gorm:"type:numeric(10,2);not null;default:0" json:"weightValue"`
	WeightUnit     string          `gorm:"type:text;not null;default:'g'" json:"weightUnit"`
	Strain         *string         `gorm:"type:text" json:"strain,omitempty"`
	Effects        pq.StringArray  `gorm:"type:text[];not null;default:'{}'" json:"effects"`
	Flavors        pq.StringArray  `gorm:"type:text[];not null;default:'{}'" json:"flavors"`
	StockQuantity  int32           `gorm:"not null;default:0" json:"stockQuantity"`
	IsActive       bool            `gorm:"not null;default:true;index" json:"isActive"`
	IsFeatured     bool            `gorm:"not null;default:false" json:"isFeatured"`
	RatingAverage  float64         `gorm:"type:numeric(3,2);not null;default:0" json:"ratingAverage"`
	RatingCount    int32           `gorm:"not null;default:0" json:"ratingCount"`

	CreatedAt time.Time `gorm:"not null;default:now();index" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updatedAt"`
}

func (Product) TableName() string { return "products" }

// EffectivePriceCents is the price a checkout line is charged at: the sale
// price when one is set below the list price.
func (p *Product) EffectivePriceCents() int64 {
	if p.SalePriceCents != nil && *p.SalePriceCents < p.PriceCents {
		return *p.SalePriceCents
	}
	return p.PriceCents
}

func (p *Product) OnSale() bool {
	return p.SalePriceCents != nil && *p.SalePriceCents < p.PriceCents
}

// CartItem is one line of a user's cart. The cart itself is implicit: it is
// the set of rows for a user, created lazily on first add and emptied (not
// deleted) on checkout or clear.
type CartItem struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:ux_cart_items_user_product" json:"userId"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_cart_items_user_product" json:"productId"`
	Quantity  uint32    `gorm:"type:int;not null" json:"quantity"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updatedAt"`
}

func (CartItem) TableName() string { return "cart_items" }

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusReady      OrderStatus = "ready"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing,
		OrderStatusReady, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// CanCancel reports whether an order in status s may still be cancelled.
// Shared by the cancel endpoint and the admin status update so the rule
// lives in exactly one place.
func CanCancel(s OrderStatus) bool {
	return s == OrderStatusPending || s == OrderStatusConfirmed
}

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
)

type CollectionMethod string

const (
	CollectionWalkIn   CollectionMethod = "walk_in"
	CollectionPreOrder CollectionMethod = "pre_order"
)

func ValidCollectionMethod(m CollectionMethod) bool {
	return m == CollectionWalkIn || m == CollectionPreOrder
}

type Order struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Number string    `gorm:"type:text;not null;uniqueIndex" json:"number"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`
	Status OrderStatus `gorm:"type:text;not null;default:'pending';index" json:"status"`

	SubtotalCents int64 `gorm:"not null;default:0" json:"subtotalCents"`
	TaxCents      int64 `gorm:"not null;default:0" json:"taxCents"`
	TipCents      int64 `gorm:"not null;default:0" json:"tipCents"`
	TotalCents    int64 `gorm:"not null;default:0" json:"totalCents"`

	PaymentStatus PaymentStatus `gorm:"type:text;not null;default:'pending'" json:"paymentStatus"`
	PaymentMethod string        `gorm:"type:text;not null" json:"paymentMethod"`

	CollectionMethod CollectionMethod `gorm:"type:text;not null" json:"collectionMethod"`
	CollectionDate   string           `gorm:"type:text" json:"collectionDate"`
	CollectionTime   string           `gorm:"type:text" json:"collectionTime"`
	PreferredName    string           `gorm:"type:text" json:"preferredName"`
	OrderNotes       string           `gorm:"type:text" json:"orderNotes"`

	// Customer contact snapshot at checkout time.
	CustomerName  string `gorm:"type:text;not null" json:"customerName"`
	CustomerEmail string `gorm:"type:text;not null" json:"customerEmail"`
	CustomerPhone string `gorm:"type:text" json:"customerPhone"`

	CancelReason *string `gorm:"type:text" json:"cancelReason,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now();index" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updatedAt"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}

func (Order) TableName() string { return "orders" }

// OrderItem is a denormalized snapshot of the product at checkout time.
// Later product edits never alter historical orders.
type OrderItem struct {
	ID             uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID        uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:ux_order_items_order_product" json:"orderId"`
	ProductID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:ux_order_items_order_product" json:"productId"`
	Name           string          `gorm:"type:text;not null" json:"name"`
	Category       ProductCategory `gorm:"type:text;not null" json:"category"`
	Image          string          `gorm:"type:text" json:"image"`
	UnitPriceCents int64           `gorm:"not null" json:"unitPriceCents"`
	Quantity       uint32          `gorm:"type:int;not null" json:"quantity"`
	LineTotalCents int64           `gorm:"not null" json:"lineTotalCents"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"createdAt"`
}

func (OrderItem) TableName() string { return "order_items" }

// PushSubscription stores one browser push endpoint per user.
type PushSubscription struct {
	UserID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"userId"`
	Endpoint string    `gorm:"type:text;not null" json:"endpoint"`
	P256dh   string    `gorm:"type:text;not null" json:"p256dh"`
	Auth     string    `gorm:"type:text;not null" json:"auth"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"createdAt"`
}

func (PushSubscription) TableName() string { return "push_subscriptions" }
