package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Raw product statuses as stored. The storefront collapses these into
// display buckets, see domain.EffectiveStatus.
const (
	ProductAvailable = "available"
	ProductActive    = "active"
	ProductOnRequest = "on_request"
	ProductPending   = "pending"
	ProductReserved  = "reserved"
	ProductHold      = "hold"
	ProductSold      = "sold"
	ProductArchived  = "archived"
	ProductInactive  = "inactive"
	ProductDraft     = "draft"
)

const (
	OrderWaitingPayment = "waiting_payment"
	OrderDepositPaid    = "deposit_paid"
)

// SKU prefixes separate the two catalog categories.
const (
	SKUPrefixSlabs = "WOODSLABS"
	SKUPrefixRough = "ROUGH-"
)

// SpecPendingKey is the legacy boolean flag in the spec bag that older
// storefront builds read instead of the status column. The status column is
// authoritative; the flag is kept in sync for backward compatibility only.
const SpecPendingKey = "pending"

const (
	DiscountTypePercent = "PERCENT"
	DiscountTypeFixed   = "FIXED"
)

type Product struct {
	ID            uuid.UUID         `gorm:"type:uuid;primaryKey"             json:"id"`
	Name          string            `gorm:"not null"                         json:"name"`
	SKU           string            `gorm:"index;not null"                   json:"sku"`
	Barcode       string            `json:"barcode"`
	Price         decimal.Decimal   `gorm:"type:numeric(12,2);not null"      json:"price"`
	Status        string            `gorm:"index;not null;default:available" json:"status"`
	ImageURL      string            `json:"image_url"`
	Specs         datatypes.JSONMap `json:"specs"`
	FavoriteCount int               `gorm:"not null;default:0"               json:"favorite_count"`
	Stock         []StockEntry      `gorm:"foreignKey:ProductID"             json:"stock,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (Product) TableName() string { return "products" }

type StockEntry struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"  json:"id"`
	ProductID uuid.UUID `gorm:"type:uuid;index;not null" json:"product_id"`
	Quantity  int       `gorm:"not null;default:0"    json:"quantity"`
	Location  string    `json:"location"`
}

func (s *StockEntry) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

func (StockEntry) TableName() string { return "stock_entries" }

type Discount struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"        json:"id"`
	Name      string          `gorm:"not null"                    json:"name"`
	Code      string          `gorm:"index"                       json:"code"`
	Type      string          `gorm:"not null"                    json:"discount_type"`
	Value     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"value"`
	StartDate *time.Time      `json:"start_date"`
	EndDate   *time.Time      `json:"end_date"`
	Active    bool            `gorm:"index;not null;default:true" json:"active"`
	Rules     []DiscountRule  `gorm:"foreignKey:DiscountID"       json:"discount_rules"`
	CreatedAt time.Time       `json:"created_at"`
}

func (d *Discount) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

func (Discount) TableName() string { return "discounts" }

// DiscountRule narrows a discount. A discount without rules applies to every
// product; with rules, matching any single rule is enough.
type DiscountRule struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"           json:"id"`
	DiscountID  uuid.UUID       `gorm:"type:uuid;index;not null"       json:"discount_id"`
	ProductID   *uuid.UUID      `gorm:"type:uuid"                      json:"product_id"`
	MinSubtotal decimal.Decimal `gorm:"type:numeric(12,2);default:0"   json:"min_subtotal"`
	BranchID    *uuid.UUID      `gorm:"type:uuid"                      json:"branch_id"`
}

func (r *DiscountRule) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func (DiscountRule) TableName() string { return "discount_rules" }

// Order is a deposit reservation. DiscountSnapshot is the denormalized copy
// of the discount calculation made at creation time and is never rewritten,
// even when the discount record later changes or expires.
type Order struct {
	ID               uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           uuid.UUID         `gorm:"type:uuid;not null;index;index:ux_orders_pending,unique,where:status = 'waiting_payment'" json:"user_id"`
	ProductID        uuid.UUID         `gorm:"type:uuid;not null;index:ux_orders_pending,unique,where:status = 'waiting_payment'"       json:"product_id"`
	Amount           decimal.Decimal   `gorm:"type:numeric(12,2);not null" json:"amount"`
	Status           string            `gorm:"index;not null"              json:"status"`
	PaymentID        string            `gorm:"index"                       json:"payment_id"`
	OriginalPrice    decimal.Decimal   `gorm:"type:numeric(12,2)"          json:"original_price"`
	DiscountSnapshot datatypes.JSONMap `json:"discount_snapshot"`
	Product          Product           `gorm:"foreignKey:ProductID"        json:"product,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

func (Order) TableName() string { return "orders" }

type CartItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"                            json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_user_product;not null" json:"user_id"`
	ProductID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_user_product;not null" json:"product_id"`
	Quantity  uint      `gorm:"default:1;check:quantity>0"                      json:"quantity"`
	Product   Product   `gorm:"foreignKey:ProductID"                            json:"product,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (c *CartItem) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (CartItem) TableName() string { return "cart_items" }

type Favorite struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"                             json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_user_favorite;not null" json:"user_id"`
	ProductID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_user_favorite;not null" json:"product_id"`
	Product   Product   `gorm:"foreignKey:ProductID"                             json:"product,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (f *Favorite) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

func (Favorite) TableName() string { return "favorites" }

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null"             json:"-"`
	DisplayName  string    `json:"display_name"`
	Phone        string    `json:"phone"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (User) TableName() string { return "users" }

type RefreshToken struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"     json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	JTI       string    `gorm:"uniqueIndex;not null"     json:"jti"`
	ExpiresAt time.Time `gorm:"not null"                 json:"expires_at"`
	Revoked   bool      `gorm:"not null;default:false"   json:"revoked"`
	CreatedAt time.Time `json:"created_at"`
}

func (t *RefreshToken) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

func (RefreshToken) TableName() string { return "refresh_tokens" }

// All lists every model for migration.
func All() []any {
	return []any{
		&Product{}, &StockEntry{}, &Discount{}, &DiscountRule{},
		&Order{}, &CartItem{}, &Favorite{}, &User{}, &RefreshToken{},
	}
}
