package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartLine holds one product in a cart. Price and stock metadata are
// snapshots captured from the catalog: UnitPrice at add time, the stock and
// backorder fields at the most recent snapshot refresh. Quantity is always a
// positive integer; a line whose quantity would drop to zero is deleted, never
// stored.
type CartLine struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CartID      uuid.UUID       `gorm:"column:cart_id;type:uuid;not null;uniqueIndex:idx_cart_product"`
	ProductID   uuid.UUID       `gorm:"column:product_id;type:uuid;not null;uniqueIndex:idx_cart_product"`
	ProductName string          `gorm:"column:product_name;not null"`
	SKU         string          `gorm:"column:sku;not null;default:''"`
	Unit        string          `gorm:"column:unit;not null"`
	UnitPrice   decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2);not null"`
	Quantity    int             `gorm:"column:quantity;not null"`

	StockQuantity         *int `gorm:"column:stock_quantity"`
	AllowBackorder        bool `gorm:"column:allow_backorder;not null;default:false"`
	BackorderLeadTimeDays *int `gorm:"column:backorder_lead_time_days"`
	BackorderLimit        *int `gorm:"column:backorder_limit"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (CartLine) TableName() string { return "cart_lines" }

// Subtotal is the line's contribution to the cart total.
func (l CartLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
