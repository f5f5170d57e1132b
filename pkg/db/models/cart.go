package models

import (
	"time"

	"github.com/google/uuid"
)

// Cart is the durable per-customer cart. It replaces the fixed localStorage
// key the previous client used: exactly one cart per customer, mutated by
// whole-cart read-modify-write, last write wins across concurrent sessions.
type Cart struct {
	ID         uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID uuid.UUID  `gorm:"column:customer_id;type:uuid;not null;uniqueIndex"`
	Lines      []CartLine `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (Cart) TableName() string { return "carts" }
