package upstream

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is the catalog record as the platform serves it. StockQuantity and
// BackorderLimit are omitted by the platform when a product does not declare
// them; the cart treats absence and zero differently, so both stay pointers.
type Product struct {
	ID                    uuid.UUID       `json:"id"`
	Name                  string          `json:"name"`
	SKU                   string          `json:"sku"`
	Category              string          `json:"category"`
	Unit                  string          `json:"unit"`
	Price                 decimal.Decimal `json:"price"`
	StockQuantity         *int            `json:"stockQuantity,omitempty"`
	AllowBackorder        bool            `json:"allowBackorder"`
	BackorderLeadTimeDays *int            `json:"backorderLeadTimeDays,omitempty"`
	BackorderLimit        *int            `json:"backorderLimit,omitempty"`
	IsActive              bool            `json:"isActive"`
}

// ProductInput is the payload for admin product create/update.
type ProductInput struct {
	Name                  string          `json:"name"`
	SKU                   string          `json:"sku"`
	Category              string          `json:"category"`
	Unit                  string          `json:"unit"`
	Price                 decimal.Decimal `json:"price"`
	StockQuantity         *int            `json:"stockQuantity,omitempty"`
	AllowBackorder        bool            `json:"allowBackorder"`
	BackorderLeadTimeDays *int            `json:"backorderLeadTimeDays,omitempty"`
	BackorderLimit        *int            `json:"backorderLimit,omitempty"`
	IsActive              bool            `json:"isActive"`
}

// Order is one order in its lifecycle on the platform.
type Order struct {
	ID              uuid.UUID       `json:"id"`
	CustomerID      uuid.UUID       `json:"customerId"`
	CustomerName    string          `json:"customerName"`
	Status          string          `json:"status"`
	Items           []OrderItem     `json:"items"`
	Total           decimal.Decimal `json:"total"`
	DeliveryAddress string          `json:"deliveryAddress"`
	Notes           string          `json:"notes,omitempty"`
	RejectReason    string          `json:"rejectReason,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

type OrderItem struct {
	ProductID   uuid.UUID       `json:"productId"`
	ProductName string          `json:"productName"`
	SKU         string          `json:"sku,omitempty"`
	Unit        string          `json:"unit"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Quantity    int             `json:"quantity"`
}

// CreateOrderRequest is the payload both checkout paths produce: the customer
// cart and the rep order draft.
type CreateOrderRequest struct {
	CustomerID      uuid.UUID   `json:"customerId"`
	Items           []OrderItem `json:"items"`
	DeliveryAddress string      `json:"deliveryAddress"`
	Notes           string      `json:"notes,omitempty"`
}

// Payment is a recorded payment against a customer account.
type Payment struct {
	ID         uuid.UUID       `json:"id"`
	CustomerID uuid.UUID       `json:"customerId"`
	OrderID    *uuid.UUID      `json:"orderId,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
	Method     string          `json:"method"`
	Reference  string          `json:"reference,omitempty"`
	Status     string          `json:"status"`
	RecordedAt time.Time       `json:"recordedAt"`
}

type RecordPaymentRequest struct {
	CustomerID uuid.UUID       `json:"customerId"`
	OrderID    *uuid.UUID      `json:"orderId,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
	Method     string          `json:"method"`
	Reference  string          `json:"reference,omitempty"`
}

// LedgerEntry is one row in a customer's account statement.
type LedgerEntry struct {
	ID          uuid.UUID       `json:"id"`
	CustomerID  uuid.UUID       `json:"customerId"`
	Kind        string          `json:"kind"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Balance     decimal.Decimal `json:"balance"`
	OccurredAt  time.Time       `json:"occurredAt"`
}

// Customer is the account record reps and admins browse.
type Customer struct {
	ID      uuid.UUID       `json:"id"`
	Name    string          `json:"name"`
	Phone   string          `json:"phone,omitempty"`
	Email   string          `json:"email,omitempty"`
	Address string          `json:"address,omitempty"`
	Balance decimal.Decimal `json:"balance"`
}

// Route is a sales-rep visiting route.
type Route struct {
	ID    uuid.UUID `json:"id"`
	RepID uuid.UUID `json:"repId"`
	Name  string    `json:"name"`
	Area  string    `json:"area,omitempty"`
}

// Visit is one scheduled customer stop on a route.
type Visit struct {
	ID           uuid.UUID  `json:"id"`
	RouteID      uuid.UUID  `json:"routeId"`
	CustomerID   uuid.UUID  `json:"customerId"`
	CustomerName string     `json:"customerName"`
	ScheduledFor time.Time  `json:"scheduledFor"`
	Status       string     `json:"status"`
	CheckedInAt  *time.Time `json:"checkedInAt,omitempty"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
	Notes        string     `json:"notes,omitempty"`
}

// Ticket is a support complaint.
type Ticket struct {
	ID         uuid.UUID  `json:"id"`
	CustomerID uuid.UUID  `json:"customerId"`
	OrderID    *uuid.UUID `json:"orderId,omitempty"`
	Subject    string     `json:"subject"`
	Body       string     `json:"body"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"createdAt"`
}

type CreateTicketRequest struct {
	CustomerID uuid.UUID  `json:"customerId"`
	OrderID    *uuid.UUID `json:"orderId,omitempty"`
	Subject    string     `json:"subject"`
	Body       string     `json:"body"`
}
