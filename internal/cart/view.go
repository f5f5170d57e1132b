package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nmorales/distromart-storefront/pkg/db/models"
)

// View is the cart as rendered to clients: lines, badge count, running total.
type View struct {
	CartID    uuid.UUID       `json:"cartId"`
	Items     []LineView      `json:"items"`
	ItemCount int             `json:"itemCount"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// LineView is one rendered cart line. Notice carries a limit message when the
// most recent snapshot refresh found the held quantity above the current cap;
// the quantity itself is never silently rewritten.
type LineView struct {
	ProductID             uuid.UUID       `json:"productId"`
	ProductName           string          `json:"productName"`
	SKU                   string          `json:"sku"`
	Unit                  string          `json:"unit"`
	UnitPrice             decimal.Decimal `json:"unitPrice"`
	Quantity              int             `json:"quantity"`
	Subtotal              decimal.Decimal `json:"subtotal"`
	StockQuantity         *int            `json:"stockQuantity,omitempty"`
	AllowBackorder        bool            `json:"allowBackorder"`
	BackorderLeadTimeDays *int            `json:"backorderLeadTimeDays,omitempty"`
	BackorderLimit        *int            `json:"backorderLimit,omitempty"`
	Notice                string          `json:"notice,omitempty"`
}

// MutationResult pairs the post-mutation cart with the limit outcome. Blocked
// is set when the request hit the cap, whether or not the quantity moved.
type MutationResult struct {
	Cart    *View  `json:"cart"`
	Blocked bool   `json:"blocked"`
	Notice  string `json:"notice,omitempty"`
}

func emptyView() *View {
	return &View{Items: []LineView{}, Subtotal: decimal.Zero}
}

func buildView(cart *models.Cart, notices map[uuid.UUID]string) *View {
	view := &View{
		CartID:   cart.ID,
		Items:    make([]LineView, 0, len(cart.Lines)),
		Subtotal: decimal.Zero,
	}
	for _, line := range cart.Lines {
		subtotal := line.Subtotal()
		view.Items = append(view.Items, LineView{
			ProductID:             line.ProductID,
			ProductName:           line.ProductName,
			SKU:                   line.SKU,
			Unit:                  line.Unit,
			UnitPrice:             line.UnitPrice,
			Quantity:              line.Quantity,
			Subtotal:              subtotal,
			StockQuantity:         line.StockQuantity,
			AllowBackorder:        line.AllowBackorder,
			BackorderLeadTimeDays: line.BackorderLeadTimeDays,
			BackorderLimit:        line.BackorderLimit,
			Notice:                notices[line.ProductID],
		})
		view.ItemCount += line.Quantity
		view.Subtotal = view.Subtotal.Add(subtotal)
	}
	return view
}
