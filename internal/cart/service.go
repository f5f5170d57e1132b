// Package cart owns the durable per-customer cart: one cart per customer,
// lines carrying a catalog snapshot, every quantity change routed through the
// shared limit rule before anything is written.
package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nmorales/distromart-storefront/internal/upstream"
	"github.com/nmorales/distromart-storefront/pkg/db/models"
	pkgerrors "github.com/nmorales/distromart-storefront/pkg/errors"
	"github.com/nmorales/distromart-storefront/pkg/logger"
	"github.com/nmorales/distromart-storefront/pkg/quantity"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type productLoader interface {
	GetProduct(ctx context.Context, id uuid.UUID) (*upstream.Product, error)
}

type orderPlacer interface {
	CreateOrder(ctx context.Context, role string, req upstream.CreateOrderRequest) (*upstream.Order, error)
}

// Store is the persistence surface the service needs.
type Store interface {
	WithTx(tx *gorm.DB) Store
	FindByCustomer(ctx context.Context, customerID uuid.UUID) (*models.Cart, error)
	Create(ctx context.Context, cart *models.Cart) error
	SaveLine(ctx context.Context, line *models.CartLine) error
	DeleteLine(ctx context.Context, lineID uuid.UUID) error
	ClearLines(ctx context.Context, cartID uuid.UUID) error
}

// Service exposes cart operations.
type Service interface {
	Get(ctx context.Context, customerID uuid.UUID) (*View, error)
	AddItem(ctx context.Context, customerID, productID uuid.UUID, qty int) (*MutationResult, error)
	Increment(ctx context.Context, customerID, productID uuid.UUID) (*MutationResult, error)
	Decrement(ctx context.Context, customerID, productID uuid.UUID) (*MutationResult, error)
	SetQuantity(ctx context.Context, customerID, productID uuid.UUID, raw string) (*MutationResult, error)
	RemoveItem(ctx context.Context, customerID, productID uuid.UUID) (*View, error)
	Clear(ctx context.Context, customerID uuid.UUID) error
	Refresh(ctx context.Context, customerID uuid.UUID) (*View, error)
	Checkout(ctx context.Context, customerID uuid.UUID, input CheckoutInput) (*upstream.Order, error)
}

type service struct {
	repo     Store
	tx       txRunner
	products productLoader
	orders   orderPlacer
	logg     *logger.Logger
}

// NewService builds a cart service backed by the provided stack.
func NewService(repo Store, tx txRunner, products productLoader, orders orderPlacer, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	if orders == nil {
		return nil, fmt.Errorf("order placer required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, tx: tx, products: products, orders: orders, logg: logg}, nil
}

// CheckoutInput is the customer-entered portion of an order.
type CheckoutInput struct {
	DeliveryAddress string
	Notes           string
}

// Get returns the customer's cart, empty if they have none yet.
func (s *service) Get(ctx context.Context, customerID uuid.UUID) (*View, error) {
	cart, err := s.find(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return emptyView(), nil
	}
	return buildView(cart, nil), nil
}

// AddItem puts qty more units of a product into the cart, snapshotting the
// catalog record onto the line. Adding past the cap clamps to the cap and
// surfaces the limit notice.
func (s *service) AddItem(ctx context.Context, customerID, productID uuid.UUID, qty int) (*MutationResult, error) {
	if qty < 1 {
		qty = 1
	}

	product, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product is not available")
	}

	cart, err := s.findOrCreate(ctx, customerID)
	if err != nil {
		return nil, err
	}

	line := findLine(cart, productID)
	current := 0
	if line != nil {
		current = line.Quantity
	}

	limits := productLimits(product)
	res := quantity.Resolve(current, current+qty, limits)

	if err := s.apply(ctx, cart, line, product, res); err != nil {
		return nil, err
	}
	return s.result(ctx, customerID, res)
}

// Increment raises an existing line by one against its snapshot limits.
func (s *service) Increment(ctx context.Context, customerID, productID uuid.UUID) (*MutationResult, error) {
	return s.step(ctx, customerID, productID, +1)
}

// Decrement lowers an existing line by one; a decrement from one removes it.
func (s *service) Decrement(ctx context.Context, customerID, productID uuid.UUID) (*MutationResult, error) {
	return s.step(ctx, customerID, productID, -1)
}

func (s *service) step(ctx context.Context, customerID, productID uuid.UUID, delta int) (*MutationResult, error) {
	cart, line, err := s.requireLine(ctx, customerID, productID)
	if err != nil {
		return nil, err
	}

	res := quantity.Resolve(line.Quantity, line.Quantity+delta, lineLimits(line))
	if err := s.apply(ctx, cart, line, nil, res); err != nil {
		return nil, err
	}
	return s.result(ctx, customerID, res)
}

// SetQuantity applies a direct edit. The raw input is normalized first (junk
// and sub-one values become one, fractions floor) and then clamped.
func (s *service) SetQuantity(ctx context.Context, customerID, productID uuid.UUID, raw string) (*MutationResult, error) {
	cart, line, err := s.requireLine(ctx, customerID, productID)
	if err != nil {
		return nil, err
	}

	requested := quantity.Normalize(raw)
	res := quantity.Resolve(line.Quantity, requested, lineLimits(line))
	if err := s.apply(ctx, cart, line, nil, res); err != nil {
		return nil, err
	}
	return s.result(ctx, customerID, res)
}

// RemoveItem deletes a line outright.
func (s *service) RemoveItem(ctx context.Context, customerID, productID uuid.UUID) (*View, error) {
	_, line, err := s.requireLine(ctx, customerID, productID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.DeleteLine(ctx, line.ID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete cart line")
	}
	return s.Get(ctx, customerID)
}

// Clear empties the cart. Clearing a cart that does not exist is a no-op.
func (s *service) Clear(ctx context.Context, customerID uuid.UUID) error {
	cart, err := s.find(ctx, customerID)
	if err != nil {
		return err
	}
	if cart == nil {
		return nil
	}
	if err := s.repo.ClearLines(ctx, cart.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear cart")
	}
	return nil
}

// Checkout turns the cart into an order and empties it on success.
func (s *service) Checkout(ctx context.Context, customerID uuid.UUID, input CheckoutInput) (*upstream.Order, error) {
	cart, err := s.find(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if cart == nil || len(cart.Lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	items := make([]upstream.OrderItem, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		items = append(items, upstream.OrderItem{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			SKU:         line.SKU,
			Unit:        line.Unit,
			UnitPrice:   line.UnitPrice,
			Quantity:    line.Quantity,
		})
	}

	order, err := s.orders.CreateOrder(ctx, "customer", upstream.CreateOrderRequest{
		CustomerID:      customerID,
		Items:           items,
		DeliveryAddress: input.DeliveryAddress,
		Notes:           input.Notes,
	})
	if err != nil {
		return nil, err
	}

	if err := s.repo.ClearLines(ctx, cart.ID); err != nil {
		// The order exists; a stale cart is recoverable, a lost order is not.
		s.logg.Error(ctx, "clear cart after checkout", err)
	}
	return order, nil
}

// apply writes the resolution out: delete on Remove, save on change, nothing
// when a blocked request left the quantity where it was. product is non-nil
// only on the add path, where the line snapshot comes from the catalog.
func (s *service) apply(ctx context.Context, cart *models.Cart, line *models.CartLine, product *upstream.Product, res quantity.Resolution) error {
	current := 0
	if line != nil {
		current = line.Quantity
	}

	if res.Remove {
		if line == nil {
			return nil
		}
		if err := s.repo.DeleteLine(ctx, line.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete cart line")
		}
		return nil
	}

	if !res.Changed(current) {
		return nil
	}
	if res.Quantity < 1 {
		return nil
	}

	if line == nil {
		if product == nil {
			return pkgerrors.New(pkgerrors.CodeInternal, "new cart line without product snapshot")
		}
		line = &models.CartLine{ID: uuid.New(), CartID: cart.ID, ProductID: product.ID}
	}
	if product != nil {
		snapshotLine(line, product)
	}
	line.Quantity = res.Quantity

	if err := s.repo.SaveLine(ctx, line); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save cart line")
	}
	return nil
}

func (s *service) result(ctx context.Context, customerID uuid.UUID, res quantity.Resolution) (*MutationResult, error) {
	view, err := s.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return &MutationResult{Cart: view, Blocked: res.Blocked, Notice: res.Message}, nil
}

// find loads the cart, translating not-found into nil.
func (s *service) find(ctx context.Context, customerID uuid.UUID) (*models.Cart, error) {
	if customerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id is required")
	}
	cart, err := s.repo.FindByCustomer(ctx, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
	}
	return cart, nil
}

func (s *service) findOrCreate(ctx context.Context, customerID uuid.UUID) (*models.Cart, error) {
	cart, err := s.find(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if cart != nil {
		return cart, nil
	}
	cart = &models.Cart{ID: uuid.New(), CustomerID: customerID}
	if err := s.repo.Create(ctx, cart); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create cart")
	}
	return cart, nil
}

func (s *service) requireLine(ctx context.Context, customerID, productID uuid.UUID) (*models.Cart, *models.CartLine, error) {
	cart, err := s.find(ctx, customerID)
	if err != nil {
		return nil, nil, err
	}
	if cart == nil {
		return nil, nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found")
	}
	line := findLine(cart, productID)
	if line == nil {
		return nil, nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found")
	}
	return cart, line, nil
}

func findLine(cart *models.Cart, productID uuid.UUID) *models.CartLine {
	for i := range cart.Lines {
		if cart.Lines[i].ProductID == productID {
			return &cart.Lines[i]
		}
	}
	return nil
}

func lineLimits(line *models.CartLine) quantity.Limits {
	return quantity.Limits{
		StockQuantity:  line.StockQuantity,
		AllowBackorder: line.AllowBackorder,
		BackorderLimit: line.BackorderLimit,
	}
}

func productLimits(product *upstream.Product) quantity.Limits {
	return quantity.Limits{
		StockQuantity:  product.StockQuantity,
		AllowBackorder: product.AllowBackorder,
		BackorderLimit: product.BackorderLimit,
	}
}

func snapshotLine(line *models.CartLine, product *upstream.Product) {
	line.ProductName = product.Name
	line.SKU = product.SKU
	line.Unit = product.Unit
	line.UnitPrice = product.Price
	line.StockQuantity = product.StockQuantity
	line.AllowBackorder = product.AllowBackorder
	line.BackorderLeadTimeDays = product.BackorderLeadTimeDays
	line.BackorderLimit = product.BackorderLimit
}
