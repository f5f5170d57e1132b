package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nmorales/distromart-storefront/api/controllers"
	"github.com/nmorales/distromart-storefront/api/middleware"
	"github.com/nmorales/distromart-storefront/internal/cart"
	"github.com/nmorales/distromart-storefront/internal/catalog"
	"github.com/nmorales/distromart-storefront/internal/draft"
	"github.com/nmorales/distromart-storefront/internal/upstream"
	pkgAuth "github.com/nmorales/distromart-storefront/pkg/auth"
	"github.com/nmorales/distromart-storefront/pkg/config"
	"github.com/nmorales/distromart-storefront/pkg/logger"
	"github.com/nmorales/distromart-storefront/pkg/metrics"
)

// Deps bundles everything the router wires into handlers.
type Deps struct {
	Config         *config.Config
	Logger         *logger.Logger
	Metrics        *metrics.HTTPMetrics
	MetricsHandler http.Handler
	Platform       *upstream.Client
	Catalog        catalog.Service
	Cart           cart.Service
	Draft          draft.Service
	Health         map[string]controllers.Pinger
}

// NewRouter assembles the storefront API: one route group per actor role,
// everything behind the same token middleware.
func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
	)
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware())
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.Health))
	})
	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	platform := deps.Platform

	r.Route("/api/customer/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.RequireRole(string(pkgAuth.RoleCustomer), logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.CatalogBrowse(deps.Catalog, logg))
			r.Get("/{productId}", controllers.CatalogProductDetail(platform, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(deps.Cart, logg))
			r.Delete("/", controllers.CartClear(deps.Cart, logg))
			r.Post("/items", controllers.CartAddItem(deps.Cart, logg))
			r.Put("/items/{productId}", controllers.CartSetQuantity(deps.Cart, logg))
			r.Post("/items/{productId}/increment", controllers.CartIncrement(deps.Cart, logg))
			r.Post("/items/{productId}/decrement", controllers.CartDecrement(deps.Cart, logg))
			r.Delete("/items/{productId}", controllers.CartRemoveItem(deps.Cart, logg))
			r.Post("/checkout", controllers.CartCheckout(deps.Cart, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.OrderList(platform, logg))
			r.Get("/{orderId}", controllers.OrderDetail(platform, logg))
			r.Post("/{orderId}/cancel", controllers.OrderCancel(platform, logg))
		})

		r.Get("/ledger", controllers.CustomerLedger(platform, logg))

		r.Route("/complaints", func(r chi.Router) {
			r.Get("/", controllers.TicketList(platform, logg))
			r.Post("/", controllers.TicketCreate(platform, logg))
		})
	})

	r.Route("/api/rep/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.RequireRole(string(pkgAuth.RoleRep), logg))

		r.Route("/routes", func(r chi.Router) {
			r.Get("/", controllers.RepRoutes(platform, logg))
			r.Get("/{routeId}/visits", controllers.RepRouteVisits(platform, logg))
		})
		r.Route("/visits", func(r chi.Router) {
			r.Get("/{visitId}", controllers.RepVisitDetail(platform, logg))
			r.Post("/{visitId}/check-in", controllers.RepVisitCheckIn(platform, logg))
			r.Post("/{visitId}/complete", controllers.RepVisitComplete(platform, logg))
		})
		r.Get("/customers", controllers.RepCustomers(platform, logg))

		r.Route("/draft", func(r chi.Router) {
			r.Get("/", controllers.DraftFetch(deps.Draft, logg))
			r.Delete("/", controllers.DraftClear(deps.Draft, logg))
			r.Put("/customer", controllers.DraftSetCustomer(deps.Draft, logg))
			r.Post("/items", controllers.DraftAddItem(deps.Draft, logg))
			r.Put("/items/{productId}", controllers.DraftSetQuantity(deps.Draft, logg))
			r.Delete("/items/{productId}", controllers.DraftRemoveItem(deps.Draft, logg))
			r.Post("/submit", controllers.DraftSubmit(deps.Draft, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.OrderList(platform, logg))
			r.Get("/{orderId}", controllers.OrderDetail(platform, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.RequireRole(string(pkgAuth.RoleAdmin), logg))

		r.Route("/products", func(r chi.Router) {
			r.Post("/", controllers.AdminProductCreate(platform, logg))
			r.Put("/{productId}", controllers.AdminProductUpdate(platform, logg))
			r.Delete("/{productId}", controllers.AdminProductDelete(platform, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.OrderList(platform, logg))
			r.Get("/{orderId}", controllers.OrderDetail(platform, logg))
			r.Put("/{orderId}/status", controllers.AdminOrderStatus(platform, logg))
			r.Put("/{orderId}/reject", controllers.AdminOrderReject(platform, logg))
		})

		r.Route("/payments", func(r chi.Router) {
			r.Get("/", controllers.AdminPaymentList(platform, logg))
			r.Post("/", controllers.AdminPaymentRecord(platform, logg))
			r.Post("/{paymentId}/verify", controllers.AdminPaymentVerify(platform, logg))
		})

		r.Get("/customers/{customerId}/ledger", controllers.AdminCustomerLedger(platform, logg))

		r.Route("/customers/{customerId}/cart", func(r chi.Router) {
			r.Get("/", controllers.AdminCartFetch(deps.Cart, logg))
			r.Delete("/", controllers.AdminCartClear(deps.Cart, logg))
			r.Post("/items", controllers.AdminCartAddItem(deps.Cart, logg))
			r.Put("/items/{productId}", controllers.AdminCartSetQuantity(deps.Cart, logg))
			r.Post("/items/{productId}/increment", controllers.AdminCartIncrement(deps.Cart, logg))
			r.Post("/items/{productId}/decrement", controllers.AdminCartDecrement(deps.Cart, logg))
			r.Delete("/items/{productId}", controllers.AdminCartRemoveItem(deps.Cart, logg))
		})

		r.Route("/complaints", func(r chi.Router) {
			r.Get("/", controllers.TicketList(platform, logg))
			r.Put("/{ticketId}/status", controllers.AdminTicketStatus(platform, logg))
		})
	})

	return r
}
