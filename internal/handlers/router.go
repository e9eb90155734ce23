package handlers

import (
	"net/http"

	"github.com/azizkreidie-wq/AKBROS-FACTORY-RETAIL-SOLUTION/auth"
	"github.com/azizkreidie-wq/AKBROS-FACTORY-RETAIL-SOLUTION/httpx"
	"github.com/azizkreidie-wq/AKBROS-FACTORY-RETAIL-SOLUTION/internal/services"
	"go.uber.org/zap"
)

// Services bundles the core services the HTTP layer drives.
type Services struct {
	Branches  *services.BranchService
	Invoices  *services.InvoiceService
	Orders    *services.OrderService
	Customers *services.CustomerService
	Prices    *services.PriceBookService
}

// RouterConfig holds the configured handlers of the application.
type RouterConfig struct {
	Sessions *auth.Sessions

	AuthHandler    *AuthHandler
	BranchHandler  *BranchHandler
	InvoiceHandler *InvoiceHandler
	OrderHandler   *OrderHandler
	LookupHandler  *LookupHandler
}

// NewRouterConfig builds every handler from the services.
func NewRouterConfig(svc Services, sessions *auth.Sessions, adminPasscode string, log *zap.Logger) *RouterConfig {
	return &RouterConfig{
		Sessions:       sessions,
		AuthHandler:    NewAuthHandler(sessions, svc.Branches, adminPasscode, log),
		BranchHandler:  NewBranchHandler(svc.Branches, log),
		InvoiceHandler: NewInvoiceHandler(svc.Invoices, log),
		OrderHandler:   NewOrderHandler(svc.Orders, log),
		LookupHandler:  NewLookupHandler(svc.Prices, svc.Customers, log),
	}
}

// Register mounts all routes on mux. Everything except health and login
// requires a session; per-resource access is decided by the services.
func (c *RouterConfig) Register(mux *http.ServeMux) {
	protect := func(h http.HandlerFunc) http.Handler { return auth.RequireAuth(h) }

	// Public
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	ah := c.AuthHandler
	mux.HandleFunc("POST /login/factory", ah.FactoryLogin)
	mux.HandleFunc("POST /login/branches/{id}", ah.BranchLogin)
	mux.HandleFunc("POST /logout", ah.Logout)

	// Branches
	bh := c.BranchHandler
	mux.Handle("GET /branches", protect(bh.List))
	mux.Handle("GET /branches/{id}", protect(bh.View))
	mux.Handle("POST /branches/{id}", protect(bh.Update))

	// Invoices
	ih := c.InvoiceHandler
	mux.Handle("POST /invoices", protect(ih.Create))
	mux.Handle("GET /invoices/{id}", protect(ih.View))
	mux.Handle("POST /invoices/{id}/header", protect(ih.SaveHeader))
	mux.Handle("POST /invoices/{id}/items", protect(ih.AddItem))
	mux.Handle("POST /invoices/{id}/items/{item_id}/delete", protect(ih.DeleteItem))
	mux.Handle("POST /invoices/{id}/recalculate", protect(ih.Recalculate))
	mux.Handle("POST /invoices/{id}/finalize", protect(ih.Finalize))
	mux.Handle("POST /invoices/{id}/delete", protect(ih.Delete))
	mux.Handle("POST /invoices/{id}/payments", protect(ih.RecordPayment))

	// Orders
	oh := c.OrderHandler
	mux.Handle("GET /orders", protect(oh.List))
	mux.Handle("POST /orders", protect(oh.Create))
	mux.Handle("GET /orders/export.xlsx", protect(oh.Export))
	mux.Handle("GET /orders/{id}", protect(oh.View))
	mux.Handle("POST /orders/{id}", protect(oh.Update))
	mux.Handle("POST /orders/{id}/delete", protect(oh.Delete))
	mux.Handle("POST /orders/{id}/items", protect(oh.AddItem))
	mux.Handle("POST /orders/{id}/items/{item_id}/delete", protect(oh.DeleteItem))

	// Lookups
	lh := c.LookupHandler
	mux.Handle("GET /price-book", protect(lh.PriceBook))
	mux.Handle("GET /customers", protect(lh.Customer))
}

// Handler returns the mux wrapped in the session middleware.
func (c *RouterConfig) Handler() http.Handler {
	mux := http.NewServeMux()
	c.Register(mux)
	return c.Sessions.Middleware(mux)
}
