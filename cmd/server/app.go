package main

import (
	"context"
	"net/http"

	"github.com/azizkreidie-wq/AKBROS-FACTORY-RETAIL-SOLUTION/auth"
	"github.com/azizkreidie-wq/AKBROS-FACTORY-RETAIL-SOLUTION/internal/config"
	"github.com/azizkreidie-wq/AKBROS-FACTORY-RETAIL-SOLUTION/internal/handlers"
	"github.com/azizkreidie-wq/AKBROS-FACTORY-RETAIL-SOLUTION/internal/logging"
	"github.com/azizkreidie-wq/AKBROS-FACTORY-RETAIL-SOLUTION/internal/policy"
	"github.com/azizkreidie-wq/AKBROS-FACTORY-RETAIL-SOLUTION/internal/services"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App is the main application handler.
type App struct {
	handler  http.Handler
	branches *services.BranchService
}

// NewApp wires the access gate, the services and the HTTP routes.
func NewApp(conn *gorm.DB, cfg *config.Config, log *zap.Logger) *App {
	g := policy.NewAccessGate()
	customers := services.NewCustomerService(conn)
	prices := services.NewPriceBookService(conn, g)
	branches := services.NewBranchService(conn, g, log.Named("branches"))
	svc := handlers.Services{
		Branches:  branches,
		Invoices:  services.NewInvoiceService(conn, g, customers, prices, log.Named("invoices")),
		Orders:    services.NewOrderService(conn, g, log.Named("orders")),
		Customers: customers,
		Prices:    prices,
	}
	if cfg.App.SessionSecret == "" && !cfg.App.Dev {
		log.Warn("SESSION_SECRET is empty, using the development secret")
	}
	routerCfg := handlers.NewRouterConfig(svc, auth.NewSessions(cfg.App.SessionSecret), cfg.App.AdminPasscode, log.Named("http"))
	return &App{handler: logging.Middleware(log.Named("access"), routerCfg.Handler()), branches: branches}
}

// EnsureSlots provisions the missing branch slots.
func (a *App) EnsureSlots(ctx context.Context) error {
	return a.branches.EnsureSlots(ctx)
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.handler.ServeHTTP(w, r)
}
