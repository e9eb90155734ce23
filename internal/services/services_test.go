package services

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/azizkreidie-wq/AKBROS-FACTORY-RETAIL-SOLUTION/internal/config"
	"github.com/azizkreidie-wq/AKBROS-FACTORY-RETAIL-SOLUTION/internal/db"
	"github.com/azizkreidie-wq/AKBROS-FACTORY-RETAIL-SOLUTION/internal/policy"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	db        *gorm.DB
	branches  *BranchService
	customers *CustomerService
	prices    *PriceBookService
	invoices  *InvoiceService
	orders    *OrderService
}

var fixedNow = time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC)

func newFixture(t *testing.T) *fixture {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	conn, err := db.Open(config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
	}, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, db.Migrate(conn))
	require.NoError(t, db.Seed(conn))

	g := policy.NewAccessGate()
	log := zap.NewNop()
	f := &fixture{db: conn}
	f.branches = NewBranchService(conn, g, log)
	f.customers = NewCustomerService(conn)
	f.prices = NewPriceBookService(conn, g)
	f.invoices = NewInvoiceService(conn, g, f.customers, f.prices, log)
	f.invoices.now = func() time.Time { return fixedNow }
	f.orders = NewOrderService(conn, g, log)
	f.orders.now = func() time.Time { return fixedNow }
	return f
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

var ctx = context.Background()
