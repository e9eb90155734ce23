package db

import (
	"errors"
	"fmt"
	"time"

	"github.com/azizkreidie-wq/AKBROS-FACTORY-RETAIL-SOLUTION/internal/config"
	"github.com/azizkreidie-wq/AKBROS-FACTORY-RETAIL-SOLUTION/internal/models"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Models lists every table owned by the application, parents first.
func Models() []any {
	return []any{
		&models.Branch{},
		&models.Order{},
		&models.OrderItem{},
		&models.Invoice{},
		&models.InvoiceItem{},
		&models.InvoicePayment{},
		&models.Customer{},
		&models.PriceBookEntry{},
	}
}

// Open connects to the configured store. Postgres connections are retried
// while the server starts up.
func Open(cfg config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	logLevel := logger.Silent
	if cfg.Debug {
		logLevel = logger.Info
	}
	gcfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel)}

	switch cfg.Driver {
	case config.DriverSQLite:
		log.Info("opening sqlite database", zap.String("path", cfg.Path))
		return gorm.Open(sqlite.Open(SQLiteDSN(cfg.Path)), gcfg)
	case config.DriverPostgres:
		dsn := NormalizeDSN(cfg.DSN())
		log.Info("connecting to postgres", zap.String("dsn", MaskDSN(dsn)))
		var (
			conn *gorm.DB
			err  error
		)
		for i := 0; i < 10; i++ {
			conn, err = gorm.Open(postgres.Open(dsn), gcfg)
			if err == nil {
				break
			}
			log.Warn("database not ready, retrying", zap.Int("attempt", i+1), zap.Error(err))
			time.Sleep(2 * time.Second)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to connect database after retries: %w", err)
		}
		if pingErr := conn.Exec("SELECT 1").Error; pingErr != nil {
			return nil, fmt.Errorf("db ping failed: %w", pingErr)
		}
		return conn, nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
	}
}

// Migrate brings the schema up to date with AutoMigrate and checks that the
// core tables exist afterwards.
func Migrate(conn *gorm.DB) error {
	for _, m := range Models() {
		if err := conn.AutoMigrate(m); err != nil {
			return fmt.Errorf("automigrate %T: %w", m, err)
		}
	}
	for _, table := range []string{"branches", "orders", "invoices", "invoice_items"} {
		if !conn.Migrator().HasTable(table) {
			return errors.New("missing table after migration: " + table)
		}
	}
	return nil
}
