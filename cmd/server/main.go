package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/azizkreidie-wq/AKBROS-FACTORY-RETAIL-SOLUTION/internal/config"
	"github.com/azizkreidie-wq/AKBROS-FACTORY-RETAIL-SOLUTION/internal/db"
	"github.com/azizkreidie-wq/AKBROS-FACTORY-RETAIL-SOLUTION/internal/logging"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	migrateOnlyFlag = flag.Bool("migrate-only", false, "Run DB migrations and exit")
	seedOnlyFlag    = flag.Bool("seed-only", false, "Provision branch slots and exit")
)

func main() {
	flag.Parse()

	// Load environment variables from .env file
	_ = godotenv.Load()
	cfg := config.Load()

	log, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	dbConn, err := db.Open(cfg.Database, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	if *migrateOnlyFlag {
		if err := migrate(dbConn, cfg, log); err != nil {
			log.Fatal("migration failed", zap.Error(err))
		}
		log.Info("migrations completed successfully")
		return
	}

	app := NewApp(dbConn, cfg, log)

	if *seedOnlyFlag {
		if err := app.EnsureSlots(context.Background()); err != nil {
			log.Fatal("seeding failed", zap.Error(err))
		}
		log.Info("seeding completed successfully")
		return
	}

	if err := migrate(dbConn, cfg, log); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}
	if err := app.EnsureSlots(context.Background()); err != nil {
		log.Fatal("seeding failed", zap.Error(err))
	}
	if cfg.App.AdminPasscode == "" {
		log.Warn("ADMIN_PASSCODE is empty, factory login is disabled")
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      app,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("server starting", zap.String("port", cfg.Server.Port), zap.Bool("dev", cfg.App.Dev), zap.String("db_driver", cfg.Database.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("error during shutdown", zap.Error(err))
	}
	log.Info("server stopped gracefully")
}

// migrate applies the SQL migrations on postgres when MIGRATIONS=1 and falls
// back to AutoMigrate otherwise.
func migrate(conn *gorm.DB, cfg *config.Config, log *zap.Logger) error {
	if cfg.App.Migrations && cfg.Database.Driver == config.DriverPostgres {
		log.Info("applying SQL migrations", zap.String("dir", db.DefaultMigrationsDir))
		return db.RunSQLMigrations(cfg.Database.URL(), db.DefaultMigrationsDir)
	}
	return db.Migrate(conn)
}
