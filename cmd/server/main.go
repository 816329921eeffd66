package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/nats-io/nats.go"

	"github.com/shopinger/shopinger/internal"
	"github.com/shopinger/shopinger/internal/bootstrap"
	"github.com/shopinger/shopinger/internal/events"
	"github.com/shopinger/shopinger/internal/handler"
	"github.com/shopinger/shopinger/internal/middleware"
	"github.com/shopinger/shopinger/internal/repository"
	"github.com/shopinger/shopinger/internal/router"
	"github.com/shopinger/shopinger/internal/routes"
	"github.com/shopinger/shopinger/internal/service"
	"github.com/shopinger/shopinger/internal/telemetry"
	"github.com/shopinger/shopinger/internal/worker"
)

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Initialize database/sql connection for migrations
	logger.Info("Connecting to database...")
	sqlDB, err := sql.Open("pgx", cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	logger.Info("Database connection established")

	// Run migrations
	logger.Info("Running database migrations...")
	if err := internal.RunMigrations(sqlDB); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	// Initialize pgx connection pool for the application
	pool, err := pgxpool.New(ctx, cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}
	defer pool.Close()

	// Initialize repository
	store := repository.NewStore(pool)

	// Business metrics
	businessMetrics := telemetry.NewBusinessMetrics(cfg.Metrics.Namespace)

	// Optional NATS connection for sale events
	var publisher events.Publisher = events.NoopPublisher{}
	var natsConn *nats.Conn
	if cfg.NatsUrl != "" {
		logger.Info("Connecting to NATS...", "url", cfg.NatsUrl)
		natsConn, err = nats.Connect(cfg.NatsUrl,
			nats.MaxReconnects(-1),
			nats.ReconnectWait(2*time.Second),
		)
		if err != nil {
			return fmt.Errorf("NATS connection failed: %w", err)
		}
		defer natsConn.Drain()
		publisher = events.NewNATSPublisher(natsConn)
		logger.Info("NATS connection established")
	} else {
		logger.Warn("NATS_URL not set; sale events disabled, deliveries must be seeded manually")
	}

	// Initialize services
	inventoryService := service.NewInventoryService(store, businessMetrics, logger)
	cartService := service.NewCartService(store, businessMetrics)
	checkoutService := service.NewCheckoutService(store, publisher, businessMetrics, logger)
	receiptService := service.NewReceiptService(store)
	saleService := service.NewSaleService(store)
	supplierService := service.NewSupplierService(store)
	userService := service.NewUserService(store, logger)
	deliveryService := service.NewDeliveryService(store, businessMetrics, logger)

	// Seed the master admin account on first startup
	adminCfg := bootstrap.AdminConfig(cfg.Admin)
	if err := bootstrap.EnsureMasterAdmin(ctx, userService, &adminCfg, logger); err != nil {
		return fmt.Errorf("bootstrap failed: %w", err)
	}

	// Delivery intake worker consumes sale events
	if natsConn != nil {
		intake := worker.NewDeliveryIntake(natsConn, deliveryService, worker.Config{}, logger)
		go func() {
			if err := intake.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("delivery intake stopped", "error", err)
			}
		}()
	}

	// HTTP metrics
	metrics := middleware.NewMetrics(cfg.Metrics.Namespace)

	// Build route dependencies
	deps := routes.APIDeps{
		Inventory: handler.NewInventoryHandler(inventoryService, logger),
		Cart:      handler.NewCartHandler(cartService, logger),
		Checkout:  handler.NewCheckoutHandler(checkoutService, logger),
		Receipts:  handler.NewReceiptHandler(receiptService, saleService),
		Suppliers: handler.NewSupplierHandler(supplierService),
		Users:     handler.NewUserHandler(userService),
		Delivery:  handler.NewDeliveryHandler(deliveryService),
		Health:    handler.NewHealthHandler(pool),
	}

	// Create router and register routes
	r := router.New(
		router.Recovery(logger),
		middleware.RequestID,
		metrics.Middleware,
		middleware.MaxBodySize(),
		middleware.Timeout(),
		router.Logger(logger),
		middleware.WithRequestLogger(logger),
		router.CORS([]string{"*"}),
	)

	// Metrics endpoint (protect via firewall in production)
	r.Get("/metrics", func(w http.ResponseWriter, req *http.Request) {
		metrics.Handler().ServeHTTP(w, req)
	})

	routes.RegisterAPIRoutes(r, deps)

	// Start server with graceful shutdown
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server", "address", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	logger.Info("Server stopped")
	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
