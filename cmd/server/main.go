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

	"go.uber.org/zap"

	appbilling "github.com/kirana/backend/internal/application/billing"
	appcatalog "github.com/kirana/backend/internal/application/catalog"
	appdashboard "github.com/kirana/backend/internal/application/dashboard"
	appidentity "github.com/kirana/backend/internal/application/identity"
	"github.com/kirana/backend/internal/infrastructure/auth"
	"github.com/kirana/backend/internal/infrastructure/cache"
	"github.com/kirana/backend/internal/infrastructure/config"
	"github.com/kirana/backend/internal/infrastructure/logger"
	"github.com/kirana/backend/internal/infrastructure/persistence"
	"github.com/kirana/backend/internal/interfaces/http/handler"
	"github.com/kirana/backend/internal/interfaces/http/router"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to config directory")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	db, err := persistence.NewConnection(cfg.Database, log)
	if err != nil {
		return err
	}

	redisClient := cache.NewRedisClient(cfg.Redis)
	defer redisClient.Close()

	var idempotency cache.IdempotencyStore
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Warn("redis unreachable, using in-process idempotency store", zap.Error(err))
		idempotency = cache.NewInMemoryIdempotencyStore()
	} else {
		idempotency = cache.NewRedisIdempotencyStore(redisClient)
	}

	jwtService := auth.NewJWTService(cfg.JWT)

	storeRepo := persistence.NewGormStoreRepository(db)
	productRepo := persistence.NewGormProductRepository(db)
	billRepo := persistence.NewGormBillRepository(db)
	salesLogRepo := persistence.NewGormSalesLogRepository(db)
	txScope := persistence.NewGormTransactionScope(db)

	authService := appidentity.NewAuthService(storeRepo, jwtService, log)
	productService := appcatalog.NewProductService(productRepo, log)
	billingService := appbilling.NewService(txScope, salesLogRepo, idempotency, log)
	dashboardService := appdashboard.NewService(productRepo, billRepo, log)

	engine := router.New(router.Handlers{
		Auth:      handler.NewAuthHandler(authService, log),
		Product:   handler.NewProductHandler(productService, log),
		Bill:      handler.NewBillHandler(billingService, log),
		Dashboard: handler.NewDashboardHandler(dashboardService, log),
		System:    handler.NewSystemHandler(db, log),
	}, jwtService, log, cfg.IsProduction())

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case sig := <-quit:
		log.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	log.Info("server stopped")
	return nil
}
