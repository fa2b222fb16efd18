package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"storefront-api/internal/cache"
	"storefront-api/internal/client"
	"storefront-api/internal/config"
	"storefront-api/internal/pkg/logger"
	"storefront-api/internal/repository"
	"storefront-api/internal/server"
	"storefront-api/internal/service"
	"syscall"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Environment.Name, cfg.Log.Level)
	if err != nil {
		fmt.Printf("Failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// prices go out as JSON numbers, as storefront clients expect
	decimal.MarshalJSONWithoutQuotes = true

	ctx := context.Background()

	db, err := client.InitDBClient(cfg.Database)
	if err != nil {
		log.Fatal("database init failed", "driver", cfg.Database.Driver, "error", err)
	}

	var cartCache cache.CartCache = cache.NopCache{}
	rdb, err := client.InitRedisClient(ctx, cfg.Redis)
	if err != nil {
		log.Fatal("redis init failed", "addr", cfg.Redis.Addr, "error", err)
	}
	if rdb != nil {
		defer rdb.Close()
		cartCache = cache.NewRedisCache(rdb, cfg.CartCache.TTL)
		log.Info("cart cache enabled", "addr", cfg.Redis.Addr)
	}

	productRepo := repository.NewProductRepository(db)
	variantRepo := repository.NewVariantRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	if cfg.SeedCatalog {
		if err := productRepo.Seed(ctx); err != nil {
			log.Fatal("seed catalog failed", "error", err)
		}
		log.Info("catalog seeded")
	}

	srv := server.NewServer(
		cfg.HTTP, log, db,
		service.NewVariantService(productRepo, variantRepo),
		service.NewCartService(db, log, cartRepo, cartCache),
		service.NewOrderService(db, orderRepo),
		service.NewCatalogService(productRepo, variantRepo),
	)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	log.Info("starting HTTP server", "addr", serverAddr, "environment", cfg.Environment.Name)
	go func() {
		if err := srv.Start(serverAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Info("signal received, starting graceful shutdown")

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, cfg.HTTP.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}
}
