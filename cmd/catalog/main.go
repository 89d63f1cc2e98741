package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dani2c/integracion-plataformas/internal/catalog"
	"github.com/dani2c/integracion-plataformas/internal/config"
	"github.com/dani2c/integracion-plataformas/internal/store"
	"github.com/dani2c/integracion-plataformas/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	appLogger := logger.New("catalog", cfg.Environment)
	defer appLogger.Sync()

	appLogger.Info("🚀 Starting catalog ingestion service",
		zap.String("environment", cfg.Environment),
		zap.String("grpc_port", cfg.GRPCPort),
	)

	db, err := store.Open(cfg.SQLitePath, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to open database", zap.Error(err))
	}
	defer db.Close()

	products := store.NewProductStore(db, appLogger)
	if count, err := products.CountProducts(context.Background()); err != nil {
		appLogger.Warn("Failed to count catalog products", zap.Error(err))
	} else {
		appLogger.Info("Catalog loaded", zap.Int("products", count))
	}

	service := catalog.NewService(products, appLogger)
	server := catalog.NewServer(service, appLogger)

	go func() {
		if err := server.Serve(":" + cfg.GRPCPort); err != nil {
			appLogger.Fatal("Failed to serve gRPC", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down...")
	server.Stop()
}
