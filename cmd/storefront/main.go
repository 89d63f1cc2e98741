package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dani2c/integracion-plataformas/internal/cache"
	"github.com/dani2c/integracion-plataformas/internal/checkout"
	"github.com/dani2c/integracion-plataformas/internal/config"
	"github.com/dani2c/integracion-plataformas/internal/gateway"
	"github.com/dani2c/integracion-plataformas/internal/handlers"
	"github.com/dani2c/integracion-plataformas/internal/notify"
	"github.com/dani2c/integracion-plataformas/internal/store"
	"github.com/dani2c/integracion-plataformas/pkg/logger"
	"github.com/dani2c/integracion-plataformas/pkg/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/dani2c/integracion-plataformas/docs" // Import docs for Swagger
)

// @title           Storefront API
// @version         1.0
// @description     API de la tienda: checkout con confirmación de pago, inventario por sucursal y alertas de stock bajo.

// @contact.name   API Support

// @host      localhost:8080
// @BasePath  /api

// @schemes   http https
func main() {
	cfg := config.Load()

	appLogger := logger.New("storefront", cfg.Environment)
	defer appLogger.Sync()

	appLogger.Info("🚀 Starting storefront",
		zap.String("environment", cfg.Environment),
		zap.String("port", cfg.Port),
		zap.String("gateway_mode", cfg.GatewayMode),
	)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Backing store
	db, err := store.Open(cfg.SQLitePath, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to open database", zap.Error(err))
	}
	defer db.Close()

	if cfg.SeedDemoData {
		if err := db.SeedDemo(context.Background()); err != nil {
			appLogger.Fatal("Failed to seed demo data", zap.Error(err))
		}
		appLogger.Info("Demo data seeded")
	}

	ledger := store.NewInventoryLedger(db, appLogger)
	txns := store.NewTransactionStore(db, appLogger)

	// Low-stock fanout, bridged to Kafka when brokers are configured
	var sink notify.Sink
	if len(cfg.KafkaBrokers) > 0 {
		kafkaSink, err := notify.NewKafkaSink(cfg.KafkaBrokers, cfg.KafkaTopicLowStock, cfg.KafkaClientID, appLogger)
		if err != nil {
			appLogger.Warn("Failed to initialize Kafka sink, events stay in-process", zap.Error(err))
		} else {
			defer kafkaSink.Close()
			sink = kafkaSink
			appLogger.Info("📡 Kafka sink initialized",
				zap.Strings("brokers", cfg.KafkaBrokers),
				zap.String("topic", cfg.KafkaTopicLowStock),
			)
		}
	}
	hub := notify.NewHub(sink, appLogger)

	// Payment gateway
	var gw gateway.Gateway
	switch cfg.GatewayMode {
	case "remote":
		gw = gateway.NewRemote(txns, cfg.GatewayBaseURL, cfg.GatewayCommerceCode, cfg.GatewayAPIKey,
			time.Duration(cfg.GatewayTimeoutMs)*time.Millisecond, appLogger)
	default:
		gw = gateway.NewSimulator(txns, cfg.PublicBaseURL, cfg.SimAuthCode, appLogger)
	}

	pipeline := checkout.NewService(txns, gw, hub, checkout.Config{
		LowStockThreshold:  cfg.LowStockThreshold,
		PublicBaseURL:      cfg.PublicBaseURL,
		MaxGatewayAttempts: cfg.GatewayMaxRetries,
	}, appLogger)

	readCache := cache.New(cfg, appLogger)

	checkoutHandler := handlers.NewCheckoutHandler(appLogger, pipeline)
	inventoryHandler := handlers.NewInventoryHandler(appLogger, ledger, readCache, cfg.USDRate)
	eventsHandler := handlers.NewEventsHandler(appLogger, hub)

	router := gin.New()
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RecoveryHandler(appLogger))
	router.Use(logger.GinMiddleware(appLogger))
	router.Use(middleware.RequestIDMiddleware(appLogger))
	router.Use(middleware.ErrorHandler(appLogger))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Payment flow pages sit outside /api, like the hosted gateway expects
	router.GET("/webpay/confirm", checkoutHandler.ConfirmPayment)
	router.POST("/webpay/confirm", checkoutHandler.ConfirmPayment)
	router.GET("/checkout/success", checkoutHandler.CheckoutSuccess)
	router.GET("/checkout/failure", checkoutHandler.CheckoutFailure)
	router.GET("/simulator/pay", checkoutHandler.SimulatorPay)

	api := router.Group("/api")
	{
		api.GET("/health", healthCheck)

		api.POST("/checkout/start", checkoutHandler.StartCheckout)

		api.GET("/inventory", inventoryHandler.GetInventory)
		api.POST("/sale", inventoryHandler.DirectSale)
		api.POST("/branches", inventoryHandler.AddBranch)
		api.POST("/admin/restock", inventoryHandler.Restock)
		api.POST("/convert/usd", inventoryHandler.ConvertUSD)

		api.GET("/notifications/stream", eventsHandler.Stream)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		appLogger.Info("Starting storefront server",
			zap.String("port", cfg.Port),
			zap.String("environment", cfg.Environment),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	appLogger.Info("Server exited")
}

// healthCheck godoc
// @Summary      Health check endpoint
// @Description  Verifica el estado del servicio.
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string  "Servicio operativo"
// @Router       /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "storefront",
	})
}
