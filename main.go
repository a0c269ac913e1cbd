// File: glowbook/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"glowbook/config"
	"glowbook/database"
	catalogRepo "glowbook/database/repository/catalog"
	couponRepo "glowbook/database/repository/coupon"
	currencyRepo "glowbook/database/repository/currency"
	giftCardRepo "glowbook/database/repository/giftcard"
	membershipRepo "glowbook/database/repository/membership"
	scheduleRepo "glowbook/database/repository/schedule"
	settingsRepo "glowbook/database/repository/settings"
	"glowbook/handlers"
	"glowbook/middleware"
	"glowbook/routes"
	"glowbook/services/quote"
	"glowbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type indexed interface {
	EnsureIndexes() error
}

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	database.InitDB()
	cache := utils.GetCacheClient()

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()
	utils.StartHealthMonitor(rootCtx, 60*time.Second, cache, database.MongoClient)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RequestID(logger))
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	// repositories.
	catalog := catalogRepo.NewMongoCatalogRepo()
	schedule := scheduleRepo.NewMongoScheduleRepo()
	memberships := membershipRepo.NewMongoMembershipRepo()
	giftCards := giftCardRepo.NewMongoGiftCardRepo()
	coupons := couponRepo.NewMongoCouponRepo()
	currencies := currencyRepo.NewCachedCurrencyRepo(
		currencyRepo.NewMongoCurrencyRepo(), cache, config.AppConfig.RateCacheTTL, logger)
	settings := settingsRepo.NewMongoSettingsRepo(config.AppConfig.BookingServiceFee)

	for _, repo := range []indexed{catalog, schedule, memberships, giftCards, coupons} {
		if err := repo.EnsureIndexes(); err != nil {
			logger.Warn("main: failed to ensure indexes", zap.Error(err))
		}
	}

	// services.
	engine := &quote.DefaultQuoteEngine{
		Catalog:            catalog,
		Availability:       schedule,
		Memberships:        memberships,
		GiftCards:          giftCards,
		Coupons:            coupons,
		Currencies:         currencies,
		Fees:               settings,
		DefaultCurrency:    config.AppConfig.DefaultCurrency,
		FallbackServiceFee: config.AppConfig.BookingServiceFee,
		Location:           config.Location(),
		Logger:             logger,
	}
	quoteHandler := handlers.NewQuoteHandler(engine, config.AppConfig.QuoteTimeout)

	handlerBundle := &handlers.HandlerBundle{
		CalculateQuote: quoteHandler.CalculateHandler,
		Health:         handlers.HealthHandler,
	}

	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}
	if err := database.CloseDB(ctx); err != nil {
		logger.Warn("main: failed to disconnect MongoDB", zap.Error(err))
	}
	if err := cache.Close(); err != nil {
		logger.Warn("main: failed to close Redis", zap.Error(err))
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
