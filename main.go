package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"

	"github.com/mbendary2019/Shoporia-sub001/config"
	"github.com/mbendary2019/Shoporia-sub001/cron"
	"github.com/mbendary2019/Shoporia-sub001/database"
	bookingRepo "github.com/mbendary2019/Shoporia-sub001/database/repository/booking"
	catalogRepo "github.com/mbendary2019/Shoporia-sub001/database/repository/catalog"
	"github.com/mbendary2019/Shoporia-sub001/handlers"
	"github.com/mbendary2019/Shoporia-sub001/middleware"
	"github.com/mbendary2019/Shoporia-sub001/routes"
	"github.com/mbendary2019/Shoporia-sub001/services/catalog"
	"github.com/mbendary2019/Shoporia-sub001/services/notification"
	"github.com/mbendary2019/Shoporia-sub001/services/payment"
	"github.com/mbendary2019/Shoporia-sub001/services/scheduling"
	"github.com/mbendary2019/Shoporia-sub001/services/tasks"
	"github.com/mbendary2019/Shoporia-sub001/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	utils.FirebaseInit()
	stripe.Key = config.AppConfig.StripeKey

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(cors.Default())

	// Repositories.
	bookings := bookingRepo.NewMongoBookingRepo()
	services := catalogRepo.NewMongoCatalogRepo()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := bookings.EnsureIndexes(ctx); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure booking indexes: %v", err)
	}
	cancel()

	// Collaborators.
	notificationService := &notification.FCMNotificationService{
		Client: utils.FCMClient,
		Tokens: notification.NewMongoDeviceTokenSource(),
	}
	paymentHandler := payment.NewStripePaymentHandler(logger)
	reminderQueue := tasks.NewReminderQueue()

	// The scheduling engine.
	schedulingEngine := &scheduling.DefaultSchedulingEngine{
		Repo:      bookings,
		Catalog:   services,
		Payments:  paymentHandler,
		Notifier:  notificationService,
		Reminders: reminderQueue,
		IdemCache: utils.GetIdempotencyCacheClient(),
	}

	catalogService := &catalog.DefaultCatalogService{
		Repo:     services,
		Bookings: bookings,
	}

	// Background reminder worker.
	cron.InitReminderWorker(schedulingEngine, notificationService)

	// Handlers and routes.
	routes.RegisterHealthRoute(router)
	routes.RegisterAvailabilityRoutes(router, handlers.NewAvailabilityHandler(schedulingEngine))
	routes.RegisterBookingRoutes(router, handlers.NewBookingHandler(schedulingEngine))
	routes.RegisterCatalogRoutes(router, handlers.NewServiceHandler(catalogService))

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

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
