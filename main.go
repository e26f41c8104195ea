package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"randevu/config"
	"randevu/cron"
	"randevu/database"
	appointmentRepoPkg "randevu/database/repository/appointment"
	availabilityRepoPkg "randevu/database/repository/availability"
	reviewRepoPkg "randevu/database/repository/review"
	shopRepoPkg "randevu/database/repository/shop"
	userRepoPkg "randevu/database/repository/user"
	"randevu/handlers"
	"randevu/routes"
	appointmentSvc "randevu/services/appointment"
	"randevu/services/booking"
	"randevu/services/notification"
	"randevu/services/rating"
	reviewSvc "randevu/services/review"
	"randevu/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.FirebaseInit()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// repositories.
	availabilityRepo := availabilityRepoPkg.NewMongoAvailabilityRepo()
	appointmentRepo := appointmentRepoPkg.NewMongoAppointmentRepo()
	reviewRepo := reviewRepoPkg.NewMongoReviewRepo()
	shopRepo := shopRepoPkg.NewMongoShopRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()

	// services.
	notificationService := notification.NewDefaultNotificationService(userRepo, logger)

	lifecycleService := &appointmentSvc.DefaultLifecycleService{
		Repo:     appointmentRepo,
		Notifier: notificationService,
		Logger:   logger,
	}

	bookingService := &booking.DefaultBookingService{
		Availability: availabilityRepo,
		Appointments: appointmentRepo,
		Shops:        shopRepo,
		Lifecycle:    lifecycleService,
		Notifier:     notificationService,
		Cache:        utils.GetCacheClient(),
		Logger:       logger,
		HorizonDays:  config.AppConfig.ScheduleHorizonDays,
	}

	ratingAggregator := rating.NewDefaultAggregator(reviewRepo, shopRepo, logger)

	queueClient := cron.NewQueueClient()
	reviewService := &reviewSvc.DefaultReviewService{
		Reviews:      reviewRepo,
		Appointments: appointmentRepo,
		Queue:        queueClient,
		Aggregator:   ratingAggregator,
		Logger:       logger,
	}

	// Background workers: rating recomputes plus the reconciliation and
	// completion sweeps.
	completer := &cron.Completer{
		Repo:      appointmentRepo,
		Lifecycle: lifecycleService,
		Logger:    logger,
	}
	cron.InitWorker(ratingAggregator, bookingService, completer)
	scheduler := cron.StartScheduler(queueClient)

	utils.StartHealthMonitor(utils.GetCacheClient(), database.MongoClient)

	// Assemble the handler bundle and register routes.
	handlerBundle := &handlers.HandlerBundle{
		Booking:     handlers.NewBookingHandler(bookingService, logger),
		Appointment: handlers.NewAppointmentHandler(lifecycleService, appointmentRepo, logger),
		Review:      handlers.NewReviewHandler(reviewService, logger),
		Shop:        handlers.NewShopHandler(shopRepo),
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

	scheduler.Stop()
	queueClient.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
