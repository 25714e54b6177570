package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/EAniwa/legacylancers-sub004/config"
	"github.com/EAniwa/legacylancers-sub004/cron"
	"github.com/EAniwa/legacylancers-sub004/database"
	availabilityRepo "github.com/EAniwa/legacylancers-sub004/database/repository/availability"
	bookingRepo "github.com/EAniwa/legacylancers-sub004/database/repository/booking"
	"github.com/EAniwa/legacylancers-sub004/handlers"
	"github.com/EAniwa/legacylancers-sub004/middleware"
	"github.com/EAniwa/legacylancers-sub004/routes"
	"github.com/EAniwa/legacylancers-sub004/services/scheduling"
	"github.com/EAniwa/legacylancers-sub004/services/tasks"
	"github.com/EAniwa/legacylancers-sub004/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	defer database.CloseDB()
	utils.InitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.RateLimitMiddleware())

	// Repositories.
	avRepo := availabilityRepo.NewMongoAvailabilityRepo()
	bkRepo := bookingRepo.NewMongoBookingRepo()

	// Booking state changes flow onto the task queue.
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer asynqClient.Close()
	eventSink := &tasks.AsynqEventSink{Client: asynqClient}

	// The scheduling engine.
	engine := &scheduling.DefaultEngine{
		AvailabilityRepo: avRepo,
		BookingRepo:      bkRepo,
		Events:           eventSink,
	}

	// Background worker: event delivery and the completion sweep.
	cron.InitBookingWorker(engine)

	// Handlers.
	handlerBundle := &routes.HandlerBundle{
		Availability: handlers.NewAvailabilityHandler(avRepo, bkRepo),
		Booking:      handlers.NewBookingHandler(engine),
		Scheduling:   handlers.NewSchedulingHandler(engine, utils.GetCacheClient()),
	}

	routes.RegisterRoutes(router, handlerBundle)
	utils.StartHealthMonitor(utils.GetCacheClient(), database.MongoClient)

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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
