// File: creatorhub/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"creatorhub/config"
	"creatorhub/cron"
	"creatorhub/database"
	catalogRepo "creatorhub/database/repository/catalog"
	draftRepo "creatorhub/database/repository/draft"
	recordsRepo "creatorhub/database/repository/records"
	"creatorhub/handlers"
	"creatorhub/middleware"
	"creatorhub/routes"
	"creatorhub/services/booking"
	"creatorhub/services/notification"
	"creatorhub/services/payment"
	"creatorhub/services/storage"
	"creatorhub/services/tasks"
	"creatorhub/services/wizard"
	"creatorhub/utils"

	firebase "firebase.google.com/go/v4"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Firebase backs the default store and blob drivers.
	var app *firebase.App
	if config.AppConfig.StoreDriver == "firestore" || config.AppConfig.BlobDriver == "firebase" {
		var err error
		app, err = utils.FirebaseInit(ctx)
		if err != nil {
			logger.Sugar().Fatalf("main: %v", err)
		}
	}

	store, closeStore, err := database.OpenStore(ctx, app)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to open document store: %v", err)
	}
	defer closeStore()

	blobs, err := newBlobStore(ctx, app)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize blob store: %v", err)
	}

	gateway := newGateway(logger)

	// repositories.
	draftClient := utils.GetDraftCacheClient()
	drafts := draftRepo.NewRedisDraftRepo(draftClient, config.AppConfig.DraftTTL)
	rateCards := catalogRepo.NewStoreRateCardRepo(store)
	records := recordsRepo.NewStoreRecordRepo(store)

	// Creator push notifications need Firebase; without it bookings are saved silently.
	var notifier notification.NotificationService
	if app != nil {
		fcm, err := utils.MessagingClient(ctx, app)
		if err != nil {
			logger.Warn("push notifications disabled", zap.Error(err))
		} else if svc, err := notification.NewDefaultNotificationService(fcm, store); err == nil {
			notifier = svc
		}
	}

	// task queue.
	taskOpts := utils.TaskQueueRedisOpt()
	taskClient := asynq.NewClient(taskOpts)
	defer taskClient.Close()

	// services.
	bookingService := &booking.DefaultBookingService{
		Drafts:             drafts,
		RateCards:          rateCards,
		Records:            records,
		Blobs:              blobs,
		Gateway:            gateway,
		Timeouts:           &tasks.AsynqScheduler{Client: taskClient},
		Notifier:           notifier,
		Machine:            wizard.New(time.Now),
		Logger:             logger,
		ServiceCharge:      config.AppConfig.ServiceCharge,
		Currency:           config.AppConfig.Currency,
		MaxAttachmentBytes: config.AppConfig.MaxAttachmentBytes,
		PaymentTimeout:     config.AppConfig.PaymentTimeout,
	}

	worker, err := cron.InitPaymentTimeoutWorker(taskOpts, bookingService, logger)
	if err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}

	utils.StartHealthMonitor(ctx, []*redis.Client{draftClient}, store)

	bookingHandler := handlers.NewBookingHandler(bookingService, config.AppConfig.MaxAttachmentBytes)
	adminHandler := handlers.NewAdminHandler(records)
	handlerBundle := handlers.NewHandlerBundle(bookingHandler, adminHandler, handlers.HealthHandler)

	// Create the Gin router.
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))
	router.MaxMultipartMemory = config.AppConfig.MaxAttachmentBytes + (1 << 20)

	routes.RegisterRoutes(router, handlerBundle, config.AppConfig.AdminToken)

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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	worker.Shutdown()

	logger.Sugar().Info("main: server stopped gracefully")
}

func newBlobStore(ctx context.Context, app *firebase.App) (storage.BlobStore, error) {
	switch config.AppConfig.BlobDriver {
	case "cloudinary":
		return utils.Cloudinary()
	case "firebase":
		bucket, err := utils.StorageBucket(ctx, app)
		if err != nil {
			return nil, err
		}
		return storage.NewFirebaseStorageService(bucket, config.AppConfig.FirebaseBucket), nil
	}
	return nil, fmt.Errorf("unknown BLOB_DRIVER %q", config.AppConfig.BlobDriver)
}

func newGateway(logger *zap.Logger) payment.Gateway {
	switch config.AppConfig.PaymentGateway {
	case "stripe":
		logger.Info("payments via stripe")
		return payment.NewStripeGateway(config.AppConfig.StripeKey, config.AppConfig.StripePublishableKey)
	default:
		logger.Info("payments via razorpay")
		return payment.NewRazorpayGateway(config.AppConfig.RazorpayKeyID, config.AppConfig.RazorpayKeySecret)
	}
}
