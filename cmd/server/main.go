package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fittrack/fitness-tracker/internal/api"
	"fittrack/fitness-tracker/internal/config"
	"fittrack/fitness-tracker/internal/jobs"
	"fittrack/fitness-tracker/internal/payment"
	"fittrack/fitness-tracker/internal/repository/mongo"
	"fittrack/fitness-tracker/internal/service"
	"fittrack/fitness-tracker/internal/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	log.Println("Starting Fitness Tracker Server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Println("Configuration loaded.")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to MongoDB: %v", err)
	}
	defer func() {
		log.Println("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Println("Database connection established.")

	// --- Ensure Indexes ---
	log.Println("Ensuring database indexes...")
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureUserIndexes(ctx, appDB.Collection("users"))
		mongo.EnsureTrainerIndexes(ctx, appDB.Collection("trainers"))
		mongo.EnsureClassIndexes(ctx, appDB.Collection("classes"))
		mongo.EnsurePaymentIndexes(ctx, appDB.Collection("payments"))
		log.Println("Index creation process completed.")
	}()

	// --- Initialize Storage & Gateway ---
	log.Println("Initializing media storage...")
	mediaStorage, err := storage.NewS3Storage(cfg.S3)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize S3 storage: %v", err)
	}

	log.Println("Initializing payment gateway...")
	gateway, err := payment.NewStripeGateway(cfg.Stripe)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize payment gateway: %v", err)
	}

	// --- Initialize Repositories ---
	log.Println("Initializing repositories...")
	userRepo := mongo.NewMongoUserRepository(appDB)
	trainerRepo := mongo.NewMongoTrainerRepository(appDB)
	classRepo := mongo.NewMongoClassRepository(appDB)
	paymentRepo := mongo.NewMongoPaymentRepository(appDB)
	feedbackRepo := mongo.NewMongoFeedbackRepository(appDB)
	reviewRepo := mongo.NewMongoReviewRepository(appDB)
	forumRepo := mongo.NewMongoForumRepository(appDB)
	newsletterRepo := mongo.NewMongoNewsletterRepository(appDB)

	// --- Initialize Services ---
	log.Println("Initializing services...")
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	userService := service.NewUserService(userRepo)
	trainerService := service.NewTrainerService(trainerRepo, userRepo, classRepo, feedbackRepo)
	bookingService := service.NewBookingService(trainerRepo, paymentRepo, gateway, cfg.Stripe.Currency, cfg.Booking.ReservationTTL)
	catalogService := service.NewCatalogService(classRepo, trainerRepo)
	communityService := service.NewCommunityService(reviewRepo, forumRepo, newsletterRepo, feedbackRepo)

	// --- Background Jobs ---
	sweeper := jobs.NewReservationSweeper(bookingService, cfg.Booking.SweepInterval)
	if err := sweeper.Start(); err != nil {
		log.Fatalf("FATAL: Failed to start reservation sweeper: %v", err)
	}
	defer sweeper.Stop()

	// --- Initialize Gin Engine ---
	router := gin.Default()

	// --- Setup Routes ---
	log.Println("Setting up API routes...")
	api.SetupRoutes(
		router,
		cfg.JWT.Secret,
		authService,
		userService,
		trainerService,
		bookingService,
		catalogService,
		communityService,
		mediaStorage,
	)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Server listening on %s", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: Could not listen on %s: %v", cfg.Server.Address, err)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("FATAL: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
