package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nwachie/skillswap/backend/internal/adapters/database"
	"github.com/nwachie/skillswap/backend/internal/adapters/events"
	"github.com/nwachie/skillswap/backend/internal/api/handlers"
	"github.com/nwachie/skillswap/backend/internal/api/routes"
	"github.com/nwachie/skillswap/backend/internal/application/services"
	"github.com/nwachie/skillswap/backend/internal/domain/providers"
	"github.com/nwachie/skillswap/backend/internal/infrastructure/clients/postgres"
	"github.com/nwachie/skillswap/backend/internal/infrastructure/clients/redis"
	"github.com/nwachie/skillswap/backend/internal/infrastructure/observability"
	"github.com/nwachie/skillswap/backend/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, getEnv("APP_ENV", "development"))

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	var shutdown func(context.Context) error
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err = observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Printf("Warning: Failed to set up OpenTelemetry: %v", err)
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Printf("Error shutting down OpenTelemetry: %v", err)
				}
			}()
			log.Println("OpenTelemetry initialized successfully")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatalf("Failed to initialize metrics: %v", err)
	}

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize PostgreSQL client: %v", err)
	}
	defer pgClient.Close()
	log.Println("PostgreSQL client initialized successfully")

	// Initialize Redis client. The service works without it; only the
	// real-time event stream is lost.
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Printf("Warning: Failed to initialize Redis client: %v", err)
	} else {
		defer redisClient.Close()
		log.Println("Redis client initialized successfully")
	}

	// Initialize adapters
	dealAdapter := database.NewDealAdapter(pgClient)
	_ = database.NewSkillAdapter(pgClient)
	messageAdapter := database.NewMessageAdapter(pgClient)
	reviewAdapter := database.NewReviewAdapter(pgClient)
	profileAdapter := database.NewProfileAdapter(pgClient)
	unitOfWork := database.NewUnitOfWork(pgClient)

	// Initialize event bus for real-time updates
	var eventBus providers.EventBus
	if redisClient != nil {
		eventBus = events.NewRedisEventBus(redisClient)
		log.Println("Event bus initialized successfully")
	} else {
		log.Println("Event bus disabled (Redis not available)")
	}

	// Initialize services
	dealService := services.NewDealService(dealAdapter, unitOfWork, eventBus, metrics)
	messageService := services.NewMessageService(messageAdapter, dealAdapter, eventBus)
	reviewService := services.NewReviewService(reviewAdapter, dealAdapter, unitOfWork)
	notificationService := services.NewNotificationService(messageAdapter, dealAdapter)
	profileService := services.NewProfileService(profileAdapter, profileAdapter)

	// Initialize handlers
	dealHandler := handlers.NewDealHandler(dealService)
	messageHandler := handlers.NewMessageHandler(messageService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	profileHandler := handlers.NewProfileHandler(profileService)

	var sseHandler *handlers.SSEHandler
	if eventBus != nil {
		sseHandler = handlers.NewSSEHandler(eventBus)
	}

	// Set up router
	router := routes.NewRouter(
		dealHandler,
		messageHandler,
		reviewHandler,
		notificationHandler,
		profileHandler,
		sseHandler,
		metrics,
	)
	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := cfg.Server.ServerAddr()
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", serverAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	// Close event bus
	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			log.Printf("Error closing event bus: %v", err)
		}
	}

	log.Println("Server stopped")
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
