package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/andeslabs/culqi-gateway/culqi"
	"github.com/andeslabs/culqi-gateway/handler"
	"github.com/andeslabs/culqi-gateway/infra/config"
	"github.com/andeslabs/culqi-gateway/infra/logger"
	"github.com/andeslabs/culqi-gateway/infra/logstore"
	"github.com/andeslabs/culqi-gateway/infra/middle"
	"github.com/andeslabs/culqi-gateway/infra/opensearch"
	"github.com/andeslabs/culqi-gateway/infra/response"
	"github.com/andeslabs/culqi-gateway/payment"
	"github.com/andeslabs/culqi-gateway/router"
)

func main() {
	// Load Env
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg := config.GetAppConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Config Error: %v", err)
	}

	logger.InitGlobalLogger(logger.SystemLoggerConfig{
		MinLevel:    logger.LogLevel(cfg.LoggingLevel),
		Service:     "culqi-gateway",
		Environment: cfg.AppEnv,
	})

	// Audit store: SQLite always, OpenSearch when enabled.
	store, err := logstore.NewSQLiteStore(cfg.Database)
	if err != nil {
		log.Fatalf("Database Error: %v", err)
	}
	defer store.Close()

	if err := store.Migrate(context.Background()); err != nil {
		log.Fatalf("Migration Error: %v", err)
	}

	auditStores := culqi.MultiStore{store}
	var searcher handler.AuditSearcher
	if cfg.EnableIndexing && cfg.OpenSearchURL != "" {
		osClient, err := opensearch.NewClient(cfg)
		if err != nil {
			log.Printf("Failed to initialize OpenSearch client: %v", err)
			log.Println("Continuing without OpenSearch indexing...")
		} else {
			osStore := opensearch.NewStore(osClient)
			auditStores = append(auditStores, osStore)
			searcher = osStore
			log.Println("OpenSearch audit indexing initialized")
		}
	}

	client, err := culqi.NewClient(culqi.Options{
		SecretKey:   cfg.CulqiSecretKey,
		BaseURL:     cfg.CulqiBaseURL,
		DevEmail:    cfg.DevEmail,
		AppEnv:      cfg.AppEnv,
		LogRequests: cfg.LogRequests,
	}, auditStores)
	if err != nil {
		log.Fatalf("Culqi Client Error: %v", err)
	}

	paymentService := payment.NewCardPaymentService(client, store, config.App().Validator, cfg.CapturePayments)

	logsHandler := handler.NewLogsHandler(store, searcher)
	paymentsHandler := handler.NewPaymentsHandler(paymentService)
	healthHandler := handler.NewHealthHandler(store.DB(), client)

	// Chi Define Routes
	r := chi.NewRouter()

	// Basic Middleware
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middle.RequestLoggingMiddleware())
	r.Use(middle.PanicRecoveryMiddleware())

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Origin", "X-Requested-With"},
		ExposedHeaders:   []string{"Link", "Content-Length", "Access-Control-Allow-Origin"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check endpoint
	r.Get("/health", healthHandler.CheckHealth)

	// API routes
	router.Routes(r, logsHandler, paymentsHandler)

	// Not Found
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		_ = response.WriteJSON(w, http.StatusNotFound, response.Response{Success: false, Message: "Not Found"})
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           r,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 60 * time.Second,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatal(err.Error())
		}
	}()

	log.Println("API is running on", cfg.Port)

	<-ctx.Done()

	log.Println("Shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown Error: %v", err)
	}
}
