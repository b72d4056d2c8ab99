package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gammazero/workerpool"
	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"socialsync/clients"
	"socialsync/clients/twitter"
	"socialsync/config"
	"socialsync/db"
	"socialsync/handlers"
	"socialsync/middleware"
	"socialsync/services"
	"socialsync/services/auditlog"
	"socialsync/services/comments"
	"socialsync/services/trackedposts"
	"socialsync/services/txmanager"
	"socialsync/usecases/aggregation"
)

func main() {
	if err := run(); err != nil {
		log.Printf("❌ Fatal error: %v", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	// Initialize error alert middleware
	alertMiddleware := middleware.NewErrorAlertMiddleware(middleware.AlertConfig{
		WebhookURL:  cfg.AlertWebhookURL,
		Environment: cfg.Environment,
		AppName:     "socialsync",
	})

	// Initialize database connection
	dbConn, err := db.NewConnection(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer dbConn.Close()

	// Initialize repositories with shared connection
	trackedPostsRepo := db.NewPostgresTrackedPostsRepository(dbConn, cfg.DatabaseSchema)
	ingestedCommentsRepo := db.NewPostgresIngestedCommentsRepository(dbConn, cfg.DatabaseSchema)
	aggregationLogRepo := db.NewPostgresAggregationLogRepository(dbConn, cfg.DatabaseSchema)

	// Initialize transaction manager
	txManager := txmanager.NewTransactionManager(dbConn)

	trackedPostsService := trackedposts.NewTrackedPostsService(trackedPostsRepo)
	commentsService := comments.NewCommentsService(ingestedCommentsRepo)
	auditLogService := auditlog.NewAuditLogService(aggregationLogRepo)

	twitterClient := twitter.NewClient(
		clients.NewHTTPTransport(),
		cfg.TwitterConfig.SearchBaseURL,
		cfg.TwitterConfig.APIBaseURL,
	)

	aggregationUseCase := aggregation.NewAggregationUseCase(
		twitterClient,
		trackedPostsService,
		commentsService,
		auditLogService,
		txManager,
		cfg.FetchWorkers,
	)

	aggregationHandler := handlers.NewAggregationHTTPHandler(
		aggregationUseCase,
		trackedPostsService,
		commentsService,
		auditLogService,
	)

	// Create a new router
	router := mux.NewRouter()

	apiRouter := router.PathPrefix("/api").Subrouter()
	aggregationHandler.SetupEndpoints(apiRouter)

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"status":"ok"}`)); err != nil {
			log.Printf("❌ Failed to write health check response: %v", err)
		}
	}).Methods("GET")

	// Periodic aggregation over all tracked posts. Each post runs as its own
	// task so one post's failure never blocks the others.
	if cfg.AggregationInterval > 0 {
		aggregationTicker := time.NewTicker(cfg.AggregationInterval)
		go func() {
			for range aggregationTicker.C {
				_ = alertMiddleware.WrapBackgroundTask("AggregateTrackedPosts", func() error {
					return aggregateAllPosts(aggregationUseCase, trackedPostsService, alertMiddleware, cfg.PassWorkers)
				})()
			}
		}()
		defer aggregationTicker.Stop()
	} else {
		log.Printf("⚠️ AGGREGATION_INTERVAL is 0 - background aggregation disabled")
	}

	// Setup CORS middleware
	allowedOrigins := strings.Split(cfg.CORSAllowedOrigins, ",")
	for i, origin := range allowedOrigins {
		allowedOrigins[i] = strings.TrimSpace(origin)
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	// Setup and handle graceful shutdown
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           alertMiddleware.HTTPMiddleware(c.Handler(router)),
		ReadHeaderTimeout: 30 * time.Second,
	}

	return handleGracefulShutdown(server)
}

func aggregateAllPosts(
	aggregationUseCase aggregation.AggregationUseCaseInterface,
	trackedPostsService services.TrackedPostsService,
	alertMiddleware *middleware.ErrorAlertMiddleware,
	passWorkers int,
) error {
	ctx := context.Background()
	postIDs, err := trackedPostsService.ListTrackedPostIDs(ctx)
	if err != nil {
		return err
	}

	log.Printf("📋 Scheduled aggregation tick - %d tracked posts", len(postIDs))

	wp := workerpool.New(passWorkers)
	for _, postID := range postIDs {
		postID := postID
		wp.Submit(func() {
			_ = alertMiddleware.WrapBackgroundTask("AggregatePost "+postID, func() error {
				return aggregationUseCase.RunPass(ctx, postID)
			})()
		})
	}
	wp.StopWait()

	return nil
}

func handleGracefulShutdown(server *http.Server) error {
	// Channel to listen for interrupt signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Start server in a goroutine
	go func() {
		log.Printf("✅ Listening on http://localhost%s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("❌ Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	<-stop
	log.Printf("🛑 Shutdown signal received, cleaning up...")

	// Create a deadline for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Shutdown server gracefully
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("❌ Server shutdown error: %v", err)
		return err
	}

	log.Printf("✅ Server stopped gracefully")
	return nil
}
