package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"friendsnap-backend/internal/config"
	"friendsnap-backend/internal/handlers"
	"friendsnap-backend/internal/middleware"
	"friendsnap-backend/internal/repository"
	"friendsnap-backend/internal/services"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func Run() {
	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Setup logger
	setupLogger(cfg.Log.Level)

	// Connect to document store
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to document store")
	}
	defer client.Disconnect(context.Background())

	if err := client.Ping(ctx, nil); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping document store")
	}
	log.Info().Msg("Document store connection established")

	db := client.Database(cfg.Mongo.Database)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	photoRepo := repository.NewPhotoRepository(db)
	requestRepo := repository.NewFriendRequestRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	reportRepo := repository.NewReportRepository(db)

	// Initialize media storage
	mediaStore, err := services.NewS3MediaStore(
		context.Background(),
		cfg.AWS.Region,
		cfg.AWS.S3Bucket,
		cfg.AWS.AccessKey,
		cfg.AWS.SecretKey,
		cfg.AWS.Endpoint,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create media store")
	}

	// Push notifications are optional
	var notifier services.Notifier
	if cfg.APNS.CertFile != "" {
		apnsNotifier, err := services.NewAPNSNotifier(
			cfg.APNS.CertFile,
			cfg.APNS.CertPassphrase,
			cfg.APNS.Topic,
			cfg.APNS.Production,
		)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create push notifier")
		}
		notifier = apnsNotifier
	}

	classifier := services.NewHTTPClassifier(
		cfg.Classifier.Endpoint,
		cfg.Classifier.APIKey,
		cfg.Classifier.Model,
	)

	// Initialize services
	wsHub := services.NewWSHub()
	authService := services.NewAuthService(userRepo, cfg.JWT.Secret)
	photoService := services.NewPhotoService(photoRepo, userRepo, mediaStore, classifier)
	matchingService := services.NewMatchingService(userRepo, photoRepo, requestRepo)
	friendService := services.NewFriendService(requestRepo, userRepo, notifier)
	messageService := services.NewMessageService(messageRepo, userRepo, wsHub, notifier)
	safetyService := services.NewSafetyService(userRepo, reportRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	photoHandler := handlers.NewPhotoHandler(photoService)
	friendHandler := handlers.NewFriendHandler(matchingService, friendService)
	messageHandler := handlers.NewMessageHandler(messageService)
	safetyHandler := handlers.NewSafetyHandler(safetyService)
	wsHandler := handlers.NewWebSocketHandler(wsHub, authService)

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(corsMiddleware)

	// Routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public routes
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Get("/avatars", handlers.Avatars)
		r.Get("/health", handlers.Health)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(authService))
			r.Get("/auth/me", authHandler.Me)
			r.Post("/push-token", authHandler.PushToken)

			r.Post("/photos", photoHandler.Upload)
			r.Get("/photos/mine", photoHandler.Mine)
			r.Get("/photos/feed", photoHandler.Feed)
			r.Delete("/photos/{photo_id}", photoHandler.Delete)

			r.Get("/friends/suggestions", friendHandler.Suggestions)
			r.Post("/friends/request/{user_id}", friendHandler.SendRequest)
			r.Get("/friends/requests", friendHandler.PendingRequests)
			r.Post("/friends/accept/{request_id}", friendHandler.Accept)
			r.Get("/friends/list", friendHandler.List)

			r.Post("/messages", messageHandler.Send)
			r.Get("/messages/{user_id}", messageHandler.Conversation)
			r.Get("/conversations", messageHandler.Conversations)

			r.Post("/block", safetyHandler.Block)
			r.Post("/unblock/{user_id}", safetyHandler.Unblock)
			r.Post("/report", safetyHandler.Report)
			r.Get("/admin/reports", safetyHandler.PendingReports)
			r.Post("/admin/reports/{report_id}/resolve", safetyHandler.ResolveReport)
		})
	})

	// WebSocket route
	r.Get("/ws", wsHandler.HandleWebSocket)

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("host", cfg.Server.Host).
			Int("port", cfg.Server.Port).
			Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	// Shutdown HTTP server
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// setupLogger configures zerolog logger
func setupLogger(level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// corsMiddleware handles CORS
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
