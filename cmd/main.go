// cmd/main.go
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/rs/cors"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/akira100e4/Flashcards/internal/config"
	"github.com/akira100e4/Flashcards/internal/handlers"
	"github.com/akira100e4/Flashcards/internal/middleware"
	"github.com/akira100e4/Flashcards/internal/service"
	"github.com/akira100e4/Flashcards/internal/storage"
)

func main() {
	// .env is optional; real environment variables win either way.
	_ = godotenv.Load()

	cfg, err := config.Load("configs")
	if err != nil {
		slog.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)
	slog.Info("Application starting...")

	store := storage.NewFileStore(cfg.Storage.Path, logger)

	cardService := service.NewCardService(store, cfg.App.DefaultCategory)
	studyService := service.NewStudyService(store, cfg.App.DifficultyThreshold, nil)

	cardHandler := handlers.NewCardHandler(cardService, logger)
	statsHandler := handlers.NewStatsHandler(cardService, logger)
	studyHandler := handlers.NewStudyHandler(studyService, logger)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewStructuredLogger(logger))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		ExposedHeaders:   cfg.CORS.ExposedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
	})
	r.Use(corsHandler.Handler)

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/cards", func(r chi.Router) {
			r.Get("/", cardHandler.GetCards)
			r.Post("/import", cardHandler.ImportCards)
			r.Get("/search", cardHandler.SearchCards)
			r.Get("/export", cardHandler.ExportCards)
			r.Delete("/{index}", cardHandler.DeleteCard)
			r.Post("/{index}/priority", cardHandler.TogglePriority)
		})

		r.Get("/categories", statsHandler.GetCategories)
		r.Route("/statistics", func(r chi.Router) {
			r.Get("/", statsHandler.GetStatistics)
			r.Get("/categories", statsHandler.GetCategoryStatistics)
		})

		r.Route("/study/sessions", func(r chi.Router) {
			r.Post("/", studyHandler.StartSession)
			r.Get("/{session_id}", studyHandler.GetCurrentCard)
			r.Post("/{session_id}/answer", studyHandler.SubmitAnswer)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if _, err := store.Load(r.Context()); err != nil {
			slog.ErrorContext(r.Context(), "Health check failed: could not read storage", slog.Any("error", err))
			http.Error(w, "Health check failed", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("Server listening", slog.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Could not listen on port", slog.String("port", cfg.Server.Port), slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", slog.Any("error", err))
	}
	slog.Info("Server exiting")
}

// newLogger builds the application logger: a tint handler for readable
// development output when APP_ENV=dev, JSON otherwise.
func newLogger(cfg *config.Config) *slog.Logger {
	logLevel := new(slog.LevelVar)
	switch strings.ToLower(cfg.Log.Level) {
	case "debug":
		logLevel.Set(slog.LevelDebug)
	case "info":
		logLevel.Set(slog.LevelInfo)
	case "warn", "warning":
		logLevel.Set(slog.LevelWarn)
	case "error":
		logLevel.Set(slog.LevelError)
	default:
		logLevel.Set(slog.LevelInfo)
		slog.Warn("Unknown log level in config, defaulting to INFO", slog.String("level", cfg.Log.Level))
	}

	var handler slog.Handler
	if strings.ToLower(os.Getenv("APP_ENV")) == "dev" {
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      logLevel,
			TimeFormat: time.RFC3339,
		})
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		})
	}
	return slog.New(handler)
}
