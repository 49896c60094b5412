package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/dinoai/dinoai-go/internal/config"
	"github.com/dinoai/dinoai-go/internal/gemini"
	"github.com/dinoai/dinoai-go/internal/handler"
	"github.com/dinoai/dinoai-go/internal/middleware"
	"github.com/dinoai/dinoai-go/internal/prompt"
	"github.com/dinoai/dinoai-go/internal/repository"
	"github.com/dinoai/dinoai-go/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := repository.NewDB(cfg.DatabaseDSN)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := repository.RunMigrations(db); err != nil {
		slog.Error("migrations failed", "error", err)
		os.Exit(1)
	}

	templates, err := prompt.Load(cfg.PromptsDir)
	if err != nil {
		slog.Warn("prompt templates unavailable, generation endpoints degraded", "error", err)
	}

	// Without an API key the tutor endpoint reports the backend as
	// unavailable and the vocabulary pipeline serves the default payload.
	var gen service.Generator
	if cfg.GeminiAPIKey != "" {
		client, err := gemini.New(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			slog.Warn("gemini client setup failed, generation disabled", "error", err)
		} else {
			gen = client
		}
	} else {
		slog.Warn("GEMINI_API_KEY not set, generation disabled")
	}

	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	vocabRepo := repository.NewVocabularyRepository(db)

	authHandler := handler.NewAuthHandler(
		service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiry))
	sessionHandler := handler.NewSessionHandler(
		service.NewSessionService(userRepo, sessionRepo))
	messageHandler := handler.NewMessageHandler(
		service.NewMessageService(userRepo, sessionRepo, messageRepo))
	promptHandler := handler.NewPromptHandler(
		service.NewTutorService(userRepo, templates, gen, cfg.GeminiTimeout))
	vocabHandler := handler.NewVocabularyHandler(
		service.NewVocabularyService(userRepo, messageRepo, vocabRepo, templates, gen, cfg.GeminiTimeout))

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(5, 10))
		r.Post("/auth/signup", authHandler.HandleSignup)
		r.Post("/auth/login", authHandler.HandleLogin)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth(cfg.JWTSecret))

		r.Get("/auth/me", authHandler.HandleMe)
		r.Put("/auth/update", authHandler.HandleUpdate)
		r.Delete("/auth/delete", authHandler.HandleDelete)

		r.Post("/api/sessions/start", sessionHandler.HandleStart)
		r.Post("/api/sessions/end/{sessionId}", sessionHandler.HandleEnd)
		r.Post("/api/sessions/feedback/{sessionId}", sessionHandler.HandleFeedback)
		r.Get("/api/sessions/user/{userId}", sessionHandler.HandleListByUser)
		r.Get("/api/sessions/{sessionId}", sessionHandler.HandleGet)
		r.Delete("/api/sessions/{sessionId}", sessionHandler.HandleDelete)

		r.Get("/api/messages/session/{sessionId}", messageHandler.HandleListBySession)
		r.Post("/api/messages", messageHandler.HandleCreate)

		r.Post("/api/prompts/generate", promptHandler.HandleGenerate)

		r.Get("/api/vocabulary/daily/{userId}", vocabHandler.HandleDaily)
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
