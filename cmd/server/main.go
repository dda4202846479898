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

	"vocabox-backend/internal/config"
	"vocabox-backend/internal/database"
	"vocabox-backend/internal/handlers"
	"vocabox-backend/internal/middleware"
	"vocabox-backend/internal/repository"
	"vocabox-backend/internal/router"
	"vocabox-backend/internal/services"
)

func main() {
	log.Println("🚀 Starting Vocabox Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize PostgreSQL Connection Pool ────
	pool, err := database.NewPostgresPool(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("✗ PostgreSQL connection failed: %v", err)
	}
	defer pool.Close()
	log.Println("✓ PostgreSQL connected")

	// ──── Step 3: Initialize Redis ────
	redisClient, err := database.NewRedisClient(cfg.RedisURL)
	if err != nil {
		log.Fatalf("✗ Redis connection failed: %v", err)
	}
	defer redisClient.Close()
	log.Println("✓ Redis connected")

	// ──── Step 4: Run Database Migrations ────
	if err := database.RunMigrations(pool, "migrations"); err != nil {
		log.Fatalf("✗ Database migration failed: %v", err)
	}
	log.Println("✓ Database migrations applied")

	// ──── Initialize Repositories ────
	studyStatusRepo := repository.NewStudyStatusRepo(pool)
	wordRepo := repository.NewWordRepo(pool)

	// ──── Initialize Services ────
	dictionaryService, err := services.NewDictionaryService(cfg.GoogleAPIKey, cfg.GeminiConcurrentReqs, redisClient)
	if err != nil {
		log.Fatalf("✗ Dictionary service initialization failed: %v", err)
	}
	defer dictionaryService.Close()
	log.Println("✓ Dictionary synthesis client initialized")

	ctx := context.Background()
	visionService, err := services.NewVisionService(ctx)
	if err != nil {
		log.Fatalf("✗ Vision client initialization failed: %v", err)
	}
	defer visionService.Close()

	speechService, err := services.NewSpeechService(ctx)
	if err != nil {
		log.Fatalf("✗ Speech client initialization failed: %v", err)
	}
	defer speechService.Close()
	log.Println("✓ Vision and Speech clients initialized")

	jwtAuth := middleware.NewJWTAuth(cfg.JWTSecret)

	// ──── Initialize Handlers ────
	studyHandler := handlers.NewStudyHandler(studyStatusRepo, wordRepo)
	bookmarkHandler := handlers.NewBookmarkHandler(studyStatusRepo)
	progressHandler := handlers.NewProgressHandler(studyStatusRepo)
	dictionaryHandler := handlers.NewDictionaryHandler(dictionaryService, cfg.DefaultTargetLang)
	mediaHandler := handlers.NewMediaHandler(visionService, speechService)

	// ──── Step 5: Start HTTP Server ────
	r := router.New(
		jwtAuth,
		studyHandler,
		bookmarkHandler,
		progressHandler,
		dictionaryHandler,
		mediaHandler,
		cfg.AllowedOrigin,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	log.Printf("✓ Vocabox Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api/v1", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
