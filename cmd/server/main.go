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

	"studyflow-backend/internal/config"
	"studyflow-backend/internal/database"
	"studyflow-backend/internal/handlers"
	"studyflow-backend/internal/middleware"
	"studyflow-backend/internal/repository"
	"studyflow-backend/internal/router"
	"studyflow-backend/internal/services"
	"studyflow-backend/internal/websocket"
	"studyflow-backend/internal/worker"
)

func main() {
	log.Println("🚀 Starting StudyFlow Backend...")

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

	// ──── Step 3: Initialize Redis Clients ────
	redisClients, err := database.NewRedisClients(cfg.RedisURL)
	if err != nil {
		log.Fatalf("✗ Redis connection failed: %v", err)
	}
	defer redisClients.Close()
	log.Println("✓ Redis connected")

	// ──── Step 4: Run Database Migrations ────
	if err := database.RunMigrations(pool, "migrations"); err != nil {
		log.Fatalf("✗ Database migration failed: %v", err)
	}
	log.Println("✓ Database migrations applied")

	// ──── Initialize Repositories ────
	userRepo := repository.NewUserRepo(pool)
	scheduleRepo := repository.NewScheduleRepo(pool)
	dailyRepo := repository.NewDailyScheduleRepo(pool)
	pomodoroRepo := repository.NewPomodoroRepo(pool)
	jobRepo := repository.NewJobRepo(pool)

	// ──── Initialize Services ────
	jwtAuth := middleware.NewJWTAuth(cfg.JWTSecret)
	emailService := services.NewEmailService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom, cfg.FrontendURL)
	authService := services.NewAuthService(userRepo, redisClients.Queue, jwtAuth)
	spreadsheetService := services.NewSpreadsheetService()
	scheduleService := services.NewScheduleService(scheduleRepo, spreadsheetService)
	plannerService := services.NewPlannerService(dailyRepo, scheduleRepo)

	suggestionsService, err := services.NewSuggestionsService(cfg.GeminiAPIKey)
	if err != nil {
		log.Fatalf("✗ Gemini client initialization failed: %v", err)
	}
	defer suggestionsService.Close()
	if suggestionsService.Enabled() {
		log.Println("✓ Gemini suggestions enabled")
	} else {
		log.Println("⚠ Gemini suggestions disabled (no API key)")
	}

	// ──── Initialize Handlers ────
	authHandler := handlers.NewAuthHandler(authService)
	scheduleHandler := handlers.NewScheduleHandler(scheduleService, jobRepo, redisClients.Queue, cfg.StoragePath)
	plannerHandler := handlers.NewPlannerHandler(plannerService, scheduleService, suggestionsService)
	pomodoroHandler := handlers.NewPomodoroHandler(pomodoroRepo, redisClients.Queue)
	dashboardHandler := handlers.NewDashboardHandler(pool, dailyRepo, pomodoroRepo)

	// ──── Step 5: Start Job Worker Pool ────
	workerPool := worker.NewPool(redisClients.Queue, scheduleService, jobRepo, cfg.WorkerCount)
	workerPool.Start()
	log.Printf("✓ Worker pool started (%d goroutines)", cfg.WorkerCount)

	// ──── Step 6: Start Reminder Scheduler ────
	reminderService := services.NewReminderService(userRepo, dailyRepo, scheduleRepo, emailService)
	if err := reminderService.Start(); err != nil {
		log.Fatalf("✗ Reminder scheduler failed to start: %v", err)
	}
	log.Println("✓ Reminder scheduler started")

	// ──── Step 7: Start WebSocket Hub ────
	wsHub := websocket.NewHub(redisClients.PubSub, cfg.JWTSecret)
	log.Println("✓ WebSocket hub started")

	// ──── Step 8: Start HTTP Server ────
	r := router.New(
		jwtAuth,
		authHandler,
		scheduleHandler,
		plannerHandler,
		pomodoroHandler,
		dashboardHandler,
		wsHub,
		cfg.FrontendURL,
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
		workerPool.Stop()
		reminderService.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ StudyFlow Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api/v1", cfg.Port)
	log.Printf("  WS:  ws://localhost:%s/api/v1/ws", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
