package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"studyflow-backend/internal/handlers"
	"studyflow-backend/internal/middleware"
	"studyflow-backend/internal/websocket"
)

func New(
	jwtAuth *middleware.JWTAuth,
	authHandler *handlers.AuthHandler,
	scheduleHandler *handlers.ScheduleHandler,
	plannerHandler *handlers.PlannerHandler,
	pomodoroHandler *handlers.PomodoroHandler,
	dashboardHandler *handlers.DashboardHandler,
	wsHub *websocket.Hub,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// Auth rate limiter (10 req/min per IP)
	authLimiter := middleware.NewRateLimiter(10, time.Minute)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// ──── Auth Routes (public) ────
		r.Route("/auth", func(r chi.Router) {
			r.Use(authLimiter.Middleware)
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)

			// Logout requires auth
			r.Group(func(r chi.Router) {
				r.Use(jwtAuth.Middleware)
				r.Post("/logout", authHandler.Logout)
			})
		})

		// ──── User Routes ────
		r.Route("/user", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Get("/me", authHandler.Me)
			r.Put("/reminders", authHandler.SetReminders)
		})

		// ──── Schedule Import Routes ────
		r.Route("/schedules", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Post("/upload", scheduleHandler.Upload)
			r.Post("/", scheduleHandler.CreateFromRows)
			r.Get("/", scheduleHandler.List)
			r.Get("/{id}", scheduleHandler.Get)
			r.Get("/{id}/grid", scheduleHandler.GetGrid)
			r.Delete("/{id}", scheduleHandler.Delete)
		})

		// ──── Daily Planner Routes ────
		r.Route("/planner", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Get("/slots", plannerHandler.GetSlots)
			r.Get("/suggestions", plannerHandler.Suggest)
			r.Post("/days", plannerHandler.ComposeDay)
			r.Get("/days/{date}", plannerHandler.GetDay)
			r.Patch("/days/{date}/activities/{activityID}", plannerHandler.UpdateActivityStatus)
		})

		// ──── Pomodoro Routes ────
		r.Route("/pomodoro", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Post("/sessions", pomodoroHandler.Start)
			r.Post("/sessions/{id}/heartbeat", pomodoroHandler.Heartbeat)
			r.Post("/sessions/{id}/stop", pomodoroHandler.Stop)
		})

		// ──── Dashboard Routes ────
		r.Route("/dashboard", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Get("/stats", dashboardHandler.Stats)
		})

		// ──── Job Routes ────
		r.Route("/jobs", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Get("/{id}", scheduleHandler.GetJob)
		})

		// ──── WebSocket ────
		r.Get("/ws", wsHub.HandleWebSocket)
	})

	return r
}
