// Package api wires the HTTP surface: router, middleware chain and handler
// registration.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"zerim-todo/internal/api/handlers"
	"zerim-todo/internal/api/middleware"
	"zerim-todo/internal/config"
	"zerim-todo/internal/events"
	"zerim-todo/internal/logging"
	"zerim-todo/internal/store"
	"zerim-todo/internal/tasks"
	"zerim-todo/internal/templates"
	"zerim-todo/internal/timetracking"
)

// Request bodies larger than this are rejected up front.
const maxRequestBytes = 10 << 20

// Deps carries everything the router needs.
type Deps struct {
	Config       *config.Config
	Logger       logging.Logger
	Store        *store.MemoryStore
	Tasks        *tasks.Service
	Templates    *templates.Service
	TimeTracking *timetracking.Service
	Hub          *events.Hub
}

// NewRouter builds the HTTP handler tree.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestSize(maxRequestBytes))
	r.Use(middleware.NewLoggingMiddleware(deps.Logger).Handler())
	r.Use(middleware.NewCORSMiddleware(deps.Config.CORS.AllowedOrigins).Handler())
	r.Use(chimiddleware.Heartbeat("/ping"))

	taskHandler := handlers.NewTaskHandler(deps.Tasks, deps.Hub, deps.Logger)
	categoryHandler := handlers.NewCategoryHandler(deps.Store, deps.Logger)
	templateHandler := handlers.NewTemplateHandler(deps.Templates, deps.Hub, deps.Logger)
	timeHandler := handlers.NewTimeTrackingHandler(deps.TimeTracking, deps.Logger)
	analyticsHandler := handlers.NewAnalyticsHandler(
		deps.Store,
		deps.Config.Analytics.DefaultDailyDays,
		deps.Config.Analytics.MaxDailyDays,
		deps.Logger,
	)
	dataHandler := handlers.NewDataHandler(deps.Store, deps.Logger)

	r.Route("/api", func(r chi.Router) {
		r.Use(chimiddleware.Timeout(time.Duration(deps.Config.Server.WriteTimeout) * time.Second))

		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", taskHandler.List)
			r.Post("/", taskHandler.Create)
			r.Put("/bulk", taskHandler.BulkUpdate)
			r.Delete("/bulk", taskHandler.BulkDelete)
			r.Post("/clear-completed", taskHandler.ClearCompleted)
			r.Get("/{id}", taskHandler.Get)
			r.Put("/{id}", taskHandler.Update)
			r.Delete("/{id}", taskHandler.Delete)
			r.Post("/{id}/subtasks", taskHandler.AddSubtask)
			r.Put("/{id}/subtasks/{subtaskID}", taskHandler.UpdateSubtask)
			r.Delete("/{id}/subtasks/{subtaskID}", taskHandler.DeleteSubtask)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", categoryHandler.List)
			r.Post("/", categoryHandler.Create)
			r.Put("/{id}", categoryHandler.Update)
			r.Delete("/{id}", categoryHandler.Delete)
		})

		r.Route("/templates", func(r chi.Router) {
			r.Get("/", templateHandler.List)
			r.Post("/", templateHandler.Create)
			r.Post("/{id}/use", templateHandler.Use)
			r.Delete("/{id}", templateHandler.Delete)
		})

		r.Route("/time-entries", func(r chi.Router) {
			r.Get("/", timeHandler.ListEntries)
			r.Post("/", timeHandler.StartEntry)
			r.Put("/{id}/stop", timeHandler.StopEntry)
			r.Delete("/{id}", timeHandler.DeleteEntry)
		})

		r.Route("/pomodoro", func(r chi.Router) {
			r.Get("/active", timeHandler.ActiveSession)
			r.Post("/start", timeHandler.StartSession)
			r.Put("/{id}/complete", timeHandler.CompletePhase)
			r.Put("/{id}/stop", timeHandler.StopSession)
		})

		r.Route("/analytics", func(r chi.Router) {
			r.Get("/", analyticsHandler.Summary)
			r.Get("/daily", analyticsHandler.Daily)
			r.Get("/productivity-score", analyticsHandler.ProductivityScore)
			r.Get("/time-distribution", analyticsHandler.TimeDistribution)
		})

		r.Get("/export", dataHandler.Export)
		r.Post("/import", dataHandler.Import)
		r.Post("/reset", dataHandler.Reset)
		r.Get("/health", dataHandler.Health)
	})

	// The event feed lives outside the /api timeout: connections are
	// long-lived by design.
	if deps.Hub != nil {
		wsHandler := handlers.NewWebSocketHandler(deps.Hub, nil, deps.Logger)
		r.Get("/ws", wsHandler.Serve)
	}

	return r
}
