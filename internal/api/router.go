package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MikeSquared-Agency/Triage/internal/config"
	"github.com/MikeSquared-Agency/Triage/internal/hermes"
	"github.com/MikeSquared-Agency/Triage/internal/oracle"
	"github.com/MikeSquared-Agency/Triage/internal/scoring"
	"github.com/MikeSquared-Agency/Triage/internal/store"
)

func NewRouter(s store.Store, h hermes.Client, o oracle.Client, calc *scoring.Calculator, cfg *config.Config, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(RateLimitMiddleware(cfg.Server.RatePerMinute))

	tasks := NewTasksHandler(s, h, calc)
	assistant := NewAssistantHandler(s, o, h, calc, cfg.Scoring.AssistantContextSize)
	explain := NewExplainHandler(s, calc)
	admin := NewAdminHandler(s)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(UserIDMiddleware)

		r.Post("/tasks", tasks.Create)
		r.Get("/tasks", tasks.List)
		r.Get("/tasks/{id}", tasks.Get)
		r.Patch("/tasks/{id}", tasks.Update)
		r.Post("/tasks/{id}/complete", tasks.Complete)
		r.Delete("/tasks/{id}", tasks.Delete)

		r.Get("/scoring/explain/{task_id}", explain.Explain)

		r.Post("/braindump", assistant.BrainDump)
		r.Post("/assistant", assistant.Chat)

		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(cfg.Server.AdminToken))
			r.Get("/stats", admin.Stats)
		})
	})

	return r
}

func NewMetricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}
