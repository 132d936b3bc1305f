package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterOptions tunes cross-cutting router behaviour.
type RouterOptions struct {
	AllowedOrigins []string
	RateLimit      int
}

// Routes constructs the chi router containing all endpoints. Auth, health,
// and metrics are public; everything else requires a bearer access token.
func (a *API) Routes(opts RouterOptions) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	allowed := opts.AllowedOrigins
	if len(allowed) == 0 {
		allowed = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowed,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           int((10 * time.Minute).Seconds()),
	}))

	limit := opts.RateLimit
	if limit <= 0 {
		limit = 100
	}
	r.Use(httprate.Limit(limit, time.Minute))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method("GET", "/metrics", promhttp.Handler())

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", a.handleRegister)
		r.Post("/login", a.handleLogin)
		r.Post("/refresh", a.handleRefresh)
	})

	r.Group(func(r chi.Router) {
		r.Use(a.requireAuth)

		r.Route("/todos", func(r chi.Router) {
			r.Get("/", a.handleListTodos)
			r.Post("/", a.handleCreateTodo)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", a.handleGetTodo)
				r.Put("/", a.handleUpdateTodo)
				r.Delete("/", a.handleDeleteTodo)
				r.Get("/tasks", a.handleListTasks)
				r.Post("/tasks", a.handleCreateTask)
			})
		})
		r.Patch("/tasks/{id}", a.handlePatchTask)
		r.Delete("/tasks/{id}", a.handleDeleteTask)

		r.Post("/invite", a.handleInvite)
		r.Get("/invites", a.handleListInvites)
		r.Post("/invites/{id}/respond", a.handleRespondInvite)
		r.Get("/shared-todos", a.handleSharedTodos)
	})

	return r
}
