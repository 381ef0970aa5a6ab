package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"

	"github.com/user-directory/engine/internal/api/handlers"
	mw "github.com/user-directory/engine/internal/api/middleware"
)

type Dependencies struct {
	UsersHandler  *handlers.UsersHandler
	HealthHandler *handlers.HealthHandler
	Limiter       *mw.Limiter
}

func NewRouter(dep Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(mw.RequestID)
	r.Use(mw.Recovery)
	r.Use(mw.Logging)
	r.Use(mw.CORS)
	r.Use(chimid.Compress(5))

	r.Get("/healthz", dep.HealthHandler.Liveness)
	r.Get("/readyz", dep.HealthHandler.Readiness)

	r.Route("/api/users", func(ur chi.Router) {
		if dep.Limiter != nil {
			ur.Use(dep.Limiter.Middleware)
		}
		ur.Get("/", dep.UsersHandler.List)
		ur.Get("/{id}", dep.UsersHandler.Get)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false,"error":{"code":"not_found","message":"route not found"}}`))
	})

	return r
}
