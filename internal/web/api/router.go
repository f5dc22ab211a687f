package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/docflow-io/docflow/internal/doctype"
	"github.com/docflow-io/docflow/internal/events"
	"github.com/docflow-io/docflow/internal/permission"
	"github.com/docflow-io/docflow/internal/store"
	"github.com/docflow-io/docflow/internal/web/middleware"
	"github.com/docflow-io/docflow/internal/web/ratelimit"
	"github.com/docflow-io/docflow/internal/web/response"
)

// Config assembles the pieces the HTTP surface is generated from
type Config struct {
	Registry *doctype.Registry
	Store    *store.Store
	Perms    *permission.Evaluator
	Bus      *events.Bus
	Log      *zap.Logger

	Auth    middleware.AuthConfig
	Limiter ratelimit.Limiter
	CORS    *middleware.CORSConfig
}

// HealthPath is exempt from authentication
const HealthPath = "/api/health"

// NewRouter builds the full HTTP handler: one route group per registered
// document type, plus health and event streaming endpoints. Routes are
// derived from the registry at startup, so the registry should be frozen
// before this is called.
func NewRouter(config Config) (http.Handler, error) {
	log := config.Log
	if log == nil {
		log = zap.NewNop()
	}

	config.Auth.SkipPaths = append(config.Auth.SkipPaths, HealthPath)

	chain := middleware.NewChain(
		middleware.RequestID(),
		middleware.Recovery(log),
		middleware.Logging(log),
	)
	if config.CORS != nil {
		chain.Use(middleware.CORS(*config.CORS))
	}
	chain.Use(middleware.Auth(config.Auth))
	if config.Limiter != nil {
		chain.Use(middleware.RateLimit(config.Limiter))
	}

	mux := chi.NewRouter()

	mux.Get(HealthPath, healthHandler)
	mux.Get("/api/events", eventsHandler(config.Bus, log))

	for _, name := range config.Registry.Names() {
		ops, err := config.Store.Ops(name)
		if err != nil {
			return nil, err
		}

		h := &resourceHandler{ops: ops, perms: config.Perms}
		dt := ops.DocType()

		mux.Route("/api/"+routeSegment(name), func(r chi.Router) {
			r.Get("/", h.list)
			r.Post("/", h.create)
			r.Get("/{id}", h.get)
			r.Put("/{id}", h.update)
			r.Delete("/{id}", h.delete)

			if dt.Submittable {
				r.Post("/{id}/submit", h.submit)
				r.Post("/{id}/cancel", h.cancel)
				r.Post("/{id}/amend", h.amend)
			}
		})

		log.Debug("registered routes",
			zap.String("doctype", name),
			zap.Bool("submittable", dt.Submittable))
	}

	return chain.Then(mux), nil
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// routeSegment maps a document type name to its URL path segment.
// "SalesOrder" serves at /api/salesorder.
func routeSegment(name string) string {
	return strings.ToLower(name)
}
