// Package router assembles the HTTP routes and middlewares.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	internalhttp "github.com/dropDatabas3/hellopost/internal/http"
	"github.com/dropDatabas3/hellopost/internal/http/controllers"
	mw "github.com/dropDatabas3/hellopost/internal/http/middlewares"
)

// Deps contains everything the router mounts.
type Deps struct {
	Accounts *controllers.AccountsController
	Posts    *controllers.PostsController
	Health   *controllers.HealthController

	CORSAllowedOrigins []string
	MetricsHandler     http.Handler // mounted at /metrics when non-nil
}

// New builds the router: request-id → recover → CORS → access log →
// metrics, then the controller routes.
func New(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(mw.WithRequestID())
	r.Use(mw.WithRecover())
	if len(deps.CORSAllowedOrigins) > 0 {
		r.Use(mw.WithCORS(deps.CORSAllowedOrigins))
	}
	r.Use(mw.WithAccessLog())
	r.Use(internalhttp.WithMetrics(routePattern))

	if deps.Health != nil {
		deps.Health.Register(r)
	}
	if deps.Accounts != nil {
		deps.Accounts.Register(r)
	}
	if deps.Posts != nil {
		deps.Posts.Register(r)
	}
	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	return r
}

// routePattern returns the chi route template (e.g. /v1/accounts/{id}) so
// metric labels stay low-cardinality.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		return rctx.RoutePattern()
	}
	return ""
}
