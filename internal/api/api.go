// Package api assembles domain systems, routes and middleware into the
// service's HTTP handler.
package api

import (
	"net/http"

	"github.com/anuragsharanjuspay/jaf-agent-builder/internal/agents"
	"github.com/anuragsharanjuspay/jaf-agent-builder/internal/config"
	"github.com/anuragsharanjuspay/jaf-agent-builder/internal/executions"
	"github.com/anuragsharanjuspay/jaf-agent-builder/internal/infrastructure"
	"github.com/anuragsharanjuspay/jaf-agent-builder/internal/tools"
	"github.com/anuragsharanjuspay/jaf-agent-builder/pkg/middleware"
	"github.com/anuragsharanjuspay/jaf-agent-builder/pkg/routes"
)

// NewHandler builds the complete HTTP handler: domain routes, health probes
// and the middleware chain.
func NewHandler(cfg *config.Config, infra *infrastructure.Infrastructure) http.Handler {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime)

	rts := routes.New(runtime.Logger)
	rts.RegisterGroup(tools.NewHandler(domain.Tools, runtime.Logger, runtime.Pagination).Routes())
	rts.RegisterGroup(agents.NewHandler(domain.Agents, runtime.Logger, runtime.Pagination).Routes())
	rts.RegisterGroup(executions.NewHandler(domain.Executions, runtime.Logger).Routes())
	rts.RegisterGroup(healthRoutes(runtime.Lifecycle, runtime.Database.DB()))

	handler := rts.Build()
	handler = maxBody(cfg.Server.MaxBodyBytes())(handler)
	handler = middleware.CORS(middleware.CORSOptions{
		Origins:     cfg.CORS.Origins,
		Methods:     cfg.CORS.Methods,
		Headers:     cfg.CORS.Headers,
		Credentials: cfg.CORS.Credentials,
	})(handler)
	handler = middleware.TrimSlash()(handler)
	handler = middleware.Logger(runtime.Logger)(handler)

	return handler
}

// maxBody caps request body reads; oversized bodies fail at decode time with
// a 400 rather than exhausting memory.
func maxBody(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil && limit > 0 {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}
