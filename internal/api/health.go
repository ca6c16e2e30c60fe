package api

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/anuragsharanjuspay/jaf-agent-builder/pkg/handlers"
	"github.com/anuragsharanjuspay/jaf-agent-builder/pkg/lifecycle"
	"github.com/anuragsharanjuspay/jaf-agent-builder/pkg/routes"
)

// healthRoutes exposes liveness and readiness probes. Liveness answers as
// soon as the process serves HTTP; readiness requires completed startup
// hooks and a responsive database.
func healthRoutes(lc *lifecycle.Coordinator, db *sql.DB) routes.Group {
	return routes.Group{
		Prefix:      "",
		Tags:        []string{"Health"},
		Description: "Service health probes",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/healthz", Handler: func(w http.ResponseWriter, r *http.Request) {
				handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
			}},
			{Method: "GET", Pattern: "/readyz", Handler: func(w http.ResponseWriter, r *http.Request) {
				if !lc.Ready() {
					handlers.RespondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "starting"})
					return
				}

				ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
				defer cancel()

				if err := db.PingContext(ctx); err != nil {
					handlers.RespondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "database unavailable"})
					return
				}
				handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
			}},
		},
	}
}
