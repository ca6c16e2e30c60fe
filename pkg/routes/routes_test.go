package routes_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anuragsharanjuspay/jaf-agent-builder/pkg/routes"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func okHandler(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}
}

func TestBuild_RegisterRoute(t *testing.T) {
	sys := routes.New(testLogger())
	sys.RegisterRoute(routes.Route{Method: "GET", Pattern: "/healthz", Handler: okHandler("ok")})

	handler := sys.Build()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/healthz", nil))

	if rec.Code != 200 || rec.Body.String() != "ok" {
		t.Errorf("GET /healthz = %d %q, want 200 ok", rec.Code, rec.Body.String())
	}
}

func TestBuild_RegisterGroup(t *testing.T) {
	sys := routes.New(testLogger())
	sys.RegisterGroup(routes.Group{
		Prefix: "/api/tools",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: okHandler("list")},
			{Method: "GET", Pattern: "/{id}", Handler: okHandler("find")},
		},
	})

	handler := sys.Build()

	tests := []struct {
		path string
		want string
	}{
		{"/api/tools", "list"},
		{"/api/tools/abc", "find"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest("GET", tt.path, nil))

			if rec.Code != 200 || rec.Body.String() != tt.want {
				t.Errorf("GET %s = %d %q, want 200 %q", tt.path, rec.Code, rec.Body.String(), tt.want)
			}
		})
	}
}

func TestBuild_NestedGroups(t *testing.T) {
	sys := routes.New(testLogger())
	sys.RegisterGroup(routes.Group{
		Prefix: "/api",
		Children: []routes.Group{
			{
				Prefix: "/agents",
				Routes: []routes.Route{
					{Method: "POST", Pattern: "", Handler: okHandler("created")},
				},
			},
		},
	})

	handler := sys.Build()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("POST", "/api/agents", nil))

	if rec.Code != 200 || rec.Body.String() != "created" {
		t.Errorf("POST /api/agents = %d %q, want 200 created", rec.Code, rec.Body.String())
	}
}

func TestBuild_MethodMismatch(t *testing.T) {
	sys := routes.New(testLogger())
	sys.RegisterRoute(routes.Route{Method: "POST", Pattern: "/api/tools", Handler: okHandler("created")})

	handler := sys.Build()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("DELETE", "/api/tools", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("DELETE /api/tools = %d, want 405", rec.Code)
	}
}

func TestGroupsAndRoutesAccessors(t *testing.T) {
	sys := routes.New(testLogger())
	sys.RegisterRoute(routes.Route{Method: "GET", Pattern: "/one", Handler: okHandler("")})
	sys.RegisterGroup(routes.Group{Prefix: "/two"})

	if len(sys.Routes()) != 1 {
		t.Errorf("len(Routes()) = %d, want 1", len(sys.Routes()))
	}
	if len(sys.Groups()) != 1 {
		t.Errorf("len(Groups()) = %d, want 1", len(sys.Groups()))
	}
}
