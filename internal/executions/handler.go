package executions

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/anuragsharanjuspay/jaf-agent-builder/pkg/handlers"
	"github.com/anuragsharanjuspay/jaf-agent-builder/pkg/routes"
)

// Handler provides HTTP handlers for agent execution.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a new executions HTTP handler.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger,
	}
}

// Routes returns the route group configuration for execution endpoints.
// History answers on both /execute and /executions; the former is the
// original contract, the latter reads better.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/api/agents",
		Tags:        []string{"Executions"},
		Description: "Agent execution and history",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/{id}/execute", Handler: h.Execute},
			{Method: "GET", Pattern: "/{id}/execute", Handler: h.History},
			{Method: "GET", Pattern: "/{id}/executions", Handler: h.History},
		},
	}
}

// Execute handles POST /api/agents/{id}/execute. The streaming flag in the
// body switches the response to server-sent events.
func (h *Handler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	var req ExecuteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	if req.Input == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrEmptyInput)
		return
	}

	if req.Streaming {
		h.stream(w, r, id, req)
		return
	}

	result, err := h.sys.Execute(r.Context(), id, req)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) stream(w http.ResponseWriter, r *http.Request, id uuid.UUID, req ExecuteRequest) {
	chunks, err := h.sys.ExecuteStream(r.Context(), id, req)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError,
			fmt.Errorf("streaming not supported"))
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	for chunk := range chunks {
		switch {
		case chunk.Err != nil:
			frame, _ := json.Marshal(map[string]string{"error": chunk.Err.Error()})
			fmt.Fprintf(w, "data: %s\n\n", frame)
			flusher.Flush()
			return
		case chunk.Done:
			fmt.Fprint(w, "data: [DONE]\n\n")
			flusher.Flush()
			return
		default:
			frame, _ := json.Marshal(map[string]string{"content": chunk.Content})
			fmt.Fprintf(w, "data: %s\n\n", frame)
			flusher.Flush()
		}
	}
}

// History handles GET /api/agents/{id}/executions returning the most recent
// runs, newest first.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.History(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
