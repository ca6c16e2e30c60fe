package agents_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/anuragsharanjuspay/jaf-agent-builder/internal/agents"
	"github.com/anuragsharanjuspay/jaf-agent-builder/pkg/pagination"
)

type stubSystem struct {
	listErr error
}

func (s *stubSystem) List(ctx context.Context, page pagination.PageRequest, filters agents.Filters) (*pagination.PageResult[agents.Agent], error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return &pagination.PageResult[agents.Agent]{Data: []agents.Agent{}}, nil
}

func (s *stubSystem) Find(ctx context.Context, id uuid.UUID) (*agents.Agent, error) {
	return nil, agents.ErrNotFound
}

func (s *stubSystem) Create(ctx context.Context, cmd agents.CreateCommand) (*agents.Agent, error) {
	return nil, agents.ErrNotFound
}

func (s *stubSystem) Update(ctx context.Context, id uuid.UUID, cmd agents.UpdateCommand) (*agents.Agent, error) {
	return nil, agents.ErrNotFound
}

func (s *stubSystem) Delete(ctx context.Context, id uuid.UUID) error {
	return agents.ErrNotFound
}

func newTestHandler(sys agents.System) *agents.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return agents.NewHandler(sys, logger, pagination.Config{DefaultPageSize: 20, MaxPageSize: 100})
}

func TestHandlerListMapsDomainErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid status filter", agents.ErrInvalidStatus, http.StatusBadRequest},
		{"not found", agents.ErrNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(&stubSystem{listErr: tt.err})

			rec := httptest.NewRecorder()
			h.List(rec, httptest.NewRequest("GET", "/api/agents", nil))

			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestHandlerListSuccess(t *testing.T) {
	h := newTestHandler(&stubSystem{})

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest("GET", "/api/agents", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}
