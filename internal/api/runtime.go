package api

import (
	"log/slog"

	"github.com/anuragsharanjuspay/jaf-agent-builder/internal/config"
	"github.com/anuragsharanjuspay/jaf-agent-builder/internal/infrastructure"
	"github.com/anuragsharanjuspay/jaf-agent-builder/pkg/database"
	"github.com/anuragsharanjuspay/jaf-agent-builder/pkg/lifecycle"
	"github.com/anuragsharanjuspay/jaf-agent-builder/pkg/pagination"
)

// Runtime bundles the shared dependencies handed to domain systems.
type Runtime struct {
	Config     *config.Config
	Logger     *slog.Logger
	Database   database.System
	Lifecycle  *lifecycle.Coordinator
	Pagination pagination.Config
}

// NewRuntime creates the API runtime from configuration and infrastructure.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Config:     cfg,
		Logger:     infra.Logger,
		Database:   infra.Database,
		Lifecycle:  infra.Lifecycle,
		Pagination: cfg.Pagination,
	}
}
