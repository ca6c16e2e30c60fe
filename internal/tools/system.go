package tools

import (
	"context"

	"github.com/google/uuid"

	"github.com/anuragsharanjuspay/jaf-agent-builder/pkg/pagination"
)

// System defines the interface for tool storage and retrieval operations.
type System interface {
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Tool], error)
	Find(ctx context.Context, id uuid.UUID) (*Tool, error)
	FindByRefs(ctx context.Context, refs []string) ([]Tool, error)
	Create(ctx context.Context, cmd CreateCommand) (*Tool, error)
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Tool, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
