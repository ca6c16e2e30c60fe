package executions

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/anuragsharanjuspay/jaf-agent-builder/pkg/repository"
)

// historyLimit caps how many rows an agent's execution history returns.
const historyLimit = 50

const executionColumns = `id, agent_id, input, output, status, error, duration_ms, created_at, completed_at`

// Store persists execution rows. Exactly one terminal write (Complete or
// Fail) follows every Create.
type Store interface {
	Create(ctx context.Context, agentID uuid.UUID, input string) (*Execution, error)
	Complete(ctx context.Context, id uuid.UUID, output string, durationMs int64) error
	Fail(ctx context.Context, id uuid.UUID, message string, durationMs int64) error
	History(ctx context.Context, agentID uuid.UUID) ([]Execution, error)
}

type store struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewStore creates an execution store backed by the given database.
func NewStore(db *sql.DB, logger *slog.Logger) Store {
	return &store{
		db:     db,
		logger: logger.With("system", "executions"),
	}
}

func scanExecution(s repository.Scanner) (Execution, error) {
	var e Execution
	err := s.Scan(
		&e.ID,
		&e.AgentID,
		&e.Input,
		&e.Output,
		&e.Status,
		&e.Error,
		&e.DurationMs,
		&e.CreatedAt,
		&e.CompletedAt,
	)
	return e, err
}

// Create records a run in the running state before any model call is made.
func (s *store) Create(ctx context.Context, agentID uuid.UUID, input string) (*Execution, error) {
	q := fmt.Sprintf(`
		INSERT INTO agent_executions (agent_id, input, status)
		VALUES ($1, $2, $3)
		RETURNING %s`, executionColumns)

	e, err := repository.QueryOne(ctx, s.db, q, []any{agentID, input, StatusRunning}, scanExecution)
	if err != nil {
		return nil, fmt.Errorf("create execution: %w", err)
	}
	return &e, nil
}

func (s *store) Complete(ctx context.Context, id uuid.UUID, output string, durationMs int64) error {
	err := repository.ExecExpectOne(ctx, s.db, `
		UPDATE agent_executions
		SET output = $1, status = $2, duration_ms = $3, completed_at = NOW()
		WHERE id = $4 AND status = $5`,
		output, StatusCompleted, durationMs, id, StatusRunning)
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrNotFound)
	}
	return nil
}

func (s *store) Fail(ctx context.Context, id uuid.UUID, message string, durationMs int64) error {
	err := repository.ExecExpectOne(ctx, s.db, `
		UPDATE agent_executions
		SET error = $1, status = $2, duration_ms = $3, completed_at = NOW()
		WHERE id = $4 AND status = $5`,
		message, StatusFailed, durationMs, id, StatusRunning)
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrNotFound)
	}
	return nil
}

// History returns an agent's most recent executions, newest first.
func (s *store) History(ctx context.Context, agentID uuid.UUID) ([]Execution, error) {
	q := fmt.Sprintf(`
		SELECT %s FROM agent_executions
		WHERE agent_id = $1
		ORDER BY created_at DESC
		LIMIT %d`, executionColumns, historyLimit)

	items, err := repository.QueryMany(ctx, s.db, q, []any{agentID}, scanExecution)
	if err != nil {
		return nil, fmt.Errorf("query executions: %w", err)
	}
	return items, nil
}
