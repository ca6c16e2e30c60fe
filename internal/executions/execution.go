// Package executions dispatches agent runs against model providers and
// persists an audit record for every invocation.
package executions

import (
	"time"

	"github.com/google/uuid"
)

// Status describes the lifecycle state of one execution.
type Status string

const (
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Execution is an audit-log row capturing one agent invocation.
type Execution struct {
	ID          uuid.UUID  `json:"id"`
	AgentID     uuid.UUID  `json:"agent_id"`
	Input       string     `json:"input"`
	Output      *string    `json:"output,omitempty"`
	Status      Status     `json:"status"`
	Error       *string    `json:"error,omitempty"`
	DurationMs  *int64     `json:"duration_ms,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// ExecuteRequest is the body of an execute call.
type ExecuteRequest struct {
	Input     string `json:"input"`
	APIKey    string `json:"api_key,omitempty"`
	BaseURL   string `json:"base_url,omitempty"`
	Streaming bool   `json:"streaming,omitempty"`
	UserID    string `json:"user_id,omitempty"`
	SessionID string `json:"session_id,omitempty"`
}

// Result is the response of a non-streaming execute call.
type Result struct {
	ExecutionID uuid.UUID `json:"execution_id"`
	Output      string    `json:"output"`
	DurationMs  int64     `json:"duration_ms"`
}
