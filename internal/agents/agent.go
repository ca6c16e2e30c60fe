// Package agents provides the domain system for managing agent records and
// assembling them into runnable descriptors.
package agents

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Status describes the lifecycle state of an agent record.
type Status string

const (
	StatusDraft    Status = "draft"
	StatusActive   Status = "active"
	StatusArchived Status = "archived"
)

// Validate checks that the status is one of the known lifecycle states.
func (s Status) Validate() error {
	switch s {
	case StatusDraft, StatusActive, StatusArchived:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// Agent represents an agent configuration stored in the database.
type Agent struct {
	ID               uuid.UUID         `json:"id"`
	Name             string            `json:"name"`
	Description      string            `json:"description"`
	Model            string            `json:"model"`
	Instructions     string            `json:"instructions"`
	SystemPrompt     string            `json:"system_prompt"`
	ModelConfig      json.RawMessage   `json:"model_config,omitempty"`
	Tools            []string          `json:"tools"`
	Handoffs         []string          `json:"handoffs"`
	Capabilities     []string          `json:"capabilities"`
	OutputSchema     json.RawMessage   `json:"output_schema,omitempty"`
	MemoryType       *string           `json:"memory_type,omitempty"`
	MemoryConfig     json.RawMessage   `json:"memory_config,omitempty"`
	InputGuardrails  json.RawMessage   `json:"input_guardrails,omitempty"`
	OutputGuardrails json.RawMessage   `json:"output_guardrails,omitempty"`
	Status           Status            `json:"status"`
	OwnerID          uuid.UUID         `json:"owner_id"`
	TeamID           *uuid.UUID        `json:"team_id,omitempty"`
	KnowledgeSources []KnowledgeSource `json:"knowledge_sources,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// KnowledgeSource is a reference document or URL attached to an agent.
type KnowledgeSource struct {
	ID        uuid.UUID `json:"id"`
	AgentID   uuid.UUID `json:"agent_id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Content   *string   `json:"content,omitempty"`
	URL       *string   `json:"url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// KnowledgeSourceCommand carries the writable fields of a knowledge source.
type KnowledgeSourceCommand struct {
	Name    string  `json:"name"`
	Type    string  `json:"type"`
	Content *string `json:"content,omitempty"`
	URL     *string `json:"url,omitempty"`
}

// CreateCommand contains the data required to create a new agent.
type CreateCommand struct {
	Name             string                   `json:"name"`
	Description      string                   `json:"description"`
	Model            string                   `json:"model"`
	Instructions     string                   `json:"instructions"`
	SystemPrompt     string                   `json:"system_prompt"`
	ModelConfig      json.RawMessage          `json:"model_config,omitempty"`
	Tools            []string                 `json:"tools"`
	Handoffs         []string                 `json:"handoffs"`
	Capabilities     []string                 `json:"capabilities"`
	OutputSchema     json.RawMessage          `json:"output_schema,omitempty"`
	MemoryType       *string                  `json:"memory_type,omitempty"`
	MemoryConfig     json.RawMessage          `json:"memory_config,omitempty"`
	InputGuardrails  json.RawMessage          `json:"input_guardrails,omitempty"`
	OutputGuardrails json.RawMessage          `json:"output_guardrails,omitempty"`
	Status           Status                   `json:"status"`
	OwnerID          uuid.UUID                `json:"owner_id"`
	TeamID           *uuid.UUID               `json:"team_id,omitempty"`
	KnowledgeSources []KnowledgeSourceCommand `json:"knowledge_sources,omitempty"`
}

// UpdateCommand contains the data required to update an existing agent.
type UpdateCommand struct {
	Name             string                   `json:"name"`
	Description      string                   `json:"description"`
	Model            string                   `json:"model"`
	Instructions     string                   `json:"instructions"`
	SystemPrompt     string                   `json:"system_prompt"`
	ModelConfig      json.RawMessage          `json:"model_config,omitempty"`
	Tools            []string                 `json:"tools"`
	Handoffs         []string                 `json:"handoffs"`
	Capabilities     []string                 `json:"capabilities"`
	OutputSchema     json.RawMessage          `json:"output_schema,omitempty"`
	MemoryType       *string                  `json:"memory_type,omitempty"`
	MemoryConfig     json.RawMessage          `json:"memory_config,omitempty"`
	InputGuardrails  json.RawMessage          `json:"input_guardrails,omitempty"`
	OutputGuardrails json.RawMessage          `json:"output_guardrails,omitempty"`
	Status           Status                   `json:"status"`
	TeamID           *uuid.UUID               `json:"team_id,omitempty"`
	KnowledgeSources []KnowledgeSourceCommand `json:"knowledge_sources,omitempty"`
}
