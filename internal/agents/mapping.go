package agents

import (
	"net/url"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/anuragsharanjuspay/jaf-agent-builder/pkg/query"
	"github.com/anuragsharanjuspay/jaf-agent-builder/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "agents", "a").
	Project("id", "ID").
	Project("name", "Name").
	Project("description", "Description").
	Project("model", "Model").
	Project("instructions", "Instructions").
	Project("system_prompt", "SystemPrompt").
	Project("model_config", "ModelConfig").
	Project("tools", "Tools").
	Project("handoffs", "Handoffs").
	Project("capabilities", "Capabilities").
	Project("output_schema", "OutputSchema").
	Project("memory_type", "MemoryType").
	Project("memory_config", "MemoryConfig").
	Project("input_guardrails", "InputGuardrails").
	Project("output_guardrails", "OutputGuardrails").
	Project("status", "Status").
	Project("owner_id", "OwnerID").
	Project("team_id", "TeamID").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{Field: "Name"}

func scanAgent(s repository.Scanner) (Agent, error) {
	var a Agent
	err := s.Scan(
		&a.ID,
		&a.Name,
		&a.Description,
		&a.Model,
		&a.Instructions,
		&a.SystemPrompt,
		&a.ModelConfig,
		pq.Array(&a.Tools),
		pq.Array(&a.Handoffs),
		pq.Array(&a.Capabilities),
		&a.OutputSchema,
		&a.MemoryType,
		&a.MemoryConfig,
		&a.InputGuardrails,
		&a.OutputGuardrails,
		&a.Status,
		&a.OwnerID,
		&a.TeamID,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	return a, err
}

func scanKnowledgeSource(s repository.Scanner) (KnowledgeSource, error) {
	var ks KnowledgeSource
	err := s.Scan(
		&ks.ID,
		&ks.AgentID,
		&ks.Name,
		&ks.Type,
		&ks.Content,
		&ks.URL,
		&ks.CreatedAt,
	)
	return ks, err
}

// Filters contains optional filtering criteria for agent queries.
type Filters struct {
	OwnerID    *uuid.UUID
	TeamID     *uuid.UUID
	Status     *string
	Capability *string
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters
	if raw := values.Get("owner_id"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			f.OwnerID = &id
		}
	}
	if raw := values.Get("team_id"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			f.TeamID = &id
		}
	}
	if s := values.Get("status"); s != "" {
		f.Status = &s
	}
	if c := values.Get("capability"); c != "" {
		f.Capability = &c
	}
	return f
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	if f.OwnerID != nil {
		b.WhereEquals("OwnerID", *f.OwnerID)
	}
	if f.TeamID != nil {
		b.WhereEquals("TeamID", *f.TeamID)
	}
	if f.Status != nil {
		b.WhereEquals("Status", *f.Status)
	}
	if f.Capability != nil {
		b.WhereAny("Capabilities", []string{*f.Capability})
	}
	return b
}
