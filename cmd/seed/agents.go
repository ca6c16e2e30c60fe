package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

func init() {
	registerSeeder(&agentSeeder{})
}

// agentSeeder creates a demo user and a pair of sample agents for local
// development.
type agentSeeder struct{}

func (s *agentSeeder) Name() string { return "agents" }

func (s *agentSeeder) Description() string {
	return "Creates a demo user with sample agents"
}

func (s *agentSeeder) Seed(ctx context.Context, tx *sql.Tx) error {
	var ownerID string
	err := tx.QueryRowContext(ctx, `
		INSERT INTO users (email, name)
		VALUES ('demo@example.com', 'Demo User')
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
		RETURNING id`).Scan(&ownerID)
	if err != nil {
		return fmt.Errorf("insert demo user: %w", err)
	}

	samples := []struct {
		name         string
		description  string
		model        string
		instructions string
		tools        []string
		capabilities []string
	}{
		{
			name:         "general-assistant",
			description:  "General-purpose assistant with utility tools",
			model:        "gpt-4o-mini",
			instructions: "You are a helpful assistant. Use the available tools when they fit the request.",
			tools:        []string{"current_time", "calculator", "json_format"},
			capabilities: []string{"chat", "tools"},
		},
		{
			name:         "text-analyst",
			description:  "Extracts structure from free-form text",
			model:        "claude-3-5-sonnet-latest",
			instructions: "You analyze text for {{userId}} and answer precisely.",
			tools:        []string{"regex_extract", "json_format"},
			capabilities: []string{"analysis"},
		},
	}

	for _, sample := range samples {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO agents (name, description, model, instructions, tools, capabilities, status, owner_id)
			VALUES ($1, $2, $3, $4, $5, $6, 'active', $7)
			ON CONFLICT (owner_id, name) DO NOTHING`,
			sample.name, sample.description, sample.model, sample.instructions,
			pq.Array(sample.tools), pq.Array(sample.capabilities), ownerID)
		if err != nil {
			return fmt.Errorf("insert agent %s: %w", sample.name, err)
		}
	}

	return nil
}
