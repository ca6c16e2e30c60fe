package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anuragsharanjuspay/jaf-agent-builder/internal/tools"
)

func init() {
	registerSeeder(&toolSeeder{})
}

// toolSeeder mirrors the builtin tool catalog into the tools table so the
// REST surface can list and describe builtins alongside custom tools.
type toolSeeder struct{}

func (s *toolSeeder) Name() string { return "tools" }

func (s *toolSeeder) Description() string {
	return "Registers builtin tool records"
}

func (s *toolSeeder) Seed(ctx context.Context, tx *sql.Tx) error {
	for _, def := range tools.Builtins() {
		params, err := json.Marshal(def.Parameters)
		if err != nil {
			return fmt.Errorf("marshal parameters for %s: %w", def.Name, err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO tools (name, display_name, category, description, parameters, is_builtin)
			VALUES ($1, $2, 'builtin', $3, $4, true)
			ON CONFLICT (name) DO UPDATE
			SET display_name = EXCLUDED.display_name,
				description = EXCLUDED.description,
				parameters = EXCLUDED.parameters,
				updated_at = NOW()`,
			def.Name, displayName(def.Name), def.Description, params)
		if err != nil {
			return fmt.Errorf("insert tool %s: %w", def.Name, err)
		}
	}
	return nil
}

func displayName(name string) string {
	words := strings.Split(name, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
