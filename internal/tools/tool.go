// Package tools provides the domain system for managing tool records and
// resolving tool references into executable definitions.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/anuragsharanjuspay/jaf-agent-builder/internal/schema"
)

// Tool represents a tool record stored in the database.
type Tool struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	DisplayName  string          `json:"display_name"`
	Category     string          `json:"category"`
	Description  string          `json:"description"`
	Parameters   json.RawMessage `json:"parameters,omitempty"`
	OutputSchema json.RawMessage `json:"output_schema,omitempty"`
	Body         *string         `json:"body,omitempty"`
	IsBuiltin    bool            `json:"is_builtin"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// CreateCommand contains the data required to create a new tool.
type CreateCommand struct {
	Name         string          `json:"name"`
	DisplayName  string          `json:"display_name"`
	Category     string          `json:"category"`
	Description  string          `json:"description"`
	Parameters   json.RawMessage `json:"parameters,omitempty"`
	OutputSchema json.RawMessage `json:"output_schema,omitempty"`
	Body         *string         `json:"body,omitempty"`
}

// UpdateCommand contains the data required to update an existing tool.
type UpdateCommand struct {
	DisplayName  string          `json:"display_name"`
	Category     string          `json:"category"`
	Description  string          `json:"description"`
	Parameters   json.RawMessage `json:"parameters,omitempty"`
	OutputSchema json.RawMessage `json:"output_schema,omitempty"`
	Body         *string         `json:"body,omitempty"`
}

// ExecuteFunc runs a tool with decoded call arguments and returns its output.
type ExecuteFunc func(ctx context.Context, args map[string]any) (string, error)

// Definition is the runtime form of a tool: a resolved parameter schema and
// an executable operation. Definitions are assembled per run; builtin
// definitions are stateless and safely shared by value.
type Definition struct {
	Name        string
	Description string
	Parameters  *schema.Schema
	Execute     ExecuteFunc
}

// VendorParams returns the vendor function-parameter document for the
// definition's parameter schema.
func (d Definition) VendorParams() map[string]any {
	return d.Parameters.VendorParams()
}

// guardArgs validates call arguments against the parameter schema before
// delegating to fn. Schemas that parse to nil or any accept everything.
func guardArgs(params *schema.Schema, fn ExecuteFunc) ExecuteFunc {
	return func(ctx context.Context, args map[string]any) (string, error) {
		if err := params.Validate(args); err != nil {
			return "", fmt.Errorf("invalid arguments: %w", err)
		}
		return fn(ctx, args)
	}
}
