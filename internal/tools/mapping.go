package tools

import (
	"net/url"

	"github.com/anuragsharanjuspay/jaf-agent-builder/pkg/query"
	"github.com/anuragsharanjuspay/jaf-agent-builder/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "tools", "t").
	Project("id", "ID").
	Project("name", "Name").
	Project("display_name", "DisplayName").
	Project("category", "Category").
	Project("description", "Description").
	Project("parameters", "Parameters").
	Project("output_schema", "OutputSchema").
	Project("body", "Body").
	Project("is_builtin", "IsBuiltin").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{Field: "Name"}

func scanTool(s repository.Scanner) (Tool, error) {
	var t Tool
	err := s.Scan(
		&t.ID,
		&t.Name,
		&t.DisplayName,
		&t.Category,
		&t.Description,
		&t.Parameters,
		&t.OutputSchema,
		&t.Body,
		&t.IsBuiltin,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	return t, err
}

// Filters contains optional filtering criteria for tool queries.
type Filters struct {
	Category *string
	Builtin  *bool
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters
	if c := values.Get("category"); c != "" {
		f.Category = &c
	}
	switch values.Get("builtin") {
	case "true":
		v := true
		f.Builtin = &v
	case "false":
		v := false
		f.Builtin = &v
	}
	return f
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	b.WhereContains("Category", f.Category)
	if f.Builtin != nil {
		b.WhereEquals("IsBuiltin", *f.Builtin)
	}
	return b
}
