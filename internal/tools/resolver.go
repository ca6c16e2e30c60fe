package tools

import (
	"context"
	"encoding/json"
	"log/slog"
	"regexp"
	"strings"

	"github.com/anuragsharanjuspay/jaf-agent-builder/internal/schema"
)

// Resolver maps tool references (builtin names or database ids/names) to
// executable definitions. Resolution is best-effort: it returns whatever
// subset could be resolved and never fails on unresolved references.
type Resolver struct {
	store        System
	allowDynamic bool
	logger       *slog.Logger
}

// NewResolver creates a tool resolver over the given store. When allowDynamic
// is set, stored custom tool bodies are interpreted at resolution time.
func NewResolver(store System, allowDynamic bool, logger *slog.Logger) *Resolver {
	return &Resolver{
		store:        store,
		allowDynamic: allowDynamic,
		logger:       logger.With("system", "tools"),
	}
}

// Resolve converts tool references into definitions. Builtin implementations
// are authoritative: a builtin name hit never touches the store, and a stored
// row whose name shadows a builtin resolves to the builtin implementation.
// Callers needing strict validation compare returned count to requested count.
func (r *Resolver) Resolve(ctx context.Context, refs []string) []Definition {
	seen := make(map[string]bool, len(refs))
	deduped := make([]string, 0, len(refs))
	for _, ref := range refs {
		if ref == "" || seen[ref] {
			continue
		}
		seen[ref] = true
		deduped = append(deduped, ref)
	}

	var definitions []Definition
	resolved := make(map[string]bool, len(deduped))
	var pending []string

	for _, ref := range deduped {
		if def, ok := Builtin(ref); ok {
			definitions = append(definitions, def)
			resolved[def.Name] = true
			continue
		}
		pending = append(pending, ref)
	}

	if len(pending) == 0 {
		return definitions
	}

	records, err := r.store.FindByRefs(ctx, pending)
	if err != nil {
		r.logger.Warn("tool store lookup failed", "refs", pending, "error", err)
		return definitions
	}

	for _, record := range records {
		if resolved[record.Name] {
			continue
		}
		resolved[record.Name] = true

		// A stored row shadowing a builtin name resolves to the builtin.
		if def, ok := Builtin(record.Name); ok {
			definitions = append(definitions, def)
			continue
		}

		definitions = append(definitions, r.customDefinition(record))
	}

	return definitions
}

func (r *Resolver) customDefinition(record Tool) Definition {
	params := schema.Parse(record.Parameters)
	if len(record.Parameters) > 0 && !json.Valid(record.Parameters) {
		r.logger.Warn("tool parameter schema unparseable, accepting any arguments",
			"tool", record.Name)
	}

	def := Definition{
		Name:        record.Name,
		Description: record.Description,
		Parameters:  params,
	}

	if record.Body != nil && *record.Body != "" && r.allowDynamic {
		body := *record.Body
		def.Execute = func(ctx context.Context, args map[string]any) (string, error) {
			return substitute(body, args), nil
		}
	} else {
		// Safe default: echo the call arguments rather than silently no-op
		// or execute untrusted code.
		def.Execute = func(ctx context.Context, args map[string]any) (string, error) {
			encoded, err := json.Marshal(args)
			if err != nil {
				return "", err
			}
			return record.Name + " called with " + string(encoded), nil
		}
	}

	def.Execute = guardArgs(def.Parameters, def.Execute)
	return def
}

var placeholderPattern = regexp.MustCompile(`\{\{\s*(\w+)\s*\}\}`)

// substitute replaces {{key}} placeholders in text with stringified argument
// values. Placeholders without a matching argument are left verbatim.
func substitute(text string, args map[string]any) string {
	return placeholderPattern.ReplaceAllStringFunc(text, func(match string) string {
		key := placeholderPattern.FindStringSubmatch(match)[1]
		value, ok := args[key]
		if !ok {
			return match
		}
		switch v := value.(type) {
		case string:
			return v
		default:
			encoded, err := json.Marshal(v)
			if err != nil {
				return match
			}
			return strings.Trim(string(encoded), `"`)
		}
	})
}
