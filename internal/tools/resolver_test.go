package tools_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/anuragsharanjuspay/jaf-agent-builder/internal/tools"
	"github.com/anuragsharanjuspay/jaf-agent-builder/pkg/pagination"
)

type fakeStore struct {
	records []tools.Tool
	err     error
	calls   [][]string
}

func (f *fakeStore) List(ctx context.Context, page pagination.PageRequest, filters tools.Filters) (*pagination.PageResult[tools.Tool], error) {
	return nil, errors.New("not implemented")
}

func (f *fakeStore) Find(ctx context.Context, id uuid.UUID) (*tools.Tool, error) {
	return nil, tools.ErrNotFound
}

func (f *fakeStore) FindByRefs(ctx context.Context, refs []string) ([]tools.Tool, error) {
	f.calls = append(f.calls, refs)
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

func (f *fakeStore) Create(ctx context.Context, cmd tools.CreateCommand) (*tools.Tool, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeStore) Update(ctx context.Context, id uuid.UUID, cmd tools.UpdateCommand) (*tools.Tool, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeStore) Delete(ctx context.Context, id uuid.UUID) error {
	return errors.New("not implemented")
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func strPtr(s string) *string { return &s }

func TestResolve_BuiltinsSkipStore(t *testing.T) {
	store := &fakeStore{}
	r := tools.NewResolver(store, false, testLogger())

	defs := r.Resolve(context.Background(), []string{"echo", "calculator"})

	if len(defs) != 2 {
		t.Fatalf("resolved %d definitions, want 2", len(defs))
	}
	if len(store.calls) != 0 {
		t.Errorf("store queried %d times, want 0", len(store.calls))
	}
}

func TestResolve_Dedupe(t *testing.T) {
	store := &fakeStore{}
	r := tools.NewResolver(store, false, testLogger())

	defs := r.Resolve(context.Background(), []string{"echo", "echo", "", "echo"})

	if len(defs) != 1 {
		t.Fatalf("resolved %d definitions, want 1", len(defs))
	}
	if defs[0].Name != "echo" {
		t.Errorf("name = %q, want echo", defs[0].Name)
	}
}

func TestResolve_CustomToolEchoFallback(t *testing.T) {
	store := &fakeStore{
		records: []tools.Tool{{
			ID:          uuid.New(),
			Name:        "weather",
			Description: "Looks up the weather",
		}},
	}
	r := tools.NewResolver(store, false, testLogger())

	defs := r.Resolve(context.Background(), []string{"weather"})
	if len(defs) != 1 {
		t.Fatalf("resolved %d definitions, want 1", len(defs))
	}

	out, err := defs[0].Execute(context.Background(), map[string]any{"city": "Oslo"})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.HasPrefix(out, "weather called with ") {
		t.Errorf("output = %q, want echo fallback", out)
	}
	if !strings.Contains(out, `"city":"Oslo"`) {
		t.Errorf("output = %q, want arguments encoded", out)
	}
}

func TestResolve_DynamicBodyGatedByFlag(t *testing.T) {
	record := tools.Tool{
		ID:   uuid.New(),
		Name: "greeter",
		Body: strPtr("Hello {{name}}, welcome to {{place}}!"),
	}

	t.Run("disabled falls back to echo", func(t *testing.T) {
		r := tools.NewResolver(&fakeStore{records: []tools.Tool{record}}, false, testLogger())
		defs := r.Resolve(context.Background(), []string{"greeter"})

		out, err := defs[0].Execute(context.Background(), map[string]any{"name": "Ada"})
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if !strings.HasPrefix(out, "greeter called with ") {
			t.Errorf("output = %q, want echo fallback when dynamic disabled", out)
		}
	})

	t.Run("enabled substitutes placeholders", func(t *testing.T) {
		r := tools.NewResolver(&fakeStore{records: []tools.Tool{record}}, true, testLogger())
		defs := r.Resolve(context.Background(), []string{"greeter"})

		out, err := defs[0].Execute(context.Background(), map[string]any{"name": "Ada"})
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if out != "Hello Ada, welcome to {{place}}!" {
			t.Errorf("output = %q, want substituted text with unmatched placeholder verbatim", out)
		}
	})
}

func TestResolve_CustomToolArgsValidated(t *testing.T) {
	record := tools.Tool{
		ID:   uuid.New(),
		Name: "greeter",
		Body: strPtr("Hello {{name}}!"),
		Parameters: []byte(`{
			"type": "object",
			"properties": {"name": {"type": "string"}},
			"required": ["name"]
		}`),
	}
	r := tools.NewResolver(&fakeStore{records: []tools.Tool{record}}, true, testLogger())

	defs := r.Resolve(context.Background(), []string{"greeter"})
	if len(defs) != 1 {
		t.Fatalf("resolved %d definitions, want 1", len(defs))
	}

	if _, err := defs[0].Execute(context.Background(), map[string]any{}); err == nil {
		t.Error("Execute() error = nil for missing required argument, want error")
	} else if !strings.Contains(err.Error(), "invalid arguments") {
		t.Errorf("error = %v, want invalid arguments", err)
	}

	out, err := defs[0].Execute(context.Background(), map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if out != "Hello Ada!" {
		t.Errorf("output = %q, want substituted greeting", out)
	}
}

func TestResolve_StoredRowShadowingBuiltin(t *testing.T) {
	store := &fakeStore{
		records: []tools.Tool{{
			ID:   uuid.New(),
			Name: "calculator",
			Body: strPtr("never runs"),
		}},
	}
	r := tools.NewResolver(store, true, testLogger())

	// An id-shaped ref misses the builtin registry but the returned row's
	// name matches a builtin, which wins.
	defs := r.Resolve(context.Background(), []string{uuid.NewString()})
	if len(defs) != 1 {
		t.Fatalf("resolved %d definitions, want 1", len(defs))
	}

	out, err := defs[0].Execute(context.Background(), map[string]any{
		"operation": "add", "a": 2, "b": 3,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if out != "5" {
		t.Errorf("output = %q, want builtin calculator result 5", out)
	}
}

func TestResolve_StoreFailureIsPartial(t *testing.T) {
	store := &fakeStore{err: errors.New("connection refused")}
	r := tools.NewResolver(store, false, testLogger())

	defs := r.Resolve(context.Background(), []string{"echo", "missing-custom"})

	if len(defs) != 1 {
		t.Fatalf("resolved %d definitions, want builtin subset of 1", len(defs))
	}
	if defs[0].Name != "echo" {
		t.Errorf("name = %q, want echo", defs[0].Name)
	}
}

func TestResolve_UnresolvedRefsAbsent(t *testing.T) {
	store := &fakeStore{}
	r := tools.NewResolver(store, false, testLogger())

	defs := r.Resolve(context.Background(), []string{"does-not-exist"})
	if len(defs) != 0 {
		t.Errorf("resolved %d definitions, want 0", len(defs))
	}
}
