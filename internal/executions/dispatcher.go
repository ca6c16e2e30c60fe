package executions

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/anuragsharanjuspay/jaf-agent-builder/internal/agents"
	"github.com/anuragsharanjuspay/jaf-agent-builder/internal/config"
	"github.com/anuragsharanjuspay/jaf-agent-builder/internal/providers"
)

// System dispatches agent executions and exposes their history.
type System interface {
	Execute(ctx context.Context, agentID uuid.UUID, req ExecuteRequest) (*Result, error)
	ExecuteStream(ctx context.Context, agentID uuid.UUID, req ExecuteRequest) (<-chan providers.StreamChunk, error)
	History(ctx context.Context, agentID uuid.UUID) ([]Execution, error)
}

type dispatcher struct {
	agents    agents.System
	assembler *agents.Assembler
	store     Store
	cfg       *config.ProvidersConfig
	logger    *slog.Logger

	// clientFor is swapped out by tests.
	clientFor func(kind providers.Kind) providers.Client
}

// NewDispatcher creates the execution dispatcher.
func NewDispatcher(agentSys agents.System, assembler *agents.Assembler, store Store, cfg *config.ProvidersConfig, logger *slog.Logger) System {
	log := logger.With("system", "dispatcher")
	return &dispatcher{
		agents:    agentSys,
		assembler: assembler,
		store:     store,
		cfg:       cfg,
		logger:    log,
		clientFor: func(kind providers.Kind) providers.Client {
			return providers.New(kind, cfg, log)
		},
	}
}

func (d *dispatcher) Execute(ctx context.Context, agentID uuid.UUID, req ExecuteRequest) (*Result, error) {
	record, exec, prepared, err := d.prepare(ctx, agentID, req)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	completion, err := prepared.client.Complete(ctx, prepared.request)
	duration := time.Since(start).Milliseconds()

	if err != nil {
		d.fail(ctx, exec.ID, err, duration)
		return nil, err
	}

	if err := d.store.Complete(ctx, exec.ID, completion.Content, duration); err != nil {
		return nil, fmt.Errorf("persist execution result: %w", err)
	}

	d.logger.Info("execution completed",
		"execution", exec.ID, "agent", record.ID, "duration_ms", duration)

	return &Result{
		ExecutionID: exec.ID,
		Output:      completion.Content,
		DurationMs:  duration,
	}, nil
}

func (d *dispatcher) ExecuteStream(ctx context.Context, agentID uuid.UUID, req ExecuteRequest) (<-chan providers.StreamChunk, error) {
	record, exec, prepared, err := d.prepare(ctx, agentID, req)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	source, err := prepared.client.Stream(ctx, prepared.request)
	if err != nil {
		d.fail(ctx, exec.ID, err, time.Since(start).Milliseconds())
		return nil, err
	}

	out := make(chan providers.StreamChunk, 64)
	go func() {
		defer close(out)

		var accumulated string
		for chunk := range source {
			switch {
			case chunk.Err != nil:
				d.fail(ctx, exec.ID, chunk.Err, time.Since(start).Milliseconds())
				out <- chunk
				return
			case chunk.Done:
				duration := time.Since(start).Milliseconds()
				if err := d.store.Complete(ctx, exec.ID, accumulated, duration); err != nil {
					d.logger.Error("persist streamed execution failed",
						"execution", exec.ID, "error", err)
				}
				d.logger.Info("execution completed",
					"execution", exec.ID, "agent", record.ID, "duration_ms", duration)
				out <- chunk
				return
			default:
				accumulated += chunk.Content
				out <- chunk
			}
		}

		// Source closed without a terminal chunk; treat as complete.
		duration := time.Since(start).Milliseconds()
		if err := d.store.Complete(ctx, exec.ID, accumulated, duration); err != nil {
			d.logger.Error("persist streamed execution failed",
				"execution", exec.ID, "error", err)
		}
		out <- providers.StreamChunk{Done: true}
	}()

	return out, nil
}

func (d *dispatcher) History(ctx context.Context, agentID uuid.UUID) ([]Execution, error) {
	if _, err := d.agents.Find(ctx, agentID); err != nil {
		return nil, err
	}
	return d.store.History(ctx, agentID)
}

type preparedRun struct {
	client  providers.Client
	request providers.Request
}

// prepare loads the agent, records the execution as running and assembles the
// provider request. The execution row exists before any model call so a
// mid-dispatch failure always has a row to mark failed.
func (d *dispatcher) prepare(ctx context.Context, agentID uuid.UUID, req ExecuteRequest) (*agents.Agent, *Execution, *preparedRun, error) {
	if req.Input == "" {
		return nil, nil, nil, ErrEmptyInput
	}

	record, err := d.agents.Find(ctx, agentID)
	if err != nil {
		return nil, nil, nil, err
	}

	start := time.Now()
	exec, err := d.store.Create(ctx, record.ID, req.Input)
	if err != nil {
		return nil, nil, nil, err
	}

	desc, err := d.assembler.Assemble(ctx, record)
	if err != nil {
		d.fail(ctx, exec.ID, err, time.Since(start).Milliseconds())
		return nil, nil, nil, err
	}

	rc := agents.RunContext{
		UserID:    req.UserID,
		AgentID:   record.ID,
		SessionID: req.SessionID,
	}

	docs := make([]providers.ToolDoc, len(desc.Tools))
	for i, def := range desc.Tools {
		docs[i] = providers.ToolDoc{
			Name:        def.Name,
			Description: def.Description,
			Parameters:  def.VendorParams(),
		}
	}

	kind := providers.Select(desc.Settings.Model, d.cfg)
	d.logger.Debug("provider selected",
		"agent", record.ID, "model", desc.Settings.Model, "provider", kind)

	run := &preparedRun{
		client: d.clientFor(kind),
		request: providers.Request{
			Instructions: desc.Instructions(rc),
			Messages:     []providers.Message{{Role: "user", Content: req.Input}},
			Settings:     desc.Settings,
			Tools:        docs,
			APIKey:       req.APIKey,
			BaseURL:      req.BaseURL,
		},
	}
	return record, exec, run, nil
}

// fail marks the execution failed; a failed write is logged, never surfaced,
// so the original error stays the one the caller sees.
func (d *dispatcher) fail(ctx context.Context, id uuid.UUID, cause error, durationMs int64) {
	if err := d.store.Fail(ctx, id, cause.Error(), durationMs); err != nil {
		d.logger.Error("persist failed execution failed", "execution", id, "error", err)
	}
}
