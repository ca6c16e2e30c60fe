package agents

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/anuragsharanjuspay/jaf-agent-builder/pkg/pagination"
	"github.com/anuragsharanjuspay/jaf-agent-builder/pkg/query"
	"github.com/anuragsharanjuspay/jaf-agent-builder/pkg/repository"
)

const agentColumns = `a.id, a.name, a.description, a.model, a.instructions, a.system_prompt,
	a.model_config, a.tools, a.handoffs, a.capabilities, a.output_schema,
	a.memory_type, a.memory_config, a.input_guardrails, a.output_guardrails,
	a.status, a.owner_id, a.team_id, a.created_at, a.updated_at`

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a new agents repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "agents"),
		pagination: pagination,
	}
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Agent], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Name", "Description")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count agents: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanAgent)
	if err != nil {
		return nil, fmt.Errorf("query agents: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Agent, error) {
	q, args := query.NewBuilder(projection, defaultSort).BuildSingle("ID", id)

	a, err := repository.QueryOne(ctx, r.db, q, args, scanAgent)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	sources, err := r.loadKnowledgeSources(ctx, r.db, a.ID)
	if err != nil {
		return nil, err
	}
	a.KnowledgeSources = sources
	return &a, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Agent, error) {
	if cmd.Status == "" {
		cmd.Status = StatusDraft
	}
	if err := cmd.Status.Validate(); err != nil {
		return nil, err
	}

	q := fmt.Sprintf(`
		INSERT INTO agents AS a (name, description, model, instructions, system_prompt,
			model_config, tools, handoffs, capabilities, output_schema,
			memory_type, memory_config, input_guardrails, output_guardrails,
			status, owner_id, team_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING %s`, agentColumns)

	a, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Agent, error) {
		a, err := repository.QueryOne(ctx, tx, q, []any{
			cmd.Name, cmd.Description, cmd.Model, cmd.Instructions, cmd.SystemPrompt,
			nullableJSON(cmd.ModelConfig),
			pq.Array(textArray(cmd.Tools)), pq.Array(textArray(cmd.Handoffs)), pq.Array(textArray(cmd.Capabilities)),
			nullableJSON(cmd.OutputSchema),
			cmd.MemoryType, nullableJSON(cmd.MemoryConfig),
			nullableJSON(cmd.InputGuardrails), nullableJSON(cmd.OutputGuardrails),
			cmd.Status, cmd.OwnerID, cmd.TeamID,
		}, scanAgent)
		if err != nil {
			return a, err
		}

		a.KnowledgeSources, err = r.replaceKnowledgeSources(ctx, tx, a.ID, cmd.KnowledgeSources)
		return a, err
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("agent created", "id", a.ID, "name", a.Name, "owner", a.OwnerID)
	return &a, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Agent, error) {
	if cmd.Status == "" {
		cmd.Status = StatusDraft
	}
	if err := cmd.Status.Validate(); err != nil {
		return nil, err
	}

	q := fmt.Sprintf(`
		UPDATE agents AS a
		SET name = $1, description = $2, model = $3, instructions = $4, system_prompt = $5,
			model_config = $6, tools = $7, handoffs = $8, capabilities = $9, output_schema = $10,
			memory_type = $11, memory_config = $12, input_guardrails = $13, output_guardrails = $14,
			status = $15, team_id = $16, updated_at = NOW()
		WHERE a.id = $17
		RETURNING %s`, agentColumns)

	a, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Agent, error) {
		a, err := repository.QueryOne(ctx, tx, q, []any{
			cmd.Name, cmd.Description, cmd.Model, cmd.Instructions, cmd.SystemPrompt,
			nullableJSON(cmd.ModelConfig),
			pq.Array(textArray(cmd.Tools)), pq.Array(textArray(cmd.Handoffs)), pq.Array(textArray(cmd.Capabilities)),
			nullableJSON(cmd.OutputSchema),
			cmd.MemoryType, nullableJSON(cmd.MemoryConfig),
			nullableJSON(cmd.InputGuardrails), nullableJSON(cmd.OutputGuardrails),
			cmd.Status, cmd.TeamID, id,
		}, scanAgent)
		if err != nil {
			return a, err
		}

		// Knowledge sources are replaced wholesale on every update.
		if _, err := tx.ExecContext(ctx, "DELETE FROM knowledge_sources WHERE agent_id = $1", a.ID); err != nil {
			return a, fmt.Errorf("clear knowledge sources: %w", err)
		}
		a.KnowledgeSources, err = r.replaceKnowledgeSources(ctx, tx, a.ID, cmd.KnowledgeSources)
		return a, err
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("agent updated", "id", a.ID, "name", a.Name)
	return &a, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		err := repository.ExecExpectOne(ctx, tx, "DELETE FROM agents WHERE id = $1", id)
		return struct{}{}, err
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("agent deleted", "id", id)
	return nil
}

func (r *repo) loadKnowledgeSources(ctx context.Context, q repository.Queryer, agentID uuid.UUID) ([]KnowledgeSource, error) {
	sources, err := repository.QueryMany(ctx, q,
		`SELECT id, agent_id, name, type, content, url, created_at
		FROM knowledge_sources WHERE agent_id = $1 ORDER BY name`,
		[]any{agentID}, scanKnowledgeSource)
	if err != nil {
		return nil, fmt.Errorf("query knowledge sources: %w", err)
	}
	return sources, nil
}

func (r *repo) replaceKnowledgeSources(ctx context.Context, tx *sql.Tx, agentID uuid.UUID, cmds []KnowledgeSourceCommand) ([]KnowledgeSource, error) {
	if len(cmds) == 0 {
		return nil, nil
	}

	sources := make([]KnowledgeSource, 0, len(cmds))
	for _, cmd := range cmds {
		ks, err := repository.QueryOne(ctx, tx,
			`INSERT INTO knowledge_sources (agent_id, name, type, content, url)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, agent_id, name, type, content, url, created_at`,
			[]any{agentID, cmd.Name, cmd.Type, cmd.Content, cmd.URL},
			scanKnowledgeSource)
		if err != nil {
			return nil, fmt.Errorf("insert knowledge source %q: %w", cmd.Name, err)
		}
		sources = append(sources, ks)
	}
	return sources, nil
}

// textArray keeps array columns non-null: a nil slice writes as an empty
// text[] rather than NULL.
func textArray(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func nullableJSON(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	return []byte(raw)
}
