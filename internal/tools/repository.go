package tools

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

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a new tools repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "tools"),
		pagination: pagination,
	}
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Tool], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Name", "DisplayName", "Description")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count tools: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanTool)
	if err != nil {
		return nil, fmt.Errorf("query tools: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Tool, error) {
	q, args := query.NewBuilder(projection, defaultSort).BuildSingle("ID", id)

	t, err := repository.QueryOne(ctx, r.db, q, args, scanTool)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &t, nil
}

// FindByRefs looks up tool records whose primary key or canonical name matches
// any of the given references. Unmatched references are simply absent from the
// result.
func (r *repo) FindByRefs(ctx context.Context, refs []string) ([]Tool, error) {
	if len(refs) == 0 {
		return nil, nil
	}

	q := fmt.Sprintf(
		"SELECT %s FROM %s WHERE t.id::text = ANY($1) OR t.name = ANY($1)",
		projection.Columns(),
		projection.Table(),
	)

	items, err := repository.QueryMany(ctx, r.db, q, []any{pq.Array(refs)}, scanTool)
	if err != nil {
		return nil, fmt.Errorf("query tools by refs: %w", err)
	}
	return items, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Tool, error) {
	if err := validateSchemaBlob(cmd.Parameters); err != nil {
		return nil, err
	}

	q := `
		INSERT INTO tools AS t (name, display_name, category, description, parameters, output_schema, body)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING t.id, t.name, t.display_name, t.category, t.description,
			t.parameters, t.output_schema, t.body, t.is_builtin, t.created_at, t.updated_at`

	t, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Tool, error) {
		return repository.QueryOne(ctx, tx, q, []any{
			cmd.Name, cmd.DisplayName, cmd.Category, cmd.Description,
			nullableJSON(cmd.Parameters), nullableJSON(cmd.OutputSchema), cmd.Body,
		}, scanTool)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("tool created", "id", t.ID, "name", t.Name)
	return &t, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Tool, error) {
	if err := validateSchemaBlob(cmd.Parameters); err != nil {
		return nil, err
	}
	if err := r.guardBuiltin(ctx, id); err != nil {
		return nil, err
	}

	q := `
		UPDATE tools AS t
		SET display_name = $1, category = $2, description = $3,
			parameters = $4, output_schema = $5, body = $6, updated_at = NOW()
		WHERE t.id = $7 AND NOT t.is_builtin
		RETURNING t.id, t.name, t.display_name, t.category, t.description,
			t.parameters, t.output_schema, t.body, t.is_builtin, t.created_at, t.updated_at`

	t, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Tool, error) {
		return repository.QueryOne(ctx, tx, q, []any{
			cmd.DisplayName, cmd.Category, cmd.Description,
			nullableJSON(cmd.Parameters), nullableJSON(cmd.OutputSchema), cmd.Body, id,
		}, scanTool)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("tool updated", "id", t.ID, "name", t.Name)
	return &t, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.guardBuiltin(ctx, id); err != nil {
		return err
	}

	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		err := repository.ExecExpectOne(ctx, tx, "DELETE FROM tools WHERE id = $1 AND NOT is_builtin", id)
		return struct{}{}, err
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("tool deleted", "id", id)
	return nil
}

// guardBuiltin rejects mutation of builtin rows before any write is attempted.
func (r *repo) guardBuiltin(ctx context.Context, id uuid.UUID) error {
	var isBuiltin bool
	err := r.db.QueryRowContext(ctx, "SELECT is_builtin FROM tools WHERE id = $1", id).Scan(&isBuiltin)
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	if isBuiltin {
		return ErrBuiltinImmutable
	}
	return nil
}

func validateSchemaBlob(raw json.RawMessage) error {
	if len(raw) == 0 {
		return nil
	}
	var probe any
	if err := json.Unmarshal(raw, &probe); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}
	return nil
}

func nullableJSON(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	return []byte(raw)
}
