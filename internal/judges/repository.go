package judges

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/arbiterhq/arbiter/pkg/pagination"
	"github.com/arbiterhq/arbiter/pkg/query"
	"github.com/arbiterhq/arbiter/pkg/repository"
)

const judgeColumns = `id, name, system_prompt, model_name, active, created_at, updated_at`

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a judge repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "judges"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Judge], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Name", "SystemPrompt")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count judges: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanJudge)
	if err != nil {
		return nil, fmt.Errorf("query judges: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Judge, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	j, err := repository.QueryOne(ctx, r.db, q, args, scanJudge)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &j, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Judge, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	insertQ := fmt.Sprintf(`
		INSERT INTO judges(name, system_prompt, model_name)
		VALUES ($1, $2, $3)
		RETURNING %s`, judgeColumns)

	j, err := repository.QueryOne(ctx, r.db, insertQ,
		[]any{cmd.Name, cmd.SystemPrompt, cmd.ModelName},
		scanJudge,
	)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("judge created", "id", j.ID, "name", j.Name, "model", j.ModelName)
	return &j, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Judge, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	updateQ := fmt.Sprintf(`
		UPDATE judges
		SET name = $1, system_prompt = $2, model_name = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING %s`, judgeColumns)

	j, err := repository.QueryOne(ctx, r.db, updateQ,
		[]any{cmd.Name, cmd.SystemPrompt, cmd.ModelName, id},
		scanJudge,
	)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("judge updated", "id", j.ID, "name", j.Name)
	return &j, nil
}

func (r *repo) Activate(ctx context.Context, id uuid.UUID) (*Judge, error) {
	return r.setActive(ctx, id, true)
}

func (r *repo) Deactivate(ctx context.Context, id uuid.UUID) (*Judge, error) {
	return r.setActive(ctx, id, false)
}

func (r *repo) setActive(ctx context.Context, id uuid.UUID, active bool) (*Judge, error) {
	activeQ := fmt.Sprintf(`
		UPDATE judges
		SET active = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING %s`, judgeColumns)

	j, err := repository.QueryOne(ctx, r.db, activeQ, []any{active, id}, scanJudge)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("judge active state changed", "id", j.ID, "active", j.Active)
	return &j, nil
}
