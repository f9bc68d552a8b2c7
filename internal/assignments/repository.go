package assignments

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/arbiterhq/arbiter/pkg/query"
	"github.com/arbiterhq/arbiter/pkg/repository"
)

type repo struct {
	db     *sql.DB
	logger *slog.Logger
}

// New creates an assignment repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger) System {
	return &repo{
		db:     db,
		logger: logger.With("system", "assignments"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) ListForQueue(ctx context.Context, queueID uuid.UUID) ([]View, error) {
	qb := query.NewBuilder(projection)
	qb.WhereEquals("QueueID", queueID)

	q, args := qb.Build()
	items, err := repository.QueryMany(ctx, r.db, q, args, scanView)
	if err != nil {
		return nil, fmt.Errorf("query assignments: %w", err)
	}
	return items, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*View, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	// queue_id is copied from the question so an assignment can never point
	// at a queue the question does not belong to.
	insertQ := `
		INSERT INTO question_judges(queue_id, question_id, judge_id)
		SELECT q.queue_id, q.id, $2
		FROM questions q
		WHERE q.id = $1
		RETURNING id`

	var id uuid.UUID
	if err := r.db.QueryRowContext(ctx, insertQ, cmd.QuestionID, cmd.JudgeID).Scan(&id); err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	q, args := query.NewBuilder(projection).BuildSingle("ID", id)
	v, err := repository.QueryOne(ctx, r.db, q, args, scanView)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("assignment created",
		"id", v.ID,
		"question_id", v.QuestionID,
		"judge_id", v.JudgeID,
	)
	return &v, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	err := repository.ExecExpectOne(ctx, r.db,
		"DELETE FROM question_judges WHERE id = $1",
		id,
	)
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("assignment deleted", "id", id)
	return nil
}
