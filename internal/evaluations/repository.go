package evaluations

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/arbiterhq/arbiter/internal/gateway"
	"github.com/arbiterhq/arbiter/internal/run"
	"github.com/arbiterhq/arbiter/pkg/pagination"
	"github.com/arbiterhq/arbiter/pkg/query"
	"github.com/arbiterhq/arbiter/pkg/repository"
)

type repo struct {
	db         *sql.DB
	rt         *run.Runtime
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates an evaluation repository implementing the System interface.
// It internally constructs the run runtime from the provided collaborators;
// the repository itself serves as the runtime's writer.
func New(
	db *sql.DB,
	logger *slog.Logger,
	pagination pagination.Config,
	gw gateway.System,
	queues run.QueueSource,
	assignments run.AssignmentSource,
	defaultModel string,
) System {
	r := &repo{
		db:         db,
		logger:     logger.With("system", "evaluations"),
		pagination: pagination,
	}
	r.rt = &run.Runtime{
		Queues:       queues,
		Assignments:  assignments,
		Evaluations:  r,
		Gateway:      gw,
		DefaultModel: defaultModel,
		Logger:       logger.With("workflow", "run"),
	}
	return r
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Evaluation], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Reasoning")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count evaluations: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanEvaluation)
	if err != nil {
		return nil, fmt.Errorf("query evaluations: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Insert(ctx context.Context, rec run.Record) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO evaluations(submission_id, question_id, judge_id, verdict, reasoning)
		 VALUES ($1, $2, $3, $4, $5)`,
		rec.SubmissionID, rec.QuestionID, rec.JudgeID, rec.Verdict, rec.Reasoning,
	)
	if err != nil {
		return fmt.Errorf("insert evaluation: %w", err)
	}
	return nil
}

func (r *repo) Stats(ctx context.Context, queueID uuid.UUID) ([]Stat, error) {
	q := `
		SELECT e.question_id, e.judge_id,
			   COUNT(*) FILTER (WHERE e.verdict = 'pass'),
			   COUNT(*) FILTER (WHERE e.verdict = 'fail'),
			   COUNT(*) FILTER (WHERE e.verdict = 'inconclusive')
		FROM evaluations e
		JOIN submissions s ON s.id = e.submission_id
		WHERE s.queue_id = $1
		GROUP BY e.question_id, e.judge_id
		ORDER BY e.question_id, e.judge_id`

	items, err := repository.QueryMany(ctx, r.db, q, []any{queueID}, scanStat)
	if err != nil {
		return nil, fmt.Errorf("query stats: %w", err)
	}
	return items, nil
}

func (r *repo) Run(ctx context.Context, queueID uuid.UUID) (*run.Summary, error) {
	return run.Execute(ctx, r.rt, queueID)
}
