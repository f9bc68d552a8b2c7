package queues

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/arbiterhq/arbiter/pkg/pagination"
	"github.com/arbiterhq/arbiter/pkg/query"
	"github.com/arbiterhq/arbiter/pkg/repository"
)

type repo struct {
	db            *sql.DB
	logger        *slog.Logger
	pagination    pagination.Config
	maxImportSize int64
}

// New creates a queue repository implementing the System interface.
// maxImportSize bounds the accepted import request body in bytes.
func New(
	db *sql.DB,
	logger *slog.Logger,
	pagination pagination.Config,
	maxImportSize int64,
) System {
	return &repo{
		db:            db,
		logger:        logger.With("system", "queues"),
		pagination:    pagination,
		maxImportSize: maxImportSize,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination, r.maxImportSize)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
) (*pagination.PageResult[Queue], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Name")

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count queues: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanQueue)
	if err != nil {
		return nil, fmt.Errorf("query queues: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Queue, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	queue, err := repository.QueryOne(ctx, r.db, q, args, scanQueue)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &queue, nil
}

func (r *repo) Import(ctx context.Context, cmd ImportCommand) (*ImportResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	result, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (ImportResult, error) {
		var res ImportResult

		var queueID uuid.UUID
		if err := tx.QueryRowContext(ctx,
			"INSERT INTO queues(name) VALUES ($1) RETURNING id",
			cmd.Name,
		).Scan(&queueID); err != nil {
			return res, fmt.Errorf("insert queue: %w", err)
		}
		res.QueueID = queueID

		questionIDs := make(map[string]uuid.UUID, len(cmd.Questions))
		for _, q := range cmd.Questions {
			qType := q.Type
			if qType == "" {
				qType = "free_text"
			}

			var questionID uuid.UUID
			if err := tx.QueryRowContext(ctx,
				`INSERT INTO questions(queue_id, question_text, question_type)
				 VALUES ($1, $2, $3) RETURNING id`,
				queueID, q.Text, qType,
			).Scan(&questionID); err != nil {
				return res, fmt.Errorf("insert question %q: %w", q.Key, err)
			}
			questionIDs[q.Key] = questionID
			res.Questions++
		}

		for _, s := range cmd.Submissions {
			var submissionID uuid.UUID
			if err := tx.QueryRowContext(ctx,
				`INSERT INTO submissions(queue_id, labeling_task_id)
				 VALUES ($1, $2) RETURNING id`,
				queueID, s.LabelingTaskID,
			).Scan(&submissionID); err != nil {
				return res, fmt.Errorf("insert submission: %w", err)
			}
			res.Submissions++

			for key, a := range s.Answers {
				if _, err := tx.ExecContext(ctx,
					`INSERT INTO answers(submission_id, question_id, choice, reasoning)
					 VALUES ($1, $2, $3, $4)`,
					submissionID, questionIDs[key], a.Choice, a.Reasoning,
				); err != nil {
					return res, fmt.Errorf("insert answer for %q: %w", key, err)
				}
				res.Answers++
			}
		}

		return res, nil
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("queue imported",
		"queue_id", result.QueueID,
		"name", cmd.Name,
		"questions", result.Questions,
		"submissions", result.Submissions,
		"answers", result.Answers,
	)
	return &result, nil
}

func (r *repo) Submissions(ctx context.Context, queueID uuid.UUID) ([]Submission, error) {
	q := `SELECT id, queue_id, labeling_task_id, created_at
		  FROM submissions WHERE queue_id = $1 ORDER BY created_at`

	items, err := repository.QueryMany(ctx, r.db, q, []any{queueID}, scanSubmission)
	if err != nil {
		return nil, fmt.Errorf("query submissions: %w", err)
	}
	return items, nil
}

func (r *repo) Questions(ctx context.Context, queueID uuid.UUID) ([]Question, error) {
	q := `SELECT id, queue_id, question_text, question_type
		  FROM questions WHERE queue_id = $1 ORDER BY id`

	items, err := repository.QueryMany(ctx, r.db, q, []any{queueID}, scanQuestion)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	return items, nil
}

func (r *repo) Answers(ctx context.Context, submissionIDs []uuid.UUID) ([]Answer, error) {
	if len(submissionIDs) == 0 {
		return []Answer{}, nil
	}

	args := make([]any, len(submissionIDs))
	for i, id := range submissionIDs {
		args[i] = id
	}

	items, err := repository.QueryMany(ctx, r.db, answersQuery(len(submissionIDs)), args, scanAnswer)
	if err != nil {
		return nil, fmt.Errorf("query answers: %w", err)
	}
	return items, nil
}

// answersQuery selects answers for n submissions. DISTINCT ON picks the
// latest answer per (submission, question) pair when duplicates exist.
func answersQuery(n int) string {
	placeholders := make([]string, n)
	for i := range n {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	return fmt.Sprintf(`
		SELECT DISTINCT ON (submission_id, question_id)
			   id, submission_id, question_id, choice, reasoning, created_at
		FROM answers
		WHERE submission_id IN (%s)
		ORDER BY submission_id, question_id, created_at DESC`,
		strings.Join(placeholders, ", "),
	)
}
