package queues

import (
	"context"

	"github.com/google/uuid"

	"github.com/arbiterhq/arbiter/pkg/pagination"
)

// System defines the public contract for queue domain operations.
// Submissions, Questions, and Answers are the plan-phase reads consumed by
// the evaluation run orchestrator.
type System interface {
	Handler() *Handler

	List(ctx context.Context, page pagination.PageRequest) (*pagination.PageResult[Queue], error)
	Find(ctx context.Context, id uuid.UUID) (*Queue, error)
	Import(ctx context.Context, cmd ImportCommand) (*ImportResult, error)

	Submissions(ctx context.Context, queueID uuid.UUID) ([]Submission, error)
	Questions(ctx context.Context, queueID uuid.UUID) ([]Question, error)

	// Answers returns at most one answer per (submission, question) pair for
	// the given submissions: the latest by creation time when duplicates exist.
	Answers(ctx context.Context, submissionIDs []uuid.UUID) ([]Answer, error)
}
