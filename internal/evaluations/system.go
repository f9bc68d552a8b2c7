package evaluations

import (
	"context"

	"github.com/google/uuid"

	"github.com/arbiterhq/arbiter/internal/run"
	"github.com/arbiterhq/arbiter/pkg/pagination"
)

// System defines the public contract for evaluation domain operations.
// Insert satisfies run.Writer so the orchestrator persists through the same
// repository that serves reads.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Evaluation], error)

	Insert(ctx context.Context, rec run.Record) error
	Stats(ctx context.Context, queueID uuid.UUID) ([]Stat, error)
	Run(ctx context.Context, queueID uuid.UUID) (*run.Summary, error)
}
