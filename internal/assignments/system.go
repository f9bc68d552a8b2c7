package assignments

import (
	"context"

	"github.com/google/uuid"
)

// System defines the public contract for assignment domain operations.
// ListForQueue is the plan-phase read consumed by the evaluation run.
type System interface {
	Handler() *Handler

	ListForQueue(ctx context.Context, queueID uuid.UUID) ([]View, error)
	Create(ctx context.Context, cmd CreateCommand) (*View, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
