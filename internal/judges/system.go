package judges

import (
	"context"

	"github.com/google/uuid"

	"github.com/arbiterhq/arbiter/pkg/pagination"
)

// System defines the public contract for judge domain operations.
// Judges are never deleted; Deactivate retires them while preserving
// any evaluations they produced.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Judge], error)

	Find(ctx context.Context, id uuid.UUID) (*Judge, error)
	Create(ctx context.Context, cmd CreateCommand) (*Judge, error)
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Judge, error)
	Activate(ctx context.Context, id uuid.UUID) (*Judge, error)
	Deactivate(ctx context.Context, id uuid.UUID) (*Judge, error)
}
