package api

import (
	"github.com/arbiterhq/arbiter/internal/assignments"
	"github.com/arbiterhq/arbiter/internal/config"
	"github.com/arbiterhq/arbiter/internal/evaluations"
	"github.com/arbiterhq/arbiter/internal/judges"
	"github.com/arbiterhq/arbiter/internal/queues"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Judges      judges.System
	Queues      queues.System
	Assignments assignments.System
	Evaluations evaluations.System
}

// NewDomain creates all domain systems from the API runtime.
// The evaluations system receives the queue and assignment systems so its run
// runtime can plan against them.
func NewDomain(runtime *Runtime, cfg *config.Config) *Domain {
	judgesSystem := judges.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
	)

	queuesSystem := queues.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
		cfg.API.MaxImportSizeBytes(),
	)

	assignmentsSystem := assignments.New(
		runtime.Database.Connection(),
		runtime.Logger,
	)

	evaluationsSystem := evaluations.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
		runtime.Gateway,
		queuesSystem,
		assignmentsSystem,
		runtime.DefaultModel,
	)

	return &Domain{
		Judges:      judgesSystem,
		Queues:      queuesSystem,
		Assignments: assignmentsSystem,
		Evaluations: evaluationsSystem,
	}
}
