package api

import (
	"net/http"

	"github.com/arbiterhq/arbiter/pkg/routes"
)

func registerRoutes(mux *http.ServeMux, domain *Domain) {
	routes.Register(
		mux,
		domain.Judges.Handler().Routes(),
		domain.Queues.Handler().Routes(),
		domain.Assignments.Handler().Routes(),
		domain.Evaluations.Handler().Routes(),
	)
}
