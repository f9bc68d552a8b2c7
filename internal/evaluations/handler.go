package evaluations

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/arbiterhq/arbiter/internal/gateway"
	"github.com/arbiterhq/arbiter/pkg/handlers"
	"github.com/arbiterhq/arbiter/pkg/pagination"
	"github.com/arbiterhq/arbiter/pkg/routes"
)

// Handler provides HTTP endpoints for evaluation queries and run triggers.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
}

// SearchRequest combines pagination and filter criteria for the search endpoint.
type SearchRequest struct {
	pagination.PageRequest
	Filters
}

// RunRequest identifies the queue an evaluation run should execute against.
type RunRequest struct {
	QueueID string `json:"queue_id"`
}

// NewHandler creates a Handler with the given system, logger, and pagination config.
func NewHandler(
	sys System,
	logger *slog.Logger,
	pagination pagination.Config,
) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "evaluations"),
		pagination: pagination,
	}
}

// Routes returns the route group definition for evaluation and run endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/evaluations", Handler: h.List},
			{Method: "GET", Pattern: "/evaluations/stats", Handler: h.Stats},
			{Method: "POST", Pattern: "/evaluations/search", Handler: h.Search},
			{Method: "POST", Pattern: "/runs", Handler: h.Run},
		},
	}
}

// List returns a paginated list of evaluations with optional query parameter filters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.sys.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Search accepts a JSON body with pagination and filter criteria and returns matching evaluations.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	req.PageRequest.Normalize(h.pagination)

	result, err := h.sys.List(r.Context(), req.PageRequest, req.Filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Stats returns per question and judge verdict counts with pass rates for the
// queue identified by the queue_id query parameter.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("queue_id")
	if raw == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrQueueRequired)
		return
	}

	queueID, err := uuid.Parse(raw)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidQueueID)
		return
	}

	stats, err := h.sys.Stats(r.Context(), queueID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, stats)
}

// Run triggers an evaluation run for the queue named in the request body and
// returns its summary. Plan-phase failures respond 500 with a classified hint.
func (h *Handler) Run(w http.ResponseWriter, r *http.Request) {
	var req RunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	if req.QueueID == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrQueueRequired)
		return
	}

	queueID, err := uuid.Parse(req.QueueID)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidQueueID)
		return
	}

	summary, err := h.sys.Run(r.Context(), queueID)
	if err != nil {
		h.logger.Error("evaluation run failed", "queue_id", queueID, "error", err)
		handlers.RespondJSON(w, http.StatusInternalServerError, map[string]string{
			"error": err.Error(),
			"hint":  gateway.Hint(gateway.Classify(err)),
		})
		return
	}

	handlers.RespondJSON(w, http.StatusOK, summary)
}
