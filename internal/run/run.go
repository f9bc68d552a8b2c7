// Package run implements the evaluation run orchestrator: it expands a
// queue's submissions, questions, and judge assignments into a work plan,
// executes one LLM call per unit, parses each response into a verdict, and
// writes the results while accumulating an aggregate summary.
package run

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"github.com/arbiterhq/arbiter/internal/assignments"
	"github.com/arbiterhq/arbiter/internal/gateway"
	"github.com/arbiterhq/arbiter/internal/queues"
	"github.com/arbiterhq/arbiter/pkg/formatting"
)

// QueueSource provides the plan-phase reads scoped to one queue.
type QueueSource interface {
	Submissions(ctx context.Context, queueID uuid.UUID) ([]queues.Submission, error)
	Questions(ctx context.Context, queueID uuid.UUID) ([]queues.Question, error)
	Answers(ctx context.Context, submissionIDs []uuid.UUID) ([]queues.Answer, error)
}

// AssignmentSource provides assignments joined with their judge definitions.
type AssignmentSource interface {
	ListForQueue(ctx context.Context, queueID uuid.UUID) ([]assignments.View, error)
}

// Record is one evaluation result produced by a completed unit.
type Record struct {
	SubmissionID uuid.UUID
	QuestionID   uuid.UUID
	JudgeID      uuid.UUID
	Verdict      string
	Reasoning    string
}

// Writer persists evaluation records. Inserts are append-only; re-running a
// queue adds new rows rather than replacing earlier ones.
type Writer interface {
	Insert(ctx context.Context, rec Record) error
}

// Runtime bundles the collaborators an evaluation run executes against.
type Runtime struct {
	Queues       QueueSource
	Assignments  AssignmentSource
	Evaluations  Writer
	Gateway      gateway.System
	DefaultModel string
	Logger       *slog.Logger
}

// Summary aggregates the outcome of one evaluation run.
// Planned always equals Completed + Failed.
type Summary struct {
	Planned   int      `json:"planned"`
	Completed int      `json:"completed"`
	Failed    int      `json:"failed"`
	Note      string   `json:"note,omitempty"`
	Warnings  []string `json:"warnings"`
}

// Verdict values a judge response may carry.
const (
	VerdictPass         = "pass"
	VerdictFail         = "fail"
	VerdictInconclusive = "inconclusive"
)

type verdictPayload struct {
	Verdict   string `json:"verdict"`
	Reasoning string `json:"reasoning"`
}

// Execute runs every unit of work for the queue: one LLM call per
// (submission, question, active assigned judge) triple that has an answer.
// Units execute strictly sequentially. Unit failures are absorbed into the
// summary; only plan-phase store failures abort the run with an error.
func Execute(ctx context.Context, rt *Runtime, queueID uuid.UUID) (*Summary, error) {
	logger := rt.Logger.With("queue_id", queueID)

	subs, err := rt.Queues.Submissions(ctx, queueID)
	if err != nil {
		return nil, fmt.Errorf("load submissions: %w", err)
	}

	questions, err := rt.Queues.Questions(ctx, queueID)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}

	assigns, err := rt.Assignments.ListForQueue(ctx, queueID)
	if err != nil {
		return nil, fmt.Errorf("load assignments: %w", err)
	}

	summary := &Summary{Warnings: []string{}}

	if note := emptyPlanNote(subs, questions, assigns); note != "" {
		summary.Note = note
		logger.Info("evaluation run skipped", "note", note)
		return summary, nil
	}

	submissionIDs := make([]uuid.UUID, len(subs))
	for i, s := range subs {
		submissionIDs[i] = s.ID
	}

	answers, err := rt.Queues.Answers(ctx, submissionIDs)
	if err != nil {
		return nil, fmt.Errorf("load answers: %w", err)
	}

	answerFor := make(map[uuid.UUID]map[uuid.UUID]queues.Answer, len(subs))
	for _, a := range answers {
		byQuestion, ok := answerFor[a.SubmissionID]
		if !ok {
			byQuestion = make(map[uuid.UUID]queues.Answer)
			answerFor[a.SubmissionID] = byQuestion
		}
		byQuestion[a.QuestionID] = a
	}

	assignsFor := make(map[uuid.UUID][]assignments.View)
	for _, v := range assigns {
		assignsFor[v.QuestionID] = append(assignsFor[v.QuestionID], v)
	}

	warnings := make(map[string]struct{})
	warn := func(msg string) {
		warnings[msg] = struct{}{}
	}

	for _, sub := range subs {
		for _, question := range questions {
			for _, assign := range assignsFor[question.ID] {
				if !assign.JudgeActive {
					continue
				}

				answer, ok := answerFor[sub.ID][question.ID]
				if !ok {
					continue
				}

				summary.Planned++
				if rt.executeUnit(ctx, sub.ID, question, assign, answer, warn) {
					summary.Completed++
				} else {
					summary.Failed++
				}
			}
		}
	}

	summary.Warnings = collectWarnings(warnings)

	logger.Info("evaluation run finished",
		"planned", summary.Planned,
		"completed", summary.Completed,
		"failed", summary.Failed,
		"warnings", len(summary.Warnings),
	)
	return summary, nil
}

// executeUnit performs one LLM call and persists the parsed verdict.
// Returns true when a record was written.
func (rt *Runtime) executeUnit(
	ctx context.Context,
	submissionID uuid.UUID,
	question queues.Question,
	assign assignments.View,
	answer queues.Answer,
	warn func(string),
) bool {
	model := assign.ModelName
	if model == "" {
		model = rt.DefaultModel
	}

	prompt := buildPrompt(assign.SystemPrompt, question.QuestionText, answer)

	text, err := rt.Gateway.Complete(ctx, model, prompt)
	if err != nil {
		warn(categoryWarning(gateway.Classify(err)))
		rt.Logger.Warn("llm call failed",
			"submission_id", submissionID,
			"question_id", question.ID,
			"judge_id", assign.JudgeID,
			"error", err,
		)
		return false
	}

	if text == "" {
		warn("empty llm response")
		return false
	}

	payload, err := formatting.Parse[verdictPayload](text)
	if err != nil {
		warn("llm response was not valid json")
		return false
	}

	if !isValidVerdict(payload.Verdict) || payload.Reasoning == "" {
		warn("invalid verdict payload")
		return false
	}

	rec := Record{
		SubmissionID: submissionID,
		QuestionID:   question.ID,
		JudgeID:      assign.JudgeID,
		Verdict:      payload.Verdict,
		Reasoning:    payload.Reasoning,
	}

	if err := rt.Evaluations.Insert(ctx, rec); err != nil {
		warn("evaluation could not be saved")
		rt.Logger.Warn("evaluation insert failed",
			"submission_id", submissionID,
			"question_id", question.ID,
			"judge_id", assign.JudgeID,
			"error", err,
		)
		return false
	}

	return true
}

func emptyPlanNote(
	subs []queues.Submission,
	questions []queues.Question,
	assigns []assignments.View,
) string {
	switch {
	case len(subs) == 0:
		return "queue has no submissions"
	case len(questions) == 0:
		return "queue has no questions"
	case len(assigns) == 0:
		return "queue has no judge assignments"
	default:
		return ""
	}
}

func categoryWarning(c gateway.Category) string {
	switch c {
	case gateway.CategoryRateLimited:
		return "llm calls hit a provider quota or rate limit"
	case gateway.CategoryUnauthorized:
		return "llm provider rejected the configured credentials"
	case gateway.CategoryTimedOut:
		return "llm calls timed out"
	default:
		return "llm call failed"
	}
}

func isValidVerdict(v string) bool {
	return v == VerdictPass || v == VerdictFail || v == VerdictInconclusive
}

func collectWarnings(set map[string]struct{}) []string {
	result := make([]string, 0, len(set))
	for msg := range set {
		result = append(result, msg)
	}
	slices.Sort(result)
	return result
}
