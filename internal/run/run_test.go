package run_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"slices"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/arbiterhq/arbiter/internal/assignments"
	"github.com/arbiterhq/arbiter/internal/gateway"
	"github.com/arbiterhq/arbiter/internal/queues"
	"github.com/arbiterhq/arbiter/internal/run"
)

type fakeQueues struct {
	subs      []queues.Submission
	questions []queues.Question
	answers   []queues.Answer
	err       error
}

func (f *fakeQueues) Submissions(_ context.Context, _ uuid.UUID) ([]queues.Submission, error) {
	return f.subs, f.err
}

func (f *fakeQueues) Questions(_ context.Context, _ uuid.UUID) ([]queues.Question, error) {
	return f.questions, nil
}

func (f *fakeQueues) Answers(_ context.Context, _ []uuid.UUID) ([]queues.Answer, error) {
	return f.answers, nil
}

type fakeAssignments struct {
	views []assignments.View
}

func (f *fakeAssignments) ListForQueue(_ context.Context, _ uuid.UUID) ([]assignments.View, error) {
	return f.views, nil
}

type fakeWriter struct {
	records []run.Record
	err     error
}

func (f *fakeWriter) Insert(_ context.Context, rec run.Record) error {
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, rec)
	return nil
}

type fakeGateway struct {
	calls    int
	models   []string
	prompts  []string
	complete func(call int) (string, error)
}

func (f *fakeGateway) Complete(_ context.Context, model, prompt string) (string, error) {
	call := f.calls
	f.calls++
	f.models = append(f.models, model)
	f.prompts = append(f.prompts, prompt)
	return f.complete(call)
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func ptr(s string) *string { return &s }

// fixture builds one submission, one question, and one active assignment with
// a matching answer: a single-unit plan.
func fixture() (*fakeQueues, *fakeAssignments) {
	subID := uuid.New()
	qID := uuid.New()
	queueID := uuid.New()

	q := &fakeQueues{
		subs:      []queues.Submission{{ID: subID, QueueID: queueID}},
		questions: []queues.Question{{ID: qID, QueueID: queueID, QuestionText: "Is the answer complete?"}},
		answers: []queues.Answer{{
			ID:           uuid.New(),
			SubmissionID: subID,
			QuestionID:   qID,
			Choice:       ptr("yes"),
			Reasoning:    ptr("covers everything"),
		}},
	}

	a := &fakeAssignments{
		views: []assignments.View{{
			ID:           uuid.New(),
			QueueID:      queueID,
			QuestionID:   qID,
			JudgeID:      uuid.New(),
			JudgeName:    "completeness",
			SystemPrompt: "Grade for completeness.",
			ModelName:    "judge-model",
			JudgeActive:  true,
		}},
	}

	return q, a
}

func runtime(q *fakeQueues, a *fakeAssignments, w *fakeWriter, g *fakeGateway) *run.Runtime {
	return &run.Runtime{
		Queues:       q,
		Assignments:  a,
		Evaluations:  w,
		Gateway:      g,
		DefaultModel: "default-model",
		Logger:       discard(),
	}
}

func TestExecuteEmptyPlans(t *testing.T) {
	q, a := fixture()

	tests := []struct {
		name string
		prep func(q *fakeQueues, a *fakeAssignments)
		note string
	}{
		{
			name: "no submissions",
			prep: func(q *fakeQueues, _ *fakeAssignments) { q.subs = nil },
			note: "queue has no submissions",
		},
		{
			name: "no questions",
			prep: func(q *fakeQueues, _ *fakeAssignments) { q.questions = nil },
			note: "queue has no questions",
		},
		{
			name: "no assignments",
			prep: func(_ *fakeQueues, a *fakeAssignments) { a.views = nil },
			note: "queue has no judge assignments",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fq := &fakeQueues{subs: q.subs, questions: q.questions, answers: q.answers}
			fa := &fakeAssignments{views: a.views}
			tt.prep(fq, fa)

			g := &fakeGateway{complete: func(int) (string, error) {
				t.Fatal("gateway must not be called for an empty plan")
				return "", nil
			}}

			summary, err := run.Execute(context.Background(), runtime(fq, fa, &fakeWriter{}, g), uuid.New())
			if err != nil {
				t.Fatalf("execute failed: %v", err)
			}

			if summary.Planned != 0 || summary.Completed != 0 || summary.Failed != 0 {
				t.Errorf("expected zero summary, got %+v", summary)
			}
			if summary.Note != tt.note {
				t.Errorf("note = %q, want %q", summary.Note, tt.note)
			}
			if len(summary.Warnings) != 0 {
				t.Errorf("expected no warnings, got %v", summary.Warnings)
			}
		})
	}
}

func TestExecuteCompletesUnit(t *testing.T) {
	q, a := fixture()
	w := &fakeWriter{}
	g := &fakeGateway{complete: func(int) (string, error) {
		return `{"verdict": "pass", "reasoning": "all criteria met"}`, nil
	}}

	summary, err := run.Execute(context.Background(), runtime(q, a, w, g), uuid.New())
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	if summary.Planned != 1 || summary.Completed != 1 || summary.Failed != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if len(w.records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(w.records))
	}

	rec := w.records[0]
	if rec.Verdict != run.VerdictPass {
		t.Errorf("verdict = %q, want %q", rec.Verdict, run.VerdictPass)
	}
	if rec.Reasoning != "all criteria met" {
		t.Errorf("reasoning = %q", rec.Reasoning)
	}
	if rec.JudgeID != a.views[0].JudgeID {
		t.Error("record judge does not match assignment")
	}
}

func TestExecuteRerunAppendsEvaluations(t *testing.T) {
	q, a := fixture()
	w := &fakeWriter{}
	g := &fakeGateway{complete: func(int) (string, error) {
		return `{"verdict": "pass", "reasoning": "ok"}`, nil
	}}

	queueID := uuid.New()
	rt := runtime(q, a, w, g)

	for range 2 {
		summary, err := run.Execute(context.Background(), rt, queueID)
		if err != nil {
			t.Fatalf("execute failed: %v", err)
		}
		if summary.Planned != 1 || summary.Completed != 1 {
			t.Fatalf("unexpected summary: %+v", summary)
		}
	}

	// evaluations are append-only: the second run inserts a fresh record
	// for the same (submission, question, judge) triple.
	if len(w.records) != 2 {
		t.Fatalf("expected 2 records after rerun, got %d", len(w.records))
	}
	first, second := w.records[0], w.records[1]
	if first.SubmissionID != second.SubmissionID ||
		first.QuestionID != second.QuestionID ||
		first.JudgeID != second.JudgeID {
		t.Error("rerun records do not share the same submission, question, and judge")
	}
}

func TestExecuteParsesFencedResponse(t *testing.T) {
	q, a := fixture()
	w := &fakeWriter{}
	g := &fakeGateway{complete: func(int) (string, error) {
		return "Here is my assessment:\n```json\n{\"verdict\": \"fail\", \"reasoning\": \"missing detail\"}\n```", nil
	}}

	summary, err := run.Execute(context.Background(), runtime(q, a, w, g), uuid.New())
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	if summary.Completed != 1 {
		t.Fatalf("expected fenced response to parse, got %+v", summary)
	}
	if w.records[0].Verdict != run.VerdictFail {
		t.Errorf("verdict = %q, want fail", w.records[0].Verdict)
	}
}

func TestExecutePromptContents(t *testing.T) {
	q, a := fixture()
	w := &fakeWriter{}
	g := &fakeGateway{complete: func(int) (string, error) {
		return `{"verdict": "pass", "reasoning": "ok"}`, nil
	}}

	if _, err := run.Execute(context.Background(), runtime(q, a, w, g), uuid.New()); err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	prompt := g.prompts[0]
	for _, want := range []string{
		"Grade for completeness.",
		"Is the answer complete?",
		"yes",
		"covers everything",
		`"verdict"`,
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestExecuteUsesSentinelForMissingAnswerFields(t *testing.T) {
	q, a := fixture()
	q.answers[0].Choice = nil
	q.answers[0].Reasoning = ptr("")

	g := &fakeGateway{complete: func(int) (string, error) {
		return `{"verdict": "pass", "reasoning": "ok"}`, nil
	}}

	if _, err := run.Execute(context.Background(), runtime(q, a, &fakeWriter{}, g), uuid.New()); err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	if strings.Count(g.prompts[0], "N/A") != 2 {
		t.Errorf("expected both answer slots to fall back to N/A:\n%s", g.prompts[0])
	}
}

func TestExecuteModelSelection(t *testing.T) {
	tests := []struct {
		name      string
		modelName string
		want      string
	}{
		{"judge model", "judge-model", "judge-model"},
		{"default model", "", "default-model"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, a := fixture()
			a.views[0].ModelName = tt.modelName

			g := &fakeGateway{complete: func(int) (string, error) {
				return `{"verdict": "pass", "reasoning": "ok"}`, nil
			}}

			if _, err := run.Execute(context.Background(), runtime(q, a, &fakeWriter{}, g), uuid.New()); err != nil {
				t.Fatalf("execute failed: %v", err)
			}

			if g.models[0] != tt.want {
				t.Errorf("model = %q, want %q", g.models[0], tt.want)
			}
		})
	}
}

func TestExecuteExcludesUnits(t *testing.T) {
	t.Run("inactive judge", func(t *testing.T) {
		q, a := fixture()
		a.views[0].JudgeActive = false

		g := &fakeGateway{complete: func(int) (string, error) {
			t.Fatal("gateway must not be called for an inactive judge")
			return "", nil
		}}

		summary, err := run.Execute(context.Background(), runtime(q, a, &fakeWriter{}, g), uuid.New())
		if err != nil {
			t.Fatalf("execute failed: %v", err)
		}
		if summary.Planned != 0 {
			t.Errorf("planned = %d, want 0", summary.Planned)
		}
	})

	t.Run("missing answer", func(t *testing.T) {
		q, a := fixture()
		q.answers = nil

		g := &fakeGateway{complete: func(int) (string, error) {
			t.Fatal("gateway must not be called without an answer")
			return "", nil
		}}

		summary, err := run.Execute(context.Background(), runtime(q, a, &fakeWriter{}, g), uuid.New())
		if err != nil {
			t.Fatalf("execute failed: %v", err)
		}
		if summary.Planned != 0 {
			t.Errorf("planned = %d, want 0", summary.Planned)
		}
	})
}

func TestExecuteUnitFailures(t *testing.T) {
	tests := []struct {
		name     string
		response string
		err      error
		writer   error
		warning  string
	}{
		{
			name:    "rate limited",
			err:     gateway.ErrRateLimited,
			warning: "llm calls hit a provider quota or rate limit",
		},
		{
			name:    "unauthorized",
			err:     gateway.ErrUnauthorized,
			warning: "llm provider rejected the configured credentials",
		},
		{
			name:    "timed out",
			err:     context.DeadlineExceeded,
			warning: "llm calls timed out",
		},
		{
			name:    "other error",
			err:     errors.New("connection reset"),
			warning: "llm call failed",
		},
		{
			name:     "empty response",
			response: "",
			warning:  "empty llm response",
		},
		{
			name:     "unparseable response",
			response: "the answer looks fine to me",
			warning:  "llm response was not valid json",
		},
		{
			name:     "invalid verdict value",
			response: `{"verdict": "maybe", "reasoning": "unsure"}`,
			warning:  "invalid verdict payload",
		},
		{
			name:     "missing reasoning",
			response: `{"verdict": "pass"}`,
			warning:  "invalid verdict payload",
		},
		{
			name:     "write failure",
			response: `{"verdict": "pass", "reasoning": "ok"}`,
			writer:   errors.New("insert failed"),
			warning:  "evaluation could not be saved",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, a := fixture()
			w := &fakeWriter{err: tt.writer}
			g := &fakeGateway{complete: func(int) (string, error) {
				return tt.response, tt.err
			}}

			summary, err := run.Execute(context.Background(), runtime(q, a, w, g), uuid.New())
			if err != nil {
				t.Fatalf("execute failed: %v", err)
			}

			if summary.Planned != 1 || summary.Completed != 0 || summary.Failed != 1 {
				t.Fatalf("unexpected summary: %+v", summary)
			}
			if !slices.Contains(summary.Warnings, tt.warning) {
				t.Errorf("warnings %v missing %q", summary.Warnings, tt.warning)
			}
			if len(w.records) != 0 {
				t.Errorf("expected no records written, got %d", len(w.records))
			}
		})
	}
}

func TestExecutePartialFailure(t *testing.T) {
	// three submissions, one question, one judge: unit 2 times out,
	// the others complete.
	queueID := uuid.New()
	qID := uuid.New()

	q := &fakeQueues{
		questions: []queues.Question{{ID: qID, QueueID: queueID, QuestionText: "q"}},
	}
	for range 3 {
		subID := uuid.New()
		q.subs = append(q.subs, queues.Submission{ID: subID, QueueID: queueID})
		q.answers = append(q.answers, queues.Answer{
			ID: uuid.New(), SubmissionID: subID, QuestionID: qID, Choice: ptr("a"),
		})
	}

	a := &fakeAssignments{views: []assignments.View{{
		ID: uuid.New(), QueueID: queueID, QuestionID: qID, JudgeID: uuid.New(),
		SystemPrompt: "rubric", ModelName: "m", JudgeActive: true,
	}}}

	w := &fakeWriter{}
	g := &fakeGateway{complete: func(call int) (string, error) {
		if call == 1 {
			return "", context.DeadlineExceeded
		}
		return `{"verdict": "pass", "reasoning": "ok"}`, nil
	}}

	summary, err := run.Execute(context.Background(), runtime(q, a, w, g), queueID)
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	if summary.Planned != 3 || summary.Completed != 2 || summary.Failed != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if summary.Planned != summary.Completed+summary.Failed {
		t.Error("planned != completed + failed")
	}
	if !slices.Contains(summary.Warnings, "llm calls timed out") {
		t.Errorf("warnings = %v", summary.Warnings)
	}
	if len(w.records) != 2 {
		t.Errorf("expected 2 records, got %d", len(w.records))
	}
}

func TestExecuteDeduplicatesWarnings(t *testing.T) {
	q, a := fixture()

	// second submission with an answer to the same question: two units,
	// both rate limited, one warning.
	subID := uuid.New()
	q.subs = append(q.subs, queues.Submission{ID: subID, QueueID: q.subs[0].QueueID})
	q.answers = append(q.answers, queues.Answer{
		ID: uuid.New(), SubmissionID: subID, QuestionID: q.questions[0].ID, Choice: ptr("b"),
	})

	g := &fakeGateway{complete: func(int) (string, error) {
		return "", gateway.ErrRateLimited
	}}

	summary, err := run.Execute(context.Background(), runtime(q, a, &fakeWriter{}, g), uuid.New())
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	if summary.Failed != 2 {
		t.Fatalf("failed = %d, want 2", summary.Failed)
	}
	if len(summary.Warnings) != 1 {
		t.Errorf("expected deduplicated warnings, got %v", summary.Warnings)
	}
}

func TestExecutePlanFailureAborts(t *testing.T) {
	q := &fakeQueues{err: errors.New("connection refused")}
	a := &fakeAssignments{}
	g := &fakeGateway{complete: func(int) (string, error) { return "", nil }}

	_, err := run.Execute(context.Background(), runtime(q, a, &fakeWriter{}, g), uuid.New())
	if err == nil {
		t.Fatal("expected plan-phase error to abort the run")
	}
	if !strings.Contains(err.Error(), "load submissions") {
		t.Errorf("err = %v", err)
	}
}
