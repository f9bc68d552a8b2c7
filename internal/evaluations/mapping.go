package evaluations

import (
	"net/url"

	"github.com/google/uuid"

	"github.com/arbiterhq/arbiter/internal/run"
	"github.com/arbiterhq/arbiter/pkg/query"
	"github.com/arbiterhq/arbiter/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "evaluations", "e").
	Join("JOIN public.submissions s ON s.id = e.submission_id").
	Project("id", "ID").
	ProjectJoined("s.queue_id", "QueueID").
	Project("submission_id", "SubmissionID").
	Project("question_id", "QuestionID").
	Project("judge_id", "JudgeID").
	Project("verdict", "Verdict").
	Project("reasoning", "Reasoning").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for evaluation queries.
// Nil or empty fields are ignored. Verdicts is multi-valued to back the
// results table's checkbox filtering.
type Filters struct {
	QueueID      *uuid.UUID `json:"queue_id,omitempty"`
	SubmissionID *uuid.UUID `json:"submission_id,omitempty"`
	QuestionID   *uuid.UUID `json:"question_id,omitempty"`
	JudgeID      *uuid.UUID `json:"judge_id,omitempty"`
	Verdicts     []string   `json:"verdicts,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	b.
		WhereEquals("QueueID", f.QueueID).
		WhereEquals("SubmissionID", f.SubmissionID).
		WhereEquals("QuestionID", f.QuestionID).
		WhereEquals("JudgeID", f.JudgeID)

	if len(f.Verdicts) > 0 {
		values := make([]any, len(f.Verdicts))
		for i, v := range f.Verdicts {
			values[i] = v
		}
		b.WhereIn("Verdict", values)
	}

	return b
}

// FiltersFromQuery extracts filter values from URL query parameters.
// The verdict parameter may repeat; unknown verdict values are dropped.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	f.QueueID = parseUUID(values.Get("queue_id"))
	f.SubmissionID = parseUUID(values.Get("submission_id"))
	f.QuestionID = parseUUID(values.Get("question_id"))
	f.JudgeID = parseUUID(values.Get("judge_id"))

	for _, v := range values["verdict"] {
		if validVerdict(v) {
			f.Verdicts = append(f.Verdicts, v)
		}
	}

	return f
}

func parseUUID(v string) *uuid.UUID {
	if v == "" {
		return nil
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return nil
	}
	return &id
}

func validVerdict(v string) bool {
	return v == run.VerdictPass || v == run.VerdictFail || v == run.VerdictInconclusive
}

func scanEvaluation(s repository.Scanner) (Evaluation, error) {
	var e Evaluation

	err := s.Scan(
		&e.ID,
		&e.QueueID,
		&e.SubmissionID,
		&e.QuestionID,
		&e.JudgeID,
		&e.Verdict,
		&e.Reasoning,
		&e.CreatedAt,
	)

	return e, err
}

func scanStat(s repository.Scanner) (Stat, error) {
	var st Stat

	err := s.Scan(
		&st.QuestionID,
		&st.JudgeID,
		&st.Pass,
		&st.Fail,
		&st.Inconclusive,
	)
	if err != nil {
		return st, err
	}

	st.Total = st.Pass + st.Fail + st.Inconclusive
	if st.Total > 0 {
		st.PassRate = float64(st.Pass) / float64(st.Total)
	}

	return st, nil
}
