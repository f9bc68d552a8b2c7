// Package evaluations implements the evaluation result domain for Arbiter.
// It stores the verdicts produced by evaluation runs, serves the filtered
// results views and pass-rate statistics, and hosts the run trigger itself.
package evaluations

import (
	"time"

	"github.com/google/uuid"
)

// Evaluation is one judge verdict for one answer. QueueID is joined in from
// the owning submission for filtering. Rows are append-only: re-running a
// queue inserts new evaluations rather than replacing earlier ones.
type Evaluation struct {
	ID           uuid.UUID `json:"id"`
	QueueID      uuid.UUID `json:"queue_id"`
	SubmissionID uuid.UUID `json:"submission_id"`
	QuestionID   uuid.UUID `json:"question_id"`
	JudgeID      uuid.UUID `json:"judge_id"`
	Verdict      string    `json:"verdict"`
	Reasoning    string    `json:"reasoning"`
	CreatedAt    time.Time `json:"created_at"`
}

// Stat aggregates verdict counts for one question evaluated by one judge.
// PassRate is Pass over Total.
type Stat struct {
	QuestionID   uuid.UUID `json:"question_id"`
	JudgeID      uuid.UUID `json:"judge_id"`
	Pass         int       `json:"pass"`
	Fail         int       `json:"fail"`
	Inconclusive int       `json:"inconclusive"`
	Total        int       `json:"total"`
	PassRate     float64   `json:"pass_rate"`
}
