// Package queues implements the import queue domain for Arbiter.
// A queue groups the submissions and questions loaded by a bulk import and is
// the unit of scope for evaluation runs. Imported records are immutable.
package queues

import (
	"time"

	"github.com/google/uuid"
)

// Queue represents one named import batch.
type Queue struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Submission is one respondent's completed work unit within a queue.
type Submission struct {
	ID             uuid.UUID `json:"id"`
	QueueID        uuid.UUID `json:"queue_id"`
	LabelingTaskID *string   `json:"labeling_task_id"`
	CreatedAt      time.Time `json:"created_at"`
}

// Question is one evaluable prompt within a queue.
type Question struct {
	ID           uuid.UUID `json:"id"`
	QueueID      uuid.UUID `json:"queue_id"`
	QuestionText string    `json:"question_text"`
	QuestionType string    `json:"question_type"`
}

// Answer is a respondent's recorded response to one question within one
// submission. Choice and Reasoning are each optional.
type Answer struct {
	ID           uuid.UUID `json:"id"`
	SubmissionID uuid.UUID `json:"submission_id"`
	QuestionID   uuid.UUID `json:"question_id"`
	Choice       *string   `json:"choice"`
	Reasoning    *string   `json:"reasoning"`
	CreatedAt    time.Time `json:"created_at"`
}

// ImportQuestion describes one question in an import payload. Key correlates
// submission answers to the question within the payload; it is not stored.
type ImportQuestion struct {
	Key  string `json:"key"`
	Text string `json:"text"`
	Type string `json:"type"`
}

// ImportAnswer describes one answer in an import payload.
type ImportAnswer struct {
	Choice    *string `json:"choice"`
	Reasoning *string `json:"reasoning"`
}

// ImportSubmission describes one submission in an import payload.
// Answers are keyed by the question key they respond to.
type ImportSubmission struct {
	LabelingTaskID *string                 `json:"labeling_task_id"`
	Answers        map[string]ImportAnswer `json:"answers"`
}

// ImportCommand is the bulk import payload: a queue name, its questions, and
// its submissions with answers. The whole import is applied transactionally.
type ImportCommand struct {
	Name        string             `json:"name"`
	Questions   []ImportQuestion   `json:"questions"`
	Submissions []ImportSubmission `json:"submissions"`
}

// Validate checks payload shape: a name, at least one question, unique
// non-empty question keys, and answer keys that resolve to a question.
func (c ImportCommand) Validate() error {
	if c.Name == "" {
		return ErrNameRequired
	}
	if len(c.Questions) == 0 {
		return ErrNoQuestions
	}

	keys := make(map[string]struct{}, len(c.Questions))
	for _, q := range c.Questions {
		if q.Key == "" || q.Text == "" {
			return ErrInvalidQuestion
		}
		if _, exists := keys[q.Key]; exists {
			return ErrDuplicateKey
		}
		keys[q.Key] = struct{}{}
	}

	for _, s := range c.Submissions {
		for key := range s.Answers {
			if _, ok := keys[key]; !ok {
				return ErrUnknownKey
			}
		}
	}

	return nil
}

// ImportResult summarizes the records created by an import.
type ImportResult struct {
	QueueID     uuid.UUID `json:"queue_id"`
	Questions   int       `json:"questions"`
	Submissions int       `json:"submissions"`
	Answers     int       `json:"answers"`
}
