// Package assignments implements the judge-to-question assignment domain for
// Arbiter. An assignment marks one judge as responsible for evaluating one
// question; the evaluation run consumes assignments joined with their judges.
package assignments

import (
	"github.com/google/uuid"
)

// View is an assignment joined with its judge definition. The evaluation run
// reads JudgeActive, SystemPrompt, and ModelName directly from the view so it
// never needs a second judge lookup.
type View struct {
	ID           uuid.UUID `json:"id"`
	QueueID      uuid.UUID `json:"queue_id"`
	QuestionID   uuid.UUID `json:"question_id"`
	JudgeID      uuid.UUID `json:"judge_id"`
	JudgeName    string    `json:"judge_name"`
	SystemPrompt string    `json:"system_prompt"`
	ModelName    string    `json:"model_name"`
	JudgeActive  bool      `json:"judge_active"`
}

// CreateCommand carries the data needed to assign a judge to a question.
// The owning queue is derived from the question.
type CreateCommand struct {
	QuestionID uuid.UUID `json:"question_id"`
	JudgeID    uuid.UUID `json:"judge_id"`
}

// Validate checks that both references are present.
func (c CreateCommand) Validate() error {
	if c.QuestionID == uuid.Nil {
		return ErrQuestionRequired
	}
	if c.JudgeID == uuid.Nil {
		return ErrJudgeRequired
	}
	return nil
}
