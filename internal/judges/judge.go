// Package judges implements the judge domain for Arbiter.
// A judge pairs a grading rubric (system prompt) with an LLM model name and
// can be assigned to queue questions to produce verdicts on submitted answers.
package judges

import (
	"time"

	"github.com/google/uuid"
)

// Judge represents a configured LLM evaluator.
// Inactive judges are retained for evaluation history but excluded from runs.
type Judge struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	SystemPrompt string    `json:"system_prompt"`
	ModelName    string    `json:"model_name"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateCommand carries the data needed to create a judge.
// Judges are created active.
type CreateCommand struct {
	Name         string `json:"name"`
	SystemPrompt string `json:"system_prompt"`
	ModelName    string `json:"model_name"`
}

// Validate checks that all required fields are present.
func (c CreateCommand) Validate() error {
	if c.Name == "" {
		return ErrNameRequired
	}
	if c.SystemPrompt == "" {
		return ErrPromptRequired
	}
	if c.ModelName == "" {
		return ErrModelRequired
	}
	return nil
}

// UpdateCommand carries the data needed to update a judge's definition.
// The active flag is managed through Activate and Deactivate, not here.
type UpdateCommand struct {
	Name         string `json:"name"`
	SystemPrompt string `json:"system_prompt"`
	ModelName    string `json:"model_name"`
}

// Validate checks that all required fields are present.
func (c UpdateCommand) Validate() error {
	if c.Name == "" {
		return ErrNameRequired
	}
	if c.SystemPrompt == "" {
		return ErrPromptRequired
	}
	if c.ModelName == "" {
		return ErrModelRequired
	}
	return nil
}
