package queues_test

import (
	"errors"
	"testing"

	"github.com/arbiterhq/arbiter/internal/queues"
)

func importCommand() queues.ImportCommand {
	return queues.ImportCommand{
		Name: "batch-2026-08",
		Questions: []queues.ImportQuestion{
			{Key: "q1", Text: "Is the answer complete?", Type: "free_text"},
			{Key: "q2", Text: "Is the answer correct?", Type: "multiple_choice"},
		},
		Submissions: []queues.ImportSubmission{
			{
				Answers: map[string]queues.ImportAnswer{
					"q1": {Reasoning: strPtr("looks complete")},
					"q2": {Choice: strPtr("yes")},
				},
			},
		},
	}
}

func strPtr(s string) *string { return &s }

func TestImportCommandValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*queues.ImportCommand)
		wantErr error
	}{
		{"valid", func(*queues.ImportCommand) {}, nil},
		{
			"missing name",
			func(c *queues.ImportCommand) { c.Name = "" },
			queues.ErrNameRequired,
		},
		{
			"no questions",
			func(c *queues.ImportCommand) { c.Questions = nil },
			queues.ErrNoQuestions,
		},
		{
			"question without key",
			func(c *queues.ImportCommand) { c.Questions[0].Key = "" },
			queues.ErrInvalidQuestion,
		},
		{
			"question without text",
			func(c *queues.ImportCommand) { c.Questions[1].Text = "" },
			queues.ErrInvalidQuestion,
		},
		{
			"duplicate key",
			func(c *queues.ImportCommand) { c.Questions[1].Key = "q1" },
			queues.ErrDuplicateKey,
		},
		{
			"answer with unknown key",
			func(c *queues.ImportCommand) {
				c.Submissions[0].Answers["q9"] = queues.ImportAnswer{}
			},
			queues.ErrUnknownKey,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := importCommand()
			tt.mutate(&cmd)

			err := cmd.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestImportCommandValidateNoSubmissions(t *testing.T) {
	cmd := importCommand()
	cmd.Submissions = nil

	// an empty import is still a valid queue; runs against it return a note
	if err := cmd.Validate(); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}
