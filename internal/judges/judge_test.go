package judges_test

import (
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/arbiterhq/arbiter/internal/judges"
)

func TestCreateCommandValidate(t *testing.T) {
	valid := judges.CreateCommand{
		Name:         "completeness",
		SystemPrompt: "Grade for completeness.",
		ModelName:    "claude-3-5-haiku-latest",
	}

	tests := []struct {
		name    string
		mutate  func(*judges.CreateCommand)
		wantErr error
	}{
		{"valid", func(*judges.CreateCommand) {}, nil},
		{"missing name", func(c *judges.CreateCommand) { c.Name = "" }, judges.ErrNameRequired},
		{"missing prompt", func(c *judges.CreateCommand) { c.SystemPrompt = "" }, judges.ErrPromptRequired},
		{"missing model", func(c *judges.CreateCommand) { c.ModelName = "" }, judges.ErrModelRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := valid
			tt.mutate(&cmd)

			err := cmd.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestFiltersFromQuery(t *testing.T) {
	values := url.Values{}
	values.Set("active", "true")
	values.Set("model_name", "gpt-4o-mini")

	f := judges.FiltersFromQuery(values)

	if f.Active == nil || !*f.Active {
		t.Errorf("active = %v", f.Active)
	}
	if f.ModelName == nil || *f.ModelName != "gpt-4o-mini" {
		t.Errorf("model_name = %v", f.ModelName)
	}
}

func TestFiltersFromQueryIgnoresInvalid(t *testing.T) {
	values := url.Values{}
	values.Set("active", "sometimes")

	f := judges.FiltersFromQuery(values)
	if f.Active != nil {
		t.Errorf("invalid active should be ignored, got %v", f.Active)
	}
	if f.ModelName != nil {
		t.Errorf("unset model_name should be nil")
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", judges.ErrNotFound, http.StatusNotFound},
		{"duplicate", judges.ErrDuplicate, http.StatusConflict},
		{"validation", judges.ErrNameRequired, http.StatusBadRequest},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := judges.MapHTTPStatus(tt.err); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}
