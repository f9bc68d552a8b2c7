package judges

import (
	"net/url"
	"strconv"

	"github.com/arbiterhq/arbiter/pkg/query"
	"github.com/arbiterhq/arbiter/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "judges", "j").
	Project("id", "ID").
	Project("name", "Name").
	Project("system_prompt", "SystemPrompt").
	Project("model_name", "ModelName").
	Project("active", "Active").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field: "Name",
}

// Filters contains optional filtering criteria for judge queries.
// Nil fields are ignored.
type Filters struct {
	Active    *bool   `json:"active,omitempty"`
	ModelName *string `json:"model_name,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Active", f.Active).
		WhereEquals("ModelName", f.ModelName)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if a := values.Get("active"); a != "" {
		if active, err := strconv.ParseBool(a); err == nil {
			f.Active = &active
		}
	}

	if m := values.Get("model_name"); m != "" {
		f.ModelName = &m
	}

	return f
}

func scanJudge(s repository.Scanner) (Judge, error) {
	var j Judge

	err := s.Scan(
		&j.ID,
		&j.Name,
		&j.SystemPrompt,
		&j.ModelName,
		&j.Active,
		&j.CreatedAt,
		&j.UpdatedAt,
	)

	return j, err
}
