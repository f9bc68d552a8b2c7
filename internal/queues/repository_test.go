package queues

import (
	"strings"
	"testing"
)

func TestAnswersQuery(t *testing.T) {
	q := answersQuery(3)

	// one answer per (submission, question) pair, latest by creation time
	for _, want := range []string{
		"DISTINCT ON (submission_id, question_id)",
		"WHERE submission_id IN ($1, $2, $3)",
		"ORDER BY submission_id, question_id, created_at DESC",
	} {
		if !strings.Contains(q, want) {
			t.Errorf("query missing %q:\n%s", want, q)
		}
	}
}
