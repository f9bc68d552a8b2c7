package run

import (
	"fmt"

	"github.com/arbiterhq/arbiter/internal/queues"
)

// answerSentinel stands in for absent answer fields so the judge always sees
// both slots.
const answerSentinel = "N/A"

const promptTemplate = `%s

Question:
%s

Answer choice:
%s

Answer reasoning:
%s

Respond with a JSON object containing exactly two fields: "verdict" (one of "pass", "fail", or "inconclusive") and "reasoning" (a short explanation). Respond with the JSON object only.`

func buildPrompt(rubric, questionText string, answer queues.Answer) string {
	return fmt.Sprintf(
		promptTemplate,
		rubric,
		questionText,
		orSentinel(answer.Choice),
		orSentinel(answer.Reasoning),
	)
}

func orSentinel(v *string) string {
	if v == nil || *v == "" {
		return answerSentinel
	}
	return *v
}
