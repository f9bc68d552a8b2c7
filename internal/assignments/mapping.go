package assignments

import (
	"github.com/arbiterhq/arbiter/pkg/query"
	"github.com/arbiterhq/arbiter/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "question_judges", "qj").
	Join("JOIN public.judges j ON j.id = qj.judge_id").
	Project("id", "ID").
	Project("queue_id", "QueueID").
	Project("question_id", "QuestionID").
	Project("judge_id", "JudgeID").
	ProjectJoined("j.name", "JudgeName").
	ProjectJoined("j.system_prompt", "SystemPrompt").
	ProjectJoined("j.model_name", "ModelName").
	ProjectJoined("j.active", "JudgeActive")

func scanView(s repository.Scanner) (View, error) {
	var v View

	err := s.Scan(
		&v.ID,
		&v.QueueID,
		&v.QuestionID,
		&v.JudgeID,
		&v.JudgeName,
		&v.SystemPrompt,
		&v.ModelName,
		&v.JudgeActive,
	)

	return v, err
}
