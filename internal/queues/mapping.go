package queues

import (
	"github.com/arbiterhq/arbiter/pkg/query"
	"github.com/arbiterhq/arbiter/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "queues", "q").
	Project("id", "ID").
	Project("name", "Name").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

func scanQueue(s repository.Scanner) (Queue, error) {
	var q Queue
	err := s.Scan(&q.ID, &q.Name, &q.CreatedAt)
	return q, err
}

func scanSubmission(s repository.Scanner) (Submission, error) {
	var sub Submission
	err := s.Scan(&sub.ID, &sub.QueueID, &sub.LabelingTaskID, &sub.CreatedAt)
	return sub, err
}

func scanQuestion(s repository.Scanner) (Question, error) {
	var q Question
	err := s.Scan(&q.ID, &q.QueueID, &q.QuestionText, &q.QuestionType)
	return q, err
}

func scanAnswer(s repository.Scanner) (Answer, error) {
	var a Answer
	err := s.Scan(&a.ID, &a.SubmissionID, &a.QuestionID, &a.Choice, &a.Reasoning, &a.CreatedAt)
	return a, err
}
