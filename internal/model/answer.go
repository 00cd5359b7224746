package model

import "time"

// Answer records the candidate's submitted text for one question. An empty
// answer is valid: a timed-out question is recorded, not rejected.
type Answer struct {
	QuestionID       string    `json:"question_id"`
	Answer           string    `json:"answer"`
	TimeSpentSeconds int       `json:"time_spent_seconds"`
	TimeLimit        int       `json:"time_limit"`
	SubmittedAt      time.Time `json:"submitted_at"`
}
