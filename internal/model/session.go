package model

import "time"

type SessionStatus string

const (
	StatusInProgress SessionStatus = "in-progress"
	StatusPaused     SessionStatus = "paused"
	StatusCompleted  SessionStatus = "completed"
)

// InterviewSession is the aggregate root for one candidate attempt.
//
// Questions, Answers and Evaluations are index-aligned, append-only
// sequences: Answers[i] answers Questions[i] and Evaluations[i] judges
// Answers[i]. While the session is not completed the current question is
// generated one step ahead, so len(Questions) == CurrentQuestionIndex+1.
type InterviewSession struct {
	ID                   string           `json:"id"`
	Candidate            CandidateProfile `json:"candidate"`
	Questions            []Question       `json:"questions"`
	Answers              []Answer         `json:"answers"`
	Evaluations          []Evaluation     `json:"evaluations"`
	CurrentQuestionIndex int              `json:"current_question_index"`
	Status               SessionStatus    `json:"status"`
	StartTime            time.Time        `json:"start_time"`
	EndTime              *time.Time       `json:"end_time,omitempty"`
	PausedAt             *time.Time       `json:"paused_at,omitempty"`
	ResumedAt            *time.Time       `json:"resumed_at,omitempty"`
	PausedSeconds        int              `json:"paused_seconds,omitempty"`
	FinalSummary         *FinalSummary    `json:"final_summary,omitempty"`
}

// CurrentQuestion returns the pending question, or nil when the session is
// completed or the question has not been generated yet.
func (s *InterviewSession) CurrentQuestion() *Question {
	if s.CurrentQuestionIndex < 0 || s.CurrentQuestionIndex >= len(s.Questions) {
		return nil
	}
	return &s.Questions[s.CurrentQuestionIndex]
}
