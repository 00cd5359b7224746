package dto

import (
	"time"

	"github.com/lshigami/Petrels/internal/model"
)

// Progress describes how far through the question progression a session is.
type Progress struct {
	Current    int `json:"current"` // 1-based number of the pending question
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	Percentage int `json:"percentage"`
}

// SessionResponse is the full session state returned to the candidate UI.
type SessionResponse struct {
	ID                   string                  `json:"id"`
	Candidate            model.CandidateProfile  `json:"candidate"`
	Questions            []model.Question        `json:"questions"`
	Answers              []model.Answer          `json:"answers"`
	Evaluations          []model.Evaluation      `json:"evaluations"`
	CurrentQuestionIndex int                     `json:"current_question_index"`
	Status               model.SessionStatus     `json:"status"`
	StartTime            time.Time               `json:"start_time"`
	EndTime              *time.Time              `json:"end_time,omitempty"`
	FinalSummary         *model.FinalSummary     `json:"final_summary,omitempty"`
	Progress             Progress                `json:"progress"`
	RemainingSeconds     int                     `json:"remaining_seconds"`
}

// CompletedInterviewSummary is one dashboard row.
type CompletedInterviewSummary struct {
	SessionID      string    `json:"session_id"`
	CandidateName  string    `json:"candidate_name"`
	CandidateEmail string    `json:"candidate_email,omitempty"`
	Position       string    `json:"position"`
	OverallScore   int       `json:"overall_score"`
	Recommendation string    `json:"recommendation"`
	QuestionCount  int       `json:"question_count"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
}

// CompletedInterviewDetail adds the rehydrated transcript to a summary.
type CompletedInterviewDetail struct {
	CompletedInterviewSummary
	Session *model.InterviewSession `json:"session,omitempty"`
}

// DashboardMetricsResponse aggregates completed interviews for the
// interviewer dashboard header cards.
type DashboardMetricsResponse struct {
	TotalInterviews int64   `json:"total_interviews"`
	AverageScore    float64 `json:"average_score"`
	StrongHires     int64   `json:"strong_hires"`
	Hires           int64   `json:"hires"`
}

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}
