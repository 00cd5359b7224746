package model

import (
	"time"

	"gorm.io/gorm"
)

// SessionRecord is the flattened archive row written to Postgres when a
// session completes. The interviewer dashboard reads these; the durable
// key-value store remains the source of truth for session recovery.
type SessionRecord struct {
	SessionID      string         `gorm:"primarykey" json:"session_id"`
	CandidateName  string         `json:"candidate_name" gorm:"not null;index"`
	CandidateEmail string         `json:"candidate_email,omitempty"`
	Position       string         `json:"position" gorm:"not null"`
	OverallScore   int            `json:"overall_score"`
	Recommendation string         `json:"recommendation"`
	QuestionCount  int            `json:"question_count"`
	StartTime      time.Time      `json:"start_time"`
	EndTime        time.Time      `json:"end_time" gorm:"index"`
	Transcript     string         `json:"transcript,omitempty" gorm:"type:text"` // serialized InterviewSession
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}
