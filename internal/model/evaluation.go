package model

import "time"

// Evaluation is the oracle's (or fallback's) judgment of a single answer.
type Evaluation struct {
	QuestionID        string    `json:"question_id"`
	Score             int       `json:"score"`
	MaxScore          int       `json:"max_score"`
	Feedback          string    `json:"feedback"`
	Strengths         []string  `json:"strengths,omitempty"`
	Improvements      []string  `json:"improvements,omitempty"`
	TechnicalAccuracy int       `json:"technical_accuracy"` // 0-10
	Completeness      int       `json:"completeness"`       // 0-10
	Clarity           int       `json:"clarity"`            // 0-10
	EvaluatedAt       time.Time `json:"evaluated_at"`
}
