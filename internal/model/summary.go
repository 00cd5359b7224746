package model

import "time"

// FinalSummary is produced exactly once, when the session completes.
type FinalSummary struct {
	OverallScore        int            `json:"overall_score"` // percentage, 0-100
	Recommendation      string         `json:"recommendation"`
	Summary             string         `json:"summary"`
	TechnicalStrengths  []string       `json:"technical_strengths,omitempty"`
	AreasForImprovement []string       `json:"areas_for_improvement,omitempty"`
	SkillAssessment     map[string]int `json:"skill_assessment,omitempty"`
	DetailedFeedback    string         `json:"detailed_feedback,omitempty"`
	NextSteps           []string       `json:"next_steps,omitempty"`
	InterviewerNotes    string         `json:"interviewer_notes,omitempty"`
	GeneratedAt         time.Time      `json:"generated_at"`
}

// Hire recommendation tiers.
const (
	RecommendationStrongHire = "Strong Hire"
	RecommendationHire       = "Hire"
	RecommendationMaybe      = "Maybe"
	RecommendationNoHire     = "No Hire"
)

// RecommendationFor maps an overall percentage score to a hire tier.
func RecommendationFor(overallScore int) string {
	switch {
	case overallScore >= 85:
		return RecommendationStrongHire
	case overallScore >= 75:
		return RecommendationHire
	case overallScore >= 65:
		return RecommendationMaybe
	default:
		return RecommendationNoHire
	}
}
