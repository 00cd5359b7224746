package dto

// CreateSessionRequest carries the intake data for a new interview session.
type CreateSessionRequest struct {
	FullName   string   `json:"full_name" binding:"required"`
	Email      string   `json:"email"`
	Phone      string   `json:"phone"`
	Position   string   `json:"position" binding:"required"`
	Skills     []string `json:"skills"`
	Experience int      `json:"experience" binding:"gte=0"`
}

// SubmitAnswerRequest carries one answer submission. Answer may be empty: a
// timed-out question is submitted with whatever partial text exists.
type SubmitAnswerRequest struct {
	Answer           string `json:"answer"`
	TimeSpentSeconds int    `json:"time_spent_seconds" binding:"gte=0"`
}
