package model

// CandidateProfile holds the intake data collected before an interview starts.
// It is immutable once the session is created.
type CandidateProfile struct {
	FullName   string   `json:"full_name"`
	Email      string   `json:"email,omitempty"`
	Phone      string   `json:"phone,omitempty"`
	Position   string   `json:"position"`
	Skills     []string `json:"skills,omitempty"`
	Experience int      `json:"experience,omitempty"` // years
}
