package model

import "time"

// Question is generated once per position and never mutated afterwards.
type Question struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Difficulty   Difficulty `json:"difficulty"`
	TimeLimit    int        `json:"time_limit"` // seconds
	Position     int        `json:"position"`   // 0-based slot in the progression
	Requirements []string   `json:"requirements,omitempty"`
	ExampleCode  string     `json:"example_code,omitempty"`
	ExpectedTime string     `json:"expected_time,omitempty"`
	Focus        string     `json:"focus,omitempty"`
	GeneratedAt  time.Time  `json:"generated_at"`
}
