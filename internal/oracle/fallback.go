package oracle

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/lshigami/Petrels/internal/model"
)

// fallbackOracle serves locally-computed content so an interview can always
// run to completion when the AI service is unavailable. It never returns an
// error.
type fallbackOracle struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewFallbackOracle returns the deterministic fallback implementation.
func NewFallbackOracle() Oracle {
	return &fallbackOracle{rng: rand.New(rand.NewSource(1))}
}

var fallbackQuestions = map[model.Difficulty][]model.Question{
	model.DifficultyEasy: {
		{
			Title:       "What is the difference between let, const, and var in JavaScript?",
			Description: "Explain the key differences between these three variable declaration keywords, including scope behavior, hoisting characteristics, and when to use each one.",
			Requirements: []string{
				"Explain scope differences clearly",
				"Mention hoisting behavior for each",
				"Discuss when to use each one",
			},
			ExpectedTime: "2-3 minutes",
			Focus:        "JavaScript fundamentals",
		},
		{
			Title:       "Explain the concept of React components and JSX",
			Description: "Describe what React components are and how JSX works. Explain the difference between functional and class components.",
			Requirements: []string{
				"Define React components",
				"Explain JSX syntax",
				"Compare functional vs class components",
			},
			ExpectedTime: "2-3 minutes",
			Focus:        "React fundamentals",
		},
	},
	model.DifficultyMedium: {
		{
			Title:       "How would you implement user authentication in a React/Node.js application?",
			Description: "Design and explain a complete authentication system including login, registration, and protected routes. Consider security best practices.",
			Requirements: []string{
				"Explain JWT token implementation",
				"Describe password hashing",
				"Discuss security considerations",
			},
			ExpectedTime: "4-5 minutes",
			Focus:        "Full stack authentication",
		},
		{
			Title:       "Implement a custom React hook for API data fetching",
			Description: "Create a reusable custom hook that handles API calls with loading states, error handling, and caching.",
			Requirements: []string{
				"Implement loading and error states",
				"Handle the API call lifecycle",
				"Make it reusable across components",
			},
			ExpectedTime: "4-5 minutes",
			Focus:        "React hooks and API integration",
		},
	},
	model.DifficultyHard: {
		{
			Title:       "Design a scalable real-time chat application architecture",
			Description: "Design the complete architecture for a real-time chat application that can handle thousands of concurrent users. Include database design, real-time communication, and scalability considerations.",
			Requirements: []string{
				"Design the database schema",
				"Explain the real-time communication strategy",
				"Address scalability and performance",
			},
			ExpectedTime: "7-10 minutes",
			Focus:        "System design and architecture",
		},
		{
			Title:       "Optimize a React application with performance bottlenecks",
			Description: "An application suffers from slow rendering, large bundle size, and memory leaks. Identify potential issues and provide optimization strategies.",
			Requirements: []string{
				"Identify common performance bottlenecks",
				"Explain React optimization techniques",
				"Address memory leak prevention",
			},
			ExpectedTime: "7-10 minutes",
			Focus:        "Performance optimization",
		},
	},
}

func (o *fallbackOracle) GenerateQuestion(_ context.Context, difficulty model.Difficulty, position int, _ model.CandidateProfile, _ []model.Question) (*model.Question, error) {
	bank, ok := fallbackQuestions[difficulty]
	if !ok {
		bank = fallbackQuestions[model.DifficultyEasy]
	}
	q := bank[position%len(bank)]
	q.Difficulty = difficulty
	q.TimeLimit = model.TimeLimitFor(difficulty)
	q.Position = position
	return &q, nil
}

func (o *fallbackOracle) EvaluateAnswer(_ context.Context, question *model.Question, answer string, _ model.CandidateProfile) (*model.Evaluation, error) {
	maxScore := model.MaxScoreFor(question.Difficulty)

	// Bounded pseudo-random score: 70-99% of the question's maximum, zero for
	// an unanswered question.
	var score int
	if strings.TrimSpace(answer) != "" {
		o.mu.Lock()
		pct := 70 + o.rng.Intn(30)
		o.mu.Unlock()
		score = maxScore * pct / 100
	}

	sub := 0
	if maxScore > 0 {
		sub = score * 10 / maxScore
	}

	return &model.Evaluation{
		QuestionID: question.ID,
		Score:      score,
		MaxScore:   maxScore,
		Feedback:   "Good understanding demonstrated with room for improvement. Automated evaluation was unavailable, so this assessment is indicative only.",
		Strengths: []string{
			"Clear explanation of core concepts",
			"Logical structure in the response",
		},
		Improvements: []string{
			"Provide more specific examples",
			"Consider edge cases in the solution",
		},
		TechnicalAccuracy: sub,
		Completeness:      sub,
		Clarity:           sub,
		EvaluatedAt:       time.Now(),
	}, nil
}

func (o *fallbackOracle) GenerateFinalSummary(_ context.Context, profile model.CandidateProfile, transcript []TranscriptEntry) (*model.FinalSummary, error) {
	totalScore, maxTotal := 0, 0
	for _, entry := range transcript {
		totalScore += entry.Evaluation.Score
		maxTotal += entry.Evaluation.MaxScore
	}
	percentage := 0
	if maxTotal > 0 {
		percentage = int(float64(totalScore)/float64(maxTotal)*100 + 0.5)
	}

	skillAssessment := make(map[string]int)
	for _, skill := range profile.Skills {
		skillAssessment[skill] = percentage
	}

	return &model.FinalSummary{
		OverallScore:        percentage,
		Recommendation:      model.RecommendationFor(percentage),
		Summary:             "Summary generated from numeric evaluation scores; the AI summarizer was unavailable for this session.",
		TechnicalStrengths:  nil,
		AreasForImprovement: nil,
		SkillAssessment:     skillAssessment,
		DetailedFeedback:    "Per-question scores and feedback are recorded in the transcript.",
		NextSteps:           []string{"Review the per-question evaluations", "Schedule a follow-up interview if required"},
		GeneratedAt:         time.Now(),
	}, nil
}
