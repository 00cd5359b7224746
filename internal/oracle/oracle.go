package oracle

import (
	"context"

	"github.com/lshigami/Petrels/config"
	"github.com/lshigami/Petrels/internal/model"
	"github.com/rs/zerolog/log"
)

// TranscriptEntry pairs a question with its answer and evaluation for the
// final summary call.
type TranscriptEntry struct {
	Question   model.Question   `json:"question"`
	Answer     string           `json:"answer"`
	Evaluation model.Evaluation `json:"evaluation"`
}

// Oracle generates interview questions, evaluates answers and summarizes a
// finished interview. Implementations may fail; callers are expected to
// substitute deterministic fallback content and keep the interview moving.
type Oracle interface {
	GenerateQuestion(ctx context.Context, difficulty model.Difficulty, position int, profile model.CandidateProfile, prior []model.Question) (*model.Question, error)
	EvaluateAnswer(ctx context.Context, question *model.Question, answer string, profile model.CandidateProfile) (*model.Evaluation, error)
	GenerateFinalSummary(ctx context.Context, profile model.CandidateProfile, transcript []TranscriptEntry) (*model.FinalSummary, error)
}

// NewOracle selects the concrete implementation at construction time: the
// Gemini-backed client when an API key is configured, the deterministic
// fallback otherwise.
func NewOracle(cfg *config.Config) Oracle {
	if cfg.GeminiApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. Using deterministic fallback oracle.")
		return NewFallbackOracle()
	}
	gem, err := NewGeminiOracle(cfg)
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize Gemini oracle, falling back to deterministic content")
		return NewFallbackOracle()
	}
	return gem
}
