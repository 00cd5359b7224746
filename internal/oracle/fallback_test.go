package oracle

import (
	"context"
	"testing"

	"github.com/lshigami/Petrels/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallbackGenerateQuestion(t *testing.T) {
	orc := NewFallbackOracle()
	ctx := context.Background()
	profile := model.CandidateProfile{FullName: "Ada", Position: "Frontend Developer"}

	q0, err := orc.GenerateQuestion(ctx, model.DifficultyEasy, 0, profile, nil)
	require.NoError(t, err)
	q1, err := orc.GenerateQuestion(ctx, model.DifficultyEasy, 1, profile, nil)
	require.NoError(t, err)

	assert.NotEmpty(t, q0.Title)
	assert.NotEqual(t, q0.Title, q1.Title, "consecutive positions draw different bank entries")
	assert.Equal(t, model.DifficultyEasy, q0.Difficulty)
	assert.Equal(t, 20, q0.TimeLimit)
	assert.Equal(t, 0, q0.Position)
	assert.Equal(t, 1, q1.Position)

	q4, err := orc.GenerateQuestion(ctx, model.DifficultyHard, 4, profile, nil)
	require.NoError(t, err)
	assert.Equal(t, 120, q4.TimeLimit)
	assert.NotEmpty(t, q4.Requirements)
}

func TestFallbackGenerateQuestionUnknownDifficulty(t *testing.T) {
	orc := NewFallbackOracle()

	q, err := orc.GenerateQuestion(context.Background(), model.Difficulty("weird"), 0, model.CandidateProfile{}, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, q.Title)
}

func TestFallbackEvaluateAnswerScoreBounds(t *testing.T) {
	orc := NewFallbackOracle()
	ctx := context.Background()

	for _, d := range []model.Difficulty{model.DifficultyEasy, model.DifficultyMedium, model.DifficultyHard} {
		question := &model.Question{ID: "Q-1", Difficulty: d}
		maxScore := model.MaxScoreFor(d)
		for i := 0; i < 50; i++ {
			ev, err := orc.EvaluateAnswer(ctx, question, "a reasonable answer", model.CandidateProfile{})
			require.NoError(t, err)
			assert.Equal(t, maxScore, ev.MaxScore)
			assert.GreaterOrEqual(t, ev.Score, maxScore*70/100)
			assert.LessOrEqual(t, ev.Score, maxScore)
			for _, sub := range []int{ev.TechnicalAccuracy, ev.Completeness, ev.Clarity} {
				assert.GreaterOrEqual(t, sub, 0)
				assert.LessOrEqual(t, sub, 10)
			}
		}
	}
}

func TestFallbackEvaluateAnswerBlank(t *testing.T) {
	orc := NewFallbackOracle()
	question := &model.Question{ID: "Q-1", Difficulty: model.DifficultyMedium}

	ev, err := orc.EvaluateAnswer(context.Background(), question, "   ", model.CandidateProfile{})
	require.NoError(t, err)
	assert.Equal(t, 0, ev.Score)
	assert.Equal(t, 30, ev.MaxScore)
	assert.Equal(t, 0, ev.TechnicalAccuracy)
	assert.Equal(t, "Q-1", ev.QuestionID)
	assert.NotEmpty(t, ev.Feedback)
}

func TestFallbackGenerateFinalSummary(t *testing.T) {
	orc := NewFallbackOracle()
	profile := model.CandidateProfile{
		FullName: "Ada",
		Skills:   []string{"React", "Node.js"},
	}
	transcript := []TranscriptEntry{
		{Evaluation: model.Evaluation{Score: 18, MaxScore: 20}},
		{Evaluation: model.Evaluation{Score: 27, MaxScore: 30}},
		{Evaluation: model.Evaluation{Score: 36, MaxScore: 40}},
	}

	summary, err := orc.GenerateFinalSummary(context.Background(), profile, transcript)
	require.NoError(t, err)

	// 81 of 90 points is 90%.
	assert.Equal(t, 90, summary.OverallScore)
	assert.Equal(t, model.RecommendationStrongHire, summary.Recommendation)
	assert.Equal(t, map[string]int{"React": 90, "Node.js": 90}, summary.SkillAssessment)
	assert.NotEmpty(t, summary.Summary)
	assert.False(t, summary.GeneratedAt.IsZero())
}

func TestFallbackGenerateFinalSummaryEmptyTranscript(t *testing.T) {
	orc := NewFallbackOracle()

	summary, err := orc.GenerateFinalSummary(context.Background(), model.CandidateProfile{}, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.OverallScore)
	assert.Equal(t, model.RecommendationNoHire, summary.Recommendation)
}

func TestFallbackIsDeterministic(t *testing.T) {
	question := &model.Question{ID: "Q-1", Difficulty: model.DifficultyHard}

	run := func() []int {
		orc := NewFallbackOracle()
		scores := make([]int, 0, 6)
		for i := 0; i < 6; i++ {
			ev, err := orc.EvaluateAnswer(context.Background(), question, "answer", model.CandidateProfile{})
			require.NoError(t, err)
			scores = append(scores, ev.Score)
		}
		return scores
	}

	assert.Equal(t, run(), run(), "a fresh fallback oracle replays the same score sequence")
}
