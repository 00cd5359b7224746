package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDifficultyProgression(t *testing.T) {
	expected := []Difficulty{
		DifficultyEasy, DifficultyEasy,
		DifficultyMedium, DifficultyMedium,
		DifficultyHard, DifficultyHard,
	}
	assert.Len(t, DifficultyProgression, TotalQuestions)
	for position, want := range expected {
		assert.Equal(t, want, DifficultyAt(position), "position %d", position)
	}
}

func TestDifficultyAtOutOfRange(t *testing.T) {
	assert.Equal(t, DifficultyMedium, DifficultyAt(-1))
	assert.Equal(t, DifficultyMedium, DifficultyAt(TotalQuestions))
	assert.Equal(t, DifficultyMedium, DifficultyAt(100))
}

func TestTimeLimitFor(t *testing.T) {
	assert.Equal(t, 20, TimeLimitFor(DifficultyEasy))
	assert.Equal(t, 60, TimeLimitFor(DifficultyMedium))
	assert.Equal(t, 120, TimeLimitFor(DifficultyHard))
	assert.Equal(t, 60, TimeLimitFor(Difficulty("unknown")))
}

func TestMaxScoreFor(t *testing.T) {
	assert.Equal(t, 20, MaxScoreFor(DifficultyEasy))
	assert.Equal(t, 30, MaxScoreFor(DifficultyMedium))
	assert.Equal(t, 40, MaxScoreFor(DifficultyHard))
	assert.Equal(t, 30, MaxScoreFor(Difficulty("unknown")))
}
