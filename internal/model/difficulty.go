package model

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// TotalQuestions is fixed for every interview session.
const TotalQuestions = 6

// DifficultyProgression assigns a difficulty to each question position.
var DifficultyProgression = [TotalQuestions]Difficulty{
	DifficultyEasy, DifficultyEasy,
	DifficultyMedium, DifficultyMedium,
	DifficultyHard, DifficultyHard,
}

// DifficultyAt returns the prescribed difficulty for a question position.
func DifficultyAt(position int) Difficulty {
	if position < 0 || position >= TotalQuestions {
		return DifficultyMedium
	}
	return DifficultyProgression[position]
}

// TimeLimitFor returns the answer time limit in seconds for a difficulty.
func TimeLimitFor(d Difficulty) int {
	switch d {
	case DifficultyEasy:
		return 20
	case DifficultyMedium:
		return 60
	case DifficultyHard:
		return 120
	default:
		return 60
	}
}

// MaxScoreFor returns the maximum evaluation score for a difficulty.
func MaxScoreFor(d Difficulty) int {
	switch d {
	case DifficultyEasy:
		return 20
	case DifficultyMedium:
		return 30
	case DifficultyHard:
		return 40
	default:
		return 30
	}
}
