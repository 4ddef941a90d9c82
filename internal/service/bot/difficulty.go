package bot

import "github.com/iamasit07/connect4-terminal/internal/domain"

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty validates and returns the bot difficulty
// Defaults to Medium if invalid or empty
func ParseDifficulty(difficulty string) Difficulty {
	switch difficulty {
	case "easy":
		return DifficultyEasy
	case "medium":
		return DifficultyMedium
	case "hard":
		return DifficultyHard
	default:
		return DifficultyMedium // Default to medium
	}
}

// DifficultyForMode maps a vs-computer game mode to the bot that plays it.
func DifficultyForMode(mode domain.GameMode) (Difficulty, bool) {
	switch mode {
	case domain.ModeEasy:
		return DifficultyEasy, true
	case domain.ModeMedium:
		return DifficultyMedium, true
	case domain.ModeHard:
		return DifficultyHard, true
	default:
		return "", false
	}
}
