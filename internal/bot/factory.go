package bot

import (
	"fmt"
	"math/rand"
	"time"
)

// NewBrain creates a new AI brain based on the specified level.
func NewBrain(level BotLevel) (Brain, error) {
	switch level {
	case BotLevelRandom:
		return &RandomBot{Rand: rand.New(rand.NewSource(time.Now().UnixNano()))}, nil
	case BotLevelGreedy:
		return &GreedyBot{}, nil
	default:
		return nil, fmt.Errorf("unknown bot level: %d", level)
	}
}

// NewAgent builds an agent for a provisioned bot user, choosing the
// strategy from the identity's configured difficulty.
func NewAgent(userID string) (*Agent, error) {
	level := BotLevelRandom
	name := userID
	if identity, ok := GetBotConfig(userID); ok {
		level = LevelFromDifficulty(identity.Difficulty)
		name = identity.DisplayName
	}
	brain, err := NewBrain(level)
	if err != nil {
		return nil, err
	}
	return &Agent{ID: userID, Name: name, Strategy: brain}, nil
}

// LevelFromDifficulty maps an identity difficulty string to a bot level.
func LevelFromDifficulty(difficulty string) BotLevel {
	switch difficulty {
	case "hard":
		return BotLevelGreedy
	default:
		return BotLevelRandom
	}
}
