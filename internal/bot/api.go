package bot

import (
	"ludo/internal/domain"
)

// BotLevel selects a decision strategy for an automated player.
type BotLevel int

const (
	BotLevelRandom BotLevel = iota
	BotLevelGreedy
)

// Brain is the interface that all bot strategies must implement.
// ChooseToken picks one token ID out of the legal set for the rolled die.
type Brain interface {
	ChooseToken(game *domain.Game, player *domain.Player, die int, legal []int) (int, error)
}
