package bot

import (
	"ludo/internal/domain"
)

// Agent represents an autonomous bot player bound to a strategy.
type Agent struct {
	ID       string
	Name     string
	Strategy Brain
}

// ChooseToken asks the agent to pick a token for its pending roll.
func (a *Agent) ChooseToken(game *domain.Game) (int, error) {
	player, ok := game.Players[a.ID]
	if !ok {
		return 0, ErrNoLegalToken
	}
	return a.Strategy.ChooseToken(game, player, game.Seq.PendingDie(), game.Seq.PendingLegalTokens())
}
