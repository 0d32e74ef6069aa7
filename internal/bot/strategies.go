package bot

import (
	"errors"
	"math/rand"

	"ludo/internal/domain"
)

var ErrNoLegalToken = errors.New("no legal token to choose from")

// RandomBot picks uniformly among the legal tokens.
type RandomBot struct {
	Rand *rand.Rand
}

func (b *RandomBot) ChooseToken(game *domain.Game, player *domain.Player, die int, legal []int) (int, error) {
	if len(legal) == 0 {
		return 0, ErrNoLegalToken
	}
	if b.Rand == nil {
		return legal[0], nil
	}
	return legal[b.Rand.Intn(len(legal))], nil
}

// GreedyBot scores every legal token and plays the highest-value move:
// capturing beats finishing, finishing beats leaving the yard, and
// otherwise the token closest to home advances.
type GreedyBot struct{}

const (
	scoreCapture = 1000
	scoreFinish  = 500
	scoreEnter   = 100
)

func (b *GreedyBot) ChooseToken(game *domain.Game, player *domain.Player, die int, legal []int) (int, error) {
	if len(legal) == 0 {
		return 0, ErrNoLegalToken
	}

	board := game.Seq.Snapshot()
	best := legal[0]
	bestScore := -1

	for _, tokenID := range legal {
		from := board.Tokens[player.Color][tokenID]
		dest, ok := domain.Evaluate(from, die)
		if !ok {
			continue
		}

		score := dest
		switch {
		case b.wouldCapture(board, player.Color, dest):
			score += scoreCapture
		case dest == domain.FinishPosition:
			score += scoreFinish
		case from == 0:
			score += scoreEnter
		}

		if score > bestScore {
			bestScore = score
			best = tokenID
		}
	}
	return best, nil
}

// wouldCapture previews on a clone: ResolveCapture sends victims back
// to the yard on whatever board it is given, and the live snapshot
// belongs to the sequencer.
func (b *GreedyBot) wouldCapture(board *domain.BoardSnapshot, mover domain.Color, dest int) bool {
	return len(domain.ResolveCapture(board.Clone(), mover, dest)) > 0
}
