package domain

// Phase represents the lifecycle stage of a Ludo match.
type Phase string

const (
	// PhaseLobby is the pre-game state where players can join.
	PhaseLobby Phase = "lobby"
	// PhasePlaying is the active game state where tokens are moved.
	PhasePlaying Phase = "playing"
	// PhaseEnded is the state after a game concludes.
	PhaseEnded Phase = "ended"
)

// Player holds state for a participant in the match.
type Player struct {
	UserID  string
	Seat    int // 0-based seat index
	Color   Color
	IsOwner bool
}

// Game holds authoritative state for a Ludo match instance. The
// Sequencer owns the board; Game adds the seat/identity layer the
// session surface needs.
type Game struct {
	Phase   Phase
	Players map[string]*Player // userID -> player
	Seq     *Sequencer

	// BaseBet is the per-player stake settled when the game ends.
	BaseBet int64
	// Winner is the userID of the winning player once PhaseEnded.
	Winner string
}

// PlayerByColor returns the player assigned the given color, or nil.
func (g *Game) PlayerByColor(c Color) *Player {
	for _, p := range g.Players {
		if p.Color == c {
			return p
		}
	}
	return nil
}

// PlayerBySeat returns the player in the given seat, or nil.
func (g *Game) PlayerBySeat(seat int) *Player {
	for _, p := range g.Players {
		if p.Seat == seat {
			return p
		}
	}
	return nil
}

// CurrentPlayer returns the player whose turn it is, or nil before the
// game starts.
func (g *Game) CurrentPlayer() *Player {
	if g.Seq == nil {
		return nil
	}
	return g.PlayerByColor(g.Seq.Snapshot().CurrentTurn)
}
