package domain

import "errors"

// SequencerPhase is the turn state machine's current state.
type SequencerPhase int

const (
	// PhaseAwaitingRoll accepts a die value for the current color.
	PhaseAwaitingRoll SequencerPhase = iota
	// PhaseTokenSelectable accepts a token id from the pre-computed legal set.
	PhaseTokenSelectable
	// PhaseMatchOver accepts nothing further.
	PhaseMatchOver
)

var (
	ErrInvalidDie       = errors.New("die value out of range")
	ErrInvalidColor     = errors.New("unknown color")
	ErrInvalidToken     = errors.New("token id out of range")
	ErrIllegalSelection = errors.New("token is not in the legal set")
	ErrNotAwaitingRoll  = errors.New("sequencer is not awaiting a roll")
	ErrNoRollPending    = errors.New("no roll pending token selection")
	ErrMatchOver        = errors.New("match is already over")
	ErrTooFewColors     = errors.New("need at least two distinct colors")
)

// EffectKind identifies a side effect of a committed move.
type EffectKind string

const (
	EffectCapture  EffectKind = "capture"
	EffectFinish   EffectKind = "finish"
	EffectMatchWon EffectKind = "match_won"
)

// Effect is one consequence of a committed move, in commit order.
type Effect struct {
	Kind         EffectKind
	Color        Color
	TokenID      int
	AbsoluteCell int // capture effects only; -1 otherwise
}

// RollResult reports what a die roll produced: either a pending token
// selection, or an automatic turn advance when no move exists or the
// consecutive-six limit forfeited the turn.
type RollResult struct {
	Die           int
	LegalTokens   []int
	TurnForfeited bool
	TurnSkipped   bool
	NextTurn      Color
}

// MoveResult is the outcome of a committed token selection.
type MoveResult struct {
	TokenID   int
	From      int
	To        int
	Path      []PathStep
	Snapshot  *BoardSnapshot
	Effects   []Effect
	NextTurn  Color
	MatchOver bool
	Winner    Color
}

// Sequencer drives turn order for one match. It is the single owner of
// the current board snapshot and advances it by replacement: each
// commit clones, mutates the clone, and swaps it in, so snapshots
// handed out earlier are never written again.
//
// The Sequencer performs no locking and assumes one committer per
// match; a caller serving concurrent requests must serialize commits
// per match before invoking it.
type Sequencer struct {
	rules  Rules
	active []Color
	board  *BoardSnapshot
	phase  SequencerPhase

	die   int
	legal []int

	consecutiveSixes int
	winner           Color
}

// NewSequencer creates a sequencer for the given rule set and the
// active colors in rotation order. The first listed color acts first.
func NewSequencer(rules Rules, active []Color) (*Sequencer, error) {
	if len(active) < 2 {
		return nil, ErrTooFewColors
	}
	seen := map[Color]bool{}
	for _, c := range active {
		if !c.Valid() {
			return nil, ErrInvalidColor
		}
		if seen[c] {
			return nil, ErrTooFewColors
		}
		seen[c] = true
	}
	return &Sequencer{
		rules:  rules,
		active: append([]Color(nil), active...),
		board:  NewBoard(active[0]),
		phase:  PhaseAwaitingRoll,
		winner: -1,
	}, nil
}

// Snapshot returns the current board snapshot. Callers must treat it as
// read-only; it is superseded, not mutated, by the next commit.
func (s *Sequencer) Snapshot() *BoardSnapshot { return s.board }

// Phase returns the state machine's current state.
func (s *Sequencer) Phase() SequencerPhase { return s.phase }

// PendingDie returns the die value awaiting token selection, or 0.
func (s *Sequencer) PendingDie() int { return s.die }

// PendingLegalTokens returns the legal token ids for the pending roll.
func (s *Sequencer) PendingLegalTokens() []int {
	return append([]int(nil), s.legal...)
}

// Winner returns the winning color once the match is over, else -1.
func (s *Sequencer) Winner() Color { return s.winner }

// Roll accepts a die value for the current color. When at least one
// token has a legal move the sequencer waits for a selection; otherwise
// the turn resolves immediately with no move committed and no effects.
func (s *Sequencer) Roll(die int) (RollResult, error) {
	switch s.phase {
	case PhaseMatchOver:
		return RollResult{}, ErrMatchOver
	case PhaseTokenSelectable:
		return RollResult{}, ErrNotAwaitingRoll
	}
	if !ValidDie(die) {
		return RollResult{}, ErrInvalidDie
	}

	if die == DieMax {
		s.consecutiveSixes++
	} else {
		s.consecutiveSixes = 0
	}

	if s.rules.MaxConsecutiveSixes > 0 && s.consecutiveSixes >= s.rules.MaxConsecutiveSixes {
		next := s.passTurn()
		return RollResult{Die: die, TurnForfeited: true, NextTurn: next}, nil
	}

	legal := LegalTokens(s.board, s.board.CurrentTurn, die)
	if len(legal) == 0 {
		next := s.resolveNextTurn(die, false)
		return RollResult{Die: die, TurnSkipped: true, NextTurn: next}, nil
	}

	s.die = die
	s.legal = legal
	s.phase = PhaseTokenSelectable
	return RollResult{Die: die, LegalTokens: append([]int(nil), legal...), NextTurn: s.board.CurrentTurn}, nil
}

// Select commits a move for one of the legal tokens computed by the
// last Roll. Any token id outside the legal set is rejected without
// touching the snapshot.
func (s *Sequencer) Select(tokenID int) (MoveResult, error) {
	switch s.phase {
	case PhaseMatchOver:
		return MoveResult{}, ErrMatchOver
	case PhaseAwaitingRoll:
		return MoveResult{}, ErrNoRollPending
	}
	if tokenID < 0 || tokenID >= TokensPerColor {
		return MoveResult{}, ErrInvalidToken
	}
	inLegal := false
	for _, id := range s.legal {
		if id == tokenID {
			inLegal = true
			break
		}
	}
	if !inLegal {
		return MoveResult{}, ErrIllegalSelection
	}

	mover := s.board.CurrentTurn
	from := s.board.Tokens[mover][tokenID]
	dest, _ := Evaluate(from, s.die)

	path, err := Project(mover, from, s.die)
	if err != nil {
		return MoveResult{}, err
	}

	next := s.board.Clone()
	next.Tokens[mover][tokenID] = dest

	var effects []Effect
	for _, ev := range ResolveCapture(next, mover, dest) {
		effects = append(effects, Effect{
			Kind:         EffectCapture,
			Color:        ev.CapturedColor,
			TokenID:      ev.CapturedToken,
			AbsoluteCell: ev.AbsoluteCell,
		})
	}
	captured := len(effects) > 0

	matchOver := false
	if dest == FinishPosition {
		effects = append(effects, Effect{Kind: EffectFinish, Color: mover, TokenID: tokenID, AbsoluteCell: -1})
		if next.FinishedCount(mover) >= s.rules.tokensToWin() {
			effects = append(effects, Effect{Kind: EffectMatchWon, Color: mover, TokenID: tokenID, AbsoluteCell: -1})
			matchOver = true
		}
	}

	die := s.die
	s.die = 0
	s.legal = nil
	s.board = next

	if matchOver {
		s.phase = PhaseMatchOver
		s.winner = mover
		return MoveResult{
			TokenID: tokenID, From: from, To: dest, Path: path,
			Snapshot: next, Effects: effects,
			NextTurn: mover, MatchOver: true, Winner: mover,
		}, nil
	}

	s.phase = PhaseAwaitingRoll
	nextTurn := s.resolveNextTurn(die, captured)
	return MoveResult{
		TokenID: tokenID, From: from, To: dest, Path: path,
		Snapshot: s.board, Effects: effects,
		NextTurn: nextTurn, MatchOver: false, Winner: -1,
	}, nil
}

// resolveNextTurn applies the configurable incentive rules: a six or a
// capture keeps the turn with the current color, everything else passes
// it along the fixed rotation.
func (s *Sequencer) resolveNextTurn(die int, captured bool) Color {
	if (die == DieMax && s.rules.ExtraTurnOnSix) || (captured && s.rules.ExtraTurnOnCapture) {
		return s.board.CurrentTurn
	}
	return s.passTurn()
}

// passTurn advances the turn to the next active color by snapshot
// replacement and resets the consecutive-six counter.
func (s *Sequencer) passTurn() Color {
	cur := s.board.CurrentTurn
	idx := 0
	for i, c := range s.active {
		if c == cur {
			idx = i
			break
		}
	}
	next := s.active[(idx+1)%len(s.active)]

	board := s.board.Clone()
	board.CurrentTurn = next
	s.board = board
	s.consecutiveSixes = 0
	return next
}
