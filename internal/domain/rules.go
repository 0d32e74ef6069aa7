package domain

// Rules holds the configurable rule variants the engine supports. The
// classic incentives (six and capture grant an extra turn, three sixes
// in a row forfeit it) are conventions, not invariants, so every one of
// them can be switched off for house variants.
type Rules struct {
	// ExtraTurnOnSix keeps the turn with the roller after a 6.
	ExtraTurnOnSix bool
	// ExtraTurnOnCapture keeps the turn with the mover after a capture.
	ExtraTurnOnCapture bool
	// TokensToWin is how many finished tokens end the match for a color.
	TokensToWin int
	// MaxConsecutiveSixes forfeits the turn when reached; 0 disables.
	MaxConsecutiveSixes int
}

// DefaultRules returns the standard rule set.
func DefaultRules() Rules {
	return Rules{
		ExtraTurnOnSix:      true,
		ExtraTurnOnCapture:  true,
		TokensToWin:         TokensPerColor,
		MaxConsecutiveSixes: 3,
	}
}

// tokensToWin treats 0 as the full token set.
func (r Rules) tokensToWin() int {
	if r.TokensToWin <= 0 {
		return TokensPerColor
	}
	return r.TokensToWin
}
