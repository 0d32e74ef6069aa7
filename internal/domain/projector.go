package domain

// PathStep is one cell a token occupies while a move animates or is
// previewed. AbsoluteCell is -1 outside the ring regime; home-stretch
// steps carry the color-private cell identity instead.
type PathStep struct {
	Position     int
	Regime       Regime
	AbsoluteCell int
}

// Project replays a legal move one relative step at a time and returns
// the ordered cells the token will pass through, ending on the
// committed destination. It re-derives every step through the position
// codec so the projection can never diverge from Evaluate's result.
// Leaving the yard on a 6 produces the single entry step.
//
// Project is read-only: it never touches a board snapshot and callers
// may invoke it purely for preview.
func Project(c Color, position, die int) ([]PathStep, error) {
	if _, err := Classify(position); err != nil {
		return nil, err
	}
	dest, legal := Evaluate(position, die)
	if !legal {
		return nil, ErrIllegalMove
	}

	start := position + 1
	if position == 0 {
		start = dest // yard exit: the entry cell is the whole path
	}

	steps := make([]PathStep, 0, dest-start+1)
	for p := start; p <= dest; p++ {
		regime, err := Classify(p)
		if err != nil {
			return nil, err
		}
		step := PathStep{Position: p, Regime: regime, AbsoluteCell: -1}
		switch regime {
		case RegimeRing:
			cell, err := AbsoluteCell(c, p)
			if err != nil {
				return nil, err
			}
			step.AbsoluteCell = cell
		case RegimeHomeStretch, RegimeFinished:
			step.AbsoluteCell = c.HomeStretchCells()[p-HomeStretchStart]
		}
		steps = append(steps, step)
	}
	return steps, nil
}
