package domain

import "errors"

// Regime classifies where a relative position sits on the board.
type Regime int

const (
	RegimeYard Regime = iota
	RegimeRing
	RegimeHomeStretch
	RegimeFinished
)

var regimeNames = []string{"yard", "ring", "home_stretch", "finished"}

func (r Regime) String() string {
	if r < RegimeYard || r > RegimeFinished {
		return "unknown"
	}
	return regimeNames[r]
}

// ErrInvalidPosition signals a relative position outside {0} ∪ [1,57].
// It marks a caller bug, not a recoverable game condition.
var ErrInvalidPosition = errors.New("relative position out of range")

// Classify returns the regime of a relative position.
func Classify(position int) (Regime, error) {
	switch {
	case position == 0:
		return RegimeYard, nil
	case position >= 1 && position <= RingSpan:
		return RegimeRing, nil
	case position >= HomeStretchStart && position < FinishPosition:
		return RegimeHomeStretch, nil
	case position == FinishPosition:
		return RegimeFinished, nil
	default:
		return 0, ErrInvalidPosition
	}
}

// AbsoluteCell converts a color-relative ring position into the shared
// ring cell identity used for capture comparison. Relative numbers are
// not comparable across colors; only absolute cells are.
func AbsoluteCell(c Color, position int) (int, error) {
	if position < 1 || position > RingSpan {
		return 0, ErrInvalidPosition
	}
	return (c.EntryOffset() + position - 1) % TrackLength, nil
}
