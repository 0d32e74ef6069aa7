package domain

// CaptureEvent records one opposing token sent back to its yard.
type CaptureEvent struct {
	CapturedColor Color
	CapturedToken int
	AbsoluteCell  int
}

// ResolveCapture applies capture semantics for a token of movingColor
// arriving at the given relative destination, mutating the (already
// cloned) snapshot and returning one event per captured token.
//
// Capture applies only to ring destinations; yard and home-stretch
// cells never trigger or suffer capture. Safe cells are immune
// regardless of occupancy. Every opposing ring token sharing the
// destination's absolute cell is captured — a pre-existing multi-
// occupancy is tolerated and swept whole, not treated as corruption.
// Same-color co-location is permitted without effect.
func ResolveCapture(b *BoardSnapshot, movingColor Color, dest int) []CaptureEvent {
	if dest < 1 || dest > RingSpan {
		return nil
	}
	cell, err := AbsoluteCell(movingColor, dest)
	if err != nil {
		return nil
	}
	if IsSafeCell(cell) {
		return nil
	}

	var events []CaptureEvent
	for c := Red; c < NumColors; c++ {
		if c == movingColor {
			continue
		}
		for id, p := range b.Tokens[c] {
			if p < 1 || p > RingSpan {
				continue
			}
			other, err := AbsoluteCell(c, p)
			if err != nil || other != cell {
				continue
			}
			b.Tokens[c][id] = 0
			events = append(events, CaptureEvent{
				CapturedColor: c,
				CapturedToken: id,
				AbsoluteCell:  cell,
			})
		}
	}
	return events
}
