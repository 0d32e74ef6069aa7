package domain

// BoardSnapshot is the authoritative position state for one match: four
// colors times four tokens, each holding a relative position, plus whose
// turn it is. The Sequencer owns "the current" snapshot and advances it
// by replacement, never by in-place mutation, so previously returned
// snapshots stay valid for audit and replay.
type BoardSnapshot struct {
	// Tokens[color][id] is that token's relative position:
	// 0 yard, 1..51 ring, 52..56 home stretch, 57 finished.
	Tokens      [NumColors][TokensPerColor]int
	CurrentTurn Color
}

// NewBoard returns the starting snapshot: every token in its yard and
// the given color to act first.
func NewBoard(first Color) *BoardSnapshot {
	return &BoardSnapshot{CurrentTurn: first}
}

// Clone returns an independent copy of the snapshot.
func (b *BoardSnapshot) Clone() *BoardSnapshot {
	out := *b
	return &out
}

// FinishedCount returns how many of c's tokens have reached the finish.
func (b *BoardSnapshot) FinishedCount(c Color) int {
	n := 0
	for _, p := range b.Tokens[c] {
		if p == FinishPosition {
			n++
		}
	}
	return n
}

// RingTokens returns the ids of c's tokens currently on the shared ring.
func (b *BoardSnapshot) RingTokens(c Color) []int {
	var ids []int
	for id, p := range b.Tokens[c] {
		if p >= 1 && p <= RingSpan {
			ids = append(ids, id)
		}
	}
	return ids
}
