package domain

import "errors"

// ErrIllegalMove signals a structurally valid but rule-disallowed move.
// Callers that check Evaluate first never see it.
var ErrIllegalMove = errors.New("move is not legal")

// Evaluate applies the move-legality rules to a token's relative
// position and a die value. It returns the resulting relative position
// and whether the move is legal:
//
//  1. A yard token (position 0) may only leave on a 6, landing on 1.
//  2. Otherwise the token advances by the die value, provided it does
//     not overshoot the finish: overshoot neither wraps nor clamps.
//
// Board occupancy never blocks movement; occupancy effects are the
// Capture Resolver's concern. A finished token is never legal to move.
func Evaluate(position, die int) (int, bool) {
	if position == 0 {
		if die == DieMax {
			return 1, true
		}
		return 0, false
	}
	if next := position + die; next <= FinishPosition {
		return next, true
	}
	return 0, false
}

// LegalTokens returns the ids of c's tokens that have a legal move for
// the given die value, in ascending id order.
func LegalTokens(b *BoardSnapshot, c Color, die int) []int {
	var ids []int
	for id, p := range b.Tokens[c] {
		if _, ok := Evaluate(p, die); ok {
			ids = append(ids, id)
		}
	}
	return ids
}
