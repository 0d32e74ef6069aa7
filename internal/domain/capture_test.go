package domain

import "testing"

// greenPositionFor returns Green's relative position landing on the
// same absolute cell as Red's position p. Green enters 13 cells ahead
// of Red.
func greenPositionFor(t *testing.T, redPos int) int {
	t.Helper()
	cell, err := AbsoluteCell(Red, redPos)
	if err != nil {
		t.Fatalf("AbsoluteCell: %v", err)
	}
	for p := 1; p <= RingSpan; p++ {
		if c, _ := AbsoluteCell(Green, p); c == cell {
			return p
		}
	}
	t.Fatalf("no green position maps to cell %d", cell)
	return 0
}

func TestResolveCaptureOnSharedCell(t *testing.T) {
	// Red moves to relative 10 (absolute 9, not safe); Green holds a
	// token on the same absolute cell.
	b := NewBoard(Red)
	dest := 10
	b.Tokens[Red][0] = dest
	b.Tokens[Green][2] = greenPositionFor(t, dest)

	events := ResolveCapture(b, Red, dest)
	if len(events) != 1 {
		t.Fatalf("got %d capture events, want 1", len(events))
	}
	ev := events[0]
	if ev.CapturedColor != Green || ev.CapturedToken != 2 {
		t.Errorf("captured %v token %d, want green token 2", ev.CapturedColor, ev.CapturedToken)
	}
	wantCell, _ := AbsoluteCell(Red, dest)
	if ev.AbsoluteCell != wantCell {
		t.Errorf("event cell = %d, want %d", ev.AbsoluteCell, wantCell)
	}
	if b.Tokens[Green][2] != 0 {
		t.Errorf("captured token position = %d, want 0", b.Tokens[Green][2])
	}
}

func TestResolveCaptureSafeCell(t *testing.T) {
	// Relative 9 for Red is absolute cell 8, a safe cell: both tokens
	// coexist.
	b := NewBoard(Red)
	dest := 9
	cell, _ := AbsoluteCell(Red, dest)
	if !IsSafeCell(cell) {
		t.Fatalf("test setup: cell %d expected safe", cell)
	}
	green := greenPositionFor(t, dest)
	b.Tokens[Red][0] = dest
	b.Tokens[Green][0] = green

	if events := ResolveCapture(b, Red, dest); len(events) != 0 {
		t.Fatalf("capture fired on safe cell: %+v", events)
	}
	if b.Tokens[Green][0] != green {
		t.Errorf("green token moved from %d to %d", green, b.Tokens[Green][0])
	}
}

func TestResolveCaptureIgnoresSameColor(t *testing.T) {
	b := NewBoard(Red)
	b.Tokens[Red][0] = 10
	b.Tokens[Red][1] = 10 // same-color co-location is permitted

	if events := ResolveCapture(b, Red, 10); len(events) != 0 {
		t.Fatalf("captured own color: %+v", events)
	}
	if b.Tokens[Red][1] != 10 {
		t.Errorf("own token moved to %d", b.Tokens[Red][1])
	}
}

func TestResolveCaptureSweepsMultipleOccupants(t *testing.T) {
	// Degenerate pre-existing stack of two opposing tokens: both go.
	b := NewBoard(Red)
	dest := 10
	green := greenPositionFor(t, dest)
	b.Tokens[Green][0] = green
	b.Tokens[Green][3] = green

	events := ResolveCapture(b, Red, dest)
	if len(events) != 2 {
		t.Fatalf("got %d capture events, want 2", len(events))
	}
	for _, id := range []int{0, 3} {
		if b.Tokens[Green][id] != 0 {
			t.Errorf("green token %d position = %d, want 0", id, b.Tokens[Green][id])
		}
	}
}

func TestResolveCaptureSkipsNonRingDestinations(t *testing.T) {
	b := NewBoard(Red)
	b.Tokens[Green][0] = 5
	for _, dest := range []int{0, 52, 57} {
		if events := ResolveCapture(b, Red, dest); len(events) != 0 {
			t.Errorf("dest %d: capture fired outside ring: %+v", dest, events)
		}
	}
}

func TestResolveCaptureIgnoresHomeStretchTokens(t *testing.T) {
	// A green token on its private stretch can never be hit even if the
	// raw numbers would once have collided on the ring.
	b := NewBoard(Red)
	b.Tokens[Green][0] = 53
	if events := ResolveCapture(b, Red, 15); len(events) != 0 {
		t.Fatalf("captured home-stretch token: %+v", events)
	}
}
