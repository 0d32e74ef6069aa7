package domain

import (
	"errors"
	"testing"
)

func TestProjectMatchesEvaluate(t *testing.T) {
	// For every legal (position, die) pair the final projected step must
	// equal the committed result, for every color.
	for c := Red; c < NumColors; c++ {
		for p := 0; p <= FinishPosition; p++ {
			for d := DieMin; d <= DieMax; d++ {
				dest, legal := Evaluate(p, d)
				steps, err := Project(c, p, d)
				if !legal {
					if !errors.Is(err, ErrIllegalMove) {
						t.Fatalf("Project(%v, %d, %d) error = %v, want ErrIllegalMove", c, p, d, err)
					}
					continue
				}
				if err != nil {
					t.Fatalf("Project(%v, %d, %d) unexpected error: %v", c, p, d, err)
				}
				if last := steps[len(steps)-1].Position; last != dest {
					t.Fatalf("Project(%v, %d, %d) ends at %d, Evaluate says %d", c, p, d, last, dest)
				}
			}
		}
	}
}

func TestProjectYardExit(t *testing.T) {
	steps, err := Project(Green, 0, 6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(steps) != 1 {
		t.Fatalf("yard exit path length = %d, want 1", len(steps))
	}
	if steps[0].Regime != RegimeRing {
		t.Errorf("yard exit regime = %v, want ring", steps[0].Regime)
	}
	if steps[0].AbsoluteCell != Green.EntryOffset() {
		t.Errorf("yard exit cell = %d, want entry %d", steps[0].AbsoluteCell, Green.EntryOffset())
	}
}

func TestProjectLengthEqualsDie(t *testing.T) {
	for d := DieMin; d <= DieMax; d++ {
		steps, err := Project(Red, 10, d)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(steps) != d {
			t.Errorf("die %d: path length = %d, want %d", d, len(steps), d)
		}
	}
}

func TestProjectCrossesIntoHomeStretch(t *testing.T) {
	// 50 + 4 walks ring cells 51 then stretch cells 52..54.
	steps, err := Project(Yellow, 50, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantRegimes := []Regime{RegimeRing, RegimeHomeStretch, RegimeHomeStretch, RegimeHomeStretch}
	for i, want := range wantRegimes {
		if steps[i].Regime != want {
			t.Errorf("step %d regime = %v, want %v", i, steps[i].Regime, want)
		}
	}
	// Ring step carries an absolute cell, stretch steps carry private ids.
	if cell, _ := AbsoluteCell(Yellow, 51); steps[0].AbsoluteCell != cell {
		t.Errorf("ring step cell = %d, want %d", steps[0].AbsoluteCell, cell)
	}
	if steps[1].AbsoluteCell != Yellow.HomeStretchCells()[0] {
		t.Errorf("stretch step cell = %d, want %d", steps[1].AbsoluteCell, Yellow.HomeStretchCells()[0])
	}
}

func TestProjectInvalidPosition(t *testing.T) {
	if _, err := Project(Red, 58, 1); !errors.Is(err, ErrInvalidPosition) {
		t.Fatalf("error = %v, want ErrInvalidPosition", err)
	}
}
