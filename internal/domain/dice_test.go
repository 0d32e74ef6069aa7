package domain

import "testing"

func TestRollDieRange(t *testing.T) {
	seen := map[int]bool{}
	for i := 0; i < 10000; i++ {
		roll := RollDie()
		if !ValidDie(roll) {
			t.Fatalf("RollDie() = %d, out of range", roll)
		}
		seen[roll] = true
	}
	for face := DieMin; face <= DieMax; face++ {
		if !seen[face] {
			t.Errorf("face %d never rolled in 10000 tries", face)
		}
	}
}

func TestValidDie(t *testing.T) {
	for _, tt := range []struct {
		die  int
		want bool
	}{
		{0, false}, {1, true}, {6, true}, {7, false}, {-2, false},
	} {
		if got := ValidDie(tt.die); got != tt.want {
			t.Errorf("ValidDie(%d) = %v, want %v", tt.die, got, tt.want)
		}
	}
}
