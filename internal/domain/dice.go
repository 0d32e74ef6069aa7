package domain

import cryptorand "crypto/rand"

const (
	// DieMin and DieMax bound a legal die value.
	DieMin = 1
	DieMax = 6
)

// ValidDie reports whether die is a legal die value.
func ValidDie(die int) bool {
	return die >= DieMin && die <= DieMax
}

// RollDie returns a uniformly distributed die value from a
// cryptographically secure source. Rejection sampling avoids modulo
// bias (252 is the largest multiple of 6 below 256).
func RollDie() int {
	var b [1]byte
	for {
		if _, err := cryptorand.Read(b[:]); err != nil {
			continue
		}
		if b[0] < 252 {
			return int(b[0]%6) + 1
		}
	}
}
