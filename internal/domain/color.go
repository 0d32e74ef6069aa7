package domain

// Color identifies one of the four token sets on the board.
type Color int

const (
	Red Color = iota
	Green
	Yellow
	Blue
)

// NumColors is the number of token sets sharing the ring.
const NumColors = 4

// TokensPerColor is the number of tokens each color owns.
const TokensPerColor = 4

const (
	// TrackLength is the total number of cells on the shared ring.
	TrackLength = 52
	// RingSpan is the highest relative position still on the ring.
	RingSpan = 51
	// HomeStretchStart is the first relative position on a color's home stretch.
	HomeStretchStart = 52
	// FinishPosition is the relative position of a finished token.
	FinishPosition = 57
)

// entryOffsets maps each color to the absolute ring cell where its
// relative position 1 begins. Colors enter 13 cells apart.
var entryOffsets = [NumColors]int{
	Red:    0,
	Green:  13,
	Yellow: 26,
	Blue:   39,
}

// safeCells are the absolute ring cells where no capture can occur:
// each color's entry cell plus the midpoint before the next entry.
var safeCells = map[int]bool{
	0: true, 8: true, 13: true, 21: true,
	26: true, 34: true, 39: true, 47: true,
}

var colorNames = [NumColors]string{"red", "green", "yellow", "blue"}

// String returns the lowercase color name, or "unknown" for out-of-range values.
func (c Color) String() string {
	if !c.Valid() {
		return "unknown"
	}
	return colorNames[c]
}

// Valid reports whether c is one of the four defined colors.
func (c Color) Valid() bool {
	return c >= Red && c < NumColors
}

// EntryOffset returns the absolute ring cell at which c's relative
// position 1 begins.
func (c Color) EntryOffset() int {
	return entryOffsets[c]
}

// Next returns the color after c in the fixed turn rotation.
func (c Color) Next() Color {
	return (c + 1) % NumColors
}

// IsSafeCell reports whether the absolute ring cell is immune to capture.
func IsSafeCell(cell int) bool {
	return safeCells[cell]
}

// HomeStretchCells returns the ordered identities of c's six private
// home-stretch cells. These are only meaningful to a renderer; capture
// logic never touches them. Cells are namespaced per color beyond the
// shared ring so they can never collide with ring cells or each other.
func (c Color) HomeStretchCells() [6]int {
	var cells [6]int
	for i := range cells {
		cells[i] = TrackLength + int(c)*6 + i
	}
	return cells
}
