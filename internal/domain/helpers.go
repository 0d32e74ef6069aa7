package domain

// LowestAvailableSeat returns the lowest index of an empty seat, or -1
// when the table is full.
func LowestAvailableSeat(seats *[NumColors]string) int {
	for i, userID := range seats {
		if userID == "" {
			return i
		}
	}
	return -1
}

// SeatColor maps a seat index to the color that seat plays. Seats and
// colors share the same fixed rotation, so the mapping is positional.
func SeatColor(seat int) Color {
	return Color(seat % NumColors)
}

// ActiveColors returns, in rotation order, the colors of the occupied
// seats.
func ActiveColors(seats *[NumColors]string) []Color {
	var colors []Color
	for i, userID := range seats {
		if userID != "" {
			colors = append(colors, SeatColor(i))
		}
	}
	return colors
}
