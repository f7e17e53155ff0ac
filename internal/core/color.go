package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for screen elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// tileColors cycles warmer as tiles grow, starting at 2.
var tileColors = []Color{
	ColorWhite,         // 2
	ColorBrightWhite,   // 4
	ColorYellow,        // 8
	ColorOrange,        // 16
	ColorBrightRed,     // 32
	ColorRed,           // 64
	ColorBrightYellow,  // 128
	ColorBrightGreen,   // 256
	ColorGreen,         // 512
	ColorBrightCyan,    // 1024
	ColorBrightMagenta, // 2048
}

// TileColor returns the color a tile of the given value is drawn in.
// Empty cells are gray and anything past 2048 is magenta.
func TileColor(value int) Color {
	if value <= 0 {
		return ColorGray
	}
	idx := -1
	for v := value; v > 1; v >>= 1 {
		idx++
	}
	if idx < 0 {
		return ColorGray
	}
	if idx >= len(tileColors) {
		return ColorMagenta
	}
	return tileColors[idx]
}
