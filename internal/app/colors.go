package app

import "math/rand/v2"

// PlayerColors is the palette handed out to players who join without picking one
var PlayerColors = []string{
	// Primary
	"red", "blue", "green", "yellow",

	// Secondary
	"orange", "purple", "pink", "cyan",

	// Extras
	"lime", "brown", "white", "black",
	"maroon", "rose", "banana", "gray",
	"tan", "coral",
}

// GetRandomColor returns a random color from the palette
func GetRandomColor() string {
	return PlayerColors[rand.IntN(len(PlayerColors))]
}

// GetColorExcluding returns a random color nobody in taken is using yet
func GetColorExcluding(taken []string) string {
	excludeMap := make(map[string]bool)
	for _, c := range taken {
		excludeMap[c] = true
	}

	free := make([]string, 0, len(PlayerColors))
	for _, c := range PlayerColors {
		if !excludeMap[c] {
			free = append(free, c)
		}
	}

	// Fallback: palette exhausted, colors may repeat
	if len(free) == 0 {
		return GetRandomColor()
	}
	return free[rand.IntN(len(free))]
}
