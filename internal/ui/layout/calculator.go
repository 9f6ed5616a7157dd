// Package layout provides pure functions for UI dimension calculations.
package layout

// NarrowThreshold is the terminal width below which the queue panel is
// stacked below the dances panel instead of beside it.
const NarrowThreshold = 80

// FooterHeight is the single status line at the bottom of the screen.
const FooterHeight = 1

// Size is a panel dimension.
type Size struct {
	Width, Height int
}

// Panels holds the computed sizes of the two body panels.
type Panels struct {
	Dances  Size
	Queue   Size
	Stacked bool // queue below dances
}

// BodyHeight is the terminal height minus the header, the player bar and
// the footer.
func BodyHeight(windowHeight, headerHeight, playerBarHeight int) int {
	return max(windowHeight-headerHeight-playerBarHeight-FooterHeight, 0)
}

// IsNarrowMode returns true if the terminal width is below the narrow threshold.
func IsNarrowMode(width int) bool {
	return width < NarrowThreshold
}

// Split divides the body between the dances and queue panels.
// Side by side, dances get 2/5 of the width. Stacked, the queue gets the
// lower 3/5 of the height since it is what the DJ watches during a set.
func Split(width, bodyHeight int) Panels {
	if IsNarrowMode(width) {
		dancesHeight := bodyHeight * 2 / 5
		return Panels{
			Dances:  Size{Width: width, Height: dancesHeight},
			Queue:   Size{Width: width, Height: bodyHeight - dancesHeight},
			Stacked: true,
		}
	}
	dancesWidth := width * 2 / 5
	return Panels{
		Dances: Size{Width: dancesWidth, Height: bodyHeight},
		Queue:  Size{Width: width - dancesWidth, Height: bodyHeight},
	}
}
