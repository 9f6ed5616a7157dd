// Package ui holds what the panels of the terminal UI share.
package ui

const (
	// ScrollMargin is how many rows stay visible above and below the cursor.
	ScrollMargin = 3

	// BorderSize is the space a rounded panel border takes on each axis.
	BorderSize = 2

	// PanelOverhead is the border plus the panel title and its separator.
	PanelOverhead = BorderSize + 2

	// MinProgressBarWidth is the narrowest progress bar still worth drawing.
	MinProgressBarWidth = 5
)
