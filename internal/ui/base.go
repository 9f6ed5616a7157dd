package ui

// Base carries the size and focus of a panel. Panels embed it.
type Base struct {
	width, height int
	focused       bool
}

func (b *Base) SetFocused(focused bool) { b.focused = focused }

func (b Base) IsFocused() bool { return b.focused }

func (b *Base) SetSize(width, height int) {
	b.width = width
	b.height = height
}

func (b Base) Width() int { return b.width }

func (b Base) Height() int { return b.height }

// InnerWidth is the width inside the panel border.
func (b Base) InnerWidth() int {
	return max(b.width-BorderSize, 0)
}

// ListHeight is the number of list rows a bordered panel with a title can
// show.
func (b Base) ListHeight() int {
	return max(b.height-PanelOverhead, 0)
}
