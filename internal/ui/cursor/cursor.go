// Package cursor tracks the selected row and scroll offset of a list.
package cursor

// Cursor is a selection in a list seen through a viewport. The list length
// and viewport height are passed on each call because the queue and the
// terminal change under it.
type Cursor struct {
	pos    int
	offset int // first visible row
	margin int // rows kept visible around pos when scrolling
}

// New returns a cursor on the first row.
func New(margin int) Cursor {
	return Cursor{margin: margin}
}

func (c Cursor) Pos() int { return c.pos }

func (c Cursor) Offset() int { return c.offset }

// Jump selects row pos, clamped to the list, and scrolls to it.
func (c *Cursor) Jump(pos, n, height int) {
	if n == 0 {
		c.pos, c.offset = 0, 0
		return
	}
	c.pos = min(max(pos, 0), n-1)
	c.scroll(n, height)
}

// Fit keeps the selection inside a list that may have shrunk.
func (c *Cursor) Fit(n, height int) {
	c.Jump(c.pos, n, height)
}

// HandleKey applies a navigation key and reports whether it was one:
// j/k, arrows, g/G, home/end, ctrl+d/ctrl+u for half pages.
func (c *Cursor) HandleKey(key string, n, height int) bool {
	var target int
	switch key {
	case "j", "down":
		target = c.pos + 1
	case "k", "up":
		target = c.pos - 1
	case "g", "home":
		target = 0
	case "G", "end":
		target = n - 1
	case "ctrl+d":
		target = c.pos + height/2
	case "ctrl+u":
		target = c.pos - height/2
	default:
		return false
	}
	c.Jump(target, n, height)
	return true
}

func (c *Cursor) scroll(n, height int) {
	if height <= 0 {
		return
	}
	// a margin larger than half the viewport would make it jitter
	margin := min(c.margin, (height-1)/2)

	if c.pos < c.offset+margin {
		c.offset = c.pos - margin
	}
	if c.pos >= c.offset+height-margin {
		c.offset = c.pos - height + margin + 1
	}
	c.offset = min(max(c.offset, 0), max(n-height, 0))
}
