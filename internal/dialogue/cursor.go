package dialogue

// Cursor walks a set of dialogue lines. It is either idle or showing one line.
type Cursor struct {
	lines   []string
	index   int
	showing bool
}

// Open shows the first line of lines. An empty set leaves the cursor idle.
func (c *Cursor) Open(lines []string) {
	c.lines = lines
	c.index = 0
	c.showing = len(lines) > 0
}

// Next moves to the following line. It returns false, without moving, when
// idle or already on the last line.
func (c *Cursor) Next() bool {
	if !c.showing || c.index >= len(c.lines)-1 {
		return false
	}
	c.index++
	return true
}

// Close returns the cursor to idle.
func (c *Cursor) Close() {
	c.showing = false
	c.index = 0
}

func (c *Cursor) Showing() bool { return c.showing }

func (c *Cursor) Index() int { return c.index }

// Len returns the size of the open line set.
func (c *Cursor) Len() int { return len(c.lines) }

// AtLast reports whether the current line is the final one.
func (c *Cursor) AtLast() bool { return c.showing && c.index == len(c.lines)-1 }

// Line returns the current line, or "" when idle.
func (c *Cursor) Line() string {
	if !c.showing {
		return ""
	}
	return c.lines[c.index]
}
