package layout

// Box is an axis-aligned area of the page.
type Box struct {
	Left, Right, Top, Bottom float64
}

// Width returns the horizontal extent of the box.
func (b Box) Width() float64 { return b.Right - b.Left }

// cursor is the pen position inside the content box. lineLeft and lineRight
// bound the current line; they narrow to a column inside table cells.
type cursor struct {
	box       Box
	lineLeft  float64
	lineRight float64
	x, y      float64
	page      int

	lineEmpty bool // nothing drawn since the last break
	drawn     bool // something drawn on this page
	inColumn  bool
}

func newCursor(box Box, firstLine float64) *cursor {
	return &cursor{
		box:       box,
		lineLeft:  box.Left,
		lineRight: box.Right,
		x:         box.Left,
		y:         box.Top - firstLine,
		lineEmpty: true,
	}
}

func (c *cursor) remaining() float64 { return c.lineRight - c.x }

func (c *cursor) lineWidth() float64 { return c.lineRight - c.lineLeft }

func (c *cursor) advance(w float64) {
	c.x += w
	c.lineEmpty = false
	c.drawn = true
}

func (c *cursor) lineBreak(lineHeight float64) {
	c.x = c.lineLeft
	c.y -= lineHeight
	c.lineEmpty = true
}

func (c *cursor) newPage(firstLine float64) {
	c.page++
	c.x = c.lineLeft
	c.y = c.box.Top - firstLine
	c.lineEmpty = true
	c.drawn = false
}

// enterColumn narrows the line to [left, right] and moves the pen to its
// start on baseline y.
func (c *cursor) enterColumn(left, right, y float64) {
	c.lineLeft, c.lineRight = left, right
	c.x, c.y = left, y
	c.lineEmpty = true
	c.inColumn = true
}

func (c *cursor) leaveColumn() {
	c.lineLeft, c.lineRight = c.box.Left, c.box.Right
	c.x = c.lineLeft
	c.inColumn = false
}
