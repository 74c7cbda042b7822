package layout

// cellGutter is the blank space kept at the right of every table column.
const cellGutter = 6.0

// tableContext lays out a table as equal-width columns. Each cell wraps
// inside its column and a row ends at the lowest baseline any cell reached.
type tableContext struct {
	left    float64
	colW    float64
	columns int
	col     int
	head    bool
	rowTop  float64 // first baseline of the current row
	rowLow  float64 // lowest baseline reached in the current row
}

func newTable(columns int, left, right float64) *tableContext {
	columns = max(columns, 1)
	return &tableContext{
		left:    left,
		colW:    (right - left) / float64(columns),
		columns: columns,
	}
}

func (t *tableContext) beginRow(y float64, head bool) {
	t.col = 0
	t.head = head
	t.rowTop = y
	t.rowLow = y
}

// cell returns the horizontal bounds of the next cell. Cells past the
// declared column count share the last column.
func (t *tableContext) cell() (left, right float64) {
	col := min(t.col, t.columns-1)
	left = t.left + t.colW*float64(col)
	right = left + t.colW
	if t.colW > 2*cellGutter {
		right -= cellGutter
	}
	return left, right
}

func (t *tableContext) endCell(y float64) {
	t.rowLow = min(t.rowLow, y)
	t.col++
}
