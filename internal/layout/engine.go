package layout

import (
	"context"
	"fmt"
)

// Offsets of decorations relative to the baseline, as fractions of the
// line height. Page space has y pointing up.
const (
	underlineOffset     = -0.25
	strikethroughOffset = 0.20
	ruleOffset          = 0.30
	descentFraction     = 0.25
)

// openBlock is a Start still waiting for its End.
type openBlock struct {
	block Block
	prev  bool  // span flag before Start, or bold before a table head
	at    Point // cursor at Start, for links
	page  int
}

// Point is a position in page space.
type Point struct{ X, Y float64 }

type renderer struct {
	cfg   Config
	in    *Lookahead
	w     Writer
	m     Metrics
	style Style
	cur   *cursor
	lists ListStack
	open  []openBlock
	table *tableContext
}

func newRenderer(src Source, w Writer, m Metrics, cfg Config) *renderer {
	style := cfg.bodyStyle()
	return &renderer{
		cfg:   cfg,
		in:    NewLookahead(src),
		w:     w,
		m:     m,
		style: style,
		cur:   newCursor(cfg.Page.ContentBox(), style.LineHeight()),
	}
}

// Render lays out the events of src and writes the drawing instructions to
// w, returning the finalized document. Any structural error or unsupported
// event aborts the document.
func Render(ctx context.Context, src Source, w Writer, m Metrics, cfg Config) ([]byte, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r := newRenderer(src, w, m, cfg)
	if err := r.run(ctx); err != nil {
		return nil, err
	}
	return w.Finalize()
}

func (r *renderer) run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		ev, ok := r.in.Next()
		if !ok {
			break
		}
		if err := r.handle(ev); err != nil {
			return fmt.Errorf("event %d %s: %w", r.in.Pos(), ev, err)
		}
	}
	if n := len(r.open); n > 0 {
		return &StructuralError{
			Expected: "End(" + r.open[n-1].block.Kind.String() + ")",
			Actual:   "end of document",
		}
	}
	return nil
}

func (r *renderer) handle(ev Event) error {
	switch ev.Kind {
	case EventStart:
		return r.start(ev.Block)
	case EventEnd:
		return r.end(ev.Block)
	case EventText:
		return r.text(ev.Text)
	case EventSoftBreak, EventHardBreak:
		return r.lineBreak()
	case EventRule:
		return r.rule()
	case EventUnsupported:
		return fmt.Errorf("%w: %s", ErrUnsupportedEvent, ev.Text)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedEvent, ev.Kind)
	}
}

func (r *renderer) start(b Block) error {
	frame := openBlock{block: b}
	switch b.Kind {
	case BlockParagraph:
		if err := r.separate(); err != nil {
			return err
		}
		r.style = r.style.WithSize(r.cfg.BodySize)

	case BlockHeading:
		level, err := b.HeadingLevel()
		if err != nil {
			return err
		}
		if err := r.separate(); err != nil {
			return err
		}
		r.style = r.style.WithBold(true).WithSize(r.cfg.HeadingSize(level))
		r.open = append(r.open, frame)
		return r.heading()

	case BlockList:
		start, ordered, err := b.ListStart()
		if err != nil {
			return err
		}
		if r.lists.Depth() > 0 && !r.cur.lineEmpty {
			if err := r.lineBreak(); err != nil {
				return err
			}
		}
		r.lists.Push(start, ordered)

	case BlockListItem:
		r.open = append(r.open, frame)
		return r.listItem()

	case BlockEmphasis, BlockStrong, BlockStrikethrough:
		frame.prev = r.style.flag(b.Kind)
		r.style = r.style.withFlag(b.Kind, true)

	case BlockLink:
		if _, err := b.LinkDest(); err != nil {
			return err
		}
		frame.at = Point{X: r.cur.x, Y: r.cur.y}
		frame.page = r.cur.page

	case BlockTable:
		columns, err := b.Columns()
		if err != nil {
			return err
		}
		if r.table != nil {
			return &StructuralError{Expected: "End(Table)", Actual: "Start(Table)"}
		}
		if err := r.separate(); err != nil {
			return err
		}
		r.table = newTable(columns, r.cur.lineLeft, r.cur.lineRight)

	case BlockTableHead, BlockTableRow:
		if r.table == nil {
			return kindMismatch(BlockTable, b.Kind)
		}
		head := b.Kind == BlockTableHead
		r.table.beginRow(r.cur.y, head)
		if head {
			frame.prev = r.style.Bold
			r.style = r.style.WithBold(true)
		}

	case BlockTableCell:
		if r.table == nil {
			return kindMismatch(BlockTable, b.Kind)
		}
		left, right := r.table.cell()
		r.cur.enterColumn(left, right, r.table.rowTop)

	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedEvent, b)
	}
	r.open = append(r.open, frame)
	return nil
}

func (r *renderer) end(b Block) error {
	n := len(r.open)
	if n == 0 {
		return &StructuralError{Expected: "an open block", Actual: "End(" + b.Kind.String() + ")"}
	}
	top := r.open[n-1]
	if top.block.Kind != b.Kind {
		return &StructuralError{
			Expected: "End(" + top.block.Kind.String() + ")",
			Actual:   "End(" + b.Kind.String() + ")",
		}
	}
	r.open = r.open[:n-1]

	switch b.Kind {
	case BlockParagraph, BlockHeading:
		if err := r.lineBreak(); err != nil {
			return err
		}
		r.style = r.cfg.bodyStyle()

	case BlockList:
		return r.lists.Pop()

	case BlockListItem:
		if !r.cur.lineEmpty {
			return r.lineBreak()
		}

	case BlockEmphasis, BlockStrong, BlockStrikethrough:
		r.style = r.style.withFlag(b.Kind, top.prev)

	case BlockLink:
		return r.link(top)

	case BlockTableCell:
		r.table.endCell(r.cur.y)

	case BlockTableHead, BlockTableRow:
		if b.Kind == BlockTableHead {
			r.style = r.style.WithBold(top.prev)
		}
		return r.endRow()

	case BlockTable:
		r.table = nil
	}
	return nil
}

// separate inserts a blank line before a block when the pen sits at the
// start of a line that follows earlier content.
func (r *renderer) separate() error {
	if r.cur.lineEmpty && r.cur.drawn {
		return r.lineBreak()
	}
	return nil
}

// lineBreak moves the pen to the start of the next line using the current
// line height. Typography is preserved.
func (r *renderer) lineBreak() error {
	lh := r.style.LineHeight()
	r.cur.lineBreak(lh)
	if r.cfg.Paginate && !r.cur.inColumn && r.cur.y < r.cur.box.Bottom {
		if err := r.w.Write(NewPage{}); err != nil {
			return err
		}
		r.cur.newPage(lh)
	}
	return nil
}

func (r *renderer) text(s string) error {
	if s == "" {
		return nil
	}
	s = Drawable(s)
	measure := func(t string) float64 { return Measure(r.m, t, r.style) }
	if w := measure(s); w <= r.cur.remaining() {
		return r.draw(s, w)
	}
	lines := Wrap(s, r.cur.remaining(), r.cur.lineWidth(), measure)
	for i, line := range lines {
		if err := r.draw(line.Text, line.Width); err != nil {
			return err
		}
		if i < len(lines)-1 {
			if err := r.lineBreak(); err != nil {
				return err
			}
		}
	}
	return nil
}

// draw writes one run at the pen with the current style and advances past it.
func (r *renderer) draw(s string, width float64) error {
	if s == "" {
		return nil
	}
	run := TextRun{X: r.cur.x, Y: r.cur.y, Text: s, Variant: r.style.Variant(), Size: r.style.Size}
	if err := r.w.Write(run); err != nil {
		return err
	}
	if r.style.Strikethrough && width > 0 {
		y := r.cur.y + strikethroughOffset*r.style.LineHeight()
		if err := r.stroke(r.cur.x, r.cur.x+width, y); err != nil {
			return err
		}
	}
	r.cur.advance(width)
	return nil
}

func (r *renderer) stroke(x1, x2, y float64) error {
	return r.w.Write(Stroke{X1: x1, Y1: y, X2: x2, Y2: y, Width: r.cfg.RuleThickness})
}

// heading renders the inline content up to the matching End so the drawn
// width is known, then underlines it.
func (r *renderer) heading() error {
	startX, startY := r.cur.x, r.cur.y
	for {
		ev, ok := r.in.Peek()
		if !ok || (ev.Kind == EventEnd && ev.Block.Kind == BlockHeading) {
			break
		}
		r.in.Next()
		if err := r.handle(ev); err != nil {
			return err
		}
	}

	var x1, x2 float64
	switch r.cfg.HeadingRule {
	case HeadingRuleNone:
		return nil
	case HeadingRuleText:
		x1, x2 = startX, r.cur.x
		if r.cur.y != startY {
			x1 = r.cur.lineLeft
		}
	default:
		x1, x2 = r.cur.lineLeft, r.cur.lineRight
	}
	if x2 <= x1 {
		return nil
	}
	return r.stroke(x1, x2, r.cur.y+underlineOffset*r.style.LineHeight())
}

func (r *renderer) listItem() error {
	depth := r.lists.Depth()
	marker, err := r.lists.NextMarker()
	if err != nil {
		return err
	}
	if r.cur.lineEmpty {
		r.cur.x = r.cur.lineLeft + r.cfg.ListIndent*float64(depth-1)
	}
	marker += markerSeparator
	body := r.style.WithBold(false).WithItalic(false).WithStrikethrough(false)
	run := TextRun{X: r.cur.x, Y: r.cur.y, Text: marker, Variant: body.Variant(), Size: body.Size}
	if err := r.w.Write(run); err != nil {
		return err
	}
	r.cur.advance(Measure(r.m, marker, body))
	return nil
}

func (r *renderer) rule() error {
	y := r.cur.y + ruleOffset*r.style.LineHeight()
	if err := r.stroke(r.cur.lineLeft, r.cur.lineRight, y); err != nil {
		return err
	}
	r.cur.drawn = true
	return r.lineBreak()
}

// link emits an annotation covering the text drawn since the link opened.
// Links spanning several lines cover the full line width of every line.
func (r *renderer) link(open openBlock) error {
	dest, err := open.block.LinkDest()
	if err != nil {
		return err
	}
	size := r.style.Size
	bottom := r.cur.y - descentFraction*r.style.LineHeight()
	var rect Rect
	switch {
	case open.page == r.cur.page && open.at.Y == r.cur.y:
		rect = Rect{Left: open.at.X, Bottom: bottom, Right: r.cur.x, Top: r.cur.y + size}
	case open.page == r.cur.page:
		rect = Rect{Left: r.cur.lineLeft, Bottom: bottom, Right: r.cur.lineRight, Top: open.at.Y + size}
	default:
		rect = Rect{Left: r.cur.lineLeft, Bottom: bottom, Right: r.cur.lineRight, Top: r.cur.box.Top}
	}
	if rect.Right <= rect.Left {
		return nil
	}
	return r.w.Write(LinkArea{Rect: rect, Dest: dest})
}

// endRow moves the pen below the tallest cell of the row. The head row is
// followed by a thin rule.
func (r *renderer) endRow() error {
	t := r.table
	r.cur.leaveColumn()
	r.cur.y = t.rowLow
	if t.head {
		y := r.cur.y + underlineOffset*r.style.LineHeight()
		if err := r.stroke(r.cur.lineLeft, r.cur.lineRight, y); err != nil {
			return err
		}
	}
	r.cur.drawn = true
	return r.lineBreak()
}
