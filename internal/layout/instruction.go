package layout

// Instruction is a drawing command emitted by the engine.
type Instruction interface {
	instruction()
}

// Rect is an axis-aligned rectangle in page space.
type Rect struct {
	Left, Bottom, Right, Top float64
}

// TextRun draws Text with its baseline starting at (X, Y).
type TextRun struct {
	X, Y    float64
	Text    string
	Variant FontVariant
	Size    float64
}

// Stroke draws a straight line.
type Stroke struct {
	X1, Y1, X2, Y2 float64
	Width          float64
}

// LinkArea marks a clickable region pointing at Dest.
type LinkArea struct {
	Rect Rect
	Dest string
}

// NewPage ends the current page and starts a blank one.
type NewPage struct{}

func (TextRun) instruction() {}
func (Stroke) instruction() {}
func (LinkArea) instruction() {}
func (NewPage) instruction() {}

// Writer receives instructions in order and produces the final document.
type Writer interface {
	Write(ins Instruction) error
	Finalize() ([]byte, error)
}
