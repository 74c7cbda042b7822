package layout

import (
	"fmt"
	"strconv"
)

// EventKind identifies the shape of an Event.
type EventKind int

const (
	EventStart EventKind = iota
	EventEnd
	EventText
	EventSoftBreak
	EventHardBreak
	EventRule
	EventUnsupported
)

var eventKindNames = map[EventKind]string{
	EventStart:       "Start",
	EventEnd:         "End",
	EventText:        "Text",
	EventSoftBreak:   "SoftBreak",
	EventHardBreak:   "HardBreak",
	EventRule:        "Rule",
	EventUnsupported: "Unsupported",
}

func (k EventKind) String() string {
	if name, ok := eventKindNames[k]; ok {
		return name
	}
	return "EventKind(" + strconv.Itoa(int(k)) + ")"
}

// BlockKind is the semantic tag carried by a Start/End pair.
type BlockKind int

const (
	BlockParagraph BlockKind = iota + 1
	BlockHeading
	BlockList
	BlockListItem
	BlockEmphasis
	BlockStrong
	BlockStrikethrough
	BlockLink
	BlockTable
	BlockTableHead
	BlockTableRow
	BlockTableCell
)

var blockKindNames = map[BlockKind]string{
	BlockParagraph:     "Paragraph",
	BlockHeading:       "Heading",
	BlockList:          "List",
	BlockListItem:      "ListItem",
	BlockEmphasis:      "Emphasis",
	BlockStrong:        "Strong",
	BlockStrikethrough: "Strikethrough",
	BlockLink:          "Link",
	BlockTable:         "Table",
	BlockTableHead:     "TableHead",
	BlockTableRow:      "TableRow",
	BlockTableCell:     "TableCell",
}

func (k BlockKind) String() string {
	if name, ok := blockKindNames[k]; ok {
		return name
	}
	return "BlockKind(" + strconv.Itoa(int(k)) + ")"
}

// isSpan reports whether the kind toggles a typography flag.
func (k BlockKind) isSpan() bool {
	return k == BlockEmphasis || k == BlockStrong || k == BlockStrikethrough
}

// Block is a tagged variant. Only the payload of the active kind is
// meaningful, so payloads are read through accessors that fail on the wrong
// kind instead of returning a zero value.
type Block struct {
	Kind BlockKind

	level   int
	start   uint64
	ordered bool
	dest    string
	columns int
}

func Paragraph() Block { return Block{Kind: BlockParagraph} }
func ListItem() Block { return Block{Kind: BlockListItem} }
func Emphasis() Block { return Block{Kind: BlockEmphasis} }
func Strong() Block { return Block{Kind: BlockStrong} }
func Strikethrough() Block { return Block{Kind: BlockStrikethrough} }
func TableHead() Block { return Block{Kind: BlockTableHead} }
func TableRow() Block { return Block{Kind: BlockTableRow} }
func TableCell() Block { return Block{Kind: BlockTableCell} }

// Heading returns a heading block. Levels outside 1-6 are clamped.
func Heading(level int) Block {
	return Block{Kind: BlockHeading, level: min(max(level, 1), 6)}
}

// BulletList returns an unordered list block.
func BulletList() Block { return Block{Kind: BlockList} }

// OrderedList returns a numbered list block whose first item is start.
func OrderedList(start uint64) Block {
	return Block{Kind: BlockList, start: start, ordered: true}
}

// Link returns a hyperlink span pointing at dest.
func Link(dest string) Block { return Block{Kind: BlockLink, dest: dest} }

// Table returns a table block with the given column count.
func Table(columns int) Block { return Block{Kind: BlockTable, columns: columns} }

// HeadingLevel returns the level of a heading block.
func (b Block) HeadingLevel() (int, error) {
	if b.Kind != BlockHeading {
		return 0, kindMismatch(BlockHeading, b.Kind)
	}
	return b.level, nil
}

// ListStart returns the first counter of an ordered list. ordered is false
// for bulleted lists.
func (b Block) ListStart() (start uint64, ordered bool, err error) {
	if b.Kind != BlockList {
		return 0, false, kindMismatch(BlockList, b.Kind)
	}
	return b.start, b.ordered, nil
}

// LinkDest returns the destination of a link span.
func (b Block) LinkDest() (string, error) {
	if b.Kind != BlockLink {
		return "", kindMismatch(BlockLink, b.Kind)
	}
	return b.dest, nil
}

// Columns returns the column count of a table block.
func (b Block) Columns() (int, error) {
	if b.Kind != BlockTable {
		return 0, kindMismatch(BlockTable, b.Kind)
	}
	return b.columns, nil
}

func (b Block) String() string {
	switch b.Kind {
	case BlockHeading:
		return fmt.Sprintf("Heading(%d)", b.level)
	case BlockList:
		if b.ordered {
			return fmt.Sprintf("List(%d)", b.start)
		}
		return "List(None)"
	case BlockLink:
		return fmt.Sprintf("Link(%q)", b.dest)
	case BlockTable:
		return fmt.Sprintf("Table(%d)", b.columns)
	default:
		return b.Kind.String()
	}
}

// Event is one item of the markup stream.
type Event struct {
	Kind  EventKind
	Block Block  // Start and End
	Text  string // Text content, or the construct name for Unsupported
}

func Start(b Block) Event { return Event{Kind: EventStart, Block: b} }
func End(b Block) Event { return Event{Kind: EventEnd, Block: b} }
func Text(s string) Event { return Event{Kind: EventText, Text: s} }
func SoftBreak() Event { return Event{Kind: EventSoftBreak} }
func HardBreak() Event { return Event{Kind: EventHardBreak} }
func Rule() Event { return Event{Kind: EventRule} }
func Unsupported(name string) Event { return Event{Kind: EventUnsupported, Text: name} }

func (e Event) String() string {
	switch e.Kind {
	case EventStart, EventEnd:
		return e.Kind.String() + "(" + e.Block.String() + ")"
	case EventText:
		return fmt.Sprintf("Text(%q)", e.Text)
	case EventUnsupported:
		return "Unsupported(" + e.Text + ")"
	default:
		return e.Kind.String()
	}
}
