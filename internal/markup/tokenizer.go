// Package markup tokenizes markdown into the event stream consumed by the
// layout engine.
//
// Parsing is done by goldmark with the GitHub Flavored Markdown extensions.
// The resulting AST is flattened into Start/End pairs; constructs the layout
// engine cannot draw (code blocks, images, block quotes, raw HTML) become
// Unsupported events carrying the goldmark node kind.
package markup

import (
	"context"
	"errors"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
	"golang.org/x/text/unicode/norm"

	"github.com/jamdr/jamdr/internal/layout"
)

// ErrTokenize indicates the markdown could not be turned into events.
var ErrTokenize = errors.New("markdown tokenization failed")

// Task list markers drawn in place of checkboxes.
const (
	taskChecked   = "[x]"
	taskUnchecked = "[ ]"
)

// Tokenizer converts markdown into layout events.
type Tokenizer struct {
	md goldmark.Markdown
}

// NewTokenizer returns a Tokenizer with GFM tables, strikethrough, autolinks
// and task lists enabled.
func NewTokenizer() *Tokenizer {
	return &Tokenizer{md: goldmark.New(goldmark.WithExtensions(extension.GFM))}
}

// Tokenize parses source and returns its events in document order. Parsing
// runs in a goroutine so a cancelled context returns promptly.
func (t *Tokenizer) Tokenize(ctx context.Context, source string) ([]layout.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	type result struct {
		events []layout.Event
		err    error
	}
	done := make(chan result, 1)

	go func() {
		src := []byte(source)
		doc := t.md.Parser().Parse(text.NewReader(src))
		events, err := flatten(doc, src)
		if err != nil {
			err = fmt.Errorf("%w: %v", ErrTokenize, err)
		}
		done <- result{events: events, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-done:
		return r.events, r.err
	}
}

// flatten walks the AST and emits one Start/End pair per mapped node.
func flatten(doc ast.Node, src []byte) ([]layout.Event, error) {
	var events []layout.Event
	emit := func(ev ...layout.Event) { events = append(events, ev...) }

	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if b, ok := blockFor(n); ok {
			if entering {
				emit(layout.Start(b))
			} else {
				emit(layout.End(b))
			}
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Document, *ast.TextBlock, *ast.CodeSpan:
			return ast.WalkContinue, nil

		case *ast.Text:
			if !entering {
				return ast.WalkContinue, nil
			}
			value := node.Segment.Value(src)
			if !node.IsRaw() {
				value = unescape(value)
			}
			emit(layout.Text(layout.Drawable(norm.NFC.String(string(value)))))
			switch {
			case node.HardLineBreak():
				emit(layout.HardBreak())
			case node.SoftLineBreak():
				emit(layout.SoftBreak())
			}
			return ast.WalkContinue, nil

		case *ast.String:
			if entering {
				emit(layout.Text(layout.Drawable(norm.NFC.String(string(node.Value)))))
			}
			return ast.WalkContinue, nil

		case *ast.AutoLink:
			if entering {
				link := layout.Link(string(node.URL(src)))
				emit(layout.Start(link), layout.Text(layout.Drawable(string(node.Label(src)))), layout.End(link))
			}
			return ast.WalkSkipChildren, nil

		case *ast.ThematicBreak:
			if entering {
				emit(layout.Rule())
			}
			return ast.WalkSkipChildren, nil

		case *extast.TaskCheckBox:
			if entering {
				marker := taskUnchecked
				if node.IsChecked {
					marker = taskChecked
				}
				emit(layout.Text(marker))
			}
			return ast.WalkSkipChildren, nil

		default:
			if entering {
				emit(layout.Unsupported(n.Kind().String()))
			}
			return ast.WalkSkipChildren, nil
		}
	})
	return events, err
}

// blockFor maps container nodes to their layout block.
func blockFor(n ast.Node) (layout.Block, bool) {
	switch node := n.(type) {
	case *ast.Paragraph:
		return layout.Paragraph(), true
	case *ast.Heading:
		return layout.Heading(node.Level), true
	case *ast.List:
		if node.IsOrdered() {
			return layout.OrderedList(uint64(max(node.Start, 0))), true
		}
		return layout.BulletList(), true
	case *ast.ListItem:
		return layout.ListItem(), true
	case *ast.Emphasis:
		if node.Level >= 2 {
			return layout.Strong(), true
		}
		return layout.Emphasis(), true
	case *ast.Link:
		return layout.Link(string(node.Destination)), true
	case *extast.Strikethrough:
		return layout.Strikethrough(), true
	case *extast.Table:
		return layout.Table(len(node.Alignments)), true
	case *extast.TableHeader:
		return layout.TableHead(), true
	case *extast.TableRow:
		return layout.TableRow(), true
	case *extast.TableCell:
		return layout.TableCell(), true
	}
	return layout.Block{}, false
}

// unescape resolves backslash escapes and character references the way the
// HTML renderer would.
func unescape(b []byte) []byte {
	b = util.UnescapePunctuations(b)
	b = util.ResolveNumericReferences(b)
	return util.ResolveEntityNames(b)
}
