package markup

// Notes:
// - Expected streams are built with the layout constructors and compared
//   with reflect.DeepEqual; Block payloads are unexported but comparable
// - Unsupported constructs are checked by kind name only

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	L "github.com/jamdr/jamdr/internal/layout"
)

func tokenize(t *testing.T, src string) []L.Event {
	t.Helper()
	events, err := NewTokenizer().Tokenize(context.Background(), src)
	if err != nil {
		t.Fatalf("Tokenize(%q) error: %v", src, err)
	}
	return events
}

// ---------------------------------------------------------------------------
// TestTokenize - Event streams
// ---------------------------------------------------------------------------

func TestTokenize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want []L.Event
	}{
		{
			name: "bold then text",
			src:  "**bold** text",
			want: []L.Event{
				L.Start(L.Paragraph()),
				L.Start(L.Strong()), L.Text("bold"), L.End(L.Strong()),
				L.Text(" text"),
				L.End(L.Paragraph()),
			},
		},
		{
			name: "heading and body",
			src:  "# Title\n\nBody",
			want: []L.Event{
				L.Start(L.Heading(1)), L.Text("Title"), L.End(L.Heading(1)),
				L.Start(L.Paragraph()), L.Text("Body"), L.End(L.Paragraph()),
			},
		},
		{
			name: "emphasis and strikethrough",
			src:  "*a* ~~b~~",
			want: []L.Event{
				L.Start(L.Paragraph()),
				L.Start(L.Emphasis()), L.Text("a"), L.End(L.Emphasis()),
				L.Text(" "),
				L.Start(L.Strikethrough()), L.Text("b"), L.End(L.Strikethrough()),
				L.End(L.Paragraph()),
			},
		},
		{
			name: "soft break",
			src:  "one\ntwo",
			want: []L.Event{
				L.Start(L.Paragraph()),
				L.Text("one"), L.SoftBreak(), L.Text("two"),
				L.End(L.Paragraph()),
			},
		},
		{
			name: "ordered list keeps start",
			src:  "3. a\n4. b",
			want: []L.Event{
				L.Start(L.OrderedList(3)),
				L.Start(L.ListItem()), L.Text("a"), L.End(L.ListItem()),
				L.Start(L.ListItem()), L.Text("b"), L.End(L.ListItem()),
				L.End(L.OrderedList(3)),
			},
		},
		{
			name: "bullet list",
			src:  "- x",
			want: []L.Event{
				L.Start(L.BulletList()),
				L.Start(L.ListItem()), L.Text("x"), L.End(L.ListItem()),
				L.End(L.BulletList()),
			},
		},
		{
			name: "link",
			src:  "[go](https://go.dev)",
			want: []L.Event{
				L.Start(L.Paragraph()),
				L.Start(L.Link("https://go.dev")), L.Text("go"), L.End(L.Link("https://go.dev")),
				L.End(L.Paragraph()),
			},
		},
		{
			name: "thematic break",
			src:  "---",
			want: []L.Event{L.Rule()},
		},
		{
			name: "code span is plain text",
			src:  "`x*y`",
			want: []L.Event{
				L.Start(L.Paragraph()), L.Text("x*y"), L.End(L.Paragraph()),
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := tokenize(t, tt.src)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q)\n got: %v\nwant: %v", tt.src, got, tt.want)
			}
		})
	}
}

func TestTokenize_Table(t *testing.T) {
	t.Parallel()

	events := tokenize(t, "| a | b |\n|---|---|\n| 1 | 2 |\n")
	if len(events) == 0 || events[0].Kind != L.EventStart {
		t.Fatalf("events = %v", events)
	}
	cols, err := events[0].Block.Columns()
	if err != nil || cols != 2 {
		t.Errorf("Columns() = %d, %v; want 2", cols, err)
	}
	var cells, heads, rows int
	for _, ev := range events {
		if ev.Kind != L.EventStart {
			continue
		}
		switch ev.Block.Kind {
		case L.BlockTableCell:
			cells++
		case L.BlockTableHead:
			heads++
		case L.BlockTableRow:
			rows++
		}
	}
	if cells != 4 || heads != 1 || rows != 1 {
		t.Errorf("cells/heads/rows = %d/%d/%d, want 4/1/1", cells, heads, rows)
	}
}

func TestTokenize_Unsupported(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		kind string
	}{
		{"fenced code", "```go\nx := 1\n```", "FencedCodeBlock"},
		{"block quote", "> quoted", "Blockquote"},
		{"image", "![alt](a.png)", "Image"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var found bool
			for _, ev := range tokenize(t, tt.src) {
				if ev.Kind == L.EventUnsupported && ev.Text == tt.kind {
					found = true
				}
			}
			if !found {
				t.Errorf("no Unsupported(%s) event for %q", tt.kind, tt.src)
			}
		})
	}
}

func joinedText(events []L.Event) string {
	var b strings.Builder
	for _, ev := range events {
		if ev.Kind == L.EventText {
			b.WriteString(ev.Text)
		}
	}
	return b.String()
}

func TestTokenize_TextContent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want string
	}{
		{"entity resolved", "a &amp; b", "a & b"},
		{"numeric reference", "&#65;BC", "ABC"},
		{"backslash escape", `\*not emphasis\*`, "*not emphasis*"},
		{"decomposed accent composed", "cafe\u0301", "caf\u00e9"},
		{"autolink label", "see https://go.dev now", "see https://go.dev now"},
		{"emoji replaced", "smile \U0001F600", "smile \uFFFD"},
		{"math letter replaced", "x \U0001D538 y", "x \uFFFD y"},
		{"cjk kept", "中文 测试", "中文 测试"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := joinedText(tokenize(t, tt.src)); got != tt.want {
				t.Errorf("text of %q = %q, want %q", tt.src, got, tt.want)
			}
		})
	}
}

func TestTokenize_TaskList(t *testing.T) {
	t.Parallel()

	got := joinedText(tokenize(t, "- [x] done\n- [ ] todo"))
	for _, want := range []string{"[x]", "done", "[ ]", "todo"} {
		if !strings.Contains(got, want) {
			t.Errorf("text %q missing %q", got, want)
		}
	}
	if strings.Index(got, "[x]") > strings.Index(got, "done") {
		t.Errorf("checkbox marker after item text: %q", got)
	}
}

func TestTokenize_ContextCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewTokenizer().Tokenize(ctx, "# x"); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}
