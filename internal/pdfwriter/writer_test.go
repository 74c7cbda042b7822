package pdfwriter

import (
	"bytes"
	"testing"
	"time"

	"github.com/jamdr/jamdr/internal/fonts"
	"github.com/jamdr/jamdr/internal/layout"
)

func newTestWriter(t *testing.T) *Writer {
	t.Helper()
	set, err := fonts.Embedded()
	if err != nil {
		t.Fatal(err)
	}
	page := layout.DefaultConfig().Page
	return New(page, set, Options{
		Title:        "Test",
		Creator:      "jamdr",
		CreationDate: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	})
}

func TestWriter_ProducesPDF(t *testing.T) {
	t.Parallel()

	w := newTestWriter(t)
	instructions := []layout.Instruction{
		layout.TextRun{X: 72, Y: 700, Text: "Hello, wörld", Variant: layout.Regular, Size: 12},
		layout.TextRun{X: 72, Y: 680, Text: "bold", Variant: layout.Bold, Size: 24},
		layout.TextRun{X: 72, Y: 660, Text: "slanted", Variant: layout.BoldItalic, Size: 12},
		layout.Stroke{X1: 72, Y1: 650, X2: 540, Y2: 650, Width: 0.5},
		layout.LinkArea{Rect: layout.Rect{Left: 72, Bottom: 640, Right: 120, Top: 655}, Dest: "https://example.com"},
		layout.NewPage{},
		layout.TextRun{X: 72, Y: 700, Text: "second page", Variant: layout.Italic, Size: 12},
	}
	for _, ins := range instructions {
		if err := w.Write(ins); err != nil {
			t.Fatalf("Write(%T) error: %v", ins, err)
		}
	}

	out, err := w.Finalize()
	if err != nil {
		t.Fatalf("Finalize() error: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Fatalf("output does not start with PDF header: %q", out[:min(len(out), 16)])
	}
	if !bytes.Contains(out, []byte("https://example.com")) {
		t.Error("link destination missing from output")
	}
}

func TestWriter_EmptyDocument(t *testing.T) {
	t.Parallel()

	out, err := newTestWriter(t).Finalize()
	if err != nil {
		t.Fatalf("Finalize() error: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Error("empty document is not a PDF")
	}
}

func TestWriter_RunesOutsideBMP(t *testing.T) {
	t.Parallel()

	w := newTestWriter(t)
	for _, text := range []string{"smile \U0001F600", "x \U0001D538 y", "中文 测试"} {
		run := layout.TextRun{X: 72, Y: 700, Text: text, Variant: layout.Regular, Size: 12}
		if err := w.Write(run); err != nil {
			t.Fatalf("Write(%q) error: %v", text, err)
		}
	}
	out, err := w.Finalize()
	if err != nil {
		t.Fatalf("Finalize() error: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Error("output is not a PDF")
	}
}
