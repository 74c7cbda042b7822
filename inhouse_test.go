package jamdr

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jamdr/jamdr/internal/fonts"
	"github.com/jamdr/jamdr/internal/layout"
)

func fixedNow() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }

func TestInhouseBackend_RenderFiles(t *testing.T) {
	t.Parallel()

	b, err := NewInhouseBackend(WithWorkers(2), WithNow(fixedNow))
	if err != nil {
		t.Fatalf("NewInhouseBackend() error: %v", err)
	}
	defer b.Close()

	files := map[string]string{
		"title.md": "# Title\n\nBody with **bold** and *italic* text.\n",
		"list.md":  "1. one\n2. two\n\n- bullet\n\n---\n\n[link](https://example.com)\n",
		"table.md": "| a | b |\n|---|---|\n| 1 | 2 |\n",
	}
	out, err := b.RenderFiles(context.Background(), files, "ignored", "ignored")
	if err != nil {
		t.Fatalf("RenderFiles() error: %v", err)
	}
	for path := range files {
		pdf := out[path]
		if !bytes.HasPrefix(pdf, []byte("%PDF-")) {
			t.Errorf("%s: output does not start with %%PDF-", path)
		}
	}
	if !bytes.Contains(out["list.md"], []byte("https://example.com")) {
		t.Error("list.md: link annotation missing")
	}
}

func TestInhouseBackend_Deterministic(t *testing.T) {
	t.Parallel()

	b, err := NewInhouseBackend(WithNow(fixedNow))
	if err != nil {
		t.Fatalf("NewInhouseBackend() error: %v", err)
	}
	files := map[string]string{"a.md": "# Same\n\ntext"}

	first, err := b.RenderFiles(context.Background(), files, "", "")
	if err != nil {
		t.Fatalf("RenderFiles() error: %v", err)
	}
	second, err := b.RenderFiles(context.Background(), files, "", "")
	if err != nil {
		t.Fatalf("RenderFiles() error: %v", err)
	}
	if !bytes.Equal(first["a.md"], second["a.md"]) {
		t.Error("same input and clock produced different PDFs")
	}
}

func TestInhouseBackend_UnsupportedIsPerFile(t *testing.T) {
	t.Parallel()

	b, err := NewInhouseBackend()
	if err != nil {
		t.Fatalf("NewInhouseBackend() error: %v", err)
	}
	files := map[string]string{
		"code.md":  "```go\nfmt.Println()\n```\n",
		"plain.md": "just text",
	}

	out, err := b.RenderFiles(context.Background(), files, "", "")
	if !errors.Is(err, layout.ErrUnsupportedEvent) {
		t.Fatalf("error = %v, want ErrUnsupportedEvent", err)
	}
	var fe *FileError
	if !errors.As(err, &fe) || fe.Path != "code.md" {
		t.Errorf("FileError = %v, want path code.md", fe)
	}
	if _, ok := out["plain.md"]; !ok {
		t.Error("plain.md missing from partial result")
	}
}

func TestInhouseBackend_RunesOutsideBMP(t *testing.T) {
	t.Parallel()

	b, err := NewInhouseBackend(WithNow(fixedNow))
	if err != nil {
		t.Fatalf("NewInhouseBackend() error: %v", err)
	}
	files := map[string]string{
		"cjk.md":   "中文 测试\n",
		"emoji.md": "smile \U0001F600\n",
		"math.md":  "# x \U0001D538 y\n\n**\U0001F600** and [\U0001F600](https://example.com)\n",
	}

	out, err := b.RenderFiles(context.Background(), files, "", "")
	if err != nil {
		t.Fatalf("RenderFiles() error: %v", err)
	}
	for name := range files {
		if !bytes.HasPrefix(out[name], []byte("%PDF-")) {
			t.Errorf("%s: output is not a PDF", name)
		}
	}
}

func TestInhouseBackend_Options(t *testing.T) {
	t.Parallel()

	t.Run("missing font dir", func(t *testing.T) {
		t.Parallel()

		_, err := NewInhouseBackend(WithFontDir(t.TempDir()))
		if !errors.Is(err, fonts.ErrFontNotFound) {
			t.Errorf("error = %v, want ErrFontNotFound", err)
		}
	})

	t.Run("invalid layout", func(t *testing.T) {
		t.Parallel()

		_, err := NewInhouseBackend(WithLayout(LayoutSettings{HeadingRule: "wavy"}))
		if !errors.Is(err, ErrInvalidLayout) {
			t.Errorf("error = %v, want ErrInvalidLayout", err)
		}
	})

	t.Run("embedded fonts by default", func(t *testing.T) {
		t.Parallel()

		b, err := NewInhouseBackend()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(b.FontSource(), "embedded") {
			t.Errorf("FontSource() = %q, want embedded", b.FontSource())
		}
	})

	t.Run("paginated long document", func(t *testing.T) {
		t.Parallel()

		b, err := NewInhouseBackend(WithLayout(LayoutSettings{Paginate: true}))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		md := strings.Repeat("A line of body text.\n\n", 120)
		out, err := b.RenderFiles(context.Background(), map[string]string{"long.md": md}, "", "")
		if err != nil {
			t.Fatalf("RenderFiles() error: %v", err)
		}
		pdf := out["long.md"]
		pages := bytes.Count(pdf, []byte("/Type /Page")) - bytes.Count(pdf, []byte("/Type /Pages"))
		if pages < 2 {
			t.Errorf("got %d pages, want at least 2", pages)
		}
	})
}
