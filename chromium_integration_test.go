//go:build integration

package jamdr

import (
	"bytes"
	"context"
	"testing"
	"time"
)

func assertValidPDF(t *testing.T, data []byte) {
	t.Helper()

	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("data does not have PDF magic bytes, got prefix: %q", data[:min(10, len(data))])
	}

	if len(data) < 100 {
		t.Errorf("PDF data suspiciously small: %d bytes", len(data))
	}
}

// TestChromiumBackend_Integration prints through a real browser.
// Rod automatically downloads Chromium on first run if not found.
func TestChromiumBackend_Integration(t *testing.T) {
	b, err := NewChromiumBackend(WithWorkers(2), WithTimeout(30*time.Second))
	if err != nil {
		t.Fatalf("NewChromiumBackend() error: %v", err)
	}
	defer b.Close()

	files := map[string]string{
		"one.md": "# One\n\nHello, **world**.\n",
		"two.md": "# Two\n\n```go\nfunc main() {}\n```\n",
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	out, err := b.RenderFiles(ctx, files, "", "body { font-family: serif; }")
	if err != nil {
		t.Fatalf("RenderFiles() error: %v", err)
	}
	for path := range files {
		assertValidPDF(t, out[path])
	}

	// Browsers are reused across batches.
	again, err := b.RenderFiles(ctx, map[string]string{"one.md": files["one.md"]}, "", "")
	if err != nil {
		t.Fatalf("second RenderFiles() error: %v", err)
	}
	assertValidPDF(t, again["one.md"])
}
