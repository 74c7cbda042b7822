package pipeline

import (
	"context"
	"regexp"
	"strings"
)

// Highlight placeholders are Private Use Area runes. goldmark passes them
// through untouched and ConvertMarkPlaceholders turns them into <mark> tags,
// so raw HTML rendering never needs to be enabled.
const (
	MarkStartPlaceholder = "\uE000"
	MarkEndPlaceholder   = "\uE001"
)

var (
	crlfOrCR           = regexp.MustCompile(`\r\n?`)
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)
	highlightPattern   = regexp.MustCompile(`==(.*?)==`)
)

// Preprocessor cleans markdown before it is parsed.
type Preprocessor struct {
	// Highlights converts ==text== into mark placeholders. Only output
	// formats that understand <mark> should enable it.
	Highlights bool
}

// Apply returns the preprocessed markdown. A cancelled context returns the
// content unchanged.
func (p Preprocessor) Apply(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}
	content = NormalizeLineEndings(content)
	if p.Highlights {
		content = highlightPattern.ReplaceAllString(content, MarkStartPlaceholder+"$1"+MarkEndPlaceholder)
	}
	return multipleBlankLines.ReplaceAllString(content, "\n\n")
}

// NormalizeLineEndings converts \r\n and \r to \n.
func NormalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// ConvertMarkPlaceholders replaces highlight placeholders with <mark> tags.
func ConvertMarkPlaceholders(content string) string {
	r := strings.NewReplacer(MarkStartPlaceholder, "<mark>", MarkEndPlaceholder, "</mark>")
	return r.Replace(content)
}
