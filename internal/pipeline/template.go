package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"
)

// Sentinel errors for document templating.
var (
	ErrTemplateParse  = errors.New("invalid document template")
	ErrTemplateRender = errors.New("document template rendering failed")
)

// Document is the data passed to the document template.
type Document struct {
	Title   string
	Content template.HTML
	Style   template.CSS
}

// NewDocument wraps a converted fragment and stylesheet for templating.
// The fragment comes from goldmark with raw HTML disabled.
func NewDocument(title, fragment, css string) Document {
	return Document{
		Title:   title,
		Content: template.HTML(fragment),        // #nosec G203 -- goldmark output, raw HTML disabled
		Style:   template.CSS(sanitizeCSS(css)), // #nosec G203 -- closing tags escaped
	}
}

// Templater renders documents into a full HTML page.
type Templater struct {
	tmpl *template.Template
}

// NewTemplater parses an html/template with {{.Title}}, {{.Style}} and
// {{.Content}} slots.
func NewTemplater(content string) (*Templater, error) {
	tmpl, err := template.New("document").Parse(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateParse, err)
	}
	return &Templater{tmpl: tmpl}, nil
}

// Render executes the template for doc.
func (t *Templater) Render(ctx context.Context, doc Document) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := t.tmpl.Execute(&buf, doc); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplateRender, err)
	}
	return buf.String(), nil
}

// sanitizeCSS escapes "</" so a stylesheet cannot close its <style> element.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
