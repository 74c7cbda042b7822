// Package pdfwriter turns layout instructions into a PDF document with fpdf.
package pdfwriter

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"codeberg.org/go-pdf/fpdf"

	"github.com/jamdr/jamdr/internal/fonts"
	"github.com/jamdr/jamdr/internal/layout"
)

// ErrPDFWrite is returned when fpdf reports a failure.
var ErrPDFWrite = errors.New("PDF write failed")

const fontFamily = "jamdr"

// fpdf style strings indexed by layout.FontVariant.
var variantStyles = [...]string{
	layout.Regular:    "",
	layout.Bold:       "B",
	layout.Italic:     "I",
	layout.BoldItalic: "BI",
}

// Options carries document metadata.
type Options struct {
	Title        string
	Author       string
	Creator      string
	CreationDate time.Time
}

// Writer is a layout.Writer backed by fpdf. fpdf uses a top-left origin, so
// every y coordinate is flipped against the page height.
type Writer struct {
	pdf    *fpdf.Fpdf
	height float64

	variant layout.FontVariant
	size    float64
	fontSet bool
}

var _ layout.Writer = (*Writer)(nil)

// New starts a PDF with one blank page of the given size.
func New(page layout.Page, set *fonts.Set, opts Options) *Writer {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: page.Width, Ht: page.Height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCatalogSort(true)
	for _, v := range layout.Variants {
		pdf.AddUTF8FontFromBytes(fontFamily, variantStyles[v], set.Data(v))
	}
	if opts.Title != "" {
		pdf.SetTitle(opts.Title, true)
	}
	if opts.Author != "" {
		pdf.SetAuthor(opts.Author, true)
	}
	if opts.Creator != "" {
		pdf.SetCreator(opts.Creator, true)
	}
	if !opts.CreationDate.IsZero() {
		pdf.SetCreationDate(opts.CreationDate)
		pdf.SetModificationDate(opts.CreationDate)
	}
	pdf.AddPage()
	return &Writer{pdf: pdf, height: page.Height}
}

func (w *Writer) flip(y float64) float64 { return w.height - y }

// Write draws one instruction on the current page.
func (w *Writer) Write(ins layout.Instruction) error {
	if w.pdf.Err() {
		return fmt.Errorf("%w: %v", ErrPDFWrite, w.pdf.Error())
	}
	switch in := ins.(type) {
	case layout.TextRun:
		w.setFont(in.Variant, in.Size)
		w.pdf.Text(in.X, w.flip(in.Y), layout.Drawable(in.Text))
	case layout.Stroke:
		w.pdf.SetLineWidth(in.Width)
		w.pdf.Line(in.X1, w.flip(in.Y1), in.X2, w.flip(in.Y2))
	case layout.LinkArea:
		r := in.Rect
		w.pdf.LinkString(r.Left, w.flip(r.Top), r.Right-r.Left, r.Top-r.Bottom, in.Dest)
	case layout.NewPage:
		w.pdf.AddPage()
	default:
		return fmt.Errorf("%w: unknown instruction %T", ErrPDFWrite, ins)
	}
	if w.pdf.Err() {
		return fmt.Errorf("%w: %v", ErrPDFWrite, w.pdf.Error())
	}
	return nil
}

func (w *Writer) setFont(v layout.FontVariant, size float64) {
	if w.fontSet && v == w.variant && size == w.size {
		return
	}
	w.pdf.SetFont(fontFamily, variantStyles[v], size)
	w.variant, w.size, w.fontSet = v, size, true
}

// Finalize closes the document and returns its bytes.
func (w *Writer) Finalize() ([]byte, error) {
	var buf bytes.Buffer
	if err := w.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFWrite, err)
	}
	return buf.Bytes(), nil
}
