package layout

import "strings"

// WrappedLine is one output line of Wrap with its measured width.
type WrappedLine struct {
	Text  string
	Width float64
}

// Wrap splits text into lines no wider than the available budget, breaking
// on single spaces. The first line gets remaining; every following line gets
// full. A word wider than its budget is placed alone on its line.
//
// When text starts mid-line and its first word does not fit in remaining,
// the first returned line is empty and the word moves to the next line.
func Wrap(text string, remaining, full float64, measure func(string) float64) []WrappedLine {
	if w := measure(text); w <= remaining {
		return []WrappedLine{{Text: text, Width: w}}
	}

	space := measure(" ")
	budget := remaining
	var (
		lines []WrappedLine
		line  strings.Builder
		width float64
		empty = true
	)
	flush := func() {
		lines = append(lines, WrappedLine{Text: line.String(), Width: width})
		line.Reset()
		width = 0
		empty = true
		budget = full
	}

	for _, word := range strings.Split(text, " ") {
		w := measure(word)
		need := w
		if !empty {
			need += space
		}
		if width+need > budget && (!empty || budget < full) {
			flush()
			need = w
		}
		if !empty {
			line.WriteByte(' ')
		}
		line.WriteString(word)
		width += need
		empty = false
	}
	flush()
	return lines
}
