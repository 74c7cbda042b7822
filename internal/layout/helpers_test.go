package layout

import (
	"math"
	"testing"
)

// monoMetrics gives every rune the same advance, except runes listed in
// missing which the resolver cannot map.
type monoMetrics struct {
	advance float64
	missing map[rune]bool
}

func (m monoMetrics) Advance(r rune, _ FontVariant) (float64, bool) {
	if m.missing[r] {
		return 0, false
	}
	return m.advance, true
}

// halfEm renders every glyph 0.5 em wide: 6pt at the 12pt body size.
var halfEm = monoMetrics{advance: 500}

// recorder is a Writer that keeps every instruction.
type recorder struct {
	ins       []Instruction
	finalized bool
}

func (r *recorder) Write(ins Instruction) error {
	r.ins = append(r.ins, ins)
	return nil
}

func (r *recorder) Finalize() ([]byte, error) {
	r.finalized = true
	return []byte("document"), nil
}

func (r *recorder) runs() []TextRun {
	var out []TextRun
	for _, ins := range r.ins {
		if run, ok := ins.(TextRun); ok {
			out = append(out, run)
		}
	}
	return out
}

func (r *recorder) strokes() []Stroke {
	var out []Stroke
	for _, ins := range r.ins {
		if s, ok := ins.(Stroke); ok {
			out = append(out, s)
		}
	}
	return out
}

func (r *recorder) count(match func(Instruction) bool) int {
	n := 0
	for _, ins := range r.ins {
		if match(ins) {
			n++
		}
	}
	return n
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func assertApprox(t *testing.T, what string, got, want float64) {
	t.Helper()
	if !approx(got, want) {
		t.Errorf("%s = %v, want %v", what, got, want)
	}
}
