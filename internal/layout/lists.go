package layout

import "strconv"

const (
	bulletMarker    = "•"
	orderedSuffix   = "."
	markerSeparator = " "
)

type listFrame struct {
	ordered bool
	next    uint64
}

// ListStack tracks the counters of nested lists. Its depth equals the
// current list nesting.
type ListStack struct {
	frames []listFrame
}

// Push opens a list. Bulleted lists ignore start.
func (s *ListStack) Push(start uint64, ordered bool) {
	s.frames = append(s.frames, listFrame{ordered: ordered, next: start})
}

// Pop closes the innermost list.
func (s *ListStack) Pop() error {
	if len(s.frames) == 0 {
		return ErrListUnderflow
	}
	s.frames = s.frames[:len(s.frames)-1]
	return nil
}

// Depth returns the number of open lists.
func (s *ListStack) Depth() int { return len(s.frames) }

// NextMarker returns the marker of the next item of the innermost list and
// advances its counter. Ordered markers read "n." and bullets read "•".
func (s *ListStack) NextMarker() (string, error) {
	if len(s.frames) == 0 {
		return "", ErrListUnderflow
	}
	top := &s.frames[len(s.frames)-1]
	if !top.ordered {
		return bulletMarker, nil
	}
	marker := strconv.FormatUint(top.next, 10) + orderedSuffix
	top.next++
	return marker, nil
}
