package layout

// Source yields markup events in document order. It is forward-only.
type Source interface {
	Next() (Event, bool)
}

type sliceSource struct {
	events []Event
}

// FromSlice returns a Source that yields events in order.
func FromSlice(events []Event) Source {
	return &sliceSource{events: events}
}

func (s *sliceSource) Next() (Event, bool) {
	if len(s.events) == 0 {
		return Event{}, false
	}
	ev := s.events[0]
	s.events = s.events[1:]
	return ev, true
}

// Lookahead wraps a Source with a single event of lookahead.
type Lookahead struct {
	src    Source
	peeked Event
	has    bool
	pos    int
}

// NewLookahead returns a Lookahead reading from src.
func NewLookahead(src Source) *Lookahead {
	return &Lookahead{src: src}
}

// Peek returns the next event without consuming it.
func (l *Lookahead) Peek() (Event, bool) {
	if !l.has {
		ev, ok := l.src.Next()
		if !ok {
			return Event{}, false
		}
		l.peeked, l.has = ev, true
	}
	return l.peeked, true
}

// Next consumes and returns the next event.
func (l *Lookahead) Next() (Event, bool) {
	if l.has {
		l.has = false
		l.pos++
		return l.peeked, true
	}
	ev, ok := l.src.Next()
	if ok {
		l.pos++
	}
	return ev, ok
}

// Pos returns the number of events consumed so far.
func (l *Lookahead) Pos() int { return l.pos }
