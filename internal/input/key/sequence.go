package key

import (
	"strings"
)

// Sequence represents a series of key events.
// Examples: "gg", "diw", "<C-x><C-s>"
type Sequence struct {
	// Events contains the key events in order.
	Events []Event
}

// NewSequence creates an empty key sequence.
func NewSequence() *Sequence {
	return &Sequence{
		Events: make([]Event, 0, 4),
	}
}

// NewSequenceFrom creates a sequence from the given events.
func NewSequenceFrom(events ...Event) *Sequence {
	return &Sequence{
		Events: events,
	}
}

// Len returns the number of events in the sequence.
func (s *Sequence) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Events)
}

// IsEmpty returns true if the sequence has no events.
func (s *Sequence) IsEmpty() bool {
	return s.Len() == 0
}

// Add appends an event to the sequence.
func (s *Sequence) Add(event Event) {
	s.Events = append(s.Events, event)
}

// String returns the sequence in Vim notation. ParseSequence(s.String())
// yields a sequence equal to s.
func (s *Sequence) String() string {
	if s.IsEmpty() {
		return ""
	}

	var sb strings.Builder
	for _, e := range s.Events {
		sb.WriteString(e.VimString())
	}
	return sb.String()
}

// Equals returns true if two sequences are identical. A nil sequence
// equals an empty one.
func (s *Sequence) Equals(other *Sequence) bool {
	if s.Len() != other.Len() {
		return false
	}
	if s.Len() == 0 {
		return true
	}
	for i, e := range s.Events {
		if e != other.Events[i] {
			return false
		}
	}
	return true
}

// HasPrefix returns true if this sequence starts with the given prefix.
func (s *Sequence) HasPrefix(prefix *Sequence) bool {
	if prefix.Len() > s.Len() {
		return false
	}
	for i := 0; i < prefix.Len(); i++ {
		if prefix.Events[i] != s.Events[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the sequence.
func (s *Sequence) Clone() *Sequence {
	if s == nil {
		return nil
	}
	events := make([]Event, len(s.Events))
	copy(events, s.Events)
	return &Sequence{Events: events}
}

// Slice returns a new sequence containing events from start to end (exclusive).
func (s *Sequence) Slice(start, end int) *Sequence {
	if start < 0 {
		start = 0
	}
	if end > s.Len() {
		end = s.Len()
	}
	if start >= end {
		return NewSequence()
	}
	events := make([]Event, end-start)
	copy(events, s.Events[start:end])
	return &Sequence{Events: events}
}

// Tail returns a new sequence without the first n events.
func (s *Sequence) Tail(n int) *Sequence {
	return s.Slice(n, s.Len())
}

// Head returns a new sequence with only the first n events.
func (s *Sequence) Head(n int) *Sequence {
	return s.Slice(0, n)
}

// Append creates a new sequence by appending events from another sequence.
func (s *Sequence) Append(other *Sequence) *Sequence {
	events := make([]Event, 0, s.Len()+other.Len())
	if s != nil {
		events = append(events, s.Events...)
	}
	if other != nil {
		events = append(events, other.Events...)
	}
	return &Sequence{Events: events}
}
