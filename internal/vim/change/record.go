package change

import (
	"fmt"

	"github.com/dshills/vimcore/internal/engine/tracking"
	"github.com/dshills/vimcore/internal/input/key"
)

// Kind categorizes a change.
type Kind uint8

const (
	// Insert is text typed or put into the document.
	Insert Kind = iota

	// Delete is text removed from the document.
	Delete

	// Replace is text removed and new text written in its place.
	Replace
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Insert:
		return "insert"
	case Delete:
		return "delete"
	case Replace:
		return "replace"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// State is where a document's change tracking currently is.
type State uint8

const (
	// Idle means no change is open.
	Idle State = iota

	// Accumulating means a change has begun and is being extended.
	Accumulating

	// Committed is the transient state between finalizing a change and
	// returning to Idle.
	Committed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Accumulating:
		return "accumulating"
	case Committed:
		return "committed"
	default:
		return fmt.Sprintf("State(%d)", s)
	}
}

// Record is one completed change.
//
// Start and End mark the affected span in the snapshot at Version, the
// version the change began from. They are owned by the Tracker; callers
// must not release them.
type Record struct {
	Kind    Kind
	Version tracking.Version
	Start   *tracking.Position
	End     *tracking.Position

	// Text is the text the change inserted.
	Text string

	// Count is the repeat count, at least 1.
	Count int

	// Keys are the keys of the commands that produced the change.
	Keys *key.Sequence
}

// Span resolves the affected span in version v. The boolean is false when
// either end has since been deleted.
func (r Record) Span(v tracking.Version) (start, end tracking.ByteOffset, ok bool, err error) {
	if r.Start == nil || r.End == nil {
		return 0, 0, false, nil
	}
	start, ok, err = r.Start.Resolve(v)
	if err != nil || !ok {
		return 0, 0, false, err
	}
	end, ok, err = r.End.Resolve(v)
	if err != nil || !ok {
		return 0, 0, false, err
	}
	return start, end, true, nil
}

// String returns a human-readable representation of the record.
func (r Record) String() string {
	return fmt.Sprintf("%s@%d %q x%d keys=%q", r.Kind, r.Version, r.Text, r.Count, r.Keys.String())
}

func (r *Record) release() {
	for _, p := range []*tracking.Position{r.Start, r.End} {
		if p != nil && !p.Released() {
			_ = p.Release()
		}
	}
}
