package tracking

import "fmt"

// EditKind categorizes a version transition.
type EditKind uint8

const (
	// EditInsert indicates Length bytes were inserted at Offset.
	EditInsert EditKind = iota

	// EditDelete indicates the range [Offset, Offset+Length) was removed.
	EditDelete
)

// String returns a human-readable representation of the edit kind.
func (k EditKind) String() string {
	switch k {
	case EditInsert:
		return "insert"
	case EditDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Edit is one version transition of a document. A replacement is recorded
// as a delete followed by an insert.
type Edit struct {
	Kind   EditKind
	Offset ByteOffset
	Length ByteOffset
}

// Insert returns an edit inserting length bytes at offset.
func Insert(offset, length ByteOffset) Edit {
	return Edit{Kind: EditInsert, Offset: offset, Length: length}
}

// Delete returns an edit removing [start, end).
func Delete(start, end ByteOffset) Edit {
	return Edit{Kind: EditDelete, Offset: start, Length: end - start}
}

// End returns the exclusive end of the edit in the old snapshot.
// For inserts it equals Offset.
func (e Edit) End() ByteOffset {
	if e.Kind == EditDelete {
		return e.Offset + e.Length
	}
	return e.Offset
}

// Delta returns the change in document length caused by the edit.
func (e Edit) Delta() ByteOffset {
	if e.Kind == EditDelete {
		return -e.Length
	}
	return e.Length
}

// Translate maps an offset in the snapshot before the edit to the snapshot
// after it. The second result is false when the edit removed the text the
// offset referred to.
//
// Inserting at O moves every offset at or after O forward. Deleting
// [O, O+N) keeps an offset at O in place, invalidates offsets strictly
// inside the range and moves offsets at or after O+N back by N.
func (e Edit) Translate(offset ByteOffset) (ByteOffset, bool) {
	switch e.Kind {
	case EditInsert:
		if offset >= e.Offset {
			return offset + e.Length, true
		}
		return offset, true
	case EditDelete:
		switch {
		case offset <= e.Offset:
			return offset, true
		case offset < e.Offset+e.Length:
			return 0, false
		default:
			return offset - e.Length, true
		}
	default:
		return offset, true
	}
}

// String returns a human-readable representation of the edit.
func (e Edit) String() string {
	switch e.Kind {
	case EditInsert:
		return fmt.Sprintf("Insert %d at %d", e.Length, e.Offset)
	case EditDelete:
		return fmt.Sprintf("Delete [%d:%d)", e.Offset, e.End())
	default:
		return "Unknown edit"
	}
}
