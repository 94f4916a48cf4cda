package buffer

import (
	"strings"

	"github.com/dshills/vimcore/internal/engine/tracking"
)

// Snapshot is a read-only view of a document at one version. It implements
// tracking.Snapshot.
type Snapshot struct {
	id      tracking.DocumentID
	version tracking.Version
	text    string
}

// DocumentID implements tracking.Snapshot.
func (s Snapshot) DocumentID() tracking.DocumentID {
	return s.id
}

// Version implements tracking.Snapshot.
func (s Snapshot) Version() tracking.Version {
	return s.version
}

// Len implements tracking.Snapshot.
func (s Snapshot) Len() ByteOffset {
	return ByteOffset(len(s.text))
}

// Text returns the full snapshot content.
func (s Snapshot) Text() string {
	return s.text
}

// TextRange returns text in the given byte range, clamped to the snapshot.
func (s Snapshot) TextRange(start, end ByteOffset) string {
	n := ByteOffset(len(s.text))
	start = clamp(start, 0, n)
	end = clamp(end, start, n)
	return s.text[start:end]
}

// LineCount returns the number of lines. An empty snapshot has one line.
func (s Snapshot) LineCount() uint32 {
	return uint32(strings.Count(s.text, "\n")) + 1
}

// OffsetToPoint converts a byte offset to line/column.
func (s Snapshot) OffsetToPoint(offset ByteOffset) Point {
	offset = clamp(offset, 0, ByteOffset(len(s.text)))
	prefix := s.text[:offset]
	line := strings.Count(prefix, "\n")
	col := len(prefix)
	if i := strings.LastIndexByte(prefix, '\n'); i >= 0 {
		col = len(prefix) - i - 1
	}
	return Point{Line: uint32(line), Column: uint32(col)}
}

// PointToOffset converts line/column to a byte offset. Columns past the end
// of the line clamp to the line end.
func (s Snapshot) PointToOffset(p Point) ByteOffset {
	var start int
	for line := uint32(0); line < p.Line; line++ {
		i := strings.IndexByte(s.text[start:], '\n')
		if i < 0 {
			return ByteOffset(len(s.text))
		}
		start += i + 1
	}
	end := len(s.text)
	if i := strings.IndexByte(s.text[start:], '\n'); i >= 0 {
		end = start + i
	}
	off := start + int(p.Column)
	if off > end {
		off = end
	}
	return ByteOffset(off)
}

func clamp(v, lo, hi ByteOffset) ByteOffset {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
