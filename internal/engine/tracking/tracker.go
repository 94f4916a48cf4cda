package tracking

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// DefaultRetainedEdits is the default number of recent edits kept for
// Translate queries even when no position needs them.
const DefaultRetainedEdits = 1024

// compactSlack is how far the log may grow past its retention window before
// Record compacts it.
const compactSlack = 64

// LogOption configures a Log.
type LogOption func(*Log)

// WithLogger sets the logger used for debug events.
func WithLogger(logger *zap.Logger) LogOption {
	return func(l *Log) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithRetainedEdits sets how many recent edits survive compaction when no
// live position pins them.
func WithRetainedEdits(n int) LogOption {
	return func(l *Log) {
		if n >= 0 {
			l.retain = n
		}
	}
}

// Log is the version history of one document: the ordered edits that
// transform version base into the current version, plus the set of live
// positions that still depend on them.
type Log struct {
	mu sync.Mutex

	id     DocumentID
	length ByteOffset // length at the head version

	base  Version // version preceding edits[0]
	edits []Edit  // edits[i] transforms base+i into base+i+1

	positions  map[uint64]*Position
	nextHandle uint64

	retain int
	logger *zap.Logger
}

// NewLog creates the history of a document whose version 0 is length bytes long.
func NewLog(id DocumentID, length ByteOffset, opts ...LogOption) *Log {
	l := &Log{
		id:        id,
		length:    length,
		positions: make(map[uint64]*Position),
		retain:    DefaultRetainedEdits,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// ID returns the document identity.
func (l *Log) ID() DocumentID {
	return l.id
}

// Version returns the current (head) version.
func (l *Log) Version() Version {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.headLocked()
}

// Len returns the document length at the head version.
func (l *Log) Len() ByteOffset {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.length
}

// Snapshot returns a stamp of the head version.
func (l *Log) Snapshot() Stamp {
	l.mu.Lock()
	defer l.mu.Unlock()
	return Stamp{Document: l.id, Number: l.headLocked(), Length: l.length}
}

// Oldest returns the oldest version the log can still translate from.
func (l *Log) Oldest() Version {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.base
}

// Record appends an edit and returns the new head version.
func (l *Log) Record(e Edit) (Version, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if e.Length <= 0 || e.Offset < 0 {
		return l.headLocked(), fmt.Errorf("%w: %s", ErrInvalidEdit, e)
	}
	switch e.Kind {
	case EditInsert:
		if e.Offset > l.length {
			return l.headLocked(), fmt.Errorf("%w: %s beyond length %d", ErrOffsetOutOfRange, e, l.length)
		}
	case EditDelete:
		if e.End() > l.length {
			return l.headLocked(), fmt.Errorf("%w: %s beyond length %d", ErrOffsetOutOfRange, e, l.length)
		}
	default:
		return l.headLocked(), fmt.Errorf("%w: kind %d", ErrInvalidEdit, e.Kind)
	}

	l.edits = append(l.edits, e)
	l.length += e.Delta()

	// Keep the slice from growing without bound when nothing pins it.
	if len(l.edits) >= l.retain+compactSlack {
		l.compactLocked()
	}

	return l.headLocked(), nil
}

// Translate maps offset from version from to version to by composing every
// edit in between. The second result is false if the offset was removed.
func (l *Log) Translate(offset ByteOffset, from, to Version) (ByteOffset, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.checkRangeLocked(from, to); err != nil {
		return 0, false, err
	}
	off, gone := l.walkLocked(offset, from, to)
	return off, gone == 0, nil
}

// Track creates a position for offset in snap. The snapshot must belong to
// this document and be no older than Oldest.
func (l *Log) Track(snap Snapshot, offset ByteOffset) (*Position, error) {
	if snap == nil {
		return nil, fmt.Errorf("%w: nil snapshot", ErrForeignDocument)
	}
	if snap.DocumentID() != l.id {
		return nil, fmt.Errorf("%w: %s, want %s", ErrForeignDocument, snap.DocumentID(), l.id)
	}
	if offset < 0 || offset > snap.Len() {
		return nil, fmt.Errorf("%w: %d not in [0, %d]", ErrOffsetOutOfRange, offset, snap.Len())
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	v := snap.Version()
	if err := l.checkRangeLocked(v, v); err != nil {
		return nil, err
	}

	l.nextHandle++
	p := &Position{
		log:          l,
		handle:       l.nextHandle,
		origin:       v,
		originOffset: offset,
		cacheVersion: v,
		cacheOffset:  offset,
	}
	l.positions[p.handle] = p
	return p, nil
}

// Live returns the number of unreleased positions.
func (l *Log) Live() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.positions)
}

// Retained returns the number of edits currently held.
func (l *Log) Retained() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.edits)
}

// Compact drops edits that neither a live position nor the retention window
// still needs. It returns the number of edits dropped.
func (l *Log) Compact() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.compactLocked()
}

func (l *Log) headLocked() Version {
	return l.base + Version(len(l.edits))
}

func (l *Log) checkRangeLocked(from, to Version) error {
	head := l.headLocked()
	if from < l.base || to > head || from > to {
		return fmt.Errorf("%w: [%d, %d] outside [%d, %d]", ErrVersionRange, from, to, l.base, head)
	}
	return nil
}

// walkLocked composes the translations in (from, to]. When the offset is
// removed it returns the version at which that happened.
func (l *Log) walkLocked(offset ByteOffset, from, to Version) (ByteOffset, Version) {
	for v := from; v < to; v++ {
		next, ok := l.edits[v-l.base].Translate(offset)
		if !ok {
			return 0, v + 1
		}
		offset = next
	}
	return offset, 0
}

func (l *Log) compactLocked() int {
	head := l.headLocked()

	floor := l.base
	if head > Version(l.retain) {
		floor = head - Version(l.retain)
	}
	for _, p := range l.positions {
		if p.origin < floor {
			floor = p.origin
		}
	}
	if floor <= l.base {
		return 0
	}

	n := int(floor - l.base)
	kept := make([]Edit, len(l.edits)-n)
	copy(kept, l.edits[n:])
	l.edits = kept
	l.base = floor
	return n
}

func (l *Log) releaseLocked(p *Position) {
	delete(l.positions, p.handle)
	p.released = true
	l.compactLocked()
}
