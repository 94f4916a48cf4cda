// Package mark stores named marks per document. Each mark owns a
// tracking.Position, so it follows its text through later edits and
// disappears from queries once that text is deleted.
package mark

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/dshills/vimcore/internal/engine/tracking"
)

// ErrInvalidMark is returned for a rune that names no mark.
var ErrInvalidMark = errors.New("invalid mark")

// specialMarks are the punctuation marks Vim maintains itself.
const specialMarks = "`'[]<>.^\""

// Valid reports whether id names a mark: a-z, A-Z, 0-9 or one of the
// special marks.
func Valid(id rune) bool {
	switch {
	case id >= 'a' && id <= 'z', id >= 'A' && id <= 'Z', id >= '0' && id <= '9':
		return true
	}
	for _, c := range specialMarks {
		if c == id {
			return true
		}
	}
	return false
}

// Option configures a Map.
type Option func(*Map)

// WithLogger sets the logger used for debug events.
func WithLogger(logger *zap.Logger) Option {
	return func(m *Map) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// Map holds at most one mark per (document, id).
type Map struct {
	mu    sync.Mutex
	marks map[tracking.DocumentID]map[rune]*tracking.Position

	logger *zap.Logger
}

// NewMap creates an empty mark map.
func NewMap(opts ...Option) *Map {
	m := &Map{
		marks:  make(map[tracking.DocumentID]map[rune]*tracking.Position),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Set stores pos as mark id of pos's document, taking ownership of the
// handle. A previous mark with the same id is released. Set fails only
// before pos is stored, so on error the caller still owns pos.
func (m *Map) Set(id rune, pos *tracking.Position) error {
	if !Valid(id) {
		return fmt.Errorf("%w: %q", ErrInvalidMark, id)
	}
	if pos == nil || pos.Released() {
		return fmt.Errorf("%w: %q: position is released", ErrInvalidMark, id)
	}

	doc := pos.DocumentID()

	m.mu.Lock()
	marks, ok := m.marks[doc]
	if !ok {
		marks = make(map[rune]*tracking.Position)
		m.marks[doc] = marks
	}
	old := marks[id]
	marks[id] = pos
	m.mu.Unlock()

	if old != nil && old != pos {
		m.logger.Debug("mark replaced",
			zap.String("document", string(doc)),
			zap.String("mark", string(id)))
		if err := old.Release(); err != nil {
			m.logger.Warn("release replaced mark",
				zap.String("document", string(doc)),
				zap.String("mark", string(id)),
				zap.Error(err))
		}
	}
	return nil
}

// Get returns the position of mark id in doc. An unset mark is absent,
// not an error.
func (m *Map) Get(doc tracking.DocumentID, id rune) (*tracking.Position, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	pos, ok := m.marks[doc][id]
	return pos, ok
}

// Offset resolves mark id of doc in version v. The boolean is false when
// the mark is unset or its text has been deleted.
func (m *Map) Offset(doc tracking.DocumentID, id rune, v tracking.Version) (tracking.ByteOffset, bool, error) {
	pos, ok := m.Get(doc, id)
	if !ok {
		return 0, false, nil
	}
	return pos.Resolve(v)
}

// Clear removes and releases mark id of doc. It reports whether the mark
// was set.
func (m *Map) Clear(doc tracking.DocumentID, id rune) bool {
	m.mu.Lock()
	pos, ok := m.marks[doc][id]
	if ok {
		delete(m.marks[doc], id)
		if len(m.marks[doc]) == 0 {
			delete(m.marks, doc)
		}
	}
	m.mu.Unlock()

	if ok {
		_ = pos.Release()
	}
	return ok
}

// ClearDocument removes and releases every mark of doc and returns how
// many there were.
func (m *Map) ClearDocument(doc tracking.DocumentID) int {
	m.mu.Lock()
	marks := m.marks[doc]
	delete(m.marks, doc)
	m.mu.Unlock()

	for _, pos := range marks {
		_ = pos.Release()
	}
	return len(marks)
}

// IDs returns the ids of the marks set in doc, sorted.
func (m *Map) IDs(doc tracking.DocumentID) []rune {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]rune, 0, len(m.marks[doc]))
	for id := range m.marks[doc] {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
