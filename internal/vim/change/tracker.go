package change

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/dshills/vimcore/internal/engine/tracking"
	"github.com/dshills/vimcore/internal/input/key"
)

// Option configures a Tracker.
type Option func(*Tracker)

// WithLogger sets the logger used for debug events.
func WithLogger(logger *zap.Logger) Option {
	return func(t *Tracker) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// pending is an open change.
type pending struct {
	record Record
	text   strings.Builder
}

// docState is the change state of one document.
type docState struct {
	pending *pending
	last    *Record
}

// Tracker holds the pending and last change of every document.
type Tracker struct {
	mu   sync.Mutex
	docs map[tracking.DocumentID]*docState

	logger *zap.Logger
}

// NewTracker creates a tracker with no recorded changes.
func NewTracker(opts ...Option) *Tracker {
	t := &Tracker{
		docs:   make(map[tracking.DocumentID]*docState),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Begin opens a change of kind over [start, end) in the head version of
// log. A change already open for the document is discarded.
func (t *Tracker) Begin(log *tracking.Log, kind Kind, start, end tracking.ByteOffset) error {
	if start > end {
		return fmt.Errorf("%w: [%d, %d)", ErrInvalidSpan, start, end)
	}

	snap := log.Snapshot()
	startPos, err := log.Track(snap, start)
	if err != nil {
		return fmt.Errorf("begin %s: %w", kind, err)
	}
	endPos, err := log.Track(snap, end)
	if err != nil {
		_ = startPos.Release()
		return fmt.Errorf("begin %s: %w", kind, err)
	}

	p := &pending{record: Record{
		Kind:    kind,
		Version: snap.Version(),
		Start:   startPos,
		End:     endPos,
		Count:   1,
		Keys:    key.NewSequence(),
	}}

	t.mu.Lock()
	st := t.stateLocked(log.ID())
	prev := st.pending
	st.pending = p
	t.mu.Unlock()

	if prev != nil {
		prev.record.release()
		t.logger.Debug("pending change replaced",
			zap.String("document", string(log.ID())),
			zap.Stringer("kind", prev.record.Kind))
	}
	t.transition(log.ID(), Idle, Accumulating)
	return nil
}

// Extend appends text to the open change of doc.
func (t *Tracker) Extend(doc tracking.DocumentID, text string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	p, err := t.pendingLocked(doc)
	if err != nil {
		return err
	}
	p.text.WriteString(text)
	return nil
}

// AddKeys appends the keys of a command to the open change of doc.
func (t *Tracker) AddKeys(doc tracking.DocumentID, keys *key.Sequence) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	p, err := t.pendingLocked(doc)
	if err != nil {
		return err
	}
	if keys != nil {
		p.record.Keys = p.record.Keys.Append(keys)
	}
	return nil
}

// SetCount sets the repeat count of the open change of doc.
func (t *Tracker) SetCount(doc tracking.DocumentID, n int) error {
	if n < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidCount, n)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	p, err := t.pendingLocked(doc)
	if err != nil {
		return err
	}
	p.record.Count = n
	return nil
}

// Commit finalizes the open change of doc and makes it the last change,
// releasing the record it replaces.
func (t *Tracker) Commit(doc tracking.DocumentID) (Record, error) {
	t.mu.Lock()
	p, err := t.pendingLocked(doc)
	if err != nil {
		t.mu.Unlock()
		return Record{}, err
	}
	st := t.docs[doc]
	rec := p.record
	rec.Text = p.text.String()

	prev := st.last
	st.last = &rec
	st.pending = nil
	t.mu.Unlock()

	if prev != nil {
		prev.release()
	}
	t.transition(doc, Accumulating, Committed)
	t.logger.Debug("change committed",
		zap.String("document", string(doc)),
		zap.Stringer("kind", rec.Kind),
		zap.Int("text_len", len(rec.Text)),
		zap.Int("count", rec.Count))
	t.transition(doc, Committed, Idle)
	return rec, nil
}

// Cancel discards the open change of doc. The last change is kept. It
// reports whether a change was open.
func (t *Tracker) Cancel(doc tracking.DocumentID) bool {
	t.mu.Lock()
	st, ok := t.docs[doc]
	if !ok || st.pending == nil {
		t.mu.Unlock()
		return false
	}
	p := st.pending
	st.pending = nil
	t.mu.Unlock()

	p.record.release()
	t.logger.Debug("change cancelled",
		zap.String("document", string(doc)),
		zap.Stringer("kind", p.record.Kind))
	t.transition(doc, Accumulating, Idle)
	return true
}

// LastChange returns the last committed change of doc.
func (t *Tracker) LastChange(doc tracking.DocumentID) (Record, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	st, ok := t.docs[doc]
	if !ok || st.last == nil {
		return Record{}, false
	}
	return *st.last, true
}

// State returns Accumulating while doc has an open change and Idle
// otherwise.
func (t *Tracker) State(doc tracking.DocumentID) State {
	t.mu.Lock()
	defer t.mu.Unlock()

	if st, ok := t.docs[doc]; ok && st.pending != nil {
		return Accumulating
	}
	return Idle
}

// Forget drops every change of doc and releases their positions.
func (t *Tracker) Forget(doc tracking.DocumentID) {
	t.mu.Lock()
	st, ok := t.docs[doc]
	delete(t.docs, doc)
	t.mu.Unlock()

	if !ok {
		return
	}
	if st.pending != nil {
		st.pending.record.release()
	}
	if st.last != nil {
		st.last.release()
	}
}

func (t *Tracker) stateLocked(doc tracking.DocumentID) *docState {
	st, ok := t.docs[doc]
	if !ok {
		st = &docState{}
		t.docs[doc] = st
	}
	return st
}

func (t *Tracker) pendingLocked(doc tracking.DocumentID) (*pending, error) {
	st, ok := t.docs[doc]
	if !ok || st.pending == nil {
		return nil, fmt.Errorf("%w: document %s", ErrNotAccumulating, doc)
	}
	return st.pending, nil
}

func (t *Tracker) transition(doc tracking.DocumentID, from, to State) {
	t.logger.Debug("change state",
		zap.String("document", string(doc)),
		zap.Stringer("from", from),
		zap.Stringer("to", to))
}
