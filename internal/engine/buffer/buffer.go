package buffer

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dshills/vimcore/internal/engine/tracking"
)

// Errors returned by document operations.
var (
	ErrOffsetOutOfRange = errors.New("offset out of range")
	ErrRangeInvalid     = errors.New("invalid range")
)

// Change describes one recorded edit, delivered to observers after the
// document has been updated.
type Change struct {
	Edit    tracking.Edit
	Version tracking.Version
	// Text is the inserted text for an insert and the removed text for a delete.
	Text string
}

// Observer is notified of every recorded edit.
type Observer func(Change)

// Document is a mutable text whose every edit is recorded in a tracking.Log.
// All methods are thread-safe.
type Document struct {
	mu         sync.RWMutex
	id         tracking.DocumentID
	name       string
	text       string
	lineEnding LineEnding
	log        *tracking.Log
	logOpts    []tracking.LogOption

	observers []Observer
}

// New creates a document at version 0 containing text.
func New(text string, opts ...Option) *Document {
	d := &Document{
		id:         tracking.NewDocumentID(),
		text:       text,
		lineEnding: DetectLineEnding(text),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.log = tracking.NewLog(d.id, ByteOffset(len(text)), d.logOpts...)
	return d
}

// ID returns the document identity.
func (d *Document) ID() tracking.DocumentID {
	return d.id
}

// Name returns the document's display name.
func (d *Document) Name() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.name
}

// Log returns the document's version history.
func (d *Document) Log() *tracking.Log {
	return d.log
}

// LineEnding returns the line ending detected when the document was created.
func (d *Document) LineEnding() LineEnding {
	return d.lineEnding
}

// Text returns the current content.
func (d *Document) Text() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.text
}

// Len returns the current length in bytes.
func (d *Document) Len() ByteOffset {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return ByteOffset(len(d.text))
}

// Version returns the current version.
func (d *Document) Version() tracking.Version {
	return d.log.Version()
}

// Snapshot returns an immutable view of the current version.
func (d *Document) Snapshot() Snapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return Snapshot{id: d.id, version: d.log.Version(), text: d.text}
}

// Track creates a position at offset in snap.
func (d *Document) Track(snap tracking.Snapshot, offset ByteOffset) (*tracking.Position, error) {
	return d.log.Track(snap, offset)
}

// TrackCurrent creates a position at offset in the current version.
func (d *Document) TrackCurrent(offset ByteOffset) (*tracking.Position, error) {
	return d.log.Track(d.Snapshot(), offset)
}

// Subscribe registers an observer for recorded edits.
func (d *Document) Subscribe(obs Observer) {
	if obs == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.observers = append(d.observers, obs)
}

// Insert inserts text at offset and returns the new version. Inserting an
// empty string is a no-op that leaves the version unchanged.
func (d *Document) Insert(offset ByteOffset, text string) (tracking.Version, error) {
	d.mu.Lock()
	if offset < 0 || offset > ByteOffset(len(d.text)) {
		d.mu.Unlock()
		return d.log.Version(), fmt.Errorf("%w: insert at %d, length %d", ErrOffsetOutOfRange, offset, len(d.text))
	}
	if text == "" {
		d.mu.Unlock()
		return d.log.Version(), nil
	}
	ch, err := d.insertLocked(offset, text)
	observers := d.observers
	d.mu.Unlock()

	if err != nil {
		return d.log.Version(), err
	}
	notify(observers, ch)
	return ch.Version, nil
}

// Delete removes [start, end) and returns the removed text. Deleting an
// empty range is a no-op.
func (d *Document) Delete(start, end ByteOffset) (string, error) {
	d.mu.Lock()
	if start < 0 || start > end || end > ByteOffset(len(d.text)) {
		d.mu.Unlock()
		return "", fmt.Errorf("%w: [%d:%d) in length %d", ErrRangeInvalid, start, end, len(d.text))
	}
	if start == end {
		d.mu.Unlock()
		return "", nil
	}
	ch, err := d.deleteLocked(start, end)
	observers := d.observers
	d.mu.Unlock()

	if err != nil {
		return "", err
	}
	notify(observers, ch)
	return ch.Text, nil
}

// Replace substitutes text for [start, end). It is recorded as a delete
// followed by an insert; empty halves are skipped. It returns the removed
// text.
func (d *Document) Replace(start, end ByteOffset, text string) (string, error) {
	d.mu.Lock()
	if start < 0 || start > end || end > ByteOffset(len(d.text)) {
		d.mu.Unlock()
		return "", fmt.Errorf("%w: [%d:%d) in length %d", ErrRangeInvalid, start, end, len(d.text))
	}

	var changes []Change
	var removed string
	if start < end {
		ch, err := d.deleteLocked(start, end)
		if err != nil {
			d.mu.Unlock()
			return "", err
		}
		removed = ch.Text
		changes = append(changes, ch)
	}
	if text != "" {
		ch, err := d.insertLocked(start, text)
		if err != nil {
			d.mu.Unlock()
			return removed, err
		}
		changes = append(changes, ch)
	}
	observers := d.observers
	d.mu.Unlock()

	for _, ch := range changes {
		notify(observers, ch)
	}
	return removed, nil
}

func (d *Document) insertLocked(offset ByteOffset, text string) (Change, error) {
	e := tracking.Insert(offset, ByteOffset(len(text)))
	v, err := d.log.Record(e)
	if err != nil {
		return Change{}, err
	}
	d.text = d.text[:offset] + text + d.text[offset:]
	return Change{Edit: e, Version: v, Text: text}, nil
}

func (d *Document) deleteLocked(start, end ByteOffset) (Change, error) {
	e := tracking.Delete(start, end)
	v, err := d.log.Record(e)
	if err != nil {
		return Change{}, err
	}
	removed := d.text[start:end]
	d.text = d.text[:start] + d.text[end:]
	return Change{Edit: e, Version: v, Text: removed}, nil
}

func notify(observers []Observer, ch Change) {
	for _, obs := range observers {
		obs(ch)
	}
}
