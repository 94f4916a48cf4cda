package tracking

import (
	"fmt"

	"go.uber.org/zap"
)

// Position is a live handle on an offset in one snapshot of a document.
// It answers where that offset is in any later snapshot, or reports that
// the text it pointed at has been deleted.
type Position struct {
	log    *Log
	handle uint64

	origin       Version
	originOffset ByteOffset

	// Last resolved pair; queries at or after cacheVersion start here.
	cacheVersion Version
	cacheOffset  ByteOffset

	// goneAt is the first version in which the offset no longer exists.
	// Zero means the position has not been invalidated.
	goneAt Version

	released bool
}

// DocumentID returns the document the position belongs to.
func (p *Position) DocumentID() DocumentID {
	return p.log.id
}

// Origin returns the version and offset the position was created with.
func (p *Position) Origin() (Version, ByteOffset) {
	return p.origin, p.originOffset
}

// Resolve returns the position's offset in version v. The boolean is false
// when the position has been invalidated at or before v. An error is
// returned only for misuse: a released handle or a version the position
// cannot answer for.
func (p *Position) Resolve(v Version) (ByteOffset, bool, error) {
	l := p.log
	l.mu.Lock()
	defer l.mu.Unlock()

	if p.released {
		return 0, false, ErrReleased
	}
	head := l.headLocked()
	if v < p.origin || v > head {
		return 0, false, fmt.Errorf("%w: %d not in [%d, %d]", ErrVersionRange, v, p.origin, head)
	}
	if p.goneAt != 0 && v >= p.goneAt {
		return 0, false, nil
	}

	from, offset := p.cacheVersion, p.cacheOffset
	if v < from {
		from, offset = p.origin, p.originOffset
	}

	off, goneAt := l.walkLocked(offset, from, v)
	if goneAt != 0 {
		p.goneAt = goneAt
		l.logger.Debug("position invalidated",
			zap.String("document", string(l.id)),
			zap.Uint64("version", uint64(goneAt)),
			zap.Int64("origin_offset", p.originOffset))
		return 0, false, nil
	}

	if v >= p.cacheVersion {
		p.cacheVersion, p.cacheOffset = v, off
	}
	return off, true, nil
}

// ResolveIn resolves the position against snap, which must belong to the
// same document.
func (p *Position) ResolveIn(snap Snapshot) (ByteOffset, bool, error) {
	if snap == nil || snap.DocumentID() != p.log.id {
		return 0, false, ErrForeignDocument
	}
	return p.Resolve(snap.Version())
}

// Current resolves the position against the log's head version.
func (p *Position) Current() (ByteOffset, bool, error) {
	return p.Resolve(p.log.Version())
}

// Released reports whether Release has been called.
func (p *Position) Released() bool {
	p.log.mu.Lock()
	defer p.log.mu.Unlock()
	return p.released
}

// Release gives the handle back to the log. Releasing twice is a caller
// bug and returns ErrReleased.
func (p *Position) Release() error {
	l := p.log
	l.mu.Lock()
	defer l.mu.Unlock()

	if p.released {
		return ErrReleased
	}
	l.releaseLocked(p)
	return nil
}

// String returns a human-readable representation of the position.
func (p *Position) String() string {
	return fmt.Sprintf("Position(%s@%d:%d)", p.log.id, p.origin, p.originOffset)
}
