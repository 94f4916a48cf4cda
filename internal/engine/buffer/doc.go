// Package buffer provides a versioned text document whose edits are recorded
// in a tracking.Log, so positions created in one snapshot can be followed
// through later edits.
//
// Basic usage:
//
//	doc := buffer.New("Hello, World!")
//	snap := doc.Snapshot()
//	pos, _ := doc.Track(snap, 7) // "World"
//
//	doc.Insert(7, "Beautiful ")   // version 1
//	off, ok, _ := pos.Current()   // 17, true
//
// Replace is recorded as a delete followed by an insert, so it advances the
// version by two when both halves are non-empty.
//
// Thread Safety:
//
// All Document methods are thread-safe. Snapshots are immutable values and
// may be read from any goroutine.
package buffer
