// Package tracking keeps offsets meaningful while a document is edited.
//
// Every edit applied to a document is recorded in that document's [Log] as a
// new [Version]. Each version transition carries a pure translation from
// offsets in the old snapshot to offsets in the new one (see [Edit.Translate]).
//
// # Positions
//
// A [Position] is a handle on one offset in one snapshot. Resolving it
// against a later version composes the translations of every edit in
// between:
//
//	log := tracking.NewLog(tracking.NewDocumentID(), int64(len(text)))
//	pos, _ := log.Track(log.Snapshot(), 10)
//
//	log.Record(tracking.Insert(0, 5))
//	off, ok, err := pos.Resolve(log.Version()) // off == 15, ok == true
//
// Each handle caches the last (version, offset) pair it resolved to, so a
// query only walks the edits recorded since the previous query.
//
// # Invalidation
//
// Deleting text can remove the character a position points at. Such a
// position becomes gone: Resolve reports ok == false for that version and
// every later one. Gone is not an error; callers routinely handle marks that
// vanish.
//
// # Lifetime
//
// Handles pin the part of the log they may still need. Release a handle when
// it is no longer used so that [Log.Compact] can drop old edits.
//
// # Thread Safety
//
// All Log and Position operations are guarded by the log's lock.
package tracking
