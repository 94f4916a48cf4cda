// Package change records the most recent completed change of each document
// so that a repeat command can replay it.
//
// A change moves through three states:
//
//	Idle -> Begin -> Accumulating -> Commit -> Committed -> Idle
//	                      |
//	                      +-> Cancel -> Idle
//
// While accumulating, the command layer extends the pending change with the
// text it inserts, the keys that produced it and a repeat count. Commit
// atomically replaces the document's last change; Cancel drops the pending
// change and leaves the last one untouched. Beginning a new change while one
// is pending replaces the pending one.
//
// The affected span is held as two tracking.Positions taken in the snapshot
// the change started from, so a record can still be located after later
// edits. The tracker owns those handles and releases them when the record is
// replaced or the document is forgotten.
package change
