package tracking

import (
	"fmt"

	"github.com/google/uuid"
)

// ByteOffset is a byte position within one snapshot of a document.
type ByteOffset = int64

// Version numbers a document state. The document as created is version 0;
// each recorded edit produces the next version.
type Version uint64

// DocumentID identifies a document across all of its versions.
type DocumentID string

// NewDocumentID returns a fresh random document identity.
func NewDocumentID() DocumentID {
	return DocumentID(uuid.NewString())
}

// Snapshot is the view of a document at one version that positions are
// created in and resolved against. Text buffers implement it.
type Snapshot interface {
	// DocumentID identifies the document this snapshot belongs to.
	DocumentID() DocumentID

	// Version is the snapshot's version number.
	Version() Version

	// Len is the snapshot's length in bytes.
	Len() ByteOffset
}

// Stamp is the minimal Snapshot: identity, version and length only.
type Stamp struct {
	Document DocumentID
	Number   Version
	Length   ByteOffset
}

// DocumentID implements Snapshot.
func (s Stamp) DocumentID() DocumentID { return s.Document }

// Version implements Snapshot.
func (s Stamp) Version() Version { return s.Number }

// Len implements Snapshot.
func (s Stamp) Len() ByteOffset { return s.Length }

// String returns a human-readable representation of the stamp.
func (s Stamp) String() string {
	return fmt.Sprintf("%s@%d(len=%d)", s.Document, s.Number, s.Length)
}
