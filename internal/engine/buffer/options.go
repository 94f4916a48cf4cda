package buffer

import "github.com/dshills/vimcore/internal/engine/tracking"

// Option is a functional option for configuring a Document.
type Option func(*Document)

// WithID sets the document identity. The default is a random UUID.
func WithID(id tracking.DocumentID) Option {
	return func(d *Document) {
		if id != "" {
			d.id = id
		}
	}
}

// WithName sets the document's display name.
func WithName(name string) Option {
	return func(d *Document) {
		d.name = name
	}
}

// WithLogOptions passes options through to the document's tracking log.
func WithLogOptions(opts ...tracking.LogOption) Option {
	return func(d *Document) {
		d.logOpts = append(d.logOpts, opts...)
	}
}

// DetectLineEnding returns a LineEnding based on the most common line ending in the text.
// Returns LineEndingLF if no line endings are found.
func DetectLineEnding(text string) LineEnding {
	var lfCount, crlfCount, crCount int

	i := 0
	for i < len(text) {
		switch {
		case i+1 < len(text) && text[i] == '\r' && text[i+1] == '\n':
			crlfCount++
			i += 2
		case text[i] == '\r':
			crCount++
			i++
		case text[i] == '\n':
			lfCount++
			i++
		default:
			i++
		}
	}

	if crlfCount > 0 && crlfCount >= lfCount && crlfCount >= crCount {
		return LineEndingCRLF
	}
	if crCount > 0 && crCount >= lfCount {
		return LineEndingCR
	}
	return LineEndingLF
}
