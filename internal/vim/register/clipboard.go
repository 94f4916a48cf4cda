package register

import "github.com/atotto/clipboard"

// ClipboardProvider abstracts system clipboard access for the * and +
// registers.
type ClipboardProvider interface {
	// Get returns the current clipboard content.
	Get() (string, error)

	// Set sets the clipboard content.
	Set(content string) error
}

// OSClipboard is the system clipboard.
type OSClipboard struct{}

// Get implements ClipboardProvider.
func (OSClipboard) Get() (string, error) {
	if clipboard.Unsupported {
		return "", ErrClipboard
	}
	return clipboard.ReadAll()
}

// Set implements ClipboardProvider.
func (OSClipboard) Set(content string) error {
	if clipboard.Unsupported {
		return ErrClipboard
	}
	return clipboard.WriteAll(content)
}
