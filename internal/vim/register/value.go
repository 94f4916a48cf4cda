package register

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Kind describes how register content is put back into a document.
type Kind uint8

const (
	// Characterwise content is inserted inline.
	Characterwise Kind = iota

	// Linewise content is inserted as whole lines.
	Linewise

	// Blockwise content is inserted as a rectangle, one line per row.
	Blockwise
)

// String returns the kind's name.
func (k Kind) String() string {
	switch k {
	case Linewise:
		return "linewise"
	case Blockwise:
		return "blockwise"
	default:
		return "characterwise"
	}
}

// Value is the content of a register.
type Value struct {
	Text string
	Kind Kind
}

// IsEmpty reports whether the value holds no text.
func (v Value) IsEmpty() bool {
	return v.Text == ""
}

// Lines splits the text into lines. A trailing newline on linewise content
// terminates the last line rather than starting an empty one.
func (v Value) Lines() []string {
	if v.Text == "" {
		return nil
	}
	text := v.Text
	if v.Kind == Linewise {
		text = strings.TrimSuffix(text, "\n")
	}
	return strings.Split(text, "\n")
}

// Width returns the display width of the widest line, the column span a
// blockwise put occupies.
func (v Value) Width() int {
	var w int
	for _, line := range v.Lines() {
		if lw := runewidth.StringWidth(line); lw > w {
			w = lw
		}
	}
	return w
}

// Register is a register name together with its content.
type Register struct {
	Name Name
	Value
}
