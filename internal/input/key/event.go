package key

import (
	"fmt"
	"unicode"
)

// Event represents a single key press. Events are comparable with ==.
type Event struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Modifiers contains the active modifier keys.
	Modifiers Modifier
}

// NewRuneEvent creates a key event for a character, folding Shift into
// letters and making Ctrl combinations case-insensitive.
func NewRuneEvent(r rune, mods Modifier) Event {
	if mods.HasCtrl() {
		r = unicode.ToLower(r)
	} else if mods.HasShift() {
		r = unicode.ToUpper(r)
		mods = mods.Without(ModShift)
	}
	return Event{Key: KeyRune, Rune: r, Modifiers: mods}
}

// NewSpecialEvent creates a key event for a special key.
func NewSpecialEvent(key Key, mods Modifier) Event {
	return Event{Key: key, Modifiers: mods}
}

// IsModified returns true if any modifier is pressed.
func (e Event) IsModified() bool {
	return e.Modifiers != ModNone
}

// String returns the event in Vim notation.
func (e Event) String() string {
	return e.VimString()
}

// VimString returns the Vim notation for the event: "a", "<Esc>",
// "<C-w>", "<lt>", "<S-Tab>". ParseSequence accepts every form it produces.
func (e Event) VimString() string {
	var name string
	switch e.Key {
	case KeyRune:
		name = runeName(e.Rune)
		if !e.IsModified() && name == "" {
			return string(e.Rune)
		}
		if name == "" {
			name = string(e.Rune)
		}
	case KeyNone:
		return ""
	default:
		name = e.Key.String()
	}
	return "<" + e.Modifiers.vimPrefix() + name + ">"
}

// runeName returns the bracketed name for characters that cannot appear
// bare, or "" for ordinary characters.
func runeName(r rune) string {
	switch r {
	case ' ':
		return "Space"
	case '<':
		return "lt"
	case '>':
		return "gt"
	case '|':
		return "Bar"
	case '\\':
		return "Bslash"
	}
	if r < ' ' || r == 0x7f {
		return fmt.Sprintf("Char-%d", r)
	}
	return ""
}
