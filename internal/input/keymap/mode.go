package keymap

import (
	"fmt"
	"strings"
)

// Mode scopes a mapping. A rule registered in one mode never fires while
// resolving another mode's input.
type Mode uint8

const (
	ModeNormal Mode = iota
	ModeVisual
	ModeSelect
	ModeOperatorPending
	ModeInsert
	ModeCommandLine
	ModeLangArg

	numModes
)

var modeNames = [numModes]string{
	ModeNormal:          "normal",
	ModeVisual:          "visual",
	ModeSelect:          "select",
	ModeOperatorPending: "operator-pending",
	ModeInsert:          "insert",
	ModeCommandLine:     "command-line",
	ModeLangArg:         "lang-arg",
}

// modeAliases holds the single-letter prefixes of Vim's map commands.
var modeAliases = map[string]Mode{
	"n": ModeNormal,
	"x": ModeVisual,
	"s": ModeSelect,
	"o": ModeOperatorPending,
	"i": ModeInsert,
	"c": ModeCommandLine,
	"l": ModeLangArg,
}

// Modes returns every mode in declaration order.
func Modes() []Mode {
	modes := make([]Mode, numModes)
	for i := range modes {
		modes[i] = Mode(i)
	}
	return modes
}

// String returns the mode's name.
func (m Mode) String() string {
	if m < numModes {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", m)
}

// Valid reports whether m is one of the declared modes.
func (m Mode) Valid() bool {
	return m < numModes
}

// ParseMode returns the mode for a name such as "insert" or "i".
func ParseMode(name string) (Mode, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range modeNames {
		if n == name {
			return Mode(i), nil
		}
	}
	if m, ok := modeAliases[name]; ok {
		return m, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, name)
}
