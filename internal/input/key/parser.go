package key

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ErrInvalidSpec is returned for text that is not valid key notation.
var ErrInvalidSpec = errors.New("invalid key specification")

// parseVimStyle parses the inside of a bracketed key: "C-s", "S-Tab", "CR".
func parseVimStyle(inner string) (Event, error) {
	var mods Modifier
	for len(inner) > 2 && inner[1] == '-' {
		mod := ModifierFromName(inner[:1])
		if mod == ModNone {
			break
		}
		mods = mods.With(mod)
		inner = inner[2:]
	}
	// <x> is not a key name; Vim reads it as three characters.
	if mods == ModNone && utf8.RuneCountInString(inner) == 1 {
		return Event{}, fmt.Errorf("%w: <%s>", ErrInvalidSpec, inner)
	}
	return parseKeyWithModifiers(inner, mods)
}

// parseKeyWithModifiers parses a key name or single character with
// already-known modifiers.
func parseKeyWithModifiers(keyPart string, mods Modifier) (Event, error) {
	if keyPart == "" {
		return Event{}, fmt.Errorf("%w: missing key", ErrInvalidSpec)
	}

	if r, size := utf8.DecodeRuneInString(keyPart); size == len(keyPart) && r != utf8.RuneError {
		return NewRuneEvent(r, mods), nil
	}

	lower := strings.ToLower(keyPart)
	if k := KeyFromName(lower); k != KeyNone {
		return NewSpecialEvent(k, mods), nil
	}
	if r, ok := runeNameMap[lower]; ok {
		return NewRuneEvent(r, mods), nil
	}
	if n, ok := strings.CutPrefix(lower, "char-"); ok {
		code, err := strconv.ParseInt(n, 0, 32)
		if err == nil && code >= 0 && utf8.ValidRune(rune(code)) {
			return NewRuneEvent(rune(code), mods), nil
		}
	}

	return Event{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, keyPart)
}

// ParseSequence parses Vim key notation into a Sequence. Every character
// outside a recognized <...> form is a key of its own, including spaces.
// A bracketed form that does not name a key is read literally.
// Examples: "jj", "<Esc>", "<C-x><C-s>", "d<Space>w"
func ParseSequence(s string) (*Sequence, error) {
	if !utf8.ValidString(s) {
		return nil, fmt.Errorf("%w: invalid UTF-8 in %q", ErrInvalidSpec, s)
	}

	seq := NewSequence()
	for i := 0; i < len(s); {
		if s[i] == '<' {
			if end := strings.IndexByte(s[i+1:], '>'); end > 0 {
				if event, err := parseVimStyle(s[i+1 : i+1+end]); err == nil {
					seq.Add(event)
					i += end + 2
					continue
				}
			}
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		seq.Add(NewRuneEvent(r, ModNone))
		i += size
	}
	return seq, nil
}

// MustParseSequence parses a sequence string and panics on error.
// Use only for known-valid sequences in initialization code.
func MustParseSequence(s string) *Sequence {
	seq, err := ParseSequence(s)
	if err != nil {
		panic("invalid key sequence: " + s + ": " + err.Error())
	}
	return seq
}
