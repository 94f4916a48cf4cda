package register

import "fmt"

// Name identifies one of the 74 registers. The zero value is NameNone.
type Name uint8

// nameChars lists every register character; Name(i+1) is nameChars[i].
const nameChars = `"` +
	"abcdefghijklmnopqrstuvwxyz" +
	"ABCDEFGHIJKLMNOPQRSTUVWXYZ" +
	"0123456789" +
	`-_/=%#:.*+~`

// Count is the number of valid register names.
const Count = len(nameChars)

const (
	// NameNone is returned for characters that name no register.
	NameNone Name = 0

	// Unnamed is the default register (").
	Unnamed Name = 1
)

// Special registers.
var (
	SmallDelete   = mustName('-')
	BlackHole     = mustName('_')
	LastSearch    = mustName('/')
	Expression    = mustName('=')
	FileName      = mustName('%')
	AlternateFile = mustName('#')
	LastCommand   = mustName(':')
	LastInserted  = mustName('.')
	Selection     = mustName('*')
	Clipboard     = mustName('+')
	Drop          = mustName('~')
	LastYank      = mustName('0')
)

var charToName = func() map[rune]Name {
	m := make(map[rune]Name, Count)
	for i, c := range nameChars {
		m[c] = Name(i + 1)
	}
	return m
}()

func mustName(c rune) Name {
	n, ok := NameOf(c)
	if !ok {
		panic(fmt.Sprintf("register: %q is not a register name", c))
	}
	return n
}

// NameOf returns the register named by c.
func NameOf(c rune) (Name, bool) {
	n, ok := charToName[c]
	return n, ok
}

// All returns every register name in a stable order: unnamed, a-z, A-Z,
// 0-9, then the special registers.
func All() []Name {
	names := make([]Name, Count)
	for i := range names {
		names[i] = Name(i + 1)
	}
	return names
}

// Valid reports whether n is one of the 74 register names.
func (n Name) Valid() bool {
	return n >= 1 && int(n) <= Count
}

// Char returns the register's character, or 0 for an invalid name.
func (n Name) Char() rune {
	if !n.Valid() {
		return 0
	}
	return rune(nameChars[n-1])
}

// String returns the register in Vim's "x notation.
func (n Name) String() string {
	if !n.Valid() {
		return fmt.Sprintf("Name(%d)", uint8(n))
	}
	return `"` + string(n.Char())
}

// Class groups register names by behavior.
type Class uint8

const (
	ClassNone Class = iota
	ClassUnnamed
	ClassLetter   // a-z
	ClassAppend   // A-Z, appending to the lowercase register
	ClassNumbered // 0-9
	ClassSpecial
)

// Class returns the group n belongs to.
func (n Name) Class() Class {
	c := n.Char()
	switch {
	case !n.Valid():
		return ClassNone
	case n == Unnamed:
		return ClassUnnamed
	case c >= 'a' && c <= 'z':
		return ClassLetter
	case c >= 'A' && c <= 'Z':
		return ClassAppend
	case c >= '0' && c <= '9':
		return ClassNumbered
	default:
		return ClassSpecial
	}
}

// IsAppend reports whether writes to n append to its lowercase sibling.
func (n Name) IsAppend() bool {
	return n.Class() == ClassAppend
}

// storage returns the name whose cell holds n's content: the lowercase
// sibling for A-Z, n itself otherwise.
func (n Name) storage() Name {
	if n.IsAppend() {
		return n - 26
	}
	return n
}
