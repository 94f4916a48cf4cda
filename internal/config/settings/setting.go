package settings

import (
	"fmt"
	"math"
	"sort"
)

// Type is the data type of an option.
type Type uint8

const (
	// TypeBool is an on/off option.
	TypeBool Type = iota
	// TypeInt is a number option.
	TypeInt
	// TypeString is a string option.
	TypeString
)

// String returns the type name.
func (t Type) String() string {
	switch t {
	case TypeBool:
		return "boolean"
	case TypeInt:
		return "number"
	case TypeString:
		return "string"
	default:
		return "unknown"
	}
}

// Scope defines where an option may be set.
type Scope uint8

const (
	// ScopeGlobal options exist once per process.
	ScopeGlobal Scope = iota
	// ScopeLocal options may be overridden per document.
	ScopeLocal
)

// String returns the scope name.
func (s Scope) String() string {
	if s == ScopeLocal {
		return "global-local"
	}
	return "global"
}

// Setting declares one option.
type Setting struct {
	// Name is the full option name.
	Name string

	// Abbrev is the short name, empty when there is none.
	Abbrev string

	// Type is the option's data type.
	Type Type

	// Default is the value a Global starts with.
	Default any

	// Scope defines whether a Local may override the option.
	Scope Scope

	// List marks comma-separated string options.
	List bool

	// Min is the smallest value a number option accepts.
	Min int

	// Description is human-readable documentation.
	Description string
}

// Option names.
const (
	IgnoreCase        = "ignorecase"
	SmartCase         = "smartcase"
	ShiftWidth        = "shiftwidth"
	TabStop           = "tabstop"
	ExpandTab         = "expandtab"
	ScrollOff         = "scrolloff"
	HighlightSearch   = "hlsearch"
	IncrementalSearch = "incsearch"
	WrapScan          = "wrapscan"
	MaxMapDepth       = "maxmapdepth"
	TimeoutLen        = "timeoutlen"
	Clipboard         = "clipboard"
	DisableCommand    = "disablecommand"
)

// DefaultDisableCommand is the key that toggles the editor off.
const DefaultDisableCommand = "<C-S-F12>"

var builtin = []Setting{
	{Name: IgnoreCase, Abbrev: "ic", Type: TypeBool, Default: false, Scope: ScopeLocal,
		Description: "Ignore case in search patterns"},
	{Name: SmartCase, Abbrev: "scs", Type: TypeBool, Default: false, Scope: ScopeLocal,
		Description: "Override ignorecase when the pattern has upper case characters"},
	{Name: ShiftWidth, Abbrev: "sw", Type: TypeInt, Default: 8, Scope: ScopeLocal,
		Description: "Number of spaces for each step of indent"},
	{Name: TabStop, Abbrev: "ts", Type: TypeInt, Default: 8, Scope: ScopeLocal, Min: 1,
		Description: "Number of spaces a tab counts for"},
	{Name: ExpandTab, Abbrev: "et", Type: TypeBool, Default: false, Scope: ScopeLocal,
		Description: "Insert spaces instead of tabs"},
	{Name: ScrollOff, Abbrev: "so", Type: TypeInt, Default: 0, Scope: ScopeLocal,
		Description: "Minimum number of lines kept above and below the cursor"},
	{Name: HighlightSearch, Abbrev: "hls", Type: TypeBool, Default: false, Scope: ScopeGlobal,
		Description: "Highlight all matches of the last search pattern"},
	{Name: IncrementalSearch, Abbrev: "is", Type: TypeBool, Default: false, Scope: ScopeGlobal,
		Description: "Show matches while typing a search pattern"},
	{Name: WrapScan, Abbrev: "ws", Type: TypeBool, Default: true, Scope: ScopeGlobal,
		Description: "Searches wrap around the end of the document"},
	{Name: MaxMapDepth, Abbrev: "mmd", Type: TypeInt, Default: 1000, Scope: ScopeGlobal, Min: 1,
		Description: "Maximum number of times a mapping is expanded"},
	{Name: TimeoutLen, Abbrev: "tm", Type: TypeInt, Default: 1000, Scope: ScopeGlobal,
		Description: "Milliseconds to wait for a mapped sequence to complete"},
	{Name: Clipboard, Abbrev: "cb", Type: TypeString, Default: "", Scope: ScopeGlobal, List: true,
		Description: "Use the clipboard as the unnamed register (\"unnamed\", \"unnamedplus\")"},
	{Name: DisableCommand, Type: TypeString, Default: DefaultDisableCommand, Scope: ScopeGlobal,
		Description: "Key that disables the editor"},
}

var byName = func() map[string]*Setting {
	m := make(map[string]*Setting, 2*len(builtin))
	for i := range builtin {
		s := &builtin[i]
		m[s.Name] = s
		if s.Abbrev != "" {
			m[s.Abbrev] = s
		}
	}
	return m
}()

// Lookup returns the option named name, which may be the full name or
// its abbreviation.
func Lookup(name string) (*Setting, bool) {
	s, ok := byName[name]
	return s, ok
}

// All returns every option sorted by name.
func All() []Setting {
	result := make([]Setting, len(builtin))
	copy(result, builtin)
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// Coerce converts value to the option's canonical Go type: bool, int or
// string. Any Go integer kind is accepted for number options, which must
// not be below Min.
func (s *Setting) Coerce(value any) (any, error) {
	switch s.Type {
	case TypeBool:
		if b, ok := value.(bool); ok {
			return b, nil
		}
	case TypeInt:
		if n, ok := toInt(value); ok {
			if n < s.Min {
				return nil, fmt.Errorf("%w: %s must be at least %d, got %d", ErrOutOfRange, s.Name, s.Min, n)
			}
			return n, nil
		}
	case TypeString:
		if str, ok := value.(string); ok {
			return str, nil
		}
	}
	return nil, fmt.Errorf("%w: expected %s, got %T", ErrTypeMismatch, s.Type, value)
}

func toInt(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int8:
		return int(v), true
	case int16:
		return int(v), true
	case int32:
		return int(v), true
	case int64:
		if v < math.MinInt || v > math.MaxInt {
			return 0, false
		}
		return int(v), true
	case uint:
		if v > math.MaxInt {
			return 0, false
		}
		return int(v), true
	case uint8:
		return int(v), true
	case uint16:
		return int(v), true
	case uint32:
		if uint64(v) > math.MaxInt {
			return 0, false
		}
		return int(v), true
	case uint64:
		if v > math.MaxInt {
			return 0, false
		}
		return int(v), true
	default:
		return 0, false
	}
}
