package settings

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Target is the settings level an assignment is applied to. Both Global
// and Local implement it.
type Target interface {
	Get(name string) (any, error)
	Set(name string, value any) error
	Reset(name string) error
}

// ApplyLine applies every whitespace-separated argument of a ":set" command
// line in order, stopping at the first error. A backslash escapes the
// following character, so "\ " is a literal space.
func ApplyLine(target Target, line string) error {
	for _, arg := range splitArgs(line) {
		if err := Apply(target, arg); err != nil {
			return err
		}
	}
	return nil
}

// Apply applies one ":set" argument to target:
//
//	name       switch a boolean option on
//	noname     switch a boolean option off
//	invname    toggle a boolean option (also name!)
//	name&      reset the option
//	name=val   assign (also name:val)
//	name+=val  add to a number, append to a string
//	name-=val  subtract from a number, remove from a string
//	name^=val  multiply a number, prepend to a string
func Apply(target Target, arg string) error {
	if arg == "" {
		return fmt.Errorf("%w: empty argument", ErrInvalidArgument)
	}

	if i := strings.IndexAny(arg, "=:"); i > 0 {
		name, op := arg[:i], byte('=')
		if last := name[len(name)-1]; arg[i] == '=' && (last == '+' || last == '-' || last == '^') {
			name, op = name[:len(name)-1], last
		}
		return assign(target, name, op, unescape(arg[i+1:]))
	}

	switch {
	case strings.HasSuffix(arg, "&"):
		return target.Reset(strings.TrimSuffix(arg, "&"))
	case strings.HasSuffix(arg, "!"):
		return toggle(target, strings.TrimSuffix(arg, "!"))
	}

	if s, ok := Lookup(arg); ok {
		if s.Type != TypeBool {
			return optionError(arg, fmt.Errorf("%w: %s needs a value", ErrInvalidArgument, s.Name))
		}
		return target.Set(arg, true)
	}
	if name, ok := strings.CutPrefix(arg, "inv"); ok && isBool(name) {
		return toggle(target, name)
	}
	if name, ok := strings.CutPrefix(arg, "no"); ok && isBool(name) {
		return target.Set(name, false)
	}
	return optionError(arg, ErrUnknownOption)
}

func isBool(name string) bool {
	s, ok := Lookup(name)
	return ok && s.Type == TypeBool
}

func toggle(target Target, name string) error {
	s, ok := Lookup(name)
	if !ok {
		return optionError(name, ErrUnknownOption)
	}
	if s.Type != TypeBool {
		return optionError(name, fmt.Errorf("%w: %s is not a boolean", ErrInvalidArgument, s.Name))
	}
	v, err := target.Get(name)
	if err != nil {
		return err
	}
	on, _ := v.(bool)
	return target.Set(name, !on)
}

func assign(target Target, name string, op byte, raw string) error {
	s, ok := Lookup(name)
	if !ok {
		return optionError(name, ErrUnknownOption)
	}

	switch s.Type {
	case TypeBool:
		return optionError(name, fmt.Errorf("%w: %s is a boolean", ErrInvalidArgument, s.Name))

	case TypeInt:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return optionError(name, fmt.Errorf("%w: number required: %q", ErrInvalidArgument, raw))
		}
		if op == '=' {
			return target.Set(name, n)
		}
		v, err := target.Get(name)
		if err != nil {
			return err
		}
		cur, _ := v.(int)
		switch op {
		case '+':
			n = cur + n
		case '-':
			n = cur - n
		case '^':
			n = cur * n
		}
		return target.Set(name, n)

	default:
		if op == '=' {
			return target.Set(name, raw)
		}
		v, err := target.Get(name)
		if err != nil {
			return err
		}
		cur, _ := v.(string)
		return target.Set(name, combine(s.List, op, cur, raw))
	}
}

// combine applies a string operator. List options treat values as
// comma-separated items.
func combine(list bool, op byte, cur, val string) string {
	if !list {
		switch op {
		case '+':
			return cur + val
		case '^':
			return val + cur
		default:
			return strings.Replace(cur, val, "", 1)
		}
	}

	var items []string
	if cur != "" {
		items = strings.Split(cur, ",")
	}
	kept := items[:0:0]
	for _, item := range items {
		if item != val {
			kept = append(kept, item)
		}
	}
	switch op {
	case '+':
		if len(kept) < len(items) {
			return cur
		}
		kept = append(kept, val)
	case '^':
		if len(kept) < len(items) {
			return cur
		}
		kept = append([]string{val}, kept...)
	}
	return strings.Join(kept, ",")
}

func splitArgs(line string) []string {
	var (
		args    []string
		current strings.Builder
		escaped bool
	)
	for _, r := range line {
		switch {
		case escaped:
			current.WriteRune('\\')
			current.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case unicode.IsSpace(r):
			if current.Len() > 0 {
				args = append(args, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(r)
		}
	}
	if escaped {
		current.WriteRune('\\')
	}
	if current.Len() > 0 {
		args = append(args, current.String())
	}
	return args
}

// unescape removes the backslash before each escaped character.
func unescape(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var sb strings.Builder
	escaped := false
	for _, r := range s {
		if r == '\\' && !escaped {
			escaped = true
			continue
		}
		sb.WriteRune(r)
		escaped = false
	}
	if escaped {
		sb.WriteRune('\\')
	}
	return sb.String()
}
