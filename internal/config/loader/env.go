package loader

import (
	"os"
	"strconv"
	"strings"
)

// DefaultEnvPrefix prefixes environment variables that set options, as in
// VIMCORE_OPT_SHIFTWIDTH=4.
const DefaultEnvPrefix = "VIMCORE_OPT_"

// EnvLoader loads option values from environment variables.
type EnvLoader struct {
	prefix  string
	environ func() []string
}

// NewEnvLoader creates a new environment variable loader.
// The prefix should include the trailing underscore (e.g., "VIMCORE_OPT_").
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		environ: os.Environ,
	}
}

// NewEnvLoaderWithEnviron creates a loader reading variables from environ
// instead of the process environment.
func NewEnvLoaderWithEnviron(prefix string, environ func() []string) *EnvLoader {
	l := NewEnvLoader(prefix)
	if environ != nil {
		l.environ = environ
	}
	return l
}

// Load returns a File whose Settings hold every prefixed variable, keyed by
// the lowercased remainder of its name. It returns nil when none is set.
// Note: Empty string values are treated as valid values, not as unset.
func (l *EnvLoader) Load() *File {
	settings := make(map[string]any)
	for _, env := range l.environ() {
		name, value, ok := strings.Cut(env, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) {
			continue
		}
		option := strings.ToLower(strings.TrimPrefix(name, l.prefix))
		if option == "" {
			continue
		}
		settings[option] = parseValue(value)
	}
	if len(settings) == 0 {
		return nil
	}
	return &File{Path: "$" + l.prefix + "*", Settings: settings}
}

// parseValue attempts to parse the string value into an appropriate type.
func parseValue(s string) any {
	// Empty string
	if s == "" {
		return s
	}

	// Try bool
	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}

	// Try int
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}

	// Default to string
	return s
}
