package settings

import (
	"fmt"
	"sort"
	"sync"
)

// Local holds the per-document overrides of one document. Every option it
// does not override is read from its Global.
type Local struct {
	global *Global

	mu        sync.RWMutex
	overrides map[string]any
}

// NewLocal creates local settings bound to global.
func NewLocal(global *Global) (*Local, error) {
	if global == nil {
		return nil, ErrNoGlobal
	}
	return &Local{
		global:    global,
		overrides: make(map[string]any),
	}, nil
}

// Global returns the settings this Local falls back to.
func (l *Local) Global() *Global {
	return l.global
}

// Get returns the local override of the named option, or the global value
// when there is none.
func (l *Local) Get(name string) (any, error) {
	s, ok := Lookup(name)
	if !ok {
		return nil, optionError(name, ErrUnknownOption)
	}

	l.mu.RLock()
	v, ok := l.overrides[s.Name]
	l.mu.RUnlock()
	if ok {
		return v, nil
	}
	return l.global.Get(s.Name)
}

// Set overrides the named option for this document. The Global is never
// modified.
func (l *Local) Set(name string, value any) error {
	s, ok := Lookup(name)
	if !ok {
		return optionError(name, ErrUnknownOption)
	}
	if s.Scope != ScopeLocal {
		return optionError(name, fmt.Errorf("%w: %s", ErrGlobalOnly, s.Name))
	}
	v, err := s.Coerce(value)
	if err != nil {
		return optionError(name, err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.overrides[s.Name] = v
	return nil
}

// Reset removes the local override so the option reads through to the
// Global again.
func (l *Local) Reset(name string) error {
	s, ok := Lookup(name)
	if !ok {
		return optionError(name, ErrUnknownOption)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.overrides, s.Name)
	return nil
}

// IsOverridden reports whether the named option has a local override.
func (l *Local) IsOverridden(name string) bool {
	s, ok := Lookup(name)
	if !ok {
		return false
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok = l.overrides[s.Name]
	return ok
}

// Overrides returns the names of the overridden options, sorted.
func (l *Local) Overrides() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	names := make([]string, 0, len(l.overrides))
	for name := range l.overrides {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Bool returns the effective value of a boolean option.
func (l *Local) Bool(name string) (bool, error) {
	return getBool(l, name)
}

// Int returns the effective value of a number option.
func (l *Local) Int(name string) (int, error) {
	return getInt(l, name)
}

// String returns the effective value of a string option.
func (l *Local) String(name string) (string, error) {
	return getString(l, name)
}
