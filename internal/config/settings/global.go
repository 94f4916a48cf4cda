package settings

import (
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// Option configures a Global.
type Option func(*Global)

// WithLogger sets the logger used for debug events.
func WithLogger(logger *zap.Logger) Option {
	return func(g *Global) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// Global holds the process-wide value of every option.
type Global struct {
	mu     sync.RWMutex
	values map[string]any

	notifier *notifier
	logger   *zap.Logger
}

// NewGlobal creates global settings with every option at its default.
func NewGlobal(opts ...Option) *Global {
	g := &Global{
		values:   make(map[string]any, len(builtin)),
		notifier: newNotifier(),
		logger:   zap.NewNop(),
	}
	for _, s := range builtin {
		g.values[s.Name] = s.Default
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Get returns the value of the named option.
func (g *Global) Get(name string) (any, error) {
	s, ok := Lookup(name)
	if !ok {
		return nil, optionError(name, ErrUnknownOption)
	}

	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.values[s.Name], nil
}

// Set assigns value to the named option.
func (g *Global) Set(name string, value any) error {
	s, ok := Lookup(name)
	if !ok {
		return optionError(name, ErrUnknownOption)
	}
	v, err := s.Coerce(value)
	if err != nil {
		return optionError(name, err)
	}

	g.mu.Lock()
	old := g.values[s.Name]
	g.values[s.Name] = v
	g.mu.Unlock()

	g.logger.Debug("option set",
		zap.String("option", s.Name),
		zap.Any("old", old),
		zap.Any("new", v))
	g.notifier.notify(Change{Name: s.Name, Type: ChangeSet, OldValue: old, NewValue: v})
	return nil
}

// Reset restores the named option to its default.
func (g *Global) Reset(name string) error {
	s, ok := Lookup(name)
	if !ok {
		return optionError(name, ErrUnknownOption)
	}

	g.mu.Lock()
	old := g.values[s.Name]
	g.values[s.Name] = s.Default
	g.mu.Unlock()

	g.logger.Debug("option reset", zap.String("option", s.Name))
	g.notifier.notify(Change{Name: s.Name, Type: ChangeReset, OldValue: old, NewValue: s.Default})
	return nil
}

// Bool returns the value of a boolean option.
func (g *Global) Bool(name string) (bool, error) {
	return getBool(g, name)
}

// Int returns the value of a number option.
func (g *Global) Int(name string) (int, error) {
	return getInt(g, name)
}

// String returns the value of a string option.
func (g *Global) String(name string) (string, error) {
	return getString(g, name)
}

// Values returns the current value of every option keyed by full name.
func (g *Global) Values() map[string]any {
	g.mu.RLock()
	defer g.mu.RUnlock()

	result := make(map[string]any, len(g.values))
	for name, v := range g.values {
		result[name] = v
	}
	return result
}

// Changed returns the names of options whose value differs from the
// default, sorted.
func (g *Global) Changed() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var names []string
	for _, s := range builtin {
		if g.values[s.Name] != s.Default {
			names = append(names, s.Name)
		}
	}
	sort.Strings(names)
	return names
}

// Subscribe registers an observer for every option change.
func (g *Global) Subscribe(observer Observer) *Subscription {
	return g.notifier.subscribe("", observer)
}

// SubscribeOption registers an observer for changes to one option.
func (g *Global) SubscribeOption(name string, observer Observer) (*Subscription, error) {
	s, ok := Lookup(name)
	if !ok {
		return nil, optionError(name, ErrUnknownOption)
	}
	return g.notifier.subscribe(s.Name, observer), nil
}

// getter is the read side shared by Global and Local.
type getter interface {
	Get(name string) (any, error)
}

func getBool(src getter, name string) (bool, error) {
	v, err := src.Get(name)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, optionError(name, fmt.Errorf("%w: %s is %T", ErrTypeMismatch, name, v))
	}
	return b, nil
}

func getInt(src getter, name string) (int, error) {
	v, err := src.Get(name)
	if err != nil {
		return 0, err
	}
	n, ok := v.(int)
	if !ok {
		return 0, optionError(name, fmt.Errorf("%w: %s is %T", ErrTypeMismatch, name, v))
	}
	return n, nil
}

func getString(src getter, name string) (string, error) {
	v, err := src.Get(name)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", optionError(name, fmt.Errorf("%w: %s is %T", ErrTypeMismatch, name, v))
	}
	return s, nil
}
