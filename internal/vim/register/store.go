package register

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Option configures a Store.
type Option func(*Store)

// WithClipboard routes the * and + registers through provider.
func WithClipboard(provider ClipboardProvider) Option {
	return func(s *Store) {
		s.clipboard = provider
	}
}

// WithLogger sets the logger used for clipboard failures and debug events.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Store holds the content of every register. It is shared by all
// documents; reads may run concurrently, writes take an exclusive lock.
type Store struct {
	mu    sync.RWMutex
	cells [Count + 1]Value

	clipboard ClipboardProvider
	logger    *zap.Logger
}

// NewStore creates a store with every register empty.
func NewStore(opts ...Option) *Store {
	s := &Store{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetClipboard replaces the clipboard provider. nil disables it.
func (s *Store) SetClipboard(provider ClipboardProvider) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clipboard = provider
}

// Get returns the register's content. It never fails: unwritten and
// invalid names read as empty characterwise text. A-Z read their
// lowercase sibling.
func (s *Store) Get(name Name) Register {
	if !name.Valid() {
		return Register{Name: name}
	}

	s.mu.RLock()
	v := s.cells[name.storage()]
	provider := s.clipboard
	s.mu.RUnlock()

	if provider != nil && isClipboard(name) {
		text, err := provider.Get()
		if err != nil {
			s.logger.Warn("clipboard read failed, using stored register",
				zap.Stringer("register", name), zap.Error(err))
		} else if text != v.Text {
			v = Value{Text: text, Kind: guessKind(text)}
		}
	}
	return Register{Name: name, Value: v}
}

// Set replaces the register's content. Writing A-Z appends text to the
// lowercase sibling and gives the result kind.
//
// For * and + the value is stored and also handed to the clipboard
// provider; a provider failure is returned wrapped in ErrClipboard, the
// stored value is kept.
func (s *Store) Set(name Name, text string, kind Kind) error {
	if !name.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidName, uint8(name))
	}

	s.mu.Lock()
	cell := &s.cells[name.storage()]
	if name.IsAppend() {
		cell.Text += text
	} else {
		cell.Text = text
	}
	cell.Kind = kind
	provider := s.clipboard
	s.mu.Unlock()

	if provider != nil && isClipboard(name) {
		if err := provider.Set(text); err != nil {
			s.logger.Warn("clipboard write failed, value kept in register",
				zap.Stringer("register", name), zap.Error(err))
			return fmt.Errorf("%w: %w", ErrClipboard, err)
		}
	}
	return nil
}

// DefaultName returns the unnamed register's name.
func (s *Store) DefaultName() Name {
	return Unnamed
}

// Default returns the unnamed register. It is the same cell as Get(Unnamed).
func (s *Store) Default() Register {
	return s.Get(Unnamed)
}

// SetDefault writes the unnamed register.
func (s *Store) SetDefault(text string, kind Kind) {
	// Unnamed is always valid and never a clipboard register.
	_ = s.Set(Unnamed, text, kind)
}

// Clear empties the register. Clearing A-Z clears the lowercase sibling.
func (s *Store) Clear(name Name) {
	if !name.Valid() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cells[name.storage()] = Value{}
}

// Snapshot returns every non-empty register in All order, for a
// :registers listing. A-Z are omitted since they mirror a-z.
func (s *Store) Snapshot() []Register {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var regs []Register
	for _, name := range All() {
		if name.IsAppend() {
			continue
		}
		if v := s.cells[name]; !v.IsEmpty() {
			regs = append(regs, Register{Name: name, Value: v})
		}
	}
	return regs
}

// SetYank records a yank in register 0 and the unnamed register.
func (s *Store) SetYank(text string, kind Kind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := Value{Text: text, Kind: kind}
	s.cells[LastYank] = v
	s.cells[Unnamed] = v
}

// SetLastInserted updates the . register.
func (s *Store) SetLastInserted(text string) {
	s.setSpecial(LastInserted, text)
}

// SetLastSearch updates the / register.
func (s *Store) SetLastSearch(pattern string) {
	s.setSpecial(LastSearch, pattern)
}

// SetLastCommand updates the : register.
func (s *Store) SetLastCommand(cmd string) {
	s.setSpecial(LastCommand, cmd)
}

// SetFileNames updates the % and # registers.
func (s *Store) SetFileNames(current, alternate string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cells[FileName] = Value{Text: current}
	s.cells[AlternateFile] = Value{Text: alternate}
}

func (s *Store) setSpecial(name Name, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cells[name] = Value{Text: text}
}

func isClipboard(name Name) bool {
	return name == Selection || name == Clipboard
}

// guessKind classifies text that arrived from outside the store.
func guessKind(text string) Kind {
	if strings.HasSuffix(text, "\n") {
		return Linewise
	}
	return Characterwise
}
