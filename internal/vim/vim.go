package vim

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/dshills/vimcore/internal/config/loader"
	"github.com/dshills/vimcore/internal/config/settings"
	"github.com/dshills/vimcore/internal/engine/buffer"
	"github.com/dshills/vimcore/internal/engine/tracking"
	"github.com/dshills/vimcore/internal/input/keymap"
	"github.com/dshills/vimcore/internal/vim/change"
	"github.com/dshills/vimcore/internal/vim/expr"
	"github.com/dshills/vimcore/internal/vim/mark"
	"github.com/dshills/vimcore/internal/vim/register"
)

// Option configures a Vim.
type Option func(*Vim)

// WithLogger sets the logger handed to every component.
func WithLogger(logger *zap.Logger) Option {
	return func(v *Vim) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// WithClipboard routes the * and + registers through provider.
func WithClipboard(provider register.ClipboardProvider) Option {
	return func(v *Vim) {
		v.clipboard = provider
	}
}

// WithEvaluator replaces the Lua evaluator of the = register.
func WithEvaluator(e expr.Evaluator) Option {
	return func(v *Vim) {
		v.eval = e
	}
}

// Vim holds the state shared by all buffers.
type Vim struct {
	Registers *register.Store
	Marks     *mark.Map
	Settings  *settings.Global
	Keymap    *keymap.Resolver
	Changes   *change.Tracker

	eval      expr.Evaluator
	ownedEval *expr.Lua
	clipboard register.ClipboardProvider
	depthSub  *settings.Subscription
	logger    *zap.Logger

	mu      sync.Mutex
	buffers map[tracking.DocumentID]*Buffer
	current *Buffer
}

// New creates the shared state with every option at its default and no
// mappings.
func New(opts ...Option) *Vim {
	v := &Vim{
		logger:  zap.NewNop(),
		buffers: make(map[tracking.DocumentID]*Buffer),
	}
	for _, opt := range opts {
		opt(v)
	}

	v.Registers = register.NewStore(register.WithClipboard(v.clipboard), register.WithLogger(v.logger))
	v.Marks = mark.NewMap(mark.WithLogger(v.logger))
	v.Settings = settings.NewGlobal(settings.WithLogger(v.logger))
	v.Changes = change.NewTracker(change.WithLogger(v.logger))

	depth, _ := v.Settings.Int(settings.MaxMapDepth)
	v.Keymap = keymap.NewResolver(keymap.WithMaxDepth(depth), keymap.WithLogger(v.logger))
	v.depthSub, _ = v.Settings.SubscribeOption(settings.MaxMapDepth, func(c settings.Change) {
		if n, ok := c.NewValue.(int); ok {
			v.Keymap.SetMaxDepth(n)
		}
	})

	if v.eval == nil {
		v.ownedEval = expr.NewLua(expr.Env{
			Register: v.registerText,
			Option:   v.Settings.Get,
		}, expr.WithLogger(v.logger))
		v.eval = v.ownedEval
	}
	return v
}

// LoadConfig applies a configuration file to the global settings and the
// key mappings.
func (v *Vim) LoadConfig(f *loader.File) error {
	return loader.Apply(f, v.Settings, v.Keymap)
}

// ReloadConfig replaces the global settings and key mappings with those
// of f.
func (v *Vim) ReloadConfig(f *loader.File) error {
	return loader.Replace(f, v.Settings, v.Keymap)
}

// NewBuffer creates a document named name holding text, with local
// settings bound to the global ones.
func (v *Vim) NewBuffer(name, text string) (*Buffer, error) {
	local, err := settings.NewLocal(v.Settings)
	if err != nil {
		return nil, err
	}

	doc := buffer.New(text,
		buffer.WithName(name),
		buffer.WithLogOptions(tracking.WithLogger(v.logger)))
	b := &Buffer{vim: v, doc: doc, local: local}

	v.mu.Lock()
	v.buffers[doc.ID()] = b
	v.mu.Unlock()

	v.logger.Debug("buffer created",
		zap.String("document", string(doc.ID())),
		zap.String("name", name))
	return b, nil
}

// Buffer returns the open buffer with the given document id.
func (v *Vim) Buffer(id tracking.DocumentID) (*Buffer, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	b, ok := v.buffers[id]
	return b, ok
}

// Buffers returns the open buffers sorted by name.
func (v *Vim) Buffers() []*Buffer {
	v.mu.Lock()
	defer v.mu.Unlock()

	result := make([]*Buffer, 0, len(v.buffers))
	for _, b := range v.buffers {
		result = append(result, b)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name() < result[j].Name()
	})
	return result
}

// SetCurrent makes b the current buffer. The % register takes its name
// and # the name of the previous current buffer. A nil b leaves no
// current buffer and clears %.
func (v *Vim) SetCurrent(b *Buffer) {
	v.mu.Lock()
	prev := v.current
	v.current = b
	v.mu.Unlock()

	current, alternate := "", ""
	if b != nil {
		current = b.Name()
	}
	if prev != nil && prev != b {
		alternate = prev.Name()
	}
	v.Registers.SetFileNames(current, alternate)
}

// Current returns the current buffer, or nil.
func (v *Vim) Current() *Buffer {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.current
}

// DefaultRegister returns the register unnamed puts and yanks use, which
// follows the 'clipboard' option: "unnamedplus" selects +, "unnamed"
// selects *.
func (v *Vim) DefaultRegister() register.Name {
	cb, _ := v.Settings.String(settings.Clipboard)
	for _, item := range strings.Split(cb, ",") {
		switch strings.TrimSpace(item) {
		case "unnamedplus":
			return register.Clipboard
		case "unnamed":
			return register.Selection
		}
	}
	return v.Registers.DefaultName()
}

// EvaluateExpression evaluates expr for the = register. The expression is
// kept in the = register; its value is returned.
func (v *Vim) EvaluateExpression(ctx context.Context, expression string) (string, error) {
	if err := v.Registers.Set(register.Expression, expression, register.Characterwise); err != nil {
		return "", err
	}
	result, err := v.eval.Evaluate(ctx, expression)
	if err != nil {
		return "", fmt.Errorf("evaluating %q: %w", expression, err)
	}
	return result, nil
}

// Close closes every buffer and releases the evaluator.
func (v *Vim) Close() {
	for _, b := range v.Buffers() {
		b.Close()
	}
	v.depthSub.Unsubscribe()
	if v.ownedEval != nil {
		v.ownedEval.Close()
	}
}

func (v *Vim) registerText(c rune) (string, bool) {
	name, ok := register.NameOf(c)
	if !ok {
		return "", false
	}
	return v.Registers.Get(name).Text, true
}

func (v *Vim) forget(b *Buffer) {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.buffers, b.ID())
	if v.current == b {
		v.current = nil
	}
}
