package keymap

import (
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/dshills/vimcore/internal/input/key"
)

// DefaultMaxDepth is Vim's default 'maxmapdepth'.
const DefaultMaxDepth = 1000

// Rule maps one key sequence to another within a mode.
type Rule struct {
	Mode      Mode
	From      *key.Sequence
	To        *key.Sequence
	Recursive bool

	// order is the registration sequence number.
	order uint64
}

// String returns the rule in :map notation.
func (r Rule) String() string {
	cmd := "noremap"
	if r.Recursive {
		cmd = "map"
	}
	return fmt.Sprintf("%s(%s) %s %s", cmd, r.Mode, r.From, r.To)
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithMaxDepth sets the expansion depth limit: the number of rules that
// may be applied in a chain, each to a key produced by the previous one.
func WithMaxDepth(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.maxDepth = n
		}
	}
}

// WithLogger sets the logger used for debug events.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Resolver holds mapping rules for every mode and rewrites key sequences
// through them. Reads are safe for concurrent use; writes take an
// exclusive lock.
type Resolver struct {
	mu sync.RWMutex

	trees     [numModes]*prefixTree
	nextOrder uint64
	maxDepth  int

	logger *zap.Logger
}

// NewResolver creates an empty resolver.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		maxDepth: DefaultMaxDepth,
		logger:   zap.NewNop(),
	}
	for i := range r.trees {
		r.trees[i] = newPrefixTree()
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// MaxDepth returns the current expansion depth limit.
func (r *Resolver) MaxDepth() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.maxDepth
}

// SetMaxDepth changes the expansion depth limit. Values below 1 are ignored.
func (r *Resolver) SetMaxDepth(n int) {
	if n < 1 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.maxDepth = n
}

// AddMapping parses from and to as Vim key notation and registers the rule.
func (r *Resolver) AddMapping(mode Mode, from, to string, recursive bool) error {
	fromSeq, err := key.ParseSequence(from)
	if err != nil {
		return fmt.Errorf("parsing lhs %q: %w", from, err)
	}
	toSeq, err := key.ParseSequence(to)
	if err != nil {
		return fmt.Errorf("parsing rhs %q: %w", to, err)
	}
	return r.AddRule(Rule{Mode: mode, From: fromSeq, To: toSeq, Recursive: recursive})
}

// AddRule registers rule. A rule with the same mode and From replaces the
// existing one and moves to the end of the registration order.
func (r *Resolver) AddRule(rule Rule) error {
	if !rule.Mode.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownMode, rule.Mode)
	}
	if rule.From.IsEmpty() {
		return ErrEmptyMapping
	}

	rule.From = rule.From.Clone()
	rule.To = rule.To.Clone()
	if rule.To == nil {
		rule.To = key.NewSequence()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextOrder++
	rule.order = r.nextOrder
	if old := r.trees[rule.Mode].insert(&rule); old != nil {
		r.logger.Debug("mapping replaced",
			zap.Stringer("mode", rule.Mode),
			zap.Stringer("from", rule.From),
			zap.Stringer("old", old.To),
			zap.Stringer("new", rule.To))
	}
	return nil
}

// RemoveMapping deletes the rule for from in mode. It reports whether a
// rule was removed.
func (r *Resolver) RemoveMapping(mode Mode, from string) bool {
	seq, err := key.ParseSequence(from)
	if err != nil || !mode.Valid() {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.trees[mode].remove(seq) != nil
}

// Clear removes every rule of mode.
func (r *Resolver) Clear(mode Mode) {
	if !mode.Valid() {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.trees[mode] = newPrefixTree()
}

// Len returns the number of rules in mode.
func (r *Resolver) Len(mode Mode) int {
	if !mode.Valid() {
		return 0
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.trees[mode].size
}

// Rules returns copies of the rules of mode in registration order.
func (r *Resolver) Rules(mode Mode) []Rule {
	if !mode.Valid() {
		return nil
	}

	r.mu.RLock()
	var rules []Rule
	r.trees[mode].walk(func(rule *Rule) {
		rules = append(rules, *rule)
	})
	r.mu.RUnlock()

	sort.Slice(rules, func(i, j int) bool {
		return rules[i].order < rules[j].order
	})
	return rules
}

// Lookup returns the rule registered for exactly from in mode.
func (r *Resolver) Lookup(mode Mode, from string) (Rule, bool) {
	seq, err := key.ParseSequence(from)
	if err != nil || !mode.Valid() || seq.IsEmpty() {
		return Rule{}, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	node := r.trees[mode].find(seq)
	if node == nil || node.rule == nil {
		return Rule{}, false
	}
	return *node.rule, true
}

// IsPrefix reports whether seq is a strict prefix of some rule's From in
// mode, meaning more keys could still complete a mapping.
func (r *Resolver) IsPrefix(mode Mode, seq *key.Sequence) bool {
	if !mode.Valid() {
		return false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	node := r.trees[mode].find(seq)
	return node != nil && len(node.children) > 0
}

// pendingKey is one key of the typeahead being resolved.
type pendingKey struct {
	event key.Event

	// noremap keys are emitted without lookup.
	noremap bool

	// input marks keys taken from the caller's sequence rather than
	// produced by an expansion; src is their index in it.
	input bool
	src   int

	// depth is the number of rule applications that produced the key.
	depth int
}

// Resolve rewrites in through the rules of mode. A rule applied to keys
// produced by n earlier rules is at depth n+1; going past the depth limit
// is a cycle. Sibling keys of one expansion do not add to each other's
// depth. On ErrMappingCycle the
// returned sequence holds the output produced before the key that started
// the cycle followed by the remaining input unchanged.
func (r *Resolver) Resolve(mode Mode, in *key.Sequence) (*key.Sequence, error) {
	out := key.NewSequence()
	if in.IsEmpty() {
		return out, nil
	}
	if !mode.Valid() {
		return in.Clone(), fmt.Errorf("%w: %d", ErrUnknownMode, mode)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	tree := r.trees[mode]
	pending := make([]pendingKey, in.Len())
	for i, ev := range in.Events {
		pending[i] = pendingKey{event: ev, input: true, src: i}
	}

	var chainSrc, chainOut int
	for len(pending) > 0 {
		head := pending[0]
		if head.input {
			chainSrc, chainOut = head.src, out.Len()
		}

		var rule *Rule
		var n int
		if tree.size > 0 {
			rule, n = tree.longest(pending)
		}
		if rule == nil {
			out.Add(head.event)
			pending = pending[1:]
			continue
		}

		depth := 0
		for _, pk := range pending[:n] {
			depth = max(depth, pk.depth)
		}
		if depth >= r.maxDepth {
			r.logger.Debug("mapping cycle",
				zap.Stringer("mode", mode),
				zap.Stringer("from", rule.From),
				zap.Int("depth", depth))
			fallback := out.Head(chainOut).Append(in.Tail(chainSrc))
			return fallback, fmt.Errorf("%w: %s in %s mode", ErrMappingCycle, rule.From, mode)
		}

		pending = append(r.expand(rule, chainSrc, depth+1), pending[n:]...)
	}
	return out, nil
}

// expand produces the pending keys for one application of rule.
func (r *Resolver) expand(rule *Rule, src, depth int) []pendingKey {
	keep := 0
	if rule.Recursive && rule.To.HasPrefix(rule.From) {
		keep = rule.From.Len()
	}

	keys := make([]pendingKey, rule.To.Len())
	for i, ev := range rule.To.Events {
		keys[i] = pendingKey{
			event:   ev,
			noremap: !rule.Recursive || i < keep,
			src:     src,
			depth:   depth,
		}
	}
	return keys
}

// ResolveString parses s as Vim key notation, resolves it and formats the
// result back into notation.
func (r *Resolver) ResolveString(mode Mode, s string) (string, error) {
	in, err := key.ParseSequence(s)
	if err != nil {
		return "", err
	}
	out, err := r.Resolve(mode, in)
	return out.String(), err
}
