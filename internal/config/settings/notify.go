package settings

import "sync"

// ChangeType represents the type of option change.
type ChangeType int

const (
	// ChangeSet indicates a value was set.
	ChangeSet ChangeType = iota

	// ChangeReset indicates a value was restored to its default.
	ChangeReset
)

// String returns the change type name.
func (c ChangeType) String() string {
	switch c {
	case ChangeSet:
		return "set"
	case ChangeReset:
		return "reset"
	default:
		return "unknown"
	}
}

// Change describes one update of a Global option.
type Change struct {
	// Name is the full option name.
	Name string

	// Type is the type of change.
	Type ChangeType

	// OldValue is the previous value.
	OldValue any

	// NewValue is the value now in effect.
	NewValue any
}

// Observer is called after an option changes.
type Observer func(change Change)

// Subscription represents an active observer subscription.
type Subscription struct {
	id       uint64
	notifier *notifier
}

// Unsubscribe removes this subscription. It is safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if s != nil && s.notifier != nil {
		s.notifier.unsubscribe(s.id)
	}
}

// notifier delivers changes synchronously, outside the settings lock.
type notifier struct {
	mu sync.RWMutex

	// observers of every option
	all map[uint64]Observer

	// observers of one option, keyed by full name
	named map[string]map[uint64]Observer

	nextID uint64
}

func newNotifier() *notifier {
	return &notifier{
		all:   make(map[uint64]Observer),
		named: make(map[string]map[uint64]Observer),
	}
}

func (n *notifier) subscribe(name string, observer Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++

	if name == "" {
		n.all[id] = observer
	} else {
		if n.named[name] == nil {
			n.named[name] = make(map[uint64]Observer)
		}
		n.named[name][id] = observer
	}
	return &Subscription{id: id, notifier: n}
}

func (n *notifier) unsubscribe(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	delete(n.all, id)
	for name, observers := range n.named {
		delete(observers, id)
		if len(observers) == 0 {
			delete(n.named, name)
		}
	}
}

func (n *notifier) notify(change Change) {
	n.mu.RLock()
	observers := make([]Observer, 0, len(n.all)+len(n.named[change.Name]))
	for _, obs := range n.all {
		observers = append(observers, obs)
	}
	for _, obs := range n.named[change.Name] {
		observers = append(observers, obs)
	}
	n.mu.RUnlock()

	// Call observers outside the lock
	for _, obs := range observers {
		obs(change)
	}
}
