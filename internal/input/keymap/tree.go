package keymap

import "github.com/dshills/vimcore/internal/input/key"

// prefixTree indexes the rules of one mode by their From sequence.
type prefixTree struct {
	root *prefixNode
	size int
}

type prefixNode struct {
	children map[key.Event]*prefixNode
	rule     *Rule
}

func newPrefixTree() *prefixTree {
	return &prefixTree{root: newPrefixNode()}
}

func newPrefixNode() *prefixNode {
	return &prefixNode{children: make(map[key.Event]*prefixNode)}
}

// insert stores rule under its From sequence and returns the rule it
// replaced, if any.
func (t *prefixTree) insert(rule *Rule) *Rule {
	node := t.root
	for _, ev := range rule.From.Events {
		child, ok := node.children[ev]
		if !ok {
			child = newPrefixNode()
			node.children[ev] = child
		}
		node = child
	}

	old := node.rule
	node.rule = rule
	if old == nil {
		t.size++
	}
	return old
}

// remove deletes the rule stored under seq, pruning empty nodes.
func (t *prefixTree) remove(seq *key.Sequence) *Rule {
	path := make([]*prefixNode, 0, seq.Len()+1)
	path = append(path, t.root)

	node := t.root
	for _, ev := range seq.Events {
		child, ok := node.children[ev]
		if !ok {
			return nil
		}
		path = append(path, child)
		node = child
	}

	old := node.rule
	if old == nil {
		return nil
	}
	node.rule = nil
	t.size--

	for i := len(path) - 1; i > 0; i-- {
		current := path[i]
		if current.rule != nil || len(current.children) > 0 {
			break
		}
		delete(path[i-1].children, seq.Events[i-1])
	}
	return old
}

// find returns the node reached by following seq, or nil.
func (t *prefixTree) find(seq *key.Sequence) *prefixNode {
	node := t.root
	if seq.IsEmpty() {
		return node
	}
	for _, ev := range seq.Events {
		child, ok := node.children[ev]
		if !ok {
			return nil
		}
		node = child
	}
	return node
}

// longest returns the rule with the longest From that prefixes the
// remappable head of pending, and the number of keys it covers.
func (t *prefixTree) longest(pending []pendingKey) (*Rule, int) {
	var best *Rule
	var n int

	node := t.root
	for i, pk := range pending {
		if pk.noremap {
			break
		}
		child, ok := node.children[pk.event]
		if !ok {
			break
		}
		node = child
		if node.rule != nil {
			best, n = node.rule, i+1
		}
	}
	return best, n
}

// walk calls fn for every rule in the tree.
func (t *prefixTree) walk(fn func(*Rule)) {
	var visit func(*prefixNode)
	visit = func(node *prefixNode) {
		if node.rule != nil {
			fn(node.rule)
		}
		for _, child := range node.children {
			visit(child)
		}
	}
	visit(t.root)
}
