package rosetree

import "iter"

// Len returns the total number of nodes in the tree. Counts are cached per
// subtree at construction, so this is O(1).
func (t Tree[V]) Len() int {
	if t.root == nil {
		return 0
	}
	return t.root.size
}

// Contains reports whether any node in the tree carries v.
func (t Tree[V]) Contains(v V) bool {
	for val := range t.All() {
		if val == v {
			return true
		}
	}
	return false
}

// All returns an iterator over every value in the tree in depth-first
// preorder: a node is yielded before its children, children in order. The
// walk is lazy; breaking out of the range stops it early. Ranging over the
// sequence again restarts from the root.
func (t Tree[V]) All() iter.Seq[V] {
	return func(yield func(V) bool) {
		if t.root == nil {
			return
		}
		stack := []*node[V]{t.root}
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !yield(n.value) {
				return
			}
			// Push right-to-left so children pop in order.
			for i := len(n.children) - 1; i >= 0; i-- {
				stack = append(stack, n.children[i])
			}
		}
	}
}

// Nodes is like All but yields each node as a subtree handle, so callers can
// inspect children or fan out further without re-walking from the root.
func (t Tree[V]) Nodes() iter.Seq[Tree[V]] {
	return func(yield func(Tree[V]) bool) {
		if t.root == nil {
			return
		}
		stack := []*node[V]{t.root}
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !yield(Tree[V]{root: n}) {
				return
			}
			for i := len(n.children) - 1; i >= 0; i-- {
				stack = append(stack, n.children[i])
			}
		}
	}
}

// Flatten returns every value in the tree in depth-first preorder as a
// slice. The empty tree flattens to nil. len(t.Flatten()) == t.Len().
func (t Tree[V]) Flatten() []V {
	if t.root == nil {
		return nil
	}
	vals := make([]V, 0, t.root.size)
	return appendValues(t.root, vals)
}

func appendValues[V comparable](n *node[V], vals []V) []V {
	vals = append(vals, n.value)
	for _, c := range n.children {
		vals = appendValues(c, vals)
	}
	return vals
}

// Paths returns every root-to-leaf path in the tree, leftmost path first.
// Each path lists the values from the root down to one leaf. A single-node
// tree has exactly one path holding just the root value; the empty tree has
// none.
func (t Tree[V]) Paths() [][]V {
	if t.root == nil {
		return nil
	}
	return appendPaths(t.root, nil, nil)
}

// appendPaths extends prefix with n and collects completed paths into out.
// The prefix backing array is reused across siblings, so each finished path
// is copied out before backtracking.
func appendPaths[V comparable](n *node[V], prefix []V, out [][]V) [][]V {
	prefix = append(prefix, n.value)
	if len(n.children) == 0 {
		path := make([]V, len(prefix))
		copy(path, prefix)
		return append(out, path)
	}
	for _, c := range n.children {
		out = appendPaths(c, prefix, out)
	}
	return out
}
