package rosetree

// Map returns a tree of the same shape as t with every value replaced by
// f(value), visiting nodes in depth-first preorder. It is a package function
// rather than a method so the result may hold a different value type.
func Map[V, U comparable](t Tree[V], f func(V) U) Tree[U] {
	if t.root == nil {
		return Tree[U]{}
	}
	return Tree[U]{root: mapNode(t.root, f)}
}

func mapNode[V, U comparable](n *node[V], f func(V) U) *node[U] {
	var kids []*node[U]
	if len(n.children) > 0 {
		kids = make([]*node[U], len(n.children))
		for i, c := range n.children {
			kids[i] = mapNode(c, f)
		}
	}
	// Shape is preserved, so the cached size carries over.
	return &node[U]{value: f(n.value), children: kids, size: n.size}
}

// ReplaceAll returns a tree with every node whose value equals old rewritten
// to carry new. Shape is unchanged, and subtrees containing no occurrence of
// old are shared with t.
func (t Tree[V]) ReplaceAll(old, new V) Tree[V] {
	if t.root == nil || old == new {
		return t
	}
	return Tree[V]{root: replaceValue(t.root, old, new)}
}

func replaceValue[V comparable](n *node[V], old, new V) *node[V] {
	value := n.value
	valueChanged := value == old
	if valueChanged {
		value = new
	}
	kids := n.children
	kidsChanged := false
	for i, c := range n.children {
		rc := replaceValue(c, old, new)
		if rc == c {
			continue
		}
		if !kidsChanged {
			kids = make([]*node[V], len(n.children))
			copy(kids, n.children)
			kidsChanged = true
		}
		kids[i] = rc
	}
	if !valueChanged && !kidsChanged {
		return n
	}
	return &node[V]{value: value, children: kids, size: n.size}
}

// ReplaceChildren returns a tree in which every node whose value equals
// match has its children replaced by the given subtrees, in order. Empty
// subtrees among children are skipped. The replacement children are attached
// as given and are not themselves searched for match; all other nodes are
// searched recursively. Nodes left untouched are shared with t.
func (t Tree[V]) ReplaceChildren(match V, children ...Tree[V]) Tree[V] {
	if t.root == nil {
		return t
	}
	var repl []*node[V]
	for _, c := range children {
		if c.root == nil {
			continue
		}
		repl = append(repl, c.root)
	}
	return Tree[V]{root: replaceKids(t.root, match, repl)}
}

func replaceKids[V comparable](n *node[V], match V, repl []*node[V]) *node[V] {
	if n.value == match {
		// repl may be attached under several matching nodes; that is safe
		// because child slices are never mutated in place.
		return newNode(n.value, repl)
	}
	kids := n.children
	changed := false
	for i, c := range n.children {
		rc := replaceKids(c, match, repl)
		if rc == c {
			continue
		}
		if !changed {
			kids = make([]*node[V], len(n.children))
			copy(kids, n.children)
			changed = true
		}
		kids[i] = rc
	}
	if !changed {
		return n
	}
	return newNode(n.value, kids)
}
