package rosetree

// The insertion family places a new subtree next to or under the focus
// without moving it: after the insert, the zipper still focuses the same
// node, with the new subtree recorded in the surrounding context. Inserting
// an empty tree is a no-op everywhere; a well-formed tree holds no absent
// nodes.

// InsertLeft inserts t as the sibling immediately before the focus. The
// focus is unchanged. At the root it fails with ErrNoParent: a sibling
// needs a parent to hang from.
func (z Zipper[V]) InsertLeft(t Tree[V]) (Zipper[V], error) {
	c := z.crumbs
	if c == nil {
		return Zipper[V]{}, ErrNoParent
	}
	if t.root == nil {
		return z, nil
	}
	left := make([]*node[V], 0, len(c.left)+1)
	left = append(left, t.root)
	left = append(left, c.left...)
	return Zipper[V]{
		focus: z.focus,
		crumbs: &crumb[V]{
			parent: c.parent,
			left:   left,
			right:  c.right,
			prev:   c.prev,
		},
	}, nil
}

// InsertRight inserts t as the sibling immediately after the focus. The
// focus is unchanged. At the root it fails with ErrNoParent.
func (z Zipper[V]) InsertRight(t Tree[V]) (Zipper[V], error) {
	c := z.crumbs
	if c == nil {
		return Zipper[V]{}, ErrNoParent
	}
	if t.root == nil {
		return z, nil
	}
	right := make([]*node[V], 0, len(c.right)+1)
	right = append(right, t.root)
	right = append(right, c.right...)
	return Zipper[V]{
		focus: z.focus,
		crumbs: &crumb[V]{
			parent: c.parent,
			left:   c.left,
			right:  right,
			prev:   c.prev,
		},
	}, nil
}

// InsertFirstChild inserts t as the new first child of the focus, before any
// existing children. The focus stays on the (rebuilt) current node. On an
// empty focus there is no node to attach under, so the zipper is returned
// unchanged.
func (z Zipper[V]) InsertFirstChild(t Tree[V]) Zipper[V] {
	n := z.focus.root
	if n == nil || t.root == nil {
		return z
	}
	kids := make([]*node[V], 0, len(n.children)+1)
	kids = append(kids, t.root)
	kids = append(kids, n.children...)
	return Zipper[V]{focus: Tree[V]{root: newNode(n.value, kids)}, crumbs: z.crumbs}
}

// InsertLastChild inserts t as the new last child of the focus, after any
// existing children. The focus stays on the (rebuilt) current node. On an
// empty focus the zipper is returned unchanged.
func (z Zipper[V]) InsertLastChild(t Tree[V]) Zipper[V] {
	n := z.focus.root
	if n == nil || t.root == nil {
		return z
	}
	kids := make([]*node[V], 0, len(n.children)+1)
	kids = append(kids, n.children...)
	kids = append(kids, t.root)
	return Zipper[V]{focus: Tree[V]{root: newNode(n.value, kids)}, crumbs: z.crumbs}
}

// InsertNthChild inserts t among the focus's children so it ends up at
// index idx, shifting later children right. Valid indexes run from 0
// through the current child count inclusive; anything else fails with
// ErrBadIndex. The focus stays on the (rebuilt) current node. On an empty
// focus only idx 0 is valid, and inserting is still a no-op because there
// is no node to attach under.
func (z Zipper[V]) InsertNthChild(idx int, t Tree[V]) (Zipper[V], error) {
	n := z.focus.root
	count := 0
	if n != nil {
		count = len(n.children)
	}
	if idx < 0 || idx > count {
		return Zipper[V]{}, ErrBadIndex
	}
	if n == nil || t.root == nil {
		return z, nil
	}
	kids := make([]*node[V], 0, count+1)
	kids = append(kids, n.children[:idx]...)
	kids = append(kids, t.root)
	kids = append(kids, n.children[idx:]...)
	return Zipper[V]{focus: Tree[V]{root: newNode(n.value, kids)}, crumbs: z.crumbs}, nil
}
