package rosetree

// Zipper is a cursor into a Tree: the focused subtree plus the breadcrumb
// trail needed to rebuild everything above and beside it. Zippers are
// immutable values like the trees they walk; every navigation or editing
// step returns a new Zipper and leaves the old one usable. The zero Zipper
// focuses the empty tree.
//
// Fallible steps return the zero Zipper alongside the error, so a failed
// move can never be mistaken for a position.
type Zipper[V comparable] struct {
	focus  Tree[V]
	crumbs *crumb[V]
}

// crumb records what was peeled away when descending from a parent into one
// of its children: the parent's value and the siblings on either side of the
// focus. left holds the preceding siblings nearest-first, right holds the
// following siblings in original order, so
//
//	reverse(left) ++ [focus] ++ right
//
// is always exactly the parent's original child sequence. Crumbs form a
// linked stack; sharing the tail keeps old zippers valid for free.
type crumb[V comparable] struct {
	parent V
	left   []*node[V]
	right  []*node[V]
	prev   *crumb[V]
}

// Step is one fallible zipper move, the shape shared by Descend, Ascend,
// sibling moves and the insertion family. Steps compose with Walk.
type Step[V comparable] func(Zipper[V]) (Zipper[V], error)

// FromTree returns a zipper focused on the root of t.
func FromTree[V comparable](t Tree[V]) Zipper[V] {
	return Zipper[V]{focus: t}
}

// Focus returns the subtree under the cursor, discarding the context above
// it. At the root this is the whole tree.
func (z Zipper[V]) Focus() Tree[V] {
	return z.focus
}

// Root rebuilds and returns the complete tree, including every edit made
// through the zipper. The zipper itself is unaffected.
func (z Zipper[V]) Root() Tree[V] {
	for z.crumbs != nil {
		z, _ = z.Ascend()
	}
	return z.focus
}

// Descend moves the focus to the child at idx, counting from zero. A focus
// without children fails with ErrNoChildren whatever the index. On a focus
// with children, an index past the last child fails with ErrNoNextSibling:
// descending lands on the first child and walks siblings rightward, so
// running out of children is running out of siblings. A negative index
// fails with ErrBadIndex.
func (z Zipper[V]) Descend(idx int) (Zipper[V], error) {
	if idx < 0 {
		return Zipper[V]{}, ErrBadIndex
	}
	n := z.focus.root
	if n == nil || len(n.children) == 0 {
		return Zipper[V]{}, ErrNoChildren
	}
	if idx >= len(n.children) {
		return Zipper[V]{}, ErrNoNextSibling
	}
	return z.splitAt(idx), nil
}

// splitAt builds the zipper for child idx of the focus. The caller
// guarantees the focus has children and idx is in range.
func (z Zipper[V]) splitAt(idx int) Zipper[V] {
	n := z.focus.root
	var left []*node[V]
	if idx > 0 {
		left = make([]*node[V], 0, idx)
		for i := idx - 1; i >= 0; i-- {
			left = append(left, n.children[i])
		}
	}
	return Zipper[V]{
		focus: Tree[V]{root: n.children[idx]},
		crumbs: &crumb[V]{
			parent: n.value,
			left:   left,
			right:  n.children[idx+1:],
			prev:   z.crumbs,
		},
	}
}

// FirstChild moves the focus to the first child. It fails with
// ErrNoChildren on a leaf or empty focus.
func (z Zipper[V]) FirstChild() (Zipper[V], error) {
	return z.Descend(0)
}

// LastChild moves the focus to the last child. It fails with ErrNoChildren
// on a leaf or empty focus.
func (z Zipper[V]) LastChild() (Zipper[V], error) {
	n := z.focus.root
	if n == nil || len(n.children) == 0 {
		return Zipper[V]{}, ErrNoChildren
	}
	return z.splitAt(len(n.children) - 1), nil
}

// Ascend moves the focus to the parent, reassembling it from the top crumb
// with the (possibly edited) focus slotted back between its siblings. At
// the root it fails with ErrNoParent.
func (z Zipper[V]) Ascend() (Zipper[V], error) {
	c := z.crumbs
	if c == nil {
		return Zipper[V]{}, ErrNoParent
	}
	kids := make([]*node[V], 0, len(c.left)+len(c.right)+1)
	for i := len(c.left) - 1; i >= 0; i-- {
		kids = append(kids, c.left[i])
	}
	kids = append(kids, z.focus.root)
	kids = append(kids, c.right...)
	return Zipper[V]{
		focus:  Tree[V]{root: newNode(c.parent, kids)},
		crumbs: c.prev,
	}, nil
}

// ToLeaf descends along first children until the focus is a leaf. Starting
// on a leaf (or the empty tree) it returns the zipper unchanged.
func (z Zipper[V]) ToLeaf() Zipper[V] {
	for {
		down, err := z.Descend(0)
		if err != nil {
			return z
		}
		z = down
	}
}

// NextSibling moves the focus to the sibling immediately to its right. The
// root fails with ErrNoSiblings; the last child of its parent fails with
// ErrNoNextSibling.
func (z Zipper[V]) NextSibling() (Zipper[V], error) {
	c := z.crumbs
	if c == nil {
		return Zipper[V]{}, ErrNoSiblings
	}
	if len(c.right) == 0 {
		return Zipper[V]{}, ErrNoNextSibling
	}
	left := make([]*node[V], 0, len(c.left)+1)
	left = append(left, z.focus.root)
	left = append(left, c.left...)
	return Zipper[V]{
		focus: Tree[V]{root: c.right[0]},
		crumbs: &crumb[V]{
			parent: c.parent,
			left:   left,
			right:  c.right[1:],
			prev:   c.prev,
		},
	}, nil
}

// PrevSibling moves the focus to the sibling immediately to its left. The
// root fails with ErrNoSiblings; the first child of its parent fails with
// ErrNoPrevSibling.
func (z Zipper[V]) PrevSibling() (Zipper[V], error) {
	c := z.crumbs
	if c == nil {
		return Zipper[V]{}, ErrNoSiblings
	}
	if len(c.left) == 0 {
		return Zipper[V]{}, ErrNoPrevSibling
	}
	right := make([]*node[V], 0, len(c.right)+1)
	right = append(right, z.focus.root)
	right = append(right, c.right...)
	return Zipper[V]{
		focus: Tree[V]{root: c.left[0]},
		crumbs: &crumb[V]{
			parent: c.parent,
			left:   c.left[1:],
			right:  right,
			prev:   c.prev,
		},
	}, nil
}

// FindChild moves the focus to the first direct child satisfying pred,
// scanning left to right. It fails with ErrNoChildMatch when no child does,
// including on a leaf or empty focus.
func (z Zipper[V]) FindChild(pred func(Tree[V]) bool) (Zipper[V], error) {
	n := z.focus.root
	if n != nil {
		for i, c := range n.children {
			if pred(Tree[V]{root: c}) {
				return z.splitAt(i), nil
			}
		}
	}
	return Zipper[V]{}, ErrNoChildMatch
}

// Modify rewrites the focused node's value with f, keeping its children and
// the context around it. On an empty focus it is a no-op.
func (z Zipper[V]) Modify(f func(V) V) Zipper[V] {
	n := z.focus.root
	if n == nil {
		return z
	}
	nn := &node[V]{value: f(n.value), children: n.children, size: n.size}
	return Zipper[V]{focus: Tree[V]{root: nn}, crumbs: z.crumbs}
}

// Prune deletes the focused subtree and moves the focus to its parent,
// rebuilt with the remaining children in their original relative order.
// Pruning the root fails with ErrNoParent: removing it would leave nothing
// to focus.
func (z Zipper[V]) Prune() (Zipper[V], error) {
	c := z.crumbs
	if c == nil {
		return Zipper[V]{}, ErrNoParent
	}
	var kids []*node[V]
	if n := len(c.left) + len(c.right); n > 0 {
		kids = make([]*node[V], 0, n)
		for i := len(c.left) - 1; i >= 0; i-- {
			kids = append(kids, c.left[i])
		}
		kids = append(kids, c.right...)
	}
	return Zipper[V]{
		focus:  Tree[V]{root: newNode(c.parent, kids)},
		crumbs: c.prev,
	}, nil
}

// Walk applies steps left to right, feeding each the zipper produced by the
// previous one. The first failing step aborts the walk and its error is
// returned as-is, so errors.Is sees the original sentinel.
func (z Zipper[V]) Walk(steps ...Step[V]) (Zipper[V], error) {
	var err error
	for _, step := range steps {
		z, err = step(z)
		if err != nil {
			return Zipper[V]{}, err
		}
	}
	return z, nil
}

// IsRoot reports whether the focus is the root of the tree.
func (z Zipper[V]) IsRoot() bool {
	return z.crumbs == nil
}

// HasParent reports whether the focus has a parent to ascend to.
func (z Zipper[V]) HasParent() bool {
	return z.crumbs != nil
}

// IsLeaf reports whether the focused node has no children. The empty focus
// counts as a leaf.
func (z Zipper[V]) IsLeaf() bool {
	return z.focus.root == nil || len(z.focus.root.children) == 0
}

// HasChildren reports whether the focused node has at least one child.
func (z Zipper[V]) HasChildren() bool {
	return !z.IsLeaf()
}

// IsFirst reports whether no sibling precedes the focus. The root is
// trivially first.
func (z Zipper[V]) IsFirst() bool {
	return z.crumbs == nil || len(z.crumbs.left) == 0
}

// IsLast reports whether no sibling follows the focus. The root is
// trivially last.
func (z Zipper[V]) IsLast() bool {
	return z.crumbs == nil || len(z.crumbs.right) == 0
}

// IsOnlyChild reports whether the focus has a parent and no siblings at
// all. The root is not an only child: it has no parent to be the child of.
func (z Zipper[V]) IsOnlyChild() bool {
	return z.crumbs != nil && len(z.crumbs.left) == 0 && len(z.crumbs.right) == 0
}

// Depth returns the number of ancestors above the focus. The root is at
// depth zero.
func (z Zipper[V]) Depth() int {
	d := 0
	for c := z.crumbs; c != nil; c = c.prev {
		d++
	}
	return d
}

// Path returns the child-index path from the root down to the focus, one
// index per level. It is nil at the root, and its result addresses the
// focused value through Tree.ElemAt on the rebuilt tree.
func (z Zipper[V]) Path() []int {
	if z.crumbs == nil {
		return nil
	}
	path := make([]int, z.Depth())
	i := len(path) - 1
	for c := z.crumbs; c != nil; c = c.prev {
		path[i] = len(c.left) // position among siblings
		i--
	}
	return path
}
