package rosetree

import (
	"fmt"
	"strings"
)

// Tree is an immutable rose tree holding values of type V. The zero value is
// the empty tree. Trees are handles onto shared immutable nodes: copying a
// Tree is O(1), and operations return new trees that reuse every subtree the
// operation did not touch.
//
// V must be comparable because several operations (AddChild, Merge, Contains,
// FromMap) match nodes by value equality.
type Tree[V comparable] struct {
	root *node[V]
}

// node is a single tree node. Nodes are never mutated after construction;
// every operation builds replacement nodes top-down and shares the rest.
type node[V comparable] struct {
	value    V
	children []*node[V]
	size     int // nodes in this subtree, itself included
}

// newNode builds a node over the given children and computes its cached
// subtree size. children is retained, not copied: callers hand over freshly
// built slices or slices of already immutable nodes.
func newNode[V comparable](value V, children []*node[V]) *node[V] {
	n := &node[V]{value: value, children: children, size: 1}
	for _, c := range children {
		n.size += c.size
	}
	return n
}

// Empty returns the empty tree. It is equivalent to the zero Tree value and
// exists so call sites can name the intent.
func Empty[V comparable]() Tree[V] {
	return Tree[V]{}
}

// New returns a tree rooted at value with the given subtrees as children, in
// order. With no children the result is a leaf. Empty subtrees are skipped;
// a well-formed tree never contains an absent node.
func New[V comparable](value V, children ...Tree[V]) Tree[V] {
	var kids []*node[V]
	for _, c := range children {
		if c.root == nil {
			continue
		}
		kids = append(kids, c.root)
	}
	return Tree[V]{root: newNode(value, kids)}
}

// FromValues returns a tree rooted at value whose children are leaves
// wrapping each of vals, in order.
func FromValues[V comparable](value V, vals ...V) Tree[V] {
	var kids []*node[V]
	if len(vals) > 0 {
		kids = make([]*node[V], len(vals))
		for i, v := range vals {
			kids[i] = newNode(v, nil)
		}
	}
	return Tree[V]{root: newNode(value, kids)}
}

// IsEmpty reports whether the tree has no nodes at all.
func (t Tree[V]) IsEmpty() bool {
	return t.root == nil
}

// Value returns the root value. The empty tree yields the zero value of V;
// callers that cannot rule out emptiness should check IsEmpty first.
func (t Tree[V]) Value() V {
	if t.root == nil {
		var zero V
		return zero
	}
	return t.root.value
}

// NumChildren returns the number of direct children of the root. O(1).
func (t Tree[V]) NumChildren() int {
	if t.root == nil {
		return 0
	}
	return len(t.root.children)
}

// Children returns the direct child subtrees in order. The returned slice is
// fresh; the subtrees it holds are shared with t.
func (t Tree[V]) Children() []Tree[V] {
	if t.root == nil || len(t.root.children) == 0 {
		return nil
	}
	kids := make([]Tree[V], len(t.root.children))
	for i, c := range t.root.children {
		kids[i] = Tree[V]{root: c}
	}
	return kids
}

// ChildValues returns the values of the direct children in order.
func (t Tree[V]) ChildValues() []V {
	if t.root == nil || len(t.root.children) == 0 {
		return nil
	}
	vals := make([]V, len(t.root.children))
	for i, c := range t.root.children {
		vals[i] = c.value
	}
	return vals
}

// HasChild reports whether some direct child of t carries the same root
// value as candidate. Grandchildren are not consulted, and an empty
// candidate matches nothing.
func (t Tree[V]) HasChild(candidate Tree[V]) bool {
	if t.root == nil || candidate.root == nil {
		return false
	}
	for _, c := range t.root.children {
		if c.value == candidate.root.value {
			return true
		}
	}
	return false
}

// AddChild returns a tree with child attached under the root. When a direct
// child already carries child's root value, child is merged into it in place
// (see Merge) and sibling order is preserved. Otherwise child becomes the
// new first child. Adding to or adding an empty tree is a no-op.
func (t Tree[V]) AddChild(child Tree[V]) Tree[V] {
	if t.root == nil || child.root == nil {
		return t
	}
	for i, c := range t.root.children {
		if c.value != child.root.value {
			continue
		}
		kids := make([]*node[V], len(t.root.children))
		copy(kids, t.root.children)
		kids[i] = mergeNodes(c, child.root)
		return Tree[V]{root: newNode(t.root.value, kids)}
	}
	kids := make([]*node[V], 0, len(t.root.children)+1)
	kids = append(kids, child.root)
	kids = append(kids, t.root.children...)
	return Tree[V]{root: newNode(t.root.value, kids)}
}

// Merge combines two trees that share a root value into one. Children unique
// to either side are kept; children with matching values are merged
// recursively. Order puts t's children first (merged in place), then other's
// children that had no counterpart. Merging with the empty tree returns the
// other operand unchanged.
//
// Merge panics if both trees are non-empty and their root values differ;
// calling it with unrelated roots is a programming error, not an input
// condition.
func (t Tree[V]) Merge(other Tree[V]) Tree[V] {
	if t.root == nil {
		return other
	}
	if other.root == nil {
		return t
	}
	return Tree[V]{root: mergeNodes(t.root, other.root)}
}

func mergeNodes[V comparable](a, b *node[V]) *node[V] {
	if a.value != b.value {
		panic(fmt.Sprintf("rosetree: merge of distinct roots %v and %v", a.value, b.value))
	}
	if len(b.children) == 0 {
		return a
	}
	if len(a.children) == 0 {
		return newNode(a.value, b.children)
	}
	fromB := make(map[V]*node[V], len(b.children))
	for _, bc := range b.children {
		if _, ok := fromB[bc.value]; !ok {
			fromB[bc.value] = bc
		}
	}
	inA := make(map[V]struct{}, len(a.children))
	for _, ac := range a.children {
		inA[ac.value] = struct{}{}
	}
	kids := make([]*node[V], 0, len(a.children)+len(b.children))
	for _, ac := range a.children {
		if bc, ok := fromB[ac.value]; ok {
			kids = append(kids, mergeNodes(ac, bc))
		} else {
			kids = append(kids, ac)
		}
	}
	for _, bc := range b.children {
		if _, ok := inA[bc.value]; !ok {
			kids = append(kids, bc)
		}
	}
	return newNode(a.value, kids)
}

// PopChild detaches the first child. It returns the detached subtree and the
// remaining tree. When the root has no children (or t is empty) the detached
// tree is empty and t comes back unchanged.
func (t Tree[V]) PopChild() (child, rest Tree[V]) {
	if t.root == nil || len(t.root.children) == 0 {
		return Tree[V]{}, t
	}
	child, rest, _ = t.PopChildAt(0)
	return child, rest
}

// PopChildAt detaches the child at index idx, counting from zero. It returns
// the detached subtree and the remaining tree. A childless (or empty) tree
// is returned unchanged with no error; an index outside [0, NumChildren)
// fails with ErrBadIndex.
func (t Tree[V]) PopChildAt(idx int) (child, rest Tree[V], err error) {
	if t.root == nil || len(t.root.children) == 0 {
		return Tree[V]{}, t, nil
	}
	if idx < 0 || idx >= len(t.root.children) {
		return Tree[V]{}, Tree[V]{}, ErrBadIndex
	}
	kids := removeAt(t.root.children, idx)
	child = Tree[V]{root: t.root.children[idx]}
	rest = Tree[V]{root: newNode(t.root.value, kids)}
	return child, rest, nil
}

// removeAt copies children without the element at idx. The caller guarantees
// idx is in range.
func removeAt[V comparable](children []*node[V], idx int) []*node[V] {
	if len(children) == 1 {
		return nil
	}
	kids := make([]*node[V], 0, len(children)-1)
	kids = append(kids, children[:idx]...)
	kids = append(kids, children[idx+1:]...)
	return kids
}

// ElemAt returns the value of the node addressed by a path of child indexes
// walked from the root. An empty path addresses the root itself. Any index
// that does not exist at its level fails with ErrBadPath, as does any path
// into the empty tree.
func (t Tree[V]) ElemAt(path ...int) (V, error) {
	var zero V
	if t.root == nil {
		return zero, ErrBadPath
	}
	n := t.root
	for _, idx := range path {
		if idx < 0 || idx >= len(n.children) {
			return zero, ErrBadPath
		}
		n = n.children[idx]
	}
	return n.value, nil
}

// Equal reports whether two trees have identical shape and values. Two empty
// trees are equal. O(n) worst case, with an O(1) fast path for trees that
// share structure.
func (t Tree[V]) Equal(other Tree[V]) bool {
	return nodesEqual(t.root, other.root)
}

func nodesEqual[V comparable](a, b *node[V]) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.value != b.value || len(a.children) != len(b.children) {
		return false
	}
	for i := range a.children {
		if !nodesEqual(a.children[i], b.children[i]) {
			return false
		}
	}
	return true
}

// String renders the tree in a compact single-line form such as
// "a(b, c(d, z))", mainly for tests and debugging. The empty tree renders
// as "()".
func (t Tree[V]) String() string {
	if t.root == nil {
		return "()"
	}
	var b strings.Builder
	writeNode(&b, t.root)
	return b.String()
}

func writeNode[V comparable](b *strings.Builder, n *node[V]) {
	fmt.Fprintf(b, "%v", n.value)
	if len(n.children) == 0 {
		return
	}
	b.WriteByte('(')
	for i, c := range n.children {
		if i > 0 {
			b.WriteString(", ")
		}
		writeNode(b, c)
	}
	b.WriteByte(')')
}
