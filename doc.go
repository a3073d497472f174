// Package rosetree provides an immutable generic rose tree and a zipper for
// cursor-based navigation and editing.
//
// A rose tree is an n-ary tree: each node holds a value and an ordered
// sequence of child subtrees. Trees here are persistent values. Every
// operation that "modifies" a tree returns a new Tree and shares every
// untouched subtree with the original, so taking snapshots is cheap and
// previously obtained trees are never invalidated.
//
// The Zipper is a cursor over a Tree: a focused subtree plus the breadcrumb
// context needed to rebuild the ancestors and sibling order around it. Each
// navigation or edit step returns a new Zipper; the full (possibly edited)
// tree is recovered with Root.
//
// Basic usage:
//
//	t := rosetree.New("a",
//		rosetree.New("b"),
//		rosetree.FromValues("c", "d", "z"),
//	)
//
//	z, _ := rosetree.FromTree(t).Descend(0) // focus on "b"
//	z, _ = z.Prune()                        // drop the "b" subtree
//	t2 := z.Root()                          // "a" with the single child "c"
//
// Navigation that is geometrically impossible (no parent, no sibling in the
// requested direction, index out of range) reports a sentinel error; nothing
// in this package panics for expected failures. Trees and zippers are plain
// immutable values and are safe to share between goroutines without locking.
package rosetree
