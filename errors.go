package rosetree

import "errors"

// Sentinel errors reported by tree and zipper operations. Callers are
// expected to test them with errors.Is; messages carry no dynamic detail.
var (
	// ErrNoChildren indicates the focused node has no children to descend into.
	ErrNoChildren = errors.New("node has no children")

	// ErrNoChildMatch indicates no direct child satisfied the predicate.
	ErrNoChildMatch = errors.New("no child matched")

	// ErrNoParent indicates the focus is at the root and has no parent.
	ErrNoParent = errors.New("focus has no parent")

	// ErrNoSiblings indicates the focus is at the root, which has no siblings.
	ErrNoSiblings = errors.New("focus has no siblings")

	// ErrNoNextSibling indicates the focus is the last child of its parent.
	ErrNoNextSibling = errors.New("no next sibling")

	// ErrNoPrevSibling indicates the focus is the first child of its parent.
	ErrNoPrevSibling = errors.New("no previous sibling")

	// ErrBadPath indicates a child-index path does not reach a node.
	ErrBadPath = errors.New("path does not address a node")

	// ErrBadIndex indicates a child index outside the valid range.
	ErrBadIndex = errors.New("child index out of range")

	// ErrOneNodeRoot indicates a mapping with zero or multiple keys where a
	// single-keyed mapping was required.
	ErrOneNodeRoot = errors.New("mapping must have exactly one key")

	// ErrMalformedMap indicates a child specification of an unsupported shape.
	ErrMalformedMap = errors.New("malformed tree mapping")
)
