package rosetree

import "fmt"

// FromMap builds a tree from a nested mapping. The mapping must hold exactly
// one key: the root value. The value under that key describes the root's
// children:
//
//	nil          no children
//	V            a single leaf child
//	[]V          leaf children, in order
//	map[V]any    a single child subtree of the same shape again
//	[]any        children in order; each element is a V leaf or a
//	             single-keyed map[V]any subtree
//
// A mapping with zero or several keys fails with ErrOneNodeRoot at any
// nesting level. Go maps have no stable iteration order, so several keys
// could not yield a deterministic sibling order; fan out ordered children
// with an []any list instead. Any other child shape fails with
// ErrMalformedMap.
func FromMap[V comparable](m map[V]any) (Tree[V], error) {
	root, err := subtreeFromMap(m)
	if err != nil {
		return Tree[V]{}, err
	}
	return Tree[V]{root: root}, nil
}

func subtreeFromMap[V comparable](m map[V]any) (*node[V], error) {
	if len(m) != 1 {
		return nil, fmt.Errorf("%w: got %d keys", ErrOneNodeRoot, len(m))
	}
	for value, spec := range m {
		kids, err := childNodes[V](spec)
		if err != nil {
			return nil, err
		}
		return newNode(value, kids), nil
	}
	return nil, ErrOneNodeRoot // unreachable, the map has one entry
}

func childNodes[V comparable](spec any) ([]*node[V], error) {
	switch s := spec.(type) {
	case nil:
		return nil, nil
	case map[V]any:
		child, err := subtreeFromMap(s)
		if err != nil {
			return nil, err
		}
		return []*node[V]{child}, nil
	case []V:
		if len(s) == 0 {
			return nil, nil
		}
		kids := make([]*node[V], len(s))
		for i, v := range s {
			kids[i] = newNode(v, nil)
		}
		return kids, nil
	case []any:
		var kids []*node[V]
		for _, el := range s {
			switch e := el.(type) {
			case map[V]any:
				child, err := subtreeFromMap(e)
				if err != nil {
					return nil, err
				}
				kids = append(kids, child)
			case V:
				kids = append(kids, newNode(e, nil))
			default:
				return nil, fmt.Errorf("%w: unsupported child element %T", ErrMalformedMap, el)
			}
		}
		return kids, nil
	case V:
		return []*node[V]{newNode(s, nil)}, nil
	default:
		return nil, fmt.Errorf("%w: unsupported children specification %T", ErrMalformedMap, spec)
	}
}
