package rosetree

import (
	"errors"
	"testing"
)

// sample builds the tree a(b, c(d, z)) used across the tests.
func sample() Tree[string] {
	return New("a",
		New("b"),
		FromValues("c", "d", "z"),
	)
}

func TestEmpty(t *testing.T) {
	e := Empty[string]()
	if !e.IsEmpty() {
		t.Error("Empty tree should report IsEmpty")
	}
	if e.Len() != 0 {
		t.Errorf("Len() = %d, want 0", e.Len())
	}
	if e.NumChildren() != 0 {
		t.Errorf("NumChildren() = %d, want 0", e.NumChildren())
	}
	var zero Tree[string]
	if !e.Equal(zero) {
		t.Error("Empty() should equal the zero Tree")
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		tree     Tree[string]
		wantStr  string
		wantLen  int
		wantKids []string
	}{
		{"leaf", New("a"), "a", 1, nil},
		{"one child", New("a", New("b")), "a(b)", 2, []string{"b"}},
		{"sample", sample(), "a(b, c(d, z))", 5, []string{"b", "c"}},
		{"from values", FromValues("c", "d", "z"), "c(d, z)", 3, []string{"d", "z"}},
		{"empty children skipped", New("a", Empty[string](), New("b"), Empty[string]()), "a(b)", 2, []string{"b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tree.String(); got != tt.wantStr {
				t.Errorf("String() = %q, want %q", got, tt.wantStr)
			}
			if got := tt.tree.Len(); got != tt.wantLen {
				t.Errorf("Len() = %d, want %d", got, tt.wantLen)
			}
			kids := tt.tree.ChildValues()
			if len(kids) != len(tt.wantKids) {
				t.Fatalf("ChildValues() = %v, want %v", kids, tt.wantKids)
			}
			for i, v := range tt.wantKids {
				if kids[i] != v {
					t.Errorf("child %d = %q, want %q", i, kids[i], v)
				}
			}
		})
	}
}

func TestHasChild(t *testing.T) {
	tr := sample()
	if !tr.HasChild(New("b")) {
		t.Error("b should be a child of a")
	}
	if !tr.HasChild(New("c", New("other"))) {
		t.Error("matching is by root value, the candidate's children are irrelevant")
	}
	if tr.HasChild(New("d")) {
		t.Error("d is a grandchild, not a direct child")
	}
	if tr.HasChild(Empty[string]()) {
		t.Error("the empty tree matches nothing")
	}
	if Empty[string]().HasChild(New("b")) {
		t.Error("the empty tree has no children")
	}
}

func TestAddChild(t *testing.T) {
	tests := []struct {
		name  string
		tree  Tree[string]
		child Tree[string]
		want  string
	}{
		{"prepend distinct", New("a", New("b")), New("x"), "a(x, b)"},
		{"prepend to leaf", New("a"), New("b"), "a(b)"},
		{"merge on collision keeps position", sample(), FromValues("c", "q"), "a(b, c(d, z, q))"},
		{"merge recursive", New("a", New("b", New("x"))), New("b", New("x", New("deep"))), "a(b(x(deep)))"},
		{"empty child no-op", sample(), Empty[string](), "a(b, c(d, z))"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.tree.AddChild(tt.child)
			if got.String() != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAddChildCollisionKeepsCount(t *testing.T) {
	tr := sample()
	before := tr.NumChildren()
	grown := tr.AddChild(FromValues("c", "extra"))
	if grown.NumChildren() != before {
		t.Errorf("collision should merge, not duplicate: %d children, want %d", grown.NumChildren(), before)
	}
	if !grown.Contains("extra") {
		t.Error("merged subtree should carry the new grandchild")
	}
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name string
		a, b Tree[string]
		want string
	}{
		{
			"disjoint children append in order",
			FromValues("r", "a", "b"),
			FromValues("r", "c", "d"),
			"r(a, b, c, d)",
		},
		{
			"shared children merge recursively",
			New("r", FromValues("a", "x"), New("b")),
			New("r", FromValues("a", "y"), New("c")),
			"r(a(x, y), b, c)",
		},
		{
			"a order is the stable prefix",
			FromValues("r", "b", "a"),
			FromValues("r", "a", "z"),
			"r(b, a, z)",
		},
		{"leaf absorbs children", New("r"), FromValues("r", "x"), "r(x)"},
		{"children survive a leaf", FromValues("r", "x"), New("r"), "r(x)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.Merge(tt.b)
			if got.String() != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMergeEmptyOperands(t *testing.T) {
	tr := sample()
	if got := Empty[string]().Merge(tr); !got.Equal(tr) {
		t.Errorf("empty.Merge(t) = %v, want %v", got, tr)
	}
	if got := tr.Merge(Empty[string]()); !got.Equal(tr) {
		t.Errorf("t.Merge(empty) = %v, want %v", got, tr)
	}
}

func TestMergeMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Merge with distinct root values should panic")
		}
	}()
	New("a").Merge(New("b"))
}

// Merging trees whose child sets are pairwise disjoint is associative.
func TestMergeAssociativeOnDisjoint(t *testing.T) {
	a := FromValues("r", "a1", "a2")
	b := FromValues("r", "b1")
	c := FromValues("r", "c1", "c2")
	left := a.Merge(b).Merge(c)
	right := a.Merge(b.Merge(c))
	if !left.Equal(right) {
		t.Errorf("(a+b)+c = %v, a+(b+c) = %v", left, right)
	}
}

func TestPopChild(t *testing.T) {
	child, rest := sample().PopChild()
	if child.String() != "b" {
		t.Errorf("popped %v, want b", child)
	}
	if rest.String() != "a(c(d, z))" {
		t.Errorf("rest = %v, want a(c(d, z))", rest)
	}

	child, rest = New("a").PopChild()
	if !child.IsEmpty() {
		t.Errorf("popping a leaf should yield the empty tree, got %v", child)
	}
	if rest.String() != "a" {
		t.Errorf("leaf should come back unchanged, got %v", rest)
	}
}

func TestPopChildAt(t *testing.T) {
	tests := []struct {
		name      string
		tree      Tree[string]
		idx       int
		wantChild string
		wantRest  string
		wantErr   error
	}{
		{"first", sample(), 0, "b", "a(c(d, z))", nil},
		{"last", sample(), 1, "c(d, z)", "a(b)", nil},
		{"out of range", sample(), 2, "", "", ErrBadIndex},
		{"negative", sample(), -1, "", "", ErrBadIndex},
		{"childless is silent", New("a"), 5, "()", "a", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			child, rest, err := tt.tree.PopChildAt(tt.idx)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if got := child.String(); got != tt.wantChild {
				t.Errorf("child = %v, want %v", got, tt.wantChild)
			}
			if got := rest.String(); got != tt.wantRest {
				t.Errorf("rest = %v, want %v", got, tt.wantRest)
			}
		})
	}
}

func TestElemAt(t *testing.T) {
	tr := sample()
	tests := []struct {
		name    string
		path    []int
		want    string
		wantErr error
	}{
		{"root", nil, "a", nil},
		{"first child", []int{0}, "b", nil},
		{"nested", []int{1, 1}, "z", nil},
		{"index out of range", []int{2}, "", ErrBadPath},
		{"path through a leaf", []int{0, 0}, "", ErrBadPath},
		{"negative index", []int{-1}, "", ErrBadPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tr.ElemAt(tt.path...)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}

	if _, err := Empty[string]().ElemAt(); !errors.Is(err, ErrBadPath) {
		t.Errorf("ElemAt on the empty tree: err = %v, want ErrBadPath", err)
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Tree[string]
		want bool
	}{
		{"same shape and values", sample(), sample(), true},
		{"shared handle", sample(), sample(), true},
		{"different value", sample(), New("a", New("b"), FromValues("c", "d", "q")), false},
		{"different shape", sample(), New("a", New("b")), false},
		{"order matters", FromValues("r", "x", "y"), FromValues("r", "y", "x"), false},
		{"both empty", Empty[string](), Empty[string](), true},
		{"empty vs leaf", Empty[string](), New("a"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMap(t *testing.T) {
	tr := sample()
	got := Map(tr, func(s string) string { return s + s })
	if got.String() != "aa(bb, cc(dd, zz))" {
		t.Errorf("got %v", got)
	}
	if got.Len() != tr.Len() {
		t.Errorf("Map changed the node count: %d, want %d", got.Len(), tr.Len())
	}

	lens := Map(tr, func(s string) int { return len(s) })
	if lens.String() != "1(1, 1(1, 1))" {
		t.Errorf("type-changing map: got %v", lens)
	}

	if !Map(Empty[string](), func(s string) string { return s }).IsEmpty() {
		t.Error("mapping the empty tree should stay empty")
	}
}

func TestReplaceAll(t *testing.T) {
	tr := New("a", New("x"), New("b", New("x")))
	got := tr.ReplaceAll("x", "y")
	if got.String() != "a(y, b(y))" {
		t.Errorf("every occurrence should be rewritten, got %v", got)
	}

	same := tr.ReplaceAll("missing", "y")
	if !same.Equal(tr) {
		t.Errorf("no match should leave the tree intact, got %v", same)
	}
}

func TestReplaceChildren(t *testing.T) {
	tr := New("a", FromValues("b", "old"), New("b"))
	got := tr.ReplaceChildren("b", New("n1"), New("n2"))
	if got.String() != "a(b(n1, n2), b(n1, n2))" {
		t.Errorf("every matching node gets the new children, got %v", got)
	}

	cleared := tr.ReplaceChildren("b")
	if cleared.String() != "a(b, b)" {
		t.Errorf("no replacement children clears the sequence, got %v", cleared)
	}
}
