package explorer

import (
	"testing"

	rosetree "github.com/tpoulsen/rose-tree"
)

func sampleTree() rosetree.Tree[any] {
	return rosetree.New[any]("a",
		rosetree.New[any]("b"),
		rosetree.New[any]("c",
			rosetree.New[any]("d"),
			rosetree.New[any]("z"),
		),
	)
}

func TestTreeLines(t *testing.T) {
	lines := treeLines(sampleTree(), []int{1, 0})

	want := []struct {
		text    string
		focused bool
	}{
		{"a", false},
		{"  b", false},
		{"  c", false},
		{"    d", true},
		{"    z", false},
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d", len(lines), len(want))
	}
	for i, w := range want {
		if lines[i].Text != w.text {
			t.Errorf("line %d = %q, want %q", i, lines[i].Text, w.text)
		}
		if lines[i].Focused != w.focused {
			t.Errorf("line %d focused = %v, want %v", i, lines[i].Focused, w.focused)
		}
	}
}

func TestTreeLinesRootFocus(t *testing.T) {
	lines := treeLines(sampleTree(), nil)
	if !lines[0].Focused {
		t.Error("nil path focuses the root row")
	}
	if treeLines(rosetree.Empty[any](), nil) != nil {
		t.Error("the empty tree renders no rows")
	}
}

func TestBreadcrumbs(t *testing.T) {
	z, err := rosetree.FromTree(sampleTree()).Descend(1)
	if err != nil {
		t.Fatal(err)
	}
	z, err = z.Descend(0)
	if err != nil {
		t.Fatal(err)
	}
	if got := breadcrumbs(z); got != "a > c > d" {
		t.Errorf("breadcrumbs = %q, want %q", got, "a > c > d")
	}

	if got := breadcrumbs(rosetree.FromTree(sampleTree())); got != "a" {
		t.Errorf("root breadcrumbs = %q, want %q", got, "a")
	}
}

func TestScrollOffset(t *testing.T) {
	tests := []struct {
		name                  string
		focus, total, visible int
		want                  int
	}{
		{"everything fits", 3, 5, 10, 0},
		{"focus near top", 0, 100, 10, 0},
		{"focus centered", 50, 100, 10, 45},
		{"focus near bottom clamps", 99, 100, 10, 90},
		{"zero visible", 5, 100, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scrollOffset(tt.focus, tt.total, tt.visible); got != tt.want {
				t.Errorf("scrollOffset(%d, %d, %d) = %d, want %d",
					tt.focus, tt.total, tt.visible, got, tt.want)
			}
		})
	}
}
