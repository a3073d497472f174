package rosetree

import (
	"fmt"
	"testing"
)

// benchShapes pairs a depth and fanout for size sweeps.
var benchShapes = []struct {
	depth, fanout int
}{
	{2, 4},
	{4, 4},
	{6, 4},
	{10, 2},
}

func BenchmarkFlatten(b *testing.B) {
	for _, s := range benchShapes {
		tr := genTree(s.depth, s.fanout)
		b.Run(fmt.Sprintf("nodes=%d", tr.Len()), func(b *testing.B) {
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = tr.Flatten()
			}
		})
	}
}

func BenchmarkAll(b *testing.B) {
	for _, s := range benchShapes {
		tr := genTree(s.depth, s.fanout)
		b.Run(fmt.Sprintf("nodes=%d", tr.Len()), func(b *testing.B) {
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				n := 0
				for range tr.All() {
					n++
				}
			}
		})
	}
}

func BenchmarkMerge(b *testing.B) {
	for _, s := range benchShapes {
		// Shared roots with disjoint grandchildren exercise the recursive path.
		a := genTree(s.depth, s.fanout)
		other := New("n", genSubtree("m", s.depth-1, s.fanout))
		b.Run(fmt.Sprintf("nodes=%d", a.Len()), func(b *testing.B) {
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = a.Merge(other)
			}
		})
	}
}

func BenchmarkReplaceAll(b *testing.B) {
	for _, s := range benchShapes {
		tr := genTree(s.depth, s.fanout)
		// The deepest first leaf; forces a rebuild along one spine only.
		target := FromTree(tr).ToLeaf().Focus().Value()
		b.Run(fmt.Sprintf("nodes=%d", tr.Len()), func(b *testing.B) {
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = tr.ReplaceAll(target, "replaced")
			}
		})
	}
}

func BenchmarkZipperDescendAscend(b *testing.B) {
	for _, s := range benchShapes {
		tr := genTree(s.depth, s.fanout)
		b.Run(fmt.Sprintf("depth=%d", s.depth), func(b *testing.B) {
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				z := FromTree(tr).ToLeaf()
				_ = z.Root()
			}
		})
	}
}

func BenchmarkZipperSiblingScan(b *testing.B) {
	kids := make([]Tree[string], 1000)
	for i := range kids {
		kids[i] = New(fmt.Sprintf("c%d", i))
	}
	tr := New("r", kids...)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		z, err := FromTree(tr).FirstChild()
		if err != nil {
			b.Fatal(err)
		}
		for {
			next, err := z.NextSibling()
			if err != nil {
				break
			}
			z = next
		}
	}
}
