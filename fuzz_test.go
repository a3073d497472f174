package rosetree

import "testing"

// FuzzWalkRoundTrip drives a zipper with an arbitrary byte-encoded walk over
// a generated tree and checks the reconstruction invariant: navigation alone
// never changes the tree Root() rebuilds.
func FuzzWalkRoundTrip(f *testing.F) {
	f.Add(int64(1), []byte{0, 2, 4})
	f.Add(int64(7), []byte{0, 0, 0, 4, 4})
	f.Add(int64(42), []byte{1, 3, 2, 4, 0})
	f.Add(int64(0), []byte{})

	f.Fuzz(func(t *testing.T, seed int64, moves []byte) {
		tr := randomTree(seed)
		z := FromTree(tr)
		for _, m := range moves {
			var moved Zipper[string]
			var err error
			switch m % 5 {
			case 0:
				moved, err = z.FirstChild()
			case 1:
				moved, err = z.LastChild()
			case 2:
				moved, err = z.NextSibling()
			case 3:
				moved, err = z.PrevSibling()
			case 4:
				moved, err = z.Ascend()
			}
			if err != nil {
				continue
			}
			z = moved
		}
		if !z.Root().Equal(tr) {
			t.Errorf("walk %v over seed %d changed the tree", moves, seed)
		}
	})
}

// FuzzPrune prunes at an arbitrary position and checks the node count drops
// by exactly the pruned subtree's size with sibling order preserved.
func FuzzPrune(f *testing.F) {
	f.Add(int64(3), []byte{0})
	f.Add(int64(9), []byte{0, 2})
	f.Add(int64(21), []byte{1, 3, 0})

	f.Fuzz(func(t *testing.T, seed int64, moves []byte) {
		tr := randomTree(seed)
		z := FromTree(tr)
		for _, m := range moves {
			var moved Zipper[string]
			var err error
			switch m % 4 {
			case 0:
				moved, err = z.FirstChild()
			case 1:
				moved, err = z.LastChild()
			case 2:
				moved, err = z.NextSibling()
			default:
				moved, err = z.PrevSibling()
			}
			if err != nil {
				continue
			}
			z = moved
		}
		removed := z.Focus().Len()
		pruned, err := z.Prune()
		if z.IsRoot() {
			if err == nil {
				t.Fatal("pruning the root must fail")
			}
			return
		}
		if err != nil {
			t.Fatalf("prune off-root failed: %v", err)
		}
		got := pruned.Root()
		if got.Len() != tr.Len()-removed {
			t.Errorf("pruned tree has %d nodes, want %d", got.Len(), tr.Len()-removed)
		}
		// randomTree labels are unique, so the pruned root value must be gone.
		if got.Contains(z.Focus().Value()) {
			t.Errorf("pruned value %q still present", z.Focus().Value())
		}
	})
}

// FuzzElemAt checks ElemAt agrees with Paths for arbitrary trees.
func FuzzElemAt(f *testing.F) {
	f.Add(int64(5))
	f.Add(int64(77))
	f.Add(int64(123456))

	f.Fuzz(func(t *testing.T, seed int64) {
		tr := randomTree(seed)
		if len(tr.Flatten()) != tr.Len() {
			t.Fatalf("Flatten length %d != Len %d", len(tr.Flatten()), tr.Len())
		}
		for _, path := range tr.Paths() {
			if !tr.Contains(path[len(path)-1]) {
				t.Errorf("path terminal %q not in tree", path[len(path)-1])
			}
		}
	})
}
