package algo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"diskbtree/internal/base"
	"diskbtree/internal/freelist"
)

// counter is a Tracker that records every access
type counter struct {
	reads  []base.NodeID
	writes []base.NodeID
}

func (c *counter) Read(id base.NodeID) { c.reads = append(c.reads, id) }

func (c *counter) Write(id base.NodeID) { c.writes = append(c.writes, id) }

// fixture builds a one-level tree: a branch with the given keys over leaves
// holding the given key sets
func fixture(t *testing.T, degree int, sep []int, leaves ...[]int) (*base.Arena[int], *base.Node[int]) {
	t.Helper()
	require.Equal(t, len(sep)+1, len(leaves))

	arena := base.NewArena[int](degree, freelist.New())
	parent := arena.Alloc(false)
	parent.Keys = append(parent.Keys, sep...)
	for _, keys := range leaves {
		leaf := arena.Alloc(true)
		leaf.Keys = append(leaf.Keys, keys...)
		parent.Children = append(parent.Children, leaf.ID)
	}
	return arena, parent
}

func keysOf(arena *base.Arena[int], parent *base.Node[int]) [][]int {
	var out [][]int
	for _, id := range parent.Children {
		out = append(out, append([]int(nil), arena.Get(id).Keys...))
	}
	return out
}

func TestSplitChild(t *testing.T) {
	arena, parent := fixture(t, 3, []int{100}, []int{1, 2, 3, 4, 5}, []int{200, 300})
	tr := &counter{}

	right := SplitChild(arena, 3, parent, 0, tr)

	assert.Equal(t, []int{3, 100}, parent.Keys)
	assert.Equal(t, [][]int{{1, 2}, {4, 5}, {200, 300}}, keysOf(arena, parent))
	assert.Equal(t, right.ID, parent.Children[1])
	assert.True(t, right.Leaf)
	assert.ElementsMatch(t, []base.NodeID{parent.Children[0], right.ID, parent.ID}, tr.writes)
	assert.Empty(t, tr.reads)
}

func TestSplitChildBranch(t *testing.T) {
	arena := base.NewArena[int](2, freelist.New())
	parent := arena.Alloc(false)
	child := arena.Alloc(false)
	child.Keys = append(child.Keys, 10, 20, 30)
	child.Children = append(child.Children, 101, 102, 103, 104)
	parent.Children = append(parent.Children, child.ID)

	right := SplitChild(arena, 2, parent, 0, Discard{})

	assert.Equal(t, []int{20}, parent.Keys)
	assert.Equal(t, []int{10}, child.Keys)
	assert.Equal(t, []base.NodeID{101, 102}, child.Children)
	assert.Equal(t, []int{30}, right.Keys)
	assert.Equal(t, []base.NodeID{103, 104}, right.Children)
}

func TestSplitChildPanicsWhenNotFull(t *testing.T) {
	arena, parent := fixture(t, 3, []int{100}, []int{1, 2}, []int{200, 300})
	assert.Panics(t, func() { SplitChild(arena, 3, parent, 0, Discard{}) })
}

func TestSplitRoot(t *testing.T) {
	arena := base.NewArena[int](2, freelist.New())
	root := arena.Alloc(true)
	root.Keys = append(root.Keys, 1, 2, 3)

	newRoot := SplitRoot(arena, 2, root, Discard{})

	assert.False(t, newRoot.Leaf)
	assert.Equal(t, []int{2}, newRoot.Keys)
	assert.Equal(t, [][]int{{1}, {3}}, keysOf(arena, newRoot))
	assert.Equal(t, root.ID, newRoot.Children[0], "old root keeps the left half")
}

func TestBorrowFromLeft(t *testing.T) {
	arena, parent := fixture(t, 2, []int{10}, []int{1, 5}, []int{20})
	tr := &counter{}

	BorrowFromLeft(arena, parent, 1, tr)

	assert.Equal(t, []int{5}, parent.Keys)
	assert.Equal(t, [][]int{{1}, {10, 20}}, keysOf(arena, parent))
	assert.Len(t, tr.writes, 3)
}

func TestBorrowFromRight(t *testing.T) {
	arena, parent := fixture(t, 2, []int{10}, []int{1}, []int{20, 30})

	BorrowFromRight(arena, parent, 0, Discard{})

	assert.Equal(t, []int{20}, parent.Keys)
	assert.Equal(t, [][]int{{1, 10}, {30}}, keysOf(arena, parent))
}

func TestBorrowMovesChildren(t *testing.T) {
	arena := base.NewArena[int](2, freelist.New())
	parent := arena.Alloc(false)
	left := arena.Alloc(false)
	child := arena.Alloc(false)
	left.Keys = append(left.Keys, 10, 20)
	left.Children = append(left.Children, 101, 102, 103)
	child.Keys = append(child.Keys, 40)
	child.Children = append(child.Children, 104, 105)
	parent.Keys = append(parent.Keys, 30)
	parent.Children = append(parent.Children, left.ID, child.ID)

	BorrowFromLeft(arena, parent, 1, Discard{})
	assert.Equal(t, []int{20}, parent.Keys)
	assert.Equal(t, []int{30, 40}, child.Keys)
	assert.Equal(t, []base.NodeID{103, 104, 105}, child.Children)
	assert.Equal(t, []base.NodeID{101, 102}, left.Children)

	BorrowFromRight(arena, parent, 0, Discard{})
	assert.Equal(t, []int{30}, parent.Keys)
	assert.Equal(t, []int{10, 20}, left.Keys)
	assert.Equal(t, []base.NodeID{101, 102, 103}, left.Children)
	assert.Equal(t, []base.NodeID{104, 105}, child.Children)
}

func TestMerge(t *testing.T) {
	arena, parent := fixture(t, 2, []int{10, 20}, []int{5}, []int{15}, []int{25})
	absorbed := parent.Children[1]
	tr := &counter{}

	freed := Merge(arena, parent, 0, tr)

	assert.Equal(t, absorbed, freed)
	assert.Equal(t, []int{20}, parent.Keys)
	assert.Equal(t, [][]int{{5, 10, 15}, {25}}, keysOf(arena, parent))
	assert.Panics(t, func() { arena.Get(freed) }, "absorbed node is freed")
	assert.Equal(t, []base.NodeID{parent.Children[0], parent.ID}, tr.writes)
}

func TestRebalance(t *testing.T) {
	tests := []struct {
		name      string
		sep       []int
		leaves    [][]int
		child     int
		wantOp    Op
		wantIndex int
		wantReads int
		wantKeys  [][]int
	}{
		{
			name:      "above_minimum",
			sep:       []int{10},
			leaves:    [][]int{{1, 2}, {20}},
			child:     0,
			wantOp:    OpNone,
			wantIndex: 0,
			wantKeys:  [][]int{{1, 2}, {20}},
		},
		{
			name:      "borrow_left_preferred",
			sep:       []int{10, 20},
			leaves:    [][]int{{1, 2}, {15}, {25, 30}},
			child:     1,
			wantOp:    OpBorrowLeft,
			wantIndex: 1,
			wantReads: 1,
			wantKeys:  [][]int{{1}, {10, 15}, {25, 30}},
		},
		{
			name:      "borrow_right",
			sep:       []int{10, 20},
			leaves:    [][]int{{1}, {15}, {25, 30}},
			child:     1,
			wantOp:    OpBorrowRight,
			wantIndex: 1,
			wantReads: 2,
			wantKeys:  [][]int{{1}, {15, 20}, {30}},
		},
		{
			name:      "merge_with_left",
			sep:       []int{10, 20},
			leaves:    [][]int{{1}, {15}, {25}},
			child:     2,
			wantOp:    OpMerge,
			wantIndex: 1,
			wantReads: 1,
			wantKeys:  [][]int{{1}, {15, 20, 25}},
		},
		{
			name:      "merge_with_right_at_front",
			sep:       []int{10, 20},
			leaves:    [][]int{{1}, {15}, {25}},
			child:     0,
			wantOp:    OpMerge,
			wantIndex: 0,
			wantReads: 1,
			wantKeys:  [][]int{{1, 10, 15}, {25}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			arena, parent := fixture(t, 2, tt.sep, tt.leaves...)
			tr := &counter{}

			res := Rebalance(arena, 2, parent, tt.child, tr)

			assert.Equal(t, tt.wantOp, res.Op)
			assert.Equal(t, tt.wantIndex, res.Index)
			assert.Len(t, tr.reads, tt.wantReads)
			assert.Equal(t, tt.wantKeys, keysOf(arena, parent))
			if tt.wantOp == OpMerge {
				assert.NotZero(t, res.Freed)
			} else {
				assert.Zero(t, res.Freed)
			}
			assert.GreaterOrEqual(t, arena.Get(parent.Children[res.Index]).NumKeys(), 2,
				"descent target must hold at least t keys")
		})
	}
}
