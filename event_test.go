package diskbtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	events []Event
}

func (r *recorder) handle(e Event) {
	r.events = append(r.events, e)
}

func (r *recorder) ops() []Op {
	ops := make([]Op, 0, len(r.events))
	for _, e := range r.events {
		ops = append(ops, e.Op)
	}
	return ops
}

func (r *recorder) count(op Op) int {
	n := 0
	for _, e := range r.events {
		if e.Op == op {
			n++
		}
	}
	return n
}

func TestEventSequence(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	tree := setup(t, 2, WithEventHandler(rec.handle))

	// Root [2] over [1] and [3 4]
	for _, k := range seq(1, 4) {
		tree.Insert(k)
	}
	require.Equal(t, []Op{OpRootSplit}, rec.ops())
	assert.Equal(t, 1, rec.events[0].Height)

	// [1] is minimal and its right sibling can spare 3
	tree.Delete(1)
	assert.Equal(t, OpBorrowRight, rec.events[1].Op)
	assert.Equal(t, 1, rec.events[1].Key)
	assert.Equal(t, tree.root, rec.events[1].Node)

	// Root [3] over [1 2] and [4]; [4] borrows from the left
	tree.Insert(1)
	tree.Delete(4)
	assert.Equal(t, OpBorrowLeft, rec.events[2].Op)

	// Root [2] over [1] and [3]; nothing to borrow so they merge and the
	// drained root collapses onto the merged node
	tree.Delete(3)
	assert.Equal(t, []Op{OpRootSplit, OpBorrowRight, OpBorrowLeft, OpMerge, OpRootCollapse}, rec.ops())
	assert.Equal(t, 0, rec.events[4].Height)
	assert.Equal(t, tree.root, rec.events[4].Node)

	assert.Equal(t, []int{1, 2}, tree.Keys())
	requireValid(t, tree)
}

func TestEventHeightChangesMatchHeight(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	tree := setup(t, 2, WithEventHandler(rec.handle))

	for _, k := range seq(1, 200) {
		tree.Insert(k)
	}
	peak := tree.Height()
	assert.Equal(t, peak, rec.count(OpRootSplit), "only root splits grow the tree")
	assert.Positive(t, rec.count(OpSplit))

	for _, k := range seq(1, 200) {
		tree.Delete(k)
	}
	assert.Equal(t, peak, rec.count(OpRootCollapse), "only root collapses shrink the tree")
	assert.Positive(t, rec.count(OpMerge))
}

func TestOpString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "split", OpSplit.String())
	assert.Equal(t, "root-split", OpRootSplit.String())
	assert.Equal(t, "borrow-left", OpBorrowLeft.String())
	assert.Equal(t, "borrow-right", OpBorrowRight.String())
	assert.Equal(t, "merge", OpMerge.String())
	assert.Equal(t, "root-collapse", OpRootCollapse.String())
}
