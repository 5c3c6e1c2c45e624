// Package algo contains the structural edits used to keep a B-tree balanced:
// splitting full nodes on the way down an insert, and borrowing or merging
// minimal nodes on the way down a delete.
//
// Every function here works purely on arena nodes and reports each node it
// inspects or rewrites to a Tracker, which is where I/O accounting happens.
package algo

import (
	"cmp"

	"diskbtree/internal/base"
)

// Op identifies a structural edit
type Op int

const (
	OpNone Op = iota
	OpSplit
	OpRootSplit
	OpBorrowLeft
	OpBorrowRight
	OpMerge
	OpRootCollapse
)

func (op Op) String() string {
	switch op {
	case OpNone:
		return "none"
	case OpSplit:
		return "split"
	case OpRootSplit:
		return "root-split"
	case OpBorrowLeft:
		return "borrow-left"
	case OpBorrowRight:
		return "borrow-right"
	case OpMerge:
		return "merge"
	case OpRootCollapse:
		return "root-collapse"
	default:
		return "unknown"
	}
}

// Tracker observes node reads and writes made by a structural edit
type Tracker interface {
	Read(id base.NodeID)
	Write(id base.NodeID)
}

// Discard is a Tracker that ignores everything
type Discard struct{}

func (Discard) Read(base.NodeID) {}

func (Discard) Write(base.NodeID) {}

// Result describes a rebalance step
type Result struct {
	Op    Op
	Index int         // Child index to descend into afterwards
	Freed base.NodeID // Node absorbed by a merge, 0 otherwise
}

// SplitChild splits the full child at parent.Children[i] into two nodes of
// t-1 keys each and promotes the median into parent.Keys[i]. The left half
// stays in the original node; the new right sibling is returned.
func SplitChild[K cmp.Ordered](arena *base.Arena[K], t int, parent *base.Node[K], i int, tr Tracker) *base.Node[K] {
	child := arena.Get(parent.Children[i])
	if !child.IsFull(t) {
		panic("algo: split of non-full node")
	}

	right := arena.Alloc(child.Leaf)
	right.Keys = append(right.Keys, child.Keys[t:]...)
	if !child.Leaf {
		right.Children = append(right.Children, child.Children[t:]...)
		clear(child.Children[t:])
		child.Children = child.Children[:t]
	}

	median := child.Keys[t-1]
	clear(child.Keys[t-1:])
	child.Keys = child.Keys[:t-1]

	parent.InsertKeyAt(i, median)
	parent.InsertChildAt(i+1, right.ID)

	tr.Write(child.ID)
	tr.Write(right.ID)
	tr.Write(parent.ID)
	return right
}

// SplitRoot grows the tree by one level: a new root is allocated above the
// full root, which is then split beneath it. Returns the new root.
func SplitRoot[K cmp.Ordered](arena *base.Arena[K], t int, root *base.Node[K], tr Tracker) *base.Node[K] {
	newRoot := arena.Alloc(false)
	newRoot.Children = append(newRoot.Children, root.ID)
	SplitChild(arena, t, newRoot, 0, tr)
	return newRoot
}

// BorrowFromLeft rotates the separator parent.Keys[i-1] down into the front
// of Children[i] and moves the left sibling's last key up to replace it. For
// branches, the sibling's last child moves across with it.
func BorrowFromLeft[K cmp.Ordered](arena *base.Arena[K], parent *base.Node[K], i int, tr Tracker) {
	child := arena.Get(parent.Children[i])
	left := arena.Get(parent.Children[i-1])

	child.InsertKeyAt(0, parent.Keys[i-1])
	parent.Keys[i-1] = left.RemoveKeyAt(left.NumKeys() - 1)

	if !child.Leaf {
		child.InsertChildAt(0, left.RemoveChildAt(len(left.Children)-1))
	}

	tr.Write(left.ID)
	tr.Write(child.ID)
	tr.Write(parent.ID)
}

// BorrowFromRight is the mirror of BorrowFromLeft.
func BorrowFromRight[K cmp.Ordered](arena *base.Arena[K], parent *base.Node[K], i int, tr Tracker) {
	child := arena.Get(parent.Children[i])
	right := arena.Get(parent.Children[i+1])

	child.Keys = append(child.Keys, parent.Keys[i])
	parent.Keys[i] = right.RemoveKeyAt(0)

	if !child.Leaf {
		child.Children = append(child.Children, right.RemoveChildAt(0))
	}

	tr.Write(child.ID)
	tr.Write(right.ID)
	tr.Write(parent.ID)
}

// Merge folds Children[i+1] and the separator Keys[i] into Children[i], then
// removes both from the parent. The absorbed right node is freed and its ID
// returned.
func Merge[K cmp.Ordered](arena *base.Arena[K], parent *base.Node[K], i int, tr Tracker) base.NodeID {
	left := arena.Get(parent.Children[i])
	right := arena.Get(parent.Children[i+1])

	left.Keys = append(left.Keys, parent.RemoveKeyAt(i))
	left.Keys = append(left.Keys, right.Keys...)
	if !left.Leaf {
		left.Children = append(left.Children, right.Children...)
	}

	freed := parent.RemoveChildAt(i + 1)
	arena.Free(freed)

	tr.Write(left.ID)
	tr.Write(parent.ID)
	return freed
}

// Rebalance makes sure parent.Children[i] holds at least t keys before the
// caller descends into it. A child already above the minimum is left alone.
// Otherwise a key is borrowed from the left sibling, then the right sibling,
// and failing both the child is merged with a sibling. The returned Index is
// the child to continue into, which moves left by one after a merge with the
// left sibling.
func Rebalance[K cmp.Ordered](arena *base.Arena[K], t int, parent *base.Node[K], i int, tr Tracker) Result {
	child := arena.Get(parent.Children[i])
	if child.NumKeys() >= t {
		return Result{Op: OpNone, Index: i}
	}

	res := Result{Index: i}

	if i > 0 {
		tr.Read(parent.Children[i-1])
		if arena.Get(parent.Children[i-1]).NumKeys() >= t {
			BorrowFromLeft(arena, parent, i, tr)
			res.Op = OpBorrowLeft
			return res
		}
	}

	if i < len(parent.Children)-1 {
		tr.Read(parent.Children[i+1])
		if arena.Get(parent.Children[i+1]).NumKeys() >= t {
			BorrowFromRight(arena, parent, i, tr)
			res.Op = OpBorrowRight
			return res
		}
	}

	res.Op = OpMerge
	if i > 0 {
		res.Index = i - 1
		res.Freed = Merge(arena, parent, i-1, tr)
	} else {
		res.Freed = Merge(arena, parent, i, tr)
	}
	return res
}
