// Package diskbtree implements a disk-oriented B-tree index with simulated
// block I/O accounting.
//
// The tree is parameterized by its minimum degree t: every node other than
// the root holds between t-1 and 2t-1 keys, and a branch with k keys has k+1
// children. Nodes live in an arena and refer to each other by NodeID.
//
// Inserts split full nodes on the way down and deletes rebalance minimal
// nodes on the way down, so neither ever walks back up the tree. Each node
// visited counts as one simulated disk read and each node created or
// modified as one simulated disk write; see IOStats.
//
// A Tree is not safe for concurrent use. Callers that share one across
// goroutines must serialize access themselves.
package diskbtree

import (
	"cmp"

	"diskbtree/internal/algo"
	"diskbtree/internal/base"
	"diskbtree/internal/cache"
	"diskbtree/internal/freelist"
)

// MinDegree is the smallest accepted minimum degree
const MinDegree = 2

// NodeID identifies a node within one tree
type NodeID = base.NodeID

// Location is the position of a key: the node holding it and its index there
type Location struct {
	Node  NodeID
	Index int
}

// Tree is a B-tree of unique ordered keys
type Tree[K cmp.Ordered] struct {
	arena  *base.Arena[K]
	root   NodeID // 0 when the tree is empty
	t      int
	size   int
	height int
	io     diskIO

	logger  Logger
	onEvent func(Event)
}

// New creates an empty tree with minimum degree t. A degree below MinDegree
// fails with a *ConfigError.
func New[K cmp.Ordered](t int, options ...Option) (*Tree[K], error) {
	if t < MinDegree {
		return nil, &ConfigError{Field: "min degree", Value: t, Min: MinDegree}
	}

	opts := DefaultOptions()
	for _, opt := range options {
		opt(&opts)
	}
	if opts.poolSize < 0 {
		return nil, &ConfigError{Field: "buffer pool size", Value: opts.poolSize, Min: 0}
	}

	bt := &Tree[K]{
		arena:   base.NewArena[K](t, freelist.New()),
		t:       t,
		logger:  opts.logger,
		onEvent: opts.onEvent,
	}

	if opts.poolSize > 0 {
		pool, err := cache.NewPool(opts.poolSize)
		if err != nil {
			return nil, err
		}
		bt.io.pool = pool
	}

	return bt, nil
}

// MinDegree returns the tree's minimum degree t
func (bt *Tree[K]) MinDegree() int {
	return bt.t
}

// Len returns the number of keys stored
func (bt *Tree[K]) Len() int {
	return bt.size
}

// Height returns the number of edges from the root to any leaf. Empty and
// single-node trees have height 0.
func (bt *Tree[K]) Height() int {
	return bt.height
}

// Nodes returns the number of live nodes
func (bt *Tree[K]) Nodes() int {
	return bt.arena.Live()
}

// Clear removes every key. I/O counters are left untouched.
func (bt *Tree[K]) Clear() {
	bt.arena.Reset()
	bt.root = 0
	bt.size = 0
	bt.height = 0
	if bt.io.pool != nil {
		bt.io.pool.Purge()
	}
}

// read fetches a node, counting one disk read
func (bt *Tree[K]) read(id NodeID) *base.Node[K] {
	bt.io.Read(id)
	return bt.arena.Get(id)
}

// free releases a node and drops it from the buffer pool
func (bt *Tree[K]) free(id NodeID) {
	bt.arena.Free(id)
	bt.io.forget(id)
}

// Search reports whether key is in the tree
func (bt *Tree[K]) Search(key K) bool {
	_, found := bt.Get(key)
	return found
}

// Get returns the location of key, walking down from the root
func (bt *Tree[K]) Get(key K) (Location, bool) {
	if bt.root == 0 {
		return Location{}, false
	}

	n := bt.read(bt.root)
	for {
		i, found := n.Search(key)
		if found {
			return Location{Node: n.ID, Index: i}, true
		}
		if n.Leaf {
			return Location{}, false
		}
		n = bt.read(n.Children[i])
	}
}

// Insert adds key to the tree. Returns false, leaving the tree unchanged, if
// the key is already present.
func (bt *Tree[K]) Insert(key K) bool {
	if bt.root == 0 {
		// The empty leaf root is only written once the key lands in it.
		bt.root = bt.arena.Alloc(true).ID
	} else if bt.Search(key) {
		// Probe first: the descent below splits eagerly and must not
		// run for a duplicate.
		return false
	}

	n := bt.read(bt.root)
	if n.IsFull(bt.t) {
		n = algo.SplitRoot(bt.arena, bt.t, n, &bt.io)
		bt.root = n.ID
		bt.height++
		bt.emit(OpRootSplit, n.ID, key)
	}

	for !n.Leaf {
		i, _ := n.Search(key)
		child := bt.read(n.Children[i])

		if child.IsFull(bt.t) {
			algo.SplitChild(bt.arena, bt.t, n, i, &bt.io)
			bt.emit(OpSplit, n.ID, key)

			// The promoted median now sits at Keys[i]; keys above it
			// belong in the new right half.
			if key > n.Keys[i] {
				child = bt.arena.Get(n.Children[i+1])
			}
		}
		n = child
	}

	i, _ := n.Search(key)
	n.InsertKeyAt(i, key)
	bt.io.Write(n.ID)
	bt.size++
	return true
}

// Delete removes key from the tree. Returns false, leaving the tree
// unchanged, if the key is absent.
//
// The walk is a single top-down pass. Before stepping into a child that
// holds only t-1 keys, the child is topped up by borrowing from a sibling or
// merging with one, so the key can always be removed from a leaf without
// underflowing it. The same rule applies while descending to a predecessor
// or successor that replaces a key removed from a branch.
func (bt *Tree[K]) Delete(key K) bool {
	if bt.root == 0 {
		return false
	}

	// Probe first: the descent below rebalances eagerly and must not run
	// for a missing key.
	if !bt.Search(key) {
		return false
	}

	target := key
	n := bt.read(bt.root)
	for {
		i, found := n.Search(target)

		if n.Leaf {
			if !found {
				panic("diskbtree: delete target lost during descent")
			}
			n.RemoveKeyAt(i)
			bt.io.Write(n.ID)
			break
		}

		if found {
			n = bt.replaceInBranch(n, i, key, &target)
			continue
		}

		res := algo.Rebalance(bt.arena, bt.t, n, i, &bt.io)
		if res.Op != algo.OpNone {
			if res.Freed != 0 {
				bt.io.forget(res.Freed)
			}
			bt.emit(res.Op, n.ID, key)
		}
		next := n.Children[res.Index]
		bt.collapseRoot(n, key)
		n = bt.read(next)
	}

	bt.size--
	if root := bt.arena.Get(bt.root); root.NumKeys() == 0 {
		// Only a leaf root can be emptied here; branch roots collapse
		// as soon as a merge drains them.
		bt.free(bt.root)
		bt.root = 0
		bt.height = 0
	}
	return true
}

// replaceInBranch handles a target found at n.Keys[i] of a branch. If the
// left child can spare a key, the target is overwritten by its predecessor
// and the predecessor becomes the new target in the left subtree; likewise
// with the successor on the right. Otherwise both children are merged around
// the target, which then sits in the merged node. Returns the node to
// continue in.
func (bt *Tree[K]) replaceInBranch(n *base.Node[K], i int, key K, target *K) *base.Node[K] {
	left := bt.read(n.Children[i])
	if left.NumKeys() >= bt.t {
		pred := bt.maxUnder(left)
		n.Keys[i] = pred
		bt.io.Write(n.ID)
		*target = pred
		return left
	}

	right := bt.read(n.Children[i+1])
	if right.NumKeys() >= bt.t {
		succ := bt.minUnder(right)
		n.Keys[i] = succ
		bt.io.Write(n.ID)
		*target = succ
		return right
	}

	freed := algo.Merge(bt.arena, n, i, &bt.io)
	bt.io.forget(freed)
	bt.emit(OpMerge, n.ID, key)

	bt.collapseRoot(n, key)
	return left
}

// collapseRoot promotes the only child of an emptied branch root.
func (bt *Tree[K]) collapseRoot(n *base.Node[K], key K) {
	if n.ID != bt.root || n.Leaf || n.NumKeys() > 0 {
		return
	}

	child := n.Children[0]
	bt.free(n.ID)
	bt.root = child
	bt.height--
	bt.emit(OpRootCollapse, child, key)
}

// maxUnder returns the largest key in the subtree rooted at n
func (bt *Tree[K]) maxUnder(n *base.Node[K]) K {
	for !n.Leaf {
		n = bt.read(n.Children[len(n.Children)-1])
	}
	return n.Keys[n.NumKeys()-1]
}

// minUnder returns the smallest key in the subtree rooted at n
func (bt *Tree[K]) minUnder(n *base.Node[K]) K {
	for !n.Leaf {
		n = bt.read(n.Children[0])
	}
	return n.Keys[0]
}
