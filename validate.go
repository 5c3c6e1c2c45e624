package diskbtree

import (
	"cmp"
	"fmt"
)

// bounds is the open key interval a subtree must fall within
type bounds[K any] struct {
	lo, hi       K
	hasLo, hasHi bool
}

// IsValid reports whether every structural invariant holds. It is meant for
// tests and diagnostics, and does not count I/O.
func (bt *Tree[K]) IsValid() bool {
	if err := bt.Validate(); err != nil {
		bt.logger.Error("tree validation failed", "error", err)
		return false
	}
	return true
}

// Validate checks the tree and returns an error wrapping ErrInvalidTree that
// describes the first violation found:
//   - non-root nodes hold t-1 to 2t-1 keys, the root 1 to 2t-1
//   - a branch with k keys has k+1 children
//   - all leaves are at the same depth, equal to Height
//   - keys ascend strictly within a node and separate its children
//   - the key and node totals match Len and Nodes
func (bt *Tree[K]) Validate() error {
	if bt.root == 0 {
		if bt.size != 0 || bt.height != 0 {
			return fmt.Errorf("%w: empty tree reports size %d, height %d", ErrInvalidTree, bt.size, bt.height)
		}
		if live := bt.arena.Live(); live != 0 {
			return fmt.Errorf("%w: empty tree holds %d nodes", ErrInvalidTree, live)
		}
		return nil
	}

	v := validator[K]{bt: bt, leafDepth: -1}
	if err := v.check(bt.root, 0, bounds[K]{}); err != nil {
		return err
	}

	if v.leafDepth != bt.height {
		return fmt.Errorf("%w: leaves at depth %d, height reports %d", ErrInvalidTree, v.leafDepth, bt.height)
	}
	if v.keys != bt.size {
		return fmt.Errorf("%w: counted %d keys, size reports %d", ErrInvalidTree, v.keys, bt.size)
	}
	if live := bt.arena.Live(); v.nodes != live {
		return fmt.Errorf("%w: reached %d nodes, arena holds %d", ErrInvalidTree, v.nodes, live)
	}
	return nil
}

type validator[K cmp.Ordered] struct {
	bt        *Tree[K]
	leafDepth int
	keys      int
	nodes     int
}

func (v *validator[K]) check(id NodeID, depth int, b bounds[K]) error {
	t := v.bt.t
	n := v.bt.arena.Get(id)
	v.nodes++
	v.keys += n.NumKeys()

	isRoot := id == v.bt.root
	switch {
	case n.NumKeys() > 2*t-1:
		return fmt.Errorf("%w: node %d holds %d keys, max %d", ErrInvalidTree, id, n.NumKeys(), 2*t-1)
	case isRoot && n.NumKeys() == 0:
		return fmt.Errorf("%w: root %d holds no keys", ErrInvalidTree, id)
	case !isRoot && n.IsUnderfull(t):
		return fmt.Errorf("%w: node %d holds %d keys, min %d", ErrInvalidTree, id, n.NumKeys(), t-1)
	}

	for i, k := range n.Keys {
		if i > 0 && n.Keys[i-1] >= k {
			return fmt.Errorf("%w: node %d keys not strictly ascending at %d", ErrInvalidTree, id, i)
		}
		if (b.hasLo && k <= b.lo) || (b.hasHi && k >= b.hi) {
			return fmt.Errorf("%w: node %d key %v outside its separators", ErrInvalidTree, id, k)
		}
	}

	if n.Leaf {
		if len(n.Children) != 0 {
			return fmt.Errorf("%w: leaf %d has %d children", ErrInvalidTree, id, len(n.Children))
		}
		if v.leafDepth == -1 {
			v.leafDepth = depth
		} else if v.leafDepth != depth {
			return fmt.Errorf("%w: leaf %d at depth %d, expected %d", ErrInvalidTree, id, depth, v.leafDepth)
		}
		return nil
	}

	if len(n.Children) != n.NumKeys()+1 {
		return fmt.Errorf("%w: branch %d has %d keys and %d children", ErrInvalidTree, id, n.NumKeys(), len(n.Children))
	}

	for i, child := range n.Children {
		cb := b
		if i > 0 {
			cb.lo, cb.hasLo = n.Keys[i-1], true
		}
		if i < n.NumKeys() {
			cb.hi, cb.hasHi = n.Keys[i], true
		}
		if err := v.check(child, depth+1, cb); err != nil {
			return err
		}
	}
	return nil
}
