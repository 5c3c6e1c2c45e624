package diskbtree

import "iter"

// Keys returns every key in ascending order. The slice is freshly built by
// walking the whole tree, one read per node.
func (bt *Tree[K]) Keys() []K {
	keys := make([]K, 0, bt.size)
	for k := range bt.All() {
		keys = append(keys, k)
	}
	return keys
}

// All returns an in-order iterator over the keys. Each iteration re-walks
// the tree from the root; the tree must not be modified while iterating.
func (bt *Tree[K]) All() iter.Seq[K] {
	return func(yield func(K) bool) {
		if bt.root == 0 {
			return
		}
		bt.ascend(bt.root, yield)
	}
}

func (bt *Tree[K]) ascend(id NodeID, yield func(K) bool) bool {
	n := bt.read(id)
	for i, k := range n.Keys {
		if !n.Leaf && !bt.ascend(n.Children[i], yield) {
			return false
		}
		if !yield(k) {
			return false
		}
	}
	if !n.Leaf {
		return bt.ascend(n.Children[len(n.Children)-1], yield)
	}
	return true
}

// Min returns the smallest key, or false if the tree is empty
func (bt *Tree[K]) Min() (K, bool) {
	if bt.root == 0 {
		var zero K
		return zero, false
	}
	return bt.minUnder(bt.read(bt.root)), true
}

// Max returns the largest key, or false if the tree is empty
func (bt *Tree[K]) Max() (K, bool) {
	if bt.root == 0 {
		var zero K
		return zero, false
	}
	return bt.maxUnder(bt.read(bt.root)), true
}
