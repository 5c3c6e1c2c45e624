package base

import (
	"cmp"
	"sort"
)

// searchThreshold is the key count above which Search switches from a linear
// scan to binary search.
const searchThreshold = 32

// NodeID addresses a node in the Arena. Zero is never allocated.
type NodeID uint64

// Node represents a B-tree node. Keys are kept in strict ascending order.
// A branch node with k keys always has k+1 children; a leaf has none.
type Node[K cmp.Ordered] struct {
	ID       NodeID
	Leaf     bool // Fixed at allocation
	Keys     []K
	Children []NodeID
}

// NumKeys returns the number of keys held by the node
func (n *Node[K]) NumKeys() int {
	return len(n.Keys)
}

// IsLeaf returns true if this is a leaf Node
func (n *Node[K]) IsLeaf() bool {
	return n.Leaf
}

// IsFull checks if a node holds the maximum 2t-1 keys
func (n *Node[K]) IsFull(t int) bool {
	return len(n.Keys) == 2*t-1
}

// IsUnderfull checks if a node has fewer than t-1 keys (doesn't apply to root)
func (n *Node[K]) IsUnderfull(t int) bool {
	return len(n.Keys) < t-1
}

// IsMinimal reports whether the node sits exactly at the t-1 key minimum.
func (n *Node[K]) IsMinimal(t int) bool {
	return len(n.Keys) == t-1
}

// Search returns the lower-bound position of key and whether the key at that
// position equals it. For a branch, a miss at idx means descend Children[idx].
func (n *Node[K]) Search(key K) (int, bool) {
	numKeys := len(n.Keys)

	if numKeys < searchThreshold {
		i := 0
		for i < numKeys && n.Keys[i] < key {
			i++
		}
		return i, i < numKeys && n.Keys[i] == key
	}

	i := sort.Search(numKeys, func(i int) bool {
		return n.Keys[i] >= key
	})
	return i, i < numKeys && n.Keys[i] == key
}

// InsertKeyAt inserts key at index, shifting the tail right
func (n *Node[K]) InsertKeyAt(index int, key K) {
	var zero K
	n.Keys = append(n.Keys, zero)
	copy(n.Keys[index+1:], n.Keys[index:])
	n.Keys[index] = key
}

// RemoveKeyAt removes and returns the key at index
func (n *Node[K]) RemoveKeyAt(index int) K {
	key := n.Keys[index]
	copy(n.Keys[index:], n.Keys[index+1:])
	n.Keys = n.Keys[:len(n.Keys)-1]
	return key
}

// InsertChildAt inserts child at index, shifting the tail right
func (n *Node[K]) InsertChildAt(index int, child NodeID) {
	n.Children = append(n.Children, 0)
	copy(n.Children[index+1:], n.Children[index:])
	n.Children[index] = child
}

// RemoveChildAt removes and returns the child at index
func (n *Node[K]) RemoveChildAt(index int) NodeID {
	child := n.Children[index]
	copy(n.Children[index:], n.Children[index+1:])
	n.Children = n.Children[:len(n.Children)-1]
	return child
}

// Reset clears the node for reuse, keeping slice capacity
func (n *Node[K]) Reset() {
	clear(n.Keys)
	n.ID = 0
	n.Leaf = false
	n.Keys = n.Keys[:0]
	n.Children = n.Children[:0]
}
