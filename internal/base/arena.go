package base

import (
	"cmp"
	"fmt"
)

// Arena owns every node of a tree. Nodes refer to each other by NodeID only,
// so a structural edit can hold a parent, a child and a sibling at once.
//
// Released IDs go back through a free list; released Node values are kept
// aside so their key and child slices are reused without reallocation.
type Arena[K cmp.Ordered] struct {
	degree int
	slots  []*Node[K] // slots[0] is always nil
	spare  []*Node[K]
	free   Freer
	live   int
}

// Freer hands out and takes back node IDs.
type Freer interface {
	Allocate() NodeID
	Free(id NodeID)
	Reset()
}

// NewArena creates an arena for nodes of minimum degree t. Key slices are
// sized 2t and child slices 2t+1 so a node never grows its backing arrays.
func NewArena[K cmp.Ordered](t int, free Freer) *Arena[K] {
	return &Arena[K]{
		degree: t,
		slots:  make([]*Node[K], 1, 64),
		free:   free,
	}
}

// Alloc creates a node and returns it with its ID
func (a *Arena[K]) Alloc(leaf bool) *Node[K] {
	id := a.free.Allocate()
	if id == 0 {
		id = NodeID(len(a.slots))
		a.slots = append(a.slots, nil)
	}

	var n *Node[K]
	if len(a.spare) > 0 {
		n = a.spare[len(a.spare)-1]
		a.spare = a.spare[:len(a.spare)-1]
	} else {
		n = &Node[K]{
			Keys:     make([]K, 0, 2*a.degree),
			Children: make([]NodeID, 0, 2*a.degree+1),
		}
	}

	n.ID = id
	n.Leaf = leaf
	a.slots[id] = n
	a.live++
	return n
}

// Get returns the node for id. Looking up a freed or unknown ID panics.
func (a *Arena[K]) Get(id NodeID) *Node[K] {
	if id == 0 || int(id) >= len(a.slots) || a.slots[id] == nil {
		panic(fmt.Sprintf("arena: node %d not allocated", id))
	}
	return a.slots[id]
}

// Free releases the node for id
func (a *Arena[K]) Free(id NodeID) {
	n := a.Get(id)
	n.Reset()
	a.slots[id] = nil
	a.spare = append(a.spare, n)
	a.free.Free(id)
	a.live--
}

// Live returns the number of allocated nodes
func (a *Arena[K]) Live() int {
	return a.live
}

// Reset releases every node at once
func (a *Arena[K]) Reset() {
	clear(a.slots)
	a.slots = a.slots[:1]
	a.spare = a.spare[:0]
	a.free.Reset()
	a.live = 0
}
