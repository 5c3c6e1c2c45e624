package freelist

import "diskbtree/internal/base"

// Freelist recycles node IDs released by merges and root collapses.
// IDs are handed back out in LIFO order so a split that follows a merge
// reuses the slot that was just vacated.
type Freelist struct {
	freed []base.NodeID            // Stack of free IDs
	index map[base.NodeID]struct{} // Membership for double-free detection
}

// New creates a new Freelist with empty state
func New() *Freelist {
	return &Freelist{
		index: make(map[base.NodeID]struct{}),
	}
}

// Allocate returns a free node ID, or 0 if none available.
func (f *Freelist) Allocate() base.NodeID {
	if len(f.freed) == 0 {
		return 0
	}

	id := f.freed[len(f.freed)-1]
	f.freed = f.freed[:len(f.freed)-1]
	delete(f.index, id)
	return id
}

// Free adds a node ID to the free list. Freeing an ID twice is a no-op.
func (f *Freelist) Free(id base.NodeID) {
	if id == 0 {
		return
	}
	if _, exists := f.index[id]; exists {
		return
	}
	f.index[id] = struct{}{}
	f.freed = append(f.freed, id)
}

// Contains reports whether id is currently free
func (f *Freelist) Contains(id base.NodeID) bool {
	_, exists := f.index[id]
	return exists
}

// Len returns the number of free IDs
func (f *Freelist) Len() int {
	return len(f.freed)
}

// Reset drops every free ID
func (f *Freelist) Reset() {
	f.freed = f.freed[:0]
	clear(f.index)
}
