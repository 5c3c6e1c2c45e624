package diskbtree

// BulkLoad fills an empty tree from keys, which must be strictly ascending.
// Nodes are packed bottom-up, one level at a time, and each is written exactly
// once; no node is read. Fails with ErrNotEmpty if the tree already holds keys
// and ErrKeysUnsorted if the input is out of order or repeats a key, leaving
// the tree unchanged in both cases.
func (bt *Tree[K]) BulkLoad(keys []K) error {
	if bt.root != 0 {
		return ErrNotEmpty
	}
	for i := 1; i < len(keys); i++ {
		if keys[i-1] >= keys[i] {
			return ErrKeysUnsorted
		}
	}
	if len(keys) == 0 {
		return nil
	}

	nodes, seps := bt.loadLeaves(keys)
	height := 0
	for len(nodes) > 1 {
		nodes, seps = bt.loadBranches(nodes, seps)
		height++
	}

	bt.root = nodes[0]
	bt.size = len(keys)
	bt.height = height
	bt.logger.Info("bulk loaded", "keys", bt.size, "nodes", bt.arena.Live(), "height", height)
	return nil
}

// loadLeaves spreads keys over the fewest leaves that can hold them, taking
// one key out between each pair of leaves as a separator. Leaf sizes differ
// by at most one, which keeps every leaf between t-1 and 2t-1 keys.
func (bt *Tree[K]) loadLeaves(keys []K) ([]NodeID, []K) {
	groups := 1
	if len(keys) > 2*bt.t-1 {
		groups = (len(keys) + 2*bt.t) / (2 * bt.t)
	}
	total := len(keys) - (groups - 1)
	per, extra := total/groups, total%groups

	ids := make([]NodeID, 0, groups)
	seps := make([]K, 0, groups-1)
	pos := 0
	for g := range groups {
		size := per
		if g < extra {
			size++
		}

		leaf := bt.arena.Alloc(true)
		leaf.Keys = append(leaf.Keys, keys[pos:pos+size]...)
		bt.io.Write(leaf.ID)
		ids = append(ids, leaf.ID)
		pos += size

		if g < groups-1 {
			seps = append(seps, keys[pos])
			pos++
		}
	}
	return ids, seps
}

// loadBranches groups one level of nodes under parents of t to 2t children.
// seps[i] separates children[i] and children[i+1]; the separators falling
// between groups are returned for the level above.
func (bt *Tree[K]) loadBranches(children []NodeID, seps []K) ([]NodeID, []K) {
	groups := 1
	if len(children) > 2*bt.t {
		groups = (len(children) + 2*bt.t - 1) / (2 * bt.t)
	}
	per, extra := len(children)/groups, len(children)%groups

	ids := make([]NodeID, 0, groups)
	up := make([]K, 0, groups-1)
	pos := 0
	for g := range groups {
		size := per
		if g < extra {
			size++
		}

		n := bt.arena.Alloc(false)
		n.Children = append(n.Children, children[pos:pos+size]...)
		n.Keys = append(n.Keys, seps[pos:pos+size-1]...)
		bt.io.Write(n.ID)
		ids = append(ids, n.ID)
		pos += size

		if g < groups-1 {
			up = append(up, seps[pos-1])
		}
	}
	return ids, up
}
