package diskbtree

import (
	"diskbtree/internal/base"
	"diskbtree/internal/cache"
)

// IOStats reports simulated disk activity. Reads counts node visits and
// Writes counts node creations and modifications. The Pool fields stay zero
// unless WithBufferPool is set.
type IOStats struct {
	Reads  uint64
	Writes uint64

	PoolHits      uint64
	PoolMisses    uint64
	PoolEvictions uint64
}

// diskIO is the algo.Tracker for a tree. It counts node reads and writes and
// runs each one through the buffer pool when one is configured.
type diskIO struct {
	reads  uint64
	writes uint64
	pool   *cache.Pool
}

func (d *diskIO) Read(id base.NodeID) {
	d.reads++
	if d.pool != nil {
		d.pool.Access(id)
	}
}

func (d *diskIO) Write(id base.NodeID) {
	d.writes++
	if d.pool != nil {
		d.pool.Access(id)
	}
}

// forget drops a freed node from the pool
func (d *diskIO) forget(id base.NodeID) {
	if d.pool != nil {
		d.pool.Drop(id)
	}
}

func (d *diskIO) stats() IOStats {
	s := IOStats{
		Reads:  d.reads,
		Writes: d.writes,
	}
	if d.pool != nil {
		ps := d.pool.Stats()
		s.PoolHits = ps.Hits
		s.PoolMisses = ps.Misses
		s.PoolEvictions = ps.Evictions
	}
	return s
}

func (d *diskIO) reset() {
	d.reads = 0
	d.writes = 0
	if d.pool != nil {
		d.pool.ClearStats()
	}
}

// IOStats returns the simulated disk counters
func (bt *Tree[K]) IOStats() IOStats {
	return bt.io.stats()
}

// ResetIOStats zeroes the simulated disk counters. Pool residency is kept.
func (bt *Tree[K]) ResetIOStats() {
	bt.io.reset()
}
