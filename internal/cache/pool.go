// Package cache models a buffer pool sitting in front of the simulated disk.
//
// The pool holds no node data, only which node IDs would currently be
// resident. Every tree read or write is run through Access, producing
// hit/miss/eviction figures for a given pool size.
package cache

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/elastic/go-freelru"

	"diskbtree/internal/base"
)

const (
	MinPoolSize = 4 // Minimum: hold a parent, a child and both siblings
)

// Pool implements an LRU residency model keyed by node ID.
type Pool struct {
	lru *freelru.LRU[base.NodeID, struct{}]

	// Stats
	hits      uint64
	misses    uint64
	evictions uint64
}

// Stats holds pool counters since creation or the last ClearStats.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// NewPool creates a pool holding at most capacity node IDs
func NewPool(capacity int) (*Pool, error) {
	capacity = max(capacity, MinPoolSize)

	lru, err := freelru.New[base.NodeID, struct{}](uint32(capacity), hashNodeID)
	if err != nil {
		return nil, fmt.Errorf("buffer pool: %w", err)
	}
	return &Pool{lru: lru}, nil
}

// hashNodeID is the freelru bucket hash.
func hashNodeID(id base.NodeID) uint32 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(id))
	return uint32(xxhash.Sum64(buf[:]))
}

// Access records a reference to id, loading it into the pool on a miss.
// Returns true on a hit.
func (p *Pool) Access(id base.NodeID) bool {
	if _, ok := p.lru.Get(id); ok {
		p.hits++
		return true
	}

	p.misses++
	if p.lru.Add(id, struct{}{}) {
		p.evictions++
	}
	return false
}

// Drop forgets id without counting an eviction. Used when a node is freed.
func (p *Pool) Drop(id base.NodeID) {
	p.lru.Remove(id)
}

// Contains reports whether id is resident, without touching recency
func (p *Pool) Contains(id base.NodeID) bool {
	return p.lru.Contains(id)
}

// Len returns the number of resident node IDs
func (p *Pool) Len() int {
	return p.lru.Len()
}

// Purge empties the pool
func (p *Pool) Purge() {
	p.lru.Purge()
}

// Stats returns pool statistics
func (p *Pool) Stats() Stats {
	return Stats{
		Hits:      p.hits,
		Misses:    p.misses,
		Evictions: p.evictions,
	}
}

// ClearStats resets the pool's positive incrementing statistics
func (p *Pool) ClearStats() {
	p.hits = 0
	p.misses = 0
	p.evictions = 0
}
