// Package cachesim models a set-associative cache driven by a
// replacement policy from the parent module. It exists to exercise
// policies against real access streams; it stores tags only, no data.
package cachesim

import (
	"encoding/binary"
	"fmt"
	"math/bits"

	"github.com/cespare/xxhash/v2"
	energyaware "github.com/djdv/go-energyaware"
)

type (
	// Config describes the cache geometry and the policy managing it.
	Config struct {
		// Sets is the number of cache sets; must be a power of two.
		Sets int
		// Ways is the associativity of each set.
		Ways int
		// Policy selects the replacement policy variant.
		Policy energyaware.Kind
		// Engine configures the policy's cost model.
		// Engine.BlockSize is the line size of this cache.
		Engine energyaware.Config
	}

	// Stats accumulates the outcome of every [Cache.Access].
	Stats struct {
		Accesses, Hits, Misses,
		Reads, Writes,
		Evictions, Writebacks uint64
	}

	tagEntry struct {
		tag   uint64
		valid bool
		dirty bool
	}

	// A Cache is a set-associative tag store whose replacement
	// decisions are delegated to a policy. Concurrent access must
	// be guarded by the caller. Constructed by [New].
	Cache struct {
		policy  energyaware.Policy
		entries []tagEntry
		scratch []int
		config  Config
		setMask uint64
		tick    energyaware.Tick
		stats   Stats
	}
)

type constError string

func (errStr constError) Error() string { return string(errStr) }

// ErrInvalidGeometry may be returned from [New].
const ErrInvalidGeometry = constError("invalid cache geometry")

// New creates a [Cache] with the given geometry and policy.
// Sets must be a positive power of two and Ways positive,
// so that addresses mask cleanly onto sets.
func New(config Config) (*Cache, error) {
	var (
		sets = config.Sets
		ways = config.Ways
	)
	if sets < 1 || bits.OnesCount(uint(sets)) != 1 {
		return nil, fmt.Errorf(
			"%w: sets must be a positive power of two but got %d",
			ErrInvalidGeometry, sets)
	}
	if ways < 1 {
		return nil, fmt.Errorf(
			"%w: ways must be positive but got %d",
			ErrInvalidGeometry, ways)
	}
	cache := &Cache{
		config:  config,
		entries: make([]tagEntry, sets*ways),
		scratch: make([]int, ways),
		setMask: uint64(sets) - 1,
	}
	policy, err := energyaware.New(
		config.Policy, config.Engine,
		sets*ways, cache.now,
	)
	if err != nil {
		return nil, err
	}
	cache.policy = policy
	return cache, nil
}

// now is the logical clock handed to the policy;
// it advances once per access.
func (c *Cache) now() energyaware.Tick { return c.tick }

// Access runs one read or write of size bytes at addr through the
// cache, reporting whether it hit. Misses fill the line, evicting a
// policy-chosen victim if the set is full; evicting a dirty line
// counts a write-back.
func (c *Cache) Access(addr uint64, write bool, size uint32) bool {
	c.tick++
	c.stats.Accesses++
	if write {
		c.stats.Writes++
	} else {
		c.stats.Reads++
	}
	var (
		blockSize = uint64(c.config.Engine.BlockSize)
		tag       = addr / blockSize
		base      = int(c.setIndex(tag)) * c.config.Ways
		used      = min(size, c.config.Engine.BlockSize)
	)
	if way, hit := c.lookup(base, tag); hit {
		slot := base + way
		c.stats.Hits++
		c.policy.Touch(slot)
		c.policy.RecordUtilization(slot, used)
		if write {
			c.policy.RecordWrite(slot)
			c.policy.SetDirty(slot, true)
			c.entries[slot].dirty = true
		}
		return true
	}
	c.stats.Misses++
	c.fill(base, tag, write)
	return false
}

// setIndex hashes the block number onto a set.
// Hashing (rather than low-bit slicing) spreads strided
// trace patterns across sets.
func (c *Cache) setIndex(tag uint64) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], tag)
	return xxhash.Sum64(buf[:]) & c.setMask
}

func (c *Cache) lookup(base int, tag uint64) (int, bool) {
	for way := range c.config.Ways {
		entry := &c.entries[base+way]
		if entry.valid && entry.tag == tag {
			return way, true
		}
	}
	return 0, false
}

// fill places tag into the set starting at base,
// evicting a victim if no way is free.
func (c *Cache) fill(base int, tag uint64, write bool) {
	slot, haveFree := c.freeWay(base)
	if !haveFree {
		slot = c.evict(base)
	}
	entry := &c.entries[slot]
	entry.tag = tag
	entry.valid = true
	entry.dirty = write
	c.policy.Reset(slot)
	if write {
		c.policy.RecordWrite(slot)
		c.policy.SetDirty(slot, true)
	}
}

func (c *Cache) freeWay(base int) (int, bool) {
	for way := range c.config.Ways {
		if !c.entries[base+way].valid {
			return base + way, true
		}
	}
	return 0, false
}

func (c *Cache) evict(base int) int {
	evictionSet := c.scratch
	for way := range c.config.Ways {
		evictionSet[way] = base + way
	}
	victim, err := c.policy.SelectVictim(evictionSet)
	if err != nil {
		// Ways >= 1 is checked in New; the set is never empty.
		panic(err)
	}
	entry := &c.entries[victim]
	if entry.dirty {
		c.stats.Writebacks++
	}
	entry.valid = false
	entry.dirty = false
	c.stats.Evictions++
	c.policy.Invalidate(victim)
	return victim
}

// Stats returns a snapshot of the accumulated counters.
func (c *Cache) Stats() Stats { return c.stats }

// HitRate returns the fraction of accesses that hit, in [0,1].
func (s Stats) HitRate() float64 {
	if s.Accesses == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.Accesses)
}

// EnergyEstimate prices the accumulated traffic with the given
// per-operation energy costs: reads at readCost, writes and
// write-backs at writeCost.
func (s Stats) EnergyEstimate(readCost, writeCost float64) float64 {
	return float64(s.Reads)*readCost +
		float64(s.Writes+s.Writebacks)*writeCost
}
