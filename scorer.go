package energyaware

import "github.com/djdv/go-energyaware/internal/satcounter"

type (
	// Tick is a monotonic logical timestamp supplied by the caller's
	// clock. The engine never advances it; it only compares and stores it.
	Tick uint64

	// Clock yields the caller's current logical time.
	// Values must never decrease between calls.
	Clock func() Tick

	// Config holds the construction-time parameters of the cost model.
	// It is immutable after construction. The engine does not validate
	// weights; negative weights produce a degenerate but well-defined
	// ordering.
	Config struct {
		// FrequencyBits and WriteBits set the widths of the
		// per-line saturating counters.
		FrequencyBits, WriteBits uint
		// RecencyWeight through UtilizationWeight scale the
		// normalized cost factors.
		RecencyWeight, FrequencyWeight,
		WriteWeight, DirtyWeight,
		UtilizationWeight float64
		// WriteEnergyCost and ReadEnergyCost are the relative
		// energy costs of one backing-store write and read.
		WriteEnergyCost, ReadEnergyCost float64
		// BlockSize is the line size in bytes,
		// used to normalize utilization.
		BlockSize uint32
	}

	// LineMetadata is the replacement bookkeeping for one resident
	// cache line. One record exists per slot; records are owned by
	// the [Scorer]'s arena and addressed by slot index.
	LineMetadata struct {
		// LastTouch is the logical time of the most recent access.
		// Zero means never touched since reset/invalidate.
		LastTouch Tick
		// AccessFreq counts accesses; saturates at its width.
		AccessFreq satcounter.Counter
		// WriteCount counts writes; saturates at its width.
		WriteCount satcounter.Counter
		// BytesUsed is the high-water mark of sub-block bytes
		// referenced since the last reset. Never exceeds the
		// configured block size.
		BytesUsed uint32
		// Dirty is true while the line holds data
		// not yet written back.
		Dirty bool
		// PredictedReuse is reserved; maintained but not consumed
		// by the current cost function.
		PredictedReuse uint32
		// CachedCost is the eviction score as of the most recent
		// mutating call or victim search.
		CachedCost float64
	}

	// Scorer decides eviction desirability for a fixed arena of cache
	// slots using an energy-aware cost model. Concurrent access must
	// be guarded by the caller. Constructed by [NewScorer].
	Scorer struct {
		clock  Clock
		lines  []LineMetadata
		config Config
	}
)

// DefaultConfig returns a configuration plausible for a 64-byte-line
// last-level cache backed by a write-asymmetric technology.
func DefaultConfig() Config {
	return Config{
		FrequencyBits:     4,
		WriteBits:         4,
		RecencyWeight:     1.0,
		FrequencyWeight:   1.0,
		WriteWeight:       0.5,
		DirtyWeight:       0.3,
		UtilizationWeight: 0.5,
		WriteEnergyCost:   2.0,
		ReadEnergyCost:    0.5,
		BlockSize:         64,
	}
}

// NewScorer creates a [Scorer] owning one [LineMetadata] record per slot,
// all starting invalid. clock supplies the caller's logical time and must
// be non-nil and monotonic.
func NewScorer(config Config, slots int, clock Clock) *Scorer {
	lines := make([]LineMetadata, slots)
	for i := range lines {
		lines[i].AccessFreq = satcounter.New(config.FrequencyBits)
		lines[i].WriteCount = satcounter.New(config.WriteBits)
	}
	return &Scorer{
		config: config,
		clock:  clock,
		lines:  lines,
	}
}

// Slots returns the arena size.
func (s *Scorer) Slots() int { return len(s.lines) }

// Line returns the metadata record for slot.
// The record remains owned by the scorer.
func (s *Scorer) Line(slot int) *LineMetadata { return &s.lines[slot] }

// Reset initializes slot's record for a newly inserted line.
// The insertion counts as the first access and the line is
// optimistically assumed fully utilized.
func (s *Scorer) Reset(slot int) {
	line := &s.lines[slot]
	line.LastTouch = s.clock()
	line.AccessFreq.Reset()
	line.AccessFreq.Increment()
	line.WriteCount.Reset()
	line.BytesUsed = s.config.BlockSize
	line.Dirty = false
	line.PredictedReuse = 1
	line.CachedCost = s.cost(line)
}

// Invalidate clears slot's record when its line is evicted
// or explicitly invalidated. Idempotent.
func (s *Scorer) Invalidate(slot int) {
	line := &s.lines[slot]
	line.LastTouch = 0
	line.AccessFreq.Reset()
	line.WriteCount.Reset()
	line.BytesUsed = 0
	line.Dirty = false
	line.PredictedReuse = 0
	line.CachedCost = 0
}

// Touch records an access hit on slot.
func (s *Scorer) Touch(slot int) {
	line := &s.lines[slot]
	line.LastTouch = s.clock()
	line.AccessFreq.Increment()
	line.CachedCost = s.cost(line)
}

// RecordWrite records a write to slot's line.
func (s *Scorer) RecordWrite(slot int) {
	line := &s.lines[slot]
	line.WriteCount.Increment()
	line.CachedCost = s.cost(line)
}

// RecordUtilization records an observed sub-block access of
// bytesAccessed bytes, raising the line's utilization high-water mark.
func (s *Scorer) RecordUtilization(slot int, bytesAccessed uint32) {
	line := &s.lines[slot]
	line.BytesUsed = max(line.BytesUsed, bytesAccessed)
	line.CachedCost = s.cost(line)
}

// SetDirty records a write-back state transition on slot's line.
func (s *Scorer) SetDirty(slot int, dirty bool) {
	line := &s.lines[slot]
	line.Dirty = dirty
	line.CachedCost = s.cost(line)
}

// SelectVictim returns the member of evictionSet whose line scores
// highest, refreshing every candidate's cached cost as a byproduct.
// Recency depends on the clock, so scores may have drifted since the
// last mutating call; every candidate is recomputed here rather than
// read from cache. Ties resolve to the lowest-index candidate.
// Returns [ErrEmptyEvictionSet] if evictionSet is empty.
func (s *Scorer) SelectVictim(evictionSet []int) (int, error) {
	if len(evictionSet) == 0 {
		return 0, emptyEvictionSetError()
	}
	var (
		victim  = evictionSet[0]
		maxCost = -1.0
	)
	for _, slot := range evictionSet {
		if debugging {
			assert(slot >= 0 && slot < len(s.lines),
				"eviction-set slot out of arena range")
		}
		line := &s.lines[slot]
		cost := s.cost(line)
		line.CachedCost = cost
		if cost > maxCost {
			victim = slot
			maxCost = cost
		}
	}
	return victim, nil
}

// cost computes the eviction desirability of line at the current
// logical time. Higher means cheaper to evict. Factors:
//
//   - recency: fraction of elapsed time since the last touch; older
//     lines cost less to retain.
//   - frequency: inverse normalized access count; rarely used lines
//     are better victims.
//   - write intensity and dirtiness: normalized write count and the
//     write-back obligation, weighted against the backing store's
//     asymmetric write energy.
//   - utilization: inverse fraction of the block actually referenced;
//     sparse lines are cheap to evict.
//   - a future-access energy estimate, credited at one tenth, minus
//     one fifth of the write-back energy owed if dirty.
//
// The result clamps at zero.
func (s *Scorer) cost(line *LineMetadata) float64 {
	var (
		config  = &s.config
		now     = s.clock()
		recency float64
	)
	if now > line.LastTouch {
		recency = float64(now-line.LastTouch) / float64(now)
	}
	var (
		frequency     = float64(line.AccessFreq.Read())
		writes        = float64(line.WriteCount.Read())
		frequencyCost = 1 - frequency/float64(line.AccessFreq.Max())
		writeCost     = writes / float64(line.WriteCount.Max())
		utilCost      = 1 - float64(line.BytesUsed)/float64(config.BlockSize)
		futureCost    = frequency*config.ReadEnergyCost + writes*config.WriteEnergyCost
		dirtyCost     float64
		writebackCost float64
	)
	if line.Dirty {
		dirtyCost = 1
		writebackCost = config.WriteEnergyCost
	}
	score := config.RecencyWeight*recency +
		config.FrequencyWeight*frequencyCost +
		config.WriteWeight*writeCost +
		config.DirtyWeight*dirtyCost +
		config.UtilizationWeight*utilCost +
		0.1*futureCost -
		0.2*writebackCost
	return max(0, score)
}
