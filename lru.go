package energyaware

type (
	// LRU is the baseline least-recently-used policy over the same
	// slot-arena contract as [Scorer]. It tracks only touch times;
	// write, utilization, and dirty notifications carry no signal
	// for recency ordering and are ignored.
	// Constructed by [NewLRU].
	LRU struct {
		clock     Clock
		lastTouch []Tick
	}
)

// NewLRU creates an [LRU] policy covering slots lines.
func NewLRU(slots int, clock Clock) *LRU {
	return &LRU{
		clock:     clock,
		lastTouch: make([]Tick, slots),
	}
}

// Reset marks slot as just inserted.
func (l *LRU) Reset(slot int) { l.lastTouch[slot] = l.clock() }

// Invalidate clears slot's touch time.
// A zero touch time marks the slot as a preferred victim.
func (l *LRU) Invalidate(slot int) { l.lastTouch[slot] = 0 }

// Touch records an access hit on slot.
func (l *LRU) Touch(slot int) { l.lastTouch[slot] = l.clock() }

// RecordWrite is a no-op for LRU.
func (l *LRU) RecordWrite(int) {}

// RecordUtilization is a no-op for LRU.
func (l *LRU) RecordUtilization(int, uint32) {}

// SetDirty is a no-op for LRU.
func (l *LRU) SetDirty(int, bool) {}

// SelectVictim returns the least recently touched candidate,
// preferring never-touched slots. Ties resolve to the
// lowest-index candidate.
// Returns [ErrEmptyEvictionSet] if evictionSet is empty.
func (l *LRU) SelectVictim(evictionSet []int) (int, error) {
	if len(evictionSet) == 0 {
		return 0, emptyEvictionSetError()
	}
	var (
		victim = evictionSet[0]
		oldest = l.lastTouch[victim]
	)
	for _, slot := range evictionSet[1:] {
		if debugging {
			assert(slot >= 0 && slot < len(l.lastTouch),
				"eviction-set slot out of arena range")
		}
		if touched := l.lastTouch[slot]; touched < oldest {
			victim = slot
			oldest = touched
		}
	}
	return victim, nil
}
