package energyaware

type (
	// Kind selects a replacement policy variant at configuration time.
	Kind string

	// A Policy answers victim-selection queries over an arena of cache
	// slots and accepts the lifecycle notifications that keep its
	// bookkeeping current. Callers address lines by slot index; each
	// slot's metadata is owned exclusively by the policy.
	//
	// The caller must Reset a slot before issuing any other mutating
	// call for it, and must guard concurrent access per eviction-set.
	Policy interface {
		// Reset initializes a slot for a newly inserted line.
		Reset(slot int)
		// Invalidate clears a slot when its line leaves the cache.
		Invalidate(slot int)
		// Touch records an access hit.
		Touch(slot int)
		// RecordWrite records a write to a resident line.
		RecordWrite(slot int)
		// RecordUtilization records an observed sub-block access width.
		RecordUtilization(slot int, bytesAccessed uint32)
		// SetDirty records a write-back state transition.
		SetDirty(slot int, dirty bool)
		// SelectVictim returns the best eviction candidate among
		// the given slots, or [ErrEmptyEvictionSet].
		SelectVictim(evictionSet []int) (int, error)
	}
)

const (
	// KindEnergyAware scores candidates with the energy-aware
	// cost model of [Scorer].
	KindEnergyAware = Kind("energy-aware")
	// KindLRU evicts the least recently touched candidate.
	KindLRU = Kind("lru")
)

// New creates the [Policy] variant named by kind, covering slots lines
// and reading logical time from clock.
// Returns [ErrUnknownPolicy] for unrecognized kinds.
func New(kind Kind, config Config, slots int, clock Clock) (Policy, error) {
	switch kind {
	case KindEnergyAware:
		return NewScorer(config, slots, clock), nil
	case KindLRU:
		return NewLRU(slots, clock), nil
	default:
		return nil, unknownPolicyError(kind)
	}
}
