package energyaware

import "fmt"

type constError string

// ErrEmptyEvictionSet may be returned from [Scorer.SelectVictim].
const ErrEmptyEvictionSet = constError("empty eviction-set")

// ErrUnknownPolicy may be returned from [New].
const ErrUnknownPolicy = constError("unknown replacement policy")

func (errStr constError) Error() string { return string(errStr) }

func emptyEvictionSetError() error {
	return fmt.Errorf(
		"%w: victim selection requires at least one candidate",
		ErrEmptyEvictionSet)
}

func unknownPolicyError(kind Kind) error {
	return fmt.Errorf(
		"%w: %q", ErrUnknownPolicy, kind)
}
