package satcounter_test

import (
	"testing"

	"github.com/djdv/go-energyaware/internal/satcounter"
)

func TestCounter(t *testing.T) {
	t.Run("saturation", saturation)
	t.Run("underflow", underflow)
	t.Run("reset", reset)
	t.Run("zero width", zeroWidth)
}

func saturation(t *testing.T) {
	t.Parallel()
	const (
		bits    = 3
		ceiling = 1<<bits - 1
		steps   = ceiling * 2
	)
	counter := satcounter.New(bits)
	if got := counter.Max(); got != ceiling {
		t.Fatalf(
			"expected ceiling for %d bits"+
				"\n\tgot: %d"+
				"\n\twant: %d",
			bits, got, ceiling)
	}
	for range steps {
		counter.Increment()
	}
	if got := counter.Read(); got != ceiling {
		t.Fatalf(
			"expected counter to clamp at its ceiling"+
				"\n\tgot: %d"+
				"\n\twant: %d",
			got, ceiling)
	}
}

func underflow(t *testing.T) {
	t.Parallel()
	counter := satcounter.New(2)
	counter.Increment()
	counter.Decrement()
	counter.Decrement()
	if got := counter.Read(); got != 0 {
		t.Fatalf("expected counter to clamp at zero but got %d", got)
	}
}

func reset(t *testing.T) {
	t.Parallel()
	counter := satcounter.New(4)
	counter.Increment()
	counter.Increment()
	counter.Reset()
	if got := counter.Read(); got != 0 {
		t.Fatalf("expected reset to zero the count but got %d", got)
	}
	if got := counter.Max(); got != 1<<4-1 {
		t.Fatalf("expected reset to preserve the width but got ceiling %d", got)
	}
}

// A zero-width counter is degenerate but well-defined:
// permanently pinned at zero.
func zeroWidth(t *testing.T) {
	t.Parallel()
	counter := satcounter.New(0)
	counter.Increment()
	if got := counter.Read(); got != 0 {
		t.Fatalf("expected zero-width counter to stay at zero but got %d", got)
	}
	if got := counter.Max(); got != 0 {
		t.Fatalf("expected zero-width ceiling of zero but got %d", got)
	}
}
