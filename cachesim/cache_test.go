package cachesim_test

import (
	"errors"
	"testing"

	energyaware "github.com/djdv/go-energyaware"
	"github.com/djdv/go-energyaware/cachesim"
)

func TestCache(t *testing.T) {
	t.Run("invalid geometry", invalidGeometry)
	t.Run("unknown policy", unknownPolicy)
	t.Run("miss then hit", missThenHit)
	t.Run("distinct blocks", distinctBlocks)
	t.Run("eviction and write-back", evictionWriteback)
	t.Run("lru policy", lruPolicy)
}

func defaultConfig() cachesim.Config {
	return cachesim.Config{
		Sets:   4,
		Ways:   2,
		Policy: energyaware.KindEnergyAware,
		Engine: energyaware.DefaultConfig(),
	}
}

func newCache(tb testing.TB, config cachesim.Config) *cachesim.Cache {
	tb.Helper()
	cache, err := cachesim.New(config)
	if err != nil {
		tb.Fatal(err)
	}
	return cache
}

func invalidGeometry(t *testing.T) {
	t.Parallel()
	for _, test := range []struct {
		name       string
		sets, ways int
	}{
		{"zero sets", 0, 2},
		{"non-power-of-two sets", 3, 2},
		{"zero ways", 4, 0},
	} {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			config := defaultConfig()
			config.Sets = test.sets
			config.Ways = test.ways
			cache, err := cachesim.New(config)
			if cache != nil || !errors.Is(err, cachesim.ErrInvalidGeometry) {
				t.Fatalf(
					"expected a geometry error"+
						"\n\tgot: %v"+
						"\n\twant: %v",
					err, cachesim.ErrInvalidGeometry)
			}
		})
	}
}

func unknownPolicy(t *testing.T) {
	t.Parallel()
	config := defaultConfig()
	config.Policy = "belady"
	cache, err := cachesim.New(config)
	if cache != nil || !errors.Is(err, energyaware.ErrUnknownPolicy) {
		t.Fatalf(
			"expected the policy error to propagate"+
				"\n\tgot: %v"+
				"\n\twant: %v",
			err, energyaware.ErrUnknownPolicy)
	}
}

func missThenHit(t *testing.T) {
	t.Parallel()
	const (
		addr = 0x1000
		size = 8
	)
	cache := newCache(t, defaultConfig())
	if hit := cache.Access(addr, false, size); hit {
		t.Fatal("expected a cold access to miss")
	}
	if hit := cache.Access(addr, false, size); !hit {
		t.Fatal("expected a repeated access to hit")
	}
	t.Run("same block", func(t *testing.T) {
		// Another word of the same 64B line.
		if hit := cache.Access(addr+32, false, size); !hit {
			t.Fatal("expected an access within the same block to hit")
		}
	})
	stats := cache.Stats()
	if stats.Hits != 2 || stats.Misses != 1 {
		t.Fatalf(
			"unexpected accounting"+
				"\n\tgot: %+v"+
				"\n\twant: 2 hits, 1 miss",
			stats)
	}
}

func distinctBlocks(t *testing.T) {
	t.Parallel()
	const blocks = 4
	var (
		cache     = newCache(t, defaultConfig())
		blockSize = uint64(defaultConfig().Engine.BlockSize)
	)
	for i := range uint64(blocks) {
		if hit := cache.Access(i*blockSize, false, 8); hit {
			t.Fatalf("expected block %d to miss on first access", i)
		}
	}
	if got := cache.Stats().Misses; got != blocks {
		t.Fatalf(
			"expected every distinct block to miss"+
				"\n\tgot: %d"+
				"\n\twant: %d",
			got, blocks)
	}
}

func evictionWriteback(t *testing.T) {
	t.Parallel()
	// Single slot: every distinct block evicts the previous one.
	config := defaultConfig()
	config.Sets = 1
	config.Ways = 1
	var (
		cache     = newCache(t, config)
		blockSize = uint64(config.Engine.BlockSize)
	)
	cache.Access(0, true, 8) // Miss; fills dirty.
	cache.Access(blockSize, false, 8)
	stats := cache.Stats()
	if stats.Evictions != 1 {
		t.Fatalf("expected one eviction but got %d", stats.Evictions)
	}
	if stats.Writebacks != 1 {
		t.Fatalf(
			"expected evicting the dirty line to count a write-back"+
				"\n\tgot: %d"+
				"\n\twant: 1",
			stats.Writebacks)
	}
	t.Run("clean eviction", func(t *testing.T) {
		cache.Access(2*blockSize, false, 8) // Evicts the clean line.
		stats := cache.Stats()
		if stats.Evictions != 2 || stats.Writebacks != 1 {
			t.Fatalf(
				"expected a clean eviction to not count a write-back"+
					"\n\tgot: %+v",
				stats)
		}
	})
	t.Run("energy estimate", func(t *testing.T) {
		const (
			readCost  = 0.5
			writeCost = 2.0
		)
		var (
			stats = cache.Stats()
			got   = stats.EnergyEstimate(readCost, writeCost)
			want  = float64(stats.Reads)*readCost +
				float64(stats.Writes+stats.Writebacks)*writeCost
		)
		if got != want {
			t.Fatalf(
				"unexpected energy estimate"+
					"\n\tgot: %g"+
					"\n\twant: %g",
				got, want)
		}
	})
}

func lruPolicy(t *testing.T) {
	t.Parallel()
	config := defaultConfig()
	config.Policy = energyaware.KindLRU
	cache := newCache(t, config)
	if hit := cache.Access(0, false, 8); hit {
		t.Fatal("expected a cold access to miss")
	}
	if hit := cache.Access(0, false, 8); !hit {
		t.Fatal("expected a repeated access to hit")
	}
}
