// Command tracesim replays memory access traces through a simulated
// set-associative cache and reports hit-rate and energy statistics
// for the selected replacement policy.
//
// Traces are text files of `<R|W> <addr> [size]` lines; files ending
// in ".sz" are read as snappy-framed compressed streams. Multiple
// trace files replay concurrently, each through its own cache.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sync"

	energyaware "github.com/djdv/go-energyaware"
	"github.com/djdv/go-energyaware/cachesim"
	"golang.org/x/sync/errgroup"
)

type settings struct {
	cachesim.Config
}

func parseSettings() (*settings, []string) {
	var (
		set      settings
		engine   = &set.Engine
		flags    = flag.CommandLine
		policy   = flags.String("policy", string(energyaware.KindEnergyAware), "replacement policy (`energy-aware` or `lru`)")
		freqBits = flags.Uint("freq-bits", 4, "access frequency counter width in `bits`")
		writBits = flags.Uint("write-bits", 4, "write counter width in `bits`")
		block    = flags.Uint("block", 64, "line size in `bytes`")
	)
	*engine = energyaware.DefaultConfig()
	flags.IntVar(&set.Sets, "sets", 1024, "number of cache sets (power of two)")
	flags.IntVar(&set.Ways, "ways", 8, "set associativity")
	flags.Float64Var(&engine.RecencyWeight, "w-recency", engine.RecencyWeight, "recency weight")
	flags.Float64Var(&engine.FrequencyWeight, "w-frequency", engine.FrequencyWeight, "frequency weight")
	flags.Float64Var(&engine.WriteWeight, "w-write", engine.WriteWeight, "write intensity weight")
	flags.Float64Var(&engine.DirtyWeight, "w-dirty", engine.DirtyWeight, "dirty weight")
	flags.Float64Var(&engine.UtilizationWeight, "w-util", engine.UtilizationWeight, "utilization weight")
	flags.Float64Var(&engine.ReadEnergyCost, "e-read", engine.ReadEnergyCost, "read energy cost")
	flags.Float64Var(&engine.WriteEnergyCost, "e-write", engine.WriteEnergyCost, "write energy cost")
	flag.Parse()
	set.Policy = energyaware.Kind(*policy)
	engine.FrequencyBits = *freqBits
	engine.WriteBits = *writBits
	engine.BlockSize = uint32(*block)
	return &set, flags.Args()
}

func main() {
	set, traces := parseSettings()
	if len(traces) == 0 {
		fmt.Fprintln(os.Stderr, "usage: tracesim [flags] trace-file ...")
		flag.PrintDefaults()
		os.Exit(2)
	}
	if err := replayAll(set, traces); err != nil {
		log.Fatal(err)
	}
}

func replayAll(set *settings, traces []string) error {
	var (
		group errgroup.Group
		mu    sync.Mutex
	)
	for _, path := range traces {
		group.Go(func() error {
			stats, err := replayTrace(set, path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			mu.Lock()
			defer mu.Unlock()
			report(set, path, stats)
			return nil
		})
	}
	return group.Wait()
}

func replayTrace(set *settings, path string) (cachesim.Stats, error) {
	cache, err := cachesim.New(set.Config)
	if err != nil {
		return cachesim.Stats{}, err
	}
	trace, err := cachesim.OpenTrace(path)
	if err != nil {
		return cachesim.Stats{}, err
	}
	defer trace.Close()
	if err := cachesim.Replay(cache, trace); err != nil {
		return cachesim.Stats{}, err
	}
	return cache.Stats(), nil
}

func report(set *settings, path string, stats cachesim.Stats) {
	engine := &set.Engine
	fmt.Printf("%s (%s, %d sets x %d ways, %dB lines)\n",
		path, set.Policy, set.Sets, set.Ways, engine.BlockSize)
	fmt.Printf("\taccesses: %d (%d reads, %d writes)\n",
		stats.Accesses, stats.Reads, stats.Writes)
	fmt.Printf("\thits: %d misses: %d hit rate: %.2f%%\n",
		stats.Hits, stats.Misses, stats.HitRate()*100)
	fmt.Printf("\tevictions: %d writebacks: %d\n",
		stats.Evictions, stats.Writebacks)
	fmt.Printf("\tenergy estimate: %.1f\n",
		stats.EnergyEstimate(engine.ReadEnergyCost, engine.WriteEnergyCost))
}
