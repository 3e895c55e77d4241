package sweep

import (
	"fmt"
	"math/rand"
)

// === RunKey ===

// RunKey uniquely identifies a reproducible evaluation of one instance.
// Two evaluations with the same RunKey and identical configuration MUST
// produce bit-for-bit identical results.
type RunKey int64

// NewRunKey creates a RunKey from a seed value.
func NewRunKey(seed int64) RunKey {
	return RunKey(seed)
}

// === Source Constants ===

const (
	// SourceStrategy is the RNG source a strategy draws its own
	// optimization randomness from. Uses the master seed directly.
	SourceStrategy = "strategy"

	// SourceSampler is the RNG source for candidate sampling.
	SourceSampler = "sampler"

	// SourceInit is the RNG source for initialization noise.
	SourceInit = "init"
)

// sourceOffsets gives each randomness source a fixed, distinct offset from
// the master seed. The offsets are part of the evaluation protocol: changing
// them changes every published result.
var sourceOffsets = map[string]int64{
	SourceStrategy: 0,
	SourceSampler:  1,
	SourceInit:     2,
}

// === InstanceRNG ===

// InstanceRNG provides deterministic, isolated RNG instances per randomness
// source for the evaluation of a single instance.
//
// Derivation formula: masterSeed + fixed per-source offset.
//
// Thread-safety: NOT thread-safe. Each instance evaluation owns its own
// InstanceRNG and runs on a single goroutine.
type InstanceRNG struct {
	key     RunKey
	sources map[string]*rand.Rand
}

// NewInstanceRNG creates an InstanceRNG from a master seed.
func NewInstanceRNG(seed int64) *InstanceRNG {
	return &InstanceRNG{
		key:     NewRunKey(seed),
		sources: make(map[string]*rand.Rand),
	}
}

// ForSource returns a deterministically-seeded RNG for the named source.
// The same source name always returns the same *rand.Rand instance (cached).
// Panics on source names outside the protocol table; an unknown source would
// silently break reproducibility.
func (r *InstanceRNG) ForSource(name string) *rand.Rand {
	if rng, ok := r.sources[name]; ok {
		return rng
	}
	offset, ok := sourceOffsets[name]
	if !ok {
		panic(fmt.Sprintf("unknown randomness source %q", name))
	}
	rng := rand.New(rand.NewSource(int64(r.key) + offset))
	r.sources[name] = rng
	return rng
}

// Key returns the RunKey used to create this InstanceRNG.
func (r *InstanceRNG) Key() RunKey {
	return r.key
}
