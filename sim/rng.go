package sim

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/stat/distuv"
)

// === SimulationKey ===

// SimulationKey uniquely identifies a reproducible simulation run.
// Two simulations with the same SimulationKey and identical configuration
// MUST produce bit-for-bit identical results.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// NewEntropySimulationKey derives a SimulationKey from a non-deterministic
// entropy source, for runs that don't inject an explicit seed.
func NewEntropySimulationKey() SimulationKey {
	return SimulationKey(time.Now().UnixNano())
}

// === Subsystem Constants ===

const (
	// SubsystemUniforms is the RNG subsystem for the T x M uniform matrix.
	// Uses the master seed directly for backward compatibility with a
	// bare --seed flag.
	SubsystemUniforms = "uniforms"

	// SubsystemLUT is the RNG subsystem reserved for any stochastic
	// tie-breaking a LUT-based caller might add.
	SubsystemLUT = "lut"
)

// SubsystemInstance returns the subsystem name for scenario N, used by
// RunScenarios to keep each scenario's uniform matrix independent while
// staying derived from one master key.
func SubsystemInstance(id int) string {
	return fmt.Sprintf("%s_%d", SubsystemUniforms, id)
}

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated RNG instances per subsystem.
//
// Derivation formula:
//   - For SubsystemUniforms: uses masterSeed directly (backward compatibility)
//   - For all other subsystems: masterSeed XOR fnv1a64(subsystemName)
//
// Thread-safety: NOT thread-safe. Must be called from single goroutine.
type PartitionedRNG struct {
	key        SimulationKey
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns a deterministically-seeded RNG for the named subsystem.
// The same subsystem name always returns the same *rand.Rand instance (cached).
// Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}

	var derivedSeed int64
	if name == SubsystemUniforms {
		// Backward compatibility: the uniform matrix uses the master seed
		// directly so a bare --seed flag is reproducible.
		derivedSeed = int64(p.key)
	} else {
		// All other subsystems: XOR with hash for isolation.
		derivedSeed = int64(p.key) ^ fnv1a64(name)
	}

	rng := rand.New(rand.NewSource(derivedSeed))
	p.subsystems[name] = rng
	return rng
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}

// GenerateUniforms pre-materializes the T x M uniform(0,1) matrix
// consumed by the Monte Carlo engine. Row t is returned as matrix[t], a
// length-M slice. Decoupling generation from stepping lets a fixed
// SimulationKey reproduce the same matrix regardless of how stepping
// itself is later scheduled.
func (p *PartitionedRNG) GenerateUniforms(subsystem string, t, m int) [][]float64 {
	dist := distuv.Uniform{Min: 0, Max: 1, Src: p.ForSubsystem(subsystem)}

	matrix := make([][]float64, t)
	for i := range matrix {
		row := make([]float64, m)
		for j := range row {
			row[j] = dist.Rand()
		}
		matrix[i] = row
	}
	return matrix
}
