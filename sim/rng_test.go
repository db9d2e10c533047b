package sim

import "testing"

func TestPartitionedRNG_SameSubsystem_ReturnsSameInstance(t *testing.T) {
	p := NewPartitionedRNG(NewSimulationKey(1))
	a := p.ForSubsystem(SubsystemUniforms)
	b := p.ForSubsystem(SubsystemUniforms)
	if a != b {
		t.Error("expected the same *rand.Rand instance to be cached per subsystem")
	}
}

func TestPartitionedRNG_DifferentSubsystems_DeriveDifferentSeeds(t *testing.T) {
	p := NewPartitionedRNG(NewSimulationKey(1))
	u := p.ForSubsystem(SubsystemUniforms).Float64()
	l := p.ForSubsystem(SubsystemLUT).Float64()
	if u == l {
		t.Error("expected uniforms and lut subsystems to diverge from the very first draw")
	}
}

func TestPartitionedRNG_SameKey_ReproducesIdenticalUniforms(t *testing.T) {
	a := NewPartitionedRNG(NewSimulationKey(42))
	b := NewPartitionedRNG(NewSimulationKey(42))

	ma := a.GenerateUniforms(SubsystemUniforms, 5, 3)
	mb := b.GenerateUniforms(SubsystemUniforms, 5, 3)

	for t1 := range ma {
		for m := range ma[t1] {
			if ma[t1][m] != mb[t1][m] {
				t.Fatalf("mismatch at [%d][%d]: %v != %v", t1, m, ma[t1][m], mb[t1][m])
			}
		}
	}
}

func TestPartitionedRNG_DifferentKeys_ProduceDifferentUniforms(t *testing.T) {
	a := NewPartitionedRNG(NewSimulationKey(1))
	b := NewPartitionedRNG(NewSimulationKey(2))

	ma := a.GenerateUniforms(SubsystemUniforms, 2, 2)
	mb := b.GenerateUniforms(SubsystemUniforms, 2, 2)

	same := true
	for t1 := range ma {
		for m := range ma[t1] {
			if ma[t1][m] != mb[t1][m] {
				same = false
			}
		}
	}
	if same {
		t.Error("expected different seeds to produce different uniform matrices")
	}
}

func TestGenerateUniforms_ValuesInUnitInterval(t *testing.T) {
	p := NewPartitionedRNG(NewSimulationKey(3))
	matrix := p.GenerateUniforms(SubsystemUniforms, 10, 10)
	for _, row := range matrix {
		for _, v := range row {
			if v < 0 || v >= 1 {
				t.Errorf("uniform value out of [0,1): %v", v)
			}
		}
	}
}

func TestSubsystemInstance_DistinctPerID(t *testing.T) {
	if SubsystemInstance(0) == SubsystemInstance(1) {
		t.Error("expected distinct subsystem names per scenario id")
	}
}
