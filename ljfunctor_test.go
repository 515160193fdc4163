package autopas

import (
	"math"
	"testing"
)

func TestLJFunctorAoSFunctorRepulsiveAtShortRange(t *testing.T) {
	f := NewLJFunctor(1.0, 1.0, 2.5)
	f.InitTraversal()

	pi := NewParticle(1, [3]float64{0, 0, 0})
	pj := NewParticle(2, [3]float64{0.9, 0, 0}) // inside sigma: repulsive

	f.AoSFunctor(&pi, &pj, true)

	if pi.Force[0] <= 0 {
		t.Errorf("repulsive regime: pi.Force[0] = %v, want > 0 (pushed away from pj)", pi.Force[0])
	}
	if pj.Force[0] != -pi.Force[0] {
		t.Errorf("newton3: pj.Force = %v, want %v (equal and opposite)", pj.Force[0], -pi.Force[0])
	}
}

func TestLJFunctorAoSFunctorBeyondCutoffIsNoOp(t *testing.T) {
	f := NewLJFunctor(1.0, 1.0, 1.0)
	f.InitTraversal()

	pi := NewParticle(1, [3]float64{0, 0, 0})
	pj := NewParticle(2, [3]float64{10, 0, 0})

	f.AoSFunctor(&pi, &pj, true)

	if pi.Force != ([3]float64{}) || pj.Force != ([3]float64{}) {
		t.Errorf("beyond cutoff: forces = %v, %v, want zero", pi.Force, pj.Force)
	}
}

func TestLJFunctorAoSFunctorCoincidentPositionsIsNoOp(t *testing.T) {
	f := NewLJFunctor(1.0, 1.0, 2.5)
	f.InitTraversal()

	pi := NewParticle(1, [3]float64{1, 1, 1})
	pj := NewParticle(2, [3]float64{1, 1, 1})

	f.AoSFunctor(&pi, &pj, true)

	if pi.Force != ([3]float64{}) {
		t.Errorf("coincident particles: Force = %v, want zero (distSq==0 guarded)", pi.Force)
	}
}

func TestLJFunctorNewton3EnergyMatchesNonNewton3(t *testing.T) {
	// Visiting a pair once with newton3 should accumulate the same total
	// potential energy as visiting it from both sides without newton3.
	posA := [3]float64{0, 0, 0}
	posB := [3]float64{1.2, 0, 0}

	fNewton := NewLJFunctor(1.0, 1.0, 2.5)
	fNewton.InitTraversal()
	pa, pb := NewParticle(1, posA), NewParticle(2, posB)
	fNewton.AoSFunctor(&pa, &pb, true)

	fPlain := NewLJFunctor(1.0, 1.0, 2.5)
	fPlain.InitTraversal()
	pa2, pb2 := NewParticle(1, posA), NewParticle(2, posB)
	pc2, pd2 := NewParticle(2, posB), NewParticle(1, posA)
	fPlain.AoSFunctor(&pa2, &pb2, false)
	fPlain.AoSFunctor(&pc2, &pd2, false)

	if math.Abs(fNewton.Upot()-fPlain.Upot()) > 1e-9 {
		t.Errorf("Upot with newton3 = %v, without newton3 (both directions) = %v", fNewton.Upot(), fPlain.Upot())
	}
}

func TestLJFunctorInitTraversalResetsAccumulators(t *testing.T) {
	f := NewLJFunctor(1.0, 1.0, 2.5)
	pi := NewParticle(1, [3]float64{0, 0, 0})
	pj := NewParticle(2, [3]float64{0.9, 0, 0})
	f.InitTraversal()
	f.AoSFunctor(&pi, &pj, true)
	if f.Upot() == 0 {
		t.Fatalf("expected nonzero Upot after an interaction inside cutoff")
	}

	f.InitTraversal()
	if f.Upot() != 0 {
		t.Errorf("Upot() after InitTraversal = %v, want 0", f.Upot())
	}
	if f.Virial() != ([3]float64{}) {
		t.Errorf("Virial() after InitTraversal = %v, want zero", f.Virial())
	}
}

func TestLJFunctorSoAFunctorSingleMatchesAoSForSamePairSet(t *testing.T) {
	particles := []Particle{
		NewParticle(1, [3]float64{0, 0, 0}),
		NewParticle(2, [3]float64{0.9, 0, 0}),
		NewParticle(3, [3]float64{0, 1.1, 0}),
	}

	fAoS := NewLJFunctor(1.0, 1.0, 2.5)
	fAoS.InitTraversal()
	aos := make([]Particle, len(particles))
	copy(aos, particles)
	for i := 0; i < len(aos); i++ {
		for j := i + 1; j < len(aos); j++ {
			fAoS.AoSFunctor(&aos[i], &aos[j], true)
		}
	}

	fSoA := NewLJFunctor(1.0, 1.0, 2.5)
	fSoA.InitTraversal()
	soa := NewSoA()
	soa.FromAoS(particles)
	fSoA.SoAFunctorSingle(soa, true)
	soaOut := soa.ToAoS()

	for i := range aos {
		for d := 0; d < 3; d++ {
			if math.Abs(aos[i].Force[d]-soaOut[i].Force[d]) > 1e-9 {
				t.Errorf("particle %d force[%d]: AoS = %v, SoA = %v", i, d, aos[i].Force[d], soaOut[i].Force[d])
			}
		}
	}
}

func TestLJFunctorSoAFunctorSingleWithoutNewton3MatchesWithNewton3(t *testing.T) {
	particles := []Particle{
		NewParticle(1, [3]float64{0, 0, 0}),
		NewParticle(2, [3]float64{0.9, 0, 0}),
		NewParticle(3, [3]float64{0, 1.1, 0}),
	}

	fNewton := NewLJFunctor(1.0, 1.0, 2.5)
	fNewton.InitTraversal()
	soaNewton := NewSoA()
	soaNewton.FromAoS(particles)
	fNewton.SoAFunctorSingle(soaNewton, true)
	newtonOut := soaNewton.ToAoS()

	fPlain := NewLJFunctor(1.0, 1.0, 2.5)
	fPlain.InitTraversal()
	soaPlain := NewSoA()
	soaPlain.FromAoS(particles)
	fPlain.SoAFunctorSingle(soaPlain, false)
	plainOut := soaPlain.ToAoS()

	for i := range newtonOut {
		for d := 0; d < 3; d++ {
			if math.Abs(newtonOut[i].Force[d]-plainOut[i].Force[d]) > 1e-9 {
				t.Errorf("particle %d force[%d]: newton3=true %v, newton3=false %v", i, d, newtonOut[i].Force[d], plainOut[i].Force[d])
			}
		}
	}
}

func TestLJFunctorSoAFunctorPairWithoutNewton3MatchesWithNewton3(t *testing.T) {
	a := []Particle{NewParticle(1, [3]float64{0, 0, 0}), NewParticle(2, [3]float64{0.9, 0, 0})}
	b := []Particle{NewParticle(3, [3]float64{0, 1.1, 0}), NewParticle(4, [3]float64{1.5, 1.5, 0})}

	fNewton := NewLJFunctor(1.0, 1.0, 2.5)
	fNewton.InitTraversal()
	soaANewton, soaBNewton := NewSoA(), NewSoA()
	soaANewton.FromAoS(a)
	soaBNewton.FromAoS(b)
	fNewton.SoAFunctorPair(soaANewton, soaBNewton, true)

	fPlain := NewLJFunctor(1.0, 1.0, 2.5)
	fPlain.InitTraversal()
	soaAPlain, soaBPlain := NewSoA(), NewSoA()
	soaAPlain.FromAoS(a)
	soaBPlain.FromAoS(b)
	fPlain.SoAFunctorPair(soaAPlain, soaBPlain, false)

	aNewtonOut, bNewtonOut := soaANewton.ToAoS(), soaBNewton.ToAoS()
	aPlainOut, bPlainOut := soaAPlain.ToAoS(), soaBPlain.ToAoS()

	for i := range aNewtonOut {
		for d := 0; d < 3; d++ {
			if math.Abs(aNewtonOut[i].Force[d]-aPlainOut[i].Force[d]) > 1e-9 {
				t.Errorf("side A particle %d force[%d]: newton3=true %v, newton3=false %v", i, d, aNewtonOut[i].Force[d], aPlainOut[i].Force[d])
			}
		}
	}
	for j := range bNewtonOut {
		for d := 0; d < 3; d++ {
			if math.Abs(bNewtonOut[j].Force[d]-bPlainOut[j].Force[d]) > 1e-9 {
				t.Errorf("side B particle %d force[%d]: newton3=true %v, newton3=false %v", j, d, bNewtonOut[j].Force[d], bPlainOut[j].Force[d])
			}
		}
	}
}

func TestLJFunctorGetNeededAndComputedAttr(t *testing.T) {
	f := NewLJFunctor(1.0, 1.0, 2.5)
	needed := f.GetNeededAttr()
	computed := f.GetComputedAttr()

	needSet := map[AttributeID]bool{}
	for _, a := range needed {
		needSet[a] = true
	}
	if !needSet[AttrPosX] || !needSet[AttrPosY] || !needSet[AttrPosZ] {
		t.Errorf("GetNeededAttr() = %v, want position columns", needed)
	}
	compSet := map[AttributeID]bool{}
	for _, a := range computed {
		compSet[a] = true
	}
	if !compSet[AttrForceX] || !compSet[AttrForceY] || !compSet[AttrForceZ] {
		t.Errorf("GetComputedAttr() = %v, want force columns", computed)
	}
}

func TestLJFunctorAllowsBothNewton3Modes(t *testing.T) {
	f := NewLJFunctor(1.0, 1.0, 2.5)
	if !f.AllowsNewton3() || !f.AllowsNonNewton3() {
		t.Errorf("LJFunctor should allow both newton3 modes, got AllowsNewton3=%v AllowsNonNewton3=%v", f.AllowsNewton3(), f.AllowsNonNewton3())
	}
}
