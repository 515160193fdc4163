package autopas

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func particlesEqual(t *testing.T, got, want Particle) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("particle mismatch (-want +got):\n%s", diff)
	}
}

func TestSoAPushLenAt(t *testing.T) {
	s := NewSoA()
	p1 := NewParticle(1, [3]float64{1, 2, 3})
	p2 := NewHaloParticle(2, [3]float64{4, 5, 6})

	s.Push(p1)
	s.Push(p2)

	if got := s.Len(); got != 2 {
		t.Fatalf("Len() = %d, want 2", got)
	}
	particlesEqual(t, s.At(0), p1)
	particlesEqual(t, s.At(1), p2)
}

func TestSoAFromAoSToAoSRoundTrip(t *testing.T) {
	particles := []Particle{
		NewParticle(1, [3]float64{0, 0, 0}),
		NewParticle(2, [3]float64{1, 1, 1}),
		NewHaloParticle(3, [3]float64{-1, -1, -1}),
	}

	s := NewSoA()
	s.FromAoS(particles)

	got := s.ToAoS()
	if diff := cmp.Diff(particles, got); diff != "" {
		t.Errorf("AoS round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSoAPopBack(t *testing.T) {
	s := NewSoA()
	p1 := NewParticle(1, [3]float64{0, 0, 0})
	p2 := NewParticle(2, [3]float64{1, 1, 1})
	s.Push(p1)
	s.Push(p2)

	got := s.PopBack()
	particlesEqual(t, got, p2)
	if s.Len() != 1 {
		t.Fatalf("Len() after PopBack = %d, want 1", s.Len())
	}
	particlesEqual(t, s.At(0), p1)
}

func TestSoAClear(t *testing.T) {
	s := NewSoA()
	s.Push(NewParticle(1, [3]float64{0, 0, 0}))
	s.SetViewStart(0)
	s.Clear()
	if s.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", s.Len())
	}
}

func TestSoASwap(t *testing.T) {
	s := NewSoA()
	p1 := NewParticle(1, [3]float64{1, 0, 0})
	p2 := NewParticle(2, [3]float64{2, 0, 0})
	s.Push(p1)
	s.Push(p2)

	s.Swap(0, 1)
	particlesEqual(t, s.At(0), p2)
	particlesEqual(t, s.At(1), p1)
}

func TestSoAAppend(t *testing.T) {
	a := NewSoA()
	a.Push(NewParticle(1, [3]float64{0, 0, 0}))

	b := NewSoA()
	b.Push(NewParticle(2, [3]float64{1, 1, 1}))
	b.Push(NewParticle(3, [3]float64{2, 2, 2}))

	a.Append(b)
	if a.Len() != 3 {
		t.Fatalf("Len() after Append = %d, want 3", a.Len())
	}
	if a.At(1).ID != 2 || a.At(2).ID != 3 {
		t.Errorf("Append did not preserve row order: %v, %v", a.At(1).ID, a.At(2).ID)
	}
}

func TestSoASetViewStart(t *testing.T) {
	s := NewSoA()
	s.Push(NewParticle(1, [3]float64{0, 0, 0}))
	s.Push(NewParticle(2, [3]float64{1, 1, 1}))
	s.Push(NewParticle(3, [3]float64{2, 2, 2}))

	s.SetViewStart(1)
	if got := s.Len(); got != 2 {
		t.Fatalf("Len() after SetViewStart(1) = %d, want 2", got)
	}
	if got := s.At(0).ID; got != 2 {
		t.Errorf("At(0) after view shift = id %d, want 2", got)
	}
}

func TestSoAWriteMultipleReadMultiple(t *testing.T) {
	s := NewSoA()
	s.Push(NewParticle(1, [3]float64{0, 0, 0}))

	attrs := []AttributeID{AttrPosX, AttrPosY, AttrPosZ, AttrOwned}
	s.WriteMultiple(0, attrs, []float64{5, 6, 7, 0})

	got := s.ReadMultiple(0, attrs)
	want := []float64{5, 6, 7, 0}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ReadMultiple mismatch (-want +got):\n%s", diff)
	}
	if s.At(0).Owned {
		t.Errorf("WriteMultiple(AttrOwned, 0) left Owned = true")
	}
}

func TestSoAPosXYZAndForceXYZ(t *testing.T) {
	s := NewSoA()
	s.Push(NewParticle(1, [3]float64{1, 2, 3}))
	s.At(0)

	x, y, z := s.PosXYZ()
	if len(x) != 1 || x[0] != 1 || y[0] != 2 || z[0] != 3 {
		t.Errorf("PosXYZ = %v %v %v, want [1] [2] [3]", x, y, z)
	}

	fx, fy, fz := s.ForceXYZ()
	if len(fx) != 1 || fx[0] != 0 || fy[0] != 0 || fz[0] != 0 {
		t.Errorf("ForceXYZ = %v %v %v, want zeros", fx, fy, fz)
	}
}

func TestSoAColumnRespectsViewStart(t *testing.T) {
	s := NewSoA()
	s.Push(NewParticle(1, [3]float64{1, 0, 0}))
	s.Push(NewParticle(2, [3]float64{2, 0, 0}))
	s.SetViewStart(1)

	col, ok := s.Column(AttrPosX).([]float64)
	if !ok {
		t.Fatalf("Column(AttrPosX) has unexpected type %T", s.Column(AttrPosX))
	}
	if len(col) != 1 || col[0] != 2 {
		t.Errorf("Column(AttrPosX) after view shift = %v, want [2]", col)
	}
}
