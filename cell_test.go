package autopas

import "testing"

// cellFactories lets the shared behavior tests below run once per Cell
// implementation, exercising both FullCell (AoS+SoA) and ReducedCell
// (SoA-only) against the same Cell contract.
var cellFactories = map[string]func() Cell{
	"FullCell":    func() Cell { return NewFullCell() },
	"ReducedCell": func() Cell { return NewReducedCell() },
}

func TestCellAddSize(t *testing.T) {
	for name, newCell := range cellFactories {
		t.Run(name, func(t *testing.T) {
			c := newCell()
			if c.Size() != 0 {
				t.Fatalf("Size() on empty cell = %d, want 0", c.Size())
			}
			c.Add(NewParticle(1, [3]float64{0, 0, 0}))
			c.Add(NewParticle(2, [3]float64{1, 1, 1}))
			if c.Size() != 2 {
				t.Fatalf("Size() = %d, want 2", c.Size())
			}
		})
	}
}

func TestCellAtReturnsCurrentValue(t *testing.T) {
	for name, newCell := range cellFactories {
		t.Run(name, func(t *testing.T) {
			c := newCell()
			p := NewParticle(7, [3]float64{1, 2, 3})
			c.Add(p)
			got := c.At(0).Get()
			particlesEqual(t, got, p)
		})
	}
}

func TestCellProxyWriteBack(t *testing.T) {
	for name, newCell := range cellFactories {
		t.Run(name, func(t *testing.T) {
			c := newCell()
			c.Add(NewParticle(1, [3]float64{0, 0, 0}))

			proxy := c.At(0)
			updated := proxy.Get()
			updated.Position = [3]float64{9, 9, 9}
			proxy.Set(updated)
			proxy.Close()

			got := c.At(0).Get()
			if got.Position != ([3]float64{9, 9, 9}) {
				t.Errorf("proxy write-back: Position = %v, want {9,9,9}", got.Position)
			}
		})
	}
}

func TestCellRemoveSwapBack(t *testing.T) {
	for name, newCell := range cellFactories {
		t.Run(name, func(t *testing.T) {
			c := newCell()
			c.Add(NewParticle(1, [3]float64{0, 0, 0}))
			c.Add(NewParticle(2, [3]float64{1, 1, 1}))
			c.Add(NewParticle(3, [3]float64{2, 2, 2}))

			c.RemoveSwapBack(0)
			if c.Size() != 2 {
				t.Fatalf("Size() after RemoveSwapBack = %d, want 2", c.Size())
			}
			ids := map[uint64]bool{}
			for i := 0; i < c.Size(); i++ {
				ids[c.At(i).Get().ID] = true
			}
			if ids[1] {
				t.Errorf("removed particle id 1 is still present: %v", ids)
			}
			if !ids[2] || !ids[3] {
				t.Errorf("surviving particles missing, got ids %v", ids)
			}
		})
	}
}

func TestCellClear(t *testing.T) {
	for name, newCell := range cellFactories {
		t.Run(name, func(t *testing.T) {
			c := newCell()
			c.Add(NewParticle(1, [3]float64{0, 0, 0}))
			c.Clear()
			if c.Size() != 0 {
				t.Errorf("Size() after Clear = %d, want 0", c.Size())
			}
		})
	}
}

func TestCellSoAMatchesAoS(t *testing.T) {
	for name, newCell := range cellFactories {
		t.Run(name, func(t *testing.T) {
			c := newCell()
			p1 := NewParticle(1, [3]float64{1, 2, 3})
			p2 := NewHaloParticle(2, [3]float64{4, 5, 6})
			c.Add(p1)
			c.Add(p2)

			soa := c.SoA()
			if soa.Len() != 2 {
				t.Fatalf("SoA().Len() = %d, want 2", soa.Len())
			}
			particlesEqual(t, soa.At(0), p1)
			particlesEqual(t, soa.At(1), p2)
		})
	}
}

func TestFullCellStoreSoARoundTrip(t *testing.T) {
	c := NewFullCell()
	c.Add(NewParticle(1, [3]float64{1, 2, 3}))

	soa := c.SoA()
	soa.WriteMultiple(0, []AttributeID{AttrPosX}, []float64{42})

	c.StoreSoA()
	if got := c.Particles()[0].Position[0]; got != 42 {
		t.Errorf("StoreSoA: posX = %v, want 42", got)
	}
}

func TestParticleProxyClosePropagatesThroughReducedCellSoA(t *testing.T) {
	c := NewReducedCell()
	c.Add(NewParticle(1, [3]float64{0, 0, 0}))

	proxy := c.At(0)
	v := proxy.Get()
	v.Owned = false
	proxy.Set(v)
	proxy.Close()

	if c.soa.At(0).Owned {
		t.Errorf("ReducedCell proxy Close did not write back Owned=false")
	}
}
