package autopas

import "testing"

func TestNewTraversalDispatchesOnSignatureAndRejectsWrongContainer(t *testing.T) {
	functor := NewLJFunctor(1.0, 1.0, 2.0)
	pool := newWorkerPool(1)

	ds := newTestDirectSum()
	lc := newLinkedCellsContainer([3]float64{0, 0, 0}, [3]float64{10, 10, 10}, 2.0, 0.3, 1.0)
	vl := newVerletListsContainer([3]float64{0, 0, 0}, [3]float64{10, 10, 10}, 2.0, 0.3, 1.0, 10)
	vc := newVerletClusterListsContainer([3]float64{0, 0, 0}, [3]float64{10, 10, 10}, 2.0, 0.3, 10)

	cases := []struct {
		name      string
		traversal TraversalOption
		container Container
		wantErr   bool
	}{
		{"directSum/directSum", TraversalDirectSum, ds, false},
		{"directSum/linkedCells", TraversalDirectSum, lc, true},
		{"c08/linkedCells", TraversalC08, lc, false},
		{"c08/directSum", TraversalC08, ds, true},
		{"sliced/linkedCells", TraversalSliced, lc, false},
		{"sliced/directSum", TraversalSliced, ds, true},
		{"verlet/verletLists", TraversalVerlet, vl, false},
		{"verlet/directSum", TraversalVerlet, ds, true},
		{"verletCluster/verletClusterLists", TraversalVerletCluster, vc, false},
		{"verletCluster/directSum", TraversalVerletCluster, ds, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			sig := TraversalSignature{Traversal: c.traversal, DataLayout: DataLayoutAoS, Newton3: true}
			trav, err := newTraversal(sig, c.container, functor, pool)
			if c.wantErr {
				if err == nil {
					t.Fatal("newTraversal: got nil error, want TraversalTypeMismatch")
				}
				if coreErr, ok := err.(*CoreError); !ok || coreErr.Kind != TraversalTypeMismatch {
					t.Errorf("err = %v, want Kind = TraversalTypeMismatch", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("newTraversal: %v", err)
			}
			if trav.Option() != c.traversal {
				t.Errorf("Option() = %v, want %v", trav.Option(), c.traversal)
			}
			if trav.RequiredContainer() != c.container.Kind() {
				t.Errorf("RequiredContainer() = %v, want %v", trav.RequiredContainer(), c.container.Kind())
			}
		})
	}
}

func TestNewTraversalRejectsUnknownTraversalOption(t *testing.T) {
	functor := NewLJFunctor(1.0, 1.0, 2.0)
	ds := newTestDirectSum()
	sig := TraversalSignature{Traversal: TraversalOption(99), DataLayout: DataLayoutAoS, Newton3: true}
	if _, err := newTraversal(sig, ds, functor, newWorkerPool(1)); err == nil {
		t.Fatal("newTraversal with an unknown traversal option: got nil error, want InvalidConfiguration")
	}
}

func TestTraversalReportsItsOwnDataLayoutAndNewton3Setting(t *testing.T) {
	functor := NewLJFunctor(1.0, 1.0, 2.0)
	lc := newLinkedCellsContainer([3]float64{0, 0, 0}, [3]float64{10, 10, 10}, 2.0, 0.3, 1.0)
	sig := TraversalSignature{Traversal: TraversalC08, DataLayout: DataLayoutSoA, Newton3: false}
	trav, err := newTraversal(sig, lc, functor, newWorkerPool(1))
	if err != nil {
		t.Fatalf("newTraversal: %v", err)
	}
	if trav.DataLayout() != DataLayoutSoA {
		t.Errorf("DataLayout() = %v, want %v", trav.DataLayout(), DataLayoutSoA)
	}
	if trav.UseNewton3() {
		t.Error("UseNewton3() = true, want false")
	}
}
