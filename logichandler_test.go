package autopas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestLogicHandler(t *testing.T, rebuildFrequency int) *LogicHandler {
	t.Helper()
	space := configurationSpace(
		[]ContainerOption{ContainerLinkedCells},
		[]TraversalOption{TraversalC08},
		[]DataLayoutOption{DataLayoutAoS},
		[]Newton3Option{Newton3Enabled},
		[]float64{1.0},
	)
	tuner, err := NewAutoTuner([3]float64{0, 0, 0}, [3]float64{10, 10, 10}, 2.0, 0.3, space, NewFullSearchStrategy(), 1000, 1, rebuildFrequency, 1, nil)
	require.NoError(t, err)
	return NewLogicHandler(tuner, rebuildFrequency)
}

func TestLogicHandlerStartsInvalid(t *testing.T) {
	lh := newTestLogicHandler(t, 5)
	require.False(t, lh.ContainerValid(), "before any IteratePairwise call")
}

func TestLogicHandlerIteratePairwiseValidatesThenInvalidatesAfterAddParticle(t *testing.T) {
	lh := newTestLogicHandler(t, 5)
	functor := NewLJFunctor(1.0, 1.0, 2.0)

	require.NoError(t, lh.AddParticle(NewParticle(1, [3]float64{5, 5, 5})))
	require.NoError(t, lh.IteratePairwise(functor))
	require.True(t, lh.ContainerValid(), "after IteratePairwise")

	err := lh.AddParticle(NewParticle(2, [3]float64{6, 6, 6}))
	require.Error(t, err, "AddParticle while the container is valid")
	var coreErr *CoreError
	require.True(t, errors.As(err, &coreErr))
	require.Equal(t, NeighborListStillValid, coreErr.Kind)
}

func TestLogicHandlerAddHaloParticleAllowedWhileValid(t *testing.T) {
	lh := newTestLogicHandler(t, 5)
	functor := NewLJFunctor(1.0, 1.0, 2.0)
	require.NoError(t, lh.AddParticle(NewParticle(1, [3]float64{5, 5, 5})))
	require.NoError(t, lh.IteratePairwise(functor))
	require.NoError(t, lh.AddHaloParticle(NewHaloParticle(2, [3]float64{-0.1, 5, 5})))
	require.False(t, lh.ContainerValid(), "after AddHaloParticle")
}

func TestLogicHandlerAddOrUpdateHaloParticleInsertsWhenNotFound(t *testing.T) {
	lh := newTestLogicHandler(t, 5)
	p := NewHaloParticle(9, [3]float64{-0.1, 5, 5})
	require.NoError(t, lh.AddOrUpdateHaloParticle(p))

	container := lh.tuner.Container()
	it := container.Iterator(IterateHaloOnly)
	found := false
	for !it.Done() {
		if it.Get().ID == 9 {
			found = true
		}
		it.Next()
	}
	require.True(t, found, "AddOrUpdateHaloParticle should insert a halo particle with no prior match")
}

func TestLogicHandlerAddOrUpdateHaloParticleUpdatesWhenWithinSkin(t *testing.T) {
	lh := newTestLogicHandler(t, 5)
	require.NoError(t, lh.AddHaloParticle(NewHaloParticle(9, [3]float64{-0.1, 5, 5})))
	moved := NewHaloParticle(9, [3]float64{-0.15, 5, 5})
	require.NoError(t, lh.AddOrUpdateHaloParticle(moved))
}

func TestLogicHandlerAddOrUpdateHaloParticlePropagatesOtherErrors(t *testing.T) {
	lh := newTestLogicHandler(t, 5)
	require.NoError(t, lh.AddParticle(NewParticle(9, [3]float64{5, 5, 5})))

	// An owned-zone position is never a valid halo update/insert target.
	bad := NewHaloParticle(9, [3]float64{5, 5, 5})
	err := lh.AddOrUpdateHaloParticle(bad)
	require.Error(t, err, "AddOrUpdateHaloParticle with an in-bounds position")
	var coreErr *CoreError
	require.True(t, errors.As(err, &coreErr))
	require.Equal(t, OutOfBoundsInsert, coreErr.Kind)
}

func TestLogicHandlerUpdateContainerIsNoOpWhileValid(t *testing.T) {
	lh := newTestLogicHandler(t, 5)
	functor := NewLJFunctor(1.0, 1.0, 2.0)
	require.NoError(t, lh.AddParticle(NewParticle(1, [3]float64{5, 5, 5})))
	require.NoError(t, lh.IteratePairwise(functor))

	require.Nil(t, lh.UpdateContainer(), "UpdateContainer while valid should be a no-op")
	require.True(t, lh.ContainerValid(), "should still be valid after a no-op UpdateContainer")
}

func TestLogicHandlerUpdateContainerInvalidatesWhenNotValid(t *testing.T) {
	lh := newTestLogicHandler(t, 5)
	require.NoError(t, lh.AddParticle(NewParticle(1, [3]float64{5, 5, 5})))
	lh.UpdateContainer()
	require.False(t, lh.ContainerValid(), "after UpdateContainer while invalid")
}

func TestLogicHandlerDeleteHaloAndAllParticlesAlwaysInvalidate(t *testing.T) {
	lh := newTestLogicHandler(t, 5)
	functor := NewLJFunctor(1.0, 1.0, 2.0)
	require.NoError(t, lh.AddParticle(NewParticle(1, [3]float64{5, 5, 5})))
	require.NoError(t, lh.IteratePairwise(functor))

	lh.DeleteHaloParticles()
	require.False(t, lh.ContainerValid(), "after DeleteHaloParticles")

	require.NoError(t, lh.AddParticle(NewParticle(2, [3]float64{6, 6, 6})))
	require.NoError(t, lh.IteratePairwise(functor))
	lh.DeleteAllParticles()
	require.False(t, lh.ContainerValid(), "after DeleteAllParticles")
	require.Equal(t, 0, lh.tuner.Container().NumParticles())
}

func TestLogicHandlerStepsSinceRebuildResetsOnInvalidIterationAndAdvancesOnValidOnes(t *testing.T) {
	lh := newTestLogicHandler(t, 1000)
	functor := NewLJFunctor(1.0, 1.0, 2.0)
	require.NoError(t, lh.AddParticle(NewParticle(1, [3]float64{5, 5, 5})))

	require.NoError(t, lh.IteratePairwise(functor))
	require.Equal(t, 0, lh.StepsSinceRebuild(), "right after the invalidating rebuild")

	require.NoError(t, lh.IteratePairwise(functor))
	require.Equal(t, 1, lh.StepsSinceRebuild(), "after one more valid iteration")
}

func TestLogicHandlerContainerValidFalseOnceRebuildFrequencyExceeded(t *testing.T) {
	lh := newTestLogicHandler(t, 2)
	functor := NewLJFunctor(1.0, 1.0, 2.0)
	require.NoError(t, lh.AddParticle(NewParticle(1, [3]float64{5, 5, 5})))

	for i := 0; i < 3; i++ {
		require.NoErrorf(t, lh.IteratePairwise(functor), "iteration %d", i)
	}
	require.False(t, lh.ContainerValid(), "once stepsSinceRebuild reached rebuildFrequency")
}
