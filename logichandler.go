package autopas

// LogicHandler gatekeeps the public façade's mutating calls against the
// AutoTuner (§4.9): it tracks whether the container is in a state where a
// traversal could run right now without a rebuild, rejects mutations that
// would silently invalidate state the caller might not expect, and counts
// iterations between rebuilds.
type LogicHandler struct {
	tuner             *AutoTuner
	rebuildFrequency  int
	validFlag         bool
	stepsSinceRebuild int
}

// NewLogicHandler wraps tuner with the gatekeeping rules of §4.9.
// rebuildFrequency bounds how many iterations containerValid stays true
// before a rebuild is forced even if nothing else went stale.
func NewLogicHandler(tuner *AutoTuner, rebuildFrequency int) *LogicHandler {
	if rebuildFrequency < 1 {
		rebuildFrequency = 1
	}
	return &LogicHandler{tuner: tuner, rebuildFrequency: rebuildFrequency}
}

// ContainerValid reports whether the container can run a traversal right
// now without a rebuild: the flag was set after the last rebuild, the
// iteration budget since then hasn't run out, and the tuner doesn't
// already know it needs to rebuild for its own reasons (§4.9 bullet 4).
func (lh *LogicHandler) ContainerValid() bool {
	return lh.validFlag && lh.stepsSinceRebuild < lh.rebuildFrequency && !lh.tuner.WillRebuild()
}

// AddParticle inserts an owned particle. Legal only while the container is
// not valid (§6.2); once the container has been tuned and built for this
// round, adding a particle would silently desynchronize its neighbor
// lists, so the caller must invalidate first.
func (lh *LogicHandler) AddParticle(p Particle) error {
	if lh.ContainerValid() {
		return newError(NeighborListStillValid, "addParticle: container is valid; call updateContainer or deleteAllParticles first")
	}
	if err := lh.tuner.Container().AddParticle(p); err != nil {
		return err
	}
	lh.validFlag = false
	return nil
}

// AddHaloParticle inserts a halo copy. Halo exchange happens every step
// regardless of tuning phase, so this is not gated by ContainerValid.
func (lh *LogicHandler) AddHaloParticle(p Particle) error {
	if err := lh.tuner.Container().AddHaloParticle(p); err != nil {
		return err
	}
	lh.validFlag = false
	return nil
}

// AddOrUpdateHaloParticle inserts a halo particle if no particle with the
// same id exists nearby, or updates its position otherwise. Per the
// resolved design question on the ambiguous skin zone (§9), any position
// that is neither clearly "the same particle, moved within tolerance" nor
// clearly "a new halo particle" is always rejected — there is no silent
// best-effort path.
func (lh *LogicHandler) AddOrUpdateHaloParticle(p Particle) error {
	err := lh.tuner.Container().UpdateHaloParticle(p)
	if err == nil {
		lh.validFlag = false
		return nil
	}
	if coreErr, ok := err.(*CoreError); ok && coreErr.Kind == HaloUpdateFailed && coreErr.Reason == HaloNotFound {
		if addErr := lh.tuner.Container().AddHaloParticle(p); addErr != nil {
			return addErr
		}
		lh.validFlag = false
		return nil
	}
	return err
}

// UpdateContainer re-bins particles that crossed cell boundaries and
// returns those that now lie outside the box. It is a no-op while the
// container is valid (§4.9 bullet 2).
func (lh *LogicHandler) UpdateContainer() []Particle {
	if lh.ContainerValid() {
		return nil
	}
	leaving := lh.tuner.Container().UpdateContainer()
	lh.validFlag = false
	return leaving
}

// DeleteHaloParticles removes every halo particle. Idempotent; always
// invalidates (§4.9, §8.1 "rebuild freshness").
func (lh *LogicHandler) DeleteHaloParticles() {
	lh.tuner.Container().DeleteHaloParticles()
	lh.validFlag = false
}

// DeleteAllParticles empties the container. Idempotent; always invalidates.
func (lh *LogicHandler) DeleteAllParticles() {
	lh.tuner.Container().DeleteAllParticles()
	lh.validFlag = false
}

// IteratePairwise runs one pairwise traversal. If the container wasn't
// valid, this call forces whatever rebuild is necessary (delegated to the
// AutoTuner, which already rebuilds whenever its own container reports
// staleness) and resets the rebuild counter; otherwise it simply advances
// the counter (§4.9 bullet 3).
func (lh *LogicHandler) IteratePairwise(functor Functor) error {
	wasValid := lh.ContainerValid()
	if err := lh.tuner.IteratePairwise(functor); err != nil {
		return err
	}
	if !wasValid {
		lh.validFlag = true
		lh.stepsSinceRebuild = 0
		return nil
	}
	lh.stepsSinceRebuild++
	return nil
}

// StepsSinceRebuild reports the current value of the rebuild counter.
func (lh *LogicHandler) StepsSinceRebuild() int { return lh.stepsSinceRebuild }
