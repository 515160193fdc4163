package autopas

import "time"

// tunerState is the AutoTuner's two-state machine (§4.8.1): TUNING walks
// the configuration space sampling each candidate's runtime; STABLE keeps
// reusing the best configuration found until tuningInterval iterations
// have passed, then drops back into TUNING.
type tunerState int

const (
	tunerStateTuning tunerState = iota
	tunerStateStable
)

// AutoTuner owns the live Container, searches the configuration space for
// the fastest (traversal, data layout, Newton3) combination via a
// TuningStrategy, and decides when a rebuild is due (§4.8).
type AutoTuner struct {
	log    Logger
	pool   *workerPool
	space  []Configuration
	strategy TuningStrategy

	tuningInterval      int
	samplesPerConfig    int
	rebuildFrequency    int

	state              tunerState
	iterationsSinceTune int
	samplesCollected   int
	currentConfig      Configuration
	currentSampleNanos []int64

	container Container
	boxMin, boxMax [3]float64
	cutoff, skin   float64
}

// NewAutoTuner builds an AutoTuner over the given configuration space,
// constructing the initial container from the strategy's first proposal.
func NewAutoTuner(boxMin, boxMax [3]float64, cutoff, skin float64, space []Configuration, strategy TuningStrategy, tuningInterval, samplesPerConfig, rebuildFrequency, numWorkers int, log Logger) (*AutoTuner, error) {
	if len(space) == 0 {
		return nil, newError(InvalidConfiguration, "configuration space is empty")
	}
	if tuningInterval < 1 {
		tuningInterval = 1
	}
	if samplesPerConfig < 1 {
		samplesPerConfig = 1
	}
	if rebuildFrequency < 1 {
		rebuildFrequency = 1
	}
	if log == nil {
		log = noopLogger{}
	}

	t := &AutoTuner{
		log:                 log,
		pool:                newWorkerPool(numWorkers),
		space:               space,
		strategy:            strategy,
		tuningInterval:      tuningInterval,
		samplesPerConfig:    samplesPerConfig,
		rebuildFrequency:    rebuildFrequency,
		boxMin:              boxMin,
		boxMax:              boxMax,
		cutoff:              cutoff,
		skin:                skin,
	}
	strategy.Reset(space)
	if err := t.startTuningPhase(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *AutoTuner) startTuningPhase() error {
	t.state = tunerStateTuning
	t.strategy.Reset(t.space)
	cfg, ok := t.strategy.Next()
	if !ok {
		return newError(InvalidConfiguration, "tuning strategy proposed no configuration")
	}
	return t.switchTo(cfg)
}

func (t *AutoTuner) switchTo(cfg Configuration) error {
	var carried []Particle
	if t.container != nil {
		carried = drainAllParticles(t.container)
	}
	c, err := newContainer(cfg.Container, t.boxMin, t.boxMax, t.cutoff, t.skin, cfg.CellSizeFactor, t.rebuildFrequency)
	if err != nil {
		return err
	}
	for _, p := range carried {
		if p.Owned {
			if err := c.AddParticle(p); err != nil {
				return err
			}
		} else {
			if err := c.AddHaloParticle(p); err != nil {
				return err
			}
		}
	}
	t.container = c
	t.currentConfig = cfg
	t.currentSampleNanos = t.currentSampleNanos[:0]
	t.samplesCollected = 0
	t.log.Debug("autotuner: switched configuration", "config", cfg.String())
	return nil
}

// Container returns the live container backing the current configuration.
// Callers must re-fetch this after every IteratePairwise call rather than
// caching the pointer, since a rebuild replaces the container wholesale
// (§9's "non-owning handle" design note).
func (t *AutoTuner) Container() Container { return t.container }

// CurrentConfiguration returns the configuration currently in effect.
func (t *AutoTuner) CurrentConfiguration() Configuration { return t.currentConfig }

// InTuningPhase reports whether the tuner is still sampling candidate
// configurations this round.
func (t *AutoTuner) InTuningPhase() bool { return t.state == tunerStateTuning }

// IteratePairwise rebuilds the container if needed, runs one traversal of
// the current configuration against functor, times it, and advances the
// tuning state machine (§4.8.1, §4.8.2).
func (t *AutoTuner) IteratePairwise(functor Functor) error {
	rebuilt := false
	if t.willRebuild() {
		t.rebuildContainer()
		rebuilt = true
	}

	trav, err := newTraversal(TraversalSignature{
		Traversal:  t.currentConfig.Traversal,
		DataLayout: t.currentConfig.DataLayout,
		Newton3:    t.currentConfig.Newton3 == Newton3Enabled,
	}, t.container, functor, t.pool)
	if err != nil {
		return err
	}

	cells := t.container.Cells()
	start := monotonicNow()
	trav.InitTraversal(cells)
	trav.TraverseParticlePairs(functor)
	trav.EndTraversal(cells)
	elapsed := monotonicNow() - start

	if vlc, ok := t.container.(*VerletListsContainer); ok && !rebuilt {
		vlc.AdvanceStep()
	}
	if vcl, ok := t.container.(*VerletClusterListsContainer); ok && !rebuilt {
		vcl.AdvanceStep()
	}

	return t.advance(elapsed)
}

// WillRebuild reports whether the next IteratePairwise call would trigger
// a rebuild because the current container's own bookkeeping is stale. A
// pending configuration switch is not part of this check; a switch
// installs a new container, and a new Verlet container reports stale
// lists through this same check. LogicHandler consults this to compute
// containerValid (§4.9).
func (t *AutoTuner) WillRebuild() bool { return t.willRebuild() }

// willRebuild reports whether the container's own bookkeeping (a stale
// neighbor list, a verlet-cluster container that drifted past its skin)
// requires a rebuild before the next traversal (§4.8.2, §4.4, §4.5).
func (t *AutoTuner) willRebuild() bool {
	if t.container.NeedsRebuild() {
		return true
	}
	if vcl, ok := t.container.(*VerletClusterListsContainer); ok {
		return vcl.IsUpdateNeeded()
	}
	return false
}

func (t *AutoTuner) rebuildContainer() {
	switch c := t.container.(type) {
	case *VerletListsContainer:
		c.RebuildNeighborLists()
	case *VerletClusterListsContainer:
		c.Rebuild()
	}
}

// advance records one sample and steps the TUNING/STABLE state machine.
func (t *AutoTuner) advance(elapsedNanos int64) error {
	switch t.state {
	case tunerStateTuning:
		t.currentSampleNanos = append(t.currentSampleNanos, elapsedNanos)
		t.samplesCollected++
		if t.samplesCollected < t.samplesPerConfig {
			return nil
		}
		t.strategy.Report(measurement{config: t.currentConfig, nanos: medianNanos(t.currentSampleNanos)})

		next, ok := t.strategy.Next()
		if ok {
			return t.switchTo(next)
		}
		best, ok := t.strategy.BestSoFar()
		if !ok {
			return newError(InvalidConfiguration, "tuning phase produced no measurements")
		}
		t.state = tunerStateStable
		t.iterationsSinceTune = 0
		if best != t.currentConfig {
			return t.switchTo(best)
		}
		t.log.Info("autotuner: entering stable phase", "config", best.String())
		return nil

	case tunerStateStable:
		t.iterationsSinceTune++
		if t.iterationsSinceTune >= t.tuningInterval {
			return t.startTuningPhase()
		}
		return nil
	}
	return nil
}

func medianNanos(samples []int64) int64 {
	if len(samples) == 0 {
		return 0
	}
	sorted := append([]int64(nil), samples...)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j-1] > sorted[j]; j-- {
			sorted[j-1], sorted[j] = sorted[j], sorted[j-1]
		}
	}
	return sorted[len(sorted)/2]
}

// monotonicNow is the single point the tuner reads wall-clock time from,
// so a test can swap it out (see autotuner_test.go) without depending on
// real elapsed durations.
var monotonicNow = func() int64 { return time.Now().UnixNano() }
