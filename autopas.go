package autopas

// Options configures a new AutoPas instance. AllowedContainers and
// AllowedTraversals must be non-empty; New fails with InvalidConfiguration
// otherwise. An empty AllowedDataLayouts, AllowedNewton3Options or
// AllowedCellSizeFactors is filled with a default (both layouts, both
// Newton3 settings, factor 1.0).
type Options struct {
	BoxMin, BoxMax [3]float64
	Cutoff         float64
	Skin           float64

	RebuildFrequency int
	TuningInterval   int
	SamplesPerConfig int
	NumWorkers       int

	AllowedContainers      []ContainerOption
	AllowedTraversals      []TraversalOption
	AllowedDataLayouts     []DataLayoutOption
	AllowedNewton3Options  []Newton3Option
	AllowedCellSizeFactors []float64

	TuningStrategy TuningStrategyOption
	// Acquisition, StrategySampleBudget and RandomSearchSeed are only
	// consulted when TuningStrategy selects the matching strategy.
	// StrategySampleBudget bounds how many configurations RandomSearch or
	// BayesianSearch will propose per tuning phase.
	Acquisition           AcquisitionFunctionOption
	StrategySampleBudget  int
	RandomSearchSeed      int64

	Logger Logger
}

func (o *Options) setDefaults() {
	if o.RebuildFrequency < 1 {
		o.RebuildFrequency = 10
	}
	if o.TuningInterval < 1 {
		o.TuningInterval = 100
	}
	if o.SamplesPerConfig < 1 {
		o.SamplesPerConfig = 3
	}
	if o.NumWorkers < 1 {
		o.NumWorkers = 1
	}
	if len(o.AllowedCellSizeFactors) == 0 {
		o.AllowedCellSizeFactors = []float64{1.0}
	}
	if len(o.AllowedNewton3Options) == 0 {
		o.AllowedNewton3Options = []Newton3Option{Newton3Enabled, Newton3Disabled}
	}
	if len(o.AllowedDataLayouts) == 0 {
		o.AllowedDataLayouts = []DataLayoutOption{DataLayoutAoS, DataLayoutSoA}
	}
	if o.StrategySampleBudget < 1 {
		o.StrategySampleBudget = 5
	}
}

// AutoPas is the public entry point (§6.2): init, add/remove particles,
// run one pairwise traversal, iterate, and tune. It owns a LogicHandler,
// which owns an AutoTuner, which owns the live Container; AutoPas itself
// holds no container reference of its own, matching the "non-owning
// handle, re-seated on rebuild" design note in §9 — every accessor here
// reads through lh.tuner.Container() fresh rather than caching it.
type AutoPas struct {
	lh  *LogicHandler
	log Logger
}

// New constructs an AutoPas instance: builds the configuration space,
// the tuning strategy, the AutoTuner and its initial container, and the
// gatekeeping LogicHandler (§6.2 init).
func New(opts Options) (*AutoPas, error) {
	opts.setDefaults()
	if len(opts.AllowedContainers) == 0 {
		return nil, newError(InvalidConfiguration, "init: no allowed containers")
	}
	if len(opts.AllowedTraversals) == 0 {
		return nil, newError(InvalidConfiguration, "init: no allowed traversals")
	}

	log := opts.Logger
	if log == nil {
		log = noopLogger{}
	}

	space := configurationSpace(opts.AllowedContainers, opts.AllowedTraversals, opts.AllowedDataLayouts, opts.AllowedNewton3Options, opts.AllowedCellSizeFactors)
	if len(space) == 0 {
		return nil, newError(InvalidConfiguration, "init: configuration space is empty after filtering")
	}

	strategy, err := newTuningStrategy(opts)
	if err != nil {
		return nil, err
	}

	tuner, err := NewAutoTuner(opts.BoxMin, opts.BoxMax, opts.Cutoff, opts.Skin, space, strategy, opts.TuningInterval, opts.SamplesPerConfig, opts.RebuildFrequency, opts.NumWorkers, log)
	if err != nil {
		return nil, err
	}

	return &AutoPas{
		lh:  NewLogicHandler(tuner, opts.RebuildFrequency),
		log: log,
	}, nil
}

func newTuningStrategy(opts Options) (TuningStrategy, error) {
	switch opts.TuningStrategy {
	case StrategyFullSearch:
		return NewFullSearchStrategy(), nil
	case StrategyRandomSearch:
		return NewRandomSearchStrategy(opts.StrategySampleBudget, opts.RandomSearchSeed), nil
	case StrategyBayesianSearch:
		return NewBayesianSearchStrategy(opts.Acquisition, 1.0, 1e-6, opts.StrategySampleBudget), nil
	default:
		return NewFullSearchStrategy(), nil
	}
}

// AddParticle inserts an owned particle (§6.2).
func (a *AutoPas) AddParticle(p Particle) error { return a.lh.AddParticle(p) }

// AddHaloParticle inserts a halo copy supplied by an external boundary
// manager (§6.2).
func (a *AutoPas) AddHaloParticle(p Particle) error { return a.lh.AddHaloParticle(p) }

// AddOrUpdateHaloParticle inserts or updates a halo particle by id
// (§6.2, §9).
func (a *AutoPas) AddOrUpdateHaloParticle(p Particle) error { return a.lh.AddOrUpdateHaloParticle(p) }

// UpdateContainer re-bins particles and returns those that left the box
// (§6.2).
func (a *AutoPas) UpdateContainer() []Particle { return a.lh.UpdateContainer() }

// DeleteHaloParticles removes every halo particle (§6.2).
func (a *AutoPas) DeleteHaloParticles() { a.lh.DeleteHaloParticles() }

// DeleteAllParticles empties the container (§6.2).
func (a *AutoPas) DeleteAllParticles() { a.lh.DeleteAllParticles() }

// IteratePairwise picks a configuration, runs one traversal with functor,
// and updates the tuner's and logic handler's counters (§6.2).
func (a *AutoPas) IteratePairwise(functor Functor) error { return a.lh.IteratePairwise(functor) }

// Begin returns a lazy, single-threaded particle iterator over the whole
// container, filtered by behavior (§6.2, §4.10).
func (a *AutoPas) Begin(behavior IteratorBehavior) *ParticleIterator {
	return a.lh.tuner.Container().Iterator(behavior)
}

// GetRegionIterator returns a particle iterator restricted to a region;
// callers must not assume it returns an exact set, only a superset of the
// owned particles actually inside [lo,hi] (§4.10, §8.1).
func (a *AutoPas) GetRegionIterator(lo, hi [3]float64, behavior IteratorBehavior) *ParticleIterator {
	return a.lh.tuner.Container().RegionIterator(lo, hi, behavior)
}

// NumParticles returns the total particle count, owned and halo.
func (a *AutoPas) NumParticles() int { return a.lh.tuner.Container().NumParticles() }

// CurrentConfiguration reports the configuration the tuner currently has
// in effect.
func (a *AutoPas) CurrentConfiguration() Configuration { return a.lh.tuner.CurrentConfiguration() }

// InTuningPhase reports whether the tuner is still sampling candidate
// configurations.
func (a *AutoPas) InTuningPhase() bool { return a.lh.tuner.InTuningPhase() }
