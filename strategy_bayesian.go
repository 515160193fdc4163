package autopas

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// BayesianSearchStrategy fits a Gaussian-process surrogate over sampled
// (configuration, runtime) pairs and proposes the unsampled configuration
// that maximizes an acquisition function (§4.8 bullet 2, "Bayesian
// search"). The "variance" acquisition function explores regardless of
// predicted runtime and is marked experimental per §4.8's resolved open
// question: it is kept because a pure-exploration option is useful for
// probing an unfamiliar configuration space, but it will not converge on
// a fast configuration on its own and should not be the default.
type BayesianSearchStrategy struct {
	acquisition AcquisitionFunctionOption
	lengthScale float64
	noiseVar    float64
	maxSamplesPerPhase int

	space     []Configuration
	remaining []int // indices into space not yet sampled this phase

	trainX [][]float64
	trainY []float64
	lastIdx int

	best      Configuration
	bestNanos int64
	bestSet   bool
}

// NewBayesianSearchStrategy returns a strategy using an RBF kernel with
// the given length scale and observation noise variance, proposing up to
// maxSamplesPerPhase configurations per tuning phase.
func NewBayesianSearchStrategy(acquisition AcquisitionFunctionOption, lengthScale, noiseVar float64, maxSamplesPerPhase int) *BayesianSearchStrategy {
	if lengthScale <= 0 {
		lengthScale = 1
	}
	if noiseVar <= 0 {
		noiseVar = 1e-6
	}
	if maxSamplesPerPhase < 1 {
		maxSamplesPerPhase = 1
	}
	return &BayesianSearchStrategy{
		acquisition:        acquisition,
		lengthScale:        lengthScale,
		noiseVar:           noiseVar,
		maxSamplesPerPhase: maxSamplesPerPhase,
	}
}

func (s *BayesianSearchStrategy) Option() TuningStrategyOption { return StrategyBayesianSearch }

func (s *BayesianSearchStrategy) Reset(space []Configuration) {
	s.space = space
	s.remaining = make([]int, len(space))
	for i := range space {
		s.remaining[i] = i
	}
	s.trainX = nil
	s.trainY = nil
	s.bestSet = false
	s.lastIdx = -1
}

// featurize turns a Configuration into the GP's input vector. Categorical
// axes are mapped to small integer coordinates; the RBF kernel treats
// every axis on equal footing, which is a simplification the "experimental"
// label on the Bayesian strategy as a whole already covers.
func featurize(c Configuration) []float64 {
	return []float64{
		float64(c.Container),
		float64(c.Traversal),
		float64(c.DataLayout),
		float64(c.Newton3),
		c.CellSizeFactor,
	}
}

func (s *BayesianSearchStrategy) Next() (Configuration, bool) {
	if len(s.remaining) == 0 || len(s.trainX) >= s.maxSamplesPerPhase {
		return Configuration{}, false
	}

	if len(s.trainX) == 0 {
		idx := s.remaining[0]
		s.remaining = s.remaining[1:]
		s.lastIdx = idx
		return s.space[idx], true
	}

	mean, std := s.predictAll(s.remaining)
	bestI, bestScore := 0, math.Inf(-1)
	for i := range s.remaining {
		score := acquisitionScore(s.acquisition, mean[i], std[i])
		if score > bestScore {
			bestScore = score
			bestI = i
		}
	}
	idx := s.remaining[bestI]
	s.remaining = append(s.remaining[:bestI], s.remaining[bestI+1:]...)
	s.lastIdx = idx
	return s.space[idx], true
}

// acquisitionScore turns a predicted (mean runtime, std) into a value to
// maximize. Runtime is a cost, so confidence-bound acquisitions negate
// mean: a lower predicted runtime is a higher score.
func acquisitionScore(a AcquisitionFunctionOption, mean, std float64) float64 {
	switch a {
	case AcquisitionUpperConfidenceBound:
		return -mean + 2*std
	case AcquisitionLowerConfidenceBound:
		return -mean - 2*std
	case AcquisitionMean:
		return -mean
	case AcquisitionVariance:
		return std * std
	case AcquisitionProbabilityOfDecrease:
		if std == 0 {
			return 0
		}
		return -mean / std
	case AcquisitionExpectedDecrease:
		return -mean + std
	default:
		return -mean
	}
}

func (s *BayesianSearchStrategy) Report(m measurement) {
	if s.lastIdx >= 0 {
		s.trainX = append(s.trainX, featurize(m.config))
		s.trainY = append(s.trainY, float64(m.nanos))
	}
	if !s.bestSet || m.nanos < s.bestNanos {
		s.best = m.config
		s.bestNanos = m.nanos
		s.bestSet = true
	}
}

func (s *BayesianSearchStrategy) BestSoFar() (Configuration, bool) {
	return s.best, s.bestSet
}

func (s *BayesianSearchStrategy) rbf(a, b []float64) float64 {
	sumSq := 0.0
	for i := range a {
		d := a[i] - b[i]
		sumSq += d * d
	}
	return math.Exp(-sumSq / (2 * s.lengthScale * s.lengthScale))
}

// predictAll fits the GP on the training set accumulated so far and
// returns the posterior mean and standard deviation of the runtime at
// each candidate index in s.space.
func (s *BayesianSearchStrategy) predictAll(candidates []int) (mean, std []float64) {
	n := len(s.trainX)
	k := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := s.rbf(s.trainX[i], s.trainX[j])
			if i == j {
				v += s.noiseVar
			}
			k.Set(i, j, v)
		}
	}

	var chol mat.Cholesky
	ok := chol.Factorize(asSymDense(k))

	y := mat.NewVecDense(n, s.trainY)
	alpha := mat.NewVecDense(n, nil)
	if ok {
		chol.SolveVecTo(alpha, y)
	} else {
		// Degenerate or ill-conditioned kernel matrix: fall back to the
		// sample mean, effectively disabling the GP for this round.
		avg := 0.0
		for _, v := range s.trainY {
			avg += v
		}
		if n > 0 {
			avg /= float64(n)
		}
		for i := 0; i < n; i++ {
			alpha.SetVec(i, 0)
		}
		mean = make([]float64, len(candidates))
		std = make([]float64, len(candidates))
		for i := range mean {
			mean[i] = avg
			std[i] = 1
		}
		return mean, std
	}

	mean = make([]float64, len(candidates))
	std = make([]float64, len(candidates))
	kStar := mat.NewVecDense(n, nil)
	v := mat.NewVecDense(n, nil)
	for ci, candIdx := range candidates {
		x := featurize(s.space[candIdx])
		for i := 0; i < n; i++ {
			kStar.SetVec(i, s.rbf(x, s.trainX[i]))
		}
		mean[ci] = mat.Dot(kStar, alpha)

		chol.SolveVecTo(v, kStar)
		selfK := s.rbf(x, x)
		variance := selfK - mat.Dot(kStar, v)
		if variance < 0 {
			variance = 0
		}
		std[ci] = math.Sqrt(variance)
	}
	return mean, std
}

// asSymDense wraps a square *mat.Dense as a *mat.SymDense, assuming the
// caller already built it symmetric (true for an RBF Gram matrix).
func asSymDense(d *mat.Dense) *mat.SymDense {
	n, _ := d.Dims()
	sym := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			sym.SetSym(i, j, d.At(i, j))
		}
	}
	return sym
}
