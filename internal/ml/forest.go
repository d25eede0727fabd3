package ml

import (
	"fmt"
	"math"
	"math/rand"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ForestConfig tunes the random forest fit.
type ForestConfig struct {
	NumTrees        int
	MaxDepth        int
	MinSamplesSplit int
	// MaxFeatures limits features per split; 0 means round(sqrt(p)).
	MaxFeatures int
	Seed        int64
}

// DefaultForestConfig mirrors the production training profile.
func DefaultForestConfig() ForestConfig {
	return ForestConfig{
		NumTrees:        100,
		MaxDepth:        10,
		MinSamplesSplit: 2,
		Seed:            42,
	}
}

// RandomForest is a bagging ensemble: each tree fits a bootstrap resample
// with per-split feature subsampling, and predictions average the trees.
// Trees train in parallel; each derives its RNG from the seed and its own
// index, so results are reproducible regardless of scheduling.
type RandomForest struct {
	cfg    ForestConfig
	trees  []*regTree
	numFit int
	p      int
}

// NewRandomForest creates an unfitted ensemble.
func NewRandomForest(cfg ForestConfig) *RandomForest {
	if cfg.NumTrees <= 0 {
		cfg.NumTrees = DefaultForestConfig().NumTrees
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultForestConfig().MaxDepth
	}
	return &RandomForest{cfg: cfg}
}

// Fit trains the ensemble.
func (m *RandomForest) Fit(x [][]float64, y []int) error {
	if err := validateFit(x, y); err != nil {
		return err
	}

	n := len(x)
	m.p = len(x[0])
	maxFeatures := m.cfg.MaxFeatures
	if maxFeatures <= 0 {
		maxFeatures = int(math.Round(math.Sqrt(float64(m.p))))
		if maxFeatures < 1 {
			maxFeatures = 1
		}
	}

	yFloat := make([]float64, n)
	for i, label := range y {
		yFloat[i] = float64(label)
	}

	m.trees = make([]*regTree, m.cfg.NumTrees)
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i := 0; i < m.cfg.NumTrees; i++ {
		g.Go(func() error {
			rng := rand.New(rand.NewSource(m.cfg.Seed + int64(i)))

			bootstrapX := make([][]float64, n)
			bootstrapY := make([]float64, n)
			for s := 0; s < n; s++ {
				idx := rng.Intn(n)
				bootstrapX[s] = x[idx]
				bootstrapY[s] = yFloat[idx]
			}

			m.trees[i] = fitTree(bootstrapX, bootstrapY, treeConfig{
				maxDepth:        m.cfg.MaxDepth,
				minSamplesSplit: m.cfg.MinSamplesSplit,
				minSamplesLeaf:  1,
				maxFeatures:     maxFeatures,
				rng:             rng,
			})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	m.numFit = m.cfg.NumTrees
	return nil
}

// PredictProba averages leaf values across trees.
func (m *RandomForest) PredictProba(x [][]float64) ([]float64, error) {
	if m.numFit == 0 {
		return nil, fmt.Errorf("model is not fitted")
	}
	out := make([]float64, len(x))
	for i, row := range x {
		if len(row) != m.p {
			return nil, fmt.Errorf("row %d has %d features, model fitted on %d", i, len(row), m.p)
		}
		sum := 0.0
		for _, t := range m.trees {
			sum += t.predictRow(row)
		}
		out[i] = sum / float64(m.numFit)
	}
	return out, nil
}

// Predict returns hard labels at the 0.5 threshold.
func (m *RandomForest) Predict(x [][]float64) ([]int, error) {
	proba, err := m.PredictProba(x)
	if err != nil {
		return nil, err
	}
	return thresholdLabels(proba), nil
}

// Importance returns per-feature squared-error reduction summed over all
// trees, averaged per tree.
func (m *RandomForest) Importance() ([]float64, error) {
	if m.numFit == 0 {
		return nil, fmt.Errorf("model is not fitted")
	}
	imp := make([]float64, m.p)
	for _, t := range m.trees {
		for j, v := range t.importance {
			imp[j] += v
		}
	}
	for j := range imp {
		imp[j] /= float64(m.numFit)
	}
	return imp, nil
}
