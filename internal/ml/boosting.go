package ml

import (
	"fmt"
	"math"
)

// BoostingConfig tunes the gradient boosting fit. The fit is deterministic:
// every stage sees all rows, so no seed is involved.
type BoostingConfig struct {
	NumTrees        int
	MaxDepth        int
	MinSamplesSplit int
	LearningRate    float64
}

// DefaultBoostingConfig mirrors the production training profile.
func DefaultBoostingConfig() BoostingConfig {
	return BoostingConfig{
		NumTrees:        100,
		MaxDepth:        5,
		MinSamplesSplit: 2,
		LearningRate:    0.1,
	}
}

// GradientBoosting fits an additive stagewise ensemble under logistic loss.
// Each stage fits a regression tree to the current pseudo-residuals and takes
// a Newton step per leaf. Stages are sequential by construction.
type GradientBoosting struct {
	cfg      BoostingConfig
	trees    []*regTree
	baseline float64
	p        int
	fitted   bool
}

// NewGradientBoosting creates an unfitted ensemble.
func NewGradientBoosting(cfg BoostingConfig) *GradientBoosting {
	if cfg.NumTrees <= 0 {
		cfg.NumTrees = DefaultBoostingConfig().NumTrees
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultBoostingConfig().MaxDepth
	}
	if cfg.LearningRate <= 0 {
		cfg.LearningRate = DefaultBoostingConfig().LearningRate
	}
	return &GradientBoosting{cfg: cfg}
}

// Fit trains the ensemble.
func (m *GradientBoosting) Fit(x [][]float64, y []int) error {
	if err := validateFit(x, y); err != nil {
		return err
	}

	n := len(x)
	m.p = len(x[0])

	// Start from the log-odds of the base rate.
	posRate := 0.0
	for _, label := range y {
		posRate += float64(label)
	}
	posRate = clampProb(posRate / float64(n))
	m.baseline = math.Log(posRate / (1 - posRate))

	score := make([]float64, n)
	for i := range score {
		score[i] = m.baseline
	}

	residual := make([]float64, n)
	m.trees = make([]*regTree, 0, m.cfg.NumTrees)

	for stage := 0; stage < m.cfg.NumTrees; stage++ {
		for i := range residual {
			residual[i] = float64(y[i]) - sigmoid(score[i])
		}

		tree := fitTree(x, residual, treeConfig{
			maxDepth:        m.cfg.MaxDepth,
			minSamplesSplit: m.cfg.MinSamplesSplit,
			minSamplesLeaf:  1,
		})

		// Newton step per leaf: sum of residuals over sum of hessians.
		leafResidual := map[int]float64{}
		leafHessian := map[int]float64{}
		leafOf := make([]int, n)
		for i, row := range x {
			leaf := tree.apply(row)
			leafOf[i] = leaf
			prob := sigmoid(score[i])
			leafResidual[leaf] += residual[i]
			leafHessian[leaf] += prob * (1 - prob)
		}
		for leaf, r := range leafResidual {
			h := leafHessian[leaf]
			if h < 1e-12 {
				h = 1e-12
			}
			tree.nodes[leaf].value = r / h
		}

		for i := range score {
			score[i] += m.cfg.LearningRate * tree.nodes[leafOf[i]].value
		}
		m.trees = append(m.trees, tree)
	}

	m.fitted = true
	return nil
}

// PredictProba returns P(label=1) per row.
func (m *GradientBoosting) PredictProba(x [][]float64) ([]float64, error) {
	if !m.fitted {
		return nil, fmt.Errorf("model is not fitted")
	}
	out := make([]float64, len(x))
	for i, row := range x {
		if len(row) != m.p {
			return nil, fmt.Errorf("row %d has %d features, model fitted on %d", i, len(row), m.p)
		}
		score := m.baseline
		for _, t := range m.trees {
			score += m.cfg.LearningRate * t.predictRow(row)
		}
		out[i] = sigmoid(score)
	}
	return out, nil
}

// Predict returns hard labels at the 0.5 threshold.
func (m *GradientBoosting) Predict(x [][]float64) ([]int, error) {
	proba, err := m.PredictProba(x)
	if err != nil {
		return nil, err
	}
	return thresholdLabels(proba), nil
}

// Importance returns per-feature squared-error reduction summed over all
// stages.
func (m *GradientBoosting) Importance() ([]float64, error) {
	if !m.fitted {
		return nil, fmt.Errorf("model is not fitted")
	}
	imp := make([]float64, m.p)
	for _, t := range m.trees {
		for j, v := range t.importance {
			imp[j] += v
		}
	}
	return imp, nil
}

func clampProb(p float64) float64 {
	const eps = 1e-6
	if p < eps {
		return eps
	}
	if p > 1-eps {
		return 1 - eps
	}
	return p
}
