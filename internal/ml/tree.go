package ml

import (
	"math/rand"
	"sort"
)

// regTree is a CART regression tree minimizing squared error. On 0/1 targets
// the variance criterion picks the same splits as Gini impurity, so one tree
// serves both classification ensembles and boosted residual fits. Leaves hold
// the target mean, which on binary targets is the positive-class fraction.
type regTree struct {
	nodes      []treeNode
	importance []float64
}

type treeNode struct {
	threshold float64
	value     float64
	feature   int
	left      int
	right     int
	samples   int
	leaf      bool
}

type treeConfig struct {
	maxDepth        int
	minSamplesSplit int
	minSamplesLeaf  int
	// maxFeatures limits the features considered per split; 0 means all.
	maxFeatures int
	rng         *rand.Rand
}

const minImprovement = 1e-12

func fitTree(x [][]float64, y []float64, cfg treeConfig) *regTree {
	if cfg.minSamplesSplit < 2 {
		cfg.minSamplesSplit = 2
	}
	if cfg.minSamplesLeaf < 1 {
		cfg.minSamplesLeaf = 1
	}

	p := len(x[0])
	t := &regTree{importance: make([]float64, p)}
	indices := make([]int, len(x))
	for i := range indices {
		indices[i] = i
	}
	t.grow(x, y, indices, 0, cfg, p)
	return t
}

// grow appends the subtree over indices and returns its root node index.
func (t *regTree) grow(x [][]float64, y []float64, indices []int, depth int, cfg treeConfig, p int) int {
	n := len(indices)
	sum, sum2 := 0.0, 0.0
	for _, idx := range indices {
		sum += y[idx]
		sum2 += y[idx] * y[idx]
	}
	mean := sum / float64(n)
	sse := sum2 - sum*sum/float64(n)

	nodeIdx := len(t.nodes)
	t.nodes = append(t.nodes, treeNode{value: mean, samples: n, leaf: true})

	if depth >= cfg.maxDepth || n < cfg.minSamplesSplit || sse <= minImprovement {
		return nodeIdx
	}

	feature, threshold, improvement := t.bestSplit(x, y, indices, sse, cfg, p)
	if improvement <= minImprovement {
		return nodeIdx
	}

	var leftIdx, rightIdx []int
	for _, idx := range indices {
		if x[idx][feature] <= threshold {
			leftIdx = append(leftIdx, idx)
		} else {
			rightIdx = append(rightIdx, idx)
		}
	}
	if len(leftIdx) < cfg.minSamplesLeaf || len(rightIdx) < cfg.minSamplesLeaf {
		return nodeIdx
	}

	t.importance[feature] += improvement

	left := t.grow(x, y, leftIdx, depth+1, cfg, p)
	right := t.grow(x, y, rightIdx, depth+1, cfg, p)

	t.nodes[nodeIdx].leaf = false
	t.nodes[nodeIdx].feature = feature
	t.nodes[nodeIdx].threshold = threshold
	t.nodes[nodeIdx].left = left
	t.nodes[nodeIdx].right = right
	return nodeIdx
}

// bestSplit scans candidate features for the split with the largest squared
// error reduction.
func (t *regTree) bestSplit(x [][]float64, y []float64, indices []int, parentSSE float64, cfg treeConfig, p int) (int, float64, float64) {
	features := make([]int, p)
	for j := range features {
		features[j] = j
	}
	if cfg.maxFeatures > 0 && cfg.maxFeatures < p && cfg.rng != nil {
		cfg.rng.Shuffle(p, func(i, j int) {
			features[i], features[j] = features[j], features[i]
		})
		features = features[:cfg.maxFeatures]
	}

	n := len(indices)
	sorted := make([]int, n)
	bestFeature, bestThreshold, bestImprovement := -1, 0.0, 0.0

	for _, f := range features {
		copy(sorted, indices)
		sort.Slice(sorted, func(a, b int) bool {
			return x[sorted[a]][f] < x[sorted[b]][f]
		})

		leftSum, leftSum2 := 0.0, 0.0
		totalSum, totalSum2 := 0.0, 0.0
		for _, idx := range sorted {
			totalSum += y[idx]
			totalSum2 += y[idx] * y[idx]
		}

		for s := 1; s < n; s++ {
			v := y[sorted[s-1]]
			leftSum += v
			leftSum2 += v * v

			cur, next := x[sorted[s-1]][f], x[sorted[s]][f]
			if cur == next {
				continue
			}
			if s < cfg.minSamplesLeaf || n-s < cfg.minSamplesLeaf {
				continue
			}

			rightSum := totalSum - leftSum
			rightSum2 := totalSum2 - leftSum2
			leftSSE := leftSum2 - leftSum*leftSum/float64(s)
			rightSSE := rightSum2 - rightSum*rightSum/float64(n-s)

			improvement := parentSSE - leftSSE - rightSSE
			if improvement > bestImprovement {
				bestImprovement = improvement
				bestFeature = f
				bestThreshold = (cur + next) / 2
			}
		}
	}

	return bestFeature, bestThreshold, bestImprovement
}

// predictRow walks the row to its leaf value.
func (t *regTree) predictRow(row []float64) float64 {
	idx := 0
	for !t.nodes[idx].leaf {
		if row[t.nodes[idx].feature] <= t.nodes[idx].threshold {
			idx = t.nodes[idx].left
		} else {
			idx = t.nodes[idx].right
		}
	}
	return t.nodes[idx].value
}

// apply returns the leaf node index the row lands in.
func (t *regTree) apply(row []float64) int {
	idx := 0
	for !t.nodes[idx].leaf {
		if row[t.nodes[idx].feature] <= t.nodes[idx].threshold {
			idx = t.nodes[idx].left
		} else {
			idx = t.nodes[idx].right
		}
	}
	return idx
}
