package ml_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FluentFlier/aegis/internal/ml"
)

func testForestConfig() ml.ForestConfig {
	cfg := ml.DefaultForestConfig()
	cfg.NumTrees = 25
	cfg.MaxFeatures = 4 // all features, so every tree sees the signal column
	return cfg
}

func TestRandomForest_SeparableData(t *testing.T) {
	d := separableDataset(20, 4)

	m := ml.NewRandomForest(testForestConfig())
	require.NoError(t, m.Fit(d.X, d.Y))

	pred, err := m.Predict(d.X)
	require.NoError(t, err)
	assert.Equal(t, 1.0, ml.Accuracy(d.Y, pred))

	proba, err := m.PredictProba(d.X)
	require.NoError(t, err)
	auc, err := ml.ROCAUC(d.Y, proba)
	require.NoError(t, err)
	assert.Equal(t, 1.0, auc)
}

func TestRandomForest_Deterministic(t *testing.T) {
	d := separableDataset(15, 4)

	m1 := ml.NewRandomForest(testForestConfig())
	m2 := ml.NewRandomForest(testForestConfig())
	require.NoError(t, m1.Fit(d.X, d.Y))
	require.NoError(t, m2.Fit(d.X, d.Y))

	p1, err := m1.PredictProba(d.X)
	require.NoError(t, err)
	p2, err := m2.PredictProba(d.X)
	require.NoError(t, err)

	// Trees train in parallel, but per-tree seeding keeps results identical.
	assert.Equal(t, p1, p2)

	i1, err := m1.Importance()
	require.NoError(t, err)
	i2, err := m2.Importance()
	require.NoError(t, err)
	assert.Equal(t, i1, i2)
}

func TestRandomForest_ImportanceFollowsSignal(t *testing.T) {
	d := separableDataset(20, 4)

	m := ml.NewRandomForest(testForestConfig())
	require.NoError(t, m.Fit(d.X, d.Y))

	imp, err := m.Importance()
	require.NoError(t, err)
	require.Len(t, imp, 4)

	assert.Greater(t, imp[0], 0.0)
	for j := 1; j < 4; j++ {
		assert.Equal(t, 0.0, imp[j], "constant feature %d cannot split", j)
	}
}

func TestRandomForest_SingleClassFails(t *testing.T) {
	x := [][]float64{{1}, {2}}
	y := []int{0, 0}

	m := ml.NewRandomForest(testForestConfig())
	err := m.Fit(x, y)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "single class")
}

func TestRandomForest_UnfittedErrors(t *testing.T) {
	m := ml.NewRandomForest(testForestConfig())

	_, err := m.PredictProba([][]float64{{1, 2, 3, 4}})
	require.Error(t, err)
	_, err = m.Importance()
	require.Error(t, err)
}
