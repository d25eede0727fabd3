package ml_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FluentFlier/aegis/internal/ml"
)

func TestLogisticRegression_SeparableData(t *testing.T) {
	d := separableDataset(20, 4)

	m := ml.NewLogisticRegression(ml.DefaultLogisticConfig())
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

func TestLogisticRegression_Deterministic(t *testing.T) {
	d := separableDataset(15, 3)

	m1 := ml.NewLogisticRegression(ml.DefaultLogisticConfig())
	m2 := ml.NewLogisticRegression(ml.DefaultLogisticConfig())
	require.NoError(t, m1.Fit(d.X, d.Y))
	require.NoError(t, m2.Fit(d.X, d.Y))

	assert.Equal(t, m1.Coefficients(), m2.Coefficients())
	assert.Equal(t, m1.Intercept(), m2.Intercept())
}

func TestLogisticRegression_ImportanceFollowsSignal(t *testing.T) {
	d := separableDataset(20, 4)

	m := ml.NewLogisticRegression(ml.DefaultLogisticConfig())
	require.NoError(t, m.Fit(d.X, d.Y))

	imp, err := m.Importance()
	require.NoError(t, err)
	require.Len(t, imp, 4)

	// Only feature 0 carries signal; the constant features get no weight.
	assert.Greater(t, imp[0], 0.0)
	for j := 1; j < 4; j++ {
		assert.InDelta(t, 0.0, imp[j], 1e-9, "feature %d", j)
	}
}

func TestLogisticRegression_SingleClassFails(t *testing.T) {
	x := [][]float64{{1}, {2}, {3}}
	y := []int{1, 1, 1}

	m := ml.NewLogisticRegression(ml.DefaultLogisticConfig())
	err := m.Fit(x, y)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "single class")
}

func TestLogisticRegression_UnfittedErrors(t *testing.T) {
	m := ml.NewLogisticRegression(ml.DefaultLogisticConfig())

	_, err := m.Predict([][]float64{{1}})
	require.Error(t, err)
	_, err = m.Importance()
	require.Error(t, err)
}
