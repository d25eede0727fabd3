package ml_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FluentFlier/aegis/internal/ml"
)

func TestStandardScaler_FitTransform(t *testing.T) {
	x := [][]float64{{2}, {4}, {6}}

	var s ml.StandardScaler
	out, err := s.FitTransform(x)
	require.NoError(t, err)

	assert.InDelta(t, 4.0, s.Mean[0], 1e-12)
	// Population standard deviation: sqrt(8/3).
	assert.InDelta(t, math.Sqrt(8.0/3.0), s.Std[0], 1e-12)
	assert.InDelta(t, -2/math.Sqrt(8.0/3.0), out[0][0], 1e-12)
	assert.InDelta(t, 0, out[1][0], 1e-12)
	assert.InDelta(t, 2/math.Sqrt(8.0/3.0), out[2][0], 1e-12)
}

func TestStandardScaler_ConstantColumn(t *testing.T) {
	x := [][]float64{{5, 1}, {5, 2}, {5, 3}}

	var s ml.StandardScaler
	out, err := s.FitTransform(x)
	require.NoError(t, err)

	// A constant column centers to zero instead of dividing by zero.
	assert.Equal(t, 1.0, s.Std[0])
	for _, row := range out {
		assert.Equal(t, 0.0, row[0])
	}
}

func TestStandardScaler_TransformUsesFittedStats(t *testing.T) {
	train := [][]float64{{0}, {10}}
	held := [][]float64{{5}, {20}}

	var s ml.StandardScaler
	_, err := s.FitTransform(train)
	require.NoError(t, err)

	out, err := s.Transform(held)
	require.NoError(t, err)

	// mean 5, population std 5: held-out rows scale by the training stats.
	assert.InDelta(t, 0.0, out[0][0], 1e-12)
	assert.InDelta(t, 3.0, out[1][0], 1e-12)
}

func TestStandardScaler_Errors(t *testing.T) {
	var s ml.StandardScaler
	_, err := s.Transform([][]float64{{1}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not fitted")

	require.Error(t, s.Fit(nil))

	require.NoError(t, s.Fit([][]float64{{1, 2}, {3, 4}}))
	_, err = s.Transform([][]float64{{1}})
	require.Error(t, err)
}
