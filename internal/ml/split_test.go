package ml_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FluentFlier/aegis/internal/ml"
)

// skewedDataset has 40 negatives and 10 positives; feature 0 is the row index
// so individual rows stay identifiable after shuffling.
func skewedDataset(t *testing.T) ml.Dataset {
	t.Helper()
	x := make([][]float64, 50)
	y := make([]int, 50)
	for i := range x {
		x[i] = []float64{float64(i)}
		if i >= 40 {
			y[i] = 1
		}
	}
	d, err := ml.NewDataset(x, y)
	require.NoError(t, err)
	return d
}

func TestTrainTestSplit_PreservesClassProportions(t *testing.T) {
	d := skewedDataset(t)

	train, test, err := ml.TrainTestSplit(d, 0.2, 42)
	require.NoError(t, err)

	trainNeg, trainPos := train.ClassCounts()
	testNeg, testPos := test.ClassCounts()

	// 20% of 40 negatives and 20% of 10 positives.
	assert.Equal(t, 8, testNeg)
	assert.Equal(t, 2, testPos)
	assert.Equal(t, 32, trainNeg)
	assert.Equal(t, 8, trainPos)
}

func TestTrainTestSplit_PartitionsAreDisjointAndComplete(t *testing.T) {
	d := skewedDataset(t)

	train, test, err := ml.TrainTestSplit(d, 0.2, 7)
	require.NoError(t, err)

	seen := map[float64]int{}
	for _, row := range train.X {
		seen[row[0]]++
	}
	for _, row := range test.X {
		seen[row[0]]++
	}
	require.Len(t, seen, 50)
	for id, count := range seen {
		assert.Equal(t, 1, count, "row %v appears %d times", id, count)
	}
}

func TestTrainTestSplit_Deterministic(t *testing.T) {
	d := skewedDataset(t)

	train1, test1, err := ml.TrainTestSplit(d, 0.2, 42)
	require.NoError(t, err)
	train2, test2, err := ml.TrainTestSplit(d, 0.2, 42)
	require.NoError(t, err)

	assert.Equal(t, train1.X, train2.X)
	assert.Equal(t, test1.X, test2.X)
	assert.Equal(t, train1.Y, train2.Y)
	assert.Equal(t, test1.Y, test2.Y)
}

func TestTrainTestSplit_RejectsTinyClass(t *testing.T) {
	x := [][]float64{{1}, {2}, {3}}
	y := []int{0, 0, 1}
	d, err := ml.NewDataset(x, y)
	require.NoError(t, err)

	_, _, err = ml.TrainTestSplit(d, 0.2, 42)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 2 per class")
}

func TestTrainTestSplit_RejectsBadFraction(t *testing.T) {
	d := skewedDataset(t)

	_, _, err := ml.TrainTestSplit(d, 0, 42)
	assert.Error(t, err)
	_, _, err = ml.TrainTestSplit(d, 1, 42)
	assert.Error(t, err)
}

func TestStratifiedKFold(t *testing.T) {
	d := skewedDataset(t)

	folds, err := ml.StratifiedKFold(d, 5, 42)
	require.NoError(t, err)
	require.Len(t, folds, 5)

	var allTest []int
	for _, fold := range folds {
		test := d.Subset(fold.TestIdx)
		neg, pos := test.ClassCounts()
		assert.Equal(t, 8, neg)
		assert.Equal(t, 2, pos)
		assert.Len(t, fold.TrainIdx, 40)
		allTest = append(allTest, fold.TestIdx...)
	}

	// Test partitions cover every row exactly once.
	sort.Ints(allTest)
	require.Len(t, allTest, 50)
	for i, idx := range allTest {
		assert.Equal(t, i, idx)
	}
}

func TestStratifiedKFold_RejectsTooManyFolds(t *testing.T) {
	d := skewedDataset(t) // 10 positives

	_, err := ml.StratifiedKFold(d, 11, 42)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fewer than 11 folds")
}
