// Package ml implements the estimators behind adaptive weight training:
// logistic regression, random forests and gradient boosting over a shared
// fit/predict/importance interface, plus the supporting split, scaling and
// evaluation primitives. The package is pure numerics; it knows nothing about
// suppliers, contracts or versions.
package ml

import (
	"fmt"
)

// Dataset is a dense feature matrix with binary labels.
type Dataset struct {
	X [][]float64
	Y []int
}

// NewDataset validates that the matrix is rectangular and labels are binary.
func NewDataset(x [][]float64, y []int) (Dataset, error) {
	if len(x) != len(y) {
		return Dataset{}, fmt.Errorf("feature matrix has %d rows but %d labels", len(x), len(y))
	}
	if len(x) == 0 {
		return Dataset{}, fmt.Errorf("dataset is empty")
	}
	width := len(x[0])
	if width == 0 {
		return Dataset{}, fmt.Errorf("dataset has no features")
	}
	for i, row := range x {
		if len(row) != width {
			return Dataset{}, fmt.Errorf("row %d has %d features, want %d", i, len(row), width)
		}
	}
	for i, label := range y {
		if label != 0 && label != 1 {
			return Dataset{}, fmt.Errorf("label at row %d is %d, want 0 or 1", i, label)
		}
	}
	return Dataset{X: x, Y: y}, nil
}

// NumSamples returns the number of rows.
func (d Dataset) NumSamples() int { return len(d.X) }

// NumFeatures returns the number of columns.
func (d Dataset) NumFeatures() int {
	if len(d.X) == 0 {
		return 0
	}
	return len(d.X[0])
}

// ClassCounts returns the number of negative and positive labels.
func (d Dataset) ClassCounts() (neg, pos int) {
	for _, label := range d.Y {
		if label == 1 {
			pos++
		} else {
			neg++
		}
	}
	return neg, pos
}

// Subset returns the rows at the given indices. The underlying feature rows
// are shared, not copied.
func (d Dataset) Subset(indices []int) Dataset {
	x := make([][]float64, len(indices))
	y := make([]int, len(indices))
	for i, idx := range indices {
		x[i] = d.X[idx]
		y[i] = d.Y[idx]
	}
	return Dataset{X: x, Y: y}
}
