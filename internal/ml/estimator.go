package ml

import "fmt"

// Estimator is the uniform surface every model family implements. Callers fit
// once, then read predictions and raw feature importance; swapping families
// never changes the calling code.
type Estimator interface {
	// Fit trains on the given matrix and binary labels.
	Fit(x [][]float64, y []int) error

	// Predict returns hard 0/1 labels.
	Predict(x [][]float64) ([]int, error)

	// PredictProba returns P(label=1) per row.
	PredictProba(x [][]float64) ([]float64, error)

	// Importance returns raw non-negative per-feature importance scores.
	// Callers normalize; the scale is family-specific.
	Importance() ([]float64, error)
}

func validateFit(x [][]float64, y []int) error {
	d, err := NewDataset(x, y)
	if err != nil {
		return err
	}
	neg, pos := d.ClassCounts()
	if neg == 0 || pos == 0 {
		return fmt.Errorf("training data contains a single class (%d negatives, %d positives)", neg, pos)
	}
	return nil
}
