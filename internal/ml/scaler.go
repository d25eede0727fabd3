package ml

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// StandardScaler standardizes features to zero mean and unit variance using
// population statistics. Fit it on the training partition only; applying the
// same transform to held-out data is what keeps evaluation honest.
type StandardScaler struct {
	Mean []float64
	Std  []float64
}

// Fit computes per-column mean and population standard deviation.
func (s *StandardScaler) Fit(x [][]float64) error {
	if len(x) == 0 || len(x[0]) == 0 {
		return fmt.Errorf("cannot fit scaler on empty data")
	}
	p := len(x[0])
	s.Mean = make([]float64, p)
	s.Std = make([]float64, p)

	col := make([]float64, len(x))
	for j := 0; j < p; j++ {
		for i := range x {
			col[i] = x[i][j]
		}
		s.Mean[j] = stat.Mean(col, nil)
		s.Std[j] = stat.PopStdDev(col, nil)
		// Constant columns scale by 1 so they pass through centered.
		if s.Std[j] == 0 {
			s.Std[j] = 1
		}
	}
	return nil
}

// Transform returns a standardized copy of x.
func (s *StandardScaler) Transform(x [][]float64) ([][]float64, error) {
	if s.Mean == nil {
		return nil, fmt.Errorf("scaler is not fitted")
	}
	out := make([][]float64, len(x))
	for i, row := range x {
		if len(row) != len(s.Mean) {
			return nil, fmt.Errorf("row %d has %d features, scaler fitted on %d", i, len(row), len(s.Mean))
		}
		scaled := make([]float64, len(row))
		for j, v := range row {
			scaled[j] = (v - s.Mean[j]) / s.Std[j]
		}
		out[i] = scaled
	}
	return out, nil
}

// FitTransform fits on x and returns its standardized copy.
func (s *StandardScaler) FitTransform(x [][]float64) ([][]float64, error) {
	if err := s.Fit(x); err != nil {
		return nil, err
	}
	return s.Transform(x)
}
