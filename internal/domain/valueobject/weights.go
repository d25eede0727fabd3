package valueobject

import (
	"fmt"
	"math"
)

// WeightSumTolerance is the permitted deviation of a weight vector's sum
// from exactly 1.0.
const WeightSumTolerance = 1e-6

// Weights is an immutable value object holding one non-negative weight per
// risk category, summing to 1 within WeightSumTolerance.
type Weights struct {
	weights map[Category]float64
}

// NewWeights validates and builds a Weights from a complete per-category map.
func NewWeights(weights map[Category]float64) (Weights, error) {
	if len(weights) != NumCategories {
		return Weights{}, fmt.Errorf("expected %d category weights, got %d", NumCategories, len(weights))
	}

	out := make(map[Category]float64, NumCategories)
	sum := 0.0
	for _, c := range Categories() {
		v, ok := weights[c]
		if !ok {
			return Weights{}, fmt.Errorf("missing weight for category %s", c)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Weights{}, fmt.Errorf("weight for category %s is not finite", c)
		}
		if v < 0 {
			return Weights{}, fmt.Errorf("weight for category %s is negative: %v", c, v)
		}
		out[c] = v
		sum += v
	}

	if math.Abs(sum-1.0) > WeightSumTolerance {
		return Weights{}, fmt.Errorf("weights must sum to 1.0 within %g, got %v", WeightSumTolerance, sum)
	}

	return Weights{weights: out}, nil
}

// WeightsFromStrings builds a Weights from string-keyed input, as received on
// the wire. Unknown keys are rejected.
func WeightsFromStrings(weights map[string]float64) (Weights, error) {
	byCategory := make(map[Category]float64, len(weights))
	for k, v := range weights {
		c, err := CategoryFromString(k)
		if err != nil {
			return Weights{}, err
		}
		byCategory[c] = v
	}
	return NewWeights(byCategory)
}

// NormalizedWeights divides each raw value by the total so the result sums
// to 1. Raw values must be non-negative with a strictly positive sum.
func NormalizedWeights(raw map[Category]float64) (Weights, error) {
	if len(raw) != NumCategories {
		return Weights{}, fmt.Errorf("expected %d category values, got %d", NumCategories, len(raw))
	}

	sum := 0.0
	for _, c := range Categories() {
		v, ok := raw[c]
		if !ok {
			return Weights{}, fmt.Errorf("missing value for category %s", c)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Weights{}, fmt.Errorf("value for category %s is not finite", c)
		}
		if v < 0 {
			return Weights{}, fmt.Errorf("value for category %s is negative: %v", c, v)
		}
		sum += v
	}
	if sum <= 0 {
		return Weights{}, fmt.Errorf("cannot normalize: values sum to %v", sum)
	}

	normalized := make(map[Category]float64, NumCategories)
	for c, v := range raw {
		normalized[c] = v / sum
	}
	return Weights{weights: normalized}, nil
}

// EqualWeights returns the bootstrap default of 1/N per category, used when
// no trained version has been activated yet.
func EqualWeights() Weights {
	w := make(map[Category]float64, NumCategories)
	for _, c := range Categories() {
		w[c] = 1.0 / float64(NumCategories)
	}
	return Weights{weights: w}
}

// Get returns the weight for a category.
func (w Weights) Get(c Category) float64 {
	return w.weights[c]
}

// Sum returns the total of all weights. For a valid Weights this is 1 within
// WeightSumTolerance.
func (w Weights) Sum() float64 {
	sum := 0.0
	for _, v := range w.weights {
		sum += v
	}
	return sum
}

// Map returns a copy of the underlying per-category map.
func (w Weights) Map() map[Category]float64 {
	out := make(map[Category]float64, len(w.weights))
	for k, v := range w.weights {
		out[k] = v
	}
	return out
}

// StringMap returns a copy keyed by category name, for serialization.
func (w Weights) StringMap() map[string]float64 {
	out := make(map[string]float64, len(w.weights))
	for k, v := range w.weights {
		out[k.String()] = v
	}
	return out
}

// IsZero returns true if the Weights has not been set.
func (w Weights) IsZero() bool {
	return w.weights == nil
}

// Equal reports whether two weight vectors match per category within
// WeightSumTolerance.
func (w Weights) Equal(other Weights) bool {
	if w.IsZero() || other.IsZero() {
		return w.IsZero() == other.IsZero()
	}
	for _, c := range Categories() {
		if math.Abs(w.weights[c]-other.weights[c]) > WeightSumTolerance {
			return false
		}
	}
	return true
}
