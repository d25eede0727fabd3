package valueobject

import (
	"fmt"
	"math"
)

// CategoryScores is an immutable value object holding one score in [0,100]
// per risk category. Scores arriving from upstream assessors are clamped
// into range at construction rather than rejected.
type CategoryScores struct {
	scores map[Category]float64
}

// NewCategoryScores builds a CategoryScores from a complete per-category map.
// Every category must be present; values are clamped to [0,100]. Non-finite
// values are rejected.
func NewCategoryScores(scores map[Category]float64) (CategoryScores, error) {
	if len(scores) != NumCategories {
		return CategoryScores{}, fmt.Errorf("expected %d category scores, got %d", NumCategories, len(scores))
	}

	clamped := make(map[Category]float64, NumCategories)
	for _, c := range Categories() {
		v, ok := scores[c]
		if !ok {
			return CategoryScores{}, fmt.Errorf("missing score for category %s", c)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return CategoryScores{}, fmt.Errorf("score for category %s is not finite", c)
		}
		clamped[c] = clampScore(v)
	}

	return CategoryScores{scores: clamped}, nil
}

// CategoryScoresFromStrings builds a CategoryScores from string-keyed input,
// as received on the wire. Unknown keys are rejected.
func CategoryScoresFromStrings(scores map[string]float64) (CategoryScores, error) {
	byCategory := make(map[Category]float64, len(scores))
	for k, v := range scores {
		c, err := CategoryFromString(k)
		if err != nil {
			return CategoryScores{}, err
		}
		byCategory[c] = v
	}
	return NewCategoryScores(byCategory)
}

// Get returns the score for a category. Unset categories score zero, which
// can only happen on the zero value of CategoryScores.
func (s CategoryScores) Get(c Category) float64 {
	return s.scores[c]
}

// Map returns a copy of the underlying per-category map.
func (s CategoryScores) Map() map[Category]float64 {
	out := make(map[Category]float64, len(s.scores))
	for k, v := range s.scores {
		out[k] = v
	}
	return out
}

// StringMap returns a copy keyed by category name, for serialization.
func (s CategoryScores) StringMap() map[string]float64 {
	out := make(map[string]float64, len(s.scores))
	for k, v := range s.scores {
		out[k.String()] = v
	}
	return out
}

// Vector returns the scores as a slice in canonical category order. This is
// the feature-row layout consumed by model training.
func (s CategoryScores) Vector() []float64 {
	out := make([]float64, 0, NumCategories)
	for _, c := range Categories() {
		out = append(out, s.scores[c])
	}
	return out
}

// IsZero returns true if the CategoryScores has not been set.
func (s CategoryScores) IsZero() bool {
	return s.scores == nil
}

func clampScore(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}
