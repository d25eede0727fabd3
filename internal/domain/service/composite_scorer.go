package service

import (
	"errors"

	"github.com/FluentFlier/aegis/internal/domain/valueobject"
)

// CompositeScorer folds per-category supplier scores into one 0-100 figure
// using a weight vector. It is pure computation; loading the active weights
// and persisting the resulting assessment happen in the application layer.
type CompositeScorer struct{}

func NewCompositeScorer() *CompositeScorer {
	return &CompositeScorer{}
}

// Score returns the weighted sum of the category scores, rounded to two
// decimals. With weights summing to 1 and scores in [0,100] the result is
// always in [0,100].
func (s *CompositeScorer) Score(scores valueobject.CategoryScores, weights valueobject.Weights) (float64, error) {
	if scores.IsZero() {
		return 0, errors.New("category scores are required")
	}
	if weights.IsZero() {
		return 0, errors.New("weights are required")
	}

	total := 0.0
	for _, c := range valueobject.Categories() {
		total += weights.Get(c) * scores.Get(c)
	}
	return round2(total), nil
}

// Contributions returns each category's share of the composite, weight times
// score rounded to two decimals. The shares explain a composite figure; they
// are not guaranteed to re-add to it exactly because each is rounded on its
// own.
func (s *CompositeScorer) Contributions(scores valueobject.CategoryScores, weights valueobject.Weights) (map[valueobject.Category]float64, error) {
	if scores.IsZero() {
		return nil, errors.New("category scores are required")
	}
	if weights.IsZero() {
		return nil, errors.New("weights are required")
	}

	out := make(map[valueobject.Category]float64, valueobject.NumCategories)
	for _, c := range valueobject.Categories() {
		out[c] = round2(weights.Get(c) * scores.Get(c))
	}
	return out, nil
}
