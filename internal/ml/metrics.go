package ml

import (
	"fmt"
)

// Accuracy returns the fraction of correct predictions.
func Accuracy(yTrue, yPred []int) float64 {
	if len(yTrue) == 0 || len(yTrue) != len(yPred) {
		return 0
	}
	correct := 0
	for i := range yTrue {
		if yTrue[i] == yPred[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(yTrue))
}

// ROCAUC computes the area under the ROC curve via the Mann-Whitney statistic:
// the probability that a random positive outranks a random negative, counting
// ties as half. It fails when only one class is present, where the curve is
// undefined.
func ROCAUC(yTrue []int, scores []float64) (float64, error) {
	if len(yTrue) != len(scores) {
		return 0, fmt.Errorf("got %d labels and %d scores", len(yTrue), len(scores))
	}

	var pos, neg []float64
	for i, label := range yTrue {
		if label == 1 {
			pos = append(pos, scores[i])
		} else {
			neg = append(neg, scores[i])
		}
	}
	if len(pos) == 0 || len(neg) == 0 {
		return 0, fmt.Errorf("ROC AUC undefined: need both classes, got %d positives and %d negatives", len(pos), len(neg))
	}

	wins := 0.0
	for _, p := range pos {
		for _, n := range neg {
			switch {
			case p > n:
				wins += 1
			case p == n:
				wins += 0.5
			}
		}
	}
	return wins / float64(len(pos)*len(neg)), nil
}

// ConfusionMatrix counts binary classification outcomes.
type ConfusionMatrix struct {
	TruePositives  int
	TrueNegatives  int
	FalsePositives int
	FalseNegatives int
}

// Confusion tabulates predictions against ground truth.
func Confusion(yTrue, yPred []int) ConfusionMatrix {
	var m ConfusionMatrix
	for i := range yTrue {
		switch {
		case yTrue[i] == 1 && yPred[i] == 1:
			m.TruePositives++
		case yTrue[i] == 0 && yPred[i] == 0:
			m.TrueNegatives++
		case yTrue[i] == 0 && yPred[i] == 1:
			m.FalsePositives++
		default:
			m.FalseNegatives++
		}
	}
	return m
}
