package ml

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// LogisticConfig tunes the logistic regression fit.
type LogisticConfig struct {
	LearningRate float64
	MaxIter      int
	Tol          float64
	L2           float64
	// Balanced reweighs samples inversely to class frequency, so the minority
	// class is not drowned out on skewed outcome histories.
	Balanced bool
}

// DefaultLogisticConfig mirrors the production training profile.
func DefaultLogisticConfig() LogisticConfig {
	return LogisticConfig{
		LearningRate: 0.1,
		MaxIter:      1000,
		Tol:          1e-6,
		L2:           1.0,
		Balanced:     true,
	}
}

// LogisticRegression is a binary classifier fit by full-batch gradient descent
// with L2 regularization. Inputs are expected standardized.
type LogisticRegression struct {
	cfg       LogisticConfig
	coef      []float64
	intercept float64
	fitted    bool
}

// NewLogisticRegression creates an unfitted model.
func NewLogisticRegression(cfg LogisticConfig) *LogisticRegression {
	if cfg.MaxIter <= 0 {
		cfg.MaxIter = DefaultLogisticConfig().MaxIter
	}
	if cfg.LearningRate <= 0 {
		cfg.LearningRate = DefaultLogisticConfig().LearningRate
	}
	return &LogisticRegression{cfg: cfg}
}

// Fit trains the model.
func (m *LogisticRegression) Fit(x [][]float64, y []int) error {
	if err := validateFit(x, y); err != nil {
		return err
	}

	n := len(x)
	p := len(x[0])
	m.coef = make([]float64, p)
	m.intercept = 0

	sampleWeight := make([]float64, n)
	for i := range sampleWeight {
		sampleWeight[i] = 1
	}
	if m.cfg.Balanced {
		neg, pos := 0, 0
		for _, label := range y {
			if label == 1 {
				pos++
			} else {
				neg++
			}
		}
		wNeg := float64(n) / (2 * float64(neg))
		wPos := float64(n) / (2 * float64(pos))
		for i, label := range y {
			if label == 1 {
				sampleWeight[i] = wPos
			} else {
				sampleWeight[i] = wNeg
			}
		}
	}

	grad := make([]float64, p)
	for iter := 0; iter < m.cfg.MaxIter; iter++ {
		for j := range grad {
			grad[j] = 0
		}
		gradIntercept := 0.0

		for i, row := range x {
			z := m.intercept + floats.Dot(m.coef, row)
			residual := sampleWeight[i] * (sigmoid(z) - float64(y[i]))
			floats.AddScaled(grad, residual, row)
			gradIntercept += residual
		}

		invN := 1 / float64(n)
		floats.Scale(invN, grad)
		gradIntercept *= invN
		// L2 penalty on coefficients, never on the intercept.
		floats.AddScaled(grad, m.cfg.L2*invN, m.coef)

		floats.AddScaled(m.coef, -m.cfg.LearningRate, grad)
		m.intercept -= m.cfg.LearningRate * gradIntercept

		if m.cfg.Tol > 0 && math.Abs(gradIntercept) < m.cfg.Tol && maxAbs(grad) < m.cfg.Tol {
			break
		}
	}

	m.fitted = true
	return nil
}

// PredictProba returns P(label=1) per row.
func (m *LogisticRegression) PredictProba(x [][]float64) ([]float64, error) {
	if !m.fitted {
		return nil, fmt.Errorf("model is not fitted")
	}
	out := make([]float64, len(x))
	for i, row := range x {
		if len(row) != len(m.coef) {
			return nil, fmt.Errorf("row %d has %d features, model fitted on %d", i, len(row), len(m.coef))
		}
		out[i] = sigmoid(m.intercept + floats.Dot(m.coef, row))
	}
	return out, nil
}

// Predict returns hard labels at the 0.5 threshold.
func (m *LogisticRegression) Predict(x [][]float64) ([]int, error) {
	proba, err := m.PredictProba(x)
	if err != nil {
		return nil, err
	}
	return thresholdLabels(proba), nil
}

// Importance returns absolute coefficient magnitudes.
func (m *LogisticRegression) Importance() ([]float64, error) {
	if !m.fitted {
		return nil, fmt.Errorf("model is not fitted")
	}
	imp := make([]float64, len(m.coef))
	for j, c := range m.coef {
		imp[j] = math.Abs(c)
	}
	return imp, nil
}

// Coefficients returns a copy of the fitted coefficient vector.
func (m *LogisticRegression) Coefficients() []float64 {
	out := make([]float64, len(m.coef))
	copy(out, m.coef)
	return out
}

// Intercept returns the fitted intercept.
func (m *LogisticRegression) Intercept() float64 { return m.intercept }

func sigmoid(z float64) float64 {
	// Split to stay finite for large |z|.
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}

func maxAbs(v []float64) float64 {
	max := 0.0
	for _, x := range v {
		if a := math.Abs(x); a > max {
			max = a
		}
	}
	return max
}

func thresholdLabels(proba []float64) []int {
	labels := make([]int, len(proba))
	for i, p := range proba {
		if p >= 0.5 {
			labels[i] = 1
		}
	}
	return labels
}
