package service

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"time"

	"github.com/FluentFlier/aegis/internal/domain/valueobject"
	"github.com/FluentFlier/aegis/internal/ml"
)

// ModelArtifact is the serialized snapshot of one fitted model: the scaler
// statistics, importance and metrics needed to audit a training run. Tree
// ensembles are not carried; nothing re-loads them to predict, the learned
// weights are the product.
type ModelArtifact struct {
	Family       string
	TrainedAt    time.Time
	FeatureOrder []string
	ScalerMean   []float64
	ScalerStd    []float64
	Importance   map[string]float64
	Coefficients []float64
	Intercept    float64
	Accuracy     float64
	ROCAUC       float64
}

// Encode serializes the artifact with gob.
func (a ModelArtifact) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(a); err != nil {
		return nil, fmt.Errorf("encoding model artifact: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeModelArtifact deserializes an artifact previously written by Encode.
func DecodeModelArtifact(data []byte) (ModelArtifact, error) {
	var a ModelArtifact
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&a); err != nil {
		return ModelArtifact{}, fmt.Errorf("decoding model artifact: %w", err)
	}
	return a, nil
}

func (t *WeightTrainer) buildArtifact(est ml.Estimator, scaler ml.StandardScaler, family valueobject.ModelFamily, report TrainingReport, termNames []string, now time.Time) ([]byte, error) {
	categories := valueobject.Categories()
	order := make([]string, 0, len(categories)+len(termNames))
	importance := make(map[string]float64, len(categories)+len(termNames))
	for _, c := range categories {
		order = append(order, c.String())
		importance[c.String()] = report.Importance[c]
	}
	for _, name := range termNames {
		order = append(order, name)
		importance[name] = report.TermImportance[name]
	}

	artifact := ModelArtifact{
		Family:       family.String(),
		TrainedAt:    now.UTC(),
		FeatureOrder: order,
		ScalerMean:   scaler.Mean,
		ScalerStd:    scaler.Std,
		Importance:   importance,
		Accuracy:     report.Accuracy,
		ROCAUC:       report.ROCAUC,
	}
	if lr, ok := est.(*ml.LogisticRegression); ok {
		artifact.Coefficients = lr.Coefficients()
		artifact.Intercept = lr.Intercept()
	}
	return artifact.Encode()
}
