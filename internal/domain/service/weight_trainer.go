package service

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/FluentFlier/aegis/internal/domain/valueobject"
	"github.com/FluentFlier/aegis/internal/ml"
)

// ErrTraining is returned when a model cannot be fit: degenerate data,
// single-class labels, or no importance signal. Numerical detail stays in the
// wrapped message; no version is created on this error.
var ErrTraining = errors.New("model training failed")

// TrainerConfig carries the training pipeline settings plus the per-family
// hyperparameters. The zero value is not usable; start from
// DefaultTrainerConfig.
type TrainerConfig struct {
	ValidationSplit     float64
	ImportanceThreshold float64
	CVFolds             int
	Seed                int64

	Logistic ml.LogisticConfig
	Forest   ml.ForestConfig
	Boosting ml.BoostingConfig
}

func DefaultTrainerConfig() TrainerConfig {
	return TrainerConfig{
		ValidationSplit:     0.2,
		ImportanceThreshold: 0.01,
		CVFolds:             5,
		Seed:                42,
		Logistic:            ml.DefaultLogisticConfig(),
		Forest:              ml.DefaultForestConfig(),
		Boosting:            ml.DefaultBoostingConfig(),
	}
}

// TrainingReport records everything a reviewer needs to judge a candidate
// weight vector before approving it.
type TrainingReport struct {
	ModelFamily  valueobject.ModelFamily
	SampleCount  int
	TrainSize    int
	TestSize     int
	ExcludedRows int

	Accuracy   float64
	ROCAUC     float64
	Confusion  ml.ConfusionMatrix
	CVAUCMean  float64
	CVAUCStd   float64
	CVFoldAUCs []float64

	// Importance is the normalized feature importance per category, before
	// the threshold filter. Dropped lists the categories it zeroed.
	// TermImportance covers the contract-term columns when the matrix had
	// them; those features inform the fit but never become weights.
	Importance     map[valueobject.Category]float64
	TermImportance map[string]float64
	Dropped        []valueobject.Category
}

// TrainingResult is the full outcome of one training run: the candidate
// weights, the report backing them, and the serialized model artifact.
type TrainingResult struct {
	Weights     valueobject.Weights
	Report      TrainingReport
	ArtifactRef string
	Artifact    []byte
}

// WeightTrainer learns a category weight vector from labeled outcome data.
// The pipeline is deterministic for a given seed and dataset: stratified
// split, scaling fit on the training partition only, estimator fit, held-out
// evaluation, and feature importance normalized into weights.
type WeightTrainer struct {
	cfg    TrainerConfig
	logger *slog.Logger
}

func NewWeightTrainer(cfg TrainerConfig, logger *slog.Logger) *WeightTrainer {
	return &WeightTrainer{cfg: cfg, logger: logger}
}

// Train fits the requested model family and derives candidate weights from
// its feature importance. The cross-validation pass is informational: its
// failure is logged, never propagated. Train is CPU-bound and synchronous;
// callers run it off the request path.
func (t *WeightTrainer) Train(ds ml.Dataset, summary DatasetSummary, family valueobject.ModelFamily, now time.Time) (TrainingResult, error) {
	factory, err := t.estimatorFactory(family)
	if err != nil {
		return TrainingResult{}, err
	}

	train, test, err := ml.TrainTestSplit(ds, t.cfg.ValidationSplit, t.cfg.Seed)
	if err != nil {
		return TrainingResult{}, fmt.Errorf("%w: stratified split: %v", ErrTraining, err)
	}

	var scaler ml.StandardScaler
	trainX, err := scaler.FitTransform(train.X)
	if err != nil {
		return TrainingResult{}, fmt.Errorf("%w: fitting scaler: %v", ErrTraining, err)
	}
	testX, err := scaler.Transform(test.X)
	if err != nil {
		return TrainingResult{}, fmt.Errorf("%w: scaling validation partition: %v", ErrTraining, err)
	}

	est := factory()
	if err := est.Fit(trainX, train.Y); err != nil {
		return TrainingResult{}, fmt.Errorf("%w: %v", ErrTraining, err)
	}

	pred, err := est.Predict(testX)
	if err != nil {
		return TrainingResult{}, fmt.Errorf("%w: predicting validation labels: %v", ErrTraining, err)
	}
	proba, err := est.PredictProba(testX)
	if err != nil {
		return TrainingResult{}, fmt.Errorf("%w: predicting validation probabilities: %v", ErrTraining, err)
	}
	auc, err := ml.ROCAUC(test.Y, proba)
	if err != nil {
		return TrainingResult{}, fmt.Errorf("%w: computing ROC AUC: %v", ErrTraining, err)
	}

	report := TrainingReport{
		ModelFamily:  family,
		SampleCount:  ds.NumSamples(),
		TrainSize:    train.NumSamples(),
		TestSize:     test.NumSamples(),
		ExcludedRows: summary.SkippedRows,
		Accuracy:     ml.Accuracy(test.Y, pred),
		ROCAUC:       auc,
		Confusion:    ml.Confusion(test.Y, pred),
	}

	// Cross-validation is advisory. Small training partitions can make the
	// fold assignment impossible; that degrades the report, not the run.
	if cv, cvErr := ml.CrossValidate(factory, train, t.cfg.CVFolds, t.cfg.Seed); cvErr != nil {
		t.logger.Warn("cross-validation skipped",
			"family", family.String(),
			"folds", t.cfg.CVFolds,
			"error", cvErr)
	} else {
		report.CVAUCMean = cv.MeanAUC
		report.CVAUCStd = cv.StdAUC
		report.CVFoldAUCs = cv.FoldAUCs
	}

	weights, importance, termImportance, dropped, err := t.weightsFromImportance(est, summary.TermFeatures)
	if err != nil {
		return TrainingResult{}, err
	}
	report.Importance = importance
	report.TermImportance = termImportance
	report.Dropped = dropped

	result := TrainingResult{Weights: weights, Report: report}
	if artifact, encErr := t.buildArtifact(est, scaler, family, report, summary.TermFeatures, now); encErr != nil {
		t.logger.Warn("model artifact not encoded", "family", family.String(), "error", encErr)
	} else {
		result.Artifact = artifact
		result.ArtifactRef = fmt.Sprintf("%s_%s.model", family, now.UTC().Format("20060102_150405"))
	}

	t.logger.Info("model trained",
		"family", family.String(),
		"samples", report.SampleCount,
		"accuracy", report.Accuracy,
		"roc_auc", report.ROCAUC,
		"dropped_categories", len(dropped))

	return result, nil
}

// estimatorFactory maps a model family to its estimator constructor. The
// factory form lets cross-validation fit a fresh estimator per fold with
// identical hyperparameters.
func (t *WeightTrainer) estimatorFactory(family valueobject.ModelFamily) (func() ml.Estimator, error) {
	switch {
	case family.Equal(valueobject.ModelFamilyLogistic):
		return func() ml.Estimator { return ml.NewLogisticRegression(t.cfg.Logistic) }, nil
	case family.Equal(valueobject.ModelFamilyRandomForest):
		cfg := t.cfg.Forest
		cfg.Seed = t.cfg.Seed
		return func() ml.Estimator { return ml.NewRandomForest(cfg) }, nil
	case family.Equal(valueobject.ModelFamilyGradientBoosting):
		return func() ml.Estimator { return ml.NewGradientBoosting(t.cfg.Boosting) }, nil
	default:
		return nil, fmt.Errorf("%w: %q", valueobject.ErrUnsupportedModelFamily, family.String())
	}
}

// weightsFromImportance turns raw feature importance into a weight vector:
// normalize to sum 1, zero categories under the threshold, renormalize the
// survivors. Category columns come first in the matrix; any contract-term
// columns after them contribute to the fit and the report but never to the
// weights.
func (t *WeightTrainer) weightsFromImportance(est ml.Estimator, termNames []string) (valueobject.Weights, map[valueobject.Category]float64, map[string]float64, []valueobject.Category, error) {
	raw, err := est.Importance()
	if err != nil {
		return valueobject.Weights{}, nil, nil, nil, fmt.Errorf("%w: %v", ErrTraining, err)
	}
	categories := valueobject.Categories()
	if len(raw) != len(categories)+len(termNames) {
		return valueobject.Weights{}, nil, nil, nil, fmt.Errorf("%w: importance has %d features, want %d",
			ErrTraining, len(raw), len(categories)+len(termNames))
	}

	sum := 0.0
	for _, v := range raw {
		sum += v
	}
	if sum <= 0 {
		return valueobject.Weights{}, nil, nil, nil, fmt.Errorf("%w: no importance signal", ErrTraining)
	}

	importance := make(map[valueobject.Category]float64, len(categories))
	filtered := make(map[valueobject.Category]float64, len(categories))
	var dropped []valueobject.Category
	survivors := 0.0
	for i, c := range categories {
		norm := raw[i] / sum
		importance[c] = norm
		if norm < t.cfg.ImportanceThreshold {
			filtered[c] = 0
			dropped = append(dropped, c)
			continue
		}
		filtered[c] = norm
		survivors += norm
	}
	if survivors <= 0 {
		return valueobject.Weights{}, nil, nil, nil, fmt.Errorf("%w: every category fell below the importance threshold %g",
			ErrTraining, t.cfg.ImportanceThreshold)
	}

	var termImportance map[string]float64
	if len(termNames) > 0 {
		termImportance = make(map[string]float64, len(termNames))
		for i, name := range termNames {
			termImportance[name] = raw[len(categories)+i] / sum
		}
	}

	weights, err := valueobject.NormalizedWeights(filtered)
	if err != nil {
		return valueobject.Weights{}, nil, nil, nil, fmt.Errorf("%w: normalizing weights: %v", ErrTraining, err)
	}
	return weights, importance, termImportance, dropped, nil
}
