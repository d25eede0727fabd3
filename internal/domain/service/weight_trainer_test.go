package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FluentFlier/aegis/internal/domain/service"
	"github.com/FluentFlier/aegis/internal/domain/valueobject"
	"github.com/FluentFlier/aegis/internal/ml"
	"github.com/FluentFlier/aegis/pkg/observability"
)

var trainedAt = time.Date(2025, 3, 12, 14, 30, 55, 0, time.UTC)

// separableTrainingData builds a dataset where the financial score alone
// separates good from bad outcomes and every other category is constant.
func separableTrainingData(t *testing.T, perClass int) ml.Dataset {
	t.Helper()
	x := make([][]float64, 0, perClass*2)
	y := make([]int, 0, perClass*2)
	for i := 0; i < perClass; i++ {
		x = append(x, []float64{20, 50, 50, 50, 50, 50, 50, 50})
		y = append(y, 0)
	}
	for i := 0; i < perClass; i++ {
		x = append(x, []float64{80, 50, 50, 50, 50, 50, 50, 50})
		y = append(y, 1)
	}
	ds, err := ml.NewDataset(x, y)
	require.NoError(t, err)
	return ds
}

func TestWeightTrainer_Train_AllFamilies(t *testing.T) {
	ds := separableTrainingData(t, 30)

	for _, family := range valueobject.ModelFamilies() {
		t.Run(family.String(), func(t *testing.T) {
			trainer := service.NewWeightTrainer(service.DefaultTrainerConfig(), observability.NopLogger())

			result, err := trainer.Train(ds, service.DatasetSummary{}, family, trainedAt)

			require.NoError(t, err)
			// Only the financial column carries signal, so it ends up
			// with all the weight mass.
			assert.InDelta(t, 1.0, result.Weights.Get(valueobject.CategoryFinancial), 1e-9)
			assert.InDelta(t, 1.0, result.Weights.Sum(), 1e-9)
			assert.InDelta(t, 1.0, result.Report.Accuracy, 1e-9)
			assert.InDelta(t, 1.0, result.Report.ROCAUC, 1e-9)
			assert.Len(t, result.Report.Dropped, valueobject.NumCategories-1)
		})
	}
}

func TestWeightTrainer_Train_LogisticReport(t *testing.T) {
	trainer := service.NewWeightTrainer(service.DefaultTrainerConfig(), observability.NopLogger())
	ds := separableTrainingData(t, 30)
	summary := service.DatasetSummary{SkippedRows: 3}

	result, err := trainer.Train(ds, summary, valueobject.ModelFamilyLogistic, trainedAt)

	require.NoError(t, err)
	report := result.Report
	assert.Equal(t, valueobject.ModelFamilyLogistic, report.ModelFamily)
	assert.Equal(t, 60, report.SampleCount)
	assert.Equal(t, 48, report.TrainSize)
	assert.Equal(t, 12, report.TestSize)
	assert.Equal(t, 3, report.ExcludedRows)
	assert.InDelta(t, 1.0, report.Importance[valueobject.CategoryFinancial], 1e-9)

	// Separable data splits 6/6 across the classes and nothing is misfiled.
	assert.Equal(t, ml.ConfusionMatrix{TruePositives: 6, TrueNegatives: 6}, report.Confusion)

	// Separable data stays separable in every fold.
	assert.Len(t, report.CVFoldAUCs, 5)
	assert.InDelta(t, 1.0, report.CVAUCMean, 1e-9)
	assert.InDelta(t, 0.0, report.CVAUCStd, 1e-9)

	assert.Equal(t, "logistic_20250312_143055.model", result.ArtifactRef)
	artifact, err := service.DecodeModelArtifact(result.Artifact)
	require.NoError(t, err)
	assert.Equal(t, "logistic", artifact.Family)
	assert.True(t, artifact.TrainedAt.Equal(trainedAt))
	require.Len(t, artifact.FeatureOrder, valueobject.NumCategories)
	assert.Equal(t, "financial", artifact.FeatureOrder[0])
	assert.Len(t, artifact.ScalerMean, valueobject.NumCategories)
	assert.Len(t, artifact.Coefficients, valueobject.NumCategories)
	assert.InDelta(t, report.ROCAUC, artifact.ROCAUC, 1e-9)
}

func TestWeightTrainer_Train_WithTermFeatures(t *testing.T) {
	// Two contract-term columns follow the category scores; both separate the
	// classes as cleanly as the financial score does.
	x := make([][]float64, 0, 60)
	y := make([]int, 0, 60)
	for i := 0; i < 30; i++ {
		x = append(x, []float64{20, 50, 50, 50, 50, 50, 50, 50, 30, 3})
		y = append(y, 0)
	}
	for i := 0; i < 30; i++ {
		x = append(x, []float64{80, 50, 50, 50, 50, 50, 50, 50, 70, 9})
		y = append(y, 1)
	}
	ds, err := ml.NewDataset(x, y)
	require.NoError(t, err)
	summary := service.DatasetSummary{TermFeatures: []string{"contract_overall_risk", "contract_terms_count"}}

	trainer := service.NewWeightTrainer(service.DefaultTrainerConfig(), observability.NopLogger())
	result, err := trainer.Train(ds, summary, valueobject.ModelFamilyLogistic, trainedAt)

	require.NoError(t, err)
	// Weights stay a category vector: financial is the only category with
	// signal, and the term columns never enter it.
	assert.InDelta(t, 1.0, result.Weights.Get(valueobject.CategoryFinancial), 1e-9)
	assert.InDelta(t, 1.0, result.Weights.Sum(), 1e-9)
	assert.InDelta(t, 1.0, result.Report.ROCAUC, 1e-9)

	// The report splits importance between categories and term columns,
	// summing to 1 across all of them.
	require.Len(t, result.Report.TermImportance, 2)
	assert.Greater(t, result.Report.TermImportance["contract_overall_risk"], 0.0)
	assert.Greater(t, result.Report.TermImportance["contract_terms_count"], 0.0)
	total := 0.0
	for _, v := range result.Report.Importance {
		total += v
	}
	for _, v := range result.Report.TermImportance {
		total += v
	}
	assert.InDelta(t, 1.0, total, 1e-9)

	// The artifact records the widened feature order and scaler statistics.
	artifact, err := service.DecodeModelArtifact(result.Artifact)
	require.NoError(t, err)
	require.Len(t, artifact.FeatureOrder, valueobject.NumCategories+2)
	assert.Equal(t, "contract_overall_risk", artifact.FeatureOrder[valueobject.NumCategories])
	assert.Equal(t, "contract_terms_count", artifact.FeatureOrder[valueobject.NumCategories+1])
	assert.Len(t, artifact.ScalerMean, valueobject.NumCategories+2)
	assert.Len(t, artifact.Coefficients, valueobject.NumCategories+2)
}

func TestWeightTrainer_Train_ForestIsDeterministic(t *testing.T) {
	ds := separableTrainingData(t, 30)
	trainer := service.NewWeightTrainer(service.DefaultTrainerConfig(), observability.NopLogger())

	first, err := trainer.Train(ds, service.DatasetSummary{}, valueobject.ModelFamilyRandomForest, trainedAt)
	require.NoError(t, err)
	second, err := trainer.Train(ds, service.DatasetSummary{}, valueobject.ModelFamilyRandomForest, trainedAt)
	require.NoError(t, err)

	assert.True(t, first.Weights.Equal(second.Weights))
	assert.Equal(t, first.Report.Accuracy, second.Report.Accuracy)
	assert.Equal(t, first.Report.ROCAUC, second.Report.ROCAUC)
	assert.Equal(t, first.Report.Importance, second.Report.Importance)
}

func TestWeightTrainer_Train_CrossValidationIsAdvisory(t *testing.T) {
	// 10 rows leave an 8-row training partition: too small for 5 folds,
	// but training itself must still succeed.
	trainer := service.NewWeightTrainer(service.DefaultTrainerConfig(), observability.NopLogger())
	ds := separableTrainingData(t, 5)

	result, err := trainer.Train(ds, service.DatasetSummary{}, valueobject.ModelFamilyLogistic, trainedAt)

	require.NoError(t, err)
	assert.Empty(t, result.Report.CVFoldAUCs)
	assert.InDelta(t, 0.0, result.Report.CVAUCMean, 1e-9)
	assert.InDelta(t, 1.0, result.Report.Accuracy, 1e-9)
}

func TestWeightTrainer_Train_Failures(t *testing.T) {
	trainer := service.NewWeightTrainer(service.DefaultTrainerConfig(), observability.NopLogger())

	t.Run("unsupported family", func(t *testing.T) {
		ds := separableTrainingData(t, 30)

		_, err := trainer.Train(ds, service.DatasetSummary{}, valueobject.ModelFamily{}, trainedAt)

		assert.ErrorIs(t, err, valueobject.ErrUnsupportedModelFamily)
	})

	t.Run("single-class labels", func(t *testing.T) {
		x := make([][]float64, 60)
		y := make([]int, 60)
		for i := range x {
			x[i] = []float64{20, 50, 50, 50, 50, 50, 50, 50}
		}
		ds, err := ml.NewDataset(x, y)
		require.NoError(t, err)

		_, err = trainer.Train(ds, service.DatasetSummary{}, valueobject.ModelFamilyLogistic, trainedAt)

		require.ErrorIs(t, err, service.ErrTraining)
		assert.Contains(t, err.Error(), "stratified split")
	})

	t.Run("no importance signal", func(t *testing.T) {
		// Mixed labels over constant features: nothing to learn from.
		x := make([][]float64, 60)
		y := make([]int, 60)
		for i := range x {
			x[i] = []float64{50, 50, 50, 50, 50, 50, 50, 50}
			if i >= 30 {
				y[i] = 1
			}
		}
		ds, err := ml.NewDataset(x, y)
		require.NoError(t, err)

		_, err = trainer.Train(ds, service.DatasetSummary{}, valueobject.ModelFamilyLogistic, trainedAt)

		require.ErrorIs(t, err, service.ErrTraining)
		assert.Contains(t, err.Error(), "no importance signal")
	})
}
