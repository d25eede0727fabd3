package ml

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
)

// CVResult summarizes a k-fold cross-validation run.
type CVResult struct {
	FoldAUCs []float64
	MeanAUC  float64
	StdAUC   float64
}

// CrossValidate runs stratified k-fold cross-validation, scoring each fold by
// ROC AUC. Every fold fits its own scaler on the fold's training partition, so
// no held-out statistics leak into the fit. Folds run in parallel; the fold
// assignment is seeded, so results are reproducible.
func CrossValidate(newEstimator func() Estimator, d Dataset, k int, seed int64) (CVResult, error) {
	folds, err := StratifiedKFold(d, k, seed)
	if err != nil {
		return CVResult{}, err
	}

	aucs := make([]float64, len(folds))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))

	for f, fold := range folds {
		g.Go(func() error {
			train := d.Subset(fold.TrainIdx)
			test := d.Subset(fold.TestIdx)

			var scaler StandardScaler
			trainX, err := scaler.FitTransform(train.X)
			if err != nil {
				return fmt.Errorf("fold %d: %w", f, err)
			}
			testX, err := scaler.Transform(test.X)
			if err != nil {
				return fmt.Errorf("fold %d: %w", f, err)
			}

			est := newEstimator()
			if err := est.Fit(trainX, train.Y); err != nil {
				return fmt.Errorf("fold %d: %w", f, err)
			}
			proba, err := est.PredictProba(testX)
			if err != nil {
				return fmt.Errorf("fold %d: %w", f, err)
			}
			auc, err := ROCAUC(test.Y, proba)
			if err != nil {
				return fmt.Errorf("fold %d: %w", f, err)
			}
			aucs[f] = auc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return CVResult{}, err
	}

	return CVResult{
		FoldAUCs: aucs,
		MeanAUC:  stat.Mean(aucs, nil),
		StdAUC:   stat.PopStdDev(aucs, nil),
	}, nil
}
