package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/FluentFlier/aegis/internal/domain/service"
)

// trainingProfile mirrors the optional YAML hyperparameter file. Every field
// is pre-filled from the base config before unmarshalling, so a profile only
// needs to name the values it changes.
type trainingProfile struct {
	ValidationSplit     float64        `yaml:"validation_split"`
	ImportanceThreshold float64        `yaml:"importance_threshold"`
	CVFolds             int            `yaml:"cv_folds"`
	Seed                int64          `yaml:"seed"`
	Logistic            logisticParams `yaml:"logistic"`
	RandomForest        forestParams   `yaml:"random_forest"`
	GradientBoosting    boostingParams `yaml:"gradient_boosting"`
}

type logisticParams struct {
	LearningRate float64 `yaml:"learning_rate"`
	MaxIter      int     `yaml:"max_iter"`
	Tol          float64 `yaml:"tol"`
	L2           float64 `yaml:"l2"`
	Balanced     bool    `yaml:"balanced"`
}

type forestParams struct {
	NumTrees        int `yaml:"num_trees"`
	MaxDepth        int `yaml:"max_depth"`
	MinSamplesSplit int `yaml:"min_samples_split"`
	MaxFeatures     int `yaml:"max_features"`
}

type boostingParams struct {
	NumTrees        int     `yaml:"num_trees"`
	MaxDepth        int     `yaml:"max_depth"`
	MinSamplesSplit int     `yaml:"min_samples_split"`
	LearningRate    float64 `yaml:"learning_rate"`
}

// LoadTrainerConfig builds the trainer configuration from base, overlaying
// the YAML profile at path when one is given. An empty path returns base
// unchanged.
func LoadTrainerConfig(path string, base service.TrainerConfig) (service.TrainerConfig, error) {
	if path == "" {
		return base, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return service.TrainerConfig{}, fmt.Errorf("failed to read model params file: %w", err)
	}

	profile := profileFromConfig(base)
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return service.TrainerConfig{}, fmt.Errorf("failed to parse model params file %s: %w", path, err)
	}

	cfg := profile.toConfig()
	if err := validateTrainerConfig(cfg); err != nil {
		return service.TrainerConfig{}, fmt.Errorf("invalid model params file %s: %w", path, err)
	}
	return cfg, nil
}

func profileFromConfig(cfg service.TrainerConfig) trainingProfile {
	return trainingProfile{
		ValidationSplit:     cfg.ValidationSplit,
		ImportanceThreshold: cfg.ImportanceThreshold,
		CVFolds:             cfg.CVFolds,
		Seed:                cfg.Seed,
		Logistic: logisticParams{
			LearningRate: cfg.Logistic.LearningRate,
			MaxIter:      cfg.Logistic.MaxIter,
			Tol:          cfg.Logistic.Tol,
			L2:           cfg.Logistic.L2,
			Balanced:     cfg.Logistic.Balanced,
		},
		RandomForest: forestParams{
			NumTrees:        cfg.Forest.NumTrees,
			MaxDepth:        cfg.Forest.MaxDepth,
			MinSamplesSplit: cfg.Forest.MinSamplesSplit,
			MaxFeatures:     cfg.Forest.MaxFeatures,
		},
		GradientBoosting: boostingParams{
			NumTrees:        cfg.Boosting.NumTrees,
			MaxDepth:        cfg.Boosting.MaxDepth,
			MinSamplesSplit: cfg.Boosting.MinSamplesSplit,
			LearningRate:    cfg.Boosting.LearningRate,
		},
	}
}

func (p trainingProfile) toConfig() service.TrainerConfig {
	cfg := service.TrainerConfig{
		ValidationSplit:     p.ValidationSplit,
		ImportanceThreshold: p.ImportanceThreshold,
		CVFolds:             p.CVFolds,
		Seed:                p.Seed,
	}
	cfg.Logistic.LearningRate = p.Logistic.LearningRate
	cfg.Logistic.MaxIter = p.Logistic.MaxIter
	cfg.Logistic.Tol = p.Logistic.Tol
	cfg.Logistic.L2 = p.Logistic.L2
	cfg.Logistic.Balanced = p.Logistic.Balanced
	cfg.Forest.NumTrees = p.RandomForest.NumTrees
	cfg.Forest.MaxDepth = p.RandomForest.MaxDepth
	cfg.Forest.MinSamplesSplit = p.RandomForest.MinSamplesSplit
	cfg.Forest.MaxFeatures = p.RandomForest.MaxFeatures
	cfg.Boosting.NumTrees = p.GradientBoosting.NumTrees
	cfg.Boosting.MaxDepth = p.GradientBoosting.MaxDepth
	cfg.Boosting.MinSamplesSplit = p.GradientBoosting.MinSamplesSplit
	cfg.Boosting.LearningRate = p.GradientBoosting.LearningRate
	return cfg
}

func validateTrainerConfig(cfg service.TrainerConfig) error {
	if cfg.ValidationSplit <= 0 || cfg.ValidationSplit >= 1 {
		return fmt.Errorf("validation_split must be in (0, 1), got %g", cfg.ValidationSplit)
	}
	if cfg.ImportanceThreshold < 0 {
		return fmt.Errorf("importance_threshold must not be negative, got %g", cfg.ImportanceThreshold)
	}
	if cfg.CVFolds < 2 {
		return fmt.Errorf("cv_folds must be at least 2, got %d", cfg.CVFolds)
	}
	return nil
}
