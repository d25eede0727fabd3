package valueobject

import (
	"errors"
	"fmt"
)

// ErrUnsupportedModelFamily is returned when a training request names a model
// family the platform does not implement.
var ErrUnsupportedModelFamily = errors.New("unsupported model family")

// ModelFamily is an immutable value object selecting the estimator family
// used to learn category weights.
type ModelFamily struct {
	value string
}

var (
	ModelFamilyLogistic         = ModelFamily{value: "logistic"}
	ModelFamilyRandomForest     = ModelFamily{value: "random_forest"}
	ModelFamilyGradientBoosting = ModelFamily{value: "gradient_boosting"}
)

// ModelFamilies returns the supported families.
func ModelFamilies() []ModelFamily {
	return []ModelFamily{ModelFamilyLogistic, ModelFamilyRandomForest, ModelFamilyGradientBoosting}
}

// ModelFamilyFromString reconstructs a ModelFamily from its string
// representation. Unknown names fail with ErrUnsupportedModelFamily so the
// caller can distinguish bad input from internal failures.
func ModelFamilyFromString(s string) (ModelFamily, error) {
	switch s {
	case "logistic":
		return ModelFamilyLogistic, nil
	case "random_forest":
		return ModelFamilyRandomForest, nil
	case "gradient_boosting":
		return ModelFamilyGradientBoosting, nil
	default:
		return ModelFamily{}, fmt.Errorf("%w: %s", ErrUnsupportedModelFamily, s)
	}
}

// String returns the string representation.
func (f ModelFamily) String() string {
	return f.value
}

// IsZero returns true if the ModelFamily has not been set.
func (f ModelFamily) IsZero() bool {
	return f.value == ""
}

// Equal checks equality with another ModelFamily.
func (f ModelFamily) Equal(other ModelFamily) bool {
	return f.value == other.value
}
