package valueobject_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FluentFlier/aegis/internal/domain/valueobject"
)

func TestModelFamilyFromString(t *testing.T) {
	tests := []struct {
		input   string
		want    valueobject.ModelFamily
		wantErr bool
	}{
		{"logistic", valueobject.ModelFamilyLogistic, false},
		{"random_forest", valueobject.ModelFamilyRandomForest, false},
		{"gradient_boosting", valueobject.ModelFamilyGradientBoosting, false},
		{"LOGISTIC", valueobject.ModelFamilyLogistic, false},
		{"xgboost", valueobject.ModelFamily{}, true},
		{"", valueobject.ModelFamily{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := valueobject.ModelFamilyFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, valueobject.ErrUnsupportedModelFamily))
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want))
		})
	}
}

func TestModelFamilies_CoversAllSupported(t *testing.T) {
	families := valueobject.ModelFamilies()

	require.Len(t, families, 3)
	for _, f := range families {
		roundTripped, err := valueobject.ModelFamilyFromString(f.String())
		require.NoError(t, err)
		assert.True(t, roundTripped.Equal(f))
	}
}
