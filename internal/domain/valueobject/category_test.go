package valueobject_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FluentFlier/aegis/internal/domain/valueobject"
)

func TestCategories_CanonicalOrder(t *testing.T) {
	cats := valueobject.Categories()

	require.Len(t, cats, valueobject.NumCategories)
	assert.Equal(t, "financial", cats[0].String())
	assert.Equal(t, "legal", cats[1].String())
	assert.Equal(t, "esg", cats[2].String())
	assert.Equal(t, "geopolitical", cats[3].String())
	assert.Equal(t, "operational", cats[4].String())
	assert.Equal(t, "pricing", cats[5].String())
	assert.Equal(t, "social", cats[6].String())
	assert.Equal(t, "performance", cats[7].String())
}

func TestCategoryFromString(t *testing.T) {
	tests := []struct {
		input    string
		expected valueobject.Category
		wantErr  bool
	}{
		{"financial", valueobject.CategoryFinancial, false},
		{"legal", valueobject.CategoryLegal, false},
		{"esg", valueobject.CategoryESG, false},
		{"geopolitical", valueobject.CategoryGeopolitical, false},
		{"operational", valueobject.CategoryOperational, false},
		{"pricing", valueobject.CategoryPricing, false},
		{"social", valueobject.CategorySocial, false},
		{"performance", valueobject.CategoryPerformance, false},
		{"FINANCIAL", valueobject.Category{}, true},
		{"reputation", valueobject.Category{}, true},
		{"", valueobject.Category{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := valueobject.CategoryFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.True(t, tt.expected.Equal(result))
			}
		})
	}
}

func TestCategory_IsZero(t *testing.T) {
	var zero valueobject.Category
	assert.True(t, zero.IsZero())
	assert.False(t, valueobject.CategoryFinancial.IsZero())
}
