package valueobject_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/FluentFlier/aegis/internal/domain/valueobject"
)

func TestAlertSeverityFromScore(t *testing.T) {
	tests := []struct {
		name      string
		score     float64
		want      valueobject.AlertSeverity
		wantAlert bool
	}{
		{"low score no alert", 30, valueobject.AlertSeverity{}, false},
		{"just below warning band", 59.99, valueobject.AlertSeverity{}, false},
		{"warning lower bound", 60, valueobject.AlertSeverityWarning, true},
		{"just below critical band", 79.99, valueobject.AlertSeverityWarning, true},
		{"critical lower bound", 80, valueobject.AlertSeverityCritical, true},
		{"max score", 100, valueobject.AlertSeverityCritical, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := valueobject.AlertSeverityFromScore(tt.score)
			assert.Equal(t, tt.wantAlert, ok)
			if tt.wantAlert {
				assert.True(t, got.Equal(tt.want))
			}
		})
	}
}

func TestAlertSeverityFromString(t *testing.T) {
	got, err := valueobject.AlertSeverityFromString("critical")
	assert.NoError(t, err)
	assert.True(t, got.Equal(valueobject.AlertSeverityCritical))

	_, err = valueobject.AlertSeverityFromString("info")
	assert.Error(t, err)
}
