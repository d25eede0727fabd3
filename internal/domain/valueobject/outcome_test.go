package valueobject_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FluentFlier/aegis/internal/domain/valueobject"
)

func TestOutcomeFromString(t *testing.T) {
	tests := []struct {
		input   string
		want    valueobject.Outcome
		wantErr bool
	}{
		{"successful", valueobject.OutcomeSuccessful, false},
		{"renewed", valueobject.OutcomeRenewed, false},
		{"terminated_early", valueobject.OutcomeTerminatedEarly, false},
		{"dispute", valueobject.OutcomeDispute, false},
		{"claim", valueobject.OutcomeClaim, false},
		{"penalty", valueobject.OutcomePenalty, false},
		{"Successful", valueobject.OutcomeSuccessful, false},
		{"pending", valueobject.Outcome{}, true},
		{"", valueobject.Outcome{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := valueobject.OutcomeFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want))
		})
	}
}

func TestOutcome_Label(t *testing.T) {
	tests := []struct {
		outcome valueobject.Outcome
		bad     bool
		label   int
	}{
		{valueobject.OutcomeSuccessful, false, 0},
		{valueobject.OutcomeRenewed, false, 0},
		{valueobject.OutcomeTerminatedEarly, true, 1},
		{valueobject.OutcomeDispute, true, 1},
		{valueobject.OutcomeClaim, true, 1},
		{valueobject.OutcomePenalty, true, 1},
	}

	for _, tt := range tests {
		t.Run(tt.outcome.String(), func(t *testing.T) {
			assert.Equal(t, tt.bad, tt.outcome.IsBad())
			assert.Equal(t, tt.label, tt.outcome.Label())
		})
	}
}
