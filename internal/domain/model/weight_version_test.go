package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FluentFlier/aegis/internal/domain/event"
	"github.com/FluentFlier/aegis/internal/domain/model"
	"github.com/FluentFlier/aegis/internal/domain/valueobject"
)

var testTime = time.Date(2025, 3, 12, 14, 30, 55, 0, time.UTC)

func newDraftVersion(t *testing.T) model.WeightVersion {
	t.Helper()
	v, err := model.NewWeightVersion(
		valueobject.EqualWeights(),
		model.Provenance{
			ModelFamily: valueobject.ModelFamilyLogistic,
			SampleCount: 120,
			Accuracy:    0.82,
			ROCAUC:      0.88,
		},
		false,
		testTime,
	)
	require.NoError(t, err)
	return v
}

func TestNewWeightVersion(t *testing.T) {
	v := newDraftVersion(t)

	assert.True(t, v.State().Equal(valueobject.VersionStateDraft))
	assert.Equal(t, "v_ml_logistic_20250312_143055", v.VersionTag())
	assert.Equal(t, 120, v.Provenance().SampleCount)
	assert.Empty(t, v.ApprovedBy())
	assert.Nil(t, v.ApprovedAt())

	evts := v.DomainEvents()
	require.Len(t, evts, 1)
	created, ok := evts[0].(event.VersionCreated)
	require.True(t, ok)
	assert.Equal(t, v.ID(), created.VersionID)
	assert.Equal(t, "DRAFT", created.State)
}

func TestNewWeightVersion_AutoApprove(t *testing.T) {
	v, err := model.NewWeightVersion(
		valueobject.EqualWeights(),
		model.Provenance{ModelFamily: valueobject.ModelFamilyRandomForest},
		true,
		testTime,
	)
	require.NoError(t, err)

	assert.True(t, v.State().Equal(valueobject.VersionStateApproved))
	assert.Equal(t, "auto", v.ApprovedBy())
	require.NotNil(t, v.ApprovedAt())
	assert.Equal(t, testTime, *v.ApprovedAt())
}

func TestNewWeightVersion_RequiresWeights(t *testing.T) {
	_, err := model.NewWeightVersion(valueobject.Weights{}, model.Provenance{}, false, testTime)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "weights are required")
}

func TestNewWeightVersion_ManualTag(t *testing.T) {
	v, err := model.NewWeightVersion(valueobject.EqualWeights(), model.Provenance{}, false, testTime)
	require.NoError(t, err)
	assert.Equal(t, "v_manual_20250312_143055", v.VersionTag())
}

func TestApprove(t *testing.T) {
	v := newDraftVersion(t)

	approved, already := v.Approve("alice", testTime.Add(time.Hour))
	assert.False(t, already)
	assert.True(t, approved.State().Equal(valueobject.VersionStateApproved))
	assert.Equal(t, "alice", approved.ApprovedBy())
	require.NotNil(t, approved.ApprovedAt())

	// The original copy is untouched.
	assert.True(t, v.State().Equal(valueobject.VersionStateDraft))

	evts := approved.DomainEvents()
	require.Len(t, evts, 2)
	_, ok := evts[1].(event.VersionApproved)
	assert.True(t, ok)
}

func TestApprove_AlreadyApproved(t *testing.T) {
	v := newDraftVersion(t)
	approved, _ := v.Approve("alice", testTime)

	again, already := approved.Approve("bob", testTime.Add(time.Minute))
	assert.True(t, already)
	assert.True(t, again.State().Equal(valueobject.VersionStateApproved))
	assert.Equal(t, "alice", again.ApprovedBy())
	assert.Len(t, again.DomainEvents(), len(approved.DomainEvents()))
}

func TestActivate_RequiresApproval(t *testing.T) {
	v := newDraftVersion(t)

	_, err := v.Activate(testTime)
	assert.ErrorIs(t, err, model.ErrNotApproved)
}

func TestActivate(t *testing.T) {
	v := newDraftVersion(t)
	approved, _ := v.Approve("alice", testTime)

	active, err := approved.Activate(testTime.Add(time.Hour))
	require.NoError(t, err)
	assert.True(t, active.IsActive())

	_, err = active.Activate(testTime.Add(2 * time.Hour))
	assert.ErrorIs(t, err, model.ErrAlreadyActive)
}

func TestDeactivate_ThenReactivate(t *testing.T) {
	v := newDraftVersion(t)
	approved, _ := v.Approve("alice", testTime)
	active, err := approved.Activate(testTime)
	require.NoError(t, err)

	inactive, err := active.Deactivate(testTime.Add(time.Hour))
	require.NoError(t, err)
	assert.True(t, inactive.State().Equal(valueobject.VersionStateInactive))

	// Rollback path: a previously active version can be activated again.
	reactivated, err := inactive.Activate(testTime.Add(2 * time.Hour))
	require.NoError(t, err)
	assert.True(t, reactivated.IsActive())
}

func TestDeactivate_RequiresActive(t *testing.T) {
	v := newDraftVersion(t)

	_, err := v.Deactivate(testTime)
	assert.ErrorIs(t, err, valueobject.ErrInvalidStateTransition)
}

func TestClearEvents(t *testing.T) {
	v := newDraftVersion(t)
	require.NotEmpty(t, v.DomainEvents())

	cleared := v.ClearEvents()
	assert.Empty(t, cleared.DomainEvents())
	assert.Equal(t, v.ID(), cleared.ID())
}

func TestReconstructWeightVersion_NoEvents(t *testing.T) {
	v := newDraftVersion(t)

	rebuilt := model.ReconstructWeightVersion(
		v.ID(), v.VersionTag(), v.Weights(), valueobject.VersionStateActive,
		v.Provenance(), "alice", v.ApprovedAt(), v.CreatedAt(), v.UpdatedAt(),
	)

	assert.True(t, rebuilt.IsActive())
	assert.Empty(t, rebuilt.DomainEvents())
}
