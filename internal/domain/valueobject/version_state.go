package valueobject

import (
	"errors"
	"fmt"
)

// ErrInvalidStateTransition is returned by aggregate transitions attempted
// from a state that does not permit them.
var ErrInvalidStateTransition = errors.New("invalid version state transition")

// VersionState is an immutable value object representing the lifecycle state
// of a weight version.
type VersionState struct {
	value string
}

var (
	VersionStateDraft    = VersionState{value: "DRAFT"}
	VersionStateApproved = VersionState{value: "APPROVED"}
	VersionStateActive   = VersionState{value: "ACTIVE"}
	VersionStateInactive = VersionState{value: "INACTIVE"}
)

// VersionStateFromString reconstructs a VersionState from its string representation.
func VersionStateFromString(s string) (VersionState, error) {
	switch s {
	case "DRAFT":
		return VersionStateDraft, nil
	case "APPROVED":
		return VersionStateApproved, nil
	case "ACTIVE":
		return VersionStateActive, nil
	case "INACTIVE":
		return VersionStateInactive, nil
	default:
		return VersionState{}, fmt.Errorf("invalid version state: %s", s)
	}
}

// String returns the string representation.
func (s VersionState) String() string {
	return s.value
}

// IsZero returns true if the VersionState has not been set.
func (s VersionState) IsZero() bool {
	return s.value == ""
}

// Equal checks equality with another VersionState.
func (s VersionState) Equal(other VersionState) bool {
	return s.value == other.value
}

// IsActivatable reports whether a version in this state may become Active.
// Approved versions activate; Inactive versions were approved earlier and may
// be rolled back to.
func (s VersionState) IsActivatable() bool {
	return s.Equal(VersionStateApproved) || s.Equal(VersionStateInactive)
}
