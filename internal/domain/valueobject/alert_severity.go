package valueobject

import "fmt"

// AlertSeverity classifies risk alerts raised from composite scores.
type AlertSeverity struct {
	value string
}

var (
	AlertSeverityWarning  = AlertSeverity{value: "warning"}
	AlertSeverityCritical = AlertSeverity{value: "critical"}
)

// AlertSeverityFromString reconstructs an AlertSeverity from its string representation.
func AlertSeverityFromString(s string) (AlertSeverity, error) {
	switch s {
	case "warning":
		return AlertSeverityWarning, nil
	case "critical":
		return AlertSeverityCritical, nil
	default:
		return AlertSeverity{}, fmt.Errorf("invalid alert severity: %s", s)
	}
}

// AlertSeverityFromScore derives the severity a composite score triggers.
// Scores of 80 and above are critical, 60 up to 80 warning. Below 60 no
// alert is raised and the zero value is returned.
func AlertSeverityFromScore(score float64) (AlertSeverity, bool) {
	switch {
	case score >= 80:
		return AlertSeverityCritical, true
	case score >= 60:
		return AlertSeverityWarning, true
	default:
		return AlertSeverity{}, false
	}
}

// String returns the string representation.
func (s AlertSeverity) String() string {
	return s.value
}

// IsZero returns true if the AlertSeverity has not been set.
func (s AlertSeverity) IsZero() bool {
	return s.value == ""
}

// Equal checks equality with another AlertSeverity.
func (s AlertSeverity) Equal(other AlertSeverity) bool {
	return s.value == other.value
}
