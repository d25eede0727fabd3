package valueobject

import "fmt"

// Outcome is an immutable value object representing the terminal result of a
// contract. It is the supervision signal for weight training.
type Outcome struct {
	value string
}

var (
	OutcomeSuccessful       = Outcome{value: "successful"}
	OutcomeRenewed          = Outcome{value: "renewed"}
	OutcomeTerminatedEarly  = Outcome{value: "terminated_early"}
	OutcomeDispute          = Outcome{value: "dispute"}
	OutcomeClaim            = Outcome{value: "claim"}
	OutcomePenalty          = Outcome{value: "penalty"}
)

// OutcomeFromString reconstructs an Outcome from its string representation.
// Values outside the known set fail: callers building training data exclude
// such rows rather than guessing a label.
func OutcomeFromString(s string) (Outcome, error) {
	switch s {
	case "successful":
		return OutcomeSuccessful, nil
	case "renewed":
		return OutcomeRenewed, nil
	case "terminated_early":
		return OutcomeTerminatedEarly, nil
	case "dispute":
		return OutcomeDispute, nil
	case "claim":
		return OutcomeClaim, nil
	case "penalty":
		return OutcomePenalty, nil
	default:
		return Outcome{}, fmt.Errorf("invalid contract outcome: %s", s)
	}
}

// IsBad reports whether this outcome is in the bad partition, labeling the
// contract 1 for training. Early termination, disputes, claims and penalties
// are bad; successful completion and renewal are not.
func (o Outcome) IsBad() bool {
	switch o.value {
	case "terminated_early", "dispute", "claim", "penalty":
		return true
	default:
		return false
	}
}

// Label returns the binary training label: 1 for bad outcomes, 0 otherwise.
func (o Outcome) Label() int {
	if o.IsBad() {
		return 1
	}
	return 0
}

// String returns the string representation.
func (o Outcome) String() string {
	return o.value
}

// IsZero returns true if the Outcome has not been set.
func (o Outcome) IsZero() bool {
	return o.value == ""
}

// Equal checks equality with another Outcome.
func (o Outcome) Equal(other Outcome) bool {
	return o.value == other.value
}
