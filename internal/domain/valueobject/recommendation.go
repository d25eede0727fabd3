package valueobject

import "fmt"

// Recommendation is an immutable value object representing the action tier
// derived from a composite risk score.
type Recommendation struct {
	value string
}

var (
	RecommendationProceed   = Recommendation{value: "PROCEED"}
	RecommendationNegotiate = Recommendation{value: "NEGOTIATE"}
	RecommendationReplace   = Recommendation{value: "REPLACE"}
)

// RecommendationFromString reconstructs a Recommendation from its string representation.
func RecommendationFromString(s string) (Recommendation, error) {
	switch s {
	case "PROCEED":
		return RecommendationProceed, nil
	case "NEGOTIATE":
		return RecommendationNegotiate, nil
	case "REPLACE":
		return RecommendationReplace, nil
	default:
		return Recommendation{}, fmt.Errorf("invalid recommendation: %s", s)
	}
}

// RecommendationFromScore derives the tier from a composite score (0-100).
// Below 40 proceed, 40 up to 70 negotiate, 70 and above replace.
func RecommendationFromScore(score float64) Recommendation {
	switch {
	case score >= 70:
		return RecommendationReplace
	case score >= 40:
		return RecommendationNegotiate
	default:
		return RecommendationProceed
	}
}

// String returns the string representation.
func (r Recommendation) String() string {
	return r.value
}

// IsZero returns true if the Recommendation has not been set.
func (r Recommendation) IsZero() bool {
	return r.value == ""
}

// Equal checks equality with another Recommendation.
func (r Recommendation) Equal(other Recommendation) bool {
	return r.value == other.value
}
