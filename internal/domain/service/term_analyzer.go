// Package service holds the domain services of the risk engine: contract
// term analysis, outcome dataset assembly, weight training and composite
// scoring. Services are stateless; aggregates and value objects stay in
// model and valueobject.
package service

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

// Perspective selects whose side of the contract the risk scores describe.
type Perspective string

const (
	PerspectiveBuyer  Perspective = "buyer"
	PerspectiveSeller Perspective = "seller"
)

// ParsePerspective normalizes a wire-level perspective string. Empty input
// defaults to the buyer perspective.
func ParsePerspective(s string) (Perspective, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(PerspectiveBuyer):
		return PerspectiveBuyer, nil
	case string(PerspectiveSeller):
		return PerspectiveSeller, nil
	default:
		return "", fmt.Errorf("unsupported perspective %q", s)
	}
}

// highRiskTermRisk is the 1-10 risk at which an identified term counts as
// high risk.
const highRiskTermRisk = 7

// neutralDocumentRisk is reported when no lexicon term matches: an unreadable
// or empty document is neither safe nor alarming.
const neutralDocumentRisk = 50.0

// IdentifiedTerm is one lexicon term found in a contract document, with the
// risk for the requested perspective.
type IdentifiedTerm struct {
	Name           string
	Group          string
	Risk           int
	Description    string
	Rationale      string
	MatchedPhrases []string
}

// GroupAnalysis aggregates the identified terms of one term group.
type GroupAnalysis struct {
	AverageRisk float64
	TermCount   int
	Terms       []string
}

// ContractAnalysis is the full result of analyzing one contract document.
type ContractAnalysis struct {
	Perspective     Perspective
	OverallRisk     float64
	Coverage        float64
	IdentifiedTerms []IdentifiedTerm
	Groups          map[string]GroupAnalysis
	HighRiskTerms   []IdentifiedTerm
	Recommendations []string
}

type compiledTerm struct {
	term     ContractTerm
	patterns []*regexp.Regexp
}

// TermAnalyzer matches contract text against the term lexicon. Phrase
// patterns are compiled once at construction; analysis itself is pure and
// safe for concurrent use.
type TermAnalyzer struct {
	terms []compiledTerm
}

// NewTermAnalyzer compiles the lexicon's phrases into word-boundary patterns.
// Matching is case-insensitive; "Cap" in a heading matches, "capacity" does
// not.
func NewTermAnalyzer() *TermAnalyzer {
	terms := make([]compiledTerm, 0, len(contractLexicon))
	for _, t := range contractLexicon {
		patterns := make([]*regexp.Regexp, 0, len(t.Phrases))
		for _, phrase := range t.Phrases {
			p := regexp.MustCompile(`\b` + regexp.QuoteMeta(strings.ToLower(phrase)) + `\b`)
			patterns = append(patterns, p)
		}
		terms = append(terms, compiledTerm{term: t, patterns: patterns})
	}
	return &TermAnalyzer{terms: terms}
}

// AnalyzeText scans a contract document for lexicon terms and aggregates the
// findings per term group. When nothing matches, the overall risk is the
// fixed neutral value rather than zero.
func (a *TermAnalyzer) AnalyzeText(text string, perspective Perspective) ContractAnalysis {
	lowered := strings.ToLower(text)

	identified := make([]IdentifiedTerm, 0, len(a.terms))
	for _, ct := range a.terms {
		var matched []string
		for i, p := range ct.patterns {
			if p.MatchString(lowered) {
				matched = append(matched, ct.term.Phrases[i])
			}
		}
		if len(matched) == 0 {
			continue
		}
		risk := ct.term.RiskBuyer
		if perspective == PerspectiveSeller {
			risk = ct.term.RiskSeller
		}
		identified = append(identified, IdentifiedTerm{
			Name:           ct.term.Name,
			Group:          ct.term.Group,
			Risk:           risk,
			Description:    ct.term.Description,
			Rationale:      ct.term.Rationale,
			MatchedPhrases: matched,
		})
	}

	groups := make(map[string]GroupAnalysis)
	var riskSum float64
	var highRisk []IdentifiedTerm
	for _, it := range identified {
		riskSum += float64(it.Risk)
		if it.Risk >= highRiskTermRisk {
			highRisk = append(highRisk, it)
		}
		g := groups[it.Group]
		g.AverageRisk += float64(it.Risk)
		g.TermCount++
		g.Terms = append(g.Terms, it.Name)
		groups[it.Group] = g
	}
	for name, g := range groups {
		g.AverageRisk = round2(g.AverageRisk / float64(g.TermCount))
		groups[name] = g
	}

	overall := neutralDocumentRisk
	if len(identified) > 0 {
		mean := riskSum / float64(len(identified))
		overall = round2(mean / 10 * 100)
	}
	coverage := round2(float64(len(identified)) / float64(len(contractLexicon)) * 100)

	return ContractAnalysis{
		Perspective:     perspective,
		OverallRisk:     overall,
		Coverage:        coverage,
		IdentifiedTerms: identified,
		Groups:          groups,
		HighRiskTerms:   highRisk,
		Recommendations: a.recommend(identified, perspective),
	}
}

// recommend derives actionable review guidance from the identified terms.
// The rules are checked in a fixed order so output is deterministic.
func (a *TermAnalyzer) recommend(identified []IdentifiedTerm, perspective Perspective) []string {
	var recs []string

	if countAtOrAbove(identified, TermGroupFinancial, highRiskTermRisk) > 0 {
		if perspective == PerspectiveBuyer {
			recs = append(recs, "Review payment terms carefully - ensure cashflow protection and avoid excessive prepayments")
		} else {
			recs = append(recs, "Strengthen payment security provisions - consider advance payments or guarantees")
		}
	}
	if n := countAtOrAbove(identified, TermGroupLegal, highRiskTermRisk); n > 0 {
		recs = append(recs, fmt.Sprintf("Seek legal review of %d high-risk legal terms, especially indemnity and liability caps", n))
	}
	if countAtOrAbove(identified, TermGroupCompliance, 8) > 0 {
		recs = append(recs, "Ensure compliance team reviews data protection, audit rights, and regulatory obligations")
	}
	if countAtOrAbove(identified, TermGroupOperational, 8) > 0 {
		recs = append(recs, "Verify SLAs and service levels are clearly defined and achievable with monitoring in place")
	}
	if n := len(identified); n < 10 {
		recs = append(recs, fmt.Sprintf("Contract appears incomplete - only %d standard terms identified. Request comprehensive agreement.", n))
	} else if n > 20 {
		recs = append(recs, fmt.Sprintf("Complex contract with %d terms identified - allocate sufficient time for thorough review", n))
	}
	return recs
}

func countAtOrAbove(identified []IdentifiedTerm, group string, risk int) int {
	n := 0
	for _, it := range identified {
		if it.Group == group && it.Risk >= risk {
			n++
		}
	}
	return n
}

// featureGroups are the term groups exported as per-group ML features. The
// remaining groups are too sparse in real contracts to carry signal.
var featureGroups = []string{
	TermGroupFinancial,
	TermGroupLegal,
	TermGroupCompliance,
	TermGroupOperational,
	TermGroupPricing,
}

// ExtractFeatures runs AnalyzeText and flattens the result into a numeric
// feature map for model training. Groups without matches contribute zeros so
// every document yields the same feature keys.
func (a *TermAnalyzer) ExtractFeatures(text string, perspective Perspective) map[string]float64 {
	analysis := a.AnalyzeText(text, perspective)

	features := map[string]float64{
		"contract_overall_risk":    analysis.OverallRisk,
		"contract_terms_count":     float64(len(analysis.IdentifiedTerms)),
		"contract_coverage":        analysis.Coverage,
		"contract_high_risk_terms": float64(len(analysis.HighRiskTerms)),
	}
	for _, group := range featureGroups {
		prefix := "contract_" + strings.ToLower(group)
		g, ok := analysis.Groups[group]
		if !ok {
			features[prefix+"_risk"] = 0
			features[prefix+"_count"] = 0
			continue
		}
		features[prefix+"_risk"] = g.AverageRisk
		features[prefix+"_count"] = float64(g.TermCount)
	}
	return features
}

// round2 rounds to two decimal places, the precision used for every
// user-facing risk figure.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
