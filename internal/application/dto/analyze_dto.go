package dto

import (
	"github.com/FluentFlier/aegis/internal/domain/service"
)

// AnalyzeContractRequest is the input DTO for contract term analysis.
// Perspective is "buyer" or "seller"; empty defaults to buyer.
type AnalyzeContractRequest struct {
	Text        string `json:"text"`
	Perspective string `json:"perspective,omitempty"`
}

// IdentifiedTermDTO is one matched lexicon term.
type IdentifiedTermDTO struct {
	Name           string   `json:"name"`
	Group          string   `json:"group"`
	Description    string   `json:"description"`
	Rationale      string   `json:"rationale"`
	MatchedPhrases []string `json:"matched_phrases"`
	Risk           int      `json:"risk"`
}

// GroupAnalysisDTO aggregates the matched terms of one term group.
type GroupAnalysisDTO struct {
	Terms       []string `json:"terms"`
	AverageRisk float64  `json:"average_risk"`
	TermCount   int      `json:"term_count"`
}

// AnalyzeContractResponse is the output DTO for contract term analysis.
// Features is the flattened numeric view consumed by model training.
type AnalyzeContractResponse struct {
	Groups          map[string]GroupAnalysisDTO `json:"groups"`
	Features        map[string]float64          `json:"features"`
	Perspective     string                      `json:"perspective"`
	IdentifiedTerms []IdentifiedTermDTO         `json:"identified_terms"`
	HighRiskTerms   []IdentifiedTermDTO         `json:"high_risk_terms"`
	Recommendations []string                    `json:"recommendations"`
	OverallRisk     float64                     `json:"overall_risk"`
	Coverage        float64                     `json:"coverage"`
}

// AnalysisFromService maps a contract analysis to the response DTO.
func AnalysisFromService(a service.ContractAnalysis, features map[string]float64) AnalyzeContractResponse {
	groups := make(map[string]GroupAnalysisDTO, len(a.Groups))
	for name, g := range a.Groups {
		groups[name] = GroupAnalysisDTO{
			AverageRisk: g.AverageRisk,
			TermCount:   g.TermCount,
			Terms:       g.Terms,
		}
	}
	return AnalyzeContractResponse{
		Perspective:     string(a.Perspective),
		OverallRisk:     a.OverallRisk,
		Coverage:        a.Coverage,
		IdentifiedTerms: identifiedTerms(a.IdentifiedTerms),
		Groups:          groups,
		HighRiskTerms:   identifiedTerms(a.HighRiskTerms),
		Recommendations: a.Recommendations,
		Features:        features,
	}
}

func identifiedTerms(terms []service.IdentifiedTerm) []IdentifiedTermDTO {
	out := make([]IdentifiedTermDTO, 0, len(terms))
	for _, t := range terms {
		out = append(out, IdentifiedTermDTO{
			Name:           t.Name,
			Group:          t.Group,
			Risk:           t.Risk,
			Description:    t.Description,
			Rationale:      t.Rationale,
			MatchedPhrases: t.MatchedPhrases,
		})
	}
	return out
}
