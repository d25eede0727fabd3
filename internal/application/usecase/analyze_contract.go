package usecase

import (
	"context"
	"fmt"

	"github.com/FluentFlier/aegis/internal/application/dto"
	"github.com/FluentFlier/aegis/internal/domain/service"
)

// AnalyzeContract is the use case for extracting risk terms from contract
// text. It is a pure read: nothing is persisted.
type AnalyzeContract struct {
	analyzer *service.TermAnalyzer
}

// NewAnalyzeContract creates a new AnalyzeContract use case.
func NewAnalyzeContract(analyzer *service.TermAnalyzer) *AnalyzeContract {
	return &AnalyzeContract{analyzer: analyzer}
}

// Execute analyzes the text from the requested perspective. Text with no
// recognized terms is not an error; it comes back as a neutral document.
func (uc *AnalyzeContract) Execute(ctx context.Context, req dto.AnalyzeContractRequest) (dto.AnalyzeContractResponse, error) {
	perspective, err := service.ParsePerspective(req.Perspective)
	if err != nil {
		return dto.AnalyzeContractResponse{}, err
	}
	if req.Text == "" {
		return dto.AnalyzeContractResponse{}, fmt.Errorf("contract text is required")
	}

	analysis := uc.analyzer.AnalyzeText(req.Text, perspective)
	features := uc.analyzer.ExtractFeatures(req.Text, perspective)
	return dto.AnalysisFromService(analysis, features), nil
}
