package grpc

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/FluentFlier/aegis/internal/application/dto"
	"github.com/FluentFlier/aegis/internal/application/usecase"
	"github.com/FluentFlier/aegis/internal/domain/model"
	"github.com/FluentFlier/aegis/internal/domain/port"
	"github.com/FluentFlier/aegis/internal/domain/service"
	"github.com/FluentFlier/aegis/internal/domain/valueobject"
)

// Compile-time assertion that RiskServiceHandler implements RiskServiceServer.
var _ RiskServiceServer = (*RiskServiceHandler)(nil)

// UseCases bundles the application services the handler dispatches to.
type UseCases struct {
	TrainModel           *usecase.TrainModel
	GetTrainingJob       *usecase.GetTrainingJob
	GetTrainingReadiness *usecase.GetTrainingReadiness
	ApproveVersion       *usecase.ApproveVersion
	ActivateVersion      *usecase.ActivateVersion
	RollbackVersion      *usecase.RollbackVersion
	GetActiveVersion     *usecase.GetActiveVersion
	ListVersions         *usecase.ListVersions
	CompareVersions      *usecase.CompareVersions
	GetWeightEvolution   *usecase.GetWeightEvolution
	ScoreSupplier        *usecase.ScoreSupplier
	GetAssessment        *usecase.GetAssessment
	ListAssessments      *usecase.ListAssessments
	GetRiskTrend         *usecase.GetRiskTrend
	AnalyzeContract      *usecase.AnalyzeContract
}

// RiskServiceHandler implements the gRPC RiskServiceServer interface.
type RiskServiceHandler struct {
	UnimplementedRiskServiceServer
	ucs    UseCases
	logger *slog.Logger
}

// NewRiskServiceHandler creates a new gRPC handler.
func NewRiskServiceHandler(ucs UseCases, logger *slog.Logger) *RiskServiceHandler {
	return &RiskServiceHandler{ucs: ucs, logger: logger}
}

// statusFromError maps domain errors onto gRPC status codes. Anything
// unrecognized stays an opaque Internal.
func statusFromError(err error) error {
	switch {
	case errors.Is(err, port.ErrVersionNotFound),
		errors.Is(err, port.ErrNoActiveVersion),
		errors.Is(err, port.ErrAssessmentNotFound),
		errors.Is(err, port.ErrJobNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, model.ErrNotApproved),
		errors.Is(err, model.ErrAlreadyActive),
		errors.Is(err, valueobject.ErrInvalidStateTransition),
		errors.Is(err, service.ErrInsufficientData):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, valueobject.ErrUnsupportedModelFamily):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		return status.Error(codes.Internal, "internal error")
	}
}

// TrainModel handles a training submission request.
func (h *RiskServiceHandler) TrainModel(ctx context.Context, req *TrainModelRequest) (*TrainModelResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	if _, err := valueobject.ModelFamilyFromString(req.ModelFamily); err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid model_family: %v", err)
	}
	if req.MinSamples < 0 {
		return nil, status.Error(codes.InvalidArgument, "min_samples must not be negative")
	}

	h.logger.Info("training requested",
		slog.String("model_family", req.ModelFamily),
	)

	result, err := h.ucs.TrainModel.Execute(ctx, dto.TrainModelRequest{
		ModelFamily: req.ModelFamily,
		Description: req.Description,
		MinSamples:  int(req.MinSamples),
		AutoApprove: req.AutoApprove,
	})
	if err != nil {
		h.logger.Error("failed to submit training job",
			slog.String("model_family", req.ModelFamily),
			slog.String("error", err.Error()),
		)
		return nil, statusFromError(err)
	}

	return &TrainModelResponse{
		JobID:  result.JobID.String(),
		Status: result.Status,
	}, nil
}

// GetTrainingJob handles a training job poll.
func (h *RiskServiceHandler) GetTrainingJob(ctx context.Context, req *GetTrainingJobRequest) (*GetTrainingJobResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	jobID, err := uuid.Parse(req.JobID)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid job_id: %v", err)
	}

	result, err := h.ucs.GetTrainingJob.Execute(ctx, dto.GetTrainingJobRequest{JobID: jobID})
	if err != nil {
		return nil, statusFromError(err)
	}

	return &GetTrainingJobResponse{Job: jobMsg(result)}, nil
}

// GetTrainingReadiness reports whether enough labeled outcomes exist to train.
func (h *RiskServiceHandler) GetTrainingReadiness(ctx context.Context, _ *GetTrainingReadinessRequest) (*GetTrainingReadinessResponse, error) {
	result, err := h.ucs.GetTrainingReadiness.Execute(ctx)
	if err != nil {
		return nil, statusFromError(err)
	}

	outcomes := make(map[string]int32, len(result.Outcomes))
	for outcome, count := range result.Outcomes {
		outcomes[outcome] = int32(count)
	}

	return &GetTrainingReadinessResponse{
		Ready:           result.Ready,
		TotalRecords:    int32(result.TotalRecords),
		UsableRows:      int32(result.UsableRows),
		SkippedRows:     int32(result.SkippedRows),
		MinimumRequired: int32(result.MinimumRequired),
		Outcomes:        outcomes,
		ContractValue:   result.ContractValue,
		LossAmount:      result.LossAmount,
	}, nil
}

// ApproveVersion handles a draft approval request.
func (h *RiskServiceHandler) ApproveVersion(ctx context.Context, req *ApproveVersionRequest) (*ApproveVersionResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	versionID, err := uuid.Parse(req.VersionID)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid version_id: %v", err)
	}

	result, err := h.ucs.ApproveVersion.Execute(ctx, dto.ApproveVersionRequest{
		VersionID:  versionID,
		ApprovedBy: req.ApprovedBy,
	})
	if err != nil {
		h.logger.Error("failed to approve version",
			slog.String("version_id", versionID.String()),
			slog.String("error", err.Error()),
		)
		return nil, statusFromError(err)
	}

	return &ApproveVersionResponse{
		Version:         versionMsg(result.Version),
		AlreadyApproved: result.AlreadyApproved,
	}, nil
}

// ActivateVersion handles an activation request.
func (h *RiskServiceHandler) ActivateVersion(ctx context.Context, req *ActivateVersionRequest) (*ActivateVersionResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	versionID, err := uuid.Parse(req.VersionID)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid version_id: %v", err)
	}

	result, err := h.ucs.ActivateVersion.Execute(ctx, dto.ActivateVersionRequest{VersionID: versionID})
	if err != nil {
		h.logger.Error("failed to activate version",
			slog.String("version_id", versionID.String()),
			slog.String("error", err.Error()),
		)
		return nil, statusFromError(err)
	}

	return &ActivateVersionResponse{
		Version:           versionMsg(result.Version),
		PreviousVersionID: uuidString(result.PreviousVersionID),
	}, nil
}

// RollbackVersion handles a rollback to a previously active version.
func (h *RiskServiceHandler) RollbackVersion(ctx context.Context, req *RollbackVersionRequest) (*RollbackVersionResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	versionID, err := uuid.Parse(req.VersionID)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid version_id: %v", err)
	}

	result, err := h.ucs.RollbackVersion.Execute(ctx, dto.ActivateVersionRequest{VersionID: versionID})
	if err != nil {
		h.logger.Error("failed to roll back version",
			slog.String("version_id", versionID.String()),
			slog.String("error", err.Error()),
		)
		return nil, statusFromError(err)
	}

	return &RollbackVersionResponse{
		Version:           versionMsg(result.Version),
		PreviousVersionID: uuidString(result.PreviousVersionID),
	}, nil
}

// GetActiveVersion returns the version scoring currently resolves to.
func (h *RiskServiceHandler) GetActiveVersion(ctx context.Context, _ *GetActiveVersionRequest) (*GetActiveVersionResponse, error) {
	result, err := h.ucs.GetActiveVersion.Execute(ctx)
	if err != nil {
		return nil, statusFromError(err)
	}

	return &GetActiveVersionResponse{Version: versionMsg(result)}, nil
}

// ListVersions handles a ledger browse request.
func (h *RiskServiceHandler) ListVersions(ctx context.Context, req *ListVersionsRequest) (*ListVersionsResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	for _, s := range req.States {
		if _, err := valueobject.VersionStateFromString(s); err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "invalid state filter: %v", err)
		}
	}
	if req.Limit < 0 || req.Offset < 0 {
		return nil, status.Error(codes.InvalidArgument, "limit and offset must not be negative")
	}

	result, err := h.ucs.ListVersions.Execute(ctx, dto.ListVersionsRequest{
		States: req.States,
		Limit:  int(req.Limit),
		Offset: int(req.Offset),
	})
	if err != nil {
		return nil, statusFromError(err)
	}

	versions := make([]*WeightVersionMsg, 0, len(result.Versions))
	for _, v := range result.Versions {
		versions = append(versions, versionMsg(v))
	}
	return &ListVersionsResponse{Versions: versions}, nil
}

// CompareVersions handles a pairwise version diff request.
func (h *RiskServiceHandler) CompareVersions(ctx context.Context, req *CompareVersionsRequest) (*CompareVersionsResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	versionA, err := uuid.Parse(req.VersionA)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid version_a: %v", err)
	}
	versionB, err := uuid.Parse(req.VersionB)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid version_b: %v", err)
	}

	result, err := h.ucs.CompareVersions.Execute(ctx, dto.CompareVersionsRequest{
		VersionA: versionA,
		VersionB: versionB,
	})
	if err != nil {
		return nil, statusFromError(err)
	}

	deltas := make([]*WeightDeltaMsg, 0, len(result.Deltas))
	for _, d := range result.Deltas {
		deltas = append(deltas, &WeightDeltaMsg{
			Category:  d.Category,
			WeightA:   d.WeightA,
			WeightB:   d.WeightB,
			Delta:     d.Delta,
			PctChange: d.PctChange,
		})
	}

	return &CompareVersionsResponse{
		VersionA:      versionMsg(result.VersionA),
		VersionB:      versionMsg(result.VersionB),
		WeightDeltas:  deltas,
		AccuracyDelta: result.AccuracyDelta,
		AUCDelta:      result.AUCDelta,
	}, nil
}

// GetWeightEvolution returns the approved weight history, oldest first.
func (h *RiskServiceHandler) GetWeightEvolution(ctx context.Context, req *GetWeightEvolutionRequest) (*GetWeightEvolutionResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	if req.Category != "" {
		if _, err := valueobject.CategoryFromString(req.Category); err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "invalid category: %v", err)
		}
	}

	result, err := h.ucs.GetWeightEvolution.Execute(ctx, dto.WeightEvolutionRequest{Category: req.Category})
	if err != nil {
		return nil, statusFromError(err)
	}

	points := make([]*EvolutionPointMsg, 0, len(result.Points))
	for _, p := range result.Points {
		points = append(points, &EvolutionPointMsg{
			VersionID:  p.VersionID.String(),
			VersionTag: p.VersionTag,
			State:      p.State,
			CreatedAt:  timeString(p.CreatedAt),
			Accuracy:   p.Accuracy,
			ROCAUC:     p.ROCAUC,
			Weight:     p.Weight,
			Weights:    p.Weights,
		})
	}

	return &GetWeightEvolutionResponse{
		Category: result.Category,
		Points:   points,
	}, nil
}

// Score handles a supplier scoring request.
func (h *RiskServiceHandler) Score(ctx context.Context, req *ScoreRequest) (*ScoreResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	supplierID, err := uuid.Parse(req.SupplierID)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid supplier_id: %v", err)
	}
	contractID := uuid.Nil
	if req.ContractID != "" {
		contractID, err = uuid.Parse(req.ContractID)
		if err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "invalid contract_id: %v", err)
		}
	}
	if _, err := valueobject.CategoryScoresFromStrings(req.Scores); err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid scores: %v", err)
	}
	if len(req.Weights) > 0 {
		if _, err := valueobject.WeightsFromStrings(req.Weights); err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "invalid weights: %v", err)
		}
	}
	if req.Confidence != nil && (*req.Confidence < 0 || *req.Confidence > 1) {
		return nil, status.Error(codes.InvalidArgument, "confidence must be within [0, 1]")
	}

	h.logger.Info("scoring supplier",
		slog.String("supplier_id", supplierID.String()),
	)

	result, err := h.ucs.ScoreSupplier.Execute(ctx, dto.ScoreRequest{
		SupplierID: supplierID,
		ContractID: contractID,
		Scores:     req.Scores,
		Weights:    req.Weights,
		Confidence: req.Confidence,
	})
	if err != nil {
		h.logger.Error("failed to score supplier",
			slog.String("supplier_id", supplierID.String()),
			slog.String("error", err.Error()),
		)
		return nil, statusFromError(err)
	}

	return &ScoreResponse{
		Assessment:    scoredAssessmentMsg(result),
		Contributions: result.Contributions,
	}, nil
}

// GetAssessment handles a single assessment read.
func (h *RiskServiceHandler) GetAssessment(ctx context.Context, req *GetAssessmentRequest) (*GetAssessmentResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	assessmentID, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid id: %v", err)
	}

	result, err := h.ucs.GetAssessment.Execute(ctx, dto.GetAssessmentRequest{AssessmentID: assessmentID})
	if err != nil {
		return nil, statusFromError(err)
	}

	return &GetAssessmentResponse{Assessment: assessmentMsg(result)}, nil
}

// ListAssessments handles a supplier history read, newest first.
func (h *RiskServiceHandler) ListAssessments(ctx context.Context, req *ListAssessmentsRequest) (*ListAssessmentsResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	supplierID, err := uuid.Parse(req.SupplierID)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid supplier_id: %v", err)
	}
	if req.Limit < 0 || req.Offset < 0 {
		return nil, status.Error(codes.InvalidArgument, "limit and offset must not be negative")
	}

	result, err := h.ucs.ListAssessments.Execute(ctx, dto.ListAssessmentsRequest{
		SupplierID: supplierID,
		Limit:      int(req.Limit),
		Offset:     int(req.Offset),
	})
	if err != nil {
		return nil, statusFromError(err)
	}

	assessments := make([]*AssessmentMsg, 0, len(result.Assessments))
	for _, a := range result.Assessments {
		assessments = append(assessments, assessmentMsg(a))
	}
	return &ListAssessmentsResponse{Assessments: assessments}, nil
}

// GetRiskTrend returns a supplier's composite history over a day window.
func (h *RiskServiceHandler) GetRiskTrend(ctx context.Context, req *GetRiskTrendRequest) (*GetRiskTrendResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	supplierID, err := uuid.Parse(req.SupplierID)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid supplier_id: %v", err)
	}
	if req.Days < 0 {
		return nil, status.Error(codes.InvalidArgument, "days must not be negative")
	}

	result, err := h.ucs.GetRiskTrend.Execute(ctx, dto.RiskTrendRequest{
		SupplierID: supplierID,
		Days:       int(req.Days),
	})
	if err != nil {
		return nil, statusFromError(err)
	}

	points := make([]*TrendPointMsg, 0, len(result.Points))
	for _, p := range result.Points {
		points = append(points, &TrendPointMsg{
			AssessmentID:   p.AssessmentID.String(),
			CompositeScore: p.Composite,
			Recommendation: p.Recommendation,
			AssessedAt:     timeString(p.AssessedAt),
		})
	}

	return &GetRiskTrendResponse{
		SupplierID:    result.SupplierID.String(),
		WindowDays:    int32(result.WindowDays),
		Direction:     result.Direction,
		MeanComposite: result.MeanComposite,
		Points:        points,
	}, nil
}

// AnalyzeContract handles a contract term analysis request.
func (h *RiskServiceHandler) AnalyzeContract(ctx context.Context, req *AnalyzeContractRequest) (*AnalyzeContractResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	if req.Text == "" {
		return nil, status.Error(codes.InvalidArgument, "contract text is required")
	}
	if _, err := service.ParsePerspective(req.Perspective); err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid perspective: %v", err)
	}

	result, err := h.ucs.AnalyzeContract.Execute(ctx, dto.AnalyzeContractRequest{
		Text:        req.Text,
		Perspective: req.Perspective,
	})
	if err != nil {
		return nil, statusFromError(err)
	}

	groups := make(map[string]*GroupAnalysisMsg, len(result.Groups))
	for name, g := range result.Groups {
		groups[name] = &GroupAnalysisMsg{
			AverageRisk: g.AverageRisk,
			TermCount:   int32(g.TermCount),
			Terms:       g.Terms,
		}
	}

	return &AnalyzeContractResponse{
		Perspective:     result.Perspective,
		OverallRisk:     result.OverallRisk,
		Coverage:        result.Coverage,
		IdentifiedTerms: identifiedTermMsgs(result.IdentifiedTerms),
		HighRiskTerms:   identifiedTermMsgs(result.HighRiskTerms),
		Groups:          groups,
		Recommendations: result.Recommendations,
		Features:        result.Features,
	}, nil
}
