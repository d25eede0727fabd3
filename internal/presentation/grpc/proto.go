package grpc

// proto.go defines the gRPC server interface derived from aegis/risk/v1/risk.proto.
// This file serves as a stand-in for buf-generated code. Once `buf generate` is run,
// replace this file with the import from github.com/FluentFlier/aegis/api/gen/go/aegis/risk/v1.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// RiskServiceServer is the server API for RiskService.
type RiskServiceServer interface {
	TrainModel(context.Context, *TrainModelRequest) (*TrainModelResponse, error)
	GetTrainingJob(context.Context, *GetTrainingJobRequest) (*GetTrainingJobResponse, error)
	GetTrainingReadiness(context.Context, *GetTrainingReadinessRequest) (*GetTrainingReadinessResponse, error)
	ApproveVersion(context.Context, *ApproveVersionRequest) (*ApproveVersionResponse, error)
	ActivateVersion(context.Context, *ActivateVersionRequest) (*ActivateVersionResponse, error)
	RollbackVersion(context.Context, *RollbackVersionRequest) (*RollbackVersionResponse, error)
	GetActiveVersion(context.Context, *GetActiveVersionRequest) (*GetActiveVersionResponse, error)
	ListVersions(context.Context, *ListVersionsRequest) (*ListVersionsResponse, error)
	CompareVersions(context.Context, *CompareVersionsRequest) (*CompareVersionsResponse, error)
	GetWeightEvolution(context.Context, *GetWeightEvolutionRequest) (*GetWeightEvolutionResponse, error)
	Score(context.Context, *ScoreRequest) (*ScoreResponse, error)
	GetAssessment(context.Context, *GetAssessmentRequest) (*GetAssessmentResponse, error)
	ListAssessments(context.Context, *ListAssessmentsRequest) (*ListAssessmentsResponse, error)
	GetRiskTrend(context.Context, *GetRiskTrendRequest) (*GetRiskTrendResponse, error)
	AnalyzeContract(context.Context, *AnalyzeContractRequest) (*AnalyzeContractResponse, error)
	mustEmbedUnimplementedRiskServiceServer()
}

// UnimplementedRiskServiceServer provides forward-compatible default implementations.
type UnimplementedRiskServiceServer struct{}

func (UnimplementedRiskServiceServer) TrainModel(context.Context, *TrainModelRequest) (*TrainModelResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method TrainModel not implemented")
}
func (UnimplementedRiskServiceServer) GetTrainingJob(context.Context, *GetTrainingJobRequest) (*GetTrainingJobResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetTrainingJob not implemented")
}
func (UnimplementedRiskServiceServer) GetTrainingReadiness(context.Context, *GetTrainingReadinessRequest) (*GetTrainingReadinessResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetTrainingReadiness not implemented")
}
func (UnimplementedRiskServiceServer) ApproveVersion(context.Context, *ApproveVersionRequest) (*ApproveVersionResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ApproveVersion not implemented")
}
func (UnimplementedRiskServiceServer) ActivateVersion(context.Context, *ActivateVersionRequest) (*ActivateVersionResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ActivateVersion not implemented")
}
func (UnimplementedRiskServiceServer) RollbackVersion(context.Context, *RollbackVersionRequest) (*RollbackVersionResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RollbackVersion not implemented")
}
func (UnimplementedRiskServiceServer) GetActiveVersion(context.Context, *GetActiveVersionRequest) (*GetActiveVersionResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetActiveVersion not implemented")
}
func (UnimplementedRiskServiceServer) ListVersions(context.Context, *ListVersionsRequest) (*ListVersionsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListVersions not implemented")
}
func (UnimplementedRiskServiceServer) CompareVersions(context.Context, *CompareVersionsRequest) (*CompareVersionsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CompareVersions not implemented")
}
func (UnimplementedRiskServiceServer) GetWeightEvolution(context.Context, *GetWeightEvolutionRequest) (*GetWeightEvolutionResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetWeightEvolution not implemented")
}
func (UnimplementedRiskServiceServer) Score(context.Context, *ScoreRequest) (*ScoreResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Score not implemented")
}
func (UnimplementedRiskServiceServer) GetAssessment(context.Context, *GetAssessmentRequest) (*GetAssessmentResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetAssessment not implemented")
}
func (UnimplementedRiskServiceServer) ListAssessments(context.Context, *ListAssessmentsRequest) (*ListAssessmentsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListAssessments not implemented")
}
func (UnimplementedRiskServiceServer) GetRiskTrend(context.Context, *GetRiskTrendRequest) (*GetRiskTrendResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetRiskTrend not implemented")
}
func (UnimplementedRiskServiceServer) AnalyzeContract(context.Context, *AnalyzeContractRequest) (*AnalyzeContractResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method AnalyzeContract not implemented")
}
func (UnimplementedRiskServiceServer) mustEmbedUnimplementedRiskServiceServer() {}

// RegisterRiskServiceServer registers the RiskServiceServer with the gRPC server.
func RegisterRiskServiceServer(s *grpclib.Server, srv RiskServiceServer) {
	s.RegisterService(&_RiskService_serviceDesc, srv)
}

var _RiskService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: "aegis.risk.v1.RiskService",
	HandlerType: (*RiskServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "TrainModel", Handler: _RiskService_TrainModel_Handler},
		{MethodName: "GetTrainingJob", Handler: _RiskService_GetTrainingJob_Handler},
		{MethodName: "GetTrainingReadiness", Handler: _RiskService_GetTrainingReadiness_Handler},
		{MethodName: "ApproveVersion", Handler: _RiskService_ApproveVersion_Handler},
		{MethodName: "ActivateVersion", Handler: _RiskService_ActivateVersion_Handler},
		{MethodName: "RollbackVersion", Handler: _RiskService_RollbackVersion_Handler},
		{MethodName: "GetActiveVersion", Handler: _RiskService_GetActiveVersion_Handler},
		{MethodName: "ListVersions", Handler: _RiskService_ListVersions_Handler},
		{MethodName: "CompareVersions", Handler: _RiskService_CompareVersions_Handler},
		{MethodName: "GetWeightEvolution", Handler: _RiskService_GetWeightEvolution_Handler},
		{MethodName: "Score", Handler: _RiskService_Score_Handler},
		{MethodName: "GetAssessment", Handler: _RiskService_GetAssessment_Handler},
		{MethodName: "ListAssessments", Handler: _RiskService_ListAssessments_Handler},
		{MethodName: "GetRiskTrend", Handler: _RiskService_GetRiskTrend_Handler},
		{MethodName: "AnalyzeContract", Handler: _RiskService_AnalyzeContract_Handler},
	},
	Streams: []grpclib.StreamDesc{},
}

func _RiskService_TrainModel_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(TrainModelRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(RiskServiceServer).TrainModel(ctx, req)
}

func _RiskService_GetTrainingJob_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(GetTrainingJobRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(RiskServiceServer).GetTrainingJob(ctx, req)
}

func _RiskService_GetTrainingReadiness_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(GetTrainingReadinessRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(RiskServiceServer).GetTrainingReadiness(ctx, req)
}

func _RiskService_ApproveVersion_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(ApproveVersionRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(RiskServiceServer).ApproveVersion(ctx, req)
}

func _RiskService_ActivateVersion_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(ActivateVersionRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(RiskServiceServer).ActivateVersion(ctx, req)
}

func _RiskService_RollbackVersion_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(RollbackVersionRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(RiskServiceServer).RollbackVersion(ctx, req)
}

func _RiskService_GetActiveVersion_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(GetActiveVersionRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(RiskServiceServer).GetActiveVersion(ctx, req)
}

func _RiskService_ListVersions_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(ListVersionsRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(RiskServiceServer).ListVersions(ctx, req)
}

func _RiskService_CompareVersions_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(CompareVersionsRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(RiskServiceServer).CompareVersions(ctx, req)
}

func _RiskService_GetWeightEvolution_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(GetWeightEvolutionRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(RiskServiceServer).GetWeightEvolution(ctx, req)
}

func _RiskService_Score_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(ScoreRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(RiskServiceServer).Score(ctx, req)
}

func _RiskService_GetAssessment_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(GetAssessmentRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(RiskServiceServer).GetAssessment(ctx, req)
}

func _RiskService_ListAssessments_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(ListAssessmentsRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(RiskServiceServer).ListAssessments(ctx, req)
}

func _RiskService_GetRiskTrend_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(GetRiskTrendRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(RiskServiceServer).GetRiskTrend(ctx, req)
}

func _RiskService_AnalyzeContract_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(AnalyzeContractRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(RiskServiceServer).AnalyzeContract(ctx, req)
}
