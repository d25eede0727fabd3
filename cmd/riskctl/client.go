package main

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	riskv1 "github.com/FluentFlier/aegis/internal/presentation/grpc"
	"github.com/FluentFlier/aegis/pkg/tlsutil"
)

// riskClient wraps a gRPC connection to riskd. Calls go over the JSON codec
// so no proto-generated stubs are required; importing the riskv1 package
// registers the codec.
type riskClient struct {
	conn *grpc.ClientConn
}

// dialRisk connects to the server named by the global --addr flag.
func dialRisk() (*riskClient, error) {
	var creds credentials.TransportCredentials
	if tlsCAFile != "" || tlsSkipVerify {
		var err error
		creds, err = tlsutil.ClientTLSConfig(tlsCAFile, tlsSkipVerify)
		if err != nil {
			return nil, err
		}
	} else {
		creds = insecure.NewCredentials()
	}

	conn, err := grpc.NewClient(serverAddr, grpc.WithTransportCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", serverAddr, err)
	}
	return &riskClient{conn: conn}, nil
}

// Close closes the underlying gRPC connection.
func (c *riskClient) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

func (c *riskClient) invoke(ctx context.Context, method string, req, resp interface{}) error {
	err := c.conn.Invoke(ctx, method, req, resp, grpc.CallContentSubtype("json"))
	if err != nil {
		if st, ok := status.FromError(err); ok {
			return fmt.Errorf("%s: %s", st.Code(), st.Message())
		}
		return err
	}
	return nil
}

func (c *riskClient) TrainModel(ctx context.Context, req *riskv1.TrainModelRequest) (*riskv1.TrainModelResponse, error) {
	resp := new(riskv1.TrainModelResponse)
	if err := c.invoke(ctx, "/aegis.risk.v1.RiskService/TrainModel", req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *riskClient) GetTrainingJob(ctx context.Context, req *riskv1.GetTrainingJobRequest) (*riskv1.GetTrainingJobResponse, error) {
	resp := new(riskv1.GetTrainingJobResponse)
	if err := c.invoke(ctx, "/aegis.risk.v1.RiskService/GetTrainingJob", req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *riskClient) GetTrainingReadiness(ctx context.Context) (*riskv1.GetTrainingReadinessResponse, error) {
	resp := new(riskv1.GetTrainingReadinessResponse)
	if err := c.invoke(ctx, "/aegis.risk.v1.RiskService/GetTrainingReadiness", &riskv1.GetTrainingReadinessRequest{}, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *riskClient) ApproveVersion(ctx context.Context, req *riskv1.ApproveVersionRequest) (*riskv1.ApproveVersionResponse, error) {
	resp := new(riskv1.ApproveVersionResponse)
	if err := c.invoke(ctx, "/aegis.risk.v1.RiskService/ApproveVersion", req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *riskClient) ActivateVersion(ctx context.Context, req *riskv1.ActivateVersionRequest) (*riskv1.ActivateVersionResponse, error) {
	resp := new(riskv1.ActivateVersionResponse)
	if err := c.invoke(ctx, "/aegis.risk.v1.RiskService/ActivateVersion", req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *riskClient) RollbackVersion(ctx context.Context, req *riskv1.RollbackVersionRequest) (*riskv1.RollbackVersionResponse, error) {
	resp := new(riskv1.RollbackVersionResponse)
	if err := c.invoke(ctx, "/aegis.risk.v1.RiskService/RollbackVersion", req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *riskClient) GetActiveVersion(ctx context.Context) (*riskv1.GetActiveVersionResponse, error) {
	resp := new(riskv1.GetActiveVersionResponse)
	if err := c.invoke(ctx, "/aegis.risk.v1.RiskService/GetActiveVersion", &riskv1.GetActiveVersionRequest{}, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *riskClient) ListVersions(ctx context.Context, req *riskv1.ListVersionsRequest) (*riskv1.ListVersionsResponse, error) {
	resp := new(riskv1.ListVersionsResponse)
	if err := c.invoke(ctx, "/aegis.risk.v1.RiskService/ListVersions", req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *riskClient) CompareVersions(ctx context.Context, req *riskv1.CompareVersionsRequest) (*riskv1.CompareVersionsResponse, error) {
	resp := new(riskv1.CompareVersionsResponse)
	if err := c.invoke(ctx, "/aegis.risk.v1.RiskService/CompareVersions", req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *riskClient) GetWeightEvolution(ctx context.Context, req *riskv1.GetWeightEvolutionRequest) (*riskv1.GetWeightEvolutionResponse, error) {
	resp := new(riskv1.GetWeightEvolutionResponse)
	if err := c.invoke(ctx, "/aegis.risk.v1.RiskService/GetWeightEvolution", req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *riskClient) Score(ctx context.Context, req *riskv1.ScoreRequest) (*riskv1.ScoreResponse, error) {
	resp := new(riskv1.ScoreResponse)
	if err := c.invoke(ctx, "/aegis.risk.v1.RiskService/Score", req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *riskClient) GetAssessment(ctx context.Context, req *riskv1.GetAssessmentRequest) (*riskv1.GetAssessmentResponse, error) {
	resp := new(riskv1.GetAssessmentResponse)
	if err := c.invoke(ctx, "/aegis.risk.v1.RiskService/GetAssessment", req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *riskClient) ListAssessments(ctx context.Context, req *riskv1.ListAssessmentsRequest) (*riskv1.ListAssessmentsResponse, error) {
	resp := new(riskv1.ListAssessmentsResponse)
	if err := c.invoke(ctx, "/aegis.risk.v1.RiskService/ListAssessments", req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *riskClient) GetRiskTrend(ctx context.Context, req *riskv1.GetRiskTrendRequest) (*riskv1.GetRiskTrendResponse, error) {
	resp := new(riskv1.GetRiskTrendResponse)
	if err := c.invoke(ctx, "/aegis.risk.v1.RiskService/GetRiskTrend", req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *riskClient) AnalyzeContract(ctx context.Context, req *riskv1.AnalyzeContractRequest) (*riskv1.AnalyzeContractResponse, error) {
	resp := new(riskv1.AnalyzeContractResponse)
	if err := c.invoke(ctx, "/aegis.risk.v1.RiskService/AnalyzeContract", req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}
