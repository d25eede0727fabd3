package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/FluentFlier/aegis/internal/domain/model"
	"github.com/FluentFlier/aegis/internal/domain/valueobject"
)

// VersionResponse is the output DTO for weight version reads.
type VersionResponse struct {
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
	ApprovedAt  *time.Time         `json:"approved_at,omitempty"`
	Weights     map[string]float64 `json:"weights"`
	ID          uuid.UUID          `json:"id"`
	VersionTag  string             `json:"version_tag"`
	State       string             `json:"state"`
	ModelFamily string             `json:"model_family"`
	ApprovedBy  string             `json:"approved_by,omitempty"`
	Description string             `json:"description,omitempty"`
	ArtifactRef string             `json:"artifact_ref,omitempty"`
	SampleCount int                `json:"sample_count"`
	Accuracy    float64            `json:"accuracy"`
	ROCAUC      float64            `json:"roc_auc"`
	CVAUCMean   float64            `json:"cv_auc_mean"`
	CVAUCStd    float64            `json:"cv_auc_std"`
	Bootstrap   bool               `json:"bootstrap,omitempty"`
}

// VersionFromModel maps a weight version aggregate to the response DTO.
func VersionFromModel(v model.WeightVersion) VersionResponse {
	p := v.Provenance()
	return VersionResponse{
		ID:          v.ID(),
		VersionTag:  v.VersionTag(),
		State:       v.State().String(),
		Weights:     v.Weights().StringMap(),
		ModelFamily: p.ModelFamily.String(),
		SampleCount: p.SampleCount,
		Accuracy:    p.Accuracy,
		ROCAUC:      p.ROCAUC,
		CVAUCMean:   p.CVAUCMean,
		CVAUCStd:    p.CVAUCStd,
		ArtifactRef: p.ArtifactRef,
		Description: p.Description,
		ApprovedBy:  v.ApprovedBy(),
		ApprovedAt:  v.ApprovedAt(),
		CreatedAt:   v.CreatedAt(),
		UpdatedAt:   v.UpdatedAt(),
	}
}

// BootstrapVersionResponse is the documented equal-weights fallback served
// when no version has ever been activated. It is not a persisted version.
func BootstrapVersionResponse() VersionResponse {
	return VersionResponse{
		VersionTag: model.BootstrapVersionTag,
		Weights:    valueobject.EqualWeights().StringMap(),
		Bootstrap:  true,
	}
}

// ApproveVersionRequest is the input DTO for approving a draft version.
type ApproveVersionRequest struct {
	VersionID  uuid.UUID `json:"version_id"`
	ApprovedBy string    `json:"approved_by"`
}

// ApproveVersionResponse reports the version after approval. AlreadyApproved
// is set when the version had left DRAFT before this call.
type ApproveVersionResponse struct {
	Version         VersionResponse `json:"version"`
	AlreadyApproved bool            `json:"already_approved"`
}

// ActivateVersionRequest is the input DTO for activating (or rolling back to)
// an approved version.
type ActivateVersionRequest struct {
	VersionID uuid.UUID `json:"version_id"`
}

// ActivateVersionResponse reports the promoted version and the one it
// demoted, if any.
type ActivateVersionResponse struct {
	Version           VersionResponse `json:"version"`
	PreviousVersionID uuid.UUID       `json:"previous_version_id"`
}

// ListVersionsRequest is the input DTO for listing ledger entries.
type ListVersionsRequest struct {
	States []string `json:"states"`
	Limit  int      `json:"limit"`
	Offset int      `json:"offset"`
}

// ListVersionsResponse is the output DTO for listing ledger entries.
type ListVersionsResponse struct {
	Versions []VersionResponse `json:"versions"`
}

// CompareVersionsRequest is the input DTO for a pairwise version diff.
type CompareVersionsRequest struct {
	VersionA uuid.UUID `json:"version_a"`
	VersionB uuid.UUID `json:"version_b"`
}

// WeightDelta is one category's weight movement between two versions.
type WeightDelta struct {
	Category  string  `json:"category"`
	WeightA   float64 `json:"weight_a"`
	WeightB   float64 `json:"weight_b"`
	Delta     float64 `json:"delta"`
	PctChange float64 `json:"pct_change"`
}

// CompareVersionsResponse is the output DTO for a pairwise version diff.
// Deltas follow canonical category order.
type CompareVersionsResponse struct {
	VersionA      VersionResponse `json:"version_a"`
	VersionB      VersionResponse `json:"version_b"`
	Deltas        []WeightDelta   `json:"weight_deltas"`
	AccuracyDelta float64         `json:"accuracy_delta"`
	AUCDelta      float64         `json:"auc_delta"`
}

// WeightEvolutionRequest is the input DTO for the weight history read model.
// Category narrows the series to one category; empty returns full vectors.
type WeightEvolutionRequest struct {
	Category string `json:"category"`
}

// EvolutionPoint is one approved version's contribution to the weight
// history, oldest first.
type EvolutionPoint struct {
	CreatedAt  time.Time          `json:"created_at"`
	Weight     *float64           `json:"weight,omitempty"`
	Weights    map[string]float64 `json:"weights,omitempty"`
	VersionID  uuid.UUID          `json:"version_id"`
	VersionTag string             `json:"version_tag"`
	State      string             `json:"state"`
	Accuracy   float64            `json:"accuracy"`
	ROCAUC     float64            `json:"roc_auc"`
}

// WeightEvolutionResponse is the output DTO for the weight history.
type WeightEvolutionResponse struct {
	Category string           `json:"category,omitempty"`
	Points   []EvolutionPoint `json:"points"`
}
