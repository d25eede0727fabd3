package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/FluentFlier/aegis/internal/application/dto"
	"github.com/FluentFlier/aegis/internal/application/jobs"
	"github.com/FluentFlier/aegis/internal/domain/event"
	"github.com/FluentFlier/aegis/internal/domain/model"
	"github.com/FluentFlier/aegis/internal/domain/port"
	"github.com/FluentFlier/aegis/internal/domain/service"
	"github.com/FluentFlier/aegis/internal/domain/valueobject"
)

// TrainModel is the use case for submitting a training run. Execute records
// the job and returns immediately; the pipeline itself runs on the job
// runner, so a slow fit never holds an RPC open.
type TrainModel struct {
	jobRepo     port.TrainingJobRepository
	versionRepo port.VersionRepository
	builder     *service.DatasetBuilder
	trainer     *service.WeightTrainer
	artifacts   port.ArtifactStore
	publisher   port.EventPublisher
	runner      jobs.Submitter
	autoApprove bool
	logger      *slog.Logger
}

// NewTrainModel creates a new TrainModel use case. autoApprove is the
// configured default for runs that do not override it per request.
func NewTrainModel(
	jobRepo port.TrainingJobRepository,
	versionRepo port.VersionRepository,
	builder *service.DatasetBuilder,
	trainer *service.WeightTrainer,
	artifacts port.ArtifactStore,
	publisher port.EventPublisher,
	runner jobs.Submitter,
	autoApprove bool,
	logger *slog.Logger,
) *TrainModel {
	return &TrainModel{
		jobRepo:     jobRepo,
		versionRepo: versionRepo,
		builder:     builder,
		trainer:     trainer,
		artifacts:   artifacts,
		publisher:   publisher,
		runner:      runner,
		autoApprove: autoApprove,
		logger:      logger,
	}
}

// Execute validates the request, persists a pending job record, and hands the
// pipeline to the runner.
func (uc *TrainModel) Execute(ctx context.Context, req dto.TrainModelRequest) (dto.TrainModelResponse, error) {
	family, err := valueobject.ModelFamilyFromString(req.ModelFamily)
	if err != nil {
		return dto.TrainModelResponse{}, err
	}

	job, err := model.NewTrainingJob(family, time.Now().UTC())
	if err != nil {
		return dto.TrainModelResponse{}, fmt.Errorf("failed to create training job: %w", err)
	}
	if err := uc.jobRepo.Save(ctx, job); err != nil {
		return dto.TrainModelResponse{}, fmt.Errorf("failed to save training job: %w", err)
	}

	uc.logger.Info("training job submitted",
		"job_id", job.ID(),
		"model_family", family.String(),
	)

	// Capture the acknowledgement before the runner takes the job: once
	// submitted, the pipeline goroutine owns the record.
	resp := dto.TrainModelResponse{
		JobID:  job.ID(),
		Status: string(job.Status()),
	}

	uc.runner.Submit("train "+family.String(), func(jobCtx context.Context) {
		uc.runTraining(jobCtx, job, req)
	})

	return resp, nil
}

// runTraining executes the full pipeline for one job: assemble the dataset,
// fit and evaluate the model, register the resulting weight version, and
// close out the job record. It runs detached from the submitting request.
func (uc *TrainModel) runTraining(ctx context.Context, job *model.TrainingJob, req dto.TrainModelRequest) {
	now := time.Now().UTC()
	if err := job.Start(now); err != nil {
		uc.logger.Error("training job cannot start", "job_id", job.ID(), "error", err)
		return
	}
	if err := uc.jobRepo.Update(ctx, job); err != nil {
		uc.logger.Error("failed to mark training job running", "job_id", job.ID(), "error", err)
		return
	}

	// 1. Assemble the labeled dataset.
	ds, summary, err := uc.builder.Build(ctx, req.MinSamples)
	if err != nil {
		uc.failJob(ctx, job, err)
		return
	}

	// 2. Fit, evaluate, and derive the weight vector.
	result, err := uc.trainer.Train(ds, summary, job.Family(), time.Now().UTC())
	if err != nil {
		uc.failJob(ctx, job, err)
		return
	}

	// 3. Register the new version in the ledger.
	autoApprove := uc.autoApprove
	if req.AutoApprove != nil {
		autoApprove = *req.AutoApprove
	}
	provenance := model.Provenance{
		ModelFamily: job.Family(),
		SampleCount: result.Report.SampleCount,
		Accuracy:    result.Report.Accuracy,
		ROCAUC:      result.Report.ROCAUC,
		CVAUCMean:   result.Report.CVAUCMean,
		CVAUCStd:    result.Report.CVAUCStd,
		ArtifactRef: result.ArtifactRef,
		Description: req.Description,
	}
	version, err := model.NewWeightVersion(result.Weights, provenance, autoApprove, time.Now().UTC())
	if err != nil {
		uc.failJob(ctx, job, fmt.Errorf("failed to create weight version: %w", err))
		return
	}
	if err := uc.versionRepo.Save(ctx, version); err != nil {
		uc.failJob(ctx, job, fmt.Errorf("failed to save weight version: %w", err))
		return
	}

	// 4. Store the model artifact. Best effort: losing the blob costs
	// reproducibility, not the run.
	if len(result.Artifact) > 0 {
		if err := uc.artifacts.Put(ctx, result.ArtifactRef, result.Artifact); err != nil {
			uc.logger.Warn("model artifact not stored",
				"artifact_ref", result.ArtifactRef,
				"error", err,
			)
		}
	}

	// 5. Publish domain events. The version is already durable, so a broker
	// outage only costs the notification.
	evts := version.DomainEvents()
	evts = append(evts, event.NewModelTrained(
		job.ID(),
		version.ID(),
		job.Family().String(),
		result.Report.Accuracy,
		result.Report.ROCAUC,
		result.Report.SampleCount,
	))
	if err := uc.publisher.Publish(ctx, evts...); err != nil {
		uc.logger.Error("failed to publish training events",
			"job_id", job.ID(),
			"version_id", version.ID(),
			"error", err,
		)
	}

	// 6. Close out the job record.
	if err := job.Complete(version.ID(), time.Now().UTC()); err != nil {
		uc.logger.Error("training job cannot complete", "job_id", job.ID(), "error", err)
		return
	}
	if err := uc.jobRepo.Update(ctx, job); err != nil {
		uc.logger.Error("failed to mark training job completed", "job_id", job.ID(), "error", err)
		return
	}

	uc.logger.Info("training job completed",
		"job_id", job.ID(),
		"version_id", version.ID(),
		"version_tag", version.VersionTag(),
		"accuracy", result.Report.Accuracy,
		"roc_auc", result.Report.ROCAUC,
		"false_negatives", result.Report.Confusion.FalseNegatives,
		"false_positives", result.Report.Confusion.FalsePositives,
	)
}

func (uc *TrainModel) failJob(ctx context.Context, job *model.TrainingJob, cause error) {
	uc.logger.Error("training job failed", "job_id", job.ID(), "error", cause)
	if err := job.Fail(cause.Error(), time.Now().UTC()); err != nil {
		uc.logger.Error("training job cannot fail", "job_id", job.ID(), "error", err)
		return
	}
	if err := uc.jobRepo.Update(ctx, job); err != nil {
		uc.logger.Error("failed to mark training job failed", "job_id", job.ID(), "error", err)
	}
}
