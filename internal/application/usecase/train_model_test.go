package usecase_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FluentFlier/aegis/internal/application/dto"
	"github.com/FluentFlier/aegis/internal/application/usecase"
	"github.com/FluentFlier/aegis/internal/domain/event"
	"github.com/FluentFlier/aegis/internal/domain/model"
	"github.com/FluentFlier/aegis/internal/domain/port"
	"github.com/FluentFlier/aegis/internal/domain/service"
	"github.com/FluentFlier/aegis/internal/domain/valueobject"
	"github.com/FluentFlier/aegis/pkg/events"
	"github.com/FluentFlier/aegis/pkg/observability"
)

// --- Mock implementations ---

type mockVersionRepository struct {
	saved       []model.WeightVersion
	updated     []model.WeightVersion
	activatedID uuid.UUID

	saveFunc              func(ctx context.Context, v model.WeightVersion) error
	updateStateFunc       func(ctx context.Context, v model.WeightVersion) error
	findByIDFunc          func(ctx context.Context, id uuid.UUID) (model.WeightVersion, error)
	findByTagFunc         func(ctx context.Context, tag string) (model.WeightVersion, error)
	findActiveFunc        func(ctx context.Context) (model.WeightVersion, error)
	listFunc              func(ctx context.Context, filter port.VersionFilter) ([]model.WeightVersion, error)
	activateExclusiveFunc func(ctx context.Context, id uuid.UUID, now time.Time) (uuid.UUID, error)

	findActiveCalls int
}

func (m *mockVersionRepository) Save(ctx context.Context, v model.WeightVersion) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, v)
	}
	m.saved = append(m.saved, v)
	return nil
}

func (m *mockVersionRepository) UpdateState(ctx context.Context, v model.WeightVersion) error {
	if m.updateStateFunc != nil {
		return m.updateStateFunc(ctx, v)
	}
	m.updated = append(m.updated, v)
	return nil
}

func (m *mockVersionRepository) FindByID(ctx context.Context, id uuid.UUID) (model.WeightVersion, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return model.WeightVersion{}, port.ErrVersionNotFound
}

func (m *mockVersionRepository) FindByTag(ctx context.Context, tag string) (model.WeightVersion, error) {
	if m.findByTagFunc != nil {
		return m.findByTagFunc(ctx, tag)
	}
	return model.WeightVersion{}, port.ErrVersionNotFound
}

func (m *mockVersionRepository) FindActive(ctx context.Context) (model.WeightVersion, error) {
	m.findActiveCalls++
	if m.findActiveFunc != nil {
		return m.findActiveFunc(ctx)
	}
	return model.WeightVersion{}, port.ErrNoActiveVersion
}

func (m *mockVersionRepository) List(ctx context.Context, filter port.VersionFilter) ([]model.WeightVersion, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, filter)
	}
	return nil, nil
}

func (m *mockVersionRepository) ActivateExclusive(ctx context.Context, id uuid.UUID, now time.Time) (uuid.UUID, error) {
	if m.activateExclusiveFunc != nil {
		return m.activateExclusiveFunc(ctx, id, now)
	}
	m.activatedID = id
	return uuid.Nil, nil
}

type mockTrainingJobRepository struct {
	saved    []*model.TrainingJob
	statuses []model.JobStatus

	saveFunc     func(ctx context.Context, job *model.TrainingJob) error
	updateFunc   func(ctx context.Context, job *model.TrainingJob) error
	findByIDFunc func(ctx context.Context, id uuid.UUID) (*model.TrainingJob, error)
}

func (m *mockTrainingJobRepository) Save(ctx context.Context, job *model.TrainingJob) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, job)
	}
	m.saved = append(m.saved, job)
	return nil
}

func (m *mockTrainingJobRepository) Update(ctx context.Context, job *model.TrainingJob) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, job)
	}
	m.statuses = append(m.statuses, job.Status())
	return nil
}

func (m *mockTrainingJobRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.TrainingJob, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, port.ErrJobNotFound
}

type mockOutcomeSource struct {
	records   []model.OutcomeRecord
	fetchFunc func(ctx context.Context) ([]model.OutcomeRecord, error)
}

func (m *mockOutcomeSource) FetchLabeled(ctx context.Context) ([]model.OutcomeRecord, error) {
	if m.fetchFunc != nil {
		return m.fetchFunc(ctx)
	}
	return m.records, nil
}

type mockArtifactStore struct {
	puts    map[string][]byte
	putFunc func(ctx context.Context, ref string, data []byte) error
	getFunc func(ctx context.Context, ref string) ([]byte, error)
}

func (m *mockArtifactStore) Put(ctx context.Context, ref string, data []byte) error {
	if m.putFunc != nil {
		return m.putFunc(ctx, ref, data)
	}
	if m.puts == nil {
		m.puts = make(map[string][]byte)
	}
	m.puts[ref] = data
	return nil
}

func (m *mockArtifactStore) Get(ctx context.Context, ref string) ([]byte, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, ref)
	}
	data, ok := m.puts[ref]
	if !ok {
		return nil, fmt.Errorf("artifact not found: %s", ref)
	}
	return data, nil
}

type mockAlertSink struct {
	alerts   []port.RiskAlert
	emitFunc func(ctx context.Context, alert port.RiskAlert) error
}

func (m *mockAlertSink) EmitRiskAlert(ctx context.Context, alert port.RiskAlert) error {
	if m.emitFunc != nil {
		return m.emitFunc(ctx, alert)
	}
	m.alerts = append(m.alerts, alert)
	return nil
}

type mockEventPublisher struct {
	published   []events.DomainEvent
	publishFunc func(ctx context.Context, evts ...events.DomainEvent) error
}

func (m *mockEventPublisher) Publish(ctx context.Context, evts ...events.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	m.published = append(m.published, evts...)
	return nil
}

// syncRunner runs submitted jobs inline so tests observe the finished
// pipeline as soon as Execute returns.
type syncRunner struct{}

func (syncRunner) Submit(_ string, fn func(ctx context.Context)) {
	fn(context.Background())
}

// --- Test helpers ---

// labeledScores builds a full score map with the financial category set and
// every other category at a neutral 50.
func labeledScores(t *testing.T, financial float64) valueobject.CategoryScores {
	t.Helper()
	scores, err := valueobject.CategoryScoresFromStrings(map[string]float64{
		"financial":    financial,
		"legal":        50,
		"esg":          50,
		"geopolitical": 50,
		"operational":  50,
		"pricing":      50,
		"social":       50,
		"performance":  50,
	})
	require.NoError(t, err)
	return scores
}

// outcomePopulation builds a separable training population: good engagements
// carried low financial risk, bad ones high.
func outcomePopulation(t *testing.T, good, bad int) []model.OutcomeRecord {
	t.Helper()
	records := make([]model.OutcomeRecord, 0, good+bad)
	for i := 0; i < good; i++ {
		records = append(records, model.OutcomeRecord{
			SupplierID:    uuid.New(),
			Scores:        labeledScores(t, 20),
			Outcome:       valueobject.OutcomeSuccessful,
			ContractValue: decimal.NewFromInt(1000),
			LossAmount:    decimal.Zero,
			ConcludedAt:   time.Now().UTC(),
		})
	}
	for i := 0; i < bad; i++ {
		records = append(records, model.OutcomeRecord{
			SupplierID:    uuid.New(),
			Scores:        labeledScores(t, 80),
			Outcome:       valueobject.OutcomeDispute,
			ContractValue: decimal.NewFromInt(1000),
			LossAmount:    decimal.NewFromInt(250),
			ConcludedAt:   time.Now().UTC(),
		})
	}
	return records
}

func newDatasetBuilder(records []model.OutcomeRecord) *service.DatasetBuilder {
	return service.NewDatasetBuilder(&mockOutcomeSource{records: records}, 50, observability.NopLogger())
}

func newWeightTrainer() *service.WeightTrainer {
	return service.NewWeightTrainer(service.DefaultTrainerConfig(), observability.NopLogger())
}

// --- Tests ---

func TestTrainModel_Execute(t *testing.T) {
	t.Run("runs the full pipeline and registers a draft version", func(t *testing.T) {
		jobRepo := &mockTrainingJobRepository{}
		versions := &mockVersionRepository{}
		artifacts := &mockArtifactStore{}
		publisher := &mockEventPublisher{}
		uc := usecase.NewTrainModel(
			jobRepo, versions,
			newDatasetBuilder(outcomePopulation(t, 30, 30)), newWeightTrainer(),
			artifacts, publisher, syncRunner{}, false, observability.NopLogger(),
		)

		resp, err := uc.Execute(context.Background(), dto.TrainModelRequest{
			ModelFamily: "logistic",
			Description: "quarterly retrain",
		})

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, resp.JobID)
		assert.Equal(t, "pending", resp.Status)

		// The job record went through running to completed.
		require.Len(t, jobRepo.saved, 1)
		assert.Equal(t, []model.JobStatus{model.JobStatusRunning, model.JobStatusCompleted}, jobRepo.statuses)
		job := jobRepo.saved[0]
		assert.Equal(t, model.JobStatusCompleted, job.Status())

		// The registered version carries the learned weights and provenance.
		require.Len(t, versions.saved, 1)
		version := versions.saved[0]
		assert.Equal(t, job.VersionID(), version.ID())
		assert.Equal(t, valueobject.VersionStateDraft, version.State())
		assert.InDelta(t, 1.0, version.Weights().Get(valueobject.CategoryFinancial), 1e-6)
		assert.Equal(t, 60, version.Provenance().SampleCount)
		assert.Equal(t, "quarterly retrain", version.Provenance().Description)
		assert.True(t, strings.HasPrefix(version.VersionTag(), "v_ml_logistic_"))

		// The artifact landed under the ref recorded in provenance.
		ref := version.Provenance().ArtifactRef
		assert.True(t, strings.HasPrefix(ref, "logistic_"))
		assert.True(t, strings.HasSuffix(ref, ".model"))
		assert.NotEmpty(t, artifacts.puts[ref])

		require.Len(t, publisher.published, 2)
		assert.Equal(t, event.EventTypeVersionCreated, publisher.published[0].EventType())
		assert.Equal(t, event.EventTypeModelTrained, publisher.published[1].EventType())
	})

	t.Run("auto-approve override registers the version approved", func(t *testing.T) {
		jobRepo := &mockTrainingJobRepository{}
		versions := &mockVersionRepository{}
		autoApprove := true
		uc := usecase.NewTrainModel(
			jobRepo, versions,
			newDatasetBuilder(outcomePopulation(t, 30, 30)), newWeightTrainer(),
			&mockArtifactStore{}, &mockEventPublisher{}, syncRunner{}, false, observability.NopLogger(),
		)

		_, err := uc.Execute(context.Background(), dto.TrainModelRequest{
			ModelFamily: "random_forest",
			AutoApprove: &autoApprove,
		})

		require.NoError(t, err)
		require.Len(t, versions.saved, 1)
		assert.Equal(t, valueobject.VersionStateApproved, versions.saved[0].State())
		assert.Equal(t, "auto", versions.saved[0].ApprovedBy())
	})

	t.Run("rejects an unsupported model family", func(t *testing.T) {
		jobRepo := &mockTrainingJobRepository{}
		uc := usecase.NewTrainModel(
			jobRepo, &mockVersionRepository{},
			newDatasetBuilder(nil), newWeightTrainer(),
			&mockArtifactStore{}, &mockEventPublisher{}, syncRunner{}, false, observability.NopLogger(),
		)

		_, err := uc.Execute(context.Background(), dto.TrainModelRequest{ModelFamily: "svm"})

		require.ErrorIs(t, err, valueobject.ErrUnsupportedModelFamily)
		assert.Empty(t, jobRepo.saved)
	})

	t.Run("fails the job when too few outcomes exist", func(t *testing.T) {
		jobRepo := &mockTrainingJobRepository{}
		versions := &mockVersionRepository{}
		uc := usecase.NewTrainModel(
			jobRepo, versions,
			newDatasetBuilder(outcomePopulation(t, 5, 5)), newWeightTrainer(),
			&mockArtifactStore{}, &mockEventPublisher{}, syncRunner{}, false, observability.NopLogger(),
		)

		resp, err := uc.Execute(context.Background(), dto.TrainModelRequest{ModelFamily: "logistic"})

		// Submission succeeds; the failure lands on the job record.
		require.NoError(t, err)
		assert.Equal(t, "pending", resp.Status)
		assert.Equal(t, []model.JobStatus{model.JobStatusRunning, model.JobStatusFailed}, jobRepo.statuses)
		job := jobRepo.saved[0]
		assert.Equal(t, model.JobStatusFailed, job.Status())
		assert.Contains(t, job.Error(), "insufficient training data")
		assert.Empty(t, versions.saved)
	})

	t.Run("honors the per-request sample minimum", func(t *testing.T) {
		jobRepo := &mockTrainingJobRepository{}
		uc := usecase.NewTrainModel(
			jobRepo, &mockVersionRepository{},
			newDatasetBuilder(outcomePopulation(t, 30, 30)), newWeightTrainer(),
			&mockArtifactStore{}, &mockEventPublisher{}, syncRunner{}, false, observability.NopLogger(),
		)

		_, err := uc.Execute(context.Background(), dto.TrainModelRequest{
			ModelFamily: "logistic",
			MinSamples:  100,
		})

		require.NoError(t, err)
		job := jobRepo.saved[0]
		assert.Equal(t, model.JobStatusFailed, job.Status())
		assert.Contains(t, job.Error(), "need at least 100")
	})

	t.Run("fails the job when the version cannot be saved", func(t *testing.T) {
		jobRepo := &mockTrainingJobRepository{}
		versions := &mockVersionRepository{
			saveFunc: func(ctx context.Context, v model.WeightVersion) error {
				return fmt.Errorf("registry down")
			},
		}
		uc := usecase.NewTrainModel(
			jobRepo, versions,
			newDatasetBuilder(outcomePopulation(t, 30, 30)), newWeightTrainer(),
			&mockArtifactStore{}, &mockEventPublisher{}, syncRunner{}, false, observability.NopLogger(),
		)

		_, err := uc.Execute(context.Background(), dto.TrainModelRequest{ModelFamily: "logistic"})

		require.NoError(t, err)
		job := jobRepo.saved[0]
		assert.Equal(t, model.JobStatusFailed, job.Status())
		assert.Contains(t, job.Error(), "registry down")
	})

	t.Run("artifact and event failures do not fail the run", func(t *testing.T) {
		jobRepo := &mockTrainingJobRepository{}
		versions := &mockVersionRepository{}
		artifacts := &mockArtifactStore{
			putFunc: func(ctx context.Context, ref string, data []byte) error {
				return fmt.Errorf("bucket unreachable")
			},
		}
		publisher := &mockEventPublisher{
			publishFunc: func(ctx context.Context, evts ...events.DomainEvent) error {
				return fmt.Errorf("broker unreachable")
			},
		}
		uc := usecase.NewTrainModel(
			jobRepo, versions,
			newDatasetBuilder(outcomePopulation(t, 30, 30)), newWeightTrainer(),
			artifacts, publisher, syncRunner{}, false, observability.NopLogger(),
		)

		_, err := uc.Execute(context.Background(), dto.TrainModelRequest{ModelFamily: "logistic"})

		require.NoError(t, err)
		require.Len(t, versions.saved, 1)
		assert.Equal(t, model.JobStatusCompleted, jobRepo.saved[0].Status())
	})

	t.Run("fails fast when the job record cannot be saved", func(t *testing.T) {
		jobRepo := &mockTrainingJobRepository{
			saveFunc: func(ctx context.Context, job *model.TrainingJob) error {
				return fmt.Errorf("jobs table locked")
			},
		}
		uc := usecase.NewTrainModel(
			jobRepo, &mockVersionRepository{},
			newDatasetBuilder(outcomePopulation(t, 30, 30)), newWeightTrainer(),
			&mockArtifactStore{}, &mockEventPublisher{}, syncRunner{}, false, observability.NopLogger(),
		)

		_, err := uc.Execute(context.Background(), dto.TrainModelRequest{ModelFamily: "logistic"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to save training job")
	})
}
