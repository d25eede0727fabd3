package usecase_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
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

type mockAssessmentRepository struct {
	saved []*model.Assessment

	saveFunc                func(ctx context.Context, a *model.Assessment) error
	findByIDFunc            func(ctx context.Context, id uuid.UUID) (*model.Assessment, error)
	findBySupplierFunc      func(ctx context.Context, supplierID uuid.UUID, limit, offset int) ([]*model.Assessment, error)
	findBySupplierSinceFunc func(ctx context.Context, supplierID uuid.UUID, since time.Time) ([]*model.Assessment, error)
}

func (m *mockAssessmentRepository) Save(ctx context.Context, a *model.Assessment) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, a)
	}
	m.saved = append(m.saved, a)
	return nil
}

func (m *mockAssessmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Assessment, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, port.ErrAssessmentNotFound
}

func (m *mockAssessmentRepository) FindBySupplier(ctx context.Context, supplierID uuid.UUID, limit, offset int) ([]*model.Assessment, error) {
	if m.findBySupplierFunc != nil {
		return m.findBySupplierFunc(ctx, supplierID, limit, offset)
	}
	return nil, nil
}

func (m *mockAssessmentRepository) FindBySupplierSince(ctx context.Context, supplierID uuid.UUID, since time.Time) ([]*model.Assessment, error) {
	if m.findBySupplierSinceFunc != nil {
		return m.findBySupplierSinceFunc(ctx, supplierID, since)
	}
	return nil, nil
}

// --- Test helpers ---

// registryVersion builds a persisted-looking version with the given weight
// map, as a repository would hand it back.
func registryVersion(t *testing.T, weights map[string]float64) model.WeightVersion {
	t.Helper()
	w, err := valueobject.WeightsFromStrings(weights)
	require.NoError(t, err)
	v, err := model.NewWeightVersion(w, model.Provenance{
		ModelFamily: valueobject.ModelFamilyLogistic,
		SampleCount: 120,
		Accuracy:    0.91,
		ROCAUC:      0.95,
	}, true, time.Now().UTC())
	require.NoError(t, err)
	return v.ClearEvents()
}

// skewedWeights puts 0.3 on financial and 0.1 on everything else.
func skewedWeights() map[string]float64 {
	return map[string]float64{
		"financial":    0.3,
		"legal":        0.1,
		"esg":          0.1,
		"geopolitical": 0.1,
		"operational":  0.1,
		"pricing":      0.1,
		"social":       0.1,
		"performance":  0.1,
	}
}

func uniformScores(level float64) map[string]float64 {
	return map[string]float64{
		"financial":    level,
		"legal":        level,
		"esg":          level,
		"geopolitical": level,
		"operational":  level,
		"pricing":      level,
		"social":       level,
		"performance":  level,
	}
}

func newScoreSupplier(
	assessments *mockAssessmentRepository,
	versions *mockVersionRepository,
	alerts *mockAlertSink,
	publisher *mockEventPublisher,
	cache *usecase.ActiveCache,
) *usecase.ScoreSupplier {
	return usecase.NewScoreSupplier(
		assessments, versions, service.NewCompositeScorer(),
		alerts, publisher, cache, observability.NopLogger(),
	)
}

func TestScoreSupplier_Execute(t *testing.T) {
	t.Run("scores with the active version", func(t *testing.T) {
		version := registryVersion(t, skewedWeights())
		assessments := &mockAssessmentRepository{}
		versions := &mockVersionRepository{
			findActiveFunc: func(ctx context.Context) (model.WeightVersion, error) {
				return version, nil
			},
		}
		alerts := &mockAlertSink{}
		publisher := &mockEventPublisher{}
		uc := newScoreSupplier(assessments, versions, alerts, publisher, usecase.NewActiveCache())

		scores := uniformScores(50)
		scores["financial"] = 80

		resp, err := uc.Execute(context.Background(), dto.ScoreRequest{
			SupplierID: uuid.New(),
			ContractID: uuid.New(),
			Scores:     scores,
		})

		require.NoError(t, err)
		// 0.3*80 + 0.1*(7*50)
		assert.Equal(t, 59.00, resp.Composite)
		assert.Equal(t, "NEGOTIATE", resp.Recommendation)
		assert.Equal(t, version.ID(), resp.VersionID)
		assert.Equal(t, version.VersionTag(), resp.VersionTag)
		assert.Empty(t, resp.AlertSeverity)
		assert.Equal(t, 24.00, resp.Contributions["financial"])
		assert.Equal(t, 5.00, resp.Contributions["legal"])

		require.Len(t, assessments.saved, 1)
		assert.Equal(t, resp.AssessmentID, assessments.saved[0].ID())
		assert.Empty(t, alerts.alerts)
		require.Len(t, publisher.published, 1)
		assert.Equal(t, event.EventTypeAssessmentCompleted, publisher.published[0].EventType())
	})

	t.Run("reuses the cached version on subsequent calls", func(t *testing.T) {
		version := registryVersion(t, skewedWeights())
		versions := &mockVersionRepository{
			findActiveFunc: func(ctx context.Context) (model.WeightVersion, error) {
				return version, nil
			},
		}
		uc := newScoreSupplier(&mockAssessmentRepository{}, versions, &mockAlertSink{}, &mockEventPublisher{}, usecase.NewActiveCache())

		req := dto.ScoreRequest{SupplierID: uuid.New(), Scores: uniformScores(50)}
		_, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)
		_, err = uc.Execute(context.Background(), req)
		require.NoError(t, err)

		assert.Equal(t, 1, versions.findActiveCalls)
	})

	t.Run("raises a critical alert at the top band", func(t *testing.T) {
		version := registryVersion(t, skewedWeights())
		assessments := &mockAssessmentRepository{}
		versions := &mockVersionRepository{
			findActiveFunc: func(ctx context.Context) (model.WeightVersion, error) {
				return version, nil
			},
		}
		alerts := &mockAlertSink{}
		publisher := &mockEventPublisher{}
		uc := newScoreSupplier(assessments, versions, alerts, publisher, usecase.NewActiveCache())

		resp, err := uc.Execute(context.Background(), dto.ScoreRequest{
			SupplierID: uuid.New(),
			ContractID: uuid.New(),
			Scores:     uniformScores(90),
		})

		require.NoError(t, err)
		assert.Equal(t, 90.00, resp.Composite)
		assert.Equal(t, "REPLACE", resp.Recommendation)
		assert.Equal(t, "critical", resp.AlertSeverity)

		require.Len(t, alerts.alerts, 1)
		alert := alerts.alerts[0]
		assert.Equal(t, resp.AssessmentID, alert.AssessmentID)
		assert.Equal(t, 90.00, alert.CompositeScore)
		assert.Equal(t, valueobject.AlertSeverityCritical, alert.Severity)
		assert.Equal(t, valueobject.RecommendationReplace, alert.Recommendation)

		require.Len(t, publisher.published, 2)
		assert.Equal(t, event.EventTypeAssessmentCompleted, publisher.published[0].EventType())
		assert.Equal(t, event.EventTypeHighRiskDetected, publisher.published[1].EventType())
	})

	t.Run("alert delivery failure does not fail the assessment", func(t *testing.T) {
		version := registryVersion(t, skewedWeights())
		assessments := &mockAssessmentRepository{}
		versions := &mockVersionRepository{
			findActiveFunc: func(ctx context.Context) (model.WeightVersion, error) {
				return version, nil
			},
		}
		alerts := &mockAlertSink{
			emitFunc: func(ctx context.Context, alert port.RiskAlert) error {
				return fmt.Errorf("webhook timeout")
			},
		}
		uc := newScoreSupplier(assessments, versions, alerts, &mockEventPublisher{}, usecase.NewActiveCache())

		resp, err := uc.Execute(context.Background(), dto.ScoreRequest{
			SupplierID: uuid.New(),
			Scores:     uniformScores(90),
		})

		require.NoError(t, err)
		assert.Equal(t, "critical", resp.AlertSeverity)
		assert.Len(t, assessments.saved, 1)
	})

	t.Run("falls back to equal weights when nothing is active", func(t *testing.T) {
		versions := &mockVersionRepository{}
		uc := newScoreSupplier(&mockAssessmentRepository{}, versions, &mockAlertSink{}, &mockEventPublisher{}, usecase.NewActiveCache())

		resp, err := uc.Execute(context.Background(), dto.ScoreRequest{
			SupplierID: uuid.New(),
			Scores:     uniformScores(80),
		})

		require.NoError(t, err)
		assert.Equal(t, 80.00, resp.Composite)
		assert.Equal(t, uuid.Nil, resp.VersionID)
		assert.Equal(t, model.BootstrapVersionTag, resp.VersionTag)
		assert.Equal(t, "critical", resp.AlertSeverity)
		assert.Equal(t, 10.00, resp.Contributions["financial"])
	})

	t.Run("per-request weights override the registry", func(t *testing.T) {
		versions := &mockVersionRepository{}
		uc := newScoreSupplier(&mockAssessmentRepository{}, versions, &mockAlertSink{}, &mockEventPublisher{}, usecase.NewActiveCache())

		scores := uniformScores(90)
		scores["financial"] = 35
		weights := uniformScores(0)
		weights["financial"] = 1

		resp, err := uc.Execute(context.Background(), dto.ScoreRequest{
			SupplierID: uuid.New(),
			Scores:     scores,
			Weights:    weights,
		})

		require.NoError(t, err)
		assert.Equal(t, 35.00, resp.Composite)
		assert.Equal(t, "PROCEED", resp.Recommendation)
		assert.Equal(t, uuid.Nil, resp.VersionID)
		assert.Equal(t, model.ManualWeightsTag, resp.VersionTag)
		assert.Zero(t, versions.findActiveCalls)
	})

	t.Run("rejects an unknown score category", func(t *testing.T) {
		uc := newScoreSupplier(&mockAssessmentRepository{}, &mockVersionRepository{}, &mockAlertSink{}, &mockEventPublisher{}, usecase.NewActiveCache())

		_, err := uc.Execute(context.Background(), dto.ScoreRequest{
			SupplierID: uuid.New(),
			Scores:     map[string]float64{"bogus": 50},
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid category scores")
	})

	t.Run("rejects a weight override that does not sum to one", func(t *testing.T) {
		uc := newScoreSupplier(&mockAssessmentRepository{}, &mockVersionRepository{}, &mockAlertSink{}, &mockEventPublisher{}, usecase.NewActiveCache())

		weights := uniformScores(0)
		weights["financial"] = 0.5

		_, err := uc.Execute(context.Background(), dto.ScoreRequest{
			SupplierID: uuid.New(),
			Scores:     uniformScores(50),
			Weights:    weights,
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid weight override")
	})

	t.Run("fails when the assessment cannot be saved", func(t *testing.T) {
		assessments := &mockAssessmentRepository{
			saveFunc: func(ctx context.Context, a *model.Assessment) error {
				return fmt.Errorf("history table unreachable")
			},
		}
		uc := newScoreSupplier(assessments, &mockVersionRepository{}, &mockAlertSink{}, &mockEventPublisher{}, usecase.NewActiveCache())

		_, err := uc.Execute(context.Background(), dto.ScoreRequest{
			SupplierID: uuid.New(),
			Scores:     uniformScores(50),
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to save assessment")
	})

	t.Run("fails when events cannot be published", func(t *testing.T) {
		publisher := &mockEventPublisher{
			publishFunc: func(ctx context.Context, evts ...events.DomainEvent) error {
				return fmt.Errorf("broker unreachable")
			},
		}
		uc := newScoreSupplier(&mockAssessmentRepository{}, &mockVersionRepository{}, &mockAlertSink{}, publisher, usecase.NewActiveCache())

		_, err := uc.Execute(context.Background(), dto.ScoreRequest{
			SupplierID: uuid.New(),
			Scores:     uniformScores(50),
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to publish events")
	})
}
