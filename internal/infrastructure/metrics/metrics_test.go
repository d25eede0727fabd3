package metrics

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/FluentFlier/aegis/internal/domain/event"
	"github.com/FluentFlier/aegis/internal/domain/port"
	"github.com/FluentFlier/aegis/internal/domain/valueobject"
	"github.com/FluentFlier/aegis/pkg/events"
)

type capturePublisher struct {
	published []events.DomainEvent
	err       error
}

func (c *capturePublisher) Publish(_ context.Context, evts ...events.DomainEvent) error {
	if c.err != nil {
		return c.err
	}
	c.published = append(c.published, evts...)
	return nil
}

type captureSink struct {
	alerts []port.RiskAlert
	err    error
}

func (c *captureSink) EmitRiskAlert(_ context.Context, alert port.RiskAlert) error {
	if c.err != nil {
		return c.err
	}
	c.alerts = append(c.alerts, alert)
	return nil
}

type captureSubmitter struct {
	names []string
}

func (c *captureSubmitter) Submit(name string, fn func(ctx context.Context)) {
	c.names = append(c.names, name)
	fn(context.Background())
}

func newTestRecorder(t *testing.T) (*Recorder, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	rec, err := NewRecorder(provider.Meter("test"))
	require.NoError(t, err)
	return rec, reader
}

func counterTotal(t *testing.T, reader *sdkmetric.ManualReader, name string) int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok, "metric %s is not an int64 sum", name)
			var total int64
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
			return total
		}
	}
	return 0
}

func histogramCount(t *testing.T, reader *sdkmetric.ManualReader, name string) uint64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			hist, ok := m.Data.(metricdata.Histogram[float64])
			require.True(t, ok, "metric %s is not a float64 histogram", name)
			var count uint64
			for _, dp := range hist.DataPoints {
				count += dp.Count
			}
			return count
		}
	}
	return 0
}

func TestPublisherCountsEvents(t *testing.T) {
	rec, reader := newTestRecorder(t)
	next := &capturePublisher{}
	p := rec.Publisher(next)

	completed := event.NewAssessmentCompleted(
		uuid.New(), uuid.New(), uuid.Nil, 85.5, "REPLACE", uuid.Nil, time.Now().UTC(),
	)
	detected := event.NewHighRiskDetected(
		uuid.New(), uuid.New(), uuid.Nil, 85.5, "critical", time.Now().UTC(),
	)

	require.NoError(t, p.Publish(context.Background(), completed, detected))

	assert.Len(t, next.published, 2)
	assert.Equal(t, int64(1), counterTotal(t, reader, "risk_assessments_scored_total"))
	assert.Equal(t, int64(1), counterTotal(t, reader, "risk_high_risk_detected_total"))
	assert.Equal(t, uint64(1), histogramCount(t, reader, "risk_composite_score"))
}

func TestPublisherCountsBrokerFailures(t *testing.T) {
	rec, reader := newTestRecorder(t)
	next := &capturePublisher{err: fmt.Errorf("broker down")}
	p := rec.Publisher(next)

	evt := event.NewVersionActivated(uuid.New(), "v_ml_logistic_20250312_143055", uuid.Nil)
	err := p.Publish(context.Background(), evt)

	require.Error(t, err)
	assert.Equal(t, int64(1), counterTotal(t, reader, "risk_events_publish_failed_total"))
	assert.Equal(t, int64(0), counterTotal(t, reader, "risk_versions_activated_total"))
}

func TestAlertSinkCounters(t *testing.T) {
	t.Run("delivered alerts are counted", func(t *testing.T) {
		rec, reader := newTestRecorder(t)
		next := &captureSink{}
		sink := rec.AlertSink(next)

		err := sink.EmitRiskAlert(context.Background(), port.RiskAlert{
			AssessmentID:   uuid.New(),
			SupplierID:     uuid.New(),
			CompositeScore: 92,
			Severity:       valueobject.AlertSeverityCritical,
			Recommendation: valueobject.RecommendationReplace,
			EmittedAt:      time.Now().UTC(),
		})

		require.NoError(t, err)
		assert.Len(t, next.alerts, 1)
		assert.Equal(t, int64(1), counterTotal(t, reader, "risk_alerts_emitted_total"))
		assert.Equal(t, int64(0), counterTotal(t, reader, "risk_alerts_failed_total"))
	})

	t.Run("delivery failures are counted and propagated", func(t *testing.T) {
		rec, reader := newTestRecorder(t)
		next := &captureSink{err: fmt.Errorf("webhook timeout")}
		sink := rec.AlertSink(next)

		err := sink.EmitRiskAlert(context.Background(), port.RiskAlert{
			AssessmentID: uuid.New(),
			Severity:     valueobject.AlertSeverityWarning,
		})

		require.Error(t, err)
		assert.Equal(t, int64(1), counterTotal(t, reader, "risk_alerts_failed_total"))
	})
}

func TestSubmitterCountsAndPassesThrough(t *testing.T) {
	rec, reader := newTestRecorder(t)
	next := &captureSubmitter{}
	sub := rec.Submitter(next)

	ran := false
	sub.Submit("train logistic", func(_ context.Context) { ran = true })

	assert.True(t, ran)
	assert.Equal(t, []string{"train logistic"}, next.names)
	assert.Equal(t, int64(1), counterTotal(t, reader, "risk_training_jobs_submitted_total"))
}
