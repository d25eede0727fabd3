// Package metrics instruments the service ports with OpenTelemetry
// instruments, exported through the Prometheus /metrics endpoint. Counting
// rides on the domain event stream and the alert sink, so use cases stay
// free of metric plumbing.
package metrics

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/FluentFlier/aegis/internal/domain/event"
	"github.com/FluentFlier/aegis/internal/domain/port"
	"github.com/FluentFlier/aegis/pkg/events"
)

// Submitter matches the training runner's submission surface so it can be
// instrumented without importing the application layer.
type Submitter interface {
	Submit(name string, fn func(ctx context.Context))
}

// Recorder holds the service metric instruments.
type Recorder struct {
	jobsSubmitted     metric.Int64Counter
	modelsTrained     metric.Int64Counter
	versionsActivated metric.Int64Counter
	assessments       metric.Int64Counter
	highRisk          metric.Int64Counter
	alertsEmitted     metric.Int64Counter
	alertsFailed      metric.Int64Counter
	publishFailed     metric.Int64Counter
	composite         metric.Float64Histogram
}

// NewRecorder registers the service instruments on the meter.
func NewRecorder(meter metric.Meter) (*Recorder, error) {
	var (
		r   Recorder
		err error
	)

	if r.jobsSubmitted, err = meter.Int64Counter("risk_training_jobs_submitted_total",
		metric.WithDescription("Training jobs handed to the background runner")); err != nil {
		return nil, err
	}
	if r.modelsTrained, err = meter.Int64Counter("risk_models_trained_total",
		metric.WithDescription("Training runs that produced a candidate weight version")); err != nil {
		return nil, err
	}
	if r.versionsActivated, err = meter.Int64Counter("risk_versions_activated_total",
		metric.WithDescription("Weight version activations, rollbacks included")); err != nil {
		return nil, err
	}
	if r.assessments, err = meter.Int64Counter("risk_assessments_scored_total",
		metric.WithDescription("Supplier assessments scored and persisted")); err != nil {
		return nil, err
	}
	if r.highRisk, err = meter.Int64Counter("risk_high_risk_detected_total",
		metric.WithDescription("Assessments that crossed an alert band")); err != nil {
		return nil, err
	}
	if r.alertsEmitted, err = meter.Int64Counter("risk_alerts_emitted_total",
		metric.WithDescription("Risk alerts delivered to the alert sink")); err != nil {
		return nil, err
	}
	if r.alertsFailed, err = meter.Int64Counter("risk_alerts_failed_total",
		metric.WithDescription("Risk alerts the sink failed to deliver")); err != nil {
		return nil, err
	}
	if r.publishFailed, err = meter.Int64Counter("risk_events_publish_failed_total",
		metric.WithDescription("Domain events the broker rejected")); err != nil {
		return nil, err
	}
	if r.composite, err = meter.Float64Histogram("risk_composite_score",
		metric.WithDescription("Distribution of weighted composite scores"),
		metric.WithExplicitBucketBoundaries(10, 20, 30, 40, 50, 60, 70, 80, 90)); err != nil {
		return nil, err
	}

	return &r, nil
}

// Publisher wraps an event publisher so successfully published domain events
// feed the service counters.
func (r *Recorder) Publisher(next port.EventPublisher) port.EventPublisher {
	return &instrumentedPublisher{next: next, rec: r}
}

// AlertSink wraps an alert sink with delivery counters.
func (r *Recorder) AlertSink(next port.AlertSink) port.AlertSink {
	return &instrumentedAlertSink{next: next, rec: r}
}

// Submitter wraps the training runner with a submission counter.
func (r *Recorder) Submitter(next Submitter) Submitter {
	return &instrumentedSubmitter{next: next, rec: r}
}

type instrumentedPublisher struct {
	next port.EventPublisher
	rec  *Recorder
}

func (p *instrumentedPublisher) Publish(ctx context.Context, evts ...events.DomainEvent) error {
	if err := p.next.Publish(ctx, evts...); err != nil {
		p.rec.publishFailed.Add(ctx, int64(len(evts)))
		return err
	}

	for _, raw := range evts {
		switch e := raw.(type) {
		case event.ModelTrained:
			p.rec.modelsTrained.Add(ctx, 1,
				metric.WithAttributes(attribute.String("model_family", e.ModelFamily)))
		case event.VersionActivated:
			p.rec.versionsActivated.Add(ctx, 1)
		case event.AssessmentCompleted:
			p.rec.assessments.Add(ctx, 1,
				metric.WithAttributes(attribute.String("recommendation", e.Recommendation)))
			p.rec.composite.Record(ctx, e.CompositeScore)
		case event.HighRiskDetected:
			p.rec.highRisk.Add(ctx, 1,
				metric.WithAttributes(attribute.String("severity", e.Severity)))
		}
	}
	return nil
}

type instrumentedAlertSink struct {
	next port.AlertSink
	rec  *Recorder
}

func (s *instrumentedAlertSink) EmitRiskAlert(ctx context.Context, alert port.RiskAlert) error {
	if err := s.next.EmitRiskAlert(ctx, alert); err != nil {
		s.rec.alertsFailed.Add(ctx, 1)
		return err
	}
	s.rec.alertsEmitted.Add(ctx, 1,
		metric.WithAttributes(attribute.String("severity", alert.Severity.String())))
	return nil
}

type instrumentedSubmitter struct {
	next Submitter
	rec  *Recorder
}

func (s *instrumentedSubmitter) Submit(name string, fn func(ctx context.Context)) {
	s.rec.jobsSubmitted.Add(context.Background(), 1)
	s.next.Submit(name, fn)
}
