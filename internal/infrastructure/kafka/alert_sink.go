package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/FluentFlier/aegis/internal/domain/port"
	pkgkafka "github.com/FluentFlier/aegis/pkg/kafka"
)

// Compile-time interface check.
var _ port.AlertSink = (*AlertSink)(nil)

// AlertSink implements port.AlertSink over a dedicated Kafka topic, keyed by
// supplier so a consumer can fold alerts per subject.
type AlertSink struct {
	producer *pkgkafka.Producer
	logger   *slog.Logger
	topic    string
}

// NewAlertSink creates a new Kafka-based alert sink.
func NewAlertSink(producer *pkgkafka.Producer, topic string, logger *slog.Logger) *AlertSink {
	return &AlertSink{
		producer: producer,
		topic:    topic,
		logger:   logger,
	}
}

// alertMessage is the wire shape for risk alerts.
type alertMessage struct {
	SubjectID  uuid.UUID    `json:"subject_id"`
	Severity   string       `json:"severity"`
	Message    string       `json:"message"`
	Structured alertDetails `json:"structured_data"`
}

type alertDetails struct {
	AssessmentID   uuid.UUID  `json:"assessment_id"`
	ContractID     *uuid.UUID `json:"contract_id,omitempty"`
	CompositeScore float64    `json:"composite_score"`
	Recommendation string     `json:"recommendation"`
	EmittedAt      time.Time  `json:"emitted_at"`
}

// EmitRiskAlert sends one alert.
func (s *AlertSink) EmitRiskAlert(ctx context.Context, alert port.RiskAlert) error {
	var contractID *uuid.UUID
	if alert.ContractID != uuid.Nil {
		cid := alert.ContractID
		contractID = &cid
	}

	value, err := json.Marshal(alertMessage{
		SubjectID: alert.SupplierID,
		Severity:  alert.Severity.String(),
		Message: fmt.Sprintf("composite risk score %.2f crossed the %s band",
			alert.CompositeScore, alert.Severity),
		Structured: alertDetails{
			AssessmentID:   alert.AssessmentID,
			ContractID:     contractID,
			CompositeScore: alert.CompositeScore,
			Recommendation: alert.Recommendation.String(),
			EmittedAt:      alert.EmittedAt,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to marshal risk alert: %w", err)
	}

	s.logger.DebugContext(ctx, "emitting risk alert",
		"topic", s.topic,
		"supplier_id", alert.SupplierID,
		"severity", alert.Severity.String(),
	)

	msg := pkgkafka.Message{
		Key:   []byte(alert.SupplierID.String()),
		Value: value,
		Headers: map[string]string{
			"severity": alert.Severity.String(),
		},
	}
	if err := s.producer.Publish(ctx, s.topic, msg); err != nil {
		return fmt.Errorf("failed to publish risk alert to topic %s: %w", s.topic, err)
	}

	return nil
}
