package kafka

import (
	"testing"
	"time"
)

func TestNewProducer(t *testing.T) {
	cfg := Config{
		Brokers: []string{"localhost:9092", "localhost:9093"},
	}

	p := NewProducer(cfg)
	if p == nil {
		t.Fatal("expected non-nil producer")
	}
	if len(p.brokers) != 2 {
		t.Fatalf("expected 2 brokers, got %d", len(p.brokers))
	}
	if p.brokers[0] != "localhost:9092" {
		t.Errorf("expected broker localhost:9092, got %s", p.brokers[0])
	}
	if p.writers == nil {
		t.Fatal("expected writers map to be initialized")
	}
	if len(p.writers) != 0 {
		t.Errorf("expected empty writers map, got %d entries", len(p.writers))
	}
	if p.batchTimeout != 10*time.Millisecond {
		t.Errorf("expected default batch timeout 10ms, got %v", p.batchTimeout)
	}
}

func TestNewProducerCustomBatchTimeout(t *testing.T) {
	cfg := Config{
		Brokers:      []string{"kafka:9092"},
		BatchTimeout: 250 * time.Millisecond,
	}

	p := NewProducer(cfg)
	if p.batchTimeout != 250*time.Millisecond {
		t.Errorf("expected batch timeout 250ms, got %v", p.batchTimeout)
	}
}

func TestMessageConstruction(t *testing.T) {
	msg := Message{
		Key:   []byte("supplier-123"),
		Value: []byte(`{"severity":"critical"}`),
		Headers: map[string]string{
			"content-type": "application/json",
			"event_type":   "risk.high_risk.detected",
		},
	}

	if string(msg.Key) != "supplier-123" {
		t.Errorf("expected key supplier-123, got %s", string(msg.Key))
	}
	if string(msg.Value) != `{"severity":"critical"}` {
		t.Errorf("unexpected value: %s", string(msg.Value))
	}
	if len(msg.Headers) != 2 {
		t.Fatalf("expected 2 headers, got %d", len(msg.Headers))
	}
	if msg.Headers["event_type"] != "risk.high_risk.detected" {
		t.Errorf("unexpected event_type header: %s", msg.Headers["event_type"])
	}
}

func TestGetOrCreateWriter(t *testing.T) {
	cfg := Config{
		Brokers: []string{"localhost:9092"},
	}
	p := NewProducer(cfg)

	w1 := p.getOrCreateWriter("risk.alerts")
	if w1 == nil {
		t.Fatal("expected non-nil writer")
	}

	// Same topic should return the same writer instance.
	w2 := p.getOrCreateWriter("risk.alerts")
	if w1 != w2 {
		t.Error("expected same writer instance for same topic")
	}

	// Different topic should return a different writer.
	w3 := p.getOrCreateWriter("risk.events")
	if w3 == nil {
		t.Fatal("expected non-nil writer for risk.events")
	}
	if w1 == w3 {
		t.Error("expected different writer instance for different topic")
	}

	if len(p.writers) != 2 {
		t.Errorf("expected 2 writers, got %d", len(p.writers))
	}
}

func TestProducerClose(t *testing.T) {
	cfg := Config{
		Brokers: []string{"localhost:9092"},
	}
	p := NewProducer(cfg)

	_ = p.getOrCreateWriter("risk.alerts")
	_ = p.getOrCreateWriter("risk.events")

	if len(p.writers) != 2 {
		t.Fatalf("expected 2 writers before close, got %d", len(p.writers))
	}

	err := p.Close()
	if err != nil {
		t.Fatalf("unexpected error on close: %v", err)
	}

	if len(p.writers) != 0 {
		t.Errorf("expected 0 writers after close, got %d", len(p.writers))
	}
}
