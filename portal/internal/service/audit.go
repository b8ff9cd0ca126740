package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/IBM/sarama"
	"go.uber.org/zap"

	cb "github.com/anever/school-portal/pkg/circuit_breaker"
)

// AuditEvent is the record emitted after every successful mutating
// circulation or admission operation.
type AuditEvent struct {
	Kind     string    `json:"kind"`
	HolderID string    `json:"holderId"`
	EntityID string    `json:"entityId"`
	At       time.Time `json:"at"`
}

// Auditor receives audit events. Emit must never fail the calling operation;
// the state change is already committed when it runs.
type Auditor interface {
	Emit(ctx context.Context, event AuditEvent)
}

type NopAuditor struct{}

func (NopAuditor) Emit(context.Context, AuditEvent) {}

// KafkaAuditor publishes audit events to a topic through a circuit breaker,
// so a dead broker degrades to dropped audit records instead of slow
// requests.
type KafkaAuditor struct {
	producer sarama.SyncProducer
	breaker  cb.CircuitBreaker
	topic    string
	log      *zap.Logger
}

func NewKafkaAuditor(producer sarama.SyncProducer, topic string, log *zap.Logger) *KafkaAuditor {
	return &KafkaAuditor{
		producer: producer,
		breaker:  cb.New(20, 30*time.Second, 0.5, 3),
		topic:    topic,
		log:      log.Named("audit"),
	}
}

func (a *KafkaAuditor) Emit(_ context.Context, event AuditEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		a.log.Error("marshal audit event", zap.Error(err))
		return
	}
	err = a.breaker.Call(func() error {
		msg := &sarama.ProducerMessage{Topic: a.topic, Value: sarama.StringEncoder(data)}
		_, _, err := a.producer.SendMessage(msg)
		return err
	})
	if err != nil {
		a.log.Warn("audit event dropped",
			zap.String("kind", event.Kind),
			zap.Error(err))
	}
}
