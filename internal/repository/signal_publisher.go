package repository

import (
	"context"
	"time"

	"CoinSignals/internal/domain/models"
	"CoinSignals/internal/domain/repository"
	"CoinSignals/internal/view"
	pkgkafka "CoinSignals/pkg/kafka"
)

// BatchProducer is the subset of the Kafka producer used for signals.
type BatchProducer interface {
	PublishBatch(ctx context.Context, topic string, messages []pkgkafka.Message) error
	Close() error
}

// KafkaSignalPublisher implements SignalPublisher for Kafka.
// Each signal is one message keyed by coin id, with its type in the
// "signal-type" header so consumers can filter without decoding.
type KafkaSignalPublisher struct {
	producer BatchProducer
	topic    string
}

// NewKafkaSignalPublisher creates Kafka publisher.
func NewKafkaSignalPublisher(producer BatchProducer, topic string) repository.SignalPublisher {
	return &KafkaSignalPublisher{producer: producer, topic: topic}
}

type signalEnvelope struct {
	GeneratedAt time.Time      `json:"generatedAt"`
	Rank        int            `json:"rank"`
	Signal      view.SignalDTO `json:"signal"`
}

func (p *KafkaSignalPublisher) PublishSignals(ctx context.Context, batch models.SignalBatch) error {
	if len(batch.Signals) == 0 {
		return nil
	}
	msgs := make([]pkgkafka.Message, len(batch.Signals))
	for i, s := range batch.Signals {
		msgs[i] = pkgkafka.Message{
			Key:     []byte(s.ID),
			Headers: map[string]string{"signal-type": string(s.Type)},
			Value: signalEnvelope{
				GeneratedAt: batch.Timestamp,
				Rank:        i + 1,
				Signal:      view.Signal(s),
			},
		}
	}
	return p.producer.PublishBatch(ctx, p.topic, msgs)
}

func (p *KafkaSignalPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}

// NoopSignalPublisher drops everything; used when Kafka is disabled.
type NoopSignalPublisher struct{}

func (NoopSignalPublisher) PublishSignals(context.Context, models.SignalBatch) error { return nil }
func (NoopSignalPublisher) Close() error                                             { return nil }
