package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/segmentio/kafka-go"
)

// Producer publishes JSON payloads to Kafka.
type Producer struct {
	writer *kafka.Writer
	comp   string

	closeOnce sync.Once
	closeErr  error
}

// Message is one record to publish. Values that are not []byte or string are
// JSON encoded.
type Message struct {
	Key     []byte
	Value   interface{}
	Headers map[string]string
}

func NewProducer(opts ...ProducerOption) (*Producer, error) {
	cfg := defaultProducerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	initProducerMetricsOnce()
	return &Producer{writer: cfg.writer(), comp: cfg.Compression}, nil
}

// Publish sends a single keyed message.
func (p *Producer) Publish(ctx context.Context, topic string, key []byte, value interface{}) error {
	return p.PublishBatch(ctx, topic, []Message{{Key: key, Value: value}})
}

// PublishMessage sends an unkeyed payload. It lets the producer act as the
// sink of the error log collector.
func (p *Producer) PublishMessage(ctx context.Context, topic string, payload interface{}) error {
	return p.Publish(ctx, topic, nil, payload)
}

// PublishBatch encodes every message first and writes them in one call, so an
// encoding error publishes nothing.
func (p *Producer) PublishBatch(ctx context.Context, topic string, messages []Message) error {
	if len(messages) == 0 {
		return nil
	}

	start := time.Now()
	now := start.UTC()
	out := make([]kafka.Message, len(messages))
	var size int64
	for i, m := range messages {
		v, err := encodeValue(m.Value)
		if err != nil {
			return err
		}
		out[i] = kafka.Message{
			Topic:   topic,
			Key:     m.Key,
			Value:   v,
			Headers: toHeaders(m.Headers),
			Time:    now,
		}
		size += int64(len(v))
	}

	err := p.writer.WriteMessages(ctx, out...)
	observeProducerMetrics(topic, p.comp, size, len(out), time.Since(start), err)
	if err != nil {
		return fmt.Errorf("kafka write %s: %w", topic, err)
	}
	return nil
}

// Close flushes and closes the writer. Later calls return the first result.
func (p *Producer) Close() error {
	p.closeOnce.Do(func() {
		if p.writer != nil {
			p.closeErr = p.writer.Close()
		}
	})
	return p.closeErr
}

func encodeValue(value interface{}) ([]byte, error) {
	switch val := value.(type) {
	case []byte:
		return val, nil
	case string:
		return []byte(val), nil
	default:
		b, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("marshal value: %w", err)
		}
		return b, nil
	}
}

func toHeaders(h map[string]string) []kafka.Header {
	if len(h) == 0 {
		return nil
	}
	out := make([]kafka.Header, 0, len(h))
	for k, v := range h {
		out = append(out, kafka.Header{Key: k, Value: []byte(v)})
	}
	return out
}

var (
	producerMsgsTotal   *prometheus.CounterVec
	producerBytesTotal  *prometheus.CounterVec
	producerLatencyHist *prometheus.HistogramVec
	producerOnce        sync.Once
)

func initProducerMetricsOnce() {
	producerOnce.Do(func() {
		producerMsgsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "coinsignals",
			Subsystem: "kafka",
			Name:      "messages_total",
			Help:      "Messages published to Kafka by result",
		}, []string{"topic", "compression", "result"})
		producerBytesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "coinsignals",
			Subsystem: "kafka",
			Name:      "bytes_total",
			Help:      "Payload bytes handed to the Kafka writer",
		}, []string{"topic", "compression"})
		producerLatencyHist = promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "coinsignals",
			Subsystem: "kafka",
			Name:      "publish_seconds",
			Help:      "Latency of one publish call",
			Buckets:   prometheus.DefBuckets,
		}, []string{"topic"})
	})
}

func observeProducerMetrics(topic, comp string, bytes int64, count int, dur time.Duration, err error) {
	if producerMsgsTotal == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	producerMsgsTotal.WithLabelValues(topic, comp, result).Add(float64(count))
	producerBytesTotal.WithLabelValues(topic, comp).Add(float64(bytes))
	producerLatencyHist.WithLabelValues(topic).Observe(dur.Seconds())
}
