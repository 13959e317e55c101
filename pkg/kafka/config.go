package kafka

import (
	"errors"
	"time"

	"github.com/segmentio/kafka-go"
)

// ProducerOption configures Producer.
type ProducerOption func(*ProducerConfig)

// ProducerConfig holds producer configuration.
type ProducerConfig struct {
	Brokers      []string
	ClientID     string
	RequiredAcks int
	Compression  string
	MaxAttempts  int
	WriteTimeout time.Duration
	ReadTimeout  time.Duration
	BatchSize    int
	BatchBytes   int
	BatchTimeout time.Duration
	Async        bool
	HashByKey    bool
	AutoCreate   bool
}

func defaultProducerConfig() ProducerConfig {
	return ProducerConfig{
		ClientID:     "coinsignals",
		RequiredAcks: -1,
		Compression:  "gzip",
		MaxAttempts:  3,
		WriteTimeout: 10 * time.Second,
		ReadTimeout:  10 * time.Second,
		BatchSize:    100,
		BatchBytes:   1 << 20,
		BatchTimeout: time.Second,
	}
}

func (c ProducerConfig) validate() error {
	if len(c.Brokers) == 0 {
		return errors.New("kafka: brokers are required")
	}
	if c.RequiredAcks < -1 || c.RequiredAcks > 1 {
		return errors.New("kafka: required acks must be -1, 0 or 1")
	}
	return nil
}

// writer builds the segmentio writer. Signals are keyed by coin id, so the hash
// balancer keeps each coin on one partition.
func (c ProducerConfig) writer() *kafka.Writer {
	var bal kafka.Balancer = &kafka.LeastBytes{}
	if c.HashByKey {
		bal = &kafka.Hash{}
	}
	return &kafka.Writer{
		Addr:                   kafka.TCP(c.Brokers...),
		Balancer:               bal,
		RequiredAcks:           kafka.RequiredAcks(c.RequiredAcks),
		Compression:            parseCompression(c.Compression),
		MaxAttempts:            c.MaxAttempts,
		WriteTimeout:           c.WriteTimeout,
		ReadTimeout:            c.ReadTimeout,
		BatchSize:              c.BatchSize,
		BatchBytes:             int64(c.BatchBytes),
		BatchTimeout:           c.BatchTimeout,
		Async:                  c.Async,
		AllowAutoTopicCreation: c.AutoCreate,
		Transport:              &kafka.Transport{ClientID: c.ClientID},
	}
}

func parseCompression(s string) kafka.Compression {
	switch s {
	case "snappy":
		return kafka.Snappy
	case "lz4":
		return kafka.Lz4
	case "zstd":
		return kafka.Zstd
	default:
		return kafka.Gzip
	}
}

func WithBrokers(brokers []string) ProducerOption {
	return func(c *ProducerConfig) { c.Brokers = brokers }
}

// WithClientID names this service in broker logs and quotas.
func WithClientID(id string) ProducerOption {
	return func(c *ProducerConfig) { c.ClientID = id }
}

// WithCompression accepts gzip, snappy, lz4 or zstd; anything else means gzip.
func WithCompression(compression string) ProducerOption {
	return func(c *ProducerConfig) { c.Compression = compression }
}

// WithRequiredAcks sets required acknowledgements (-1 = all).
func WithRequiredAcks(acks int) ProducerOption {
	return func(c *ProducerConfig) { c.RequiredAcks = acks }
}

func WithMaxAttempts(n int) ProducerOption {
	return func(c *ProducerConfig) { c.MaxAttempts = n }
}

func WithBatchSize(size int) ProducerOption {
	return func(c *ProducerConfig) { c.BatchSize = size }
}

func WithBatchTimeout(timeout time.Duration) ProducerOption {
	return func(c *ProducerConfig) { c.BatchTimeout = timeout }
}

func WithBatchBytes(bytes int) ProducerOption {
	return func(c *ProducerConfig) { c.BatchBytes = bytes }
}

func WithTimeouts(write, read time.Duration) ProducerOption {
	return func(c *ProducerConfig) {
		c.WriteTimeout = write
		c.ReadTimeout = read
	}
}

// WithAsync makes writes fire-and-forget; errors are then only visible in metrics.
func WithAsync(async bool) ProducerOption {
	return func(c *ProducerConfig) { c.Async = async }
}

// WithAutoCreateTopic lets the broker create missing topics on first write.
func WithAutoCreateTopic(enabled bool) ProducerOption {
	return func(c *ProducerConfig) { c.AutoCreate = enabled }
}

// WithHashByKey routes messages with the same key to the same partition.
func WithHashByKey(hash bool) ProducerOption {
	return func(c *ProducerConfig) { c.HashByKey = hash }
}
