package logger

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"os"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Publisher ships a flushed batch; *kafka.Producer satisfies it.
type Publisher interface {
	PublishMessage(ctx context.Context, topic string, payload interface{}) error
}

type CollectionConfig struct {
	TimeInterval   time.Duration // flush period
	CountThreshold int           // unique entries that force an early flush
	MinLevel       string        // warn or error; defaults to error
	Topic          string
	Source         string // stamped on every batch
	Publisher      Publisher
}

// AggregatedLogEntry is one distinct log line and how often it fired.
type AggregatedLogEntry struct {
	Level     string                 `json:"level"`
	Message   string                 `json:"message"`
	Fields    map[string]interface{} `json:"fields,omitempty"`
	Caller    string                 `json:"caller"`
	Count     int                    `json:"count"`
	FirstSeen time.Time              `json:"first_seen"`
	LastSeen  time.Time              `json:"last_seen"`
}

// LogBatch is the payload published on each flush. Entries are ordered by
// Count, most frequent first.
type LogBatch struct {
	Source    string               `json:"source,omitempty"`
	FlushedAt time.Time            `json:"flushed_at"`
	Entries   []AggregatedLogEntry `json:"entries"`
}

// LogCollector deduplicates log lines at or above MinLevel and publishes them
// in batches. Batches are sent by one worker so flush order is preserved.
type LogCollector struct {
	cfg      CollectionConfig
	minLevel zerolog.Level

	mu      sync.Mutex
	entries map[uint64]*AggregatedLogEntry
	done    bool

	out    chan LogBatch
	stop   chan struct{}
	closed sync.Once
	wg     sync.WaitGroup
}

func NewLogCollector(config *CollectionConfig) *LogCollector {
	cfg := *config
	if cfg.TimeInterval <= 0 {
		cfg.TimeInterval = 30 * time.Second
	}
	if cfg.CountThreshold <= 0 {
		cfg.CountThreshold = 100
	}
	lvl, err := zerolog.ParseLevel(cfg.MinLevel)
	if err != nil || cfg.MinLevel == "" {
		lvl = zerolog.ErrorLevel
	}

	c := &LogCollector{
		cfg:      cfg,
		minLevel: lvl,
		entries:  make(map[uint64]*AggregatedLogEntry),
		out:      make(chan LogBatch, 4),
		stop:     make(chan struct{}),
	}
	c.wg.Add(2)
	go c.tick()
	go c.send()
	return c
}

// Accepts reports whether lines at level are collected.
func (c *LogCollector) Accepts(level zerolog.Level) bool {
	return level >= c.minLevel
}

func (c *LogCollector) AddLog(level, message string, fields map[string]interface{}, caller string) {
	now := time.Now().UTC()
	key := entryKey(level, message, fields, caller)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.done {
		return
	}
	if e, ok := c.entries[key]; ok {
		e.Count++
		e.LastSeen = now
	} else {
		c.entries[key] = &AggregatedLogEntry{
			Level:     level,
			Message:   message,
			Fields:    fields,
			Caller:    caller,
			Count:     1,
			FirstSeen: now,
			LastSeen:  now,
		}
	}
	if len(c.entries) >= c.cfg.CountThreshold {
		c.flushLocked()
	}
}

func entryKey(level, message string, fields map[string]interface{}, caller string) uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s\x00%s\x00%s\x00", level, message, caller)
	// encoding/json sorts map keys, so equal field sets hash equally.
	_ = json.NewEncoder(h).Encode(fields)
	return h.Sum64()
}

func (c *LogCollector) flushLocked() {
	if len(c.entries) == 0 {
		return
	}
	batch := LogBatch{
		Source:    c.cfg.Source,
		FlushedAt: time.Now().UTC(),
		Entries:   make([]AggregatedLogEntry, 0, len(c.entries)),
	}
	for _, e := range c.entries {
		batch.Entries = append(batch.Entries, *e)
	}
	slices.SortFunc(batch.Entries, func(a, b AggregatedLogEntry) int { return b.Count - a.Count })
	c.entries = make(map[uint64]*AggregatedLogEntry)

	select {
	case c.out <- batch:
	default:
		fmt.Fprintf(os.Stderr, "log collector: dropping batch of %d entries\n", len(batch.Entries))
	}
}

func (c *LogCollector) tick() {
	defer c.wg.Done()
	t := time.NewTicker(c.cfg.TimeInterval)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			c.mu.Lock()
			c.flushLocked()
			c.mu.Unlock()
		case <-c.stop:
			c.mu.Lock()
			c.flushLocked()
			c.done = true
			c.mu.Unlock()
			close(c.out)
			return
		}
	}
}

func (c *LogCollector) send() {
	defer c.wg.Done()
	for batch := range c.out {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := c.cfg.Publisher.PublishMessage(ctx, c.cfg.Topic, batch); err != nil {
			fmt.Fprintf(os.Stderr, "log collector: publish: %v\n", err)
		}
		cancel()
	}
}

// Close flushes what is pending and waits for it to be published.
func (c *LogCollector) Close() {
	c.closed.Do(func() { close(c.stop) })
	c.wg.Wait()
}
