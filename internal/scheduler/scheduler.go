package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"CoinSignals/internal/domain/models"
	domrepo "CoinSignals/internal/domain/repository"
	xlogger "CoinSignals/pkg/logger"
)

// SignalSource produces the current signal batch.
type SignalSource interface {
	GetSignals(ctx context.Context) models.SignalBatch
}

// Broadcaster pushes a batch to live subscribers.
type Broadcaster interface {
	Broadcast(batch models.SignalBatch) error
}

// Scheduler refreshes signals on a cron spec and fans each batch out to the
// socket hub and the signal publisher.
type Scheduler struct {
	cron      *cron.Cron
	source    SignalSource
	hub       Broadcaster
	publisher domrepo.SignalPublisher
	logger    *xlogger.Logger
	timeout   time.Duration

	mu      sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	lastRun time.Time
}

func New(source SignalSource, hub Broadcaster, publisher domrepo.SignalPublisher, l *xlogger.Logger) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron:      cron.New(cron.WithSeconds()),
		source:    source,
		hub:       hub,
		publisher: publisher,
		logger:    l,
		timeout:   time.Minute,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Register adds the refresh job. spec uses the six-field (seconds) format.
func (s *Scheduler) Register(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.refresh); err != nil {
		return fmt.Errorf("register refresh job: %w", err)
	}
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started", xlogger.Int("jobs", len(s.cron.Entries())))
}

// Stop waits for a running refresh to finish, then cancels future ones.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.cancel()
	s.logger.Info("scheduler stopped")
}

// RunNow executes one refresh synchronously.
func (s *Scheduler) RunNow() {
	s.refresh()
}

// LastRun reports when the last refresh finished.
func (s *Scheduler) LastRun() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRun
}

func (s *Scheduler) refresh() {
	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()

	batch := s.source.GetSignals(ctx)
	if batch.Degraded {
		s.logger.Warn("refresh produced a degraded batch", xlogger.Any("errors", batch.Errors))
	}

	if s.hub != nil {
		if err := s.hub.Broadcast(batch); err != nil {
			s.logger.Error("broadcast signals failed", xlogger.Error(err))
		}
	}
	if s.publisher != nil && len(batch.Signals) > 0 {
		if err := s.publisher.PublishSignals(ctx, batch); err != nil {
			s.logger.Error("publish signals failed", xlogger.Error(err))
		}
	}

	s.mu.Lock()
	s.lastRun = time.Now()
	s.mu.Unlock()

	s.logger.Info("signals refreshed", xlogger.Int("signals", len(batch.Signals)))
}
