package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"CoinSignals/internal/domain/repository"
	"CoinSignals/internal/handler/ws"
	"CoinSignals/internal/scheduler"
	"CoinSignals/pkg/config"
	xhttp "CoinSignals/pkg/http"
	applogger "CoinSignals/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	logger     *applogger.Logger
	httpServer *xhttp.Server
	scheduler  *scheduler.Scheduler
	hub        *ws.Hub
	publisher  repository.SignalPublisher
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	l *applogger.Logger,
	httpServer *xhttp.Server,
	sched *scheduler.Scheduler,
	hub *ws.Hub,
	publisher repository.SignalPublisher,
) *App {
	return &App{
		cfg:        cfg,
		logger:     l,
		httpServer: httpServer,
		scheduler:  sched,
		hub:        hub,
		publisher:  publisher,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return a.RunContext(ctx)
}

// RunContext starts the application and blocks until ctx is done.
func (a *App) RunContext(ctx context.Context) error {
	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}

	if a.cfg.Scheduler.Enabled {
		a.scheduler.Start()
		if a.cfg.Scheduler.RunOnStart {
			go a.scheduler.RunNow()
		}
		a.logger.Info("signal refresh scheduled", applogger.String("spec", a.cfg.Scheduler.Spec))
	}

	<-ctx.Done()
	a.logger.Info("shutdown signal received")
	return a.shutdown()
}

// shutdown gracefully stops all services.
func (a *App) shutdown() error {
	a.logger.Info("shutting down...")

	if a.cfg.Scheduler.Enabled {
		a.scheduler.Stop()
	}

	timeout := a.httpServer.ShutdownTimeout()
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}

	a.hub.Close()

	// Flush aggregated logs while the producer is still open.
	a.logger.RemoveCollector()

	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.logger.Warn("signal publisher close error", applogger.Error(err))
		}
	}

	a.logger.Info("shutdown complete")
	return nil
}
