package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"CoinSignals/pkg/http/middleware"
	applogger "CoinSignals/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ServerOption configures Server.
type ServerOption func(*ServerConfig)

// ServerConfig holds server configuration.
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	CORS            bool
	AllowOrigins    []string
	SlowThreshold   time.Duration
	MetricsPath     string
	Limiter         middleware.Allower
	RateLimit       middleware.RateLimitConfig
}

// Server wraps Echo HTTP server.
type Server struct {
	echo   *echo.Echo
	config *ServerConfig
	logger *applogger.Logger
}

// NewServer creates a new HTTP server with Echo and registers every handler.
func NewServer(l *applogger.Logger, handlers []Handler, opts ...ServerOption) *Server {
	cfg := &ServerConfig{
		Host:            "0.0.0.0",
		Port:            8080,
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		CORS:            true,
		AllowOrigins:    []string{"*"},
		SlowThreshold:   2 * time.Second,
		MetricsPath:     "/metrics",
	}

	for _, opt := range opts {
		opt(cfg)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.ReadTimeout
	e.Server.WriteTimeout = cfg.WriteTimeout

	e.Use(middleware.RequestID())
	e.Use(middleware.Recover(l))
	e.Use(middleware.RequestLogging(l))
	e.Use(middleware.Metrics(l, cfg.SlowThreshold))

	if cfg.CORS {
		e.Use(middleware.CORS(middleware.CORSConfig{
			AllowOrigins: cfg.AllowOrigins,
			AllowMethods: []string{
				http.MethodGet,
				http.MethodOptions,
			},
			AllowHeaders: []string{
				echo.HeaderOrigin,
				echo.HeaderContentType,
				echo.HeaderAccept,
				echo.HeaderXRequestID,
			},
			MaxAge: 600,
		}))
	}

	if cfg.Limiter != nil && cfg.RateLimit.Burst > 0 {
		e.Use(middleware.RateLimit(cfg.Limiter, cfg.RateLimit))
	}

	for _, h := range append([]Handler{healthRoutes}, handlers...) {
		if h != nil {
			h.RegisterRoutes(e)
		}
	}

	// Expose Prometheus metrics endpoint for scraping
	if cfg.MetricsPath != "" {
		e.GET(cfg.MetricsPath, echo.WrapHandler(promhttp.Handler()))
	}

	return &Server{
		echo:   e,
		config: cfg,
		logger: l,
	}
}

var healthRoutes = RoutesFunc(func(e *echo.Echo) {
	e.GET("/healthz", func(c echo.Context) error {
		return SuccessResponse(c, map[string]string{"status": "ok"})
	})
})

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	go func() {
		s.logger.Info("http server: listening", applogger.String("addr", addr))
		if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("http server error", applogger.Error(err))
		}
	}()

	return nil
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}
	s.logger.Info("http server: stopped gracefully")
	return nil
}

// Echo returns the underlying Echo instance.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

// ShutdownTimeout returns the configured graceful shutdown budget.
func (s *Server) ShutdownTimeout() time.Duration {
	return s.config.ShutdownTimeout
}

// WithHost sets server host.
func WithHost(host string) ServerOption {
	return func(c *ServerConfig) {
		c.Host = host
	}
}

// WithPort sets server port.
func WithPort(port int) ServerOption {
	return func(c *ServerConfig) {
		c.Port = port
	}
}

// WithTimeouts sets read/write timeouts.
func WithTimeouts(read, write, shutdown time.Duration) ServerOption {
	return func(c *ServerConfig) {
		c.ReadTimeout = read
		c.WriteTimeout = write
		c.ShutdownTimeout = shutdown
	}
}

// WithCORS enables/disables CORS and sets the allowed origins.
func WithCORS(enabled bool, origins ...string) ServerOption {
	return func(c *ServerConfig) {
		c.CORS = enabled
		if len(origins) > 0 {
			c.AllowOrigins = origins
		}
	}
}

// WithRateLimit throttles every client with the given token bucket.
func WithRateLimit(l middleware.Allower, cfg middleware.RateLimitConfig) ServerOption {
	return func(c *ServerConfig) {
		c.Limiter = l
		c.RateLimit = cfg
	}
}

// WithSlowThreshold sets the latency above which requests are logged as slow.
func WithSlowThreshold(d time.Duration) ServerOption {
	return func(c *ServerConfig) {
		c.SlowThreshold = d
	}
}

// WithMetricsPath sets the Prometheus scrape path; empty disables it.
func WithMetricsPath(path string) ServerOption {
	return func(c *ServerConfig) {
		c.MetricsPath = path
	}
}
