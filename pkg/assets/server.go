package assets

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/latoulicious/boosterbot/pkg/logging"
)

// Config controls the asset server
type Config struct {
	Addr      string `yaml:"addr" toml:"addr" env:"ASSETS_ADDR"`
	Dir       string `yaml:"dir" toml:"dir" env:"ASSETS_DIR"`
	PublicURL string `yaml:"public_url" toml:"public_url" env:"ASSETS_PUBLIC_URL"`
	Metrics   bool   `yaml:"metrics" toml:"metrics" env:"ASSETS_METRICS"`
}

// HealthCheck reports one component's health; nil means healthy
type HealthCheck func() error

// Server serves card images under /images, a keep-alive page on /, a JSON
// health report and, when a handler is given, Prometheus metrics.
type Server struct {
	cfg     Config
	engine  *gin.Engine
	server  *http.Server
	logger  logging.Logger
	started time.Time

	mu     sync.RWMutex
	checks map[string]HealthCheck
}

// Option customises a Server
type Option func(*Server)

// WithMetricsHandler mounts h on /metrics
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.engine.GET("/metrics", gin.WrapH(h))
	}
}

// WithHealthCheck adds a named check to /health
func WithHealthCheck(name string, check HealthCheck) Option {
	return func(s *Server) {
		s.checks[name] = check
	}
}

// NewServer builds the router
func NewServer(cfg Config, logger logging.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestLogger(logger))

	s := &Server{
		cfg:     cfg,
		engine:  engine,
		logger:  logger,
		started: time.Now(),
		checks:  make(map[string]HealthCheck),
	}

	engine.GET("/", s.handleRoot)
	engine.GET("/health", s.handleHealth)
	if cfg.Dir != "" {
		engine.Static("/images", cfg.Dir)
	}

	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the router, mostly for tests
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start listens on cfg.Addr in the background. Listen errors are returned
// immediately; later serve errors are logged.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}

	s.server = &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	go func() {
		s.logger.Info("Asset server listening", map[string]interface{}{
			"addr": ln.Addr().String(),
			"dir":  s.cfg.Dir,
		})
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Asset server stopped", err, nil)
		}
	}()
	return nil
}

// Shutdown stops the server gracefully
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) handleRoot(c *gin.Context) {
	c.String(http.StatusOK, "Bot is online!")
}

type healthResponse struct {
	Status     string            `json:"status"`
	Uptime     string            `json:"uptime"`
	StartTime  string            `json:"start_time"`
	Components map[string]string `json:"components,omitempty"`
}

func (s *Server) handleHealth(c *gin.Context) {
	s.mu.RLock()
	names := make([]string, 0, len(s.checks))
	for name := range s.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	resp := healthResponse{
		Status:     "healthy",
		Uptime:     time.Since(s.started).Round(time.Second).String(),
		StartTime:  s.started.UTC().Format(time.RFC3339),
		Components: make(map[string]string, len(names)),
	}
	for _, name := range names {
		if err := s.checks[name](); err != nil {
			resp.Components[name] = err.Error()
			resp.Status = "unhealthy"
			continue
		}
		resp.Components[name] = "ok"
	}
	s.mu.RUnlock()

	code := http.StatusOK
	if resp.Status != "healthy" {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, resp)
}

func requestLogger(logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := map[string]interface{}{
			"status":  c.Writer.Status(),
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"latency": time.Since(start).String(),
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			logger.Warn("HTTP request failed", fields)
			return
		}
		logger.Debug("HTTP request", fields)
	}
}
