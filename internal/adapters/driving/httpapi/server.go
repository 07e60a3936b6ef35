package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/custodia-labs/numen-cli/internal/core/domain"
	"github.com/custodia-labs/numen-cli/internal/logger"
)

// DefaultAddr is the listen address when none is configured.
const DefaultAddr = "127.0.0.1:8080"

const shutdownTimeout = 10 * time.Second

// Config configures the HTTP server.
type Config struct {
	// Addr is the listen address. Defaults to DefaultAddr.
	Addr string

	// CORSOrigins lists allowed origins. Empty allows every origin.
	CORSOrigins []string

	// Registry receives the request metrics and is served on /metrics.
	// A private registry with Go and process collectors is used when nil.
	Registry *prometheus.Registry

	// Now returns the current time. Used for the default report date.
	Now func() time.Time
}

// ConfigFromSettings builds a Config from the persisted server settings.
func ConfigFromSettings(s domain.ServerSettings) Config {
	return Config{Addr: s.Addr, CORSOrigins: s.CORSOrigins}
}

// Server is the gin HTTP API.
type Server struct {
	ports   *Ports
	cfg     Config
	engine  *gin.Engine
	metrics *Metrics
	now     func() time.Time
}

// NewServer creates the API server and registers its routes.
func NewServer(ports *Ports, cfg Config) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.Registry == nil {
		cfg.Registry = prometheus.NewRegistry()
		cfg.Registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	s := &Server{
		ports:   ports,
		cfg:     cfg,
		metrics: NewMetrics(cfg.Registry),
		now:     now,
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(s.metrics.Middleware())
	engine.Use(accessLog())
	engine.Use(cors.New(corsConfig(cfg.CORSOrigins)))
	s.engine = engine

	s.setupRoutes()
	return s, nil
}

func corsConfig(origins []string) cors.Config {
	c := cors.DefaultConfig()
	if len(origins) == 0 {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	c.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	c.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	return c
}

func accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("%s %s %d %s", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}

func (s *Server) setupRoutes() {
	api := s.engine.Group("/api")
	api.GET("/health", s.handleHealth)
	api.POST("/report", s.handleReport)
	api.POST("/oracle/roll", s.handleOracleRoll)

	posts := api.Group("/posts")
	{
		posts.GET("", s.handleListPosts)
		posts.GET("/:slug", s.handleGetPost)
	}

	api.POST("/chat", s.handleChat)
	api.POST("/email", s.handleEmail)

	s.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.cfg.Registry, promhttp.HandlerOpts{})))
}

// Handler returns the HTTP handler for the API.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.cfg.Addr
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Serve(ln)
	}()
	logger.Info("HTTP API listening on %s", ln.Addr())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down HTTP API: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
