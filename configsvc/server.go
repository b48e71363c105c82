package configsvc

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tailored-agentic-units/dealpipe/columns"
	"github.com/tailored-agentic-units/dealpipe/observability"
	"github.com/tailored-agentic-units/dealpipe/solution"
)

const (
	defaultAddr            = ":8080"
	defaultShutdownTimeout = 5 * time.Second
)

// ServerConfig holds HTTP server parameters.
type ServerConfig struct {
	Addr    string `json:"addr,omitempty"`
	DevMode bool   `json:"dev_mode,omitempty"` // Leave gin in debug mode.
}

// DefaultServerConfig returns the default server configuration.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{Addr: defaultAddr}
}

// Merge applies non-zero values from source into c.
func (c *ServerConfig) Merge(source *ServerConfig) {
	if source.Addr != "" {
		c.Addr = source.Addr
	}
	if source.DevMode {
		c.DevMode = true
	}
}

// Server hosts the ConfigService and read-only JSON endpoints:
//
//	GET /healthz
//	GET /v1/config
//	GET /v1/config/:step
//	GET /v1/columns[?phase=train|inference]
type Server struct {
	router   *gin.Engine
	service  *Service
	addr     string
	observer observability.Observer
}

// NewServer creates a Server for svc.
func NewServer(svc *Service, cfg *ServerConfig) *Server {
	if !cfg.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		router:   gin.New(),
		service:  svc,
		addr:     cfg.Addr,
		observer: svc.observer,
	}
	s.router.Use(gin.Recovery())
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	path, handler := s.service.Handler()
	s.router.Any(path+"*procedure", gin.WrapH(handler))

	s.router.GET("/healthz", s.health)

	v1 := s.router.Group("/v1")
	{
		v1.GET("/config", s.getConfig)
		v1.GET("/config/:step", s.getStep)
		v1.GET("/columns", s.getColumns)
	}
}

// Handler returns the router, for tests and for mounting elsewhere.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.router,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	observability.Emit(ctx, s.observer, observability.Event{
		Type:   EventServe,
		Level:  observability.LevelInfo,
		Source: "configsvc.Server.Run",
		Data:   map[string]any{"addr": s.addr},
	})

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("config server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down config server: %w", err)
	}
	return nil
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"build_id": s.service.buildID,
	})
}

func (s *Server) getConfig(c *gin.Context) {
	tree, err := s.service.provider.Tree()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	s.setBuildID(c)
	c.JSON(http.StatusOK, tree)
}

func (s *Server) getStep(c *gin.Context) {
	step, err := s.service.provider.Step(c.Param("step"))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, solution.ErrUnknownStep) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	s.setBuildID(c)
	c.JSON(http.StatusOK, step)
}

func (s *Server) getColumns(c *gin.Context) {
	phase := c.Query("phase")
	if phase == "" {
		c.JSON(http.StatusOK, gin.H{
			"features":      columns.Features(),
			"categorical":   columns.Categorical(),
			"numerical":     columns.Numerical(),
			"text":          columns.Text(),
			"image":         columns.Images(),
			"targets":       columns.Targets(),
			"image_targets": columns.ImageTargets(),
			"cv":            columns.CV(),
			"timestamp":     columns.Timestamps(),
			"item_id":       columns.ItemIDs(),
			"user_id":       columns.UserIDs(),
			"types":         columns.TypeMap(),
		})
		return
	}

	fields, err := columns.Schema(columns.Phase(phase))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"phase": phase, "fields": fields})
}

func (s *Server) setBuildID(c *gin.Context) {
	if s.service.buildID != "" {
		c.Header(BuildIDHeader, s.service.buildID)
	}
}
