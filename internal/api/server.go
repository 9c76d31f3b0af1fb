// Package api exposes the recommendation service over HTTP (JSON, UTF-8).
package api

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/tunescout-poc/server/internal/agent/graph"
	"github.com/tunescout-poc/server/internal/agent/model"
	"github.com/tunescout-poc/server/pkg/logring"
	logx "github.com/tunescout-poc/server/pkg/logger"
)

// Server wires the HTTP routes to the recommendation pipeline, the memory
// store, and the log ring buffer.
type Server struct {
	cfg       model.ServerConfig
	runner    graph.Runner // nil when no Gemini API key is configured
	memories  model.MemoryRepository
	ring      *logring.Ring
	apiKeySet bool

	echo *echo.Echo
}

func NewServer(cfg model.ServerConfig, runner graph.Runner, memories model.MemoryRepository, ring *logring.Ring, apiKeySet bool) *Server {
	s := &Server{
		cfg:       cfg,
		runner:    runner,
		memories:  memories,
		ring:      ring,
		apiKeySet: apiKeySet,
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.GET("/health", s.handleHealth)
	e.POST("/recommend", s.handleRecommend)
	e.GET("/memory/recent", s.handleMemoryRecent)
	e.GET("/logs", s.handleLogs)
	e.POST("/logs/clear", s.handleLogsClear)

	s.echo = e
	return s
}

// Handler exposes the underlying router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start blocks serving HTTP requests until the listener fails or is closed.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	logx.Info().Str("addr", addr).Msg("starting HTTP server")
	return s.echo.Start(addr)
}
