// Package apiserver exposes the turn controller over HTTP for the world
// simulator.
package apiserver

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/ashutoshrp06/vragent/internal/agent"
)

// Server is the vragent HTTP API. Handlers delegate to the Agent.
type Server struct {
	router *mux.Router
	agent  *agent.Agent
	logger *zap.Logger
	server *http.Server
}

// NewServer creates a fully-wired Server ready to Start().
func NewServer(addr string, a *agent.Agent, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	srv := &Server{
		router: mux.NewRouter(),
		agent:  a,
		logger: logger,
	}
	srv.registerRoutes()
	srv.server = &http.Server{
		Addr:        addr,
		Handler:     srv.Handler(),
		ReadTimeout: 15 * time.Second,
		// No WriteTimeout: a turn may wait on the model for the full chat timeout.
	}
	return srv
}

// Handler returns the router wrapped in CORS, recovery and access logging.
func (s *Server) Handler() http.Handler {
	return s.cors(s.recoverPanics(s.accessLog(s.router)))
}

// Start begins listening and serving HTTP requests. It blocks until the
// server is shut down or encounters a fatal error.
func (s *Server) Start() error {
	s.logger.Info("API server starting", zap.String("addr", s.server.Addr))
	return s.server.ListenAndServe()
}

// Shutdown gracefully drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
