// Package server exposes the calculator over HTTP.
package server

import (
	"context"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/zephyrtronium/calculator/internal/config"
)

// Server is the calculator HTTP service.
type Server struct {
	cfg    *config.Config
	logger *logrus.Logger
	eval   EvalFunc
	srv    *http.Server
}

// New creates a server that evaluates expressions with eval. If eval is nil,
// calculator.Eval is used.
func New(cfg *config.Config, logger *logrus.Logger, eval EvalFunc) *Server {
	if eval == nil {
		eval = defaultEval
	}
	s := &Server{
		cfg:    cfg,
		logger: logger,
		eval:   eval,
	}
	s.srv = &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      s.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	return s
}

// Router builds the gin engine with all routes and middleware.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(s.cfg.RunMode)
	r := gin.New()
	r.Use(requestID(), s.accessLog(), s.recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	api := r.Group("/api")
	api.POST("/calculate", s.calculate)
	return r
}

// Serve accepts connections on l until ctx is canceled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	errc := make(chan error, 1)
	go func() {
		s.logger.WithField("addr", l.Addr().String()).Info("starting server")
		errc <- s.srv.Serve(l)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "server failed")
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	sctx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(sctx); err != nil {
		return errors.Wrap(err, "server forced to shut down")
	}
	s.logger.Info("server exited")
	return nil
}

// ListenAndServe listens on the configured address and calls Serve.
func (s *Server) ListenAndServe(ctx context.Context) error {
	l, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return errors.Wrapf(err, "failed to listen on %s", s.srv.Addr)
	}
	return s.Serve(ctx, l)
}
