package httpx

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/parksujin/lifeshare/internal/logging"
)

// Server wraps the HTTP server around the gin engine and handles graceful
// shutdown when the context is cancelled.
type Server struct {
	httpServer *http.Server
	logger     logging.Logger
}

func NewServer(addr string, engine *gin.Engine, logger logging.Logger) *Server {
	return &Server{
		httpServer: &http.Server{Addr: addr, Handler: engine},
		logger:     logger,
	}
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	s.logger.Info(ctx, "http server started", "addr", s.httpServer.Addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s.logger.Info(ctx, "shutting down http server")
	return s.httpServer.Shutdown(shutdownCtx)
}
