package metrics

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"mediarelay/pkg/logging"
)

// Server exposes a Recorder over HTTP at /metrics.
type Server struct {
	srv      *http.Server
	listener net.Listener
}

// Start listens on addr and serves the recorder's metrics in the
// background. Use an addr with port 0 to pick a free port.
func Start(addr string, recorder *Recorder) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", recorder.Handler())

	s := &Server{
		srv: &http.Server{
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		listener: listener,
	}

	go func() {
		if err := s.srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("Metrics", err, "Metrics server stopped")
		}
	}()
	logging.Info("Metrics", "Serving metrics on http://%s/metrics", listener.Addr())
	return s, nil
}

// Addr returns the address the server listens on.
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
