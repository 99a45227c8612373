// Package proxyserver runs the sidecar reverse proxy: a pass-through in
// front of the host server that applies the view-to-preview rerouting rule
// to real HTTP traffic, for deployments where the bridge cannot be embedded
// in the host UI process.
package proxyserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"time"

	"github.com/heiftools/heicbridge/intercept"
	"github.com/heiftools/heicbridge/log"
	"github.com/heiftools/heicbridge/metrics"
	"github.com/heiftools/heicbridge/preview"
)

// DefaultShutdownTimeout bounds graceful shutdown.
const DefaultShutdownTimeout = 10 * time.Second

// Config configures the proxy server.
type Config struct {
	// ListenAddr is the address to serve on, e.g. ":8189".
	ListenAddr string
	// Target is the host server base URL to proxy to (required).
	Target string
}

// Server proxies traffic to the host server through the interception
// transport.
type Server struct {
	cfg     Config
	handler http.Handler
	logger  *log.Logger
	metrics *metrics.Collector
}

// New creates a proxy server. Returns an error when the target URL does not
// parse or lacks a scheme.
func New(cfg Config, rw *preview.Rewriter, logger *log.Logger, m *metrics.Collector) (*Server, error) {
	if logger == nil {
		logger = log.Nop()
	}
	target, err := url.Parse(cfg.Target)
	if err != nil {
		return nil, fmt.Errorf("proxy: invalid target %q: %w", cfg.Target, err)
	}
	if target.Scheme == "" || target.Host == "" {
		return nil, fmt.Errorf("proxy: target %q must be an absolute URL", cfg.Target)
	}

	rp := httputil.NewSingleHostReverseProxy(target)
	rp.Transport = &intercept.Transport{Rewriter: rw, Metrics: m}
	rp.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		logger.Error("proxy upstream error", map[string]any{"url": r.URL.String(), "error": err.Error()})
		w.WriteHeader(http.StatusBadGateway)
	}

	s := &Server{cfg: cfg, logger: logger, metrics: m}
	s.handler = s.withAccessLog(rp)
	return s, nil
}

// Handler returns the proxy handler, primarily for tests.
func (s *Server) Handler() http.Handler { return s.handler }

func (s *Server) withAccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("proxied request", map[string]any{
			"method":      r.Method,
			"url":         r.URL.String(),
			"duration_ms": time.Since(start).Milliseconds(),
		})
	})
}

// ListenAndServe serves until ctx is canceled, then shuts down gracefully
// and logs a final metrics snapshot.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{Addr: s.cfg.ListenAddr, Handler: s.handler}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	s.logger.Info("proxy listening", map[string]any{
		"addr":   s.cfg.ListenAddr,
		"target": s.cfg.Target,
	})

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)

	snap := s.metrics.Snapshot()
	s.logger.Info("proxy stopped", map[string]any{
		"fetch_intercepted": snap.FetchIntercepted,
		"fetch_passthrough": snap.FetchPassthrough,
	})
	return err
}
