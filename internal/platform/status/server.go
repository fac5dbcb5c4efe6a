package status

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"hls-fetcher/internal/platform/logger"
	"hls-fetcher/internal/platform/metrics"
	"hls-fetcher/internal/progress"

	"github.com/go-chi/chi/v5"
)

// Server exposes run observability over HTTP while a download is in
// flight: Prometheus metrics at /metrics and a JSON progress snapshot at
// /progress. It is optional; long downloads benefit, short ones don't
// need it.
type Server struct {
	srv *http.Server
	log *slog.Logger
}

// snapshot is the /progress response body.
type snapshot struct {
	Done  int64 `json:"done"`
	Total int64 `json:"total"`
}

// New builds a status server on addr reading live progress from counter.
func New(addr string, log *slog.Logger, m *metrics.Metrics, counter *progress.Counter) *Server {
	r := chi.NewRouter()
	r.Use(logger.RequestLogger(log))
	r.Use(metrics.RequestMiddleware(m))

	r.Get("/metrics", m.Handler().ServeHTTP)
	r.Get("/progress", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(snapshot{
			Done:  counter.Done(),
			Total: counter.Total(),
		})
	})

	return &Server{
		srv: &http.Server{Addr: addr, Handler: r},
		log: log,
	}
}

// Start serves in the background. Listen failures are logged, not fatal:
// the download itself must not die because a status port is taken.
func (s *Server) Start() {
	go func() {
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.Error("status server error", slog.String("error", err.Error()))
		}
	}()
	s.log.Info("status server listening", slog.String("addr", s.srv.Addr))
}

// Shutdown drains the server, waiting at most timeout.
func (s *Server) Shutdown(timeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := s.srv.Shutdown(ctx); err != nil {
		s.log.Error("status server shutdown error", slog.String("error", err.Error()))
	}
}
