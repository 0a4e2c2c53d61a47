// Package server exposes the demo over HTTP.
package server

import (
	"context"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/solardome/preclear-demo/internal/config"
	"github.com/solardome/preclear-demo/internal/report"
	"github.com/solardome/preclear-demo/internal/store"
)

// Generator fabricates reports for uploads and the scripted demo.
type Generator interface {
	Analyze(filename string, content []byte) report.Report
	DemoReport() report.Report
}

type Server struct {
	cfg        config.Server
	staticDir  string
	log        *zap.Logger
	store      *store.Store
	generator  Generator
	renderer   *report.Renderer
	limiter    *rate.Limiter
	httpServer *http.Server
}

type Deps struct {
	Config    config.Config
	Logger    *zap.Logger
	Store     *store.Store
	Generator Generator
	Renderer  *report.Renderer
}

func New(d Deps) *Server {
	log := d.Logger
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		cfg:       d.Config.Server,
		staticDir: d.Config.StaticDir,
		log:       log,
		store:     d.Store,
		generator: d.Generator,
		renderer:  d.Renderer,
		limiter:   newUploadLimiter(d.Config.Server.UploadRatePerMinute, d.Config.Server.UploadBurst),
	}
	s.httpServer = &http.Server{
		Addr:              d.Config.Server.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: d.Config.Server.ReadHeaderTimeout,
	}
	return s
}

// newUploadLimiter returns nil when rate limiting is disabled.
func newUploadLimiter(perMinute, burst int) *rate.Limiter {
	if perMinute <= 0 {
		return nil
	}
	if burst <= 0 {
		burst = 1
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), burst)
}

func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(s.logRequests)

	r.HandleFunc("/", s.handleHome).Methods(http.MethodGet)
	r.HandleFunc("/analyze", s.handleAnalyze).Methods(http.MethodPost)
	r.HandleFunc("/report/{id}", s.handleReport).Methods(http.MethodGet)
	r.HandleFunc("/history", s.handleHistory).Methods(http.MethodGet)
	r.HandleFunc("/simulate", s.handleSimulate).Methods(http.MethodGet)
	r.HandleFunc("/demo", s.handleDemo).Methods(http.MethodGet)
	r.HandleFunc("/demo-report", s.handleDemoReport).Methods(http.MethodGet)
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/reports", s.handleAPIList).Methods(http.MethodGet)
	api.HandleFunc("/reports/{id}", s.handleAPIGet).Methods(http.MethodGet)

	if s.staticDir != "" {
		if info, err := os.Stat(s.staticDir); err == nil && info.IsDir() {
			r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir(s.staticDir))))
		} else {
			s.log.Warn("static directory unavailable; /static disabled", zap.String("static_dir", s.staticDir))
		}
	}
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return errors.Wrapf(err, "listen on %s", s.httpServer.Addr)
	}
	s.log.Info("server listening", zap.String("addr", ln.Addr().String()), zap.Int("max_reports", s.store.Capacity()))

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return errors.Wrap(err, "serve")
	case <-ctx.Done():
	}

	s.log.Info("shutting down", zap.Duration("timeout", s.cfg.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown")
	}
	return nil
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, req)
		s.log.Debug("http request",
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
