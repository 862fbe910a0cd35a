package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/lugatuic/domainreport/config"
	"github.com/lugatuic/domainreport/export"
	"github.com/lugatuic/domainreport/middleware"
	"github.com/lugatuic/domainreport/server"
)

const reportsPath = "/v1/reports"

// DirectoryClient is the directory dependency checked by /readyz.
type DirectoryClient interface {
	Ping(ctx context.Context) error
}

// Server composes dependencies and constructs the HTTP handler graph.
type Server struct {
	cfg      *config.Config
	logger   *zap.Logger
	client   DirectoryClient
	exporter server.Exporter
	router   chi.Router
}

// New creates a Server.
func New(cfg *config.Config, logger *zap.Logger, client DirectoryClient, exporter server.Exporter) *Server {
	return &Server{
		cfg:      cfg,
		logger:   logger,
		client:   client,
		exporter: exporter,
		router:   chi.NewRouter(),
	}
}

// Handler wires routes and middleware, returning the root handler.
func (s *Server) Handler() http.Handler {
	s.router.Get("/livez", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(s.logger, w, http.StatusOK, map[string]string{"status": "ok"})
	})

	s.router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.client.Ping(ctx); err != nil {
			s.logger.Warn("readyz.ping_failed", zap.Error(err))
			respondJSON(s.logger, w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		respondJSON(s.logger, w, http.StatusOK, map[string]string{"status": "ready"})
	})

	// Download links are only meaningful when reports live on local disk.
	downloadPrefix := ""
	if s.cfg.ReportStore == config.StoreFile {
		downloadPrefix = reportsPath
	}

	s.router.Method(http.MethodPost, reportsPath, s.makeAppHandler(func(w http.ResponseWriter, r *http.Request) error {
		return server.HandleExport(s.exporter, downloadPrefix, w, r)
	}))

	if downloadPrefix != "" {
		s.router.Method(http.MethodGet, reportsPath+"/{filename}", s.makeAppHandler(func(w http.ResponseWriter, r *http.Request) error {
			return server.HandleDownload(s.cfg.ReportsDir, chi.URLParam(r, "filename"), w, r)
		}))
	}

	s.router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondJSON(s.logger, w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
	})

	// Mat-style middleware stack: Recover (outer), RequestID, Logger.
	var handler http.Handler = s.router
	handler = middleware.Logger(s.logger, handler)
	handler = middleware.RequestID(handler)
	handler = middleware.Recover(s.logger, handler)

	return handler
}

// appHandler is an application handler that returns an error.
// Errors are logged and translated to HTTP responses by the adapter.
type appHandler func(http.ResponseWriter, *http.Request) error

// makeAppHandler adapts appHandler to http.Handler with sanitized error responses.
func (s *Server) makeAppHandler(fn appHandler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			s.logger.Error("handler.error",
				zap.Error(err),
				zap.String("path", r.URL.Path),
				zap.String("method", r.Method),
				zap.String("kind", export.KindOf(err)),
			)
			respondJSON(s.logger, w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		}
	})
}

// respondJSON writes a JSON response with proper headers.
func respondJSON(logger *zap.Logger, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		if logger != nil {
			logger.Error("respond_json.encode_error", zap.Error(err))
		}
		_, _ = w.Write([]byte("\n"))
	}
}
