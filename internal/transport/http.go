package transport

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rpggio/burstguard/internal/domain/activity"
)

// ActivityService defines activity operations needed over HTTP.
type ActivityService interface {
	Record(ctx context.Context, identity string) (activity.Result, error)
	Check(ctx context.Context, identity string) (bool, error)
	History(ctx context.Context, identity string) ([]activity.Timestamp, error)
}

// Server wires HTTP handlers.
type Server struct {
	activity ActivityService
	logger   *slog.Logger
}

// NewServer creates the HTTP router. mcpHandler is mounted at /mcp when non-nil.
func NewServer(svc ActivityService, mcpHandler http.Handler, logger *slog.Logger) *chi.Mux {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	r := chi.NewRouter()
	r.Use(RequestIDMiddleware)

	srv := &Server{activity: svc, logger: logger}
	r.Use(srv.logRequests)

	r.Get("/health", srv.handleHealth)
	r.Post("/activity/{identity}", srv.handleRecord)
	r.Get("/activity/{identity}", srv.handleHistory)
	if mcpHandler != nil {
		r.Handle("/mcp", mcpHandler)
		r.Handle("/mcp/*", mcpHandler)
	}

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleRecord(w http.ResponseWriter, r *http.Request) {
	identity := identityParam(r)
	res, err := s.activity.Record(r.Context(), identity)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, RecordResponse{
		Outcome:   res.Outcome,
		Identity:  res.Identity,
		Timestamp: res.Timestamp,
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	identity := identityParam(r)
	history, err := s.activity.History(r.Context(), identity)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	suspicious, err := s.activity.Check(r.Context(), identity)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, HistoryResponse{
		Identity:   identity,
		Timestamps: history,
		Suspicious: suspicious,
	})
}

// identityParam decodes the path segment exactly once. chi matches on
// RawPath when it is set, so only then is the parameter still escaped.
func identityParam(r *http.Request) string {
	param := chi.URLParam(r, "identity")
	if r.URL.RawPath == "" {
		return param
	}
	if identity, err := url.PathUnescape(param); err == nil {
		return identity
	}
	return param
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

func (rec *statusRecorder) Unwrap() http.ResponseWriter {
	return rec.ResponseWriter
}

// Flush keeps streaming MCP responses working through the recorder.
func (rec *statusRecorder) Flush() {
	if f, ok := rec.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		requestID, _ := RequestIDFromContext(r.Context())
		s.logger.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
			"request_id", requestID,
		)
	})
}
