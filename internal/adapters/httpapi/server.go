// Package httpapi exposes the engine API over HTTP for the widget UI layer.
// The server is a thin shell: every route loads/saves through the session
// manager, which owns ordering and validation. Survey results are never
// stored here; completion payloads are returned to the caller and forwarded
// by the host's completion callback.
package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/careerloop/surveyflow/internal/logging"
	"github.com/careerloop/surveyflow/pkg/domain"
	"github.com/careerloop/surveyflow/pkg/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server wires the session manager to the HTTP surface.
type Server struct {
	manager *session.Manager
	logger  *slog.Logger
	metrics *metrics
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the access/error logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewHandler creates the HTTP handler for the engine. Metrics are registered
// on the given registerer (pass prometheus.DefaultRegisterer in production).
func NewHandler(manager *session.Manager, reg prometheus.Registerer, opts ...Option) http.Handler {
	s := &Server{
		manager: manager,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.metrics = newMetrics(reg)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.accessLog)

	// Serve metrics from the same registry the counters live on.
	gatherer, ok := reg.(prometheus.Gatherer)
	if !ok {
		gatherer = prometheus.DefaultGatherer
	}

	r.Get("/healthz", s.health)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Get("/surveys", s.listSurveys)

	r.Route("/sessions/{sessionID}", func(r chi.Router) {
		r.Get("/", s.getSession)
		r.Post("/open", s.openSession)
		r.Post("/events", s.handleEvent)
		r.Post("/restart", s.restartSession)
		r.Delete("/", s.closeSession)
	})

	return r
}

type openRequest struct {
	SurveyID string `json:"survey_id"`
}

func (s *Server) openSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var body openRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	view, err := s.manager.Open(r.Context(), sessionID, body.SurveyID)
	if err != nil {
		s.serverError(w, "open failed", err)
		return
	}

	s.metrics.opens.WithLabelValues(view.SurveyID).Inc()
	s.countCompletion(nil, view)
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var ev domain.Event
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	before, err := s.manager.Current(r.Context(), sessionID)
	if err != nil {
		s.notFoundOrError(w, err)
		return
	}

	view, err := s.manager.HandleEvent(r.Context(), sessionID, ev)
	if err != nil {
		if reason, ok := rejectionReason(err); ok {
			s.metrics.eventsRejected.WithLabelValues(reason).Inc()
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"rejected": reason,
				"session":  view,
			})
			return
		}
		s.notFoundOrError(w, err)
		return
	}

	s.metrics.eventsAccepted.WithLabelValues(view.SurveyID).Inc()
	s.countCompletion(before, view)
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) restartSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	view, err := s.manager.Restart(r.Context(), sessionID)
	if err != nil {
		s.notFoundOrError(w, err)
		return
	}

	s.metrics.restarts.WithLabelValues(view.SurveyID).Inc()
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) closeSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	if err := s.manager.Close(r.Context(), sessionID); err != nil {
		s.serverError(w, "close failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	view, err := s.manager.Current(r.Context(), sessionID)
	if err != nil {
		s.notFoundOrError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) listSurveys(w http.ResponseWriter, r *http.Request) {
	reg := s.manager.Registry()
	writeJSON(w, http.StatusOK, map[string]any{
		"default": reg.DefaultID(),
		"surveys": reg.IDs(),
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// countCompletion increments the completion counter when the session
// transitioned into a done state within this request.
func (s *Server) countCompletion(before, after *session.View) {
	if after == nil || after.Status == domain.StatusActive {
		return
	}
	if before != nil && before.Status != domain.StatusActive {
		return // Already done before this request.
	}
	s.metrics.completions.WithLabelValues(after.SurveyID, string(after.Status)).Inc()
}

func (s *Server) notFoundOrError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrSessionNotFound) {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}
	s.serverError(w, "request failed", err)
}

func (s *Server) serverError(w http.ResponseWriter, msg string, err error) {
	s.logger.Error(msg, "err", err)
	http.Error(w, msg, http.StatusInternalServerError)
}

// rejectionReason maps the interpreter's typed rejections to stable metric
// and payload labels. Anything else is not a rejection.
func rejectionReason(err error) (string, bool) {
	switch {
	case errors.Is(err, domain.ErrKindMismatch):
		return "kind_mismatch", true
	case errors.Is(err, domain.ErrUnknownOption):
		return "unknown_value", true
	case errors.Is(err, domain.ErrEmptyInput):
		return "empty_input", true
	case errors.Is(err, domain.ErrSessionDone):
		return "session_done", true
	}
	return "", false
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Debug("response encode failed", "err", err)
	}
}
