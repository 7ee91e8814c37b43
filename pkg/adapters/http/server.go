package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/aretw0/outlet"
	"github.com/aretw0/outlet/internal/logging"
	"github.com/aretw0/outlet/pkg/domain"
	"github.com/aretw0/outlet/pkg/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server exposes the sessions of a Manager over JSON.
type Server struct {
	Sessions *session.Manager
	Streams  *StreamManager

	gatherer prometheus.Gatherer
	logger   *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger configures the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithStreams enables the SSE event stream. The same StreamManager must feed
// the sessions through session.WithSessionHooks(streams.Hooks).
func WithStreams(streams *StreamManager) Option {
	return func(s *Server) {
		s.Streams = streams
	}
}

// WithMetrics serves the collectors of gatherer at /metrics.
func WithMetrics(gatherer prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = gatherer
	}
}

// NewHandler creates the HTTP handler for the sessions of m.
func NewHandler(m *session.Manager, opts ...Option) http.Handler {
	s := &Server{
		Sessions: m,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	r.Get("/sessions", s.ListSessions)
	r.Route("/sessions/{sessionID}", func(r chi.Router) {
		r.Delete("/", s.DeleteSession)
		r.Get("/layout", s.GetLayout)
		r.Post("/items", s.AddItem)
		r.Get("/outlets", s.ListOutlets)
		r.Post("/outlets", s.CreateOutlet)
		r.Get("/outlets/{outletID}", s.GetOutlet)
		r.Delete("/outlets/{outletID}", s.DeleteOutlet)
		r.Post("/outlets/{outletID}/{action}", s.DoAction)
		r.Get("/events", s.GetEvents)
		if s.Streams != nil {
			r.Get("/stream", s.SubscribeEvents)
		}
	})
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CreateOutletRequest is the body of POST /sessions/{id}/outlets.
type CreateOutletRequest struct {
	Title   string         `json:"title"`
	Options map[string]any `json:"options,omitempty"`
}

// AddItemRequest is the body of POST /sessions/{id}/items.
type AddItemRequest struct {
	Title string                `json:"title"`
	Split domain.SplitDirection `json:"split,omitempty"`
}

// ErrorResponse is returned with every non-2xx status.
type ErrorResponse struct {
	Error string `json:"error"`
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "outlet-http",
		"version": strings.TrimSpace(outlet.Version),
	})
}

// ListSessions handles the GET /sessions request.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Sessions.List())
}

// DeleteSession handles the DELETE /sessions/{id} request.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.Sessions.Delete(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		s.writeError(w, "DeleteSession", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetLayout handles the GET /sessions/{id}/layout request.
func (s *Server) GetLayout(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.existing(w, r)
	if !ok {
		return
	}
	layout, err := sess.Layout(r.Context())
	if err != nil {
		s.writeError(w, "GetLayout", err)
		return
	}
	s.writeJSON(w, http.StatusOK, layout)
}

// AddItem handles the POST /sessions/{id}/items request.
func (s *Server) AddItem(w http.ResponseWriter, r *http.Request) {
	var body AddItemRequest
	if !s.decode(w, r, &body) {
		return
	}
	info, err := s.session(r).AddItem(r.Context(), body.Title, body.Split)
	if err != nil {
		s.writeError(w, "AddItem", err)
		return
	}
	s.writeJSON(w, http.StatusCreated, info)
}

// ListOutlets handles the GET /sessions/{id}/outlets request.
func (s *Server) ListOutlets(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.existing(w, r)
	if !ok {
		return
	}
	infos, err := sess.List(r.Context())
	if err != nil {
		s.writeError(w, "ListOutlets", err)
		return
	}
	s.writeJSON(w, http.StatusOK, infos)
}

// CreateOutlet handles the POST /sessions/{id}/outlets request.
func (s *Server) CreateOutlet(w http.ResponseWriter, r *http.Request) {
	var body CreateOutletRequest
	if !s.decode(w, r, &body) {
		return
	}
	var info session.OutletInfo
	err := s.Sessions.WithLock(r.Context(), chi.URLParam(r, "sessionID"), func(ctx context.Context, sess *session.Session) error {
		var err error
		info, err = sess.CreateOutlet(ctx, body.Title, body.Options)
		return err
	})
	if err != nil {
		s.writeError(w, "CreateOutlet", err)
		return
	}
	s.writeJSON(w, http.StatusCreated, info)
}

// GetOutlet handles the GET /sessions/{id}/outlets/{outletID} request.
func (s *Server) GetOutlet(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.existing(w, r)
	if !ok {
		return
	}
	info, err := sess.Get(r.Context(), chi.URLParam(r, "outletID"))
	if err != nil {
		s.writeError(w, "GetOutlet", err)
		return
	}
	s.writeJSON(w, http.StatusOK, info)
}

// DeleteOutlet handles the DELETE /sessions/{id}/outlets/{outletID} request.
func (s *Server) DeleteOutlet(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.existing(w, r); !ok {
		return
	}
	err := s.Sessions.WithLock(r.Context(), chi.URLParam(r, "sessionID"), func(ctx context.Context, sess *session.Session) error {
		return sess.Delete(ctx, chi.URLParam(r, "outletID"))
	})
	if err != nil {
		s.writeError(w, "DeleteOutlet", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DoAction handles the POST /sessions/{id}/outlets/{outletID}/{action}
// request. The body, when present, carries domain.ActionArgs.
func (s *Server) DoAction(w http.ResponseWriter, r *http.Request) {
	action, err := domain.ParseAction(chi.URLParam(r, "action"))
	if err != nil {
		s.writeError(w, "DoAction", err)
		return
	}
	var args domain.ActionArgs
	if !s.decode(w, r, &args) {
		return
	}
	if _, ok := s.existing(w, r); !ok {
		return
	}
	var info session.OutletInfo
	err = s.Sessions.WithLock(r.Context(), chi.URLParam(r, "sessionID"), func(ctx context.Context, sess *session.Session) error {
		var err error
		info, err = sess.Do(ctx, chi.URLParam(r, "outletID"), action, args)
		return err
	})
	if err != nil {
		s.writeError(w, "DoAction", err)
		return
	}
	s.writeJSON(w, http.StatusOK, info)
}

// GetEvents handles the GET /sessions/{id}/events?n= request, reading the
// session's journal.
func (s *Server) GetEvents(w http.ResponseWriter, r *http.Request) {
	journal := s.Sessions.Journal()
	if journal == nil {
		s.writeJSON(w, http.StatusNotImplemented, ErrorResponse{Error: "event journal is disabled"})
		return
	}
	n := 0
	if raw := r.URL.Query().Get("n"); raw != "" {
		var err error
		if n, err = strconv.Atoi(raw); err != nil || n < 0 {
			s.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("invalid n %q", raw)})
			return
		}
	}
	events, err := journal.Recent(r.Context(), chi.URLParam(r, "sessionID"), n)
	if err != nil {
		s.writeError(w, "GetEvents", err)
		return
	}
	if events == nil {
		events = []domain.Event{}
	}
	s.writeJSON(w, http.StatusOK, events)
}

// session returns the session named in the URL, starting it on first use.
func (s *Server) session(r *http.Request) *session.Session {
	return s.Sessions.LoadOrStart(chi.URLParam(r, "sessionID"))
}

// existing returns the session named in the URL or writes a 404.
func (s *Server) existing(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, err := s.Sessions.Get(chi.URLParam(r, "sessionID"))
	if err != nil {
		s.writeError(w, "lookup", err)
		return nil, false
	}
	return sess, true
}

// decode reads an optional JSON body into v. An empty body leaves v untouched.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		s.logger.Warn("Invalid request body", "path", r.URL.Path, "err", err)
		s.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return false
	}
	return true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Response encode failed", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, op string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error(op+" failed", "err", err)
	} else {
		s.logger.Debug(op+" rejected", "status", status, "err", err)
	}
	s.writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound),
		errors.Is(err, domain.ErrOutletNotFound),
		errors.Is(err, domain.ErrItemNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConfiguration),
		errors.Is(err, domain.ErrUnknownAction):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrPlacementPrecondition),
		errors.Is(err, domain.ErrOpenInFlight):
		return http.StatusConflict
	case errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
