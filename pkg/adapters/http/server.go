package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/logging"
	"github.com/aretw0/automata/internal/presentation/graph"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/runner"
	"github.com/aretw0/automata/pkg/schema"
	"github.com/aretw0/automata/pkg/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// DefaultMaxSteps bounds /sessions/{id}/run when the request sets no max_steps.
const DefaultMaxSteps = 10000

// Server exposes a session.Service over JSON/HTTP.
type Server struct {
	Service  *session.Service
	Streams  *StreamManager
	Logger   *slog.Logger
	Metrics  http.Handler
	MaxSteps int
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// WithMetricsHandler mounts h on GET /metrics, usually promhttp.HandlerFor.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.Metrics = h
	}
}

// WithMaxSteps sets the default budget of run requests.
func WithMaxSteps(n int) Option {
	return func(s *Server) {
		s.MaxSteps = n
	}
}

// NewServer creates a Server over svc.
func NewServer(svc *session.Service, opts ...Option) *Server {
	s := &Server{
		Service:  svc,
		Logger:   logging.NewNop(),
		MaxSteps: DefaultMaxSteps,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Streams = NewStreamManager(s.Logger)
	return s
}

// NewHandler creates the HTTP handler for svc.
func NewHandler(svc *session.Service, opts ...Option) http.Handler {
	return NewServer(svc, opts...).Routes()
}

// Routes builds the chi router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec)
	})
	if s.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.Metrics)
	}

	r.Route("/automata", func(r chi.Router) {
		r.Get("/", s.ListAutomata)
		r.Get("/{name}", s.GetAutomaton)
		r.Get("/{name}/graph", s.GetGraph)
	})

	r.Route("/sessions", func(r chi.Router) {
		r.Get("/", s.ListSessions)
		r.Post("/", s.CreateSession)
		r.Get("/{id}", s.GetSession)
		r.Delete("/{id}", s.DeleteSession)
		r.Post("/{id}/next", s.stepHandler(true))
		r.Post("/{id}/previous", s.stepHandler(false))
		r.Post("/{id}/run", s.RunSession)
		r.Get("/{id}/trace", s.GetTrace)
		r.Get("/{id}/events", s.SubscribeEvents)
	})
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Summary is the list view of a definition.
type Summary struct {
	Name        string      `json:"name"`
	Kind        domain.Kind `json:"kind"`
	Description string      `json:"description,omitempty"`
}

// CreateSessionRequest is the body of POST /sessions.
type CreateSessionRequest struct {
	Automaton string `json:"automaton"`
	Input     string `json:"input"`
	Cyclic    bool   `json:"cyclic"`
}

// StatusResponse adds the human readable result message to a status.
type StatusResponse struct {
	*session.Status
	Message string `json:"message"`
}

// Event is the SSE payload sent after each step of a watched session.
type Event struct {
	Index   int                `json:"index"`
	Outcome domain.Outcome     `json:"outcome"`
	Reason  domain.Reason      `json:"reason,omitempty"`
	Diff    *domain.ConfigDiff `json:"diff,omitempty"`
}

func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":         "automata-http",
		"version":     automata.Version,
		"api_version": APIVersion(),
	})
}

func (s *Server) ListAutomata(w http.ResponseWriter, r *http.Request) {
	defs := s.Service.Registry().Definitions()
	out := make([]Summary, len(defs))
	for i, def := range defs {
		out[i] = Summary{Name: def.Name, Kind: def.Kind, Description: def.Description}
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) GetAutomaton(w http.ResponseWriter, r *http.Request) {
	def, err := s.Service.Registry().Get(chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, def)
}

// GetGraph writes the Mermaid diagram of an automaton. With ?session=id the
// states that session has reached are highlighted.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	def, err := s.Service.Registry().Get(chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	var overlay *graph.Overlay
	if id := r.URL.Query().Get("session"); id != "" {
		snap, err := s.Service.Snapshot(r.Context(), id)
		if err != nil {
			s.writeError(w, err)
			return
		}
		if snap.Automaton != def.Name {
			http.Error(w, fmt.Sprintf("session %s simulates %q", id, snap.Automaton), http.StatusBadRequest)
			return
		}
		overlay = graph.OverlayFromTrace(snap.Records, snap.Index)
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, graph.GenerateMermaid(def, overlay))
}

func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Service.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	s.writeJSON(w, http.StatusOK, ids)
}

func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	var body CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.Logger.Warn("CreateSession: invalid request body", "error", err)
		return
	}
	if body.Automaton == "" {
		http.Error(w, "automaton is required", http.StatusBadRequest)
		return
	}

	input, err := runner.SanitizeInput(body.Input)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid input: %v", err), http.StatusBadRequest)
		s.Logger.Warn("CreateSession: input rejected", "error", err, "size", len(body.Input))
		return
	}

	status, err := s.Service.Create(r.Context(), body.Automaton, input, body.Cyclic)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.Logger.Info("session created", "session_id", status.SessionID, "automaton", status.Automaton)
	s.writeJSON(w, http.StatusCreated, respond(status))
}

func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	status, err := s.Service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, respond(status))
}

func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.Service.Delete(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	s.Streams.Close(id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) stepHandler(forward bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		prev := s.watchedConfig(r, id)

		status, err := s.Service.Step(r.Context(), id, forward)
		if err != nil {
			s.writeError(w, err)
			return
		}
		s.publish(id, prev, status)
		s.writeJSON(w, http.StatusOK, respond(status))
	}
}

// RunSession steps until the verdict. An exhausted budget answers 422 with the
// saved progress.
func (s *Server) RunSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	maxSteps := s.MaxSteps
	if raw := r.URL.Query().Get("max_steps"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			http.Error(w, "max_steps must be a positive integer", http.StatusBadRequest)
			return
		}
		maxSteps = n
	}

	prev := s.watchedConfig(r, id)
	status, err := s.Service.Run(r.Context(), id, maxSteps)
	if err != nil && !errors.Is(err, domain.ErrStepLimit) {
		s.writeError(w, err)
		return
	}
	s.publish(id, prev, status)

	code := http.StatusOK
	if err != nil {
		code = http.StatusUnprocessableEntity
	}
	s.writeJSON(w, code, respond(status))
}

func (s *Server) GetTrace(w http.ResponseWriter, r *http.Request) {
	records, err := s.Service.Trace(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	if records == nil {
		records = []domain.StepRecord{}
	}
	s.writeJSON(w, http.StatusOK, records)
}

// SubscribeEvents streams an Event per step of the session (SSE).
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := s.Service.Snapshot(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := s.Streams.Subscribe(id)
	defer cancel()
	s.Logger.Info("SSE: subscribed", "session_id", id)

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.Logger.Info("SSE: client disconnected", "session_id", id)
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

// watchedConfig loads the configuration before a step, only when someone
// listens for diffs.
func (s *Server) watchedConfig(r *http.Request, id string) *domain.Configuration {
	if !s.Streams.Watched(id) {
		return nil
	}
	status, err := s.Service.Get(r.Context(), id)
	if err != nil {
		return nil
	}
	cfg := status.Result.Config
	return &cfg
}

func (s *Server) publish(id string, prev *domain.Configuration, status *session.Status) {
	if prev == nil || status == nil {
		return
	}
	ev := Event{
		Index:   status.Result.Index,
		Outcome: status.Result.Outcome,
		Reason:  status.Result.Reason,
		Diff:    domain.Diff(prev, status.Result.Config),
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		s.Logger.Error("SSE: event encode failed", "error", err)
		return
	}
	s.Streams.Broadcast(id, string(payload))
}

func respond(status *session.Status) StatusResponse {
	return StatusResponse{Status: status, Message: status.Result.Message()}
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("response encode failed", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := statusCode(err)
	if code == http.StatusInternalServerError {
		s.Logger.Error("request failed", "error", err)
	}
	http.Error(w, err.Error(), code)
}

func statusCode(err error) int {
	var verr *schema.ValidationError
	switch {
	case errors.Is(err, domain.ErrSessionNotFound), errors.Is(err, domain.ErrDefinitionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrEmptyCyclicInput),
		errors.Is(err, domain.ErrCyclicUnsupported),
		errors.Is(err, domain.ErrStepLimit),
		errors.Is(err, runner.ErrInputTooLarge),
		errors.Is(err, runner.ErrInvalidUTF8),
		errors.As(err, &verr):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
