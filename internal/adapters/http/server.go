package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/aretw0/automata/internal/logging"
	"github.com/aretw0/automata/internal/presentation/graph"
	"github.com/aretw0/automata/internal/sanitizer"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/aretw0/automata/pkg/report"
	"github.com/go-chi/chi/v5"
)

// Server exposes an engine over a small REST API.
type Server struct {
	Engine  ports.Engine
	Metrics http.Handler
	Version string

	logger *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithMetrics mounts a Prometheus handler at /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.Metrics = h
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithVersion sets the version reported by /info.
func WithVersion(v string) Option {
	return func(s *Server) {
		s.Version = v
	}
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine ports.Engine, opts ...Option) http.Handler {
	s := &Server{
		Engine:  engine,
		Version: "dev",
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)

	r.Route("/machines", func(r chi.Router) {
		r.Get("/", s.ListMachines)
		r.Route("/{name}", func(r chi.Router) {
			r.Put("/", s.PutMachine)
			r.Get("/", s.GetMachine)
			r.Get("/graph", s.GetGraph)
			r.Post("/evaluate", s.EvaluateMachine)
		})
	})
	r.Post("/evaluate", s.EvaluateAll)
	r.Get("/report", s.GetReport)

	if s.Metrics != nil {
		r.Handle("/metrics", s.Metrics)
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "automata-http",
		"version": s.Version,
	})
}

// PutMachine handles the PUT /machines/{name} request.
// The body is the raw machine description. An INVALID machine is still
// registered and answered with 422 and its record.
func (s *Server) PutMachine(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := sanitizer.ValidateName(name); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	body, err := readBody(w, r)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		s.logger.Warn("PutMachine: invalid request body", "machine", name, "err", err)
		return
	}

	status := http.StatusCreated
	if _, err := s.Engine.Upload(r.Context(), name, body); err != nil {
		status = http.StatusUnprocessableEntity
		s.logger.Info("PutMachine: machine invalid", "machine", name, "err", err)
	}
	rec, err := s.Engine.Record(name)
	if err != nil {
		s.writeError(w, "PutMachine", err)
		return
	}
	s.writeJSON(w, status, rec)
}

// ListMachines handles the GET /machines request.
func (s *Server) ListMachines(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Engine.Report())
}

// GetMachine handles the GET /machines/{name} request.
func (s *Server) GetMachine(w http.ResponseWriter, r *http.Request) {
	rec, err := s.Engine.Record(chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, "GetMachine", err)
		return
	}
	s.writeJSON(w, http.StatusOK, rec)
}

// GetGraph handles the GET /machines/{name}/graph request.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	m, ok := s.lookup(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, graph.GenerateMermaid(m))
}

// EvaluateMachine handles the POST /machines/{name}/evaluate request.
// The body is the batch, one candidate string per line.
func (s *Server) EvaluateMachine(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	body, err := readBody(w, r)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	res, err := s.Engine.Evaluate(r.Context(), name, body)
	if err != nil {
		s.writeError(w, "EvaluateMachine", err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

// EvaluateAll handles the POST /evaluate request.
func (s *Server) EvaluateAll(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	results, err := s.Engine.EvaluateAll(r.Context(), body)
	if err != nil {
		s.writeError(w, "EvaluateAll", err)
		return
	}
	if results == nil {
		results = []*domain.BatchResult{}
	}
	s.writeJSON(w, http.StatusOK, results)
}

// GetReport handles the GET /report request, answering the summary log text.
func (s *Server) GetReport(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	out := report.Format(s.Engine.Report())
	if out != "" {
		out += "\n"
	}
	io.WriteString(w, out)
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*domain.Machine, bool) {
	m, err := s.Engine.Machine(chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, "lookup", err)
		return nil, false
	}
	return m, true
}

func (s *Server) writeError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrMachineNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrMachineInvalid):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, fmt.Sprintf("%s error: %v", op, err), http.StatusInternalServerError)
		s.logger.Error(op+" failed", "err", err)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}

func readBody(w http.ResponseWriter, r *http.Request) (string, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, int64(sanitizer.MaxInputSize())))
	if err != nil {
		return "", err
	}
	return string(data), nil
}
