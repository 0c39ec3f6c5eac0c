package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/strata"
	"github.com/aretw0/strata/internal/config"
	"github.com/aretw0/strata/internal/logging"
	"github.com/aretw0/strata/pkg/adapters/memory"
	"github.com/aretw0/strata/pkg/domain"
	"github.com/aretw0/strata/pkg/ports"
	"github.com/aretw0/strata/pkg/session"
	"github.com/aretw0/strata/pkg/view"
)

// ErrUnknownPuzzle is returned when a session is requested for a puzzle the catalogue lacks.
var ErrUnknownPuzzle = errors.New("unknown puzzle")

// Server hosts puzzle sessions over HTTP, SSE and WebSocket.
type Server struct {
	Sessions *session.Manager
	Streams  *StreamManager

	store      ports.PuzzleStore
	loader     ports.PuzzleLoader
	hooks      domain.LifecycleHooks
	gatherer   prometheus.Gatherer
	puzzleOpts []strata.Option
	logger     *slog.Logger
	validate   *validator.Validate
}

// Option configures the Server.
type Option func(*Server)

// WithStore sets where live sessions are kept (default: memory).
func WithStore(store ports.PuzzleStore) Option {
	return func(s *Server) {
		s.store = store
	}
}

// WithLoader sets the puzzle catalogue used by POST /sessions (default: the embedded puzzle).
func WithLoader(loader ports.PuzzleLoader) Option {
	return func(s *Server) {
		s.loader = loader
	}
}

// WithDefaultPuzzle sets the puzzle used when POST /sessions names none.
func WithDefaultPuzzle(cfg *config.Config) Option {
	return func(s *Server) {
		s.puzzleOpts = append(s.puzzleOpts, strata.WithConfig(cfg))
	}
}

// WithLifecycleHooks attaches hooks to every session's puzzle.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Server) {
		s.hooks = hooks
	}
}

// WithGatherer exposes the given registry on /metrics (default: the global registry).
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a Server.
func NewServer(opts ...Option) *Server {
	s := &Server{
		Streams:  NewStreamManager(),
		store:    memory.NewStore(),
		loader:   memory.NewDefaultLoader(),
		gatherer: prometheus.DefaultGatherer,
		logger:   logging.NewNop(),
		validate: validator.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Streams.logger = s.logger
	s.Sessions = session.NewManager(s.store, s.factory(""), session.WithLogger(s.logger))
	return s
}

// NewHandler creates a Server with opts and returns its HTTP handler.
func NewHandler(opts ...Option) http.Handler {
	return NewServer(opts...).Handler()
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	r.Get("/puzzles", s.ListPuzzles)

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.CreateSession)
		r.Get("/", s.ListSessions)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetSession)
			r.Delete("/", s.DeleteSession)
			r.Get("/history", s.GetHistory)
			r.Post("/drop", s.Drop)
			r.Post("/select/piece", s.SelectPiece)
			r.Post("/select/slot", s.SelectSlot)
			r.Post("/undo", s.Undo)
			r.Post("/redo", s.Redo)
			r.Post("/reset", s.Reset)
			r.Post("/check", s.Check)
			r.Post("/resize", s.Resize)
			r.Get("/events", s.SubscribeEvents)
			r.Get("/ws", s.ServeWS)
		})
	})

	return enableCORS(r)
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

// factory builds session puzzles for the named catalogue entry ("" for the default).
// Every puzzle publishes its views to the session's stream.
func (s *Server) factory(name string) session.Factory {
	return func(id string) (*strata.Puzzle, error) {
		opts := append([]strata.Option(nil), s.puzzleOpts...)
		if name != "" {
			data, err := s.loader.GetPuzzle(name)
			if err != nil {
				return nil, fmt.Errorf("%w: %s", ErrUnknownPuzzle, name)
			}
			cfg, err := config.Parse(data)
			if err != nil {
				return nil, fmt.Errorf("puzzle %s: %w", name, err)
			}
			opts = append(opts, strata.WithConfig(cfg))
		}
		opts = append(opts,
			strata.WithID(id),
			strata.WithLifecycleHooks(s.hooks),
			strata.WithLogger(s.logger),
			strata.WithPresenter(strata.PresenterFunc(func(m view.Model) {
				s.Streams.Publish(id, m)
			})),
		)
		return strata.New(opts...)
	}
}

// -- Helpers --

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrSessionNotFound), errors.Is(err, ErrUnknownPuzzle):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrUnknownPiece),
		errors.Is(err, domain.ErrSlotOutOfRange),
		errors.Is(err, errBadRequest):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
	} else {
		s.logger.Debug("request rejected", "path", r.URL.Path, "status", status, "err", err)
	}
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}

var errBadRequest = errors.New("invalid request")

// decode reads an optional JSON body into dst and validates it.
func (s *Server) decode(r *http.Request, dst any) error {
	if r.Body != nil && r.ContentLength != 0 {
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: %v", errBadRequest, err)
		}
	}
	if err := s.validate.Struct(dst); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, describeValidation(err))
	}
	return nil
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, len(verrs))
	for i, fe := range verrs {
		parts[i] = fmt.Sprintf("%s failed %s", strings.ToLower(fe.Field()), fe.Tag())
	}
	return strings.Join(parts, ", ")
}
