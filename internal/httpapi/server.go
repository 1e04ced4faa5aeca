// Package httpapi exposes the engine over HTTP JSON. Handlers are thin:
// decode, dispatch to the engine, encode.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/playproof/levelengine/internal/compile"
	"github.com/playproof/levelengine/internal/domain"
	"github.com/playproof/levelengine/internal/lint"
	"github.com/playproof/levelengine/internal/orchestrate"
	"github.com/playproof/levelengine/internal/rules"
	"github.com/playproof/levelengine/internal/sim"
	"github.com/playproof/levelengine/internal/validate"
)

// Server wires the HTTP routes to the engine components.
type Server struct {
	orch *orchestrate.Orchestrator
	sims *sim.Registry
	log  zerolog.Logger
}

// New creates the HTTP server facade.
func New(orch *orchestrate.Orchestrator, sims *sim.Registry, logger zerolog.Logger) *Server {
	return &Server{
		orch: orch,
		sims: sims,
		log:  logger.With().Str("component", "httpapi").Logger(),
	}
}

// Router builds the chi route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(5 * time.Minute))

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/levels", s.handleGenerate)
		r.Route("/games/{gameID}", func(r chi.Router) {
			r.Post("/validate", s.handleValidate)
			r.Post("/lint", s.handleLint)
			r.Post("/simulate", s.handleSimulate)
			r.Post("/compile", s.handleCompile)
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.respond(w, http.StatusOK, map[string]string{"status": "ok"})
}

// generateRequest is the POST /v1/levels body.
type generateRequest struct {
	GameID         domain.GameID     `json:"gameId"`
	Difficulty     domain.Difficulty `json:"difficulty"`
	Intent         string            `json:"intent,omitempty"`
	Hint           string            `json:"hint,omitempty"`
	SkipSimulation bool              `json:"skipSimulation,omitempty"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, domain.WrapEngineError(domain.ErrGeneratorResponse.Code, "decode request", err))
		return
	}

	resp, err := s.orch.Run(r.Context(), orchestrate.Request{
		GameID:         req.GameID,
		Difficulty:     req.Difficulty,
		Intent:         req.Intent,
		Hint:           req.Hint,
		SkipSimulation: req.SkipSimulation,
	})
	if err != nil {
		s.respondEngineError(w, err)
		return
	}
	s.respond(w, http.StatusOK, resp)
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	rs, level, ok := s.decodeGameLevel(w, r)
	if !ok {
		return
	}
	report := validate.NewEngine(rs).Validate(level)
	s.respond(w, http.StatusOK, report)
}

func (s *Server) handleLint(w http.ResponseWriter, r *http.Request) {
	rs, level, ok := s.decodeGameLevel(w, r)
	if !ok {
		return
	}
	report := lint.New(rs).Lint(level)
	s.respond(w, http.StatusOK, report)
}

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	rs, level, ok := s.decodeGameLevel(w, r)
	if !ok {
		return
	}
	simulator, err := s.sims.For(rs.Game)
	if err != nil {
		s.respondEngineError(w, err)
		return
	}
	report := simulator.Simulate(level)
	s.respond(w, http.StatusOK, report)
}

func (s *Server) handleCompile(w http.ResponseWriter, r *http.Request) {
	rs, level, ok := s.decodeGameLevel(w, r)
	if !ok {
		return
	}
	spec, err := compile.New(rs).Compile(level)
	if err != nil {
		s.respondEngineError(w, err)
		return
	}
	s.respond(w, http.StatusOK, spec)
}

// decodeGameLevel resolves the {gameID} route ruleset and decodes the level
// body. It writes the error response itself when something is off.
func (s *Server) decodeGameLevel(w http.ResponseWriter, r *http.Request) (*rules.GameRuleset, *domain.GridLevel, bool) {
	game := domain.GameID(chi.URLParam(r, "gameID"))
	rs, err := rules.ForGame(game)
	if err != nil {
		s.respondError(w, http.StatusNotFound, err)
		return nil, nil, false
	}

	var level domain.GridLevel
	if err := json.NewDecoder(r.Body).Decode(&level); err != nil {
		s.respondError(w, http.StatusBadRequest, domain.WrapEngineError(domain.ErrGeneratorResponse.Code, "decode level", err))
		return nil, nil, false
	}
	return rs, &level, true
}

// errorBody is the uniform HTTP error envelope.
type errorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (s *Server) respond(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Error().Err(err).Msg("encode response")
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, err error) {
	var ee *domain.EngineError
	if !errors.As(err, &ee) {
		ee = domain.NewEngineError(0, err.Error())
	}
	s.respond(w, status, errorBody{Code: ee.Code, Message: ee.Message})
}

// respondEngineError maps engine error codes onto HTTP statuses.
func (s *Server) respondEngineError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	var ee *domain.EngineError
	if errors.As(err, &ee) {
		switch ee.Code {
		case domain.ErrUnknownGame.Code, domain.ErrNoSimulator.Code, domain.ErrGoldenMissing.Code:
			status = http.StatusNotFound
		case domain.ErrLevelMissing.Code, domain.ErrGridUnusable.Code, domain.ErrLevelNotValid.Code:
			status = http.StatusUnprocessableEntity
		case domain.ErrGeneratorUnavailable.Code:
			status = http.StatusBadGateway
		}
	}
	s.respondError(w, status, err)
}
