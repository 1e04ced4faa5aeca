// Package orchestrate drives the bounded retry loop that turns raw
// generator output into an accepted, guaranteed-playable level:
//
//	GenerateIntent → GenerateCandidate → Validate → Simulate → Accept
//	                                        └────────→ Retry → Fallback
//
// The loop is strictly sequential per request; only the attempt ceiling
// bounds total work.
package orchestrate

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/playproof/levelengine/internal/domain"
	"github.com/playproof/levelengine/internal/generate"
	"github.com/playproof/levelengine/internal/lint"
	"github.com/playproof/levelengine/internal/rules"
	"github.com/playproof/levelengine/internal/sanitize"
	"github.com/playproof/levelengine/internal/sim"
	"github.com/playproof/levelengine/internal/validate"
)

// DefaultMaxAttempts is the generation attempt budget.
const DefaultMaxAttempts = 5

// maxRecentErrors caps the error messages attached to a fallback response.
const maxRecentErrors = 5

// phase names the orchestrator states, used for logging.
type phase string

const (
	phaseGenerate phase = "generate"
	phaseSanitize phase = "sanitize"
	phaseValidate phase = "validate"
	phaseSimulate phase = "simulate"
	phaseAccept   phase = "accept"
	phaseRetry    phase = "retry"
	phaseFallback phase = "fallback"
)

// GoldenSet is the consumed curated fallback capability.
type GoldenSet interface {
	Find(ctx context.Context, game domain.GameID, difficulty domain.Difficulty) (*domain.GridLevel, error)
}

// Request asks the orchestrator for one accepted level.
type Request struct {
	GameID         domain.GameID
	Difficulty     domain.Difficulty
	Intent         string
	Hint           string
	SkipSimulation bool
}

// Orchestrator coordinates generation, sanitization, validation, simulation,
// and fallback for level requests.
type Orchestrator struct {
	Generator   generate.Generator
	Sanitizer   sanitize.Sanitizer
	Golden      GoldenSet
	Simulators  *sim.Registry
	MaxAttempts int

	log zerolog.Logger
}

// New creates an orchestrator with the default attempt budget.
func New(gen generate.Generator, san sanitize.Sanitizer, goldenSet GoldenSet, sims *sim.Registry, logger zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		Generator:   gen,
		Sanitizer:   san,
		Golden:      goldenSet,
		Simulators:  sims,
		MaxAttempts: DefaultMaxAttempts,
		log:         logger.With().Str("component", "orchestrator").Logger(),
	}
}

// attemptState carries the feedback from one attempt into the next.
type attemptState struct {
	feedback     []domain.Issue
	lastRaw      string
	lastFailure  string
	recentErrors []string
	temps        []float64
	latencyMs    int64
}

func (st *attemptState) recordErrors(issues []domain.Issue) {
	for _, issue := range issues {
		if issue.Severity == domain.SeverityError {
			st.recentErrors = append(st.recentErrors, issue.Message)
		}
	}
}

func (st *attemptState) recent() []string {
	if len(st.recentErrors) <= maxRecentErrors {
		return st.recentErrors
	}
	return st.recentErrors[len(st.recentErrors)-maxRecentErrors:]
}

// Run executes the retry loop and always returns either an accepted level or
// a re-validated fallback golden level. It only errors when no level can be
// produced at all (unknown game, empty golden set).
func (o *Orchestrator) Run(ctx context.Context, req Request) (*domain.LevelResponse, error) {
	rs, err := rules.ForGame(req.GameID)
	if err != nil {
		return nil, err
	}

	validator := validate.NewEngine(rs)
	linter := lint.New(rs)
	simulator, err := o.Simulators.For(req.GameID)
	if err != nil {
		return nil, err
	}

	requestID := uuid.NewString()
	logger := o.log.With().Str("request_id", requestID).Str("game", string(req.GameID)).Logger()

	st := &attemptState{}
	for attempt := 1; attempt <= o.MaxAttempts; attempt++ {
		resp, ok := o.runAttempt(ctx, req, attempt, requestID, validator, linter, simulator, st, logger)
		if ok {
			return resp, nil
		}
	}

	return o.fallback(ctx, req, requestID, validator, linter, simulator, st, logger)
}

// runAttempt performs one generate→sanitize→validate→simulate pass. It
// returns the accepted response, or false when the attempt must be retried.
func (o *Orchestrator) runAttempt(
	ctx context.Context,
	req Request,
	attempt int,
	requestID string,
	validator *validate.Engine,
	linter *lint.Analyzer,
	simulator sim.Simulator,
	st *attemptState,
	logger zerolog.Logger,
) (*domain.LevelResponse, bool) {
	logger.Debug().Int("attempt", attempt).Str("phase", string(phaseGenerate)).Msg("generating candidate")

	var result *domain.GenerateResult
	var err error
	if attempt == 1 {
		result, err = o.Generator.Generate(ctx, generate.Request{
			GameID:     req.GameID,
			Difficulty: req.Difficulty,
			Intent:     req.Intent,
			Hint:       req.Hint,
		})
	} else {
		// Feed the previous attempt's faults back to bias the generator away
		// from the just-observed fault class.
		result, err = o.Generator.GenerateWithFeedback(ctx, generate.FeedbackRequest{
			Request: generate.Request{
				GameID:     req.GameID,
				Difficulty: req.Difficulty,
				Intent:     req.Intent,
				Hint:       req.Hint,
			},
			Issues:      st.feedback,
			RawResponse: st.lastRaw,
		})
	}
	if err != nil {
		st.lastFailure = "generator call failed: " + err.Error()
		logger.Warn().Int("attempt", attempt).Err(err).Msg("generator call failed")
		return nil, false
	}

	st.temps = append(st.temps, result.Temperature)
	st.latencyMs += result.LatencyMs
	if result.Error != "" {
		st.lastFailure = "generator reported: " + result.Error
		return nil, false
	}

	// Defensive shape check before structural validation even runs.
	if result.Level == nil || result.Level.Grid == nil || len(result.Level.Grid.Tiles) == 0 {
		st.lastFailure = "generator returned a level with no tile grid"
		st.feedback = []domain.Issue{{
			Stage:    domain.StageStructural,
			Code:     "grid.empty",
			Message:  "candidate level had a missing or empty tile grid",
			Severity: domain.SeverityError,
		}}
		st.lastRaw = result.RawResponse
		st.recentErrors = append(st.recentErrors, st.lastFailure)
		logger.Warn().Int("attempt", attempt).Msg("candidate had no tile grid")
		return nil, false
	}

	logger.Debug().Int("attempt", attempt).Str("phase", string(phaseSanitize)).Msg("sanitizing candidate")
	level := result.Level
	if sanitized, sanErr := o.Sanitizer.Sanitize(ctx, level); sanErr == nil && sanitized.Level != nil {
		level = sanitized.Level
	}

	logger.Debug().Int("attempt", attempt).Str("phase", string(phaseValidate)).Msg("validating candidate")
	validation := validator.Validate(level)
	lintRep := linter.Lint(level)

	issues := make([]domain.Issue, 0, len(validation.Errors)+len(validation.Warnings)+1)
	issues = append(issues, validation.Errors...)
	issues = append(issues, validation.Warnings...)

	var simRep *domain.SimulationReport
	solvable := true
	if validation.Valid && !req.SkipSimulation {
		logger.Debug().Int("attempt", attempt).Str("phase", string(phaseSimulate)).Msg("simulating candidate")
		r := simulator.Simulate(level)
		simRep = &r
		if !r.Passed {
			solvable = false
			issues = append(issues, domain.Issue{
				Stage:    domain.StageSimulation,
				Code:     "unsolvable",
				Message:  "no trajectory completed the level: " + r.Note,
				Severity: domain.SeverityError,
			})
		}
	}

	if validation.Valid && solvable {
		logger.Info().Int("attempt", attempt).Str("phase", string(phaseAccept)).Msg("candidate accepted")
		return &domain.LevelResponse{
			Level:      level,
			Validation: validation,
			Lint:       lintRep,
			Simulation: simRep,
			Meta: domain.GenerationMeta{
				RequestID:      requestID,
				Generator:      o.Generator.Name(),
				Attempts:       attempt,
				TotalLatencyMs: st.latencyMs,
				Temperatures:   st.temps,
			},
		}, true
	}

	st.feedback = issues
	st.lastRaw = result.RawResponse
	st.recordErrors(issues)
	if !solvable {
		st.lastFailure = "candidate level was unsolvable"
	} else {
		st.lastFailure = "candidate level failed validation"
	}
	logger.Info().Int("attempt", attempt).Str("phase", string(phaseRetry)).
		Int("errors", len(validation.Errors)).Bool("solvable", solvable).Msg("candidate rejected")
	return nil, false
}

// fallback selects a curated golden level and re-validates it so the
// response carries fresh, accurate reports.
func (o *Orchestrator) fallback(
	ctx context.Context,
	req Request,
	requestID string,
	validator *validate.Engine,
	linter *lint.Analyzer,
	simulator sim.Simulator,
	st *attemptState,
	logger zerolog.Logger,
) (*domain.LevelResponse, error) {
	logger.Warn().Str("phase", string(phaseFallback)).Str("reason", st.lastFailure).Msg("attempt budget exhausted, using golden level")

	level, err := o.Golden.Find(ctx, req.GameID, req.Difficulty)
	if err != nil {
		return nil, err
	}

	validation := validator.Validate(level)
	lintRep := linter.Lint(level)

	var simRep *domain.SimulationReport
	if validation.Valid && !req.SkipSimulation {
		r := simulator.Simulate(level)
		simRep = &r
	}

	reason := st.lastFailure
	if reason == "" {
		reason = "generation attempt budget exhausted"
	}

	return &domain.LevelResponse{
		Level:          level,
		Validation:     validation,
		Lint:           lintRep,
		Simulation:     simRep,
		FellBack:       true,
		FallbackReason: reason,
		RecentErrors:   st.recent(),
		Meta: domain.GenerationMeta{
			RequestID:      requestID,
			Generator:      o.Generator.Name(),
			Attempts:       o.MaxAttempts,
			TotalLatencyMs: st.latencyMs,
			Temperatures:   st.temps,
		},
	}, nil
}
