// Package domain defines the core types for the PlayProof level engine.
package domain

import (
	"bytes"
	"encoding/json"
)

// SchemaGridLevelV1 is the schema identifier every candidate level must carry.
const SchemaGridLevelV1 = "playproof.gridlevel.v1"

// GameID identifies a game variant.
type GameID string

const (
	GameMiniGolf   GameID = "minigolf"
	GameArchery    GameID = "archery"
	GameBasketball GameID = "basketball"
)

// Difficulty is the requested difficulty tier for a level.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Grid is the tile matrix of a level. Tiles holds Rows strings of Cols
// single-character tokens each, row-major from the top of the board.
type Grid struct {
	Cols  int      `json:"cols"`
	Rows  int      `json:"rows"`
	Tiles []string `json:"tiles"`
}

// TilePoint is a position in tile coordinates (x = column, y = row).
type TilePoint struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Entity type discriminators.
const (
	EntityMovingBlock = "movingBlock"
	EntityPortal      = "portal"
)

// Entity is a typed record attached to a level. Fields beyond Type are
// populated depending on the discriminator.
type Entity struct {
	Type string `json:"type"`

	// movingBlock
	Axis             string  `json:"axis,omitempty"` // "x" or "y"
	RangeTiles       int     `json:"rangeTiles,omitempty"`
	SpeedTilesPerSec float64 `json:"speedTilesPerSec,omitempty"`
	Mode             string  `json:"mode,omitempty"` // "pingpong" or "loop"
	Phase            float64 `json:"phase,omitempty"`

	// portal
	Entrance               *TilePoint `json:"entrance,omitempty"`
	Exit                   *TilePoint `json:"exit,omitempty"`
	CooldownMs             int        `json:"cooldownMs,omitempty"`
	ExitVelocityMultiplier float64    `json:"exitVelocityMultiplier,omitempty"`
}

// EntityList tolerates generator mistakes: a missing or non-array entities
// field decodes to nil instead of failing the whole level. The structural
// validator later normalizes nil to an empty list and attaches a warning.
type EntityList []Entity

// UnmarshalJSON decodes an entity array, mapping any non-array JSON value
// (null, object, string) to nil without error.
func (l *EntityList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		*l = nil
		return nil
	}
	var entities []Entity
	if err := json.Unmarshal(trimmed, &entities); err != nil {
		*l = nil
		return nil
	}
	*l = entities
	return nil
}

// LevelRules holds per-level gameplay parameters.
type LevelRules struct {
	Difficulty Difficulty `json:"difficulty"`
	ParShots   int        `json:"parShots,omitempty"`
	MaxShots   int        `json:"maxShots,omitempty"`
}

// Design carries optional narrative metadata produced by the generator.
type Design struct {
	Intent         string `json:"intent,omitempty"`
	PlayerHint     string `json:"playerHint,omitempty"`
	SolutionSketch string `json:"solutionSketch,omitempty"`
	AestheticNotes string `json:"aestheticNotes,omitempty"`
}

// GridLevel is the canonical tile-grid representation of a level.
// Validators, simulators, and the compiler treat it as immutable; the sole
// documented exception is the structural validator normalizing a missing
// Entities list to an empty one.
type GridLevel struct {
	Schema   string     `json:"schema"`
	GameID   GameID     `json:"gameId"`
	Version  int        `json:"version"`
	Seed     int64      `json:"seed,omitempty"`
	Grid     *Grid      `json:"grid"`
	Entities EntityList `json:"entities"`
	Rules    LevelRules `json:"rules"`
	Design   *Design    `json:"design,omitempty"`
}

// Stage names the phase that raised an Issue.
type Stage string

const (
	StageStructural Stage = "structural"
	StagePlacement  Stage = "placement"
	StageLint       Stage = "lint"
	StageSimulation Stage = "simulation"
)

// Severity classifies an Issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is a single finding from a validation, lint, or simulation pass.
// Code is a stable machine-readable identifier.
type Issue struct {
	Stage    Stage          `json:"stage"`
	Code     string         `json:"code"`
	Message  string         `json:"message"`
	Severity Severity       `json:"severity"`
	Data     map[string]any `json:"data,omitempty"`
}

// ValidationReport aggregates structural and placement findings.
type ValidationReport struct {
	Valid    bool    `json:"valid"`
	Errors   []Issue `json:"errors"`
	Warnings []Issue `json:"warnings"`
}

// LintReport holds non-blocking style findings. Strict reflects the
// requested difficulty tier for downstream policy decisions.
type LintReport struct {
	Strict bool    `json:"strict"`
	Issues []Issue `json:"issues"`
}

// SimulationReport is the uniform solvability result contract.
// On success Attempts is the 1-based scan index of the winning candidate;
// on failure it equals the full search-space size.
type SimulationReport struct {
	Passed   bool   `json:"passed"`
	Attempts int    `json:"attempts"`
	Note     string `json:"note"`
}

// GenerateResult is the outcome of one external generation call.
type GenerateResult struct {
	Level       *GridLevel `json:"level"`
	RawResponse string     `json:"rawResponse"`
	Temperature float64    `json:"temperature"`
	LatencyMs   int64      `json:"latencyMs"`
	Error       string     `json:"error,omitempty"`
}

// SanitizeResult is the outcome of the external sanitizer pass.
type SanitizeResult struct {
	Level *GridLevel `json:"level"`
	Fixes []string   `json:"fixes"`
}

// GenerationMeta describes how an accepted or fallback level was produced.
type GenerationMeta struct {
	RequestID      string    `json:"requestId"`
	Generator      string    `json:"generator"`
	Attempts       int       `json:"attempts"`
	TotalLatencyMs int64     `json:"totalLatencyMs"`
	Temperatures   []float64 `json:"temperatures"`
}

// LevelResponse is the orchestrator's final answer: an accepted or fallback
// level together with fresh reports for that exact level.
type LevelResponse struct {
	Level          *GridLevel        `json:"level"`
	Validation     ValidationReport  `json:"validation"`
	Lint           LintReport        `json:"lint"`
	Simulation     *SimulationReport `json:"simulation,omitempty"`
	FellBack       bool              `json:"fellBack"`
	FallbackReason string            `json:"fallbackReason,omitempty"`
	RecentErrors   []string          `json:"recentErrors,omitempty"`
	Meta           GenerationMeta    `json:"meta"`
}
