// Package validate implements the structural and placement rule passes
// behind a single engine parameterized by a game ruleset.
package validate

import (
	"fmt"

	"github.com/playproof/levelengine/internal/domain"
	"github.com/playproof/levelengine/internal/rules"
)

// Engine validates candidate levels for one game variant.
type Engine struct {
	rs *rules.GameRuleset
}

// NewEngine creates a validation engine for the given ruleset.
func NewEngine(rs *rules.GameRuleset) *Engine {
	return &Engine{rs: rs}
}

// Validate runs the structural pass and, if the grid is structurally sound,
// the placement pass. It never returns a Go error: malformed input surfaces
// as issues inside the report. The one in-place mutation is normalizing a
// missing entities list (documented leniency, paired with a warning).
func (e *Engine) Validate(level *domain.GridLevel) domain.ValidationReport {
	var rep reportBuilder

	board := e.structural(level, &rep)
	if board != nil && len(rep.errors) == 0 {
		e.placement(level, board, &rep)
	}

	return rep.build()
}

// reportBuilder accumulates issues for one validation run.
type reportBuilder struct {
	errors   []domain.Issue
	warnings []domain.Issue
}

func (b *reportBuilder) add(stage domain.Stage, severity domain.Severity, code, format string, args ...any) {
	issue := domain.Issue{
		Stage:    stage,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Severity: severity,
	}
	if severity == domain.SeverityError {
		b.errors = append(b.errors, issue)
	} else {
		b.warnings = append(b.warnings, issue)
	}
}

func (b *reportBuilder) errorf(stage domain.Stage, code, format string, args ...any) {
	b.add(stage, domain.SeverityError, code, format, args...)
}

func (b *reportBuilder) warnf(stage domain.Stage, code, format string, args ...any) {
	b.add(stage, domain.SeverityWarning, code, format, args...)
}

func (b *reportBuilder) build() domain.ValidationReport {
	rep := domain.ValidationReport{
		Valid:    len(b.errors) == 0,
		Errors:   b.errors,
		Warnings: b.warnings,
	}
	if rep.Errors == nil {
		rep.Errors = []domain.Issue{}
	}
	if rep.Warnings == nil {
		rep.Warnings = []domain.Issue{}
	}
	return rep
}
