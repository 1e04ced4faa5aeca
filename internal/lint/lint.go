// Package lint produces non-blocking style and quality warnings.
// Lint issues never block acceptance.
package lint

import (
	"fmt"

	"github.com/playproof/levelengine/internal/domain"
	"github.com/playproof/levelengine/internal/grid"
	"github.com/playproof/levelengine/internal/rules"
)

// Lint issue codes.
const (
	CodeIntentMissing   = "design.intent.missing"
	CodeHintMissing     = "design.hint.missing"
	CodeSketchMissing   = "design.sketch.missing"
	CodeDensityExceeded = "density.exceeded"
)

// Analyzer runs the lint pass for one game variant.
type Analyzer struct {
	rs *rules.GameRuleset
}

// New creates a lint analyzer for the given ruleset.
func New(rs *rules.GameRuleset) *Analyzer {
	return &Analyzer{rs: rs}
}

// Lint flags missing narrative metadata and visual clutter. Strict reflects
// the requested difficulty tier so downstream policy can treat hard-tier
// levels more carefully; it does not change which issues are raised.
func (a *Analyzer) Lint(level *domain.GridLevel) domain.LintReport {
	rep := domain.LintReport{Issues: []domain.Issue{}}
	if level == nil {
		return rep
	}
	rep.Strict = level.Rules.Difficulty == domain.DifficultyHard

	if level.Design == nil || level.Design.Intent == "" {
		rep.Issues = append(rep.Issues, warn(CodeIntentMissing, "level has no design intent"))
	}
	if level.Design == nil || level.Design.PlayerHint == "" {
		rep.Issues = append(rep.Issues, warn(CodeHintMissing, "level has no player hint"))
	}
	if level.Design == nil || level.Design.SolutionSketch == "" {
		rep.Issues = append(rep.Issues, warn(CodeSketchMissing, "level has no solution sketch"))
	}

	if g := level.Grid; g != nil && g.Cols == a.rs.Cols && g.Rows == a.rs.Rows && len(g.Tiles) == a.rs.Rows {
		usable := true
		for _, row := range g.Tiles {
			if len(row) != a.rs.Cols {
				usable = false
				break
			}
		}
		if usable {
			density := grid.New(g).Density(rules.TokenEmpty)
			if density > a.rs.MaxTileDensity {
				rep.Issues = append(rep.Issues, warn(CodeDensityExceeded,
					fmt.Sprintf("tile density %.2f exceeds the %.2f ceiling for %s", density, a.rs.MaxTileDensity, a.rs.Game)))
			}
		}
	}

	return rep
}

func warn(code, msg string) domain.Issue {
	return domain.Issue{
		Stage:    domain.StageLint,
		Code:     code,
		Message:  msg,
		Severity: domain.SeverityWarning,
	}
}
