package lint

import (
	"strings"
	"testing"

	"github.com/playproof/levelengine/internal/domain"
	"github.com/playproof/levelengine/internal/rules"
)

func blankRows() []string {
	rows := make([]string, rules.BoardRows)
	for i := range rows {
		rows[i] = strings.Repeat(".", rules.BoardCols)
	}
	return rows
}

func makeLevel(difficulty domain.Difficulty, design *domain.Design) *domain.GridLevel {
	return &domain.GridLevel{
		Schema:   domain.SchemaGridLevelV1,
		GameID:   domain.GameMiniGolf,
		Grid:     &domain.Grid{Cols: rules.BoardCols, Rows: rules.BoardRows, Tiles: blankRows()},
		Entities: domain.EntityList{},
		Rules:    domain.LevelRules{Difficulty: difficulty},
		Design:   design,
	}
}

func analyzer(t *testing.T) *Analyzer {
	t.Helper()
	rs, err := rules.ForGame(domain.GameMiniGolf)
	if err != nil {
		t.Fatal(err)
	}
	return New(rs)
}

func hasCode(issues []domain.Issue, code string) bool {
	for _, issue := range issues {
		if issue.Code == code {
			return true
		}
	}
	return false
}

func TestLintMissingDesign(t *testing.T) {
	rep := analyzer(t).Lint(makeLevel(domain.DifficultyEasy, nil))
	for _, want := range []string{CodeIntentMissing, CodeHintMissing, CodeSketchMissing} {
		if !hasCode(rep.Issues, want) {
			t.Errorf("want %s, got %v", want, rep.Issues)
		}
	}
	if rep.Strict {
		t.Fatal("easy tier must not set strict")
	}
}

func TestLintCompleteDesign(t *testing.T) {
	design := &domain.Design{
		Intent:         "a gentle opener",
		PlayerHint:     "aim left of the wall",
		SolutionSketch: "bank off the top edge",
	}
	rep := analyzer(t).Lint(makeLevel(domain.DifficultyEasy, design))
	if len(rep.Issues) != 0 {
		t.Fatalf("want no issues, got %v", rep.Issues)
	}
}

func TestLintPartialDesign(t *testing.T) {
	design := &domain.Design{Intent: "a gentle opener"}
	rep := analyzer(t).Lint(makeLevel(domain.DifficultyEasy, design))
	if hasCode(rep.Issues, CodeIntentMissing) {
		t.Fatal("intent is present")
	}
	if !hasCode(rep.Issues, CodeHintMissing) || !hasCode(rep.Issues, CodeSketchMissing) {
		t.Fatalf("want hint and sketch warnings, got %v", rep.Issues)
	}
}

func TestLintStrictOnHardTier(t *testing.T) {
	rep := analyzer(t).Lint(makeLevel(domain.DifficultyHard, nil))
	if !rep.Strict {
		t.Fatal("hard tier must set strict")
	}
}

func TestLintDensityCeiling(t *testing.T) {
	level := makeLevel(domain.DifficultyEasy, &domain.Design{
		Intent: "x", PlayerHint: "y", SolutionSketch: "z",
	})
	// Fill half the board; the minigolf ceiling is 0.35.
	for y := 0; y < 7; y++ {
		level.Grid.Tiles[y] = strings.Repeat("#", rules.BoardCols)
	}
	rep := analyzer(t).Lint(level)
	if !hasCode(rep.Issues, CodeDensityExceeded) {
		t.Fatalf("want %s, got %v", CodeDensityExceeded, rep.Issues)
	}
}

func TestLintNilLevel(t *testing.T) {
	rep := analyzer(t).Lint(nil)
	if len(rep.Issues) != 0 || rep.Strict {
		t.Fatalf("nil level must produce an empty report, got %+v", rep)
	}
}

func TestLintIssuesAreWarnings(t *testing.T) {
	rep := analyzer(t).Lint(makeLevel(domain.DifficultyEasy, nil))
	for _, issue := range rep.Issues {
		if issue.Severity != domain.SeverityWarning {
			t.Fatalf("lint issue %s has severity %s", issue.Code, issue.Severity)
		}
		if issue.Stage != domain.StageLint {
			t.Fatalf("lint issue %s has stage %s", issue.Code, issue.Stage)
		}
	}
}
