package validate

import (
	"github.com/playproof/levelengine/internal/domain"
	"github.com/playproof/levelengine/internal/grid"
	"github.com/playproof/levelengine/internal/rules"
)

// Structural issue codes.
const (
	CodeLevelMissing     = "level.missing"
	CodeEntitiesRepaired = "entities.repaired"
	CodeSchema           = "schema"
	CodeGame             = "game"
	CodeDimensions       = "dimensions"
	CodeRowLength        = "row.length"
	CodeTokenUnknown     = "token.unknown"
	CodeSpawnCount       = "spawn.count"
	CodeGoalCount        = "goal.count"
)

// structural runs the schema/shape/token sanity checks. It returns a board
// only when the grid dimensions are usable; positional rules are meaningless
// on a malformed grid, so dimension failures short-circuit the pass.
func (e *Engine) structural(level *domain.GridLevel, rep *reportBuilder) *grid.Board {
	if level == nil {
		rep.errorf(domain.StageStructural, CodeLevelMissing, "no level object was provided")
		return nil
	}

	// Defensive auto-repair: a missing or malformed entities field is
	// normalized in place rather than rejected.
	if level.Entities == nil {
		level.Entities = domain.EntityList{}
		rep.warnf(domain.StageStructural, CodeEntitiesRepaired,
			"entities field was missing or not an array; defaulted to empty list")
	}

	if level.Schema != domain.SchemaGridLevelV1 {
		rep.errorf(domain.StageStructural, CodeSchema,
			"schema %q is not %q", level.Schema, domain.SchemaGridLevelV1)
	}
	if level.GameID != e.rs.Game {
		rep.errorf(domain.StageStructural, CodeGame,
			"gameId %q does not match expected %q", level.GameID, e.rs.Game)
	}

	g := level.Grid
	if g == nil || g.Cols != e.rs.Cols || g.Rows != e.rs.Rows || len(g.Tiles) != e.rs.Rows {
		rep.errorf(domain.StageStructural, CodeDimensions,
			"grid must be exactly %dx%d tiles", e.rs.Cols, e.rs.Rows)
		return nil
	}

	badRows := false
	for y, row := range g.Tiles {
		if len(row) != e.rs.Cols {
			rep.errorf(domain.StageStructural, CodeRowLength,
				"row %d has %d tokens, want %d", y, len(row), e.rs.Cols)
			badRows = true
		}
	}
	if badRows {
		return nil
	}

	board := grid.New(g)

	for y := 0; y < board.Rows; y++ {
		for x := 0; x < board.Cols; x++ {
			if tok := board.Token(x, y); !e.rs.Alphabet[tok] {
				rep.errorf(domain.StageStructural, CodeTokenUnknown,
					"token %q at (%d,%d) is not in the %s alphabet (%s)",
					string(tok), x, y, e.rs.Game, e.rs.AlphabetString())
			}
		}
	}

	if n := board.Count(rules.TokenSpawn); n != 1 {
		rep.errorf(domain.StageStructural, CodeSpawnCount,
			"grid must contain exactly one spawn token, found %d", n)
	}
	if n := board.Count(rules.TokenGoal); n != 1 {
		rep.errorf(domain.StageStructural, CodeGoalCount,
			"grid must contain exactly one goal token, found %d", n)
	}

	return board
}
