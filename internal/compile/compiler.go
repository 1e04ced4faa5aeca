// Package compile transforms a validated GridLevel into a runtime spec in
// world units. The transform is pure and deliberately permissive: a
// structurally valid but imperfect level still compiles.
package compile

import (
	"github.com/playproof/levelengine/internal/domain"
	"github.com/playproof/levelengine/internal/grid"
	"github.com/playproof/levelengine/internal/rules"
)

// RuntimeVersion is stamped on every compiled spec.
const RuntimeVersion = 1

// Compiler compiles levels for one game variant.
type Compiler struct {
	rs *rules.GameRuleset
}

// New creates a compiler for the given ruleset.
func New(rs *rules.GameRuleset) *Compiler {
	return &Compiler{rs: rs}
}

// Compile converts the level to world units. It only errors when the grid is
// unusable or the spawn/goal anchors are absent, which cannot happen for a
// level that passed validation.
func (c *Compiler) Compile(level *domain.GridLevel) (*domain.RuntimeSpec, error) {
	if level == nil {
		return nil, domain.ErrLevelMissing
	}
	board, ok := usableBoard(level.Grid, c.rs)
	if !ok {
		return nil, domain.ErrGridUnusable
	}

	spawns := board.Find(rules.TokenSpawn)
	goals := board.Find(rules.TokenGoal)
	if len(spawns) == 0 || len(goals) == 0 {
		return nil, domain.ErrGridUnusable
	}

	scale := c.rs.Scale
	spec := &domain.RuntimeSpec{
		Version: RuntimeVersion,
		GameID:  c.rs.Game,
		World: domain.WorldSpec{
			Width:    float64(c.rs.Cols) * scale.TileSize,
			Height:   float64(c.rs.Rows) * scale.TileSize,
			Friction: scale.Friction,
		},
		Walls: c.categoryRects(board, rules.TokenWall),
	}

	spawn := tileCenter(spawns[0], scale.TileSize)
	goal := tileCenter(goals[0], scale.TileSize)
	actor := domain.CircleSpec{X: spawn.X, Y: spawn.Y, Radius: scale.ActorRadius}
	target := domain.CircleSpec{X: goal.X, Y: goal.Y, Radius: scale.GoalRadius}

	if c.rs.Game == domain.GameMiniGolf {
		spec.Ball = &actor
		spec.Hole = &target
		spec.Sand = c.categoryRects(board, rules.TokenSand)
		spec.Water = c.categoryRects(board, rules.TokenWater)
	} else {
		spec.Actor = &actor
		spec.Target = &target
	}

	spec.Currents = c.currents(board)
	spec.MovingBlocks = c.movingBlocks(level, board)
	spec.Portals = c.portals(level, board)

	return spec, nil
}

// categoryRects converts each connected component of the token into its
// bounding rectangle in world units.
func (c *Compiler) categoryRects(board *grid.Board, token byte) []domain.RectSpec {
	comps := grid.Components(board, func(tok byte) bool { return tok == token })
	out := make([]domain.RectSpec, 0, len(comps))
	for _, comp := range comps {
		out = append(out, c.toWorld(comp.Bounds))
	}
	return out
}

// currents maps each single-direction run to a direction-tagged rectangle.
func (c *Compiler) currents(board *grid.Board) []domain.CurrentSpec {
	var out []domain.CurrentSpec
	for _, token := range rules.HazardTokens {
		tok := token
		comps := grid.Components(board, func(t byte) bool { return t == tok })
		for _, comp := range comps {
			out = append(out, domain.CurrentSpec{
				RectSpec:  c.toWorld(comp.Bounds),
				Direction: rules.HazardDirection[tok],
			})
		}
	}
	return out
}

// movingBlocks resolves each declared moving-block entity against the
// discovered tile regions in scan order. When no region matches, the entity
// falls back to a default single-tile rectangle at the board center so an
// imperfect level still compiles.
func (c *Compiler) movingBlocks(level *domain.GridLevel, board *grid.Board) []domain.MovingBlockSpec {
	comps := grid.Components(board, func(tok byte) bool { return tok == rules.TokenMovingBlock })
	scale := c.rs.Scale

	var out []domain.MovingBlockSpec
	blockIdx := 0
	for _, ent := range level.Entities {
		if ent.Type != domain.EntityMovingBlock {
			continue
		}

		var bounds grid.Bounds
		if blockIdx < len(comps) {
			bounds = comps[blockIdx].Bounds
			blockIdx++
		} else {
			bounds = grid.Bounds{X: c.rs.Cols / 2, Y: c.rs.Rows / 2, W: 1, H: 1}
		}

		out = append(out, domain.MovingBlockSpec{
			RectSpec:         c.toWorld(bounds),
			Axis:             ent.Axis,
			RangeUnits:       float64(ent.RangeTiles) * scale.TileSize,
			SpeedUnitsPerSec: ent.SpeedTilesPerSec * scale.TileSize,
			Mode:             ent.Mode,
			Phase:            ent.Phase,
		})
	}
	return out
}

// portals resolves each portal entity, preferring declared endpoints and
// falling back to the first entrance/exit tokens found on the board.
func (c *Compiler) portals(level *domain.GridLevel, board *grid.Board) []domain.PortalSpec {
	scale := c.rs.Scale
	entrances := board.Find(rules.TokenPortalEntrance)
	exits := board.Find(rules.TokenPortalExit)

	var out []domain.PortalSpec
	for _, ent := range level.Entities {
		if ent.Type != domain.EntityPortal {
			continue
		}

		entrance := resolvePoint(ent.Entrance, entrances)
		exit := resolvePoint(ent.Exit, exits)
		if entrance == nil || exit == nil {
			continue
		}

		ec := tileCenter(*entrance, scale.TileSize)
		xc := tileCenter(*exit, scale.TileSize)
		out = append(out, domain.PortalSpec{
			Entrance:               domain.CircleSpec{X: ec.X, Y: ec.Y, Radius: scale.ActorRadius},
			Exit:                   domain.CircleSpec{X: xc.X, Y: xc.Y, Radius: scale.ActorRadius},
			CooldownMs:             ent.CooldownMs,
			ExitVelocityMultiplier: ent.ExitVelocityMultiplier,
		})
	}
	return out
}

func resolvePoint(declared *domain.TilePoint, discovered []domain.TilePoint) *domain.TilePoint {
	if declared != nil {
		return declared
	}
	if len(discovered) > 0 {
		return &discovered[0]
	}
	return nil
}

type worldPoint struct {
	X, Y float64
}

func tileCenter(p domain.TilePoint, tileSize float64) worldPoint {
	return worldPoint{
		X: (float64(p.X) + 0.5) * tileSize,
		Y: (float64(p.Y) + 0.5) * tileSize,
	}
}

func (c *Compiler) toWorld(b grid.Bounds) domain.RectSpec {
	size := c.rs.Scale.TileSize
	return domain.RectSpec{
		X: float64(b.X) * size,
		Y: float64(b.Y) * size,
		W: float64(b.W) * size,
		H: float64(b.H) * size,
	}
}

func usableBoard(g *domain.Grid, rs *rules.GameRuleset) (*grid.Board, bool) {
	if g == nil || g.Cols != rs.Cols || g.Rows != rs.Rows || len(g.Tiles) != rs.Rows {
		return nil, false
	}
	for _, row := range g.Tiles {
		if len(row) != rs.Cols {
			return nil, false
		}
	}
	return grid.New(g), true
}
