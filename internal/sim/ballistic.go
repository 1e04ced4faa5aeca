package sim

import (
	"fmt"
	"math"

	"github.com/playproof/levelengine/internal/domain"
	"github.com/playproof/levelengine/internal/grid"
	"github.com/playproof/levelengine/internal/rules"
)

// maxSteps bounds a single trajectory integration. Gravity guarantees every
// shot eventually leaves the board, but the guard keeps the search bounded
// even with degenerate tuning.
const maxSteps = 4000

// Ballistic searches for an unpowered projectile trajectory from the spawn
// anchor to the goal anchor under constant gravity. Candidates are the cross
// product of the game's launch angles and speeds, scanned angle-ascending
// then speed-ascending, with early exit on the first hit.
type Ballistic struct {
	rs *rules.GameRuleset
}

// NewBallistic creates a ballistic simulator for the given ruleset.
func NewBallistic(rs *rules.GameRuleset) *Ballistic {
	return &Ballistic{rs: rs}
}

type vec struct {
	x, y float64
}

type rect struct {
	x, y, w, h float64
}

func (r rect) contains(p vec) bool {
	return p.x >= r.x && p.x < r.x+r.w && p.y >= r.y && p.y < r.y+r.h
}

// Simulate runs the discretized search. It never raises an error for
// malformed input; an unusable grid yields a failed report.
func (b *Ballistic) Simulate(level *domain.GridLevel) domain.SimulationReport {
	board, ok := usableBoard(level, b.rs)
	if !ok {
		return domain.SimulationReport{Passed: false, Attempts: 0, Note: "grid is unusable"}
	}

	spawns := board.Find(rules.TokenSpawn)
	goals := board.Find(rules.TokenGoal)
	if len(spawns) != 1 || len(goals) != 1 {
		return domain.SimulationReport{Passed: false, Attempts: 0, Note: "spawn or goal anchor is ambiguous"}
	}

	start := vec{x: float64(spawns[0].X) + 0.5, y: float64(spawns[0].Y) + 0.5}
	goal := vec{x: float64(goals[0].X) + 0.5, y: float64(goals[0].Y) + 0.5}

	dir := 1.0
	if goal.x < start.x {
		dir = -1.0
	}

	solids := solidRects(board)
	tuning := b.rs.Sim

	attempt := 0
	for _, angle := range tuning.AnglesDeg {
		for _, speed := range tuning.SpeedsTilesPerSec {
			attempt++
			if b.shoot(start, goal, dir, angle, speed, solids) {
				return domain.SimulationReport{
					Passed:   true,
					Attempts: attempt,
					Note:     fmt.Sprintf("trajectory found at %.1f° and %.1f tiles/s", angle, speed),
				}
			}
		}
	}

	return domain.SimulationReport{
		Passed:   false,
		Attempts: tuning.SpaceSize(),
		Note:     "no candidate trajectory reached the goal",
	}
}

// shoot integrates one candidate with a fixed timestep until the projectile
// reaches the goal tolerance, collides with a solid rectangle, or leaves the
// board. Flight above the top edge is allowed; only the left, right, and
// bottom edges terminate.
func (b *Ballistic) shoot(start, goal vec, dir, angleDeg, speed float64, solids []rect) bool {
	tuning := b.rs.Sim
	rad := angleDeg * math.Pi / 180

	pos := start
	vel := vec{
		x: math.Cos(rad) * speed * dir,
		y: -math.Sin(rad) * speed,
	}

	for step := 0; step < maxSteps; step++ {
		vel.y += tuning.GravityTilesPerSec2 * tuning.TimestepSec
		pos.x += vel.x * tuning.TimestepSec
		pos.y += vel.y * tuning.TimestepSec

		dx, dy := pos.x-goal.x, pos.y-goal.y
		if math.Sqrt(dx*dx+dy*dy) <= tuning.ToleranceTiles {
			return true
		}

		if pos.x < 0 || pos.x > float64(b.rs.Cols) || pos.y > float64(b.rs.Rows) {
			return false
		}

		for _, s := range solids {
			if s.contains(pos) {
				return false
			}
		}
	}
	return false
}

// solidRects collects the bounding rectangles of every wall component.
func solidRects(board *grid.Board) []rect {
	comps := grid.Components(board, func(tok byte) bool { return tok == rules.TokenWall })
	out := make([]rect, 0, len(comps))
	for _, c := range comps {
		out = append(out, rect{
			x: float64(c.Bounds.X),
			y: float64(c.Bounds.Y),
			w: float64(c.Bounds.W),
			h: float64(c.Bounds.H),
		})
	}
	return out
}

// usableBoard wraps the level's grid when its dimensions match the ruleset.
func usableBoard(level *domain.GridLevel, rs *rules.GameRuleset) (*grid.Board, bool) {
	if level == nil || level.Grid == nil {
		return nil, false
	}
	g := level.Grid
	if g.Cols != rs.Cols || g.Rows != rs.Rows || len(g.Tiles) != rs.Rows {
		return nil, false
	}
	for _, row := range g.Tiles {
		if len(row) != rs.Cols {
			return nil, false
		}
	}
	return grid.New(g), true
}
