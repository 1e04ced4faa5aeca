package validate

import (
	"github.com/playproof/levelengine/internal/domain"
	"github.com/playproof/levelengine/internal/grid"
	"github.com/playproof/levelengine/internal/rules"
)

// Placement issue codes.
const (
	CodeSpawnZone        = "spawn.zone"
	CodeGoalZone         = "goal.zone"
	CodeClearanceSpawn   = "clearance.spawn"
	CodeClearanceGoal    = "clearance.goal"
	CodeSeparationMin    = "separation.min"
	CodeSeparationRow    = "separation.row"
	CodeShapeRectangle   = "shape.rectangle"
	CodeShapeSize        = "shape.size"
	CodeShapeBand        = "shape.band"
	CodeHazardRunLength  = "hazard.run.length"
	CodeHazardRunBand    = "hazard.run.band"
	CodeEntityType       = "entity.type"
	CodeEntityAxis       = "entity.axis"
	CodeEntityRegion     = "entity.region.missing"
	CodeSweepBounds      = "entity.sweep.bounds"
	CodeSweepClearance   = "entity.sweep.clearance"
)

// placement runs the spatial rules: zones, clearances, separation, shape
// legality, hazard runs, and entity cross-validation. It assumes the
// structural pass found the grid sound.
func (e *Engine) placement(level *domain.GridLevel, board *grid.Board, rep *reportBuilder) {
	spawn := board.Find(rules.TokenSpawn)[0]
	goal := board.Find(rules.TokenGoal)[0]

	e.checkZones(spawn, goal, rep)
	e.checkClearance(board, spawn, CodeClearanceSpawn, e.rs.SpawnClearanceAllow, rep)
	e.checkClearance(board, goal, CodeClearanceGoal, e.rs.GoalClearanceAllow, rep)
	e.checkSeparation(spawn, goal, rep)
	e.checkShapes(board, rep)
	e.checkHazardRuns(board, rep)
	e.checkEntities(level, board, spawn, goal, rep)
}

func (e *Engine) checkZones(spawn, goal domain.TilePoint, rep *reportBuilder) {
	if !e.rs.SpawnZone.Contains(spawn.X, spawn.Y) {
		rep.errorf(domain.StagePlacement, CodeSpawnZone,
			"spawn at (%d,%d) is outside the spawn zone", spawn.X, spawn.Y)
	}
	if !e.rs.GoalZone.Contains(goal.X, goal.Y) {
		rep.errorf(domain.StagePlacement, CodeGoalZone,
			"goal at (%d,%d) is outside the goal zone", goal.X, goal.Y)
	}
}

// checkClearance enforces the obstacle-free buffer around an anchor. Tiles
// inside the Chebyshev radius must be empty, the anchor itself, or on the
// per-anchor whitelist.
func (e *Engine) checkClearance(board *grid.Board, anchor domain.TilePoint, code string, allow map[byte]bool, rep *reportBuilder) {
	r := e.rs.ClearanceRadius
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			x, y := anchor.X+dx, anchor.Y+dy
			if !board.InBounds(x, y) {
				continue
			}
			tok := board.Token(x, y)
			if tok == rules.TokenEmpty || allow[tok] {
				continue
			}
			rep.errorf(domain.StagePlacement, code,
				"token %q at (%d,%d) violates the clearance radius %d around (%d,%d)",
				string(tok), x, y, r, anchor.X, anchor.Y)
		}
	}
}

func (e *Engine) checkSeparation(spawn, goal domain.TilePoint, rep *reportBuilder) {
	if d := grid.Manhattan(spawn, goal); d <= e.rs.MinSeparation {
		rep.errorf(domain.StagePlacement, CodeSeparationMin,
			"spawn and goal are %d tiles apart, need more than %d", d, e.rs.MinSeparation)
	}
	// Same-row layouts degenerate into straight-line shots; require a larger
	// horizontal gap.
	if spawn.Y == goal.Y {
		gap := spawn.X - goal.X
		if gap < 0 {
			gap = -gap
		}
		if gap < e.rs.SameRowMinGap {
			rep.errorf(domain.StagePlacement, CodeSeparationRow,
				"spawn and goal share row %d with a %d-column gap, need at least %d",
				spawn.Y, gap, e.rs.SameRowMinGap)
		}
	}
}

// checkShapes verifies that every connected component of each solid token
// category forms a whitelisted solid rectangle inside the obstacle band.
func (e *Engine) checkShapes(board *grid.Board, rep *reportBuilder) {
	for _, rule := range e.rs.Shapes {
		severity := domain.SeverityError
		if rule.Stylistic {
			severity = domain.SeverityWarning
		}

		comps := grid.Components(board, func(tok byte) bool { return tok == rule.Token })
		for _, c := range comps {
			if !c.SolidRect() {
				rep.add(domain.StagePlacement, severity, CodeShapeRectangle,
					"%s component at (%d,%d) is not a solid rectangle", rule.Name, c.Bounds.X, c.Bounds.Y)
				continue
			}
			if !rule.Sizes[rules.Size{W: c.Bounds.W, H: c.Bounds.H}] {
				rep.add(domain.StagePlacement, severity, CodeShapeSize,
					"%s component at (%d,%d) has illegal size %dx%d",
					rule.Name, c.Bounds.X, c.Bounds.Y, c.Bounds.W, c.Bounds.H)
			}
			if rule.BandLimited && !e.boundsInside(c.Bounds, e.rs.ObstacleBand) {
				rep.add(domain.StagePlacement, severity, CodeShapeBand,
					"%s component at (%d,%d) leaves the obstacle band", rule.Name, c.Bounds.X, c.Bounds.Y)
			}
		}
	}
}

// checkHazardRuns groups the four directional tokens by connectivity across
// all four symbols together, then enforces run length and the mid-board band.
func (e *Engine) checkHazardRuns(board *grid.Board, rep *reportBuilder) {
	hazard := make(map[byte]bool, len(rules.HazardTokens))
	for _, t := range rules.HazardTokens {
		hazard[t] = true
	}

	runs := grid.Components(board, func(tok byte) bool { return hazard[tok] })
	for _, run := range runs {
		if len(run.Tiles) < e.rs.HazardRunMinLen {
			rep.errorf(domain.StagePlacement, CodeHazardRunLength,
				"directional run at (%d,%d) has %d tiles, need at least %d",
				run.Bounds.X, run.Bounds.Y, len(run.Tiles), e.rs.HazardRunMinLen)
		}
		for _, p := range run.Tiles {
			if !e.rs.HazardBand.Contains(p.X, p.Y) {
				rep.errorf(domain.StagePlacement, CodeHazardRunBand,
					"directional tile at (%d,%d) is outside the mid-board band", p.X, p.Y)
				break
			}
		}
	}
}

// checkEntities cross-validates declared entities against discovered tile
// regions. Moving-block entities are matched to moving-block components in
// scan order; their full swept rectangle must stay on the board and clear of
// both anchor clearance zones.
func (e *Engine) checkEntities(level *domain.GridLevel, board *grid.Board, spawn, goal domain.TilePoint, rep *reportBuilder) {
	movingComps := grid.Components(board, func(tok byte) bool { return tok == rules.TokenMovingBlock })

	blockIdx := 0
	for i, ent := range level.Entities {
		switch ent.Type {
		case domain.EntityMovingBlock:
			if ent.Axis != "x" && ent.Axis != "y" {
				rep.errorf(domain.StagePlacement, CodeEntityAxis,
					"entity %d: moving block axis %q must be \"x\" or \"y\"", i, ent.Axis)
				continue
			}
			if blockIdx >= len(movingComps) {
				rep.errorf(domain.StagePlacement, CodeEntityRegion,
					"entity %d: no moving-block tile region matches this declaration", i)
				continue
			}
			comp := movingComps[blockIdx]
			blockIdx++
			e.checkSweep(comp.Bounds, ent, i, spawn, goal, rep)

		case domain.EntityPortal:
			if !e.portalAnchored(board, ent.Entrance, rules.TokenPortalEntrance) ||
				!e.portalAnchored(board, ent.Exit, rules.TokenPortalExit) {
				rep.errorf(domain.StagePlacement, CodeEntityRegion,
					"entity %d: portal endpoints do not match entrance/exit tiles", i)
			}

		default:
			rep.errorf(domain.StagePlacement, CodeEntityType,
				"entity %d: unknown type %q", i, ent.Type)
		}
	}
}

func (e *Engine) portalAnchored(board *grid.Board, p *domain.TilePoint, token byte) bool {
	return p != nil && board.InBounds(p.X, p.Y) && board.Token(p.X, p.Y) == token
}

// checkSweep validates the swept rectangle: the resting rectangle extended by
// the travel range along the motion axis in both directions.
func (e *Engine) checkSweep(resting grid.Bounds, ent domain.Entity, idx int, spawn, goal domain.TilePoint, rep *reportBuilder) {
	swept := resting
	if ent.Axis == "x" {
		swept.X -= ent.RangeTiles
		swept.W += 2 * ent.RangeTiles
	} else {
		swept.Y -= ent.RangeTiles
		swept.H += 2 * ent.RangeTiles
	}

	if swept.X < 0 || swept.Y < 0 || swept.X+swept.W > e.rs.Cols || swept.Y+swept.H > e.rs.Rows {
		rep.errorf(domain.StagePlacement, CodeSweepBounds,
			"entity %d: swept rectangle leaves playable bounds", idx)
	}

	for _, anchor := range []domain.TilePoint{spawn, goal} {
		zone := grid.Bounds{
			X: anchor.X - e.rs.ClearanceRadius,
			Y: anchor.Y - e.rs.ClearanceRadius,
			W: 2*e.rs.ClearanceRadius + 1,
			H: 2*e.rs.ClearanceRadius + 1,
		}
		if rectsOverlap(swept, zone) {
			rep.errorf(domain.StagePlacement, CodeSweepClearance,
				"entity %d: swept rectangle intersects the clearance zone at (%d,%d)",
				idx, anchor.X, anchor.Y)
		}
	}
}

func (e *Engine) boundsInside(b grid.Bounds, band rules.Rect) bool {
	return b.X >= band.X && b.Y >= band.Y &&
		b.X+b.W <= band.X+band.W && b.Y+b.H <= band.Y+band.H
}

func rectsOverlap(a, b grid.Bounds) bool {
	return a.X < b.X+b.W && a.X+a.W > b.X && a.Y < b.Y+b.H && a.Y+a.H > b.Y
}
