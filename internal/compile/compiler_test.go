package compile

import (
	"strings"
	"testing"

	"github.com/playproof/levelengine/internal/domain"
	"github.com/playproof/levelengine/internal/rules"
	"github.com/playproof/levelengine/internal/validate"
)

func blankRows() []string {
	rows := make([]string, rules.BoardRows)
	for i := range rows {
		rows[i] = strings.Repeat(".", rules.BoardCols)
	}
	return rows
}

func put(rows []string, x, y int, tok byte) {
	row := []byte(rows[y])
	row[x] = tok
	rows[y] = string(row)
}

func makeLevel(game domain.GameID, rows []string) *domain.GridLevel {
	return &domain.GridLevel{
		Schema:   domain.SchemaGridLevelV1,
		GameID:   game,
		Grid:     &domain.Grid{Cols: rules.BoardCols, Rows: rules.BoardRows, Tiles: rows},
		Entities: domain.EntityList{},
		Rules:    domain.LevelRules{Difficulty: domain.DifficultyEasy},
	}
}

func compilerFor(t *testing.T, game domain.GameID) *Compiler {
	t.Helper()
	rs, err := rules.ForGame(game)
	if err != nil {
		t.Fatal(err)
	}
	return New(rs)
}

func almostEqual(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}

func TestCompileMiniGolf(t *testing.T) {
	rows := blankRows()
	put(rows, 3, 3, 'S')
	put(rows, 16, 7, 'G')
	put(rows, 10, 5, '#')
	put(rows, 10, 6, '#')
	put(rows, 6, 9, 's')
	put(rows, 7, 9, 's')
	put(rows, 6, 10, 's')
	put(rows, 7, 10, 's')
	level := makeLevel(domain.GameMiniGolf, rows)

	spec, err := compilerFor(t, domain.GameMiniGolf).Compile(level)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	if spec.Version != RuntimeVersion || spec.GameID != domain.GameMiniGolf {
		t.Fatalf("bad header: %+v", spec)
	}
	if !almostEqual(spec.World.Width, 800) || !almostEqual(spec.World.Height, 560) {
		t.Fatalf("world is %vx%v, want 800x560", spec.World.Width, spec.World.Height)
	}
	if !almostEqual(spec.World.Friction, 0.035) {
		t.Fatalf("friction %v, want 0.035", spec.World.Friction)
	}

	if spec.Ball == nil || spec.Hole == nil {
		t.Fatal("minigolf must compile a ball and a hole")
	}
	if spec.Actor != nil || spec.Target != nil {
		t.Fatal("minigolf must not compile actor/target")
	}
	if !almostEqual(spec.Ball.X, 140) || !almostEqual(spec.Ball.Y, 140) {
		t.Fatalf("ball at (%v,%v), want tile center (140,140)", spec.Ball.X, spec.Ball.Y)
	}

	if len(spec.Walls) != 1 {
		t.Fatalf("got %d walls, want 1", len(spec.Walls))
	}
	wall := spec.Walls[0]
	if !almostEqual(wall.X, 400) || !almostEqual(wall.Y, 200) || !almostEqual(wall.W, 40) || !almostEqual(wall.H, 80) {
		t.Fatalf("wall rect %+v", wall)
	}

	if len(spec.Sand) != 1 || !almostEqual(spec.Sand[0].W, 80) {
		t.Fatalf("sand rects %+v", spec.Sand)
	}
}

func TestCompileArchery(t *testing.T) {
	rows := blankRows()
	put(rows, 2, 7, 'S')
	put(rows, 17, 7, 'G')
	level := makeLevel(domain.GameArchery, rows)

	spec, err := compilerFor(t, domain.GameArchery).Compile(level)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if spec.Actor == nil || spec.Target == nil {
		t.Fatal("archery must compile actor and target")
	}
	if spec.Ball != nil || spec.Hole != nil {
		t.Fatal("archery must not compile ball/hole")
	}
	if !almostEqual(spec.Target.Radius, 18) {
		t.Fatalf("target radius %v, want 18", spec.Target.Radius)
	}
}

func TestCompileCurrents(t *testing.T) {
	rows := blankRows()
	put(rows, 3, 3, 'S')
	put(rows, 16, 7, 'G')
	put(rows, 7, 5, '>')
	put(rows, 8, 5, '>')
	put(rows, 10, 6, 'v')
	put(rows, 10, 7, 'v')
	level := makeLevel(domain.GameMiniGolf, rows)

	spec, err := compilerFor(t, domain.GameMiniGolf).Compile(level)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if len(spec.Currents) != 2 {
		t.Fatalf("got %d currents, want 2", len(spec.Currents))
	}

	byDir := map[string]domain.CurrentSpec{}
	for _, c := range spec.Currents {
		byDir[c.Direction] = c
	}
	right, ok := byDir["right"]
	if !ok {
		t.Fatalf("no rightward current in %+v", spec.Currents)
	}
	if !almostEqual(right.W, 80) || !almostEqual(right.H, 40) {
		t.Fatalf("rightward current rect %+v", right)
	}
	if _, ok := byDir["down"]; !ok {
		t.Fatalf("no downward current in %+v", spec.Currents)
	}
}

func TestCompileMovingBlocks(t *testing.T) {
	rows := blankRows()
	put(rows, 3, 3, 'S')
	put(rows, 16, 7, 'G')
	put(rows, 8, 10, 'M')
	level := makeLevel(domain.GameMiniGolf, rows)
	level.Entities = domain.EntityList{
		{Type: domain.EntityMovingBlock, Axis: "x", RangeTiles: 2, SpeedTilesPerSec: 1.5, Mode: "pingpong"},
		{Type: domain.EntityMovingBlock, Axis: "y", RangeTiles: 1},
	}

	spec, err := compilerFor(t, domain.GameMiniGolf).Compile(level)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if len(spec.MovingBlocks) != 2 {
		t.Fatalf("got %d moving blocks, want 2", len(spec.MovingBlocks))
	}

	first := spec.MovingBlocks[0]
	if !almostEqual(first.X, 320) || !almostEqual(first.RangeUnits, 80) || !almostEqual(first.SpeedUnitsPerSec, 60) {
		t.Fatalf("first block %+v", first)
	}

	// The second declaration has no tile region; it falls back to the board
	// center instead of failing the compile.
	second := spec.MovingBlocks[1]
	if !almostEqual(second.X, 400) || !almostEqual(second.Y, 280) {
		t.Fatalf("fallback block %+v", second)
	}
}

func TestCompilePortals(t *testing.T) {
	rows := blankRows()
	put(rows, 3, 3, 'S')
	put(rows, 16, 7, 'G')
	put(rows, 7, 7, 'P')
	put(rows, 12, 8, 'Q')
	level := makeLevel(domain.GameMiniGolf, rows)
	level.Entities = domain.EntityList{
		{Type: domain.EntityPortal, CooldownMs: 500, ExitVelocityMultiplier: 0.8},
	}

	spec, err := compilerFor(t, domain.GameMiniGolf).Compile(level)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if len(spec.Portals) != 1 {
		t.Fatalf("got %d portals, want 1", len(spec.Portals))
	}

	// Endpoints resolved from the board tokens.
	p := spec.Portals[0]
	if !almostEqual(p.Entrance.X, 300) || !almostEqual(p.Entrance.Y, 300) {
		t.Fatalf("entrance %+v", p.Entrance)
	}
	if !almostEqual(p.Exit.X, 500) || !almostEqual(p.Exit.Y, 340) {
		t.Fatalf("exit %+v", p.Exit)
	}
	if p.CooldownMs != 500 {
		t.Fatalf("cooldown %d, want 500", p.CooldownMs)
	}
}

func TestCompileUnresolvablePortalSkipped(t *testing.T) {
	rows := blankRows()
	put(rows, 3, 3, 'S')
	put(rows, 16, 7, 'G')
	level := makeLevel(domain.GameMiniGolf, rows)
	level.Entities = domain.EntityList{{Type: domain.EntityPortal}}

	spec, err := compilerFor(t, domain.GameMiniGolf).Compile(level)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if len(spec.Portals) != 0 {
		t.Fatalf("unresolvable portal must be skipped, got %+v", spec.Portals)
	}
}

func TestCompileErrors(t *testing.T) {
	c := compilerFor(t, domain.GameMiniGolf)

	if _, err := c.Compile(nil); err != domain.ErrLevelMissing {
		t.Fatalf("nil level: got %v, want ErrLevelMissing", err)
	}

	bad := makeLevel(domain.GameMiniGolf, blankRows()[:5])
	bad.Grid.Rows = 5
	if _, err := c.Compile(bad); err != domain.ErrGridUnusable {
		t.Fatalf("bad dims: got %v, want ErrGridUnusable", err)
	}

	empty := makeLevel(domain.GameMiniGolf, blankRows())
	if _, err := c.Compile(empty); err != domain.ErrGridUnusable {
		t.Fatalf("no anchors: got %v, want ErrGridUnusable", err)
	}
}

func TestCompileNeverFailsAfterValidation(t *testing.T) {
	rows := blankRows()
	put(rows, 3, 3, 'S')
	put(rows, 16, 7, 'G')
	put(rows, 10, 5, '#')
	put(rows, 10, 6, '#')
	level := makeLevel(domain.GameMiniGolf, rows)

	rs, err := rules.ForGame(domain.GameMiniGolf)
	if err != nil {
		t.Fatal(err)
	}
	rep := validate.NewEngine(rs).Validate(level)
	if !rep.Valid {
		t.Fatalf("fixture must validate, got %+v", rep.Errors)
	}

	spec, err := New(rs).Compile(level)
	if err != nil {
		t.Fatalf("a validated level must always compile: %v", err)
	}
	if spec.Actor != nil {
		t.Fatal("minigolf spec must use ball/hole")
	}
}
