package rules

import (
	"testing"

	"github.com/playproof/levelengine/internal/domain"
)

func TestForGameKnownVariants(t *testing.T) {
	for _, game := range Games() {
		rs, err := ForGame(game)
		if err != nil {
			t.Fatalf("ForGame(%s): %v", game, err)
		}
		if rs.Game != game {
			t.Fatalf("ruleset game %s, want %s", rs.Game, game)
		}
		if rs.Cols != BoardCols || rs.Rows != BoardRows {
			t.Fatalf("%s board is %dx%d, want %dx%d", game, rs.Cols, rs.Rows, BoardCols, BoardRows)
		}
	}
}

func TestForGameUnknown(t *testing.T) {
	_, err := ForGame("tetris")
	if err != domain.ErrUnknownGame {
		t.Fatalf("got %v, want ErrUnknownGame", err)
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 2, Y: 3, W: 4, H: 2}
	cases := []struct {
		x, y int
		want bool
	}{
		{2, 3, true},
		{5, 4, true},
		{6, 3, false},
		{2, 5, false},
		{1, 3, false},
	}
	for _, c := range cases {
		if got := r.Contains(c.x, c.y); got != c.want {
			t.Errorf("Contains(%d,%d) = %v, want %v", c.x, c.y, got, c.want)
		}
	}
}

func TestSimTuningSpaceSize(t *testing.T) {
	archeryRS, err := ForGame(domain.GameArchery)
	if err != nil {
		t.Fatal(err)
	}
	if got := archeryRS.Sim.SpaceSize(); got != 45 {
		t.Fatalf("archery search space %d, want 45", got)
	}

	golfRS, err := ForGame(domain.GameMiniGolf)
	if err != nil {
		t.Fatal(err)
	}
	if got := golfRS.Sim.SpaceSize(); got != 0 {
		t.Fatalf("minigolf search space %d, want 0 (delegated)", got)
	}
}

func TestShapeFor(t *testing.T) {
	rs, err := ForGame(domain.GameMiniGolf)
	if err != nil {
		t.Fatal(err)
	}

	wall, ok := rs.ShapeFor(TokenWall)
	if !ok {
		t.Fatal("no wall shape rule")
	}
	if wall.Stylistic {
		t.Fatal("wall violations must be errors, not stylistic")
	}

	sand, ok := rs.ShapeFor(TokenSand)
	if !ok {
		t.Fatal("no sand shape rule")
	}
	if !sand.Stylistic {
		t.Fatal("sand violations must be stylistic")
	}

	if _, ok := rs.ShapeFor(TokenSpawn); ok {
		t.Fatal("spawn token must not carry a shape rule")
	}
}

func TestAlphabetsExcludeForeignTokens(t *testing.T) {
	archeryRS, _ := ForGame(domain.GameArchery)
	if archeryRS.Alphabet[TokenSand] || archeryRS.Alphabet[TokenWater] {
		t.Fatal("archery alphabet must not include sand or water")
	}
	golfRS, _ := ForGame(domain.GameMiniGolf)
	if !golfRS.Alphabet[TokenSand] || !golfRS.Alphabet[TokenWater] {
		t.Fatal("minigolf alphabet must include sand and water")
	}
}

func TestSeparationFloorsLeaveRoomInZones(t *testing.T) {
	// Every ruleset must keep the zones far enough apart that zone-legal
	// anchors can always satisfy the Manhattan floor.
	for _, game := range Games() {
		rs, _ := ForGame(game)
		closest := rs.GoalZone.X - (rs.SpawnZone.X + rs.SpawnZone.W - 1)
		if closest <= rs.MinSeparation-rs.SpawnZone.H {
			t.Errorf("%s zones too close for separation floor", game)
		}
	}
}

func TestHazardDirectionCoversAllTokens(t *testing.T) {
	for _, tok := range HazardTokens {
		if HazardDirection[tok] == "" {
			t.Errorf("token %q has no direction", string(tok))
		}
	}
}
