package golden

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/playproof/levelengine/internal/domain"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "golden.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSeedAndFind(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	if err := s.Seed(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}

	for _, game := range []domain.GameID{domain.GameMiniGolf, domain.GameArchery, domain.GameBasketball} {
		level, err := s.Find(ctx, game, domain.DifficultyEasy)
		if err != nil {
			t.Fatalf("find %s: %v", game, err)
		}
		if level.GameID != game {
			t.Fatalf("got game %s, want %s", level.GameID, game)
		}
		if level.Grid == nil || len(level.Grid.Tiles) != 14 {
			t.Fatalf("%s golden level has a malformed grid", game)
		}
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	if err := s.Seed(ctx); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	if err := s.Seed(ctx); err != nil {
		t.Fatalf("second seed: %v", err)
	}
}

func TestFindFallsBackAcrossDifficulty(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	if err := s.Seed(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}

	// Only an easy archery level is seeded; a hard request still gets one.
	level, err := s.Find(ctx, domain.GameArchery, domain.DifficultyHard)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if level.GameID != domain.GameArchery {
		t.Fatalf("got game %s, want archery", level.GameID)
	}
	if level.Rules.Difficulty != domain.DifficultyEasy {
		t.Fatalf("got difficulty %s, want the easy fallback", level.Rules.Difficulty)
	}
}

func TestFindEmptyStore(t *testing.T) {
	s := openStore(t)
	_, err := s.Find(context.Background(), domain.GameMiniGolf, domain.DifficultyEasy)
	ee, ok := err.(*domain.EngineError)
	if !ok || ee.Code != domain.ErrGoldenMissing.Code {
		t.Fatalf("got %v, want ErrGoldenMissing", err)
	}
}

func TestPutAndFindRoundTrip(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	level := &domain.GridLevel{
		Schema: domain.SchemaGridLevelV1,
		GameID: domain.GameBasketball,
		Grid:   &domain.Grid{Cols: 20, Rows: 14, Tiles: make([]string, 14)},
		Rules:  domain.LevelRules{Difficulty: domain.DifficultyMedium},
	}
	if err := s.Put(ctx, "basketball_medium_custom.json", level); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := s.Find(ctx, domain.GameBasketball, domain.DifficultyMedium)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.Rules.Difficulty != domain.DifficultyMedium {
		t.Fatalf("got difficulty %s, want medium", got.Rules.Difficulty)
	}
}

func TestDifficultyMatchBeatsNameOrder(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	if err := s.Seed(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}

	level, err := s.Find(ctx, domain.GameMiniGolf, domain.DifficultyMedium)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if level.Rules.Difficulty != domain.DifficultyMedium {
		t.Fatalf("got %s, want the medium seed over the alphabetically-first easy one", level.Rules.Difficulty)
	}
}
