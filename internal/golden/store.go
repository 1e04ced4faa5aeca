// Package golden provides the SQLite-backed curated fallback level set,
// indexed by (gameId, difficulty) and seeded from embedded level files.
package golden

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"sort"

	_ "modernc.org/sqlite"

	"github.com/playproof/levelengine/internal/domain"
)

//go:embed levels/*.json
var seedFS embed.FS

// schemaV1 defines the golden level table.
const schemaV1 = `
CREATE TABLE IF NOT EXISTS golden_levels (
	name        TEXT PRIMARY KEY,
	game_id     TEXT NOT NULL,
	difficulty  TEXT NOT NULL,
	level_json  TEXT NOT NULL,
	created_at  INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_golden_game_difficulty ON golden_levels(game_id, difficulty);
`

// Store is the golden level repository.
type Store struct {
	db *sql.DB
}

// Open opens a SQLite database at the given path with recommended pragmas
// and runs the schema migration.
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, domain.WrapEngineError(domain.ErrStoreInit.Code, "open database", err)
	}

	// WAL allows concurrent reads but a single writer.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(context.Background(), schemaV1); err != nil {
		db.Close()
		return nil, domain.WrapEngineError(domain.ErrStoreInit.Code, "migrate schema", err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

// Seed loads the embedded curated levels, inserting any that are not yet
// present. Existing rows are left untouched.
func (s *Store) Seed(ctx context.Context) error {
	entries, err := fs.ReadDir(seedFS, "levels")
	if err != nil {
		return domain.WrapEngineError(domain.ErrStoreInit.Code, "read seed levels", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		data, err := seedFS.ReadFile("levels/" + name)
		if err != nil {
			return domain.WrapEngineError(domain.ErrStoreInit.Code, "read seed level "+name, err)
		}

		var level domain.GridLevel
		if err := json.Unmarshal(data, &level); err != nil {
			return domain.WrapEngineError(domain.ErrStoreInit.Code, "parse seed level "+name, err)
		}

		if err := s.Put(ctx, name, &level); err != nil {
			return err
		}
	}
	return nil
}

// Put stores a golden level under the given name if absent.
func (s *Store) Put(ctx context.Context, name string, level *domain.GridLevel) error {
	data, err := json.Marshal(level)
	if err != nil {
		return domain.WrapEngineError(domain.ErrStoreWrite.Code, "encode level", err)
	}

	const q = `INSERT OR IGNORE INTO golden_levels (name, game_id, difficulty, level_json, created_at)
VALUES (?, ?, ?, ?, strftime('%s','now'))`
	if _, err := s.db.ExecContext(ctx, q, name, string(level.GameID), string(level.Rules.Difficulty), string(data)); err != nil {
		return domain.WrapEngineError(domain.ErrStoreWrite.Code, "insert golden level", err)
	}
	return nil
}

// Find returns a golden level matching the game and difficulty, falling back
// to the first golden level for the game when no difficulty matches.
func (s *Store) Find(ctx context.Context, game domain.GameID, difficulty domain.Difficulty) (*domain.GridLevel, error) {
	if level, err := s.query(ctx,
		`SELECT level_json FROM golden_levels WHERE game_id = ? AND difficulty = ? ORDER BY name LIMIT 1`,
		string(game), string(difficulty)); err == nil {
		return level, nil
	} else if engineErr, ok := err.(*domain.EngineError); !ok || engineErr.Code != domain.ErrGoldenMissing.Code {
		return nil, err
	}

	return s.query(ctx,
		`SELECT level_json FROM golden_levels WHERE game_id = ? ORDER BY name LIMIT 1`,
		string(game))
}

func (s *Store) query(ctx context.Context, q string, args ...any) (*domain.GridLevel, error) {
	var data string
	err := s.db.QueryRowContext(ctx, q, args...).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, domain.ErrGoldenMissing
	}
	if err != nil {
		return nil, domain.WrapEngineError(domain.ErrStoreQuery.Code, "query golden level", err)
	}

	var level domain.GridLevel
	if err := json.Unmarshal([]byte(data), &level); err != nil {
		return nil, domain.WrapEngineError(domain.ErrStoreQuery.Code, "decode golden level", err)
	}
	return &level, nil
}
