// Package rules holds the per-game rule tables the generic engine is
// parameterized by: token alphabets, zones, clearances, separation floors,
// shape whitelists, and simulator/compiler tuning.
package rules

import (
	"sort"

	"github.com/playproof/levelengine/internal/domain"
)

// Board dimensions shared by every game variant.
const (
	BoardCols = 20
	BoardRows = 14
)

// Tokens shared across alphabets.
const (
	TokenEmpty          byte = '.'
	TokenSpawn          byte = 'S'
	TokenGoal           byte = 'G'
	TokenWall           byte = '#'
	TokenSand           byte = 's'
	TokenWater          byte = 'w'
	TokenMovingBlock    byte = 'M'
	TokenPortalEntrance byte = 'P'
	TokenPortalExit     byte = 'Q'
)

// HazardTokens are the four direction-tagged tokens, grouped together for
// run connectivity.
var HazardTokens = []byte{'^', 'v', '<', '>'}

// HazardDirection maps a directional token to its compiled direction name.
var HazardDirection = map[byte]string{
	'^': "up",
	'v': "down",
	'<': "left",
	'>': "right",
}

// Rect is an axis-aligned rectangle in tile coordinates.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the tile point (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Size is a rectangle footprint in tiles.
type Size struct {
	W, H int
}

// ShapeRule constrains one solid token category. Connected components of the
// token must form fully filled rectangles whose size is whitelisted.
type ShapeRule struct {
	Token byte
	Name  string
	Sizes map[Size]bool

	// Stylistic categories degrade shape violations to warnings.
	Stylistic bool

	// BandLimited categories must sit entirely inside the obstacle band.
	BandLimited bool
}

// SimTuning parameterizes the ballistic solvability search.
// Angles and speeds are scanned angle-ascending, then speed-ascending.
type SimTuning struct {
	AnglesDeg           []float64
	SpeedsTilesPerSec   []float64
	GravityTilesPerSec2 float64
	TimestepSec         float64
	ToleranceTiles      float64
}

// SpaceSize is the full candidate cross-product size.
func (t SimTuning) SpaceSize() int {
	return len(t.AnglesDeg) * len(t.SpeedsTilesPerSec)
}

// CompileScale converts tile coordinates into runtime world units.
type CompileScale struct {
	TileSize    float64
	ActorRadius float64
	GoalRadius  float64
	Friction    float64 // mini-golf only
}

// GameRuleset is the immutable value object that parameterizes the generic
// validation/simulation/compilation engine for one game variant.
type GameRuleset struct {
	Game domain.GameID
	Cols int
	Rows int

	Alphabet map[byte]bool

	SpawnZone    Rect
	GoalZone     Rect
	ObstacleBand Rect

	// ClearanceRadius is a Chebyshev radius around spawn and goal anchors.
	// The allow maps whitelist tokens tolerated inside each clearance zone.
	ClearanceRadius     int
	SpawnClearanceAllow map[byte]bool
	GoalClearanceAllow  map[byte]bool

	// MinSeparation is a Manhattan floor between spawn and goal; SameRowMinGap
	// is the larger horizontal gap required when both sit on one row.
	MinSeparation int
	SameRowMinGap int

	Shapes []ShapeRule

	// Directional hazard runs must reach HazardRunMinLen tiles and stay
	// inside HazardBand.
	HazardRunMinLen int
	HazardBand      Rect

	// MaxTileDensity is the lint ceiling on the non-empty tile fraction.
	MaxTileDensity float64

	// Sim is zero-valued for games whose solvability is delegated to an
	// external collaborator (mini-golf).
	Sim SimTuning

	Scale CompileScale
}

// AlphabetString returns the alphabet tokens in sorted order, for messages.
func (rs *GameRuleset) AlphabetString() string {
	tokens := make([]byte, 0, len(rs.Alphabet))
	for t := range rs.Alphabet {
		tokens = append(tokens, t)
	}
	sort.Slice(tokens, func(i, j int) bool { return tokens[i] < tokens[j] })
	return string(tokens)
}

// ShapeFor returns the shape rule for a token, if any.
func (rs *GameRuleset) ShapeFor(token byte) (ShapeRule, bool) {
	for _, s := range rs.Shapes {
		if s.Token == token {
			return s, true
		}
	}
	return ShapeRule{}, false
}

// ForGame returns the ruleset registered for the given game.
func ForGame(game domain.GameID) (*GameRuleset, error) {
	rs, ok := registry[game]
	if !ok {
		return nil, domain.ErrUnknownGame
	}
	return rs, nil
}

// Games lists the registered game ids in stable order.
func Games() []domain.GameID {
	return []domain.GameID{domain.GameMiniGolf, domain.GameArchery, domain.GameBasketball}
}
