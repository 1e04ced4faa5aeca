package rules

import "github.com/playproof/levelengine/internal/domain"

// registry holds the rule tables for the three known game variants.
// All three share the generic engine; only these values differ.
var registry = map[domain.GameID]*GameRuleset{
	domain.GameMiniGolf:   miniGolf,
	domain.GameArchery:    archery,
	domain.GameBasketball: basketball,
}

func alphabet(tokens ...byte) map[byte]bool {
	m := make(map[byte]bool, len(tokens))
	for _, t := range tokens {
		m[t] = true
	}
	return m
}

func sizes(list ...Size) map[Size]bool {
	m := make(map[Size]bool, len(list))
	for _, s := range list {
		m[s] = true
	}
	return m
}

var miniGolf = &GameRuleset{
	Game: domain.GameMiniGolf,
	Cols: BoardCols,
	Rows: BoardRows,
	Alphabet: alphabet(
		TokenEmpty, TokenSpawn, TokenGoal, TokenWall, TokenSand, TokenWater,
		TokenMovingBlock, TokenPortalEntrance, TokenPortalExit,
		'^', 'v', '<', '>',
	),

	SpawnZone:    Rect{X: 1, Y: 1, W: 6, H: 12},
	GoalZone:     Rect{X: 13, Y: 1, W: 6, H: 12},
	ObstacleBand: Rect{X: 4, Y: 0, W: 12, H: BoardRows},

	ClearanceRadius:     1,
	SpawnClearanceAllow: map[byte]bool{TokenSand: true},
	GoalClearanceAllow:  map[byte]bool{},

	MinSeparation: 6,
	SameRowMinGap: 10,

	Shapes: []ShapeRule{
		{
			Token: TokenWall, Name: "wall", BandLimited: true,
			Sizes: sizes(
				Size{1, 2}, Size{2, 1}, Size{1, 3}, Size{3, 1},
				Size{1, 4}, Size{4, 1}, Size{2, 2}, Size{2, 3}, Size{3, 2},
			),
		},
		{
			Token: TokenSand, Name: "sand", Stylistic: true, BandLimited: true,
			Sizes: sizes(Size{2, 2}, Size{2, 3}, Size{3, 2}, Size{3, 3}),
		},
		{
			Token: TokenWater, Name: "water", BandLimited: true,
			Sizes: sizes(Size{2, 2}, Size{2, 3}, Size{3, 2}, Size{3, 3}, Size{2, 4}, Size{4, 2}),
		},
		{
			Token: TokenMovingBlock, Name: "movingBlock", BandLimited: true,
			Sizes: sizes(Size{1, 1}, Size{1, 2}, Size{2, 1}, Size{2, 2}),
		},
	},

	HazardRunMinLen: 2,
	HazardBand:      Rect{X: 0, Y: 3, W: BoardCols, H: 8},

	MaxTileDensity: 0.35,

	Scale: CompileScale{TileSize: 40, ActorRadius: 12, GoalRadius: 16, Friction: 0.035},
}

var archery = &GameRuleset{
	Game: domain.GameArchery,
	Cols: BoardCols,
	Rows: BoardRows,
	Alphabet: alphabet(
		TokenEmpty, TokenSpawn, TokenGoal, TokenWall, TokenMovingBlock,
		'^', 'v', '<', '>',
	),

	SpawnZone:    Rect{X: 1, Y: 1, W: 4, H: 12},
	GoalZone:     Rect{X: 15, Y: 1, W: 4, H: 12},
	ObstacleBand: Rect{X: 5, Y: 0, W: 10, H: BoardRows},

	ClearanceRadius:     1,
	SpawnClearanceAllow: map[byte]bool{},
	GoalClearanceAllow:  map[byte]bool{},

	MinSeparation: 6,
	SameRowMinGap: 10,

	Shapes: []ShapeRule{
		{
			Token: TokenWall, Name: "wall", BandLimited: true,
			Sizes: sizes(
				Size{1, 2}, Size{2, 1}, Size{1, 3}, Size{3, 1},
				Size{1, 4}, Size{4, 1}, Size{2, 2},
			),
		},
		{
			Token: TokenMovingBlock, Name: "movingBlock", BandLimited: true,
			Sizes: sizes(Size{1, 1}, Size{1, 2}, Size{2, 1}),
		},
	},

	HazardRunMinLen: 2,
	HazardBand:      Rect{X: 0, Y: 3, W: BoardCols, H: 8},

	MaxTileDensity: 0.25,

	Sim: SimTuning{
		AnglesDeg:           []float64{20, 27.5, 35, 42.5, 50, 57.5, 65, 72.5, 80},
		SpeedsTilesPerSec:   []float64{8, 11, 14, 17, 20},
		GravityTilesPerSec2: 10,
		TimestepSec:         1.0 / 60.0,
		ToleranceTiles:      0.75,
	},

	Scale: CompileScale{TileSize: 40, ActorRadius: 14, GoalRadius: 18},
}

var basketball = &GameRuleset{
	Game: domain.GameBasketball,
	Cols: BoardCols,
	Rows: BoardRows,
	Alphabet: alphabet(
		TokenEmpty, TokenSpawn, TokenGoal, TokenWall, TokenMovingBlock,
		'^', 'v', '<', '>',
	),

	SpawnZone:    Rect{X: 1, Y: 1, W: 4, H: 12},
	GoalZone:     Rect{X: 13, Y: 1, W: 6, H: 8},
	ObstacleBand: Rect{X: 5, Y: 0, W: 10, H: BoardRows},

	ClearanceRadius:     1,
	SpawnClearanceAllow: map[byte]bool{},
	GoalClearanceAllow:  map[byte]bool{},

	MinSeparation: 6,
	SameRowMinGap: 10,

	Shapes: []ShapeRule{
		{
			Token: TokenWall, Name: "wall", BandLimited: true,
			Sizes: sizes(
				Size{1, 2}, Size{2, 1}, Size{1, 3}, Size{3, 1},
				Size{1, 4}, Size{4, 1}, Size{2, 2}, Size{2, 3}, Size{3, 2},
			),
		},
		{
			Token: TokenMovingBlock, Name: "movingBlock", BandLimited: true,
			Sizes: sizes(Size{1, 1}, Size{1, 2}, Size{2, 1}, Size{2, 2}),
		},
	},

	HazardRunMinLen: 2,
	HazardBand:      Rect{X: 0, Y: 3, W: BoardCols, H: 8},

	MaxTileDensity: 0.30,

	Sim: SimTuning{
		AnglesDeg:           []float64{40, 45, 50, 55, 60, 65, 70, 75, 80},
		SpeedsTilesPerSec:   []float64{7, 9, 11, 13, 15},
		GravityTilesPerSec2: 10,
		TimestepSec:         1.0 / 60.0,
		ToleranceTiles:      0.75,
	},

	Scale: CompileScale{TileSize: 40, ActorRadius: 14, GoalRadius: 20},
}
