// Package grid provides tile access helpers and the generic
// connected-component scan every placement rule is built on.
package grid

import (
	"github.com/playproof/levelengine/internal/domain"
)

// Board wraps a structurally sound grid for tile access. Callers must only
// construct one after the dimension checks have passed.
type Board struct {
	Cols  int
	Rows  int
	tiles []string
}

// New wraps a grid whose dimensions have already been verified.
func New(g *domain.Grid) *Board {
	return &Board{Cols: g.Cols, Rows: g.Rows, tiles: g.Tiles}
}

// Token returns the token at tile (x, y).
func (b *Board) Token(x, y int) byte {
	return b.tiles[y][x]
}

// InBounds reports whether (x, y) is a valid tile coordinate.
func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && x < b.Cols && y >= 0 && y < b.Rows
}

// Find returns the positions of every tile holding the token, scanning
// row-major from the top-left.
func (b *Board) Find(token byte) []domain.TilePoint {
	var points []domain.TilePoint
	for y := 0; y < b.Rows; y++ {
		for x := 0; x < b.Cols; x++ {
			if b.tiles[y][x] == token {
				points = append(points, domain.TilePoint{X: x, Y: y})
			}
		}
	}
	return points
}

// Count returns the number of tiles holding the token.
func (b *Board) Count(token byte) int {
	n := 0
	for y := 0; y < b.Rows; y++ {
		for x := 0; x < b.Cols; x++ {
			if b.tiles[y][x] == token {
				n++
			}
		}
	}
	return n
}

// Density returns the fraction of tiles holding anything but the empty token.
func (b *Board) Density(empty byte) float64 {
	occupied := 0
	for y := 0; y < b.Rows; y++ {
		for x := 0; x < b.Cols; x++ {
			if b.tiles[y][x] != empty {
				occupied++
			}
		}
	}
	return float64(occupied) / float64(b.Cols*b.Rows)
}

// Manhattan is the L1 distance between two tile points.
func Manhattan(a, b domain.TilePoint) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

// Chebyshev is the L∞ distance between two tile points.
func Chebyshev(a, b domain.TilePoint) int {
	dx := abs(a.X - b.X)
	dy := abs(a.Y - b.Y)
	if dx > dy {
		return dx
	}
	return dy
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
