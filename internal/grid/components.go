package grid

import "github.com/playproof/levelengine/internal/domain"

// Bounds is an axis-aligned bounding rectangle in tile coordinates.
type Bounds struct {
	X, Y, W, H int
}

// Area is the rectangle's tile count.
func (b Bounds) Area() int { return b.W * b.H }

// Component is one maximal 4-connected group of member tiles together with
// its bounding rectangle.
type Component struct {
	Tiles  []domain.TilePoint
	Bounds Bounds
}

// SolidRect reports whether the component fully fills its bounding
// rectangle, i.e. it is a solid axis-aligned rectangle with no holes.
func (c Component) SolidRect() bool {
	return len(c.Tiles) == c.Bounds.Area()
}

var neighborOffsets = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// Components groups same-category tiles via 4-connectivity flood fill.
// Membership is decided by the predicate, so walls, sand, water, moving
// blocks, and mixed directional-hazard runs all share this one scan.
// Components are emitted in row-major order of their first-seen tile; each
// component's tiles are in BFS visit order.
func Components(b *Board, member func(token byte) bool) []Component {
	seen := make([]bool, b.Cols*b.Rows)
	var comps []Component

	for y := 0; y < b.Rows; y++ {
		for x := 0; x < b.Cols; x++ {
			if !member(b.Token(x, y)) || seen[y*b.Cols+x] {
				continue
			}

			queue := []domain.TilePoint{{X: x, Y: y}}
			seen[y*b.Cols+x] = true
			minX, minY, maxX, maxY := x, y, x, y
			var tiles []domain.TilePoint

			for qi := 0; qi < len(queue); qi++ {
				p := queue[qi]
				tiles = append(tiles, p)
				if p.X < minX {
					minX = p.X
				}
				if p.X > maxX {
					maxX = p.X
				}
				if p.Y < minY {
					minY = p.Y
				}
				if p.Y > maxY {
					maxY = p.Y
				}
				for _, d := range neighborOffsets {
					nx, ny := p.X+d[0], p.Y+d[1]
					if !b.InBounds(nx, ny) || !member(b.Token(nx, ny)) {
						continue
					}
					if !seen[ny*b.Cols+nx] {
						seen[ny*b.Cols+nx] = true
						queue = append(queue, domain.TilePoint{X: nx, Y: ny})
					}
				}
			}

			comps = append(comps, Component{
				Tiles:  tiles,
				Bounds: Bounds{X: minX, Y: minY, W: maxX - minX + 1, H: maxY - minY + 1},
			})
		}
	}
	return comps
}
