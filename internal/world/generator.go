package world

import "math"

// PatternGenerator fills chunks with a deterministic test pattern: a stone
// frame along the chunk's edges, sand in bands that diamond toward the
// center, and dirt where the two overlap. Handy for benchmarks and demos
// because it produces lots of irregular exposed surface without any noise
// state.
type PatternGenerator struct{}

// Populate writes the pattern into the chunk's interior. Margins are left
// untouched.
func (PatternGenerator) Populate(c *Chunk) {
	d := c.Dims()
	for z := 0; z < d.Z; z++ {
		for y := 0; y < d.Y; y++ {
			for x := 0; x < d.X; x++ {
				p := Vec3i{x, y, z}
				if m := patternAt(d, p); m != MaterialVoid {
					c.Set(p, m)
				}
			}
		}
	}
}

func patternAt(d Dims, p Vec3i) Material {
	onX := p.X == 0 || p.X == d.X-1
	onY := p.Y == 0 || p.Y == d.Y-1
	onZ := p.Z == 0 || p.Z == d.Z-1
	frame := (onX && onY) || (onY && onZ) || (onZ && onX)

	bx := band(d.X, p.X)
	by := band(d.Y, p.Y)
	bz := band(d.Z, p.Z)
	core := bx == by && by == bz

	switch {
	case frame && !core:
		return MaterialStone
	case core && !frame:
		return MaterialSand
	case frame && core:
		return MaterialDirt
	default:
		return MaterialVoid
	}
}

// band buckets a coordinate by its distance from the axis midpoint, two
// voxels per bucket.
func band(size, v int) int {
	return int(math.Round(math.Abs(float64(size/2-v)) / 2))
}
