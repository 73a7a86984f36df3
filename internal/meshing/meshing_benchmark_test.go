package meshing

import (
	"testing"

	"github.com/cedric-h/hypermine/internal/world"
)

func patternChunk() *world.Chunk {
	c := world.NewStandardChunk()
	world.PatternGenerator{}.Populate(c)
	return c
}

func solidChunk() *world.Chunk {
	c := world.NewStandardChunk()
	d := c.Dims()
	for z := 0; z < d.Z; z++ {
		for y := 0; y < d.Y; y++ {
			for x := 0; x < d.X; x++ {
				c.Set(world.Vec3i{X: x, Y: y, Z: z}, world.MaterialStone)
			}
		}
	}
	return c
}

func BenchmarkExtractPatternChunk(b *testing.B) {
	c := patternChunk()
	var buf Buffers
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Extract(c, c.Dims(), 0, &buf)
	}
}

func BenchmarkExtractSolidChunk(b *testing.B) {
	c := solidChunk()
	var buf Buffers
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Extract(c, c.Dims(), 0, &buf)
	}
}

func BenchmarkExtractEmptyChunk(b *testing.B) {
	c := world.NewStandardChunk()
	var buf Buffers
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Extract(c, c.Dims(), 0, &buf)
	}
}
