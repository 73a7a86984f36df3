package world

import "testing"

func TestPatternDeterministic(t *testing.T) {
	a := NewStandardChunk()
	b := NewStandardChunk()
	var g PatternGenerator
	g.Populate(a)
	g.Populate(b)

	d := a.Dims()
	for z := 0; z < d.Z; z++ {
		for y := 0; y < d.Y; y++ {
			for x := 0; x < d.X; x++ {
				p := Vec3i{x, y, z}
				if a.At(p) != b.At(p) {
					t.Fatalf("pattern differs at %v: %v vs %v", p, a.At(p), b.At(p))
				}
			}
		}
	}
}

func TestPatternMaterialMix(t *testing.T) {
	c := NewStandardChunk()
	PatternGenerator{}.Populate(c)

	counts := map[Material]int{}
	d := c.Dims()
	for z := 0; z < d.Z; z++ {
		for y := 0; y < d.Y; y++ {
			for x := 0; x < d.X; x++ {
				counts[c.At(Vec3i{x, y, z})]++
			}
		}
	}

	for _, m := range []Material{MaterialStone, MaterialSand, MaterialDirt} {
		if counts[m] == 0 {
			t.Fatalf("pattern produced no %v", m)
		}
	}
	if counts[MaterialVoid] == 0 {
		t.Fatal("pattern filled the whole chunk; expected void gaps")
	}
	if len(counts) != 4 {
		t.Fatalf("pattern produced %d distinct materials, want 4", len(counts))
	}
}

func TestPatternLandmarks(t *testing.T) {
	c := NewStandardChunk()
	PatternGenerator{}.Populate(c)

	// All eight corners sit on the frame and in the matching center bands,
	// so they come out dirt.
	r := ChunkSize - 1
	for _, p := range []Vec3i{
		{0, 0, 0}, {r, 0, 0}, {0, r, 0}, {0, 0, r},
		{r, r, 0}, {r, 0, r}, {0, r, r}, {r, r, r},
	} {
		if got := c.At(p); got != MaterialDirt {
			t.Fatalf("corner %v: got %v, want %v", p, got, MaterialDirt)
		}
	}

	// Mid-edge voxels are frame only.
	if got := c.At(Vec3i{5, 0, 0}); got != MaterialStone {
		t.Fatalf("edge voxel: got %v, want %v", got, MaterialStone)
	}

	// Margins stay untouched.
	if got := c.At(Vec3i{-1, 0, 0}); got != MaterialVoid {
		t.Fatalf("margin voxel after populate: got %v, want void", got)
	}
}
