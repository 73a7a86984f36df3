package world

import "testing"

func TestChunkMarginReadWrite(t *testing.T) {
	c := NewChunk(Cube(4))

	c.Set(Vec3i{1, 2, 3}, MaterialStone)
	if got := c.At(Vec3i{1, 2, 3}); got != MaterialStone {
		t.Fatalf("interior voxel: got %v, want %v", got, MaterialStone)
	}

	// Halo cells are writable too, including the diagonal corner.
	c.Set(Vec3i{-1, -1, -1}, MaterialSand)
	if got := c.At(Vec3i{-1, -1, -1}); got != MaterialSand {
		t.Fatalf("corner margin voxel: got %v, want %v", got, MaterialSand)
	}
	c.Set(Vec3i{4, 0, 0}, MaterialDirt)
	if got := c.At(Vec3i{4, 0, 0}); got != MaterialDirt {
		t.Fatalf("face margin voxel: got %v, want %v", got, MaterialDirt)
	}

	if got := c.At(Vec3i{2, 2, 2}); got != MaterialVoid {
		t.Fatalf("unset voxel: got %v, want void", got)
	}
}

func TestChunkBeyondMarginIsVoid(t *testing.T) {
	c := NewChunk(Cube(4))
	c.Set(Vec3i{0, 0, 0}, MaterialStone)

	for _, p := range []Vec3i{{5, 0, 0}, {-2, 0, 0}, {0, 100, 0}, {0, 0, -7}} {
		if got := c.At(p); got != MaterialVoid {
			t.Fatalf("At(%v): got %v, want void", p, got)
		}
	}

	// Writes past the margin are dropped, not wrapped.
	c.Set(Vec3i{5, 0, 0}, MaterialStone)
	if got := c.At(Vec3i{5, 0, 0}); got != MaterialVoid {
		t.Fatalf("out-of-range Set leaked: got %v", got)
	}
}

func TestChunkEmptyTracksAllocation(t *testing.T) {
	c := NewChunk(Cube(4))
	if !c.Empty() {
		t.Fatal("fresh chunk should be empty")
	}

	c.Set(Vec3i{1, 1, 1}, MaterialVoid)
	if !c.Empty() {
		t.Fatal("writing void should not allocate storage")
	}

	c.Set(Vec3i{1, 1, 1}, MaterialStone)
	if c.Empty() {
		t.Fatal("chunk with a solid voxel reported empty")
	}
}

func TestNilChunkReadsVoid(t *testing.T) {
	var c *Chunk
	if got := c.At(Vec3i{0, 0, 0}); got != MaterialVoid {
		t.Fatalf("nil chunk At: got %v, want void", got)
	}
	if !c.Empty() {
		t.Fatal("nil chunk should be empty")
	}
}
