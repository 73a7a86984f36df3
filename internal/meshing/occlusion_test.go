package meshing

import (
	"testing"

	"github.com/cedric-h/hypermine/internal/world"
)

func TestVertexOcclusionTable(t *testing.T) {
	cases := []struct {
		side1, side2, corner bool
		want                 uint8
	}{
		{false, false, false, 3},
		{true, false, false, 2},
		{false, true, false, 2},
		{false, false, true, 2},
		{true, false, true, 1},
		{false, true, true, 1},
		// Two solid sides bury the corner completely; the diagonal can't
		// matter because it isn't visible past them.
		{true, true, false, 0},
		{true, true, true, 0},
	}
	for _, c := range cases {
		got := VertexOcclusion(c.side1, c.side2, c.corner)
		if got != c.want {
			t.Fatalf("VertexOcclusion(%v,%v,%v): got %d, want %d",
				c.side1, c.side2, c.corner, got, c.want)
		}
	}
}

// findFace returns the surface for (voxel, dir), failing the test when it
// isn't present.
func findFace(t *testing.T, surfaces []Surface, voxel world.Vec3i, dir FaceDir) Surface {
	t.Helper()
	for _, s := range surfaces {
		if s.Voxel == voxel && s.Dir == dir {
			return s
		}
	}
	t.Fatalf("no %v face for voxel %v", dir, voxel)
	return Surface{}
}

func TestOcclusionLoneVoxelFullyOpen(t *testing.T) {
	c := world.NewChunk(world.Cube(3))
	c.Set(world.Vec3i{X: 1, Y: 1, Z: 1}, world.MaterialStone)

	surfaces, _ := Extract(c, c.Dims(), 0, nil)
	if len(surfaces) != 6 {
		t.Fatalf("faces: got %d, want 6", len(surfaces))
	}
	for _, s := range surfaces {
		if s.Occlusion != [4]uint8{3, 3, 3, 3} {
			t.Fatalf("%v face occlusion: got %v, want all 3", s.Dir, s.Occlusion)
		}
	}
}

func TestOcclusionEdgeNeighborDarkensMatchingCorners(t *testing.T) {
	c := world.NewChunk(world.Cube(3))
	a := world.Vec3i{X: 1, Y: 1, Z: 1}
	c.Set(a, world.MaterialStone)
	// One voxel diagonally up from a: it sits in the sampling plane of a's
	// top face (+u side) and of a's east face (+u side), and under none.
	b := world.Vec3i{X: 2, Y: 2, Z: 1}
	c.Set(b, world.MaterialStone)

	surfaces, _ := Extract(c, c.Dims(), 0, nil)

	// Top face of a: u axis is +X, so only the su=1 corners see b.
	top := findFace(t, surfaces, a, FaceTop)
	if top.Occlusion != [4]uint8{3, 2, 3, 2} {
		t.Fatalf("top occlusion: got %v, want [3 2 3 2]", top.Occlusion)
	}

	// East face of a: u axis is +Y, so again the su=1 corners darken.
	east := findFace(t, surfaces, a, FaceEast)
	if east.Occlusion != [4]uint8{3, 2, 3, 2} {
		t.Fatalf("east occlusion: got %v, want [3 2 3 2]", east.Occlusion)
	}

	// Bottom face of b: a is on its -u side, darkening the su=0 corners.
	bottom := findFace(t, surfaces, b, FaceBottom)
	if bottom.Occlusion != [4]uint8{2, 3, 2, 3} {
		t.Fatalf("bottom occlusion: got %v, want [2 3 2 3]", bottom.Occlusion)
	}
}

func TestOcclusionDiagonalNeighborDarkensOneCorner(t *testing.T) {
	c := world.NewChunk(world.Cube(3))
	a := world.Vec3i{X: 1, Y: 1, Z: 1}
	c.Set(a, world.MaterialStone)
	// Fully diagonal from a's top face: shares only the (1,1) corner of
	// its sampling plane.
	c.Set(world.Vec3i{X: 2, Y: 2, Z: 2}, world.MaterialStone)

	surfaces, _ := Extract(c, c.Dims(), 0, nil)
	top := findFace(t, surfaces, a, FaceTop)
	if top.Occlusion != [4]uint8{3, 3, 3, 2} {
		t.Fatalf("top occlusion: got %v, want [3 3 3 2]", top.Occlusion)
	}
}

func TestOcclusionBothEdgesClampCorner(t *testing.T) {
	c := world.NewChunk(world.Cube(3))
	a := world.Vec3i{X: 1, Y: 1, Z: 1}
	c.Set(a, world.MaterialStone)
	// Both edge neighbors of the top face's (1,1) corner, diagonal empty.
	c.Set(world.Vec3i{X: 2, Y: 2, Z: 1}, world.MaterialStone)
	c.Set(world.Vec3i{X: 1, Y: 2, Z: 2}, world.MaterialStone)

	surfaces, _ := Extract(c, c.Dims(), 0, nil)
	top := findFace(t, surfaces, a, FaceTop)
	if top.Occlusion != [4]uint8{3, 2, 2, 0} {
		t.Fatalf("top occlusion: got %v, want [3 2 2 0]", top.Occlusion)
	}
}

func TestOcclusionLevelsStayInRange(t *testing.T) {
	c := world.NewStandardChunk()
	world.PatternGenerator{}.Populate(c)

	surfaces, _ := Extract(c, c.Dims(), 0, nil)
	if len(surfaces) == 0 {
		t.Fatal("pattern chunk produced no surfaces")
	}
	for _, s := range surfaces {
		for i, level := range s.Occlusion {
			if level > 3 {
				t.Fatalf("face %v/%v corner %d: occlusion %d out of range", s.Voxel, s.Dir, i, level)
			}
		}
	}
}
