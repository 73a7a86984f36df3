package meshing

import "github.com/go-gl/mathgl/mgl32"

// Geometry helpers for consumers that turn surface records into triangles.
// The viewer's vertex shader implements the same corner and winding rules;
// this is the CPU reference for them.

// quadTriangles and quadTrianglesFlipped index into the 4 quad corners to
// form two triangles. The flipped variant reverses orientation for
// directions whose (u,v) basis runs against the normal, keeping front faces
// CCW seen from the void side.
var (
	quadTriangles        = [VertsPerFace]int{0, 1, 3, 0, 3, 2}
	quadTrianglesFlipped = [VertsPerFace]int{0, 3, 1, 0, 2, 3}
)

// QuadCorners returns the four corners of the face quad in chunk-local
// space, in cornerUV order, matching Surface.Occlusion corner for corner.
func QuadCorners(s Surface) [4]mgl32.Vec3 {
	b := faceBases[s.Dir]
	base := s.Voxel
	if s.Dir.Positive() {
		base = base.Add(b.normal)
	}
	var out [4]mgl32.Vec3
	for i, uv := range cornerUV {
		p := base
		if uv[0] == 1 {
			p = p.Add(b.u)
		}
		if uv[1] == 1 {
			p = p.Add(b.v)
		}
		out[i] = p.Vec3()
	}
	return out
}

// TriangleCorners expands a surface into the six vertices of its two
// triangles, wound counter-clockwise when viewed from the empty side.
func TriangleCorners(s Surface) [VertsPerFace]mgl32.Vec3 {
	corners := QuadCorners(s)
	order := quadTriangles
	if faceBases[s.Dir].flip {
		order = quadTrianglesFlipped
	}
	var out [VertsPerFace]mgl32.Vec3
	for i, c := range order {
		out[i] = corners[c]
	}
	return out
}

// FaceAABB returns a thin axis-aligned box hugging the face quad, padded by
// eps along the normal. Useful for culling and picking against surfaces.
func FaceAABB(s Surface, eps float32) (min, max mgl32.Vec3) {
	corners := QuadCorners(s)
	min, max = corners[0], corners[0]
	for _, c := range corners[1:] {
		for i := 0; i < 3; i++ {
			if c[i] < min[i] {
				min[i] = c[i]
			}
			if c[i] > max[i] {
				max[i] = c[i]
			}
		}
	}
	n := s.Dir.Normal()
	for i, c := range [3]int{n.X, n.Y, n.Z} {
		if c != 0 {
			min[i] -= eps
			max[i] += eps
		}
	}
	return min, max
}
