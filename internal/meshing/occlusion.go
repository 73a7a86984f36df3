package meshing

import "github.com/cedric-h/hypermine/internal/world"

// Occlusion levels run 0..3 per quad corner: 3 is fully open, 0 fully
// occluded. A corner looks at the three voxels wrapped around it in the
// plane one step void-ward of the face: the two edge-adjacent neighbors and
// the diagonal between them.

// VertexOcclusion classifies one quad corner from its three neighbor
// occupancy flags. side1 and side2 are the edge-adjacent voxels, corner the
// diagonal. When both sides are solid the corner is fully occluded no
// matter what the diagonal holds; the diagonal is invisible behind them.
func VertexOcclusion(side1, side2, corner bool) uint8 {
	if side1 && side2 {
		return 0
	}
	level := uint8(3)
	if side1 {
		level--
	}
	if side2 {
		level--
	}
	if corner {
		level--
	}
	return level
}

// cornerUV enumerates quad corners in (u,v) order: (0,0),(1,0),(0,1),(1,1).
// Surface.Occlusion, QuadCorners and the emit pass all share this order.
var cornerUV = [4][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}}

// occlusionFor computes the four corner levels for a face. All samples stay
// within one voxel of the face's owner, so a chunk's halo is always enough.
func occlusionFor(src world.Sampler, owner world.Vec3i, dir FaceDir) [4]uint8 {
	b := faceBases[dir]
	void := owner.Add(b.normal)

	var out [4]uint8
	for i, uv := range cornerUV {
		du := b.u
		if uv[0] == 0 {
			du = du.Neg()
		}
		dv := b.v
		if uv[1] == 0 {
			dv = dv.Neg()
		}
		side1 := src.At(void.Add(du)).Solid()
		side2 := src.At(void.Add(dv)).Solid()
		diag := src.At(void.Add(du).Add(dv)).Solid()
		out[i] = VertexOcclusion(side1, side2, diag)
	}
	return out
}
