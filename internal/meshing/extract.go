package meshing

import (
	"github.com/cedric-h/hypermine/internal/profiling"
	"github.com/cedric-h/hypermine/internal/world"
)

// VertsPerFace is the vertex count of one face quad drawn as two triangles.
const VertsPerFace = 6

// Surface is one exposed unit-quad face. Voxel is the chunk-local
// coordinate of the solid voxel the face belongs to, Dir points out of it
// into empty space, and Occlusion holds the four corner levels in cornerUV
// order.
type Surface struct {
	Voxel     world.Vec3i
	Dir       FaceDir
	Material  world.Material
	Occlusion [4]uint8
}

// DrawArgs is the argument block for a non-indexed indirect draw covering
// one chunk's surfaces. It is written exactly once per extraction, also
// when the chunk produced nothing: a renderer can point the GPU at it
// unconditionally.
type DrawArgs struct {
	VertexCount   uint32 // surfaces * VertsPerFace
	InstanceCount uint32 // always 1
	FirstVertex   uint32 // caller's quad offset * VertsPerFace
	FirstIndex    uint32 // always 0 (non-indexed)
}

// Buffers holds the transient per-extraction scratch: one count per face
// slot and the worst-case surface array (every slot a face). A Buffers may
// be reused across chunks of any size; reuse is what keeps steady-state
// extraction allocation-free. Not safe for concurrent extractions.
type Buffers struct {
	counts   []uint32
	surfaces []Surface
}

// Reserve grows the scratch to cover a chunk of the given dimensions.
// Extract calls this itself; calling it up front just moves the allocation.
func (b *Buffers) Reserve(d world.Dims) {
	n := FaceSlots(d)
	if cap(b.counts) < n {
		b.counts = make([]uint32, n)
	}
	if cap(b.surfaces) < n {
		b.surfaces = make([]Surface, n)
	}
}

// Extract runs the full surface-extraction pipeline for one chunk:
//
//	count pass -> inclusive scan -> emit pass -> draw-args finalizer
//
// src supplies voxels for the chunk's interior plus a one-voxel halo; dims
// is the chunk's interior size; firstQuad is the caller's quad offset into
// a shared vertex buffer, folded into DrawArgs.FirstVertex.
//
// The returned surfaces alias buf and stay valid until the next Extract
// with the same Buffers. They are dense: every exposed face appears exactly
// once, ordered by slot. Running Extract twice over the same voxels yields
// identical output. A nil buf allocates a throwaway one.
func Extract(src world.Sampler, dims world.Dims, firstQuad uint32, buf *Buffers) ([]Surface, DrawArgs) {
	defer profiling.Track("meshing.Extract")()

	if buf == nil {
		buf = &Buffers{}
	}
	buf.Reserve(dims)

	g := slotGrid{dims: dims}
	n := g.count()
	counts := buf.counts[:n]

	countPass(g, src, counts)
	total := inclusiveScan(counts)
	emitPass(g, src, counts, buf.surfaces)
	args := finalizeDraw(total, firstQuad)

	Logger().Debug("extracted chunk surfaces",
		"dims", dims, "slots", n, "faces", total)
	return buf.surfaces[:total], args
}

// face decides whether slot (cell, a) holds an exposed face and, if so,
// which voxel owns it. The slot covers the lattice plane between cell-a and
// cell; a face exists when exactly one of the two is solid and that solid
// voxel lies in the chunk's interior. The owner-inside rule gives every
// face in the world exactly one owning chunk: faces owned by halo voxels
// are left for the neighbor that holds them.
func (g slotGrid) face(src world.Sampler, cell world.Vec3i, a Axis) (owner world.Vec3i, dir FaceDir, ok bool) {
	behindPos := cell.Sub(a.Offset())
	behind := src.At(behindPos).Solid()
	here := src.At(cell).Solid()
	if behind == here {
		return owner, dir, false
	}
	if here {
		// Solid voxel in front, void behind: the face looks backward.
		owner, dir = cell, negativeDir(a)
	} else {
		owner, dir = behindPos, positiveDir(a)
	}
	if !g.dims.Contains(owner) {
		return owner, dir, false
	}
	return owner, dir, true
}

// countPass writes a 0/1 exposure flag per slot. Slots are independent;
// ranges run in parallel.
func countPass(g slotGrid, src world.Sampler, counts []uint32) {
	defer profiling.Track("meshing.countPass")()
	parallelFor(len(counts), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			cell, a := g.at(i)
			if _, _, ok := g.face(src, cell, a); ok {
				counts[i] = 1
			} else {
				counts[i] = 0
			}
		}
	})
}

// emitPass writes one Surface per exposed slot at position counts[i]-1.
// After the scan, counts[i] > counts[i-1] marks exactly the slots the count
// pass flagged, and the scanned totals hand every one a distinct slot in
// the output, so parallel ranges never collide.
func emitPass(g slotGrid, src world.Sampler, counts []uint32, out []Surface) {
	defer profiling.Track("meshing.emitPass")()
	parallelFor(len(counts), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			c := counts[i]
			var prev uint32
			if i > 0 {
				prev = counts[i-1]
			}
			if c == prev {
				continue
			}
			cell, a := g.at(i)
			owner, dir, _ := g.face(src, cell, a)
			out[c-1] = Surface{
				Voxel:     owner,
				Dir:       dir,
				Material:  src.At(owner),
				Occlusion: occlusionFor(src, owner, dir),
			}
		}
	})
}

// finalizeDraw builds the indirect draw arguments once both passes are
// done. Kept separate from the emit pass so the write happens exactly once,
// empty chunks included.
func finalizeDraw(total, firstQuad uint32) DrawArgs {
	return DrawArgs{
		VertexCount:   total * VertsPerFace,
		InstanceCount: 1,
		FirstVertex:   firstQuad * VertsPerFace,
		FirstIndex:    0,
	}
}
