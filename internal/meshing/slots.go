package meshing

import "github.com/cedric-h/hypermine/internal/world"

// A face slot is one (cell, axis) pair that could hold an exposed face.
// Cells range over the chunk's closed lattice [0,dx]x[0,dy]x[0,dz]: the
// extra +1 layer lets boundary faces against the halo appear without any
// special casing. Slot (cell, axis) covers the lattice plane between voxels
// cell-axis and cell.
//
// Slots are enumerated x fastest, then y, then z, then axis. Every pass and
// the scan between them walk slots in this one order; the emitted surface
// buffer owes its gap-free layout to that.

// FaceSlots returns the total number of face slots for a chunk of the given
// interior dimensions: (dx+1)(dy+1)(dz+1)*3.
func FaceSlots(d world.Dims) int {
	return (d.X + 1) * (d.Y + 1) * (d.Z + 1) * 3
}

// slotGrid maps between flat slot indices and (cell, axis) pairs for one
// chunk's dimensions.
type slotGrid struct {
	dims world.Dims
}

func (g slotGrid) count() int {
	return FaceSlots(g.dims)
}

// index returns the flat slot index for a lattice cell and axis.
func (g slotGrid) index(cell world.Vec3i, a Axis) int {
	nx := g.dims.X + 1
	ny := g.dims.Y + 1
	nz := g.dims.Z + 1
	return cell.X + nx*(cell.Y+ny*(cell.Z+nz*int(a)))
}

// at decodes a flat slot index back into its lattice cell and axis.
func (g slotGrid) at(i int) (world.Vec3i, Axis) {
	nx := g.dims.X + 1
	ny := g.dims.Y + 1
	nz := g.dims.Z + 1
	x := i % nx
	i /= nx
	y := i % ny
	i /= ny
	z := i % nz
	i /= nz
	return world.Vec3i{X: x, Y: y, Z: z}, Axis(i)
}
