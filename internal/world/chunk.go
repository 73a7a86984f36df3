package world

// ChunkSize is the interior edge length of a standard world chunk.
const ChunkSize = 12

// Sampler is a read-only voxel source. Implementations must return
// MaterialVoid for any coordinate they cannot resolve and must never panic;
// surface extraction reads one voxel beyond the range it is given on every
// side.
type Sampler interface {
	At(p Vec3i) Material
}

// Chunk is a dense block of voxels with a one-voxel margin on every side.
// The margin mirrors neighboring voxels so that boundary faces and their
// occlusion can be decided without chasing other chunks. Interior
// coordinates run [0,dims) per axis; the margin extends that to [-1,dims].
//
// A chunk that has never held a solid voxel keeps a nil backing slice.
type Chunk struct {
	dims   Dims
	voxels []Material // (dims+2)^3 dense storage, x fastest; nil while empty
}

// NewChunk creates an empty chunk with the given interior dimensions.
func NewChunk(dims Dims) *Chunk {
	return &Chunk{dims: dims}
}

// NewStandardChunk creates an empty chunk with the standard world size.
func NewStandardChunk() *Chunk {
	return NewChunk(Cube(ChunkSize))
}

// Dims returns the chunk's interior dimensions.
func (c *Chunk) Dims() Dims {
	return c.dims
}

// index converts a margin-inclusive coordinate to a flat offset.
func (c *Chunk) index(p Vec3i) int {
	sx := c.dims.X + 2
	sy := c.dims.Y + 2
	return (p.X + 1) + sx*((p.Y+1)+sy*(p.Z+1))
}

// inBounds reports whether p lies inside the stored volume, margin included.
func (c *Chunk) inBounds(p Vec3i) bool {
	return p.X >= -1 && p.X <= c.dims.X &&
		p.Y >= -1 && p.Y <= c.dims.Y &&
		p.Z >= -1 && p.Z <= c.dims.Z
}

// At returns the material at a chunk-local coordinate. Margin coordinates
// ([-1] and [dim] on any axis) read the stored halo; anything further out is
// void.
func (c *Chunk) At(p Vec3i) Material {
	if c == nil || c.voxels == nil || !c.inBounds(p) {
		return MaterialVoid
	}
	return c.voxels[c.index(p)]
}

// Set writes the material at a chunk-local coordinate. Both interior and
// margin coordinates are writable so that halo data from neighbors can be
// mirrored in; coordinates beyond the margin are ignored. Storage is
// allocated on the first solid write.
func (c *Chunk) Set(p Vec3i, m Material) {
	if !c.inBounds(p) {
		return
	}
	if c.voxels == nil {
		if m == MaterialVoid {
			return
		}
		c.voxels = make([]Material, (c.dims.X+2)*(c.dims.Y+2)*(c.dims.Z+2))
	}
	c.voxels[c.index(p)] = m
}

// Empty reports whether the chunk has never held a solid voxel. Empty chunks
// cannot own any surface, so callers may skip extraction outright.
func (c *Chunk) Empty() bool {
	return c == nil || c.voxels == nil
}

// Solid reports whether the voxel at p is occupied.
func (c *Chunk) Solid(p Vec3i) bool {
	return c.At(p).Solid()
}
