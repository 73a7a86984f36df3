package world

import "sync"

// ChunkCoord addresses a chunk in the world grid.
type ChunkCoord struct {
	X, Y, Z int
}

// Origin returns the world-space voxel coordinate of the chunk's (0,0,0).
func (cc ChunkCoord) Origin() Vec3i {
	return Vec3i{cc.X * ChunkSize, cc.Y * ChunkSize, cc.Z * ChunkSize}
}

// ChunkWithCoord pairs a chunk with its grid position.
type ChunkWithCoord struct {
	Chunk *Chunk
	Coord ChunkCoord
}

// World stores standard-size chunks and resolves voxel reads across their
// boundaries, which is what surface extraction needs to see one voxel into a
// chunk's neighbors.
type World struct {
	mu     sync.RWMutex
	chunks map[ChunkCoord]*Chunk
}

// New creates an empty world.
func New() *World {
	return &World{chunks: make(map[ChunkCoord]*Chunk)}
}

// Chunk returns the chunk at the given coordinate. If it doesn't exist and
// create is true, an empty standard chunk is created (but NOT populated).
func (w *World) Chunk(coord ChunkCoord, create bool) *Chunk {
	w.mu.RLock()
	chunk, exists := w.chunks[coord]
	w.mu.RUnlock()
	if !exists && create {
		w.mu.Lock()
		// Double-check locking: another goroutine might have created it
		// while we were waiting for the lock
		if existing, ok := w.chunks[coord]; ok {
			w.mu.Unlock()
			return existing
		}
		chunk = NewStandardChunk()
		w.chunks[coord] = chunk
		w.mu.Unlock()
	}
	return chunk
}

// AddChunk inserts a pre-populated chunk, keeping an existing one if the
// coordinate is already occupied.
func (w *World) AddChunk(coord ChunkCoord, chunk *Chunk) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.chunks[coord]; !ok {
		w.chunks[coord] = chunk
	}
}

// Chunks returns all chunks with their coordinates.
func (w *World) Chunks() []ChunkWithCoord {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]ChunkWithCoord, 0, len(w.chunks))
	for coord, chunk := range w.chunks {
		out = append(out, ChunkWithCoord{Chunk: chunk, Coord: coord})
	}
	return out
}

// SplitCoord breaks a world voxel coordinate into the chunk holding it and
// the chunk-local remainder.
func SplitCoord(p Vec3i) (ChunkCoord, Vec3i) {
	cc := ChunkCoord{
		X: floorDiv(p.X, ChunkSize),
		Y: floorDiv(p.Y, ChunkSize),
		Z: floorDiv(p.Z, ChunkSize),
	}
	local := Vec3i{mod(p.X, ChunkSize), mod(p.Y, ChunkSize), mod(p.Z, ChunkSize)}
	return cc, local
}

// At returns the material at a world voxel coordinate. Coordinates in
// unloaded chunks are void.
func (w *World) At(p Vec3i) Material {
	cc, local := SplitCoord(p)
	w.mu.RLock()
	chunk := w.chunks[cc]
	w.mu.RUnlock()
	if chunk == nil {
		return MaterialVoid
	}
	return chunk.At(local)
}

// Set writes the material at a world voxel coordinate, creating the chunk if
// needed.
func (w *World) Set(p Vec3i, m Material) {
	cc, local := SplitCoord(p)
	chunk := w.Chunk(cc, true)
	chunk.Set(local, m)
}

// SamplerFor returns a voxel source for extracting the chunk at coord:
// chunk-local coordinates inside the chunk read its own storage, halo
// coordinates resolve against the neighboring chunks, and anything not
// loaded is void.
func (w *World) SamplerFor(coord ChunkCoord) Sampler {
	return &worldSampler{
		w:      w,
		chunk:  w.Chunk(coord, false),
		origin: coord.Origin(),
	}
}

type worldSampler struct {
	w      *World
	chunk  *Chunk // may be nil if the chunk was never loaded
	origin Vec3i
}

func (s *worldSampler) At(p Vec3i) Material {
	if s.chunk != nil && s.chunk.dims.Contains(p) {
		return s.chunk.At(p)
	}
	return s.w.At(s.origin.Add(p))
}

// Empty reports whether the sampled chunk itself holds no solid voxels.
// Neighbor halos don't matter here: they can never own this chunk's faces.
func (s *worldSampler) Empty() bool {
	return s.chunk.Empty()
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// mod returns the non-negative remainder of a/b.
func mod(a, b int) int {
	r := a % b
	if r < 0 {
		r += b
	}
	return r
}
