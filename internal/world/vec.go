package world

import "github.com/go-gl/mathgl/mgl32"

// Vec3i is an integer voxel coordinate.
type Vec3i struct {
	X, Y, Z int
}

func (v Vec3i) Add(o Vec3i) Vec3i {
	return Vec3i{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vec3i) Sub(o Vec3i) Vec3i {
	return Vec3i{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v Vec3i) Mul(n int) Vec3i {
	return Vec3i{v.X * n, v.Y * n, v.Z * n}
}

func (v Vec3i) Neg() Vec3i {
	return Vec3i{-v.X, -v.Y, -v.Z}
}

// Vec3 converts to a float vector for geometry math.
func (v Vec3i) Vec3() mgl32.Vec3 {
	return mgl32.Vec3{float32(v.X), float32(v.Y), float32(v.Z)}
}

// Dims is the interior size of a chunk along each axis.
type Dims struct {
	X, Y, Z int
}

// Cube returns cubic dimensions n*n*n.
func Cube(n int) Dims {
	return Dims{n, n, n}
}

// Volume returns the number of interior voxels.
func (d Dims) Volume() int {
	return d.X * d.Y * d.Z
}

// Contains reports whether p is an interior coordinate of a chunk with
// these dimensions.
func (d Dims) Contains(p Vec3i) bool {
	return p.X >= 0 && p.X < d.X &&
		p.Y >= 0 && p.Y < d.Y &&
		p.Z >= 0 && p.Z < d.Z
}
