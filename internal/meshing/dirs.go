package meshing

import "github.com/cedric-h/hypermine/internal/world"

// Axis selects one of the three lattice plane orientations a face slot can
// have.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// Offset returns the unit step along the axis.
func (a Axis) Offset() world.Vec3i {
	switch a {
	case AxisX:
		return world.Vec3i{X: 1}
	case AxisY:
		return world.Vec3i{Y: 1}
	default:
		return world.Vec3i{Z: 1}
	}
}

// FaceDir is an oriented face direction: each axis in both polarities.
// Values are laid out so that dir>>1 recovers the axis and bit 0 the
// polarity (0 = positive).
type FaceDir uint8

const (
	FaceEast   FaceDir = iota // +X
	FaceWest                  // -X
	FaceTop                   // +Y
	FaceBottom                // -Y
	FaceNorth                 // +Z
	FaceSouth                 // -Z

	NumFaceDirs = 6
)

// Axis returns the lattice axis the face is perpendicular to.
func (d FaceDir) Axis() Axis {
	return Axis(d >> 1)
}

// Positive reports whether the face's normal points along the positive axis.
func (d FaceDir) Positive() bool {
	return d&1 == 0
}

// Normal returns the void-ward unit offset: stepping from the face's owning
// voxel along Normal lands in the empty cell the face looks into.
func (d FaceDir) Normal() world.Vec3i {
	return faceBases[d].normal
}

func (d FaceDir) String() string {
	switch d {
	case FaceEast:
		return "east"
	case FaceWest:
		return "west"
	case FaceTop:
		return "top"
	case FaceBottom:
		return "bottom"
	case FaceNorth:
		return "north"
	case FaceSouth:
		return "south"
	default:
		return "facedir(?)"
	}
}

// faceBasis carries everything direction-dependent about a face: the
// void-ward normal, the two in-plane tangents spanning the quad, and
// whether the (u,v) ordering runs against the normal (which flips the
// triangle winding).
//
// The same u/v tangents drive occlusion sampling and quad-corner placement,
// so the corner at (su,sv) always shades from the voxels it actually touches.
type faceBasis struct {
	normal world.Vec3i
	u, v   world.Vec3i
	flip   bool
}

var faceBases = [NumFaceDirs]faceBasis{
	FaceEast:   {normal: world.Vec3i{X: 1}, u: world.Vec3i{Y: 1}, v: world.Vec3i{Z: 1}},
	FaceWest:   {normal: world.Vec3i{X: -1}, u: world.Vec3i{Y: 1}, v: world.Vec3i{Z: 1}, flip: true},
	FaceTop:    {normal: world.Vec3i{Y: 1}, u: world.Vec3i{X: 1}, v: world.Vec3i{Z: 1}, flip: true},
	FaceBottom: {normal: world.Vec3i{Y: -1}, u: world.Vec3i{X: 1}, v: world.Vec3i{Z: 1}},
	FaceNorth:  {normal: world.Vec3i{Z: 1}, u: world.Vec3i{X: 1}, v: world.Vec3i{Y: 1}},
	FaceSouth:  {normal: world.Vec3i{Z: -1}, u: world.Vec3i{X: 1}, v: world.Vec3i{Y: 1}, flip: true},
}

// positiveDir and negativeDir map an axis to its two oriented directions.
func positiveDir(a Axis) FaceDir { return FaceDir(a << 1) }
func negativeDir(a Axis) FaceDir { return FaceDir(a<<1 | 1) }
