package world

import "strconv"

// Material identifies what a voxel is made of. Zero is empty space.
type Material uint16

const (
	MaterialVoid Material = iota
	MaterialStone
	MaterialSand
	MaterialDirt
)

// Solid reports whether the material occupies its voxel. Every non-void
// material is solid for surface extraction; translucency is a renderer
// concern.
func (m Material) Solid() bool {
	return m != MaterialVoid
}

func (m Material) String() string {
	switch m {
	case MaterialVoid:
		return "void"
	case MaterialStone:
		return "stone"
	case MaterialSand:
		return "sand"
	case MaterialDirt:
		return "dirt"
	default:
		return "material(" + strconv.Itoa(int(m)) + ")"
	}
}
