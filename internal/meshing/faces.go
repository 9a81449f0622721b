package meshing

import "github.com/go-gl/mathgl/mgl32"

// Dir identifies one of the six axis-aligned faces of a block.
type Dir uint8

const (
	DirTop    Dir = iota // +Y
	DirBottom            // -Y
	DirFront             // +Z
	DirBack              // -Z
	DirRight             // +X
	DirLeft              // -X

	NumDirs = 6
)

// Offsets holds the neighbor step for each direction.
var Offsets = [NumDirs][3]int{
	DirTop:    {0, 1, 0},
	DirBottom: {0, -1, 0},
	DirFront:  {0, 0, 1},
	DirBack:   {0, 0, -1},
	DirRight:  {1, 0, 0},
	DirLeft:   {-1, 0, 0},
}

var normals = [NumDirs]mgl32.Vec3{
	DirTop:    {0, 1, 0},
	DirBottom: {0, -1, 0},
	DirFront:  {0, 0, 1},
	DirBack:   {0, 0, -1},
	DirRight:  {1, 0, 0},
	DirLeft:   {-1, 0, 0},
}

const half = 0.5

// corners lists each face's quad relative to the block center, counter-clockwise
// when viewed from outside so (v0,v1,v2) and (v0,v2,v3) both face outward.
var corners = [NumDirs][4]mgl32.Vec3{
	DirTop:    {{-half, half, half}, {half, half, half}, {half, half, -half}, {-half, half, -half}},
	DirBottom: {{-half, -half, -half}, {half, -half, -half}, {half, -half, half}, {-half, -half, half}},
	DirFront:  {{-half, -half, half}, {half, -half, half}, {half, half, half}, {-half, half, half}},
	DirBack:   {{half, -half, -half}, {-half, -half, -half}, {-half, half, -half}, {half, half, -half}},
	DirRight:  {{half, -half, half}, {half, -half, -half}, {half, half, -half}, {half, half, half}},
	DirLeft:   {{-half, -half, -half}, {-half, -half, half}, {-half, half, half}, {-half, half, -half}},
}

var quadUVs = [4]mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

// quadIndices triangulates a face; offsets are relative to its first vertex.
var quadIndices = [6]uint32{0, 1, 2, 0, 2, 3}

// Normal returns the outward unit normal of d.
func (d Dir) Normal() mgl32.Vec3 { return normals[d] }

// Opposite returns the direction facing the other way.
func (d Dir) Opposite() Dir { return d ^ 1 }

func (d Dir) String() string {
	switch d {
	case DirTop:
		return "top"
	case DirBottom:
		return "bottom"
	case DirFront:
		return "front"
	case DirBack:
		return "back"
	case DirRight:
		return "right"
	case DirLeft:
		return "left"
	}
	return "invalid"
}
