package meshing

import (
	"errors"
	"fmt"

	"goxecraft/internal/profiling"
	"goxecraft/internal/registry"
)

// ErrMeshTooLarge is returned when a chunk's geometry would exceed the vertex
// budget. Callers treat it like an allocation failure.
var ErrMeshTooLarge = errors.New("mesh exceeds vertex budget")

// BlockSource answers block queries in world coordinates. ok is false when
// nothing is stored there.
type BlockSource interface {
	GetBlock(x, y, z int) (kind registry.BlockKind, ok bool)
}

// Voxel is a stored block at a world coordinate.
type Voxel struct {
	X, Y, Z int
	Kind    registry.BlockKind
}

// Options control face emission.
type Options struct {
	// FaceCulling drops faces hidden by an opaque neighbor. When false every
	// face of every block is emitted.
	FaceCulling bool
	// MaxVertices caps the mesh size; 0 means unlimited.
	MaxVertices int
}

// Build assembles one mesh for voxels, looking neighbors up through src so
// visibility is decided across chunk borders. It returns a nil mesh when no
// face is visible. Faces of transparent kinds are placed after all opaque
// faces.
func Build(src BlockSource, voxels []Voxel, opts Options) (*Mesh, error) {
	defer profiling.Track("meshing.Build")()
	if len(voxels) == 0 {
		return nil, nil
	}

	m := newMesh(len(voxels))
	var translucent []Voxel
	for _, v := range voxels {
		switch {
		case v.Kind == registry.Air:
			continue
		case v.Kind.Transparent():
			translucent = append(translucent, v)
			continue
		}
		if err := m.addBlock(src, v, opts); err != nil {
			return nil, err
		}
	}
	m.OpaqueFaces = m.FaceCount()
	for _, v := range translucent {
		if err := m.addBlock(src, v, opts); err != nil {
			return nil, err
		}
	}
	if m.Empty() {
		return nil, nil
	}
	return m, nil
}

// addBlock appends the visible faces of v. Blocks boxed in by opaque
// neighbors are skipped without a per-face pass.
func (m *Mesh) addBlock(src BlockSource, v Voxel, opts Options) error {
	if opts.FaceCulling && Hidden(src, v.X, v.Y, v.Z) {
		return nil
	}
	var visible [NumDirs]bool
	n := visibleFaces(src, v, opts.FaceCulling, &visible)
	if n == 0 {
		return nil
	}
	if opts.MaxVertices > 0 && m.VertexCount()+n*4 > opts.MaxVertices {
		return fmt.Errorf("%w: more than %d vertices", ErrMeshTooLarge, opts.MaxVertices)
	}
	for d := Dir(0); d < NumDirs; d++ {
		if visible[d] {
			m.addFace(v.X, v.Y, v.Z, d, v.Kind)
		}
	}
	return nil
}

// visibleFaces fills out with the faces of v that must be drawn and returns
// how many there are. A face is drawn when its neighbor is absent or transparent.
func visibleFaces(src BlockSource, v Voxel, culling bool, out *[NumDirs]bool) int {
	count := 0
	for d := Dir(0); d < NumDirs; d++ {
		show := true
		if culling {
			o := Offsets[d]
			if nb, ok := src.GetBlock(v.X+o[0], v.Y+o[1], v.Z+o[2]); ok && !nb.Transparent() {
				show = false
			}
		}
		out[d] = show
		if show {
			count++
		}
	}
	return count
}

// Hidden reports whether every neighbor of (x,y,z) is present, solid and
// opaque, i.e. the block cannot contribute any face.
func Hidden(src BlockSource, x, y, z int) bool {
	for _, o := range Offsets {
		nb, ok := src.GetBlock(x+o[0], y+o[1], z+o[2])
		if !ok || !nb.Occludes() {
			return false
		}
	}
	return true
}
