package meshing

import "goxecraft/internal/registry"

// VertexStride is number of float32 per vertex in Interleaved output
// (pos.xyz + normal.xyz + color.rgba + uv.st)
const VertexStride = 12

// Face records which block face produced a quad.
type Face struct {
	X, Y, Z int
	Dir     Dir
	Kind    registry.BlockKind
}

// Mesh is the renderable surface of one chunk: indexed triangles with
// world-space positions, four vertices per visible face. Opaque faces come
// first; faces of transparent kinds follow from OpaqueFaces on, so a renderer
// can draw them in a separate blended pass.
type Mesh struct {
	Positions []float32 // xyz
	Normals   []float32 // xyz
	Colors    []float32 // rgba
	UVs       []float32 // st
	Indices   []uint32

	// Faces is parallel to the quads: face i owns vertices [4i, 4i+4).
	Faces       []Face
	OpaqueFaces int
}

func newMesh(faceHint int) *Mesh {
	return &Mesh{
		Positions: make([]float32, 0, faceHint*12),
		Normals:   make([]float32, 0, faceHint*12),
		Colors:    make([]float32, 0, faceHint*16),
		UVs:       make([]float32, 0, faceHint*8),
		Indices:   make([]uint32, 0, faceHint*6),
		Faces:     make([]Face, 0, faceHint),
	}
}

// addFace appends the quad for face d of the block centered at (x,y,z).
func (m *Mesh) addFace(x, y, z int, d Dir, kind registry.BlockKind) {
	base := uint32(len(m.Positions) / 3)
	fx, fy, fz := float32(x), float32(y), float32(z)
	n := normals[d]
	col := kind.ColorVec()
	alpha := kind.Opacity()
	for i, c := range corners[d] {
		m.Positions = append(m.Positions, fx+c.X(), fy+c.Y(), fz+c.Z())
		m.Normals = append(m.Normals, n.X(), n.Y(), n.Z())
		m.Colors = append(m.Colors, col.X(), col.Y(), col.Z(), alpha)
		m.UVs = append(m.UVs, quadUVs[i].X(), quadUVs[i].Y())
	}
	for _, idx := range quadIndices {
		m.Indices = append(m.Indices, base+idx)
	}
	m.Faces = append(m.Faces, Face{X: x, Y: y, Z: z, Dir: d, Kind: kind})
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	if m == nil {
		return 0
	}
	return len(m.Positions) / 3
}

// FaceCount returns the number of quads.
func (m *Mesh) FaceCount() int {
	if m == nil {
		return 0
	}
	return len(m.Faces)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	if m == nil {
		return 0
	}
	return len(m.Indices) / 3
}

// OpaqueIndexCount returns how many leading indices belong to opaque faces.
// The rest are translucent.
func (m *Mesh) OpaqueIndexCount() int {
	if m == nil {
		return 0
	}
	return m.OpaqueFaces * len(quadIndices)
}

// Empty reports whether the mesh has no geometry.
func (m *Mesh) Empty() bool { return m.FaceCount() == 0 }

// FacesAt returns the faces contributed by the block at (x,y,z).
func (m *Mesh) FacesAt(x, y, z int) []Face {
	if m == nil {
		return nil
	}
	var out []Face
	for _, f := range m.Faces {
		if f.X == x && f.Y == y && f.Z == z {
			out = append(out, f)
		}
	}
	return out
}

// HasFace reports whether the block at (x,y,z) emitted face d.
func (m *Mesh) HasFace(x, y, z int, d Dir) bool {
	for _, f := range m.FacesAt(x, y, z) {
		if f.Dir == d {
			return true
		}
	}
	return false
}

// Interleaved packs the vertex attributes into one slice with VertexStride
// floats per vertex, ready for a single buffer upload.
func (m *Mesh) Interleaved() []float32 {
	n := m.VertexCount()
	out := make([]float32, 0, n*VertexStride)
	for i := 0; i < n; i++ {
		out = append(out, m.Positions[i*3:i*3+3]...)
		out = append(out, m.Normals[i*3:i*3+3]...)
		out = append(out, m.Colors[i*4:i*4+4]...)
		out = append(out, m.UVs[i*2:i*2+2]...)
	}
	return out
}
