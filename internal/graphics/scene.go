package graphics

import (
	"errors"
	"fmt"
	"math"

	"goxecraft/internal/meshing"
	"goxecraft/internal/profiling"
	"goxecraft/internal/world"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

var sunDir = mgl32.Vec3{-0.4, -1.0, -0.3}

const ambientLight = 0.45

// ErrOutOfMemory is returned when the driver cannot allocate chunk buffers.
var ErrOutOfMemory = errors.New("graphics: out of GPU memory")

// gpuMesh is a mesh uploaded to the GPU.
type gpuMesh struct {
	vao, vbo, ebo uint32
	opaque        int32 // leading indices drawn without blending
	translucent   int32 // trailing indices drawn in the blended pass
	lo, hi        mgl32.Vec3
}

// Scene keeps chunk meshes on the GPU and draws the attached ones. It
// implements world.Scene and must be used on the GL thread.
type Scene struct {
	program  *chunkProgram
	uploaded map[*meshing.Mesh]*gpuMesh
	attached map[world.ChunkCoord]*gpuMesh
	visible  []*gpuMesh

	// Culled counts meshes skipped by the last Render.
	Culled int
}

// NewScene compiles the chunk shader. A GL context must be current.
func NewScene() (*Scene, error) {
	program, err := newChunkProgram()
	if err != nil {
		return nil, err
	}
	return &Scene{
		program:  program,
		uploaded: make(map[*meshing.Mesh]*gpuMesh),
		attached: make(map[world.ChunkCoord]*gpuMesh),
	}, nil
}

// Attach uploads m if needed and schedules it for drawing at coord.
func (s *Scene) Attach(coord world.ChunkCoord, m *meshing.Mesh) error {
	g, ok := s.uploaded[m]
	if !ok {
		var err error
		if g, err = upload(m); err != nil {
			return fmt.Errorf("attach chunk %d,%d: %w", coord.X, coord.Z, err)
		}
		s.uploaded[m] = g
	}
	s.attached[coord] = g
	return nil
}

// Detach stops drawing coord. The buffers stay until Dispose.
func (s *Scene) Detach(coord world.ChunkCoord, m *meshing.Mesh) {
	if g, ok := s.attached[coord]; ok && g == s.uploaded[m] {
		delete(s.attached, coord)
	}
}

// Dispose frees the GPU buffers of m.
func (s *Scene) Dispose(m *meshing.Mesh) {
	g, ok := s.uploaded[m]
	if !ok {
		return
	}
	gl.DeleteVertexArrays(1, &g.vao)
	gl.DeleteBuffers(1, &g.vbo)
	gl.DeleteBuffers(1, &g.ebo)
	delete(s.uploaded, m)
}

// Len returns the number of attached chunks.
func (s *Scene) Len() int { return len(s.attached) }

func upload(m *meshing.Mesh) (*gpuMesh, error) {
	verts := m.Interleaved()
	opaque := m.OpaqueIndexCount()
	g := &gpuMesh{opaque: int32(opaque), translucent: int32(len(m.Indices) - opaque)}
	g.lo, g.hi = bounds(m.Positions)

	// drain stale errors so the check below only sees this upload
	for gl.GetError() != gl.NO_ERROR {
	}

	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)

	gl.GenBuffers(1, &g.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.STATIC_DRAW)

	gl.GenBuffers(1, &g.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, gl.Ptr(m.Indices), gl.STATIC_DRAW)

	stride := int32(meshing.VertexStride * 4)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(2, 4, gl.FLOAT, false, stride, 6*4)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointerWithOffset(3, 2, gl.FLOAT, false, stride, 10*4)
	gl.EnableVertexAttribArray(3)
	gl.BindVertexArray(0)

	if code := gl.GetError(); code != gl.NO_ERROR {
		gl.DeleteVertexArrays(1, &g.vao)
		gl.DeleteBuffers(1, &g.vbo)
		gl.DeleteBuffers(1, &g.ebo)
		if code == gl.OUT_OF_MEMORY {
			return nil, ErrOutOfMemory
		}
		return nil, fmt.Errorf("graphics: GL error 0x%x during upload", code)
	}
	return g, nil
}

// bounds returns the axis-aligned box around a flat xyz position list.
func bounds(positions []float32) (lo, hi mgl32.Vec3) {
	inf := float32(math.Inf(1))
	lo = mgl32.Vec3{inf, inf, inf}
	hi = mgl32.Vec3{-inf, -inf, -inf}
	for i := 0; i+2 < len(positions); i += 3 {
		for a := 0; a < 3; a++ {
			lo[a] = min(lo[a], positions[i+a])
			hi[a] = max(hi[a], positions[i+a])
		}
	}
	return lo, hi
}

// Render draws every attached chunk that intersects the camera frustum:
// opaque faces first, then translucent faces blended over them without
// writing depth.
func (s *Scene) Render(view, proj mgl32.Mat4) {
	defer profiling.Track("renderer.renderBlocks")()
	frustum := NewFrustum(proj.Mul4(view))

	s.program.bind(view, proj, sunDir, ambientLight)

	s.visible = s.visible[:0]
	for _, g := range s.attached {
		if frustum.ContainsAABB(g.lo, g.hi) {
			s.visible = append(s.visible, g)
		}
	}
	s.Culled = len(s.attached) - len(s.visible)

	for _, g := range s.visible {
		if g.opaque == 0 {
			continue
		}
		gl.BindVertexArray(g.vao)
		gl.DrawElementsWithOffset(gl.TRIANGLES, g.opaque, gl.UNSIGNED_INT, 0)
	}

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.DepthMask(false)
	for _, g := range s.visible {
		if g.translucent == 0 {
			continue
		}
		gl.BindVertexArray(g.vao)
		gl.DrawElementsWithOffset(gl.TRIANGLES, g.translucent, gl.UNSIGNED_INT, uintptr(g.opaque)*4)
	}
	gl.DepthMask(true)
	gl.Disable(gl.BLEND)

	gl.BindVertexArray(0)
	profiling.Count("renderer.chunks.drawn", len(s.visible))
}

// Close frees every buffer and the shader.
func (s *Scene) Close() {
	for m := range s.uploaded {
		s.Dispose(m)
	}
	clear(s.attached)
	s.program.delete()
}
