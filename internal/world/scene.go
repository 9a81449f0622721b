package world

import "goxecraft/internal/meshing"

// Scene is the rendering collaborator. Attach may fail when geometry buffers
// cannot be allocated; Dispose is always called after Detach and for every
// mesh whose Attach failed.
type Scene interface {
	Attach(coord ChunkCoord, m *meshing.Mesh) error
	Detach(coord ChunkCoord, m *meshing.Mesh)
	Dispose(m *meshing.Mesh)
}

// NopScene discards geometry. It backs headless worlds.
type NopScene struct{}

func (NopScene) Attach(ChunkCoord, *meshing.Mesh) error { return nil }
func (NopScene) Detach(ChunkCoord, *meshing.Mesh)       {}
func (NopScene) Dispose(*meshing.Mesh)                  {}
