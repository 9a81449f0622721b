package world

import (
	"errors"
	"fmt"
	"log"

	"goxecraft/internal/config"
	"goxecraft/internal/meshing"
	"goxecraft/internal/registry"
)

// World owns every chunk, routes block edits to the chunk that holds them and
// streams chunks in and out around the viewer. It is not safe for concurrent
// use; callers drive it from one loop.
type World struct {
	cfg   *config.Config
	gen   *Generator
	store *ChunkStore
	scene Scene
	pool  *GenPool // nil generates inline

	loaded map[ChunkCoord]struct{}
	closed bool
}

// New validates cfg and builds an empty world around scene. A nil scene
// discards geometry. The world keeps its own copy of cfg.
func New(cfg *config.Config, scene Scene) (*World, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if scene == nil {
		scene = NopScene{}
	}
	c := cfg.Clone()
	w := &World{
		cfg:    c,
		gen:    NewGenerator(c),
		store:  NewChunkStore(c.World.ChunkSize, c.World.WorldHeight),
		scene:  scene,
		loaded: make(map[ChunkCoord]struct{}),
	}
	if n := c.Performance.GenerateWorkers; n > 1 {
		side := 2*c.World.RenderDistance + 1
		w.pool = NewGenPool(w.gen, n, side*side)
	}
	log.Printf("world: seed=%d chunk=%d render=%d height=%d sea=%d",
		c.Terrain.Seed, c.World.ChunkSize, c.World.RenderDistance, c.World.WorldHeight, c.World.SeaLevel)
	return w, nil
}

// Config returns the world's configuration. It must not be modified.
func (w *World) Config() *config.Config { return w.cfg }

// Generator exposes the terrain generator.
func (w *World) Generator() *Generator { return w.gen }

func (w *World) meshOptions() meshing.Options {
	return meshing.Options{
		FaceCulling: w.cfg.Performance.FaceCulling,
		MaxVertices: w.cfg.Performance.MaxChunkVertices,
	}
}

func (w *World) inHeight(y int) bool { return y >= 0 && y < w.cfg.World.WorldHeight }

// GetBlock returns the block stored at (x, y, z). ok is false for air, for y
// outside the world and for chunks that do not exist yet. It never creates or
// generates anything.
func (w *World) GetBlock(x, y, z int) (registry.BlockKind, bool) {
	if !w.inHeight(y) {
		return registry.Air, false
	}
	c := w.store.GetChunkFromBlockCoords(x, z, false)
	if c == nil {
		return registry.Air, false
	}
	return c.GetBlock(x, y, z)
}

// IsSolid reports whether a solid block occupies (x, y, z).
func (w *World) IsSolid(x, y, z int) bool {
	kind, ok := w.GetBlock(x, y, z)
	return ok && kind.Solid()
}

// IsTargetable reports whether any block is stored at (x, y, z), so the
// viewer can pick it, water included.
func (w *World) IsTargetable(x, y, z int) bool {
	_, ok := w.GetBlock(x, y, z)
	return ok
}

// SetBlock stores kind at (x, y, z), creating the owning chunk if needed.
// Air removes the block. Out-of-range y is a silent no-op. When the owning
// chunk is loaded its mesh is rebuilt before returning, together with any
// loaded neighbor that shares the edited face.
func (w *World) SetBlock(x, y, z int, kind registry.BlockKind) error {
	if w.closed || !w.inHeight(y) {
		return nil
	}
	if !kind.Valid() {
		return fmt.Errorf("set block (%d,%d,%d): unknown kind %d", x, y, z, kind)
	}
	c := w.store.GetChunkFromBlockCoords(x, z, true)
	c.SetBlock(x, y, z, kind)

	var errs []error
	if w.IsLoaded(c.Coord()) {
		if err := w.remesh(c); err != nil {
			errs = append(errs, err)
		}
	}
	for _, nc := range w.borderNeighbors(c, x, z) {
		if err := w.remesh(nc); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// borderNeighbors returns the loaded chunks whose meshes can see column
// (x, z) across a chunk edge.
func (w *World) borderNeighbors(c *Chunk, x, z int) []*Chunk {
	x0, z0 := c.Origin()
	size := w.cfg.World.ChunkSize
	var out []*Chunk
	add := func(dx, dz int) {
		coord := c.Coord().Add(dx, dz)
		if !w.IsLoaded(coord) {
			return
		}
		if nc := w.store.GetChunk(coord, false); nc != nil {
			out = append(out, nc)
		}
	}
	if x == x0 {
		add(-1, 0)
	}
	if x == x0+size-1 {
		add(1, 0)
	}
	if z == z0 {
		add(0, -1)
	}
	if z == z0+size-1 {
		add(0, 1)
	}
	return out
}

// remesh rebuilds c's mesh. A failed rebuild drops c from the loaded set so
// the next streaming pass retries it.
func (w *World) remesh(c *Chunk) error {
	if err := c.BuildMesh(w, w.meshOptions(), w.scene); err != nil {
		delete(w.loaded, c.Coord())
		return fmt.Errorf("mesh chunk %d,%d: %w", c.X, c.Z, err)
	}
	return nil
}

// GetTerrainHeight returns the generated surface height of column (x, z).
func (w *World) GetTerrainHeight(x, z int) int { return w.gen.HeightAt(x, z) }

// GetBlockCount sums the stored blocks of every chunk held by the world.
func (w *World) GetBlockCount() int { return w.store.BlockCount() }

// IsLoaded reports whether coord currently has its mesh in the scene.
func (w *World) IsLoaded(coord ChunkCoord) bool {
	_, ok := w.loaded[coord]
	return ok
}

// LoadedChunks returns the loaded coordinates in order.
func (w *World) LoadedChunks() []ChunkCoord {
	out := make([]ChunkCoord, 0, len(w.loaded))
	for _, cc := range w.store.All() {
		if w.IsLoaded(cc.Coord) {
			out = append(out, cc.Coord)
		}
	}
	return out
}

// Chunk returns the chunk at chunk coordinate (cx, cz), or nil.
func (w *World) Chunk(cx, cz int) *Chunk {
	return w.store.GetChunk(ChunkCoord{X: cx, Z: cz}, false)
}

// ChunkCount returns how many chunks are held, loaded or not.
func (w *World) ChunkCount() int { return w.store.Len() }

// Close destroys every chunk and releases their meshes. The world ignores
// edits and streaming afterwards.
func (w *World) Close() {
	if w.closed {
		return
	}
	for _, cc := range w.store.All() {
		cc.Chunk.Destroy(w.scene)
		w.store.Remove(cc.Coord)
	}
	clear(w.loaded)
	if w.pool != nil {
		w.pool.Shutdown()
	}
	w.closed = true
}

// generate populates chunks, in parallel when a pool is configured.
func (w *World) generate(chunks []*Chunk) {
	if w.pool == nil {
		for _, c := range chunks {
			c.Generate(w.gen)
		}
		return
	}
	w.pool.Generate(chunks)
}
