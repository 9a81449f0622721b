package world

import (
	"errors"
	"maps"
	"slices"

	"goxecraft/internal/meshing"
	"goxecraft/internal/profiling"
	"goxecraft/internal/registry"
)

var (
	// ErrNotGenerated is returned when meshing a chunk before its terrain exists.
	ErrNotGenerated = errors.New("chunk not generated")
	// ErrDestroyed is returned when using a chunk after Destroy.
	ErrDestroyed = errors.New("chunk destroyed")
)

// blockKey packs a position inside the chunk footprint:
// ((y*size)+localZ)*size + localX.
type blockKey uint64

// Chunk is a size x size column of the world spanning every y. It stores
// only non-air blocks.
type Chunk struct {
	X, Z int // chunk coordinates

	size   int
	height int

	blocks    map[blockKey]registry.BlockKind
	cleared   map[blockKey]struct{} // air set before generation
	generated bool
	destroyed bool
	mesh      *meshing.Mesh
}

// NewChunk creates an empty, ungenerated chunk at chunk coordinate (cx, cz).
func NewChunk(cx, cz, size, height int) *Chunk {
	return &Chunk{
		X:      cx,
		Z:      cz,
		size:   size,
		height: height,
		blocks: make(map[blockKey]registry.BlockKind),
	}
}

// Coord returns the chunk coordinate.
func (c *Chunk) Coord() ChunkCoord { return ChunkCoord{X: c.X, Z: c.Z} }

// Origin returns the world coordinate of the chunk's minimum corner column.
func (c *Chunk) Origin() (x, z int) { return c.X * c.size, c.Z * c.size }

// Contains reports whether world column (x, z) lies in the footprint.
func (c *Chunk) Contains(x, z int) bool {
	x0, z0 := c.Origin()
	return x >= x0 && x < x0+c.size && z >= z0 && z < z0+c.size
}

func (c *Chunk) key(x, y, z int) (blockKey, bool) {
	if y < 0 || y >= c.height || !c.Contains(x, z) {
		return 0, false
	}
	x0, z0 := c.Origin()
	lx, lz := x-x0, z-z0
	return blockKey((y*c.size+lz)*c.size + lx), true
}

func (c *Chunk) position(k blockKey) (x, y, z int) {
	s := blockKey(c.size)
	x0, z0 := c.Origin()
	return x0 + int(k%s), int(k / (s * s)), z0 + int((k/s)%s)
}

// GetBlock returns the block at world coordinate (x, y, z). ok is false for
// air and for positions outside the chunk.
func (c *Chunk) GetBlock(x, y, z int) (kind registry.BlockKind, ok bool) {
	k, in := c.key(x, y, z)
	if !in {
		return registry.Air, false
	}
	kind, ok = c.blocks[k]
	return kind, ok
}

// SetBlock stores kind at world coordinate (x, y, z); Air removes the entry.
// It returns false, without mutating anything, when the position is outside
// the chunk or the chunk was destroyed. Before generation, Air is remembered
// so terrain does not refill the cell.
func (c *Chunk) SetBlock(x, y, z int, kind registry.BlockKind) bool {
	if c.destroyed {
		return false
	}
	k, in := c.key(x, y, z)
	if !in {
		return false
	}
	if kind == registry.Air {
		delete(c.blocks, k)
		if !c.generated {
			if c.cleared == nil {
				c.cleared = make(map[blockKey]struct{})
			}
			c.cleared[k] = struct{}{}
		}
	} else {
		c.blocks[k] = kind
		delete(c.cleared, k)
	}
	return true
}

// BlockCount returns the number of stored (non-air) blocks.
func (c *Chunk) BlockCount() int { return len(c.blocks) }

// Voxels lists the stored blocks in key order.
func (c *Chunk) Voxels() []meshing.Voxel {
	keys := make([]blockKey, 0, len(c.blocks))
	for k := range c.blocks {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	out := make([]meshing.Voxel, len(keys))
	for i, k := range keys {
		x, y, z := c.position(k)
		out[i] = meshing.Voxel{X: x, Y: y, Z: z, Kind: c.blocks[k]}
	}
	return out
}

// Generate populates terrain once. Later calls are no-ops. Edits made before
// generation win over the terrain, removals included.
func (c *Chunk) Generate(g *Generator) {
	if c.generated || c.destroyed {
		return
	}
	var edits map[blockKey]registry.BlockKind
	if len(c.blocks) > 0 {
		edits = maps.Clone(c.blocks)
	}
	cleared := c.cleared
	c.cleared = nil
	g.PopulateChunk(c)
	maps.Copy(c.blocks, edits)
	for k := range cleared {
		delete(c.blocks, k)
	}
	c.generated = true
}

// IsGenerated reports whether Generate has run.
func (c *Chunk) IsGenerated() bool { return c.generated }

// Mesh returns the current mesh, or nil when none is built or no face is visible.
func (c *Chunk) Mesh() *meshing.Mesh { return c.mesh }

// BuildMesh disposes the current mesh, then builds and attaches a new one.
// Neighbor lookups outside the footprint go through src. A chunk without
// visible faces ends up with no mesh and no error.
func (c *Chunk) BuildMesh(src meshing.BlockSource, opts meshing.Options, scene Scene) error {
	defer profiling.Track("world.BuildMesh")()
	switch {
	case c.destroyed:
		return ErrDestroyed
	case !c.generated:
		return ErrNotGenerated
	}
	c.ReleaseMesh(scene)

	m, err := meshing.Build(chunkSource{c, src}, c.Voxels(), opts)
	if err != nil || m == nil {
		return err
	}
	if err := scene.Attach(c.Coord(), m); err != nil {
		scene.Dispose(m)
		return err
	}
	c.mesh = m
	return nil
}

// ReleaseMesh detaches and disposes the mesh, if any.
func (c *Chunk) ReleaseMesh(scene Scene) {
	if c.mesh == nil {
		return
	}
	scene.Detach(c.Coord(), c.mesh)
	scene.Dispose(c.mesh)
	c.mesh = nil
}

// Destroy releases the mesh and clears the block map. The chunk is unusable
// afterwards.
func (c *Chunk) Destroy(scene Scene) {
	c.ReleaseMesh(scene)
	clear(c.blocks)
	c.cleared = nil
	c.destroyed = true
}

// chunkSource answers in-footprint lookups from the chunk itself and
// forwards the rest.
type chunkSource struct {
	c    *Chunk
	rest meshing.BlockSource
}

func (s chunkSource) GetBlock(x, y, z int) (registry.BlockKind, bool) {
	if s.c.Contains(x, z) {
		return s.c.GetBlock(x, y, z)
	}
	if s.rest == nil {
		return registry.Air, false
	}
	return s.rest.GetBlock(x, y, z)
}
