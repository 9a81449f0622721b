package world

import (
	"math"

	"goxecraft/internal/config"
	"goxecraft/internal/profiling"
	"goxecraft/internal/registry"
)

// Generator handles terrain generation logic.
type Generator struct {
	cfg   *config.Config
	noise *NoiseField
}

// NewGenerator creates a generator bound to cfg. cfg must already be valid.
func NewGenerator(cfg *config.Config) *Generator {
	return &Generator{
		cfg:   cfg,
		noise: NewNoiseField(cfg.Terrain),
	}
}

// Noise exposes the underlying field.
func (g *Generator) Noise() *NoiseField { return g.noise }

// HeightAt computes the surface height of world column (x, z): the first y
// above the terrain, clamped to [1, WorldHeight-1].
func (g *Generator) HeightAt(x, z int) int {
	n := g.noise.Height(float64(x), float64(z))
	normalized := (n + 1) / 2
	t := g.cfg.Terrain
	w := g.cfg.World
	height := int(math.Floor(float64(w.SeaLevel+t.HeightOffset) + normalized*t.HeightMultiplier))
	return max(1, min(height, w.WorldHeight-1))
}

// ColumnKind returns the terrain block at height y of a column whose
// surface height is h, or Air above the water line.
func (g *Generator) ColumnKind(y, h int) registry.BlockKind {
	sea := g.cfg.World.SeaLevel
	switch {
	case y < 0:
		return registry.Air
	case y < h-4:
		return registry.Stone
	case y < h-1:
		return registry.Dirt
	case y == h-1:
		if h < sea-2 {
			return registry.Sand
		}
		return registry.Grass
	case y < sea:
		return registry.Water
	}
	return registry.Air
}

// fillColumn writes the soil profile and flood water of one column.
func (g *Generator) fillColumn(c *Chunk, x, z, h int) {
	top := max(h, g.cfg.World.SeaLevel)
	for y := 0; y < top; y++ {
		c.SetBlock(x, y, z, g.ColumnKind(y, h))
	}
}

// PopulateChunk fills a chunk's footprint with terrain, water and the parts
// of every tree that reach into it.
func (g *Generator) PopulateChunk(c *Chunk) {
	defer profiling.Track("world.Generate")()
	x0, z0 := c.Origin()
	for lx := range c.size {
		for lz := range c.size {
			x, z := x0+lx, z0+lz
			g.fillColumn(c, x, z, g.HeightAt(x, z))
		}
	}
	g.decorate(c)
}
