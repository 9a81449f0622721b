package config

import (
	"errors"
	"fmt"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds every tunable of the world core. It is built once, validated,
// and then only read.
type Config struct {
	World       WorldSettings       `yaml:"world"`
	Terrain     TerrainSettings     `yaml:"terrain"`
	Performance PerformanceSettings `yaml:"performance"`
}

// WorldSettings holds the chunk grid and streaming radii.
type WorldSettings struct {
	ChunkSize      int `yaml:"chunk_size"`
	RenderDistance int `yaml:"render_distance"` // in chunks
	// EvictDistance is the chunk radius past which unloaded chunks are
	// discarded. Zero or negative keeps them forever.
	EvictDistance int `yaml:"evict_distance"`
	WorldHeight   int `yaml:"world_height"`
	SeaLevel      int `yaml:"sea_level"`
}

// PerformanceSettings holds meshing switches and budgets.
type PerformanceSettings struct {
	FaceCulling bool `yaml:"face_culling"`
	// MaxChunkVertices caps the vertices of a single chunk mesh. Zero disables the cap.
	MaxChunkVertices int `yaml:"max_chunk_vertices"`
	// GenerateWorkers is the number of goroutines filling new chunks. Zero or
	// one generates on the caller's goroutine.
	GenerateWorkers int `yaml:"generate_workers"`
}

// Default returns the stock configuration.
func Default() *Config {
	return &Config{
		World: WorldSettings{
			ChunkSize:      16,
			RenderDistance: 4,
			EvictDistance:  8,
			WorldHeight:    64,
			SeaLevel:       32,
		},
		Terrain: DefaultTerrain(),
		Performance: PerformanceSettings{
			FaceCulling:      true,
			MaxChunkVertices: 1 << 20,
			GenerateWorkers:  4,
		},
	}
}

// Validate reports the first contract violation found.
func (c *Config) Validate() error {
	w := c.World
	switch {
	case w.ChunkSize <= 0:
		return fmt.Errorf("%w: world.chunk_size must be positive, got %d", ErrInvalid, w.ChunkSize)
	case w.RenderDistance < 0:
		return fmt.Errorf("%w: world.render_distance must not be negative, got %d", ErrInvalid, w.RenderDistance)
	case w.WorldHeight < 2:
		return fmt.Errorf("%w: world.world_height must be at least 2, got %d", ErrInvalid, w.WorldHeight)
	case w.SeaLevel < 0 || w.SeaLevel > w.WorldHeight:
		return fmt.Errorf("%w: world.sea_level %d outside [0, %d]", ErrInvalid, w.SeaLevel, w.WorldHeight)
	case w.EvictDistance > 0 && w.EvictDistance <= w.RenderDistance:
		// an evicted chunk must never border a loaded one, or the loaded
		// mesh keeps faces culled against blocks that no longer exist
		return fmt.Errorf("%w: world.evict_distance %d must be beyond render distance %d", ErrInvalid, w.EvictDistance, w.RenderDistance)
	}
	if c.Performance.MaxChunkVertices < 0 {
		return fmt.Errorf("%w: performance.max_chunk_vertices must not be negative", ErrInvalid)
	}
	if c.Performance.GenerateWorkers < 0 {
		return fmt.Errorf("%w: performance.generate_workers must not be negative", ErrInvalid)
	}
	return c.Terrain.validate()
}

// Clone returns a deep copy, for callers that want to tweak a loaded config
// before handing it to a world.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}
