package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestParseKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
world:
  render_distance: 2
terrain:
  seed: 7
  tree_chance: 0
performance:
  face_culling: false
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.World.RenderDistance != 2 {
		t.Errorf("render_distance = %d, want 2", cfg.World.RenderDistance)
	}
	if cfg.Terrain.Seed != 7 || cfg.Terrain.TreeChance != 0 {
		t.Errorf("terrain not decoded: %+v", cfg.Terrain)
	}
	if cfg.Performance.FaceCulling {
		t.Errorf("face_culling should be off")
	}
	// untouched keys keep their defaults
	if cfg.World.ChunkSize != 16 || cfg.World.SeaLevel != 32 || cfg.Terrain.Octaves != 4 {
		t.Errorf("defaults lost: %+v %+v", cfg.World, cfg.Terrain)
	}
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]func(c *Config){
		"chunk size":    func(c *Config) { c.World.ChunkSize = -16 },
		"height":        func(c *Config) { c.World.WorldHeight = 1 },
		"sea level":     func(c *Config) { c.World.SeaLevel = 65 },
		"render":        func(c *Config) { c.World.RenderDistance = -1 },
		"evict":         func(c *Config) { c.World.EvictDistance = 2 },
		"evict at edge": func(c *Config) { c.World.EvictDistance = c.World.RenderDistance },
		"octaves":       func(c *Config) { c.Terrain.Octaves = 0 },
		"persistence":   func(c *Config) { c.Terrain.Persistence = 0 },
		"scale":         func(c *Config) { c.Terrain.Scale = 0 },
		"tree chance":   func(c *Config) { c.Terrain.TreeChance = 1.5 },
		"vertex limit":  func(c *Config) { c.Performance.MaxChunkVertices = -1 },
		"workers":       func(c *Config) { c.Performance.GenerateWorkers = -2 },
	}
	for name, mutate := range cases {
		cfg := Default()
		mutate(cfg)
		err := cfg.Validate()
		if !errors.Is(err, ErrInvalid) {
			t.Errorf("%s: got %v, want ErrInvalid", name, err)
		}
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "world.yaml")
	if err := os.WriteFile(path, []byte("world:\n  chunk_size: 8\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.World.ChunkSize != 8 {
		t.Errorf("chunk_size = %d, want 8", cfg.World.ChunkSize)
	}

	if err := os.WriteFile(path, []byte("world:\n  chunk_size: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, ErrInvalid) {
		t.Errorf("Load of invalid file: got %v, want ErrInvalid", err)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	a := Default()
	b := a.Clone()
	b.Terrain.Seed = 99
	if a.Terrain.Seed == 99 {
		t.Fatalf("Clone shares state with original")
	}
}

func TestEvictJustBeyondRenderDistance(t *testing.T) {
	cfg := Default()
	cfg.World.EvictDistance = cfg.World.RenderDistance + 1
	if err := cfg.Validate(); err != nil {
		t.Fatalf("evict one past render distance rejected: %v", err)
	}
	cfg.World.EvictDistance = 0
	if err := cfg.Validate(); err != nil {
		t.Fatalf("eviction off rejected: %v", err)
	}
}
