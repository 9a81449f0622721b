// Command worldmap renders a top-down PNG of generated terrain without a
// window or GL context.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"log"
	"os"

	"goxecraft/internal/config"
	"goxecraft/internal/world"

	"github.com/xlab/closer"
)

func main() {
	configPath := flag.String("config", "", "YAML world config; built-in defaults when empty")
	seed := flag.Int64("seed", 0, "override the terrain seed when non-zero")
	radius := flag.Int("radius", 4, "chunks around the center to draw")
	cx := flag.Int("cx", 0, "center chunk x")
	cz := flag.Int("cz", 0, "center chunk z")
	scale := flag.Int("scale", 4, "pixels per block")
	out := flag.String("out", "worldmap.png", "output file")
	flag.Parse()

	closer.Checked(func() error {
		return run(*configPath, *seed, *radius, *cx, *cz, *scale, *out)
	}, true)
}

func run(configPath string, seed int64, radius, cx, cz, scale int, out string) error {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return err
		}
	}
	if seed != 0 {
		cfg.Terrain.Seed = seed
	}
	cfg.World.RenderDistance = radius
	cfg.World.EvictDistance = 0

	w, err := world.New(cfg, nil)
	if err != nil {
		return err
	}
	closer.Bind(w.Close)

	size := cfg.World.ChunkSize
	center := float64(cx*size) + float64(size)/2
	centerZ := float64(cz*size) + float64(size)/2
	stats, err := w.UpdateChunks(center, centerZ)
	if err != nil {
		return err
	}
	log.Printf("generated %d chunks, %d blocks", stats.Loaded, w.GetBlockCount())

	img := Render(w, world.ChunkCoord{X: cx, Z: cz}, radius, scale)

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", out, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Printf("wrote %s (%dx%d)", out, img.Bounds().Dx(), img.Bounds().Dy())
	return nil
}
