package main

import (
	"fmt"
	"image"
	"image/color"

	"goxecraft/internal/registry"
	"goxecraft/internal/world"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var gridColor = color.RGBA{0, 0, 0, 96}

// topBlock returns the highest stored block of column (x, z) and its y.
func topBlock(w *world.World, x, z int) (registry.BlockKind, int, bool) {
	for y := w.Config().World.WorldHeight - 1; y >= 0; y-- {
		if kind, ok := w.GetBlock(x, y, z); ok {
			return kind, y, true
		}
	}
	return registry.Air, 0, false
}

// shade darkens low columns and brightens high ones around sea level.
func shade(kind registry.BlockKind, y, seaLevel, height int) color.RGBA {
	r, g, b := kind.RGB()
	f := 0.75 + 0.5*float64(y-seaLevel)/float64(height)
	f = min(max(f, 0.4), 1.25)
	scale := func(v uint8) uint8 { return uint8(min(float64(v)*f, 255)) }
	return color.RGBA{scale(r), scale(g), scale(b), 255}
}

// Render draws the chunks within radius of center, one pixel per block, then
// scales the result by scale and labels every chunk with its coordinate.
func Render(w *world.World, center world.ChunkCoord, radius, scale int) *image.RGBA {
	cfg := w.Config().World
	size := cfg.ChunkSize
	side := (2*radius + 1) * size
	x0 := (center.X - radius) * size
	z0 := (center.Z - radius) * size

	small := image.NewRGBA(image.Rect(0, 0, side, side))
	for pz := 0; pz < side; pz++ {
		for px := 0; px < side; px++ {
			kind, y, ok := topBlock(w, x0+px, z0+pz)
			if !ok {
				continue
			}
			small.SetRGBA(px, pz, shade(kind, y, cfg.SeaLevel, cfg.WorldHeight))
		}
	}

	scale = max(scale, 1)
	big := image.NewRGBA(image.Rect(0, 0, side*scale, side*scale))
	draw.NearestNeighbor.Scale(big, big.Bounds(), small, small.Bounds(), draw.Src, nil)

	step := size * scale
	for i := 0; i <= 2*radius+1; i++ {
		p := min(i*step, side*scale-1)
		for j := 0; j < side*scale; j++ {
			big.Set(p, j, gridColor)
			big.Set(j, p, gridColor)
		}
	}
	if step >= 40 {
		label(big, center, radius, step)
	}
	return big
}

func label(img *image.RGBA, center world.ChunkCoord, radius, step int) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: basicfont.Face7x13,
	}
	for i := -radius; i <= radius; i++ {
		for j := -radius; j <= radius; j++ {
			c := center.Add(i, j)
			d.Dot = fixed.P((i+radius)*step+3, (j+radius)*step+13)
			d.DrawString(fmt.Sprintf("%d,%d", c.X, c.Z))
		}
	}
}
