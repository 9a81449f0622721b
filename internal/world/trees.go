package world

import "goxecraft/internal/registry"

const (
	canopyRadius = 2
	canopyLayers = 3
	treeSalt     = 0x7EE5
)

// tree is a trunk rooted on the surface of column (x, z).
type tree struct {
	x, z  int
	base  int // first y of the trunk
	trunk int
}

// treeAt decides whether column (x, z) grows a tree. The decision and the
// trunk height come from a hash of the seed and the column, so any chunk can
// reproduce a neighbor's trees without generating it.
func (g *Generator) treeAt(x, z int) (tree, bool) {
	chance := g.cfg.Terrain.TreeChance
	if chance <= 0 {
		return tree{}, false
	}
	r := hash2(int64(x), int64(z), g.cfg.Terrain.Seed^treeSalt)
	if unitFloat(r) >= chance {
		return tree{}, false
	}
	h := g.HeightAt(x, z)
	if h < g.cfg.World.SeaLevel {
		return tree{}, false
	}
	return tree{x: x, z: z, base: h, trunk: 4 + int((r>>32)&1)}, true
}

// decorate places every tree whose trunk or canopy overlaps c. Only voxels
// inside c's footprint are written. Wood always wins over leaves and both
// replace terrain, so the result does not depend on which chunk generates
// first.
func (g *Generator) decorate(c *Chunk) {
	x0, z0 := c.Origin()
	var trees []tree
	for x := x0 - canopyRadius; x < x0+c.size+canopyRadius; x++ {
		for z := z0 - canopyRadius; z < z0+c.size+canopyRadius; z++ {
			if t, ok := g.treeAt(x, z); ok {
				trees = append(trees, t)
			}
		}
	}
	for _, t := range trees {
		g.placeCanopy(c, t)
	}
	for _, t := range trees {
		for i := 0; i < t.trunk; i++ {
			c.SetBlock(t.x, t.base+i, t.z, registry.Wood)
		}
	}
}

// placeCanopy writes a 5x5x3 leaf crown on top of the trunk, leaving the two
// lowest layers above the trunk open and cutting the four corners.
func (g *Generator) placeCanopy(c *Chunk, t tree) {
	top := t.base + t.trunk
	for dx := -canopyRadius; dx <= canopyRadius; dx++ {
		for dz := -canopyRadius; dz <= canopyRadius; dz++ {
			if abs(dx) == canopyRadius && abs(dz) == canopyRadius {
				continue
			}
			x, z := t.x+dx, t.z+dz
			if !c.Contains(x, z) {
				continue
			}
			for dy := 0; dy < canopyLayers; dy++ {
				if dx == 0 && dz == 0 && dy < 2 {
					continue
				}
				c.SetBlock(x, top+dy, z, registry.Leaves)
			}
		}
	}
}
