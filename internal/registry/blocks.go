package registry

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// BlockKind identifies a block type. Air is the zero value and marks an
// empty voxel; it is never stored.
type BlockKind uint8

const (
	Air BlockKind = iota
	Grass
	Dirt
	Stone
	Wood
	Sand
	Water
	Leaves
	Cobblestone

	numKinds
)

// BlockDefinition defines the properties of a block type
type BlockDefinition struct {
	ID            BlockKind
	Name          string
	Color         uint32 // 0xRRGGBB
	IsSolid       bool
	IsTransparent bool
}

// catalog is indexed by BlockKind and never mutated after package init.
var catalog = [numKinds]BlockDefinition{
	Air:         {ID: Air, Name: "air", Color: 0x000000, IsSolid: false, IsTransparent: true},
	Grass:       {ID: Grass, Name: "grass", Color: 0x7CFC00, IsSolid: true},
	Dirt:        {ID: Dirt, Name: "dirt", Color: 0x8B4513, IsSolid: true},
	Stone:       {ID: Stone, Name: "stone", Color: 0x808080, IsSolid: true},
	Wood:        {ID: Wood, Name: "wood", Color: 0xA0522D, IsSolid: true},
	Sand:        {ID: Sand, Name: "sand", Color: 0xF4A460, IsSolid: true},
	Water:       {ID: Water, Name: "water", Color: 0x1E90FF, IsSolid: false, IsTransparent: true},
	Leaves:      {ID: Leaves, Name: "leaves", Color: 0x228B22, IsSolid: true, IsTransparent: true},
	Cobblestone: {ID: Cobblestone, Name: "cobblestone", Color: 0x696969, IsSolid: true},
}

var byName = func() map[string]BlockKind {
	m := make(map[string]BlockKind, len(catalog))
	for _, def := range catalog {
		m[def.Name] = def.ID
	}
	return m
}()

// placeable is the palette offered to the player, in hotbar order.
var placeable = []BlockKind{Grass, Dirt, Stone, Wood, Sand, Water, Cobblestone, Leaves}

// Get returns the definition for k. Unknown kinds resolve to Air.
func Get(k BlockKind) BlockDefinition {
	if !k.Valid() {
		return catalog[Air]
	}
	return catalog[k]
}

// Lookup resolves a block by its case-insensitive name.
func Lookup(name string) (BlockKind, error) {
	if k, ok := byName[strings.ToLower(strings.TrimSpace(name))]; ok {
		return k, nil
	}
	return Air, fmt.Errorf("unknown block %q", name)
}

// Kinds returns every registered kind, Air included, in id order.
func Kinds() []BlockKind {
	out := make([]BlockKind, 0, numKinds)
	for k := Air; k < numKinds; k++ {
		out = append(out, k)
	}
	return out
}

// Placeable returns a copy of the player palette.
func Placeable() []BlockKind {
	return append([]BlockKind(nil), placeable...)
}

func (k BlockKind) Valid() bool { return k < numKinds }

func (k BlockKind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("BlockKind(%d)", uint8(k))
	}
	return catalog[k].Name
}

func (k BlockKind) IsAir() bool { return k == Air }

func (k BlockKind) Solid() bool { return Get(k).IsSolid }

func (k BlockKind) Transparent() bool { return Get(k).IsTransparent }

// RGB returns the display color split into channels.
func (k BlockKind) RGB() (r, g, b uint8) {
	c := Get(k).Color
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// Opacity is the alpha the block is drawn with. Transparent kinds are see-through.
func (k BlockKind) Opacity() float32 {
	if k.Transparent() {
		return 0.7
	}
	return 1
}

// ColorVec returns the display color as a normalized vector for vertex data.
func (k BlockKind) ColorVec() mgl32.Vec3 {
	r, g, b := k.RGB()
	return mgl32.Vec3{float32(r) / 255, float32(g) / 255, float32(b) / 255}
}

// Occludes reports whether a neighbor of this kind hides the face it touches.
func (k BlockKind) Occludes() bool {
	def := Get(k)
	return def.ID != Air && def.IsSolid && !def.IsTransparent
}
