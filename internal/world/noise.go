package world

import (
	"math"
	"math/rand"

	"goxecraft/internal/config"
)

// NoiseField is seeded 2D gradient noise with octave summation. It is
// read-only after construction, so every lookup is a pure function of the
// seed and the coordinates.
type NoiseField struct {
	perm [512]int

	scale       float64
	octaves     int
	persistence float64
	lacunarity  float64
}

// NewNoiseField builds the permutation table for t.Seed and keeps the
// octave parameters used by Height.
func NewNoiseField(t config.TerrainSettings) *NoiseField {
	n := &NoiseField{
		scale:       t.Scale,
		octaves:     t.Octaves,
		persistence: t.Persistence,
		lacunarity:  t.Lacunarity,
	}

	var p [256]int
	for i := range p {
		p[i] = i
	}
	// Fisher-Yates with a source owned by this field
	rng := rand.New(rand.NewSource(t.Seed))
	for i := 255; i > 0; i-- {
		j := rng.Intn(i + 1)
		p[i], p[j] = p[j], p[i]
	}
	// Duplicate so corner lookups never wrap
	for i := 0; i < 256; i++ {
		n.perm[i] = p[i]
		n.perm[256+i] = p[i]
	}
	return n
}

// fade function is used for smoothing, 6t^5 - 15t^4 + 10t^3
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// grad picks one of the gradient directions from the low hash bits and
// dots it with (x, y).
func grad(hash int, x, y float64) float64 {
	h := hash & 15
	u := y
	if h < 8 {
		u = x
	}
	var v float64
	switch {
	case h < 4:
		v = y
	case h == 12 || h == 14:
		v = x
	}
	if h&1 != 0 {
		u = -u
	}
	if h&2 != 0 {
		v = -v
	}
	return u + v
}

// Noise2D samples one layer of gradient noise. The result lies in [-1, 1].
func (n *NoiseField) Noise2D(x, y float64) float64 {
	fx, fy := math.Floor(x), math.Floor(y)
	xi := int(fx) & 255
	yi := int(fy) & 255
	x -= fx
	y -= fy

	u := fade(x)
	v := fade(y)

	p := &n.perm
	a := p[xi] + yi
	b := p[xi+1] + yi
	aa, ab := p[a], p[a+1]
	ba, bb := p[b], p[b+1]

	return lerp(
		lerp(grad(p[aa], x, y), grad(p[ba], x-1, y), u),
		lerp(grad(p[ab], x, y-1), grad(p[bb], x-1, y-1), u),
		v,
	)
}

// OctaveNoise2D sums octaves layers at doubling frequency and
// persistence-decaying amplitude, normalized back to [-1, 1].
func (n *NoiseField) OctaveNoise2D(x, y float64, octaves int, persistence float64) float64 {
	return n.fractal(x, y, octaves, persistence, 2.0)
}

func (n *NoiseField) fractal(x, y float64, octaves int, persistence, lacunarity float64) float64 {
	amplitude := 1.0
	frequency := 1.0
	sum := 0.0
	norm := 0.0
	for range octaves {
		sum += n.Noise2D(x*frequency, y*frequency) * amplitude
		norm += amplitude
		amplitude *= persistence
		frequency *= lacunarity
	}
	if norm == 0 {
		return 0
	}
	return sum / norm
}

// Height samples the configured octave stack at world column (x, z).
// The result lies in [-1, 1].
func (n *NoiseField) Height(x, z float64) float64 {
	return n.fractal(x*n.scale, z*n.scale, n.octaves, n.persistence, n.lacunarity)
}

// hash2 is a SplitMix64 style integer hash, stable across runs for same inputs
func hash2(x, z, seed int64) uint64 {
	v := uint64(x)*0x9E3779B97F4A7C15 + uint64(z)*0xC2B2AE3D27D4EB4F + uint64(seed)
	v += 0x9E3779B97F4A7C15
	v = (v ^ (v >> 30)) * 0xBF58476D1CE4E5B9
	v = (v ^ (v >> 27)) * 0x94D049BB133111EB
	return v ^ (v >> 31)
}

// unitFloat maps the low 32 bits of h to [0, 1).
func unitFloat(h uint64) float64 {
	return float64(h&0xFFFFFFFF) / (1 << 32)
}
