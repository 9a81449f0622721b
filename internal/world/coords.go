package world

import "math"

// ChunkCoord identifies a chunk column on the horizontal grid.
type ChunkCoord struct {
	X, Z int
}

// ChunkWithCoord pairs a chunk with its coordinate
type ChunkWithCoord struct {
	Chunk *Chunk
	Coord ChunkCoord
}

// Add returns c shifted by (dx, dz) chunks.
func (c ChunkCoord) Add(dx, dz int) ChunkCoord {
	return ChunkCoord{X: c.X + dx, Z: c.Z + dz}
}

// Distance is the Chebyshev distance in chunks, matching the square
// streaming window.
func (c ChunkCoord) Distance(o ChunkCoord) int {
	return max(abs(c.X-o.X), abs(c.Z-o.Z))
}

// Less orders coordinates by X then Z.
func (c ChunkCoord) Less(o ChunkCoord) bool {
	if c.X != o.X {
		return c.X < o.X
	}
	return c.Z < o.Z
}

// chunkCoordOf returns the chunk containing world column (x, z).
func chunkCoordOf(x, z, size int) ChunkCoord {
	return ChunkCoord{X: floorDiv(x, size), Z: floorDiv(z, size)}
}

// viewerChunk maps a continuous viewer position to its chunk.
func viewerChunk(vx, vz float64, size int) ChunkCoord {
	return chunkCoordOf(int(math.Floor(vx)), int(math.Floor(vz)), size)
}

// ringOrder lists every coordinate within radius of center, nearest ring
// first, so the closest chunks are ready before the outer ones.
func ringOrder(center ChunkCoord, radius int) []ChunkCoord {
	side := 2*radius + 1
	out := make([]ChunkCoord, 0, side*side)
	out = append(out, center)
	for r := 1; r <= radius; r++ {
		x0, x1 := center.X-r, center.X+r
		z0, z1 := center.Z-r, center.Z+r
		for x := x0; x <= x1; x++ {
			out = append(out, ChunkCoord{x, z0})
		}
		for z := z0 + 1; z <= z1-1; z++ {
			out = append(out, ChunkCoord{x1, z})
		}
		for x := x1; x >= x0; x-- {
			out = append(out, ChunkCoord{x, z1})
		}
		for z := z1 - 1; z >= z0+1; z-- {
			out = append(out, ChunkCoord{x0, z})
		}
	}
	return out
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
