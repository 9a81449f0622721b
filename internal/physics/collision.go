package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// PlayerHalfWidth is half the side of the viewer's square footprint.
const PlayerHalfWidth = 0.3

// cellRange returns the block coordinates overlapped by [lo, hi] on one axis.
func cellRange(lo, hi float32) (int, int) {
	return int(math.Floor(float64(lo) + 0.5)), int(math.Floor(float64(hi) + 0.5))
}

// Collides checks whether a viewer box with feet at pos overlaps a solid block.
func Collides(pos mgl32.Vec3, playerHeight float32, q BlockQuery) bool {
	minX, maxX := cellRange(pos.X()-PlayerHalfWidth, pos.X()+PlayerHalfWidth)
	minY, maxY := cellRange(pos.Y(), pos.Y()+playerHeight)
	minZ, maxZ := cellRange(pos.Z()-PlayerHalfWidth, pos.Z()+PlayerHalfWidth)

	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			for z := minZ; z <= maxZ; z++ {
				if !q.IsSolid(x, y, z) {
					continue
				}
				blockMinX := float32(x) - 0.5
				blockMaxX := float32(x) + 0.5
				blockMinY := float32(y) - 0.5
				blockMaxY := float32(y) + 0.5
				blockMinZ := float32(z) - 0.5
				blockMaxZ := float32(z) + 0.5

				if pos.X()-PlayerHalfWidth < blockMaxX && pos.X()+PlayerHalfWidth > blockMinX &&
					pos.Y() < blockMaxY && pos.Y()+playerHeight > blockMinY &&
					pos.Z()-PlayerHalfWidth < blockMaxZ && pos.Z()+PlayerHalfWidth > blockMinZ {
					return true
				}
			}
		}
	}
	return false
}

// FindGroundLevel returns the top surface of the highest solid block under
// the viewer footprint at (x, z), searching down from fromY to floorY. ok is
// false when nothing solid was found.
func FindGroundLevel(x, z, fromY float32, floorY int, q BlockQuery) (ground float32, ok bool) {
	minX, maxX := cellRange(x-PlayerHalfWidth, x+PlayerHalfWidth)
	minZ, maxZ := cellRange(z-PlayerHalfWidth, z+PlayerHalfWidth)
	top := int(math.Floor(float64(fromY) + 0.5))

	best := float32(math.Inf(-1))
	for bx := minX; bx <= maxX; bx++ {
		for bz := minZ; bz <= maxZ; bz++ {
			for by := top; by >= floorY; by-- {
				if q.IsSolid(bx, by, bz) {
					best = max(best, float32(by)+0.5)
					ok = true
					break
				}
			}
		}
	}
	return best, ok
}
