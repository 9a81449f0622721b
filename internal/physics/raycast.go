package physics

import (
	"math"

	"goxecraft/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	MinReachDistance = 0.1
	MaxReachDistance = 5.0
)

// BlockQuery is the read side of the world that collision needs.
type BlockQuery interface {
	IsSolid(x, y, z int) bool
}

// TargetQuery reports the cells a ray stops on. Unlike collision this
// includes non-solid blocks such as water, so they can be picked.
type TargetQuery interface {
	IsTargetable(x, y, z int) bool
}

// RaycastResult stores the result of a raycast operation
type RaycastResult struct {
	HitPosition      [3]int
	AdjacentPosition [3]int // empty cell the ray came from, where a placed block goes
	Normal           [3]int // outward normal of the face that was hit
	Distance         float32
	Hit              bool
}

// Raycast walks the block grid from start along direction and reports the
// first targetable block whose entry distance lies in [minDist, maxDist].
// Blocks are unit cubes centered on integer coordinates.
func Raycast(start mgl32.Vec3, direction mgl32.Vec3, minDist, maxDist float32, q TargetQuery) RaycastResult {
	defer profiling.Track("physics.Raycast")()
	var result RaycastResult
	if direction.Len() == 0 {
		return result
	}
	dir := direction.Normalize()

	// Shift so cell i spans [i, i+1) on every axis.
	var (
		cell, step    [3]int
		tMax, tDelta  [3]float64
		origin, delta [3]float64
	)
	for i := 0; i < 3; i++ {
		origin[i] = float64(start[i]) + 0.5
		delta[i] = float64(dir[i])
		cell[i] = int(math.Floor(origin[i]))
		switch {
		case delta[i] > 0:
			step[i] = 1
			tDelta[i] = 1 / delta[i]
			tMax[i] = (float64(cell[i]+1) - origin[i]) / delta[i]
		case delta[i] < 0:
			step[i] = -1
			tDelta[i] = -1 / delta[i]
			tMax[i] = (float64(cell[i]) - origin[i]) / delta[i]
		default:
			tDelta[i] = math.Inf(1)
			tMax[i] = math.Inf(1)
		}
	}

	prev := cell
	var normal [3]int
	t := 0.0
	for t <= float64(maxDist) {
		if t >= float64(minDist) && q.IsTargetable(cell[0], cell[1], cell[2]) {
			result.HitPosition = cell
			result.AdjacentPosition = prev
			result.Normal = normal
			result.Distance = float32(t)
			result.Hit = true
			return result
		}
		axis := 0
		if tMax[1] < tMax[axis] {
			axis = 1
		}
		if tMax[2] < tMax[axis] {
			axis = 2
		}
		prev = cell
		t = tMax[axis]
		cell[axis] += step[axis]
		tMax[axis] += tDelta[axis]
		normal = [3]int{}
		normal[axis] = -step[axis]
	}
	return result
}
