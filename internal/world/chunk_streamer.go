package world

import (
	"errors"

	"goxecraft/internal/profiling"
)

// StreamStats counts the work done by one UpdateChunks call.
type StreamStats struct {
	Loaded   int
	Unloaded int
	Evicted  int
	Remeshed int
}

// Idle reports whether the update changed nothing.
func (s StreamStats) Idle() bool {
	return s == StreamStats{}
}

// UpdateChunks reconciles the loaded set with the square window of
// RenderDistance chunks around the viewer. Chunks leaving the window are
// unloaded first, then chunks farther than EvictDistance are dropped, then
// missing chunks are generated and meshed nearest first. Neighbors of newly
// generated chunks are remeshed so faces on the shared edge disappear.
//
// A chunk whose mesh cannot be built stays unloaded and its error is
// returned; the rest of the window is still processed.
func (w *World) UpdateChunks(vx, vz float64) (StreamStats, error) {
	defer profiling.Track("world.UpdateChunks")()
	var stats StreamStats
	if w.closed {
		return stats, nil
	}
	center := viewerChunk(vx, vz, w.cfg.World.ChunkSize)
	radius := w.cfg.World.RenderDistance

	for coord := range w.loaded {
		if coord.Distance(center) <= radius {
			continue
		}
		if c := w.store.GetChunk(coord, false); c != nil {
			c.ReleaseMesh(w.scene)
		}
		delete(w.loaded, coord)
		stats.Unloaded++
	}

	if evict := w.cfg.World.EvictDistance; evict > 0 {
		for _, c := range w.store.EvictFarChunks(center, evict, w.IsLoaded) {
			c.Destroy(w.scene)
			stats.Evicted++
		}
	}

	// Generate the whole window before meshing so inner chunks see their
	// neighbors on the first build.
	var pending, empty []*Chunk
	fresh := make(map[ChunkCoord]struct{})
	for _, coord := range ringOrder(center, radius) {
		if w.IsLoaded(coord) {
			continue
		}
		c := w.store.GetChunk(coord, true)
		if !c.IsGenerated() {
			empty = append(empty, c)
			fresh[coord] = struct{}{}
		}
		pending = append(pending, c)
	}
	w.generate(empty)

	var errs []error
	for _, c := range pending {
		if err := w.remesh(c); err != nil {
			errs = append(errs, err)
			continue
		}
		w.loaded[c.Coord()] = struct{}{}
		stats.Loaded++
	}

	remeshed := make(map[ChunkCoord]struct{})
	for _, c := range pending {
		if _, ok := fresh[c.Coord()]; !ok {
			continue
		}
		for _, d := range [...][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			nc := c.Coord().Add(d[0], d[1])
			if _, ok := fresh[nc]; ok {
				continue
			}
			if _, ok := remeshed[nc]; ok || !w.IsLoaded(nc) {
				continue
			}
			remeshed[nc] = struct{}{}
			if err := w.remesh(w.store.GetChunk(nc, false)); err != nil {
				errs = append(errs, err)
				continue
			}
			stats.Remeshed++
		}
	}

	profiling.Count("world.chunks.loaded", stats.Loaded)
	profiling.Count("world.chunks.unloaded", stats.Unloaded)
	profiling.Count("world.chunks.evicted", stats.Evicted)
	profiling.Count("world.chunks.remeshed", stats.Remeshed)
	return stats, errors.Join(errs...)
}
