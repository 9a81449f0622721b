package world

import "slices"

// ChunkStore manages the storage and retrieval of chunks.
type ChunkStore struct {
	chunks map[ChunkCoord]*Chunk
	size   int
	height int
}

// NewChunkStore creates a new chunk store.
func NewChunkStore(size, height int) *ChunkStore {
	return &ChunkStore{
		chunks: make(map[ChunkCoord]*Chunk),
		size:   size,
		height: height,
	}
}

// GetChunk returns the chunk at the specified chunk coordinates.
// If the chunk doesn't exist and create is true, it will be created (but NOT populated).
func (cs *ChunkStore) GetChunk(coord ChunkCoord, create bool) *Chunk {
	chunk, exists := cs.chunks[coord]
	if !exists && create {
		chunk = NewChunk(coord.X, coord.Z, cs.size, cs.height)
		cs.chunks[coord] = chunk
	}
	return chunk
}

// GetChunkFromBlockCoords returns the chunk containing world column (x, z).
func (cs *ChunkStore) GetChunkFromBlockCoords(x, z int, create bool) *Chunk {
	return cs.GetChunk(chunkCoordOf(x, z, cs.size), create)
}

// HasChunk checks if a chunk exists without creating it.
func (cs *ChunkStore) HasChunk(coord ChunkCoord) bool {
	_, exists := cs.chunks[coord]
	return exists
}

// Len returns the number of chunks held.
func (cs *ChunkStore) Len() int { return len(cs.chunks) }

// All returns every chunk ordered by coordinate.
func (cs *ChunkStore) All() []ChunkWithCoord {
	out := make([]ChunkWithCoord, 0, len(cs.chunks))
	for coord, chunk := range cs.chunks {
		out = append(out, ChunkWithCoord{Chunk: chunk, Coord: coord})
	}
	slices.SortFunc(out, func(a, b ChunkWithCoord) int {
		switch {
		case a.Coord.Less(b.Coord):
			return -1
		case b.Coord.Less(a.Coord):
			return 1
		}
		return 0
	})
	return out
}

// Remove drops the chunk at coord and returns it.
func (cs *ChunkStore) Remove(coord ChunkCoord) *Chunk {
	chunk := cs.chunks[coord]
	delete(cs.chunks, coord)
	return chunk
}

// EvictFarChunks removes chunks farther than radius from center, skipping
// those keep reports true for. It returns the removed chunks.
func (cs *ChunkStore) EvictFarChunks(center ChunkCoord, radius int, keep func(ChunkCoord) bool) []*Chunk {
	var removed []*Chunk
	for coord, chunk := range cs.chunks {
		if coord.Distance(center) <= radius || (keep != nil && keep(coord)) {
			continue
		}
		delete(cs.chunks, coord)
		removed = append(removed, chunk)
	}
	return removed
}

// BlockCount sums stored blocks over every chunk.
func (cs *ChunkStore) BlockCount() int {
	n := 0
	for _, chunk := range cs.chunks {
		n += chunk.BlockCount()
	}
	return n
}
