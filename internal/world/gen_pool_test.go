package world

import (
	"slices"
	"testing"
)

func TestGenPoolMatchesInlineGeneration(t *testing.T) {
	g := NewGenerator(testConfig())
	pool := NewGenPool(g, 3, 2)
	defer pool.Shutdown()

	var chunks []*Chunk
	for _, coord := range ringOrder(ChunkCoord{X: 2, Z: -1}, 2) {
		chunks = append(chunks, NewChunk(coord.X, coord.Z, 16, 64))
	}
	pool.Generate(chunks)

	for _, c := range chunks {
		if !c.IsGenerated() {
			t.Fatalf("chunk %v not generated", c.Coord())
		}
		want := generated(g, c.X, c.Z)
		if !slices.Equal(dump(c), dump(want)) {
			t.Errorf("chunk %v differs from inline generation", c.Coord())
		}
	}
	if n := pool.QueueLength(); n != 0 {
		t.Errorf("QueueLength() = %d after Generate, want 0", n)
	}
}

func TestGenPoolAfterShutdown(t *testing.T) {
	pool := NewGenPool(NewGenerator(testConfig()), 2, 0)
	pool.Shutdown()

	c := NewChunk(0, 0, 16, 64)
	pool.Generate([]*Chunk{c})
	if c.IsGenerated() {
		t.Error("chunk generated after Shutdown")
	}
}

func TestWorldsWithAndWithoutPoolAgree(t *testing.T) {
	serial := testConfig()
	serial.Performance.GenerateWorkers = 0
	parallel := testConfig()
	parallel.Performance.GenerateWorkers = 4

	a, _ := newTestWorld(t, serial)
	b, _ := newTestWorld(t, parallel)
	if a.pool != nil || b.pool == nil {
		t.Fatalf("pool wiring: serial=%v parallel=%v", a.pool, b.pool)
	}
	for _, w := range []*World{a, b} {
		if _, err := w.UpdateChunks(0, 0); err != nil {
			t.Fatal(err)
		}
	}
	if a.GetBlockCount() != b.GetBlockCount() {
		t.Errorf("block counts differ: %d vs %d", a.GetBlockCount(), b.GetBlockCount())
	}
	for _, coord := range a.LoadedChunks() {
		if !slices.Equal(dump(a.Chunk(coord.X, coord.Z)), dump(b.Chunk(coord.X, coord.Z))) {
			t.Errorf("chunk %v differs", coord)
		}
	}
}
