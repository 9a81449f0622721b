package world

import (
	"errors"
	"math/rand"
	"slices"
	"testing"

	"goxecraft/internal/config"
	"goxecraft/internal/meshing"
	"goxecraft/internal/registry"
)

func newTestWorld(t *testing.T, cfg *config.Config) (*World, *recordingScene) {
	t.Helper()
	scene := newRecordingScene(t)
	w, err := New(cfg, scene)
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	t.Cleanup(w.Close)
	return w, scene
}

func window(center ChunkCoord, radius int) []ChunkCoord {
	var out []ChunkCoord
	for x := center.X - radius; x <= center.X+radius; x++ {
		for z := center.Z - radius; z <= center.Z+radius; z++ {
			out = append(out, ChunkCoord{x, z})
		}
	}
	return out
}

// checkLoaded asserts the loaded set, and the chunks with a mesh in the
// scene, are exactly want.
func checkLoaded(t *testing.T, w *World, scene *recordingScene, want []ChunkCoord) {
	t.Helper()
	got := w.LoadedChunks()
	if !slices.Equal(got, want) {
		t.Fatalf("LoadedChunks() = %v, want %v", got, want)
	}
	for coord := range scene.attached {
		if !w.IsLoaded(coord) {
			t.Errorf("chunk %v on screen but not loaded", coord)
		}
	}
	for _, coord := range got {
		c := w.store.GetChunk(coord, false)
		if !c.IsGenerated() {
			t.Errorf("loaded chunk %v not generated", coord)
		}
		if c.Mesh() != nil && scene.attached[coord] != c.Mesh() {
			t.Errorf("chunk %v mesh not the one attached", coord)
		}
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.World.ChunkSize = -16
	if _, err := New(cfg, nil); !errors.Is(err, config.ErrInvalid) {
		t.Fatalf("New() = %v, want ErrInvalid", err)
	}
}

func TestNewCopiesConfig(t *testing.T) {
	cfg := testConfig()
	w, _ := newTestWorld(t, cfg)
	cfg.World.RenderDistance = 9
	if w.Config().World.RenderDistance != 1 {
		t.Error("world shares the caller's config")
	}
}

func TestStreamingScenarioSeed42(t *testing.T) {
	w, scene := newTestWorld(t, testConfig())
	stats, err := w.UpdateChunks(0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Loaded != 9 || stats.Unloaded != 0 {
		t.Errorf("stats = %+v, want 9 loaded", stats)
	}
	want := window(ChunkCoord{}, 1)
	checkLoaded(t, w, scene, want)
	if len(scene.attached) != 9 {
		t.Errorf("%d meshes attached, want 9", len(scene.attached))
	}
}

func TestUpdateChunksIsIdleWhenStill(t *testing.T) {
	w, scene := newTestWorld(t, testConfig())
	if _, err := w.UpdateChunks(5.5, -3.2); err != nil {
		t.Fatal(err)
	}
	events := len(scene.events)
	stats, err := w.UpdateChunks(5.5, -3.2)
	if err != nil {
		t.Fatal(err)
	}
	if !stats.Idle() {
		t.Errorf("second update did work: %+v", stats)
	}
	if len(scene.events) != events {
		t.Errorf("second update touched the scene: %v", scene.events[events:])
	}
}

func TestStreamingFollowsViewer(t *testing.T) {
	w, scene := newTestWorld(t, testConfig())
	path := [][2]float64{{0, 0}, {17, 0}, {40, 40}, {-100, 7}, {-100.5, -33}}
	for _, p := range path {
		if _, err := w.UpdateChunks(p[0], p[1]); err != nil {
			t.Fatal(err)
		}
		center := viewerChunk(p[0], p[1], 16)
		checkLoaded(t, w, scene, window(center, 1))
	}
}

func TestUnloadedChunksKeepTheirData(t *testing.T) {
	w, _ := newTestWorld(t, testConfig())
	if _, err := w.UpdateChunks(0, 0); err != nil {
		t.Fatal(err)
	}
	if _, err := w.UpdateChunks(200, 200); err != nil {
		t.Fatal(err)
	}
	if w.IsLoaded(ChunkCoord{}) {
		t.Fatal("origin still loaded")
	}
	// edit while unloaded; coming back must not regenerate over it
	if err := w.SetBlock(3, 63, 3, registry.Cobblestone); err != nil {
		t.Fatal(err)
	}
	stats, err := w.UpdateChunks(0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Loaded != 9 || stats.Unloaded != 9 {
		t.Errorf("stats = %+v, want 9 loaded and 9 unloaded", stats)
	}
	if k, _ := w.GetBlock(3, 63, 3); k != registry.Cobblestone {
		t.Errorf("edit lost after reload: %v", k)
	}
	if !w.Chunk(0, 0).Mesh().HasFace(3, 63, 3, meshing.DirTop) {
		t.Error("reloaded mesh misses the edit")
	}
}

func TestEviction(t *testing.T) {
	cfg := testConfig()
	cfg.World.EvictDistance = 2
	w, scene := newTestWorld(t, cfg)
	if _, err := w.UpdateChunks(0, 0); err != nil {
		t.Fatal(err)
	}
	stats, err := w.UpdateChunks(160, 0)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Unloaded != 9 || stats.Evicted != 9 || stats.Loaded != 9 {
		t.Errorf("stats = %+v, want 9 unloaded, 9 evicted, 9 loaded", stats)
	}
	if w.ChunkCount() != 9 {
		t.Errorf("ChunkCount() = %d, want 9", w.ChunkCount())
	}
	if w.Chunk(0, 0) != nil {
		t.Error("origin chunk survived eviction")
	}
	checkLoaded(t, w, scene, window(ChunkCoord{10, 0}, 1))
}

func TestEvictedChunkRegeneratesIdentically(t *testing.T) {
	cfg := testConfig()
	cfg.World.EvictDistance = 2
	w, _ := newTestWorld(t, cfg)
	if _, err := w.UpdateChunks(0, 0); err != nil {
		t.Fatal(err)
	}
	before := dump(w.Chunk(0, 0))
	if _, err := w.UpdateChunks(1000, 0); err != nil {
		t.Fatal(err)
	}
	if _, err := w.UpdateChunks(0, 0); err != nil {
		t.Fatal(err)
	}
	after := dump(w.Chunk(0, 0))
	if !slices.Equal(before, after) {
		t.Error("regenerated chunk differs")
	}
}

// checkOpenEdges fails when a loaded chunk hides a face whose neighbor
// cell holds nothing.
func checkOpenEdges(t *testing.T, w *World) {
	t.Helper()
	for _, coord := range w.LoadedChunks() {
		c := w.Chunk(coord.X, coord.Z)
		faces := make(map[meshing.Face]bool)
		if m := c.Mesh(); m != nil {
			for _, f := range m.Faces {
				faces[meshing.Face{X: f.X, Y: f.Y, Z: f.Z, Dir: f.Dir}] = true
			}
		}
		missing := 0
		for _, v := range c.Voxels() {
			for _, d := range [...]meshing.Dir{meshing.DirLeft, meshing.DirRight, meshing.DirFront, meshing.DirBack} {
				o := meshing.Offsets[d]
				nx, nz := v.X+o[0], v.Z+o[2]
				if c.Contains(nx, nz) {
					continue
				}
				if _, ok := w.GetBlock(nx, v.Y, nz); ok {
					continue
				}
				if !faces[meshing.Face{X: v.X, Y: v.Y, Z: v.Z, Dir: d}] {
					missing++
				}
			}
		}
		if missing > 0 {
			t.Errorf("chunk %v hides %d faces toward empty cells", coord, missing)
		}
	}
}

func TestEvictionNeverLeavesStaleEdges(t *testing.T) {
	cfg := testConfig()
	cfg.World.EvictDistance = cfg.World.RenderDistance + 1
	w, _ := newTestWorld(t, cfg)

	evicted := 0
	for _, x := range []float64{8, 24, 40, 56, 72, 56, 40} {
		stats, err := w.UpdateChunks(x, 8)
		if err != nil {
			t.Fatal(err)
		}
		evicted += stats.Evicted
		checkOpenEdges(t, w)
	}
	if evicted == 0 {
		t.Fatal("walk never evicted a chunk")
	}
}

func TestGetBlockHasNoSideEffects(t *testing.T) {
	w, _ := newTestWorld(t, testConfig())
	if _, ok := w.GetBlock(3, 10, 3); ok {
		t.Error("block found in an empty world")
	}
	if _, ok := w.GetBlock(3, -1, 3); ok {
		t.Error("block found below the world")
	}
	if _, ok := w.GetBlock(3, 64, 3); ok {
		t.Error("block found above the world")
	}
	if w.ChunkCount() != 0 {
		t.Errorf("GetBlock created %d chunks", w.ChunkCount())
	}
}

func TestSetBlockOutOfRangeIsNoop(t *testing.T) {
	w, scene := newTestWorld(t, testConfig())
	for _, y := range []int{-1, 64, 1000} {
		if err := w.SetBlock(0, y, 0, registry.Stone); err != nil {
			t.Errorf("SetBlock(y=%d) = %v", y, err)
		}
	}
	if w.ChunkCount() != 0 || len(scene.events) != 0 {
		t.Error("out-of-range SetBlock had an effect")
	}
}

func TestSetBlockRejectsUnknownKind(t *testing.T) {
	w, _ := newTestWorld(t, testConfig())
	if err := w.SetBlock(0, 1, 0, registry.BlockKind(200)); err == nil {
		t.Fatal("unknown kind accepted")
	}
}

func TestSetBlockCreatesChunkWithoutGenerating(t *testing.T) {
	w, scene := newTestWorld(t, testConfig())
	if err := w.SetBlock(-40, 5, 70, registry.Sand); err != nil {
		t.Fatal(err)
	}
	c := w.Chunk(-3, 4)
	if c == nil {
		t.Fatal("owning chunk not created")
	}
	if c.IsGenerated() || c.Mesh() != nil || len(scene.events) != 0 {
		t.Error("SetBlock generated or meshed an unloaded chunk")
	}
	if w.GetBlockCount() != 1 {
		t.Errorf("GetBlockCount() = %d, want 1", w.GetBlockCount())
	}
}

func TestSetBlockScenario(t *testing.T) {
	w, _ := newTestWorld(t, testConfig())
	if _, err := w.UpdateChunks(0, 0); err != nil {
		t.Fatal(err)
	}
	if err := w.SetBlock(5, 10, 5, registry.Stone); err != nil {
		t.Fatal(err)
	}
	if k, ok := w.GetBlock(5, 10, 5); !ok || k != registry.Stone {
		t.Fatalf("GetBlock = %v,%v, want Stone", k, ok)
	}
	if err := w.SetBlock(5, 10, 5, registry.Air); err != nil {
		t.Fatal(err)
	}
	if _, ok := w.GetBlock(5, 10, 5); ok {
		t.Fatal("air stored at (5,10,5)")
	}
	m := w.Chunk(0, 0).Mesh()
	if faces := m.FacesAt(5, 10, 5); len(faces) != 0 {
		t.Errorf("mesh still has %d faces at (5,10,5)", len(faces))
	}
	// the cavity is now visible from the blocks around it
	if !m.HasFace(5, 9, 5, meshing.DirTop) || !m.HasFace(6, 10, 5, meshing.DirLeft) {
		t.Error("faces around the cavity missing")
	}
}

func TestWaterTargetableNotSolid(t *testing.T) {
	w, _ := newTestWorld(t, testConfig())
	if _, err := w.UpdateChunks(0, 0); err != nil {
		t.Fatal(err)
	}
	if err := w.SetBlock(5, 10, 5, registry.Water); err != nil {
		t.Fatal(err)
	}
	if err := w.SetBlock(5, 11, 5, registry.Air); err != nil {
		t.Fatal(err)
	}
	if !w.IsTargetable(5, 10, 5) || w.IsSolid(5, 10, 5) {
		t.Errorf("water: targetable=%v solid=%v, want true false",
			w.IsTargetable(5, 10, 5), w.IsSolid(5, 10, 5))
	}
	if w.IsTargetable(5, 11, 5) {
		t.Error("empty cell targetable")
	}
	if w.IsTargetable(5, -1, 5) {
		t.Error("cell below the world targetable")
	}
}

func TestSetBlockRemeshesBorderNeighbor(t *testing.T) {
	w, scene := newTestWorld(t, testConfig())
	if _, err := w.UpdateChunks(0, 0); err != nil {
		t.Fatal(err)
	}
	east := w.Chunk(1, 0)
	before := east.Mesh()
	// (15, 10, 3) touches (16, 10, 3) in chunk (1, 0)
	if err := w.SetBlock(15, 10, 3, registry.Air); err != nil {
		t.Fatal(err)
	}
	if east.Mesh() == before || !scene.disposed[before] {
		t.Fatal("neighbor mesh not rebuilt")
	}
	if !east.Mesh().HasFace(16, 10, 3, meshing.DirLeft) {
		t.Error("neighbor does not show the face into the cavity")
	}
}

func TestBoundaryFaceUpdatesWhenNeighborLoads(t *testing.T) {
	w, _ := newTestWorld(t, testConfig())
	if _, err := w.UpdateChunks(0, 0); err != nil {
		t.Fatal(err)
	}
	edge := w.Chunk(1, 0)
	if !edge.Mesh().HasFace(31, 5, 3, meshing.DirRight) {
		t.Fatal("edge face missing while chunk (2,0) is absent")
	}
	stats, err := w.UpdateChunks(24, 8)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Remeshed == 0 {
		t.Errorf("stats = %+v, want remeshed neighbors", stats)
	}
	if edge.Mesh().HasFace(31, 5, 3, meshing.DirRight) {
		t.Error("edge face survived after chunk (2,0) loaded")
	}
}

func TestAirNeverStored(t *testing.T) {
	w, _ := newTestWorld(t, testConfig())
	if _, err := w.UpdateChunks(0, 0); err != nil {
		t.Fatal(err)
	}
	rng := rand.New(rand.NewSource(99))
	kinds := registry.Kinds()
	for i := 0; i < 300; i++ {
		x, y, z := rng.Intn(64)-32, rng.Intn(70)-3, rng.Intn(64)-32
		if err := w.SetBlock(x, y, z, kinds[rng.Intn(len(kinds))]); err != nil {
			t.Fatal(err)
		}
	}
	total := 0
	for _, cc := range w.store.All() {
		for _, v := range cc.Chunk.Voxels() {
			if v.Kind == registry.Air {
				t.Fatalf("air stored at (%d,%d,%d)", v.X, v.Y, v.Z)
			}
			if chunkCoordOf(v.X, v.Z, 16) != cc.Coord {
				t.Fatalf("(%d,%d) stored in chunk %v", v.X, v.Z, cc.Coord)
			}
		}
		total += cc.Chunk.BlockCount()
	}
	if total != w.GetBlockCount() {
		t.Errorf("GetBlockCount() = %d, chunks hold %d", w.GetBlockCount(), total)
	}
}

func TestCullingDisabledEmitsEveryFace(t *testing.T) {
	cfg := testConfig()
	cfg.World.RenderDistance = 0
	cfg.Performance.FaceCulling = false
	cfg.Performance.MaxChunkVertices = 0
	w, _ := newTestWorld(t, cfg)
	if _, err := w.UpdateChunks(0, 0); err != nil {
		t.Fatal(err)
	}
	c := w.Chunk(0, 0)
	if got, want := c.Mesh().FaceCount(), 6*c.BlockCount(); got != want {
		t.Errorf("FaceCount() = %d, want %d", got, want)
	}
}

func TestMeshBudgetFailureKeepsChunkUnloaded(t *testing.T) {
	cfg := testConfig()
	cfg.Performance.MaxChunkVertices = 4
	w, scene := newTestWorld(t, cfg)
	stats, err := w.UpdateChunks(0, 0)
	if !errors.Is(err, meshing.ErrMeshTooLarge) {
		t.Fatalf("UpdateChunks() = %v, want ErrMeshTooLarge", err)
	}
	if stats.Loaded != 0 || len(w.LoadedChunks()) != 0 || len(scene.attached) != 0 {
		t.Errorf("chunks loaded despite failed meshes: %+v", stats)
	}
}

func TestAttachFailureIsRetried(t *testing.T) {
	w, scene := newTestWorld(t, testConfig())
	boom := errors.New("no buffers")
	scene.attachErr[ChunkCoord{1, 1}] = boom
	stats, err := w.UpdateChunks(0, 0)
	if !errors.Is(err, boom) {
		t.Fatalf("UpdateChunks() = %v, want %v", err, boom)
	}
	if stats.Loaded != 8 || w.IsLoaded(ChunkCoord{1, 1}) {
		t.Errorf("stats = %+v, want 8 loaded without (1,1)", stats)
	}

	delete(scene.attachErr, ChunkCoord{1, 1})
	stats, err = w.UpdateChunks(0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Loaded != 1 {
		t.Errorf("retry stats = %+v, want 1 loaded", stats)
	}
	checkLoaded(t, w, scene, window(ChunkCoord{}, 1))
}

func TestTerrainHeightBounds(t *testing.T) {
	w, _ := newTestWorld(t, testConfig())
	for x := -500; x < 500; x += 13 {
		if h := w.GetTerrainHeight(x, x/2); h < 1 || h > 63 {
			t.Fatalf("GetTerrainHeight(%d,%d) = %d", x, x/2, h)
		}
	}
}

func TestClose(t *testing.T) {
	w, scene := newTestWorld(t, testConfig())
	if _, err := w.UpdateChunks(0, 0); err != nil {
		t.Fatal(err)
	}
	w.Close()
	if len(scene.attached) != 0 || w.ChunkCount() != 0 || len(w.LoadedChunks()) != 0 {
		t.Fatal("Close left chunks behind")
	}
	if stats, err := w.UpdateChunks(0, 0); err != nil || !stats.Idle() {
		t.Errorf("UpdateChunks after Close = %+v, %v", stats, err)
	}
	w.Close()
}

func BenchmarkUpdateChunks(b *testing.B) {
	cfg := testConfig()
	cfg.World.EvictDistance = 2
	w, err := New(cfg, nil)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := w.UpdateChunks(float64(i*48), 0); err != nil {
			b.Fatal(err)
		}
	}
}
