package main

import (
	"log"
	"math"
	"time"

	"goxecraft/internal/graphics"
	"goxecraft/internal/input"
	"goxecraft/internal/physics"
	"goxecraft/internal/profiling"
	"goxecraft/internal/registry"
	"goxecraft/internal/world"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	eyeHeight    = 1.62
	viewerHeight = 1.8
	flySpeed     = 10.0 // blocks per second
	sprintFactor = 3.0
	mouseSense   = 0.1
	streamEvery  = 200 * time.Millisecond
)

// app owns the window loop: input, streaming, edits and drawing.
type app struct {
	window *glfw.Window
	world  *world.World
	scene  *graphics.Scene
	input  *input.Controls
	camera *graphics.Camera
	clock  *frameClock

	palette  []registry.BlockKind
	selected int

	paused    bool
	wireframe bool
	profiling bool

	streamedChunk [2]int
	lastStream    time.Time
}

func newApp(window *glfw.Window, w *world.World, scene *graphics.Scene, controls *input.Controls, fps int) *app {
	width, height := window.GetFramebufferSize()
	a := &app{
		window:  window,
		world:   w,
		scene:   scene,
		input:   controls,
		camera:  graphics.NewCamera(width, height),
		clock:   newFrameClock(fps, time.Now()),
		palette: registry.Placeable(),
	}
	controls.Attach(window)
	window.SetFramebufferSizeCallback(func(_ *glfw.Window, fbWidth, fbHeight int) {
		gl.Viewport(0, 0, int32(fbWidth), int32(fbHeight))
		a.camera.SetViewport(fbWidth, fbHeight)
	})

	gl.Viewport(0, 0, int32(width), int32(height))
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)
	gl.ClearColor(0.53, 0.81, 0.92, 1)
	return a
}

// spawn loads the area around column (x, z) and puts the eye above its surface.
func (a *app) spawn(x, z int) {
	a.stream(true)
	top := float32(a.world.GetTerrainHeight(x, z)) - 0.5
	cfg := a.world.Config()
	if ground, ok := physics.FindGroundLevel(float32(x), float32(z), float32(cfg.World.WorldHeight), 0, a.world); ok {
		top = ground
	}
	a.camera.Position = mgl32.Vec3{float32(x), top + eyeHeight, float32(z)}
	a.stream(true)
	log.Printf("spawn at %.1f %.1f %.1f, %d chunks, %d blocks",
		a.camera.Position.X(), a.camera.Position.Y(), a.camera.Position.Z(),
		a.world.ChunkCount(), a.world.GetBlockCount())
}

func (a *app) run() {
	for !a.window.ShouldClose() {
		profiling.ResetFrame()
		dt := a.clock.tick(time.Now())

		func() { defer profiling.Track("glfw.PollEvents")(); glfw.PollEvents() }()
		in := a.input.Frame()
		a.handleToggles(in)
		if !a.paused {
			func() { defer profiling.Track("viewer.Update")(); a.update(in, dt) }()
			a.stream(false)
		}

		func() {
			defer profiling.Track("renderer.Frame")()
			gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
			a.scene.Render(a.camera.GetViewMatrix(), a.camera.GetProjectionMatrix())
		}()
		func() { defer profiling.Track("glfw.SwapBuffers")(); a.window.SwapBuffers() }()

		if n, ok := a.clock.fps(time.Now()); ok && a.profiling {
			log.Printf("FPS: %d chunks=%d culled=%d | %s", n, a.scene.Len(), a.scene.Culled, profiling.TopN(4))
		}
		a.clock.wait()
	}
}

func (a *app) handleToggles(in input.Intents) {
	if in.Pause {
		a.paused = !a.paused
		if a.paused {
			a.window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
		} else {
			a.window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
			a.input.RecenterCursor()
		}
	}
	if in.Wireframe {
		a.wireframe = !a.wireframe
		mode := uint32(gl.FILL)
		if a.wireframe {
			mode = gl.LINE
		}
		gl.PolygonMode(gl.FRONT_AND_BACK, mode)
	}
	if in.Profiling {
		a.profiling = !a.profiling
	}
	if in.Slot >= 0 && in.Slot < len(a.palette) {
		a.selected = in.Slot
		log.Printf("selected %v", a.palette[in.Slot])
	}
}

func (a *app) update(in input.Intents, dt float32) {
	a.camera.Look(in.LookX, in.LookY, mouseSense)
	speed := float32(flySpeed)
	if in.Sprint {
		speed *= sprintFactor
	}
	a.camera.Move(in.Forward, in.Right, in.Up, speed*dt)

	switch {
	case in.Break:
		a.breakBlock()
	case in.Place:
		a.placeBlock()
	}
}

func (a *app) target() physics.RaycastResult {
	return physics.Raycast(a.camera.Position, a.camera.Front(),
		physics.MinReachDistance, physics.MaxReachDistance, a.world)
}

func (a *app) breakBlock() {
	hit := a.target()
	if !hit.Hit {
		return
	}
	p := hit.HitPosition
	if err := a.world.SetBlock(p[0], p[1], p[2], registry.Air); err != nil {
		log.Printf("break %v: %v", p, err)
	}
}

// cell is a BlockQuery holding a single solid block.
type cell [3]int

func (c cell) IsSolid(x, y, z int) bool { return c == cell{x, y, z} }

func (a *app) placeBlock() {
	hit := a.target()
	if !hit.Hit {
		return
	}
	p := hit.AdjacentPosition
	feet := a.camera.Position.Sub(mgl32.Vec3{0, eyeHeight, 0})
	if physics.Collides(feet, viewerHeight, cell(p)) {
		return
	}
	kind := a.palette[a.selected]
	if err := a.world.SetBlock(p[0], p[1], p[2], kind); err != nil {
		log.Printf("place %v at %v: %v", kind, p, err)
	}
}

// stream reconciles chunks around the viewer when it enters a new chunk or
// the throttle interval has passed.
func (a *app) stream(force bool) {
	size := float64(a.world.Config().World.ChunkSize)
	x, z := float64(a.camera.Position.X()), float64(a.camera.Position.Z())
	cur := [2]int{int(math.Floor(x / size)), int(math.Floor(z / size))}
	if !force && cur == a.streamedChunk && time.Since(a.lastStream) < streamEvery {
		return
	}
	a.streamedChunk = cur
	a.lastStream = time.Now()

	stats, err := a.world.UpdateChunks(x, z)
	if err != nil {
		log.Printf("stream: %v", err)
	}
	if !stats.Idle() {
		log.Printf("stream: loaded=%d unloaded=%d evicted=%d remeshed=%d held=%d",
			stats.Loaded, stats.Unloaded, stats.Evicted, stats.Remeshed, a.world.ChunkCount())
	}
}
