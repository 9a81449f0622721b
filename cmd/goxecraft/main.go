package main

import (
	"flag"
	"log"
	"runtime"

	"goxecraft/internal/config"
	"goxecraft/internal/graphics"
	"goxecraft/internal/input"
	"goxecraft/internal/world"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

const (
	winW = 900
	winH = 600
)

func init() {
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "YAML world config; built-in defaults when empty")
	seed := flag.Int64("seed", 0, "override the terrain seed when non-zero")
	fpsLimit := flag.Int("fps", 120, "frame rate cap, 0 disables it")
	flag.Parse()

	cfg, err := loadConfig(*configPath, *seed)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := glfw.Init(); err != nil {
		log.Fatalf("glfw: %v", err)
	}
	defer glfw.Terminate()

	window, err := setupWindow()
	if err != nil {
		log.Fatalf("window: %v", err)
	}
	if err := gl.Init(); err != nil {
		log.Fatalf("gl: %v", err)
	}
	log.Printf("OpenGL %s", gl.GoStr(gl.GetString(gl.VERSION)))

	scene, err := graphics.NewScene()
	if err != nil {
		log.Fatalf("scene: %v", err)
	}
	defer scene.Close()

	w, err := world.New(cfg, scene)
	if err != nil {
		log.Fatalf("world: %v", err)
	}
	// chunks release their buffers before the scene goes away
	defer w.Close()

	a := newApp(window, w, scene, input.NewControls(), *fpsLimit)
	a.spawn(0, 0)
	a.run()
}

func loadConfig(path string, seed int64) (*config.Config, error) {
	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}
	if seed != 0 {
		cfg.Terrain.Seed = seed
	}
	return cfg, cfg.Validate()
}

func setupWindow() (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	window, err := glfw.CreateWindow(winW, winH, "goxecraft", nil, nil)
	if err != nil {
		return nil, err
	}
	window.MakeContextCurrent()

	glfw.SwapInterval(0)
	window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)

	return window, nil
}
