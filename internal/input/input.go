// Package input turns GLFW key, button and cursor events into per-frame
// viewer intents.
package input

import "github.com/go-gl/glfw/v3.3/glfw"

// Action is a logical control, independent of the key bound to it.
type Action uint8

const (
	MoveForward Action = iota
	MoveBackward
	MoveLeft
	MoveRight
	Rise
	Sink
	Sprint
	Pause
	Break
	Place
	ToggleWireframe
	ToggleProfiling
	Slot1
	Slot2
	Slot3
	Slot4
	Slot5
	Slot6
	Slot7
	Slot8

	numActions
)

// Slots is the number of palette slots reachable from the keyboard.
const Slots = int(Slot8-Slot1) + 1

var defaultKeys = map[glfw.Key]Action{
	glfw.KeyW:           MoveForward,
	glfw.KeyS:           MoveBackward,
	glfw.KeyA:           MoveLeft,
	glfw.KeyD:           MoveRight,
	glfw.KeySpace:       Rise,
	glfw.KeyLeftShift:   Sink,
	glfw.KeyLeftControl: Sprint,
	glfw.KeyEscape:      Pause,
	glfw.KeyF:           ToggleWireframe,
	glfw.KeyV:           ToggleProfiling,
	glfw.Key1:           Slot1,
	glfw.Key2:           Slot2,
	glfw.Key3:           Slot3,
	glfw.Key4:           Slot4,
	glfw.Key5:           Slot5,
	glfw.Key6:           Slot6,
	glfw.Key7:           Slot7,
	glfw.Key8:           Slot8,
}

var defaultButtons = map[glfw.MouseButton]Action{
	glfw.MouseButtonLeft:  Break,
	glfw.MouseButtonRight: Place,
}

// Intents is what the viewer asked for during one frame.
type Intents struct {
	// Forward, Right and Up are movement axes in [-1, 1].
	Forward, Right, Up float32
	Sprint             bool
	// LookX and LookY are cursor travel in pixels since the previous frame.
	LookX, LookY float32

	Break, Place bool
	// Slot is the palette slot picked this frame, or -1.
	Slot int

	Pause, Wireframe, Profiling bool // toggles
}

// Controls collects events between frames. Callbacks arrive from
// glfw.PollEvents on the main thread, so no locking is needed.
type Controls struct {
	keys    map[glfw.Key]Action
	buttons map[glfw.MouseButton]Action

	held    [numActions]bool
	pressed [numActions]bool // went down since the last Frame

	lastX, lastY float64
	hasCursor    bool
	lookX, lookY float64
}

// NewControls returns controls with the default bindings.
func NewControls() *Controls {
	c := &Controls{
		keys:    make(map[glfw.Key]Action, len(defaultKeys)),
		buttons: make(map[glfw.MouseButton]Action, len(defaultButtons)),
	}
	for k, a := range defaultKeys {
		c.keys[k] = a
	}
	for b, a := range defaultButtons {
		c.buttons[b] = a
	}
	return c
}

// BindKey maps key to a, replacing its previous action.
func (c *Controls) BindKey(key glfw.Key, a Action) {
	if a < numActions {
		c.keys[key] = a
	}
}

// Attach installs key, mouse button and cursor callbacks on window.
func (c *Controls) Attach(window *glfw.Window) {
	window.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		c.Key(key, action)
	})
	window.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		c.Button(button, action)
	})
	window.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		c.Cursor(x, y)
	})
}

// Key records a keyboard event. Repeats keep the key held without a new press.
func (c *Controls) Key(key glfw.Key, action glfw.Action) {
	if a, ok := c.keys[key]; ok {
		c.set(a, action != glfw.Release)
	}
}

// Button records a mouse button event.
func (c *Controls) Button(button glfw.MouseButton, action glfw.Action) {
	if a, ok := c.buttons[button]; ok {
		c.set(a, action == glfw.Press)
	}
}

// Cursor records the cursor position. The first sample after
// RecenterCursor only sets the reference point.
func (c *Controls) Cursor(x, y float64) {
	if c.hasCursor {
		c.lookX += x - c.lastX
		c.lookY += y - c.lastY
	}
	c.lastX, c.lastY = x, y
	c.hasCursor = true
}

// RecenterCursor forgets the last cursor position, so recapturing the
// cursor does not produce a jump.
func (c *Controls) RecenterCursor() {
	c.hasCursor = false
	c.lookX, c.lookY = 0, 0
}

func (c *Controls) set(a Action, down bool) {
	if down && !c.held[a] {
		c.pressed[a] = true
	}
	c.held[a] = down
}

func (c *Controls) axis(pos, neg Action) float32 {
	var v float32
	if c.held[pos] {
		v++
	}
	if c.held[neg] {
		v--
	}
	return v
}

// Frame returns the intents gathered since the previous call and starts a
// new frame. A press and release inside one frame still counts as a press.
func (c *Controls) Frame() Intents {
	in := Intents{
		Forward:   c.axis(MoveForward, MoveBackward),
		Right:     c.axis(MoveRight, MoveLeft),
		Up:        c.axis(Rise, Sink),
		Sprint:    c.held[Sprint],
		LookX:     float32(c.lookX),
		LookY:     float32(c.lookY),
		Break:     c.pressed[Break],
		Place:     c.pressed[Place],
		Slot:      -1,
		Pause:     c.pressed[Pause],
		Wireframe: c.pressed[ToggleWireframe],
		Profiling: c.pressed[ToggleProfiling],
	}
	for s := Slot1; s <= Slot8; s++ {
		if c.pressed[s] {
			in.Slot = int(s - Slot1)
		}
	}
	c.pressed = [numActions]bool{}
	c.lookX, c.lookY = 0, 0
	return in
}
