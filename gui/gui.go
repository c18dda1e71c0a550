package gui

import (
	"fmt"
	"log/slog"
	"math"
	"runtime"

	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/go-gl/glfw/v3.2/glfw"
	"github.com/inkyblackness/imgui-go/v2"

	"github.com/ob6160/Bloch/gui/renderers"
)

// InputHandler receives mouse input that the control panel did not claim.
type InputHandler interface {
	MouseButton(button int, pressed bool, x, y float64)
	CursorMoved(x, y float64)
	Scroll(yoff float64)
	Resize(width, height int)
}

type GUI struct {
	window         *glfw.Window
	context        *imgui.Context
	renderer       *renderers.OpenGL3
	io             imgui.IO
	input          InputHandler
	buttonsPressed [3]bool
	time           float64
}

func NewGUI(windowWidth, windowHeight int, title string) (*GUI, error) {
	runtime.LockOSThread()
	var g = new(GUI)

	g.context = imgui.CreateContext(nil)
	g.io = imgui.CurrentIO()

	window, err := g.InitialiseGLFW(windowWidth, windowHeight, title)
	if err != nil {
		g.context.Destroy()
		return nil, err
	}
	g.window = window

	g.installCallbacks()

	renderer, err := renderers.NewOpenGL3(g.io)
	if err != nil {
		g.window.Destroy()
		glfw.Terminate()
		g.context.Destroy()
		return nil, fmt.Errorf("imgui renderer: %w", err)
	}
	g.renderer = renderer
	return g, nil
}

func (g *GUI) SetInputHandler(h InputHandler) {
	g.input = h
}

func (g *GUI) ShouldClose() bool {
	return g.window.ShouldClose()
}

func (g *GUI) SwapBuffers() {
	g.window.SwapBuffers()
}

func (g *GUI) GetSize() (int, int) {
	return g.window.GetSize()
}

func (g *GUI) GetFramebufferSize() (int, int) {
	return g.window.GetFramebufferSize()
}

// Time is the GLFW monotonic clock in seconds.
func (g *GUI) Time() float64 {
	return glfw.GetTime()
}

// Render builds the control panel with draw and renders it on top of the
// current framebuffer.
func (g *GUI) Render(draw func()) {
	imgui.NewFrame()
	draw()
	imgui.Render()

	w, h := g.window.GetSize()
	displaySize := [2]float32{float32(w), float32(h)}
	fw, fh := g.window.GetFramebufferSize()
	fbSize := [2]float32{float32(fw), float32(fh)}
	g.renderer.Render(displaySize, fbSize, imgui.RenderedDrawData())
}

// Update polls window events and feeds the frame's input to imgui.
func (g *GUI) Update() {
	glfw.PollEvents()

	w, h := g.window.GetSize()
	g.io.SetDisplaySize(imgui.Vec2{X: float32(w), Y: float32(h)})

	// Setup time step
	currentTime := glfw.GetTime()
	if g.time > 0 {
		g.io.SetDeltaTime(float32(currentTime - g.time))
	}
	g.time = currentTime

	if g.window.GetAttrib(glfw.Focused) != 0 {
		x, y := g.window.GetCursorPos()
		g.io.SetMousePosition(imgui.Vec2{X: float32(x), Y: float32(y)})
	} else {
		g.io.SetMousePosition(imgui.Vec2{X: -math.MaxFloat32, Y: -math.MaxFloat32})
	}

	for i := 0; i < len(g.buttonsPressed); i++ {
		down := g.buttonsPressed[i] || (g.window.GetMouseButton(glfwButtonIDByIndex[i]) == glfw.Press)
		g.io.SetMouseButtonDown(i, down)
		g.buttonsPressed[i] = false
	}
}

func (g *GUI) Dispose() {
	g.renderer.Dispose()
	g.context.Destroy()
	g.window.Destroy()
	glfw.Terminate()
}

func (g *GUI) InitialiseGLFW(windowWidth, windowHeight int, title string) (*glfw.Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("initialise glfw: %w", err)
	}
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.Samples, 4)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	window, err := glfw.CreateWindow(windowWidth, windowHeight, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	if err := gl.Init(); err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("initialise gl: %w", err)
	}

	slog.Info("opengl context",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)),
	)
	return window, nil
}

func (g *GUI) installCallbacks() {
	g.window.SetMouseButtonCallback(g.mouseButtonChange)
	g.window.SetCursorPosCallback(g.cursorPosChange)
	g.window.SetScrollCallback(g.mouseScrollChange)
	g.window.SetSizeCallback(g.sizeChange)
	g.window.SetKeyCallback(g.keyChange)
	g.window.SetCharCallback(g.charChange)
}

var glfwButtonIndexByID = map[glfw.MouseButton]int{
	glfw.MouseButton1: 0,
	glfw.MouseButton2: 1,
	glfw.MouseButton3: 2,
}

var glfwButtonIDByIndex = map[int]glfw.MouseButton{
	0: glfw.MouseButton1,
	1: glfw.MouseButton2,
	2: glfw.MouseButton3,
}

func (g *GUI) mouseButtonChange(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mod glfw.ModifierKey) {
	buttonIndex, known := glfwButtonIndexByID[button]
	if !known {
		return
	}
	if action == glfw.Press {
		g.buttonsPressed[buttonIndex] = true
	}
	if g.input == nil {
		return
	}
	// Releases always go through so a drag that ends over the panel stops.
	if action == glfw.Release || !g.io.WantCaptureMouse() {
		x, y := w.GetCursorPos()
		g.input.MouseButton(buttonIndex, action == glfw.Press, x, y)
	}
}

func (g *GUI) cursorPosChange(w *glfw.Window, x, y float64) {
	if g.input != nil {
		g.input.CursorMoved(x, y)
	}
}

func (g *GUI) mouseScrollChange(w *glfw.Window, xoff float64, yoff float64) {
	g.io.AddMouseWheelDelta(float32(xoff), float32(yoff))
	if g.input != nil && !g.io.WantCaptureMouse() {
		g.input.Scroll(yoff)
	}
}

func (g *GUI) sizeChange(w *glfw.Window, width, height int) {
	if g.input != nil {
		g.input.Resize(width, height)
	}
}

func (g *GUI) keyChange(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if action == glfw.Press {
		g.io.KeyPress(int(key))
	}
	if action == glfw.Release {
		g.io.KeyRelease(int(key))
	}
	// Modifiers are not reliable across systems
	g.io.KeyCtrl(int(glfw.KeyLeftControl), int(glfw.KeyRightControl))
	g.io.KeyShift(int(glfw.KeyLeftShift), int(glfw.KeyRightShift))
	g.io.KeyAlt(int(glfw.KeyLeftAlt), int(glfw.KeyRightAlt))
	g.io.KeySuper(int(glfw.KeyLeftSuper), int(glfw.KeyRightSuper))
}

func (g *GUI) charChange(w *glfw.Window, char rune) {
	g.io.AddInputCharacters(string(char))
}
