package engine

import (
	"fmt"
	"runtime"

	"github.com/bloeys/hellotex/input"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

var _ Window = &GLFWWindow{}

type GLFWWindow struct {
	GLFWWin *glfw.Window
}

func createGLFWWindow(opts WindowOptions) (*GLFWWindow, error) {

	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to init GLFW: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, opts.GLMajor)
	glfw.WindowHint(glfw.ContextVersionMinor, opts.GLMinor)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	if runtime.GOOS == "darwin" {
		glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	}

	if opts.Resizable {
		glfw.WindowHint(glfw.Resizable, glfw.True)
	} else {
		glfw.WindowHint(glfw.Resizable, glfw.False)
	}

	glfwWin, err := glfw.CreateWindow(int(opts.Width), int(opts.Height), opts.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create GLFW window: %w", err)
	}

	glfwWin.MakeContextCurrent()

	win := &GLFWWindow{GLFWWin: glfwWin}
	glfwWin.SetFramebufferSizeCallback(win.framebufferSizeCallback)
	glfwWin.SetKeyCallback(win.keyCallback)
	glfwWin.SetCloseCallback(win.closeCallback)

	return win, nil
}

func (w *GLFWWindow) framebufferSizeCallback(_ *glfw.Window, width, height int) {

	if width <= 0 || height <= 0 {
		return
	}

	gl.Viewport(0, 0, int32(width), int32(height))
}

func (w *GLFWWindow) keyCallback(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {

	switch action {
	case glfw.Press:
		input.HandleKeyEvent(glfwKeyToKey(key), true, false)
	case glfw.Repeat:
		input.HandleKeyEvent(glfwKeyToKey(key), true, true)
	case glfw.Release:
		input.HandleKeyEvent(glfwKeyToKey(key), false, false)
	}
}

func (w *GLFWWindow) closeCallback(_ *glfw.Window) {
	input.HandleQuitEvent()
}

func (w *GLFWWindow) PollEvents() {
	glfw.PollEvents()
}

func (w *GLFWWindow) SwapBuffers() {
	w.GLFWWin.SwapBuffers()
}

func (w *GLFWWindow) ShouldClose() bool {
	return w.GLFWWin.ShouldClose()
}

func (w *GLFWWindow) Size() (width, height int32) {
	width32, height32 := w.GLFWWin.GetSize()
	return int32(width32), int32(height32)
}

func (w *GLFWWindow) SetTitle(title string) {
	w.GLFWWin.SetTitle(title)
}

func (w *GLFWWindow) SetVSync(enabled bool) {

	if enabled {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
}

func (w *GLFWWindow) Destroy() error {
	w.GLFWWin.Destroy()
	glfw.Terminate()
	return nil
}

func glfwKeyToKey(key glfw.Key) input.Key {

	switch key {
	case glfw.KeyEscape:
		return input.KeyEscape
	case glfw.KeySpace:
		return input.KeySpace
	case glfw.KeyEnter:
		return input.KeyEnter
	case glfw.KeyUp:
		return input.KeyArrowUp
	case glfw.KeyDown:
		return input.KeyArrowDown
	case glfw.KeyLeft:
		return input.KeyArrowLeft
	case glfw.KeyRight:
		return input.KeyArrowRight
	case glfw.KeyW:
		return input.KeyW
	case glfw.KeyA:
		return input.KeyA
	case glfw.KeyS:
		return input.KeyS
	case glfw.KeyD:
		return input.KeyD
	case glfw.KeyR:
		return input.KeyR
	case glfw.KeyF1:
		return input.KeyF1
	default:
		return input.KeyUnknown
	}
}
