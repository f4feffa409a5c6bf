package engine

import (
	"fmt"
	"runtime"

	"github.com/bloeys/hellotex/assert"
	"github.com/bloeys/hellotex/config"
	"github.com/bloeys/hellotex/input"
	"github.com/bloeys/hellotex/renderer"
	"github.com/bloeys/hellotex/timing"
	"github.com/go-gl/gl/v4.1-core/gl"
)

var (
	isInited  = false
	isRunning = false
)

// Window is an OS window owning the OpenGL context all rendering happens in
type Window interface {
	// PollEvents pumps the OS event queue, feeding key and quit events to the input package
	PollEvents()
	SwapBuffers()
	ShouldClose() bool

	// Size returns the window size in screen coordinates
	Size() (width, height int32)
	SetTitle(title string)
	SetVSync(enabled bool)
	Destroy() error
}

type WindowOptions struct {
	Title     string
	Width     int32
	Height    int32
	Backend   string
	GLMajor   int
	GLMinor   int
	VSync     bool
	Resizable bool
}

func WindowOptionsFromConfig(cfg *config.Config) WindowOptions {
	return WindowOptions{
		Title:     cfg.Window.Title,
		Width:     cfg.Window.Width,
		Height:    cfg.Window.Height,
		Backend:   cfg.Window.Backend,
		GLMajor:   cfg.GL.Major,
		GLMinor:   cfg.GL.Minor,
		VSync:     cfg.Window.VSync,
		Resizable: cfg.Window.Resizable,
	}
}

type Game interface {
	Init()
	Update()
	Render()
	FrameEnd()
	DeInit()
}

// Init must be called from the main goroutine before any window is created,
// as OpenGL contexts are bound to a single OS thread
func Init() {

	isInited = true

	runtime.LockOSThread()
	timing.Init()
}

// CreateOpenGLWindow creates a centered window with a core profile context made current
// on the calling thread, then loads the OpenGL functions
func CreateOpenGLWindow(opts WindowOptions) (Window, error) {

	assert.T(isInited, "engine.Init() was not called!")

	var win Window
	var err error
	switch opts.Backend {
	case config.WindowBackend_SDL:
		win, err = createSDLWindow(opts)
	case config.WindowBackend_GLFW:
		win, err = createGLFWWindow(opts)
	default:
		return nil, fmt.Errorf("unknown window backend '%s'", opts.Backend)
	}

	if err != nil {
		return nil, err
	}

	err = initOpenGL()
	if err != nil {
		win.Destroy()
		return nil, err
	}

	win.SetVSync(opts.VSync)

	// Get rid of the blinding white startup screen
	gl.Clear(gl.COLOR_BUFFER_BIT)
	win.SwapBuffers()

	return win, nil
}

func initOpenGL() error {

	if err := gl.Init(); err != nil {
		return fmt.Errorf("failed to init OpenGL: %w", err)
	}

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	gl.ClearColor(0, 0, 0, 1)

	return nil
}

// Run calls the game callbacks every frame until the window is closed or Quit is called
func Run(g Game, w Window, rend renderer.Render) {

	isRunning = true
	g.Init()

	for isRunning {

		timing.FrameStarted()

		input.EventLoopStart()
		w.PollEvents()
		if input.IsQuitClicked() || w.ShouldClose() {
			break
		}

		g.Update()
		g.Render()
		rend.FrameEnd()
		g.FrameEnd()

		w.SwapBuffers()
		timing.FrameEnded()
	}

	isRunning = false
	g.DeInit()
}

// Quit stops Run after the current frame
func Quit() {
	isRunning = false
}
