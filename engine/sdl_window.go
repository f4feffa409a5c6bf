package engine

import (
	"fmt"
	"runtime"

	"github.com/bloeys/hellotex/input"
	"github.com/bloeys/hellotex/logging"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"
)

var _ Window = &SDLWindow{}

type SDLWindow struct {
	SDLWin *sdl.Window
	GlCtx  sdl.GLContext

	shouldClose bool
}

func initSDL(opts WindowOptions) error {

	err := sdl.Init(sdl.INIT_TIMER | sdl.INIT_VIDEO)
	if err != nil {
		return err
	}

	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, opts.GLMajor)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, opts.GLMinor)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)

	if runtime.GOOS == "darwin" {
		sdl.GLSetAttribute(sdl.GL_CONTEXT_FLAGS, sdl.GL_CONTEXT_FORWARD_COMPATIBLE_FLAG)
	}

	sdl.GLSetAttribute(sdl.GL_RED_SIZE, 8)
	sdl.GLSetAttribute(sdl.GL_GREEN_SIZE, 8)
	sdl.GLSetAttribute(sdl.GL_BLUE_SIZE, 8)
	sdl.GLSetAttribute(sdl.GL_ALPHA_SIZE, 8)
	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)

	return nil
}

func createSDLWindow(opts WindowOptions) (*SDLWindow, error) {

	if err := initSDL(opts); err != nil {
		return nil, fmt.Errorf("failed to init SDL: %w", err)
	}

	var flags uint32 = sdl.WINDOW_OPENGL
	if opts.Resizable {
		flags |= sdl.WINDOW_RESIZABLE
	}

	sdlWin, err := sdl.CreateWindow(opts.Title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED, opts.Width, opts.Height, flags)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("failed to create SDL window: %w", err)
	}

	win := &SDLWindow{SDLWin: sdlWin}

	win.GlCtx, err = sdlWin.GLCreateContext()
	if err != nil {
		sdlWin.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("failed to create OpenGL context: %w", err)
	}

	return win, nil
}

func (w *SDLWindow) PollEvents() {

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {

		switch e := event.(type) {

		case *sdl.KeyboardEvent:
			input.HandleKeyEvent(sdlKeycodeToKey(e.Keysym.Sym), e.State == sdl.PRESSED, e.Repeat != 0)

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				w.handleWindowResize()
			}

		case *sdl.QuitEvent:
			w.shouldClose = true
			input.HandleQuitEvent()
		}
	}
}

func (w *SDLWindow) handleWindowResize() {

	fbWidth, fbHeight := w.SDLWin.GLGetDrawableSize()
	if fbWidth <= 0 || fbHeight <= 0 {
		return
	}

	gl.Viewport(0, 0, fbWidth, fbHeight)
}

func (w *SDLWindow) SwapBuffers() {
	w.SDLWin.GLSwap()
}

func (w *SDLWindow) ShouldClose() bool {
	return w.shouldClose
}

func (w *SDLWindow) Size() (width, height int32) {
	return w.SDLWin.GetSize()
}

func (w *SDLWindow) SetTitle(title string) {
	w.SDLWin.SetTitle(title)
}

func (w *SDLWindow) SetVSync(enabled bool) {

	interval := 0
	if enabled {
		interval = 1
	}

	if err := sdl.GLSetSwapInterval(interval); err != nil {
		logging.ErrLog.Errorf("Failed to set vsync to %v. Err: %v", enabled, err)
	}
}

func (w *SDLWindow) Destroy() error {

	sdl.GLDeleteContext(w.GlCtx)
	err := w.SDLWin.Destroy()
	sdl.Quit()

	return err
}

func sdlKeycodeToKey(kc sdl.Keycode) input.Key {

	switch kc {
	case sdl.K_ESCAPE:
		return input.KeyEscape
	case sdl.K_SPACE:
		return input.KeySpace
	case sdl.K_RETURN:
		return input.KeyEnter
	case sdl.K_UP:
		return input.KeyArrowUp
	case sdl.K_DOWN:
		return input.KeyArrowDown
	case sdl.K_LEFT:
		return input.KeyArrowLeft
	case sdl.K_RIGHT:
		return input.KeyArrowRight
	case sdl.K_w:
		return input.KeyW
	case sdl.K_a:
		return input.KeyA
	case sdl.K_s:
		return input.KeyS
	case sdl.K_d:
		return input.KeyD
	case sdl.K_r:
		return input.KeyR
	case sdl.K_F1:
		return input.KeyF1
	default:
		return input.KeyUnknown
	}
}
