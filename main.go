package main

import (
	"fmt"
	"os"
	"runtime/pprof"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/hellotex/assets"
	"github.com/bloeys/hellotex/buffers"
	"github.com/bloeys/hellotex/config"
	"github.com/bloeys/hellotex/engine"
	"github.com/bloeys/hellotex/input"
	"github.com/bloeys/hellotex/logging"
	"github.com/bloeys/hellotex/materials"
	"github.com/bloeys/hellotex/renderer/rend3dgl"
	"github.com/bloeys/hellotex/shaders"
	"github.com/bloeys/hellotex/timing"
	flag "github.com/spf13/pflag"
)

const (
	mixChangePerSec   float32 = 0.5
	quadRotDegPerSec  float32 = 45
	fpsLogIntervalSec float32 = 1
)

var (
	// Positions, colors, texture coords
	quadVerts = []float32{
		0.5, 0.5, 0.0, 1.0, 0.0, 0.0, 1.0, 1.0,   // top right
		0.5, -0.5, 0.0, 0.0, 1.0, 0.0, 1.0, 0.0,  // bottom right
		-0.5, -0.5, 0.0, 0.0, 0.0, 1.0, 0.0, 0.0, // bottom left
		-0.5, 0.5, 0.0, 1.0, 1.0, 0.0, 0.0, 1.0,  // top left
	}

	quadIndices = []uint32{
		0, 1, 3,
		1, 2, 3,
	}
)

type Game struct {
	Win  engine.Window
	Rend *rend3dgl.Rend3DGL
	Cfg  config.Config

	ShaderBackend *rend3dgl.ShaderBackend
	Watcher       *shaders.Watcher

	QuadMat materials.Material
	QuadVao buffers.VertexArray

	ClearColor gglm.Vec4
	MixValue   float32
	RotRad     float32

	fpsLogTimer float32
}

func main() {

	configPath := flag.StringP("config", "c", "", "path to a TOML config file")
	backend := flag.String("backend", "", "window backend, 'sdl' or 'glfw'. Overrides the config file")
	width := flag.Int32("width", 0, "window width. Overrides the config file")
	height := flag.Int32("height", 0, "window height. Overrides the config file")
	cpuProfile := flag.String("cpuprofile", "", "write a CPU profile to this file")
	memProfile := flag.String("memprofile", "", "write a heap profile to this file on exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err == nil {
		err = applyFlagOverrides(&cfg, *backend, *width, *height)
	}

	if err != nil {
		logging.ErrLog.Fatalf("Failed to load config. Err: %v", err)
	}

	// Validated by config.Load
	logLevel, _ := logging.ParseLevel(cfg.Log.Level)
	logCloser := logging.Init(logging.Options{
		Name:    cfg.Log.Name,
		File:    cfg.Log.File,
		Console: cfg.Log.Console,
		Level:   logLevel,
	})
	defer logCloser.Close()

	logging.InfoLog.Infof("Hello, World!")

	engine.Init()

	window, err := engine.CreateOpenGLWindow(engine.WindowOptionsFromConfig(&cfg))
	if err != nil {
		logging.ErrLog.Errorf("Failed to create window. Err: %v", err)
		return
	}
	defer window.Destroy()

	game := &Game{
		Win:           window,
		Rend:          rend3dgl.NewRend3DGL(),
		Cfg:           cfg,
		ShaderBackend: rend3dgl.NewShaderBackend(),
	}

	if *cpuProfile != "" {

		pf, err := os.Create(*cpuProfile)
		if err == nil {
			defer pf.Close()
			pprof.StartCPUProfile(pf)
		} else {
			logging.ErrLog.Errorf("Creating %s failed. CPU profiling will not run. Err: %v", *cpuProfile, err)
		}
	}

	engine.Run(game, window, game.Rend)

	if *cpuProfile != "" {
		pprof.StopCPUProfile()
	}

	if *memProfile != "" {
		writeHeapProfile(*memProfile)
	}
}

func applyFlagOverrides(cfg *config.Config, backend string, width, height int32) error {

	if backend != "" {
		cfg.Window.Backend = backend
	}

	if width != 0 {
		cfg.Window.Width = width
	}

	if height != 0 {
		cfg.Window.Height = height
	}

	return cfg.Validate()
}

func writeHeapProfile(path string) {

	heapProfile, err := os.Create(path)
	if err != nil {
		logging.ErrLog.Errorf("Creating %s failed. Err: %v", path, err)
		return
	}
	defer heapProfile.Close()

	if err := pprof.WriteHeapProfile(heapProfile); err != nil {
		logging.ErrLog.Errorf("Writing heap profile to %s failed. Err: %v", path, err)
	}
}

func (g *Game) Init() {

	g.ClearColor = gglm.Vec4{Data: g.Cfg.Render.ClearColor}
	g.MixValue = g.Cfg.Render.Mix

	g.QuadMat = materials.NewMaterial("Texture mat", g.loadShaderProgram())

	g.initQuad()
	g.loadTextures()

	g.QuadMat.Program.SetFloat("mixValue", g.MixValue)

	if g.Cfg.Shaders.HotReload {

		w, err := shaders.NewWatcher(logging.InfoLog, g.shaderPaths()...)
		if err != nil {
			logging.ErrLog.Errorf("Failed to watch shader files, hot reload is disabled. Err: %v", err)
		} else {
			g.Watcher = w
		}
	}
}

func (g *Game) shaderPaths() []string {

	if g.Cfg.Shaders.Combined != "" {
		return []string{g.Cfg.Shaders.Combined}
	}

	return []string{g.Cfg.Shaders.Vertex, g.Cfg.Shaders.Fragment}
}

func (g *Game) loadShaderProgram() *shaders.ShaderProgram {

	if g.Cfg.Shaders.Combined != "" {
		return shaders.NewShaderProgramCombined(g.Cfg.Shaders.Combined, g.ShaderBackend, logging.InfoLog)
	}

	return shaders.NewShaderProgram(g.Cfg.Shaders.Vertex, g.Cfg.Shaders.Fragment, g.ShaderBackend, logging.InfoLog)
}

func (g *Game) initQuad() {

	vbo := buffers.NewVertexBuffer(
		buffers.Element{ElementType: buffers.DataTypeVec3},
		buffers.Element{ElementType: buffers.DataTypeVec3},
		buffers.Element{ElementType: buffers.DataTypeVec2},
	)
	vbo.SetData(quadVerts, buffers.BufUsage_Static_Draw)

	ibo := buffers.NewIndexBuffer()
	ibo.SetData(quadIndices)

	g.QuadVao = buffers.NewVertexArray()
	g.QuadVao.AddVertexBuffer(vbo)
	g.QuadVao.SetIndexBuffer(ibo)
	g.QuadVao.UnBind()
}

// loadTextures binds the configured textures to texture1, texture2... in order.
// A texture that fails to load is logged and left empty so later textures keep their units.
func (g *Game) loadTextures() {

	// The default framebuffer isn't sRGB, so pixels are sampled as they are
	opts := &assets.TextureLoadOptions{
		GenMipMaps: g.Cfg.Textures.GenMipMaps,
		FlipY:      g.Cfg.Textures.FlipY,
		NoSrgba:    true,
		Wrap:       assets.TextureWrap_Repeat,
		Filter:     assets.TextureFilter_Linear,
	}

	for i, texPath := range g.Cfg.Textures.Paths {

		tex, err := assets.LoadTexture(texPath, opts)
		if err != nil {
			logging.ErrLog.Errorf("Failed to load texture: %s. Err: %v", texPath, err)
		}

		g.QuadMat.AddTexture(fmt.Sprintf("texture%d", i+1), tex)
	}
}

func (g *Game) Update() {

	if input.KeyClicked(input.KeyEscape) {
		engine.Quit()
	}

	if input.KeyDown(input.KeyArrowUp) {
		g.setMixValue(g.MixValue + mixChangePerSec*timing.DT())
	}

	if input.KeyDown(input.KeyArrowDown) {
		g.setMixValue(g.MixValue - mixChangePerSec*timing.DT())
	}

	if input.KeyClicked(input.KeyR) || (g.Watcher != nil && g.Watcher.HasChanged()) {
		g.reloadShaders()
	}

	g.RotRad += quadRotDegPerSec * gglm.Deg2Rad * timing.DT()

	g.fpsLogTimer += timing.DT()
	if g.fpsLogTimer >= fpsLogIntervalSec {
		g.fpsLogTimer = 0
		logging.InfoLog.Debugf("FPS: %.1f", timing.GetAvgFPS())
	}
}

func (g *Game) setMixValue(v float32) {

	g.MixValue = min(max(v, 0), 1)
	g.QuadMat.Program.SetFloat("mixValue", g.MixValue)
}

func (g *Game) reloadShaders() {

	logging.InfoLog.Infof("Reloading shaders")

	if !g.QuadMat.ReplaceProgram(g.loadShaderProgram()) {
		return
	}

	g.QuadMat.Program.SetFloat("mixValue", g.MixValue)
	g.Rend.InvalidateMaterial()
}

func (g *Game) Render() {

	g.Rend.Clear(&g.ClearColor)

	trMat := gglm.NewTrMatId()
	trMat.Rotate(g.RotRad, 0, 0, 1)
	g.QuadMat.Program.SetMat4("transform", &trMat.Mat4)

	g.Rend.DrawElements(&g.QuadMat, &g.QuadVao)
}

func (g *Game) FrameEnd() {
}

func (g *Game) DeInit() {

	if g.Watcher != nil {
		g.Watcher.Close()
	}

	g.QuadVao.Delete()
	g.QuadMat.Delete()
}
