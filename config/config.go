// Package config loads the program settings from a TOML file.
//
// Every field has a default, so a missing file section (or no file at all) is valid.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/bloeys/hellotex/logging"
	"github.com/pelletier/go-toml/v2"
)

const (
	WindowBackend_SDL  = "sdl"
	WindowBackend_GLFW = "glfw"
)

type Config struct {
	Window   WindowConfig   `toml:"window"`
	GL       GLConfig       `toml:"gl"`
	Shaders  ShadersConfig  `toml:"shaders"`
	Textures TexturesConfig `toml:"textures"`
	Log      LogConfig      `toml:"log"`
	Render   RenderConfig   `toml:"render"`
}

type WindowConfig struct {
	Title     string `toml:"title"`
	Width     int32  `toml:"width"`
	Height    int32  `toml:"height"`
	Backend   string `toml:"backend"`
	VSync     bool   `toml:"vsync"`
	Resizable bool   `toml:"resizable"`
}

type GLConfig struct {
	Major int `toml:"major"`
	Minor int `toml:"minor"`
}

type ShadersConfig struct {
	Vertex   string `toml:"vertex"`
	Fragment string `toml:"fragment"`

	// Combined, if set, is used instead of Vertex and Fragment
	Combined  string `toml:"combined"`
	HotReload bool   `toml:"hot_reload"`
}

type TexturesConfig struct {
	Paths      []string `toml:"paths"`
	FlipY      bool     `toml:"flip_y"`
	GenMipMaps bool     `toml:"gen_mipmaps"`
}

type LogConfig struct {
	Name    string `toml:"name"`
	File    string `toml:"file"`
	Level   string `toml:"level"`
	Console bool   `toml:"console"`
}

type RenderConfig struct {
	ClearColor [4]float32 `toml:"clear_color"`
	Mix        float32    `toml:"mix"`
}

func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:     "LearnOpenGL",
			Width:     800,
			Height:    600,
			Backend:   WindowBackend_SDL,
			VSync:     true,
			Resizable: true,
		},
		GL: GLConfig{
			Major: 4,
			Minor: 1,
		},
		Shaders: ShadersConfig{
			Vertex:   "./res/shaders/texture.vs",
			Fragment: "./res/shaders/texture.fs",
		},
		Textures: TexturesConfig{
			Paths: []string{
				"./res/textures/container.png",
				"./res/textures/awesomeface.png",
			},
			FlipY:      true,
			GenMipMaps: true,
		},
		Log: LogConfig{
			Name:    "app",
			File:    "app.log",
			Level:   "info",
			Console: true,
		},
		Render: RenderConfig{
			ClearColor: [4]float32{0.2, 0.3, 0.3, 1},
			Mix:        0.2,
		},
	}
}

// Load reads the TOML file at path on top of the defaults.
// An empty path returns the defaults.
func Load(path string) (Config, error) {

	cfg := Default()
	if path == "" {
		return cfg, cfg.Validate()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	if err := Parse(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file '%s': %w", path, err)
	}

	return cfg, cfg.Validate()
}

// Parse decodes data into cfg, keeping values of cfg that data doesn't set.
// Unknown keys are an error.
func Parse(data []byte, cfg *Config) error {

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	return dec.Decode(cfg)
}

func (c *Config) Validate() error {

	var errs []error

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}

	if c.Window.Backend != WindowBackend_SDL && c.Window.Backend != WindowBackend_GLFW {
		errs = append(errs, fmt.Errorf("unknown window backend '%s', must be '%s' or '%s'", c.Window.Backend, WindowBackend_SDL, WindowBackend_GLFW))
	}

	// Uniforms are set with glProgramUniform*, which is core since 4.1
	if c.GL.Major < 4 || (c.GL.Major == 4 && c.GL.Minor < 1) {
		errs = append(errs, fmt.Errorf("OpenGL %d.%d is not supported, need at least 4.1", c.GL.Major, c.GL.Minor))
	}

	if c.Shaders.Combined == "" && (c.Shaders.Vertex == "" || c.Shaders.Fragment == "") {
		errs = append(errs, errors.New("shaders need either a combined file or both a vertex and fragment file"))
	}

	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}

	if c.Render.Mix < 0 || c.Render.Mix > 1 {
		errs = append(errs, fmt.Errorf("render mix must be in [0, 1], got %f", c.Render.Mix))
	}

	return errors.Join(errs...)
}
