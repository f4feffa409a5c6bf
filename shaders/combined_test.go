package shaders_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bloeys/hellotex/shaders"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitCombinedShader(t *testing.T) {

	src := "// texture demo\n//shader:vertex\n" + validVert + "//shader:fragment\n" + validFrag

	out, err := shaders.SplitCombinedShader([]byte(src))
	require.NoError(t, err)

	assert.Equal(t, "\n"+validVert, out.Vertex)
	assert.Equal(t, "\n"+validFrag, out.Fragment)
	assert.Empty(t, out.Geometry)
}

func TestSplitCombinedShaderErrors(t *testing.T) {

	tests := []struct {
		name string
		src  string
	}{
		{name: "no markers", src: validVert},
		{name: "no fragment", src: "//shader:vertex\n" + validVert},
		{name: "no vertex", src: "//shader:fragment\n" + validFrag},
		{name: "unknown stage", src: "//shader:vertex\n" + validVert + "//shader:compute\nvoid main() {}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := shaders.SplitCombinedShader([]byte(tt.src))
			assert.Error(t, err)
		})
	}
}

func TestNewShaderProgramCombined(t *testing.T) {

	path := filepath.Join(t.TempDir(), "texture.glsl")
	require.NoError(t, os.WriteFile(path, []byte("//shader:vertex\n"+validVert+"//shader:fragment\n"+validFrag), 0o644))

	backend := newFakeBackend()
	logger := &fakeLogger{}

	sp := shaders.NewShaderProgramCombined(path, backend, logger)
	require.True(t, sp.IsReady(), "program failed to build: %v", sp.Err())
	assert.Empty(t, backend.liveStages)
}

func TestNewShaderProgramCombinedMissingStage(t *testing.T) {

	path := filepath.Join(t.TempDir(), "texture.glsl")
	require.NoError(t, os.WriteFile(path, []byte("//shader:vertex\n"+validVert), 0o644))

	backend := newFakeBackend()
	logger := &fakeLogger{}

	sp := shaders.NewShaderProgramCombined(path, backend, logger)
	assert.Equal(t, shaders.State_Failed, sp.State())

	var readErr *shaders.ReadError
	require.ErrorAs(t, sp.Err(), &readErr)
	assert.Equal(t, path, readErr.Path)
	assert.Empty(t, backend.calls)
	assert.Len(t, logger.errors, 1)
}

func TestShippedShadersAgree(t *testing.T) {

	combined, err := os.ReadFile("../res/shaders/texture.glsl")
	require.NoError(t, err)

	vert, err := os.ReadFile("../res/shaders/texture.vs")
	require.NoError(t, err)

	frag, err := os.ReadFile("../res/shaders/texture.fs")
	require.NoError(t, err)

	src, err := shaders.SplitCombinedShader(combined)
	require.NoError(t, err)

	assert.Equal(t, strings.TrimSpace(string(vert)), strings.TrimSpace(src.Vertex))
	assert.Equal(t, strings.TrimSpace(string(frag)), strings.TrimSpace(src.Fragment))
	assert.Empty(t, src.Geometry)

	b := newFakeBackend()
	sp := shaders.NewShaderProgram("../res/shaders/texture.vs", "../res/shaders/texture.fs", b, &fakeLogger{})
	require.True(t, sp.IsReady())

	assert.Contains(t, string(vert), "uniform mat4 transform;")
	assert.Contains(t, string(frag), "uniform sampler2D texture1;")
	assert.Contains(t, string(frag), "uniform sampler2D texture2;")
	assert.Contains(t, string(frag), "uniform float mixValue;")
}
