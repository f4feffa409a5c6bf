package shaders_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/hellotex/shaders"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	validVert = `#version 410 core
layout (location = 0) in vec3 aPos;
out vec2 TexCoord;
void main() { gl_Position = vec4(aPos, 1.0); TexCoord = aPos.xy; }
`
	validFrag = `#version 410 core
in vec2 TexCoord;
out vec4 FragColor;
uniform float mixValue;
void main() { FragColor = vec4(TexCoord, mixValue, 1.0); }
`
	brokenSrc = "#version 410 core\nvoid main() { syntax error }\n"
)

func writeShaderFiles(t *testing.T, vertSrc, fragSrc string) (vertPath, fragPath string) {

	t.Helper()

	dir := t.TempDir()
	vertPath = filepath.Join(dir, "shader.vs")
	fragPath = filepath.Join(dir, "shader.fs")

	require.NoError(t, os.WriteFile(vertPath, []byte(vertSrc), 0o644))
	require.NoError(t, os.WriteFile(fragPath, []byte(fragSrc), 0o644))
	return vertPath, fragPath
}

func newReadyProgram(t *testing.T) (*shaders.ShaderProgram, *fakeBackend, *fakeLogger) {

	t.Helper()

	backend := newFakeBackend()
	logger := &fakeLogger{}
	vertPath, fragPath := writeShaderFiles(t, validVert, validFrag)

	sp := shaders.NewShaderProgram(vertPath, fragPath, backend, logger)
	require.True(t, sp.IsReady(), "program failed to build: %v", sp.Err())
	return sp, backend, logger
}

func TestNewShaderProgramSuccess(t *testing.T) {

	sp, backend, logger := newReadyProgram(t)

	assert.Equal(t, shaders.State_Ready, sp.State())
	assert.NotZero(t, sp.Id)
	assert.NoError(t, sp.Err())
	assert.Empty(t, logger.errors)

	assert.Equal(t, []string{
		"CreateStage(VERTEX)",
		"CompileStage(1)",
		"CreateStage(FRAGMENT)",
		"CompileStage(2)",
		"CreateProgram()",
		"AttachStage(3, 1)",
		"AttachStage(3, 2)",
		"LinkProgram(3)",
		"DeleteStage(1)",
		"DeleteStage(2)",
	}, backend.calls)

	assert.Empty(t, backend.liveStages, "stages must be released after linking")
	assert.True(t, backend.liveProgs[sp.Id])
	assert.Equal(t, validVert, backend.stageSources[1])
	assert.Equal(t, validFrag, backend.stageSources[2])
}

func TestNewShaderProgramCompileError(t *testing.T) {

	tests := []struct {
		name  string
		vert  string
		frag  string
		stage shaders.ShaderType
	}{
		{name: "vertex", vert: brokenSrc, frag: validFrag, stage: shaders.ShaderType_Vertex},
		{name: "fragment", vert: validVert, frag: brokenSrc, stage: shaders.ShaderType_Fragment},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {

			backend := newFakeBackend()
			logger := &fakeLogger{}
			vertPath, fragPath := writeShaderFiles(t, tt.vert, tt.frag)

			sp := shaders.NewShaderProgram(vertPath, fragPath, backend, logger)

			assert.Equal(t, shaders.State_Failed, sp.State())
			assert.Zero(t, sp.Id)

			var compileErr *shaders.CompileError
			require.ErrorAs(t, sp.Err(), &compileErr)
			assert.Equal(t, tt.stage, compileErr.Type)

			require.Len(t, logger.errors, 1)
			assert.True(t, strings.HasPrefix(logger.errors[0], "ERROR::SHADER_COMPILATION_ERROR of type: "+tt.stage.String()+", error: "), logger.errors[0])
			assert.Contains(t, logger.errors[0], "syntax error")

			assert.NotContains(t, backend.callNames(), "CreateProgram")
			assert.NotContains(t, backend.callNames(), "LinkProgram")
			assert.Empty(t, backend.liveStages)
		})
	}
}

func TestNewShaderProgramLinkError(t *testing.T) {

	backend := newFakeBackend()
	backend.linkErr = "error: vertex output 'TexCoord' not read by fragment shader"
	logger := &fakeLogger{}
	vertPath, fragPath := writeShaderFiles(t, validVert, validFrag)

	sp := shaders.NewShaderProgram(vertPath, fragPath, backend, logger)

	assert.Equal(t, shaders.State_Failed, sp.State())
	assert.Zero(t, sp.Id)

	var linkErr *shaders.LinkError
	require.ErrorAs(t, sp.Err(), &linkErr)
	assert.Equal(t, backend.linkErr, linkErr.InfoLog)

	require.Len(t, logger.errors, 1)
	assert.Equal(t, "ERROR::PROGRAM_LINKING_ERROR of type: PROGRAM, error: "+backend.linkErr, logger.errors[0])

	assert.Empty(t, backend.liveStages, "both stages must be released even when linking fails")
	assert.Empty(t, backend.liveProgs, "program object of a failed link must be released")
	assert.Equal(t, 1, backend.deletedProgs[3])
}

func TestNewShaderProgramReadError(t *testing.T) {

	backend := newFakeBackend()
	logger := &fakeLogger{}
	_, fragPath := writeShaderFiles(t, validVert, validFrag)
	missing := filepath.Join(t.TempDir(), "missing.vs")

	sp := shaders.NewShaderProgram(missing, fragPath, backend, logger)

	assert.Equal(t, shaders.State_Failed, sp.State())
	assert.Empty(t, backend.calls, "nothing should be compiled when a source can't be read")

	var readErr *shaders.ReadError
	require.ErrorAs(t, sp.Err(), &readErr)
	assert.Equal(t, missing, readErr.Path)
	assert.True(t, errors.Is(sp.Err(), fs.ErrNotExist))

	require.Len(t, logger.errors, 1)
	assert.True(t, strings.HasPrefix(logger.errors[0], "ERROR::SHADER::FILE_NOT_SUCCESSFULLY_READ, error: "), logger.errors[0])
}

func TestNewShaderProgramMissingFragmentFile(t *testing.T) {

	backend := newFakeBackend()
	logger := &fakeLogger{}
	vertPath, _ := writeShaderFiles(t, validVert, validFrag)

	sp := shaders.NewShaderProgram(vertPath, filepath.Join(t.TempDir(), "missing.fs"), backend, logger)

	assert.Equal(t, shaders.State_Failed, sp.State())
	assert.Empty(t, backend.calls)
	assert.Len(t, logger.errors, 1)
}

func TestUseIsIdempotent(t *testing.T) {

	sp, backend, _ := newReadyProgram(t)

	sp.Use()
	assert.Equal(t, sp.Id, backend.activeProg)

	sp.Use()
	sp.Use()
	assert.Equal(t, sp.Id, backend.activeProg)

	sp.UnBind()
	assert.Zero(t, backend.activeProg)
}

func TestUniformSetters(t *testing.T) {

	sp, backend, _ := newReadyProgram(t)

	sp.SetFloat("mixValue", 0.2)
	sp.SetInt("texture1", 0)
	sp.SetBool("texture2", true)

	assert.Equal(t, float32(0.2), backend.uniformValues[0])
	assert.Equal(t, int32(0), backend.uniformValues[1])
	assert.Equal(t, int32(1), backend.uniformValues[2])

	tr := gglm.NewTrMatId()
	sp.SetMat4("transform", &tr.Mat4)
	assert.Equal(t, tr.Mat4, backend.uniformValues[3])
}

func TestUnknownUniformIsNoop(t *testing.T) {

	sp, backend, logger := newReadyProgram(t)

	sp.SetFloat("mixValue", 0.5)
	before := len(backend.uniformValues)

	assert.NotPanics(t, func() {
		sp.SetFloat("doesNotExist", 1.0)
		sp.SetInt("doesNotExist", 1)
		sp.SetBool("doesNotExist", true)
	})

	assert.Equal(t, float32(0.5), backend.uniformValues[0])
	assert.Len(t, backend.uniformValues, before)
	assert.Empty(t, logger.errors)
	assert.Equal(t, int32(-1), sp.GetUnifLoc("doesNotExist"))
}

func TestUniformLocationsAreCached(t *testing.T) {

	sp, backend, _ := newReadyProgram(t)

	sp.SetFloat("mixValue", 0.1)
	sp.SetFloat("mixValue", 0.2)
	sp.SetFloat("mixValue", 0.3)

	lookups := 0
	for _, name := range backend.callNames() {
		if name == "UniformLocation" {
			lookups++
		}
	}

	assert.Equal(t, 1, lookups)
	assert.Equal(t, float32(0.3), backend.uniformValues[0])
}

func TestDestroyReleasesOnce(t *testing.T) {

	sp, backend, _ := newReadyProgram(t)
	id := sp.Id

	sp.Destroy()
	sp.Destroy()

	assert.Equal(t, 1, backend.deletedProgs[id])
	assert.Equal(t, shaders.State_Released, sp.State())
	assert.Zero(t, sp.Id)

	// Released programs are inert
	callCount := len(backend.calls)
	sp.Use()
	sp.SetFloat("mixValue", 1)
	assert.Len(t, backend.calls, callCount)
}

func TestFailedProgramIsInert(t *testing.T) {

	backend := newFakeBackend()
	logger := &fakeLogger{}
	vertPath, fragPath := writeShaderFiles(t, brokenSrc, validFrag)

	sp := shaders.NewShaderProgram(vertPath, fragPath, backend, logger)
	require.Equal(t, shaders.State_Failed, sp.State())

	callCount := len(backend.calls)
	assert.NotPanics(t, func() {
		sp.Use()
		sp.SetBool("mixValue", true)
		sp.SetInt("mixValue", 1)
		sp.SetFloat("mixValue", 1)
		sp.Destroy()
		sp.Destroy()
	})

	assert.Len(t, backend.calls, callCount)
	assert.Equal(t, shaders.State_Released, sp.State())
	assert.Error(t, sp.Err())
}

func TestNewShaderProgramSrcWithGeometry(t *testing.T) {

	backend := newFakeBackend()
	logger := &fakeLogger{}

	sp := shaders.NewShaderProgramSrc(shaders.Sources{Vertex: validVert, Fragment: validFrag, Geometry: "#version 410 core\n"}, backend, logger)
	require.True(t, sp.IsReady())

	assert.Len(t, backend.attachedStages[sp.Id], 3)
	assert.Equal(t, shaders.ShaderType_Geometry, backend.stageTypes[3])
	assert.Empty(t, backend.liveStages)
}

func TestFailureTruncatesInfoLog(t *testing.T) {

	status := shaders.Failure(strings.Repeat("x", shaders.MaxInfoLogLen*2))
	assert.True(t, status.Failed)
	assert.Len(t, status.InfoLog, shaders.MaxInfoLogLen)

	assert.False(t, shaders.Success().Failed)
}
