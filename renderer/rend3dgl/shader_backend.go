package rend3dgl

import (
	"strings"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/hellotex/assert"
	"github.com/bloeys/hellotex/shaders"
	"github.com/go-gl/gl/v4.1-core/gl"
)

var _ shaders.Backend = &ShaderBackend{}

// ShaderBackend issues shader calls against the current OpenGL context
type ShaderBackend struct{}

func NewShaderBackend() *ShaderBackend {
	return &ShaderBackend{}
}

func ShaderTypeToGl(s shaders.ShaderType) uint32 {

	switch s {
	case shaders.ShaderType_Vertex:
		return gl.VERTEX_SHADER
	case shaders.ShaderType_Fragment:
		return gl.FRAGMENT_SHADER
	case shaders.ShaderType_Geometry:
		return gl.GEOMETRY_SHADER

	default:
		assert.T(false, "Unknown shader type '%d'", s)
		return 0
	}
}

func (b *ShaderBackend) CreateStage(shaderType shaders.ShaderType) uint32 {
	return gl.CreateShader(ShaderTypeToGl(shaderType))
}

func (b *ShaderBackend) CompileStage(stageId uint32, src string) shaders.Status {

	shaderCStr, shaderFree := gl.Strs(src + "\x00")
	defer shaderFree()
	gl.ShaderSource(stageId, 1, shaderCStr, nil)

	gl.CompileShader(stageId)

	var compiledSuccessfully int32
	gl.GetShaderiv(stageId, gl.COMPILE_STATUS, &compiledSuccessfully)
	if compiledSuccessfully == gl.TRUE {
		return shaders.Success()
	}

	log := gl.Str(strings.Repeat("\x00", shaders.MaxInfoLogLen))
	gl.GetShaderInfoLog(stageId, shaders.MaxInfoLogLen, nil, log)
	return shaders.Failure(gl.GoStr(log))
}

func (b *ShaderBackend) DeleteStage(stageId uint32) {
	gl.DeleteShader(stageId)
}

func (b *ShaderBackend) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (b *ShaderBackend) AttachStage(progId, stageId uint32) {
	gl.AttachShader(progId, stageId)
}

func (b *ShaderBackend) LinkProgram(progId uint32) shaders.Status {

	gl.LinkProgram(progId)

	var linkedSuccessfully int32
	gl.GetProgramiv(progId, gl.LINK_STATUS, &linkedSuccessfully)
	if linkedSuccessfully == gl.TRUE {
		return shaders.Success()
	}

	log := gl.Str(strings.Repeat("\x00", shaders.MaxInfoLogLen))
	gl.GetProgramInfoLog(progId, shaders.MaxInfoLogLen, nil, log)
	return shaders.Failure(gl.GoStr(log))
}

func (b *ShaderBackend) UseProgram(progId uint32) {
	gl.UseProgram(progId)
}

func (b *ShaderBackend) DeleteProgram(progId uint32) {
	gl.DeleteProgram(progId)
}

func (b *ShaderBackend) UniformLocation(progId uint32, name string) int32 {
	return gl.GetUniformLocation(progId, gl.Str(name+"\x00"))
}

func (b *ShaderBackend) SetUniformInt(progId uint32, loc int32, val int32) {
	gl.ProgramUniform1i(progId, loc, val)
}

func (b *ShaderBackend) SetUniformFloat(progId uint32, loc int32, val float32) {
	gl.ProgramUniform1f(progId, loc, val)
}

func (b *ShaderBackend) SetUniformVec2(progId uint32, loc int32, val *gglm.Vec2) {
	gl.ProgramUniform2fv(progId, loc, 1, &val.Data[0])
}

func (b *ShaderBackend) SetUniformVec3(progId uint32, loc int32, val *gglm.Vec3) {
	gl.ProgramUniform3fv(progId, loc, 1, &val.Data[0])
}

func (b *ShaderBackend) SetUniformVec4(progId uint32, loc int32, val *gglm.Vec4) {
	gl.ProgramUniform4fv(progId, loc, 1, &val.Data[0])
}

func (b *ShaderBackend) SetUniformMat4(progId uint32, loc int32, val *gglm.Mat4) {
	gl.ProgramUniformMatrix4fv(progId, loc, 1, false, &val.Data[0][0])
}
