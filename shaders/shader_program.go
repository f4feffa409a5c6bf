package shaders

import (
	"github.com/bloeys/gglm/gglm"
)

// ShaderProgram owns a linked vertex+fragment (and optionally geometry) program.
//
// A ShaderProgram that failed to build stays usable but inert: Use, the uniform
// setters and Destroy do nothing. Err reports why it failed.
type ShaderProgram struct {
	Id uint32

	state    State
	err      error
	backend  Backend
	logger   Logger
	unifLocs map[string]int32
}

func (sp *ShaderProgram) State() State {
	return sp.state
}

func (sp *ShaderProgram) IsReady() bool {
	return sp.state == State_Ready
}

// Err returns the *ReadError, *CompileError or *LinkError that made construction fail, or nil
func (sp *ShaderProgram) Err() error {
	return sp.err
}

// Use makes this program the active one for the following draw calls
func (sp *ShaderProgram) Use() {

	if sp.state != State_Ready {
		return
	}

	sp.backend.UseProgram(sp.Id)
}

func (sp *ShaderProgram) UnBind() {

	if sp.state != State_Ready {
		return
	}

	sp.backend.UseProgram(0)
}

// GetUnifLoc returns the location of the uniform, or -1 if the program has no such uniform.
// Locations are cached per program.
func (sp *ShaderProgram) GetUnifLoc(uniformName string) int32 {

	if sp.state != State_Ready {
		return -1
	}

	loc, ok := sp.unifLocs[uniformName]
	if ok {
		return loc
	}

	loc = sp.backend.UniformLocation(sp.Id, uniformName)
	sp.unifLocs[uniformName] = loc
	return loc
}

func (sp *ShaderProgram) SetBool(uniformName string, val bool) {

	var v int32
	if val {
		v = 1
	}

	sp.SetInt(uniformName, v)
}

func (sp *ShaderProgram) SetInt(uniformName string, val int32) {

	loc := sp.GetUnifLoc(uniformName)
	if loc == -1 {
		return
	}

	sp.backend.SetUniformInt(sp.Id, loc, val)
}

func (sp *ShaderProgram) SetFloat(uniformName string, val float32) {

	loc := sp.GetUnifLoc(uniformName)
	if loc == -1 {
		return
	}

	sp.backend.SetUniformFloat(sp.Id, loc, val)
}

func (sp *ShaderProgram) SetVec2(uniformName string, val *gglm.Vec2) {

	loc := sp.GetUnifLoc(uniformName)
	if loc == -1 {
		return
	}

	sp.backend.SetUniformVec2(sp.Id, loc, val)
}

func (sp *ShaderProgram) SetVec3(uniformName string, val *gglm.Vec3) {

	loc := sp.GetUnifLoc(uniformName)
	if loc == -1 {
		return
	}

	sp.backend.SetUniformVec3(sp.Id, loc, val)
}

func (sp *ShaderProgram) SetVec4(uniformName string, val *gglm.Vec4) {

	loc := sp.GetUnifLoc(uniformName)
	if loc == -1 {
		return
	}

	sp.backend.SetUniformVec4(sp.Id, loc, val)
}

func (sp *ShaderProgram) SetMat4(uniformName string, val *gglm.Mat4) {

	loc := sp.GetUnifLoc(uniformName)
	if loc == -1 {
		return
	}

	sp.backend.SetUniformMat4(sp.Id, loc, val)
}

// Destroy releases the program. Only the first call on a ready program reaches the backend.
func (sp *ShaderProgram) Destroy() {

	switch sp.state {
	case State_Ready:
		sp.backend.DeleteProgram(sp.Id)
		sp.Id = 0
		sp.state = State_Released
	case State_Failed:
		sp.state = State_Released
	}

	clear(sp.unifLocs)
}
