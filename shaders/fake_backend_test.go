package shaders_test

import (
	"fmt"
	"strings"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/hellotex/shaders"
)

// fakeBackend records every call and keeps just enough state to check resource ownership
type fakeBackend struct {
	nextId uint32
	calls  []string

	linkErr string

	liveStages     map[uint32]bool
	liveProgs      map[uint32]bool
	deletedProgs   map[uint32]int
	activeProg     uint32
	uniformLocs    map[string]int32
	uniformValues  map[int32]any
	stageSources   map[uint32]string
	stageTypes     map[uint32]shaders.ShaderType
	attachedStages map[uint32][]uint32
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		stageTypes:     map[uint32]shaders.ShaderType{},
		liveStages:     map[uint32]bool{},
		liveProgs:      map[uint32]bool{},
		deletedProgs:   map[uint32]int{},
		uniformLocs:    map[string]int32{"mixValue": 0, "texture1": 1, "texture2": 2, "transform": 3},
		uniformValues:  map[int32]any{},
		stageSources:   map[uint32]string{},
		attachedStages: map[uint32][]uint32{},
	}
}

func (f *fakeBackend) record(format string, args ...any) {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakeBackend) callNames() []string {

	names := make([]string, len(f.calls))
	for i, c := range f.calls {
		names[i], _, _ = strings.Cut(c, "(")
	}

	return names
}

func (f *fakeBackend) CreateStage(shaderType shaders.ShaderType) uint32 {
	f.nextId++
	f.liveStages[f.nextId] = true
	f.stageTypes[f.nextId] = shaderType
	f.record("CreateStage(%s)", shaderType)
	return f.nextId
}

func (f *fakeBackend) CompileStage(stageId uint32, src string) shaders.Status {

	f.record("CompileStage(%d)", stageId)
	f.stageSources[stageId] = src

	if strings.Contains(src, "syntax error") {
		return shaders.Failure(fmt.Sprintf("0:1(1): error: syntax error in %s stage", f.stageTypes[stageId]))
	}

	return shaders.Success()
}

func (f *fakeBackend) DeleteStage(stageId uint32) {
	f.record("DeleteStage(%d)", stageId)
	delete(f.liveStages, stageId)
}

func (f *fakeBackend) CreateProgram() uint32 {
	f.nextId++
	f.liveProgs[f.nextId] = true
	f.record("CreateProgram()")
	return f.nextId
}

func (f *fakeBackend) AttachStage(progId, stageId uint32) {
	f.record("AttachStage(%d, %d)", progId, stageId)
	f.attachedStages[progId] = append(f.attachedStages[progId], stageId)
}

func (f *fakeBackend) LinkProgram(progId uint32) shaders.Status {

	f.record("LinkProgram(%d)", progId)
	if f.linkErr != "" {
		return shaders.Failure(f.linkErr)
	}

	return shaders.Success()
}

func (f *fakeBackend) UseProgram(progId uint32) {
	f.record("UseProgram(%d)", progId)
	f.activeProg = progId
}

func (f *fakeBackend) DeleteProgram(progId uint32) {
	f.record("DeleteProgram(%d)", progId)
	f.deletedProgs[progId]++
	delete(f.liveProgs, progId)
}

func (f *fakeBackend) UniformLocation(progId uint32, name string) int32 {

	f.record("UniformLocation(%d, %s)", progId, name)
	loc, ok := f.uniformLocs[name]
	if !ok {
		return -1
	}

	return loc
}

func (f *fakeBackend) setUniform(loc int32, val any) {

	// Matches OpenGL, where location -1 is silently ignored
	if loc == -1 {
		return
	}

	f.uniformValues[loc] = val
}

func (f *fakeBackend) SetUniformInt(progId uint32, loc int32, val int32) {
	f.record("SetUniformInt(%d, %d)", progId, loc)
	f.setUniform(loc, val)
}

func (f *fakeBackend) SetUniformFloat(progId uint32, loc int32, val float32) {
	f.record("SetUniformFloat(%d, %d)", progId, loc)
	f.setUniform(loc, val)
}

func (f *fakeBackend) SetUniformVec2(progId uint32, loc int32, val *gglm.Vec2) {
	f.record("SetUniformVec2(%d, %d)", progId, loc)
	f.setUniform(loc, *val)
}

func (f *fakeBackend) SetUniformVec3(progId uint32, loc int32, val *gglm.Vec3) {
	f.record("SetUniformVec3(%d, %d)", progId, loc)
	f.setUniform(loc, *val)
}

func (f *fakeBackend) SetUniformVec4(progId uint32, loc int32, val *gglm.Vec4) {
	f.record("SetUniformVec4(%d, %d)", progId, loc)
	f.setUniform(loc, *val)
}

func (f *fakeBackend) SetUniformMat4(progId uint32, loc int32, val *gglm.Mat4) {
	f.record("SetUniformMat4(%d, %d)", progId, loc)
	f.setUniform(loc, *val)
}

// fakeLogger keeps formatted messages per level
type fakeLogger struct {
	infos  []string
	errors []string
}

func (l *fakeLogger) Infof(format string, args ...any) {
	l.infos = append(l.infos, fmt.Sprintf(format, args...))
}

func (l *fakeLogger) Errorf(format string, args ...any) {
	l.errors = append(l.errors, fmt.Sprintf(format, args...))
}
