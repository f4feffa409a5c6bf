package shaders

import "github.com/bloeys/gglm/gglm"

// MaxInfoLogLen is the max number of bytes kept from a compile or link diagnostic log
const MaxInfoLogLen = 1024

// Status is the result of a compile or link step.
// The zero value is success.
type Status struct {
	Failed bool

	// InfoLog is the diagnostic text reported by the backend. Only set on failure.
	InfoLog string
}

func Success() Status {
	return Status{}
}

func Failure(infoLog string) Status {

	if len(infoLog) > MaxInfoLogLen {
		infoLog = infoLog[:MaxInfoLogLen]
	}

	return Status{Failed: true, InfoLog: infoLog}
}

// Backend is the set of graphics calls a ShaderProgram issues.
//
// All calls must happen on the thread that owns the graphics context.
// Handles are non-zero on success. A uniform location of -1 means the uniform
// does not exist in the program.
type Backend interface {
	CreateStage(shaderType ShaderType) uint32
	CompileStage(stageId uint32, src string) Status
	DeleteStage(stageId uint32)

	CreateProgram() uint32
	AttachStage(progId, stageId uint32)
	LinkProgram(progId uint32) Status
	UseProgram(progId uint32)
	DeleteProgram(progId uint32)

	UniformLocation(progId uint32, name string) int32
	SetUniformInt(progId uint32, loc int32, val int32)
	SetUniformFloat(progId uint32, loc int32, val float32)
	SetUniformVec2(progId uint32, loc int32, val *gglm.Vec2)
	SetUniformVec3(progId uint32, loc int32, val *gglm.Vec3)
	SetUniformVec4(progId uint32, loc int32, val *gglm.Vec4)
	SetUniformMat4(progId uint32, loc int32, val *gglm.Mat4)
}

// Logger receives construction failures. *logging.Logger satisfies it.
type Logger interface {
	Infof(format string, args ...any)
	Errorf(format string, args ...any)
}
