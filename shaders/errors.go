package shaders

import "fmt"

// ReadError means a shader source file could not be read, or a combined
// shader file did not contain the required stages
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read shader source '%s': %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// CompileError means the backend rejected the source of a single stage
type CompileError struct {
	Type    ShaderType
	InfoLog string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("failed to compile %s shader: %s", e.Type, e.InfoLog)
}

// LinkError means the backend rejected linking the compiled stages into a program
type LinkError struct {
	InfoLog string
}

func (e *LinkError) Error() string {
	return "failed to link shader program: " + e.InfoLog
}
