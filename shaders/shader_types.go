package shaders

type ShaderType int32

const (
	ShaderType_Unknown ShaderType = iota
	ShaderType_Vertex
	ShaderType_Fragment
	ShaderType_Geometry
)

// String returns the upper case stage name used in compile error logs (e.g. 'VERTEX')
func (s ShaderType) String() string {

	switch s {
	case ShaderType_Vertex:
		return "VERTEX"
	case ShaderType_Fragment:
		return "FRAGMENT"
	case ShaderType_Geometry:
		return "GEOMETRY"
	default:
		return "UNKNOWN"
	}
}

// State is where a ShaderProgram is in its lifecycle.
//
// Uninitialized -> (compile+link attempt) -> Ready | Failed -> Released
type State uint8

const (
	State_Uninitialized State = iota
	State_Ready
	State_Failed
	State_Released
)

func (s State) String() string {

	switch s {
	case State_Uninitialized:
		return "Uninitialized"
	case State_Ready:
		return "Ready"
	case State_Failed:
		return "Failed"
	case State_Released:
		return "Released"
	default:
		return "Unknown"
	}
}
