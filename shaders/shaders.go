package shaders

import (
	"bytes"
	"errors"
	"os"
)

const (
	readErrFmt    = "ERROR::SHADER::FILE_NOT_SUCCESSFULLY_READ, error: %v"
	compileErrFmt = "ERROR::SHADER_COMPILATION_ERROR of type: %s, error: %s"
	linkErrFmt    = "ERROR::PROGRAM_LINKING_ERROR of type: PROGRAM, error: %s"
)

// Sources holds the text of each stage. Geometry is optional.
type Sources struct {
	Vertex   string
	Fragment string
	Geometry string
}

type stageSource struct {
	Type ShaderType
	Src  string
}

func (s *Sources) stages() []stageSource {

	stages := []stageSource{
		{Type: ShaderType_Vertex, Src: s.Vertex},
		{Type: ShaderType_Fragment, Src: s.Fragment},
	}

	if s.Geometry != "" {
		stages = append(stages, stageSource{Type: ShaderType_Geometry, Src: s.Geometry})
	}

	return stages
}

// NewShaderProgram reads, compiles and links the vertex and fragment shaders at the given paths.
//
// It never returns nil. On failure the error is logged and the returned program
// is in State_Failed, see ShaderProgram.Err.
func NewShaderProgram(vertPath, fragPath string, backend Backend, logger Logger) *ShaderProgram {

	sp := newShaderProgram(backend, logger)

	vertSrc, err := os.ReadFile(vertPath)
	if err != nil {
		sp.fail(&ReadError{Path: vertPath, Err: err})
		return sp
	}

	fragSrc, err := os.ReadFile(fragPath)
	if err != nil {
		sp.fail(&ReadError{Path: fragPath, Err: err})
		return sp
	}

	sp.build(Sources{Vertex: string(vertSrc), Fragment: string(fragSrc)})
	return sp
}

// NewShaderProgramCombined loads a single file holding all stages, each
// starting with a '//shader:vertex', '//shader:fragment' or '//shader:geometry' line
func NewShaderProgramCombined(shaderPath string, backend Backend, logger Logger) *ShaderProgram {

	sp := newShaderProgram(backend, logger)

	combinedSrc, err := os.ReadFile(shaderPath)
	if err != nil {
		sp.fail(&ReadError{Path: shaderPath, Err: err})
		return sp
	}

	src, err := SplitCombinedShader(combinedSrc)
	if err != nil {
		sp.fail(&ReadError{Path: shaderPath, Err: err})
		return sp
	}

	sp.build(src)
	return sp
}

// NewShaderProgramSrc compiles and links already loaded sources
func NewShaderProgramSrc(src Sources, backend Backend, logger Logger) *ShaderProgram {
	sp := newShaderProgram(backend, logger)
	sp.build(src)
	return sp
}

// SplitCombinedShader splits a combined shader file into its stages
func SplitCombinedShader(combinedSrc []byte) (Sources, error) {

	shaderSources := bytes.Split(combinedSrc, []byte("//shader:"))
	if len(shaderSources) < 2 {
		return Sources{}, errors.New("failed to read combined shader. The minimum shader types to have are '//shader:vertex' and '//shader:fragment'")
	}

	out := Sources{}
	for i := 0; i < len(shaderSources); i++ {

		src := shaderSources[i]

		//This can happen when the shader type is at the start of the file
		if len(bytes.TrimSpace(src)) == 0 {
			continue
		}

		if bytes.HasPrefix(src, []byte("vertex")) {
			out.Vertex = string(src[6:])
		} else if bytes.HasPrefix(src, []byte("fragment")) {
			out.Fragment = string(src[8:])
		} else if bytes.HasPrefix(src, []byte("geometry")) {
			out.Geometry = string(src[8:])
		} else if i == 0 {
			// Text before the first marker (e.g. a license comment) is ignored
			continue
		} else {
			return Sources{}, errors.New("unknown shader type. Must be '//shader:vertex' or '//shader:fragment' or '//shader:geometry'")
		}
	}

	if out.Vertex == "" {
		return Sources{}, errors.New("no valid vertex shader found. Please put '//shader:vertex' before your vertex shader")
	}

	if out.Fragment == "" {
		return Sources{}, errors.New("no valid fragment shader found. Please put '//shader:fragment' before your fragment shader")
	}

	return out, nil
}

func newShaderProgram(backend Backend, logger Logger) *ShaderProgram {
	return &ShaderProgram{
		state:    State_Uninitialized,
		backend:  backend,
		logger:   logger,
		unifLocs: make(map[string]int32),
	}
}

func (sp *ShaderProgram) build(src Sources) {

	stageIds := make([]uint32, 0, 3)

	// Stages are never needed after a link attempt, whatever its result
	defer func() {
		for _, id := range stageIds {
			sp.backend.DeleteStage(id)
		}
	}()

	for _, stage := range src.stages() {

		stageId := sp.backend.CreateStage(stage.Type)
		if stageId == 0 {
			sp.fail(&CompileError{Type: stage.Type, InfoLog: "backend failed to create shader object"})
			return
		}
		stageIds = append(stageIds, stageId)

		if status := sp.backend.CompileStage(stageId, stage.Src); status.Failed {
			sp.fail(&CompileError{Type: stage.Type, InfoLog: status.InfoLog})
			return
		}
	}

	progId := sp.backend.CreateProgram()
	if progId == 0 {
		sp.fail(&LinkError{InfoLog: "backend failed to create program object"})
		return
	}

	for _, id := range stageIds {
		sp.backend.AttachStage(progId, id)
	}

	if status := sp.backend.LinkProgram(progId); status.Failed {
		sp.backend.DeleteProgram(progId)
		sp.fail(&LinkError{InfoLog: status.InfoLog})
		return
	}

	sp.Id = progId
	sp.state = State_Ready
	sp.logger.Infof("Linked shader program with id %d", progId)
}

func (sp *ShaderProgram) fail(err error) {

	sp.Id = 0
	sp.err = err
	sp.state = State_Failed

	var readErr *ReadError
	var compileErr *CompileError
	var linkErr *LinkError
	switch {
	case errors.As(err, &readErr):
		sp.logger.Errorf(readErrFmt, readErr)
	case errors.As(err, &compileErr):
		sp.logger.Errorf(compileErrFmt, compileErr.Type, compileErr.InfoLog)
	case errors.As(err, &linkErr):
		sp.logger.Errorf(linkErrFmt, linkErr.InfoLog)
	default:
		sp.logger.Errorf("Failed to build shader program. Err: %v", err)
	}
}
