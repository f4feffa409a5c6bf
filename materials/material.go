package materials

import (
	"github.com/bloeys/hellotex/assets"
	"github.com/bloeys/hellotex/logging"
	"github.com/bloeys/hellotex/shaders"
)

var (
	lastMatId uint32
)

// TextureSlot is a texture sampled through the sampler uniform UniformName
type TextureSlot struct {
	UniformName string
	Tex         assets.Texture
}

// Material is a shader program plus the textures it samples.
// Textures[i] is bound to texture unit i.
type Material struct {
	Id       uint32
	Name     string
	Program  *shaders.ShaderProgram
	Textures []TextureSlot
}

func (m *Material) Bind() {

	m.Program.Use()

	for i := 0; i < len(m.Textures); i++ {
		m.Textures[i].Tex.Bind(uint32(i))
	}
}

func (m *Material) UnBind() {
	m.Program.UnBind()
}

// AddTexture appends tex on the next free texture unit and points the sampler uniform at it
func (m *Material) AddTexture(uniformName string, tex assets.Texture) {

	unit := int32(len(m.Textures))
	m.Textures = append(m.Textures, TextureSlot{UniformName: uniformName, Tex: tex})
	m.Program.SetInt(uniformName, unit)
}

func (m *Material) setSamplers() {
	for i := 0; i < len(m.Textures); i++ {
		m.Program.SetInt(m.Textures[i].UniformName, int32(i))
	}
}

// ReplaceProgram swaps in prog if it built successfully, destroying the old program.
// A failed prog is destroyed instead and the material keeps drawing with the old one.
func (m *Material) ReplaceProgram(prog *shaders.ShaderProgram) bool {

	if !prog.IsReady() {
		logging.ErrLog.Warnf("Keeping old shader program of material '%s' as the new one failed to build. Err: %v", m.Name, prog.Err())
		prog.Destroy()
		return false
	}

	m.Program.Destroy()
	m.Program = prog
	m.setSamplers()

	return true
}

// Delete destroys the program and all textures of the material
func (m *Material) Delete() {

	m.Program.Destroy()

	for i := 0; i < len(m.Textures); i++ {
		m.Textures[i].Tex.Delete()
	}
	m.Textures = nil
}

func getNewMatId() uint32 {
	lastMatId++
	return lastMatId
}

func NewMaterial(matName string, prog *shaders.ShaderProgram) Material {

	if !prog.IsReady() {
		logging.ErrLog.Errorf("Material '%s' created with a shader program that is not ready. Err: %v", matName, prog.Err())
	}

	return Material{
		Id:      getNewMatId(),
		Name:    matName,
		Program: prog,
	}
}
