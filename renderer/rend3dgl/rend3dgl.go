package rend3dgl

import (
	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/hellotex/buffers"
	"github.com/bloeys/hellotex/materials"
	"github.com/bloeys/hellotex/renderer"
	"github.com/go-gl/gl/v4.1-core/gl"
)

var _ renderer.Render = &Rend3DGL{}

// Rend3DGL skips rebinding the vertex array or material used by the previous draw of the frame
type Rend3DGL struct {
	BoundVaoId uint32
	BoundMatId uint32
}

func (r *Rend3DGL) Clear(color *gglm.Vec4) {
	gl.ClearColor(color.Data[0], color.Data[1], color.Data[2], color.Data[3])
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

func (r *Rend3DGL) bind(mat *materials.Material, vao *buffers.VertexArray) {

	if vao.Id != r.BoundVaoId {
		vao.Bind()
		r.BoundVaoId = vao.Id
	}

	if mat.Id != r.BoundMatId {
		mat.Bind()
		r.BoundMatId = mat.Id
	}
}

func (r *Rend3DGL) DrawVertexArray(mat *materials.Material, vao *buffers.VertexArray, firstElement int32, elementCount int32) {
	r.bind(mat, vao)
	gl.DrawArrays(gl.TRIANGLES, firstElement, elementCount)
}

func (r *Rend3DGL) DrawElements(mat *materials.Material, vao *buffers.VertexArray) {
	r.bind(mat, vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, vao.IndexBuffer.IndexBufCount, gl.UNSIGNED_INT, 0)
}

func (r3d *Rend3DGL) FrameEnd() {
	r3d.BoundVaoId = 0
	r3d.BoundMatId = 0
}

// InvalidateMaterial forces the next draw to rebind materials, needed after a material swaps its program
func (r3d *Rend3DGL) InvalidateMaterial() {
	r3d.BoundMatId = 0
}

func NewRend3DGL() *Rend3DGL {
	return &Rend3DGL{}
}
