package renderer

import (
	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/hellotex/buffers"
	"github.com/bloeys/hellotex/materials"
)

type Render interface {
	Clear(color *gglm.Vec4)
	DrawVertexArray(mat *materials.Material, vao *buffers.VertexArray, firstElement int32, count int32)
	// DrawElements draws all indices of the index buffer of vao as triangles
	DrawElements(mat *materials.Material, vao *buffers.VertexArray)
	FrameEnd()
}
