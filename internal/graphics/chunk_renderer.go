package graphics

import (
	"image"

	"mini-voxel/internal/graphics/scene"
	"mini-voxel/internal/meshing"
	"mini-voxel/internal/profiling"
	"mini-voxel/internal/world"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

type chunkMesh struct {
	vao         uint32
	vbo         uint32
	vertexCount int32
	model       mgl32.Mat4
}

// ChunkRenderer keeps one vertex buffer per chunk mesh and draws the ones in
// view. It implements world.MeshSink and must be used on the GL thread.
type ChunkRenderer struct {
	shader *Shader
	atlas  uint32
	meshes map[world.ChunkCoord]*chunkMesh

	Wireframe bool
	drawn     int
}

var _ world.MeshSink = (*ChunkRenderer)(nil)

// NewChunkRenderer compiles the chunk shader and uploads the block atlas.
func NewChunkRenderer(atlas *image.RGBA) (*ChunkRenderer, error) {
	shader, err := LoadShader("chunk")
	if err != nil {
		return nil, err
	}
	r := &ChunkRenderer{
		shader: shader,
		atlas:  UploadTexture(0, atlas),
		meshes: make(map[world.ChunkCoord]*chunkMesh),
	}

	shader.Use()
	shader.SetInt("atlas", 0)
	light := mgl32.Vec3{0.3, 1.0, 0.3}.Normalize()
	shader.SetVector3("lightDir", light.X(), light.Y(), light.Z())
	return r, nil
}

// UploadMesh replaces the buffer of one chunk. An empty mesh frees it.
func (r *ChunkRenderer) UploadMesh(coord world.ChunkCoord, model mgl32.Mat4, vertices []float32) {
	defer profiling.Track("graphics.UploadMesh")()

	m := r.meshes[coord]
	if len(vertices) == 0 {
		if m != nil {
			m.delete()
			delete(r.meshes, coord)
		}
		return
	}
	if m == nil {
		m = &chunkMesh{}
		gl.GenVertexArrays(1, &m.vao)
		gl.GenBuffers(1, &m.vbo)
		setupChunkVAO(m)
		r.meshes[coord] = m
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.DYNAMIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	m.vertexCount = int32(len(vertices) / meshing.VertexStride)
	m.model = model
}

func setupChunkVAO(m *chunkMesh) {
	gl.BindVertexArray(m.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)

	stride := int32(meshing.VertexStride * 4)
	// position
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	// normal
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, gl.PtrOffset(3*4))
	// texture coordinate
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 2, gl.FLOAT, false, stride, gl.PtrOffset(6*4))

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (m *chunkMesh) delete() {
	gl.DeleteVertexArrays(1, &m.vao)
	gl.DeleteBuffers(1, &m.vbo)
}

// Draw renders every uploaded chunk inside the view frustum.
func (r *ChunkRenderer) Draw(view, proj mgl32.Mat4) {
	defer profiling.Track("graphics.DrawChunks")()

	if r.Wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
		defer gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}

	r.shader.Use()
	r.shader.SetMatrix4("proj", &proj[0])
	r.shader.SetMatrix4("view", &view[0])
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.atlas)

	frustum := scene.NewFrustum(proj.Mul4(view))
	size := float32(world.ChunkSize)
	r.drawn = 0
	for _, m := range r.meshes {
		bmin := m.model.Col(3).Vec3()
		if !frustum.ContainsBox(bmin, bmin.Add(mgl32.Vec3{size, size, size})) {
			continue
		}
		r.shader.SetMatrix4("model", &m.model[0])
		gl.BindVertexArray(m.vao)
		gl.DrawArrays(gl.TRIANGLES, 0, m.vertexCount)
		r.drawn++
	}
	gl.BindVertexArray(0)
}

// Drawn returns how many chunks the last Draw call rendered.
func (r *ChunkRenderer) Drawn() int {
	return r.drawn
}

// Meshes returns how many chunks have a buffer.
func (r *ChunkRenderer) Meshes() int {
	return len(r.meshes)
}

func (r *ChunkRenderer) Dispose() {
	for coord, m := range r.meshes {
		m.delete()
		delete(r.meshes, coord)
	}
	gl.DeleteTextures(1, &r.atlas)
	r.shader.Delete()
}
