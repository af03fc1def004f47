package meshing

import "github.com/go-gl/mathgl/mgl32"

// VertexStride is number of float32 per vertex (pos.xyz + normal.xyz + uv)
const VertexStride = 8

// VerticesPerFace is the vertex count of one quad emitted as two triangles.
const VerticesPerFace = 6

// Vertex is one corner of a mesh triangle.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	TexCoord mgl32.Vec2
}

// Mesh is a flat, non-indexed triangle list. It is rebuilt whole on every
// change to its chunk.
type Mesh struct {
	Vertices []Vertex
}

// VertexCount returns the number of vertices; a nil mesh has none.
func (m *Mesh) VertexCount() int {
	if m == nil {
		return 0
	}
	return len(m.Vertices)
}

// FaceCount returns the number of quads in the mesh.
func (m *Mesh) FaceCount() int {
	return m.VertexCount() / VerticesPerFace
}

// Floats interleaves the mesh into the upload layout described by VertexStride.
func (m *Mesh) Floats() []float32 {
	if m == nil {
		return nil
	}
	out := make([]float32, 0, len(m.Vertices)*VertexStride)
	for _, v := range m.Vertices {
		out = append(out,
			v.Position[0], v.Position[1], v.Position[2],
			v.Normal[0], v.Normal[1], v.Normal[2],
			v.TexCoord[0], v.TexCoord[1],
		)
	}
	return out
}
