package meshing

import (
	"mini-voxel/internal/profiling"
	"mini-voxel/internal/registry"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// ChunkSize is the side length of the cubic block grid a mesh is built from.
	ChunkSize = 16

	// TileSize is the width of one atlas tile in UV space (16x16 tile grid).
	TileSize = float32(1.0 / 16.0)
)

// Grid exposes the block ids of one chunk in local coordinates [0,ChunkSize).
type Grid interface {
	Block(x, y, z int) registry.BlockType
}

// BlockSource resolves blocks outside the chunk being meshed, in world block
// coordinates. ok is false when the owning chunk is not loaded.
type BlockSource interface {
	BlockLookup(x, y, z int) (id registry.BlockType, ok bool)
}

type faceCorner struct {
	pos mgl32.Vec3
	uv  mgl32.Vec2
}

// Corners are wound counter-clockwise seen from outside the block.
var cubeFaces = [6][4]faceCorner{
	registry.FaceNorth: {
		{mgl32.Vec3{0, 0, 1}, mgl32.Vec2{0, 0}},
		{mgl32.Vec3{1, 0, 1}, mgl32.Vec2{1, 0}},
		{mgl32.Vec3{1, 1, 1}, mgl32.Vec2{1, 1}},
		{mgl32.Vec3{0, 1, 1}, mgl32.Vec2{0, 1}},
	},
	registry.FaceSouth: {
		{mgl32.Vec3{1, 0, 0}, mgl32.Vec2{0, 0}},
		{mgl32.Vec3{0, 0, 0}, mgl32.Vec2{1, 0}},
		{mgl32.Vec3{0, 1, 0}, mgl32.Vec2{1, 1}},
		{mgl32.Vec3{1, 1, 0}, mgl32.Vec2{0, 1}},
	},
	registry.FaceEast: {
		{mgl32.Vec3{1, 0, 1}, mgl32.Vec2{0, 0}},
		{mgl32.Vec3{1, 0, 0}, mgl32.Vec2{1, 0}},
		{mgl32.Vec3{1, 1, 0}, mgl32.Vec2{1, 1}},
		{mgl32.Vec3{1, 1, 1}, mgl32.Vec2{0, 1}},
	},
	registry.FaceWest: {
		{mgl32.Vec3{0, 0, 0}, mgl32.Vec2{0, 0}},
		{mgl32.Vec3{0, 0, 1}, mgl32.Vec2{1, 0}},
		{mgl32.Vec3{0, 1, 1}, mgl32.Vec2{1, 1}},
		{mgl32.Vec3{0, 1, 0}, mgl32.Vec2{0, 1}},
	},
	registry.FaceTop: {
		{mgl32.Vec3{0, 1, 1}, mgl32.Vec2{0, 0}},
		{mgl32.Vec3{1, 1, 1}, mgl32.Vec2{1, 0}},
		{mgl32.Vec3{1, 1, 0}, mgl32.Vec2{1, 1}},
		{mgl32.Vec3{0, 1, 0}, mgl32.Vec2{0, 1}},
	},
	registry.FaceBottom: {
		{mgl32.Vec3{0, 0, 0}, mgl32.Vec2{0, 0}},
		{mgl32.Vec3{1, 0, 0}, mgl32.Vec2{1, 0}},
		{mgl32.Vec3{1, 0, 1}, mgl32.Vec2{1, 1}},
		{mgl32.Vec3{0, 0, 1}, mgl32.Vec2{0, 1}},
	},
}

// Two vertical quads along the cell diagonals, used for flora.
var crossedPlanes = [2][4]faceCorner{
	{
		{mgl32.Vec3{0, 0, 0}, mgl32.Vec2{0, 0}},
		{mgl32.Vec3{1, 0, 1}, mgl32.Vec2{1, 0}},
		{mgl32.Vec3{1, 1, 1}, mgl32.Vec2{1, 1}},
		{mgl32.Vec3{0, 1, 0}, mgl32.Vec2{0, 1}},
	},
	{
		{mgl32.Vec3{1, 0, 0}, mgl32.Vec2{0, 0}},
		{mgl32.Vec3{0, 0, 1}, mgl32.Vec2{1, 0}},
		{mgl32.Vec3{0, 1, 1}, mgl32.Vec2{1, 1}},
		{mgl32.Vec3{1, 1, 0}, mgl32.Vec2{0, 1}},
	},
}

var crossedNormals = [2]mgl32.Vec3{
	mgl32.Vec3{-1, 0, 1}.Normalize(),
	mgl32.Vec3{-1, 0, -1}.Normalize(),
}

// quadOrder splits a quad into triangles v0,v1,v2 and v2,v3,v0.
var quadOrder = [6]int{0, 1, 2, 2, 3, 0}

// BuildChunkMesh builds the triangle list for one chunk. Positions are local to
// the chunk; origin is the world block coordinate of local (0,0,0) and is only
// used to ask nb about cells across the chunk border. A nil nb treats every
// outside cell as unloaded.
func BuildChunkMesh(grid Grid, origin [3]int, nb BlockSource) *Mesh {
	defer profiling.Track("meshing.BuildChunkMesh")()

	mesh := &Mesh{Vertices: make([]Vertex, 0, 1024)}
	for x := 0; x < ChunkSize; x++ {
		for y := 0; y < ChunkSize; y++ {
			for z := 0; z < ChunkSize; z++ {
				id := grid.Block(x, y, z)
				if id == registry.Air {
					continue
				}
				def := registry.Get(id)
				pos := mgl32.Vec3{float32(x), float32(y), float32(z)}

				switch def.Shape {
				case registry.ShapeCrossedPlanes:
					for i := range crossedPlanes {
						mesh.appendQuad(pos, crossedPlanes[i], crossedNormals[i], def.Top)
					}
				case registry.ShapeCuboid:
					for _, face := range registry.Faces {
						if !faceVisible(grid, origin, nb, x, y, z, id, face) {
							continue
						}
						mesh.appendQuad(pos, cubeFaces[face], face.Normal(), def.Tile(face))
					}
				}
			}
		}
	}
	return mesh
}

// faceVisible reports whether the face of block id at local (x,y,z) is exposed.
// The neighbour has to be transparent and of a different id; unloaded space
// counts as transparent.
func faceVisible(grid Grid, origin [3]int, nb BlockSource, x, y, z int, id registry.BlockType, face registry.Face) bool {
	o := face.Offset()
	nx, ny, nz := x+o[0], y+o[1], z+o[2]

	var neighbour registry.BlockType
	if inChunk(nx) && inChunk(ny) && inChunk(nz) {
		neighbour = grid.Block(nx, ny, nz)
	} else {
		if nb == nil {
			return true
		}
		n, ok := nb.BlockLookup(origin[0]+nx, origin[1]+ny, origin[2]+nz)
		if !ok {
			return true
		}
		neighbour = n
	}
	return registry.IsTransparent(neighbour) && neighbour != id
}

func inChunk(v int) bool {
	return v >= 0 && v < ChunkSize
}

func (m *Mesh) appendQuad(pos mgl32.Vec3, corners [4]faceCorner, normal mgl32.Vec3, tile registry.Tile) {
	tileOrigin := mgl32.Vec2{float32(tile.X), float32(tile.Y)}.Mul(TileSize)
	for _, i := range quadOrder {
		c := corners[i]
		m.Vertices = append(m.Vertices, Vertex{
			Position: pos.Add(c.pos),
			Normal:   normal,
			TexCoord: c.uv.Mul(TileSize).Add(tileOrigin),
		})
	}
}
