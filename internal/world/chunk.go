package world

import (
	"mini-voxel/internal/meshing"
	"mini-voxel/internal/registry"

	"github.com/go-gl/mathgl/mgl32"
)

// ChunkSize is the side length of a cubic chunk in blocks.
const ChunkSize = meshing.ChunkSize

// Blocks is the dense grid of one chunk, indexed [x][y][z].
type Blocks [ChunkSize][ChunkSize][ChunkSize]registry.BlockType

// ChunkCoord identifies a chunk; its world offset is coord * ChunkSize.
type ChunkCoord struct {
	X, Y, Z int
}

// Origin returns the world block coordinate of the chunk's local (0,0,0).
func (c ChunkCoord) Origin() [3]int {
	return [3]int{c.X * ChunkSize, c.Y * ChunkSize, c.Z * ChunkSize}
}

// Add returns the coordinate offset by the given number of chunks.
func (c ChunkCoord) Add(o [3]int) ChunkCoord {
	return ChunkCoord{c.X + o[0], c.Y + o[1], c.Z + o[2]}
}

// ModelMatrix translates chunk-local mesh positions into world space.
func (c ChunkCoord) ModelMatrix() mgl32.Mat4 {
	o := c.Origin()
	return mgl32.Translate3D(float32(o[0]), float32(o[1]), float32(o[2]))
}

// LocalPos is a block position inside a chunk, each component in [0,ChunkSize).
type LocalPos struct {
	X, Y, Z int
}

// Chunk represents a 16x16x16 section of the world
type Chunk struct {
	coord  ChunkCoord
	blocks Blocks
	mesh   *meshing.Mesh
}

// NewChunk creates an empty chunk at the specified chunk coordinates
func NewChunk(x, y, z int) *Chunk {
	return &Chunk{coord: ChunkCoord{x, y, z}}
}

func (c *Chunk) Coord() ChunkCoord {
	return c.coord
}

// Block returns the block at local coordinates; out of range reads as air.
func (c *Chunk) Block(x, y, z int) registry.BlockType {
	if !inRange(x, y, z) {
		return registry.Air
	}
	return c.blocks[x][y][z]
}

// SetBlock sets the block type at the specified local coordinates. It reports
// false for out of range positions and ids the registry does not know.
func (c *Chunk) SetBlock(x, y, z int, id registry.BlockType) bool {
	if !inRange(x, y, z) || !registry.Valid(id) {
		return false
	}
	c.blocks[x][y][z] = id
	return true
}

// IsAir checks if the block at the specified local coordinates is air
func (c *Chunk) IsAir(x, y, z int) bool {
	return c.Block(x, y, z) == registry.Air
}

// Mesh returns the last mesh built for this chunk, nil before the first build.
func (c *Chunk) Mesh() *meshing.Mesh {
	return c.mesh
}

// CountNonAir returns how many cells hold a block.
func (c *Chunk) CountNonAir() int {
	n := 0
	for x := range ChunkSize {
		for y := range ChunkSize {
			for z := range ChunkSize {
				if c.blocks[x][y][z] != registry.Air {
					n++
				}
			}
		}
	}
	return n
}

func inRange(x, y, z int) bool {
	return x >= 0 && x < ChunkSize && y >= 0 && y < ChunkSize && z >= 0 && z < ChunkSize
}
