package world

import (
	"io"
	"testing"

	"mini-voxel/internal/config"
	"mini-voxel/internal/meshing"
	"mini-voxel/internal/registry"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	uploads []ChunkCoord
	floats  map[ChunkCoord]int
	models  map[ChunkCoord]mgl32.Mat4
}

func newRecordingSink() *recordingSink {
	return &recordingSink{floats: map[ChunkCoord]int{}, models: map[ChunkCoord]mgl32.Mat4{}}
}

func (s *recordingSink) UploadMesh(coord ChunkCoord, model mgl32.Mat4, vertices []float32) {
	s.uploads = append(s.uploads, coord)
	s.floats[coord] = len(vertices)
	s.models[coord] = model
}

func (s *recordingSink) reset() {
	s.uploads = nil
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestChunkAndBlockIndexRoundTrip(t *testing.T) {
	for x := -40; x <= 40; x += 3 {
		for y := -33; y <= 33; y += 5 {
			for z := -17; z <= 17; z++ {
				c, l := ChunkAndBlockIndex(x, y, z)
				require.True(t, inRange(l.X, l.Y, l.Z), "local %v out of range for (%d,%d,%d)", l, x, y, z)
				wx, wy, wz := WorldPos(c, l)
				require.Equal(t, [3]int{x, y, z}, [3]int{wx, wy, wz})
			}
		}
	}

	c, l := ChunkAndBlockIndex(-1, -16, -17)
	assert.Equal(t, ChunkCoord{-1, -1, -2}, c)
	assert.Equal(t, LocalPos{15, 0, 15}, l)
}

func TestUnloadedReadsAsAir(t *testing.T) {
	w := NewEmpty(WithLogger(quietLogger()))
	assert.Equal(t, registry.Air, w.BlockAt(3, -200, 9))
	_, ok := w.BlockLookup(3, -200, 9)
	assert.False(t, ok)
	assert.False(t, w.IsSolid(3, -200, 9))
}

func TestSetAndGet(t *testing.T) {
	w := NewEmpty(WithLogger(quietLogger()))
	require.True(t, w.Set(-5, 3, 20, registry.Sand))
	assert.Equal(t, registry.Sand, w.BlockAt(-5, 3, 20))
	assert.True(t, w.IsSolid(-5, 3, 20))

	id, ok := w.BlockLookup(-5, 4, 20)
	assert.True(t, ok)
	assert.Equal(t, registry.Air, id)

	assert.False(t, w.Set(0, 0, 0, registry.BlockType(250)))
	assert.Equal(t, 1, w.ChunkCount())
}

func TestCrossChunkMeshStaysConsistent(t *testing.T) {
	w := NewEmpty(WithLogger(quietLogger()))
	w.Set(ChunkSize-1, 0, 0, registry.Stone)
	require.Equal(t, 36, w.Chunk(ChunkCoord{}).Mesh().VertexCount())

	w.Set(ChunkSize, 0, 0, registry.Stone)
	assert.Equal(t, 30, w.Chunk(ChunkCoord{}).Mesh().VertexCount())
	assert.Equal(t, 30, w.Chunk(ChunkCoord{1, 0, 0}).Mesh().VertexCount())

	require.True(t, w.Destroy(ChunkSize, 0, 0))
	assert.Equal(t, 36, w.Chunk(ChunkCoord{}).Mesh().VertexCount())
	assert.Equal(t, 0, w.Chunk(ChunkCoord{1, 0, 0}).Mesh().VertexCount())
}

func TestDestroy(t *testing.T) {
	w := NewEmpty(WithLogger(quietLogger()))
	assert.False(t, w.Destroy(1, 1, 1), "unloaded chunk")

	w.Set(1, 1, 1, registry.Dirt)
	assert.False(t, w.Destroy(2, 1, 1), "air")
	assert.True(t, w.Destroy(1, 1, 1))
	assert.Equal(t, registry.Air, w.BlockAt(1, 1, 1))
	assert.Equal(t, 0, w.Chunk(ChunkCoord{}).Mesh().VertexCount())
}

func TestPlace(t *testing.T) {
	w := NewEmpty(WithLogger(quietLogger()))
	assert.False(t, w.Place(1, 1, 1, registry.Stone), "unloaded chunk")

	w.Set(0, 0, 0, registry.Stone)
	w.Set(2, 0, 0, registry.TallGrass)

	assert.True(t, w.Place(1, 0, 0, registry.Glass))
	assert.Equal(t, registry.Glass, w.BlockAt(1, 0, 0))

	assert.False(t, w.Place(0, 0, 0, registry.Dirt), "occupied")
	assert.Equal(t, registry.Stone, w.BlockAt(0, 0, 0))

	assert.True(t, w.Place(2, 0, 0, registry.Dirt), "plants are replaceable")
	assert.Equal(t, registry.Dirt, w.BlockAt(2, 0, 0))

	assert.False(t, w.Place(3, 0, 0, registry.Air))
	assert.False(t, w.Place(3, 0, 0, registry.BlockType(99)))
	assert.Equal(t, registry.Air, w.BlockAt(3, 0, 0))
}

func TestEditRemeshesTouchedNeighbours(t *testing.T) {
	sink := newRecordingSink()
	w := NewEmpty(WithLogger(quietLogger()), WithMeshSink(sink))
	var empty Blocks
	for _, c := range []ChunkCoord{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, -1}, {-1, 0, 0}} {
		w.LoadChunk(c, empty)
	}

	// interior edit touches only its own chunk
	sink.reset()
	require.True(t, w.Place(5, 5, 5, registry.Stone))
	assert.Equal(t, []ChunkCoord{{0, 0, 0}}, sink.uploads)

	// corner cell at x=15, y=15, z=0: +X, +Y and -Z neighbours are loaded
	sink.reset()
	require.True(t, w.Place(ChunkSize-1, ChunkSize-1, 0, registry.Stone))
	assert.ElementsMatch(t, []ChunkCoord{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, -1}}, sink.uploads)

	// x=0 face: -X neighbour is loaded, nothing else on the boundary
	sink.reset()
	require.True(t, w.Destroy(ChunkSize-1, ChunkSize-1, 0))
	require.True(t, w.Place(0, 7, 7, registry.Stone))
	assert.Equal(t, []ChunkCoord{{0, 0, 0}, {-1, 0, 0}}, sink.uploads[len(sink.uploads)-2:])

	assert.Equal(t, ChunkCoord{1, 0, 0}.ModelMatrix(), sink.models[ChunkCoord{1, 0, 0}])
	assert.Equal(t, w.Chunk(ChunkCoord{}).Mesh().VertexCount()*meshing.VertexStride, sink.floats[ChunkCoord{}])
}

func TestLoadChunk(t *testing.T) {
	w := NewEmpty(WithLogger(quietLogger()))
	w.Set(-1, 0, 0, registry.Stone) // chunk (-1,0,0), local x=15
	require.Equal(t, 36, w.Chunk(ChunkCoord{-1, 0, 0}).Mesh().VertexCount())

	var blocks Blocks
	blocks[0][0][0] = registry.Stone
	blocks[5][5][5] = registry.BlockType(200)
	c := w.LoadChunk(ChunkCoord{}, blocks)

	assert.Equal(t, registry.Air, c.Block(5, 5, 5), "unknown ids load as air")
	assert.Equal(t, 1, c.CountNonAir())
	assert.Equal(t, 30, c.Mesh().VertexCount())
	assert.Equal(t, 30, w.Chunk(ChunkCoord{-1, 0, 0}).Mesh().VertexCount(), "neighbour remeshed")
}

func TestRemeshIsIdempotent(t *testing.T) {
	w := NewEmpty(WithLogger(quietLogger()))
	w.Set(3, 3, 3, registry.Grass)
	w.Set(3, 4, 3, registry.Flower)
	w.Set(4, 3, 3, registry.Leaves)
	first := w.Chunk(ChunkCoord{}).Mesh()

	w.remesh(ChunkCoord{})
	second := w.Chunk(ChunkCoord{}).Mesh()
	require.NotSame(t, first, second)
	assert.Equal(t, first.Vertices, second.Vertices)
}

func TestGenerate(t *testing.T) {
	cfg := config.DefaultWorld()
	cfg.Radius = 1
	cfg.Height = 4
	cfg.Seed = 2024
	sink := newRecordingSink()
	w := New(cfg, WithLogger(quietLogger()), WithMeshSink(sink))

	assert.Equal(t, int64(2024), w.Seed())
	require.Equal(t, 2*2*4, w.ChunkCount())
	coords := w.ChunkCoords()
	assert.Equal(t, ChunkCoord{-1, 0, -1}, coords[0])
	assert.Equal(t, ChunkCoord{0, 3, 0}, coords[len(coords)-1])
	for _, c := range coords {
		require.NotNil(t, w.Chunk(c).Mesh(), "chunk %v not meshed", c)
	}
	assert.Len(t, sink.uploads, len(coords))

	assert.Equal(t, registry.Bedrock, w.BlockAt(0, 0, 0))
	assert.Equal(t, registry.Air, w.BlockAt(0, 4*ChunkSize, 0), "above the generated extent")

	same := New(cfg, WithLogger(quietLogger()))
	for _, c := range coords {
		assert.Equal(t, w.Chunk(c).blocks, same.Chunk(c).blocks)
	}
}

func TestHighestSolid(t *testing.T) {
	w := NewEmpty(WithLogger(quietLogger()))
	w.Set(3, 20, -4, registry.Stone)
	w.Set(3, 21, -4, registry.TallGrass)
	w.Set(3, 2, -4, registry.Dirt)

	y, ok := w.HighestSolid(3, -4)
	require.True(t, ok)
	assert.Equal(t, 20, y)

	_, ok = w.HighestSolid(100, 100)
	assert.False(t, ok)
}

func TestRandomSeedWhenUnset(t *testing.T) {
	cfg := config.DefaultWorld()
	cfg.Radius = 1
	cfg.Height = 1
	w := New(cfg, WithLogger(quietLogger()), WithGenerator(NewFlatGenerator(3)))
	assert.NotZero(t, w.Seed())
	assert.Equal(t, registry.Grass, w.BlockAt(-4, 3, 7))
}

func TestSetMeshSinkUploadsExisting(t *testing.T) {
	w := NewEmpty(WithLogger(quietLogger()))
	w.Set(0, 0, 0, registry.Stone)
	w.Set(40, 0, 0, registry.Stone)

	sink := newRecordingSink()
	w.SetMeshSink(sink)
	assert.Equal(t, []ChunkCoord{{0, 0, 0}, {2, 0, 0}}, sink.uploads)
	assert.Equal(t, 36*meshing.VertexStride, sink.floats[ChunkCoord{2, 0, 0}])
}

func TestOnlySetLoadsChunks(t *testing.T) {
	w := NewEmpty(WithLogger(quietLogger()))

	assert.False(t, w.Place(40, 3, -7, registry.Stone))
	assert.False(t, w.Destroy(40, 3, -7))
	assert.Zero(t, w.ChunkCount(), "gameplay edits never load chunks")

	require.True(t, w.Set(40, 3, -7, registry.Stone))
	assert.Equal(t, 1, w.ChunkCount())
	assert.Equal(t, registry.Stone, w.BlockAt(40, 3, -7))

	// overwrites whatever is there, unlike Place
	require.True(t, w.Set(40, 3, -7, registry.Dirt))
	assert.Equal(t, registry.Dirt, w.BlockAt(40, 3, -7))
	assert.False(t, w.Set(40, 3, -7, registry.BlockType(250)))
}
