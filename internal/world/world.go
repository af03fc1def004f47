package world

import (
	"math/rand/v2"
	"sort"

	"mini-voxel/internal/config"
	"mini-voxel/internal/meshing"
	"mini-voxel/internal/profiling"
	"mini-voxel/internal/registry"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

// MeshSink receives every rebuilt chunk mesh, already interleaved in the
// meshing.VertexStride layout, with the transform that places it in the world.
type MeshSink interface {
	UploadMesh(coord ChunkCoord, model mgl32.Mat4, vertices []float32)
}

// Option configures a World.
type Option func(*World)

func WithLogger(log logrus.FieldLogger) Option {
	return func(w *World) { w.log = log }
}

func WithMeshSink(sink MeshSink) Option {
	return func(w *World) { w.sink = sink }
}

// WithGenerator replaces the noise generator built from the config.
func WithGenerator(gen TerrainGenerator) Option {
	return func(w *World) { w.gen = gen }
}

// World owns every loaded chunk. All calls run on the caller's goroutine and
// leave the meshes of touched chunks rebuilt before returning.
type World struct {
	chunks map[ChunkCoord]*Chunk
	gen    TerrainGenerator
	cfg    config.World
	seed   int64
	log    logrus.FieldLogger
	sink   MeshSink
}

// New creates a world and generates cfg.Radius x cfg.Height x cfg.Radius chunks.
// A zero seed is replaced by a random one.
func New(cfg config.World, opts ...Option) *World {
	w := newWorld(cfg, opts...)
	w.seed = cfg.Seed
	if w.seed == 0 {
		w.seed = rand.Int64()
	}
	if w.gen == nil {
		w.gen = NewGenerator(cfg, w.seed)
	}
	w.Generate()
	return w
}

// NewEmpty creates a world with no chunks loaded.
func NewEmpty(opts ...Option) *World {
	return newWorld(config.DefaultWorld(), opts...)
}

func newWorld(cfg config.World, opts ...Option) *World {
	w := &World{
		chunks: make(map[ChunkCoord]*Chunk),
		cfg:    cfg,
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.log == nil {
		w.log = logrus.StandardLogger()
	}
	return w
}

func (w *World) Seed() int64 {
	return w.seed
}

// SetMeshSink attaches a sink and uploads every mesh built so far.
func (w *World) SetMeshSink(sink MeshSink) {
	w.sink = sink
	if sink == nil {
		return
	}
	for _, coord := range w.ChunkCoords() {
		c := w.chunks[coord]
		if c.mesh != nil {
			sink.UploadMesh(coord, coord.ModelMatrix(), c.mesh.Floats())
		}
	}
}

// Generate fills the configured extent from the generator and meshes every
// chunk once all grids exist, so border faces see their neighbours.
func (w *World) Generate() {
	defer profiling.Track("world.Generate")()
	if w.gen == nil {
		return
	}

	r, h := w.cfg.Radius, w.cfg.Height
	for cx := -r; cx < r; cx++ {
		for cy := 0; cy < h; cy++ {
			for cz := -r; cz < r; cz++ {
				c := NewChunk(cx, cy, cz)
				w.gen.PopulateChunk(c)
				w.chunks[c.coord] = c
			}
		}
	}
	coords := w.ChunkCoords()
	w.remesh(coords...)
	profiling.SetLoadedChunks(len(w.chunks))

	w.log.WithFields(logrus.Fields{
		"seed":   w.seed,
		"chunks": len(coords),
		"radius": r,
		"height": h,
	}).Info("world generated")
}

// LoadChunk installs a full block grid at coord, replacing any chunk there,
// and meshes it together with its loaded face neighbours. Unknown ids are
// stored as air.
func (w *World) LoadChunk(coord ChunkCoord, blocks Blocks) *Chunk {
	c := &Chunk{coord: coord}
	invalid := 0
	for x := range ChunkSize {
		for y := range ChunkSize {
			for z := range ChunkSize {
				if !c.SetBlock(x, y, z, blocks[x][y][z]) {
					invalid++
				}
			}
		}
	}
	if invalid > 0 {
		w.log.WithField("chunk", coord).Warnf("dropped %d blocks with unknown ids", invalid)
	}
	w.chunks[coord] = c
	profiling.SetLoadedChunks(len(w.chunks))

	touched := []ChunkCoord{coord}
	for _, f := range registry.Faces {
		touched = append(touched, coord.Add(f.Offset()))
	}
	w.remesh(w.loaded(touched)...)
	return c
}

// Chunk returns the chunk at coord or nil when it is not loaded.
func (w *World) Chunk(coord ChunkCoord) *Chunk {
	return w.chunks[coord]
}

func (w *World) ChunkCount() int {
	return len(w.chunks)
}

// ChunkCoords lists loaded chunks ordered by X, then Y, then Z.
func (w *World) ChunkCoords() []ChunkCoord {
	coords := lo.Keys(w.chunks)
	sort.Slice(coords, func(i, j int) bool {
		a, b := coords[i], coords[j]
		if a.X != b.X {
			return a.X < b.X
		}
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.Z < b.Z
	})
	return coords
}

// BlockAt returns the block at world coordinates. Unloaded space is air.
func (w *World) BlockAt(x, y, z int) registry.BlockType {
	id, _ := w.BlockLookup(x, y, z)
	return id
}

// BlockLookup is BlockAt that also reports whether the owning chunk is loaded.
func (w *World) BlockLookup(x, y, z int) (registry.BlockType, bool) {
	coord, l := ChunkAndBlockIndex(x, y, z)
	c := w.chunks[coord]
	if c == nil {
		return registry.Air, false
	}
	return c.blocks[l.X][l.Y][l.Z], true
}

func (w *World) IsSolid(x, y, z int) bool {
	return registry.IsSolid(w.BlockAt(x, y, z))
}

// HighestSolid returns the y of the topmost solid block in a column of the
// generated extent.
func (w *World) HighestSolid(x, z int) (int, bool) {
	for y := w.cfg.Height*ChunkSize - 1; y >= 0; y-- {
		if w.IsSolid(x, y, z) {
			return y, true
		}
	}
	return 0, false
}

// Set is the authoring write: it stores id whatever occupies the cell and
// creates the owning chunk when it is not loaded. Gameplay edits go through
// Destroy and Place, which never touch unloaded space.
func (w *World) Set(x, y, z int, id registry.BlockType) bool {
	if !registry.Valid(id) {
		return false
	}
	coord, l := ChunkAndBlockIndex(x, y, z)
	c := w.chunks[coord]
	if c == nil {
		c = NewChunk(coord.X, coord.Y, coord.Z)
		w.chunks[coord] = c
		profiling.SetLoadedChunks(len(w.chunks))
	}
	w.write(c, l, id)
	return true
}

// write stores id and remeshes the chunk and the neighbours sharing the cell's
// boundary faces.
func (w *World) write(c *Chunk, l LocalPos, id registry.BlockType) {
	c.blocks[l.X][l.Y][l.Z] = id
	w.remesh(w.affected(c.coord, l)...)
}

// Destroy clears a block. It is a no-op on air and in unloaded chunks.
func (w *World) Destroy(x, y, z int) bool {
	coord, l := ChunkAndBlockIndex(x, y, z)
	c := w.chunks[coord]
	if c == nil || c.blocks[l.X][l.Y][l.Z] == registry.Air {
		return false
	}
	old := c.blocks[l.X][l.Y][l.Z]
	w.write(c, l, registry.Air)
	profiling.CountEdit("destroy")

	w.log.WithFields(logrus.Fields{
		"pos":   [3]int{x, y, z},
		"block": old.String(),
	}).Debug("block destroyed")
	return true
}

// Place puts id into an empty or plant-occupied cell of a loaded chunk.
func (w *World) Place(x, y, z int, id registry.BlockType) bool {
	if id == registry.Air || !registry.Valid(id) {
		return false
	}
	coord, l := ChunkAndBlockIndex(x, y, z)
	c := w.chunks[coord]
	if c == nil {
		return false
	}
	if !replaceable(c.blocks[l.X][l.Y][l.Z]) {
		return false
	}
	w.write(c, l, id)
	profiling.CountEdit("place")

	w.log.WithFields(logrus.Fields{
		"pos":   [3]int{x, y, z},
		"block": id.String(),
	}).Debug("block placed")
	return true
}

func replaceable(id registry.BlockType) bool {
	return id == registry.Air || registry.Get(id).Shape == registry.ShapeCrossedPlanes
}

// affected returns the edited chunk plus every loaded neighbour sharing a
// boundary face with the edited cell.
func (w *World) affected(coord ChunkCoord, l LocalPos) []ChunkCoord {
	out := []ChunkCoord{coord}
	local := [3]int{l.X, l.Y, l.Z}
	for axis := 0; axis < 3; axis++ {
		var step [3]int
		switch local[axis] {
		case 0:
			step[axis] = -1
		case ChunkSize - 1:
			step[axis] = 1
		default:
			continue
		}
		out = append(out, coord.Add(step))
	}
	return w.loaded(out)
}

func (w *World) loaded(coords []ChunkCoord) []ChunkCoord {
	return lo.Filter(coords, func(c ChunkCoord, _ int) bool {
		_, ok := w.chunks[c]
		return ok
	})
}

// remesh rebuilds the given chunks and hands the result to the sink.
func (w *World) remesh(coords ...ChunkCoord) {
	defer profiling.Track("world.remesh")()

	for _, coord := range coords {
		c := w.chunks[coord]
		if c == nil {
			continue
		}
		c.mesh = meshing.BuildChunkMesh(c, coord.Origin(), w)
		if w.sink != nil {
			w.sink.UploadMesh(coord, coord.ModelMatrix(), c.mesh.Floats())
		}
	}
	profiling.CountRemesh(len(coords))
	w.log.WithField("count", len(coords)).Debug("chunks remeshed")
}
