package world

import (
	"math"
	"math/rand/v2"

	"mini-voxel/internal/config"
	"mini-voxel/internal/profiling"
	"mini-voxel/internal/registry"

	"github.com/aquilax/go-perlin"
)

// TerrainGenerator fills freshly created chunks.
type TerrainGenerator interface {
	HeightAt(worldX, worldZ int) int
	PopulateChunk(c *Chunk)
}

const (
	perlinAlpha  = 2.0
	perlinBeta   = 2.0
	perlinOctave = int32(3)

	// offsetSpan bounds the random planar offsets added to noise samples.
	offsetSpan = 1000.0
)

// Generator handles terrain generation logic.
type Generator struct {
	cfg   config.World
	seed  int64
	offX  float64
	offZ  float64
	noise *perlin.Perlin
}

// NewGenerator creates a generator for the given seed. The planar offsets are
// derived from the seed so a seed always reproduces the same terrain.
func NewGenerator(cfg config.World, seed int64) *Generator {
	rng := rand.New(rand.NewPCG(uint64(seed), 0x2545F4914F6CDD1D))
	return &Generator{
		cfg:   cfg,
		seed:  seed,
		offX:  rng.Float64() * offsetSpan,
		offZ:  rng.Float64() * offsetSpan,
		noise: perlin.NewPerlin(perlinAlpha, perlinBeta, perlinOctave, seed),
	}
}

func (g *Generator) Seed() int64 {
	return g.seed
}

// SurfaceHeight is the continuous terrain height at a world column: a
// high-frequency low-amplitude term stacked on a low-frequency one.
func (g *Generator) SurfaceHeight(worldX, worldZ int) float64 {
	s := g.cfg.Scale
	x, z := float64(worldX), float64(worldZ)
	fine := g.noise.Noise2D(2*s*x+g.offX, 2*s*z+g.offZ)
	coarse := g.noise.Noise2D(s*x+0.5*g.offX, s*z+0.5*g.offZ)
	return 5*fine + 10*coarse + g.cfg.BaseHeight
}

// HeightAt computes world surface height (block Y) at world X,Z.
func (g *Generator) HeightAt(worldX, worldZ int) int {
	return int(math.Floor(g.SurfaceHeight(worldX, worldZ)))
}

// terrainAt classifies a cell against a column height without caves or flora.
func terrainAt(y int, surface float64) registry.BlockType {
	fy := float64(y)
	switch {
	case y < 0 || fy >= surface:
		return registry.Air
	case y == 0:
		return registry.Bedrock
	case fy == math.Floor(surface):
		return registry.Grass
	case fy < math.Floor(surface/2):
		return registry.Stone
	default:
		return registry.Dirt
	}
}

func (g *Generator) carved(x, y, z int) bool {
	if !g.cfg.Caves || y == 0 {
		return false
	}
	s := g.cfg.CaveScale
	return g.noise.Noise3D(s*float64(x), s*float64(y), s*float64(z)) > g.cfg.CaveCutoff
}

// floraAt picks the plant growing on a grass column, if any.
func (g *Generator) floraAt(x, z int) registry.BlockType {
	if !g.cfg.Flora {
		return registry.Air
	}
	v := latticeValue(int64(x), int64(z), g.seed)
	if v >= g.cfg.FloraDensity {
		return registry.Air
	}
	// one in eight plants is a flower
	if hash2(int64(z), int64(x), g.seed)%8 == 0 {
		return registry.Flower
	}
	return registry.TallGrass
}

// BlockAt returns the generated block at a world position. It is a pure
// function of the seed and position, so chunks agree across their borders.
func (g *Generator) BlockAt(x, y, z int) registry.BlockType {
	return g.blockInColumn(x, y, z, g.SurfaceHeight(x, z))
}

func (g *Generator) blockInColumn(x, y, z int, surface float64) registry.BlockType {
	id := terrainAt(y, surface)
	if id != registry.Air {
		if g.carved(x, y, z) {
			return registry.Air
		}
		return id
	}
	if terrainAt(y-1, surface) == registry.Grass && !g.carved(x, y-1, z) {
		return g.floraAt(x, z)
	}
	return registry.Air
}

// PopulateChunk fills a chunk using the noise heightmap.
func (g *Generator) PopulateChunk(c *Chunk) {
	defer profiling.Track("world.PopulateChunk")()

	o := c.coord.Origin()
	for lx := range ChunkSize {
		for lz := range ChunkSize {
			wx, wz := o[0]+lx, o[2]+lz
			surface := g.SurfaceHeight(wx, wz)
			if float64(o[1]) > surface+1 {
				continue
			}
			for ly := range ChunkSize {
				c.blocks[lx][ly][lz] = g.blockInColumn(wx, o[1]+ly, wz, surface)
			}
		}
	}
}

// FlatGenerator produces a flat world of fixed height.
type FlatGenerator struct {
	height int
}

func NewFlatGenerator(height int) *FlatGenerator {
	return &FlatGenerator{height: height}
}

func (g *FlatGenerator) HeightAt(worldX, worldZ int) int {
	return g.height
}

func (g *FlatGenerator) PopulateChunk(c *Chunk) {
	o := c.coord.Origin()
	for ly := range ChunkSize {
		y := o[1] + ly
		var id registry.BlockType
		switch {
		case y < 0 || y > g.height:
			continue
		case y == 0:
			id = registry.Bedrock
		case y == g.height:
			id = registry.Grass
		default:
			id = registry.Dirt
		}
		for lx := range ChunkSize {
			for lz := range ChunkSize {
				c.blocks[lx][ly][lz] = id
			}
		}
	}
}
