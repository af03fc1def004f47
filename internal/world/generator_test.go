package world

import (
	"crypto/sha256"
	"math"
	"testing"

	"mini-voxel/internal/config"
	"mini-voxel/internal/registry"
)

func testWorldConfig() config.World {
	cfg := config.DefaultWorld()
	cfg.Caves = false
	cfg.Flora = false
	return cfg
}

func TestStandardGeneratorImplementsInterface(t *testing.T) {
	var _ TerrainGenerator = NewGenerator(config.DefaultWorld(), 123)
}

func TestFlatGeneratorImplementsInterface(t *testing.T) {
	var _ TerrainGenerator = NewFlatGenerator(10)
}

func TestFlatGeneratorHeight(t *testing.T) {
	g := NewFlatGenerator(10)
	if h := g.HeightAt(0, 0); h != 10 {
		t.Errorf("Expected height 10, got %d", h)
	}
	if h := g.HeightAt(100, -50); h != 10 {
		t.Errorf("Expected height 10, got %d", h)
	}
}

func TestFlatGeneratorPopulate(t *testing.T) {
	c := NewChunk(0, 0, 0)
	g := NewFlatGenerator(5) // Height 5

	g.PopulateChunk(c)

	if b := c.Block(0, 0, 0); b != registry.Bedrock {
		t.Errorf("Expected Bedrock at 0,0,0, got %v", b)
	}
	for y := 1; y < 5; y++ {
		if b := c.Block(0, y, 0); b != registry.Dirt {
			t.Errorf("Expected Dirt at 0,%d,0, got %v", y, b)
		}
	}
	if b := c.Block(0, 5, 0); b != registry.Grass {
		t.Errorf("Expected Grass at 0,5,0, got %v", b)
	}
	if b := c.Block(0, 6, 0); b != registry.Air {
		t.Errorf("Expected Air at 0,6,0, got %v", b)
	}
}

// hashChunkBlocks computes a SHA-256 hash of all blocks in a chunk
func hashChunkBlocks(c *Chunk) [32]byte {
	h := sha256.New()
	for lx := 0; lx < ChunkSize; lx++ {
		for ly := 0; ly < ChunkSize; ly++ {
			for lz := 0; lz < ChunkSize; lz++ {
				h.Write([]byte{byte(c.Block(lx, ly, lz))})
			}
		}
	}
	var result [32]byte
	copy(result[:], h.Sum(nil))
	return result
}

// TestGeneratorDeterminism verifies same seed produces identical terrain
func TestGeneratorDeterminism(t *testing.T) {
	seed := int64(12345)
	chunkPositions := [][3]int{
		{0, 2, 0},
		{1, 2, 0},
		{0, 1, 1},
		{-1, 2, -1},
		{-3, 0, 2},
	}

	for _, pos := range chunkPositions {
		c1 := NewChunk(pos[0], pos[1], pos[2])
		NewGenerator(config.DefaultWorld(), seed).PopulateChunk(c1)

		c2 := NewChunk(pos[0], pos[1], pos[2])
		NewGenerator(config.DefaultWorld(), seed).PopulateChunk(c2)

		if hashChunkBlocks(c1) != hashChunkBlocks(c2) {
			t.Errorf("Chunk at (%d,%d,%d) not deterministic", pos[0], pos[1], pos[2])
		}
	}
}

func TestGeneratorSeedsDiffer(t *testing.T) {
	a := NewGenerator(testWorldConfig(), 1)
	b := NewGenerator(testWorldConfig(), 2)
	same := true
	for x := 0; x < 64 && same; x++ {
		if a.SurfaceHeight(x, 3*x) != b.SurfaceHeight(x, 3*x) {
			same = false
		}
	}
	if same {
		t.Errorf("different seeds produced identical height samples")
	}
}

// TestGeneratorDepthBands checks the material of every cell of a few columns.
func TestGeneratorDepthBands(t *testing.T) {
	g := NewGenerator(testWorldConfig(), 777)
	for _, col := range [][2]int{{0, 0}, {5, -9}, {-40, 17}, {123, 45}} {
		x, z := col[0], col[1]
		surface := g.SurfaceHeight(x, z)
		if surface == math.Floor(surface) {
			continue
		}
		top := int(math.Floor(surface))
		if top != g.HeightAt(x, z) {
			t.Fatalf("HeightAt(%d,%d) = %d, want %d", x, z, g.HeightAt(x, z), top)
		}
		for y := 0; y < top+8; y++ {
			var want registry.BlockType
			switch {
			case y == 0:
				want = registry.Bedrock
			case y > top:
				want = registry.Air
			case y == top:
				want = registry.Grass
			case y < int(math.Floor(surface/2)):
				want = registry.Stone
			default:
				want = registry.Dirt
			}
			if got := g.BlockAt(x, y, z); got != want {
				t.Errorf("column (%d,%d) y=%d: got %v, want %v (surface %.2f)", x, z, y, got, want, surface)
			}
		}
	}
}

func TestGeneratorChunkMatchesBlockAt(t *testing.T) {
	g := NewGenerator(config.DefaultWorld(), 4242)
	for _, pos := range [][3]int{{0, 2, 0}, {-1, 2, 0}, {0, 3, -1}} {
		c := NewChunk(pos[0], pos[1], pos[2])
		g.PopulateChunk(c)
		o := c.Coord().Origin()
		for lx := 0; lx < ChunkSize; lx++ {
			for ly := 0; ly < ChunkSize; ly++ {
				for lz := 0; lz < ChunkSize; lz++ {
					want := g.BlockAt(o[0]+lx, o[1]+ly, o[2]+lz)
					if got := c.Block(lx, ly, lz); got != want {
						t.Fatalf("chunk %v local (%d,%d,%d): got %v, want %v", pos, lx, ly, lz, got, want)
					}
				}
			}
		}
	}
}

func TestGeneratorFlora(t *testing.T) {
	cfg := testWorldConfig()
	cfg.Flora = true
	cfg.FloraDensity = 1
	g := NewGenerator(cfg, 99)

	for x := -8; x < 8; x++ {
		z := 2*x + 1
		surface := g.SurfaceHeight(x, z)
		if surface == math.Floor(surface) {
			continue
		}
		top := g.HeightAt(x, z)
		plant := g.BlockAt(x, top+1, z)
		if plant != registry.TallGrass && plant != registry.Flower {
			t.Errorf("column (%d,%d): expected a plant above grass, got %v", x, z, plant)
		}
		if g.BlockAt(x, top+2, z) != registry.Air {
			t.Errorf("column (%d,%d): plants are one block tall", x, z)
		}
	}

	cfg.FloraDensity = 0
	g = NewGenerator(cfg, 99)
	if b := g.BlockAt(0, g.HeightAt(0, 0)+1, 0); b != registry.Air {
		t.Errorf("zero density still grew %v", b)
	}
}

func TestGeneratorCavesKeepBedrock(t *testing.T) {
	cfg := config.DefaultWorld()
	cfg.CaveCutoff = -2 // carve everything the cave noise can reach
	g := NewGenerator(cfg, 5)
	for x := 0; x < 16; x++ {
		if b := g.BlockAt(x, 0, x); b != registry.Bedrock {
			t.Errorf("(%d,0,%d): expected bedrock under caves, got %v", x, x, b)
		}
		if b := g.BlockAt(x, 5, x); b != registry.Air {
			t.Errorf("(%d,5,%d): expected carved air, got %v", x, x, b)
		}
	}
}

// TestHighAltitudeAir verifies chunks far above the surface stay empty
func TestHighAltitudeAir(t *testing.T) {
	g := NewGenerator(config.DefaultWorld(), 1337)
	c := NewChunk(0, 8, 0)
	g.PopulateChunk(c)
	if n := c.CountNonAir(); n != 0 {
		t.Errorf("Expected empty chunk at y=128, found %d blocks", n)
	}
}

// BenchmarkPopulateChunk measures chunk generation performance
func BenchmarkPopulateChunk(b *testing.B) {
	g := NewGenerator(config.DefaultWorld(), 12345)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g.PopulateChunk(NewChunk(0, 2, 0))
	}
}

func BenchmarkHeightAt(b *testing.B) {
	g := NewGenerator(config.DefaultWorld(), 12345)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = g.HeightAt(i%1024, (i*31)%1024)
	}
}
