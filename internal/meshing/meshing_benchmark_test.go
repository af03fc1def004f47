package meshing

import (
	"testing"

	"mini-voxel/internal/registry"
)

func makeTerrain() *testGrid {
	var g testGrid
	for x := 0; x < ChunkSize; x++ {
		for z := 0; z < ChunkSize; z++ {
			h := 6 + (x*7+z*3)%5
			for y := 0; y <= h; y++ {
				switch {
				case y == h:
					g[x][y][z] = registry.Grass
				case y < h/2:
					g[x][y][z] = registry.Stone
				default:
					g[x][y][z] = registry.Dirt
				}
			}
		}
	}
	return &g
}

func BenchmarkBuildChunkMesh(b *testing.B) {
	g := makeTerrain()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = BuildChunkMesh(g, [3]int{}, nil)
	}
}

func BenchmarkMeshFloats(b *testing.B) {
	mesh := BuildChunkMesh(makeTerrain(), [3]int{}, nil)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = mesh.Floats()
	}
}
