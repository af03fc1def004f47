package world

import (
	"testing"

	"mini-voxel/internal/config"
	"mini-voxel/internal/registry"
)

func BenchmarkGenerate(b *testing.B) {
	cfg := config.DefaultWorld()
	cfg.Radius = 1
	cfg.Height = 4
	cfg.Seed = 7
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = New(cfg, WithLogger(quietLogger()))
	}
}

// Edits on a chunk corner rebuild the chunk and its three face neighbours.
func BenchmarkCornerEdit(b *testing.B) {
	w := NewEmpty(WithLogger(quietLogger()), WithGenerator(NewFlatGenerator(20)))
	w.cfg.Radius, w.cfg.Height = 2, 2
	w.Generate()
	x, y, z := ChunkSize-1, ChunkSize-1, ChunkSize-1
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w.Destroy(x, y, z)
		w.Place(x, y, z, registry.Dirt)
	}
}
