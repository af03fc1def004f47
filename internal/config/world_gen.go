package config

// World holds world generation settings
type World struct {
	// Seed 0 picks a random seed at startup.
	Seed int64 `yaml:"seed"`

	// Radius in chunks around the origin on X and Z; chunks span [-Radius, Radius).
	Radius int `yaml:"radius"`
	// Height in chunks, starting at y=0.
	Height int `yaml:"height"`

	BaseHeight float64 `yaml:"base_height"`
	Scale      float64 `yaml:"scale"`

	Caves      bool    `yaml:"caves"`
	CaveScale  float64 `yaml:"cave_scale"`
	CaveCutoff float64 `yaml:"cave_cutoff"`

	Flora        bool    `yaml:"flora"`
	FloraDensity float64 `yaml:"flora_density"`
}

func DefaultWorld() World {
	return World{
		Radius:       5,
		Height:       10,
		BaseHeight:   40,
		Scale:        0.03,
		Caves:        true,
		CaveScale:    0.1,
		CaveCutoff:   0.6,
		Flora:        true,
		FloraDensity: 0.06,
	}
}

func (w *World) clamp() {
	// Clamp to reasonable values
	if w.Radius < 1 {
		w.Radius = 1
	}
	if w.Radius > 32 {
		w.Radius = 32
	}
	if w.Height < 1 {
		w.Height = 1
	}
	if w.Height > 16 {
		w.Height = 16
	}
	if w.Scale <= 0 {
		w.Scale = 0.03
	}
	if w.CaveScale <= 0 {
		w.CaveScale = 0.1
	}
	if w.FloraDensity < 0 {
		w.FloraDensity = 0
	}
	if w.FloraDensity > 1 {
		w.FloraDensity = 1
	}
}
