package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Settings is the root of the YAML configuration file.
type Settings struct {
	World   World   `yaml:"world"`
	Body    Body    `yaml:"body"`
	Render  Render  `yaml:"render"`
	Log     Log     `yaml:"log"`
	Metrics Metrics `yaml:"metrics"`
}

// Body holds the player body and interaction settings.
type Body struct {
	HalfWidth    float32 `yaml:"half_width"`
	Height       float32 `yaml:"height"`
	EyeHeight    float32 `yaml:"eye_height"`
	WalkSpeed    float32 `yaml:"walk_speed"`
	FlySpeed     float32 `yaml:"fly_speed"`
	JumpSpeed    float32 `yaml:"jump_speed"`
	Gravity      float32 `yaml:"gravity"`
	MaxFallSpeed float32 `yaml:"max_fall_speed"`
	Reach        float32 `yaml:"reach"`
	Flying       bool    `yaml:"flying"`
	// Sensitivity is degrees of rotation per pixel of pointer movement.
	Sensitivity float32 `yaml:"sensitivity"`
	// PlaceBlock is the registry name of the block placed on right click.
	PlaceBlock string `yaml:"place_block"`
}

// Render holds window and frame pacing settings.
type Render struct {
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	Title  string  `yaml:"title"`
	FOV    float32 `yaml:"fov"`
	VSync  bool    `yaml:"vsync"`
	MaxFPS int     `yaml:"max_fps"` // 0 disables the limiter
	Atlas  string  `yaml:"atlas"`
}

type Log struct {
	Level string `yaml:"level"`
}

type Metrics struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// Default returns the built-in settings used when no file is given.
func Default() Settings {
	return Settings{
		World: DefaultWorld(),
		Body: Body{
			HalfWidth:    0.3,
			Height:       1.8,
			EyeHeight:    1.6,
			WalkSpeed:    5.0,
			FlySpeed:     10.0,
			JumpSpeed:    7.5,
			Gravity:      25.0,
			MaxFallSpeed: 50.0,
			Reach:        6.0,
			Sensitivity:  0.1,
			PlaceBlock:   "cobblestone",
		},
		Render: Render{
			Width:  1280,
			Height: 720,
			Title:  "mini-voxel",
			FOV:    70,
			VSync:  true,
			MaxFPS: 144,
			Atlas:  "assets/textures/atlas.png",
		},
		Log: Log{Level: "info"},
		Metrics: Metrics{
			Addr: ":2112",
		},
	}
}

// Load reads a YAML file on top of Default and validates the result.
func Load(path string) (Settings, error) {
	s := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return s, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return s, nil
}

// Validate clamps numeric settings into their usable ranges and rejects values
// that cannot be repaired.
func (s *Settings) Validate() error {
	s.World.clamp()

	b := &s.Body
	if b.HalfWidth <= 0 || b.HalfWidth >= 0.5 {
		return fmt.Errorf("body.half_width %v must be in (0, 0.5)", b.HalfWidth)
	}
	if b.Height <= 0 || b.Height > 3 {
		return fmt.Errorf("body.height %v must be in (0, 3]", b.Height)
	}
	if b.EyeHeight <= 0 || b.EyeHeight > b.Height {
		b.EyeHeight = b.Height * 0.9
	}
	if b.Reach <= 0 {
		b.Reach = 6.0
	}
	if b.MaxFallSpeed <= 0 {
		b.MaxFallSpeed = 50.0
	}

	r := &s.Render
	if r.FOV < 30 {
		r.FOV = 30
	}
	if r.FOV > 120 {
		r.FOV = 120
	}
	if r.MaxFPS < 0 {
		r.MaxFPS = 0
	}
	if r.Width <= 0 || r.Height <= 0 {
		return errors.New("render.width and render.height must be positive")
	}

	if _, err := logrus.ParseLevel(s.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if s.Metrics.Enabled && s.Metrics.Addr == "" {
		return errors.New("metrics.addr is required when metrics are enabled")
	}
	return nil
}
