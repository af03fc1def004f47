package player

import (
	"mini-voxel/internal/config"
	"mini-voxel/internal/input"
	"mini-voxel/internal/physics"
	"mini-voxel/internal/registry"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

// World is what the body needs from the block store: solidity for collision
// and ray casts, and edits for interaction.
type World interface {
	physics.VoxelSource
	Destroy(x, y, z int) bool
	Place(x, y, z int, id registry.BlockType) bool
}

// Player is a body with an axis aligned box and a first person camera.
// Position is the centre of the box's bottom face.
type Player struct {
	Position mgl32.Vec3
	Velocity mgl32.Vec3
	// Flying disables gravity; up and down move the body directly.
	Flying bool

	// Camera angles in radians.
	Yaw   float32
	Pitch float32

	cfg      config.Body
	world    World
	intent   input.DirectionSet
	onGround bool
}

// New places a body at spawn looking along +X.
func New(cfg config.Body, w World, spawn mgl32.Vec3) *Player {
	return &Player{
		Position: spawn,
		Flying:   cfg.Flying,
		cfg:      cfg,
		world:    w,
	}
}

// OnGround reports whether a solid cell was directly below the feet after the
// last update.
func (p *Player) OnGround() bool {
	return p.onGround
}

// Box returns the body's current bounding box.
func (p *Player) Box() cube.BBox {
	return physics.BodyBox(p.Position, p.cfg.HalfWidth, p.cfg.Height)
}

func (p *Player) EyePosition() mgl32.Vec3 {
	return p.Position.Add(mgl32.Vec3{0, p.cfg.EyeHeight, 0})
}

// Reach is how far the body can break and place blocks.
func (p *Player) Reach() float32 {
	return p.cfg.Reach
}
