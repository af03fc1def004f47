package player

import (
	"mini-voxel/internal/input"
	"mini-voxel/internal/physics"
	"mini-voxel/internal/profiling"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// maxStep bounds one integration step so a fast body cannot skip a cell.
	maxStep = float32(0.05)

	// groundProbe is how far below the feet the ground check looks.
	groundProbe = float32(0.01)
)

// MoveDirection starts moving in d. Calling it again while d is held does nothing.
func (p *Player) MoveDirection(d input.Direction) {
	p.intent.Add(d)
}

// StopMoveDirection stops moving in d.
func (p *Player) StopMoveDirection(d input.Direction) {
	p.intent.Remove(d)
}

// StopAll clears every held direction, e.g. when the window loses focus.
func (p *Player) StopAll() {
	p.intent.Clear()
}

func (p *Player) ToggleFlying() {
	p.Flying = !p.Flying
	p.Velocity[1] = 0
}

// Update advances the body by dt seconds.
func (p *Player) Update(dt float32) {
	defer profiling.Track("player.Update")()

	for dt > 0 {
		step := math32.Min(dt, maxStep)
		p.step(step)
		dt -= step
	}
}

func (p *Player) step(dt float32) {
	right, up, forward := p.intent.Axes()

	// Horizontal movement follows the camera yaw only.
	sy, cy := math32.Sincos(p.Yaw)
	front := mgl32.Vec3{cy, 0, sy}
	side := mgl32.Vec3{-sy, 0, cy}
	move := front.Mul(forward).Add(side.Mul(right))
	if l := move.Len(); l > 1 {
		move = move.Mul(1 / l)
	}

	speed := p.cfg.WalkSpeed
	if p.Flying {
		speed = p.cfg.FlySpeed
	}
	p.Velocity[0] = move.X() * speed
	p.Velocity[2] = move.Z() * speed

	if p.Flying {
		p.Velocity[1] = up * p.cfg.FlySpeed
	} else {
		if up > 0 && p.onGround {
			p.Velocity[1] = p.cfg.JumpSpeed
			p.onGround = false
		}
		p.Velocity[1] -= p.cfg.Gravity * dt
		if p.Velocity[1] < -p.cfg.MaxFallSpeed {
			p.Velocity[1] = -p.cfg.MaxFallSpeed
		}
	}

	// X, then Y, then Z. Each axis is pushed out of solid blocks before the
	// next one moves.
	for axis := 0; axis < 3; axis++ {
		delta := p.Velocity[axis] * dt
		p.Position[axis] += delta
		correction, hit := physics.ResolveAxis(p.Box(), axis, delta, p.world)
		if hit {
			p.Position[axis] += correction
			p.Velocity[axis] = 0
		}
	}

	p.onGround = p.groundBelow()
}

// groundBelow checks the cells just under the body's footprint.
func (p *Player) groundBelow() bool {
	box := p.Box()
	bmin, bmax := box.Min(), box.Max()
	y := int(math32.Floor(p.Position.Y() - groundProbe))
	for x := int(math32.Floor(bmin.X() + groundProbe)); x <= int(math32.Floor(bmax.X()-groundProbe)); x++ {
		for z := int(math32.Floor(bmin.Z() + groundProbe)); z <= int(math32.Floor(bmax.Z()-groundProbe)); z++ {
			if p.world.IsSolid(x, y, z) {
				return true
			}
		}
	}
	return false
}
