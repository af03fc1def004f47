package player

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

var maxPitch = mgl32.DegToRad(89)

// RotateOnXAxis tilts the camera up (positive) or down by angle radians.
func (p *Player) RotateOnXAxis(angle float32) {
	p.Pitch = mgl32.Clamp(p.Pitch+angle, -maxPitch, maxPitch)
}

// RotateOnYAxis turns the camera by angle radians, towards +Z for positive angles.
func (p *Player) RotateOnYAxis(angle float32) {
	p.Yaw = math32.Mod(p.Yaw+angle, 2*math32.Pi)
}

// HandleMouseMovement turns pointer deltas in pixels into camera rotation.
func (p *Player) HandleMouseMovement(dx, dy float64) {
	s := mgl32.DegToRad(p.cfg.Sensitivity)
	p.RotateOnYAxis(float32(dx) * s)
	p.RotateOnXAxis(-float32(dy) * s)
}

func (p *Player) Front() mgl32.Vec3 {
	sy, cy := math32.Sincos(p.Yaw)
	sp, cp := math32.Sincos(p.Pitch)
	return mgl32.Vec3{cp * cy, sp, cp * sy}.Normalize()
}

func (p *Player) ViewMatrix() mgl32.Mat4 {
	eye := p.EyePosition()
	return mgl32.LookAtV(eye, eye.Add(p.Front()), mgl32.Vec3{0, 1, 0})
}
