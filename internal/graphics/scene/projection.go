package scene

import "github.com/go-gl/mathgl/mgl32"

// Projection describes a perspective camera lens.
type Projection struct {
	AspectRatio float32
	// FOV is the vertical field of view in degrees.
	FOV       float32
	NearPlane float32
	FarPlane  float32
}

func NewProjection(width, height int, fov float32) Projection {
	p := Projection{FOV: fov, NearPlane: 0.1, FarPlane: 1000.0}
	p.Resize(width, height)
	return p
}

// Resize updates the aspect ratio; a zero height (minimised window) is ignored.
func (p *Projection) Resize(width, height int) {
	if height <= 0 || width <= 0 {
		return
	}
	p.AspectRatio = float32(width) / float32(height)
}

func (p Projection) Matrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(p.FOV), p.AspectRatio, p.NearPlane, p.FarPlane)
}
