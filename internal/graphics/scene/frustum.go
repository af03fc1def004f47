package scene

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Margin inflates boxes before culling, in blocks.
var Margin float32 = 1.0

type plane struct {
	a, b, c, d float32
}

// Frustum holds the six clip planes of a projection*view matrix in the order
// left, right, bottom, top, near, far.
type Frustum [6]plane

// NewFrustum extracts the planes from the combined clip matrix.
func NewFrustum(clip mgl32.Mat4) Frustum {
	// mgl32 is column-major
	m00, m01, m02, m03 := clip[0], clip[4], clip[8], clip[12]
	m10, m11, m12, m13 := clip[1], clip[5], clip[9], clip[13]
	m20, m21, m22, m23 := clip[2], clip[6], clip[10], clip[14]
	m30, m31, m32, m33 := clip[3], clip[7], clip[11], clip[15]

	return Frustum{
		normalizePlane(plane{m30 + m00, m31 + m01, m32 + m02, m33 + m03}),
		normalizePlane(plane{m30 - m00, m31 - m01, m32 - m02, m33 - m03}),
		normalizePlane(plane{m30 + m10, m31 + m11, m32 + m12, m33 + m13}),
		normalizePlane(plane{m30 - m10, m31 - m11, m32 - m12, m33 - m13}),
		normalizePlane(plane{m30 + m20, m31 + m21, m32 + m22, m33 + m23}),
		normalizePlane(plane{m30 - m20, m31 - m21, m32 - m22, m33 - m23}),
	}
}

func normalizePlane(p plane) plane {
	l := math32.Sqrt(p.a*p.a + p.b*p.b + p.c*p.c)
	if l == 0 {
		return p
	}
	return plane{p.a / l, p.b / l, p.c / l, p.d / l}
}

// ContainsBox reports whether the box [bmin, bmax], grown by Margin, is at
// least partly inside the frustum.
func (f Frustum) ContainsBox(bmin, bmax mgl32.Vec3) bool {
	m := mgl32.Vec3{Margin, Margin, Margin}
	bmin, bmax = bmin.Sub(m), bmax.Add(m)
	for _, p := range f {
		// positive vertex for this plane normal
		px := bmax.X()
		if p.a < 0 {
			px = bmin.X()
		}
		py := bmax.Y()
		if p.b < 0 {
			py = bmin.Y()
		}
		pz := bmax.Z()
		if p.c < 0 {
			pz = bmin.Z()
		}
		if p.a*px+p.b*py+p.c*pz+p.d < 0 {
			return false
		}
	}
	return true
}
