package registry

import "github.com/go-gl/mathgl/mgl32"

// Face identifies a face of a block
type Face int

const (
	FaceNorth Face = iota // +Z
	FaceSouth             // -Z
	FaceEast              // +X
	FaceWest              // -X
	FaceTop               // +Y
	FaceBottom            // -Y
)

// Faces lists every face in mesh emission order.
var Faces = [6]Face{FaceNorth, FaceSouth, FaceEast, FaceWest, FaceTop, FaceBottom}

var faceOffsets = [6][3]int{
	FaceNorth:  {0, 0, 1},
	FaceSouth:  {0, 0, -1},
	FaceEast:   {1, 0, 0},
	FaceWest:   {-1, 0, 0},
	FaceTop:    {0, 1, 0},
	FaceBottom: {0, -1, 0},
}

// Offset returns the integer step to the neighbouring cell across the face.
func (f Face) Offset() [3]int {
	return faceOffsets[f]
}

// Normal returns the outward unit normal of the face.
func (f Face) Normal() mgl32.Vec3 {
	o := faceOffsets[f]
	return mgl32.Vec3{float32(o[0]), float32(o[1]), float32(o[2])}
}

// Opposite returns the face pointing the other way.
func (f Face) Opposite() Face {
	return f ^ 1
}

// FaceFromStep maps a unit step along one axis to the face it leaves through.
func FaceFromStep(axis, step int) Face {
	switch axis {
	case 0:
		if step > 0 {
			return FaceEast
		}
		return FaceWest
	case 1:
		if step > 0 {
			return FaceTop
		}
		return FaceBottom
	default:
		if step > 0 {
			return FaceNorth
		}
		return FaceSouth
	}
}

func (f Face) String() string {
	switch f {
	case FaceNorth:
		return "north"
	case FaceSouth:
		return "south"
	case FaceEast:
		return "east"
	case FaceWest:
		return "west"
	case FaceTop:
		return "top"
	case FaceBottom:
		return "bottom"
	default:
		return "unknown"
	}
}
