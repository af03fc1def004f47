package physics

import (
	"mini-voxel/internal/profiling"
	"mini-voxel/internal/registry"

	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

// MaxReachDistance is how far a body can reach to break or place blocks.
const MaxReachDistance = 6.0

// VoxelSource answers solidity queries in world block coordinates. Unloaded
// space must report false.
type VoxelSource interface {
	IsSolid(x, y, z int) bool
}

// RaycastResult stores the result of a raycast operation
type RaycastResult struct {
	// Point is where the ray enters the hit voxel.
	Point       mgl32.Vec3
	HitPosition cube.Pos
	// AdjacentPosition is the last empty voxel visited before the hit.
	AdjacentPosition cube.Pos
	Distance         float32
	// Face is the face of the hit voxel the ray went through.
	Face registry.Face
	Hit  bool
}

// Raycast walks the voxels pierced by a ray in order of distance and stops at
// the first solid one within maxDist. The direction need not be normalised; a
// zero direction or an infinite maxDist never hits.
func Raycast(origin, direction mgl32.Vec3, maxDist float32, src VoxelSource) RaycastResult {
	defer profiling.Track("physics.Raycast")()

	length := direction.Len()
	if length == 0 || math32.IsNaN(length) || math32.IsInf(length, 0) || !(maxDist >= 0) || math32.IsInf(maxDist, 1) {
		return RaycastResult{}
	}
	dir := direction.Mul(1 / length)

	voxel := cube.PosFromVec3(origin)
	var (
		step     [3]int
		unit     [3]float32 // ray length per unit of travel along the axis
		rayLen   [3]float32 // ray length at the next boundary on the axis
		dominant int
	)
	for i := 0; i < 3; i++ {
		a := dir[i]
		if math32.Abs(a) > math32.Abs(dir[dominant]) {
			dominant = i
		}
		if a == 0 {
			// never the closest boundary
			unit[i] = 1
			rayLen[i] = math32.MaxFloat32
			continue
		}
		b, c := dir[(i+1)%3], dir[(i+2)%3]
		unit[i] = math32.Sqrt(1 + (b/a)*(b/a) + (c/a)*(c/a))
		if a < 0 {
			step[i] = -1
			rayLen[i] = (origin[i] - float32(voxel[i])) * unit[i]
		} else {
			step[i] = 1
			rayLen[i] = (float32(voxel[i]+1) - origin[i]) * unit[i]
		}
	}

	if src.IsSolid(voxel[0], voxel[1], voxel[2]) {
		return RaycastResult{
			Point:            origin,
			HitPosition:      voxel,
			AdjacentPosition: voxel,
			Face:             faceAgainst(dominant, dir[dominant]),
			Hit:              true,
		}
	}

	for {
		axis := 0
		if rayLen[1] < rayLen[axis] {
			axis = 1
		}
		if rayLen[2] < rayLen[axis] {
			axis = 2
		}
		dist := rayLen[axis]
		if dist > maxDist {
			return RaycastResult{}
		}

		prev := voxel
		voxel[axis] += step[axis]
		rayLen[axis] += unit[axis]
		if rayLen[axis] == dist {
			// float32 can no longer advance the ray
			return RaycastResult{}
		}

		if src.IsSolid(voxel[0], voxel[1], voxel[2]) {
			return RaycastResult{
				Point:            origin.Add(dir.Mul(dist)),
				HitPosition:      voxel,
				AdjacentPosition: prev,
				Distance:         dist,
				Face:             registry.FaceFromStep(axis, -step[axis]),
				Hit:              true,
			}
		}
	}
}

// faceAgainst returns the face looking back at a ray travelling along axis.
func faceAgainst(axis int, component float32) registry.Face {
	if component < 0 {
		return registry.FaceFromStep(axis, 1)
	}
	return registry.FaceFromStep(axis, -1)
}
