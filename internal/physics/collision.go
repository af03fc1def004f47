package physics

import (
	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

// Boxes closer than this on any axis are treated as touching, not overlapping.
const overlapEpsilon = 1e-4

// BodyBox returns the box of a body whose feet are centred on pos.
func BodyBox(pos mgl32.Vec3, halfWidth, height float32) cube.BBox {
	return cube.Box(
		pos.X()-halfWidth, pos.Y(), pos.Z()-halfWidth,
		pos.X()+halfWidth, pos.Y()+height, pos.Z()+halfWidth,
	)
}

// BlockBox returns the unit box occupied by the voxel at p.
func BlockBox(p cube.Pos) cube.BBox {
	return cube.Box(0, 0, 0, 1, 1, 1).Translate(p.Vec3())
}

// blockRange returns the voxels around box worth testing, one cell of slack on
// every side.
func blockRange(box cube.BBox) (lo, hi cube.Pos) {
	bmin, bmax := box.Min(), box.Max()
	for i := 0; i < 3; i++ {
		lo[i] = int(math32.Floor(bmin[i])) - 1
		hi[i] = int(math32.Floor(bmax[i])) + 1
	}
	return lo, hi
}

func overlaps(a, b cube.BBox) bool {
	amin, amax := a.Min(), a.Max()
	bmin, bmax := b.Min(), b.Max()
	for i := 0; i < 3; i++ {
		if amax[i]-bmin[i] <= overlapEpsilon || bmax[i]-amin[i] <= overlapEpsilon {
			return false
		}
	}
	return true
}

// Collides checks whether box overlaps any solid voxel.
func Collides(box cube.BBox, src VoxelSource) bool {
	lo, hi := blockRange(box)
	for x := lo[0]; x <= hi[0]; x++ {
		for y := lo[1]; y <= hi[1]; y++ {
			for z := lo[2]; z <= hi[2]; z++ {
				if src.IsSolid(x, y, z) && overlaps(box, BlockBox(cube.Pos{x, y, z})) {
					return true
				}
			}
		}
	}
	return false
}

// ResolveAxis pushes box out of every solid voxel it overlaps, moving only along
// axis. delta is the movement just applied on that axis and picks the push
// direction: back against the motion, or the shallower side when delta is 0.
// It returns the total correction to apply to the position on that axis.
func ResolveAxis(box cube.BBox, axis int, delta float32, src VoxelSource) (float32, bool) {
	lo, hi := blockRange(box)
	var (
		correction float32
		hit        bool
	)
	for x := lo[0]; x <= hi[0]; x++ {
		for y := lo[1]; y <= hi[1]; y++ {
			for z := lo[2]; z <= hi[2]; z++ {
				if !src.IsSolid(x, y, z) {
					continue
				}
				block := BlockBox(cube.Pos{x, y, z})
				if !overlaps(box, block) {
					continue
				}
				push := penetration(box, block, axis, delta)
				var offset mgl32.Vec3
				offset[axis] = push
				box = box.Translate(offset)
				correction += push
				hit = true
			}
		}
	}
	return correction, hit
}

// penetration returns the signed distance that separates box from block on axis.
func penetration(box, block cube.BBox, axis int, delta float32) float32 {
	intoMin := box.Max()[axis] - block.Min()[axis] // resolved by moving negative
	intoMax := block.Max()[axis] - box.Min()[axis] // resolved by moving positive
	switch {
	case delta > 0:
		return -intoMin
	case delta < 0:
		return intoMax
	case intoMin <= intoMax:
		return -intoMin
	default:
		return intoMax
	}
}
