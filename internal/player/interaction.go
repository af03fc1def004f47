package player

import (
	"mini-voxel/internal/physics"
	"mini-voxel/internal/registry"
)

// Target casts from the eye along the view direction, limited by reach.
func (p *Player) Target() physics.RaycastResult {
	return physics.Raycast(p.EyePosition(), p.Front(), p.cfg.Reach, p.world)
}

// BreakTarget destroys the targeted block.
func (p *Player) BreakTarget() bool {
	r := p.Target()
	if !r.Hit {
		return false
	}
	return p.world.Destroy(r.HitPosition.X(), r.HitPosition.Y(), r.HitPosition.Z())
}

// PlaceTarget puts id against the targeted face. Placements that would
// overlap the body are refused.
func (p *Player) PlaceTarget(id registry.BlockType) bool {
	r := p.Target()
	if !r.Hit || r.AdjacentPosition == r.HitPosition {
		return false
	}
	pos := r.AdjacentPosition
	if registry.IsSolid(id) && physics.Collides(p.Box(), singleVoxel(pos)) {
		return false
	}
	return p.world.Place(pos.X(), pos.Y(), pos.Z(), id)
}

// singleVoxel is a source with exactly one solid cell.
type singleVoxel [3]int

func (s singleVoxel) IsSolid(x, y, z int) bool {
	return s == singleVoxel{x, y, z}
}
