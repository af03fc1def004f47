package world

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// mod returns the Euclidean remainder, always in [0,b) for positive b.
func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

// ChunkAndBlockIndex splits a world block position into the owning chunk and
// the position inside it. Negative coordinates round toward negative infinity.
func ChunkAndBlockIndex(x, y, z int) (ChunkCoord, LocalPos) {
	return ChunkCoord{floorDiv(x, ChunkSize), floorDiv(y, ChunkSize), floorDiv(z, ChunkSize)},
		LocalPos{mod(x, ChunkSize), mod(y, ChunkSize), mod(z, ChunkSize)}
}

// WorldPos is the inverse of ChunkAndBlockIndex.
func WorldPos(c ChunkCoord, l LocalPos) (x, y, z int) {
	return c.X*ChunkSize + l.X, c.Y*ChunkSize + l.Y, c.Z*ChunkSize + l.Z
}
