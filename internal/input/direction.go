package input

// Direction is one of the six movement directions relative to the camera.
type Direction uint8

const (
	DirForward Direction = iota
	DirBackward
	DirLeft
	DirRight
	DirUp
	DirDown
	directionCount
)

func (d Direction) String() string {
	switch d {
	case DirForward:
		return "forward"
	case DirBackward:
		return "backward"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	default:
		return "unknown"
	}
}

// DirectionSet holds the directions currently requested. Adding or removing a
// direction twice has no further effect, so intent cannot drift.
type DirectionSet uint8

func (s *DirectionSet) Add(d Direction) {
	if d < directionCount {
		*s |= 1 << d
	}
}

func (s *DirectionSet) Remove(d Direction) {
	if d < directionCount {
		*s &^= 1 << d
	}
}

func (s DirectionSet) Has(d Direction) bool {
	return d < directionCount && s&(1<<d) != 0
}

func (s *DirectionSet) Clear() {
	*s = 0
}

// Axes returns the intent on the right, up and forward axes, each -1, 0 or 1.
// Opposite directions held together cancel.
func (s DirectionSet) Axes() (right, up, forward float32) {
	return axis(s, DirRight, DirLeft), axis(s, DirUp, DirDown), axis(s, DirForward, DirBackward)
}

func axis(s DirectionSet, pos, neg Direction) float32 {
	var v float32
	if s.Has(pos) {
		v++
	}
	if s.Has(neg) {
		v--
	}
	return v
}
