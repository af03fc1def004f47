package registry

// BlockType is the integer id stored in chunk grids. It always indexes the
// block table; id 0 is empty space.
type BlockType uint8

const (
	Air BlockType = iota
	Stone
	Grass
	Dirt
	Cobblestone
	OakPlanks
	Sand
	Bedrock
	Glass
	Leaves
	TallGrass
	Flower

	blockCount
)

// Shape selects how the mesher turns a block into geometry.
type Shape uint8

const (
	ShapeNone Shape = iota
	ShapeCuboid
	ShapeCrossedPlanes
)

// TextureMapping selects how atlas tiles are spread over the six faces.
type TextureMapping uint8

const (
	MappingUniform TextureMapping = iota
	MappingTopAndSide
	MappingTopSideBottom
)

// Tile is a (column,row) index into the 16x16 texture atlas.
type Tile struct {
	X, Y int
}

// BlockDefinition defines the properties of a block type
type BlockDefinition struct {
	ID            BlockType
	Name          string
	IsSolid       bool
	IsTransparent bool
	Shape         Shape
	Mapping       TextureMapping

	// Top is used by every mapping; Side and Bottom only when the mapping
	// asks for them.
	Top    Tile
	Side   Tile
	Bottom Tile
}

// Tile returns the atlas tile for the given face.
func (d *BlockDefinition) Tile(face Face) Tile {
	switch d.Mapping {
	case MappingTopAndSide:
		if face == FaceTop {
			return d.Top
		}
		return d.Side
	case MappingTopSideBottom:
		switch face {
		case FaceTop:
			return d.Top
		case FaceBottom:
			return d.Bottom
		default:
			return d.Side
		}
	default:
		return d.Top
	}
}

var blocks = [blockCount]BlockDefinition{
	Air: {
		ID:            Air,
		Name:          "air",
		IsTransparent: true,
		Shape:         ShapeNone,
	},
	Stone: {
		ID:      Stone,
		Name:    "stone",
		IsSolid: true,
		Shape:   ShapeCuboid,
		Top:     Tile{1, 15},
	},
	Grass: {
		ID:      Grass,
		Name:    "grass",
		IsSolid: true,
		Shape:   ShapeCuboid,
		Mapping: MappingTopSideBottom,
		Top:     Tile{0, 15},
		Side:    Tile{3, 15},
		Bottom:  Tile{2, 15},
	},
	Dirt: {
		ID:      Dirt,
		Name:    "dirt",
		IsSolid: true,
		Shape:   ShapeCuboid,
		Top:     Tile{2, 15},
	},
	Cobblestone: {
		ID:      Cobblestone,
		Name:    "cobblestone",
		IsSolid: true,
		Shape:   ShapeCuboid,
		Top:     Tile{0, 14},
	},
	OakPlanks: {
		ID:      OakPlanks,
		Name:    "oak_planks",
		IsSolid: true,
		Shape:   ShapeCuboid,
		Top:     Tile{4, 15},
	},
	Sand: {
		ID:      Sand,
		Name:    "sand",
		IsSolid: true,
		Shape:   ShapeCuboid,
		Top:     Tile{0, 1},
	},
	Bedrock: {
		ID:      Bedrock,
		Name:    "bedrock",
		IsSolid: true,
		Shape:   ShapeCuboid,
		Top:     Tile{1, 14},
	},
	Glass: {
		ID:            Glass,
		Name:          "glass",
		IsSolid:       true,
		IsTransparent: true,
		Shape:         ShapeCuboid,
		Top:           Tile{1, 12},
	},
	Leaves: {
		ID:            Leaves,
		Name:          "leaves",
		IsSolid:       true,
		IsTransparent: true,
		Shape:         ShapeCuboid,
		Top:           Tile{4, 12},
	},
	TallGrass: {
		ID:            TallGrass,
		Name:          "tall_grass",
		IsTransparent: true,
		Shape:         ShapeCrossedPlanes,
		Top:           Tile{7, 13},
	},
	Flower: {
		ID:            Flower,
		Name:          "flower",
		IsTransparent: true,
		Shape:         ShapeCrossedPlanes,
		Top:           Tile{13, 15},
	},
}

var blockNames = func() map[string]BlockType {
	m := make(map[string]BlockType, len(blocks))
	for i := range blocks {
		m[blocks[i].Name] = blocks[i].ID
	}
	return m
}()

// Count returns the number of registered block types, air included.
func Count() int {
	return int(blockCount)
}

// Valid reports whether id indexes the block table.
func Valid(id BlockType) bool {
	return id < blockCount
}

// Get returns the definition for id. Unknown ids resolve to air.
func Get(id BlockType) *BlockDefinition {
	if id >= blockCount {
		return &blocks[Air]
	}
	return &blocks[id]
}

// ByName looks a block up by its registry name.
func ByName(name string) (BlockType, bool) {
	id, ok := blockNames[name]
	return id, ok
}

func IsSolid(id BlockType) bool {
	return Get(id).IsSolid
}

func IsTransparent(id BlockType) bool {
	return Get(id).IsTransparent
}

func (id BlockType) String() string {
	return Get(id).Name
}
