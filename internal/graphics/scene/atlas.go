package scene

import (
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"io"
	"os"

	"mini-voxel/internal/registry"

	xdraw "golang.org/x/image/draw"
)

// AtlasTiles is the number of tiles along each side of the atlas.
const AtlasTiles = 16

// fallbackTilePixels is the tile size of the generated atlas.
const fallbackTilePixels = 16

// LoadAtlas reads a PNG atlas from disk. See DecodeAtlas.
func LoadAtlas(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open atlas: %w", err)
	}
	defer f.Close()

	img, err := DecodeAtlas(f)
	if err != nil {
		return nil, fmt.Errorf("atlas %s: %w", path, err)
	}
	return img, nil
}

// DecodeAtlas decodes an atlas image into a square RGBA whose side is a
// multiple of AtlasTiles, scaling with nearest neighbour when needed. Rows are
// flipped so that the first row in memory is the bottom of the image, which is
// what texture coordinates with v pointing up expect.
func DecodeAtlas(r io.Reader) (*image.RGBA, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	b := src.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("decode: empty image")
	}

	side := max(b.Dx(), b.Dy())
	if rem := side % AtlasTiles; rem != 0 {
		side += AtlasTiles - rem
	}
	rgba := image.NewRGBA(image.Rect(0, 0, side, side))
	if b.Dx() == side && b.Dy() == side {
		xdraw.Draw(rgba, rgba.Bounds(), src, b.Min, xdraw.Src)
	} else {
		xdraw.NearestNeighbor.Scale(rgba, rgba.Bounds(), src, b, xdraw.Src, nil)
	}
	flipVertical(rgba)
	return rgba, nil
}

func flipVertical(img *image.RGBA) {
	h := img.Bounds().Dy()
	row := make([]byte, img.Stride)
	for y := 0; y < h/2; y++ {
		top := img.Pix[y*img.Stride : (y+1)*img.Stride]
		bottom := img.Pix[(h-1-y)*img.Stride : (h-y)*img.Stride]
		copy(row, top)
		copy(top, bottom)
		copy(bottom, row)
	}
}

// TileRect returns the pixel rectangle of t inside an atlas of the given side,
// in memory order (see DecodeAtlas).
func TileRect(t registry.Tile, side int) image.Rectangle {
	ts := side / AtlasTiles
	return image.Rect(t.X*ts, t.Y*ts, (t.X+1)*ts, (t.Y+1)*ts)
}

var tileColors = map[registry.BlockType][3]color.RGBA{
	// top, side, bottom
	registry.Stone:       {gray(125), gray(125), gray(125)},
	registry.Grass:       {{95, 159, 53, 255}, {121, 105, 66, 255}, {134, 96, 67, 255}},
	registry.Dirt:        {{134, 96, 67, 255}, {134, 96, 67, 255}, {134, 96, 67, 255}},
	registry.Cobblestone: {gray(100), gray(100), gray(100)},
	registry.OakPlanks:   {{162, 130, 78, 255}, {162, 130, 78, 255}, {162, 130, 78, 255}},
	registry.Sand:        {{219, 207, 163, 255}, {219, 207, 163, 255}, {219, 207, 163, 255}},
	registry.Bedrock:     {gray(50), gray(50), gray(50)},
	registry.Glass:       {{200, 230, 240, 90}, {200, 230, 240, 90}, {200, 230, 240, 90}},
	registry.Leaves:      {{60, 120, 40, 200}, {60, 120, 40, 200}, {60, 120, 40, 200}},
	registry.TallGrass:   {{90, 150, 50, 255}, {90, 150, 50, 255}, {90, 150, 50, 255}},
	registry.Flower:      {{220, 40, 40, 255}, {220, 40, 40, 255}, {220, 40, 40, 255}},
}

func gray(v uint8) color.RGBA {
	return color.RGBA{v, v, v, 255}
}

// FallbackAtlas paints flat colours into the tiles every registered block
// uses. It stands in when no atlas file is available.
func FallbackAtlas() *image.RGBA {
	side := AtlasTiles * fallbackTilePixels
	img := image.NewRGBA(image.Rect(0, 0, side, side))

	for i := 1; i < registry.Count(); i++ {
		def := registry.Get(registry.BlockType(i))
		colors, ok := tileColors[def.ID]
		if !ok {
			continue
		}
		for _, face := range registry.Faces {
			c := colors[1]
			switch face {
			case registry.FaceTop:
				c = colors[0]
			case registry.FaceBottom:
				c = colors[2]
			}
			r := TileRect(def.Tile(face), side)
			if def.Shape == registry.ShapeCrossedPlanes {
				paintStem(img, r, c)
				continue
			}
			paintTile(img, r, c)
		}
	}
	return img
}

// paintTile fills r with c, darkening a one pixel border so block edges read.
func paintTile(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	edge := color.RGBA{c.R / 4 * 3, c.G / 4 * 3, c.B / 4 * 3, c.A}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if x == r.Min.X || y == r.Min.Y || x == r.Max.X-1 || y == r.Max.Y-1 {
				img.SetRGBA(x, y, edge)
				continue
			}
			img.SetRGBA(x, y, c)
		}
	}
}

// paintStem draws a vertical bar on a transparent tile for crossed-plane flora.
func paintStem(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	mid := r.Min.X + r.Dx()/2
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := mid - 1; x <= mid; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}
