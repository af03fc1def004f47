package scene

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"mini-voxel/internal/registry"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookingDownNegZ() Frustum {
	proj := NewProjection(800, 600, 70)
	view := mgl32.LookAtV(mgl32.Vec3{}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0})
	return NewFrustum(proj.Matrix().Mul4(view))
}

func TestFrustumContainsBox(t *testing.T) {
	f := lookingDownNegZ()

	assert.True(t, f.ContainsBox(mgl32.Vec3{-1, -1, -20}, mgl32.Vec3{1, 1, -18}), "straight ahead")
	assert.False(t, f.ContainsBox(mgl32.Vec3{-1, -1, 18}, mgl32.Vec3{1, 1, 20}), "behind")
	assert.False(t, f.ContainsBox(mgl32.Vec3{200, -1, -20}, mgl32.Vec3{216, 1, -18}), "off to the side")
	assert.False(t, f.ContainsBox(mgl32.Vec3{-1, -1, -3000}, mgl32.Vec3{1, 1, -2000}), "beyond far plane")
	assert.True(t, f.ContainsBox(mgl32.Vec3{-8, -8, -8}, mgl32.Vec3{8, 8, 8}), "around the eye")
}

func TestProjectionResize(t *testing.T) {
	p := NewProjection(800, 400, 70)
	assert.Equal(t, float32(2), p.AspectRatio)

	p.Resize(0, 0)
	assert.Equal(t, float32(2), p.AspectRatio, "minimised window keeps aspect")

	p.Resize(600, 600)
	assert.Equal(t, float32(1), p.AspectRatio)
}

func encodePNG(t *testing.T, img image.Image) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return &buf
}

func TestDecodeAtlasFlipsRows(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 32, 32))
	red := color.RGBA{255, 0, 0, 255}
	src.SetRGBA(0, 0, red)

	atlas, err := DecodeAtlas(encodePNG(t, src))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 32, 32), atlas.Bounds())
	assert.Equal(t, red, atlas.RGBAAt(0, 31), "top-left of the file ends up in the last row")
	assert.NotEqual(t, red, atlas.RGBAAt(0, 0))
}

func TestDecodeAtlasScalesToTileGrid(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 20, 10))
	atlas, err := DecodeAtlas(encodePNG(t, src))
	require.NoError(t, err)
	assert.Equal(t, 32, atlas.Bounds().Dx())
	assert.Equal(t, 32, atlas.Bounds().Dy())
}

func TestDecodeAtlasRejectsGarbage(t *testing.T) {
	_, err := DecodeAtlas(bytes.NewBufferString("not an image"))
	assert.Error(t, err)
}

func TestLoadAtlasMissingFile(t *testing.T) {
	_, err := LoadAtlas("does/not/exist.png")
	assert.Error(t, err)
}

func TestFallbackAtlasPaintsBlockTiles(t *testing.T) {
	atlas := FallbackAtlas()
	side := atlas.Bounds().Dx()
	require.Equal(t, AtlasTiles*fallbackTilePixels, side)

	centre := func(tile registry.Tile) color.RGBA {
		r := TileRect(tile, side)
		return atlas.RGBAAt(r.Min.X+r.Dx()/2-3, r.Min.Y+r.Dy()/2)
	}
	grass := registry.Get(registry.Grass)
	assert.Equal(t, tileColors[registry.Grass][0], centre(grass.Tile(registry.FaceTop)))
	assert.Equal(t, tileColors[registry.Grass][1], centre(grass.Tile(registry.FaceNorth)))
	assert.Equal(t, tileColors[registry.Stone][0], centre(registry.Get(registry.Stone).Tile(registry.FaceTop)))

	// an unused tile stays empty
	assert.Equal(t, color.RGBA{}, centre(registry.Tile{X: 15, Y: 0}))
}

func TestTextImage(t *testing.T) {
	assert.Nil(t, TextImage(nil))
	assert.Nil(t, TextImage([]string{""}))

	img := TextImage([]string{"xyz 1.0 2.0 3.0", "fps 60"})
	require.NotNil(t, img)
	assert.Equal(t, 15*7+2*textPadding, img.Bounds().Dx())
	assert.Equal(t, 2*13+2*textPadding, img.Bounds().Dy())

	lit := 0
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i] == 255 {
			lit++
		}
	}
	assert.Positive(t, lit, "glyph pixels drawn")
}
