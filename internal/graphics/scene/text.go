package scene

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const textPadding = 4

var textBackground = color.RGBA{0, 0, 0, 128}

// TextImage renders lines with the built-in 7x13 face onto a translucent
// panel. The result is flipped for upload like DecodeAtlas output. It returns
// nil when there is nothing to draw.
func TextImage(lines []string) *image.RGBA {
	face := basicfont.Face7x13
	width := 0
	for _, l := range lines {
		width = max(width, font.MeasureString(face, l).Ceil())
	}
	if width == 0 {
		return nil
	}
	lineHeight := face.Metrics().Height.Ceil()

	bounds := image.Rect(0, 0, width+2*textPadding, len(lines)*lineHeight+2*textPadding)
	img := image.NewRGBA(bounds)
	draw.Draw(img, bounds, image.NewUniform(textBackground), image.Point{}, draw.Src)

	d := font.Drawer{Dst: img, Src: image.White, Face: face}
	for i, l := range lines {
		d.Dot = fixed.P(textPadding, textPadding+i*lineHeight+face.Metrics().Ascent.Ceil())
		d.DrawString(l)
	}
	flipVertical(img)
	return img
}
